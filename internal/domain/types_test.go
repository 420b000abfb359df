package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskBand_IsValid(t *testing.T) {
	tests := []struct {
		name string
		band RiskBand
		want bool
	}{
		{"low", RiskLow, true},
		{"medium", RiskMedium, true},
		{"high", RiskHigh, true},
		{"empty", RiskBand(""), false},
		{"unknown", RiskBand("extreme"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.band.IsValid())
		})
	}
}

func TestSymptomSeverity_Flag(t *testing.T) {
	tests := []struct {
		severity SymptomSeverity
		want     TriageFlag
	}{
		{SeverityCritical, FlagRed},
		{SeverityHigh, FlagYellow},
		{SeverityMedium, FlagYellow},
		{SeverityLow, FlagGreen},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.Flag())
		})
	}
}

func TestLabStatus_Abnormal(t *testing.T) {
	assert.False(t, LabNormal.Abnormal())
	assert.True(t, LabLow.Abnormal())
	assert.True(t, LabHigh.Abnormal())
	assert.True(t, LabCritical.Abnormal())
}

func TestParseAppointmentStatus(t *testing.T) {
	st, err := ParseAppointmentStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, AppointmentConfirmed, st)

	_, err = ParseAppointmentStatus("tentative")
	assert.Error(t, err)
}

func TestAppointment_Validate(t *testing.T) {
	apt := &Appointment{DoctorID: "doc-1", Date: "2026-09-15", Time: "10:00"}
	assert.NoError(t, apt.Validate())

	missing := &Appointment{Date: "2026-09-15", Time: "10:00"}
	err := missing.Validate()
	assert.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "doctor_id", verr.Field)
}

func TestIndicators_HistoryMentions(t *testing.T) {
	in := &Indicators{FamilyHistory: "father had diabetes, grandmother heart disease"}
	assert.True(t, in.HistoryMentions("diabetes"))
	assert.True(t, in.HistoryMentions("heart"))
	assert.False(t, in.HistoryMentions("asthma"))
}
