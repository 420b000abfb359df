// Package domain contains the core business entities and types for the
// HealthAssist rule-based health scoring engine: risk bands, triage flags,
// interaction severities and the result structures produced by each
// assessment.
//
// All scoring thresholds and rule weights in this system are screening-grade
// placeholder values, not validated clinical logic.
package domain

import (
	"errors"
	"fmt"
)

// RiskCategory identifies an independently scored disease-risk category.
// Categories never share weight; each is evaluated against its own rule table.
type RiskCategory string

const (
	CategoryDiabetes     RiskCategory = "Type 2 Diabetes"
	CategoryHeartDisease RiskCategory = "Heart Disease"
	CategoryHypertension RiskCategory = "Hypertension"
)

// RiskBand is the ordinal classification assigned from a category score.
type RiskBand string

const (
	RiskLow    RiskBand = "low"
	RiskMedium RiskBand = "medium"
	RiskHigh   RiskBand = "high"
)

// SymptomSeverity is the four-level severity assigned by the symptom analyzer.
type SymptomSeverity string

const (
	SeverityLow      SymptomSeverity = "low"
	SeverityMedium   SymptomSeverity = "medium"
	SeverityHigh     SymptomSeverity = "high"
	SeverityCritical SymptomSeverity = "critical"
)

// TriageFlag is the traffic-light flag shown alongside a symptom analysis.
type TriageFlag string

const (
	FlagGreen  TriageFlag = "green"
	FlagYellow TriageFlag = "yellow"
	FlagRed    TriageFlag = "red"
)

// Urgency indicates how soon a patient should seek care.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencySoon      Urgency = "24-48hrs"
	UrgencyRoutine   Urgency = "routine"
)

// InteractionSeverity grades a known medication-pair interaction.
type InteractionSeverity string

const (
	InteractionSevere   InteractionSeverity = "severe"
	InteractionModerate InteractionSeverity = "moderate"
	InteractionMild     InteractionSeverity = "mild"
	InteractionNone     InteractionSeverity = "none"
)

// OverdoseRisk is derived from the sheer number of concurrent medications.
type OverdoseRisk string

const (
	OverdoseHigh   OverdoseRisk = "high"
	OverdoseMedium OverdoseRisk = "medium"
	OverdoseLow    OverdoseRisk = "low"
	OverdoseNone   OverdoseRisk = "none"
)

// LabStatus classifies a parsed lab value against its per-test bands.
type LabStatus string

const (
	LabNormal   LabStatus = "normal"
	LabLow      LabStatus = "low"
	LabHigh     LabStatus = "high"
	LabCritical LabStatus = "critical"
)

// WellbeingLevel is the four-band classification of the mental health screen.
type WellbeingLevel string

const (
	WellbeingLow      WellbeingLevel = "low"
	WellbeingMild     WellbeingLevel = "mild"
	WellbeingModerate WellbeingLevel = "moderate"
	WellbeingSevere   WellbeingLevel = "severe"
)

// AppointmentStatus tracks the lifecycle of a booked appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Validation sentinels shared across the engine and API layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmptySymptoms      = errors.New("symptom description is required")
	ErrEmptyMedications   = errors.New("at least one medication is required")
	ErrEmptyReport        = errors.New("report text is required")
	ErrIncompleteAnswers  = errors.New("all screening questions must be answered")
	ErrEmptyCondition     = errors.New("condition name is required")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrNoIndicators       = errors.New("no health indicators supplied")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IsValid reports whether the band is one of the defined ordinal values.
func (b RiskBand) IsValid() bool {
	switch b {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

func (b RiskBand) String() string { return string(b) }

// IsValid reports whether the severity is one of the defined values.
func (s SymptomSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

func (s SymptomSeverity) String() string { return string(s) }

// Flag returns the triage flag that corresponds to this severity.
func (s SymptomSeverity) Flag() TriageFlag {
	switch s {
	case SeverityCritical:
		return FlagRed
	case SeverityHigh, SeverityMedium:
		return FlagYellow
	default:
		return FlagGreen
	}
}

func (f TriageFlag) String() string { return string(f) }

func (u Urgency) String() string { return string(u) }

// IsValid reports whether the interaction severity is a defined grade.
func (is InteractionSeverity) IsValid() bool {
	switch is {
	case InteractionSevere, InteractionModerate, InteractionMild, InteractionNone:
		return true
	default:
		return false
	}
}

func (is InteractionSeverity) String() string { return string(is) }

func (o OverdoseRisk) String() string { return string(o) }

// IsValid reports whether the lab status is a defined classification.
func (ls LabStatus) IsValid() bool {
	switch ls {
	case LabNormal, LabLow, LabHigh, LabCritical:
		return true
	default:
		return false
	}
}

func (ls LabStatus) String() string { return string(ls) }

// Abnormal reports whether the status should trigger follow-up advice.
func (ls LabStatus) Abnormal() bool {
	return ls == LabLow || ls == LabHigh || ls == LabCritical
}

// IsValid reports whether the wellbeing level is a defined band.
func (w WellbeingLevel) IsValid() bool {
	switch w {
	case WellbeingLow, WellbeingMild, WellbeingModerate, WellbeingSevere:
		return true
	default:
		return false
	}
}

func (w WellbeingLevel) String() string { return string(w) }

// IsValid reports whether the category is one of the scored categories.
func (c RiskCategory) IsValid() bool {
	switch c {
	case CategoryDiabetes, CategoryHeartDisease, CategoryHypertension:
		return true
	default:
		return false
	}
}

func (c RiskCategory) String() string { return string(c) }

// LogFields returns structured logging fields for assessment audit trails.
func (b RiskBand) LogFields(category RiskCategory, score int) map[string]any {
	return map[string]any{
		"category":        string(category),
		"band":            string(b),
		"score":           score,
		"requires_action": b == RiskHigh,
	}
}

// IsValid reports whether the status is a defined appointment state.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	default:
		return false
	}
}

func (s AppointmentStatus) String() string { return string(s) }

// ParseAppointmentStatus converts a string into an AppointmentStatus.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	st := AppointmentStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid appointment status: %q", s)
	}
	return st, nil
}
