package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

func TestCheckRejectsEmptyList(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	_, err := checker.Check(nil, "", "")
	assert.ErrorIs(t, err, domain.ErrEmptyMedications)

	_, err = checker.Check([]string{"", "  "}, "", "")
	assert.ErrorIs(t, err, domain.ErrEmptyMedications)
}

func TestKnownInteractionPair(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	result, err := checker.Check([]string{"Aspirin", "Warfarin"}, "", "")
	require.NoError(t, err)

	require.Len(t, result.Interactions, 1)
	assert.Equal(t, domain.InteractionSevere, result.Interactions[0].Severity)
	assert.Equal(t, "Aspirin", result.Interactions[0].DrugA)
	assert.Equal(t, "Warfarin", result.Interactions[0].DrugB)
	assert.False(t, result.Safe)
}

func TestInteractionLookupIsSymmetric(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	ab, err := checker.Check([]string{"Aspirin", "Warfarin"}, "", "")
	require.NoError(t, err)
	ba, err := checker.Check([]string{"Warfarin", "Aspirin"}, "", "")
	require.NoError(t, err)

	require.Len(t, ab.Interactions, 1)
	require.Len(t, ba.Interactions, 1)
	assert.Equal(t, ab.Interactions[0].Severity, ba.Interactions[0].Severity)
	assert.Equal(t, ab.Safe, ba.Safe)
}

func TestSingleMedicationIsSafe(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	result, err := checker.Check([]string{"Paracetamol"}, "", "")
	require.NoError(t, err)

	assert.True(t, result.Safe)
	assert.Empty(t, result.Interactions)
	assert.Equal(t, domain.OverdoseNone, result.OverdoseRisk)
	assert.Empty(t, result.Warnings)
}

func TestOverdoseRiskFromMedicationCount(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	tests := []struct {
		name string
		meds []string
		want domain.OverdoseRisk
	}{
		{"three meds none", []string{"A", "B", "C"}, domain.OverdoseNone},
		{"four meds medium", []string{"A", "B", "C", "D"}, domain.OverdoseMedium},
		{"six meds high", []string{"A", "B", "C", "D", "E", "F"}, domain.OverdoseHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.Check(tt.meds, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.OverdoseRisk)
		})
	}
}

func TestDosageCheck(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	result, err := checker.Check([]string{"Paracetamol"}, "500", "")
	require.NoError(t, err)
	assert.True(t, result.DosageCheck.Valid)

	result, err = checker.Check([]string{"Paracetamol"}, "1500", "")
	require.NoError(t, err)
	assert.False(t, result.DosageCheck.Valid)
	assert.False(t, result.Safe)
	assert.Contains(t, result.Warnings, "High dosage detected - verify with healthcare provider")
}

func TestFrequencyCheck(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	result, err := checker.Check([]string{"Paracetamol"}, "", "twice daily")
	require.NoError(t, err)
	assert.True(t, result.FrequencyCheck.Valid)

	result, err = checker.Check([]string{"Paracetamol"}, "", "Every hour")
	require.NoError(t, err)
	assert.False(t, result.FrequencyCheck.Valid)
	assert.False(t, result.Safe)
}

func TestUnknownMedicationsHaveNoInteractions(t *testing.T) {
	checker := NewMedicineSafetyChecker(testLogger())

	result, err := checker.Check([]string{"Vitamin C", "Zinc"}, "", "")
	require.NoError(t, err)
	assert.Empty(t, result.Interactions)
	assert.True(t, result.Safe)
}
