package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	ind := NormalizeIndicators(&RawHealthData{})

	assert.Equal(t, 30.0, ind.Age)
	assert.Equal(t, 120.0, ind.SystolicBP)
	assert.Equal(t, 100.0, ind.Glucose)
	assert.Equal(t, 200.0, ind.Cholesterol)
	assert.Equal(t, 22.0, ind.BMI)
}

func TestNormalizeKeepsProvidedValues(t *testing.T) {
	ind := NormalizeIndicators(&RawHealthData{Age: 55, Glucose: 130})

	assert.Equal(t, 55.0, ind.Age)
	assert.Equal(t, 130.0, ind.Glucose)
	assert.Equal(t, 120.0, ind.SystolicBP)
}

func TestNormalizeDerivesBMI(t *testing.T) {
	// 80kg at 1.80m is a BMI just under 24.7.
	ind := NormalizeIndicators(&RawHealthData{WeightKg: 80, HeightCm: 180})
	assert.InDelta(t, 24.69, ind.BMI, 0.01)

	// Explicit BMI wins over derivation.
	ind = NormalizeIndicators(&RawHealthData{BMI: 30, WeightKg: 80, HeightCm: 180})
	assert.Equal(t, 30.0, ind.BMI)

	// Missing height falls back to the default.
	ind = NormalizeIndicators(&RawHealthData{WeightKg: 80})
	assert.Equal(t, 22.0, ind.BMI)
}

func TestNormalizeLowersTextFields(t *testing.T) {
	ind := NormalizeIndicators(&RawHealthData{
		Smoking:       " Yes ",
		Exercise:      "NONE",
		FamilyHistory: "Mother has Diabetes",
	})

	assert.Equal(t, "yes", ind.Smoking)
	assert.Equal(t, "none", ind.Exercise)
	assert.Equal(t, "mother has diabetes", ind.FamilyHistory)
	assert.True(t, ind.HistoryMentions("diabetes"))
}
