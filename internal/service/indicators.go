package service

import (
	"strings"

	"github.com/healthassist-server/internal/domain"
)

// Default values substituted for missing health indicators. These are
// population-typical baselines, not clinical reference values.
const (
	defaultAge         = 30.0
	defaultSystolicBP  = 120.0
	defaultGlucose     = 100.0
	defaultCholesterol = 200.0
	defaultBMI         = 22.0
)

// RawHealthData carries the unvalidated profile a caller submits for a
// risk assessment. Zero values mean "not provided".
type RawHealthData struct {
	Age           float64 `json:"age"`
	Gender        string  `json:"gender"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	BMI           float64 `json:"bmi"`
	SystolicBP    float64 `json:"systolic_bp"`
	Glucose       float64 `json:"glucose"`
	Cholesterol   float64 `json:"cholesterol"`
	Smoking       string  `json:"smoking"`
	Alcohol       string  `json:"alcohol"`
	Exercise      string  `json:"exercise"`
	FamilyHistory string  `json:"family_history"`
}

// NormalizeIndicators converts raw submitted health data into a complete
// indicator set, filling absent numeric fields with baseline defaults and
// lower-casing the lifestyle answers so rule matching is case-insensitive.
func NormalizeIndicators(raw *RawHealthData) *domain.Indicators {
	ind := &domain.Indicators{
		Age:           raw.Age,
		SystolicBP:    raw.SystolicBP,
		Glucose:       raw.Glucose,
		Cholesterol:   raw.Cholesterol,
		BMI:           raw.BMI,
		Gender:        strings.ToLower(strings.TrimSpace(raw.Gender)),
		Smoking:       strings.ToLower(strings.TrimSpace(raw.Smoking)),
		Alcohol:       strings.ToLower(strings.TrimSpace(raw.Alcohol)),
		Exercise:      strings.ToLower(strings.TrimSpace(raw.Exercise)),
		FamilyHistory: strings.ToLower(strings.TrimSpace(raw.FamilyHistory)),
	}

	// Derive BMI from weight and height when it was not supplied directly.
	if ind.BMI <= 0 && raw.WeightKg > 0 && raw.HeightCm > 0 {
		heightM := raw.HeightCm / 100.0
		ind.BMI = raw.WeightKg / (heightM * heightM)
	}

	if ind.Age <= 0 {
		ind.Age = defaultAge
	}
	if ind.SystolicBP <= 0 {
		ind.SystolicBP = defaultSystolicBP
	}
	if ind.Glucose <= 0 {
		ind.Glucose = defaultGlucose
	}
	if ind.Cholesterol <= 0 {
		ind.Cholesterol = defaultCholesterol
	}
	if ind.BMI <= 0 {
		ind.BMI = defaultBMI
	}

	return ind
}
