package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// MedicineSafetyChecker flags known adverse medication pairs and runs
// overdose, dosage and frequency side checks.
type MedicineSafetyChecker struct {
	logger       *logrus.Logger
	interactions map[string][]string
}

// NewMedicineSafetyChecker creates a safety checker with the known
// interaction table loaded.
func NewMedicineSafetyChecker(logger *logrus.Logger) *MedicineSafetyChecker {
	return &MedicineSafetyChecker{
		logger: logger,
		// Keyed by lower-cased name. Lookup is performed in both directions
		// so the table behaves as an undirected pair set.
		interactions: map[string][]string{
			"paracetamol": {"ibuprofen", "aspirin", "warfarin"},
			"ibuprofen":   {"aspirin", "warfarin", "lithium"},
			"aspirin":     {"warfarin", "ibuprofen", "methotrexate"},
			"warfarin":    {"aspirin", "ibuprofen", "paracetamol"},
		},
	}
}

// Check evaluates the medication list plus optional dosage and frequency
// strings. An empty medication list is rejected before any scoring.
func (c *MedicineSafetyChecker) Check(medications []string, dosage, frequency string) (*domain.SafetyCheck, error) {
	meds := make([]string, 0, len(medications))
	for _, m := range medications {
		if strings.TrimSpace(m) != "" {
			meds = append(meds, strings.TrimSpace(m))
		}
	}
	if len(meds) == 0 {
		return nil, domain.ErrEmptyMedications
	}

	interactions := make([]domain.DrugInteraction, 0)
	warnings := make([]string, 0)

	for i := 0; i < len(meds); i++ {
		for j := i + 1; j < len(meds); j++ {
			if c.interacts(meds[i], meds[j]) {
				interactions = append(interactions, domain.DrugInteraction{
					DrugA:          meds[i],
					DrugB:          meds[j],
					Severity:       domain.InteractionSevere,
					Description:    fmt.Sprintf("%s and %s may interact and cause adverse effects", meds[i], meds[j]),
					Recommendation: "Consult your doctor before taking these together",
				})
			}
		}
	}

	overdoseRisk := domain.OverdoseNone
	if len(meds) > 5 {
		overdoseRisk = domain.OverdoseHigh
		warnings = append(warnings, "Taking too many medications simultaneously increases overdose risk")
	} else if len(meds) > 3 {
		overdoseRisk = domain.OverdoseMedium
		warnings = append(warnings, "Multiple medications may increase side effects")
	}

	dosageCheck := c.checkDosage(dosage, &warnings)
	frequencyCheck := c.checkFrequency(frequency, &warnings)

	result := &domain.SafetyCheck{
		Safe: len(interactions) == 0 && overdoseRisk == domain.OverdoseNone &&
			dosageCheck.Valid && frequencyCheck.Valid,
		Interactions:   interactions,
		OverdoseRisk:   overdoseRisk,
		DosageCheck:    dosageCheck,
		FrequencyCheck: frequencyCheck,
		Warnings:       warnings,
	}

	c.logger.WithFields(logrus.Fields{
		"medications":  len(meds),
		"interactions": len(interactions),
		"safe":         result.Safe,
	}).Debug("Completed medicine safety check")

	return result, nil
}

// interacts reports whether two medication names form a known pair.
// Lookup is symmetric and case-insensitive.
func (c *MedicineSafetyChecker) interacts(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	for _, other := range c.interactions[la] {
		if other == lb {
			return true
		}
	}
	for _, other := range c.interactions[lb] {
		if other == la {
			return true
		}
	}
	return false
}

// checkDosage flags single doses above 1000mg. A missing or unparseable
// dosage passes, the check is advisory only.
func (c *MedicineSafetyChecker) checkDosage(dosage string, warnings *[]string) domain.CheckResult {
	result := domain.CheckResult{Valid: true, Message: "Dosage appears safe"}
	if dosage == "" {
		return result
	}

	numeric := strings.TrimFunc(dosage, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	dose, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return result
	}

	if dose > 1000 {
		result.Valid = false
		result.Message = "Dosage seems high. Please verify with doctor"
		*warnings = append(*warnings, "High dosage detected - verify with healthcare provider")
	}
	return result
}

// checkFrequency flags free-text frequencies describing sub-hourly dosing.
func (c *MedicineSafetyChecker) checkFrequency(frequency string, warnings *[]string) domain.CheckResult {
	result := domain.CheckResult{Valid: true, Message: "Frequency appears safe"}
	freq := strings.ToLower(frequency)
	if strings.Contains(freq, "every hour") || strings.Contains(freq, "hourly") {
		result.Valid = false
		result.Message = "Very frequent dosing - verify with doctor"
		*warnings = append(*warnings, "Frequent dosing may cause overdose")
	}
	return result
}
