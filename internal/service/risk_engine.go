package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// RiskRuleEngine scores chronic disease risk from health indicators using
// weighted threshold rules. Scores are clamped to the 0-100 range and mapped
// onto per-category risk bands.
type RiskRuleEngine struct {
	logger *logrus.Logger
	rules  map[domain.RiskCategory][]*RiskRule
}

// RiskRule represents an individual weighted risk factor rule.
type RiskRule struct {
	Name      string
	Weight    int
	Factor    string
	Evaluator func(ind *domain.Indicators) bool
}

// bandThresholds holds the per-category score cutoffs. A score strictly
// above High is high risk, strictly above Medium is medium risk.
type bandThresholds struct {
	High   int
	Medium int
}

// NewRiskRuleEngine creates a new risk rule engine with all category rules
// registered.
func NewRiskRuleEngine(logger *logrus.Logger) *RiskRuleEngine {
	engine := &RiskRuleEngine{
		logger: logger,
		rules:  make(map[domain.RiskCategory][]*RiskRule),
	}

	engine.initializeDiabetesRules()
	engine.initializeHeartDiseaseRules()
	engine.initializeHypertensionRules()

	return engine
}

// EvaluateAll evaluates every category against the given indicators and
// returns one prediction per category in registration order.
func (e *RiskRuleEngine) EvaluateAll(ind *domain.Indicators) []domain.RiskPrediction {
	categories := []domain.RiskCategory{
		domain.CategoryDiabetes,
		domain.CategoryHeartDisease,
		domain.CategoryHypertension,
	}

	predictions := make([]domain.RiskPrediction, 0, len(categories))
	for _, category := range categories {
		predictions = append(predictions, e.EvaluateCategory(category, ind))
	}

	e.logger.WithField("categories", len(predictions)).Debug("Completed risk evaluation")

	return predictions
}

// EvaluateCategory scores a single risk category.
func (e *RiskRuleEngine) EvaluateCategory(category domain.RiskCategory, ind *domain.Indicators) domain.RiskPrediction {
	score := 0
	factors := make([]string, 0)

	for _, rule := range e.rules[category] {
		if rule.Evaluator(ind) {
			score += rule.Weight
			factors = append(factors, rule.Factor)
		}
	}

	if score > 100 {
		score = 100
	}

	band := e.bandForScore(category, score)

	e.logger.WithFields(band.LogFields(category, score)).Debug("Evaluated risk category")

	return domain.RiskPrediction{
		Category:        category,
		Score:           score,
		Band:            band,
		MatchedFactors:  factors,
		Recommendations: e.recommendationsFor(category, band),
	}
}

// bandForScore maps a clamped score onto the category's risk band.
func (e *RiskRuleEngine) bandForScore(category domain.RiskCategory, score int) domain.RiskBand {
	t := bandThresholds{High: 60, Medium: 40}
	if category == domain.CategoryHypertension {
		t = bandThresholds{High: 50, Medium: 30}
	}

	switch {
	case score > t.High:
		return domain.RiskHigh
	case score > t.Medium:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// initializeDiabetesRules registers the Type 2 Diabetes risk factors.
func (e *RiskRuleEngine) initializeDiabetesRules() {
	e.rules[domain.CategoryDiabetes] = []*RiskRule{
		{
			Name:      "age_over_45",
			Weight:    20,
			Factor:    "Age over 45",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Age > 45 },
		},
		{
			Name:      "bmi_overweight",
			Weight:    25,
			Factor:    "BMI above 25",
			Evaluator: func(ind *domain.Indicators) bool { return ind.BMI > 25 },
		},
		{
			Name:      "elevated_glucose",
			Weight:    30,
			Factor:    "Elevated blood glucose",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Glucose > 100 },
		},
		{
			Name:      "family_history_diabetes",
			Weight:    15,
			Factor:    "Family history of diabetes",
			Evaluator: func(ind *domain.Indicators) bool { return ind.HistoryMentions("diabetes") },
		},
		{
			Name:      "no_exercise",
			Weight:    10,
			Factor:    "No regular exercise",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Exercise == "none" },
		},
	}
}

// initializeHeartDiseaseRules registers the Heart Disease risk factors.
func (e *RiskRuleEngine) initializeHeartDiseaseRules() {
	e.rules[domain.CategoryHeartDisease] = []*RiskRule{
		{
			Name:      "age_over_45",
			Weight:    20,
			Factor:    "Age over 45",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Age > 45 },
		},
		{
			Name:      "high_systolic_bp",
			Weight:    30,
			Factor:    "High systolic blood pressure",
			Evaluator: func(ind *domain.Indicators) bool { return ind.SystolicBP > 140 },
		},
		{
			Name:      "high_cholesterol",
			Weight:    25,
			Factor:    "High cholesterol",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Cholesterol > 240 },
		},
		{
			Name:      "smoking",
			Weight:    25,
			Factor:    "Smoking",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Smoking == "yes" },
		},
		{
			Name:      "family_history_heart",
			Weight:    15,
			Factor:    "Family history of heart disease",
			Evaluator: func(ind *domain.Indicators) bool { return ind.HistoryMentions("heart") },
		},
		{
			Name:      "no_exercise",
			Weight:    10,
			Factor:    "No regular exercise",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Exercise == "none" },
		},
	}
}

// initializeHypertensionRules registers the Hypertension risk factors.
func (e *RiskRuleEngine) initializeHypertensionRules() {
	e.rules[domain.CategoryHypertension] = []*RiskRule{
		{
			Name:      "elevated_systolic_bp",
			Weight:    40,
			Factor:    "Elevated systolic blood pressure",
			Evaluator: func(ind *domain.Indicators) bool { return ind.SystolicBP > 130 },
		},
		{
			Name:      "bmi_overweight",
			Weight:    20,
			Factor:    "BMI above 25",
			Evaluator: func(ind *domain.Indicators) bool { return ind.BMI > 25 },
		},
		{
			Name:      "smoking",
			Weight:    15,
			Factor:    "Smoking",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Smoking == "yes" },
		},
		{
			Name:      "daily_alcohol",
			Weight:    15,
			Factor:    "Daily alcohol consumption",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Alcohol == "daily" },
		},
		{
			Name:      "no_exercise",
			Weight:    10,
			Factor:    "No regular exercise",
			Evaluator: func(ind *domain.Indicators) bool { return ind.Exercise == "none" },
		},
	}
}

// recommendationsFor returns lifestyle guidance for a category at a given
// risk band. High and medium bands share the category guidance with an
// added consultation prompt for high.
func (e *RiskRuleEngine) recommendationsFor(category domain.RiskCategory, band domain.RiskBand) []string {
	base := map[domain.RiskCategory][]string{
		domain.CategoryDiabetes: {
			"Reduce sugar and refined carbohydrate intake",
			"Aim for at least 150 minutes of moderate exercise per week",
			"Monitor blood glucose regularly",
			"Maintain a healthy weight",
		},
		domain.CategoryHeartDisease: {
			"Adopt a heart-healthy diet low in saturated fat",
			"Exercise regularly and avoid prolonged sitting",
			"Stop smoking and limit alcohol",
			"Monitor blood pressure and cholesterol",
		},
		domain.CategoryHypertension: {
			"Reduce sodium intake to under 2300mg per day",
			"Limit alcohol consumption",
			"Manage stress through relaxation techniques",
			"Monitor blood pressure at home",
		},
	}

	recs := make([]string, 0, 5)
	switch band {
	case domain.RiskHigh:
		recs = append(recs, fmt.Sprintf("Consult a doctor about your %s risk as soon as possible", category))
		recs = append(recs, base[category]...)
	case domain.RiskMedium:
		recs = append(recs, base[category]...)
	default:
		recs = append(recs,
			"Maintain your current healthy lifestyle",
			"Schedule routine annual checkups",
		)
	}

	return recs
}
