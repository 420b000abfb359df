package service

import (
	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// TreatmentPlanner returns self-care plans for a fixed set of common
// conditions. Unknown condition names receive a generic fallback plan.
type TreatmentPlanner struct {
	logger *logrus.Logger
	plans  map[string]*domain.TreatmentPlan
}

// NewTreatmentPlanner creates a planner with the condition catalog loaded.
func NewTreatmentPlanner(logger *logrus.Logger) *TreatmentPlanner {
	return &TreatmentPlanner{
		logger: logger,
		plans:  treatmentCatalog(),
	}
}

// Conditions lists the catalogued condition names in a fixed order.
func (p *TreatmentPlanner) Conditions() []string {
	return []string{
		"Common Cold",
		"Fever",
		"Body Pain",
		"Stomach Infection",
		"Headache",
		"Cough",
		"Sore Throat",
		"Diarrhea",
		"Constipation",
		"Acid Reflux",
	}
}

// Plan returns the treatment plan for a condition. An empty name is
// rejected; an unrecognized one gets the generic plan.
func (p *TreatmentPlanner) Plan(condition string) (*domain.TreatmentPlan, error) {
	if condition == "" {
		return nil, domain.ErrEmptyCondition
	}

	if plan, ok := p.plans[condition]; ok {
		p.logger.WithField("condition", condition).Debug("Returning catalogued treatment plan")
		// Copy so callers cannot mutate the catalog.
		out := *plan
		return &out, nil
	}

	p.logger.WithField("condition", condition).Debug("Returning fallback treatment plan")
	return &domain.TreatmentPlan{
		Condition: condition,
		Duration:  "5-7 days",
		Diet:      []string{"Balanced diet", "Plenty of fluids", "Avoid processed foods"},
		Medications: []domain.Medication{
			{
				Name:      "Consult doctor for prescription",
				Dosage:    "As prescribed",
				Frequency: "As directed",
				Duration:  "As per doctor's advice",
			},
		},
		Hydration:  "Drink 8-10 glasses of water daily",
		Rest:       "Get adequate rest and sleep",
		Activities: []string{"Light activities only", "Avoid strenuous exercise"},
		Prevention: []string{"Maintain good hygiene", "Follow healthy lifestyle"},
		FollowUp:   "Consult a healthcare provider for proper diagnosis and treatment.",
	}, nil
}

func treatmentCatalog() map[string]*domain.TreatmentPlan {
	return map[string]*domain.TreatmentPlan{
		"Common Cold": {
			Condition: "Common Cold",
			Duration:  "7-10 days",
			Diet: []string{
				"Warm soups and broths",
				"Plenty of fluids (water, herbal teas)",
				"Vitamin C rich foods (oranges, lemons)",
				"Avoid cold and processed foods",
				"Light, easily digestible meals",
			},
			Medications: []domain.Medication{
				{Name: "Paracetamol", Dosage: "500mg", Frequency: "Every 6-8 hours", Duration: "3-5 days (as needed)"},
			},
			Hydration: "Drink 8-10 glasses of water daily. Include warm fluids like ginger tea.",
			Rest:      "Get 7-9 hours of sleep. Rest as much as possible to help recovery.",
			Activities: []string{
				"Avoid strenuous exercise",
				"Light walking is okay",
				"Avoid crowded places",
				"Practice good hygiene",
			},
			Prevention: []string{
				"Wash hands frequently",
				"Avoid close contact with sick people",
				"Cover mouth when coughing/sneezing",
				"Maintain good immune health",
			},
			FollowUp: "If symptoms persist beyond 10 days or worsen, consult a doctor.",
		},
		"Fever": {
			Condition: "Fever",
			Duration:  "3-5 days",
			Diet: []string{
				"Light, easily digestible foods",
				"Plenty of fluids",
				"Coconut water for electrolytes",
				"Avoid heavy, oily foods",
			},
			Medications: []domain.Medication{
				{Name: "Paracetamol", Dosage: "500-1000mg", Frequency: "Every 6-8 hours", Duration: "Until fever subsides"},
			},
			Hydration: "Drink plenty of water, oral rehydration solution if needed. Monitor fluid intake.",
			Rest:      "Complete rest. Stay in bed if temperature is high.",
			Activities: []string{
				"Avoid physical activity",
				"Keep cool with light clothing",
				"Use cold compress on forehead",
				"Monitor temperature regularly",
			},
			Prevention: []string{
				"Identify and treat underlying cause",
				"Maintain good hygiene",
				"Stay hydrated",
				"Get adequate rest",
			},
			FollowUp: "If fever persists beyond 3 days or exceeds 103°F, seek medical attention immediately.",
		},
		"Body Pain": {
			Condition: "Body Pain",
			Duration:  "2-7 days",
			Diet: []string{
				"Anti-inflammatory foods (ginger, turmeric)",
				"Magnesium-rich foods (nuts, seeds)",
				"Stay hydrated",
				"Avoid processed foods",
			},
			Medications: []domain.Medication{
				{Name: "Ibuprofen", Dosage: "200-400mg", Frequency: "Every 6-8 hours", Duration: "3-5 days (with food)"},
			},
			Hydration: "Drink adequate water. Dehydration can worsen muscle pain.",
			Rest:      "Rest the affected area. Avoid overexertion.",
			Activities: []string{
				"Gentle stretching",
				"Warm compress on painful areas",
				"Light massage if helpful",
				"Avoid heavy lifting",
			},
			Prevention: []string{
				"Regular exercise",
				"Proper posture",
				"Adequate sleep",
				"Stress management",
			},
			FollowUp: "If pain is severe, persistent, or accompanied by other symptoms, consult a doctor.",
		},
		"Stomach Infection": {
			Condition: "Stomach Infection",
			Duration:  "3-7 days",
			Diet: []string{
				"BRAT diet (Banana, Rice, Applesauce, Toast)",
				"Clear broths",
				"Avoid dairy, spicy, and fatty foods",
				"Small, frequent meals",
				"Probiotic foods (yogurt after recovery)",
			},
			Medications: []domain.Medication{
				{Name: "Oral Rehydration Solution", Dosage: "As directed", Frequency: "After each loose stool", Duration: "Until diarrhea stops"},
			},
			Hydration: "Critical: Drink ORS or electrolyte solutions. Sip water frequently.",
			Rest:      "Rest is important. Avoid physical exertion.",
			Activities: []string{
				"Stay home to prevent spread",
				"Maintain hygiene",
				"Avoid sharing utensils",
				"Wash hands frequently",
			},
			Prevention: []string{
				"Wash hands before eating",
				"Cook food thoroughly",
				"Avoid contaminated water",
				"Practice food safety",
			},
			FollowUp: "If symptoms persist, dehydration occurs, or blood in stool, seek immediate medical care.",
		},
	}
}
