package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// SymptomAnalyzer performs keyword-based triage of free-text symptom
// descriptions. Severity escalation rules run in priority order so a
// critical keyword always wins over weaker matches.
type SymptomAnalyzer struct {
	logger *logrus.Logger
}

// NewSymptomAnalyzer creates a new symptom analyzer.
func NewSymptomAnalyzer(logger *logrus.Logger) *SymptomAnalyzer {
	return &SymptomAnalyzer{logger: logger}
}

// severityRule escalates the triage result when any of its keywords appear
// in the symptom text.
type severityRule struct {
	severity domain.SymptomSeverity
	urgency  domain.Urgency
	keywords []string
	match    func(text string, keywords []string) bool
}

func anyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Analyze triages a free-text symptom description. Follow-up answers and
// the pain level are attached to the result verbatim for the caller's
// record keeping.
func (a *SymptomAnalyzer) Analyze(symptoms string, followUpAnswers map[string]string, painLevel int) (*domain.SymptomAnalysis, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, domain.ErrEmptySymptoms
	}

	text := strings.ToLower(symptoms)

	severity := domain.SeverityLow
	urgency := domain.UrgencyRoutine

	rules := []severityRule{
		{
			severity: domain.SeverityCritical,
			urgency:  domain.UrgencyImmediate,
			keywords: []string{"chest pain", "shortness of breath", "severe", "unconscious"},
			match:    anyKeyword,
		},
		{
			severity: domain.SeverityHigh,
			urgency:  domain.UrgencySoon,
			keywords: []string{"persistent", "severe pain"},
			match: func(text string, keywords []string) bool {
				if strings.Contains(text, "fever") && strings.Contains(text, "high") {
					return true
				}
				return anyKeyword(text, keywords)
			},
		},
		{
			severity: domain.SeverityMedium,
			urgency:  domain.UrgencyRoutine,
			keywords: []string{"moderate", "few days"},
			match:    anyKeyword,
		},
	}

	for _, rule := range rules {
		if rule.match(text, rule.keywords) {
			severity = rule.severity
			urgency = rule.urgency
			break
		}
	}

	analysis := &domain.SymptomAnalysis{
		Symptoms:          symptoms,
		Severity:          severity,
		Flag:              severity.Flag(),
		Urgency:           urgency,
		Confidence:        75,
		Conditions:        a.candidateConditions(),
		Recommendations:   a.recommendationsFor(severity),
		FollowUpQuestions: a.followUpQuestions(text),
		FollowUpAnswers:   followUpAnswers,
		PainLevel:         painLevel,
	}

	a.logger.WithFields(logrus.Fields{
		"severity": severity.String(),
		"flag":     analysis.Flag.String(),
		"urgency":  urgency.String(),
	}).Debug("Completed symptom analysis")

	return analysis, nil
}

// candidateConditions returns the fixed differential list shown with every
// analysis. Probabilities are screening placeholders.
func (a *SymptomAnalyzer) candidateConditions() []domain.Condition {
	return []domain.Condition{
		{
			Name:          "Common Cold",
			Probability:   75,
			Description:   "Viral upper respiratory infection",
			TimeToRecover: "7-10 days",
		},
		{
			Name:          "Seasonal Allergies",
			Probability:   60,
			Description:   "Allergic reaction to environmental factors",
			TimeToRecover: "Varies with exposure",
		},
		{
			Name:          "Stress/Anxiety",
			Probability:   40,
			Description:   "Physical symptoms related to stress",
			TimeToRecover: "With stress management",
		},
	}
}

func (a *SymptomAnalyzer) recommendationsFor(severity domain.SymptomSeverity) []string {
	switch severity {
	case domain.SeverityCritical:
		return []string{
			"Seek emergency medical attention immediately",
			"Call emergency services or visit the nearest emergency room",
			"Do not drive yourself if symptoms are severe",
		}
	case domain.SeverityHigh:
		return []string{
			"Consult a healthcare provider within 24-48 hours",
			"Rest and stay hydrated",
			"Monitor symptoms closely and note any changes",
		}
	default:
		return []string{
			"Rest and stay hydrated",
			"Monitor symptoms for 24-48 hours",
			"Consider over-the-counter medications",
			"Consult a healthcare provider if symptoms worsen",
		}
	}
}

// followUpQuestions builds the question list for a symptom description.
// Pain and fever mentions add targeted questions ahead of the standard set.
func (a *SymptomAnalyzer) followUpQuestions(text string) []domain.FollowUpQuestion {
	questions := make([]domain.FollowUpQuestion, 0, 8)

	if strings.Contains(text, "pain") {
		questions = append(questions,
			domain.FollowUpQuestion{
				ID:       "pain-level",
				Question: "What is your pain level? (1-10)",
				Type:     "slider",
			},
			domain.FollowUpQuestion{
				ID:       "pain-duration",
				Question: "How long have you been experiencing this pain?",
				Type:     "select",
				Options:  []string{"Less than 24 hours", "1-3 days", "3-7 days", "More than a week"},
			},
		)
	}

	if strings.Contains(text, "fever") {
		questions = append(questions,
			domain.FollowUpQuestion{
				ID:       "fever-temp",
				Question: "What is your temperature?",
				Type:     "select",
				Options:  []string{"Below 100°F", "100-101°F", "101-102°F", "Above 102°F", "Not measured"},
			},
			domain.FollowUpQuestion{
				ID:       "fever-duration",
				Question: "How many days have you had fever?",
				Type:     "select",
				Options:  []string{"Less than 1 day", "1-2 days", "3-5 days", "More than 5 days"},
			},
		)
	}

	questions = append(questions,
		domain.FollowUpQuestion{
			ID:       "allergies",
			Question: "Do you have any known allergies?",
			Type:     "text",
		},
		domain.FollowUpQuestion{
			ID:       "medications",
			Question: "Are you currently taking any medications?",
			Type:     "text",
		},
		domain.FollowUpQuestion{
			ID:       "travel",
			Question: "Have you traveled recently? (Last 2 weeks)",
			Type:     "yesno",
		},
		domain.FollowUpQuestion{
			ID:       "chronic-conditions",
			Question: "Do you have any chronic conditions? (Diabetes, Heart disease, etc.)",
			Type:     "text",
		},
	)

	return questions
}
