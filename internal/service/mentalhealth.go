package service

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// MentalHealthScreener scores the eight-question wellbeing questionnaire.
// Each answer scores 0-4 and the total is expressed as a percentage of the
// maximum, then mapped onto four bands at 25/50/75.
type MentalHealthScreener struct {
	logger    *logrus.Logger
	questions []ScreeningQuestion
}

// ScreeningQuestion is one questionnaire item with its scored options.
type ScreeningQuestion struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Options  []AnswerOption   `json:"options"`
	scores   map[string]int   // derived from Options for O(1) lookup
}

// AnswerOption is a selectable answer and its contribution to the total.
type AnswerOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// NewMentalHealthScreener creates a screener with the standard eight
// question set.
func NewMentalHealthScreener(logger *logrus.Logger) *MentalHealthScreener {
	s := &MentalHealthScreener{
		logger:    logger,
		questions: standardQuestions(),
	}
	for i := range s.questions {
		q := &s.questions[i]
		q.scores = make(map[string]int, len(q.Options))
		for _, opt := range q.Options {
			q.scores[opt.Value] = opt.Score
		}
	}
	return s
}

// Questions returns the questionnaire so a client can render it.
func (s *MentalHealthScreener) Questions() []ScreeningQuestion {
	return s.questions
}

// Screen scores a fully answered questionnaire. Every question must have
// an answer matching one of its option values.
func (s *MentalHealthScreener) Screen(answers map[string]string) (*domain.MentalHealthResult, error) {
	total := 0
	for _, q := range s.questions {
		answer, ok := answers[q.ID]
		if !ok {
			return nil, domain.ErrIncompleteAnswers
		}
		score, ok := q.scores[answer]
		if !ok {
			return nil, domain.ErrIncompleteAnswers
		}
		total += score
	}

	maxScore := len(s.questions) * 4
	percentage := int(math.Round(float64(total) / float64(maxScore) * 100))

	result := s.resultForPercentage(percentage)

	s.logger.WithFields(logrus.Fields{
		"score": percentage,
		"level": result.Level.String(),
	}).Debug("Completed mental health screening")

	return result, nil
}

// resultForPercentage maps a 0-100 percentage onto a band with its fixed
// description, recommendations and exercises.
func (s *MentalHealthScreener) resultForPercentage(percentage int) *domain.MentalHealthResult {
	switch {
	case percentage < 25:
		return &domain.MentalHealthResult{
			Score:       percentage,
			Level:       domain.WellbeingLow,
			Description: "Your mental health appears to be in good shape. Keep maintaining healthy habits!",
			Recommendations: []string{
				"Continue practicing self-care",
				"Maintain regular sleep schedule",
				"Stay connected with loved ones",
				"Engage in activities you enjoy",
			},
			Exercises: []domain.Exercise{
				{Name: "Gratitude Journaling", Description: "Write down 3 things you're grateful for each day"},
				{Name: "Mindful Breathing", Description: "Practice 5 minutes of deep breathing daily"},
			},
		}
	case percentage < 50:
		return &domain.MentalHealthResult{
			Score:       percentage,
			Level:       domain.WellbeingMild,
			Description: "You may be experiencing mild stress or mood changes. Some self-care practices can help.",
			Recommendations: []string{
				"Practice stress management techniques",
				"Ensure adequate sleep (7-9 hours)",
				"Regular physical exercise",
				"Consider talking to someone you trust",
			},
			Exercises: []domain.Exercise{
				{Name: "Deep Breathing", Description: "4-7-8 breathing technique: Inhale 4s, Hold 7s, Exhale 8s"},
				{Name: "Progressive Muscle Relaxation", Description: "Tense and relax each muscle group for 10 seconds"},
				{Name: "Mindfulness Meditation", Description: "10 minutes of guided meditation daily"},
			},
		}
	case percentage < 75:
		return &domain.MentalHealthResult{
			Score:       percentage,
			Level:       domain.WellbeingModerate,
			Description: "You may be experiencing moderate mental health concerns. Professional support may be beneficial.",
			Recommendations: []string{
				"Consider speaking with a mental health professional",
				"Practice regular self-care routines",
				"Maintain social connections",
				"Consider therapy or counseling",
				"Monitor your symptoms",
			},
			Exercises: []domain.Exercise{
				{Name: "Daily Journaling", Description: "Write about your thoughts and feelings for 15 minutes"},
				{Name: "Breathing Exercises", Description: "Practice breathing exercises 2-3 times daily"},
				{Name: "Physical Activity", Description: "30 minutes of moderate exercise daily"},
			},
		}
	default:
		return &domain.MentalHealthResult{
			Score:       percentage,
			Level:       domain.WellbeingSevere,
			Description: "You may be experiencing significant mental health concerns. Professional help is strongly recommended.",
			Recommendations: []string{
				"Seek professional mental health support immediately",
				"Contact a therapist or counselor",
				"Reach out to mental health helplines",
				"Consider speaking with your doctor",
				"Don't hesitate to ask for help",
			},
			Exercises: []domain.Exercise{
				{Name: "Crisis Support", Description: "Contact mental health helpline: 1800-599-0019 (India)"},
				{Name: "Grounding Techniques", Description: "5-4-3-2-1 technique: Name 5 things you see, 4 you hear, 3 you feel, 2 you smell, 1 you taste"},
			},
		}
	}
}

func standardQuestions() []ScreeningQuestion {
	return []ScreeningQuestion{
		{
			ID:       "mood",
			Question: "How would you rate your overall mood over the past week?",
			Options: []AnswerOption{
				{Value: "excellent", Label: "Excellent", Score: 0},
				{Value: "good", Label: "Good", Score: 1},
				{Value: "okay", Label: "Okay", Score: 2},
				{Value: "poor", Label: "Poor", Score: 3},
				{Value: "very-poor", Label: "Very Poor", Score: 4},
			},
		},
		{
			ID:       "sleep",
			Question: "How has your sleep been?",
			Options: []AnswerOption{
				{Value: "great", Label: "Great (7-9 hours)", Score: 0},
				{Value: "good", Label: "Good (6-7 hours)", Score: 1},
				{Value: "irregular", Label: "Irregular", Score: 2},
				{Value: "poor", Label: "Poor (trouble sleeping)", Score: 3},
				{Value: "insomnia", Label: "Insomnia", Score: 4},
			},
		},
		{
			ID:       "energy",
			Question: "How is your energy level?",
			Options: []AnswerOption{
				{Value: "high", Label: "High", Score: 0},
				{Value: "normal", Label: "Normal", Score: 1},
				{Value: "low", Label: "Low", Score: 2},
				{Value: "very-low", Label: "Very Low", Score: 3},
				{Value: "exhausted", Label: "Exhausted", Score: 4},
			},
		},
		{
			ID:       "anxiety",
			Question: "How often do you feel anxious or worried?",
			Options: []AnswerOption{
				{Value: "never", Label: "Never", Score: 0},
				{Value: "rarely", Label: "Rarely", Score: 1},
				{Value: "sometimes", Label: "Sometimes", Score: 2},
				{Value: "often", Label: "Often", Score: 3},
				{Value: "always", Label: "Always", Score: 4},
			},
		},
		{
			ID:       "concentration",
			Question: "How is your ability to concentrate?",
			Options: []AnswerOption{
				{Value: "excellent", Label: "Excellent", Score: 0},
				{Value: "good", Label: "Good", Score: 1},
				{Value: "moderate", Label: "Moderate", Score: 2},
				{Value: "poor", Label: "Poor", Score: 3},
				{Value: "very-poor", Label: "Very Poor", Score: 4},
			},
		},
		{
			ID:       "interest",
			Question: "How interested are you in activities you usually enjoy?",
			Options: []AnswerOption{
				{Value: "very-interested", Label: "Very Interested", Score: 0},
				{Value: "interested", Label: "Interested", Score: 1},
				{Value: "somewhat", Label: "Somewhat", Score: 2},
				{Value: "little", Label: "Little Interest", Score: 3},
				{Value: "none", Label: "No Interest", Score: 4},
			},
		},
		{
			ID:       "stress",
			Question: "How would you rate your stress level?",
			Options: []AnswerOption{
				{Value: "none", Label: "No Stress", Score: 0},
				{Value: "low", Label: "Low", Score: 1},
				{Value: "moderate", Label: "Moderate", Score: 2},
				{Value: "high", Label: "High", Score: 3},
				{Value: "extreme", Label: "Extreme", Score: 4},
			},
		},
		{
			ID:       "support",
			Question: "Do you feel you have adequate social support?",
			Options: []AnswerOption{
				{Value: "excellent", Label: "Excellent Support", Score: 0},
				{Value: "good", Label: "Good Support", Score: 1},
				{Value: "some", Label: "Some Support", Score: 2},
				{Value: "little", Label: "Little Support", Score: 3},
				{Value: "none", Label: "No Support", Score: 4},
			},
		},
	}
}
