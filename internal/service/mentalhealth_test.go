package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

// answersWithScore builds a complete answer set where every question gets
// the option at the given index (index equals score).
func answersWithScore(s *MentalHealthScreener, index int) map[string]string {
	answers := make(map[string]string)
	for _, q := range s.Questions() {
		answers[q.ID] = q.Options[index].Value
	}
	return answers
}

func TestScreenRejectsIncompleteAnswers(t *testing.T) {
	screener := NewMentalHealthScreener(testLogger())

	_, err := screener.Screen(map[string]string{"mood": "good"})
	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)
}

func TestScreenRejectsUnknownAnswerValue(t *testing.T) {
	screener := NewMentalHealthScreener(testLogger())

	answers := answersWithScore(screener, 0)
	answers["mood"] = "fantastic"
	_, err := screener.Screen(answers)
	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)
}

func TestScreenRoundsPercentage(t *testing.T) {
	screener := NewMentalHealthScreener(testLogger())

	// Scores 4+4+4+3 on a zero baseline: 15 of 32 is 46.875%, which
	// rounds up to 47 rather than truncating to 46.
	answers := answersWithScore(screener, 0)
	answers["mood"] = "very-poor"
	answers["sleep"] = "insomnia"
	answers["energy"] = "exhausted"
	answers["anxiety"] = "often"

	result, err := screener.Screen(answers)
	require.NoError(t, err)
	assert.Equal(t, 47, result.Score)
	assert.Equal(t, domain.WellbeingMild, result.Level)
}

func TestScreenBands(t *testing.T) {
	screener := NewMentalHealthScreener(testLogger())

	tests := []struct {
		name      string
		index     int
		wantScore int
		wantLevel domain.WellbeingLevel
	}{
		{"all best answers", 0, 0, domain.WellbeingLow},
		{"all score one", 1, 25, domain.WellbeingMild},
		{"all score two", 2, 50, domain.WellbeingModerate},
		{"all score three", 3, 75, domain.WellbeingSevere},
		{"all worst answers", 4, 100, domain.WellbeingSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := screener.Screen(answersWithScore(screener, tt.index))
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantLevel, result.Level)
			assert.NotEmpty(t, result.Description)
			assert.NotEmpty(t, result.Recommendations)
			assert.NotEmpty(t, result.Exercises)
		})
	}
}

func TestQuestionnaireShape(t *testing.T) {
	screener := NewMentalHealthScreener(testLogger())

	questions := screener.Questions()
	require.Len(t, questions, 8)
	for _, q := range questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Question)
		require.Len(t, q.Options, 5, "question %s", q.ID)
		for i, opt := range q.Options {
			assert.Equal(t, i, opt.Score, "question %s option %s", q.ID, opt.Value)
		}
	}
}
