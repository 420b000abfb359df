package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

func TestAnalyzeRejectsEmptySymptoms(t *testing.T) {
	analyzer := NewSymptomAnalyzer(testLogger())

	_, err := analyzer.Analyze("   ", nil, 0)
	assert.ErrorIs(t, err, domain.ErrEmptySymptoms)
}

func TestSeverityEscalation(t *testing.T) {
	analyzer := NewSymptomAnalyzer(testLogger())

	tests := []struct {
		name         string
		symptoms     string
		wantSeverity domain.SymptomSeverity
		wantFlag     domain.TriageFlag
		wantUrgency  domain.Urgency
	}{
		{
			name:         "chest pain is critical",
			symptoms:     "Sudden chest pain radiating to left arm",
			wantSeverity: domain.SeverityCritical,
			wantFlag:     domain.FlagRed,
			wantUrgency:  domain.UrgencyImmediate,
		},
		{
			name:         "shortness of breath is critical",
			symptoms:     "shortness of breath when climbing stairs",
			wantSeverity: domain.SeverityCritical,
			wantFlag:     domain.FlagRed,
			wantUrgency:  domain.UrgencyImmediate,
		},
		{
			name:         "high fever is high severity",
			symptoms:     "high fever since yesterday",
			wantSeverity: domain.SeverityHigh,
			wantFlag:     domain.FlagYellow,
			wantUrgency:  domain.UrgencySoon,
		},
		{
			name:         "persistent symptoms are high severity",
			symptoms:     "persistent cough and fatigue",
			wantSeverity: domain.SeverityHigh,
			wantFlag:     domain.FlagYellow,
			wantUrgency:  domain.UrgencySoon,
		},
		{
			name:         "moderate symptoms are medium",
			symptoms:     "moderate headache for a few days",
			wantSeverity: domain.SeverityMedium,
			wantFlag:     domain.FlagYellow,
			wantUrgency:  domain.UrgencyRoutine,
		},
		{
			name:         "mild symptoms are low",
			symptoms:     "slight runny nose",
			wantSeverity: domain.SeverityLow,
			wantFlag:     domain.FlagGreen,
			wantUrgency:  domain.UrgencyRoutine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := analyzer.Analyze(tt.symptoms, nil, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeverity, analysis.Severity)
			assert.Equal(t, tt.wantFlag, analysis.Flag)
			assert.Equal(t, tt.wantUrgency, analysis.Urgency)
			assert.NotEmpty(t, analysis.Recommendations)
			assert.NotEmpty(t, analysis.Conditions)
		})
	}
}

func TestCriticalKeywordWinsOverWeakerMatches(t *testing.T) {
	analyzer := NewSymptomAnalyzer(testLogger())

	analysis, err := analyzer.Analyze("moderate chest pain for a few days", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityCritical, analysis.Severity)
}

func TestFollowUpQuestionsForPainAndFever(t *testing.T) {
	analyzer := NewSymptomAnalyzer(testLogger())

	analysis, err := analyzer.Analyze("back pain and fever", nil, 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(analysis.FollowUpQuestions))
	for _, q := range analysis.FollowUpQuestions {
		ids = append(ids, q.ID)
	}
	assert.Contains(t, ids, "pain-level")
	assert.Contains(t, ids, "pain-duration")
	assert.Contains(t, ids, "fever-temp")
	assert.Contains(t, ids, "fever-duration")
	assert.Contains(t, ids, "allergies")
	assert.Contains(t, ids, "medications")
	assert.Contains(t, ids, "travel")
	assert.Contains(t, ids, "chronic-conditions")
}

func TestStandardQuestionsOnlyWithoutPainOrFever(t *testing.T) {
	analyzer := NewSymptomAnalyzer(testLogger())

	analysis, err := analyzer.Analyze("runny nose", nil, 0)
	require.NoError(t, err)
	assert.Len(t, analysis.FollowUpQuestions, 4)
}

func TestAnswersAndPainLevelCarriedThrough(t *testing.T) {
	analyzer := NewSymptomAnalyzer(testLogger())

	answers := map[string]string{"allergies": "none", "travel": "no"}
	analysis, err := analyzer.Analyze("back pain", answers, 7)
	require.NoError(t, err)

	assert.Equal(t, answers, analysis.FollowUpAnswers)
	assert.Equal(t, 7, analysis.PainLevel)
}
