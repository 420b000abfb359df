package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// Assessment record kinds.
const (
	KindRisk     = "risk"
	KindSymptoms = "symptoms"
	KindSafety   = "safety"
	KindLab      = "lab"
	KindMental   = "mental"
)

const riskMemoSize = 512

// ResultCache is an optional shared cache for assessment results. A miss is
// reported with domain.ErrNotFound.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// AssessmentRecorder persists assessment outcomes for later retrieval.
type AssessmentRecorder interface {
	SaveAssessment(ctx context.Context, rec *domain.AssessmentRecord) error
}

// HealthAssessor orchestrates all scoring engines behind a single service
// surface. Scoring itself is pure and deterministic; memoization, shared
// caching and history recording are layered on top and never change a
// result.
type HealthAssessor struct {
	logger     *logrus.Logger
	riskEngine *RiskRuleEngine
	symptoms   *SymptomAnalyzer
	safety     *MedicineSafetyChecker
	labs       *LabReportParser
	mental     *MentalHealthScreener
	treatment  *TreatmentPlanner

	riskMemo *expirable.LRU[string, []domain.RiskPrediction]
	cache    ResultCache
	recorder AssessmentRecorder
}

// AssessorOption configures optional collaborators.
type AssessorOption func(*HealthAssessor)

// WithResultCache attaches a shared result cache.
func WithResultCache(cache ResultCache) AssessorOption {
	return func(a *HealthAssessor) { a.cache = cache }
}

// WithRecorder attaches an assessment history recorder.
func WithRecorder(recorder AssessmentRecorder) AssessorOption {
	return func(a *HealthAssessor) { a.recorder = recorder }
}

// NewHealthAssessor creates the assessor with all engines initialized.
func NewHealthAssessor(logger *logrus.Logger, opts ...AssessorOption) *HealthAssessor {
	a := &HealthAssessor{
		logger:     logger,
		riskEngine: NewRiskRuleEngine(logger),
		symptoms:   NewSymptomAnalyzer(logger),
		safety:     NewMedicineSafetyChecker(logger),
		labs:       NewLabReportParser(logger),
		mental:     NewMentalHealthScreener(logger),
		treatment:  NewTreatmentPlanner(logger),
		riskMemo:   expirable.NewLRU[string, []domain.RiskPrediction](riskMemoSize, nil, time.Hour),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssessRiskParams carries the inputs for a disease-risk assessment.
type AssessRiskParams struct {
	UserID string         `json:"user_id,omitempty"`
	Data   *RawHealthData `json:"data"`
}

// AssessRiskResult is the complete disease-risk assessment outcome.
type AssessRiskResult struct {
	Indicators     *domain.Indicators      `json:"indicators"`
	Predictions    []domain.RiskPrediction `json:"predictions"`
	ProcessingTime time.Duration           `json:"processing_time"`
}

// AssessRisk normalizes the submitted health data and scores every disease
// category. At least one field of the raw data must be set.
func (a *HealthAssessor) AssessRisk(ctx context.Context, params *AssessRiskParams) (*AssessRiskResult, error) {
	startTime := time.Now()

	if params == nil || params.Data == nil {
		return nil, domain.ErrNoIndicators
	}

	indicators := NormalizeIndicators(params.Data)
	key := indicatorKey(indicators)

	predictions, memoized := a.riskMemo.Get(key)
	if !memoized {
		if cached, ok := a.cacheLookup(ctx, key); ok {
			predictions = cached
		} else {
			predictions = a.riskEngine.EvaluateAll(indicators)
			a.cacheStore(ctx, key, predictions)
		}
		a.riskMemo.Add(key, predictions)
	}

	result := &AssessRiskResult{
		Indicators:     indicators,
		Predictions:    predictions,
		ProcessingTime: time.Since(startTime),
	}

	a.record(ctx, params.UserID, KindRisk, result.Predictions)

	a.logger.WithFields(logrus.Fields{
		"categories":      len(predictions),
		"memoized":        memoized,
		"processing_time": result.ProcessingTime,
	}).Info("Completed disease risk assessment")

	return result, nil
}

// AnalyzeSymptomsParams carries the inputs for a symptom triage.
type AnalyzeSymptomsParams struct {
	UserID          string            `json:"user_id,omitempty"`
	Symptoms        string            `json:"symptoms"`
	FollowUpAnswers map[string]string `json:"follow_up_answers,omitempty"`
	PainLevel       int               `json:"pain_level,omitempty"`
}

// AnalyzeSymptoms triages a free-text symptom description.
func (a *HealthAssessor) AnalyzeSymptoms(ctx context.Context, params *AnalyzeSymptomsParams) (*domain.SymptomAnalysis, error) {
	analysis, err := a.symptoms.Analyze(params.Symptoms, params.FollowUpAnswers, params.PainLevel)
	if err != nil {
		return nil, err
	}
	a.record(ctx, params.UserID, KindSymptoms, analysis)
	return analysis, nil
}

// CheckSafetyParams carries the inputs for a medicine safety check.
type CheckSafetyParams struct {
	UserID      string   `json:"user_id,omitempty"`
	Medications []string `json:"medications"`
	Dosage      string   `json:"dosage,omitempty"`
	Frequency   string   `json:"frequency,omitempty"`
}

// CheckMedicineSafety runs interaction, overdose, dosage and frequency
// checks over a medication list.
func (a *HealthAssessor) CheckMedicineSafety(ctx context.Context, params *CheckSafetyParams) (*domain.SafetyCheck, error) {
	check, err := a.safety.Check(params.Medications, params.Dosage, params.Frequency)
	if err != nil {
		return nil, err
	}
	a.record(ctx, params.UserID, KindSafety, check)
	return check, nil
}

// ParseLabReportParams carries the inputs for lab report parsing.
type ParseLabReportParams struct {
	UserID     string `json:"user_id,omitempty"`
	ReportText string `json:"report_text"`
}

// ParseLabReport extracts and classifies recognized test values from
// unstructured report text.
func (a *HealthAssessor) ParseLabReport(ctx context.Context, params *ParseLabReportParams) (*domain.ParsedReport, error) {
	report, err := a.labs.Parse(params.ReportText)
	if err != nil {
		return nil, err
	}
	a.record(ctx, params.UserID, KindLab, report)
	return report, nil
}

// ScreenMentalHealthParams carries a fully answered questionnaire.
type ScreenMentalHealthParams struct {
	UserID  string            `json:"user_id,omitempty"`
	Answers map[string]string `json:"answers"`
}

// ScreenMentalHealth scores the wellbeing questionnaire.
func (a *HealthAssessor) ScreenMentalHealth(ctx context.Context, params *ScreenMentalHealthParams) (*domain.MentalHealthResult, error) {
	result, err := a.mental.Screen(params.Answers)
	if err != nil {
		return nil, err
	}
	a.record(ctx, params.UserID, KindMental, result)
	return result, nil
}

// ScreeningQuestions returns the wellbeing questionnaire.
func (a *HealthAssessor) ScreeningQuestions() []ScreeningQuestion {
	return a.mental.Questions()
}

// TreatmentPlan returns the plan for a condition name.
func (a *HealthAssessor) TreatmentPlan(condition string) (*domain.TreatmentPlan, error) {
	return a.treatment.Plan(condition)
}

// TreatmentConditions lists the catalogued condition names.
func (a *HealthAssessor) TreatmentConditions() []string {
	return a.treatment.Conditions()
}

// indicatorKey derives a stable cache key from a normalized indicator set.
func indicatorKey(ind *domain.Indicators) string {
	data, _ := json.Marshal(ind)
	sum := sha256.Sum256(data)
	return "risk:" + hex.EncodeToString(sum[:])
}

func (a *HealthAssessor) cacheLookup(ctx context.Context, key string) ([]domain.RiskPrediction, bool) {
	if a.cache == nil {
		return nil, false
	}
	data, err := a.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrNotFound {
			a.logger.WithError(err).Warn("Result cache lookup failed")
		}
		return nil, false
	}
	var predictions []domain.RiskPrediction
	if err := json.Unmarshal(data, &predictions); err != nil {
		a.logger.WithError(err).Warn("Discarding malformed cached result")
		return nil, false
	}
	return predictions, true
}

func (a *HealthAssessor) cacheStore(ctx context.Context, key string, predictions []domain.RiskPrediction) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(predictions)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data); err != nil {
		a.logger.WithError(err).Warn("Result cache store failed")
	}
}

// record persists an assessment outcome when a recorder is attached.
// Recording failures are logged and never fail the assessment.
func (a *HealthAssessor) record(ctx context.Context, userID, kind string, payload any) {
	if a.recorder == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		a.logger.WithError(err).WithField("kind", kind).Warn("Failed to serialize assessment for history")
		return
	}
	rec := &domain.AssessmentRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.recorder.SaveAssessment(ctx, rec); err != nil {
		a.logger.WithError(err).WithField("kind", kind).Warn("Failed to record assessment history")
	}
}
