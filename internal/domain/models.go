package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Indicators is the normalized, typed indicator set every rule table is
// evaluated against. Missing numeric fields carry the documented defaults so
// a classification can always be computed from partial input.
type Indicators struct {
	Age         float64 `json:"age"`
	SystolicBP  float64 `json:"systolic_bp"`
	Glucose     float64 `json:"glucose"`
	Cholesterol float64 `json:"cholesterol"`
	BMI         float64 `json:"bmi"`

	// Enumerated lifestyle answers, lower-cased ("yes", "none", "daily", ...).
	Gender   string `json:"gender,omitempty"`
	Smoking  string `json:"smoking,omitempty"`
	Alcohol  string `json:"alcohol,omitempty"`
	Exercise string `json:"exercise,omitempty"`

	// Free text, lower-cased and trimmed, searched by keyword only.
	FamilyHistory string `json:"family_history,omitempty"`
}

// HistoryMentions reports whether the family-history text mentions the
// given keyword. Matching is case-insensitive substring containment.
func (in *Indicators) HistoryMentions(keyword string) bool {
	return strings.Contains(in.FamilyHistory, strings.ToLower(keyword))
}

// RiskPrediction is the per-category result of a disease-risk assessment.
// MatchedFactors preserves rule declaration order and is non-empty exactly
// when the raw score is positive.
type RiskPrediction struct {
	Category        RiskCategory `json:"category"`
	Score           int          `json:"score"`
	Band            RiskBand     `json:"band"`
	MatchedFactors  []string     `json:"factors"`
	Recommendations []string     `json:"recommendations"`
}

// Condition is a candidate explanation offered by the symptom analyzer.
type Condition struct {
	Name          string `json:"name"`
	Probability   int    `json:"probability"`
	Description   string `json:"description"`
	TimeToRecover string `json:"time_to_recover,omitempty"`
}

// FollowUpQuestion is generated from the symptom text so a client can ask
// for more detail before completing an analysis.
type FollowUpQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"` // text, select, slider, yesno
	Options  []string `json:"options,omitempty"`
}

// SymptomAnalysis is the full triage result for a free-text symptom report.
type SymptomAnalysis struct {
	Symptoms          string             `json:"symptoms"`
	Severity          SymptomSeverity    `json:"severity"`
	Flag              TriageFlag         `json:"flag"`
	Urgency           Urgency            `json:"urgency"`
	Confidence        int                `json:"confidence"`
	Conditions        []Condition        `json:"conditions"`
	Recommendations   []string           `json:"recommendations"`
	FollowUpQuestions []FollowUpQuestion `json:"follow_up_questions,omitempty"`
	FollowUpAnswers   map[string]string  `json:"follow_up_answers,omitempty"`
	PainLevel         int                `json:"pain_level,omitempty"`
}

// DrugInteraction is one flagged medication pair.
type DrugInteraction struct {
	DrugA          string              `json:"drug_a"`
	DrugB          string              `json:"drug_b"`
	Severity       InteractionSeverity `json:"severity"`
	Description    string              `json:"description"`
	Recommendation string              `json:"recommendation"`
}

// CheckResult is a pass/fail side check with a human-readable message.
type CheckResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// SafetyCheck is the aggregate medicine-safety result. Safe is true only
// when no interactions were found, overdose risk is none and both side
// checks passed.
type SafetyCheck struct {
	Safe           bool              `json:"safe"`
	Interactions   []DrugInteraction `json:"interactions"`
	OverdoseRisk   OverdoseRisk      `json:"overdose_risk"`
	DosageCheck    CheckResult       `json:"dosage_check"`
	FrequencyCheck CheckResult       `json:"frequency_check"`
	Warnings       []string          `json:"warnings"`
}

// LabResult is one recognized test extracted from a lab report.
type LabResult struct {
	Test        string    `json:"test"`
	Value       float64   `json:"value"`
	Unit        string    `json:"unit"`
	NormalRange string    `json:"normal_range"`
	Status      LabStatus `json:"status"`
	Explanation string    `json:"explanation"`
}

// ParsedReport is the full result of parsing unstructured lab report text.
type ParsedReport struct {
	Summary          string      `json:"summary"`
	CriticalFindings []string    `json:"critical_findings"`
	Results          []LabResult `json:"results"`
	Recommendations  []string    `json:"recommendations"`
	NextSteps        []string    `json:"next_steps"`
}

// Exercise is a suggested wellbeing exercise returned with a mental health
// screening result.
type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MentalHealthResult is the outcome of the eight-question wellbeing screen.
// Score is the answered total expressed as a 0-100 percentage.
type MentalHealthResult struct {
	Score           int            `json:"score"`
	Level           WellbeingLevel `json:"level"`
	Description     string         `json:"description"`
	Recommendations []string       `json:"recommendations"`
	Exercises       []Exercise     `json:"exercises"`
}

// Medication is one prescribed item inside a treatment plan.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// TreatmentPlan is the self-care plan generated for a known condition.
// Unknown conditions receive a generic fallback plan, never an error.
type TreatmentPlan struct {
	Condition   string       `json:"condition"`
	Duration    string       `json:"duration"`
	Diet        []string     `json:"diet"`
	Medications []Medication `json:"medications"`
	Hydration   string       `json:"hydration"`
	Rest        string       `json:"rest"`
	Activities  []string     `json:"activities"`
	Prevention  []string     `json:"prevention"`
	FollowUp    string       `json:"follow_up"`
}

// AssessmentRecord is one persisted assessment outcome. Payload holds the
// serialized result so history replay does not depend on current rule data.
type AssessmentRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	Kind      string          `json:"kind"` // risk, symptoms, safety, lab, mental
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Appointment is a booked consultation owned by a single user.
type Appointment struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	DoctorID   string            `json:"doctor_id"`
	DoctorName string            `json:"doctor_name,omitempty"`
	Specialty  string            `json:"specialty,omitempty"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Reason     string            `json:"reason,omitempty"`
	Status     AppointmentStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Validate ensures an appointment carries the required booking fields.
func (a *Appointment) Validate() error {
	if a.DoctorID == "" {
		return NewValidationError("doctor_id", "doctor is required", a.DoctorID)
	}
	if a.Date == "" {
		return NewValidationError("date", "date is required", a.Date)
	}
	if a.Time == "" {
		return NewValidationError("time", "time is required", a.Time)
	}
	if a.Status != "" && !a.Status.IsValid() {
		return NewValidationError("status", "unknown status", string(a.Status))
	}
	return nil
}
