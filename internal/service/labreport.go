package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// LabReportParser extracts recognized test values from unstructured report
// text and classifies each against fixed reference bands.
type LabReportParser struct {
	logger *logrus.Logger
	tests  []*labTest
}

// labTest describes one recognized test: the keywords that signal its
// presence, the value-extraction pattern, a default when no number is
// adjacent, and the classification function.
type labTest struct {
	Name        string
	Keywords    []string
	Pattern     *regexp.Regexp
	Default     float64
	Unit        string
	NormalRange string
	Classify    func(value float64) (domain.LabStatus, string)
	Critical    string
}

// NewLabReportParser creates a parser with the known test table loaded.
func NewLabReportParser(logger *logrus.Logger) *LabReportParser {
	return &LabReportParser{
		logger: logger,
		tests: []*labTest{
			{
				Name:        "Hemoglobin",
				Keywords:    []string{"hemoglobin", "hb"},
				Pattern:     regexp.MustCompile(`(?i)(?:hemoglobin|hb)[\s:]*(\d+\.?\d*)`),
				Default:     12,
				Unit:        "g/dL",
				NormalRange: "12-16 g/dL",
				Critical:    "Low Hemoglobin - Possible Anemia",
				Classify: func(v float64) (domain.LabStatus, string) {
					switch {
					case v < 10:
						return domain.LabCritical, "Your blood count is critically low. This may indicate anemia and requires immediate medical attention."
					case v < 12:
						return domain.LabLow, "Your blood count is slightly low. Consider iron-rich foods and consult your doctor."
					default:
						return domain.LabNormal, "Your hemoglobin level is within normal range."
					}
				},
			},
			{
				Name:        "Blood Glucose",
				Keywords:    []string{"glucose", "blood sugar"},
				Pattern:     regexp.MustCompile(`(?i)(?:glucose|blood sugar|bs)[\s:]*(\d+)`),
				Default:     100,
				Unit:        "mg/dL",
				NormalRange: "70-100 mg/dL (fasting)",
				Critical:    "High Blood Glucose - Possible Diabetes",
				Classify: func(v float64) (domain.LabStatus, string) {
					switch {
					case v > 200:
						return domain.LabCritical, "Your blood sugar is very high. This may indicate diabetes. Please consult a doctor immediately."
					case v > 140:
						return domain.LabHigh, "Your blood sugar is elevated. Monitor your diet and consider consulting a doctor."
					default:
						return domain.LabNormal, "Your blood glucose level is normal."
					}
				},
			},
			{
				Name:        "Total Cholesterol",
				Keywords:    []string{"cholesterol"},
				Pattern:     regexp.MustCompile(`(?i)cholesterol[\s:]*(\d+)`),
				Default:     200,
				Unit:        "mg/dL",
				NormalRange: "< 200 mg/dL",
				Classify: func(v float64) (domain.LabStatus, string) {
					if v > 240 {
						return domain.LabHigh, "Your cholesterol is high. Reduce intake of oily and fried foods. Exercise regularly."
					}
					return domain.LabNormal, "Your cholesterol level is within acceptable range."
				},
			},
			{
				Name:        "Creatinine",
				Keywords:    []string{"creatinine"},
				Pattern:     regexp.MustCompile(`(?i)creatinine[\s:]*(\d+\.?\d*)`),
				Default:     1.0,
				Unit:        "mg/dL",
				NormalRange: "0.6-1.2 mg/dL",
				Classify: func(v float64) (domain.LabStatus, string) {
					if v > 1.5 {
						return domain.LabHigh, "Elevated creatinine may indicate kidney function issues. Consult a nephrologist."
					}
					return domain.LabNormal, "Your kidney function appears normal."
				},
			},
		},
	}
}

// Parse extracts results for every recognized test name in the report text.
// A report mentioning no known tests yields an empty result list with a
// generic summary, not an error. Empty text is rejected.
func (p *LabReportParser) Parse(reportText string) (*domain.ParsedReport, error) {
	if strings.TrimSpace(reportText) == "" {
		return nil, domain.ErrEmptyReport
	}

	text := strings.ToLower(reportText)

	results := make([]domain.LabResult, 0, len(p.tests))
	criticalFindings := make([]string, 0)
	recommendations := make([]string, 0)
	nextSteps := make([]string, 0)

	for _, test := range p.tests {
		if !p.mentions(text, test.Keywords) {
			continue
		}

		value := test.Default
		if m := test.Pattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				value = v
			}
		}

		status, explanation := test.Classify(value)
		results = append(results, domain.LabResult{
			Test:        test.Name,
			Value:       value,
			Unit:        test.Unit,
			NormalRange: test.NormalRange,
			Status:      status,
			Explanation: explanation,
		})

		if status == domain.LabCritical && test.Critical != "" {
			criticalFindings = append(criticalFindings, test.Critical)
		}
		if test.Name == "Total Cholesterol" && status == domain.LabHigh {
			recommendations = append(recommendations, "Reduce saturated fats and increase fiber intake")
		}
	}

	switch {
	case hasStatus(results, domain.LabCritical):
		recommendations = append(recommendations, "Schedule an appointment with your doctor immediately")
		nextSteps = append(nextSteps, "Consult with a healthcare provider within 24-48 hours")
	case hasStatus(results, domain.LabHigh) || hasStatus(results, domain.LabLow):
		recommendations = append(recommendations, "Monitor these values and consider lifestyle changes")
		nextSteps = append(nextSteps, "Follow up with your doctor for further evaluation")
	default:
		recommendations = append(recommendations, "Continue maintaining a healthy lifestyle")
		nextSteps = append(nextSteps, "Schedule annual health checkup")
	}

	summary := "Report parsed. Review the results below."
	if len(results) > 0 {
		note := "Most values are within normal range."
		if len(criticalFindings) > 0 {
			note = "Critical findings detected."
		}
		summary = fmt.Sprintf("Parsed %d test results. %s", len(results), note)
	}

	p.logger.WithFields(logrus.Fields{
		"results":  len(results),
		"critical": len(criticalFindings),
	}).Debug("Parsed lab report")

	return &domain.ParsedReport{
		Summary:          summary,
		CriticalFindings: criticalFindings,
		Results:          results,
		Recommendations:  recommendations,
		NextSteps:        nextSteps,
	}, nil
}

func (p *LabReportParser) mentions(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func hasStatus(results []domain.LabResult, status domain.LabStatus) bool {
	for _, r := range results {
		if r.Status == status {
			return true
		}
	}
	return false
}
