package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthassist-server/internal/domain"
	"github.com/healthassist-server/internal/middleware"
	"github.com/healthassist-server/internal/service"
)

// respondError maps domain errors onto HTTP status codes and the standard
// error envelope.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := domain.ErrCodeInternal

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, domain.ErrEmptySymptoms),
		errors.Is(err, domain.ErrEmptyMedications),
		errors.Is(err, domain.ErrEmptyReport),
		errors.Is(err, domain.ErrIncompleteAnswers),
		errors.Is(err, domain.ErrEmptyCondition),
		errors.Is(err, domain.ErrNoIndicators):
		status, code = http.StatusBadRequest, domain.ErrCodeValidation
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, domain.ErrCodeNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		status, code = http.StatusConflict, domain.ErrCodeValidation
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, domain.ErrCodeAuthentication
	}

	correlationID := c.GetString("correlation_id")
	if status == http.StatusInternalServerError {
		s.deps.Logger.WithError(err).Error("Request failed")
		c.JSON(status, domain.NewAPIError(code, "internal server error", "", correlationID))
		return
	}
	c.JSON(status, domain.NewAPIError(code, err.Error(), "", correlationID))
}

// callerID returns the authenticated user ID, or the empty string for
// anonymous assessment requests.
func callerID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func (s *Server) handleAssessRisk(c *gin.Context) {
	var params service.AssessRiskParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if id := callerID(c); id != "" {
		params.UserID = id
	}

	result, err := s.deps.Assessor.AssessRisk(c.Request.Context(), &params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnalyzeSymptoms(c *gin.Context) {
	var params service.AnalyzeSymptomsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if id := callerID(c); id != "" {
		params.UserID = id
	}

	analysis, err := s.deps.Assessor.AnalyzeSymptoms(c.Request.Context(), &params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleCheckSafety(c *gin.Context) {
	var params service.CheckSafetyParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if id := callerID(c); id != "" {
		params.UserID = id
	}

	check, err := s.deps.Assessor.CheckMedicineSafety(c.Request.Context(), &params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (s *Server) handleParseLabReport(c *gin.Context) {
	var params service.ParseLabReportParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if id := callerID(c); id != "" {
		params.UserID = id
	}

	report, err := s.deps.Assessor.ParseLabReport(c.Request.Context(), &params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleScreenMentalHealth(c *gin.Context) {
	var params service.ScreenMentalHealthParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if id := callerID(c); id != "" {
		params.UserID = id
	}

	result, err := s.deps.Assessor.ScreenMentalHealth(c.Request.Context(), &params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleScreeningQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions": s.deps.Assessor.ScreeningQuestions(),
	})
}

func (s *Server) handleTreatmentConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"conditions": s.deps.Assessor.TreatmentConditions(),
	})
}

func (s *Server) handleTreatmentPlan(c *gin.Context) {
	plan, err := s.deps.Assessor.TreatmentPlan(c.Param("condition"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleHospitalSearch(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))

	facilities, err := s.deps.Directory.Search(c.Request.Context(), location)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"location":   location,
		"facilities": facilities,
	})
}

func (s *Server) handleListHistory(c *gin.Context) {
	userID := callerID(c)
	kind := c.Query("kind")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, err := s.deps.History.ListByUser(c.Request.Context(), userID, kind, limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"limit":   limit,
		"offset":  offset,
	})
}

func (s *Server) handleExportHistory(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="assessment-history.json"`)
	if err := s.deps.History.ExportJSON(c.Request.Context(), callerID(c), c.Writer); err != nil {
		s.deps.Logger.WithError(err).Error("History export failed")
	}
}

func (s *Server) handleDeleteHistory(c *gin.Context) {
	id := c.Param("id")

	// Ownership check before deleting.
	rec, err := s.deps.History.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if rec.UserID != callerID(c) {
		s.respondError(c, domain.ErrNotFound)
		return
	}

	if err := s.deps.History.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
