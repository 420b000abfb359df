package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/auth"
	"github.com/healthassist-server/internal/chat"
	"github.com/healthassist-server/internal/domain"
	"github.com/healthassist-server/internal/history"
	"github.com/healthassist-server/internal/service"
	"github.com/healthassist-server/pkg/directory"
)

func newTestServer(t *testing.T) (*Server, *auth.TokenManager) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store, err := history.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := &domain.Config{
		Auth:    domain.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour},
		Logging: domain.LoggingConfig{Level: "info"},
	}
	tokens := auth.NewTokenManager(&cfg.Auth)

	srv := NewServer(Deps{
		Config:    cfg,
		Logger:    logger,
		Assessor:  service.NewHealthAssessor(logger, service.WithRecorder(store)),
		History:   store,
		Tokens:    tokens,
		Directory: directory.NewClient(&domain.DirectoryConfig{}, logger),
		Chat:      chat.NewResponder(logger),
	})
	return srv, tokens
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestAssessRisk(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess/risk", "", map[string]any{
		"data": map[string]any{
			"age":            55,
			"bmi":            28,
			"systolic_bp":    150,
			"glucose":        95,
			"cholesterol":    250,
			"smoking":        "yes",
			"exercise":       "none",
			"family_history": "heart disease",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.AssessRiskResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Predictions, 3)

	var heart *domain.RiskPrediction
	for i := range result.Predictions {
		if result.Predictions[i].Category == domain.CategoryHeartDisease {
			heart = &result.Predictions[i]
		}
	}
	require.NotNil(t, heart)
	assert.Equal(t, 100, heart.Score)
	assert.Equal(t, domain.RiskHigh, heart.Band)
}

func TestAssessRiskRejectsMissingData(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess/risk", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeSymptomsValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess/symptoms", "", map[string]any{
		"symptoms": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/assess/symptoms", "", map[string]any{
		"symptoms": "sudden chest pain",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"critical"`)
}

func TestCheckSafety(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess/safety", "", map[string]any{
		"medications": []string{"Aspirin", "Warfarin"},
		"dosage":      "100",
		"frequency":   "twice daily",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var check domain.SafetyCheck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.False(t, check.Safe)
	require.Len(t, check.Interactions, 1)
}

func TestTreatmentEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/treatments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Common Cold")

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/treatments/Fever", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var plan domain.TreatmentPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, "Fever", plan.Condition)
}

func TestHospitalSearchFallback(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/hospitals?location=delhi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Apollo Hospitals")
}

func TestHistoryRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/history", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHistoryRecordsAuthenticatedAssessments(t *testing.T) {
	srv, tokens := newTestServer(t)

	token, err := tokens.Issue(&domain.User{ID: "user-1", Email: "u@example.com"})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess/safety", token, map[string]any{
		"medications": []string{"Paracetamol"},
		"dosage":      "500",
		"frequency":   "twice daily",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Records []*domain.AssessmentRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Records, 1)
	assert.Equal(t, "user-1", listing.Records[0].UserID)
	assert.Equal(t, service.KindSafety, listing.Records[0].Kind)

	// Another user sees nothing.
	otherToken, err := tokens.Issue(&domain.User{ID: "user-2", Email: "o@example.com"})
	require.NoError(t, err)
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/history", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Empty(t, listing.Records)
}

func TestDeleteHistoryEnforcesOwnership(t *testing.T) {
	srv, tokens := newTestServer(t)

	ownerToken, err := tokens.Issue(&domain.User{ID: "owner", Email: "owner@example.com"})
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/assess/safety", ownerToken, map[string]any{
		"medications": []string{"Paracetamol"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/history", ownerToken, nil)
	var listing struct {
		Records []*domain.AssessmentRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Records, 1)
	id := listing.Records[0].ID

	intruderToken, err := tokens.Issue(&domain.User{ID: "intruder", Email: "i@example.com"})
	require.NoError(t, err)
	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/history/"+id, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/history/"+id, ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountRoutesWithoutPostgres(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChatWebsocket(t *testing.T) {
	srv, _ := newTestServer(t)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var greeting chat.Message
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, chat.RoleAssistant, greeting.Role)
	assert.Equal(t, chat.Greeting, greeting.Content)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("I have a headache")))

	var reply chat.Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Contains(t, reply.Content, "Headaches can have various causes")
}
