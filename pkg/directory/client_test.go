package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestClient(baseURL string) *Client {
	return NewClient(&domain.DirectoryConfig{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		RateLimit: 100,
	}, testLogger())
}

func TestSearchWithoutProviderServesFallback(t *testing.T) {
	client := newTestClient("")

	facilities, err := client.Search(context.Background(), "Pune")
	require.NoError(t, err)
	require.Len(t, facilities, 4)
	assert.Equal(t, "Apollo Hospitals", facilities[0].Name)
}

func TestSearchQueriesProvider(t *testing.T) {
	want := []Facility{
		{ID: 9, Name: "Test General", Type: "hospital", Rating: 4.0},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facilities", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("location"))
		json.NewEncoder(w).Encode(want)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	facilities, err := client.Search(context.Background(), "Mumbai")
	require.NoError(t, err)
	require.Len(t, facilities, 1)
	assert.Equal(t, "Test General", facilities[0].Name)
}

func TestSearchFallsBackOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	facilities, err := client.Search(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Len(t, facilities, 4)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		facilities, err := client.Search(ctx, "Pune")
		require.NoError(t, err)
		assert.NotEmpty(t, facilities)
	}

	// After three consecutive failures the breaker stops hitting upstream.
	assert.Equal(t, 3, calls)
}
