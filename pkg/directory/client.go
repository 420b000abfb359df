// Package directory provides lookup of nearby healthcare facilities. It
// queries an external provider when one is configured and falls back to a
// built-in facility list when the provider is unavailable or unset.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/healthassist-server/internal/domain"
)

// Facility is one healthcare facility near a searched location.
type Facility struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"` // hospital, clinic, emergency
	Address     string   `json:"address"`
	Distance    string   `json:"distance"`
	Phone       string   `json:"phone"`
	Emergency   string   `json:"emergency"`
	Rating      float64  `json:"rating"`
	Specialties []string `json:"specialties"`
	Open24x7    bool     `json:"open_24x7"`
	Ambulance   bool     `json:"ambulance"`
}

// Client queries the facility directory provider with rate limiting and a
// circuit breaker guarding against a flapping upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewClient creates a directory client. An empty base URL means the client
// always serves the built-in fallback list.
func NewClient(config *domain.DirectoryConfig, logger *logrus.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "facility-directory",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	rps := config.RateLimit
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Search returns facilities near the given location. Provider failures are
// logged and answered with the fallback list so the endpoint never errors
// on upstream trouble.
func (c *Client) Search(ctx context.Context, location string) ([]Facility, error) {
	if c.baseURL == "" {
		return fallbackFacilities(), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.query(ctx, location)
	})
	if err != nil {
		c.logger.WithError(err).WithField("location", location).
			Warn("Directory provider unavailable, serving fallback list")
		return fallbackFacilities(), nil
	}

	return result.([]Facility), nil
}

func (c *Client) query(ctx context.Context, location string) ([]Facility, error) {
	endpoint := fmt.Sprintf("%s/facilities?location=%s",
		strings.TrimRight(c.baseURL, "/"), url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var facilities []Facility
	if err := json.NewDecoder(resp.Body).Decode(&facilities); err != nil {
		return nil, fmt.Errorf("decoding directory response: %w", err)
	}

	return facilities, nil
}

// fallbackFacilities is the built-in list served when no provider is
// reachable.
func fallbackFacilities() []Facility {
	return []Facility{
		{
			ID:          1,
			Name:        "Apollo Hospitals",
			Type:        "hospital",
			Address:     "123 Medical Street, Pune",
			Distance:    "2.5 km",
			Phone:       "+91 20 1234 5678",
			Emergency:   "108",
			Rating:      4.8,
			Specialties: []string{"Cardiology", "Neurology", "Emergency"},
			Open24x7:    true,
			Ambulance:   true,
		},
		{
			ID:          2,
			Name:        "City Emergency Clinic",
			Type:        "emergency",
			Address:     "456 Health Avenue, Pune",
			Distance:    "1.8 km",
			Phone:       "+91 20 2345 6789",
			Emergency:   "108",
			Rating:      4.5,
			Specialties: []string{"Emergency", "Trauma"},
			Open24x7:    true,
			Ambulance:   true,
		},
		{
			ID:          3,
			Name:        "Fortis Healthcare",
			Type:        "hospital",
			Address:     "789 Wellness Road, Pune",
			Distance:    "4.2 km",
			Phone:       "+91 20 3456 7890",
			Emergency:   "108",
			Rating:      4.7,
			Specialties: []string{"Orthopedics", "Surgery", "Emergency"},
			Open24x7:    true,
			Ambulance:   true,
		},
		{
			ID:          4,
			Name:        "Local Health Clinic",
			Type:        "clinic",
			Address:     "321 Community Center, Pune",
			Distance:    "0.5 km",
			Phone:       "+91 20 4567 8901",
			Emergency:   "N/A",
			Rating:      4.2,
			Specialties: []string{"General Medicine", "Pediatrics"},
			Open24x7:    false,
			Ambulance:   false,
		},
	}
}
