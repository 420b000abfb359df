// Package history provides persistent storage of assessment outcomes so
// users can review past results. Two backends are available: an embedded
// SQLite database for single-node deployments and PostgreSQL for shared
// ones.
package history

import (
	"context"
	"io"
	"time"

	"github.com/healthassist-server/internal/domain"
)

// Store defines the interface for assessment history storage.
type Store interface {
	// SaveAssessment persists one assessment record.
	SaveAssessment(ctx context.Context, rec *domain.AssessmentRecord) error

	// Get retrieves a record by ID. Missing records return domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.AssessmentRecord, error)

	// ListByUser returns a user's records newest first with pagination.
	// An empty kind matches all record kinds.
	ListByUser(ctx context.Context, userID, kind string, limit, offset int) ([]*domain.AssessmentRecord, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// ExportJSON writes all of a user's records to a JSON writer.
	ExportJSON(ctx context.Context, userID string, writer io.Writer) error

	// Close closes the store and releases resources.
	Close() error
}

// Export is the JSON export format.
type Export struct {
	Version    string                     `json:"version"`
	ExportedAt time.Time                  `json:"exported_at"`
	Count      int                        `json:"count"`
	Records    []*domain.AssessmentRecord `json:"records"`
}
