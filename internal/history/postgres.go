package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"

	"github.com/healthassist-server/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL history store.
// It expects the schema to already exist (created via migrations).
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL creates a new PostgreSQL history store from a
// connection URL.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// SaveAssessment persists one assessment record.
func (s *PostgresStore) SaveAssessment(ctx context.Context, rec *domain.AssessmentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, user_id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.UserID, rec.Kind, string(rec.Payload), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.AssessmentRecord, error) {
	rec := &domain.AssessmentRecord{}
	var payload string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, kind, payload, created_at
		FROM assessments
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.UserID, &rec.Kind, &payload, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// ListByUser returns a user's records newest first with pagination.
func (s *PostgresStore) ListByUser(ctx context.Context, userID, kind string, limit, offset int) ([]*domain.AssessmentRecord, error) {
	query := `
		SELECT id, user_id, kind, payload, created_at
		FROM assessments
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if kind != "" {
		query += " AND kind = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4"
		args = append(args, kind, limit, offset)
	} else {
		query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var result []*domain.AssessmentRecord
	for rows.Next() {
		rec := &domain.AssessmentRecord{}
		var payload string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec.Payload = json.RawMessage(payload)
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Count returns the total number of stored records.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count)
	return count, err
}

// Delete removes a record by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM assessments WHERE id = $1", id)
	return err
}

// ExportJSON writes all of a user's records to a JSON writer.
func (s *PostgresStore) ExportJSON(ctx context.Context, userID string, writer io.Writer) error {
	all, err := s.ListByUser(ctx, userID, "", maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	export := &Export{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Count:      len(all),
		Records:    all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
