package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/healthassist-server/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite history store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		user_id TEXT DEFAULT '',
		kind TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_user ON assessments(user_id);
	CREATE INDEX IF NOT EXISTS idx_assessments_kind ON assessments(kind);
	CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecord scans a row into an AssessmentRecord.
func scanRecord(s scanner) (*domain.AssessmentRecord, error) {
	rec := &domain.AssessmentRecord{}
	var payload string

	err := s.Scan(&rec.ID, &rec.UserID, &rec.Kind, &payload, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// SaveAssessment persists one assessment record.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, rec *domain.AssessmentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, user_id, kind, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.Kind, string(rec.Payload), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, kind, payload, created_at
		FROM assessments
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return rec, nil
}

// ListByUser returns a user's records newest first with pagination.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID, kind string, limit, offset int) ([]*domain.AssessmentRecord, error) {
	query := `
		SELECT id, user_id, kind, payload, created_at
		FROM assessments
		WHERE user_id = ?
	`
	args := []interface{}{userID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*domain.AssessmentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Count returns the total number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count)
	return count, err
}

// Delete removes a record by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM assessments WHERE id = ?", id)
	return err
}

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000

// ExportJSON writes all of a user's records to a JSON writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, userID string, writer io.Writer) error {
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
