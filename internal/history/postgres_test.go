package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthassist-server/internal/domain"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.MonitorPingsOption(true),
	)
	require.NoError(t, err)
	mock.ExpectPing()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store, mock
}

func TestPostgresSaveAssessment(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO assessments").
		WithArgs("rec-1", "user-1", "risk", `{"score":42}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &domain.AssessmentRecord{
		ID:      "rec-1",
		UserID:  "user-1",
		Kind:    "risk",
		Payload: json.RawMessage(`{"score":42}`),
	}
	err := store.SaveAssessment(context.Background(), rec)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	store, mock := newMockStore(t)

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "kind", "payload", "created_at"}).
		AddRow("rec-1", "user-1", "lab", `{"summary":"ok"}`, created)

	mock.ExpectQuery("SELECT id, user_id, kind, payload, created_at").
		WithArgs("rec-1").
		WillReturnRows(rows)

	rec, err := store.Get(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "lab", rec.Kind)
	assert.JSONEq(t, `{"summary":"ok"}`, string(rec.Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, kind, payload, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "payload", "created_at"}))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresListByUser(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "kind", "payload", "created_at"}).
		AddRow("rec-2", "user-1", "risk", `{}`, time.Now()).
		AddRow("rec-1", "user-1", "risk", `{}`, time.Now().Add(-time.Hour))

	mock.ExpectQuery("SELECT id, user_id, kind, payload, created_at").
		WithArgs("user-1", "risk", 10, 0).
		WillReturnRows(rows)

	records, err := store.ListByUser(context.Background(), "user-1", "risk", 10, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "rec-2", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCountAndDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	mock.ExpectExec("DELETE FROM assessments").
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Delete(context.Background(), "rec-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
