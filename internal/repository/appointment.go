package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/healthassist-server/internal/domain"
)

// AppointmentRepository handles appointment persistence
type AppointmentRepository struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *pgxpool.Pool, logger *logrus.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		db:  db,
		log: logger,
	}
}

// Create inserts a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	if err := appt.Validate(); err != nil {
		return err
	}

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.Status == "" {
		appt.Status = domain.AppointmentPending
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	query := `
		INSERT INTO appointments (
			id, user_id, doctor_id, doctor_name, specialty,
			date, time, reason, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		appt.ID,
		appt.UserID,
		appt.DoctorID,
		appt.DoctorName,
		appt.Specialty,
		appt.Date,
		appt.Time,
		appt.Reason,
		string(appt.Status),
		appt.CreatedAt,
		appt.UpdatedAt,
	)

	if err != nil {
		r.log.WithFields(logrus.Fields{
			"user_id": appt.UserID,
			"error":   err,
		}).Error("Failed to create appointment")
		return fmt.Errorf("creating appointment: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"appointment_id": appt.ID,
		"user_id":        appt.UserID,
	}).Info("Appointment created successfully")

	return nil
}

// GetByID retrieves an appointment by ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `
		SELECT id, user_id, doctor_id, doctor_name, specialty,
			   date, time, reason, status, created_at, updated_at
		FROM appointments
		WHERE id = $1`

	appt, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("appointment not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting appointment: %w", err)
	}
	return appt, nil
}

// ListByUser returns a user's appointments newest first
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	query := `
		SELECT id, user_id, doctor_id, doctor_name, specialty,
			   date, time, reason, status, created_at, updated_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	var result []*domain.Appointment
	for rows.Next() {
		appt, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		result = append(result, appt)
	}
	return result, rows.Err()
}

// UpdateStatus changes an appointment's status. Only the owning user may
// update it.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, userID string, status domain.AppointmentStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", "unknown status", string(status))
	}

	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4`

	tag, err := r.db.Exec(ctx, query, string(status), time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("updating appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an appointment owned by the given user
func (r *AppointmentRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM appointments WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AppointmentRepository) scanOne(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var status string

	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.DoctorID,
		&appt.DoctorName,
		&appt.Specialty,
		&appt.Date,
		&appt.Time,
		&appt.Reason,
		&status,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Status = domain.AppointmentStatus(status)
	return &appt, nil
}
