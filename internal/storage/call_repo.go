package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_call_store.go -package=mocks openrouter-chat/internal/storage CallStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// CallStore defines the interface for call audit storage.
type CallStore interface {
	// Insert stores one call record. A missing ID is filled in.
	Insert(ctx context.Context, rec *CallRecord) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]CallRecord, error)
}

// CallRepo provides methods for call record operations.
// It implements the CallStore interface.
type CallRepo struct {
	db *sql.DB
}

// NewCallRepo creates a new CallRepo.
func NewCallRepo(db *sql.DB) *CallRepo {
	return &CallRepo{db: db}
}

// Insert stores one call record.
func (r *CallRepo) Insert(ctx context.Context, rec *CallRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO call_records (id, model, status, duration_ms, error, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Model, rec.Status, rec.Duration.Milliseconds(), rec.Error,
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert call record: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *CallRepo) ListRecent(ctx context.Context, limit int) ([]CallRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, model, status, duration_ms, error, created_at FROM call_records ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query call records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []CallRecord
	for rows.Next() {
		var rec CallRecord
		var durationMs int64
		var errText sql.NullString
		var createdAtStr string

		if err := rows.Scan(&rec.ID, &rec.Model, &rec.Status, &durationMs, &errText, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan call record: %w", err)
		}

		rec.Duration = time.Duration(durationMs) * time.Millisecond
		if errText.Valid {
			rec.Error = errText.String
		}

		rec.CreatedAt, err = time.Parse("2006-01-02 15:04:05", createdAtStr)
		if err != nil {
			// SQLite may return the default timestamp in RFC3339
			rec.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
			}
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate call records: %w", err)
	}

	return records, nil
}
