package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"energyadvice/internal/survey/models"
	"energyadvice/pkg/platform/sentinel"
)

// Schema creates the table PostgresStore writes to.
const Schema = `
CREATE TABLE IF NOT EXISTS answer_records (
	reference  TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore persists records as JSONB documents keyed by reference.
type PostgresStore struct {
	db   *sql.DB
	opts options
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB, opts ...Option) *PostgresStore {
	return &PostgresStore{db: db, opts: buildOptions(opts)}
}

// EnsureSchema creates the answer_records table when it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure survey schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) GenerateReference(ctx context.Context) (string, error) {
	return issue(ctx, s.opts.newReference, func(ctx context.Context, reference string) (bool, error) {
		record := models.NewAnswerRecord(reference, s.opts.clock())
		data, err := json.Marshal(record)
		if err != nil {
			return false, fmt.Errorf("marshal survey: %w", err)
		}
		query := `
			INSERT INTO answer_records (reference, data, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (reference) DO NOTHING
		`
		res, err := s.db.ExecContext(ctx, query, reference, data, record.CreatedAt, record.UpdatedAt)
		if err != nil {
			return false, fmt.Errorf("create survey: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("create survey: %w", err)
		}
		return n == 1, nil
	})
}

func (s *PostgresStore) IsReferenceValid(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM answer_records WHERE reference = $1)`, reference).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check survey reference: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Load(ctx context.Context, reference string) (*models.AnswerRecord, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM answer_records WHERE reference = $1`, reference).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load survey: %w", err)
	}
	var record models.AnswerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode survey: %w", err)
	}
	return &record, nil
}

func (s *PostgresStore) Save(ctx context.Context, record *models.AnswerRecord) error {
	if record == nil {
		return sentinel.ErrNotFound
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal survey: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE answer_records SET data = $2, updated_at = $3 WHERE reference = $1`,
		record.Reference, data, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save survey: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save survey: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
