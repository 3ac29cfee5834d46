package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/grievancesense/grievancesense/internal/domain"
)

// Connection pool settings for the postgres backend. SQLite is opened with
// a single connection since the file supports one writer.
const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = 5 * time.Minute
	defaultPingTimeout  = 5 * time.Second
)

const submissionsSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	complaint_text TEXT NOT NULL,
	category       TEXT NOT NULL,
	urgency        TEXT NOT NULL,
	credibility    INTEGER NOT NULL,
	area           TEXT NOT NULL,
	submitted_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_urgency ON submissions(urgency);
CREATE INDEX IF NOT EXISTS idx_submissions_area ON submissions(area);
`

const submissionsSchemaPostgres = `
CREATE TABLE IF NOT EXISTS submissions (
	id             SERIAL PRIMARY KEY,
	complaint_text TEXT NOT NULL,
	category       TEXT NOT NULL,
	urgency        TEXT NOT NULL,
	credibility    INTEGER NOT NULL,
	area           TEXT NOT NULL,
	submitted_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_urgency ON submissions(urgency);
CREATE INDEX IF NOT EXISTS idx_submissions_area ON submissions(area);
`

// SQLStore is a SubmissionStore backed by SQLite or PostgreSQL through sqlx.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (and if needed creates) a SQLite-backed store at path.
func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(submissionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create submissions schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// NewPostgresStore connects to PostgreSQL with the given DSN and ensures
// the submissions schema exists.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(submissionsSchemaPostgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("create submissions schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Append inserts one submission.
func (s *SQLStore) Append(ctx context.Context, annotation *domain.ComplaintAnnotation) error {
	query := s.db.Rebind(`
		INSERT INTO submissions (complaint_text, category, urgency, credibility, area, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		annotation.ComplaintText,
		annotation.Category,
		string(annotation.Urgency),
		annotation.Credibility,
		annotation.Area,
		annotation.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ReadAll returns every submission in insertion order. A schema missing
// required columns wraps domain.ErrInvalidStore.
func (s *SQLStore) ReadAll(ctx context.Context) ([]domain.ComplaintAnnotation, error) {
	submissions := []domain.ComplaintAnnotation{}
	query := `
		SELECT complaint_text, category, urgency, credibility, area, submitted_at
		FROM submissions
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &submissions, query); err != nil {
		return nil, fmt.Errorf("%w: read submissions: %w", domain.ErrInvalidStore, err)
	}
	return submissions, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
