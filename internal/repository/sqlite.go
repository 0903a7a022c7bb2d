package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"feedback-portal/internal/models"

	_ "modernc.org/sqlite"
)

const createFeedbackTable = `CREATE TABLE IF NOT EXISTS feedback (
	id              TEXT PRIMARY KEY,
	customer_name   TEXT NOT NULL,
	customer_email  TEXT NOT NULL,
	category        TEXT NOT NULL,
	rating          INTEGER NOT NULL,
	comment         TEXT NOT NULL,
	additional_data TEXT NOT NULL DEFAULT '{}',
	timestamp       TEXT NOT NULL,
	sentiment_score REAL
);
CREATE INDEX IF NOT EXISTS idx_feedback_category ON feedback(category);`

const feedbackColumns = `id, customer_name, customer_email, category, rating, comment, additional_data, timestamp, sentiment_score`

// SQLiteFeedbackRepo stores feedback in a single local SQLite file.
type SQLiteFeedbackRepo struct {
	db        *sql.DB
	opTimeout time.Duration
}

// OpenSQLite opens (or creates) the database at path. Pass ":memory:" for an
// in-memory database.
func OpenSQLite(path string, opTimeout time.Duration) (*SQLiteFeedbackRepo, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(createFeedbackTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating feedback table: %w", err)
	}

	return &SQLiteFeedbackRepo{db: db, opTimeout: opTimeout}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteFeedbackRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteFeedbackRepo) Insert(ctx context.Context, feedback *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (`+feedbackColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		feedback.ID, feedback.CustomerName, feedback.CustomerEmail, string(feedback.Category),
		feedback.Rating, feedback.Comment, string(feedback.AdditionalData.Bytes()),
		feedback.Timestamp.UTC().Format(time.RFC3339Nano), feedback.SentimentScore,
	)
	if err != nil {
		return fmt.Errorf("inserting feedback %s: %w", feedback.ID, err)
	}
	return nil
}

func (r *SQLiteFeedbackRepo) FindAll(ctx context.Context, limit int) ([]models.Feedback, error) {
	return r.query(ctx, `SELECT `+feedbackColumns+` FROM feedback ORDER BY rowid LIMIT ?`, limit)
}

func (r *SQLiteFeedbackRepo) FindByCategory(ctx context.Context, category models.Category, limit int) ([]models.Feedback, error) {
	return r.query(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE category = ? ORDER BY rowid LIMIT ?`, string(category), limit)
}

func (r *SQLiteFeedbackRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting feedback %s: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *SQLiteFeedbackRepo) query(ctx context.Context, query string, args ...any) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	out := make([]models.Feedback, 0)
	for rows.Next() {
		var (
			f         models.Feedback
			category  string
			extra     string
			timestamp string
			sentiment sql.NullFloat64
		)
		if err := rows.Scan(&f.ID, &f.CustomerName, &f.CustomerEmail, &category, &f.Rating,
			&f.Comment, &extra, &timestamp, &sentiment); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		f.Category = models.Category(category)
		f.AdditionalData = models.AdditionalData(extra)
		if f.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", f.ID, err)
		}
		if sentiment.Valid {
			score := sentiment.Float64
			f.SentimentScore = &score
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
