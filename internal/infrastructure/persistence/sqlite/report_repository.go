package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mailtriage/internal/domain/triage"
	_ "modernc.org/sqlite"
)

// ReportRepository archives finished runs. Nothing in the pipeline reads it
// back; every run re-examines the inbox from scratch.
type ReportRepository struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*ReportRepository, error) {
	trimmed := strings.TrimSpace(path)
	inMemory := trimmed == "" || trimmed == ":memory:" || strings.Contains(trimmed, "mode=memory")
	if trimmed == "" {
		trimmed = ":memory:"
	}

	db, err := sql.Open("sqlite", trimmed)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if !inMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	repo := &ReportRepository{db: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at INTEGER NOT NULL,
    finished_at INTEGER NOT NULL,
    processed INTEGER NOT NULL,
    error TEXT
);`,
		`CREATE TABLE IF NOT EXISTS results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    gmail_id TEXT NOT NULL,
    from_addr TEXT,
    subject TEXT,
    summary TEXT,
    category TEXT NOT NULL,
    token TEXT,
    explanation TEXT,
    action TEXT NOT NULL,
    success INTEGER NOT NULL,
    outcome TEXT,
    processed_at INTEGER NOT NULL,
    FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_results_gmail ON results(gmail_id);`,
	}

	for _, statement := range statements {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// SaveRun writes the run and its results in one transaction.
func (r *ReportRepository) SaveRun(ctx context.Context, run *triage.RunReport) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var runErr sql.NullString
	if run.Err != nil {
		runErr = sql.NullString{String: run.Err.Error(), Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, processed, error)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             finished_at = excluded.finished_at,
             processed = excluded.processed,
             error = excluded.error`,
		run.ID, unixMilli(run.StartedAt), unixMilli(run.FinishedAt), len(run.Results), runErr,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	for i, res := range run.Results {
		success := res.Succeeded()
		outcome := ""
		if res.Outcome != nil {
			outcome = res.Outcome.Message
			if !res.Outcome.Success {
				outcome = res.Outcome.Error
			}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO results
         (run_id, position, gmail_id, from_addr, subject, summary, category, token, explanation, action, success, outcome, processed_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, res.MessageID, res.From, res.Subject, res.Summary,
			string(res.Category), res.Token, res.Explanation, string(res.Action),
			success, outcome, unixMilli(res.ProcessedAt),
		)
		if err != nil {
			return fmt.Errorf("save result %s: %w", res.MessageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

func (r *ReportRepository) Close() error {
	return r.db.Close()
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
