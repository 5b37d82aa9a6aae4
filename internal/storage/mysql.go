package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"hbsmoke/internal/domain"
)

const createRunsTable = `CREATE TABLE IF NOT EXISTS smoke_runs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	base_url VARCHAR(512) NOT NULL,
	attempted INT NOT NULL,
	passed INT NOT NULL,
	success BOOLEAN NOT NULL,
	duration_ms BIGINT NOT NULL,
	started_at DATETIME NOT NULL
)`

const createChecksTable = `CREATE TABLE IF NOT EXISTS smoke_checks (
	run_id BIGINT NOT NULL,
	position INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	passed BOOLEAN NOT NULL,
	error TEXT,
	elapsed_ms BIGINT NOT NULL,
	PRIMARY KEY (run_id, position)
)`

// MySQLHistory records runs in a MySQL database
type MySQLHistory struct {
	db *sql.DB
}

// OpenMySQLHistory connects to dsn and makes sure the history tables exist
func OpenMySQLHistory(ctx context.Context, dsn string) (*MySQLHistory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	h := &MySQLHistory{db: db}
	if err := h.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *MySQLHistory) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{createRunsTable, createChecksTable} {
		if _, err := h.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create history tables: %w", err)
		}
	}
	return nil
}

// Record stores the run and its checks in one transaction and returns the run ID
func (h *MySQLHistory) Record(ctx context.Context, report *domain.SessionReport) (int64, error) {
	startedAt, err := time.Parse(time.RFC3339, report.Meta.Timestamp)
	if err != nil {
		startedAt = time.Now()
	}
	duration := time.Duration(report.Meta.DurationSeconds * float64(time.Second))

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO smoke_runs (base_url, attempted, passed, success, duration_ms, started_at) VALUES (?, ?, ?, ?, ?, ?)",
		report.Meta.BaseURL, report.Meta.Attempted, report.Meta.Passed, report.Meta.Success,
		duration.Milliseconds(), startedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read run id: %w", err)
	}

	for i, check := range report.Checks {
		var checkErr sql.NullString
		if check.Error != "" {
			checkErr = sql.NullString{String: check.Error, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO smoke_checks (run_id, position, name, passed, error, elapsed_ms) VALUES (?, ?, ?, ?, ?, ?)",
			runID, i, check.Name, check.Passed, checkErr, check.Elapsed.Milliseconds(),
		); err != nil {
			return 0, fmt.Errorf("insert check %s: %w", check.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit history tx: %w", err)
	}
	return runID, nil
}

// Recent returns the newest runs first
func (h *MySQLHistory) Recent(ctx context.Context, limit int) ([]domain.HistoryRun, error) {
	rows, err := h.db.QueryContext(ctx,
		"SELECT id, base_url, attempted, passed, success, duration_ms, started_at FROM smoke_runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var runs []domain.HistoryRun
	for rows.Next() {
		var (
			run        domain.HistoryRun
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.BaseURL, &run.Attempted, &run.Passed, &run.Success, &durationMS, &run.StartedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database handle
func (h *MySQLHistory) Close() error {
	return h.db.Close()
}

var _ History = (*MySQLHistory)(nil)
