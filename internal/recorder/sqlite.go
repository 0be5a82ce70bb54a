package recorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const defaultListLimit = 20

// SQLiteRecorder persists runs and their cycles to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the API read while a CLI run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			created_at     INTEGER NOT NULL,
			source         TEXT,
			capacity_mwh   REAL,
			power_mw       REAL,
			efficiency     REAL,
			max_gap_hours  INTEGER,
			days_evaluated INTEGER,
			cycle_count    INTEGER,
			total_profit   REAL,
			average_profit REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS cycles (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id              TEXT NOT NULL REFERENCES runs(id),
			date                TEXT,
			month               TEXT,
			charge_start        INTEGER,
			discharge_start     INTEGER,
			charge_heuristic    TEXT,
			discharge_heuristic TEXT,
			avg_charge_price    REAL,
			avg_discharge_price REAL,
			gap_hours           REAL,
			profit              REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_run ON cycles(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(ctx context.Context, run RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	b := run.Battery
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, source, capacity_mwh, power_mw, efficiency, max_gap_hours,
		 days_evaluated, cycle_count, total_profit, average_profit)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.CreatedAt.UnixMilli(), run.Source,
		b.CapacityMWh, b.PowerMW, b.Efficiency, b.MaxGapHours,
		run.DaysEvaluated, run.CycleCount, run.TotalProfit, run.AverageProfit,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, c := range run.Cycles {
		if _, err := tx.ExecContext(ctx, `INSERT INTO cycles
			(run_id, date, month, charge_start, discharge_start, charge_heuristic, discharge_heuristic,
			 avg_charge_price, avg_discharge_price, gap_hours, profit)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			run.ID, c.Date, c.Month, c.ChargeStart.Unix(), c.DischargeStart.Unix(),
			c.ChargeHeuristic, c.DischargeHeuristic,
			c.AvgChargePrice, c.AvgDischargePrice, c.GapHours, c.Profit,
		); err != nil {
			return fmt.Errorf("insert cycle %s: %w", c.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Debug().Str("run_id", run.ID).Int("cycles", len(run.Cycles)).Msg("run recorded")
	return nil
}

const runColumns = `id, created_at, source, capacity_mwh, power_mw, efficiency, max_gap_hours,
	days_evaluated, cycle_count, total_profit, average_profit`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		run     RunRecord
		created int64
	)
	err := s.Scan(&run.ID, &created, &run.Source,
		&run.Battery.CapacityMWh, &run.Battery.PowerMW, &run.Battery.Efficiency, &run.Battery.MaxGapHours,
		&run.DaysEvaluated, &run.CycleCount, &run.TotalProfit, &run.AverageProfit)
	run.CreatedAt = time.UnixMilli(created).UTC()
	return run, err
}

// ListRuns returns the most recent runs first, without their cycles.
func (r *SQLiteRecorder) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := []RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// GetRun returns one run with its cycles in date order.
func (r *SQLiteRecorder) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT date, month, charge_start, discharge_start,
		charge_heuristic, discharge_heuristic, avg_charge_price, avg_discharge_price, gap_hours, profit
		FROM cycles WHERE run_id = ? ORDER BY date, id`, id)
	if err != nil {
		return nil, fmt.Errorf("get cycles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c                 CycleRecord
			charge, discharge int64
		)
		if err := rows.Scan(&c.Date, &c.Month, &charge, &discharge,
			&c.ChargeHeuristic, &c.DischargeHeuristic,
			&c.AvgChargePrice, &c.AvgDischargePrice, &c.GapHours, &c.Profit); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		c.ChargeStart = time.Unix(charge, 0).UTC()
		c.DischargeStart = time.Unix(discharge, 0).UTC()
		run.Cycles = append(run.Cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
