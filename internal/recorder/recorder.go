// Package recorder persists a local history of rendered snapshots. Recording
// is strictly best-effort: a recorder failure never affects rendering.
package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"midas/internal/hud"
	"midas/internal/snapshot"
)

// Recorder appends rendered snapshots to a SQLite database and serves the
// recent-symbols list shown while the ticker input is empty.
type Recorder struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and runs migrations.
func Open(dbPath string) (*Recorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	r := &Recorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *Recorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			last       REAL,
			r_1m       REAL,
			r_5m       REAL,
			class      TEXT,
			confidence REAL,
			one_liner  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol ON snapshots(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record appends one rendered snapshot. Absent fields are stored as NULL.
func (r *Recorder) Record(ctx context.Context, symbol string, snap *snapshot.Snapshot, ts time.Time) error {
	if snap == nil {
		return nil
	}
	oneLiner := hud.CleanOneLiner(snap.OneLiner.Text, snap.Recommendation.Class)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (timestamp, symbol, last, r_1m, r_5m, class, confidence, one_liner)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.UnixMilli(), symbol,
		nullFloat(snap.Quote.Last),
		nullFloat(snap.Features.R1m),
		nullFloat(snap.Features.R5m),
		nullString(snap.Recommendation.Class),
		nullFloat(snap.Recommendation.Confidence),
		nullString(oneLiner),
	)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// RecentSymbols returns the most recently recorded distinct symbols, newest
// first, up to limit.
func (r *Recorder) RecentSymbols(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT symbol FROM snapshots GROUP BY symbol ORDER BY MAX(timestamp) DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
