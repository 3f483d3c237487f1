package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"PortfolioAnalyzer/internal/model"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			holdings_count   INTEGER,
			total_value      REAL,
			total_cost       REAL,
			total_profit     REAL,
			total_profit_pct REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS stress_results (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
			scenario       TEXT,
			potential_loss REAL,
			risk_score     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stress_run ON stress_results(run_id)`,

		`CREATE TABLE IF NOT EXISTS holding_impacts (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
			scenario          TEXT,
			symbol            TEXT,
			potential_value   REAL,
			percentage_change REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_impacts_run ON holding_impacts(run_id)`,

		`CREATE TABLE IF NOT EXISTS suggestions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
			type        TEXT,
			title       TEXT,
			description TEXT,
			impact      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_run ON suggestions(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis writes one run and its children in a single transaction.
// An empty ID is filled with a new UUID; a zero CreatedAt with now.
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	s := a.Stats
	if _, err := tx.Exec(`INSERT INTO analysis_runs
		(id, timestamp, holdings_count, total_value, total_cost, total_profit, total_profit_pct)
		VALUES (?,?,?,?,?,?,?)`,
		a.ID, a.CreatedAt.Unix(), len(a.Holdings),
		s.TotalValue, s.TotalCost, s.TotalProfitLoss, s.TotalProfitLossPercentage,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range a.StressResults {
		if _, err := tx.Exec(`INSERT INTO stress_results
			(run_id, scenario, potential_loss, risk_score) VALUES (?,?,?,?)`,
			a.ID, res.Scenario, res.PotentialLoss, res.RiskScore,
		); err != nil {
			return fmt.Errorf("insert stress result: %w", err)
		}
		for _, imp := range res.ImpactedStocks {
			if _, err := tx.Exec(`INSERT INTO holding_impacts
				(run_id, scenario, symbol, potential_value, percentage_change) VALUES (?,?,?,?,?)`,
				a.ID, res.Scenario, imp.Symbol, imp.PotentialValue, imp.PercentageChange,
			); err != nil {
				return fmt.Errorf("insert impact: %w", err)
			}
		}
	}

	for _, sg := range a.Suggestions {
		if _, err := tx.Exec(`INSERT INTO suggestions
			(run_id, type, title, description, impact) VALUES (?,?,?,?,?)`,
			a.ID, string(sg.Type), sg.Title, sg.Description, string(sg.Impact),
		); err != nil {
			return fmt.Errorf("insert suggestion: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT
			r.id, r.timestamp, r.holdings_count, r.total_value, r.total_profit,
			COALESCE((SELECT MAX(risk_score) FROM stress_results WHERE run_id = r.id), 0),
			COALESCE((SELECT scenario FROM stress_results WHERE run_id = r.id
				ORDER BY potential_loss DESC, id ASC LIMIT 1), ''),
			(SELECT COUNT(*) FROM suggestions WHERE run_id = r.id)
		FROM analysis_runs r
		ORDER BY r.timestamp DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			s  RunSummary
			ts int64
		)
		if err := rows.Scan(&s.ID, &ts, &s.Holdings, &s.TotalValue, &s.TotalProfitLoss,
			&s.MaxRiskScore, &s.WorstScenario, &s.Suggestions); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.CreatedAt = time.Unix(ts, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
