package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/totebet/internal/models"
)

// Repository provides data access methods for the race journal
type Repository struct {
	db *sql.DB
}

// New creates a new Repository. Use ":memory:" for a journal that lives
// only as long as the process.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS races (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			race_date TEXT,
			commissions TEXT NOT NULL,
			concluded BOOLEAN DEFAULT 0,
			result TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bets (
			id TEXT PRIMARY KEY,
			race_id TEXT NOT NULL,
			product TEXT NOT NULL,
			selections TEXT NOT NULL,
			stake INTEGER NOT NULL CHECK (stake > 0),
			placed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (race_id) REFERENCES races(id)
		)`,
		`CREATE TABLE IF NOT EXISTS dividends (
			race_id TEXT NOT NULL,
			product TEXT NOT NULL,
			position INTEGER NOT NULL,
			runner TEXT NOT NULL,
			amount TEXT NOT NULL,
			PRIMARY KEY (race_id, product, position),
			FOREIGN KEY (race_id) REFERENCES races(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_race ON bets(race_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_product ON bets(race_id, product)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicateError reports whether err is a primary key or unique violation
func isDuplicateError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// ==================== Race Methods ====================

// SaveRace journals a new race
func (r *Repository) SaveRace(ctx context.Context, race models.RaceRecord) error {
	commissions, err := json.Marshal(race.Commissions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO races (id, name, race_date, commissions)
		VALUES (?, ?, ?, ?)
	`, race.ID, race.Name, race.Date, string(commissions))
	if isDuplicateError(err) {
		return ErrDuplicate
	}
	return err
}

// GetRace retrieves a race by ID
func (r *Repository) GetRace(ctx context.Context, id string) (*models.RaceRecord, error) {
	var race models.RaceRecord
	var date, result sql.NullString
	var commissions string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, race_date, commissions, concluded, result, created_at
		FROM races WHERE id = ?
	`, id).Scan(&race.ID, &race.Name, &date, &commissions, &race.Concluded, &result, &race.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	race.Date = date.String
	if err := json.Unmarshal([]byte(commissions), &race.Commissions); err != nil {
		return nil, err
	}
	if result.Valid && result.String != "" {
		if err := json.Unmarshal([]byte(result.String), &race.Result); err != nil {
			return nil, err
		}
	}
	return &race, nil
}

// SetRaceResult marks a race concluded with its finishing order
func (r *Repository) SetRaceResult(ctx context.Context, raceID string, runners []string) error {
	result, err := json.Marshal(runners)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE races SET concluded = 1, result = ? WHERE id = ?
	`, string(result), raceID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Bet Methods ====================

// SaveBet journals an accepted bet
func (r *Repository) SaveBet(ctx context.Context, bet models.BetRecord) error {
	selections, err := json.Marshal(bet.Selections)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bets (id, race_id, product, selections, stake)
		VALUES (?, ?, ?, ?, ?)
	`, bet.ID, bet.RaceID, bet.Product, string(selections), bet.Stake)
	if isDuplicateError(err) {
		return ErrDuplicate
	}
	return err
}

// GetBet retrieves a bet by ID
func (r *Repository) GetBet(ctx context.Context, id string) (*models.BetRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, race_id, product, selections, stake, placed_at
		FROM bets WHERE id = ?
	`, id)

	bet, err := scanBet(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bet, nil
}

// ListBets returns the bets of a race in the order they were placed
func (r *Repository) ListBets(ctx context.Context, raceID string) ([]models.BetRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, race_id, product, selections, stake, placed_at
		FROM bets WHERE race_id = ?
		ORDER BY rowid
	`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bets := []models.BetRecord{}
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, *bet)
	}
	return bets, rows.Err()
}

// PoolStats returns bet count and total stake per product
func (r *Repository) PoolStats(ctx context.Context, raceID string) ([]models.PoolStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product, COUNT(*), COALESCE(SUM(stake), 0)
		FROM bets WHERE race_id = ?
		GROUP BY product
		ORDER BY product
	`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.PoolStats
	for rows.Next() {
		var s models.PoolStats
		if err := rows.Scan(&s.Product, &s.Bets, &s.TotalStake); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBet(row rowScanner) (*models.BetRecord, error) {
	var bet models.BetRecord
	var selections string
	var placedAt sql.NullString

	if err := row.Scan(&bet.ID, &bet.RaceID, &bet.Product, &selections, &bet.Stake, &placedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(selections), &bet.Selections); err != nil {
		return nil, err
	}
	bet.PlacedAt = placedAt.String
	return &bet, nil
}

// ==================== Dividend Methods ====================

// SaveDividends records the declared dividends of a race in one transaction
func (r *Repository) SaveDividends(ctx context.Context, raceID string, dividends []models.DividendRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range dividends {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO dividends (race_id, product, position, runner, amount)
			VALUES (?, ?, ?, ?, ?)
		`, raceID, d.Product, d.Position, d.Runner, d.Amount)
		if isDuplicateError(err) {
			return ErrDuplicate
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListDividends returns the declared dividends of a race in report order
func (r *Repository) ListDividends(ctx context.Context, raceID string) ([]models.DividendRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT race_id, product, position, runner, amount
		FROM dividends WHERE race_id = ?
		ORDER BY CASE product WHEN 'W' THEN 0 WHEN 'P' THEN 1 ELSE 2 END, position
	`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dividends []models.DividendRecord
	for rows.Next() {
		var d models.DividendRecord
		if err := rows.Scan(&d.RaceID, &d.Product, &d.Position, &d.Runner, &d.Amount); err != nil {
			return nil, err
		}
		dividends = append(dividends, d)
	}
	return dividends, rows.Err()
}
