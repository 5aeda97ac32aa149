package repository

import (
	"context"

	"github.com/abrezinsky/totebet/internal/models"
)

// RaceRepository defines race journal operations
type RaceRepository interface {
	SaveRace(ctx context.Context, race models.RaceRecord) error
	GetRace(ctx context.Context, id string) (*models.RaceRecord, error)
	SetRaceResult(ctx context.Context, raceID string, runners []string) error
}

// BetRepository defines bet journal operations
type BetRepository interface {
	SaveBet(ctx context.Context, bet models.BetRecord) error
	GetBet(ctx context.Context, id string) (*models.BetRecord, error)
	ListBets(ctx context.Context, raceID string) ([]models.BetRecord, error)
	PoolStats(ctx context.Context, raceID string) ([]models.PoolStats, error)
}

// DividendRepository defines dividend journal operations
type DividendRepository interface {
	SaveDividends(ctx context.Context, raceID string, dividends []models.DividendRecord) error
	ListDividends(ctx context.Context, raceID string) ([]models.DividendRecord, error)
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	RaceRepository
	BetRepository
	DividendRepository
	Ping(ctx context.Context) error
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
