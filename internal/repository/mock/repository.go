package mock

import (
	"context"

	"github.com/abrezinsky/totebet/internal/models"
	"github.com/abrezinsky/totebet/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SaveBetError = errors.New("database error")
//	svc := services.NewToteService(log, mockRepo, race, nil)
//	_, err := svc.PlaceBet(ctx, "W", []string{"1"}, "5")
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Race Errors =====
	SaveRaceError      error
	GetRaceError       error
	SetRaceResultError error

	// ===== Bet Errors =====
	SaveBetError   error
	GetBetError    error
	ListBetsError  error
	PoolStatsError error

	// ===== Dividend Errors =====
	SaveDividendsError error
	ListDividendsError error

	PingError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Race Methods =====

func (m *Repository) SaveRace(ctx context.Context, race models.RaceRecord) error {
	if m.SaveRaceError != nil {
		return m.SaveRaceError
	}
	return m.FullRepository.SaveRace(ctx, race)
}

func (m *Repository) GetRace(ctx context.Context, id string) (*models.RaceRecord, error) {
	if m.GetRaceError != nil {
		return nil, m.GetRaceError
	}
	return m.FullRepository.GetRace(ctx, id)
}

func (m *Repository) SetRaceResult(ctx context.Context, raceID string, runners []string) error {
	if m.SetRaceResultError != nil {
		return m.SetRaceResultError
	}
	return m.FullRepository.SetRaceResult(ctx, raceID, runners)
}

// ===== Bet Methods =====

func (m *Repository) SaveBet(ctx context.Context, bet models.BetRecord) error {
	if m.SaveBetError != nil {
		return m.SaveBetError
	}
	return m.FullRepository.SaveBet(ctx, bet)
}

func (m *Repository) GetBet(ctx context.Context, id string) (*models.BetRecord, error) {
	if m.GetBetError != nil {
		return nil, m.GetBetError
	}
	return m.FullRepository.GetBet(ctx, id)
}

func (m *Repository) ListBets(ctx context.Context, raceID string) ([]models.BetRecord, error) {
	if m.ListBetsError != nil {
		return nil, m.ListBetsError
	}
	return m.FullRepository.ListBets(ctx, raceID)
}

func (m *Repository) PoolStats(ctx context.Context, raceID string) ([]models.PoolStats, error) {
	if m.PoolStatsError != nil {
		return nil, m.PoolStatsError
	}
	return m.FullRepository.PoolStats(ctx, raceID)
}

// ===== Dividend Methods =====

func (m *Repository) SaveDividends(ctx context.Context, raceID string, dividends []models.DividendRecord) error {
	if m.SaveDividendsError != nil {
		return m.SaveDividendsError
	}
	return m.FullRepository.SaveDividends(ctx, raceID, dividends)
}

func (m *Repository) ListDividends(ctx context.Context, raceID string) ([]models.DividendRecord, error) {
	if m.ListDividendsError != nil {
		return nil, m.ListDividendsError
	}
	return m.FullRepository.ListDividends(ctx, raceID)
}

func (m *Repository) Ping(ctx context.Context) error {
	if m.PingError != nil {
		return m.PingError
	}
	return m.FullRepository.Ping(ctx)
}
