package services

import (
	"context"

	"github.com/abrezinsky/totebet/internal/models"
	"github.com/abrezinsky/totebet/internal/tote"
)

// ToteServicer defines the interface for betting operations on the current race
type ToteServicer interface {
	Open(ctx context.Context) error
	RaceInfo(ctx context.Context) (*RaceInfo, error)
	PlaceBet(ctx context.Context, product string, selections []string, stake string) (*tote.Bet, error)
	GetBet(ctx context.Context, id string) (*models.BetRecord, error)
	ListBets(ctx context.Context) ([]models.BetRecord, error)
	PoolStats(ctx context.Context) ([]models.PoolStats, error)
	Conclude(ctx context.Context, runners []string) (*tote.DividendReport, error)
	Dividends(ctx context.Context) (*tote.DividendReport, error)
	BetTicket(ctx context.Context, id string) ([]byte, error)
	SetBroadcaster(b Broadcaster)
	Ping(ctx context.Context) error
}

// Broadcaster defines the interface for broadcasting race events to clients
type Broadcaster interface {
	BroadcastBetAccepted(betID, product string)
	BroadcastRaceConcluded(runners []string)
	BroadcastDividends(report *tote.DividendReport)
}

// Recorder receives betting measurements for monitoring
type Recorder interface {
	BetPlaced(product string, stake int64)
	BetRejected(reason string)
	RaceConcluded()
	DividendDeclared(product, runner string, amount float64)
}

// Ensure concrete types implement interfaces
var (
	_ ToteServicer = (*ToteService)(nil)
	_ Recorder     = NoopRecorder{}
)

// NoopRecorder discards all measurements
type NoopRecorder struct{}

func (NoopRecorder) BetPlaced(string, int64)                  {}
func (NoopRecorder) BetRejected(string)                       {}
func (NoopRecorder) RaceConcluded()                           {}
func (NoopRecorder) DividendDeclared(string, string, float64) {}
