package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/totebet/internal/errors"
	"github.com/abrezinsky/totebet/internal/logger"
	"github.com/abrezinsky/totebet/internal/models"
	"github.com/abrezinsky/totebet/internal/repository"
	"github.com/abrezinsky/totebet/internal/tote"
)

// RaceInfo describes the race being served. It carries no pool sizes.
type RaceInfo struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Date        string            `json:"date"`
	Products    []string          `json:"products"`
	Commissions map[string]string `json:"commissions"`
	Concluded   bool              `json:"concluded"`
	BetCount    int               `json:"bet_count"`
	Result      []string          `json:"result,omitempty"`
}

// ToteService runs the single race of this process: it validates and pools
// bets, concludes the race and journals everything it accepts.
type ToteService struct {
	log         logger.Logger
	repo        repository.FullRepository
	race        *tote.Race
	broadcaster Broadcaster
	metrics     Recorder
	baseURL     string
}

// NewToteService creates a new ToteService. metrics may be nil.
func NewToteService(log logger.Logger, repo repository.FullRepository, race *tote.Race, metrics Recorder) *ToteService {
	if metrics == nil {
		metrics = NoopRecorder{}
	}
	return &ToteService{
		log:     log.With("race_id", race.ID()),
		repo:    repo,
		race:    race,
		metrics: metrics,
	}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *ToteService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetBaseURL sets the public URL printed into bet tickets
func (s *ToteService) SetBaseURL(url string) {
	s.baseURL = strings.TrimSuffix(url, "/")
}

// Open journals the race so bets can reference it
func (s *ToteService) Open(ctx context.Context) error {
	record := models.RaceRecord{
		ID:          s.race.ID(),
		Name:        s.race.Name(),
		Date:        s.race.Date(),
		Commissions: s.commissions(),
	}
	if err := s.repo.SaveRace(ctx, record); err != nil {
		s.log.Error("Failed to journal race", "error", err)
		return errJournal(err, "failed to journal race")
	}
	s.log.Info("Race opened", "name", record.Name, "products", strings.Join(s.productCodes(), ","))
	return nil
}

// RaceInfo returns the public description of the race
func (s *ToteService) RaceInfo(ctx context.Context) (*RaceInfo, error) {
	info := &RaceInfo{
		ID:          s.race.ID(),
		Name:        s.race.Name(),
		Date:        s.race.Date(),
		Products:    s.productCodes(),
		Commissions: s.commissions(),
		Concluded:   s.race.Concluded(),
		BetCount:    s.race.BetCount(),
	}
	if result := s.race.Result(); result != nil {
		info.Result = result.Runners()
	}
	return info, nil
}

// PlaceBet validates raw bet input, pools the bet and journals it
func (s *ToteService) PlaceBet(ctx context.Context, product string, selections []string, stake string) (*tote.Bet, error) {
	bet, err := tote.NewBet(product, selections, stake)
	if err != nil {
		s.metrics.BetRejected(errors.KindOf(err).String())
		s.log.Debug("Bet rejected", "product", product, "error", err)
		return nil, err
	}

	if err := s.race.ApplyBet(bet); err != nil {
		s.metrics.BetRejected(errors.KindOf(err).String())
		s.log.Debug("Bet rejected", "product", product, "error", err)
		return nil, err
	}

	record := models.BetRecord{
		ID:         bet.ID,
		RaceID:     s.race.ID(),
		Product:    bet.Product().String(),
		Selections: bet.Selections(),
		Stake:      bet.Stake,
	}
	if err := s.repo.SaveBet(ctx, record); err != nil {
		s.log.Error("Failed to journal bet", "bet_id", bet.ID, "error", err)
		return nil, errJournal(err, "failed to journal bet")
	}

	s.metrics.BetPlaced(record.Product, bet.Stake)
	s.log.Info("Bet placed", "bet_id", bet.ID, "product", record.Product,
		"selections", strings.Join(record.Selections, ","), "stake", bet.Stake)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBetAccepted(bet.ID, record.Product)
	}
	return &bet, nil
}

// GetBet returns a journaled bet
func (s *ToteService) GetBet(ctx context.Context, id string) (*models.BetRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrBetIDRequired
	}
	bet, err := s.repo.GetBet(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errBetNotFound(id)
	}
	if err != nil {
		return nil, errJournal(err, "failed to load bet")
	}
	return bet, nil
}

// ListBets returns every journaled bet of the race in placement order
func (s *ToteService) ListBets(ctx context.Context) ([]models.BetRecord, error) {
	bets, err := s.repo.ListBets(ctx, s.race.ID())
	if err != nil {
		return nil, errJournal(err, "failed to list bets")
	}
	return bets, nil
}

// PoolStats returns per-product bet counts and stakes from the journal
func (s *ToteService) PoolStats(ctx context.Context) ([]models.PoolStats, error) {
	stats, err := s.repo.PoolStats(ctx, s.race.ID())
	if err != nil {
		return nil, errJournal(err, "failed to read pool stats")
	}
	return stats, nil
}

// Conclude closes the race with the official finishing order and declares
// the dividends
func (s *ToteService) Conclude(ctx context.Context, runners []string) (*tote.DividendReport, error) {
	result, err := tote.NewRaceResult(runners)
	if err != nil {
		return nil, err
	}
	if err := s.race.Conclude(result); err != nil {
		return nil, err
	}

	report, err := s.race.CalculateDividends()
	if err != nil {
		s.log.Error("Failed to calculate dividends", "error", err)
		return nil, err
	}

	s.metrics.RaceConcluded()
	for _, line := range report.Lines() {
		s.metrics.DividendDeclared(line.Product.String(), line.Runner, line.Dividend.InexactFloat64())
	}
	s.log.Info("Race concluded", "result", strings.Join(result.Runners(), ","), "bets", s.race.BetCount())

	if s.broadcaster != nil {
		s.broadcaster.BroadcastRaceConcluded(result.Runners())
		s.broadcaster.BroadcastDividends(report)
	}

	if err := s.repo.SetRaceResult(ctx, s.race.ID(), result.Runners()); err != nil {
		s.log.Error("Failed to journal result", "error", err)
		return report, errJournal(err, "failed to journal result")
	}
	if err := s.repo.SaveDividends(ctx, s.race.ID(), dividendRecords(s.race.ID(), report)); err != nil {
		s.log.Error("Failed to journal dividends", "error", err)
		return report, errJournal(err, "failed to journal dividends")
	}
	return report, nil
}

// Dividends returns the dividends of the concluded race
func (s *ToteService) Dividends(ctx context.Context) (*tote.DividendReport, error) {
	return s.race.CalculateDividends()
}

// BetTicket renders a PNG QR code identifying the bet
func (s *ToteService) BetTicket(ctx context.Context, id string) ([]byte, error) {
	bet, err := s.GetBet(ctx, id)
	if err != nil {
		return nil, err
	}

	content := "totebet:bet:" + bet.ID
	if s.baseURL != "" {
		content = fmt.Sprintf("%s/api/bets/%s", s.baseURL, bet.ID)
	}
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return png, nil
}

// Ping checks the journal connection
func (s *ToteService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ToteService) productCodes() []string {
	var codes []string
	for _, p := range s.race.Products() {
		codes = append(codes, p.String())
	}
	return codes
}

func (s *ToteService) commissions() map[string]string {
	out := make(map[string]string)
	for _, p := range s.race.Products() {
		c, _ := s.race.Commission(p)
		out[p.String()] = c.String()
	}
	return out
}

// dividendRecords numbers each product's dividends by position
func dividendRecords(raceID string, report *tote.DividendReport) []models.DividendRecord {
	positions := make(map[tote.Product]int)
	var records []models.DividendRecord
	for _, line := range report.Lines() {
		positions[line.Product]++
		records = append(records, models.DividendRecord{
			RaceID:   raceID,
			Product:  line.Product.String(),
			Position: positions[line.Product],
			Runner:   line.Runner,
			Amount:   line.Dividend.StringFixed(2),
		})
	}
	return records
}
