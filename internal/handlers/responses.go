package handlers

import (
	"github.com/abrezinsky/totebet/internal/models"
	"github.com/abrezinsky/totebet/internal/tote"
)

// BetResponse is the response for an accepted bet
type BetResponse struct {
	ID         string   `json:"id"`
	Product    string   `json:"product"`
	Selections []string `json:"selections"`
	Stake      int64    `json:"stake"`
	TicketURL  string   `json:"ticket_url"`
}

// ResultResponse is the response for concluding the race. Warning is set
// when the race concluded but the journal write failed.
type ResultResponse struct {
	Runners   []string             `json:"runners"`
	Dividends *tote.DividendReport `json:"dividends"`
	Warning   string               `json:"warning,omitempty"`
}

// BetListResponse is the steward view of the journal
type BetListResponse struct {
	Bets  []models.BetRecord `json:"bets"`
	Pools []models.PoolStats `json:"pools"`
}
