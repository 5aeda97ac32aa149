package models

// RaceRecord is the journal entry for the race served by this process
type RaceRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Date        string            `json:"date"`
	Commissions map[string]string `json:"commissions"` // product code -> decimal fraction
	Concluded   bool              `json:"concluded"`
	Result      []string          `json:"result,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"`
}

// BetRecord is an accepted bet as written to the journal
type BetRecord struct {
	ID         string   `json:"id"`
	RaceID     string   `json:"race_id"`
	Product    string   `json:"product"`
	Selections []string `json:"selections"`
	Stake      int64    `json:"stake"`
	PlacedAt   string   `json:"placed_at,omitempty"`
}

// DividendRecord is one declared dividend line
type DividendRecord struct {
	RaceID   string `json:"race_id"`
	Product  string `json:"product"`
	Position int    `json:"position"`
	Runner   string `json:"runner"`
	Amount   string `json:"dividend"`
}

// PoolStats summarises one product's pool
type PoolStats struct {
	Product    string `json:"product"`
	Bets       int    `json:"bets"`
	TotalStake int64  `json:"total_stake"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
