package handlers

// PlaceBetRequest represents a bet submitted over the API
type PlaceBetRequest struct {
	Product    string   `json:"product"`
	Selections []string `json:"selections"`
	Stake      string   `json:"stake"`
}

// RaceResultRequest represents the official finishing order
type RaceResultRequest struct {
	Runners []string `json:"runners"`
}

// LoginRequest represents a steward login
type LoginRequest struct {
	Password string `json:"password"`
}
