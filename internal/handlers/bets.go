package handlers

import (
	"net/http"
	"strconv"
)

// handleGetRace describes the race being served
func (h *Handlers) handleGetRace(w http.ResponseWriter, r *http.Request) {
	info, err := h.Tote.RaceInfo(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, info)
}

// handlePlaceBet accepts a bet into its pool
func (h *Handlers) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req PlaceBetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	bet, err := h.Tote.PlaceBet(r.Context(), req.Product, req.Selections, req.Stake)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, BetResponse{
		ID:         bet.ID,
		Product:    bet.Product().String(),
		Selections: bet.Selections(),
		Stake:      bet.Stake,
		TicketURL:  "/api/bets/" + bet.ID + "/ticket",
	})
}

// handleGetBet looks a bet up in the journal
func (h *Handlers) handleGetBet(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	bet, err := h.Tote.GetBet(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, bet)
}

// handleBetTicket serves the bet's QR ticket as a PNG
func (h *Handlers) handleBetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := stringParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := h.Tote.BetTicket(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleGetDividends returns the dividends once the race is concluded
func (h *Handlers) handleGetDividends(w http.ResponseWriter, r *http.Request) {
	report, err := h.Tote.Dividends(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, report)
}
