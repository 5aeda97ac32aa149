package handlers

import (
	"log"
	"net/http"
)

// handleDeclareResult concludes the race with the official finishing order
func (h *Handlers) handleDeclareResult(w http.ResponseWriter, r *http.Request) {
	var req RaceResultRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	report, err := h.Tote.Conclude(r.Context(), req.Runners)
	if report == nil {
		respondError(w, err)
		return
	}

	// A report with an error means the race concluded but was not journaled
	resp := ResultResponse{Runners: req.Runners, Dividends: report}
	if err != nil {
		log.Printf("Race concluded without journal: %v", err)
		resp.Warning = "Dividends declared but not journaled"
	}
	respondOK(w, resp)
}

// handleListBets returns every journaled bet with per-product pool totals
func (h *Handlers) handleListBets(w http.ResponseWriter, r *http.Request) {
	bets, err := h.Tote.ListBets(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	pools, err := h.Tote.PoolStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, BetListResponse{Bets: bets, Pools: pools})
}
