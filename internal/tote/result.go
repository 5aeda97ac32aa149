package tote

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RaceResult is the official finishing order of a race, first place at
// index 0. It is immutable once built.
type RaceResult struct {
	id      string
	runners []string
}

// NewRaceResult validates a finishing order. At least three unique
// whole-number runners are required.
func NewRaceResult(runners []string) (*RaceResult, error) {
	if runners == nil {
		return nil, ErrResultsNotWhole
	}

	trimmed := trimAll(runners)
	for _, r := range trimmed {
		if !wholeNumber.MatchString(r) {
			return nil, ErrResultsNotWhole
		}
	}

	if len(trimmed) < 3 {
		return nil, ErrMinimumPositions
	}

	seen := make(map[string]struct{}, len(trimmed))
	for _, r := range trimmed {
		if _, dup := seen[r]; dup {
			return nil, ErrDuplicateRunners
		}
		seen[r] = struct{}{}
	}

	return &RaceResult{id: uuid.NewString(), runners: trimmed}, nil
}

func (r *RaceResult) ID() string {
	return r.id
}

// Position returns the runner in the given 1-based position, or "" when
// the result has no such position.
func (r *RaceResult) Position(n int) string {
	if n < 1 || n > len(r.runners) {
		return ""
	}
	return r.runners[n-1]
}

func (r *RaceResult) FirstPosition() string  { return r.Position(1) }
func (r *RaceResult) SecondPosition() string { return r.Position(2) }
func (r *RaceResult) ThirdPosition() string  { return r.Position(3) }

// Runners returns a copy of the full finishing order.
func (r *RaceResult) Runners() []string {
	out := make([]string, len(r.runners))
	copy(out, r.runners)
	return out
}

func (r *RaceResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string   `json:"id"`
		Runners []string `json:"runners"`
	}{r.id, r.runners})
}
