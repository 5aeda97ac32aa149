package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/abrezinsky/totebet/internal/models"
	"github.com/abrezinsky/totebet/internal/repository"
	"github.com/abrezinsky/totebet/internal/tote"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// NewTestRace creates an open race with the default commissions.
func NewTestRace(t *testing.T) *tote.Race {
	t.Helper()

	race, err := tote.NewRace("Test Race", "2026-10-19", tote.DefaultCommissions())
	if err != nil {
		t.Fatalf("failed to create test race: %v", err)
	}
	return race
}

// JournalRace writes race to repo so bets referencing it can be saved.
func JournalRace(t *testing.T, repo repository.RaceRepository, race *tote.Race) {
	t.Helper()

	commissions := make(map[string]string)
	for _, p := range race.Products() {
		c, _ := race.Commission(p)
		commissions[p.String()] = c.String()
	}
	record := models.RaceRecord{ID: race.ID(), Name: race.Name(), Date: race.Date(), Commissions: commissions}
	if err := repo.SaveRace(context.Background(), record); err != nil {
		t.Fatalf("failed to journal test race: %v", err)
	}
}

// Amount parses a decimal literal for assertions.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
