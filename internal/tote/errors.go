package tote

import "github.com/abrezinsky/totebet/internal/errors"

// Bet validation errors, in the order NewBet checks them.
var (
	ErrProductMandatory      = errors.Validation("Product is mandatory")
	ErrInvalidProduct        = errors.Validation("Invalid product. Use W, P or E.")
	ErrSelectionsMandatory   = errors.Validation("Selections is mandatory")
	ErrExactaSelectionsPair  = errors.Validation("Exacta bet selections must be for first and second position")
	ErrSingleSelection       = errors.Validation("Win and Place bet selections must be a single runner")
	ErrSelectionsNotWhole    = errors.Validation("Selections must be whole numbers")
	ErrExactaSelectionsWhole = errors.Validation("Exacta bet selections must be whole numbers")
	ErrExactaSameRunner      = errors.Validation("Exacta bet selections must be different runners")
	ErrStakeMandatory        = errors.Validation("Stake is mandatory")
	ErrStakeNotWhole         = errors.Validation("Stake needs to be a whole number greater than 0")
	ErrMalformedBet          = errors.Validation("Bet has no Win, Place or Exacta wager")
)

// Race result validation errors.
var (
	ErrResultsNotWhole   = errors.Validation("Results are mandatory to be an array of whole numbers")
	ErrMinimumPositions  = errors.Validation("Minimum 3 positions should be specified")
	ErrDuplicateRunners  = errors.Validation("Results should be uniquely positioned runners")
	ErrResultMandatory   = errors.Validation("RaceResult is mandatory")
	ErrInvalidCommission = errors.Validation("Commission must be at least 0 and less than 1")
	ErrNoProducts        = errors.Validation("At least one product must be offered")
)

// Race state errors. The race is left untouched when one is returned.
var (
	ErrRaceConcluded    = errors.Conflict("Race already concluded")
	ErrRaceNotConcluded = errors.Conflict("Race not yet concluded")
)

func errProductNotOffered(p Product) error {
	return errors.Validationf("%s bets are not offered for this race", p.Name())
}
