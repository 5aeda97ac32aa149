package tote

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// wholeNumber matches a positive integer without sign or leading zeros.
var wholeNumber = regexp.MustCompile(`^[1-9][0-9]*$`)

// Wager is the product-specific part of a bet. Implementations are
// WinWager, PlaceWager and ExactaWager.
type Wager interface {
	Product() Product
	// Selections returns the runners in the order they were picked.
	Selections() []string
	isWager()
}

// WinWager backs a single runner to finish first.
type WinWager struct {
	Runner string
}

func (WinWager) Product() Product       { return Win }
func (w WinWager) Selections() []string { return []string{w.Runner} }
func (WinWager) isWager()               {}

// PlaceWager backs a single runner to finish in the first three.
type PlaceWager struct {
	Runner string
}

func (PlaceWager) Product() Product       { return Place }
func (w PlaceWager) Selections() []string { return []string{w.Runner} }
func (PlaceWager) isWager()               {}

// ExactaWager backs two runners to finish first and second in that order.
type ExactaWager struct {
	First  string
	Second string
}

func (ExactaWager) Product() Product       { return Exacta }
func (w ExactaWager) Selections() []string { return []string{w.First, w.Second} }
func (ExactaWager) isWager()               {}

// Bet is an accepted wager. Bets are values and are never modified after
// NewBet returns them.
type Bet struct {
	ID    string
	Wager Wager
	Stake int64
}

// Product returns the bet's product.
func (b Bet) Product() Product {
	return b.Wager.Product()
}

// Selections returns the runners the bet was placed on.
func (b Bet) Selections() []string {
	return b.Wager.Selections()
}

type betJSON struct {
	ID         string   `json:"id"`
	Product    Product  `json:"product"`
	Selections []string `json:"selections"`
	Stake      int64    `json:"stake"`
}

func (b Bet) MarshalJSON() ([]byte, error) {
	return json.Marshal(betJSON{
		ID:         b.ID,
		Product:    b.Product(),
		Selections: b.Selections(),
		Stake:      b.Stake,
	})
}

// NewBet validates raw bet input and returns the typed bet with a fresh ID.
// Checks run in a fixed order and the first failure is returned.
func NewBet(product string, selections []string, stake string) (Bet, error) {
	p, err := ParseProduct(product)
	if err != nil {
		return Bet{}, err
	}

	if allBlank(selections) {
		return Bet{}, ErrSelectionsMandatory
	}
	runners := trimAll(selections)

	if p == Exacta {
		if len(runners) != 2 {
			return Bet{}, ErrExactaSelectionsPair
		}
	} else if len(runners) != 1 {
		return Bet{}, ErrSingleSelection
	}

	for _, r := range runners {
		if !wholeNumber.MatchString(r) {
			if p == Exacta {
				return Bet{}, ErrExactaSelectionsWhole
			}
			return Bet{}, ErrSelectionsNotWhole
		}
	}

	if p == Exacta && runners[0] == runners[1] {
		return Bet{}, ErrExactaSameRunner
	}

	amount, err := parseStake(stake)
	if err != nil {
		return Bet{}, err
	}

	var w Wager
	switch p {
	case Win:
		w = WinWager{Runner: runners[0]}
	case Place:
		w = PlaceWager{Runner: runners[0]}
	case Exacta:
		w = ExactaWager{First: runners[0], Second: runners[1]}
	}

	return Bet{ID: uuid.NewString(), Wager: w, Stake: amount}, nil
}

// wagerProduct returns the product of one of the three wager values. Any
// other Wager, a pointer to one of them included, reports false.
func wagerProduct(w Wager) (Product, bool) {
	switch w.(type) {
	case WinWager:
		return Win, true
	case PlaceWager:
		return Place, true
	case ExactaWager:
		return Exacta, true
	}
	return "", false
}

// check re-applies the NewBet invariants to a bet that may have been built
// as a struct literal.
func (b Bet) check() error {
	if _, ok := wagerProduct(b.Wager); !ok {
		return ErrMalformedBet
	}
	runners := b.Wager.Selections()
	for _, r := range runners {
		if !wholeNumber.MatchString(r) {
			if b.Wager.Product() == Exacta {
				return ErrExactaSelectionsWhole
			}
			return ErrSelectionsNotWhole
		}
	}
	if b.Wager.Product() == Exacta && runners[0] == runners[1] {
		return ErrExactaSameRunner
	}
	if b.Stake <= 0 {
		return ErrStakeNotWhole
	}
	return nil
}

func parseStake(stake string) (int64, error) {
	stake = strings.TrimSpace(stake)
	if stake == "" {
		return 0, ErrStakeMandatory
	}
	if !wholeNumber.MatchString(stake) {
		return 0, ErrStakeNotWhole
	}
	amount, err := strconv.ParseInt(stake, 10, 64)
	if err != nil {
		return 0, ErrStakeNotWhole
	}
	return amount, nil
}

func allBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
