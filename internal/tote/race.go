package tote

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRaceName is used when a race is created without a name.
const DefaultRaceName = "Game on!!!"

// DefaultCommissions returns the standard house take per product.
func DefaultCommissions() map[Product]decimal.Decimal {
	return map[Product]decimal.Decimal{
		Win:    decimal.RequireFromString("0.15"),
		Place:  decimal.RequireFromString("0.12"),
		Exacta: decimal.RequireFromString("0.18"),
	}
}

// ParseCommissions builds a commission table from product codes and
// decimal strings such as {"W": "0.15"}.
func ParseCommissions(raw map[string]string) (map[Product]decimal.Decimal, error) {
	out := make(map[Product]decimal.Decimal, len(raw))
	for code, value := range raw {
		p, err := ParseProduct(code)
		if err != nil {
			return nil, err
		}
		c, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || !ValidCommission(c) {
			return nil, ErrInvalidCommission
		}
		out[p] = c
	}
	return out, nil
}

// reporter runs one product's calculator and records its dividends.
type reporter func(result *RaceResult, bets []Bet, opts CalcOptions, report *DividendReport) error

// reporters maps each product to its calculator.
var reporters = map[Product]reporter{
	Win: func(result *RaceResult, bets []Bet, opts CalcOptions, report *DividendReport) error {
		amount, err := WinDividend(result, bets, opts)
		if err != nil {
			return err
		}
		report.Win = &Dividend{Runner: result.FirstPosition(), Amount: amount}
		return nil
	},
	Place: func(result *RaceResult, bets []Bet, opts CalcOptions, report *DividendReport) error {
		amounts, err := PlaceDividends(result, bets, opts)
		if err != nil {
			return err
		}
		report.Place = make([]Dividend, len(amounts))
		for k, amount := range amounts {
			report.Place[k] = Dividend{Runner: result.Position(k + 1), Amount: amount}
		}
		return nil
	},
	Exacta: func(result *RaceResult, bets []Bet, opts CalcOptions, report *DividendReport) error {
		amount, err := ExactaDividend(result, bets, opts)
		if err != nil {
			return err
		}
		runner := strings.Join([]string{result.FirstPosition(), result.SecondPosition()}, ",")
		report.Exacta = &Dividend{Runner: runner, Amount: amount}
		return nil
	},
}

// Race holds the bet pools of a single race. A race accepts bets until it
// is concluded with a result, after which dividends can be calculated.
// Race is safe for concurrent use.
type Race struct {
	id   string
	name string
	date string

	mu          sync.RWMutex
	commissions map[Product]decimal.Decimal
	pools       map[Product][]Bet
	concluded   bool
	result      *RaceResult
}

// NewRace creates an open race offering one pool per commissioned product.
func NewRace(name, date string, commissions map[Product]decimal.Decimal) (*Race, error) {
	if len(commissions) == 0 {
		return nil, ErrNoProducts
	}

	r := &Race{
		id:          uuid.NewString(),
		name:        strings.TrimSpace(name),
		date:        strings.TrimSpace(date),
		commissions: make(map[Product]decimal.Decimal, len(commissions)),
		pools:       make(map[Product][]Bet, len(commissions)),
	}
	if r.name == "" {
		r.name = DefaultRaceName
	}

	for p, c := range commissions {
		if !p.Valid() {
			return nil, ErrInvalidProduct
		}
		if !ValidCommission(c) {
			return nil, ErrInvalidCommission
		}
		r.commissions[p] = c
		r.pools[p] = []Bet{}
	}
	return r, nil
}

func (r *Race) ID() string   { return r.id }
func (r *Race) Name() string { return r.name }
func (r *Race) Date() string { return r.date }

// Products returns the offered products in report order.
func (r *Race) Products() []Product {
	var out []Product
	for _, p := range AllProducts() {
		if _, ok := r.commissions[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Commission returns the commission for p and whether p is offered.
func (r *Race) Commission(p Product) (decimal.Decimal, bool) {
	c, ok := r.commissions[p]
	return c, ok
}

// ApplyBet adds bet to its product's pool. Bets that do not hold the
// NewBet invariants are rejected.
func (r *Race) ApplyBet(bet Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.concluded {
		return ErrRaceConcluded
	}
	if err := bet.check(); err != nil {
		return err
	}
	p := bet.Product()
	if _, ok := r.pools[p]; !ok {
		return errProductNotOffered(p)
	}
	r.pools[p] = append(r.pools[p], bet)
	return nil
}

// BetsOfType returns a copy of the pool for p. Unknown products yield an
// empty slice.
func (r *Race) BetsOfType(p Product) []Bet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pool := r.pools[p]
	out := make([]Bet, len(pool))
	copy(out, pool)
	return out
}

// BetCount returns the number of bets across all pools.
func (r *Race) BetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, pool := range r.pools {
		n += len(pool)
	}
	return n
}

// Conclude closes the race with its official result. It can only succeed once.
func (r *Race) Conclude(result *RaceResult) error {
	if result == nil {
		return ErrResultMandatory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.concluded {
		return ErrRaceConcluded
	}
	r.result = result
	r.concluded = true
	return nil
}

func (r *Race) Concluded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.concluded
}

// Result returns the bound result, or nil before conclusion.
func (r *Race) Result() *RaceResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result
}

// CalculateDividends computes the dividends of every offered product. It
// can be called any number of times after conclusion and always returns
// the same figures.
func (r *Race) CalculateDividends() (*DividendReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.concluded {
		return nil, ErrRaceNotConcluded
	}

	report := &DividendReport{}
	for _, p := range AllProducts() {
		c, ok := r.commissions[p]
		if !ok {
			continue
		}
		if err := reporters[p](r.result, r.pools[p], CalcOptions{Commission: c}, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}
