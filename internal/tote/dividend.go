package tote

import "github.com/shopspring/decimal"

// CalcOptions tunes a dividend calculation. The zero value applies no
// commission.
type CalcOptions struct {
	// Commission is the fraction of the losing pool withheld by the house,
	// 0 <= Commission < 1.
	Commission decimal.Decimal
}

var (
	one   = decimal.NewFromInt(1)
	three = decimal.NewFromInt(3)
)

// ValidCommission reports whether c can be withheld from a pool.
func ValidCommission(c decimal.Decimal) bool {
	return !c.IsNegative() && c.LessThan(one)
}

// WinDividend returns the per-unit dividend for Win bets on the first
// runner. Bets of other products are ignored.
func WinDividend(result *RaceResult, bets []Bet, opts CalcOptions) (decimal.Decimal, error) {
	if err := checkInputs(result, opts); err != nil {
		return decimal.Zero, err
	}
	first := result.FirstPosition()
	return splitPool(bets, Win, opts.Commission, func(w Wager) bool {
		win, ok := w.(WinWager)
		return ok && win.Runner == first
	}), nil
}

// ExactaDividend returns the per-unit dividend for Exacta bets that named
// the first and second runners in order.
func ExactaDividend(result *RaceResult, bets []Bet, opts CalcOptions) (decimal.Decimal, error) {
	if err := checkInputs(result, opts); err != nil {
		return decimal.Zero, err
	}
	first, second := result.FirstPosition(), result.SecondPosition()
	return splitPool(bets, Exacta, opts.Commission, func(w Wager) bool {
		e, ok := w.(ExactaWager)
		return ok && e.First == first && e.Second == second
	}), nil
}

// PlaceDividends returns the per-unit dividends for Place bets on the
// first, second and third runners. The net losing pool is split into equal
// thirds, one per position.
func PlaceDividends(result *RaceResult, bets []Bet, opts CalcOptions) ([3]decimal.Decimal, error) {
	var dividends [3]decimal.Decimal
	if err := checkInputs(result, opts); err != nil {
		return dividends, err
	}

	positions := [3]string{result.FirstPosition(), result.SecondPosition(), result.ThirdPosition()}
	placed := [3]decimal.Decimal{decimal.Zero, decimal.Zero, decimal.Zero}
	losing := decimal.Zero

	for _, b := range bets {
		w, ok := b.Wager.(PlaceWager)
		if !ok || b.Stake <= 0 {
			continue
		}
		stake := decimal.NewFromInt(b.Stake)
		won := false
		for k, runner := range positions {
			if w.Runner == runner {
				placed[k] = placed[k].Add(stake)
				won = true
				break
			}
		}
		if !won {
			losing = losing.Add(stake)
		}
	}

	net := netPool(losing, opts.Commission)
	for k := range dividends {
		dividends[k] = perUnit(net, placed[k].Mul(three))
	}
	return dividends, nil
}

func checkInputs(result *RaceResult, opts CalcOptions) error {
	if result == nil {
		return ErrResultMandatory
	}
	if !ValidCommission(opts.Commission) {
		return ErrInvalidCommission
	}
	return nil
}

// splitPool pays the net losing stakes of one product to its winning stakes.
// Totals are kept in decimal so any number of maximum stakes still sums
// exactly. Malformed wagers and non-positive stakes are skipped.
func splitPool(bets []Bet, p Product, commission decimal.Decimal, won func(Wager) bool) decimal.Decimal {
	winning, losing := decimal.Zero, decimal.Zero
	for _, b := range bets {
		if bp, ok := wagerProduct(b.Wager); !ok || bp != p || b.Stake <= 0 {
			continue
		}
		stake := decimal.NewFromInt(b.Stake)
		if won(b.Wager) {
			winning = winning.Add(stake)
		} else {
			losing = losing.Add(stake)
		}
	}
	return perUnit(netPool(losing, commission), winning)
}

func netPool(losing, commission decimal.Decimal) decimal.Decimal {
	return losing.Mul(one.Sub(commission))
}

// perUnit divides amount by divisor and truncates to whole cents. A zero
// divisor yields zero.
func perUnit(amount, divisor decimal.Decimal) decimal.Decimal {
	if divisor.IsZero() {
		return decimal.Zero
	}
	cents, _ := amount.Shift(2).QuoRem(divisor, 0)
	return cents.Shift(-2)
}
