package tote

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Dividend is the amount paid per unit staked on Runner. For Exacta the
// runner is "first,second".
type Dividend struct {
	Runner string
	Amount decimal.Decimal
}

type dividendJSON struct {
	Runner   string      `json:"runner"`
	Dividend json.Number `json:"dividend"`
}

// MarshalJSON writes the amount as a number with two decimals.
func (d Dividend) MarshalJSON() ([]byte, error) {
	return json.Marshal(dividendJSON{
		Runner:   d.Runner,
		Dividend: json.Number(d.Amount.StringFixed(2)),
	})
}

func (d *Dividend) UnmarshalJSON(data []byte) error {
	var raw dividendJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Dividend.String())
	if err != nil {
		return err
	}
	d.Runner = raw.Runner
	d.Amount = amount
	return nil
}

// DividendReport holds the dividends of a concluded race. Products the race
// does not offer are left empty and omitted from JSON.
type DividendReport struct {
	Win    *Dividend  `json:"W,omitempty"`
	Place  []Dividend `json:"P,omitempty"`
	Exacta *Dividend  `json:"E,omitempty"`
}

// ReportLine is one dividend in display order.
type ReportLine struct {
	Product  Product
	Runner   string
	Dividend decimal.Decimal
}

// Lines flattens the report into Win, the three Place positions, then Exacta.
func (r *DividendReport) Lines() []ReportLine {
	var lines []ReportLine
	if r.Win != nil {
		lines = append(lines, ReportLine{Product: Win, Runner: r.Win.Runner, Dividend: r.Win.Amount})
	}
	for _, d := range r.Place {
		lines = append(lines, ReportLine{Product: Place, Runner: d.Runner, Dividend: d.Amount})
	}
	if r.Exacta != nil {
		lines = append(lines, ReportLine{Product: Exacta, Runner: r.Exacta.Runner, Dividend: r.Exacta.Amount})
	}
	return lines
}
