package tote

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/abrezinsky/totebet/internal/errors"
)

func TestNewBet_Valid(t *testing.T) {
	tests := []struct {
		name       string
		product    string
		selections []string
		stake      string
		want       Wager
		wantStake  int64
	}{
		{"win", "W", []string{"3"}, "10", WinWager{Runner: "3"}, 10},
		{"place", "P", []string{"12"}, "1", PlaceWager{Runner: "12"}, 1},
		{"exacta", "E", []string{"1", "2"}, "25", ExactaWager{First: "1", Second: "2"}, 25},
		{"whitespace trimmed", " W ", []string{" 4 "}, " 7 ", WinWager{Runner: "4"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet, err := NewBet(tt.product, tt.selections, tt.stake)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bet.Wager != tt.want {
				t.Errorf("Wager = %#v, want %#v", bet.Wager, tt.want)
			}
			if bet.Stake != tt.wantStake {
				t.Errorf("Stake = %d, want %d", bet.Stake, tt.wantStake)
			}
			if bet.ID == "" {
				t.Error("expected bet to have an ID")
			}
		})
	}
}

func TestNewBet_Validation(t *testing.T) {
	tests := []struct {
		name       string
		product    string
		selections []string
		stake      string
		wantErr    error
		wantMsg    string
	}{
		{"missing product", "", []string{"1"}, "1", ErrProductMandatory, "Product is mandatory"},
		{"blank product", "   ", []string{"1"}, "1", ErrProductMandatory, "Product is mandatory"},
		{"unknown product", "X", []string{"1"}, "1", ErrInvalidProduct, "Invalid product. Use W, P or E."},
		{"lowercase product", "w", []string{"1"}, "1", ErrInvalidProduct, "Invalid product. Use W, P or E."},
		{"nil selections", "W", nil, "1", ErrSelectionsMandatory, "Selections is mandatory"},
		{"blank selection", "W", []string{" "}, "1", ErrSelectionsMandatory, "Selections is mandatory"},
		{"exacta single", "E", []string{"1"}, "1", ErrExactaSelectionsPair, "Exacta bet selections must be for first and second position"},
		{"exacta triple", "E", []string{"1", "2", "3"}, "1", ErrExactaSelectionsPair, "Exacta bet selections must be for first and second position"},
		{"win two runners", "W", []string{"1", "2"}, "1", ErrSingleSelection, "Win and Place bet selections must be a single runner"},
		{"win not a number", "W", []string{"a"}, "1", ErrSelectionsNotWhole, "Selections must be whole numbers"},
		{"place zero", "P", []string{"0"}, "1", ErrSelectionsNotWhole, "Selections must be whole numbers"},
		{"place leading zero", "P", []string{"01"}, "1", ErrSelectionsNotWhole, "Selections must be whole numbers"},
		{"win decimal", "W", []string{"1.5"}, "1", ErrSelectionsNotWhole, "Selections must be whole numbers"},
		{"exacta not a number", "E", []string{"1", "x"}, "1", ErrExactaSelectionsWhole, "Exacta bet selections must be whole numbers"},
		{"exacta same runner", "E", []string{"2", " 2"}, "1", ErrExactaSameRunner, "Exacta bet selections must be different runners"},
		{"missing stake", "W", []string{"1"}, "", ErrStakeMandatory, "Stake is mandatory"},
		{"blank stake", "W", []string{"1"}, "  ", ErrStakeMandatory, "Stake is mandatory"},
		{"zero stake", "W", []string{"1"}, "0", ErrStakeNotWhole, "Stake needs to be a whole number greater than 0"},
		{"negative stake", "W", []string{"1"}, "-5", ErrStakeNotWhole, "Stake needs to be a whole number greater than 0"},
		{"decimal stake", "W", []string{"1"}, "2.5", ErrStakeNotWhole, "Stake needs to be a whole number greater than 0"},
		{"overflowing stake", "W", []string{"1"}, "99999999999999999999", ErrStakeNotWhole, "Stake needs to be a whole number greater than 0"},
		{"product checked first", "", nil, "", ErrProductMandatory, "Product is mandatory"},
		{"selections before stake", "W", []string{"x"}, "", ErrSelectionsNotWhole, "Selections must be whole numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBet(tt.product, tt.selections, tt.stake)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !apperrors.IsValidation(err) {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestNewBet_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		bet, err := NewBet("W", []string{"1"}, "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[bet.ID] {
			t.Fatalf("duplicate bet id %s", bet.ID)
		}
		seen[bet.ID] = true
	}
}

func TestBet_Accessors(t *testing.T) {
	bet := mustBet(t, "E", "4", "7", "3")

	if bet.Product() != Exacta {
		t.Errorf("Product() = %v, want E", bet.Product())
	}
	sel := bet.Selections()
	if len(sel) != 2 || sel[0] != "4" || sel[1] != "7" {
		t.Errorf("Selections() = %v, want [4 7]", sel)
	}
}

func TestBet_MarshalJSON(t *testing.T) {
	bet := mustBet(t, "P", "5", "20")

	data, err := json.Marshal(bet)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["id"] != bet.ID {
		t.Errorf("id = %v, want %s", got["id"], bet.ID)
	}
	if got["product"] != "P" {
		t.Errorf("product = %v, want P", got["product"])
	}
	if got["stake"] != float64(20) {
		t.Errorf("stake = %v, want 20", got["stake"])
	}
}

func TestParseProduct(t *testing.T) {
	for _, p := range AllProducts() {
		got, err := ParseProduct(" " + p.String() + " ")
		if err != nil || got != p {
			t.Errorf("ParseProduct(%q) = %v, %v", p, got, err)
		}
	}

	names := map[Product]string{Win: "Win", Place: "Place", Exacta: "Exacta"}
	for p, want := range names {
		if p.Name() != want {
			t.Errorf("%s.Name() = %q, want %q", p, p.Name(), want)
		}
	}
}

// mustBet builds a bet from a product, its runners and a stake as the last argument.
func mustBet(t *testing.T, product string, args ...string) Bet {
	t.Helper()
	selections, stake := args[:len(args)-1], args[len(args)-1]
	bet, err := NewBet(product, selections, stake)
	if err != nil {
		t.Fatalf("NewBet(%s, %v, %s): %v", product, selections, stake, err)
	}
	return bet
}
