package errors

import (
	"errors"
	"fmt"
	"testing"
)

// =============================================================================
// Test Error Types and Constructors
// =============================================================================

func TestNotFound(t *testing.T) {
	err := NotFound("bet not found")

	if err.Kind != ErrNotFound {
		t.Errorf("expected Kind to be ErrNotFound (%d), got %d", ErrNotFound, err.Kind)
	}
	if err.Message != "bet not found" {
		t.Errorf("expected Message to be 'bet not found', got '%s'", err.Message)
	}
	if err.Err != nil {
		t.Errorf("expected Err to be nil, got %v", err.Err)
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("bet %s not found", "abc")

	if err.Kind != ErrNotFound {
		t.Errorf("expected Kind to be ErrNotFound (%d), got %d", ErrNotFound, err.Kind)
	}
	if err.Message != "bet abc not found" {
		t.Errorf("expected Message to be 'bet abc not found', got '%s'", err.Message)
	}
}

func TestValidation(t *testing.T) {
	err := Validation("Stake is mandatory")

	if err.Kind != ErrValidation {
		t.Errorf("expected Kind to be ErrValidation (%d), got %d", ErrValidation, err.Kind)
	}
	if err.Error() != "Stake is mandatory" {
		t.Errorf("expected Error() to be the bare message, got '%s'", err.Error())
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("%s bets are not offered for this race", "Exacta")

	if err.Kind != ErrValidation {
		t.Errorf("expected Kind to be ErrValidation (%d), got %d", ErrValidation, err.Kind)
	}
	expectedMsg := "Exacta bets are not offered for this race"
	if err.Message != expectedMsg {
		t.Errorf("expected Message to be '%s', got '%s'", expectedMsg, err.Message)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("Race already concluded")

	if err.Kind != ErrConflict {
		t.Errorf("expected Kind to be ErrConflict (%d), got %d", ErrConflict, err.Kind)
	}
	if err.Error() != "Race already concluded" {
		t.Errorf("expected 'Race already concluded', got '%s'", err.Error())
	}
}

func TestInternal(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal(cause)

	if err.Kind != ErrInternal {
		t.Errorf("expected Kind to be ErrInternal, got %d", err.Kind)
	}
	if err.Error() != "internal error: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("constraint failed")
	err := Wrap(cause, ErrConflict, "duplicate bet")

	if err.Kind != ErrConflict {
		t.Errorf("expected ErrConflict, got %d", err.Kind)
	}
	if err.Error() != "duplicate bet: constraint failed" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if errors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

// =============================================================================
// Classification helpers
// =============================================================================

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("x"), ErrValidation},
		{"conflict", Conflict("x"), ErrConflict},
		{"not found", NotFound("x"), ErrNotFound},
		{"wrapped by fmt", fmt.Errorf("outer: %w", Conflict("x")), ErrConflict},
		{"plain error", errors.New("x"), ErrInternal},
		{"nil", nil, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationAndIsConflict(t *testing.T) {
	if !IsValidation(Validation("x")) {
		t.Error("expected IsValidation to be true")
	}
	if IsValidation(nil) {
		t.Error("expected IsValidation(nil) to be false")
	}
	if !IsConflict(fmt.Errorf("wrap: %w", Conflict("x"))) {
		t.Error("expected IsConflict to see through wrapping")
	}
	if IsConflict(Validation("x")) {
		t.Error("validation error is not a conflict")
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		ErrInternal:   "internal",
		ErrNotFound:   "not_found",
		ErrValidation: "validation",
		ErrConflict:   "conflict",
	}
	for kind, want := range tests {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := Conflict("Race not yet concluded")
	wrapped := fmt.Errorf("calculate: %w", sentinel)

	if !errors.Is(wrapped, sentinel) {
		t.Error("expected errors.Is to match the same sentinel pointer")
	}
	if errors.Is(wrapped, Conflict("Race not yet concluded")) {
		t.Error("a fresh error with the same message must not match")
	}
}
