package cli

import (
	"strings"

	"github.com/abrezinsky/totebet/internal/errors"
	"github.com/abrezinsky/totebet/internal/tote"
)

// ErrInvalidInput is returned for a line that is neither a Bet nor a Result.
var ErrInvalidInput = errors.Validation("Invalid input. Please specify either a Bet or Result.")

// Command is one parsed input line.
type Command interface {
	isCommand()
}

// BetCommand is "Bet:<product>:<selections>:<stake>".
type BetCommand struct {
	Product    string
	Selections []string
	Stake      string
}

// ResultCommand is "Result:<first>:<second>:<third>".
type ResultCommand struct {
	Runners []string
}

func (BetCommand) isCommand()    {}
func (ResultCommand) isCommand() {}

// Parse turns an input line into a Command. Field values are passed through
// untrimmed; the bet and result constructors own their validation.
func Parse(line string) (Command, error) {
	parts := strings.Split(strings.TrimSpace(line), ":")

	switch {
	case parts[0] == "Bet" && len(parts) == 4:
		selections := []string{parts[2]}
		if strings.TrimSpace(parts[1]) == tote.Exacta.String() {
			selections = strings.Split(parts[2], ",")
		}
		return BetCommand{Product: parts[1], Selections: selections, Stake: parts[3]}, nil

	case parts[0] == "Result" && len(parts) >= 2:
		return ResultCommand{Runners: parts[1:]}, nil
	}

	return nil, ErrInvalidInput
}
