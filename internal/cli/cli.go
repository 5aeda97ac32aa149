// Package cli runs an interactive betting session over a line-oriented
// stream: bets are placed one per line until the race result is entered,
// at which point the dividends are printed and the session ends.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abrezinsky/totebet/internal/logger"
	"github.com/abrezinsky/totebet/internal/services"
	"github.com/abrezinsky/totebet/internal/tote"
)

const prompt = "\n> "

const introText = `Welcome to simple Tote Betting game!!!

Race has already started. Please use following formats to place your bets
	Bet:<product>:<selections>:<stake>
		<product> is one of W, P, E
		<selections> is either a single runner number (e.g. 4 ) for Win and Place, or two runner numbers (e.g. 4,3 ) for Exacta
		<stake> is an amount in whole dollars (e.g. 35 )

At the end enter race result in following format
	Result:<first>:<second>:<third>
`

// CLI is a single betting session on the race served by a ToteServicer
type CLI struct {
	log  logger.Logger
	tote services.ToteServicer
	out  io.Writer
}

// New creates a CLI writing its output to out
func New(log logger.Logger, tote services.ToteServicer, out io.Writer) *CLI {
	return &CLI{log: log, tote: tote, out: out}
}

// Run reads commands from in until a result concludes the race, in is
// exhausted or ctx is cancelled. Rejected commands are reported and the
// session continues.
func (c *CLI) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(c.out, introText)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			c.log.Debug("Input closed before a result was entered")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		done, err := c.handle(ctx, line)
		if err != nil {
			fmt.Fprintln(c.out, err.Error())
			continue
		}
		if done {
			return nil
		}
	}
}

// handle executes one line and reports whether the session is over
func (c *CLI) handle(ctx context.Context, line string) (bool, error) {
	cmd, err := Parse(line)
	if err != nil {
		return false, err
	}

	switch cmd := cmd.(type) {
	case BetCommand:
		bet, err := c.tote.PlaceBet(ctx, cmd.Product, cmd.Selections, cmd.Stake)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "Your bet is placed with id %s\n", bet.ID)
		return false, nil

	case ResultCommand:
		report, err := c.tote.Conclude(ctx, cmd.Runners)
		if report == nil {
			return false, err
		}
		if err != nil {
			// The race is concluded; only the journal write failed
			c.log.Error("Dividends not journaled", "error", err)
		}
		fmt.Fprintln(c.out, "Race concluded")
		fmt.Fprintln(c.out, "Dividends are")
		WriteDividends(c.out, report)
		return true, nil
	}

	return false, ErrInvalidInput
}

// WriteDividends prints one "<product>:<runner>:$<dividend>" line per
// dividend: Win, the three Place positions, then Exacta.
func WriteDividends(w io.Writer, report *tote.DividendReport) {
	for _, line := range report.Lines() {
		fmt.Fprintf(w, "%s:%s:$%s\n", line.Product, line.Runner, line.Dividend.StringFixed(2))
	}
}
