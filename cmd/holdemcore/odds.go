package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/holdemcore/internal/equity"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

// OddsCmd estimates hand equity by Monte Carlo simulation.
type OddsCmd struct {
	Hole      string `kong:"arg,help='Hole cards, e.g. \"As Kh\"'"`
	Board     string `kong:"help='Community cards dealt so far'"`
	Opponents int    `kong:"default='1',help='Number of opponents'"`
	Range     string `kong:"default='random',enum='random,tight',help='Opponent range'"`
	Samples   int    `kong:"default='10000',help='Simulation samples'"`
	Seed      int64  `kong:"default='0',help='Simulation seed, 0 for random'"`
}

func (c *OddsCmd) Run() error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}

	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	var opp equity.Range = equity.RandomRange{}
	if c.Range == "tight" {
		opp = equity.TightRange{}
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result, err := equity.Estimate(context.Background(), hole, board, opp, c.Opponents, c.Samples, randutil.New(seed))
	if err != nil {
		return err
	}

	lower, upper := result.ConfidenceInterval()
	fmt.Printf("%s", poker.FormatCards(hole))
	if len(board) > 0 {
		fmt.Printf(" on %s", poker.FormatCards(board))
	}
	fmt.Printf(" vs %d %s opponent(s):\n", c.Opponents, c.Range)
	fmt.Printf("  equity %.1f%% (95%% CI %.1f%%..%.1f%%)\n", result.Equity()*100, lower*100, upper*100)
	fmt.Printf("  win %.1f%%  tie %.1f%%  over %d samples\n", result.WinRate()*100, result.TieRate()*100, result.Samples)
	return nil
}
