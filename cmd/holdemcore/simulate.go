package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/lox/holdemcore/internal/simulator"
)

// SimulateCmd plays a scripted bot-vs-bot session and reports the hero
// strategy's win rate.
type SimulateCmd struct {
	Hands      int    `kong:"default='1000',help='Hands to play'"`
	Hero       string `kong:"default='tight',help='Strategy under test'"`
	Opponents  string `kong:"default='caller',help='Opponent strategy, or mixed'"`
	Players    int    `kong:"default='6',help='Seats per hand, hero included'"`
	SmallBlind int    `kong:"default='5',help='Small blind'"`
	BigBlind   int    `kong:"default='10',help='Big blind'"`
	Seed       int64  `kong:"default='0',help='Session seed, 0 for random'"`
	History    string `kong:"help='Write hand transcripts to this file'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Hands:       c.Hands,
		Hero:        c.Hero,
		Opponents:   c.Opponents,
		Players:     c.Players,
		SmallBlind:  c.SmallBlind,
		BigBlind:    c.BigBlind,
		Seed:        seed,
		HistoryPath: c.History,
		Logger:      logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s vs %s: %s\n", c.Hero, c.Opponents, stats.Summary())
	fmt.Printf("largest pot %.1f bb, session took %s\n", stats.MaxPotBB, time.Since(start).Round(time.Millisecond))

	positions := make([]int, 0, len(stats.Seats))
	for pos := range stats.Seats {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	for _, pos := range positions {
		seat := stats.Seats[pos]
		label := fmt.Sprintf("button+%d", pos)
		if pos == 0 {
			label = "button"
		}
		fmt.Printf("  %-9s %5d hands  %+.2f bb/hand\n", label, seat.Hands, seat.Mean())
	}
	return nil
}
