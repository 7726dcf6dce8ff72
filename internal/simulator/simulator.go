// Package simulator plays scripted bot-vs-bot sessions to measure how a
// strategy performs. Each hand runs on a fresh table with its own seed and a
// rotated button, so results are reproducible and free of positional bias.
package simulator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemcore/internal/bot"
	"github.com/lox/holdemcore/internal/fileutil"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/server"
	"github.com/lox/holdemcore/internal/statistics"
)

// HeroName is the tracked player's seat name in every simulated hand.
const HeroName = "hero"

// Config describes one simulation session.
type Config struct {
	Hands      int
	Hero       string // hero strategy name
	Opponents  string // opponent strategy name, or "mixed"
	Players    int    // seats per hand, hero included
	SmallBlind int
	BigBlind   int
	BuyIn      int
	Seed       int64

	// HistoryPath, when set, receives a transcript of every hand.
	HistoryPath string

	Logger *log.Logger
}

func (c *Config) applyDefaults() {
	if c.Hands == 0 {
		c.Hands = 1000
	}
	if c.Hero == "" {
		c.Hero = "tight"
	}
	if c.Opponents == "" {
		c.Opponents = "caller"
	}
	if c.Players == 0 {
		c.Players = 6
	}
	if c.SmallBlind == 0 {
		c.SmallBlind = 5
	}
	if c.BigBlind == 0 {
		c.BigBlind = c.SmallBlind * 2
	}
	if c.BuyIn == 0 {
		c.BuyIn = c.BigBlind * 100
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stderr)
	}
}

// Simulator runs sessions from a config.
type Simulator struct {
	config Config
}

// New creates a simulator. Zero config fields take defaults.
func New(config Config) *Simulator {
	config.applyDefaults()
	return &Simulator{config: config}
}

// opponentStrategy picks the strategy for opponent seat i. "mixed" cycles
// through the non-trivial strategies so the hero faces a spread of styles.
func (s *Simulator) opponentStrategy(i int) string {
	if s.config.Opponents != "mixed" {
		return s.config.Opponents
	}
	mix := []string{"caller", "random", "tight"}
	return mix[i%len(mix)]
}

// Run plays the configured number of hands and aggregates the hero's
// results. The context cancels a long session between hands.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Players < 2 {
		return nil, fmt.Errorf("need at least 2 players, have %d", s.config.Players)
	}
	if _, err := bot.New(s.config.Hero, 0); err != nil {
		return nil, fmt.Errorf("hero: %w", err)
	}

	stats := statistics.New()
	var transcripts []string

	for hand := 0; hand < s.config.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		handSeed := s.config.Seed + int64(hand)
		button := hand % s.config.Players

		record, err := s.playHand(ctx, handSeed, button)
		if err != nil {
			return nil, fmt.Errorf("hand %d (seed %d): %w", hand+1, handSeed, err)
		}

		stats.Add(s.resultFor(record, handSeed, button))
		if s.config.HistoryPath != "" {
			transcripts = append(transcripts, record.Summary())
		}
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics self-check: %w", err)
	}

	if s.config.HistoryPath != "" {
		data := []byte(strings.Join(transcripts, "\n"))
		if err := fileutil.WriteFileAtomic(s.config.HistoryPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing history: %w", err)
		}
		s.config.Logger.Info("Wrote hand history", "path", s.config.HistoryPath, "hands", len(transcripts))
	}
	return stats, nil
}

// playHand sets up a fresh table and plays exactly one hand on it. The hero
// always holds seat 0; rotating the button moves them through every
// position over the session.
func (s *Simulator) playHand(ctx context.Context, seed int64, button int) (*game.HandRecord, error) {
	engine := game.New(
		game.WithSeats(s.config.Players),
		game.WithBlinds(s.config.SmallBlind, s.config.BigBlind),
		game.WithSeed(seed),
	)
	recorder := game.NewRecorder()
	engine.EventBus().Subscribe(recorder)

	runner := server.NewRunner(engine, s.config.Logger, 0)

	hero, err := bot.New(s.config.Hero, seed)
	if err != nil {
		return nil, err
	}
	if _, err := runner.AddAgent(server.NewBotAgent(HeroName, hero, s.config.Logger), s.config.BuyIn); err != nil {
		return nil, err
	}
	for i := 0; i < s.config.Players-1; i++ {
		strategy, err := bot.New(s.opponentStrategy(i), seed+int64(i)+1)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("villain-%d", i+1)
		if _, err := runner.AddAgent(server.NewBotAgent(name, strategy, s.config.Logger), s.config.BuyIn); err != nil {
			return nil, err
		}
	}

	if err := engine.SetButton(button); err != nil {
		return nil, err
	}
	if err := runner.PlayHand(ctx); err != nil {
		return nil, err
	}

	record := recorder.LastHand()
	if record == nil || !record.Complete {
		return nil, fmt.Errorf("hand did not complete")
	}
	if !record.Balanced() {
		return nil, fmt.Errorf("hand %s did not balance", record.HandID)
	}
	return record, nil
}

// resultFor reduces a hand record to the hero's line in the session stats.
// Seat is the hero's clockwise distance from the button, so the seat
// breakdown reads as positions: 0 = button, 1 = small blind, and so on.
func (s *Simulator) resultFor(record *game.HandRecord, seed int64, button int) statistics.HandResult {
	position := (s.config.Players - button) % s.config.Players
	return statistics.HandResult{
		NetBB:          float64(record.NetDeltas[HeroName]) / float64(s.config.BigBlind),
		Seed:           seed,
		Seat:           position,
		WentToShowdown: len(record.Rankings) > 0,
		PotBB:          float64(record.PotSize) / float64(s.config.BigBlind),
	}
}
