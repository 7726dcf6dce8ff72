package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdemcore/internal/bot"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/server"
	"github.com/lox/holdemcore/internal/tui"
)

// PlayCmd runs a local table: the player in the terminal against house
// bots, no network involved.
type PlayCmd struct {
	Name       string `kong:"default='you',help='Your name at the table'"`
	Opponents  int    `kong:"default='2',help='Number of house bots'"`
	Strategy   string `kong:"default='tight',help='House bot strategy'"`
	SmallBlind int    `kong:"default='5',help='Small blind'"`
	BigBlind   int    `kong:"default='10',help='Big blind'"`
	BuyIn      int    `kong:"default='1000',help='Starting stack'"`
	Hands      int    `kong:"default='0',help='Stop after this many hands, 0 to play until one stack remains'"`
	Seed       int64  `kong:"default='0',help='Deck seed, 0 for random'"`
}

func (c *PlayCmd) Run() error {
	if c.Opponents < 1 {
		return fmt.Errorf("need at least one opponent")
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// The TUI owns the terminal, so nothing else may log to it.
	logger := discardLogger()

	engine := game.New(
		game.WithSeats(c.Opponents+1),
		game.WithBlinds(c.SmallBlind, c.BigBlind),
		game.WithSeed(seed),
		game.WithLogger(logger),
	)
	runner := server.NewRunner(engine, logger, 0)

	human := tui.NewHumanAgent(c.Name)
	if _, err := runner.AddAgent(human, c.BuyIn); err != nil {
		return err
	}
	for i := 0; i < c.Opponents; i++ {
		strategy, err := bot.New(c.Strategy, seed+int64(i)+1)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s-%d", strategy.Name(), i+1)
		if _, err := runner.AddAgent(server.NewBotAgent(name, strategy, logger), c.BuyIn); err != nil {
			return err
		}
	}

	model := tui.NewModel(c.Name)
	program := tea.NewProgram(model, tea.WithAltScreen())
	human.Attach(program)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := runner.Run(ctx, c.Hands)
		if ctx.Err() == nil {
			human.SessionEnded(err)
		}
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	cancel()

	if err := model.Err(); err != nil {
		return err
	}
	if winner := engine.GameWinner(); winner != nil {
		fmt.Printf("%s wins the table with %d chips\n", winner.Name, winner.Chips)
	}
	return nil
}
