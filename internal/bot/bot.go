// Package bot provides built-in opponents for filling tables. A Strategy is
// a pure decision function over a Situation snapshot, which keeps the bots
// testable without a running table; the server wraps a Strategy in an agent
// to seat it.
package bot

import (
	"fmt"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/poker"
)

// Situation is everything a strategy sees when asked to act. Amounts follow
// the table's convention: MinRaise and MaxBet are new street totals, ToCall
// is chips to pay. MinRaise is the smallest legal total for whichever of
// bet or raise is on offer.
type Situation struct {
	HoleCards []poker.Card
	Board     []poker.Card
	Street    game.Street

	Pot        int
	CurrentBet int
	ToCall     int
	MinRaise   int
	MaxBet     int
	Bet        int // already committed this street
	BigBlind   int
}

// Strategy decides one action from a situation. Implementations are driven
// from a single goroutine and must return an action the table would accept.
type Strategy interface {
	Name() string
	Act(s Situation) (game.Action, int)
}

// New builds a strategy by name. Seeded strategies derive their generator
// from seed so the same seed replays the same session.
func New(name string, seed int64) (Strategy, error) {
	switch name {
	case "folder":
		return Folder{}, nil
	case "caller":
		return Caller{}, nil
	case "random":
		return NewRandom(seed), nil
	case "tight":
		return Tight{}, nil
	case "odds":
		return NewOdds(seed, 1), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Names lists the strategies New accepts.
func Names() []string {
	return []string{"folder", "caller", "random", "tight", "odds"}
}

// checkFold takes the free option when there is one and gives up otherwise.
func checkFold(s Situation) (game.Action, int) {
	if s.ToCall == 0 {
		return game.Check, 0
	}
	return game.Fold, 0
}

// passive checks when free and calls otherwise.
func passive(s Situation) (game.Action, int) {
	if s.ToCall == 0 {
		return game.Check, 0
	}
	return game.Call, 0
}

// aggress bets or raises to the given street total, clamped to the legal
// window. When the stack cannot exceed the current bet no raise is on
// offer, so it degrades to passive.
func aggress(s Situation, total int) (game.Action, int) {
	if s.MaxBet <= s.CurrentBet {
		return passive(s)
	}
	if total < s.MinRaise {
		total = s.MinRaise
	}
	if total > s.MaxBet {
		total = s.MaxBet
	}
	if s.CurrentBet == 0 {
		return game.Bet, total
	}
	return game.Raise, total
}
