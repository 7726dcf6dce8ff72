package bot

import (
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/poker"
)

// Tight opens a chart of premium hands preflop and continues only with made
// hands after the flop. It is fully deterministic, which keeps regression
// runs against it stable.
type Tight struct{}

func (Tight) Name() string { return "tight" }

func (Tight) Act(s Situation) (game.Action, int) {
	if s.Street == game.Preflop {
		return tightPreflop(s)
	}
	return tightPostflop(s)
}

func tightPreflop(s Situation) (game.Action, int) {
	pct := HandPercentile(s.HoleCards)
	switch {
	case pct >= 0.93:
		return aggress(s, max(3*s.BigBlind, s.MinRaise))
	case pct >= 0.65:
		if s.ToCall <= 10*s.BigBlind {
			return passive(s)
		}
		return game.Fold, 0
	default:
		return checkFold(s)
	}
}

func tightPostflop(s Situation) (game.Action, int) {
	cards := make([]poker.Card, 0, len(s.HoleCards)+len(s.Board))
	cards = append(cards, s.HoleCards...)
	cards = append(cards, s.Board...)
	ranking, err := poker.EvaluateBest(cards)
	if err != nil {
		return checkFold(s)
	}
	switch {
	case ranking.Category >= poker.TwoPair:
		return aggress(s, max(s.MinRaise, s.Pot))
	case ranking.Category == poker.Pair:
		if s.ToCall <= s.Pot {
			return passive(s)
		}
		return game.Fold, 0
	default:
		return checkFold(s)
	}
}
