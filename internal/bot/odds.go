package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/lox/holdemcore/internal/equity"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/randutil"
)

// oddsSamples keeps each decision under a millisecond or two. The estimate
// is noisy at this size but the thresholds below leave room for that.
const oddsSamples = 500

// Odds estimates its equity by simulation and compares it to the price the
// pot is offering. It is the strongest built-in and the slowest.
type Odds struct {
	rng       *rand.Rand
	opponents int
}

// NewOdds creates an Odds strategy that models the given number of
// opponents holding random cards.
func NewOdds(seed int64, opponents int) *Odds {
	if opponents < 1 {
		opponents = 1
	}
	return &Odds{rng: randutil.New(seed), opponents: opponents}
}

func (o *Odds) Name() string { return "odds" }

func (o *Odds) Act(s Situation) (game.Action, int) {
	res, err := equity.Estimate(context.Background(), s.HoleCards, s.Board, nil, o.opponents, oddsSamples, o.rng)
	if err != nil {
		return checkFold(s)
	}
	eq := res.Equity()

	if eq >= 0.75 {
		return aggress(s, max(s.MinRaise, s.Pot))
	}
	if s.ToCall == 0 {
		return game.Check, 0
	}
	// Price of continuing: the call's share of the pot after it goes in.
	price := float64(s.ToCall) / float64(s.Pot+s.ToCall)
	if eq >= price {
		return game.Call, 0
	}
	return game.Fold, 0
}
