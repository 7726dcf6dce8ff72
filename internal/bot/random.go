package bot

import (
	rand "math/rand/v2"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/randutil"
)

// Random plays a loose mix from a seeded generator. A table of them
// produces varied but reproducible action, which makes it the default
// sparring partner for simulations.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy seeded for reproducible play.
func NewRandom(seed int64) *Random {
	return &Random{rng: randutil.New(seed)}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Act(s Situation) (game.Action, int) {
	bb := s.BigBlind
	if bb <= 0 {
		bb = 1
	}
	roll := r.rng.IntN(100)
	if s.CurrentBet == 0 {
		if roll < 60 {
			return game.Check, 0
		}
		return aggress(s, s.MinRaise+r.rng.IntN(3*bb+1))
	}
	switch {
	case roll < 20:
		return checkFold(s)
	case roll < 85:
		return passive(s)
	default:
		return aggress(s, s.MinRaise+r.rng.IntN(3*bb+1))
	}
}
