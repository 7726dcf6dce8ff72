// Package equity estimates hold'em win probabilities by Monte Carlo
// simulation. Each sample deals opponents from a Range, completes the board
// from the remaining deck and compares seven-card evaluations. Large sample
// counts fan out across workers; results are deterministic for a given
// source of randomness either way.
package equity

import (
	"context"
	"fmt"
	"math"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

// Samples below this run sequentially; the fan-out isn't worth it.
const parallelThreshold = 1000

// Worker count cap; more shows diminishing returns on the evaluator.
const maxWorkers = 8

// Result counts the outcomes of an equity simulation
type Result struct {
	Wins    int
	Ties    int
	Samples int
}

// Equity returns the hero's share of the pot in expectation, counting a win
// as 1 and an n-way tie as 1/2.
func (r Result) Equity() float64 {
	if r.Samples == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Samples)
}

// WinRate returns the fraction of samples the hero won outright
func (r Result) WinRate() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Samples)
}

// TieRate returns the fraction of samples the hero tied
func (r Result) TieRate() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.Samples)
}

// ConfidenceInterval returns the 95% interval around Equity, clamped to
// [0, 1]. The width shrinks with the square root of the sample count.
func (r Result) ConfidenceInterval() (lower, upper float64) {
	if r.Samples == 0 {
		return 0, 0
	}
	eq := r.Equity()
	se := math.Sqrt(eq * (1 - eq) / float64(r.Samples))
	margin := 1.96 * se
	return math.Max(0, eq-margin), math.Min(1, eq+margin)
}

// cardSet is a 52-bit set keyed by rank and suit
type cardSet uint64

func cardBit(c poker.Card) cardSet {
	return 1 << ((int(c.Rank)-int(poker.Two))*4 + int(c.Suit))
}

func (s *cardSet) add(c poker.Card) { *s |= cardBit(c) }

func (s cardSet) contains(c poker.Card) bool { return s&cardBit(c) != 0 }

// Range samples a plausible pair of opponent hole cards from the cards still
// available. Implementations must not modify available.
type Range interface {
	Sample(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool)
}

// RandomRange deals opponents any two available cards
type RandomRange struct{}

func (RandomRange) Sample(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	if len(available) < 2 {
		return [2]poker.Card{}, false
	}
	i := rng.IntN(len(available))
	j := rng.IntN(len(available) - 1)
	if j >= i {
		j++
	}
	return [2]poker.Card{available[i], available[j]}, true
}

// TightRange deals opponents premium hands: big pairs, two broadway cards,
// an ace with a good kicker, or high suited connectors. Falls back to any
// two cards when the available cards can't make one.
type TightRange struct{}

func (TightRange) Sample(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	for range 128 {
		hand, ok := RandomRange{}.Sample(available, rng)
		if !ok {
			return hand, false
		}
		if premium(hand) {
			return hand, true
		}
	}
	return RandomRange{}.Sample(available, rng)
}

func premium(hand [2]poker.Card) bool {
	a, b := hand[0], hand[1]
	if a.Rank == b.Rank {
		return a.Rank >= poker.Ten
	}
	if a.Rank >= poker.Jack && b.Rank >= poker.Jack {
		return true
	}
	hi, lo := a.Rank, b.Rank
	if hi < lo {
		hi, lo = lo, hi
	}
	if hi == poker.Ace && lo >= poker.Ten {
		return true
	}
	return a.Suit == b.Suit && hi-lo == 1 && lo >= poker.Nine
}

// Estimate runs a Monte Carlo equity simulation for the hero's hole cards
// against the given number of opponents, each dealt from opp (RandomRange
// when nil). The hero wins a sample by beating every opponent and ties by
// matching the best of them. rng drives all sampling, so a seeded rng gives
// reproducible results.
func Estimate(ctx context.Context, hole, board []poker.Card, opp Range, opponents, samples int, rng *rand.Rand) (Result, error) {
	if len(hole) != 2 {
		return Result{}, fmt.Errorf("equity: need two hole cards, got %d", len(hole))
	}
	if len(board) > 5 {
		return Result{}, fmt.Errorf("equity: board has %d cards, maximum is 5", len(board))
	}
	if opponents < 1 {
		return Result{}, fmt.Errorf("equity: need at least one opponent, got %d", opponents)
	}
	if samples < 1 {
		return Result{}, fmt.Errorf("equity: need at least one sample, got %d", samples)
	}
	if opp == nil {
		opp = RandomRange{}
	}

	var used cardSet
	for _, c := range hole {
		if used.contains(c) {
			return Result{}, fmt.Errorf("equity: duplicate card %s", c)
		}
		used.add(c)
	}
	for _, c := range board {
		if used.contains(c) {
			return Result{}, fmt.Errorf("equity: duplicate card %s", c)
		}
		used.add(c)
	}

	available := make([]poker.Card, 0, 52)
	for suit := poker.Spades; suit <= poker.Clubs; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			c := poker.Card{Rank: rank, Suit: suit}
			if !used.contains(c) {
				available = append(available, c)
			}
		}
	}
	if need := opponents*2 + 5 - len(board); need > len(available) {
		return Result{}, fmt.Errorf("equity: %d opponents need %d cards, only %d left in the deck", opponents, need, len(available))
	}

	if samples < parallelThreshold {
		return simulate(ctx, hole, board, available, opp, opponents, samples, rng)
	}

	workers := min(runtime.NumCPU(), maxWorkers)
	per, extra := samples/workers, samples%workers
	results := make([]Result, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := per
		if w < extra {
			n++
		}
		seed := rng.Int64()
		g.Go(func() error {
			r, err := simulate(ctx, hole, board, available, opp, opponents, n, randutil.New(seed))
			if err != nil {
				return err
			}
			results[w] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total.Wins += r.Wins
		total.Ties += r.Ties
		total.Samples += r.Samples
	}
	return total, nil
}

func simulate(ctx context.Context, hole, board, available []poker.Card, opp Range, opponents, samples int, rng *rand.Rand) (Result, error) {
	var res Result
	boardNeed := 5 - len(board)
	hero := make([]poker.Card, 7)
	other := make([]poker.Card, 7)
	pool := make([]poker.Card, len(available))
	holes := make([][2]poker.Card, opponents)

	for i := 0; i < samples; i++ {
		if i%512 == 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}
		}

		pool = pool[:len(available)]
		copy(pool, available)

		dealt := true
		for o := range opponents {
			hand, ok := opp.Sample(pool, rng)
			if !ok {
				dealt = false
				break
			}
			holes[o] = hand
			pool = removePair(pool, hand)
		}
		if !dealt {
			continue
		}

		copy(hero[:2], hole)
		copy(hero[2:], board)
		for f := range boardNeed {
			idx := rng.IntN(len(pool))
			hero[2+len(board)+f] = pool[idx]
			pool[idx] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		}

		heroRank, err := poker.EvaluateSeven(hero)
		if err != nil {
			continue
		}

		var bestOpp poker.HandRanking
		evaluated := true
		for o := range opponents {
			other[0], other[1] = holes[o][0], holes[o][1]
			copy(other[2:], hero[2:])
			oppRank, err := poker.EvaluateSeven(other)
			if err != nil {
				evaluated = false
				break
			}
			if o == 0 || oppRank.Compare(bestOpp) > 0 {
				bestOpp = oppRank
			}
		}
		if !evaluated {
			continue
		}

		switch c := heroRank.Compare(bestOpp); {
		case c > 0:
			res.Wins++
		case c == 0:
			res.Ties++
		}
		res.Samples++
	}
	return res, nil
}

// removePair swap-removes both of a sampled hand's cards from the pool
func removePair(pool []poker.Card, hand [2]poker.Card) []poker.Card {
	for _, card := range hand {
		for i, c := range pool {
			if c == card {
				pool[i] = pool[len(pool)-1]
				pool = pool[:len(pool)-1]
				break
			}
		}
	}
	return pool
}
