package poker

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidCardCount is returned when the evaluator is called with the
// wrong number of cards.
var ErrInvalidCardCount = errors.New("invalid card count")

// EvaluateFive ranks exactly five cards
func EvaluateFive(cards []Card) (HandRanking, error) {
	if len(cards) != 5 {
		return HandRanking{}, fmt.Errorf("%w: got %d cards, want 5", ErrInvalidCardCount, len(cards))
	}

	sorted := make([]Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}
	straight, straightHigh := checkStraight(sorted)

	counts := make(map[Rank]int, 5)
	for _, c := range sorted {
		counts[c.Rank]++
	}
	groups := rankGroups(counts)

	r := HandRanking{Cards: sorted}
	switch {
	case flush && straight:
		r.Primary = straightHigh
		if straightHigh == Ace {
			r.Category = RoyalFlush
		} else {
			r.Category = StraightFlush
		}
	case groups[0].count == 4:
		r.Category = FourOfAKind
		r.Primary = groups[0].rank
		r.Kickers = []Rank{groups[1].rank}
	case groups[0].count == 3 && groups[1].count == 2:
		r.Category = FullHouse
		r.Primary = groups[0].rank
		r.Secondary = groups[1].rank
	case flush:
		r.Category = Flush
		r.Primary = sorted[0].Rank
		r.Kickers = ranksOf(sorted[1:])
	case straight:
		r.Category = Straight
		r.Primary = straightHigh
	case groups[0].count == 3:
		r.Category = ThreeOfAKind
		r.Primary = groups[0].rank
		r.Kickers = []Rank{groups[1].rank, groups[2].rank}
	case groups[0].count == 2 && groups[1].count == 2:
		r.Category = TwoPair
		r.Primary = groups[0].rank
		r.Secondary = groups[1].rank
		r.Kickers = []Rank{groups[2].rank}
	case groups[0].count == 2:
		r.Category = Pair
		r.Primary = groups[0].rank
		r.Kickers = []Rank{groups[1].rank, groups[2].rank, groups[3].rank}
	default:
		r.Category = HighCard
		r.Primary = sorted[0].Rank
		r.Kickers = ranksOf(sorted[1:])
	}

	return r, nil
}

// EvaluateSeven ranks the best five-card hand out of exactly seven cards by
// evaluating all 21 five-card subsets. The brute force is deliberate at this
// scale; it keeps every ranking auditable against EvaluateFive.
func EvaluateSeven(cards []Card) (HandRanking, error) {
	if len(cards) != 7 {
		return HandRanking{}, fmt.Errorf("%w: got %d cards, want 7", ErrInvalidCardCount, len(cards))
	}

	var best HandRanking
	first := true
	hand := make([]Card, 5)
	for _, combo := range combinations(7, 5) {
		for i, idx := range combo {
			hand[i] = cards[idx]
		}
		ranking, err := EvaluateFive(hand)
		if err != nil {
			return HandRanking{}, err
		}
		if first || ranking.Compare(best) > 0 {
			best = ranking
			first = false
		}
	}
	return best, nil
}

// EvaluateBest ranks the best five-card hand from five, six or seven cards.
// Six cards cover a player deciding on the turn.
func EvaluateBest(cards []Card) (HandRanking, error) {
	switch len(cards) {
	case 5:
		return EvaluateFive(cards)
	case 7:
		return EvaluateSeven(cards)
	case 6:
	default:
		return HandRanking{}, fmt.Errorf("%w: got %d cards, want 5 to 7", ErrInvalidCardCount, len(cards))
	}

	var best HandRanking
	hand := make([]Card, 5)
	for leave := range 6 {
		n := 0
		for i, c := range cards {
			if i == leave {
				continue
			}
			hand[n] = c
			n++
		}
		ranking, err := EvaluateFive(hand)
		if err != nil {
			return HandRanking{}, err
		}
		if leave == 0 || ranking.Compare(best) > 0 {
			best = ranking
		}
	}
	return best, nil
}

// checkStraight reports whether the descending-sorted cards form five
// consecutive ranks and returns the high rank. The wheel (A 5 4 3 2) is a
// straight with Five high; straights never wrap past the Ace.
func checkStraight(sorted []Card) (bool, Rank) {
	consecutive := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rank != sorted[i].Rank+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true, sorted[0].Rank
	}

	if sorted[0].Rank == Ace &&
		sorted[1].Rank == Five &&
		sorted[2].Rank == Four &&
		sorted[3].Rank == Three &&
		sorted[4].Rank == Two {
		return true, Five
	}

	return false, 0
}

type rankGroup struct {
	rank  Rank
	count int
}

// rankGroups returns rank groups ordered by count then rank, both descending
func rankGroups(counts map[Rank]int) []rankGroup {
	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func ranksOf(cards []Card) []Rank {
	ranks := make([]Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}

// combinations returns all r-element index subsets of [0, n)
func combinations(n, r int) [][]int {
	var result [][]int
	combo := make([]int, r)
	var generate func(start, idx int)
	generate = func(start, idx int) {
		if idx == r {
			c := make([]int, r)
			copy(c, combo)
			result = append(result, c)
			return
		}
		for i := start; i <= n-(r-idx); i++ {
			combo[idx] = i
			generate(i+1, idx+1)
		}
	}
	generate(0, 0)
	return result
}
