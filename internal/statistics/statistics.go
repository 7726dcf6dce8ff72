// Package statistics aggregates per-hand results from simulated sessions
// into win-rate numbers with confidence bounds. Everything is in big blinds
// so sessions at different stakes compare directly.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is one hand's outcome from the tracked player's point of view.
type HandResult struct {
	NetBB          float64 // chips won or lost, in big blinds
	Seed           int64   // deck seed, kept for replaying outliers
	Seat           int     // the tracked player's seat that hand
	WentToShowdown bool
	PotBB          float64 // final pot, in big blinds
}

// SeatStats accumulates results for one seat position.
type SeatStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Mean returns the seat's average result in big blinds per hand.
func (ss SeatStats) Mean() float64 {
	if ss.Hands == 0 {
		return 0
	}
	return ss.SumBB / float64(ss.Hands)
}

// Statistics accumulates a session of hand results.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
	Values []float64 // every NetBB, kept for median and percentiles

	// Showdown vs fold-equity split. The BB buckets take losses as well as
	// wins so they sum to SumBB.
	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Seats map[int]*SeatStats

	MaxPotBB float64
}

// New returns an empty accumulator.
func New() *Statistics {
	return &Statistics{Seats: make(map[int]*SeatStats)}
}

// Add incorporates one hand.
func (s *Statistics) Add(result HandResult) {
	net := result.NetBB
	s.Hands++
	s.SumBB += net
	s.SumBB2 += net * net
	s.Values = append(s.Values, net)

	if result.WentToShowdown {
		s.ShowdownBB += net
		if net > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += net
		if net > 0 {
			s.NonShowdownWins++
		}
	}

	if s.Seats == nil {
		s.Seats = make(map[int]*SeatStats)
	}
	seat := s.Seats[result.Seat]
	if seat == nil {
		seat = &SeatStats{}
		s.Seats[result.Seat] = seat
	}
	seat.Hands++
	seat.SumBB += net
	seat.SumBB2 += net * net

	if result.PotBB > s.MaxPotBB {
		s.MaxPotBB = result.PotBB
	}
}

// Mean returns the average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (low, high float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the middle result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at p in [0,1], linearly interpolated.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// Validate cross-checks the accumulator's own ledgers. A failure means a
// bug in collection, not a bad session.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("no hands recorded")
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("%d values recorded for %d hands", len(s.Values), s.Hands)
	}
	if diff := s.SumBB - s.ShowdownBB - s.NonShowdownBB; math.Abs(diff) > 1e-6 {
		return fmt.Errorf("showdown split off by %.6f bb", diff)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("%d winning hands out of %d", wins, s.Hands)
	}
	seatHands := 0
	for _, seat := range s.Seats {
		seatHands += seat.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat totals cover %d of %d hands", seatHands, s.Hands)
	}
	return nil
}

// Summary renders the headline numbers for a report.
func (s *Statistics) Summary() string {
	low, high := s.ConfidenceInterval95()
	return fmt.Sprintf("%d hands, %+.2f bb/hand (95%% CI %+.2f..%+.2f), median %+.2f, showdown %d won / fold-equity %d won",
		s.Hands, s.Mean(), low, high, s.Median(), s.ShowdownWins, s.NonShowdownWins)
}
