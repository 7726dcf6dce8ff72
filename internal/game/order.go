package game

import "sort"

// Action order rules. Ordering is always derived the same way: sort the
// active seats by clockwise distance from a reference seat, then move the
// reference itself to the end of the list when it acts last. Preflop the
// reference is the big blind (so under the gun opens and the blind keeps its
// option); postflop it is the button.

// clockwiseDistance returns the number of seats from `from` to `to` moving
// clockwise around a table of numSeats seats.
func clockwiseDistance(from, to, numSeats int) int {
	return ((to-from)%numSeats + numSeats) % numSeats
}

// orderFrom sorts seats by clockwise distance from ref, rotating ref itself
// to the end when it is among them.
func orderFrom(seats []int, numSeats, ref int) []int {
	order := make([]int, len(seats))
	copy(order, seats)
	sort.Slice(order, func(i, j int) bool {
		return clockwiseDistance(ref, order[i], numSeats) < clockwiseDistance(ref, order[j], numSeats)
	})
	if len(order) > 0 && order[0] == ref {
		order = append(order[1:], ref)
	}
	return order
}

// firstSeatAfter returns the active seat nearest clockwise from (and
// excluding) the given seat. Seats must be non-empty.
func firstSeatAfter(seats []int, numSeats, from int) int {
	best := seats[0]
	bestDist := numSeats + 1
	for _, s := range seats {
		if s == from {
			continue
		}
		if d := clockwiseDistance(from, s, numSeats); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

// BlindSeats returns the small and big blind seats for the given active
// seats and button. Heads-up the button posts the small blind; otherwise the
// blinds are the first two active seats clockwise of the button.
func BlindSeats(seats []int, numSeats, button int) (sb, bb int) {
	onButton := false
	for _, s := range seats {
		if s == button {
			onButton = true
			break
		}
	}

	if len(seats) == 2 && onButton {
		return button, firstSeatAfter(seats, numSeats, button)
	}

	sb = firstSeatAfter(seats, numSeats, button)
	bb = firstSeatAfter(seats, numSeats, sb)
	return sb, bb
}

// ActionOrder returns the seats in acting order for a street together with
// the bet already live when the street opens. Preflop opens against the big
// blind with the blind seat acting last; postflop streets open at zero with
// the button acting last.
func ActionOrder(seats []int, numSeats, button int, street Street, bigBlind int) ([]int, int) {
	if len(seats) == 0 {
		return nil, 0
	}

	if street == Preflop {
		_, bb := BlindSeats(seats, numSeats, button)
		return orderFrom(seats, numSeats, bb), bigBlind
	}

	return orderFrom(seats, numSeats, button), 0
}
