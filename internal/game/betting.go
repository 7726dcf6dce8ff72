package game

import "fmt"

// Street represents a betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// String returns the street name
func (s Street) String() string {
	if s < Preflop || s > River {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// Action represents a player betting action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
)

// String returns the action name
func (a Action) String() string {
	if a < Fold || a > Raise {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

// ParseStreet parses a street name as it appears on the wire
func ParseStreet(s string) (Street, error) {
	switch s {
	case "preflop":
		return Preflop, nil
	case "flop":
		return Flop, nil
	case "turn":
		return Turn, nil
	case "river":
		return River, nil
	default:
		return 0, fmt.Errorf("unknown street %q", s)
	}
}

// ParseAction parses an action name as it appears on the wire
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, s)
	}
}

// ValidAction describes one legal action for the player to act. Min and Max
// are new-total street bet amounts for Bet and Raise, and the chips to pay
// for Call.
type ValidAction struct {
	Action Action
	Min    int
	Max    int
}

// RoundTracker is the per-street cursor over a fixed acting order: who acts
// next, what they owe, and whether the round is over. A new tracker is
// created for every street and discarded when the street ends.
type RoundTracker struct {
	street     Street
	order      []*Player // fixed for the street
	cursor     int
	currentBet int
	bigBlind   int
	acted      map[string]bool
	lastRaiser string
}

// NewRoundTracker creates a tracker for one street. startingBet is the bet
// already live when the street opens: the big blind preflop, zero after.
func NewRoundTracker(street Street, order []*Player, startingBet, bigBlind int) *RoundTracker {
	return &RoundTracker{
		street:     street,
		order:      order,
		currentBet: startingBet,
		bigBlind:   bigBlind,
		acted:      make(map[string]bool, len(order)),
	}
}

// Street returns the tracker's street
func (rt *RoundTracker) Street() Street {
	return rt.street
}

// CurrentBet returns the live bet players must match
func (rt *RoundTracker) CurrentBet() int {
	return rt.currentBet
}

// LastRaiser returns the name of the last player to raise, or ""
func (rt *RoundTracker) LastRaiser() string {
	return rt.lastRaiser
}

// CurrentPlayer returns the player who must act next, or nil when no action
// is pending. Folded and all-in players are skipped, as are players who have
// matched the live bet and already acted. When the initial order is
// exhausted, the full order is re-scanned for players a raise has pulled
// back below the live bet.
func (rt *RoundTracker) CurrentPlayer() *Player {
	for i := rt.cursor; i < len(rt.order); i++ {
		p := rt.order[i]
		if !p.CanAct() {
			continue
		}
		if rt.acted[p.Name] && p.Bet >= rt.currentBet {
			continue
		}
		rt.cursor = i
		return p
	}

	for i, p := range rt.order {
		if !p.CanAct() {
			continue
		}
		if p.Bet < rt.currentBet {
			rt.cursor = i
			return p
		}
	}

	return nil
}

// RecordAction marks the current player as having acted and advances the
// cursor. Used for fold, check and call.
func (rt *RoundTracker) RecordAction(name string) {
	rt.acted[name] = true
	rt.cursor++
}

// RecordRaise marks the current player as having acted with the live bet
// raised to newBet. Earlier actors whose bets now trail the live amount are
// brought back into the loop by CurrentPlayer.
func (rt *RoundTracker) RecordRaise(name string, newBet int) {
	rt.acted[name] = true
	rt.lastRaiser = name
	if newBet > rt.currentBet {
		rt.currentBet = newBet
	}
	rt.cursor++
}

// RoundComplete returns true when at most one player remains in the hand, or
// when every player still able to act has matched the live bet and acted at
// least once this street.
func (rt *RoundTracker) RoundComplete() bool {
	inHand := 0
	for _, p := range rt.order {
		if p.InHand() {
			inHand++
		}
	}
	if inHand <= 1 {
		return true
	}

	for _, p := range rt.order {
		if !p.CanAct() {
			continue
		}
		if !rt.acted[p.Name] || p.Bet < rt.currentBet {
			return false
		}
	}
	return true
}

// CallAmount returns the chips the player owes to match the live bet
func (rt *RoundTracker) CallAmount(p *Player) int {
	owed := rt.currentBet - p.Bet
	if owed < 0 {
		return 0
	}
	return owed
}

// MinRaise returns the minimum new-total bet for a raise. The increment is a
// flat big blind on top of the live bet rather than the no-limit
// previous-raise-size rule; callers relying on cardroom-exact raise sizing
// should treat this as the house rule.
func (rt *RoundTracker) MinRaise() int {
	return rt.currentBet + rt.bigBlind
}
