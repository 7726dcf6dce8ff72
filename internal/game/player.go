package game

import (
	"github.com/lox/holdemcore/poker"
)

// Player represents a seated player. The engine mutates chip counts and bet
// amounts in place as hands are played; callers must not modify fields while
// a hand is live.
type Player struct {
	Seat      int
	Name      string
	Chips     int
	HoleCards []poker.Card
	Folded    bool
	AllIn     bool
	Bet       int // chips committed this street
	TotalBet  int // chips committed this hand
}

// CanAct returns true if the player can still take a betting action
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// InHand returns true if the player has not folded
func (p *Player) InHand() bool {
	return !p.Folded
}

// pay moves up to amount from the player's stack into their street bet,
// marking them all-in when the stack empties. Returns the amount actually
// paid.
func (p *Player) pay(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}

// resetForHand clears per-hand state ahead of a new deal
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Folded = false
	p.AllIn = false
	p.Bet = 0
	p.TotalBet = 0
}
