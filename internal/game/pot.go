package game

import (
	"fmt"
	"sort"
)

// Pot is one layer of the pot ledger: who paid into it and who can win it.
// A player becomes eligible on first contribution and loses eligibility by
// folding; folded players' chips stay in the pot.
type Pot struct {
	contributions map[string]int
	eligible      map[string]bool
}

// NewPot creates an empty pot
func NewPot() *Pot {
	return &Pot{
		contributions: make(map[string]int),
		eligible:      make(map[string]bool),
	}
}

// AddContribution records chips paid into the pot by a player. Amounts must
// be positive; contributions only ever grow.
func (p *Pot) AddContribution(name string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d from %s", ErrInvalidContribution, amount, name)
	}
	p.contributions[name] += amount
	p.eligible[name] = true
	return nil
}

// RemoveEligibility bars a player from winning the pot without touching
// their chips
func (p *Pot) RemoveEligibility(name string) {
	delete(p.eligible, name)
}

// EligibleFor returns true if the player can win this pot
func (p *Pot) EligibleFor(name string) bool {
	return p.eligible[name]
}

// Eligible returns the eligible player names in stable order
func (p *Pot) Eligible() []string {
	names := make([]string, 0, len(p.eligible))
	for name := range p.eligible {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contribution returns the chips the player has paid into this pot
func (p *Pot) Contribution(name string) int {
	return p.contributions[name]
}

// Total returns the chips in the pot
func (p *Pot) Total() int {
	total := 0
	for _, amount := range p.contributions {
		total += amount
	}
	return total
}

func (p *Pot) sameEligible(other *Pot) bool {
	if len(p.eligible) != len(other.eligible) {
		return false
	}
	for name := range p.eligible {
		if !other.eligible[name] {
			return false
		}
	}
	return true
}

// PotManager owns the main pot and the ordered side pots for one hand.
// It is reset at the start of every hand, grown once per street through
// CollectBets, and drained at showdown through DistributePots.
type PotManager struct {
	pots []*Pot // pots[0] is the main pot
}

// NewPotManager creates an empty ledger
func NewPotManager() *PotManager {
	return &PotManager{}
}

// Reset empties the ledger for a new hand
func (pm *PotManager) Reset() {
	pm.pots = nil
}

// Pots returns the pots in order, main pot first
func (pm *PotManager) Pots() []*Pot {
	return pm.pots
}

// Total returns the chips across all pots
func (pm *PotManager) Total() int {
	total := 0
	for _, pot := range pm.pots {
		total += pot.Total()
	}
	return total
}

// CollectBets folds one street's contributions into the ledger.
//
// The distinct all-in contribution amounts (plus the street's maximum) are
// the layer boundaries, sorted ascending. Every player pays each layer up to
// their contribution; a layer's eligible winners are its contributors minus
// the folded. The first layer becomes or extends the main pot and each
// boundary above an all-in opens a side pot, so one side pot forms per
// distinct all-in stack depth. Folded players are stripped of eligibility
// across every existing pot while their chips remain.
func (pm *PotManager) CollectBets(contributions map[string]int, allIn, folded map[string]bool) error {
	for name, amount := range contributions {
		if amount <= 0 {
			return fmt.Errorf("%w: %d from %s", ErrInvalidContribution, amount, name)
		}
	}

	for name := range folded {
		for _, pot := range pm.pots {
			pot.RemoveEligibility(name)
		}
	}

	if len(contributions) == 0 {
		return nil
	}

	boundaries := layerBoundaries(contributions, allIn)

	prev := 0
	for _, level := range boundaries {
		layer := NewPot()
		for name, amount := range contributions {
			paid := min(amount, level) - min(amount, prev)
			if paid <= 0 {
				continue
			}
			if err := layer.AddContribution(name, paid); err != nil {
				return err
			}
			if folded[name] {
				layer.RemoveEligibility(name)
			}
		}
		prev = level

		if len(layer.contributions) == 0 {
			continue
		}

		// A layer with the same winners as the top pot is the same pot
		// continuing across streets, not a new one.
		if last := pm.lastPot(); last != nil && last.sameEligible(layer) {
			for name, amount := range layer.contributions {
				last.contributions[name] += amount
			}
			continue
		}
		pm.pots = append(pm.pots, layer)
	}

	return nil
}

// layerBoundaries returns the ascending contribution levels at which pot
// layers split: each distinct all-in amount plus the street maximum.
func layerBoundaries(contributions map[string]int, allIn map[string]bool) []int {
	maxAmount := 0
	levels := make(map[int]bool)
	for name, amount := range contributions {
		if amount > maxAmount {
			maxAmount = amount
		}
		if allIn[name] {
			levels[amount] = true
		}
	}
	levels[maxAmount] = true

	boundaries := make([]int, 0, len(levels))
	for level := range levels {
		boundaries = append(boundaries, level)
	}
	sort.Ints(boundaries)
	return boundaries
}

func (pm *PotManager) lastPot() *Pot {
	if len(pm.pots) == 0 {
		return nil
	}
	return pm.pots[len(pm.pots)-1]
}

// DistributePots drains the ledger to the winners and returns each player's
// total winnings.
//
// The ranking argument lists showdown participants best first, players of
// equal ranking grouped together. Each pot goes to the first group with an
// eligible member, split by integer division among that group's eligible
// members; odd chips go to the group's first supplied member. A pot no group
// can win is left in the ledger.
func (pm *PotManager) DistributePots(ranking [][]string) map[string]int {
	payouts := make(map[string]int)

	var remaining []*Pot
	for _, pot := range pm.pots {
		winners := pot.winnersFrom(ranking)
		if len(winners) == 0 {
			remaining = append(remaining, pot)
			continue
		}

		total := pot.Total()
		share := total / len(winners)
		for _, name := range winners {
			payouts[name] += share
		}
		payouts[winners[0]] += total % len(winners)
	}
	pm.pots = remaining

	return payouts
}

// winnersFrom returns the pot's winners: the eligible members of the first
// ranking group containing any, in the group's supplied order.
func (p *Pot) winnersFrom(ranking [][]string) []string {
	for _, group := range ranking {
		var winners []string
		for _, name := range group {
			if p.EligibleFor(name) {
				winners = append(winners, name)
			}
		}
		if len(winners) > 0 {
			return winners
		}
	}
	return nil
}
