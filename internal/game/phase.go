package game

// Phase is a state in the hand lifecycle. The engine only moves along the
// edges in validTransitions; Reset is the single exception and may return to
// WaitingForPlayers from anywhere.
type Phase int

const (
	WaitingForPlayers Phase = iota
	ReadyToStart
	PostingBlinds
	DealingHoleCards
	PreflopBetting
	DealingFlop
	FlopBetting
	DealingTurn
	TurnBetting
	DealingRiver
	RiverBetting
	Showdown
	HandComplete
	GameOver
)

func (p Phase) String() string {
	names := [...]string{
		"WaitingForPlayers",
		"ReadyToStart",
		"PostingBlinds",
		"DealingHoleCards",
		"PreflopBetting",
		"DealingFlop",
		"FlopBetting",
		"DealingTurn",
		"TurnBetting",
		"DealingRiver",
		"RiverBetting",
		"Showdown",
		"HandComplete",
		"GameOver",
	}
	if p < 0 || int(p) >= len(names) {
		return "Unknown"
	}
	return names[p]
}

// validTransitions is the lifecycle graph. Betting phases can short-circuit
// to HandComplete when folds end the hand, or to Showdown when the remaining
// players are all-in and the board runs out.
var validTransitions = map[Phase][]Phase{
	WaitingForPlayers: {ReadyToStart},
	ReadyToStart:      {PostingBlinds, WaitingForPlayers},
	PostingBlinds:     {DealingHoleCards},
	DealingHoleCards:  {PreflopBetting},
	PreflopBetting:    {DealingFlop, Showdown, HandComplete},
	DealingFlop:       {FlopBetting},
	FlopBetting:       {DealingTurn, Showdown, HandComplete},
	DealingTurn:       {TurnBetting},
	TurnBetting:       {DealingRiver, Showdown, HandComplete},
	DealingRiver:      {RiverBetting},
	RiverBetting:      {Showdown, HandComplete},
	Showdown:          {HandComplete},
	HandComplete:      {ReadyToStart, GameOver},
	GameOver:          {},
}

func canTransition(from, to Phase) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsBetting reports whether the phase is one of the four betting streets.
func (p Phase) IsBetting() bool {
	switch p {
	case PreflopBetting, FlopBetting, TurnBetting, RiverBetting:
		return true
	}
	return false
}

// street maps a betting phase to its street. Only meaningful when IsBetting
// is true.
func (p Phase) street() Street {
	switch p {
	case FlopBetting:
		return Flop
	case TurnBetting:
		return Turn
	case RiverBetting:
		return River
	default:
		return Preflop
	}
}
