package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemcore/internal/handid"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

// DefaultSeats is the table size used when WithSeats is not given
const DefaultSeats = 9

// Engine is the hand lifecycle state machine for one table. It referees:
// callers supply every action and drive every phase change, the engine
// validates them against the lifecycle graph and the betting rules and keeps
// the chips honest. It is synchronous and single-writer; the caller
// serializes all calls, and there are no internal timers or goroutines.
type Engine struct {
	phase    Phase
	numSeats int
	seats    []*Player // indexed by seat, nil when empty
	button   int

	smallBlind int
	bigBlind   int

	rng       *rand.Rand
	fixedDeck *poker.Deck
	deck      *poker.Deck
	board     []poker.Card

	pots    *PotManager
	tracker *RoundTracker

	handID        string
	handNumber    int
	sbSeat        int
	bbSeat        int
	handChipTotal int

	logger *log.Logger
	bus    EventBus
}

// New creates an engine with an empty table. Blinds, seats, randomness,
// logging and the event bus are all configurable through options.
func New(opts ...Option) *Engine {
	e := &Engine{
		phase:      WaitingForPlayers,
		numSeats:   DefaultSeats,
		smallBlind: 5,
		bigBlind:   10,
		pots:       NewPotManager(),
		bus:        NewEventBus(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.numSeats < 2 {
		panic("game: at least two seats required")
	}
	if e.smallBlind <= 0 || e.bigBlind <= 0 || e.smallBlind > e.bigBlind {
		panic("game: blinds must be positive with small <= big")
	}
	if e.rng == nil {
		e.rng = randutil.NewFromTime()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.seats = make([]*Player, e.numSeats)
	return e
}

// EventBus returns the bus the engine publishes hand events on
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// State returns the current lifecycle phase
func (e *Engine) State() Phase {
	return e.phase
}

// HandNumber returns how many hands have been started
func (e *Engine) HandNumber() int {
	return e.handNumber
}

// HandID returns the id of the current or most recent hand
func (e *Engine) HandID() string {
	return e.handID
}

// Button returns the dealer button seat
func (e *Engine) Button() int {
	return e.button
}

// SmallBlind returns the configured small blind
func (e *Engine) SmallBlind() int {
	return e.smallBlind
}

// BigBlind returns the configured big blind
func (e *Engine) BigBlind() int {
	return e.bigBlind
}

// Board returns a copy of the community cards dealt so far
func (e *Engine) Board() []poker.Card {
	board := make([]poker.Card, len(e.board))
	copy(board, e.board)
	return board
}

// Players returns the seated players in seat order
func (e *Engine) Players() []*Player {
	return e.seatedPlayers()
}

// PlayerBySeat returns the player in the given seat, or nil
func (e *Engine) PlayerBySeat(seat int) *Player {
	if seat < 0 || seat >= e.numSeats {
		return nil
	}
	return e.seats[seat]
}

// PlayerByName returns the seated player with the given name
func (e *Engine) PlayerByName(name string) (*Player, error) {
	for _, p := range e.seats {
		if p != nil && p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
}

// AddPlayer seats a player at the first open seat and returns it. Players
// can only be seated between hands.
func (e *Engine) AddPlayer(name string, chips int) (int, error) {
	for seat, p := range e.seats {
		if p == nil {
			return seat, e.AddPlayerAt(seat, name, chips)
		}
	}
	return 0, fmt.Errorf("%w: table is full", ErrInvalidPosition)
}

// AddPlayerAt seats a player at a specific seat. Players can only be seated
// between hands; seating the second player moves the table to ReadyToStart.
func (e *Engine) AddPlayerAt(seat int, name string, chips int) error {
	if !e.betweenHands() {
		return fmt.Errorf("%w: cannot seat players during a hand (%s)", ErrInvalidTransition, e.phase)
	}
	if seat < 0 || seat >= e.numSeats {
		return fmt.Errorf("%w: seat %d", ErrInvalidPosition, seat)
	}
	if e.seats[seat] != nil {
		return fmt.Errorf("%w: seat %d is occupied", ErrInvalidPosition, seat)
	}
	if _, err := e.PlayerByName(name); err == nil {
		return fmt.Errorf("%w: name %q already seated", ErrInvalidPosition, name)
	}

	e.seats[seat] = &Player{Seat: seat, Name: name, Chips: chips}
	e.logger.Debug("Player seated", "player", name, "seat", seat, "chips", chips)

	if e.phase == WaitingForPlayers && len(e.seatedSeats()) >= 2 {
		return e.transition(ReadyToStart)
	}
	return nil
}

// RemovePlayer frees a player's seat. Players can only leave between hands;
// a table left short-handed drops back to WaitingForPlayers.
func (e *Engine) RemovePlayer(name string) error {
	if !e.betweenHands() {
		return fmt.Errorf("%w: cannot remove players during a hand (%s)", ErrInvalidTransition, e.phase)
	}
	p, err := e.PlayerByName(name)
	if err != nil {
		return err
	}

	e.seats[p.Seat] = nil
	e.logger.Debug("Player removed", "player", name, "seat", p.Seat)

	if e.phase == ReadyToStart && len(e.seatedSeats()) < 2 {
		return e.transition(WaitingForPlayers)
	}
	return nil
}

// SetButton moves the dealer button to an occupied seat, between hands only
func (e *Engine) SetButton(seat int) error {
	if !e.betweenHands() {
		return fmt.Errorf("%w: cannot move the button during a hand (%s)", ErrInvalidTransition, e.phase)
	}
	if seat < 0 || seat >= e.numSeats || e.seats[seat] == nil {
		return fmt.Errorf("%w: seat %d", ErrInvalidPosition, seat)
	}
	e.button = seat
	return nil
}

// StartHand begins a new hand: fresh deck, blinds posted, two hole cards
// dealt one at a time starting left of the button, and the preflop betting
// round opened. Requires at least two players with chips.
func (e *Engine) StartHand() error {
	if e.phase == WaitingForPlayers {
		return fmt.Errorf("%w: need at least two seated players", ErrInsufficientPlayers)
	}
	if e.phase != ReadyToStart {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.phase, PostingBlinds)
	}
	active := make([]int, 0, e.numSeats)
	for _, p := range e.seatedPlayers() {
		if p.Chips > 0 {
			active = append(active, p.Seat)
		}
	}
	if len(active) < 2 {
		return fmt.Errorf("%w: need at least two players with chips", ErrInsufficientPlayers)
	}
	if err := e.transition(PostingBlinds); err != nil {
		return err
	}

	for _, p := range e.seatedPlayers() {
		p.resetForHand()
		if p.Chips == 0 {
			// No stake, no hand; they watch this one from their seat.
			p.Folded = true
		}
	}

	e.handNumber++
	e.handID = handid.New()
	e.board = nil
	e.pots.Reset()
	e.handChipTotal = 0
	for _, p := range e.seatedPlayers() {
		e.handChipTotal += p.Chips
	}

	if e.fixedDeck != nil {
		e.fixedDeck.Rewind()
		e.deck = e.fixedDeck
	} else {
		e.deck = poker.NewDeck(e.rng)
	}

	if e.seats[e.button] == nil {
		e.button = firstSeatAfter(active, e.numSeats, e.button)
	}

	e.sbSeat, e.bbSeat = BlindSeats(active, e.numSeats, e.button)
	sbPaid := e.seats[e.sbSeat].pay(e.smallBlind)
	bbPaid := e.seats[e.bbSeat].pay(e.bigBlind)
	e.logger.Debug("Posted blinds",
		"handID", e.handID,
		"smallBlind", sbPaid, "sbSeat", e.sbSeat,
		"bigBlind", bbPaid, "bbSeat", e.bbSeat)

	if err := e.transition(DealingHoleCards); err != nil {
		return err
	}
	dealOrder := orderFrom(active, e.numSeats, e.button)
	for range 2 {
		for _, seat := range dealOrder {
			card, _ := e.deck.DealOne()
			p := e.seats[seat]
			p.HoleCards = append(p.HoleCards, card)
		}
	}

	if err := e.transition(PreflopBetting); err != nil {
		return err
	}
	order, startingBet := ActionOrder(active, e.numSeats, e.button, Preflop, e.bigBlind)
	e.tracker = NewRoundTracker(Preflop, e.playersAt(order), startingBet, e.bigBlind)

	e.logger.Debug("Hand started",
		"handID", e.handID, "hand", e.handNumber,
		"players", len(active), "button", e.button)
	e.bus.Publish(NewHandStartEvent(e.handID, e.handNumber, e.button,
		e.inHandPlayers(), e.sbSeat, e.bbSeat, e.smallBlind, e.bigBlind))

	return e.checkConservation()
}

// RecordPlayerAction applies one betting action for the named player.
// amount is the player's new total street bet for Bet and Raise and is
// ignored for Fold, Check and Call. Out-of-turn actions fail with
// ErrInvalidPosition; structurally illegal ones with ErrInvalidAction.
func (e *Engine) RecordPlayerAction(name string, action Action, amount int) error {
	if !e.phase.IsBetting() || e.tracker == nil {
		return fmt.Errorf("%w: no betting round in progress (%s)", ErrInvalidTransition, e.phase)
	}
	if e.tracker.RoundComplete() {
		return fmt.Errorf("%w: betting round is complete", ErrInvalidTransition)
	}
	p, err := e.PlayerByName(name)
	if err != nil {
		return err
	}
	if current := e.tracker.CurrentPlayer(); current != p {
		return fmt.Errorf("%w: not %s's turn", ErrInvalidPosition, name)
	}

	owed := e.tracker.CallAmount(p)
	eventAmount := 0

	switch action {
	case Fold:
		p.Folded = true
		e.tracker.RecordAction(name)

	case Check:
		if owed != 0 {
			return fmt.Errorf("%w: %s cannot check facing a bet of %d", ErrInvalidAction, name, e.tracker.CurrentBet())
		}
		e.tracker.RecordAction(name)

	case Call:
		if owed == 0 {
			return fmt.Errorf("%w: %s has nothing to call", ErrInvalidAction, name)
		}
		eventAmount = p.pay(owed)
		e.tracker.RecordAction(name)

	case Bet:
		if e.tracker.CurrentBet() != 0 {
			return fmt.Errorf("%w: cannot bet into a live bet of %d, raise instead", ErrInvalidAction, e.tracker.CurrentBet())
		}
		if err := e.applyWager(p, amount, e.bigBlind); err != nil {
			return err
		}
		eventAmount = amount

	case Raise:
		if e.tracker.CurrentBet() == 0 {
			return fmt.Errorf("%w: no bet to raise", ErrInvalidAction)
		}
		if amount <= e.tracker.CurrentBet() {
			return fmt.Errorf("%w: raise to %d does not exceed the live bet of %d", ErrInvalidAction, amount, e.tracker.CurrentBet())
		}
		if err := e.applyWager(p, amount, e.tracker.MinRaise()); err != nil {
			return err
		}
		eventAmount = amount

	default:
		return fmt.Errorf("%w: %v", ErrInvalidAction, action)
	}

	e.logger.Debug("Player action",
		"handID", e.handID, "player", name, "action", action,
		"amount", eventAmount, "street", e.tracker.Street())
	e.bus.Publish(NewPlayerActionEvent(p, action, eventAmount, e.tracker.Street(), e.CurrentPot()))
	return nil
}

// applyWager moves a player's street bet to a new total, enforcing the
// minimum unless the wager puts them all-in short.
func (e *Engine) applyWager(p *Player, newTotal, minTotal int) error {
	toPay := newTotal - p.Bet
	if toPay <= 0 {
		return fmt.Errorf("%w: wager to %d does not add chips", ErrInvalidAction, newTotal)
	}
	if toPay > p.Chips {
		return fmt.Errorf("%w: wager to %d exceeds %s's stack of %d", ErrInvalidAction, newTotal, p.Name, p.Bet+p.Chips)
	}
	if newTotal < minTotal && toPay != p.Chips {
		return fmt.Errorf("%w: wager to %d is below the minimum of %d", ErrInvalidAction, newTotal, minTotal)
	}
	p.pay(toPay)
	e.tracker.RecordRaise(p.Name, p.Bet)
	return nil
}

// CompleteBettingRound closes the current street: bets move into the pot
// ledger and the hand advances. One player left takes the pot uncontested;
// all-but-one all-in runs the board out to Showdown; the river closing
// normally also leads to Showdown; otherwise the next street is dealt and a
// fresh betting round opens.
func (e *Engine) CompleteBettingRound() error {
	if !e.phase.IsBetting() || e.tracker == nil {
		return fmt.Errorf("%w: no betting round in progress (%s)", ErrInvalidTransition, e.phase)
	}
	if !e.tracker.RoundComplete() {
		return fmt.Errorf("%w: betting round still open on the %s", ErrInvalidTransition, e.tracker.Street())
	}

	contributions := make(map[string]int)
	allIn := make(map[string]bool)
	folded := make(map[string]bool)
	for _, p := range e.seatedPlayers() {
		if p.Bet > 0 {
			contributions[p.Name] = p.Bet
		}
		if p.AllIn {
			allIn[p.Name] = true
		}
		if p.Folded {
			folded[p.Name] = true
		}
	}
	if err := e.pots.CollectBets(contributions, allIn, folded); err != nil {
		return err
	}
	for _, p := range e.seatedPlayers() {
		p.Bet = 0
	}
	e.tracker = nil
	if err := e.checkConservation(); err != nil {
		return err
	}

	inHand := e.inHandPlayers()
	if len(inHand) <= 1 {
		return e.awardUncontested(inHand)
	}

	canAct := 0
	for _, p := range inHand {
		if p.CanAct() {
			canAct++
		}
	}
	if canAct <= 1 {
		e.runOutBoard()
		return e.transition(Showdown)
	}

	if e.phase == RiverBetting {
		return e.transition(Showdown)
	}
	return e.advanceStreet()
}

// advanceStreet deals the next street and opens its betting round
func (e *Engine) advanceStreet() error {
	var dealing, betting Phase
	var street Street
	var cards int
	switch e.phase {
	case PreflopBetting:
		dealing, betting, street, cards = DealingFlop, FlopBetting, Flop, 3
	case FlopBetting:
		dealing, betting, street, cards = DealingTurn, TurnBetting, Turn, 1
	case TurnBetting:
		dealing, betting, street, cards = DealingRiver, RiverBetting, River, 1
	default:
		return fmt.Errorf("%w: no street after %s", ErrInvalidTransition, e.phase)
	}

	if err := e.transition(dealing); err != nil {
		return err
	}
	e.deck.Burn()
	e.board = append(e.board, e.deck.Deal(cards)...)
	if err := e.transition(betting); err != nil {
		return err
	}

	seats := e.inHandSeats()
	order, startingBet := ActionOrder(seats, e.numSeats, e.button, street, e.bigBlind)
	e.tracker = NewRoundTracker(street, e.playersAt(order), startingBet, e.bigBlind)

	e.logger.Debug("Street dealt", "handID", e.handID, "street", street, "board", poker.FormatCards(e.board))
	e.bus.Publish(NewStreetChangeEvent(street, e.board))
	return nil
}

// runOutBoard deals any remaining community cards when betting is finished
// early by all-ins
func (e *Engine) runOutBoard() {
	for len(e.board) < 5 {
		e.deck.Burn()
		switch len(e.board) {
		case 0:
			e.board = append(e.board, e.deck.Deal(3)...)
			e.bus.Publish(NewStreetChangeEvent(Flop, e.board))
		case 3:
			e.board = append(e.board, e.deck.Deal(1)...)
			e.bus.Publish(NewStreetChangeEvent(Turn, e.board))
		case 4:
			e.board = append(e.board, e.deck.Deal(1)...)
			e.bus.Publish(NewStreetChangeEvent(River, e.board))
		}
	}
}

// awardUncontested pays the whole pot to the last player in the hand. With
// everyone else folded there is nothing to contest, so side pot eligibility
// does not apply.
func (e *Engine) awardUncontested(inHand []*Player) error {
	potSize := e.pots.Total()
	var payouts map[string]int
	if len(inHand) == 1 {
		winner := inHand[0]
		winner.Chips += potSize
		e.pots.Reset()
		payouts = map[string]int{winner.Name: potSize}
		e.logger.Info("Hand won uncontested",
			"handID", e.handID, "winner", winner.Name, "pot", potSize)
	}

	if err := e.transition(HandComplete); err != nil {
		return err
	}
	if err := e.checkConservation(); err != nil {
		return err
	}
	e.bus.Publish(NewHandEndEvent(e.handID, e.board, payouts, nil, potSize))
	return nil
}

// PerformShowdown ranks every player still in the hand, pays the pots and
// completes the hand. A sole remaining player wins without being evaluated;
// any other showdown participant who cannot make five cards fails the
// showdown with ErrTooFewCards.
func (e *Engine) PerformShowdown() error {
	if e.phase != Showdown {
		return fmt.Errorf("%w: showdown from %s", ErrInvalidTransition, e.phase)
	}

	contenders := e.inHandPlayers()
	if len(contenders) <= 1 {
		return e.awardUncontested(contenders)
	}

	potSize := e.pots.Total()
	rankings := make(map[string]poker.HandRanking, len(contenders))
	for _, p := range contenders {
		cards := make([]poker.Card, 0, len(p.HoleCards)+len(e.board))
		cards = append(cards, p.HoleCards...)
		cards = append(cards, e.board...)

		if len(cards) < 5 {
			return fmt.Errorf("%w: %s has %d cards", ErrTooFewCards, p.Name, len(cards))
		}
		ranking, err := poker.EvaluateBest(cards)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		rankings[p.Name] = ranking
	}

	payouts := e.pots.DistributePots(e.showdownTiers(contenders, rankings))
	for name, amount := range payouts {
		p, err := e.PlayerByName(name)
		if err != nil {
			return err
		}
		p.Chips += amount
		e.logger.Info("Showdown winner",
			"handID", e.handID, "winner", name,
			"amount", amount, "hand", rankings[name].String())
	}

	if err := e.transition(HandComplete); err != nil {
		return err
	}
	if err := e.checkConservation(); err != nil {
		return err
	}
	e.bus.Publish(NewHandEndEvent(e.handID, e.board, payouts, rankings, potSize))
	return nil
}

// showdownTiers groups the contenders best hand first, ties together.
// Within a tier players sit in clockwise order from the button's left, which
// is where any odd chip lands.
func (e *Engine) showdownTiers(contenders []*Player, rankings map[string]poker.HandRanking) [][]string {
	sorted := make([]*Player, len(contenders))
	copy(sorted, contenders)
	start := (e.button + 1) % e.numSeats
	sort.Slice(sorted, func(i, j int) bool {
		ri, rj := rankings[sorted[i].Name], rankings[sorted[j].Name]
		if c := ri.Compare(rj); c != 0 {
			return c > 0
		}
		return clockwiseDistance(start, sorted[i].Seat, e.numSeats) < clockwiseDistance(start, sorted[j].Seat, e.numSeats)
	})

	var tiers [][]string
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && rankings[sorted[j].Name].Compare(rankings[sorted[i].Name]) == 0 {
			j++
		}
		tier := make([]string, 0, j-i)
		for _, p := range sorted[i:j] {
			tier = append(tier, p.Name)
		}
		tiers = append(tiers, tier)
		i = j
	}
	return tiers
}

// PrepareNextHand rotates the button, clears the finished hand and drops
// busted players. The table moves to ReadyToStart, or GameOver when fewer
// than two players still have chips.
func (e *Engine) PrepareNextHand() error {
	if e.phase != HandComplete {
		return fmt.Errorf("%w: prepare next hand from %s", ErrInvalidTransition, e.phase)
	}

	if seated := e.seatedSeats(); len(seated) > 0 {
		e.button = firstSeatAfter(seated, e.numSeats, e.button)
	}

	e.board = nil
	e.pots.Reset()
	e.tracker = nil
	for _, p := range e.seatedPlayers() {
		p.resetForHand()
		if p.Chips == 0 {
			e.seats[p.Seat] = nil
			e.logger.Info("Player eliminated", "player", p.Name, "seat", p.Seat)
		}
	}

	if len(e.seatedSeats()) >= 2 {
		return e.transition(ReadyToStart)
	}
	return e.transition(GameOver)
}

// Reset returns the table to WaitingForPlayers from any phase, abandoning
// any hand in progress. Live bets and collected pots are refunded to the
// players who committed them, so no chips are lost. A table that still has
// two players moves straight back to ReadyToStart.
func (e *Engine) Reset() {
	for _, p := range e.seatedPlayers() {
		p.Chips += p.Bet
		for _, pot := range e.pots.Pots() {
			p.Chips += pot.Contribution(p.Name)
		}
	}
	e.phase = WaitingForPlayers
	e.board = nil
	e.pots.Reset()
	e.tracker = nil
	e.handID = ""
	for _, p := range e.seatedPlayers() {
		p.resetForHand()
	}
	e.logger.Debug("Table reset")

	if len(e.seatedSeats()) >= 2 {
		e.phase = ReadyToStart
	}
}

// PlayerToAct returns the player whose action is pending, or nil
func (e *Engine) PlayerToAct() *Player {
	if !e.phase.IsBetting() || e.tracker == nil || e.tracker.RoundComplete() {
		return nil
	}
	return e.tracker.CurrentPlayer()
}

// CallAmount returns the chips the named player owes to call
func (e *Engine) CallAmount(name string) (int, error) {
	p, err := e.PlayerByName(name)
	if err != nil {
		return 0, err
	}
	if e.tracker == nil {
		return 0, nil
	}
	return e.tracker.CallAmount(p), nil
}

// MinRaise returns the minimum new-total raise for the current round, or
// zero when no round is open
func (e *Engine) MinRaise() int {
	if e.tracker == nil {
		return 0
	}
	return e.tracker.MinRaise()
}

// CurrentBet returns the live bet of the current round, or zero
func (e *Engine) CurrentBet() int {
	if e.tracker == nil {
		return 0
	}
	return e.tracker.CurrentBet()
}

// Street returns the street of the open betting round. Between hands, and
// once the board has run out, it reports the last street dealt.
func (e *Engine) Street() Street {
	if e.tracker == nil {
		switch len(e.board) {
		case 3:
			return Flop
		case 4:
			return Turn
		case 5:
			return River
		}
		return Preflop
	}
	return e.tracker.Street()
}

// CurrentPot returns all chips committed to the hand so far, including live
// street bets not yet collected
func (e *Engine) CurrentPot() int {
	total := e.pots.Total()
	for _, p := range e.seatedPlayers() {
		total += p.Bet
	}
	return total
}

// Pots returns the collected pot layers, main pot first
func (e *Engine) Pots() []*Pot {
	return e.pots.Pots()
}

// BettingRoundComplete reports whether the open betting round has finished
// and CompleteBettingRound may be called
func (e *Engine) BettingRoundComplete() bool {
	return e.phase.IsBetting() && e.tracker != nil && e.tracker.RoundComplete()
}

// GameOver reports whether the game has ended
func (e *Engine) GameOver() bool {
	return e.phase == GameOver
}

// GameWinner returns the last player with chips once the game is over
func (e *Engine) GameWinner() *Player {
	if e.phase != GameOver {
		return nil
	}
	var winner *Player
	for _, p := range e.seatedPlayers() {
		if p.Chips > 0 {
			if winner != nil {
				return nil
			}
			winner = p
		}
	}
	return winner
}

// ValidActions returns the legal actions for the player to act, with Min
// and Max as new-total street bets for Bet and Raise and as chips to pay
// for Call. Returns nil when no action is pending.
func (e *Engine) ValidActions() []ValidAction {
	p := e.PlayerToAct()
	if p == nil {
		return nil
	}

	owed := e.tracker.CallAmount(p)
	actions := []ValidAction{{Action: Fold}}

	if owed == 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		pay := min(owed, p.Chips)
		actions = append(actions, ValidAction{Action: Call, Min: pay, Max: pay})
	}

	maxTotal := p.Bet + p.Chips
	if e.tracker.CurrentBet() == 0 {
		actions = append(actions, ValidAction{Action: Bet, Min: min(e.bigBlind, maxTotal), Max: maxTotal})
	} else if maxTotal > e.tracker.CurrentBet() {
		actions = append(actions, ValidAction{Action: Raise, Min: min(e.tracker.MinRaise(), maxTotal), Max: maxTotal})
	}
	return actions
}

// transition moves the engine along one edge of the lifecycle graph
func (e *Engine) transition(to Phase) error {
	if !canTransition(e.phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.phase, to)
	}
	e.logger.Debug("Phase change", "from", e.phase, "to", to)
	e.phase = to
	return nil
}

// checkConservation verifies that chips behind, live bets and the pots
// still sum to the total the hand started with.
func (e *Engine) checkConservation() error {
	total := e.pots.Total()
	for _, p := range e.seatedPlayers() {
		total += p.Chips + p.Bet
	}
	if total != e.handChipTotal {
		return fmt.Errorf("chip conservation violated: have %d, hand started with %d", total, e.handChipTotal)
	}
	return nil
}

func (e *Engine) betweenHands() bool {
	switch e.phase {
	case WaitingForPlayers, ReadyToStart, HandComplete:
		return true
	}
	return false
}

func (e *Engine) seatedPlayers() []*Player {
	players := make([]*Player, 0, e.numSeats)
	for _, p := range e.seats {
		if p != nil {
			players = append(players, p)
		}
	}
	return players
}

func (e *Engine) seatedSeats() []int {
	seats := make([]int, 0, e.numSeats)
	for seat, p := range e.seats {
		if p != nil {
			seats = append(seats, seat)
		}
	}
	return seats
}

func (e *Engine) inHandPlayers() []*Player {
	players := make([]*Player, 0, e.numSeats)
	for _, p := range e.seats {
		if p != nil && p.InHand() {
			players = append(players, p)
		}
	}
	return players
}

func (e *Engine) inHandSeats() []int {
	seats := make([]int, 0, e.numSeats)
	for seat, p := range e.seats {
		if p != nil && p.InHand() {
			seats = append(seats, seat)
		}
	}
	return seats
}

func (e *Engine) playersAt(seats []int) []*Player {
	players := make([]*Player, 0, len(seats))
	for _, seat := range seats {
		players = append(players, e.seats[seat])
	}
	return players
}
