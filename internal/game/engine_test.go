package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lox/holdemcore/poker"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base := []Option{WithBlinds(5, 10), WithSeed(42)}
	return New(append(base, opts...)...)
}

func seatThree(t *testing.T, e *Engine) {
	t.Helper()
	for i, name := range []string{"alice", "bob", "carol"} {
		if err := e.AddPlayerAt(i, name, 1000); err != nil {
			t.Fatalf("Seating %s failed: %v", name, err)
		}
	}
}

func act(t *testing.T, e *Engine, name string, action Action, amount int) {
	t.Helper()
	if err := e.RecordPlayerAction(name, action, amount); err != nil {
		t.Fatalf("%s %s %d failed: %v", name, action, amount, err)
	}
}

func completeRound(t *testing.T, e *Engine) {
	t.Helper()
	if !e.BettingRoundComplete() {
		t.Fatalf("Betting round is not complete, %v still to act", e.PlayerToAct())
	}
	if err := e.CompleteBettingRound(); err != nil {
		t.Fatalf("CompleteBettingRound failed: %v", err)
	}
}

func chips(t *testing.T, e *Engine, name string) int {
	t.Helper()
	p, err := e.PlayerByName(name)
	if err != nil {
		t.Fatalf("PlayerByName(%s) failed: %v", name, err)
	}
	return p.Chips
}

func TestEngineThreeHandedHand(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)
	if e.State() != ReadyToStart {
		t.Fatalf("Table with players should be ReadyToStart, got %s", e.State())
	}

	if err := e.StartHand(); err != nil {
		t.Fatalf("StartHand failed: %v", err)
	}
	if e.State() != PreflopBetting {
		t.Fatalf("Expected PreflopBetting, got %s", e.State())
	}
	if e.HandNumber() != 1 {
		t.Errorf("HandNumber should be 1, got %d", e.HandNumber())
	}
	if len(e.HandID()) != 26 {
		t.Errorf("HandID should be 26 characters, got %q", e.HandID())
	}

	// Button seat 0: bob posts the small blind, carol the big blind.
	if got := chips(t, e, "bob"); got != 995 {
		t.Errorf("Small blind should leave bob at 995, got %d", got)
	}
	if got := chips(t, e, "carol"); got != 990 {
		t.Errorf("Big blind should leave carol at 990, got %d", got)
	}
	for _, name := range []string{"alice", "bob", "carol"} {
		p, _ := e.PlayerByName(name)
		if len(p.HoleCards) != 2 {
			t.Errorf("%s should hold two cards, got %d", name, len(p.HoleCards))
		}
	}

	// Three-handed preflop the button opens and the big blind closes.
	if p := e.PlayerToAct(); p == nil || p.Name != "alice" {
		t.Fatalf("Alice should open preflop, got %v", p)
	}
	act(t, e, "alice", Call, 0)
	if p := e.PlayerToAct(); p == nil || p.Name != "bob" {
		t.Fatalf("Bob should act second, got %v", p)
	}
	act(t, e, "bob", Call, 0)
	if p := e.PlayerToAct(); p == nil || p.Name != "carol" {
		t.Fatalf("Carol keeps the big blind option, got %v", p)
	}
	act(t, e, "carol", Check, 0)

	completeRound(t, e)
	if e.State() != FlopBetting {
		t.Fatalf("Expected FlopBetting, got %s", e.State())
	}
	if got := e.CurrentPot(); got != 30 {
		t.Errorf("Pot should be 30 after three calls, got %d", got)
	}
	if got := len(e.Board()); got != 3 {
		t.Errorf("Flop should show three cards, got %d", got)
	}

	// Postflop the small blind opens and the button closes.
	if p := e.PlayerToAct(); p == nil || p.Name != "bob" {
		t.Fatalf("Bob should open the flop, got %v", p)
	}
	act(t, e, "bob", Check, 0)
	act(t, e, "carol", Check, 0)
	act(t, e, "alice", Check, 0)
	completeRound(t, e)
	if e.State() != TurnBetting || len(e.Board()) != 4 {
		t.Fatalf("Expected TurnBetting with 4 cards, got %s with %d", e.State(), len(e.Board()))
	}

	act(t, e, "bob", Check, 0)
	act(t, e, "carol", Check, 0)
	act(t, e, "alice", Check, 0)
	completeRound(t, e)
	if e.State() != RiverBetting || len(e.Board()) != 5 {
		t.Fatalf("Expected RiverBetting with 5 cards, got %s with %d", e.State(), len(e.Board()))
	}

	act(t, e, "bob", Check, 0)
	act(t, e, "carol", Check, 0)
	act(t, e, "alice", Check, 0)
	completeRound(t, e)
	if e.State() != Showdown {
		t.Fatalf("River closing should lead to Showdown, got %s", e.State())
	}

	if err := e.PerformShowdown(); err != nil {
		t.Fatalf("PerformShowdown failed: %v", err)
	}
	if e.State() != HandComplete {
		t.Fatalf("Expected HandComplete, got %s", e.State())
	}

	total := 0
	for _, p := range e.Players() {
		total += p.Chips
	}
	if total != 3000 {
		t.Errorf("Chips should be conserved at 3000, got %d", total)
	}
}

func TestEngineHeadsUpOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.AddPlayerAt(0, "alice", 1000); err != nil {
		t.Fatal(err)
	}
	if err := e.AddPlayerAt(1, "bob", 1000); err != nil {
		t.Fatal(err)
	}
	if err := e.StartHand(); err != nil {
		t.Fatalf("StartHand failed: %v", err)
	}

	// Heads-up the button posts the small blind and opens preflop.
	if got := chips(t, e, "alice"); got != 995 {
		t.Errorf("Button should post the small blind, alice at %d", got)
	}
	if got := chips(t, e, "bob"); got != 990 {
		t.Errorf("Bob should post the big blind, at %d", got)
	}
	if p := e.PlayerToAct(); p == nil || p.Name != "alice" {
		t.Fatalf("Button opens preflop heads-up, got %v", p)
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Check, 0)
	completeRound(t, e)

	if p := e.PlayerToAct(); p == nil || p.Name != "bob" {
		t.Fatalf("Big blind opens postflop heads-up, got %v", p)
	}
}

func TestEngineFoldsEndHandUncontested(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Call, 0)
	act(t, e, "carol", Check, 0)
	completeRound(t, e)

	// Bob bets the flop and everyone folds; no showdown, no evaluation.
	act(t, e, "bob", Bet, 50)
	act(t, e, "carol", Fold, 0)
	act(t, e, "alice", Fold, 0)
	completeRound(t, e)

	if e.State() != HandComplete {
		t.Fatalf("Folds should complete the hand, got %s", e.State())
	}
	if got := chips(t, e, "bob"); got != 1020 {
		t.Errorf("Bob should net the two calls, got %d", got)
	}
	if got := chips(t, e, "alice"); got != 990 {
		t.Errorf("Alice should lose her call, got %d", got)
	}
	if got := chips(t, e, "carol"); got != 990 {
		t.Errorf("Carol should lose her call, got %d", got)
	}
}

func TestEngineAllInRunout(t *testing.T) {
	t.Parallel()

	// Deal order is bob, carol, alice (left of the button first), twice
	// around, then burn-flop, burn-turn, burn-river.
	deck := poker.NewStackedDeck(poker.MustParseCards(
		"Ks 7s As Kh 2h Ah Jc 2c 7d 9h Jd 3s Jh 4d")...)
	e := newTestEngine(t, WithDeck(deck))
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	act(t, e, "alice", Raise, 1000)
	act(t, e, "bob", Call, 0)
	act(t, e, "carol", Fold, 0)
	completeRound(t, e)

	// Both remaining players are all-in: the board runs out and the hand
	// jumps straight to showdown.
	if e.State() != Showdown {
		t.Fatalf("All-in players should jump to Showdown, got %s", e.State())
	}
	if got := e.Board(); !reflect.DeepEqual(got, poker.MustParseCards("2c 7d 9h 3s 4d")) {
		t.Fatalf("Runout board mismatch: %s", poker.FormatCards(got))
	}

	if err := e.PerformShowdown(); err != nil {
		t.Fatalf("PerformShowdown failed: %v", err)
	}
	if got := chips(t, e, "alice"); got != 2010 {
		t.Errorf("Aces should take the whole pot of 2010, alice at %d", got)
	}
	if got := chips(t, e, "bob"); got != 0 {
		t.Errorf("Bob should be felted, at %d", got)
	}
	if got := chips(t, e, "carol"); got != 990 {
		t.Errorf("Carol should only lose her blind, at %d", got)
	}

	if err := e.PrepareNextHand(); err != nil {
		t.Fatalf("PrepareNextHand failed: %v", err)
	}
	if _, err := e.PlayerByName("bob"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Busted player should be removed, got %v", err)
	}
	if e.State() != ReadyToStart {
		t.Errorf("Two players remain, expected ReadyToStart, got %s", e.State())
	}
	if e.Button() != 1 {
		t.Errorf("Button should rotate to seat 1, got %d", e.Button())
	}
}

func TestEngineSidePotShowdown(t *testing.T) {
	t.Parallel()

	deck := poker.NewStackedDeck(poker.MustParseCards(
		"7s Ks As 7h Kh Ah 5c 2c 8d 9h 5d 3s 5h Jd")...)
	e := newTestEngine(t, WithDeck(deck))
	if err := e.AddPlayerAt(0, "alice", 50); err != nil {
		t.Fatal(err)
	}
	if err := e.AddPlayerAt(1, "bob", 500); err != nil {
		t.Fatal(err)
	}
	if err := e.AddPlayerAt(2, "carol", 500); err != nil {
		t.Fatal(err)
	}
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	act(t, e, "alice", Raise, 50) // all-in
	act(t, e, "bob", Raise, 200)
	act(t, e, "carol", Call, 0)
	completeRound(t, e)

	// The short stack caps the main pot at 150; the 300 above it sits in
	// a side pot only bob and carol can win.
	pots := e.Pots()
	if len(pots) != 2 {
		t.Fatalf("Expected main and side pot, got %d", len(pots))
	}
	if pots[0].Total() != 150 || pots[1].Total() != 300 {
		t.Fatalf("Expected pots 150/300, got %d/%d", pots[0].Total(), pots[1].Total())
	}
	if pots[1].EligibleFor("alice") {
		t.Error("The all-in player should not be eligible for the side pot")
	}

	for _, street := range []Phase{FlopBetting, TurnBetting, RiverBetting} {
		if e.State() != street {
			t.Fatalf("Expected %s, got %s", street, e.State())
		}
		act(t, e, "bob", Check, 0)
		act(t, e, "carol", Check, 0)
		completeRound(t, e)
	}

	if err := e.PerformShowdown(); err != nil {
		t.Fatalf("PerformShowdown failed: %v", err)
	}

	// Alice's aces win the main pot; carol's kings beat bob for the side.
	if got := chips(t, e, "alice"); got != 150 {
		t.Errorf("Alice should win the 150 main pot only, at %d", got)
	}
	if got := chips(t, e, "carol"); got != 600 {
		t.Errorf("Carol should take the 300 side pot, at %d", got)
	}
	if got := chips(t, e, "bob"); got != 300 {
		t.Errorf("Bob should be left with 300, at %d", got)
	}
}

func TestEnginePartialBlindAllIn(t *testing.T) {
	t.Parallel()

	deck := poker.NewStackedDeck(poker.MustParseCards(
		"As Kd Ah Kc 2s 5c 8d Th 6s 9c 4h 2d")...)
	e := newTestEngine(t, WithDeck(deck))
	if err := e.AddPlayerAt(0, "alice", 1000); err != nil {
		t.Fatal(err)
	}
	if err := e.AddPlayerAt(1, "bob", 7); err != nil {
		t.Fatal(err)
	}
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	// Bob's 7 chips cover only part of the big blind; the live bet stays
	// at the full blind.
	bob, _ := e.PlayerByName("bob")
	if !bob.AllIn || bob.Bet != 7 {
		t.Fatalf("Bob should be all-in for a partial blind of 7, got bet %d", bob.Bet)
	}
	if owed, _ := e.CallAmount("alice"); owed != 5 {
		t.Errorf("Alice should owe the full blind, got %d", owed)
	}

	act(t, e, "alice", Call, 0)
	completeRound(t, e)

	if e.State() != Showdown {
		t.Fatalf("With bob all-in the board should run out to Showdown, got %s", e.State())
	}
	pots := e.Pots()
	if len(pots) != 2 || pots[0].Total() != 14 || pots[1].Total() != 3 {
		t.Fatalf("Expected pots 14/3, got %v", pots)
	}

	if err := e.PerformShowdown(); err != nil {
		t.Fatalf("PerformShowdown failed: %v", err)
	}

	// Bob's aces take the covered pot; alice's overage comes straight
	// back to her.
	if got := chips(t, e, "bob"); got != 14 {
		t.Errorf("Bob should win the 14 he could cover, at %d", got)
	}
	if got := chips(t, e, "alice"); got != 993 {
		t.Errorf("Alice should keep the uncalled 3, at %d", got)
	}
}

func TestEngineSplitPotOddChip(t *testing.T) {
	t.Parallel()

	// Board plays for both alice and carol; bob folds his small blind
	// leaving an odd pot of 25. The odd chip goes to the first winner
	// clockwise from the button's left: carol in seat 2.
	deck := poker.NewStackedDeck(poker.MustParseCards(
		"2s 2h 3s 6d 3h 6h 4s Ah Kd Qc 4h Js 4c Tc")...)
	e := newTestEngine(t, WithDeck(deck))
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Fold, 0)
	act(t, e, "carol", Check, 0)
	completeRound(t, e)

	for range 3 {
		act(t, e, "carol", Check, 0)
		act(t, e, "alice", Check, 0)
		completeRound(t, e)
	}
	if err := e.PerformShowdown(); err != nil {
		t.Fatalf("PerformShowdown failed: %v", err)
	}

	if got := chips(t, e, "carol"); got != 1003 {
		t.Errorf("Carol should take 13 of the split, at %d", got)
	}
	if got := chips(t, e, "alice"); got != 1002 {
		t.Errorf("Alice should take 12 of the split, at %d", got)
	}
	if got := chips(t, e, "bob"); got != 995 {
		t.Errorf("Bob should lose the small blind, at %d", got)
	}
}

func TestEngineBigBlindOptionRaise(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Call, 0)
	if e.BettingRoundComplete() {
		t.Fatal("Big blind still has the option")
	}
	act(t, e, "carol", Raise, 30)
	if e.BettingRoundComplete() {
		t.Fatal("The option raise reopens action")
	}
	if e.CurrentBet() != 30 {
		t.Errorf("Live bet should be 30, got %d", e.CurrentBet())
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Call, 0)
	completeRound(t, e)
	if got := e.CurrentPot(); got != 90 {
		t.Errorf("Pot should be 90, got %d", got)
	}
}

func TestEngineInsufficientPlayers(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.StartHand(); !errors.Is(err, ErrInsufficientPlayers) {
		t.Errorf("Empty table should fail with ErrInsufficientPlayers, got %v", err)
	}

	if _, err := e.AddPlayer("alice", 1000); err != nil {
		t.Fatal(err)
	}
	if err := e.StartHand(); !errors.Is(err, ErrInsufficientPlayers) {
		t.Errorf("One player should fail with ErrInsufficientPlayers, got %v", err)
	}
}

func TestEngineInvalidTransitions(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)

	if err := e.CompleteBettingRound(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CompleteBettingRound before a hand should fail, got %v", err)
	}
	if err := e.PerformShowdown(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PerformShowdown before a hand should fail, got %v", err)
	}
	if err := e.PrepareNextHand(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PrepareNextHand before a hand should fail, got %v", err)
	}
	if err := e.RecordPlayerAction("alice", Check, 0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Action before a hand should fail, got %v", err)
	}

	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}
	if err := e.StartHand(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("StartHand during a hand should fail, got %v", err)
	}
	if err := e.CompleteBettingRound(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Completing an open round should fail, got %v", err)
	}
	if err := e.PerformShowdown(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Showdown from preflop should fail, got %v", err)
	}
	if _, err := e.AddPlayer("dave", 1000); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Seating during a hand should fail, got %v", err)
	}
	if err := e.RemovePlayer("alice"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Removing during a hand should fail, got %v", err)
	}
}

func TestEngineActionValidation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	if err := e.RecordPlayerAction("bob", Call, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Out of turn should fail with ErrInvalidPosition, got %v", err)
	}
	if err := e.RecordPlayerAction("mallory", Call, 0); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Unknown player should fail with ErrPlayerNotFound, got %v", err)
	}
	if err := e.RecordPlayerAction("alice", Check, 0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Checking while facing the blind should fail, got %v", err)
	}
	if err := e.RecordPlayerAction("alice", Bet, 50); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Betting into a live bet should fail, got %v", err)
	}
	if err := e.RecordPlayerAction("alice", Raise, 15); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Raising below the minimum should fail, got %v", err)
	}
	if err := e.RecordPlayerAction("alice", Raise, 10); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("A raise that does not exceed the live bet should fail, got %v", err)
	}
	if err := e.RecordPlayerAction("alice", Raise, 5000); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Wagering beyond the stack should fail, got %v", err)
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Call, 0)
	act(t, e, "carol", Check, 0)
	completeRound(t, e)

	if err := e.RecordPlayerAction("bob", Call, 0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Calling with nothing owed should fail, got %v", err)
	}
	if err := e.RecordPlayerAction("bob", Bet, 5); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Betting below the big blind should fail, got %v", err)
	}
}

func TestEngineValidActions(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	want := []ValidAction{
		{Action: Fold},
		{Action: Call, Min: 10, Max: 10},
		{Action: Raise, Min: 20, Max: 1000},
	}
	if got := e.ValidActions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Preflop actions = %v, want %v", got, want)
	}

	act(t, e, "alice", Call, 0)
	act(t, e, "bob", Call, 0)
	act(t, e, "carol", Check, 0)
	completeRound(t, e)

	want = []ValidAction{
		{Action: Fold},
		{Action: Check},
		{Action: Bet, Min: 10, Max: 990},
	}
	if got := e.ValidActions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flop actions = %v, want %v", got, want)
	}
}

func TestEngineSeating(t *testing.T) {
	t.Parallel()

	e := New(WithBlinds(5, 10), WithSeats(3), WithSeed(1))

	if _, err := e.AddPlayer("alice", 1000); err != nil {
		t.Fatal(err)
	}
	if e.State() != WaitingForPlayers {
		t.Errorf("One player keeps the table waiting, got %s", e.State())
	}
	if _, err := e.AddPlayer("bob", 1000); err != nil {
		t.Fatal(err)
	}
	if e.State() != ReadyToStart {
		t.Errorf("Two players make the table ready, got %s", e.State())
	}

	if err := e.AddPlayerAt(1, "carol", 1000); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Occupied seat should fail, got %v", err)
	}
	if err := e.AddPlayerAt(7, "carol", 1000); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Out of range seat should fail, got %v", err)
	}
	if err := e.AddPlayerAt(2, "alice", 1000); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Duplicate name should fail, got %v", err)
	}
	if err := e.AddPlayerAt(2, "carol", 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddPlayer("dave", 1000); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Full table should fail, got %v", err)
	}

	if err := e.RemovePlayer("mallory"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Removing a stranger should fail, got %v", err)
	}
	if err := e.RemovePlayer("carol"); err != nil {
		t.Fatal(err)
	}
	if err := e.RemovePlayer("bob"); err != nil {
		t.Fatal(err)
	}
	if e.State() != WaitingForPlayers {
		t.Errorf("A short-handed table should wait again, got %s", e.State())
	}
}

func TestEngineGameOver(t *testing.T) {
	t.Parallel()

	deck := poker.NewStackedDeck(poker.MustParseCards(
		"Ks As Kh Ah 2s 5c 8d Th 6s 9c 4h 2d")...)
	e := newTestEngine(t, WithDeck(deck))
	if err := e.AddPlayerAt(0, "alice", 30); err != nil {
		t.Fatal(err)
	}
	if err := e.AddPlayerAt(1, "bob", 20); err != nil {
		t.Fatal(err)
	}
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}

	act(t, e, "alice", Raise, 30) // covers bob's stack
	act(t, e, "bob", Call, 0)
	completeRound(t, e)
	if err := e.PerformShowdown(); err != nil {
		t.Fatalf("PerformShowdown failed: %v", err)
	}

	if got := chips(t, e, "alice"); got != 50 {
		t.Fatalf("Alice should hold every chip, at %d", got)
	}
	if err := e.PrepareNextHand(); err != nil {
		t.Fatal(err)
	}
	if !e.GameOver() {
		t.Fatalf("One player left should end the game, got %s", e.State())
	}
	winner := e.GameWinner()
	if winner == nil || winner.Name != "alice" {
		t.Errorf("Alice should be the game winner, got %v", winner)
	}
	if err := e.StartHand(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Starting after game over should fail, got %v", err)
	}
}

func TestEngineReset(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)
	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}
	act(t, e, "alice", Call, 0)

	e.Reset()
	if e.State() != ReadyToStart {
		t.Fatalf("Reset with players seated should return to ReadyToStart, got %s", e.State())
	}
	if e.CurrentPot() != 0 {
		t.Errorf("Reset should clear the pot, got %d", e.CurrentPot())
	}
	if len(e.Board()) != 0 {
		t.Errorf("Reset should clear the board, got %v", e.Board())
	}
	for _, p := range e.Players() {
		if len(p.HoleCards) != 0 || p.Folded || p.Bet != 0 {
			t.Errorf("Reset should clear %s's hand state", p.Name)
		}
	}

	// The abandoned hand's blinds and calls come back.
	for _, p := range e.Players() {
		if p.Chips != 1000 {
			t.Errorf("%s should have their stake refunded, got %d", p.Name, p.Chips)
		}
	}
	if err := e.StartHand(); err != nil {
		t.Errorf("StartHand after reset failed: %v", err)
	}
}

func TestEngineButtonRotation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	seatThree(t, e)

	playFoldout := func() {
		t.Helper()
		if err := e.StartHand(); err != nil {
			t.Fatal(err)
		}
		// Everyone folds to the big blind.
		first := e.PlayerToAct()
		act(t, e, first.Name, Fold, 0)
		second := e.PlayerToAct()
		act(t, e, second.Name, Fold, 0)
		completeRound(t, e)
		if err := e.PrepareNextHand(); err != nil {
			t.Fatal(err)
		}
	}

	for _, wantButton := range []int{1, 2, 0} {
		playFoldout()
		if e.Button() != wantButton {
			t.Fatalf("Button should rotate to %d, got %d", wantButton, e.Button())
		}
	}
	if e.HandNumber() != 3 {
		t.Errorf("Three hands should have been played, got %d", e.HandNumber())
	}
}
