package game

import (
	"errors"
	"testing"
)

func trackerPlayers(names ...string) []*Player {
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = &Player{Seat: i, Name: name, Chips: 1000}
	}
	return players
}

func TestRoundTrackerChecksAround(t *testing.T) {
	t.Parallel()

	players := trackerPlayers("a", "b", "c")
	rt := NewRoundTracker(Flop, players, 0, 10)

	for _, want := range []string{"a", "b", "c"} {
		p := rt.CurrentPlayer()
		if p == nil || p.Name != want {
			t.Fatalf("Expected %s to act, got %v", want, p)
		}
		if rt.RoundComplete() {
			t.Fatalf("Round should not be complete while %s has not acted", want)
		}
		rt.RecordAction(p.Name)
	}

	if !rt.RoundComplete() {
		t.Error("Round should be complete after everyone checks")
	}
	if rt.CurrentPlayer() != nil {
		t.Errorf("No player should be left to act, got %v", rt.CurrentPlayer())
	}
}

func TestRoundTrackerRaiseReopensAction(t *testing.T) {
	t.Parallel()

	players := trackerPlayers("a", "b", "c")
	a, b, c := players[0], players[1], players[2]
	rt := NewRoundTracker(Flop, players, 0, 10)

	a.Bet = 30
	rt.RecordRaise("a", 30)
	b.Bet = 30
	rt.RecordAction("b")

	if p := rt.CurrentPlayer(); p != c {
		t.Fatalf("Expected c to act, got %v", p)
	}
	c.Bet = 90
	rt.RecordRaise("c", 90)

	if rt.RoundComplete() {
		t.Fatal("Raise should reopen action for earlier players")
	}
	if p := rt.CurrentPlayer(); p != a {
		t.Fatalf("Action should return to a, got %v", p)
	}
	a.Bet = 90
	rt.RecordAction("a")

	if p := rt.CurrentPlayer(); p != b {
		t.Fatalf("Action should continue to b, got %v", p)
	}
	b.Bet = 90
	rt.RecordAction("b")

	if !rt.RoundComplete() {
		t.Error("Round should be complete once everyone matches the raise")
	}
	if rt.CurrentBet() != 90 {
		t.Errorf("Live bet should be 90, got %d", rt.CurrentBet())
	}
	if rt.LastRaiser() != "c" {
		t.Errorf("Last raiser should be c, got %s", rt.LastRaiser())
	}
}

func TestRoundTrackerSkipsFoldedAndAllIn(t *testing.T) {
	t.Parallel()

	players := trackerPlayers("a", "b", "c", "d")
	players[1].Folded = true
	players[2].AllIn = true
	rt := NewRoundTracker(Turn, players, 0, 10)

	if p := rt.CurrentPlayer(); p != players[0] {
		t.Fatalf("Expected a to act, got %v", p)
	}
	rt.RecordAction("a")
	if p := rt.CurrentPlayer(); p != players[3] {
		t.Fatalf("Folded and all-in players should be skipped, got %v", p)
	}
	rt.RecordAction("d")

	if !rt.RoundComplete() {
		t.Error("Round should be complete when only skippable players remain")
	}
}

func TestRoundTrackerForcedCallAgainstAllInRaise(t *testing.T) {
	t.Parallel()

	// The raiser going all-in does not close the round: the player facing
	// the raise still owes a decision.
	players := trackerPlayers("a", "b")
	a, b := players[0], players[1]
	rt := NewRoundTracker(Flop, players, 0, 10)

	a.Bet = 1000
	a.Chips = 0
	a.AllIn = true
	rt.RecordRaise("a", 1000)

	if rt.RoundComplete() {
		t.Fatal("b still owes a call, the round is not complete")
	}
	if p := rt.CurrentPlayer(); p != b {
		t.Fatalf("Expected b to act, got %v", p)
	}
	if got := rt.CallAmount(b); got != 1000 {
		t.Errorf("b should owe 1000, got %d", got)
	}

	b.Bet = 1000
	rt.RecordAction("b")
	if !rt.RoundComplete() {
		t.Error("Round should complete after the forced call")
	}
}

func TestRoundTrackerBigBlindOption(t *testing.T) {
	t.Parallel()

	// Preflop heads-up: the small blind completes, and the big blind
	// still gets to act despite already matching the live bet.
	players := trackerPlayers("sb", "bb")
	sb, bb := players[0], players[1]
	sb.Bet = 5
	bb.Bet = 10
	rt := NewRoundTracker(Preflop, players, 10, 10)

	if p := rt.CurrentPlayer(); p != sb {
		t.Fatalf("Small blind should act first, got %v", p)
	}
	if got := rt.CallAmount(sb); got != 5 {
		t.Errorf("Small blind should owe 5, got %d", got)
	}
	sb.Bet = 10
	rt.RecordAction("sb")

	if rt.RoundComplete() {
		t.Fatal("Big blind has the option and has not acted")
	}
	if p := rt.CurrentPlayer(); p != bb {
		t.Fatalf("Big blind should have the option, got %v", p)
	}
	if got := rt.CallAmount(bb); got != 0 {
		t.Errorf("Big blind owes nothing, got %d", got)
	}
	rt.RecordAction("bb")

	if !rt.RoundComplete() {
		t.Error("Round should be complete after the big blind checks")
	}
}

func TestRoundTrackerFoldEndsRound(t *testing.T) {
	t.Parallel()

	players := trackerPlayers("a", "b", "c")
	rt := NewRoundTracker(Flop, players, 0, 10)

	players[0].Bet = 50
	rt.RecordRaise("a", 50)
	players[1].Folded = true
	rt.RecordAction("b")
	players[2].Folded = true
	rt.RecordAction("c")

	if !rt.RoundComplete() {
		t.Error("Round should be complete with one player left in the hand")
	}
}

func TestCallAmountNeverNegative(t *testing.T) {
	t.Parallel()

	players := trackerPlayers("a", "b")
	rt := NewRoundTracker(Flop, players, 0, 10)

	players[0].Bet = 80
	rt.RecordRaise("a", 80)
	players[1].Bet = 100 // over-contributed, should never owe negative
	if got := rt.CallAmount(players[1]); got != 0 {
		t.Errorf("CallAmount should clamp at 0, got %d", got)
	}
}

func TestMinRaiseFlatIncrement(t *testing.T) {
	t.Parallel()

	players := trackerPlayers("a", "b")
	rt := NewRoundTracker(Preflop, players, 10, 10)
	if got := rt.MinRaise(); got != 20 {
		t.Errorf("MinRaise should be 20, got %d", got)
	}

	players[0].Bet = 100
	rt.RecordRaise("a", 100)
	if got := rt.MinRaise(); got != 110 {
		t.Errorf("MinRaise after a raise to 100 should be 110, got %d", got)
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Action
	}{
		{"fold", Fold},
		{"check", Check},
		{"call", Call},
		{"bet", Bet},
		{"raise", Raise},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if err != nil {
			t.Errorf("ParseAction(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("Action string round-trip failed for %q, got %q", tt.in, got.String())
		}
	}

	if _, err := ParseAction("shove"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Unknown action should fail with ErrInvalidAction, got %v", err)
	}
}

func TestStreetString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		street Street
		want   string
	}{
		{Preflop, "preflop"},
		{Flop, "flop"},
		{Turn, "turn"},
		{River, "river"},
		{Street(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.street.String(); got != tt.want {
			t.Errorf("Street(%d).String() = %q, want %q", int(tt.street), got, tt.want)
		}
	}
}
