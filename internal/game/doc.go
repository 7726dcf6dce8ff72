// Package game implements the Texas Hold'em rules engine: the hand
// lifecycle state machine, action order, betting round tracking and the pot
// ledger with multi-way side pots.
//
// The main type is Engine, a synchronous referee for one table. It owns no
// goroutines and no timers; callers supply every action and drive every
// phase change, and the engine validates them and keeps the chips honest.
//
// # Basic Usage
//
// Seat players, start a hand and drive it to completion:
//
//	e := game.New(game.WithBlinds(5, 10), game.WithSeed(42))
//	e.AddPlayer("alice", 1000)
//	e.AddPlayer("bob", 1000)
//	e.StartHand()
//	for e.State().IsBetting() {
//	    if e.BettingRoundComplete() {
//	        e.CompleteBettingRound()
//	        continue
//	    }
//	    p := e.PlayerToAct()
//	    e.RecordPlayerAction(p.Name, game.Call, 0)
//	}
//	if e.State() == game.Showdown {
//	    e.PerformShowdown()
//	}
//	e.PrepareNextHand()
//
// # Deterministic Testing
//
// Inject a seed for reproducible shuffles, or a stacked deck for exact
// boards. Hole cards are dealt one at a time, two passes, starting left of
// the button, then three flop, one turn and one river card with a burn
// before each.
//
//	deck := poker.NewStackedDeck(poker.MustParseCards("As Kd Ah Kc")...)
//	e := game.New(game.WithDeck(deck))
//
// # Architecture
//
// Engine delegates to specialized components:
//   - RoundTracker: per-street acting order, live bet and round completion
//   - PotManager: pot collection, side pot layering and distribution
//   - poker.Deck and poker.EvaluateSeven: dealing and hand strength
//
// Observers subscribe to the engine's EventBus; the Recorder builds hand
// histories from those events without the engine knowing it exists.
package game
