package game

import (
	"reflect"
	"testing"

	"github.com/lox/holdemcore/poker"
)

type capturingSubscriber struct {
	events []GameEvent
}

func (s *capturingSubscriber) OnEvent(event GameEvent) {
	s.events = append(s.events, event)
}

func (s *capturingSubscriber) types() []EventType {
	types := make([]EventType, 0, len(s.events))
	for _, e := range s.events {
		types = append(types, e.EventType())
	}
	return types
}

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	first := &capturingSubscriber{}
	second := &capturingSubscriber{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewStreetChangeEvent(Flop, nil))
	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("Both subscribers should see the event, got %d and %d", len(first.events), len(second.events))
	}

	bus.Unsubscribe(first)
	bus.Publish(NewStreetChangeEvent(Turn, nil))
	if len(first.events) != 1 {
		t.Errorf("Unsubscribed listener should stop receiving, got %d events", len(first.events))
	}
	if len(second.events) != 2 {
		t.Errorf("Remaining listener should keep receiving, got %d events", len(second.events))
	}
}

func TestEngineEventSequenceFoldout(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	sub := &capturingSubscriber{}
	e.EventBus().Subscribe(sub)
	seatThree(t, e)

	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}
	act(t, e, "alice", Fold, 0)
	act(t, e, "bob", Fold, 0)
	completeRound(t, e)

	want := []EventType{
		EventTypeHandStart,
		EventTypePlayerAction,
		EventTypePlayerAction,
		EventTypeHandEnd,
	}
	if got := sub.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("Event sequence = %v, want %v", got, want)
	}

	start, ok := sub.events[0].(HandStartEvent)
	if !ok {
		t.Fatalf("First event should be HandStartEvent, got %T", sub.events[0])
	}
	if start.SmallBlindSeat != 1 || start.BigBlindSeat != 2 {
		t.Errorf("Blind seats should be 1 and 2, got %d and %d", start.SmallBlindSeat, start.BigBlindSeat)
	}

	end, ok := sub.events[3].(HandEndEvent)
	if !ok {
		t.Fatalf("Last event should be HandEndEvent, got %T", sub.events[3])
	}
	if end.PotSize != 15 || end.Payouts["carol"] != 15 {
		t.Errorf("Hand end should pay carol the blinds, got %v", end.Payouts)
	}
	if end.Rankings != nil {
		t.Errorf("A fold-out carries no rankings, got %v", end.Rankings)
	}
}

func TestEngineEventSequenceRunout(t *testing.T) {
	t.Parallel()

	deck := poker.NewStackedDeck(poker.MustParseCards(
		"Ks 7s As Kh 2h Ah Jc 2c 7d 9h Jd 3s Jh 4d")...)
	e := newTestEngine(t, WithDeck(deck))
	sub := &capturingSubscriber{}
	e.EventBus().Subscribe(sub)
	seatThree(t, e)

	if err := e.StartHand(); err != nil {
		t.Fatal(err)
	}
	act(t, e, "alice", Raise, 1000)
	act(t, e, "bob", Call, 0)
	act(t, e, "carol", Fold, 0)
	completeRound(t, e)
	if err := e.PerformShowdown(); err != nil {
		t.Fatal(err)
	}

	// The runout publishes each street as it lands.
	want := []EventType{
		EventTypeHandStart,
		EventTypePlayerAction,
		EventTypePlayerAction,
		EventTypePlayerAction,
		EventTypeStreetChange,
		EventTypeStreetChange,
		EventTypeStreetChange,
		EventTypeHandEnd,
	}
	if got := sub.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("Event sequence = %v, want %v", got, want)
	}

	flop, ok := sub.events[4].(StreetChangeEvent)
	if !ok || flop.Street != Flop || len(flop.Board) != 3 {
		t.Errorf("First street event should be a three card flop, got %+v", sub.events[4])
	}
	river, ok := sub.events[6].(StreetChangeEvent)
	if !ok || river.Street != River || len(river.Board) != 5 {
		t.Errorf("Last street event should be the five card river, got %+v", sub.events[6])
	}
}
