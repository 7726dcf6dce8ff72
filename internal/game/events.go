package game

import (
	"time"

	"github.com/lox/holdemcore/poker"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published when a new hand begins, after blinds are
// posted and hole cards dealt
type HandStartEvent struct {
	HandID         string
	HandNumber     int
	Button         int
	Players        []*Player
	SmallBlindSeat int
	BigBlindSeat   int
	SmallBlind     int
	BigBlind       int
	timestamp      time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// NewHandStartEvent creates a new hand start event
func NewHandStartEvent(handID string, handNumber, button int, players []*Player, sbSeat, bbSeat, smallBlind, bigBlind int) HandStartEvent {
	return HandStartEvent{
		HandID:         handID,
		HandNumber:     handNumber,
		Button:         button,
		Players:        players,
		SmallBlindSeat: sbSeat,
		BigBlindSeat:   bbSeat,
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		timestamp:      time.Now(),
	}
}

// PlayerActionEvent is published when a player takes a betting action.
// Amount is the chips paid for a call and the new street total for a bet or
// raise; zero for fold and check.
type PlayerActionEvent struct {
	Player    *Player
	Action    Action
	Amount    int
	Street    Street
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(player *Player, action Action, amount int, street Street, potAfter int) PlayerActionEvent {
	return PlayerActionEvent{
		Player:    player,
		Action:    action,
		Amount:    amount,
		Street:    street,
		PotAfter:  potAfter,
		timestamp: time.Now(),
	}
}

// StreetChangeEvent is published when community cards are dealt and a new
// betting street opens
type StreetChangeEvent struct {
	Street    Street
	Board     []poker.Card
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// NewStreetChangeEvent creates a new street change event
func NewStreetChangeEvent(street Street, board []poker.Card) StreetChangeEvent {
	cards := make([]poker.Card, len(board))
	copy(cards, board)
	return StreetChangeEvent{
		Street:    street,
		Board:     cards,
		timestamp: time.Now(),
	}
}

// HandEndEvent is published when a hand completes. Rankings is nil when the
// hand ended on folds without a showdown.
type HandEndEvent struct {
	HandID    string
	Board     []poker.Card
	Payouts   map[string]int
	Rankings  map[string]poker.HandRanking
	PotSize   int
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// NewHandEndEvent creates a new hand end event
func NewHandEndEvent(handID string, board []poker.Card, payouts map[string]int, rankings map[string]poker.HandRanking, potSize int) HandEndEvent {
	cards := make([]poker.Card, len(board))
	copy(cards, board)
	return HandEndEvent{
		HandID:    handID,
		Board:     cards,
		Payouts:   payouts,
		Rankings:  rankings,
		PotSize:   potSize,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous and in subscription order; subscribers must not block.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
