// Package protocol defines the JSON messages exchanged between the table
// server and remote players. Every frame is a Message envelope: a type tag,
// a raw payload decoded on demand, a timestamp, and an optional request id
// correlating an action request with its reply. Cards travel as two
// character strings like "As" and "Th".
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/holdemcore/poker"
)

// MessageType tags the payload carried by a Message
type MessageType string

const (
	// Client to server
	TypeJoin   MessageType = "join"
	TypeAction MessageType = "action"

	// Server to client
	TypeWelcome       MessageType = "welcome"
	TypeHandStart     MessageType = "hand_start"
	TypeActionRequest MessageType = "action_request"
	TypePlayerAction  MessageType = "player_action"
	TypeStreetChange  MessageType = "street_change"
	TypeHandResult    MessageType = "hand_result"
	TypeError         MessageType = "error"
)

// Message is the wire envelope for every frame in either direction
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage wraps a payload in an envelope stamped with the current time
func NewMessage(messageType MessageType, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", messageType, err)
	}
	return &Message{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now(),
	}, nil
}

// Decode unmarshals the envelope's payload into a typed message
func (m *Message) Decode(into any) error {
	if err := json.Unmarshal(m.Data, into); err != nil {
		return fmt.Errorf("decoding %s payload: %w", m.Type, err)
	}
	return nil
}

// Join is the first frame a client sends after connecting. Table picks a
// table by name; empty means any table with a free seat.
type Join struct {
	Name  string `json:"name"`
	Table string `json:"table,omitempty"`
}

// Welcome confirms a join and tells the client where it sits
type Welcome struct {
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Chips int    `json:"chips"`
}

// Action is a client's reply to an ActionRequest. Amount is the new total
// street bet for bet and raise and is ignored otherwise. The envelope's
// request id must echo the request being answered.
type Action struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// PlayerState is one seat's public state
type PlayerState struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	Bet    int    `json:"bet,omitempty"`
	Folded bool   `json:"folded,omitempty"`
	AllIn  bool   `json:"all_in,omitempty"`
}

// HandStart is sent to each player as a hand begins. HoleCards holds only
// the recipient's own cards.
type HandStart struct {
	HandID     string        `json:"hand_id"`
	HandNumber int           `json:"hand_number"`
	Button     int           `json:"button"`
	SmallBlind int           `json:"small_blind"`
	BigBlind   int           `json:"big_blind"`
	YourSeat   int           `json:"your_seat"`
	HoleCards  []string      `json:"hole_cards"`
	Players    []PlayerState `json:"players"`
}

// ActionRequest asks one player for a decision. ValidActions names the
// legal verbs; ToCall, MinRaise and MaxRaise bound the amounts, all as new
// street totals except ToCall which is chips to pay. CurrentBet is the live
// bet being faced and YourBet what the player already has in this street.
// The client has TimeoutMS milliseconds before the server acts for it.
type ActionRequest struct {
	HandID       string   `json:"hand_id"`
	Street       string   `json:"street"`
	ValidActions []string `json:"valid_actions"`
	ToCall       int      `json:"to_call"`
	MinRaise     int      `json:"min_raise"`
	MaxRaise     int      `json:"max_raise"`
	CurrentBet   int      `json:"current_bet"`
	YourBet      int      `json:"your_bet"`
	Pot          int      `json:"pot"`
	TimeoutMS    int      `json:"timeout_ms"`
}

// PlayerAction is broadcast after every accepted action
type PlayerAction struct {
	HandID string `json:"hand_id"`
	Street string `json:"street"`
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
	Pot    int    `json:"pot"`
}

// StreetChange is broadcast when community cards land
type StreetChange struct {
	HandID string   `json:"hand_id"`
	Street string   `json:"street"`
	Board  []string `json:"board"`
}

// Winner is one payout line in a HandResult
type Winner struct {
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	HandRank string `json:"hand_rank,omitempty"`
}

// ShowdownHand is a hand revealed at showdown
type ShowdownHand struct {
	Name      string   `json:"name"`
	HoleCards []string `json:"hole_cards"`
	HandRank  string   `json:"hand_rank"`
}

// HandResult closes a hand: the final board, every payout, and the hands
// revealed if it reached showdown.
type HandResult struct {
	HandID   string         `json:"hand_id"`
	Board    []string       `json:"board"`
	Winners  []Winner       `json:"winners"`
	Showdown []ShowdownHand `json:"showdown,omitempty"`
}

// Error reports a rejected frame or a server-side failure
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CardStrings renders cards in wire notation
func CardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// ParseCardStrings parses wire notation back into cards
func ParseCardStrings(strs []string) ([]poker.Card, error) {
	out := make([]poker.Card, len(strs))
	for i, s := range strs {
		c, err := poker.ParseCard(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
