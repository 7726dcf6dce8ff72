package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/holdemcore/poker"
)

// SeatRecord is a player's state when a recorded hand began. StartingChips
// counts the blinds back in, since hands are recorded after posting.
type SeatRecord struct {
	Seat          int
	Name          string
	StartingChips int
	HoleCards     []poker.Card
}

// ActionRecord is one betting action in a recorded hand
type ActionRecord struct {
	Street   Street
	Player   string
	Action   Action
	Amount   int
	PotAfter int
}

// HandRecord is the full story of one hand: who sat where, every action by
// street, the board, and where the chips went.
type HandRecord struct {
	HandID         string
	HandNumber     int
	Button         int
	SmallBlind     int
	BigBlind       int
	SmallBlindSeat int
	BigBlindSeat   int
	Seats          []SeatRecord
	Actions        []ActionRecord
	Board          []poker.Card
	Payouts        map[string]int
	Rankings       map[string]string
	NetDeltas      map[string]int
	PotSize        int
	Complete       bool

	players []*Player
}

// Balanced reports whether the recorded hand conserves chips: every payout
// drained into the pot comes back out, and the players' net deltas cancel.
func (h *HandRecord) Balanced() bool {
	net := 0
	for _, delta := range h.NetDeltas {
		net += delta
	}
	paid := 0
	for _, amount := range h.Payouts {
		paid += amount
	}
	return net == 0 && paid == h.PotSize
}

// Summary renders the hand as a text transcript
func (h *HandRecord) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== HAND %s ===\n", h.HandID)
	fmt.Fprintf(&b, "Blinds: %d/%d\n", h.SmallBlind, h.BigBlind)
	for _, s := range h.Seats {
		fmt.Fprintf(&b, "Seat %d: %s (%d chips)%s\n", s.Seat, s.Name, s.StartingChips, h.seatMarker(s.Seat))
	}
	fmt.Fprintf(&b, "%s: posts small blind %d\n", h.nameAt(h.SmallBlindSeat), h.SmallBlind)
	fmt.Fprintf(&b, "%s: posts big blind %d\n", h.nameAt(h.BigBlindSeat), h.BigBlind)

	shown := make(map[Street]bool)
	for _, a := range h.Actions {
		if !shown[a.Street] {
			shown[a.Street] = true
			fmt.Fprintf(&b, "*** %s ***%s\n", strings.ToUpper(a.Street.String()), h.boardAt(a.Street))
		}
		switch a.Action {
		case Fold, Check:
			fmt.Fprintf(&b, "%s: %s\n", a.Player, a.Action)
		case Call:
			fmt.Fprintf(&b, "%s: calls %d (pot %d)\n", a.Player, a.Amount, a.PotAfter)
		case Bet:
			fmt.Fprintf(&b, "%s: bets %d (pot %d)\n", a.Player, a.Amount, a.PotAfter)
		case Raise:
			fmt.Fprintf(&b, "%s: raises to %d (pot %d)\n", a.Player, a.Amount, a.PotAfter)
		}
	}

	if len(h.Board) > 0 {
		fmt.Fprintf(&b, "Board: [%s]\n", poker.FormatCards(h.Board))
	}

	if len(h.Rankings) > 0 {
		b.WriteString("*** SHOWDOWN ***\n")
		for _, name := range sortedKeys(h.Rankings) {
			fmt.Fprintf(&b, "%s: shows %s\n", name, h.Rankings[name])
		}
	}
	for _, name := range sortedKeys(h.Payouts) {
		suffix := ""
		if len(h.Rankings) == 0 {
			suffix = " (uncontested)"
		}
		fmt.Fprintf(&b, "%s wins %d%s\n", name, h.Payouts[name], suffix)
	}

	return b.String()
}

func (h *HandRecord) seatMarker(seat int) string {
	switch {
	case seat == h.Button && seat == h.SmallBlindSeat:
		return " (BTN/SB)"
	case seat == h.SmallBlindSeat:
		return " (SB)"
	case seat == h.BigBlindSeat:
		return " (BB)"
	case seat == h.Button:
		return " (BTN)"
	}
	return ""
}

func (h *HandRecord) nameAt(seat int) string {
	for _, s := range h.Seats {
		if s.Seat == seat {
			return s.Name
		}
	}
	return fmt.Sprintf("seat %d", seat)
}

// boardAt returns the board cards visible when a street's betting opened
func (h *HandRecord) boardAt(street Street) string {
	visible := 0
	switch street {
	case Flop:
		visible = 3
	case Turn:
		visible = 4
	case River:
		visible = 5
	}
	if visible == 0 || len(h.Board) < visible {
		return ""
	}
	return fmt.Sprintf(" [%s]", poker.FormatCards(h.Board[:visible]))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Recorder subscribes to an engine's event bus and keeps a HandRecord for
// every completed hand. It is a passive consumer; the engine never waits on
// it.
type Recorder struct {
	current *HandRecord
	hands   []*HandRecord
}

// NewRecorder creates an empty recorder. Subscribe it to an engine's bus to
// start capturing hands.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnEvent implements EventSubscriber
func (r *Recorder) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case HandStartEvent:
		record := &HandRecord{
			HandID:         e.HandID,
			HandNumber:     e.HandNumber,
			Button:         e.Button,
			SmallBlind:     e.SmallBlind,
			BigBlind:       e.BigBlind,
			SmallBlindSeat: e.SmallBlindSeat,
			BigBlindSeat:   e.BigBlindSeat,
			Payouts:        make(map[string]int),
			Rankings:       make(map[string]string),
			NetDeltas:      make(map[string]int),
			players:        e.Players,
		}
		for _, p := range e.Players {
			hole := make([]poker.Card, len(p.HoleCards))
			copy(hole, p.HoleCards)
			record.Seats = append(record.Seats, SeatRecord{
				Seat:          p.Seat,
				Name:          p.Name,
				StartingChips: p.Chips + p.Bet,
				HoleCards:     hole,
			})
		}
		r.current = record

	case PlayerActionEvent:
		if r.current == nil {
			return
		}
		r.current.Actions = append(r.current.Actions, ActionRecord{
			Street:   e.Street,
			Player:   e.Player.Name,
			Action:   e.Action,
			Amount:   e.Amount,
			PotAfter: e.PotAfter,
		})

	case StreetChangeEvent:
		if r.current == nil {
			return
		}
		r.current.Board = e.Board

	case HandEndEvent:
		if r.current == nil {
			return
		}
		r.current.Board = e.Board
		r.current.PotSize = e.PotSize
		for name, amount := range e.Payouts {
			r.current.Payouts[name] = amount
		}
		for name, ranking := range e.Rankings {
			r.current.Rankings[name] = ranking.String()
		}
		for i, p := range r.current.players {
			r.current.NetDeltas[p.Name] = p.Chips - r.current.Seats[i].StartingChips
		}
		r.current.players = nil
		r.current.Complete = true
		r.hands = append(r.hands, r.current)
		r.current = nil
	}
}

// Hands returns the completed hand records in order
func (r *Recorder) Hands() []*HandRecord {
	return r.hands
}

// LastHand returns the most recently completed hand, or nil
func (r *Recorder) LastHand() *HandRecord {
	if len(r.hands) == 0 {
		return nil
	}
	return r.hands[len(r.hands)-1]
}
