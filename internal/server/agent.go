package server

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemcore/internal/bot"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/protocol"
	"github.com/lox/holdemcore/poker"
)

// Agent is a seat's decision maker as the runner sees it. Act must return
// an action for every request; agents that cannot decide fall back to
// checking or folding. Notify delivers broadcast frames and may be called
// from the runner's goroutine at any point in a hand.
type Agent interface {
	Name() string
	Act(ctx context.Context, req protocol.ActionRequest) (game.Action, int)
	Notify(msg *protocol.Message)
}

// fallbackAction is the action taken for an agent that failed to produce
// one: the free option when there is one, otherwise fold.
func fallbackAction(req protocol.ActionRequest) (game.Action, int) {
	if req.ToCall == 0 {
		return game.Check, 0
	}
	return game.Fold, 0
}

// BotAgent seats a built-in strategy. It keeps hole cards and board from
// broadcast frames, so it sees exactly what a remote player would.
type BotAgent struct {
	name     string
	strategy bot.Strategy
	logger   *log.Logger

	mu        sync.Mutex
	holeCards []poker.Card
	board     []poker.Card
	bigBlind  int
}

// NewBotAgent wraps a strategy as an agent.
func NewBotAgent(name string, strategy bot.Strategy, logger *log.Logger) *BotAgent {
	return &BotAgent{
		name:     name,
		strategy: strategy,
		logger:   logger.WithPrefix("bot").With("name", name, "strategy", strategy.Name()),
	}
}

func (a *BotAgent) Name() string { return a.name }

func (a *BotAgent) Notify(msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeHandStart:
		var hs protocol.HandStart
		if err := msg.Decode(&hs); err != nil {
			a.logger.Error("Bad hand_start frame", "error", err)
			return
		}
		cards, err := protocol.ParseCardStrings(hs.HoleCards)
		if err != nil {
			a.logger.Error("Bad hole cards", "error", err)
			return
		}
		a.mu.Lock()
		a.holeCards = cards
		a.board = nil
		a.bigBlind = hs.BigBlind
		a.mu.Unlock()

	case protocol.TypeStreetChange:
		var sc protocol.StreetChange
		if err := msg.Decode(&sc); err != nil {
			a.logger.Error("Bad street_change frame", "error", err)
			return
		}
		board, err := protocol.ParseCardStrings(sc.Board)
		if err != nil {
			a.logger.Error("Bad board cards", "error", err)
			return
		}
		a.mu.Lock()
		a.board = board
		a.mu.Unlock()
	}
}

func (a *BotAgent) Act(_ context.Context, req protocol.ActionRequest) (game.Action, int) {
	street, err := game.ParseStreet(req.Street)
	if err != nil {
		return fallbackAction(req)
	}

	a.mu.Lock()
	situation := bot.Situation{
		HoleCards:  a.holeCards,
		Board:      a.board,
		Street:     street,
		Pot:        req.Pot,
		CurrentBet: req.CurrentBet,
		ToCall:     req.ToCall,
		MinRaise:   req.MinRaise,
		MaxBet:     req.MaxRaise,
		Bet:        req.YourBet,
		BigBlind:   a.bigBlind,
	}
	a.mu.Unlock()

	action, amount := a.strategy.Act(situation)
	a.logger.Debug("Bot decision", "street", req.Street, "action", action, "amount", amount)
	return action, amount
}

// frameSender is the slice of Connection a RemoteAgent needs: push a frame,
// learn when the peer is gone. Tests substitute an in-memory pipe.
type frameSender interface {
	Send(msg *protocol.Message) error
	Done() <-chan struct{}
}

// RemoteAgent proxies a seat to a WebSocket client: Act sends an
// action_request and waits for the matching reply, a timeout on the
// injected clock, or the connection dying, whichever comes first.
type RemoteAgent struct {
	name    string
	conn    frameSender
	clock   quartz.Clock
	timeout time.Duration
	logger  *log.Logger

	requestSeq atomic.Int64

	mu      sync.Mutex
	pending string
	replies chan protocol.Action
}

// NewRemoteAgent wraps a connection as an agent. timeout bounds how long
// Act waits for the client's reply.
func NewRemoteAgent(name string, conn frameSender, clock quartz.Clock, timeout time.Duration, logger *log.Logger) *RemoteAgent {
	return &RemoteAgent{
		name:    name,
		conn:    conn,
		clock:   clock,
		timeout: timeout,
		logger:  logger.WithPrefix("remote").With("player", name),
		replies: make(chan protocol.Action, 1),
	}
}

func (a *RemoteAgent) Name() string { return a.name }

func (a *RemoteAgent) Notify(msg *protocol.Message) {
	_ = a.conn.Send(msg)
}

// HandleAction accepts a client's reply. The request id must match the
// request currently awaiting an answer.
func (a *RemoteAgent) HandleAction(requestID string, action protocol.Action) error {
	a.mu.Lock()
	pending := a.pending
	a.mu.Unlock()

	if pending == "" {
		return fmt.Errorf("no action pending for %s", a.name)
	}
	if requestID != pending {
		return fmt.Errorf("reply for request %q but %q is pending", requestID, pending)
	}

	select {
	case a.replies <- action:
		return nil
	default:
		return fmt.Errorf("request %q already answered", requestID)
	}
}

func (a *RemoteAgent) Act(ctx context.Context, req protocol.ActionRequest) (game.Action, int) {
	msg, err := protocol.NewMessage(protocol.TypeActionRequest, req)
	if err != nil {
		a.logger.Error("Failed to encode action request", "error", err)
		return fallbackAction(req)
	}
	requestID := fmt.Sprintf("%s-%d", req.HandID, a.requestSeq.Add(1))
	msg.RequestID = requestID

	a.mu.Lock()
	// Drop any reply that straggled in after a previous timeout.
	select {
	case <-a.replies:
	default:
	}
	a.pending = requestID
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.pending = ""
		a.mu.Unlock()
	}()

	if err := a.conn.Send(msg); err != nil {
		a.logger.Warn("Player unreachable, acting for them", "error", err)
		return fallbackAction(req)
	}

	timedOut := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() { close(timedOut) })
	defer timer.Stop()

	select {
	case reply := <-a.replies:
		action, err := game.ParseAction(reply.Action)
		if err != nil {
			a.logger.Warn("Unparseable action from client", "action", reply.Action)
			return fallbackAction(req)
		}
		return action, reply.Amount

	case <-timedOut:
		a.logger.Warn("Action timed out", "timeout", a.timeout)
		return fallbackAction(req)

	case <-a.conn.Done():
		a.logger.Info("Player disconnected mid-decision")
		return fallbackAction(req)

	case <-ctx.Done():
		return fallbackAction(req)
	}
}
