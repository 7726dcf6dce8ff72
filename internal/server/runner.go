package server

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/protocol"
)

// Runner drives one table's hands: it prompts the agent whose turn it is,
// feeds the answer to the engine, and relays engine events to every seat as
// protocol frames. The engine stays the referee; the runner only paces it.
type Runner struct {
	engine  *game.Engine
	logger  *log.Logger
	timeout time.Duration

	mu     sync.RWMutex
	agents map[string]Agent
}

// NewRunner wires a runner to an engine. timeout is advertised to clients
// in every action request; remote agents also enforce it.
func NewRunner(engine *game.Engine, logger *log.Logger, timeout time.Duration) *Runner {
	r := &Runner{
		engine:  engine,
		logger:  logger.WithPrefix("runner"),
		timeout: timeout,
		agents:  make(map[string]Agent),
	}
	engine.EventBus().Subscribe(r)
	return r
}

// Engine exposes the underlying engine for queries.
func (r *Runner) Engine() *game.Engine { return r.engine }

// AddAgent seats an agent with the given stack. Fails while a hand is
// running.
func (r *Runner) AddAgent(agent Agent, chips int) (int, error) {
	seat, err := r.engine.AddPlayer(agent.Name(), chips)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	r.agents[agent.Name()] = agent
	r.mu.Unlock()
	return seat, nil
}

// RemoveAgent unseats an agent and returns it, or nil if unknown. Fails
// while a hand is running.
func (r *Runner) RemoveAgent(name string) (Agent, error) {
	if err := r.engine.RemovePlayer(name); err != nil {
		return nil, err
	}
	return r.dropAgent(name), nil
}

func (r *Runner) dropAgent(name string) Agent {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent := r.agents[name]
	delete(r.agents, name)
	return agent
}

func (r *Runner) agentFor(name string) Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.agents[name]
}

// Seated reports how many agents are at the table.
func (r *Runner) Seated() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// PlayHand runs one complete hand from StartHand to HandComplete.
func (r *Runner) PlayHand(ctx context.Context) error {
	if err := r.engine.StartHand(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch state := r.engine.State(); {
		case state == game.HandComplete:
			return nil
		case state == game.Showdown:
			if err := r.engine.PerformShowdown(); err != nil {
				return err
			}
		case r.engine.BettingRoundComplete():
			if err := r.engine.CompleteBettingRound(); err != nil {
				return err
			}
		default:
			if err := r.promptNextAction(ctx); err != nil {
				return err
			}
		}
	}
}

// Run plays hands until the game has a single stack left, the hand limit is
// reached, or the context ends. hands <= 0 means no limit. Busted players
// lose their seats between hands; their agents are dropped.
func (r *Runner) Run(ctx context.Context, hands int) error {
	for played := 0; hands <= 0 || played < hands; played++ {
		if err := r.PlayHand(ctx); err != nil {
			return err
		}
		if err := r.engine.PrepareNextHand(); err != nil {
			return err
		}
		r.pruneBusted()
		if r.engine.GameOver() {
			r.logger.Info("Game over", "winner", winnerName(r.engine))
			return nil
		}
		if r.engine.State() != game.ReadyToStart {
			return nil
		}
	}
	return nil
}

func winnerName(e *game.Engine) string {
	if w := e.GameWinner(); w != nil {
		return w.Name
	}
	return ""
}

// pruneBusted drops agents whose players were removed at the end of the
// hand.
func (r *Runner) pruneBusted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.agents {
		if _, err := r.engine.PlayerByName(name); err != nil {
			r.logger.Info("Player busted", "player", name)
			delete(r.agents, name)
		}
	}
}

func (r *Runner) promptNextAction(ctx context.Context) error {
	p := r.engine.PlayerToAct()
	if p == nil {
		return fmt.Errorf("no player to act in %s", r.engine.State())
	}

	req := r.buildActionRequest(p)
	agent := r.agentFor(p.Name)

	var action game.Action
	var amount int
	if agent == nil {
		r.logger.Warn("No agent for seated player, acting for them", "player", p.Name)
		action, amount = fallbackAction(req)
	} else {
		action, amount = agent.Act(ctx, req)
	}

	if err := r.engine.RecordPlayerAction(p.Name, action, amount); err != nil {
		r.logger.Warn("Normalizing rejected action",
			"player", p.Name, "action", action, "amount", amount, "error", err)
		action, amount = fallbackAction(req)
		if err := r.engine.RecordPlayerAction(p.Name, action, amount); err != nil {
			return fmt.Errorf("fallback %s rejected for %s: %w", action, p.Name, err)
		}
	}
	return nil
}

func (r *Runner) buildActionRequest(p *game.Player) protocol.ActionRequest {
	valid := r.engine.ValidActions()
	verbs := make([]string, 0, len(valid))
	var minRaise, maxRaise int
	for _, va := range valid {
		verbs = append(verbs, va.Action.String())
		switch va.Action {
		case game.Bet, game.Raise:
			minRaise, maxRaise = va.Min, va.Max
		}
	}

	toCall, _ := r.engine.CallAmount(p.Name)
	return protocol.ActionRequest{
		HandID:       r.engine.HandID(),
		Street:       r.engine.Street().String(),
		ValidActions: verbs,
		ToCall:       toCall,
		MinRaise:     minRaise,
		MaxRaise:     maxRaise,
		CurrentBet:   r.engine.CurrentBet(),
		YourBet:      p.Bet,
		Pot:          r.engine.CurrentPot(),
		TimeoutMS:    int(r.timeout / time.Millisecond),
	}
}

// OnEvent relays engine events to the seated agents as protocol frames.
// The bus is synchronous, so frames go out in engine order.
func (r *Runner) OnEvent(event game.GameEvent) {
	switch ev := event.(type) {
	case game.HandStartEvent:
		r.sendHandStarts(ev)
	case game.PlayerActionEvent:
		r.broadcast(protocol.TypePlayerAction, protocol.PlayerAction{
			HandID: r.engine.HandID(),
			Street: ev.Street.String(),
			Seat:   ev.Player.Seat,
			Name:   ev.Player.Name,
			Action: ev.Action.String(),
			Amount: ev.Amount,
			Pot:    ev.PotAfter,
		})
	case game.StreetChangeEvent:
		r.broadcast(protocol.TypeStreetChange, protocol.StreetChange{
			HandID: r.engine.HandID(),
			Street: ev.Street.String(),
			Board:  protocol.CardStrings(ev.Board),
		})
	case game.HandEndEvent:
		r.broadcast(protocol.TypeHandResult, r.buildHandResult(ev))
	}
}

// sendHandStarts personalizes the hand_start frame per seat: each player
// sees only their own hole cards.
func (r *Runner) sendHandStarts(ev game.HandStartEvent) {
	public := make([]protocol.PlayerState, 0, len(ev.Players))
	for _, p := range ev.Players {
		public = append(public, protocol.PlayerState{
			Seat:   p.Seat,
			Name:   p.Name,
			Chips:  p.Chips,
			Bet:    p.Bet,
			Folded: p.Folded,
			AllIn:  p.AllIn,
		})
	}

	for _, p := range ev.Players {
		agent := r.agentFor(p.Name)
		if agent == nil {
			continue
		}
		msg, err := protocol.NewMessage(protocol.TypeHandStart, protocol.HandStart{
			HandID:     ev.HandID,
			HandNumber: ev.HandNumber,
			Button:     ev.Button,
			SmallBlind: ev.SmallBlind,
			BigBlind:   ev.BigBlind,
			YourSeat:   p.Seat,
			HoleCards:  protocol.CardStrings(p.HoleCards),
			Players:    public,
		})
		if err != nil {
			r.logger.Error("Failed to encode hand_start", "error", err)
			return
		}
		agent.Notify(msg)
	}
}

func (r *Runner) buildHandResult(ev game.HandEndEvent) protocol.HandResult {
	result := protocol.HandResult{
		HandID:  ev.HandID,
		Board:   protocol.CardStrings(ev.Board),
		Winners: make([]protocol.Winner, 0, len(ev.Payouts)),
	}
	for name, amount := range ev.Payouts {
		winner := protocol.Winner{Name: name, Amount: amount}
		if ranking, ok := ev.Rankings[name]; ok {
			winner.HandRank = ranking.String()
		}
		result.Winners = append(result.Winners, winner)
	}
	sortWinners(result.Winners)

	for name, ranking := range ev.Rankings {
		p, err := r.engine.PlayerByName(name)
		if err != nil {
			continue
		}
		result.Showdown = append(result.Showdown, protocol.ShowdownHand{
			Name:      name,
			HoleCards: protocol.CardStrings(p.HoleCards),
			HandRank:  ranking.String(),
		})
	}
	sortShowdown(result.Showdown)
	return result
}

// Map iteration order is random; fix the wire order for clients and tests.
func sortWinners(winners []protocol.Winner) {
	sort.Slice(winners, func(i, j int) bool { return winners[i].Name < winners[j].Name })
}

func sortShowdown(hands []protocol.ShowdownHand) {
	sort.Slice(hands, func(i, j int) bool { return hands[i].Name < hands[j].Name })
}

func (r *Runner) broadcast(messageType protocol.MessageType, payload any) {
	msg, err := protocol.NewMessage(messageType, payload)
	if err != nil {
		r.logger.Error("Failed to encode broadcast", "type", messageType, "error", err)
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, agent := range r.agents {
		agent.Notify(msg)
	}
}
