package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/protocol"
)

// HumanAgent seats the person at the keyboard. It satisfies the table
// runner's agent interface by forwarding frames into the Bubble Tea program
// and blocking Act until the model collects an answer.
type HumanAgent struct {
	name string

	mu      sync.RWMutex
	program *tea.Program
}

// NewHumanAgent creates an agent for the named player. Attach the program
// before the game loop starts.
func NewHumanAgent(name string) *HumanAgent {
	return &HumanAgent{name: name}
}

// Attach wires the agent to a running program.
func (a *HumanAgent) Attach(program *tea.Program) {
	a.mu.Lock()
	a.program = program
	a.mu.Unlock()
}

// SessionEnded tells the UI the game loop has returned so it can quit.
func (a *HumanAgent) SessionEnded(err error) {
	if p := a.attached(); p != nil {
		p.Send(sessionEndedMsg{err: err})
	}
}

func (a *HumanAgent) attached() *tea.Program {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.program
}

// Name implements the runner's agent interface.
func (a *HumanAgent) Name() string { return a.name }

// Notify forwards a frame to the UI.
func (a *HumanAgent) Notify(msg *protocol.Message) {
	if p := a.attached(); p != nil {
		p.Send(frameMsg{msg: msg})
	}
}

// Act prompts the UI and waits for the player's answer. If the UI is gone
// or the context ends, the free option is taken, otherwise fold.
func (a *HumanAgent) Act(ctx context.Context, req protocol.ActionRequest) (game.Action, int) {
	p := a.attached()
	if p == nil {
		return surrender(req), 0
	}

	reply := make(chan actionReply, 1)
	p.Send(promptMsg{req: req, reply: reply})

	select {
	case r := <-reply:
		return r.action, r.amount
	case <-ctx.Done():
		return surrender(req), 0
	}
}

func surrender(req protocol.ActionRequest) game.Action {
	if req.ToCall == 0 {
		return game.Check
	}
	return game.Fold
}
