// Package tui is the interactive table client: a Bubble Tea model showing
// the action log, board and stacks, plus an agent bridging the table runner
// to the model. The runner drives the game on its own goroutine; frames and
// action prompts cross into the UI as messages.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/protocol"
	"github.com/lox/holdemcore/poker"
)

// frameMsg carries one protocol frame into the model.
type frameMsg struct {
	msg *protocol.Message
}

// promptMsg asks the model to collect an action from the player.
type promptMsg struct {
	req   protocol.ActionRequest
	reply chan<- actionReply
}

// actionReply is the player's answer to a prompt.
type actionReply struct {
	action game.Action
	amount int
}

// sessionEndedMsg tells the model the game loop has returned.
type sessionEndedMsg struct {
	err error
}

const maxLogLines = 500

// Model is the Bubble Tea model for one seat at a table.
type Model struct {
	name string

	logView viewport.Model
	input   textinput.Model
	lines   []string

	hole    []poker.Card
	board   []poker.Card
	players []protocol.PlayerState
	pot     int

	prompt *promptMsg
	errMsg string

	width    int
	height   int
	ready    bool
	quitting bool
	endErr   error
}

// NewModel creates the model for the named player.
func NewModel(name string) *Model {
	input := textinput.New()
	input.Placeholder = "fold, check, call, bet <amount>, raise <amount>"
	input.Prompt = "> "
	input.PromptStyle = promptStyle
	input.CharLimit = 32
	input.Focus()

	return &Model{
		name:    name,
		logView: viewport.New(60, 10),
		input:   input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.ready = true

	case frameMsg:
		for _, line := range m.applyFrame(msg.msg) {
			m.appendLine(line)
		}

	case promptMsg:
		m.prompt = &msg
		m.errMsg = ""
		m.appendLine(promptStyle.Render(describeRequest(msg.req)))

	case sessionEndedMsg:
		m.quitting = true
		m.endErr = msg.err
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.abandonPrompt()
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logView, cmd = m.logView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// Err returns the game loop's terminal error, if any, for after Run.
func (m *Model) Err() error { return m.endErr }

func (m *Model) layout() {
	logHeight := m.height - 8 // header, status, players, prompt, input
	if logHeight < 3 {
		logHeight = 3
	}
	m.logView.Width = m.width
	m.logView.Height = logHeight
	m.input.Width = m.width - 4
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.logView.SetContent(strings.Join(m.lines, "\n"))
	m.logView.GotoBottom()
}

// submit parses the input line and answers the pending prompt.
func (m *Model) submit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	if m.prompt == nil {
		m.errMsg = "not your turn"
		return
	}

	action, amount, err := parseCommand(text, m.prompt.req)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.prompt.reply <- actionReply{action: action, amount: amount}
	m.prompt = nil
	m.errMsg = ""
	m.input.Reset()
}

// abandonPrompt folds out of a pending decision so the table never blocks
// on a quit.
func (m *Model) abandonPrompt() {
	if m.prompt == nil {
		return
	}
	reply := actionReply{action: game.Fold}
	if m.prompt.req.ToCall == 0 {
		reply.action = game.Check
	}
	m.prompt.reply <- reply
	m.prompt = nil
}

// parseCommand turns a typed line into an action, checked against the
// request so typos fold nobody.
func parseCommand(text string, req protocol.ActionRequest) (game.Action, int, error) {
	fields := strings.Fields(strings.ToLower(text))
	action, err := game.ParseAction(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unknown action %q", fields[0])
	}

	allowed := false
	for _, verb := range req.ValidActions {
		if verb == fields[0] {
			allowed = true
			break
		}
	}
	if !allowed {
		return 0, 0, fmt.Errorf("%s not available, options: %s", fields[0], strings.Join(req.ValidActions, ", "))
	}

	switch action {
	case game.Bet, game.Raise:
		if len(fields) < 2 {
			return 0, 0, fmt.Errorf("%s needs an amount", fields[0])
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad amount %q", fields[1])
		}
		// MaxRaise is also the all-in total, which is legal below the min.
		if amount != req.MaxRaise && (amount < req.MinRaise || amount > req.MaxRaise) {
			return 0, 0, fmt.Errorf("amount must be %d to %d", req.MinRaise, req.MaxRaise)
		}
		return action, amount, nil
	default:
		if len(fields) > 1 {
			return 0, 0, fmt.Errorf("%s takes no amount", fields[0])
		}
		return action, 0, nil
	}
}

// describeRequest renders the prompt line for an action request.
func describeRequest(req protocol.ActionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your turn (%s): %s", req.Street, strings.Join(req.ValidActions, ", "))
	if req.ToCall > 0 {
		fmt.Fprintf(&b, " — %d to call", req.ToCall)
	}
	if req.MinRaise > 0 {
		fmt.Fprintf(&b, " (min %d, max %d)", req.MinRaise, req.MaxRaise)
	}
	return b.String()
}

// applyFrame folds one protocol frame into the display state and returns
// the log lines it produces.
func (m *Model) applyFrame(msg *protocol.Message) []string {
	switch msg.Type {
	case protocol.TypeHandStart:
		var hs protocol.HandStart
		if err := msg.Decode(&hs); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		m.board = nil
		m.pot = 0
		m.players = hs.Players
		m.hole, _ = protocol.ParseCardStrings(hs.HoleCards)
		return []string{
			"",
			headerStyle.Render(fmt.Sprintf("Hand #%d", hs.HandNumber)),
			fmt.Sprintf("You are dealt %s", renderCards(m.hole)),
		}

	case protocol.TypePlayerAction:
		var pa protocol.PlayerAction
		if err := msg.Decode(&pa); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		m.pot = pa.Pot
		m.updatePlayer(pa)
		line := fmt.Sprintf("%s %ss", pa.Name, pa.Action)
		switch pa.Action {
		case "bet":
			line = fmt.Sprintf("%s bets %d", pa.Name, pa.Amount)
		case "raise":
			line = fmt.Sprintf("%s raises to %d", pa.Name, pa.Amount)
		case "call":
			line = fmt.Sprintf("%s calls %d", pa.Name, pa.Amount)
		}
		return []string{playerStyle.Render(line)}

	case protocol.TypeStreetChange:
		var sc protocol.StreetChange
		if err := msg.Decode(&sc); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		m.board, _ = protocol.ParseCardStrings(sc.Board)
		return []string{fmt.Sprintf("%s: %s", strings.ToUpper(sc.Street), renderCards(m.board))}

	case protocol.TypeHandResult:
		var hr protocol.HandResult
		if err := msg.Decode(&hr); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		lines := make([]string, 0, len(hr.Winners)+len(hr.Showdown))
		for _, sd := range hr.Showdown {
			cards, _ := protocol.ParseCardStrings(sd.HoleCards)
			lines = append(lines, fmt.Sprintf("%s shows %s (%s)", sd.Name, renderCards(cards), sd.HandRank))
		}
		for _, w := range hr.Winners {
			if w.Amount == 0 {
				continue
			}
			line := fmt.Sprintf("%s wins %d", w.Name, w.Amount)
			if w.HandRank != "" {
				line += fmt.Sprintf(" with %s", w.HandRank)
			}
			lines = append(lines, winStyle.Render(line))
		}
		return lines

	case protocol.TypeError:
		var perr protocol.Error
		if err := msg.Decode(&perr); err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
		return []string{errorStyle.Render(perr.Message)}
	}
	return nil
}

func (m *Model) updatePlayer(pa protocol.PlayerAction) {
	for i := range m.players {
		if m.players[i].Name != pa.Name {
			continue
		}
		if pa.Action == "fold" {
			m.players[i].Folded = true
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("holdemcore — "+m.name) + "\n")

	status := potStyle.Render(fmt.Sprintf("Pot %d", m.pot))
	if len(m.board) > 0 {
		status += "  " + renderCards(m.board)
	}
	if len(m.hole) > 0 {
		status += infoStyle.Render("  (you: ") + renderCards(m.hole) + infoStyle.Render(")")
	}
	b.WriteString(status + "\n")
	b.WriteString(m.playerBar() + "\n")

	b.WriteString(m.logView.View() + "\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	} else if m.prompt != nil {
		b.WriteString(promptStyle.Render(describeRequest(m.prompt.req)) + "\n")
	} else {
		b.WriteString(infoStyle.Render("waiting for the action...") + "\n")
	}
	b.WriteString(m.input.View())
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m *Model) playerBar() string {
	parts := make([]string, 0, len(m.players))
	for _, p := range m.players {
		label := fmt.Sprintf("%s:%d", p.Name, p.Chips)
		switch {
		case p.Folded:
			label = infoStyle.Render(label + " (folded)")
		case p.Name == m.name:
			label = toActStyle.Render(label)
		default:
			label = playerStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}
