package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemcore/internal/bot"
	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/protocol"
	"github.com/lox/holdemcore/internal/randutil"
)

// Table is one game in the server: an engine, the runner pacing it, and
// the loop goroutine once enough seats are filled.
type Table struct {
	config TableConfig
	runner *Runner

	mu      sync.Mutex
	running bool
}

// Name returns the table's configured name.
func (t *Table) Name() string { return t.config.Name }

// Runner exposes the table's runner, mainly for tests.
func (t *Table) Runner() *Runner { return t.runner }

func (t *Table) timeout() time.Duration {
	return time.Duration(t.config.ActionTimeoutMS) * time.Millisecond
}

// Server accepts WebSocket players and seats them at configured tables.
// House bots are seated up front; a table's game loop starts as soon as two
// seats are filled and runs until one stack remains or the hand limit hits.
type Server struct {
	config *Config
	logger *log.Logger
	clock  quartz.Clock

	upgrader websocket.Upgrader
	tables   []*Table

	mu     sync.RWMutex
	conns  map[*Connection]*RemoteAgent
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewServer builds tables and seats house bots from the config. The clock
// paces action timeouts; pass quartz.NewReal() outside tests.
func NewServer(config *Config, clock quartz.Clock, logger *log.Logger) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	s := &Server{
		config: config,
		logger: logger.WithPrefix("server"),
		clock:  clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns:  make(map[*Connection]*RemoteAgent),
		ctx:    ctx,
		cancel: cancel,
		group:  group,
	}

	for _, tc := range config.Tables {
		table, err := s.buildTable(tc)
		if err != nil {
			cancel()
			return nil, err
		}
		s.tables = append(s.tables, table)
	}
	return s, nil
}

func (s *Server) buildTable(tc TableConfig) (*Table, error) {
	seed := tc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := game.New(
		game.WithSeats(tc.Seats),
		game.WithBlinds(tc.SmallBlind, tc.BigBlind),
		game.WithRand(randutil.New(seed)),
		game.WithLogger(s.logger.With("table", tc.Name)),
	)

	table := &Table{
		config: tc,
		runner: NewRunner(engine, s.logger.With("table", tc.Name), time.Duration(tc.ActionTimeoutMS)*time.Millisecond),
	}

	for i, bc := range s.config.BotsFor(tc.Name) {
		botSeed := bc.Seed
		if botSeed == 0 {
			botSeed = seed + int64(i) + 1
		}
		strategy, err := bot.New(bc.Strategy, botSeed)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", tc.Name, err)
		}
		agent := NewBotAgent(bc.Name, strategy, s.logger)
		if _, err := table.runner.AddAgent(agent, tc.BuyIn); err != nil {
			return nil, fmt.Errorf("seating bot %s at %s: %w", bc.Name, tc.Name, err)
		}
	}
	return table, nil
}

// Tables lists the server's tables.
func (s *Server) Tables() []*Table { return s.tables }

// ListenAndServe binds the configured address and serves until Shutdown or
// a listener error.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.config.ListenAddress())
	if err != nil {
		return fmt.Errorf("binding %s: %w", s.config.ListenAddress(), err)
	}
	return s.Serve(listener)
}

// Serve runs the HTTP layer on an existing listener. Tests hand in a
// loopback listener to get an ephemeral port.
func (s *Server) Serve(listener net.Listener) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	httpServer := &http.Server{Handler: mux}
	s.group.Go(func() error {
		<-s.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	s.logger.Info("Listening", "addr", listener.Addr())
	if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return s.group.Wait()
}

// Shutdown stops the game loops, closes every connection, and unblocks
// Serve.
func (s *Server) Shutdown() {
	s.cancel()

	s.mu.Lock()
	s.closed = true
	conns := make([]*Connection, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "ok")
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	conn := NewConnection(wsConn, s.logger, s.dispatch)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = wsConn.Close()
		return
	}
	s.conns[conn] = nil
	s.mu.Unlock()

	conn.Start()
	s.logger.Info("Client connected", "remote", wsConn.RemoteAddr())

	s.group.Go(func() error {
		select {
		case <-conn.Done():
		case <-s.ctx.Done():
			_ = conn.Close()
		}
		s.dropConnection(conn)
		return nil
	})
}

// dispatch routes one decoded frame from a connection.
func (s *Server) dispatch(conn *Connection, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeJoin:
		s.handleJoin(conn, msg)
	case protocol.TypeAction:
		s.handleAction(conn, msg)
	default:
		conn.SendError("unknown_type", fmt.Sprintf("unsupported message type %q", msg.Type))
	}
}

func (s *Server) handleJoin(conn *Connection, msg *protocol.Message) {
	var join protocol.Join
	if err := msg.Decode(&join); err != nil {
		conn.SendError("bad_join", err.Error())
		return
	}
	if join.Name == "" {
		conn.SendError("bad_join", "name is required")
		return
	}
	if conn.Name() != "" {
		conn.SendError("already_joined", "connection already seated")
		return
	}

	table := s.pickTable(join.Table)
	if table == nil {
		conn.SendError("no_seat", "no table with a free seat")
		return
	}

	agent := NewRemoteAgent(join.Name, conn, s.clock, table.timeout(), s.logger)
	seat, err := table.runner.AddAgent(agent, table.config.BuyIn)
	if err != nil {
		conn.SendError("no_seat", err.Error())
		return
	}

	conn.SetName(join.Name)
	s.mu.Lock()
	s.conns[conn] = agent
	s.mu.Unlock()

	welcome, err := protocol.NewMessage(protocol.TypeWelcome, protocol.Welcome{
		Name:  join.Name,
		Seat:  seat,
		Chips: table.config.BuyIn,
	})
	if err != nil {
		s.logger.Error("Failed to encode welcome", "error", err)
		return
	}
	_ = conn.Send(welcome)

	s.logger.Info("Player joined", "player", join.Name, "table", table.Name(), "seat", seat)
	s.startTableIfReady(table)
}

// pickTable finds the named table, or any table with a free seat when the
// join names none.
func (s *Server) pickTable(name string) *Table {
	for _, t := range s.tables {
		if name != "" && t.Name() != name {
			continue
		}
		if t.runner.Seated() < t.config.Seats {
			return t
		}
	}
	return nil
}

// startTableIfReady launches the table's game loop once two seats are
// filled. It only runs on joins, so bot-only tables idle until a remote
// player arrives. The loop runs to the hand limit or a single surviving
// stack and does not restart; the server is a session host, not a lobby.
func (s *Server) startTableIfReady(table *Table) {
	table.mu.Lock()
	defer table.mu.Unlock()
	if table.running || table.runner.Seated() < 2 {
		return
	}
	table.running = true

	s.group.Go(func() error {
		err := table.runner.Run(s.ctx, table.config.Hands)
		if err != nil && s.ctx.Err() == nil {
			s.logger.Error("Table stopped", "table", table.Name(), "error", err)
		}
		return nil
	})
}

func (s *Server) handleAction(conn *Connection, msg *protocol.Message) {
	s.mu.RLock()
	agent := s.conns[conn]
	s.mu.RUnlock()

	if agent == nil {
		conn.SendError("not_joined", "join before acting")
		return
	}

	var action protocol.Action
	if err := msg.Decode(&action); err != nil {
		conn.SendError("bad_action", err.Error())
		return
	}
	if err := agent.HandleAction(msg.RequestID, action); err != nil {
		conn.SendError("bad_action", err.Error())
	}
}

// dropConnection forgets a dead connection. The seat is released between
// hands; mid-hand the remote agent keeps folding for the absent player, who
// blinds off until removed or busted.
func (s *Server) dropConnection(conn *Connection) {
	s.mu.Lock()
	agent := s.conns[conn]
	delete(s.conns, conn)
	s.mu.Unlock()

	if agent == nil {
		return
	}
	s.logger.Info("Player disconnected", "player", agent.Name())
	for _, table := range s.tables {
		if _, err := table.runner.RemoveAgent(agent.Name()); err == nil {
			return
		}
	}
}
