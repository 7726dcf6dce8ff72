package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdemcore/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Outgoing buffer per connection
	sendBuffer = 256
)

// ErrConnectionClosed reports a send on a connection that has shut down.
var ErrConnectionClosed = errors.New("connection closed")

// Connection wraps one WebSocket client. A read pump dispatches incoming
// frames to the handler; a write pump drains the send buffer and keeps the
// peer alive with pings. Both stop when either side closes.
type Connection struct {
	conn      *websocket.Conn
	send      chan *protocol.Message
	handler   func(*Connection, *protocol.Message)
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu   sync.RWMutex
	name string
}

// NewConnection wraps a websocket connection. handler runs on the read
// pump's goroutine for every decoded frame.
func NewConnection(conn *websocket.Conn, logger *log.Logger, handler func(*Connection, *protocol.Message)) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:    conn,
		send:    make(chan *protocol.Message, sendBuffer),
		handler: handler,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the connection down. Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// SetName associates the connection with a player name after the join
// handshake.
func (c *Connection) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Name returns the associated player name, empty before the handshake.
func (c *Connection) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Send queues a message for the write pump. A full buffer means the peer
// has stopped draining, so the connection is closed rather than blocking
// the table.
func (c *Connection) Send(msg *protocol.Message) error {
	defer func() {
		if r := recover(); r != nil {
			// The send channel closed during shutdown.
			c.logger.Debug("Send on closed connection", "player", c.Name())
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Send buffer full, closing connection", "player", c.Name())
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SendError is a convenience for pushing a protocol error frame.
func (c *Connection) SendError(code, message string) {
	msg, err := protocol.NewMessage(protocol.TypeError, protocol.Error{Code: code, Message: message})
	if err != nil {
		c.logger.Error("Failed to encode error message", "error", err)
		return
	}
	_ = c.Send(msg)
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg protocol.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket read failed", "error", err, "player", c.Name())
			}
			return
		}
		c.handler(c, &msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("WebSocket write failed", "error", err, "player", c.Name())
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
