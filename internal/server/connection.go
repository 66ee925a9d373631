package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/oanquan/internal/protocol"
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
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// Connection wraps a WebSocket connection to a bot client. Outgoing
// messages go through a buffered send channel drained by writePump;
// incoming messages are decoded by readPump and delivered on Recv.
type Connection struct {
	conn      *websocket.Conn
	send      chan any
	recv      chan any
	name      string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan any, 256),
		recv:   make(chan any, 16),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection shuts down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Send queues a message for delivery to the client
func (c *Connection) Send(msg any) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// Recv returns the channel of decoded incoming messages. It is closed
// when the connection shuts down.
func (c *Connection) Recv() <-chan any {
	return c.recv
}

// SetName associates this connection with a player name
func (c *Connection) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Name returns the associated player name
func (c *Connection) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() {
		close(c.recv)
		_ = c.Close()
	}()

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

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.logger.Warn("Dropping undecodable message", "error", err)
			_ = c.Send(protocol.NewError("bad_message", err.Error()))
			continue
		}

		select {
		case c.recv <- msg:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := protocol.Marshal(msg)
			if err != nil {
				c.logger.Error("Failed to marshal message", "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("Write failed", "error", err)
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
