package websocket

import (
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

// ping pong (2-way heartbeat) keeps the connection alive
const (
	WriteWait      = 10 * time.Second    // max time to write a message to the peer
	PongWait       = 60 * time.Second    // no pong within this window = dead connection
	PingPeriod     = (PongWait * 9) / 10 // ping before the pong wait expires
	MaxMessageSize = 512                 // maximum inbound message size
)

// Client is one websocket connection of an authenticated user
type Client struct {
	ID       string
	UserID   string
	Username string

	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	hub       *Hub
	logger    *slog.Logger
}

// NewClient wraps conn; buffer bounds how many frames may queue before drops
func NewClient(hub *Hub, conn *websocket.Conn, userID, username string, buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	return &Client{
		ID:       ulid.MustNew(ulid.Now(), rand.Reader).String(),
		UserID:   userID,
		Username: username,
		conn:     conn,
		send:     make(chan []byte, buffer),
		done:     make(chan struct{}),
		hub:      hub,
		logger:   hub.logger,
	}
}

// trySend queues a frame without blocking; false when the buffer is full or the client is closed
func (c *Client) trySend(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// ReadPump drains inbound frames so pongs and close messages are processed.
// Clients only listen; anything they send is discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("client_read_failed", "client_id", c.ID, "error", err)
			}
			return
		}
	}
}

// WritePump writes queued frames and pings until the client closes
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Warn("client_write_failed", "client_id", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(WriteWait))
			return
		}
	}
}

// Close signals WritePump to send a close frame and release the connection.
// Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
