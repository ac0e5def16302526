/*
This file defines the Client struct, representing one active WebSocket
connection. It manages the message communication loops (ReadPump and
WritePump) and hands every inbound frame to the Hub for dispatch.
*/
package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chatrelay/internal/pkg/logx"
	"chatrelay/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// capacity of the per-connection outbound queue.
	sendQueueSize = 256
)

// Client couples a WebSocket connection with its opaque connection id and a
// buffered outbound queue. It implements the Conn interface for the Hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string

	// mu guards closed and the send channel against a Send/Close race.
	mu     sync.Mutex
	closed bool
	send   chan []byte

	logger zerolog.Logger
}

// NewClient constructs a Client with a fresh connection id.
func NewClient(hub *Hub, wsConn *websocket.Conn) *Client {
	id := randx.ConnectionID()

	return &Client{
		hub:  hub,
		conn: wsConn,
		id:   id,
		send: make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().
			Str("connection_id", id).
			Logger(),
	}
}

// ID returns the opaque connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Send queues an encoded event for delivery. It never blocks: when the queue
// is full the event is dropped with a warning, matching UDP-like fan-out
// semantics for slow consumers.
func (c *Client) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping event.")
	}
}

// Close shuts the outbound queue down. Events already queued (such as an
// auth:error) are still flushed by WritePump before the close frame goes out.
// Idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}

// ReadPump reads frames from the WebSocket connection and routes them through
// the Hub. It handles heartbeats (Pong) and performs full cleanup when the
// connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.Close()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in ReadPump.")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline.")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Unexpected connection close.")
			}
			break
		}

		c.hub.Route(c, raw)
	}
}

// WritePump drains the send queue onto the WebSocket connection and keeps the
// heartbeat alive. When the queue closes it emits a close frame and exits.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump.")
		}
	}()

	for {
		select {
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline.")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close frame.")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Info().Err(err).Msg("Error writing event.")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping.")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Info().Err(err).Msg("Error writing ping.")
				return
			}
		}
	}
}
