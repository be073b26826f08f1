// Package clientconn maintains one realtime connection on behalf of a
// client process and exposes a single boolean connectivity flag. It is
// used by tooling and integration tests; the browser client follows the
// same contract.
package clientconn

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"billboardgo/backend/internal/models"

	"github.com/gorilla/websocket"
)

// State of the connection. Transitions are strictly
// disconnected -> connecting -> connected-unauthenticated ->
// connected-authenticated, and back to disconnected on any transport
// failure.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnectedUnauthenticated
	StateConnectedAuthenticated
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnectedUnauthenticated:
		return "connected-unauthenticated"
	case StateConnectedAuthenticated:
		return "connected-authenticated"
	default:
		return "disconnected"
	}
}

const defaultRetryInterval = 2 * time.Second

// Client dials the realtime endpoint and keeps the connection alive. On
// every (re)connect it replays the authenticate handshake and re-joins
// remembered rooms: the server forgets the connection entirely on
// disconnect, so the handshake is repeated from scratch each time. There
// is no custom backoff, just the fixed dial retry interval.
type Client struct {
	URL    string
	UserID string
	Token  string

	// OnEvent receives every server event. May be nil.
	OnEvent func(models.Event)

	// RetryInterval overrides the dial retry pause. Zero means the default.
	RetryInterval time.Duration

	state atomic.Int32

	mu    sync.Mutex
	conn  *websocket.Conn
	rooms map[string]struct{}
}

func New(url, userID, token string) *Client {
	return &Client{
		URL:    url,
		UserID: userID,
		Token:  token,
		rooms:  make(map[string]struct{}),
	}
}

// State returns the current connection state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// IsConnected reports whether the transport is currently established.
// This is the only thing status indicators should read.
func (c *Client) IsConnected() bool {
	return c.State() >= StateConnectedUnauthenticated
}

// JoinRoom subscribes to a conversation room. Membership is remembered
// and replayed after every reconnect. Safe to call while disconnected.
func (c *Client) JoinRoom(conversationID string) error {
	c.mu.Lock()
	c.rooms[conversationID] = struct{}{}
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return c.writeEvent(models.Event{
		Type:           models.EventJoinRoom,
		ConversationID: conversationID,
	})
}

// Run connects and keeps reconnecting until the context is cancelled.
func (c *Client) Run(ctx context.Context) {
	retry := c.RetryInterval
	if retry <= 0 {
		retry = defaultRetryInterval
	}

	for {
		if ctx.Err() != nil {
			return
		}

		c.state.Store(int32(StateConnecting))
		dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
		conn, _, err := dialer.DialContext(ctx, c.dialURL(), nil)
		if err != nil {
			c.state.Store(int32(StateDisconnected))
			select {
			case <-ctx.Done():
				return
			case <-time.After(retry):
			}
			continue
		}

		c.session(ctx, conn)

		c.state.Store(int32(StateDisconnected))
		select {
		case <-ctx.Done():
			return
		case <-time.After(retry):
		}
	}
}

// session drives one established connection: handshake, then read until
// the transport fails.
func (c *Client) session(ctx context.Context, conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
	}()

	// Transport is up: the flag flips before the handshake completes.
	c.state.Store(int32(StateConnectedUnauthenticated))

	if err := c.writeEvent(models.Event{
		Type:   models.EventAuthenticate,
		UserID: c.UserID,
	}); err != nil {
		return
	}
	c.state.Store(int32(StateConnectedAuthenticated))

	for _, room := range rooms {
		if err := c.writeEvent(models.Event{
			Type:           models.EventJoinRoom,
			ConversationID: room,
		}); err != nil {
			return
		}
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var ev models.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Printf("clientconn: dropping malformed event: %v", err)
			continue
		}
		if c.OnEvent != nil {
			c.OnEvent(ev)
		}
	}
}

// dialURL appends the session token, which browsers pass the same way
// since WebSocket upgrades cannot carry an Authorization header.
func (c *Client) dialURL() string {
	if c.Token == "" {
		return c.URL
	}
	sep := "?"
	if strings.Contains(c.URL, "?") {
		sep = "&"
	}
	return c.URL + sep + "token=" + url.QueryEscape(c.Token)
}

func (c *Client) writeEvent(ev models.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(ev)
}
