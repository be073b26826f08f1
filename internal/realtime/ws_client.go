package realtime

import (
	"encoding/json"
	"log"
	"time"

	"billboardgo/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements the realtime.Client interface over a
// gorilla/websocket connection.
type WebSocketClient struct {
	ConnID   string
	Conn     *websocket.Conn
	Registry *Registry
	Send     chan models.Event

	// AuthUserID is the identity proven by the session token during the
	// upgrade. An authenticate event is only honored when its userId
	// matches; the connection stays anonymous otherwise.
	AuthUserID string
}

func (c *WebSocketClient) GetConnID() string                   { return c.ConnID }
func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Registry.Unregister(c.ConnID)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.Event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("Error decoding event from connection %s: %v", c.ConnID, err)
			continue
		}

		c.handleEvent(ev)
	}
}

// handleEvent dispatches one inbound client event. Malformed or
// out-of-order events are tolerated: operations are independent and do
// not require a strict ordering.
func (c *WebSocketClient) handleEvent(ev models.Event) {
	switch ev.Type {
	case models.EventAuthenticate:
		if ev.UserID == "" || ev.UserID != c.AuthUserID {
			log.Printf("Ignoring authenticate for mismatched user on connection %s", c.ConnID)
			return
		}
		if err := c.Registry.Authenticate(c.ConnID, ev.UserID); err != nil {
			log.Printf("Authenticate failed for connection %s: %v", c.ConnID, err)
		}
	case models.EventJoinRoom:
		if ev.ConversationID == "" {
			return
		}
		if err := c.Registry.JoinRoom(c.ConnID, ev.ConversationID); err != nil {
			log.Printf("JoinRoom failed for connection %s: %v", c.ConnID, err)
		}
	default:
		// Server-originated event types coming from a client are dropped.
	}
}

// writePump reads events from the Send channel and writes them to the
// WebSocket, pinging periodically to keep the connection alive.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the registry, close the WS connection.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding event for connection %s: %v", c.ConnID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Drain whatever queued up behind this event.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, err := json.Marshal(next)
				if err != nil {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, extra); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
