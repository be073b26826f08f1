package realtime_test

import (
	"billboardgo/backend/internal/models"
)

// MockClient is a test double for the realtime.Client interface. It
// records everything the registry delivers to it.
type MockClient struct {
	connID string
	send   chan models.Event
}

func newMockClient(connID string) *MockClient {
	return &MockClient{
		connID: connID,
		send:   make(chan models.Event, 32), // Buffered to prevent blocking in tests
	}
}

func (c *MockClient) GetConnID() string                   { return c.connID }
func (c *MockClient) GetSendChannel() chan<- models.Event { return c.send }
func (c *MockClient) Run()                                {}
func (c *MockClient) Close()                              { close(c.send) }

// DrainEvents collects everything currently queued for the client.
func (c *MockClient) DrainEvents() []models.Event {
	var events []models.Event
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

// CountEvents returns how many queued events have the given type.
func (c *MockClient) CountEvents(t models.EventType) int {
	n := 0
	for _, ev := range c.DrainEvents() {
		if ev.Type == t {
			n++
		}
	}
	return n
}
