package realtime

import "billboardgo/backend/internal/models"

// Client is the interface for one live connection regardless of transport.
// It abstracts the underlying communication mechanism so the Registry can
// manage different client types uniformly (WebSocket in production, test
// doubles in unit tests).
type Client interface {
	// GetConnID returns the unique identifier of this connection.
	GetConnID() string

	// GetSendChannel returns the channel the Registry writes outbound
	// events to. It is a send-only channel.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()

	// Close shuts down the client's outbound channel. Called exclusively
	// by the Registry during Unregister, while it holds the write lock.
	Close()
}
