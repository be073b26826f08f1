// Package realtime tracks live WebSocket connections and delivers presence
// and notification events to users and conversation rooms.
package realtime

import (
	"errors"
	"log"
	"sync"

	"billboardgo/backend/internal/models"
)

// ErrUnknownConnection is returned when an operation references a
// connection identifier that is not registered.
var ErrUnknownConnection = errors.New("unknown connection")

type connection struct {
	client Client
	userID string // empty until an authenticate event binds one
	rooms  map[string]struct{}
}

// Registry is the single piece of shared mutable state of the realtime
// layer. One coarse RWMutex guards all of it: deliveries take the read
// lock, lifecycle changes the write lock, so a delivery can never race a
// teardown into a closed client channel. Presence is derived, not stored:
// a user is online iff at least one live connection is bound to them.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*connection            // by connection ID
	byUser map[string]map[string]*connection // userID -> connID -> connection
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[string]*connection),
		byUser: make(map[string]map[string]*connection),
	}
}

// Register adds an anonymous connection. No side effects beyond insertion.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[c.GetConnID()] = &connection{
		client: c,
		rooms:  make(map[string]struct{}),
	}
}

// Authenticate binds a user to an existing connection. If this is the
// user's first live connection, a userOnline event is broadcast to every
// other connection. A user may hold any number of simultaneous
// connections (multi-device); re-authenticating is a no-op.
func (r *Registry) Authenticate(connID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	if conn.userID == userID {
		return nil
	}
	if conn.userID != "" {
		// Rebinding a connection to another user is not supported.
		r.detachUserLocked(connID, conn)
	}

	conn.userID = userID
	set, existed := r.byUser[userID]
	if !existed {
		set = make(map[string]*connection)
		r.byUser[userID] = set
	}
	first := len(set) == 0
	set[connID] = conn

	if first {
		r.broadcastLocked(models.Event{Type: models.EventUserOnline, UserID: userID}, userID)
	}
	return nil
}

// JoinRoom adds the connection to a room. Idempotent, and deliberately
// allowed before authenticate: an unauthenticated connection may receive
// room broadcasts, it is just invisible to presence.
func (r *Registry) JoinRoom(connID, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	conn.rooms[roomID] = struct{}{}
	return nil
}

// Unregister removes the connection and closes its client. If this was the
// user's last live connection, a userOffline event is broadcast before the
// next presence query can observe stale state. Unknown IDs are ignored.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)
	last := r.detachUserLocked(connID, conn)
	conn.client.Close()

	if last {
		r.broadcastLocked(models.Event{Type: models.EventUserOffline, UserID: conn.userID}, conn.userID)
	}
}

// detachUserLocked removes the connection from the per-user index and
// reports whether it was the user's last one.
func (r *Registry) detachUserLocked(connID string, conn *connection) bool {
	if conn.userID == "" {
		return false
	}
	set, ok := r.byUser[conn.userID]
	if !ok {
		return false
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(r.byUser, conn.userID)
		return true
	}
	return false
}

// IsOnline reports whether the user has at least one live connection.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]) > 0
}

// DeliverToUser sends the event to every live connection bound to userID.
// A user with no live connection is a silent no-op: there is no
// store-and-forward on this channel, offline recipients rely on the
// persisted notification and its unread count.
func (r *Registry) DeliverToUser(userID string, ev models.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, conn := range r.byUser[userID] {
		r.sendLocked(conn, ev)
	}
}

// DeliverToRoom sends the event to every connection that joined roomID.
func (r *Registry) DeliverToRoom(roomID string, ev models.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, conn := range r.conns {
		if _, ok := conn.rooms[roomID]; ok {
			r.sendLocked(conn, ev)
		}
	}
}

// broadcastLocked fans an event out to every connection except those bound
// to exceptUserID. Caller holds at least the read lock.
func (r *Registry) broadcastLocked(ev models.Event, exceptUserID string) {
	for _, conn := range r.conns {
		if exceptUserID != "" && conn.userID == exceptUserID {
			continue
		}
		r.sendLocked(conn, ev)
	}
}

// sendLocked enqueues without blocking. A consumer whose egress buffer is
// full loses the event rather than stalling the registry.
func (r *Registry) sendLocked(conn *connection, ev models.Event) {
	select {
	case conn.client.GetSendChannel() <- ev:
	default:
		log.Printf("realtime: dropping event %s for slow connection %s", ev.Type, conn.client.GetConnID())
	}
}
