package models

import "encoding/json"

// EventType tags every frame on the realtime channel. Events form a small
// tagged union instead of free-form event-name dispatch.
type EventType string

const (
	// client -> server
	EventAuthenticate EventType = "authenticate"
	EventJoinRoom     EventType = "joinRoom"

	// server -> client
	EventUserOnline   EventType = "userOnline"
	EventUserOffline  EventType = "userOffline"
	EventNotification EventType = "notification"
	EventMessage      EventType = "message"
)

// Event is one frame on the realtime channel, in either direction.
// Which fields are meaningful depends on Type:
//
//	authenticate: UserID
//	joinRoom:     ConversationID
//	userOnline:   UserID
//	userOffline:  UserID
//	notification: Payload (a serialized Notification)
//	message:      ConversationID, UserID (sender), Payload (a serialized Message)
type Event struct {
	Type           EventType       `json:"type"`
	UserID         string          `json:"userId,omitempty"`
	ConversationID string          `json:"conversationId,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// DirectedEvent is the envelope published on the Redis events channel so
// that every node can deliver the event to its locally connected clients.
// Exactly one of TargetUserID or RoomID is set.
type DirectedEvent struct {
	TargetUserID string `json:"targetUserId,omitempty"`
	RoomID       string `json:"roomId,omitempty"`
	Event        Event  `json:"event"`
}
