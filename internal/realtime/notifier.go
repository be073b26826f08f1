package realtime

import (
	"encoding/json"
	"log"

	"billboardgo/backend/internal/models"
)

// NotificationStore is the slice of the storage layer the notifier needs.
// The full storage.Service satisfies it.
type NotificationStore interface {
	CreateNotification(n *models.Notification) error
	PublishEvent(ev models.DirectedEvent) error
}

// Notifier is the background dispatcher for notifications. Every
// notification is persisted first; the realtime channel then carries a
// best-effort nudge to whichever node the recipient is connected to. An
// offline recipient simply finds the record via the unread count later.
type Notifier struct {
	Storage NotificationStore
	Ch      chan models.Notification
}

func NewNotifier(s NotificationStore) *Notifier {
	return &Notifier{
		Storage: s,
		Ch:      make(chan models.Notification, 256),
	}
}

// Notify enqueues a notification for dispatch. The payload is serialized
// to JSON. The queue is buffered; under sustained overload callers block
// rather than losing the persisted record.
func (n *Notifier) Notify(recipientID, kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error encoding notification payload for user %s: %v", recipientID, err)
		return
	}

	n.Ch <- models.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Payload:     string(data),
	}
}

// Run drains the queue: persist, then publish the directed nudge.
func (n *Notifier) Run() {
	for notification := range n.Ch {
		if err := n.Storage.CreateNotification(&notification); err != nil {
			// The nudge without a persisted record would lie to the client
			// about its unread count, so skip delivery entirely.
			continue
		}

		body, err := json.Marshal(notification)
		if err != nil {
			log.Printf("Error encoding notification %d: %v", notification.ID, err)
			continue
		}

		directed := models.DirectedEvent{
			TargetUserID: notification.RecipientID,
			Event: models.Event{
				Type:    models.EventNotification,
				Payload: body,
			},
		}
		if err := n.Storage.PublishEvent(directed); err != nil {
			log.Printf("Error publishing notification %d: %v", notification.ID, err)
		}
	}
}

// Stop closes the queue, letting Run drain and return.
func (n *Notifier) Stop() {
	close(n.Ch)
}
