package realtime

import (
	"encoding/json"
	"log"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"
)

// Relay subscribes to the Redis directed-events channel and hands each
// event to the local Registry. Every node in the deployment runs one, so
// a recipient connected to another instance still gets the live nudge.
// Delivery stays best-effort: a target with no local connection is a
// silent no-op on this node.
type Relay struct {
	Storage  storage.Storage
	Registry *Registry
}

func NewRelay(s storage.Storage, r *Registry) *Relay {
	return &Relay{Storage: s, Registry: r}
}

// Run blocks, consuming directed events until the subscription closes.
func (r *Relay) Run() {
	pubsub := r.Storage.SubscribeEvents()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var directed models.DirectedEvent
		if err := json.Unmarshal([]byte(msg.Payload), &directed); err != nil {
			log.Printf("Error unmarshalling directed event: %v", err)
			continue
		}

		switch {
		case directed.TargetUserID != "":
			r.Registry.DeliverToUser(directed.TargetUserID, directed.Event)
		case directed.RoomID != "":
			r.Registry.DeliverToRoom(directed.RoomID, directed.Event)
		default:
			log.Printf("Dropping directed event with no target: %s", directed.Event.Type)
		}
	}
}
