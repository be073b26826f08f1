package storage

import (
	"encoding/json"

	"billboardgo/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// eventsChannel is the Redis Pub/Sub channel every node subscribes to.
// Directed realtime events go through Redis even on a single node, so the
// delivery path is identical whether the recipient is connected here or to
// another instance.
const eventsChannel = "realtime:events"

// PublishEvent publishes a directed event on the Redis events channel.
func (s *Service) PublishEvent(ev models.DirectedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the directed-events channel.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, eventsChannel)
}
