package realtime_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/realtime"

	"github.com/stretchr/testify/assert"
)

// fakeNotificationStore records persisted notifications and published
// events, and can be told to fail persistence.
type fakeNotificationStore struct {
	mu        sync.Mutex
	saved     []models.Notification
	published []models.DirectedEvent
	saveErr   error
}

func (f *fakeNotificationStore) CreateNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	n.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, *n)
	return nil
}

func (f *fakeNotificationStore) PublishEvent(ev models.DirectedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, ev)
	return nil
}

func (f *fakeNotificationStore) snapshot() (saved []models.Notification, published []models.DirectedEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification(nil), f.saved...), append([]models.DirectedEvent(nil), f.published...)
}

func waitForStore(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNotifier_PersistsThenPublishes(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := realtime.NewNotifier(store)
	go notifier.Run()
	defer notifier.Stop()

	notifier.Notify("user-1", models.NotificationBillboardApproved, map[string]string{
		"billboardId": "bb-1",
	})

	waitForStore(t, func() bool {
		_, published := store.snapshot()
		return len(published) == 1
	})

	saved, published := store.snapshot()
	assert.Len(t, saved, 1)
	assert.Equal(t, "user-1", saved[0].RecipientID)
	assert.Equal(t, models.NotificationBillboardApproved, saved[0].Kind)
	assert.JSONEq(t, `{"billboardId":"bb-1"}`, saved[0].Payload)

	assert.Equal(t, "user-1", published[0].TargetUserID)
	assert.Equal(t, models.EventNotification, published[0].Event.Type)

	var nudge models.Notification
	assert.NoError(t, json.Unmarshal(published[0].Event.Payload, &nudge))
	assert.Equal(t, models.NotificationBillboardApproved, nudge.Kind)
}

func TestNotifier_SkipsNudgeWhenPersistFails(t *testing.T) {
	store := &fakeNotificationStore{saveErr: errors.New("db down")}
	notifier := realtime.NewNotifier(store)
	go notifier.Run()

	notifier.Notify("user-1", models.NotificationNewMessage, map[string]string{"conversationId": "c-1"})
	notifier.Stop()

	// Stop closes the queue; give Run a moment to drain.
	waitForStore(t, func() bool {
		saved, published := store.snapshot()
		return len(saved) == 0 && len(published) == 0
	})
}

func TestNotifier_PreservesOrderPerRecipient(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := realtime.NewNotifier(store)
	go notifier.Run()
	defer notifier.Stop()

	for i := 0; i < 5; i++ {
		notifier.Notify("user-1", models.NotificationNewMessage, map[string]int{"seq": i})
	}

	waitForStore(t, func() bool {
		_, published := store.snapshot()
		return len(published) == 5
	})

	saved, _ := store.snapshot()
	for i, n := range saved {
		var payload map[string]int
		assert.NoError(t, json.Unmarshal([]byte(n.Payload), &payload))
		assert.Equal(t, i, payload["seq"])
	}
}
