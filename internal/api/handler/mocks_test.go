package handler_test

import (
	"sync"
	"time"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a comprehensive mock implementation of the
// storage.Storage interface. It uses testify/mock to allow flexible
// expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) UpdateUserReputation(userID string, delta int) error {
	args := m.Called(userID, delta)
	return args.Error(0)
}

func (m *MockStorage) IsUserSuspended(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CacheSuspension(userID string, until time.Time) error {
	args := m.Called(userID, until)
	return args.Error(0)
}

func (m *MockStorage) ClearSuspension(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) GetLastSuspendDate(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// Billboard operations
func (m *MockStorage) CreateBillboard(b *models.Billboard) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockStorage) GetBillboardByID(id string) (*models.Billboard, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Billboard), args.Error(1)
}

func (m *MockStorage) UpdateBillboard(b *models.Billboard) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockStorage) SearchBillboards(f storage.BillboardFilter) ([]models.Billboard, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Billboard), args.Error(1)
}

// Conversation operations
func (m *MockStorage) GetOrCreateConversation(billboardID, ownerID, advertiserID string) (*models.Conversation, error) {
	args := m.Called(billboardID, ownerID, advertiserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) GetConversationByID(id string) (*models.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessages(conversationID string) ([]models.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// Notification operations
func (m *MockStorage) CreateNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) CountUnreadNotifications(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) MarkNotificationsRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Report operations
func (m *MockStorage) SaveReport(r *models.Report) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStorage) GetReportsForUser(userID string, since time.Time) ([]models.Report, error) {
	args := m.Called(userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

// Realtime pub/sub
func (m *MockStorage) PublishEvent(ev models.DirectedEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) SubscribeEvents() *redis.PubSub {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*redis.PubSub)
}

// MockNotifier records notifications instead of dispatching them.
type MockNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	RecipientID string
	Kind        string
}

func (n *MockNotifier) Notify(recipientID, kind string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{RecipientID: recipientID, Kind: kind})
}

func (n *MockNotifier) Calls() []notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifyCall(nil), n.calls...)
}
