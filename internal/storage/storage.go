package storage

import (
	"context"
	"errors"
	"time"

	"billboardgo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("record not found")

// BillboardFilter narrows a billboard search. Zero values mean "any".
type BillboardFilter struct {
	City    string
	Status  string
	OwnerID string
}

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdateUserReputation(userID string, delta int) error
	IsUserSuspended(userID string) (bool, error)
	CacheSuspension(userID string, until time.Time) error
	ClearSuspension(userID string) error
	GetLastSuspendDate(userID string) (int64, error)

	// Billboards
	CreateBillboard(b *models.Billboard) error
	GetBillboardByID(id string) (*models.Billboard, error)
	UpdateBillboard(b *models.Billboard) error
	SearchBillboards(f BillboardFilter) ([]models.Billboard, error)

	// Conversations & messages
	GetOrCreateConversation(billboardID, ownerID, advertiserID string) (*models.Conversation, error)
	GetConversationByID(id string) (*models.Conversation, error)
	SaveMessage(msg *models.Message) error
	GetMessages(conversationID string) ([]models.Message, error)

	// Notifications
	CreateNotification(n *models.Notification) error
	CountUnreadNotifications(userID string) (int64, error)
	MarkNotificationsRead(userID string) error

	// Reports
	SaveReport(r *models.Report) error
	GetReportsForUser(userID string, since time.Time) ([]models.Report, error)

	// Realtime pub/sub
	PublishEvent(ev models.DirectedEvent) error
	SubscribeEvents() *redis.PubSub
}

// Service implements Storage on top of PostgreSQL (via GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// UpdateUserReputation shifts the reputation score atomically in the database.
func (s *Service) UpdateUserReputation(userID string, delta int) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("reputation_score", gorm.Expr("reputation_score + ?", delta)).Error
}

// IsUserSuspended checks the suspension flag in Redis first. The key is
// written with a TTL matching the suspension window, so an expired
// suspension clears itself without a database round trip.
func (s *Service) IsUserSuspended(userID string) (bool, error) {
	key := "suspend:" + userID
	status, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

// CacheSuspension records a suspension flag in Redis. A zero until time
// means the suspension is indefinite and the key carries no TTL.
func (s *Service) CacheSuspension(userID string, until time.Time) error {
	key := "suspend:" + userID
	var ttl time.Duration
	if !until.IsZero() {
		ttl = time.Until(until)
		if ttl <= 0 {
			return nil
		}
	}
	return s.Redis.Set(s.Ctx, key, "1", ttl).Err()
}

func (s *Service) ClearSuspension(userID string) error {
	return s.Redis.Del(s.Ctx, "suspend:"+userID).Err()
}

func (s *Service) GetLastSuspendDate(userID string) (int64, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return 0, err
	}
	return user.LastSuspendDate, nil
}
