package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a message thread between an advertiser and a billboard
// owner about one specific billboard. The conversation ID doubles as the
// room identifier on the realtime channel.
type Conversation struct {
	ID           string `gorm:"primaryKey" json:"id"`
	BillboardID  string `gorm:"index;not null" json:"billboardId"`
	OwnerID      string `gorm:"index;not null" json:"ownerId"`
	AdvertiserID string `gorm:"index;not null" json:"advertiserId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Participant reports whether userID is one of the two sides of the thread.
func (c *Conversation) Participant(userID string) bool {
	return userID == c.OwnerID || userID == c.AdvertiserID
}

// Counterpart returns the other participant of the thread relative to userID.
func (c *Conversation) Counterpart(userID string) string {
	if userID == c.OwnerID {
		return c.AdvertiserID
	}
	return c.OwnerID
}

// Message is one persisted message inside a conversation.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt.
type Message struct {
	gorm.Model

	ConversationID string `gorm:"type:uuid;not null;index" json:"conversationId"`
	SenderID       string `gorm:"not null;index" json:"senderId"`
	Body           string `gorm:"type:text;not null" json:"body"`
}
