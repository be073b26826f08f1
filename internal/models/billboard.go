package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Billboard moderation states. A new listing starts as pending and becomes
// visible in search only after an administrator approves it.
const (
	BillboardStatusPending  = "pending"
	BillboardStatusActive   = "active"
	BillboardStatusRejected = "rejected"
)

// Billboard is an advertising space listed by an owner.
type Billboard struct {
	ID          string `gorm:"primaryKey" json:"id"`
	OwnerID     string `gorm:"index;not null" json:"ownerId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	City    string  `gorm:"index" json:"city"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`

	// DailyRateCents avoids floating point money.
	DailyRateCents int64  `json:"dailyRateCents"`
	SizeSpec       string `json:"sizeSpec"` // e.g. "6x3m"
	Digital        bool   `json:"digital"`

	PhotoURLs pq.StringArray `gorm:"type:text[]" json:"photoUrls"`

	Status       string     `gorm:"index;default:pending" json:"status"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy   string     `json:"approvedBy,omitempty"`
	RejectReason string     `json:"rejectReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that generates a UUID for the billboard
// if the ID has not been set yet.
func (b *Billboard) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
