package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assigned to accounts. Admin-gated operations require RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the marketplace: a billboard owner, an
// advertiser, or an administrator. Owners and advertisers are not separate
// roles; any regular user may both list billboards and message other owners.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"displayName"`
	Role         string `gorm:"default:user" json:"role"`

	// ReputationScore is lowered by confirmed reports and drives automatic
	// suspension, see internal/moderation.
	ReputationScore int `json:"-"`

	Suspended       bool  `json:"suspended"`
	SuspendEndTime  int64 `json:"-"` // unix seconds, 0 means indefinite
	SuspendLevel    int   `json:"-"`
	LastSuspendDate int64 `json:"-"` // unix seconds of the most recent suspension
}

// BeforeCreate is a GORM hook that generates a UUID for the user
// if the ID has not been set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
