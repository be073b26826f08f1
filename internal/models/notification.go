package models

import "gorm.io/gorm"

// Notification kinds created by server-side business actions.
const (
	NotificationNewMessage        = "new_message"
	NotificationBillboardApproved = "billboard_approved"
	NotificationBillboardRejected = "billboard_rejected"
	NotificationAccountSuspended  = "account_suspended"
)

// Notification is one deliverable event for one recipient. It is always
// persisted; the realtime channel only carries a best-effort live nudge,
// so a recipient who was offline finds the record via the unread count
// on the next page load.
type Notification struct {
	gorm.Model

	RecipientID string `gorm:"not null;index:idx_recipient_read" json:"recipientId"`
	Kind        string `gorm:"not null" json:"kind"`
	// Payload is a JSON document whose shape depends on Kind.
	Payload string `gorm:"type:text" json:"payload"`
	Read    bool   `gorm:"index:idx_recipient_read;default:false" json:"read"`
}
