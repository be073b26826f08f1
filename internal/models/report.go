package models

import "gorm.io/gorm"

// Report statuses as moderation processes them.
const (
	ReportStatusNew       = "new"
	ReportStatusProcessed = "processed"
	ReportStatusConfirmed = "confirmed"
)

// Report is a complaint filed by a user against another user or one of
// their billboards. Severity maps to a reputation penalty weight in
// internal/analysis.
type Report struct {
	gorm.Model

	ReporterID   string `gorm:"not null;index" json:"reporterId"`
	TargetUserID string `gorm:"not null;index" json:"targetUserId"`
	BillboardID  string `gorm:"index" json:"billboardId,omitempty"`
	Severity     string `gorm:"not null" json:"severity"` // "Low", "Medium", "Critical"
	Reason       string `gorm:"type:text" json:"reason"`
	Status       string `gorm:"default:new" json:"status"`
}
