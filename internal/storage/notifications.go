package storage

import (
	"log"
	"time"

	"billboardgo/backend/internal/models"
)

func (s *Service) CreateNotification(n *models.Notification) error {
	if err := s.DB.Create(n).Error; err != nil {
		log.Printf("ERROR: Failed to create notification for user %s: %v", n.RecipientID, err)
		return err
	}
	return nil
}

// CountUnreadNotifications answers "how many unread notifications does this
// user have" with a single query, scoped strictly to the given recipient.
func (s *Service) CountUnreadNotifications(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: Failed to count unread notifications for user %s: %v", userID, err)
		return 0, err
	}
	return count, nil
}

func (s *Service) MarkNotificationsRead(userID string) error {
	return s.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *Service) SaveReport(r *models.Report) error {
	if r.Status == "" {
		r.Status = models.ReportStatusNew
	}
	if err := s.DB.Create(r).Error; err != nil {
		log.Printf("ERROR: Failed to save report against user %s: %v", r.TargetUserID, err)
		return err
	}
	return nil
}

// GetReportsForUser returns reports filed against the user since the given
// time, used by moderation for frequency-based suspension.
func (s *Service) GetReportsForUser(userID string, since time.Time) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("target_user_id = ? AND created_at > ?", userID, since).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
