// Package moderation provides the core logic for handling reports against
// users and billboards, including reputation management and applying
// automatic suspensions.
package moderation

import (
	"time"

	"billboardgo/backend/internal/analysis"
	"billboardgo/backend/internal/config"
	"billboardgo/backend/internal/models"
)

// Storage is the slice of the storage layer moderation needs. The full
// storage.Service satisfies it.
type Storage interface {
	SaveReport(r *models.Report) error
	UpdateUserReputation(userID string, delta int) error
	GetUserByID(id string) (*models.User, error)
	GetReportsForUser(userID string, since time.Time) ([]models.Report, error)
	GetLastSuspendDate(userID string) (int64, error)
	UpdateUser(user *models.User) error
	CacheSuspension(userID string, until time.Time) error
}

// Service handles the business logic for reports.
type Service struct {
	Storage Storage
}

// NewService creates a new moderation service.
func NewService(s Storage) *Service {
	return &Service{Storage: s}
}

// HandleReport persists a new report, applies its reputation penalty and
// checks whether the reported user crossed a suspension threshold.
func (s *Service) HandleReport(report *models.Report) error {
	if err := s.Storage.SaveReport(report); err != nil {
		return err
	}

	weight := analysis.GetWeight(report.Severity)
	if err := s.Storage.UpdateUserReputation(report.TargetUserID, -weight); err != nil {
		return err
	}

	return s.CheckForSuspension(report.TargetUserID)
}

// CheckForSuspension suspends a user whose reputation dropped below the
// threshold, or who accumulated too many reports inside the frequency
// window.
func (s *Service) CheckForSuspension(userID string) error {
	user, err := s.Storage.GetUserByID(userID)
	if err != nil {
		return err
	}

	// Threshold suspension
	if user.ReputationScore < config.SuspendThresholdReputation {
		return s.applySuspension(user)
	}

	// Frequency suspension
	reports, err := s.Storage.GetReportsForUser(userID, time.Now().Add(-config.SuspendFrequencyWindow))
	if err != nil {
		return err
	}
	if len(reports) > config.SuspendThresholdFrequency {
		return s.applySuspension(user)
	}

	return nil
}

func (s *Service) applySuspension(user *models.User) error {
	lastSuspendDate, err := s.Storage.GetLastSuspendDate(user.ID)
	if err != nil {
		return err
	}

	level := 1
	if lastSuspendDate > 0 {
		if time.Since(time.Unix(lastSuspendDate, 0)) < 7*24*time.Hour {
			level = 2
		} else if time.Since(time.Unix(lastSuspendDate, 0)) < 30*24*time.Hour {
			level = 3
		}
	}

	duration := getSuspendDuration(level)
	until := time.Now().Add(duration)

	user.Suspended = true
	user.SuspendEndTime = until.Unix()
	user.SuspendLevel = level
	user.LastSuspendDate = time.Now().Unix()
	if err := s.Storage.UpdateUser(user); err != nil {
		return err
	}

	// Best effort: the fast-path flag mirrors the database state.
	return s.Storage.CacheSuspension(user.ID, until)
}

func getSuspendDuration(level int) time.Duration {
	switch level {
	case 1:
		return config.SuspendLevel1Duration
	case 2:
		return config.SuspendLevel2Duration
	default:
		return config.SuspendLevel3Duration
	}
}
