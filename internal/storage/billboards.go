package storage

import (
	"errors"
	"log"

	"billboardgo/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateBillboard(b *models.Billboard) error {
	if b.Status == "" {
		b.Status = models.BillboardStatusPending
	}
	if err := s.DB.Create(b).Error; err != nil {
		log.Printf("ERROR: Failed to create billboard for owner %s: %v", b.OwnerID, err)
		return err
	}
	return nil
}

func (s *Service) GetBillboardByID(id string) (*models.Billboard, error) {
	var b models.Billboard
	err := s.DB.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get billboard %s: %v", id, err)
		return nil, err
	}
	return &b, nil
}

func (s *Service) UpdateBillboard(b *models.Billboard) error {
	return s.DB.Save(b).Error
}

// SearchBillboards lists billboards matching the filter, newest first.
func (s *Service) SearchBillboards(f BillboardFilter) ([]models.Billboard, error) {
	var boards []models.Billboard

	q := s.DB.Model(&models.Billboard{}).Order("created_at desc")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	if err := q.Find(&boards).Error; err != nil {
		log.Printf("ERROR: Failed to search billboards: %v", err)
		return nil, err
	}
	return boards, nil
}
