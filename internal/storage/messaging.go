package storage

import (
	"errors"
	"log"

	"billboardgo/backend/internal/models"

	"gorm.io/gorm"
)

// GetOrCreateConversation returns the existing thread between an advertiser
// and an owner about the given billboard, creating it on first contact.
func (s *Service) GetOrCreateConversation(billboardID, ownerID, advertiserID string) (*models.Conversation, error) {
	conv := models.Conversation{
		BillboardID:  billboardID,
		OwnerID:      ownerID,
		AdvertiserID: advertiserID,
	}

	result := s.DB.Where(
		"billboard_id = ? AND advertiser_id = ?", billboardID, advertiserID,
	).FirstOrCreate(&conv)
	if result.Error != nil {
		log.Printf("ERROR: Failed to get/create conversation for billboard %s: %v", billboardID, result.Error)
		return nil, result.Error
	}
	return &conv, nil
}

func (s *Service) GetConversationByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for conversation %s: %v", msg.ConversationID, err)
		return err
	}
	return nil
}

// GetMessages loads the thread history, oldest first.
func (s *Service) GetMessages(conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages for conversation %s: %v", conversationID, err)
		return nil, err
	}
	return msgs, nil
}
