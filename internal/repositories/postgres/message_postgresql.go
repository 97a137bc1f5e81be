package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

type MessagePostgreSQL struct {
	baseRepository
}

func NewMessagePostgreSQL(db *gorm.DB) repositories.MessageRepository {
	return &MessagePostgreSQL{baseRepository{db: db}}
}

func (m *MessagePostgreSQL) Create(ctx context.Context, tx *gorm.DB, message *models.Message) error {
	db := m.getDB(tx)
	return wrapError(db.WithContext(ctx).Omit("Sender", "Receiver").Create(message).Error, "failed to create message")
}

func (m *MessagePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Message, error) {
	db := m.getDB(tx)
	var message models.Message
	if err := db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("id = ?", id).
		First(&message).Error; err != nil {
		return nil, wrapError(err, "failed to get message %s", id)
	}
	return &message, nil
}

func (m *MessagePostgreSQL) ListThread(ctx context.Context, tx *gorm.DB, a, b string) ([]*models.Message, error) {
	db := m.getDB(tx)
	var messages []*models.Message
	if err := db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapError(err, "failed to list messages")
	}
	return messages, nil
}

func (m *MessagePostgreSQL) MarkRead(ctx context.Context, tx *gorm.DB, senderID, receiverID string) (int64, error) {
	db := m.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", senderID, receiverID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, wrapError(result.Error, "failed to mark messages read")
	}
	return result.RowsAffected, nil
}
