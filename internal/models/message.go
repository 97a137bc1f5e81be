package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is immutable except for Read, which only goes from false to true.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	SenderID   string    `json:"senderId" gorm:"size:36;not null;index:idx_messages_pair"`
	ReceiverID string    `json:"receiverId" gorm:"size:36;not null;index:idx_messages_pair;index:idx_messages_unread"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Read       bool      `json:"read" gorm:"not null;default:false;index:idx_messages_unread"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`

	Sender   *User `json:"-" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"-" gorm:"foreignKey:ReceiverID"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MessageResponse is a message with the name/image of both parties.
type MessageResponse struct {
	ID         string       `json:"id"`
	SenderID   string       `json:"senderId"`
	ReceiverID string       `json:"receiverId"`
	Content    string       `json:"content"`
	Read       bool         `json:"read"`
	CreatedAt  time.Time    `json:"createdAt"`
	Sender     *UserSummary `json:"sender"`
	Receiver   *UserSummary `json:"receiver"`
}

// ToResponse converts a message with preloaded parties.
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
		Sender:     m.Sender.Summary(),
		Receiver:   m.Receiver.Summary(),
	}
}
