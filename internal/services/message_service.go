package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

type messageService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewMessageService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.EventPublisher) MessageService {
	return &messageService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *messageService) Thread(ctx context.Context, callerID, otherID string) ([]*models.MessageResponse, error) {
	otherID = strings.TrimSpace(otherID)
	if otherID == "" {
		return nil, NewValidationError("userId", "user id is required", nil)
	}

	messages, err := s.repo.Message().ListThread(ctx, nil, callerID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}

	out := make([]*models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ToResponse())
	}
	return out, nil
}

func (s *messageService) Send(ctx context.Context, senderID string, req *SendMessageRequest) (*models.MessageResponse, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	receiverID := strings.TrimSpace(req.ReceiverID)
	exists, err := s.repo.User().ExistsByID(ctx, nil, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check receiver: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}
	if err := s.repo.Message().Create(ctx, nil, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	stored, err := s.repo.Message().GetByID(ctx, nil, message.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload message: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.MessageSent, events.MessageSentData{
		MessageID:  stored.ID,
		SenderID:   stored.SenderID,
		ReceiverID: stored.ReceiverID,
	})
	return stored.ToResponse(), nil
}

func (s *messageService) MarkRead(ctx context.Context, callerID string, req *MarkReadRequest) (int64, error) {
	if err := validate(s.validator, req); err != nil {
		return 0, err
	}

	count, err := s.repo.Message().MarkRead(ctx, nil, strings.TrimSpace(req.SenderID), callerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}

	if count > 0 {
		publishEvent(ctx, s.publisher, s.logger, events.MessagesRead, events.MessagesReadData{
			SenderID:   req.SenderID,
			ReceiverID: callerID,
			Count:      count,
		})
	}
	return count, nil
}
