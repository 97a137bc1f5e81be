package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/tutoring-service/internal/config"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

// RoomClaims is the payload of a room token handed to the conferencing widget
type RoomClaims struct {
	AppID    int64  `json:"appId"`
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

type meetingService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	config    config.MeetingConfig
	now       func() time.Time
}

func NewMeetingService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, cfg config.MeetingConfig) MeetingService {
	return &meetingService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    cfg,
		now:       time.Now,
	}
}

func (s *meetingService) RoomLink(roomID string) string {
	return fmt.Sprintf("%s/room/%s", strings.TrimRight(s.config.BaseURL, "/"), roomID)
}

func (s *meetingService) CreateRoom(ctx context.Context, caller *models.User, req *CreateMeetingRequest) (*models.MeetingRoom, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	roomID := uuid.NewString()
	room := &models.MeetingRoom{
		RoomID: roomID,
		Link:   s.RoomLink(roomID),
	}

	if req.AppointmentID == nil {
		return room, nil
	}

	appointment, err := s.repo.Appointment().GetByID(ctx, nil, *req.AppointmentID)
	if err != nil {
		return nil, notFoundAs(err, ErrAppointmentNotFound)
	}
	if !appointment.IsParticipant(caller.ID) {
		return nil, NewPermissionError(caller.ID, appointment.ID, "appointment", "create_meeting", "not a participant")
	}

	appointment.MeetingLink = &room.Link
	if err := s.repo.Appointment().Update(ctx, nil, appointment); err != nil {
		return nil, fmt.Errorf("failed to attach meeting link: %w", err)
	}
	room.AppointmentID = &appointment.ID

	s.logger.Info("Meeting room attached", "appointment_id", appointment.ID, "room_id", roomID)
	return room, nil
}

func (s *meetingService) IssueToken(ctx context.Context, caller *models.User, req *MeetingTokenRequest) (*models.MeetingToken, error) {
	if s.config.ServerSecret == "" {
		return nil, ErrMeetingNotConfigured
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.config.TokenTTL)
	userName := caller.Name
	if userName == "" {
		userName = caller.Email
	}

	claims := RoomClaims{
		AppID:    s.config.AppID,
		RoomID:   req.RoomID,
		UserID:   caller.ID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.ServerSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign room token: %w", err)
	}

	return &models.MeetingToken{
		AppID:     s.config.AppID,
		RoomID:    req.RoomID,
		UserID:    caller.ID,
		UserName:  userName,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}
