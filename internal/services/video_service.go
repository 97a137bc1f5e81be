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

const featuredVideoLimit = 12

// fallbackVideos is served when no featured video has been published yet
var fallbackVideos = []models.Video{
	{ID: "1", Title: "Introduction to Programming", YouTubeID: "zOjov-2OZ0E", Subject: "Computer Science", Views: 120000, Featured: true},
	{ID: "2", Title: "Algebra Fundamentals", YouTubeID: "NybHckSEQBI", Subject: "Mathematics", Views: 85000, Featured: true},
	{ID: "3", Title: "Physics - Motion and Forces", YouTubeID: "ZM8ECpBuQYE", Subject: "Physics", Views: 62000, Featured: true},
	{ID: "4", Title: "Chemistry Basics", YouTubeID: "bka20Q9TN6M", Subject: "Chemistry", Views: 58000, Featured: true},
	{ID: "5", Title: "World History Overview", YouTubeID: "ymI5Uv5cGU4", Subject: "History", Views: 45000, Featured: true},
	{ID: "6", Title: "English Grammar Essentials", YouTubeID: "RvmT68_zd7o", Subject: "English", Views: 72000, Featured: true},
}

// FallbackVideos returns a copy of the built-in catalogue
func FallbackVideos() []*models.Video {
	out := make([]*models.Video, len(fallbackVideos))
	for i := range fallbackVideos {
		v := fallbackVideos[i]
		out[i] = &v
	}
	return out
}

type videoService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewVideoService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.EventPublisher) VideoService {
	return &videoService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *videoService) List(ctx context.Context) ([]*models.Video, error) {
	videos, err := s.repo.Video().ListFeatured(ctx, nil, featuredVideoLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	if len(videos) == 0 {
		return FallbackVideos(), nil
	}
	return videos, nil
}

func (s *videoService) Create(ctx context.Context, req *CreateVideoRequest) (*models.Video, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	video := &models.Video{
		Title:     strings.TrimSpace(req.Title),
		YouTubeID: req.YouTubeID,
		Subject:   strings.TrimSpace(req.Subject),
		Featured:  true,
	}
	if err := s.repo.Video().Create(ctx, nil, video); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	s.logger.Info("Video published", "video_id", video.ID, "youtube_id", video.YouTubeID)
	publishEvent(ctx, s.publisher, s.logger, events.VideoCreated, events.VideoCreatedData{
		VideoID:   video.ID,
		YouTubeID: video.YouTubeID,
	})
	return video, nil
}

func (s *videoService) RecordView(ctx context.Context, id string) (*models.Video, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewValidationError("id", "video id is required", nil)
	}

	video, err := s.repo.Video().IncrementViews(ctx, nil, id)
	if err != nil {
		return nil, notFoundAs(err, ErrVideoNotFound)
	}
	return video, nil
}

func (s *videoService) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.Video().ListFeatured(ctx, nil, featuredVideoLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to list videos: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		for _, v := range FallbackVideos() {
			// Stored rows get their own ids
			v.ID = ""
			if err := tx.Video().Create(ctx, nil, v); err != nil {
				return fmt.Errorf("failed to seed %q: %w", v.Title, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
