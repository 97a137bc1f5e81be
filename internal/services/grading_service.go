package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

type gradingService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewGradingService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.EventPublisher) GradingService {
	return &gradingService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Grade moves a task from ungraded to graded. The task update, the ledger row and the
// points increment commit together or not at all.
func (s *gradingService) Grade(ctx context.Context, req *UpdateTaskRequest, graderID string) (*GradeResult, error) {
	if !req.IsGrading() {
		return nil, NewValidationError("isCorrect", "correctness is required to grade", nil)
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	s.logger.Info("Grading task", "task_id", req.TaskID, "grader_id", graderID)

	var result GradeResult
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		task, err := tx.Task().GetByIDForUpdate(ctx, nil, req.TaskID)
		if err != nil {
			return notFoundAs(err, ErrTaskNotFound)
		}

		if task.TeacherID != graderID {
			return NewPermissionError(graderID, task.ID, "task", "grade", "only the assigning teacher can grade")
		}
		if task.IsGraded() {
			return ErrTaskAlreadyGraded
		}

		points := awardedPoints(task, req)
		if errs := validator.ValidateAwardedPoints(task, points); errs != nil {
			return errs
		}

		if req.Answer != nil {
			task.Answer = req.Answer
		}
		now := time.Now().UTC()
		task.IsCorrect = req.IsCorrect
		task.Feedback = req.Feedback
		task.AwardedPoints = &points
		task.GradedAt = &now

		snapshot, err := json.Marshal(models.GradeSnapshot{
			Question:  task.Question,
			Answer:    task.Answer,
			IsCorrect: *task.IsCorrect,
			MaxPoints: task.Points,
			GradedBy:  graderID,
		})
		if err != nil {
			return fmt.Errorf("failed to snapshot task: %w", err)
		}

		grade := &models.Grade{
			StudentID: task.StudentID,
			TaskID:    task.ID,
			Points:    points,
			Feedback:  task.Feedback,
			Snapshot:  datatypes.JSON(snapshot),
		}
		if err := tx.Grade().Create(ctx, nil, grade); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrTaskAlreadyGraded
			}
			return fmt.Errorf("failed to record grade: %w", err)
		}

		if err := tx.StudentProfile().IncrementPoints(ctx, nil, task.StudentID, points); err != nil {
			return fmt.Errorf("failed to add points: %w", err)
		}

		if err := tx.Task().Update(ctx, nil, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		result = GradeResult{Task: task, Grade: grade}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task graded",
		"task_id", result.Task.ID,
		"grade_id", result.Grade.ID,
		"student_id", result.Task.StudentID,
		"points", result.Grade.Points)

	publishEvent(ctx, s.publisher, s.logger, events.TaskGraded, events.TaskGradedData{
		TaskID:    result.Task.ID,
		GradeID:   result.Grade.ID,
		TeacherID: result.Task.TeacherID,
		StudentID: result.Task.StudentID,
		IsCorrect: *result.Task.IsCorrect,
		Points:    result.Grade.Points,
	})
	return &result, nil
}

// awardedPoints uses the supplied points, or full/zero marks by correctness when absent
func awardedPoints(task *models.Task, req *UpdateTaskRequest) int {
	if req.Points.Set {
		return req.Points.Value
	}
	if *req.IsCorrect {
		return task.Points
	}
	return 0
}
