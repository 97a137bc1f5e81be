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

type taskService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	grading   GradingService
}

func NewTaskService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, publisher events.EventPublisher, grading GradingService) TaskService {
	return &taskService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		grading:   grading,
	}
}

func (s *taskService) Create(ctx context.Context, req *CreateTaskRequest, caller *models.User) (*models.Task, error) {
	if !caller.IsTeacher() {
		return nil, NewPermissionError(caller.ID, "", "task", "create", "only teachers can assign tasks")
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	points := req.Points.OrDefault(models.DefaultTaskPoints)
	if errs := validator.ValidateTaskPoints(points); errs != nil {
		return nil, errs
	}

	student, err := s.repo.User().GetByID(ctx, nil, strings.TrimSpace(req.StudentID))
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	studentName := strings.TrimSpace(req.StudentName)
	if studentName == "" {
		studentName = student.Name
	}

	task := &models.Task{
		TeacherID:   caller.ID,
		StudentID:   student.ID,
		StudentName: studentName,
		Question:    strings.TrimSpace(req.Question),
		Points:      points,
	}
	if err := s.repo.Task().Create(ctx, nil, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "teacher_id", caller.ID, "student_id", student.ID, "points", points)
	publishEvent(ctx, s.publisher, s.logger, events.TaskCreated, events.TaskCreatedData{
		TaskID:    task.ID,
		TeacherID: task.TeacherID,
		StudentID: task.StudentID,
		Points:    task.Points,
	})
	return task, nil
}

func (s *taskService) List(ctx context.Context, caller *models.User, studentID string) ([]*models.Task, error) {
	filters := repositories.TaskFilters{IncludeGrades: true}

	studentID = strings.TrimSpace(studentID)
	if studentID != "" {
		if !caller.IsTeacher() && studentID != caller.ID {
			return nil, NewPermissionError(caller.ID, studentID, "task", "list", "students can only list their own tasks")
		}
		filters.StudentID = studentID
	} else {
		filters.TeacherID = caller.ID
	}

	tasks, err := s.repo.Task().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, req *UpdateTaskRequest, caller *models.User) (*models.Task, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	if req.IsGrading() {
		result, err := s.grading.Grade(ctx, req, caller.ID)
		if err != nil {
			return nil, err
		}
		return result.Task, nil
	}
	return s.submitAnswer(ctx, req, caller)
}

func (s *taskService) submitAnswer(ctx context.Context, req *UpdateTaskRequest, caller *models.User) (*models.Task, error) {
	if req.Answer == nil {
		return nil, NewValidationError("answer", "answer is required", nil)
	}

	task, err := s.repo.Task().GetByID(ctx, nil, req.TaskID)
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound)
	}

	if task.StudentID != caller.ID && task.TeacherID != caller.ID {
		return nil, NewPermissionError(caller.ID, task.ID, "task", "answer", "not the assigned student or teacher")
	}
	if task.IsGraded() {
		return nil, ErrTaskAlreadyGraded
	}

	task.Answer = req.Answer
	if err := s.repo.Task().Update(ctx, nil, task); err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	s.logger.Info("Answer recorded", "task_id", task.ID, "user_id", caller.ID)
	publishEvent(ctx, s.publisher, s.logger, events.TaskAnswered, events.TaskAnsweredData{
		TaskID:    task.ID,
		StudentID: task.StudentID,
	})
	return task, nil
}
