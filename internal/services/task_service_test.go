package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
)

type taskFixture struct {
	store     *memStore
	publisher *events.MockEventPublisher
	tasks     TaskService
	grading   GradingService
	analytics AnalyticsService
	teacher   *models.User
	student   *models.User
	other     *models.User
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	store := newMemStore()
	publisher := events.NewMockEventPublisher(nil)
	logger := utils.NewNopLogger()
	v := validator.New()
	grading := NewGradingService(store, logger, v, publisher)

	return &taskFixture{
		store:     store,
		publisher: publisher,
		tasks:     NewTaskService(store, logger, v, publisher, grading),
		grading:   grading,
		analytics: NewAnalyticsService(store, logger),
		teacher:   store.addUser("teacher", models.RoleTeacher),
		student:   store.addUser("student", models.RoleStudent),
		other:     store.addUser("other", models.RoleStudent),
	}
}

func (f *taskFixture) createTask(t *testing.T, points validator.FlexibleInt) *models.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), &CreateTaskRequest{
		StudentID:   f.student.ID,
		StudentName: "Student",
		Question:    "What is 2 + 2?",
		Points:      points,
	}, f.teacher)
	require.NoError(t, err)
	return task
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	t.Run("defaults points to 10", func(t *testing.T) {
		task := f.createTask(t, validator.FlexibleInt{})
		assert.Equal(t, 10, task.Points)
		assert.Equal(t, f.teacher.ID, task.TeacherID)
		assert.False(t, task.IsGraded())
		assert.Len(t, f.publisher.EventsOfType(events.TaskCreated), 1)
	})

	t.Run("non numeric points default", func(t *testing.T) {
		var req CreateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"studentId":"`+f.student.ID+`","question":"Q","points":"lots"}`), &req))
		task, err := f.tasks.Create(ctx, &req, f.teacher)
		require.NoError(t, err)
		assert.Equal(t, 10, task.Points)
		assert.Equal(t, f.student.Name, task.StudentName)
	})

	t.Run("negative points rejected", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, &CreateTaskRequest{
			StudentID: f.student.ID, Question: "Q", Points: validator.IntOf(-5),
		}, f.teacher)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, &CreateTaskRequest{StudentID: "ghost", Question: "Q"}, f.teacher)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("students cannot assign", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, &CreateTaskRequest{StudentID: f.other.ID, Question: "Q"}, f.student)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestTaskService_List(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	first := f.createTask(t, validator.IntOf(5))
	second := f.createTask(t, validator.IntOf(5))
	_, err := f.tasks.Create(ctx, &CreateTaskRequest{StudentID: f.other.ID, Question: "Other"}, f.teacher)
	require.NoError(t, err)

	authored, err := f.tasks.List(ctx, f.teacher, "")
	require.NoError(t, err)
	assert.Len(t, authored, 3)

	mine, err := f.tasks.List(ctx, f.student, f.student.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)
	for _, task := range mine {
		assert.Equal(t, f.student.ID, task.StudentID)
	}

	_, err = f.tasks.List(ctx, f.student, f.other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	empty, err := f.tasks.List(ctx, f.student, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTaskService_AnswerAndGradeFlow(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task := f.createTask(t, validator.IntOf(10))

	answered, err := f.tasks.Update(ctx, &UpdateTaskRequest{TaskID: task.ID, Answer: strPtr("4")}, f.student)
	require.NoError(t, err)
	assert.Equal(t, "4", *answered.Answer)
	assert.Nil(t, answered.IsCorrect)

	graded, err := f.tasks.Update(ctx, &UpdateTaskRequest{
		TaskID:    task.ID,
		IsCorrect: boolPtr(true),
		Feedback:  strPtr("Good"),
		Points:    validator.IntOf(10),
	}, f.teacher)
	require.NoError(t, err)
	assert.True(t, *graded.IsCorrect)
	assert.Equal(t, "Good", *graded.Feedback)
	assert.Equal(t, 10, *graded.AwardedPoints)
	assert.Equal(t, 10, graded.Points)
	assert.NotNil(t, graded.GradedAt)

	require.Len(t, f.store.grades, 1)
	for _, g := range f.store.grades {
		assert.Equal(t, f.student.ID, g.StudentID)
		assert.Equal(t, 10, g.Points)

		var snap models.GradeSnapshot
		require.NoError(t, json.Unmarshal(g.Snapshot, &snap))
		assert.Equal(t, "What is 2 + 2?", snap.Question)
		assert.Equal(t, "4", *snap.Answer)
		assert.Equal(t, f.teacher.ID, snap.GradedBy)
	}
	assert.Equal(t, 10, f.store.profiles[f.student.ID].TotalPoints)

	summary, err := f.analytics.Summary(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalPoints)
	assert.Equal(t, int64(1), summary.TotalTasks)
	assert.Equal(t, 10.0, summary.AverageScore)
	require.Len(t, summary.RecentGrades, 1)
	assert.Equal(t, "What is 2 + 2?...", summary.RecentGrades[0].TaskName)

	graded2 := f.publisher.EventsOfType(events.TaskGraded)
	require.Len(t, graded2, 1)
	assert.Equal(t, 10, graded2[0].Data.(events.TaskGradedData).Points)

	listed, err := f.tasks.List(ctx, f.student, f.student.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Grades, 1)
}

func TestGradingService_RegradeRejected(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.createTask(t, validator.IntOf(10))

	req := &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(true), Points: validator.IntOf(7)}
	_, err := f.grading.Grade(ctx, req, f.teacher.ID)
	require.NoError(t, err)

	_, err = f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(false), Points: validator.IntOf(3)}, f.teacher.ID)
	assert.ErrorIs(t, err, ErrTaskAlreadyGraded)
	assert.ErrorIs(t, err, ErrConflict)

	assert.Len(t, f.store.grades, 1)
	assert.Equal(t, 7, f.store.profiles[f.student.ID].TotalPoints)

	_, err = f.tasks.Update(ctx, &UpdateTaskRequest{TaskID: task.ID, Answer: strPtr("5")}, f.student)
	assert.ErrorIs(t, err, ErrTaskAlreadyGraded)
}

func TestGradingService_Rules(t *testing.T) {
	ctx := context.Background()

	t.Run("points above max", func(t *testing.T) {
		f := newTaskFixture(t)
		task := f.createTask(t, validator.IntOf(10))
		_, err := f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(true), Points: validator.IntOf(11)}, f.teacher.ID)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "points", verrs[0].Field)
		assert.Empty(t, f.store.grades)
	})

	t.Run("negative points", func(t *testing.T) {
		f := newTaskFixture(t)
		task := f.createTask(t, validator.IntOf(10))
		_, err := f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(false), Points: validator.IntOf(-1)}, f.teacher.ID)
		assert.Error(t, err)
		assert.Empty(t, f.store.grades)
	})

	t.Run("only the assigning teacher grades", func(t *testing.T) {
		f := newTaskFixture(t)
		task := f.createTask(t, validator.IntOf(10))
		other := f.store.addUser("teacher2", models.RoleTeacher)
		_, err := f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(true)}, other.ID)
		var perr *PermissionError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "grade", perr.Action)

		_, err = f.tasks.Update(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(true)}, f.student)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("absent points follow correctness", func(t *testing.T) {
		f := newTaskFixture(t)
		correct := f.createTask(t, validator.IntOf(8))
		wrong := f.createTask(t, validator.IntOf(8))

		res, err := f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: correct.ID, IsCorrect: boolPtr(true)}, f.teacher.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, res.Grade.Points)

		res, err = f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: wrong.ID, IsCorrect: boolPtr(false)}, f.teacher.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Grade.Points)
		assert.Equal(t, 8, f.store.profiles[f.student.ID].TotalPoints)
	})

	t.Run("unknown task", func(t *testing.T) {
		f := newTaskFixture(t)
		_, err := f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: "missing", IsCorrect: boolPtr(true)}, f.teacher.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("failed increment rolls back", func(t *testing.T) {
		f := newTaskFixture(t)
		task := f.createTask(t, validator.IntOf(10))
		f.store.failIncrement = errBoom

		_, err := f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(true)}, f.teacher.ID)
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, f.store.grades)
		stored := f.store.tasks[task.ID]
		assert.False(t, stored.IsGraded())
		assert.Empty(t, f.publisher.EventsOfType(events.TaskGraded))

		_, err = f.grading.Grade(ctx, &UpdateTaskRequest{TaskID: task.ID, IsCorrect: boolPtr(true)}, f.teacher.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, f.store.profiles[f.student.ID].TotalPoints)
	})
}

func TestTaskService_AnswerPermissions(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.createTask(t, validator.IntOf(10))

	_, err := f.tasks.Update(ctx, &UpdateTaskRequest{TaskID: task.ID, Answer: strPtr("x")}, f.other)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.tasks.Update(ctx, &UpdateTaskRequest{TaskID: task.ID}, f.student)
	assert.ErrorIs(t, err, ErrValidationFailed)

	byTeacher, err := f.tasks.Update(ctx, &UpdateTaskRequest{TaskID: task.ID, Answer: strPtr("teacher note")}, f.teacher)
	require.NoError(t, err)
	assert.Equal(t, "teacher note", *byTeacher.Answer)
}
