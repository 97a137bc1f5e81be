package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type TaskHandler struct {
	BaseHandler
	taskService services.TaskService
	metrics     *Metrics
}

func NewTaskHandler(taskService services.TaskService, metrics *Metrics, logger utils.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		taskService: taskService,
		metrics:     metrics,
	}
}

// ListTasks lists tasks
// @Summary List tasks
// @Description Tasks authored by the caller, or tasks addressed to studentId when given. Newest first, each with its grades.
// @Tags tasks
// @Produce json
// @Param studentId query string false "Target student ID"
// @Success 200 {object} map[string][]models.Task
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	studentID := c.Query("studentId")
	h.LogRequest(c, "Listing tasks", "user_id", user.ID, "student_id", studentID)

	tasks, err := h.taskService.List(c.Request.Context(), user, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask creates a task for a student
// @Summary Create task
// @Description Creates an ungraded task; the caller becomes its teacher. Points default to 10.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body services.CreateTaskRequest true "Task data"
// @Success 200 {object} map[string]models.Task
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req services.CreateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Creating task", "user_id", user.ID, "student_id", req.StudentID)

	task, err := h.taskService.Create(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask records an answer or grades a task
// @Summary Answer or grade task
// @Description With isCorrect absent or null the answer is stored. Otherwise the task is graded once: a grade is recorded and the student's points increase.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body services.UpdateTaskRequest true "Answer or grade"
// @Success 200 {object} map[string]models.Task
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Task already graded"
// @Failure 500 {object} ErrorResponse
// @Router /tasks [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req services.UpdateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Updating task", "user_id", user.ID, "task_id", req.TaskID, "grading", req.IsGrading())

	task, err := h.taskService.Update(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if req.IsGrading() {
		h.metrics.RecordGrade(*req.IsCorrect)
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}
