package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type AppointmentHandler struct {
	BaseHandler
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService, logger utils.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler:        NewBaseHandler(logger),
		appointmentService: appointmentService,
	}
}

// ListAppointments lists the caller's appointments
// @Summary List appointments
// @Description Appointments booked by the caller, or taught by the caller with as=teacher. Ordered by date.
// @Tags appointments
// @Produce json
// @Param as query string false "Set to teacher to list appointments taught by the caller"
// @Success 200 {object} map[string][]models.Appointment
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	asTeacher := c.Query("as") == "teacher"

	appointments, err := h.appointmentService.List(c.Request.Context(), user, asTeacher)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// CreateAppointment books an appointment with a teacher
// @Summary Create appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body services.CreateAppointmentRequest true "Appointment data"
// @Success 200 {object} map[string]models.Appointment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Creating appointment", "user_id", user.ID, "teacher_id", req.TeacherID)

	appointment, err := h.appointmentService.Create(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// UpdateAppointment changes the status and meeting link of an appointment
// @Summary Update appointment
// @Description Any status may follow any other. meetingLink is only changed when provided.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body services.UpdateAppointmentRequest true "Status update"
// @Success 200 {object} map[string]models.Appointment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /appointments [patch]
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req services.UpdateAppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Updating appointment", "user_id", user.ID, "appointment_id", req.ID, "status", req.Status)

	appointment, err := h.appointmentService.Update(c.Request.Context(), &req, user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}
