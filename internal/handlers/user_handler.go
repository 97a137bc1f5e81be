package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// GetUser returns the caller, creating a student record on first sight
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} map[string]models.User
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	identity, err := GetIdentityFromContext(c)
	if err != nil {
		h.respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, err := h.userService.GetOrCreate(c.Request.Context(), identity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SelectRole sets the caller's role once
// @Summary Select role
// @Description The first selection is stored; repeating it is a no-op and a different role is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.SelectRoleRequest true "Role"
// @Success 200 {object} map[string]models.User
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Role already selected"
// @Failure 500 {object} ErrorResponse
// @Router /user [put]
func (h *UserHandler) SelectRole(c *gin.Context) {
	var req services.SelectRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !req.Role.IsValid() {
		h.respondError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	identity, err := GetIdentityFromContext(c)
	if err != nil {
		h.respondError(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	current, err := h.userService.GetByEmail(c.Request.Context(), identity.Email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.LogRequest(c, "Selecting role", "user_id", current.ID, "role", req.Role)

	user, err := h.userService.SelectRole(c.Request.Context(), current.ID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
