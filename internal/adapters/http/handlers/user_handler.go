package handlers

import (
	"errors"

	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/core/services"
	"sfms-backend/internal/pkg/pagination"
	"sfms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all accounts, newest first
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": users,
		"meta":  pagination.NewMeta(params, total),
	})
}

// ListByRole returns accounts of one role
// @Summary List users by role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role path string true "Role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/role/{role} [get]
func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	role, ok := domain.ParseRole(c.Params("role"))
	if !ok {
		return response.BadRequest(c, "Invalid role")
	}

	params := pagination.GetParams(c)

	users, total, err := h.userService.ListUsersByRole(c.Context(), role, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": users,
		"meta":  pagination.NewMeta(params, total),
	})
}

// GetByID returns one account record
// @Summary Get user by id
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	// Members can only view their own record
	if !canActOn(c, uint(id)) {
		return response.Forbidden(c, "Access denied")
	}

	user, err := h.userService.GetUserByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

// GetByUsername returns one account record looked up by username
// @Summary Get user by username
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/username/{username} [get]
func (h *UserHandler) GetByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return response.BadRequest(c, "Invalid username")
	}

	user, err := h.userService.GetUserByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

// Update applies a partial account update
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	// Only the account owner or a super admin may update
	callerID, callerRole, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	if callerRole != domain.RoleSuperAdmin && callerID != uint(id) {
		return response.Forbidden(c, "Access denied")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateUser(c.Context(), uint(id), &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		case errors.Is(err, domain.ErrDuplicateUsername):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", nil)
}

// Delete removes an account
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	if err := h.userService.DeleteUser(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}
