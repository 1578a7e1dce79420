package handlers

import (
	"errors"

	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/core/services"
	"sfms-backend/internal/pkg/pagination"
	"sfms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContributionHandler handles contribution endpoints
type ContributionHandler struct {
	service *services.ContributionService
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(service *services.ContributionService) *ContributionHandler {
	return &ContributionHandler{service: service}
}

// GetAll returns all contributions, newest first
func (h *ContributionHandler) GetAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	list, total, err := h.service.GetAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to get contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"contributions": list,
		"meta":          pagination.NewMeta(params, total),
	})
}

// GetByUser returns one member's contributions
func (h *ContributionHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	// Members can only view their own contributions
	if !canActOn(c, uint(userID)) {
		return response.Forbidden(c, "Access denied")
	}

	list, err := h.service.GetByUserID(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"contributions": list,
	})
}

// TotalByUser returns one member's contribution total
func (h *ContributionHandler) TotalByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	if !canActOn(c, uint(userID)) {
		return response.Forbidden(c, "Access denied")
	}

	total, err := h.service.TotalByUserID(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get contribution total")
	}

	return response.Success(c, "Contribution total retrieved successfully", fiber.Map{
		"user_id": userID,
		"total":   total,
	})
}

// Create stores a new contribution
func (h *ContributionHandler) Create(c *fiber.Ctx) error {
	var input services.ContributionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	id, err := h.service.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid contribution data")
		}
		return response.InternalServerError(c, "Failed to create contribution")
	}

	return response.Created(c, "Contribution created successfully", fiber.Map{
		"contribution_id": id,
	})
}

// Update applies a partial update
func (h *ContributionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid contribution id")
	}

	var input services.UpdateContributionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.service.Update(c.Context(), uint(id), &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrContributionNotFound):
			return response.NotFound(c, "Contribution not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No fields to update")
		default:
			return response.InternalServerError(c, "Failed to update contribution")
		}
	}

	return response.Success(c, "Contribution updated successfully", nil)
}

// Delete removes a contribution
func (h *ContributionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid contribution id")
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrContributionNotFound) {
			return response.NotFound(c, "Contribution not found")
		}
		return response.InternalServerError(c, "Failed to delete contribution")
	}

	return response.Success(c, "Contribution deleted successfully", nil)
}
