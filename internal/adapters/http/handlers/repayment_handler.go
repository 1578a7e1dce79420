package handlers

import (
	"errors"

	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/core/services"
	"sfms-backend/internal/pkg/pagination"
	"sfms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RepaymentHandler handles loan repayment endpoints
type RepaymentHandler struct {
	service *services.RepaymentService
}

// NewRepaymentHandler creates a new repayment handler
func NewRepaymentHandler(service *services.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{service: service}
}

// GetAll returns all repayments, newest first
func (h *RepaymentHandler) GetAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	list, total, err := h.service.GetAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to get loan repayments")
	}

	return response.Success(c, "Loan repayments retrieved successfully", fiber.Map{
		"repayments": list,
		"meta":       pagination.NewMeta(params, total),
	})
}

// GetByUser returns one member's repayments
func (h *RepaymentHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	// Members can only view their own repayments
	if !canActOn(c, uint(userID)) {
		return response.Forbidden(c, "Access denied")
	}

	list, err := h.service.GetByUserID(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get loan repayments")
	}

	return response.Success(c, "Loan repayments retrieved successfully", fiber.Map{
		"repayments": list,
	})
}

// TotalByUser returns one member's repayment total
func (h *RepaymentHandler) TotalByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	if !canActOn(c, uint(userID)) {
		return response.Forbidden(c, "Access denied")
	}

	total, err := h.service.TotalByUserID(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get repayment total")
	}

	return response.Success(c, "Repayment total retrieved successfully", fiber.Map{
		"user_id": userID,
		"total":   total,
	})
}

// Create stores a new repayment
func (h *RepaymentHandler) Create(c *fiber.Ctx) error {
	var input services.RepaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	id, err := h.service.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid repayment data")
		}
		return response.InternalServerError(c, "Failed to create loan repayment")
	}

	return response.Created(c, "Loan repayment created successfully", fiber.Map{
		"repayment_id": id,
	})
}

// Update applies a partial update
func (h *RepaymentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid repayment id")
	}

	var input services.UpdateRepaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.service.Update(c.Context(), uint(id), &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrRepaymentNotFound):
			return response.NotFound(c, "Loan repayment not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No fields to update")
		default:
			return response.InternalServerError(c, "Failed to update loan repayment")
		}
	}

	return response.Success(c, "Loan repayment updated successfully", nil)
}

// Delete removes a repayment
func (h *RepaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid repayment id")
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrRepaymentNotFound) {
			return response.NotFound(c, "Loan repayment not found")
		}
		return response.InternalServerError(c, "Failed to delete loan repayment")
	}

	return response.Success(c, "Loan repayment deleted successfully", nil)
}
