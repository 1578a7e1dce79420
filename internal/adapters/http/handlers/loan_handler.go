package handlers

import (
	"errors"

	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/core/services"
	"sfms-backend/internal/pkg/pagination"
	"sfms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	service *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(service *services.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// GetAll returns all loans, newest first
func (h *LoanHandler) GetAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	list, total, err := h.service.GetAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": list,
		"meta":  pagination.NewMeta(params, total),
	})
}

// GetByUser returns one member's loans
func (h *LoanHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	// Members can only view their own loans
	if !canActOn(c, uint(userID)) {
		return response.Forbidden(c, "Access denied")
	}

	list, err := h.service.GetByUserID(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": list,
	})
}

// TotalByUser returns one member's loan total
func (h *LoanHandler) TotalByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	if !canActOn(c, uint(userID)) {
		return response.Forbidden(c, "Access denied")
	}

	total, err := h.service.TotalByUserID(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get loan total")
	}

	return response.Success(c, "Loan total retrieved successfully", fiber.Map{
		"user_id": userID,
		"total":   total,
	})
}

// Create stores a new loan
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var input services.LoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	id, err := h.service.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid loan data")
		}
		return response.InternalServerError(c, "Failed to create loan")
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"loan_id": id,
	})
}

// Update applies a partial update
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan id")
	}

	var input services.UpdateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.service.Update(c.Context(), uint(id), &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No fields to update")
		default:
			return response.InternalServerError(c, "Failed to update loan")
		}
	}

	return response.Success(c, "Loan updated successfully", nil)
}

// Delete removes a loan
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid loan id")
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to delete loan")
	}

	return response.Success(c, "Loan deleted successfully", nil)
}
