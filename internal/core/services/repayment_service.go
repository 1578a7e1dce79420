package services

import (
	"context"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/core/domain"
)

// RepaymentService handles loan repayment records
type RepaymentService struct {
	repo repositories.LoanRepaymentRepository
}

// NewRepaymentService creates a new repayment service
func NewRepaymentService(repo repositories.LoanRepaymentRepository) *RepaymentService {
	return &RepaymentService{repo: repo}
}

// RepaymentInput represents a new repayment
type RepaymentInput struct {
	UserID    uint    `json:"user_id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
}

// UpdateRepaymentInput represents a partial repayment update
type UpdateRepaymentInput struct {
	Firstname *string  `json:"firstname"`
	Lastname  *string  `json:"lastname"`
	Amount    *float64 `json:"amount"`
	Date      *string  `json:"date"`
	Time      *string  `json:"time"`
}

// Create validates and stores a new repayment
func (s *RepaymentService) Create(ctx context.Context, input *RepaymentInput) (uint, error) {
	if input.UserID == 0 || input.Amount <= 0 || input.Date == "" {
		return 0, domain.ErrInvalidInput
	}

	rp := &models.LoanRepayment{
		UserID:    input.UserID,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Amount:    input.Amount,
		Date:      input.Date,
		Time:      input.Time,
	}
	if err := s.repo.Create(ctx, rp); err != nil {
		return 0, err
	}
	return rp.ID, nil
}

// GetAll returns repayments ordered by date/time descending
func (s *RepaymentService) GetAll(ctx context.Context, offset, limit int) ([]*models.LoanRepayment, int64, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

// GetByUserID returns one member's repayments, newest first
func (s *RepaymentService) GetByUserID(ctx context.Context, userID uint) ([]*models.LoanRepayment, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update applies a partial update
func (s *RepaymentService) Update(ctx context.Context, id uint, input *UpdateRepaymentInput) error {
	fields := map[string]interface{}{}
	if input.Firstname != nil {
		fields["firstname"] = *input.Firstname
	}
	if input.Lastname != nil {
		fields["lastname"] = *input.Lastname
	}
	if input.Amount != nil {
		fields["amount"] = *input.Amount
	}
	if input.Date != nil {
		fields["date"] = *input.Date
	}
	if input.Time != nil {
		fields["time"] = *input.Time
	}
	if len(fields) == 0 {
		return domain.ErrInvalidInput
	}

	found, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrRepaymentNotFound
	}
	return nil
}

// Delete removes a repayment
func (s *RepaymentService) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrRepaymentNotFound
	}
	return nil
}

// TotalByUserID returns one member's repayment total
func (s *RepaymentService) TotalByUserID(ctx context.Context, userID uint) (float64, error) {
	return s.repo.TotalByUserID(ctx, userID)
}
