package services

import (
	"context"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/core/domain"
)

// LoanService handles loan records
type LoanService struct {
	repo repositories.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(repo repositories.LoanRepository) *LoanService {
	return &LoanService{repo: repo}
}

// LoanInput represents a new loan
type LoanInput struct {
	UserID    uint    `json:"user_id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Reason    string  `json:"reason"`
}

// UpdateLoanInput represents a partial loan update
type UpdateLoanInput struct {
	Firstname *string  `json:"firstname"`
	Lastname  *string  `json:"lastname"`
	Amount    *float64 `json:"amount"`
	Date      *string  `json:"date"`
	Time      *string  `json:"time"`
	Reason    *string  `json:"reason"`
}

// Create validates and stores a new loan
func (s *LoanService) Create(ctx context.Context, input *LoanInput) (uint, error) {
	if input.UserID == 0 || input.Amount <= 0 || input.Date == "" {
		return 0, domain.ErrInvalidInput
	}

	l := &models.Loan{
		UserID:    input.UserID,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Amount:    input.Amount,
		Date:      input.Date,
		Time:      input.Time,
		Reason:    input.Reason,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return 0, err
	}
	return l.ID, nil
}

// GetAll returns loans ordered by date/time descending
func (s *LoanService) GetAll(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

// GetByUserID returns one member's loans, newest first
func (s *LoanService) GetByUserID(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update applies a partial update
func (s *LoanService) Update(ctx context.Context, id uint, input *UpdateLoanInput) error {
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
	if input.Reason != nil {
		fields["reason"] = *input.Reason
	}
	if len(fields) == 0 {
		return domain.ErrInvalidInput
	}

	found, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrLoanNotFound
	}
	return nil
}

// Delete removes a loan
func (s *LoanService) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrLoanNotFound
	}
	return nil
}

// TotalByUserID returns one member's loan total
func (s *LoanService) TotalByUserID(ctx context.Context, userID uint) (float64, error) {
	return s.repo.TotalByUserID(ctx, userID)
}
