package services

import (
	"context"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/core/domain"
)

// ContributionService handles contribution records
type ContributionService struct {
	repo repositories.ContributionRepository
}

// NewContributionService creates a new contribution service
func NewContributionService(repo repositories.ContributionRepository) *ContributionService {
	return &ContributionService{repo: repo}
}

// ContributionInput represents a new contribution
type ContributionInput struct {
	UserID    uint    `json:"user_id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
}

// UpdateContributionInput represents a partial contribution update
type UpdateContributionInput struct {
	Firstname *string  `json:"firstname"`
	Lastname  *string  `json:"lastname"`
	Amount    *float64 `json:"amount"`
	Date      *string  `json:"date"`
	Time      *string  `json:"time"`
}

// Create validates and stores a new contribution
func (s *ContributionService) Create(ctx context.Context, input *ContributionInput) (uint, error) {
	if input.UserID == 0 || input.Amount <= 0 || input.Date == "" {
		return 0, domain.ErrInvalidInput
	}

	c := &models.Contribution{
		UserID:    input.UserID,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Amount:    input.Amount,
		Date:      input.Date,
		Time:      input.Time,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

// GetAll returns contributions ordered by date/time descending
func (s *ContributionService) GetAll(ctx context.Context, offset, limit int) ([]*models.Contribution, int64, error) {
	return s.repo.GetAll(ctx, offset, limit)
}

// GetByUserID returns one member's contributions, newest first
func (s *ContributionService) GetByUserID(ctx context.Context, userID uint) ([]*models.Contribution, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update applies a partial update
func (s *ContributionService) Update(ctx context.Context, id uint, input *UpdateContributionInput) error {
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
		return domain.ErrContributionNotFound
	}
	return nil
}

// Delete removes a contribution
func (s *ContributionService) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrContributionNotFound
	}
	return nil
}

// TotalByUserID returns one member's contribution total
func (s *ContributionService) TotalByUserID(ctx context.Context, userID uint) (float64, error) {
	return s.repo.TotalByUserID(ctx, userID)
}
