package repositories

import (
	"context"
	"errors"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// contributionRepository implements ContributionRepository
type contributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

func (r *contributionRepository) Create(ctx context.Context, c *models.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contributionRepository) GetByID(ctx context.Context, id uint) (*models.Contribution, error) {
	var c models.Contribution
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContributionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *contributionRepository) GetAll(ctx context.Context, offset, limit int) ([]*models.Contribution, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Contribution{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []*models.Contribution
	err := r.db.WithContext(ctx).
		Order("date DESC, time DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *contributionRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Contribution, error) {
	var list []*models.Contribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&list).Error
	return list, err
}

// Update checks existence with a read first: MySQL reports rows changed,
// not rows matched, so RowsAffected is zero when an existing row is
// resubmitted with its current values.
func (r *contributionRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Contribution
		if err := tx.Select("id").Where("id = ?", id).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		return tx.Model(&models.Contribution{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *contributionRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Contribution{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *contributionRepository) TotalByUserID(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Contribution{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
