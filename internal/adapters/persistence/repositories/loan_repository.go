package repositories

import (
	"context"
	"errors"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, l *models.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var l models.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *loanRepository) GetAll(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []*models.Loan
	err := r.db.WithContext(ctx).
		Order("date DESC, time DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *loanRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var list []*models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&list).Error
	return list, err
}

// Update checks existence with a read first; RowsAffected only counts
// changed rows on MySQL, so a no-op resubmit would look missing.
func (r *loanRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.Loan
		if err := tx.Select("id").Where("id = ?", id).First(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		return tx.Model(&models.Loan{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *loanRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Loan{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *loanRepository) TotalByUserID(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
