package repositories

import (
	"context"
	"errors"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// repaymentRepository implements LoanRepaymentRepository
type repaymentRepository struct {
	db *gorm.DB
}

// NewLoanRepaymentRepository creates a new loan repayment repository
func NewLoanRepaymentRepository(db *gorm.DB) LoanRepaymentRepository {
	return &repaymentRepository{db: db}
}

func (r *repaymentRepository) Create(ctx context.Context, rp *models.LoanRepayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *repaymentRepository) GetByID(ctx context.Context, id uint) (*models.LoanRepayment, error) {
	var rp models.LoanRepayment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRepaymentNotFound
		}
		return nil, err
	}
	return &rp, nil
}

func (r *repaymentRepository) GetAll(ctx context.Context, offset, limit int) ([]*models.LoanRepayment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LoanRepayment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []*models.LoanRepayment
	err := r.db.WithContext(ctx).
		Order("date DESC, time DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *repaymentRepository) GetByUserID(ctx context.Context, userID uint) ([]*models.LoanRepayment, error) {
	var list []*models.LoanRepayment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&list).Error
	return list, err
}

// Update checks existence with a read first; RowsAffected only counts
// changed rows on MySQL, so a no-op resubmit would look missing.
func (r *repaymentRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rp models.LoanRepayment
		if err := tx.Select("id").Where("id = ?", id).First(&rp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		return tx.Model(&models.LoanRepayment{}).Where("id = ?", id).Updates(fields).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *repaymentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.LoanRepayment{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repaymentRepository) TotalByUserID(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.LoanRepayment{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
