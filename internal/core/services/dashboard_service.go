package services

import (
	"context"
	"time"

	"sfms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService computes aggregate fund figures straight from the
// store. Read-only, no repository indirection needed.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// FundSummary represents the fund position at a point in time
type FundSummary struct {
	TotalMembers       int64     `json:"total_members"`
	TotalStaff         int64     `json:"total_staff"`
	TotalContributions float64   `json:"total_contributions"`
	TotalLoans         float64   `json:"total_loans"`
	TotalRepayments    float64   `json:"total_repayments"`
	OutstandingLoans   float64   `json:"outstanding_loans"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// GetFundSummary returns current fund totals
func (s *DashboardService) GetFundSummary(ctx context.Context) (*FundSummary, error) {
	summary := &FundSummary{GeneratedAt: time.Now()}

	if err := s.db.WithContext(ctx).Table("users").
		Where("role = ?", domain.RoleMember).
		Count(&summary.TotalMembers).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Table("users").
		Where("role <> ?", domain.RoleMember).
		Count(&summary.TotalStaff).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Table("contributions").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalContributions).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Table("loans").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalLoans).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Table("loan_repayments").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalRepayments).Error; err != nil {
		return nil, err
	}

	summary.OutstandingLoans = summary.TotalLoans - summary.TotalRepayments
	return summary, nil
}
