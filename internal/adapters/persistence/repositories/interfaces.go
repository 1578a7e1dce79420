package repositories

import (
	"context"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/core/domain"
)

// UserUpdate carries a partial identity/profile update. Nil fields are
// left untouched. ProfileFields is a column->value map written to the
// profile table matching the user's role at update time.
type UserUpdate struct {
	Username      *string
	PasswordHash  *string
	Role          *domain.Role
	ProfileFields map[string]interface{}
}

// UserRepository is the credential store: it owns identity and profile
// persistence, including the atomic two-table write paths.
type UserRepository interface {
	// CreateWithProfile inserts the user and its profile variant in one
	// transaction. Either both rows become visible or neither does.
	// A username collision surfaces as domain.ErrDuplicateUsername.
	CreateWithProfile(ctx context.Context, user *models.User, profile models.Profile) error

	// GetByUsername returns the raw identity row including the password
	// digest. Used by login only.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// FindRecordByID and FindRecordByUsername return the merged
	// identity+profile record, resolved by the stored role.
	FindRecordByID(ctx context.Context, id uint) (*models.UserRecord, error)
	FindRecordByUsername(ctx context.Context, username string) (*models.UserRecord, error)

	// List returns resolved records ordered by creation time descending,
	// optionally filtered by role.
	List(ctx context.Context, role *domain.Role, offset, limit int) ([]*models.UserRecord, int64, error)

	// UpdateWithProfile applies a partial update atomically. Returns
	// false with no writes when the id does not exist.
	UpdateWithProfile(ctx context.Context, id uint, upd *UserUpdate) (bool, error)

	// Delete removes the identity row; profile rows go with it via the
	// foreign key cascade. Returns false when the id does not exist.
	Delete(ctx context.Context, id uint) (bool, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// ContributionRepository defines contribution persistence
type ContributionRepository interface {
	Create(ctx context.Context, c *models.Contribution) error
	GetByID(ctx context.Context, id uint) (*models.Contribution, error)
	GetAll(ctx context.Context, offset, limit int) ([]*models.Contribution, int64, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Contribution, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	TotalByUserID(ctx context.Context, userID uint) (float64, error)
}

// LoanRepository defines loan persistence
type LoanRepository interface {
	Create(ctx context.Context, l *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetAll(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Loan, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	TotalByUserID(ctx context.Context, userID uint) (float64, error)
}

// LoanRepaymentRepository defines repayment persistence
type LoanRepaymentRepository interface {
	Create(ctx context.Context, r *models.LoanRepayment) error
	GetByID(ctx context.Context, id uint) (*models.LoanRepayment, error)
	GetAll(ctx context.Context, offset, limit int) ([]*models.LoanRepayment, int64, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.LoanRepayment, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	TotalByUserID(ctx context.Context, userID uint) (float64, error)
}
