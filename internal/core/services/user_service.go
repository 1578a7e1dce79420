package services

import (
	"context"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/pkg/password"
)

// UserService handles account management on top of the credential store
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput represents a partial account update. Only non-nil
// fields are written.
type UpdateUserInput struct {
	Username *string      `json:"username"`
	Password *string      `json:"password"`
	Role     *domain.Role `json:"role"`

	Firstname        *string  `json:"firstname"`
	Lastname         *string  `json:"lastname"`
	Phone            *string  `json:"phone"`
	Birthday         *string  `json:"birthday"`
	Gender           *string  `json:"gender"`
	CivilStatus      *string  `json:"civil_status"`
	Address          *string  `json:"address"`
	EmploymentStatus *string  `json:"employment_status"`
	CompanyName      *string  `json:"company_name"`
	Income           *float64 `json:"income"`
}

// ListUsers returns all accounts ordered by creation time descending
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*models.UserRecord, int64, error) {
	return s.userRepo.List(ctx, nil, offset, limit)
}

// ListUsersByRole returns accounts of one role, newest first
func (s *UserService) ListUsersByRole(ctx context.Context, role domain.Role, offset, limit int) ([]*models.UserRecord, int64, error) {
	if !role.Valid() {
		return nil, 0, domain.ErrInvalidRole
	}
	return s.userRepo.List(ctx, &role, offset, limit)
}

// GetUserByID returns the resolved record for one account
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserRecord, error) {
	return s.userRepo.FindRecordByID(ctx, id)
}

// GetUserByUsername returns the resolved record for one account
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	return s.userRepo.FindRecordByUsername(ctx, username)
}

// UpdateUser applies a partial update. A supplied password is
// re-hashed; profile fields land in the table matching the account's
// role at update time.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput) error {
	if input.Role != nil && !input.Role.Valid() {
		return domain.ErrInvalidRole
	}

	upd := &repositories.UserUpdate{
		Username:      input.Username,
		Role:          input.Role,
		ProfileFields: buildProfileFields(input),
	}

	if input.Password != nil && *input.Password != "" {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hashed
	}

	found, err := s.userRepo.UpdateWithProfile(ctx, id, upd)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}

// buildProfileFields collects supplied profile fields as column updates
func buildProfileFields(input *UpdateUserInput) map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	set("firstname", input.Firstname)
	set("lastname", input.Lastname)
	set("phone", input.Phone)
	set("birthday", input.Birthday)
	set("gender", input.Gender)
	set("civil_status", input.CivilStatus)
	set("address", input.Address)
	set("employment_status", input.EmploymentStatus)
	set("company_name", input.CompanyName)
	if input.Income != nil {
		fields["income"] = *input.Income
	}
	return fields
}

// DeleteUser removes an account; the store cascades the profile row
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}
