package repositories

import (
	"context"
	"errors"
	"fmt"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/core/domain"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// staffProfileColumns is the subset of profile columns the staff table
// carries. Member-only fields in a staff update are dropped.
var staffProfileColumns = map[string]bool{
	"firstname": true,
	"lastname":  true,
	"phone":     true,
}

// userRepository implements UserRepository on GORM/MySQL
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// isDuplicateEntry reports whether err is the MySQL unique constraint
// violation. Username uniqueness relies on this constraint, not on the
// advisory pre-check in the service layer.
func isDuplicateEntry(err error) bool {
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// CreateWithProfile inserts identity + profile variant in one transaction.
// gorm.DB.Transaction rolls back on error and on panic, so no partial
// identity-without-profile state is ever visible.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User, profile models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isDuplicateEntry(err) {
				return domain.ErrDuplicateUsername
			}
			return err
		}

		switch p := profile.(type) {
		case *models.MemberProfile:
			p.UserID = user.ID
			return tx.Create(p).Error
		case *models.StaffProfile:
			p.UserID = user.ID
			return tx.Create(p).Error
		default:
			return fmt.Errorf("unsupported profile variant %T", profile)
		}
	})
}

// GetByUsername gets the raw identity row by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID gets the raw identity row by id
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindRecordByID returns the resolved identity+profile record
func (r *userRepository) FindRecordByID(ctx context.Context, id uint) (*models.UserRecord, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, user)
}

// FindRecordByUsername returns the resolved identity+profile record
func (r *userRepository) FindRecordByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, user)
}

// resolve loads the profile variant selected by the STORED role and
// merges it into the record. The role discriminates, never which
// profile table happens to hold a row.
func (r *userRepository) resolve(ctx context.Context, user *models.User) (*models.UserRecord, error) {
	record := user.ToRecord()

	if user.Role == domain.RoleMember {
		var profile models.MemberProfile
		err := r.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error
		if err == nil {
			record.ApplyMember(&profile)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return record, nil
	}

	var profile models.StaffProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error
	if err == nil {
		record.ApplyStaff(&profile)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return record, nil
}

// List returns resolved records ordered by creation time descending
func (r *userRepository) List(ctx context.Context, role *domain.Role, offset, limit int) ([]*models.UserRecord, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.User{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	find := r.db.WithContext(ctx).Order("created_at DESC")
	if role != nil {
		find = find.Where("role = ?", *role)
	}
	if err := find.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*models.UserRecord, 0, len(users))
	for _, user := range users {
		record, err := r.resolve(ctx, user)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, total, nil
}

// UpdateWithProfile applies the partial update in one transaction.
// Profile fields are written to the table matching the role in effect
// at update time; a role change does not migrate the profile row, so a
// combined role+profile update may touch zero profile rows.
func (r *userRepository) UpdateWithProfile(ctx context.Context, id uint, upd *UserUpdate) (bool, error) {
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		identity := map[string]interface{}{}
		if upd.Username != nil {
			identity["username"] = *upd.Username
		}
		if upd.PasswordHash != nil {
			identity["password"] = *upd.PasswordHash
		}
		if upd.Role != nil {
			identity["role"] = *upd.Role
		}
		if len(identity) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(identity).Error; err != nil {
				if isDuplicateEntry(err) {
					return domain.ErrDuplicateUsername
				}
				return err
			}
		}

		if len(upd.ProfileFields) > 0 {
			role := user.Role
			if upd.Role != nil {
				role = *upd.Role
			}
			if role == domain.RoleMember {
				return tx.Model(&models.MemberProfile{}).
					Where("user_id = ?", id).
					Updates(upd.ProfileFields).Error
			}
			staffFields := map[string]interface{}{}
			for column, value := range upd.ProfileFields {
				if staffProfileColumns[column] {
					staffFields[column] = value
				}
			}
			if len(staffFields) == 0 {
				return nil
			}
			return tx.Model(&models.StaffProfile{}).
				Where("user_id = ?", id).
				Updates(staffFields).Error
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Delete removes the identity row. Profile and fund record rows are
// removed by the ON DELETE CASCADE constraint, not application logic.
func (r *userRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
