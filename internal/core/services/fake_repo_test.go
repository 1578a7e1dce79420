package services

import (
	"context"
	"sort"
	"sync"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/core/domain"
)

// memUserRepo is an in-memory UserRepository for service tests. It
// mirrors the store's contract: unique usernames, role-discriminated
// profile reads, cascading delete.
type memUserRepo struct {
	mu      sync.Mutex
	seq     uint
	users   map[uint]*models.User
	members map[uint]*models.MemberProfile
	staff   map[uint]*models.StaffProfile
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:   map[uint]*models.User{},
		members: map[uint]*models.MemberProfile{},
		staff:   map[uint]*models.StaffProfile{},
	}
}

func (m *memUserRepo) CreateWithProfile(_ context.Context, user *models.User, profile models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}

	m.seq++
	user.ID = m.seq
	stored := *user
	m.users[user.ID] = &stored

	switch p := profile.(type) {
	case *models.MemberProfile:
		p.UserID = user.ID
		cp := *p
		m.members[user.ID] = &cp
	case *models.StaffProfile:
		p.UserID = user.ID
		cp := *p
		m.staff[user.ID] = &cp
	}
	return nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindRecordByID(ctx context.Context, id uint) (*models.UserRecord, error) {
	user, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.resolve(user), nil
}

func (m *memUserRepo) FindRecordByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	user, err := m.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return m.resolve(user), nil
}

func (m *memUserRepo) resolve(user *models.User) *models.UserRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := user.ToRecord()
	if user.Role == domain.RoleMember {
		if p, ok := m.members[user.ID]; ok {
			record.ApplyMember(p)
		}
		return record
	}
	if p, ok := m.staff[user.ID]; ok {
		record.ApplyStaff(p)
	}
	return record
}

func (m *memUserRepo) List(ctx context.Context, role *domain.Role, offset, limit int) ([]*models.UserRecord, int64, error) {
	m.mu.Lock()
	var matched []*models.User
	for _, u := range m.users {
		if role == nil || u.Role == *role {
			cp := *u
			matched = append(matched, &cp)
		}
	}
	m.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	records := make([]*models.UserRecord, 0, len(matched))
	for _, u := range matched {
		records = append(records, m.resolve(u))
	}
	return records, total, nil
}

func (m *memUserRepo) UpdateWithProfile(_ context.Context, id uint, upd *repositories.UserUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return false, nil
	}

	if upd.Username != nil {
		for otherID, u := range m.users {
			if otherID != id && u.Username == *upd.Username {
				return false, domain.ErrDuplicateUsername
			}
		}
		user.Username = *upd.Username
	}
	if upd.PasswordHash != nil {
		user.Password = *upd.PasswordHash
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}

	if len(upd.ProfileFields) == 0 {
		return true, nil
	}

	role := user.Role
	if role == domain.RoleMember {
		if p, ok := m.members[id]; ok {
			applyMemberFields(p, upd.ProfileFields)
		}
		return true, nil
	}
	if p, ok := m.staff[id]; ok {
		applyStaffFields(p, upd.ProfileFields)
	}
	return true, nil
}

func applyMemberFields(p *models.MemberProfile, fields map[string]interface{}) {
	for column, value := range fields {
		switch column {
		case "firstname":
			p.Firstname = value.(string)
		case "lastname":
			p.Lastname = value.(string)
		case "phone":
			p.Phone = value.(string)
		case "birthday":
			p.Birthday = value.(string)
		case "gender":
			p.Gender = value.(string)
		case "civil_status":
			p.CivilStatus = value.(string)
		case "address":
			p.Address = value.(string)
		case "employment_status":
			p.EmploymentStatus = value.(string)
		case "company_name":
			p.CompanyName = value.(string)
		case "income":
			p.Income = value.(float64)
		}
	}
}

func applyStaffFields(p *models.StaffProfile, fields map[string]interface{}) {
	for column, value := range fields {
		switch column {
		case "firstname":
			p.Firstname = value.(string)
		case "lastname":
			p.Lastname = value.(string)
		case "phone":
			p.Phone = value.(string)
		}
	}
}

func (m *memUserRepo) Delete(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	delete(m.members, id)
	delete(m.staff, id)
	return true, nil
}

func (m *memUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}
