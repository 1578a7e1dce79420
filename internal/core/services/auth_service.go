package services

import (
	"context"
	"errors"
	"log"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/config"
	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/pkg/jwt"
	"sfms-backend/internal/pkg/password"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// ProfileInput carries the profile fields of a registration. Fields
// that don't belong to the account's profile variant are ignored.
type ProfileInput struct {
	Firstname        string  `json:"firstname"`
	Lastname         string  `json:"lastname"`
	Phone            string  `json:"phone"`
	Birthday         string  `json:"birthday"`
	Gender           string  `json:"gender"`
	CivilStatus      string  `json:"civil_status"`
	Address          string  `json:"address"`
	EmploymentStatus string  `json:"employment_status"`
	CompanyName      string  `json:"company_name"`
	Income           float64 `json:"income"`
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Role     domain.Role  `json:"role"`
	Profile  ProfileInput `json:"profile"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents a successful login
type AuthResponse struct {
	Token string             `json:"token"`
	User  *models.UserRecord `json:"user"`
}

// Register creates a new account: it validates role and required
// fields before any write, hashes the password and stores identity +
// profile variant atomically.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (uint, error) {
	if input.Username == "" || input.Password == "" || input.Role == "" {
		return 0, domain.ErrInvalidInput
	}
	if !input.Role.Valid() {
		return 0, domain.ErrInvalidRole
	}

	// Advisory pre-check. The unique constraint in the store is the
	// real guard: concurrent registrations racing past this check still
	// surface domain.ErrDuplicateUsername from CreateWithProfile.
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.ErrDuplicateUsername
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Username: input.Username,
		Password: hashed,
		Role:     input.Role,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, buildProfile(input.Role, &input.Profile)); err != nil {
		return 0, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Username, user.Role)
	return user.ID, nil
}

// buildProfile selects the profile variant by role
func buildProfile(role domain.Role, in *ProfileInput) models.Profile {
	if role == domain.RoleMember {
		return &models.MemberProfile{
			Firstname:        in.Firstname,
			Lastname:         in.Lastname,
			Phone:            in.Phone,
			Birthday:         in.Birthday,
			Gender:           in.Gender,
			CivilStatus:      in.CivilStatus,
			Address:          in.Address,
			EmploymentStatus: in.EmploymentStatus,
			CompanyName:      in.CompanyName,
			Income:           in.Income,
		}
	}
	return &models.StaffProfile{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Phone:     in.Phone,
	}
}

// Login authenticates a user and issues a bearer token. Unknown
// username and wrong password both come back as ErrInvalidCredentials
// so the response never hints which part failed.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(user.ID, user.Username, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.ExpiryMinutes)
	if err != nil {
		return nil, err
	}

	record, err := s.userRepo.FindRecordByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		Token: token,
		User:  record,
	}, nil
}

// GetUserByID returns the resolved record for the authenticated user
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.UserRecord, error) {
	return s.userRepo.FindRecordByID(ctx, id)
}

// ValidatePassword verifies a plaintext against a stored digest.
// Credential verification belongs to this boundary, so the hasher is
// not consumed directly elsewhere.
func (s *AuthService) ValidatePassword(plain, digest string) bool {
	return password.Verify(plain, digest)
}
