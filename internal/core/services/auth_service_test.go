package services

import (
	"context"
	"errors"
	"testing"

	"sfms-backend/internal/config"
	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/pkg/jwt"
	"sfms-backend/internal/pkg/password"
)

func testAuthService() (*AuthService, *memUserRepo, *config.Config) {
	repo := newMemUserRepo()
	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", ExpiryMinutes: 15},
	}
	return NewAuthService(repo, cfg), repo, cfg
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc, _, cfg := testAuthService()
	ctx := context.Background()

	userID, err := svc.Register(ctx, &RegisterInput{
		Username: "alice",
		Password: "pw123",
		Role:     domain.RoleMember,
		Profile: ProfileInput{
			Firstname: "Alice",
			Lastname:  "Reyes",
			Birthday:  "1990-02-14",
			Income:    25000,
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if userID == 0 {
		t.Fatal("expected a non-zero user id")
	}

	resp, err := svc.Login(ctx, &LoginInput{Username: "alice", Password: "pw123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := jwt.Validate(resp.Token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("token must validate: %v", err)
	}
	if claims.UserID != userID || claims.Username != "alice" || claims.Role != "member" {
		t.Errorf("claims = (%d, %q, %q), want (%d, alice, member)", claims.UserID, claims.Username, claims.Role, userID)
	}

	if resp.User == nil || resp.User.Username != "alice" {
		t.Fatal("login must return the resolved user record")
	}
	if resp.User.Birthday == nil || *resp.User.Birthday != "1990-02-14" {
		t.Error("member record must include the profile fields")
	}
}

func TestLoginUniformInvalidCredentials(t *testing.T) {
	svc, _, _ := testAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Username: "alice", Password: "pw123", Role: domain.RoleMember,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Wrong password and unknown username must be indistinguishable
	_, wrongPass := svc.Login(ctx, &LoginInput{Username: "alice", Password: "nope"})
	_, unknownUser := svc.Login(ctx, &LoginInput{Username: "nobody", Password: "pw123"})

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongPass)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", unknownUser)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc, _, _ := testAuthService()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Username: "bob", Password: "pw123", Role: domain.Role("janitor"),
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc, _, _ := testAuthService()
	ctx := context.Background()

	cases := []*RegisterInput{
		{Password: "pw123", Role: domain.RoleMember},
		{Username: "bob", Role: domain.RoleMember},
		{Username: "bob", Password: "pw123"},
	}
	for _, input := range cases {
		if _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Register(%+v) err = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := testAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Username: "alice", Password: "pw123", Role: domain.RoleMember,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(ctx, &RegisterInput{
		Username: "alice", Password: "other", Role: domain.RoleTreasurer,
	})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("err = %v, want ErrDuplicateUsername", err)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, repo, _ := testAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterInput{
		Username: "alice", Password: "pw123", Role: domain.RoleMember,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.Password == "pw123" {
		t.Fatal("password must not be stored in plaintext")
	}
	if !password.Verify("pw123", user.Password) {
		t.Fatal("stored digest must verify against the original password")
	}
}

func TestRegisterSelectsProfileVariant(t *testing.T) {
	svc, repo, _ := testAuthService()
	ctx := context.Background()

	staffID, err := svc.Register(ctx, &RegisterInput{
		Username: "treas",
		Password: "pw123",
		Role:     domain.RoleTreasurer,
		Profile:  ProfileInput{Firstname: "Tess", Birthday: "1980-01-01", Income: 99999},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, ok := repo.staff[staffID]; !ok {
		t.Fatal("staff registration must create a staff profile row")
	}
	if _, ok := repo.members[staffID]; ok {
		t.Fatal("staff registration must not create a member profile row")
	}

	record, err := svc.GetUserByID(ctx, staffID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if record.Firstname != "Tess" {
		t.Errorf("Firstname = %q, want Tess", record.Firstname)
	}
	// Member-only input fields are dropped for staff accounts
	if record.Birthday != nil || record.Income != nil {
		t.Error("staff record must not carry member-only fields")
	}
}
