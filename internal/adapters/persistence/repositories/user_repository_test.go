package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"sfms-backend/internal/adapters/persistence/models"
	"sfms-backend/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func userRows(id uint, username string, role domain.Role) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "username", "password", "role", "created_at", "updated_at"}).
		AddRow(id, username, "digest", string(role), now, now)
}

func TestCreateWithProfileCommitsUserAndProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `member_profiles`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &models.User{Username: "alice", Password: "digest", Role: domain.RoleMember}
	profile := &models.MemberProfile{Firstname: "Alice", Lastname: "Reyes"}

	if err := repo.CreateWithProfile(context.Background(), user, profile); err != nil {
		t.Fatalf("CreateWithProfile: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user.ID = %d, want 1", user.ID)
	}
	if profile.UserID != 1 {
		t.Errorf("profile.UserID = %d, want 1", profile.UserID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateWithProfileRollsBackOnProfileError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `staff_profiles`").WillReturnError(errors.New("write failed"))
	mock.ExpectRollback()

	user := &models.User{Username: "bob", Password: "digest", Role: domain.RoleTreasurer}
	err := repo.CreateWithProfile(context.Background(), user, &models.StaffProfile{Firstname: "Bob"})
	if err == nil {
		t.Fatal("expected error when profile insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateWithProfileDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})
	mock.ExpectRollback()

	user := &models.User{Username: "alice", Password: "digest", Role: domain.RoleMember}
	err := repo.CreateWithProfile(context.Background(), user, &models.MemberProfile{})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("err = %v, want ErrDuplicateUsername", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindRecordByIDResolvesMemberVariant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRows(1, "alice", domain.RoleMember))
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `member_profiles`").WillReturnRows(
		sqlmock.NewRows([]string{
			"id", "user_id", "firstname", "lastname", "phone", "birthday", "gender",
			"civil_status", "address", "employment_status", "company_name", "income",
			"created_at", "updated_at",
		}).AddRow(1, 1, "Alice", "Reyes", "0917", "1990-02-14", "female",
			"single", "Quezon City", "employed", "Acme", 25000.00, now, now))

	record, err := repo.FindRecordByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindRecordByID: %v", err)
	}
	if record.Role != domain.RoleMember {
		t.Errorf("Role = %q, want member", record.Role)
	}
	if record.Firstname != "Alice" || record.Lastname != "Reyes" {
		t.Errorf("name = %q %q", record.Firstname, record.Lastname)
	}
	if record.Birthday == nil || *record.Birthday != "1990-02-14" {
		t.Error("member record must carry member-only fields")
	}
	if record.Income == nil || *record.Income != 25000.00 {
		t.Error("member record must carry income")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindRecordByIDResolvesStaffVariant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRows(2, "treas", domain.RoleTreasurer))
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `staff_profiles`").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "firstname", "lastname", "phone", "created_at", "updated_at"}).
			AddRow(1, 2, "Tess", "Cruz", "0918", now, now))

	record, err := repo.FindRecordByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("FindRecordByID: %v", err)
	}
	if record.Firstname != "Tess" {
		t.Errorf("Firstname = %q, want Tess", record.Firstname)
	}
	if record.Birthday != nil || record.Income != nil {
		t.Error("staff record must not carry member-only fields")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindRecordByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRows(2, "treas", domain.RoleTreasurer))
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `staff_profiles`").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "firstname", "lastname", "phone", "created_at", "updated_at"}).
			AddRow(1, 2, "Tess", "Cruz", "0918", now, now))

	record, err := repo.FindRecordByUsername(context.Background(), "treas")
	if err != nil {
		t.Fatalf("FindRecordByUsername: %v", err)
	}
	if record.ID != 2 || record.Username != "treas" || record.Firstname != "Tess" {
		t.Errorf("record = (%d, %q, %q), want (2, treas, Tess)", record.ID, record.Username, record.Firstname)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindRecordByUsernameUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindRecordByUsername(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFindRecordByIDUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindRecordByID(context.Background(), 99)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateWithProfileMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	username := "ghost"
	found, err := repo.UpdateWithProfile(context.Background(), 99, &UserUpdate{Username: &username})
	if err != nil {
		t.Fatalf("UpdateWithProfile: %v", err)
	}
	if found {
		t.Fatal("expected found=false for a missing user")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateWithProfileFiltersStaffColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRows(2, "treas", domain.RoleTreasurer))
	// firstname + updated_at + user_id: member-only columns never reach
	// the staff table
	mock.ExpectExec("UPDATE `staff_profiles`").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	found, err := repo.UpdateWithProfile(context.Background(), 2, &UserUpdate{
		ProfileFields: map[string]interface{}{
			"firstname": "Teresa",
			"income":    50000.00,
			"address":   "Manila",
		},
	})
	if err != nil {
		t.Fatalf("UpdateWithProfile: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateWithProfileDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRows(1, "alice", domain.RoleMember))
	mock.ExpectExec("UPDATE `users`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'bob'"})
	mock.ExpectRollback()

	username := "bob"
	_, err := repo.UpdateWithProfile(context.Background(), 1, &UserUpdate{Username: &username})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("err = %v, want ErrDuplicateUsername", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteReportsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("DELETE FROM `users`").WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.Delete(context.Background(), 99)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if found {
		t.Fatal("expected found=false when no row was deleted")
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("DELETE FROM `users`").WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
}
