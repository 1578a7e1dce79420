package models

import (
	"time"

	"sfms-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity & Profiles
// ============================================================

// User represents the users table. It owns authentication data only;
// personal data lives in exactly one of the two profile tables,
// selected by Role at creation time.
type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Username  string      `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string      `gorm:"size:255;not null" json:"-"`
	Role      domain.Role `gorm:"size:30;not null;index" json:"role"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Profile is the role-discriminated profile variant. Exactly one
// implementation row exists per user, in the table matching the
// user's role.
type Profile interface {
	profileVariant()
}

// MemberProfile represents the member_profiles table (role = member)
type MemberProfile struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Firstname        string    `gorm:"size:100" json:"firstname"`
	Lastname         string    `gorm:"size:100" json:"lastname"`
	Phone            string    `gorm:"size:30" json:"phone"`
	Birthday         string    `gorm:"size:20" json:"birthday"`
	Gender           string    `gorm:"size:20" json:"gender"`
	CivilStatus      string    `gorm:"size:30" json:"civil_status"`
	Address          string    `gorm:"size:255" json:"address"`
	EmploymentStatus string    `gorm:"size:50" json:"employment_status"`
	CompanyName      string    `gorm:"size:100" json:"company_name"`
	Income           float64   `gorm:"type:decimal(12,2)" json:"income"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MemberProfile) TableName() string {
	return "member_profiles"
}

func (MemberProfile) profileVariant() {}

// StaffProfile represents the staff_profiles table
// (roles super_admin, treasurer, screening_committee)
type StaffProfile struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Firstname string    `gorm:"size:100" json:"firstname"`
	Lastname  string    `gorm:"size:100" json:"lastname"`
	Phone     string    `gorm:"size:30" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}

func (StaffProfile) profileVariant() {}

// UserRecord is the merged identity+profile DTO returned by every read
// path. Member-only fields are pointers so they serialize as absent for
// staff accounts instead of zero values.
type UserRecord struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`

	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`

	Birthday         *string  `json:"birthday,omitempty"`
	Gender           *string  `json:"gender,omitempty"`
	CivilStatus      *string  `json:"civil_status,omitempty"`
	Address          *string  `json:"address,omitempty"`
	EmploymentStatus *string  `json:"employment_status,omitempty"`
	CompanyName      *string  `json:"company_name,omitempty"`
	Income           *float64 `json:"income,omitempty"`
}

// ToRecord builds the identity part of a UserRecord; the password
// digest never leaves this layer.
func (u *User) ToRecord() *UserRecord {
	return &UserRecord{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ApplyMember merges member profile fields into the record
func (r *UserRecord) ApplyMember(p *MemberProfile) {
	r.Firstname = p.Firstname
	r.Lastname = p.Lastname
	r.Phone = p.Phone
	r.Birthday = &p.Birthday
	r.Gender = &p.Gender
	r.CivilStatus = &p.CivilStatus
	r.Address = &p.Address
	r.EmploymentStatus = &p.EmploymentStatus
	r.CompanyName = &p.CompanyName
	r.Income = &p.Income
}

// ApplyStaff merges staff profile fields into the record
func (r *UserRecord) ApplyStaff(p *StaffProfile) {
	r.Firstname = p.Firstname
	r.Lastname = p.Lastname
	r.Phone = p.Phone
}

// ============================================================
// Fund Records
// ============================================================

// Contribution represents the contributions table
type Contribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Firstname string    `gorm:"size:100" json:"firstname"`
	Lastname  string    `gorm:"size:100" json:"lastname"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date      string    `gorm:"size:20;not null;index" json:"date"`
	Time      string    `gorm:"size:10;not null" json:"time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Contribution) TableName() string {
	return "contributions"
}

// Loan represents the loans table
type Loan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Firstname string    `gorm:"size:100" json:"firstname"`
	Lastname  string    `gorm:"size:100" json:"lastname"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date      string    `gorm:"size:20;not null;index" json:"date"`
	Time      string    `gorm:"size:10;not null" json:"time"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanRepayment represents the loan_repayments table
type LoanRepayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Firstname string    `gorm:"size:100" json:"firstname"`
	Lastname  string    `gorm:"size:100" json:"lastname"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date      string    `gorm:"size:20;not null;index" json:"date"`
	Time      string    `gorm:"size:10;not null" json:"time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LoanRepayment) TableName() string {
	return "loan_repayments"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates/updates the owned tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&MemberProfile{},
		&StaffProfile{},
		&Contribution{},
		&Loan{},
		&LoanRepayment{},
	)
}
