package models

import (
	"time"

	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents users table
type User struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Auth0ID        *string         `gorm:"uniqueIndex;size:100" json:"auth0_id,omitempty"`
	Email          string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string          `gorm:"size:255" json:"-"`
	FirstName      string          `gorm:"size:100" json:"first_name"`
	LastName       string          `gorm:"size:100" json:"last_name"`
	ProfilePicture string          `gorm:"size:500" json:"profile_picture"`
	Phone          string          `gorm:"size:30" json:"phone"`
	Batch          string          `gorm:"size:10;index" json:"batch"`
	DateOfBirth    *time.Time      `json:"date_of_birth"`
	Company        string          `gorm:"size:200" json:"company"`
	Designation    string          `gorm:"size:200" json:"designation"`
	PassingYear    int             `gorm:"index" json:"passing_year"`
	EducationLevel string          `gorm:"size:50" json:"education_level"`
	Bio            string          `gorm:"type:text" json:"bio"`
	LinkedinURL    string          `gorm:"size:300" json:"linkedin_url"`
	Roles          domain.RoleList `gorm:"size:255;not null;default:'guest'" json:"roles"`
	MembershipID   *string         `gorm:"uniqueIndex;size:10" json:"membership_id"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	EmailVerified  bool            `gorm:"default:false" json:"email_verified"`
	LastLoginAt    *time.Time      `json:"last_login_at"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsProfileComplete checks all required fields for 100% profile completion
func (u *User) IsProfileComplete() bool {
	return u.FirstName != "" &&
		u.LastName != "" &&
		u.Email != "" &&
		u.ProfilePicture != "" &&
		u.Phone != "" &&
		u.Batch != "" &&
		u.DateOfBirth != nil &&
		u.Company != "" &&
		u.Designation != "" &&
		u.PassingYear != 0 &&
		u.EducationLevel != ""
}

// UserResponse DTO
type UserResponse struct {
	ID             uint            `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Batch          string          `json:"batch,omitempty"`
	Company        string          `json:"company,omitempty"`
	Designation    string          `json:"designation,omitempty"`
	PassingYear    int             `json:"passing_year,omitempty"`
	EducationLevel string          `json:"education_level,omitempty"`
	Roles          domain.RoleList `json:"roles"`
	MembershipID   *string         `json:"membership_id"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		Phone:          u.Phone,
		Batch:          u.Batch,
		Company:        u.Company,
		Designation:    u.Designation,
		PassingYear:    u.PassingYear,
		EducationLevel: u.EducationLevel,
		Roles:          u.Roles,
		MembershipID:   u.MembershipID,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Membership Requests
// ============================================================

// MembershipRequest represents membership_requests table
type MembershipRequest struct {
	ID                   uint                    `gorm:"primaryKey" json:"id"`
	UserID               uint                    `gorm:"index;not null" json:"user_id"`
	Status               domain.MembershipStatus `gorm:"size:30;not null;default:'draft';index" json:"status"`
	PaymentAmount        *float64                `gorm:"type:decimal(15,2)" json:"payment_amount"`
	PaymentURL           *string                 `gorm:"size:500" json:"payment_url"`
	PaymentTransactionID *string                 `gorm:"size:100" json:"payment_transaction_id"`
	PaymentStatus        *string                 `gorm:"size:30" json:"payment_status"`
	RejectionReason      *string                 `gorm:"type:text" json:"rejection_reason"`
	CreatedAt            time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time               `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User    *User                     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	History []MembershipStatusHistory `gorm:"foreignKey:RequestID" json:"status_history,omitempty"`
}

func (MembershipRequest) TableName() string {
	return "membership_requests"
}

// MembershipStatusHistory is the append-only status log of a membership request
type MembershipStatusHistory struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	RequestID uint                    `gorm:"index;not null" json:"request_id"`
	Status    domain.MembershipStatus `gorm:"size:30;not null" json:"status"`
	ChangedBy uint                    `gorm:"not null" json:"changed_by"`
	Note      string                  `gorm:"type:text" json:"note"`
	CreatedAt time.Time               `gorm:"autoCreateTime" json:"changed_at"`
}

func (MembershipStatusHistory) TableName() string {
	return "membership_status_histories"
}

// MembershipCounter backs sequential membership ID allocation. The single
// row is updated under a row lock so concurrent approvals cannot allocate
// the same number.
type MembershipCounter struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	Value int  `gorm:"not null" json:"value"`
}

func (MembershipCounter) TableName() string {
	return "membership_counters"
}

// ============================================================
// Financial Transactions
// ============================================================

// FinancialTransaction represents financial_transactions table
type FinancialTransaction struct {
	ID              uint                     `gorm:"primaryKey" json:"id"`
	Type            domain.TransactionType   `gorm:"size:10;not null;index" json:"type"`
	Amount          float64                  `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string                   `gorm:"type:text;not null" json:"description"`
	Currency        string                   `gorm:"size:10;not null;default:'BDT'" json:"currency"`
	Category        *string                  `gorm:"size:100" json:"category"`
	ReferenceNumber *string                  `gorm:"size:100" json:"reference_number"`
	TransactionDate time.Time                `gorm:"not null;index" json:"transaction_date"`
	Status          domain.TransactionStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	CreatedBy       uint                     `gorm:"index;not null" json:"created_by"`
	ReviewedBy      *uint                    `json:"reviewed_by"`
	ReviewedAt      *time.Time               `json:"reviewed_at"`
	ReviewNote      *string                  `gorm:"type:text" json:"review_note"`
	RejectionReason *string                  `gorm:"type:text" json:"rejection_reason"`
	AttachmentURL   *string                  `gorm:"size:500" json:"attachment_url"`
	Payee           *string                  `gorm:"size:200" json:"payee"`
	Payer           *string                  `gorm:"size:200" json:"payer"`
	CreatedAt       time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Creator  *User                      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Reviewer *User                      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	History  []TransactionStatusHistory `gorm:"foreignKey:TransactionID" json:"status_history,omitempty"`
}

func (FinancialTransaction) TableName() string {
	return "financial_transactions"
}

// TransactionStatusHistory is the append-only status log of a transaction
type TransactionStatusHistory struct {
	ID            uint                     `gorm:"primaryKey" json:"id"`
	TransactionID uint                     `gorm:"index;not null" json:"transaction_id"`
	Status        domain.TransactionStatus `gorm:"size:20;not null" json:"status"`
	ChangedBy     uint                     `gorm:"not null" json:"changed_by"`
	Note          string                   `gorm:"type:text" json:"note"`
	CreatedAt     time.Time                `gorm:"autoCreateTime" json:"changed_at"`
}

func (TransactionStatusHistory) TableName() string {
	return "transaction_status_histories"
}

// ============================================================
// Settings
// ============================================================

// Setting represents settings table (key-value configuration)
type Setting struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Key         string         `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value       string         `gorm:"type:json;not null" json:"value"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Setting) TableName() string {
	return "settings"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&MembershipRequest{},
		&MembershipStatusHistory{},
		&MembershipCounter{},
		&FinancialTransaction{},
		&TransactionStatusHistory{},
		&Setting{},
	)
}
