package repositories

import (
	"context"
	"time"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/core/domain"
)

// UserFilter narrows user listing
type UserFilter struct {
	Batch       string
	PassingYear int
	Role        domain.Role
	ActiveOnly  bool
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)
	Search(ctx context.Context, term string, limit int) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// MembershipRequestRepository defines membership request repository interface.
// FindActiveByUserID returns (nil, nil) when the user has no active request.
type MembershipRequestRepository interface {
	Create(ctx context.Context, request *models.MembershipRequest) error
	GetByID(ctx context.Context, id uint) (*models.MembershipRequest, error)
	GetByUserID(ctx context.Context, userID uint) (*models.MembershipRequest, error)
	FindActiveByUserID(ctx context.Context, userID uint) (*models.MembershipRequest, error)
	List(ctx context.Context, status *domain.MembershipStatus, offset, limit int) ([]*models.MembershipRequest, int64, error)
	Update(ctx context.Context, request *models.MembershipRequest) error
	AppendHistory(ctx context.Context, entry *models.MembershipStatusHistory) error
}

// MembershipCounterRepository allocates sequential membership numbers.
// Next must be safe against concurrent callers.
type MembershipCounterRepository interface {
	Next(ctx context.Context) (int, error)
}

// TransactionFilter narrows transaction listing
type TransactionFilter struct {
	Type      *domain.TransactionType
	Status    *domain.TransactionStatus
	Category  *string
	CreatedBy *uint
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionRepository defines financial transaction repository interface
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.FinancialTransaction) error
	GetByID(ctx context.Context, id uint) (*models.FinancialTransaction, error)
	Update(ctx context.Context, tx *models.FinancialTransaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]*models.FinancialTransaction, int64, error)
	AppendHistory(ctx context.Context, entry *models.TransactionStatusHistory) error
	SumByTypeAndStatus(ctx context.Context, txType domain.TransactionType, status domain.TransactionStatus, start, end *time.Time) (float64, int64, error)
}

// SettingsRepository defines settings repository interface.
// FindByKey returns (nil, nil) when the key does not exist.
type SettingsRepository interface {
	Create(ctx context.Context, setting *models.Setting) error
	FindByKey(ctx context.Context, key string) (*models.Setting, error)
	FindActiveByKey(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]*models.Setting, error)
	Update(ctx context.Context, setting *models.Setting) error
	DeleteByKey(ctx context.Context, key string) error
}
