package services

import (
	"context"
	"errors"
	"log"
	"time"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles user directory and membership grants
type UserService struct {
	userRepo    repositories.UserRepository
	counterRepo repositories.MembershipCounterRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	counterRepo repositories.MembershipCounterRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		counterRepo: counterRepo,
	}
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail returns a user by email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries optional profile updates
type UpdateProfileInput struct {
	FirstName      *string
	LastName       *string
	ProfilePicture *string
	Phone          *string
	Batch          *string
	DateOfBirth    *time.Time
	Company        *string
	Designation    *string
	PassingYear    *int
	EducationLevel *string
	Bio            *string
	LinkedinURL    *string
}

// UpdateProfile applies profile updates to a user
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Batch != nil {
		user.Batch = *input.Batch
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Company != nil {
		user.Company = *input.Company
	}
	if input.Designation != nil {
		user.Designation = *input.Designation
	}
	if input.PassingYear != nil {
		user.PassingYear = *input.PassingYear
	}
	if input.EducationLevel != nil {
		user.EducationLevel = *input.EducationLevel
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.LinkedinURL != nil {
		user.LinkedinURL = *input.LinkedinURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns users matching the filter with pagination
func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, filter, offset, limit)
}

// SearchUsers searches the directory by name, email or membership ID
func (s *UserService) SearchUsers(ctx context.Context, term string, limit int) ([]*models.User, error) {
	return s.userRepo.Search(ctx, term, limit)
}

// GrantRole adds a role to a user. Granting an already-held role is a no-op.
func (s *UserService) GrantRole(ctx context.Context, userID uint, role domain.Role) (*models.User, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Roles.Has(role) {
		return user, nil
	}

	user.Roles = user.Roles.Add(role)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive activates or deactivates a user account
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ApproveMembership grants the member role and allocates a membership ID.
// Both effects are idempotent: an already-held role is not duplicated and an
// already-assigned ID is never reallocated, so retried approvals converge.
func (s *UserService) ApproveMembership(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if !user.Roles.Has(domain.RoleMember) {
		user.Roles = user.Roles.Add(domain.RoleMember)
		changed = true
	}

	if user.MembershipID == nil {
		seq, err := s.counterRepo.Next(ctx)
		if err != nil {
			return nil, err
		}
		id := domain.FormatMembershipID(seq)
		user.MembershipID = &id
		changed = true
	}

	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("✅ Membership approved for user %d [%s]", user.ID, *user.MembershipID)
	}

	return user, nil
}
