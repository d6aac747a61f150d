package repositories

import (
	"context"
	"errors"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
)

type membershipRequestRepository struct {
	db *gorm.DB
}

// NewMembershipRequestRepository creates a new membership request repository
func NewMembershipRequestRepository(db *gorm.DB) MembershipRequestRepository {
	return &membershipRequestRepository{db: db}
}

func (r *membershipRequestRepository) Create(ctx context.Context, request *models.MembershipRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *membershipRequestRepository) GetByID(ctx context.Context, id uint) (*models.MembershipRequest, error) {
	var request models.MembershipRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *membershipRequestRepository) GetByUserID(ctx context.Context, userID uint) (*models.MembershipRequest, error) {
	var request models.MembershipRequest
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *membershipRequestRepository) FindActiveByUserID(ctx context.Context, userID uint) (*models.MembershipRequest, error) {
	var request models.MembershipRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, domain.ActiveMembershipStatuses).
		Order("created_at DESC").
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *membershipRequestRepository) List(ctx context.Context, status *domain.MembershipStatus, offset, limit int) ([]*models.MembershipRequest, int64, error) {
	var requests []*models.MembershipRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MembershipRequest{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *membershipRequestRepository) Update(ctx context.Context, request *models.MembershipRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *membershipRequestRepository) AppendHistory(ctx context.Context, entry *models.MembershipStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
