package repositories

import (
	"context"
	"errors"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counterRowID is the fixed primary key of the single counter row
const counterRowID uint = 1

type membershipCounterRepository struct {
	db *gorm.DB
}

// NewMembershipCounterRepository creates a new membership counter repository
func NewMembershipCounterRepository(db *gorm.DB) MembershipCounterRepository {
	return &membershipCounterRepository{db: db}
}

// Next increments and returns the membership sequence number. The counter row
// is read under FOR UPDATE inside a transaction so two concurrent approvals
// cannot observe the same value. On first use the counter is seeded from the
// highest membership ID already assigned to a user.
func (r *membershipCounterRepository) Next(ctx context.Context) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter models.MembershipCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&counter, counterRowID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seed, seedErr := highestAssignedSequence(tx)
			if seedErr != nil {
				return seedErr
			}
			counter = models.MembershipCounter{ID: counterRowID, Value: seed}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		counter.Value++
		next = counter.Value
		return tx.Save(&counter).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func highestAssignedSequence(tx *gorm.DB) (int, error) {
	var user models.User
	err := tx.
		Where("membership_id IS NOT NULL").
		Order("membership_id DESC").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if user.MembershipID == nil {
		return 0, nil
	}
	return domain.ParseMembershipID(*user.MembershipID)
}
