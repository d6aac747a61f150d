package repositories

import (
	"context"
	"time"

	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/core/domain"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new financial transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.FinancialTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.FinancialTransaction, error) {
	var tx models.FinancialTransaction
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Reviewer").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.FinancialTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FinancialTransaction{}, id).Error
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]*models.FinancialTransaction, int64, error) {
	var txs []*models.FinancialTransaction
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FinancialTransaction{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Creator").
		Order("transaction_date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *transactionRepository) AppendHistory(ctx context.Context, entry *models.TransactionStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *transactionRepository) SumByTypeAndStatus(ctx context.Context, txType domain.TransactionType, status domain.TransactionStatus, start, end *time.Time) (float64, int64, error) {
	var result struct {
		Total float64
		Count int64
	}

	query := r.db.WithContext(ctx).Model(&models.FinancialTransaction{}).
		Where("type = ? AND status = ?", txType, status)
	if start != nil {
		query = query.Where("transaction_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("transaction_date <= ?", *end)
	}

	err := query.
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	return result.Total, result.Count, nil
}

func (r *transactionRepository) applyFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filter.EndDate)
	}
	return query
}
