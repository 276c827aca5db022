package persistence

import (
	"context"
	"errors"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements expense.Repository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var e expense.Expense
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByWork returns expenses for a work, paginated, newest first
func (r *GormExpenseRepository) FindByWork(ctx context.Context, workID uuid.UUID, filter shared.Filter) ([]expense.Expense, error) {
	var expenses []expense.Expense
	query := r.db.WithContext(ctx).
		Where("work_id = ?", workID).
		Order("created_at DESC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize)
	}
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save persists an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *expense.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// SumValidatedByContract totals the currently VALIDATED expense amounts
// charged to a contract
func (r *GormExpenseRepository) SumValidatedByContract(ctx context.Context, contractID uuid.UUID) (decimal.Decimal, error) {
	return r.sumValidated(ctx, "contract_id = ?", contractID)
}

// SumValidatedByWork totals the currently VALIDATED expense amounts for a work
func (r *GormExpenseRepository) SumValidatedByWork(ctx context.Context, workID uuid.UUID) (decimal.Decimal, error) {
	return r.sumValidated(ctx, "work_id = ?", workID)
}

func (r *GormExpenseRepository) sumValidated(ctx context.Context, cond string, arg any) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&expense.Expense{}).
		Select("SUM(amount)").
		Where(cond, arg).
		Where("state = ?", expense.StateValidated).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

var _ expense.Repository = (*GormExpenseRepository)(nil)
