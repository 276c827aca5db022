package persistence

import (
	"context"
	"errors"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/accounting"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountingRepository implements accounting.Repository using GORM
type GormAccountingRepository struct {
	db *gorm.DB
}

// NewGormAccountingRepository creates a new GormAccountingRepository
func NewGormAccountingRepository(db *gorm.DB) *GormAccountingRepository {
	return &GormAccountingRepository{db: db}
}

// FindByExpenseID returns the record for an expense, or nil when none exists
func (r *GormAccountingRepository) FindByExpenseID(ctx context.Context, expenseID uuid.UUID) (*accounting.Record, error) {
	var record accounting.Record
	if err := r.db.WithContext(ctx).First(&record, "expense_id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Create inserts a new accounting record. The unique index on expense_id is
// the race safety net against two concurrent inserts for the same expense.
func (r *GormAccountingRepository) Create(ctx context.Context, record *accounting.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

var _ accounting.Repository = (*GormAccountingRepository)(nil)
