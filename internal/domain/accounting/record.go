package accounting

import (
	"context"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is the ledger entry created once per validated expense. It holds a
// snapshot of the monetary fields at validation time; amounts are never
// re-derived, so the audit trail survives later edits to the expense.
type Record struct {
	shared.BaseEntity
	OrganizationID uuid.UUID            `gorm:"type:uuid;not null;index"`
	ExpenseID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	WorkID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	SupplierID     *uuid.UUID           `gorm:"type:uuid;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	TaxAmount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	NetAmount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	DocumentType   expense.DocumentType `gorm:"type:varchar(20);not null"`
	DocumentNumber string               `gorm:"type:varchar(50)"`
	ExpenseDate    time.Time            `gorm:"not null"`
	RecordedAt     time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "accounting_records"
}

// NewRecordFromExpense snapshots a validated expense into a ledger entry
func NewRecordFromExpense(e *expense.Expense) *Record {
	return &Record{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: e.OrganizationID,
		ExpenseID:      e.ID,
		WorkID:         e.WorkID,
		SupplierID:     e.SupplierID,
		Amount:         e.Amount,
		TaxAmount:      e.TaxAmount,
		NetAmount:      e.Amount.Sub(e.TaxAmount),
		Currency:       e.Currency,
		DocumentType:   e.DocumentType,
		DocumentNumber: e.DocumentNumber,
		ExpenseDate:    e.ExpenseDate,
		RecordedAt:     time.Now(),
	}
}

// Repository defines persistence operations for accounting records
type Repository interface {
	// FindByExpenseID returns the record for an expense, or nil when none
	// exists yet.
	FindByExpenseID(ctx context.Context, expenseID uuid.UUID) (*Record, error)
	Create(ctx context.Context, record *Record) error
}
