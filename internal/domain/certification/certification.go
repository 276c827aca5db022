package certification

import (
	"context"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Certification is a contractor's certified work amount for one week,
// the subcontractor analogue of an employee payment. Unique per
// (supplier_id, week_start_date).
type Certification struct {
	shared.OrgAggregateRoot
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_certifications_supplier_week"`
	WeekStartDate time.Time       `gorm:"not null;uniqueIndex:idx_certifications_supplier_week"`
	ContractID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ExpenseID     *uuid.UUID      `gorm:"type:uuid;index"`
	Notes         string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Certification) TableName() string {
	return "contractor_certifications"
}

// NewCertification creates a certification for a contractor-week
func NewCertification(
	organizationID, supplierID, contractID, workID uuid.UUID,
	week valueobject.WeekStart,
	amount decimal.Decimal,
	notes string,
) (*Certification, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Certification amount must be positive")
	}
	return &Certification{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		SupplierID:       supplierID,
		WeekStartDate:    week.Date(),
		ContractID:       contractID,
		WorkID:           workID,
		Amount:           amount,
		Notes:            notes,
	}, nil
}

// LinkExpense records the auto-created expense backing this certification
func (c *Certification) LinkExpense(expenseID uuid.UUID) {
	c.ExpenseID = &expenseID
	c.UpdatedAt = time.Now()
}

// Repository defines persistence operations for certifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Certification, error)
	// FindBySupplierWeek returns the certification for the composite key,
	// or nil when the week is uncertified.
	FindBySupplierWeek(ctx context.Context, supplierID uuid.UUID, weekStartDate time.Time) (*Certification, error)
	SumBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
	Save(ctx context.Context, certification *Certification) error
	Delete(ctx context.Context, id uuid.UUID) error
}
