package alert

import (
	"context"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies what condition raised the alert
type Type string

const (
	TypeZeroBalance          Type = "ZERO_BALANCE"           // contract balance reached zero, auto-blocked
	TypeInsufficientBalance  Type = "INSUFFICIENT_BALANCE"   // validation rejected for lack of balance
	TypeExpenseObserved      Type = "EXPENSE_OBSERVED"       // expense flagged for review
	TypeLowContractorBalance Type = "LOW_CONTRACTOR_BALANCE" // contractor budget under 20%
)

// Severity grades how urgent the alert is
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Status tracks whether an operator has dealt with the alert
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Alert is an append-only operator notification. It never mutates ledger
// state and writing one is best-effort: a failed insert must not abort the
// transaction that raised it.
type Alert struct {
	shared.BaseEntity
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type           Type       `gorm:"type:varchar(30);not null;index"`
	Severity       Severity   `gorm:"type:varchar(10);not null"`
	Message        string     `gorm:"type:varchar(500);not null"`
	Status         Status     `gorm:"type:varchar(10);not null;default:'OPEN';index"`
	SupplierID     *uuid.UUID `gorm:"type:uuid;index"`
	ContractID     *uuid.UUID `gorm:"type:uuid;index"`
	ExpenseID      *uuid.UUID `gorm:"type:uuid;index"`
	WorkID         *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Alert) TableName() string {
	return "alerts"
}

// New creates an open alert
func New(organizationID uuid.UUID, alertType Type, severity Severity, message string) *Alert {
	return &Alert{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: organizationID,
		Type:           alertType,
		Severity:       severity,
		Message:        message,
		Status:         StatusOpen,
	}
}

// WithSupplier tags the alert with the supplier it refers to
func (a *Alert) WithSupplier(id uuid.UUID) *Alert {
	a.SupplierID = &id
	return a
}

// WithContract tags the alert with the contract it refers to
func (a *Alert) WithContract(id uuid.UUID) *Alert {
	a.ContractID = &id
	return a
}

// WithExpense tags the alert with the expense it refers to
func (a *Alert) WithExpense(id uuid.UUID) *Alert {
	a.ExpenseID = &id
	return a
}

// WithWork tags the alert with the work it refers to
func (a *Alert) WithWork(id uuid.UUID) *Alert {
	a.WorkID = &id
	return a
}

// Emitter is the fire-and-forget alert sink. Implementations must swallow
// their own failures; Emit never propagates an error into the caller's
// transaction.
type Emitter interface {
	Emit(ctx context.Context, a *Alert)
}

// Repository defines persistence operations for alerts
type Repository interface {
	Create(ctx context.Context, a *Alert) error
	// HasOpen reports whether an open alert of the given type already
	// exists for a supplier. Used to deduplicate low-balance alerts.
	HasOpen(ctx context.Context, alertType Type, supplierID uuid.UUID) (bool, error)
}
