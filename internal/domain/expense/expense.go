package expense

import (
	"fmt"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State represents the validation state of an expense
type State string

const (
	StatePending   State = "PENDING"   // created, awaiting validation
	StateValidated State = "VALIDATED" // counted against the contract balance
	StateObserved  State = "OBSERVED"  // flagged for review, balance reversed
	StateAnnulled  State = "ANNULLED"  // terminal, balance reversed
)

// IsValid checks if the state is a valid State
func (s State) IsValid() bool {
	switch s {
	case StatePending, StateValidated, StateObserved, StateAnnulled:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true for states that cannot be transitioned out of
func (s State) IsTerminal() bool {
	return s == StateAnnulled
}

// DocumentType classifies the backing receipt of an expense
type DocumentType string

const (
	DocumentTypeInvoiceA DocumentType = "FACTURA_A"
	DocumentTypeInvoiceB DocumentType = "FACTURA_B"
	DocumentTypeInvoiceC DocumentType = "FACTURA_C"
	DocumentTypeTicket   DocumentType = "TICKET"
	// DocumentTypeVAL is the reserved non-fiscal receipt type used for
	// expenses generated from payroll payments and certifications.
	DocumentTypeVAL DocumentType = "VAL"
)

// IsValid checks if the document type is known
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeInvoiceA, DocumentTypeInvoiceB, DocumentTypeInvoiceC,
		DocumentTypeTicket, DocumentTypeVAL:
		return true
	}
	return false
}

// IsFiscal returns true for document types backed by a formal invoice
func (d DocumentType) IsFiscal() bool {
	return d != DocumentTypeVAL
}

// Expense is an outgoing payment obligation against a work, optionally
// charged to a supplier contract. The contract link is resolved lazily at
// validation time; once VALIDATED its amount contributes to the contract's
// executed total, and leaving VALIDATED reverses that contribution exactly
// once.
type Expense struct {
	shared.OrgAggregateRoot
	WorkID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	SupplierID     *uuid.UUID           `gorm:"type:uuid;index"`
	ContractID     *uuid.UUID           `gorm:"type:uuid;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null;default:'ARS'"`
	TaxAmount      decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	State          State                `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DocumentType   DocumentType         `gorm:"type:varchar(20);not null"`
	DocumentNumber string               `gorm:"type:varchar(50)"`
	Description    string               `gorm:"type:varchar(500)"`
	ExpenseDate    time.Time            `gorm:"not null"`
	ValidatedAt    *time.Time
	ValidatedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense in PENDING state
func NewExpense(
	organizationID, workID uuid.UUID,
	supplierID *uuid.UUID,
	amount decimal.Decimal,
	currency valueobject.Currency,
	documentType DocumentType,
	description string,
	expenseDate time.Time,
) (*Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if !documentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Expense document type is not valid")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Expense{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		WorkID:           workID,
		SupplierID:       supplierID,
		Amount:           amount,
		Currency:         currency,
		TaxAmount:        decimal.Zero,
		State:            StatePending,
		DocumentType:     documentType,
		Description:      description,
		ExpenseDate:      expenseDate,
	}, nil
}

// CanTransitionTo reports whether the state machine allows moving to target.
// ANNULLED is reachable from any non-annulled state; OBSERVED is re-enterable
// and an OBSERVED expense may be validated again.
func (e *Expense) CanTransitionTo(target State) bool {
	if e.State == StateAnnulled {
		return false
	}
	switch target {
	case StateValidated, StateObserved, StateAnnulled:
		return target != e.State
	}
	return false
}

// AssignContract links the expense to a contract. Set once, at validation
// time, by eligible-contract selection.
func (e *Expense) AssignContract(contractID uuid.UUID) {
	e.ContractID = &contractID
	e.UpdatedAt = time.Now()
}

// LeavesValidated reports whether transitioning to target reverses a
// previously applied contract contribution.
func (e *Expense) LeavesValidated(target State) bool {
	return e.State == StateValidated && (target == StateObserved || target == StateAnnulled)
}

// Transition commits the state change, stamping the validating actor and
// time. Balance apply/reverse is orchestrated by the caller before and after
// this call, inside the same transaction.
func (e *Expense) Transition(target State, actorID uuid.UUID) error {
	if e.State == StateAnnulled {
		return shared.NewDomainError("EXPENSE_ANNULLED", "Cannot transition an annulled expense")
	}
	if !e.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition expense from %s to %s", e.State, target))
	}
	now := time.Now()
	e.State = target
	e.ValidatedAt = &now
	e.ValidatedBy = &actorID
	e.UpdatedAt = now
	return nil
}

// IsValidated returns true if the expense is in VALIDATED state
func (e *Expense) IsValidated() bool {
	return e.State == StateValidated
}

// IsAnnulled returns true if the expense is in ANNULLED state
func (e *Expense) IsAnnulled() bool {
	return e.State == StateAnnulled
}
