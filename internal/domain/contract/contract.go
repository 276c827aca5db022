package contract

import (
	"fmt"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a contract
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusActive, StatusFinished:
		return true
	}
	return false
}

// selectionRank orders statuses for eligible-contract selection.
// Lower is preferred.
func (s Status) selectionRank() int {
	switch s {
	case StatusActive:
		return 0
	case StatusApproved:
		return 1
	case StatusPending:
		return 2
	default:
		return 3
	}
}

// Contract is the supplier-work agreement whose balance the ledger tracks.
// AmountExecuted and IsBlocked are mutated only through the ledger methods
// below; every caller must hold the contract row lock for the duration of
// its transaction.
type Contract struct {
	shared.OrgAggregateRoot
	SupplierID     uuid.UUID            `gorm:"type:uuid;not null;index:idx_contracts_supplier_work"`
	WorkID         uuid.UUID            `gorm:"type:uuid;not null;index:idx_contracts_supplier_work"`
	Description    string               `gorm:"type:varchar(500)"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null;default:'ARS'"`
	AmountTotal    decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	AmountExecuted decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Status         Status               `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	IsBlocked      bool                 `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new contract with a zero executed amount
func NewContract(organizationID, supplierID, workID uuid.UUID, amountTotal decimal.Decimal, currency valueobject.Currency) (*Contract, error) {
	if amountTotal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Contract total amount must be positive")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Contract{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		SupplierID:       supplierID,
		WorkID:           workID,
		Currency:         currency,
		AmountTotal:      amountTotal,
		AmountExecuted:   decimal.Zero,
		Status:           StatusPending,
	}, nil
}

// Available returns the remaining balance (amount_total - amount_executed)
func (c *Contract) Available() decimal.Decimal {
	return c.AmountTotal.Sub(c.AmountExecuted)
}

// CheckSufficiency verifies that amount fits in the remaining balance and
// returns the available balance. The error message carries the numbers the
// operator needs to remediate.
func (c *Contract) CheckSufficiency(amount decimal.Decimal) (decimal.Decimal, error) {
	available := c.Available()
	if amount.GreaterThan(available) {
		return available, shared.NewDomainError("INSUFFICIENT_BALANCE",
			fmt.Sprintf("Contract has insufficient balance. Available: %s, Required: %s",
				available.StringFixed(2), amount.StringFixed(2)))
	}
	return available, nil
}

// Apply adds amount to the executed total and auto-blocks the contract when
// the remaining balance reaches zero or below. It returns true when the
// contract became blocked by this application, so the caller can emit the
// zero-balance alert. Callers must have passed CheckSufficiency first.
func (c *Contract) Apply(amount decimal.Decimal) bool {
	c.AmountExecuted = c.AmountExecuted.Add(amount)
	c.UpdatedAt = time.Now()
	if !c.IsBlocked && c.Available().LessThanOrEqual(decimal.Zero) {
		c.IsBlocked = true
		return true
	}
	return false
}

// Reverse subtracts amount from the executed total, clamping at zero.
// Used only when an expense leaves the VALIDATED state. A reversal never
// unblocks the contract; only Override may clear IsBlocked.
func (c *Contract) Reverse(amount decimal.Decimal) {
	executed := c.AmountExecuted.Sub(amount)
	if executed.IsNegative() {
		executed = decimal.Zero
	}
	c.AmountExecuted = executed
	c.UpdatedAt = time.Now()
}

// Override forces the blocked flag, bypassing the auto-block rules.
// Restricted to the highest authorization tier; the caller checks the role.
func (c *Contract) Override(isBlocked bool) {
	c.IsBlocked = isBlocked
	c.UpdatedAt = time.Now()
}

// IsEligible reports whether the contract can receive new validated expenses
func (c *Contract) IsEligible() bool {
	return !c.IsBlocked && c.Status != StatusFinished
}

// SelectEligible picks the contract an expense or certification should be
// charged against: status ACTIVE before APPROVED before PENDING, most
// recently created within a tier. Blocked and finished contracts never
// qualify. Returns nil when no candidate is eligible.
func SelectEligible(candidates []*Contract) *Contract {
	var best *Contract
	for _, c := range candidates {
		if c == nil || !c.IsEligible() {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if c.Status.selectionRank() < best.Status.selectionRank() {
			best = c
			continue
		}
		if c.Status.selectionRank() == best.Status.selectionRank() && c.CreatedAt.After(best.CreatedAt) {
			best = c
		}
	}
	return best
}
