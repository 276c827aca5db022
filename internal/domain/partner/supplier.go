package partner

import (
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierType represents the type of supplier
type SupplierType string

const (
	SupplierTypeRegular    SupplierType = "REGULAR"    // materials/services vendor, paid per invoice
	SupplierTypeContractor SupplierType = "CONTRACTOR" // subcontractor paid by weekly certification
)

// IsValid checks if the type is a valid SupplierType
func (t SupplierType) IsValid() bool {
	return t == SupplierTypeRegular || t == SupplierTypeContractor
}

// Supplier is a vendor or subcontractor. Contractor suppliers carry an
// optional budget against which weekly certifications are tracked;
// ContractorTotalPaid is recomputed from certifications inside the owning
// transaction, never incremented blindly.
type Supplier struct {
	shared.OrgAggregateRoot
	Name                string          `gorm:"type:varchar(200);not null"`
	TaxID               string          `gorm:"type:varchar(20);index"`
	Type                SupplierType    `gorm:"type:varchar(20);not null;default:'REGULAR';index"`
	ContactName         string          `gorm:"type:varchar(100)"`
	Phone               string          `gorm:"type:varchar(50)"`
	Email               string          `gorm:"type:varchar(200)"`
	ContractorBudget    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	ContractorTotalPaid decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	IsArchived          bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(organizationID uuid.UUID, name string, supplierType SupplierType) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if !supplierType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Supplier type is not valid")
	}
	return &Supplier{
		OrgAggregateRoot:    shared.NewOrgAggregateRoot(organizationID),
		Name:                name,
		Type:                supplierType,
		ContractorTotalPaid: decimal.Zero,
	}, nil
}

// IsContractor reports whether the supplier is paid by weekly certification
func (s *Supplier) IsContractor() bool {
	return s.Type == SupplierTypeContractor
}

// SetContractorTotalPaid overwrites the certified total with a fresh
// recompute and returns the remaining balance, or nil when no budget is set.
func (s *Supplier) SetContractorTotalPaid(total decimal.Decimal) *decimal.Decimal {
	s.ContractorTotalPaid = total
	s.UpdatedAt = time.Now()
	return s.ContractorRemainingBalance()
}

// ContractorRemainingBalance returns budget minus certified total, or nil
// when no budget is set.
func (s *Supplier) ContractorRemainingBalance() *decimal.Decimal {
	if s.ContractorBudget == nil {
		return nil
	}
	remaining := s.ContractorBudget.Sub(s.ContractorTotalPaid)
	return &remaining
}

// IsBudgetRunningLow reports whether the remaining balance dropped under
// 20% of the budget. False when no budget is set.
func (s *Supplier) IsBudgetRunningLow() bool {
	remaining := s.ContractorRemainingBalance()
	if remaining == nil || s.ContractorBudget.IsZero() {
		return false
	}
	threshold := s.ContractorBudget.Mul(decimal.NewFromFloat(0.20))
	return remaining.LessThan(threshold)
}
