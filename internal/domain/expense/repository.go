package expense

import (
	"context"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for expenses
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByWork(ctx context.Context, workID uuid.UUID, filter shared.Filter) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	// SumValidatedByContract totals the amounts of currently VALIDATED
	// expenses charged to a contract. Used by balance-conservation checks
	// and the work totals rollup.
	SumValidatedByContract(ctx context.Context, contractID uuid.UUID) (decimal.Decimal, error)
	SumValidatedByWork(ctx context.Context, workID uuid.UUID) (decimal.Decimal, error)
}
