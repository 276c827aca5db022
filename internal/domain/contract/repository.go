package contract

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for contracts
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	// FindByIDForUpdate loads the contract holding a row-level lock for the
	// duration of the enclosing transaction. All balance mutations go
	// through this method so concurrent validations serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Contract, error)
	// FindEligibleForUpdate returns the unblocked, unfinished contracts for
	// a (supplier, work) pair, row-locked, for eligible-contract selection.
	FindEligibleForUpdate(ctx context.Context, supplierID, workID uuid.UUID) ([]*Contract, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Contract, error)
	Save(ctx context.Context, contract *Contract) error
}
