package finance

import (
	"context"
	"errors"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/accounting"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
)

// AccountingService creates the one ledger entry a validated expense gets.
type AccountingService struct{}

// NewAccountingService creates a new AccountingService
func NewAccountingService() *AccountingService {
	return &AccountingService{}
}

// RecordIfAbsent looks up the accounting record for the expense and returns
// it unchanged when present; otherwise it snapshots the expense's monetary
// fields and persists a new record. The returned bool reports whether a
// record was created. Runs inside the caller's transaction; the unique index
// on expense_id is the final guard against concurrent creation.
func (s *AccountingService) RecordIfAbsent(ctx context.Context, repo accounting.Repository, e *expense.Expense) (*accounting.Record, bool, error) {
	existing, err := repo.FindByExpenseID(ctx, e.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	record := accounting.NewRecordFromExpense(e)
	if err := repo.Create(ctx, record); err != nil {
		return nil, false, err
	}
	return record, true, nil
}
