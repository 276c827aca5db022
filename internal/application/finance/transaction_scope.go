package finance

import (
	"context"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/accounting"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/alert"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/certification"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/contract"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/partner"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
)

// TransactionScope provides transactional access to the reconciliation
// repositories. Every mutating core operation runs as exactly one Execute
// call: all repository operations inside fn share one database transaction
// and commit or roll back atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the repositories bound to the
// current transaction. Contract rows loaded through ContractRepo's ForUpdate
// methods stay locked until the transaction ends.
type TransactionalRepositories interface {
	ContractRepo() contract.Repository
	ExpenseRepo() expense.Repository
	AccountingRepo() accounting.Repository
	SupplierRepo() partner.SupplierRepository
	CertificationRepo() certification.Repository
	EmployeeRepo() payroll.EmployeeRepository
	AttendanceRepo() payroll.AttendanceRepository
	AdvanceRepo() payroll.AdvanceRepository
	PaymentRepo() payroll.PaymentRepository
	AlertRepo() alert.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn against the configured repositories, no transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
