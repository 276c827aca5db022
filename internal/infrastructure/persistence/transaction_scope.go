package persistence

import (
	"context"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/finance"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/accounting"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/alert"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/certification"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/contract"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/partner"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
	"gorm.io/gorm"
)

// GormTransactionScope implements finance.TransactionScope using GORM
// transactions. Everything the callback does through the provided
// repositories shares one transaction; row locks taken through the contract
// repository's ForUpdate methods are held until commit or rollback.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos finance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories bound
// to the current transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ContractRepo() contract.Repository {
	return NewGormContractRepository(r.tx)
}

func (r *gormTransactionalRepositories) ExpenseRepo() expense.Repository {
	return NewGormExpenseRepository(r.tx)
}

func (r *gormTransactionalRepositories) AccountingRepo() accounting.Repository {
	return NewGormAccountingRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormTransactionalRepositories) CertificationRepo() certification.Repository {
	return NewGormCertificationRepository(r.tx)
}

func (r *gormTransactionalRepositories) EmployeeRepo() payroll.EmployeeRepository {
	return NewGormEmployeeRepository(r.tx)
}

func (r *gormTransactionalRepositories) AttendanceRepo() payroll.AttendanceRepository {
	return NewGormAttendanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) AdvanceRepo() payroll.AdvanceRepository {
	return NewGormAdvanceRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentRepo() payroll.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormTransactionalRepositories) AlertRepo() alert.Repository {
	return NewGormAlertRepository(r.tx)
}

var _ finance.TransactionScope = (*GormTransactionScope)(nil)
var _ finance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
