package finance

import (
	"context"
	"fmt"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/certification"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/expense"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
)

// ExpenseAutoCreator turns a payroll payment or contractor certification
// into its backing PENDING expense, exactly once per source record. Callers
// enforce the "only when expense_id is still nil" guard; the created expense
// id is linked back onto the source record in the same transaction.
type ExpenseAutoCreator struct{}

// NewExpenseAutoCreator creates a new ExpenseAutoCreator
func NewExpenseAutoCreator() *ExpenseAutoCreator {
	return &ExpenseAutoCreator{}
}

// FromPayment builds the VAL-type expense for a weekly employee payment and
// links it onto the payment. The employee must be assigned to a work.
func (c *ExpenseAutoCreator) FromPayment(ctx context.Context, repos TransactionalRepositories, payment *payroll.EmployeePayment, employee *payroll.Employee) (*expense.Expense, error) {
	if payment.ExpenseID != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment already has a linked expense")
	}
	if employee.WorkID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee has no assigned work for payroll expense")
	}
	if !payment.NetPayment.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Net payment is zero, no expense to create")
	}

	description := fmt.Sprintf("Payroll %s %s, week %s",
		employee.FirstName, employee.LastName, payment.WeekStartDate.Format("2006-01-02"))
	e, err := expense.NewExpense(
		payment.OrganizationID,
		*employee.WorkID,
		nil,
		payment.NetPayment,
		valueobject.DefaultCurrency,
		expense.DocumentTypeVAL,
		description,
		payment.WeekStartDate,
	)
	if err != nil {
		return nil, err
	}
	if err := repos.ExpenseRepo().Save(ctx, e); err != nil {
		return nil, err
	}

	payment.LinkExpense(e.ID)
	if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
		return nil, err
	}
	return e, nil
}

// FromCertification builds the VAL-type expense for a contractor
// certification and links it onto the certification.
func (c *ExpenseAutoCreator) FromCertification(ctx context.Context, repos TransactionalRepositories, cert *certification.Certification) (*expense.Expense, error) {
	if cert.ExpenseID != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Certification already has a linked expense")
	}

	supplierID := cert.SupplierID
	description := fmt.Sprintf("Contractor certification, week %s", cert.WeekStartDate.Format("2006-01-02"))
	e, err := expense.NewExpense(
		cert.OrganizationID,
		cert.WorkID,
		&supplierID,
		cert.Amount,
		valueobject.DefaultCurrency,
		expense.DocumentTypeVAL,
		description,
		cert.WeekStartDate,
	)
	if err != nil {
		return nil, err
	}
	e.AssignContract(cert.ContractID)
	if err := repos.ExpenseRepo().Save(ctx, e); err != nil {
		return nil, err
	}

	cert.LinkExpense(e.ID)
	if err := repos.CertificationRepo().Save(ctx, cert); err != nil {
		return nil, err
	}
	return e, nil
}
