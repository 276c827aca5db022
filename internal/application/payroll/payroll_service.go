package payroll

import (
	"context"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/application/finance"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/identity"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayrollService computes the weekly net pay for active employees. The
// computation is an idempotent recompute: each employee-week is upserted on
// its natural key, so re-running a week with unchanged attendance and
// advances rewrites the same rows with the same figures and creates no
// duplicate payments or expenses.
type PayrollService struct {
	scope       finance.TransactionScope
	autoCreator *finance.ExpenseAutoCreator
	logger      *zap.Logger
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(scope finance.TransactionScope, autoCreator *finance.ExpenseAutoCreator, logger *zap.Logger) *PayrollService {
	return &PayrollService{
		scope:       scope,
		autoCreator: autoCreator,
		logger:      logger.Named("payroll"),
	}
}

// CalculateWeekRequest asks for a weekly payroll run
type CalculateWeekRequest struct {
	// Date is any day of the target week; it is normalized to its Monday.
	Date           time.Time
	OrganizationID uuid.UUID
	// WorkID optionally restricts the run to one work's employees.
	WorkID         *uuid.UUID
	CreateExpenses bool
	Actor          identity.Actor
}

// PaymentResult is the outcome for one employee in the batch
type PaymentResult struct {
	EmployeeID    uuid.UUID       `json:"employee_id"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	DaysWorked    int             `json:"days_worked"`
	TotalSalary   decimal.Decimal `json:"total_salary"`
	LateDeduction decimal.Decimal `json:"late_deduction"`
	TotalAdvances decimal.Decimal `json:"total_advances"`
	NetPayment    decimal.Decimal `json:"net_payment"`
	ExpenseID     *uuid.UUID      `json:"expense_id,omitempty"`
}

// CalculateWeekResult summarizes a weekly payroll run
type CalculateWeekResult struct {
	WeekStartDate time.Time       `json:"week_start_date"`
	Payments      []PaymentResult `json:"payments"`
	Failed        int             `json:"failed"`
}

// CalculateWeek runs the weekly payroll. Each employee's payment is computed
// and upserted in its own transaction, so one employee's failure does not
// lose the others. Expense auto-creation is the non-critical tail: it runs
// after the payment committed, and its failure is logged without undoing
// the payment.
func (s *PayrollService) CalculateWeek(ctx context.Context, req CalculateWeekRequest) (*CalculateWeekResult, error) {
	if !req.Actor.CanRunPayroll() {
		return nil, shared.ErrForbidden
	}
	if req.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payroll date is required")
	}
	week := valueobject.NormalizeWeekStart(req.Date)

	var employees []payroll.Employee
	err := s.scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		var err error
		employees, err = repos.EmployeeRepo().FindActive(ctx, req.OrganizationID, req.WorkID)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &CalculateWeekResult{WeekStartDate: week.Date()}
	for i := range employees {
		emp := employees[i]
		payment, err := s.calculateEmployeeWeek(ctx, &emp, week)
		if err != nil {
			result.Failed++
			s.logger.Error("payroll calculation failed for employee",
				zap.String("employee_id", emp.ID.String()),
				zap.String("week", week.String()),
				zap.Error(err),
			)
			continue
		}

		if req.CreateExpenses && payment.ExpenseID == nil {
			if err := s.createPaymentExpense(ctx, payment, &emp); err != nil {
				s.logger.Warn("payroll expense creation failed, payment kept",
					zap.String("employee_id", emp.ID.String()),
					zap.String("payment_id", payment.ID.String()),
					zap.Error(err),
				)
			}
		}

		result.Payments = append(result.Payments, PaymentResult{
			EmployeeID:    emp.ID,
			PaymentID:     payment.ID,
			DaysWorked:    payment.DaysWorked,
			TotalSalary:   payment.TotalSalary,
			LateDeduction: payment.LateDeduction,
			TotalAdvances: payment.TotalAdvances,
			NetPayment:    payment.NetPayment,
			ExpenseID:     payment.ExpenseID,
		})
	}
	return result, nil
}

// calculateEmployeeWeek computes and upserts one employee-week atomically.
func (s *PayrollService) calculateEmployeeWeek(ctx context.Context, emp *payroll.Employee, week valueobject.WeekStart) (*payroll.EmployeePayment, error) {
	var payment *payroll.EmployeePayment
	err := s.scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		attendance, err := repos.AttendanceRepo().FindByEmployeeBetween(ctx, emp.ID, week.Date(), week.End())
		if err != nil {
			return err
		}
		advances, err := repos.AdvanceRepo().FindByEmployeeBetween(ctx, emp.ID, week.Date(), week.End())
		if err != nil {
			return err
		}

		computation := payroll.ComputeWeek(emp.DailySalary, attendance, advances)

		payment, err = repos.PaymentRepo().FindByEmployeeWeek(ctx, emp.ID, week.Date())
		if err != nil {
			return err
		}
		if payment == nil {
			payment = payroll.NewEmployeePayment(emp.OrganizationID, emp.ID, week, computation)
		} else {
			payment.ApplyComputation(computation)
		}
		return repos.PaymentRepo().Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// createPaymentExpense is the non-critical tail: a separate transaction that
// creates the VAL expense and links it onto the payment.
func (s *PayrollService) createPaymentExpense(ctx context.Context, payment *payroll.EmployeePayment, emp *payroll.Employee) error {
	return s.scope.Execute(ctx, func(repos finance.TransactionalRepositories) error {
		_, err := s.autoCreator.FromPayment(ctx, repos, payment, emp)
		return err
	})
}
