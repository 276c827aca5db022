package payroll

import (
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// hoursPerDay is the proration base for late-hour deductions
var hoursPerDay = decimal.NewFromInt(8)

// EmployeePayment is the weekly net-pay row for one employee. Unique per
// (employee_id, week_start_date); recomputation overwrites the computed
// fields in place rather than inserting a second row.
type EmployeePayment struct {
	shared.OrgAggregateRoot
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_payments_employee_week"`
	WeekStartDate time.Time       `gorm:"not null;uniqueIndex:idx_payments_employee_week"`
	DaysWorked    int             `gorm:"not null"`
	TotalSalary   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LateHours     decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	LateDeduction decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalAdvances decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	NetPayment    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ExpenseID     *uuid.UUID      `gorm:"type:uuid;index"`
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (EmployeePayment) TableName() string {
	return "employee_payments"
}

// WeekComputation holds the derived payroll figures for one employee-week
type WeekComputation struct {
	DaysWorked    int
	TotalSalary   decimal.Decimal
	LateHours     decimal.Decimal
	LateDeduction decimal.Decimal
	TotalAdvances decimal.Decimal
	NetPayment    decimal.Decimal
}

// ComputeWeek derives the weekly figures from attendance and advances.
// days_worked counts PRESENT and LATE days; the late deduction prorates the
// daily salary over an eight-hour day; the net payment is clamped at zero so
// over-advanced weeks never produce a negative payment.
func ComputeWeek(dailySalary decimal.Decimal, attendance []Attendance, advances []Advance) WeekComputation {
	var c WeekComputation
	c.TotalSalary = decimal.Zero
	c.LateHours = decimal.Zero
	c.LateDeduction = decimal.Zero
	c.TotalAdvances = decimal.Zero

	for _, a := range attendance {
		if a.Status.CountsAsWorked() {
			c.DaysWorked++
		}
		if a.Status == AttendanceLate {
			c.LateHours = c.LateHours.Add(a.LateHours)
		}
	}
	c.TotalSalary = dailySalary.Mul(decimal.NewFromInt(int64(c.DaysWorked)))
	if dailySalary.IsPositive() {
		c.LateDeduction = c.LateHours.Div(hoursPerDay).Mul(dailySalary)
	}
	for _, adv := range advances {
		c.TotalAdvances = c.TotalAdvances.Add(adv.Amount)
	}

	net := c.TotalSalary.Sub(c.LateDeduction).Sub(c.TotalAdvances)
	if net.IsNegative() {
		net = decimal.Zero
	}
	c.NetPayment = net
	return c
}

// NewEmployeePayment creates the payment row for an employee-week
func NewEmployeePayment(organizationID, employeeID uuid.UUID, week valueobject.WeekStart, c WeekComputation) *EmployeePayment {
	p := &EmployeePayment{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		EmployeeID:       employeeID,
		WeekStartDate:    week.Date(),
	}
	p.ApplyComputation(c)
	return p
}

// ApplyComputation overwrites the computed fields with a fresh recompute.
// The identity fields (employee, week, expense link, paid mark) are kept.
func (p *EmployeePayment) ApplyComputation(c WeekComputation) {
	p.DaysWorked = c.DaysWorked
	p.TotalSalary = c.TotalSalary
	p.LateHours = c.LateHours
	p.LateDeduction = c.LateDeduction
	p.TotalAdvances = c.TotalAdvances
	p.NetPayment = c.NetPayment
	p.UpdatedAt = time.Now()
}

// LinkExpense records the auto-created expense backing this payment
func (p *EmployeePayment) LinkExpense(expenseID uuid.UUID) {
	p.ExpenseID = &expenseID
	p.UpdatedAt = time.Now()
}

// MarkPaid stamps the payment as settled
func (p *EmployeePayment) MarkPaid() {
	now := time.Now()
	p.PaidAt = &now
	p.UpdatedAt = now
}
