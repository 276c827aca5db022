package payroll

import (
	"testing"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func presentDays(n int) []Attendance {
	out := make([]Attendance, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Attendance{EmployeeID: uuid.New(), Date: day(i), Status: AttendancePresent})
	}
	return out
}

func TestComputeWeek_FullWeekNoDeductions(t *testing.T) {
	c := ComputeWeek(decimal.NewFromInt(10000), presentDays(5), nil)

	assert.Equal(t, 5, c.DaysWorked)
	assert.Equal(t, "50000", c.TotalSalary.String())
	assert.True(t, c.LateDeduction.IsZero())
	assert.True(t, c.TotalAdvances.IsZero())
	assert.Equal(t, "50000", c.NetPayment.String())
}

func TestComputeWeek_LateHoursAndAdvance(t *testing.T) {
	attendance := presentDays(4)
	attendance = append(attendance, Attendance{
		EmployeeID: uuid.New(),
		Date:       day(4),
		Status:     AttendanceLate,
		LateHours:  decimal.NewFromInt(2),
	})
	advances := []Advance{{EmployeeID: uuid.New(), Date: day(2), Amount: decimal.NewFromInt(5000)}}

	c := ComputeWeek(decimal.NewFromInt(10000), attendance, advances)

	// Late day still counts as worked; 2/8 of the daily salary is deducted.
	assert.Equal(t, 5, c.DaysWorked)
	assert.Equal(t, "50000", c.TotalSalary.String())
	assert.Equal(t, "2500", c.LateDeduction.String())
	assert.Equal(t, "5000", c.TotalAdvances.String())
	assert.Equal(t, "42500", c.NetPayment.String())
}

func TestComputeWeek_AbsentDaysDoNotCount(t *testing.T) {
	attendance := []Attendance{
		{EmployeeID: uuid.New(), Date: day(0), Status: AttendancePresent},
		{EmployeeID: uuid.New(), Date: day(1), Status: AttendanceAbsent},
		{EmployeeID: uuid.New(), Date: day(2), Status: AttendanceAbsent},
	}

	c := ComputeWeek(decimal.NewFromInt(10000), attendance, nil)

	assert.Equal(t, 1, c.DaysWorked)
	assert.Equal(t, "10000", c.TotalSalary.String())
}

func TestComputeWeek_OverAdvancedClampsAtZero(t *testing.T) {
	advances := []Advance{{EmployeeID: uuid.New(), Date: day(1), Amount: decimal.NewFromInt(15000)}}

	c := ComputeWeek(decimal.NewFromInt(10000), presentDays(1), advances)

	assert.Equal(t, "15000", c.TotalAdvances.String())
	assert.True(t, c.NetPayment.IsZero())
}

func TestComputeWeek_ZeroSalaryHasNoLateDeduction(t *testing.T) {
	attendance := []Attendance{{
		EmployeeID: uuid.New(),
		Date:       day(0),
		Status:     AttendanceLate,
		LateHours:  decimal.NewFromInt(3),
	}}

	c := ComputeWeek(decimal.Zero, attendance, nil)

	assert.Equal(t, 1, c.DaysWorked)
	assert.True(t, c.TotalSalary.IsZero())
	assert.True(t, c.LateDeduction.IsZero())
	assert.True(t, c.NetPayment.IsZero())
}

func TestComputeWeek_EmptyWeek(t *testing.T) {
	c := ComputeWeek(decimal.NewFromInt(10000), nil, nil)

	assert.Equal(t, 0, c.DaysWorked)
	assert.True(t, c.TotalSalary.IsZero())
	assert.True(t, c.NetPayment.IsZero())
}

func TestNewEmployeePayment(t *testing.T) {
	week := valueobject.NormalizeWeekStart(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC))
	c := ComputeWeek(decimal.NewFromInt(10000), presentDays(5), nil)

	p := NewEmployeePayment(uuid.New(), uuid.New(), week, c)

	assert.Equal(t, week.Date(), p.WeekStartDate)
	assert.Equal(t, 5, p.DaysWorked)
	assert.Equal(t, "50000", p.NetPayment.String())
	assert.Nil(t, p.ExpenseID)
	assert.Nil(t, p.PaidAt)
}

func TestEmployeePayment_ApplyComputation_KeepsIdentityFields(t *testing.T) {
	week := valueobject.NormalizeWeekStart(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC))
	p := NewEmployeePayment(uuid.New(), uuid.New(), week, ComputeWeek(decimal.NewFromInt(10000), presentDays(5), nil))
	expenseID := uuid.New()
	p.LinkExpense(expenseID)

	// Recompute with one fewer day
	p.ApplyComputation(ComputeWeek(decimal.NewFromInt(10000), presentDays(4), nil))

	assert.Equal(t, 4, p.DaysWorked)
	assert.Equal(t, "40000", p.NetPayment.String())
	require.NotNil(t, p.ExpenseID)
	assert.Equal(t, expenseID, *p.ExpenseID)
	assert.Equal(t, week.Date(), p.WeekStartDate)
}

func TestEmployeePayment_MarkPaid(t *testing.T) {
	week := valueobject.NormalizeWeekStart(time.Now())
	p := NewEmployeePayment(uuid.New(), uuid.New(), week, WeekComputation{})
	require.Nil(t, p.PaidAt)

	p.MarkPaid()
	assert.NotNil(t, p.PaidAt)
}
