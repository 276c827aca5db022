package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmployeeRepository defines persistence operations for employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	// FindActive returns active employees, optionally restricted to a work.
	FindActive(ctx context.Context, organizationID uuid.UUID, workID *uuid.UUID) ([]Employee, error)
	Save(ctx context.Context, employee *Employee) error
}

// AttendanceRepository defines persistence operations for attendance entries
type AttendanceRepository interface {
	FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]Attendance, error)
	Save(ctx context.Context, attendance *Attendance) error
}

// AdvanceRepository defines persistence operations for salary advances
type AdvanceRepository interface {
	FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]Advance, error)
	Save(ctx context.Context, advance *Advance) error
}

// PaymentRepository defines persistence operations for weekly payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeePayment, error)
	// FindByEmployeeWeek returns the payment for the composite natural key,
	// or nil when the week has not been calculated yet.
	FindByEmployeeWeek(ctx context.Context, employeeID uuid.UUID, weekStartDate time.Time) (*EmployeePayment, error)
	FindByWeek(ctx context.Context, organizationID uuid.UUID, weekStartDate time.Time) ([]EmployeePayment, error)
	Save(ctx context.Context, payment *EmployeePayment) error
}
