package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/payroll"
	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements payroll.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	var employee payroll.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindActive returns active employees, optionally restricted to a work
func (r *GormEmployeeRepository) FindActive(ctx context.Context, organizationID uuid.UUID, workID *uuid.UUID) ([]payroll.Employee, error) {
	query := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", organizationID, true)
	if workID != nil {
		query = query.Where("work_id = ?", *workID)
	}
	var employees []payroll.Employee
	if err := query.Order("created_at ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Save persists an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *payroll.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

var _ payroll.EmployeeRepository = (*GormEmployeeRepository)(nil)

// GormAttendanceRepository implements payroll.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByEmployeeBetween returns attendance entries for an employee in a
// date range, inclusive
func (r *GormAttendanceRepository) FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]payroll.Attendance, error) {
	var entries []payroll.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, from, to).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Save persists an attendance entry
func (r *GormAttendanceRepository) Save(ctx context.Context, attendance *payroll.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

var _ payroll.AttendanceRepository = (*GormAttendanceRepository)(nil)

// GormAdvanceRepository implements payroll.AdvanceRepository using GORM
type GormAdvanceRepository struct {
	db *gorm.DB
}

// NewGormAdvanceRepository creates a new GormAdvanceRepository
func NewGormAdvanceRepository(db *gorm.DB) *GormAdvanceRepository {
	return &GormAdvanceRepository{db: db}
}

// FindByEmployeeBetween returns salary advances for an employee in a date
// range, inclusive
func (r *GormAdvanceRepository) FindByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]payroll.Advance, error) {
	var advances []payroll.Advance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, from, to).
		Order("date ASC").
		Find(&advances).Error
	if err != nil {
		return nil, err
	}
	return advances, nil
}

// Save persists a salary advance
func (r *GormAdvanceRepository) Save(ctx context.Context, advance *payroll.Advance) error {
	return r.db.WithContext(ctx).Save(advance).Error
}

var _ payroll.AdvanceRepository = (*GormAdvanceRepository)(nil)

// GormPaymentRepository implements payroll.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeePayment, error) {
	var payment payroll.EmployeePayment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByEmployeeWeek returns the payment for the composite natural key, or
// nil when the week has not been calculated yet
func (r *GormPaymentRepository) FindByEmployeeWeek(ctx context.Context, employeeID uuid.UUID, weekStartDate time.Time) (*payroll.EmployeePayment, error) {
	var payment payroll.EmployeePayment
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND week_start_date = ?", employeeID, weekStartDate).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// FindByWeek returns all payments of an organization for a week
func (r *GormPaymentRepository) FindByWeek(ctx context.Context, organizationID uuid.UUID, weekStartDate time.Time) ([]payroll.EmployeePayment, error) {
	var payments []payroll.EmployeePayment
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND week_start_date = ?", organizationID, weekStartDate).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// Save persists a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *payroll.EmployeePayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

var _ payroll.PaymentRepository = (*GormPaymentRepository)(nil)
