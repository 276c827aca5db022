package payroll

import (
	"time"

	"github.com/Augusto-pmd/pmd-backend-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is a worker on the weekly payroll
type Employee struct {
	shared.OrgAggregateRoot
	FirstName   string          `gorm:"type:varchar(100);not null"`
	LastName    string          `gorm:"type:varchar(100);not null"`
	WorkID      *uuid.UUID      `gorm:"type:uuid;index"`
	DailySalary decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// AttendanceStatus records how an employee's day went
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// CountsAsWorked reports whether the day counts toward days_worked
func (s AttendanceStatus) CountsAsWorked() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// Attendance is one employee-day attendance entry
type Attendance struct {
	shared.BaseEntity
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date"`
	Date       time.Time        `gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Status     AttendanceStatus `gorm:"type:varchar(10);not null"`
	LateHours  decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Attendance) TableName() string {
	return "attendances"
}

// Advance is a salary advance deducted from the week's net payment
type Advance struct {
	shared.BaseEntity
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date       time.Time       `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes      string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Advance) TableName() string {
	return "advances"
}
