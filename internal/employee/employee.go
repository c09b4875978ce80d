package employee

import (
	"github.com/hrcore/employee-management/internal"
)

// Role names mirror the authorization roles; an employee's role decides which
// dashboard and approval scope they get.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// DefaultLeaveAllotment is the yearly leave balance a new employee starts with.
const DefaultLeaveAllotment = 20

// Employee is the directory record. LeaveBalance is the denormalized
// remaining-days counter; it is only mutated by the leave ledger, everything
// else treats it as read-only.
type Employee struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	FullName     string `json:"full_name" gorm:"column:full_name;not null"`
	Email        string `json:"email" gorm:"not null;uniqueIndex"`
	PhoneNumber  string `json:"phone_number" gorm:"column:phone_number"`
	Role         string `json:"role" gorm:"not null;default:Employee"`
	IsActive     bool   `json:"is_active" gorm:"column:is_active;not null;default:true"`
	DepartmentID int64  `json:"department_id" gorm:"column:department_id;not null"`
	ManagerID    *int64 `json:"manager_id,omitempty" gorm:"column:manager_id"`
	UserID       *int64 `json:"user_id,omitempty" gorm:"column:user_id"`
	LeaveBalance int    `json:"leave_balance" gorm:"column:leave_balance;not null;default:20"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) IsManagerRole() bool {
	return e.Role == RoleManager || e.Role == RoleAdmin
}

var (
	ErrEmployeeNotFound   = internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	ErrEmailTaken         = internal.NewConflictError("an employee with this email already exists", internal.ErrCodeEmployeeEmailTaken)
	ErrDepartmentNotFound = internal.NewValidationError("department does not exist", internal.ErrCodeDepartmentNotFound)
	ErrManagerNotFound    = internal.NewValidationError("manager does not exist", internal.ErrCodeEmployeeNotFound)
)
