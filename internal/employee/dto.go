package employee

import (
	"errors"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// CreateEmployeeDTO is the request payload for registering an employee.
type CreateEmployeeDTO struct {
	FullName     string `json:"full_name" validate:"required,min=3,max=100"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"required,len=10"`
	Role         string `json:"role" validate:"required,oneof=Admin Manager Employee"`
	DepartmentID int64  `json:"department_id" validate:"required"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
	LeaveBalance *int   `json:"leave_balance,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if l := len(strings.TrimSpace(dto.FullName)); l < 3 || l > 100 {
		return errors.New("full name must be between 3 and 100 characters")
	}
	if !strings.Contains(dto.Email, "@") {
		return errors.New("a valid email is required")
	}
	if !phonePattern.MatchString(dto.PhoneNumber) {
		return errors.New("phone number must be exactly 10 digits")
	}
	switch dto.Role {
	case RoleAdmin, RoleManager, RoleEmployee:
	default:
		return errors.New("role must be Admin, Manager or Employee")
	}
	if dto.DepartmentID <= 0 {
		return errors.New("department_id is required")
	}
	if dto.LeaveBalance != nil && *dto.LeaveBalance < 0 {
		return errors.New("leave balance cannot be negative")
	}
	return nil
}

// UpdateEmployeeDTO carries a partial update; nil fields are left untouched.
// LeaveBalance is deliberately absent: balances move only through the leave
// ledger.
type UpdateEmployeeDTO struct {
	FullName     *string `json:"full_name,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	Role         *string `json:"role,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	ManagerID    *int64  `json:"manager_id,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.FullName != nil {
		if l := len(strings.TrimSpace(*dto.FullName)); l < 3 || l > 100 {
			return errors.New("full name must be between 3 and 100 characters")
		}
	}
	if dto.PhoneNumber != nil && !phonePattern.MatchString(*dto.PhoneNumber) {
		return errors.New("phone number must be exactly 10 digits")
	}
	if dto.Role != nil {
		switch *dto.Role {
		case RoleAdmin, RoleManager, RoleEmployee:
		default:
			return errors.New("role must be Admin, Manager or Employee")
		}
	}
	if dto.DepartmentID != nil && *dto.DepartmentID <= 0 {
		return errors.New("department_id must be positive")
	}
	return nil
}
