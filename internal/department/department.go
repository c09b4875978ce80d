package department

import (
	"errors"
	"strings"

	"github.com/hrcore/employee-management/internal"
)

type Department struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;uniqueIndex"`
	ManagerID *int64 `json:"manager_id,omitempty" gorm:"column:manager_id"`
}

func (Department) TableName() string {
	return "departments"
}

type CreateDepartmentDTO struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

func (dto CreateDepartmentDTO) Validate() error {
	if l := len(strings.TrimSpace(dto.Name)); l < 2 || l > 100 {
		return errors.New("department name must be between 2 and 100 characters")
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name      *string `json:"name,omitempty"`
	ManagerID *int64  `json:"manager_id,omitempty"`
}

func (dto UpdateDepartmentDTO) Validate() error {
	if dto.Name != nil {
		if l := len(strings.TrimSpace(*dto.Name)); l < 2 || l > 100 {
			return errors.New("department name must be between 2 and 100 characters")
		}
	}
	return nil
}

var (
	ErrDepartmentNotFound = internal.NewNotFoundError("department not found", internal.ErrCodeDepartmentNotFound)
	ErrNameTaken          = internal.NewConflictError("a department with this name already exists", internal.ErrCodeDepartmentNameTaken)
	ErrDepartmentNotEmpty = internal.NewConflictError("department still has employees assigned", internal.ErrCodeDepartmentNotEmpty)
)
