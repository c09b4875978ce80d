package postgres

import (
	"errors"

	"github.com/hrcore/employee-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByUserID(userID int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("user_id = ?", userID).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) List(limit, offset int) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) ListByManager(managerID int64) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("manager_id = ?", managerID).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(emp *employee.Employee) error {
	return r.db.Save(emp).Error
}

func (r *EmployeeRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) DepartmentExists(departmentID int64) (bool, error) {
	var count int64
	err := r.db.Table("departments").Where("id = ?", departmentID).Count(&count).Error
	return count > 0, err
}
