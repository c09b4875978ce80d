package postgres

import (
	"errors"

	"github.com/hrcore/employee-management/internal/department"
	"gorm.io/gorm"
)

// DepartmentRepository implements the department.Repository interface using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(dep *department.Department) error {
	return r.db.Create(dep).Error
}

func (r *DepartmentRepository) GetByID(id int64) (*department.Department, error) {
	var dep department.Department
	err := r.db.Where("id = ?", id).First(&dep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dep, nil
}

func (r *DepartmentRepository) List() ([]*department.Department, error) {
	var departments []*department.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) Update(dep *department.Department) error {
	return r.db.Save(dep).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Delete(&department.Department{}, id).Error
}

func (r *DepartmentRepository) NameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&department.Department{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *DepartmentRepository) EmployeeCount(id int64) (int64, error) {
	var count int64
	err := r.db.Table("employees").Where("department_id = ?", id).Count(&count).Error
	return count, err
}
