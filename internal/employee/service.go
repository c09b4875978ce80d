package employee

import (
	"log/slog"

	"github.com/hrcore/employee-management/internal"
)

// Repository defines the data access methods for employees.
type Repository interface {
	Create(emp *Employee) error
	GetByID(id int64) (*Employee, error)
	GetByUserID(userID int64) (*Employee, error)
	List(limit, offset int) ([]*Employee, error)
	ListByManager(managerID int64) ([]*Employee, error)
	Update(emp *Employee) error
	EmailExists(email string) (bool, error)
	DepartmentExists(departmentID int64) (bool, error)
}

// Service handles the employee directory business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err, "email", dto.Email)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	taken, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		s.logger.Error("failed to check employee email", "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	exists, err := s.repo.DepartmentExists(dto.DepartmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", dto.DepartmentID)
		return nil, internal.NewInternalError("failed to create employee", err)
	}
	if !exists {
		return nil, ErrDepartmentNotFound
	}

	if dto.ManagerID != nil {
		if _, err := s.repo.GetByID(*dto.ManagerID); err != nil {
			return nil, ErrManagerNotFound
		}
	}

	balance := DefaultLeaveAllotment
	if dto.LeaveBalance != nil {
		balance = *dto.LeaveBalance
	}

	emp := &Employee{
		FullName:     dto.FullName,
		Email:        dto.Email,
		PhoneNumber:  dto.PhoneNumber,
		Role:         dto.Role,
		IsActive:     true,
		DepartmentID: dto.DepartmentID,
		ManagerID:    dto.ManagerID,
		LeaveBalance: balance,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"role", emp.Role,
		"department_id", emp.DepartmentID)

	return emp, nil
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) GetByUserID(userID int64) (*Employee, error) {
	emp, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) List(limit, offset int) ([]*Employee, error) {
	employees, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return employees, nil
}

// Team lists the direct reports of a manager.
func (s *Service) Team(managerID int64) ([]*Employee, error) {
	if _, err := s.repo.GetByID(managerID); err != nil {
		return nil, ErrEmployeeNotFound
	}
	team, err := s.repo.ListByManager(managerID)
	if err != nil {
		s.logger.Error("failed to list team", "error", err, "manager_id", managerID)
		return nil, internal.NewInternalError("failed to list team", err)
	}
	return team, nil
}

func (s *Service) Update(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	if dto.FullName != nil {
		emp.FullName = *dto.FullName
	}
	if dto.PhoneNumber != nil {
		emp.PhoneNumber = *dto.PhoneNumber
	}
	if dto.Role != nil {
		emp.Role = *dto.Role
	}
	if dto.IsActive != nil {
		emp.IsActive = *dto.IsActive
	}
	if dto.DepartmentID != nil {
		exists, err := s.repo.DepartmentExists(*dto.DepartmentID)
		if err != nil {
			return nil, internal.NewInternalError("failed to update employee", err)
		}
		if !exists {
			return nil, ErrDepartmentNotFound
		}
		emp.DepartmentID = *dto.DepartmentID
	}
	if dto.ManagerID != nil {
		if _, err := s.repo.GetByID(*dto.ManagerID); err != nil {
			return nil, ErrManagerNotFound
		}
		emp.ManagerID = dto.ManagerID
	}

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", emp.ID)
	return emp, nil
}

// Deactivate marks an employee inactive instead of deleting the row; leave
// history and ledger entries keep referring to it.
func (s *Service) Deactivate(id int64) error {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return ErrEmployeeNotFound
	}
	if !emp.IsActive {
		return nil
	}
	emp.IsActive = false
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to deactivate employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to deactivate employee", err)
	}
	s.logger.Info("employee deactivated", "employee_id", id)
	return nil
}

// LinkUser attaches an auth user to an employee record.
func (s *Service) LinkUser(employeeID, userID int64) error {
	emp, err := s.repo.GetByID(employeeID)
	if err != nil {
		return ErrEmployeeNotFound
	}
	emp.UserID = &userID
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to link user", "error", err, "employee_id", employeeID, "user_id", userID)
		return internal.NewInternalError("failed to link user", err)
	}
	s.logger.Info("employee linked to user", "employee_id", employeeID, "user_id", userID)
	return nil
}
