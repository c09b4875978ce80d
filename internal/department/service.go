package department

import (
	"log/slog"

	"github.com/hrcore/employee-management/internal"
)

// Repository defines the data access methods for departments.
type Repository interface {
	Create(dep *Department) error
	GetByID(id int64) (*Department, error)
	List() ([]*Department, error)
	Update(dep *Department) error
	Delete(id int64) error
	NameExists(name string) (bool, error)
	EmployeeCount(id int64) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	taken, err := s.repo.NameExists(dto.Name)
	if err != nil {
		s.logger.Error("failed to check department name", "error", err)
		return nil, internal.NewInternalError("failed to create department", err)
	}
	if taken {
		return nil, ErrNameTaken
	}

	dep := &Department{Name: dto.Name, ManagerID: dto.ManagerID}
	if err := s.repo.Create(dep); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create department", err)
	}

	s.logger.Info("department created", "department_id", dep.ID, "name", dep.Name)
	return dep, nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	dep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDepartmentNotFound
	}
	return dep, nil
}

func (s *Service) List() ([]*Department, error) {
	departments, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}
	return departments, nil
}

func (s *Service) Update(id int64, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDepartmentNotFound
	}

	if dto.Name != nil && *dto.Name != dep.Name {
		taken, err := s.repo.NameExists(*dto.Name)
		if err != nil {
			return nil, internal.NewInternalError("failed to update department", err)
		}
		if taken {
			return nil, ErrNameTaken
		}
		dep.Name = *dto.Name
	}
	if dto.ManagerID != nil {
		dep.ManagerID = dto.ManagerID
	}

	if err := s.repo.Update(dep); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, internal.NewInternalError("failed to update department", err)
	}

	s.logger.Info("department updated", "department_id", dep.ID)
	return dep, nil
}

// Delete removes an empty department; one that still has employees is refused.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrDepartmentNotFound
	}

	count, err := s.repo.EmployeeCount(id)
	if err != nil {
		s.logger.Error("failed to count department employees", "error", err, "department_id", id)
		return internal.NewInternalError("failed to delete department", err)
	}
	if count > 0 {
		return ErrDepartmentNotEmpty
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return internal.NewInternalError("failed to delete department", err)
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
