package dashboard

import (
	"log/slog"

	"github.com/hrcore/employee-management/internal"
	"github.com/hrcore/employee-management/internal/leave"
)

// Service assembles role-scoped dashboard summaries.
type Service struct {
	repo      Repository
	directory leave.EmployeeDirectory
	logger    *slog.Logger
}

func NewService(repo Repository, directory leave.EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, directory: directory, logger: logger}
}

func (s *Service) AdminSummary() (*AdminSummary, error) {
	total, active, err := s.repo.EmployeeCounts()
	if err != nil {
		return nil, s.fail("employee counts", err)
	}

	departments, err := s.repo.DepartmentCount()
	if err != nil {
		return nil, s.fail("department count", err)
	}

	leaves, err := s.repo.LeaveCounts()
	if err != nil {
		return nil, s.fail("leave counts", err)
	}

	headcounts, err := s.repo.DepartmentHeadcounts()
	if err != nil {
		return nil, s.fail("department headcounts", err)
	}

	return &AdminSummary{
		TotalEmployees:   total,
		ActiveEmployees:  active,
		TotalDepartments: departments,
		LeaveRequests:    leaves,
		Departments:      headcounts,
	}, nil
}

func (s *Service) ManagerSummary(userID int64) (*ManagerSummary, error) {
	manager, err := s.directory.FindByUserID(userID)
	if err != nil {
		return nil, leave.ErrNotLinkedToEmployee
	}

	size, err := s.repo.TeamSize(manager.ID)
	if err != nil {
		return nil, s.fail("team size", err)
	}

	counts, err := s.repo.LeaveCountsForTeam(manager.ID)
	if err != nil {
		return nil, s.fail("team leave counts", err)
	}

	return &ManagerSummary{
		TeamSize:         size,
		TeamLeaveCounts:  counts,
		PendingApprovals: counts.Pending,
	}, nil
}

func (s *Service) EmployeeSummary(userID int64) (*EmployeeSummary, error) {
	emp, err := s.directory.FindByUserID(userID)
	if err != nil {
		return nil, leave.ErrNotLinkedToEmployee
	}

	balance, total, taken, err := s.repo.EmployeeBalance(emp.ID)
	if err != nil {
		return nil, s.fail("employee balance", err)
	}

	counts, err := s.repo.LeaveCountsForEmployee(emp.ID)
	if err != nil {
		return nil, s.fail("employee leave counts", err)
	}

	return &EmployeeSummary{
		LeaveBalance:    balance,
		TotalLeaves:     total,
		LeavesTaken:     taken,
		MyLeaveRequests: counts,
	}, nil
}

func (s *Service) fail(what string, err error) error {
	s.logger.Error("dashboard query failed", "query", what, "error", err)
	return internal.NewInternalError("failed to build dashboard", err)
}
