package leave

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hrcore/employee-management/internal"
)

// Repository defines the data access methods for leave requests and balances.
type Repository interface {
	CreateRequest(req *LeaveRequest) error
	GetRequestByID(id int64) (*LeaveRequest, error)
	UpdateRequestStatus(id int64, status Status) error
	RequestsByEmployee(employeeID int64) ([]*LeaveRequest, error)
	PendingRequests() ([]*LeaveRequest, error)
	PendingRequestsForManager(managerEmployeeID int64) ([]*LeaveRequest, error)

	GetBalance(employeeID int64) (*LeaveBalance, error)
	CreateBalance(balance *LeaveBalance) error
	// DeductBalance applies a check-and-deduct as one conditional update:
	// it fails with ErrInsufficientBalance without mutating anything when the
	// employee's remaining days are short.
	DeductBalance(employeeID int64, days int) error
	GrantBalance(employeeID int64, days int) error
}

// EmployeeDirectory resolves employee records for the lifecycle and the
// approval scopes. FindByUserID maps an authenticated user to their employee
// record.
type EmployeeDirectory interface {
	FindByID(id int64) (*EmployeeInfo, error)
	FindByUserID(userID int64) (*EmployeeInfo, error)
}

// Service owns the leave request lifecycle and the approval worklists.
type Service struct {
	repo      Repository
	directory EmployeeDirectory
	ledger    *Ledger
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, directory EmployeeDirectory, ledger *Ledger, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		ledger:    ledger,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates and persists a leave application. A Pending submission
// never touches the balance, even when the employee could not afford it; the
// approver gets to decide with the shortfall in front of them. Only a
// pre-approved entry deducts immediately, and if that deduction fails the
// request stays persisted as Approved with a warning for the caller.
func (s *Service) Submit(dto ApplyLeaveDTO) (*SubmitResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("leave submission validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDateRange)
	}

	daysRequested := BusinessDays(dto.StartDate, dto.EndDate)
	if daysRequested <= 0 {
		s.logger.Warn("leave submission covers no business days",
			"employee_id", dto.EmployeeID,
			"start_date", dto.StartDate,
			"end_date", dto.EndDate)
		return nil, ErrInvalidPeriod
	}

	emp, err := s.directory.FindByID(dto.EmployeeID)
	if err != nil {
		s.logger.Warn("leave submission for unknown employee", "employee_id", dto.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	status := NormalizeSubmitStatus(dto.Status)

	req := &LeaveRequest{
		EmployeeID:  dto.EmployeeID,
		StartDate:   dateOnly(dto.StartDate),
		EndDate:     dateOnly(dto.EndDate),
		Reason:      dto.Reason,
		Status:      status,
		RequestDate: s.now().UTC(),
	}

	if err := s.repo.CreateRequest(req); err != nil {
		s.logger.Error("failed to save leave request", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("failed to save leave request", err)
	}

	// Ledger row is created lazily on first submission regardless of outcome.
	if _, err := s.ledger.Ensure(req.EmployeeID); err != nil {
		s.logger.Warn("could not ensure leave balance row", "error", err, "employee_id", req.EmployeeID)
	}

	result := &SubmitResult{Request: req, DaysRequested: daysRequested}

	if status == StatusApproved {
		if err := s.ledger.ApplyDeduction(req.EmployeeID, daysRequested); err != nil {
			// The request stays Approved; the caller is told the balance did not move.
			s.logger.Warn("pre-approved leave saved but balance update failed",
				"error", err,
				"request_id", req.ID,
				"employee_id", req.EmployeeID,
				"days", daysRequested)
			result.Warning = fmt.Sprintf("leave saved but balance update failed: %v", err)
		}
	} else if emp.LeaveBalance < daysRequested {
		s.logger.Info("leave submitted pending with insufficient balance",
			"request_id", req.ID,
			"employee_id", req.EmployeeID,
			"available", emp.LeaveBalance,
			"requested", daysRequested)
	}

	s.logger.Info("leave request submitted",
		"request_id", req.ID,
		"employee_id", req.EmployeeID,
		"status", req.Status,
		"days", daysRequested)

	return result, nil
}

// Decide applies an approver's decision. Approval recomputes the chargeable
// days from the stored range, refuses the transition when the balance is
// short, and deducts exactly once: an already-Approved request is left alone.
// Rejection never touches balances.
func (s *Service) Decide(requestID int64, decision Status) error {
	if decision != StatusApproved && decision != StatusRejected {
		return ErrInvalidDecision
	}

	req, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		s.logger.Warn("decision on unknown leave request", "request_id", requestID)
		return ErrRequestNotFound
	}

	if decision == StatusRejected {
		if err := s.repo.UpdateRequestStatus(requestID, StatusRejected); err != nil {
			s.logger.Error("failed to reject leave request", "error", err, "request_id", requestID)
			return internal.NewInternalError("failed to update leave request", err)
		}
		s.logger.Info("leave request rejected", "request_id", requestID, "employee_id", req.EmployeeID)
		return nil
	}

	if req.Status == StatusApproved {
		// Approving twice must not deduct twice.
		s.logger.Info("leave request already approved", "request_id", requestID)
		return nil
	}

	daysRequested := BusinessDays(req.StartDate, req.EndDate)

	emp, err := s.directory.FindByID(req.EmployeeID)
	if err != nil {
		s.logger.Warn("approval for request with missing employee",
			"request_id", requestID,
			"employee_id", req.EmployeeID)
		return ErrEmployeeNotFound
	}

	if emp.LeaveBalance < daysRequested {
		s.logger.Warn("approval refused: insufficient balance",
			"request_id", requestID,
			"employee_id", req.EmployeeID,
			"available", emp.LeaveBalance,
			"requested", daysRequested)
		return ErrInsufficientBalance.
			WithMessage(fmt.Sprintf("cannot approve: employee has %d days available, requested %d days", emp.LeaveBalance, daysRequested)).
			WithDetails(map[string]int{"available": emp.LeaveBalance, "requested": daysRequested})
	}

	if err := s.ledger.ApplyDeduction(req.EmployeeID, daysRequested); err != nil {
		return err
	}

	if err := s.repo.UpdateRequestStatus(requestID, StatusApproved); err != nil {
		s.logger.Error("balance deducted but status update failed", "error", err, "request_id", requestID)
		return internal.NewInternalError("failed to update leave request", err)
	}

	s.logger.Info("leave request approved",
		"request_id", requestID,
		"employee_id", req.EmployeeID,
		"days", daysRequested)

	return nil
}

// PendingAll is the global approval worklist: every Pending request.
func (s *Service) PendingAll() ([]*LeaveRequest, error) {
	requests, err := s.repo.PendingRequests()
	if err != nil {
		s.logger.Error("failed to list pending leave requests", "error", err)
		return nil, internal.NewInternalError("failed to list pending leave requests", err)
	}
	return requests, nil
}

// PendingForManager is the team approval worklist: Pending requests of
// employees reporting to the caller's employee record.
func (s *Service) PendingForManager(userID int64) ([]*LeaveRequest, error) {
	manager, err := s.directory.FindByUserID(userID)
	if err != nil {
		s.logger.Warn("approver has no linked employee record", "user_id", userID)
		return nil, ErrNotLinkedToEmployee
	}

	requests, err := s.repo.PendingRequestsForManager(manager.ID)
	if err != nil {
		s.logger.Error("failed to list team pending leave requests", "error", err, "manager_id", manager.ID)
		return nil, internal.NewInternalError("failed to list pending leave requests", err)
	}
	return requests, nil
}

// RequestsForEmployee lists an employee's own leave history, newest first.
func (s *Service) RequestsForEmployee(employeeID int64) ([]*LeaveRequest, error) {
	if _, err := s.directory.FindByID(employeeID); err != nil {
		return nil, ErrEmployeeNotFound
	}
	requests, err := s.repo.RequestsByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}
	return requests, nil
}

// Balance returns the employee's ledger row, creating it lazily.
func (s *Service) Balance(employeeID int64) (*LeaveBalance, error) {
	return s.ledger.Ensure(employeeID)
}

// Grant lets an admin add allotted days to an employee.
func (s *Service) Grant(employeeID int64, days int) error {
	return s.ledger.Grant(employeeID, days)
}
