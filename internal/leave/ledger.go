package leave

import (
	"errors"
	"log/slog"
)

// Ledger guarantees a leave_balances row exists per employee and applies
// balance mutations. All writes go through the repository inside a single
// transaction, so the ledger row and the employee's remaining-days scalar
// cannot drift apart.
type Ledger struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *slog.Logger
}

func NewLedger(repo Repository, directory EmployeeDirectory, logger *slog.Logger) *Ledger {
	return &Ledger{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

// Ensure returns the employee's ledger row, creating it lazily on first use.
// A new row is seeded with the employee's current allotment and zero
// consumption.
func (l *Ledger) Ensure(employeeID int64) (*LeaveBalance, error) {
	balance, err := l.repo.GetBalance(employeeID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, ErrBalanceNotFound) {
		l.logger.Error("failed to read leave balance", "error", err, "employee_id", employeeID)
		return nil, ErrBalanceUpdateFailed.WithCause(err)
	}

	emp, err := l.directory.FindByID(employeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	balance = &LeaveBalance{
		EmployeeID:  employeeID,
		TotalLeaves: emp.LeaveBalance,
		LeavesTaken: 0,
	}
	if err := l.repo.CreateBalance(balance); err != nil {
		l.logger.Error("failed to create leave balance", "error", err, "employee_id", employeeID)
		return nil, ErrBalanceUpdateFailed.WithCause(err)
	}

	l.logger.Info("leave balance created",
		"employee_id", employeeID,
		"total_leaves", balance.TotalLeaves)

	return balance, nil
}

// ApplyDeduction charges days against the employee: the ledger's LeavesTaken
// grows and the employee's remaining-days scalar shrinks, atomically. The
// storage layer re-checks the balance inside the same statement, so two
// concurrent approvals cannot overdraw it.
func (l *Ledger) ApplyDeduction(employeeID int64, days int) error {
	if days <= 0 {
		return ErrInvalidDeduction
	}

	if _, err := l.Ensure(employeeID); err != nil {
		return err
	}

	if err := l.repo.DeductBalance(employeeID, days); err != nil {
		if errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrBalanceNotFound) {
			return err
		}
		l.logger.Error("leave balance deduction failed", "error", err, "employee_id", employeeID, "days", days)
		return ErrBalanceUpdateFailed.WithCause(err)
	}

	l.logger.Info("leave balance deducted",
		"employee_id", employeeID,
		"days", days)

	return nil
}

// Grant increases the employee's allotment: the ledger's TotalLeaves and the
// employee's remaining-days scalar both grow by the same amount.
func (l *Ledger) Grant(employeeID int64, days int) error {
	if days <= 0 {
		return ErrInvalidGrant
	}

	if _, err := l.Ensure(employeeID); err != nil {
		return err
	}

	if err := l.repo.GrantBalance(employeeID, days); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrBalanceNotFound) {
			return err
		}
		l.logger.Error("leave balance grant failed", "error", err, "employee_id", employeeID, "days", days)
		return ErrBalanceUpdateFailed.WithCause(err)
	}

	l.logger.Info("leave balance granted",
		"employee_id", employeeID,
		"days", days)

	return nil
}
