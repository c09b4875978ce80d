package postgres

import (
	"errors"

	"github.com/hrcore/employee-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements leave.Repository and leave.EmployeeDirectory
// using GORM. Balance mutations touch both the leave_balances row and the
// employees.leave_balance projection inside one transaction.
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) CreateRequest(req *leave.LeaveRequest) error {
	return r.db.Create(req).Error
}

func (r *LeaveRepository) GetRequestByID(id int64) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *LeaveRepository) UpdateRequestStatus(id int64, status leave.Status) error {
	res := r.db.Model(&leave.LeaveRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (r *LeaveRepository) RequestsByEmployee(employeeID int64) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.Where("employee_id = ?", employeeID).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) PendingRequests() ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.Where("status = ?", leave.StatusPending).
		Order("request_date ASC"). // FIFO for approvals
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) PendingRequestsForManager(managerEmployeeID int64) ([]*leave.LeaveRequest, error) {
	var requests []*leave.LeaveRequest
	err := r.db.
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("leave_requests.status = ? AND employees.manager_id = ?", leave.StatusPending, managerEmployeeID).
		Order("leave_requests.request_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) GetBalance(employeeID int64) (*leave.LeaveBalance, error) {
	var balance leave.LeaveBalance
	err := r.db.Where("employee_id = ?", employeeID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrBalanceNotFound
		}
		return nil, err
	}
	return &balance, nil
}

func (r *LeaveRepository) CreateBalance(balance *leave.LeaveBalance) error {
	return r.db.Create(balance).Error
}

// DeductBalance charges days against an employee atomically. The balance
// check rides inside the conditional UPDATE, so a concurrent approval that
// drained the balance first makes this one fail instead of overdrawing.
func (r *LeaveRepository) DeductBalance(employeeID int64, days int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Table("employees").
			Where("id = ? AND leave_balance >= ?", employeeID, days).
			Update("leave_balance", gorm.Expr("leave_balance - ?", days))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Table("employees").Where("id = ?", employeeID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return leave.ErrEmployeeNotFound
			}
			return leave.ErrInsufficientBalance
		}

		res = tx.Model(&leave.LeaveBalance{}).
			Where("employee_id = ?", employeeID).
			Update("leaves_taken", gorm.Expr("leaves_taken + ?", days))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return leave.ErrBalanceNotFound
		}
		return nil
	})
}

// GrantBalance adds allotted days: the ledger's total grows and so does the
// employee's remaining-days projection, in one transaction.
func (r *LeaveRepository) GrantBalance(employeeID int64, days int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Table("employees").
			Where("id = ?", employeeID).
			Update("leave_balance", gorm.Expr("leave_balance + ?", days))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return leave.ErrEmployeeNotFound
		}

		res = tx.Model(&leave.LeaveBalance{}).
			Where("employee_id = ?", employeeID).
			Update("total_leaves", gorm.Expr("total_leaves + ?", days))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return leave.ErrBalanceNotFound
		}
		return nil
	})
}

// FindByID implements leave.EmployeeDirectory against the employees table.
func (r *LeaveRepository) FindByID(id int64) (*leave.EmployeeInfo, error) {
	return r.findEmployee("id = ?", id)
}

// FindByUserID resolves the employee record linked to an authenticated user.
func (r *LeaveRepository) FindByUserID(userID int64) (*leave.EmployeeInfo, error) {
	return r.findEmployee("user_id = ?", userID)
}

func (r *LeaveRepository) findEmployee(query string, arg any) (*leave.EmployeeInfo, error) {
	var info leave.EmployeeInfo
	err := r.db.Table("employees").
		Select("id, full_name, manager_id, leave_balance").
		Where(query, arg).
		Take(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &info, nil
}
