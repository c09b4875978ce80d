package leave

import (
	"time"

	"github.com/hrcore/employee-management/internal"
)

// Status is the closed set of leave request lifecycle states. Requests start
// Pending and end Approved or Rejected; there is no transition back.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// NormalizeSubmitStatus forces any caller-supplied status other than Approved
// down to Pending. The Approved passthrough exists for back-dated entries that
// an admin records as already approved; everything else would be spoofing.
func NormalizeSubmitStatus(raw string) Status {
	if Status(raw) == StatusApproved {
		return StatusApproved
	}
	return StatusPending
}

// LeaveRequest is a single leave application. StartDate and EndDate form an
// inclusive calendar range; chargeable days are computed from it, never stored
// as authoritative state.
type LeaveRequest struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EmployeeID  int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	StartDate   time.Time `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time `json:"end_date" gorm:"column:end_date;type:date;not null"`
	Reason      string    `json:"reason" gorm:"type:varchar(250)"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;default:Pending"`
	RequestDate time.Time `json:"request_date" gorm:"column:request_date;not null"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (r *LeaveRequest) CanBeDecided() bool {
	return r.Status == StatusPending
}

// LeaveBalance is the per-employee ledger row: cumulative allotment and
// consumption. The employee's scalar leave_balance column is a denormalized
// projection of RemainingLeaves and is only ever written together with this
// row, inside one transaction.
type LeaveBalance struct {
	ID          int64 `json:"id" gorm:"primaryKey"`
	EmployeeID  int64 `json:"employee_id" gorm:"column:employee_id;not null;uniqueIndex"`
	TotalLeaves int   `json:"total_leaves" gorm:"column:total_leaves;not null"`
	LeavesTaken int   `json:"leaves_taken" gorm:"column:leaves_taken;not null;default:0"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b *LeaveBalance) RemainingLeaves() int {
	return b.TotalLeaves - b.LeavesTaken
}

// EmployeeInfo is the slice of the employee record this package needs: the
// identity, the reporting line for the team approval scope, and the
// remaining-days scalar.
type EmployeeInfo struct {
	ID           int64
	FullName     string
	ManagerID    *int64
	LeaveBalance int
}

// Domain errors. These are sentinels; services may derive copies with
// caller-specific messages via WithMessage, which still match errors.Is.
var (
	ErrRequestNotFound     = internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveRequestNotFound)
	ErrBalanceNotFound     = internal.NewNotFoundError("leave balance not found", internal.ErrCodeLeaveBalanceNotFound)
	ErrEmployeeNotFound    = internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	ErrNotLinkedToEmployee = internal.NewNotFoundError("no employee record linked to this user", internal.ErrCodeEmployeeNotLinkedToUser)
	ErrInvalidPeriod       = internal.NewValidationError("invalid leave period selected", internal.ErrCodeInvalidLeavePeriod)
	ErrInvalidDecision     = internal.NewValidationError("decision must be Approved or Rejected", internal.ErrCodeInvalidLeaveDecision)
	ErrInsufficientBalance = internal.NewValidationError("insufficient leave balance", internal.ErrCodeInsufficientBalance)
	ErrInvalidDeduction    = internal.NewValidationError("deduction must be a positive number of days", internal.ErrCodeInvalidLeaveGrant)
	ErrInvalidGrant        = internal.NewValidationError("grant must be a positive number of days", internal.ErrCodeInvalidLeaveGrant)
	ErrBalanceUpdateFailed = internal.NewInternalError("failed to update leave balance", nil)
)
