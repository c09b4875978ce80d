package leave

import (
	"errors"
	"time"
)

// ApplyLeaveDTO is the request payload for submitting a leave application.
// Status is optional; anything other than "Approved" is normalized to Pending.
type ApplyLeaveDTO struct {
	EmployeeID int64     `json:"employee_id" validate:"required"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	Reason     string    `json:"reason" validate:"max=250"`
	Status     string    `json:"status,omitempty"`
}

func (dto ApplyLeaveDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return errors.New("employee_id is required")
	}
	if dto.StartDate.IsZero() {
		return errors.New("start_date is required")
	}
	if dto.EndDate.IsZero() {
		return errors.New("end_date is required")
	}
	if dateOnly(dto.StartDate).After(dateOnly(dto.EndDate)) {
		return errors.New("end date must be after start date")
	}
	if len(dto.Reason) > 250 {
		return errors.New("reason must be less than 250 characters")
	}
	return nil
}

// DecideLeaveDTO carries an approver's decision on a pending request.
type DecideLeaveDTO struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

func (dto DecideLeaveDTO) Validate() error {
	if dto.Status == "" {
		return errors.New("status is required")
	}
	if s := Status(dto.Status); s != StatusApproved && s != StatusRejected {
		return errors.New("status must be either 'Approved' or 'Rejected'")
	}
	return nil
}

// GrantLeaveDTO is an admin grant of additional allotted days.
type GrantLeaveDTO struct {
	Days int `json:"days" validate:"required,min=1"`
}

func (dto GrantLeaveDTO) Validate() error {
	if dto.Days <= 0 {
		return errors.New("days must be greater than 0")
	}
	return nil
}

// SubmitResult is what Submit hands back to the caller: the persisted request,
// the chargeable day count, and a warning when a pre-approved entry was saved
// but its balance deduction failed.
type SubmitResult struct {
	Request       *LeaveRequest `json:"request"`
	DaysRequested int           `json:"days_requested"`
	Warning       string        `json:"warning,omitempty"`
}
