package dashboard

// LeaveCounts breaks leave requests down by lifecycle state.
type LeaveCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// DepartmentHeadcount is one row of the admin dashboard's per-department view.
type DepartmentHeadcount struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
	EmployeeCount  int64  `json:"employee_count"`
}

// AdminSummary is the organization-wide dashboard.
type AdminSummary struct {
	TotalEmployees   int64                 `json:"total_employees"`
	ActiveEmployees  int64                 `json:"active_employees"`
	TotalDepartments int64                 `json:"total_departments"`
	LeaveRequests    LeaveCounts           `json:"leave_requests"`
	Departments      []DepartmentHeadcount `json:"departments"`
}

// ManagerSummary scopes the dashboard to the caller's direct reports.
type ManagerSummary struct {
	TeamSize         int64       `json:"team_size"`
	TeamLeaveCounts  LeaveCounts `json:"team_leave_requests"`
	PendingApprovals int64       `json:"pending_approvals"`
}

// EmployeeSummary is the caller's own view: remaining balance and request
// history counts.
type EmployeeSummary struct {
	LeaveBalance    int         `json:"leave_balance"`
	TotalLeaves     int         `json:"total_leaves"`
	LeavesTaken     int         `json:"leaves_taken"`
	MyLeaveRequests LeaveCounts `json:"my_leave_requests"`
}

// Repository defines the read-only aggregate queries behind the dashboards.
type Repository interface {
	EmployeeCounts() (total, active int64, err error)
	DepartmentCount() (int64, error)
	LeaveCounts() (LeaveCounts, error)
	LeaveCountsForEmployee(employeeID int64) (LeaveCounts, error)
	LeaveCountsForTeam(managerEmployeeID int64) (LeaveCounts, error)
	TeamSize(managerEmployeeID int64) (int64, error)
	DepartmentHeadcounts() ([]DepartmentHeadcount, error)
	EmployeeBalance(employeeID int64) (balance, total, taken int, err error)
}
