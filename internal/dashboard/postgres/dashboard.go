package postgres

import (
	"github.com/hrcore/employee-management/internal/dashboard"
	"github.com/hrcore/employee-management/internal/leave"
	"gorm.io/gorm"
)

// DashboardRepository serves the aggregate count queries behind the dashboards.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) EmployeeCounts() (total, active int64, err error) {
	if err = r.db.Table("employees").Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.Table("employees").Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *DashboardRepository) DepartmentCount() (int64, error) {
	var count int64
	err := r.db.Table("departments").Count(&count).Error
	return count, err
}

func (r *DashboardRepository) LeaveCounts() (dashboard.LeaveCounts, error) {
	return r.countLeaves(r.db.Table("leave_requests"))
}

func (r *DashboardRepository) LeaveCountsForEmployee(employeeID int64) (dashboard.LeaveCounts, error) {
	return r.countLeaves(r.db.Table("leave_requests").Where("employee_id = ?", employeeID))
}

func (r *DashboardRepository) LeaveCountsForTeam(managerEmployeeID int64) (dashboard.LeaveCounts, error) {
	scoped := r.db.Table("leave_requests").
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("employees.manager_id = ?", managerEmployeeID)
	return r.countLeaves(scoped)
}

func (r *DashboardRepository) TeamSize(managerEmployeeID int64) (int64, error) {
	var count int64
	err := r.db.Table("employees").
		Where("manager_id = ? AND is_active = ?", managerEmployeeID, true).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) DepartmentHeadcounts() ([]dashboard.DepartmentHeadcount, error) {
	var rows []dashboard.DepartmentHeadcount
	err := r.db.Table("departments").
		Select("departments.id AS department_id, departments.name AS department_name, COUNT(employees.id) AS employee_count").
		Joins("LEFT JOIN employees ON employees.department_id = departments.id AND employees.is_active").
		Group("departments.id, departments.name").
		Order("departments.name").
		Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) EmployeeBalance(employeeID int64) (balance, total, taken int, err error) {
	if err = r.db.Table("employees").
		Select("leave_balance").
		Where("id = ?", employeeID).
		Take(&balance).Error; err != nil {
		return 0, 0, 0, err
	}

	var row struct {
		TotalLeaves int
		LeavesTaken int
	}
	err = r.db.Table("leave_balances").
		Select("total_leaves, leaves_taken").
		Where("employee_id = ?", employeeID).
		Take(&row).Error
	if err != nil {
		// No ledger row yet means nothing has been taken.
		return balance, balance, 0, nil
	}
	return balance, row.TotalLeaves, row.LeavesTaken, nil
}

// countLeaves uses a single grouped query rather than four round trips.
func (r *DashboardRepository) countLeaves(scoped *gorm.DB) (dashboard.LeaveCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := scoped.
		Select("leave_requests.status AS status, COUNT(*) AS count").
		Group("leave_requests.status").
		Scan(&rows).Error
	if err != nil {
		return dashboard.LeaveCounts{}, err
	}

	var counts dashboard.LeaveCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch leave.Status(row.Status) {
		case leave.StatusPending:
			counts.Pending = row.Count
		case leave.StatusApproved:
			counts.Approved = row.Count
		case leave.StatusRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}
