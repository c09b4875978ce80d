package employee_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrcore/employee-management/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

// Mock repository for testing
type mockEmployeeRepository struct {
	employees   map[int64]*employee.Employee
	departments map[int64]bool
	createError error
	updateError error
	nextID      int64
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees:   make(map[int64]*employee.Employee),
		departments: map[int64]bool{1: true},
		nextID:      1,
	}
}

func (m *mockEmployeeRepository) Create(emp *employee.Employee) error {
	if m.createError != nil {
		return m.createError
	}
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	emp, exists := m.employees[id]
	if !exists {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeRepository) GetByUserID(userID int64) (*employee.Employee, error) {
	for _, emp := range m.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) List(limit, offset int) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (m *mockEmployeeRepository) ListByManager(managerID int64) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, emp := range m.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepository) Update(emp *employee.Employee) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepository) EmailExists(email string) (bool, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepository) DepartmentExists(departmentID int64) (bool, error) {
	return m.departments[departmentID], nil
}

var _ = Describe("EmployeeService", func() {
	var (
		service  *employee.Service
		mockRepo *mockEmployeeRepository
	)

	validDTO := func() employee.CreateEmployeeDTO {
		return employee.CreateEmployeeDTO{
			FullName:     "Jamie Rivera",
			Email:        "jamie@example.com",
			PhoneNumber:  "0812345678",
			Role:         employee.RoleEmployee,
			DepartmentID: 1,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should create an active employee with the default allotment", func() {
			// When
			emp, err := service.Create(validDTO())

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(emp.ID).To(BeNumerically(">", 0))
			Expect(emp.IsActive).To(BeTrue())
			Expect(emp.LeaveBalance).To(Equal(employee.DefaultLeaveAllotment))
		})

		It("should honor an explicit starting allotment", func() {
			// Given
			dto := validDTO()
			balance := 25
			dto.LeaveBalance = &balance

			// When
			emp, err := service.Create(dto)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(emp.LeaveBalance).To(Equal(25))
		})

		It("should refuse a duplicate email", func() {
			// Given
			_, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			// When
			_, err = service.Create(validDTO())

			// Then
			Expect(errors.Is(err, employee.ErrEmailTaken)).To(BeTrue())
		})

		It("should refuse an unknown department", func() {
			// Given
			dto := validDTO()
			dto.DepartmentID = 42

			// When
			_, err := service.Create(dto)

			// Then
			Expect(errors.Is(err, employee.ErrDepartmentNotFound)).To(BeTrue())
		})

		It("should refuse an unknown manager", func() {
			// Given
			dto := validDTO()
			managerID := int64(99)
			dto.ManagerID = &managerID

			// When
			_, err := service.Create(dto)

			// Then
			Expect(errors.Is(err, employee.ErrManagerNotFound)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("should apply only the provided fields", func() {
			// Given
			emp, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())
			newName := "Jamie R. Rivera"

			// When
			updated, err := service.Update(emp.ID, employee.UpdateEmployeeDTO{FullName: &newName})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.FullName).To(Equal(newName))
			Expect(updated.Email).To(Equal("jamie@example.com"))
		})

		It("should fail for an unknown employee", func() {
			// When
			name := "Nobody"
			_, err := service.Update(999, employee.UpdateEmployeeDTO{FullName: &name})

			// Then
			Expect(errors.Is(err, employee.ErrEmployeeNotFound)).To(BeTrue())
		})
	})

	Describe("Deactivate", func() {
		It("should keep the row but mark it inactive", func() {
			// Given
			emp, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			// When
			Expect(service.Deactivate(emp.ID)).To(Succeed())

			// Then
			got, err := service.GetByID(emp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.IsActive).To(BeFalse())
		})

		It("should be a no-op on an already inactive employee", func() {
			// Given
			emp, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Deactivate(emp.ID)).To(Succeed())

			// When / Then
			Expect(service.Deactivate(emp.ID)).To(Succeed())
		})
	})

	Describe("Team", func() {
		It("should list only the manager's direct reports", func() {
			// Given
			manager, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			reportDTO := validDTO()
			reportDTO.Email = "report@example.com"
			reportDTO.ManagerID = &manager.ID
			report, err := service.Create(reportDTO)
			Expect(err).ToNot(HaveOccurred())

			otherDTO := validDTO()
			otherDTO.Email = "other@example.com"
			_, err = service.Create(otherDTO)
			Expect(err).ToNot(HaveOccurred())

			// When
			team, err := service.Team(manager.ID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(team).To(HaveLen(1))
			Expect(team[0].ID).To(Equal(report.ID))
		})
	})

	Describe("LinkUser", func() {
		It("should attach the auth user to the employee record", func() {
			// Given
			emp, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			// When
			Expect(service.LinkUser(emp.ID, 77)).To(Succeed())

			// Then
			got, err := service.GetByUserID(77)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(emp.ID))
		})
	})
})
