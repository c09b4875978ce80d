package department_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrcore/employee-management/internal/department"
)

func TestDepartmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Service Suite")
}

// Mock repository for testing
type mockDepartmentRepository struct {
	departments map[int64]*department.Department
	headcounts  map[int64]int64
	nextID      int64
}

func newMockDepartmentRepository() *mockDepartmentRepository {
	return &mockDepartmentRepository{
		departments: make(map[int64]*department.Department),
		headcounts:  make(map[int64]int64),
		nextID:      1,
	}
}

func (m *mockDepartmentRepository) Create(dep *department.Department) error {
	dep.ID = m.nextID
	m.nextID++
	m.departments[dep.ID] = dep
	return nil
}

func (m *mockDepartmentRepository) GetByID(id int64) (*department.Department, error) {
	dep, exists := m.departments[id]
	if !exists {
		return nil, department.ErrDepartmentNotFound
	}
	return dep, nil
}

func (m *mockDepartmentRepository) List() ([]*department.Department, error) {
	var out []*department.Department
	for _, dep := range m.departments {
		out = append(out, dep)
	}
	return out, nil
}

func (m *mockDepartmentRepository) Update(dep *department.Department) error {
	m.departments[dep.ID] = dep
	return nil
}

func (m *mockDepartmentRepository) Delete(id int64) error {
	delete(m.departments, id)
	return nil
}

func (m *mockDepartmentRepository) NameExists(name string) (bool, error) {
	for _, dep := range m.departments {
		if dep.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDepartmentRepository) EmployeeCount(id int64) (int64, error) {
	return m.headcounts[id], nil
}

var _ = Describe("DepartmentService", func() {
	var (
		service  *department.Service
		mockRepo *mockDepartmentRepository
	)

	BeforeEach(func() {
		mockRepo = newMockDepartmentRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = department.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should create a department", func() {
			// When
			dep, err := service.Create(department.CreateDepartmentDTO{Name: "Engineering"})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(dep.ID).To(BeNumerically(">", 0))
			Expect(dep.Name).To(Equal("Engineering"))
		})

		It("should refuse a duplicate name", func() {
			// Given
			_, err := service.Create(department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).ToNot(HaveOccurred())

			// When
			_, err = service.Create(department.CreateDepartmentDTO{Name: "Engineering"})

			// Then
			Expect(errors.Is(err, department.ErrNameTaken)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should delete an empty department", func() {
			// Given
			dep, err := service.Create(department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).ToNot(HaveOccurred())

			// When
			Expect(service.Delete(dep.ID)).To(Succeed())

			// Then
			_, err = service.GetByID(dep.ID)
			Expect(errors.Is(err, department.ErrDepartmentNotFound)).To(BeTrue())
		})

		It("should refuse to delete a department that still has employees", func() {
			// Given
			dep, err := service.Create(department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).ToNot(HaveOccurred())
			mockRepo.headcounts[dep.ID] = 3

			// When
			err = service.Delete(dep.ID)

			// Then
			Expect(errors.Is(err, department.ErrDepartmentNotEmpty)).To(BeTrue())
			_, err = service.GetByID(dep.ID)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should rename a department", func() {
			// Given
			dep, err := service.Create(department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).ToNot(HaveOccurred())
			newName := "Platform Engineering"

			// When
			updated, err := service.Update(dep.ID, department.UpdateDepartmentDTO{Name: &newName})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal(newName))
		})

		It("should refuse renaming to an existing name", func() {
			// Given
			_, err := service.Create(department.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).ToNot(HaveOccurred())
			dep, err := service.Create(department.CreateDepartmentDTO{Name: "Finance"})
			Expect(err).ToNot(HaveOccurred())
			taken := "Engineering"

			// When
			_, err = service.Update(dep.ID, department.UpdateDepartmentDTO{Name: &taken})

			// Then
			Expect(errors.Is(err, department.ErrNameTaken)).To(BeTrue())
		})
	})
})
