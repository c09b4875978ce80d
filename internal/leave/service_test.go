package leave_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrcore/employee-management/internal/leave"
)

func TestLeaveService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Service Suite")
}

// Mock repository for testing. It implements both leave.Repository and
// leave.EmployeeDirectory the same way the real store does, so balance
// mutations hit the ledger row and the employee projection together.
type mockLeaveRepository struct {
	requests  map[int64]*leave.LeaveRequest
	balances  map[int64]*leave.LeaveBalance
	employees map[int64]*leave.EmployeeInfo
	usersToID map[int64]int64

	createError       error
	getError          error
	updateStatusError error
	deductError       error
	nextID            int64
}

func newMockLeaveRepository() *mockLeaveRepository {
	return &mockLeaveRepository{
		requests:  make(map[int64]*leave.LeaveRequest),
		balances:  make(map[int64]*leave.LeaveBalance),
		employees: make(map[int64]*leave.EmployeeInfo),
		usersToID: make(map[int64]int64),
		nextID:    1,
	}
}

func (m *mockLeaveRepository) addEmployee(id int64, balance int, managerID *int64) {
	m.employees[id] = &leave.EmployeeInfo{
		ID:           id,
		FullName:     "Test Employee",
		ManagerID:    managerID,
		LeaveBalance: balance,
	}
}

func (m *mockLeaveRepository) linkUser(userID, employeeID int64) {
	m.usersToID[userID] = employeeID
}

func (m *mockLeaveRepository) CreateRequest(req *leave.LeaveRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockLeaveRepository) GetRequestByID(id int64) (*leave.LeaveRequest, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	req, exists := m.requests[id]
	if !exists {
		return nil, leave.ErrRequestNotFound
	}
	return req, nil
}

func (m *mockLeaveRepository) UpdateRequestStatus(id int64, status leave.Status) error {
	if m.updateStatusError != nil {
		return m.updateStatusError
	}
	req, exists := m.requests[id]
	if !exists {
		return leave.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

func (m *mockLeaveRepository) RequestsByEmployee(employeeID int64) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) PendingRequests() ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.Status == leave.StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockLeaveRepository) PendingRequestsForManager(managerEmployeeID int64) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range m.requests {
		if req.Status != leave.StatusPending {
			continue
		}
		emp, exists := m.employees[req.EmployeeID]
		if !exists || emp.ManagerID == nil || *emp.ManagerID != managerEmployeeID {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *mockLeaveRepository) GetBalance(employeeID int64) (*leave.LeaveBalance, error) {
	bal, exists := m.balances[employeeID]
	if !exists {
		return nil, leave.ErrBalanceNotFound
	}
	return bal, nil
}

func (m *mockLeaveRepository) CreateBalance(balance *leave.LeaveBalance) error {
	balance.ID = m.nextID
	m.nextID++
	m.balances[balance.EmployeeID] = balance
	return nil
}

func (m *mockLeaveRepository) DeductBalance(employeeID int64, days int) error {
	if m.deductError != nil {
		return m.deductError
	}
	emp, exists := m.employees[employeeID]
	if !exists {
		return leave.ErrEmployeeNotFound
	}
	if emp.LeaveBalance < days {
		return leave.ErrInsufficientBalance
	}
	bal, exists := m.balances[employeeID]
	if !exists {
		return leave.ErrBalanceNotFound
	}
	emp.LeaveBalance -= days
	bal.LeavesTaken += days
	return nil
}

func (m *mockLeaveRepository) GrantBalance(employeeID int64, days int) error {
	emp, exists := m.employees[employeeID]
	if !exists {
		return leave.ErrEmployeeNotFound
	}
	bal, exists := m.balances[employeeID]
	if !exists {
		return leave.ErrBalanceNotFound
	}
	emp.LeaveBalance += days
	bal.TotalLeaves += days
	return nil
}

func (m *mockLeaveRepository) FindByID(id int64) (*leave.EmployeeInfo, error) {
	emp, exists := m.employees[id]
	if !exists {
		return nil, leave.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockLeaveRepository) FindByUserID(userID int64) (*leave.EmployeeInfo, error) {
	employeeID, exists := m.usersToID[userID]
	if !exists {
		return nil, leave.ErrEmployeeNotFound
	}
	return m.FindByID(employeeID)
}

var _ = Describe("LeaveService", func() {
	var (
		leaveService *leave.Service
		mockRepo     *mockLeaveRepository
		logger       *slog.Logger
	)

	// June 2025: the 2nd is a Monday, the 7th and 8th a weekend.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	thursday := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		mockRepo = newMockLeaveRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ledger := leave.NewLedger(mockRepo, mockRepo, logger)
		leaveService = leave.NewService(mockRepo, mockRepo, ledger, logger)
	})

	Describe("Submit", func() {
		Context("when submitting a pending request", func() {
			It("should persist the request without touching the balance", func() {
				// Given
				mockRepo.addEmployee(1, 10, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  monday,
					EndDate:    wednesday,
					Reason:     "family trip",
				}

				// When
				result, err := leaveService.Submit(dto)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Request.Status).To(Equal(leave.StatusPending))
				Expect(result.DaysRequested).To(Equal(3))
				Expect(result.Warning).To(BeEmpty())
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(10))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(0))
			})

			It("should seed the ledger row from the employee's allotment", func() {
				// Given
				mockRepo.addEmployee(1, 12, nil)

				// When
				_, err := leaveService.Submit(leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  monday,
					EndDate:    wednesday,
				})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.balances[1].TotalLeaves).To(Equal(12))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(0))
			})

			It("should persist a pending request even when the balance cannot cover it", func() {
				// Given: 2 days available, 4 requested
				mockRepo.addEmployee(1, 2, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  monday,
					EndDate:    thursday,
				}

				// When
				result, err := leaveService.Submit(dto)

				// Then: the approver decides later, nothing is deducted now
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Request.Status).To(Equal(leave.StatusPending))
				Expect(result.DaysRequested).To(Equal(4))
				Expect(mockRepo.requests).To(HaveLen(1))
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(2))
			})
		})

		Context("when submitting a pre-approved entry", func() {
			It("should deduct the balance immediately", func() {
				// Given
				mockRepo.addEmployee(1, 10, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  monday,
					EndDate:    wednesday,
					Status:     "Approved",
				}

				// When
				result, err := leaveService.Submit(dto)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Request.Status).To(Equal(leave.StatusApproved))
				Expect(result.Warning).To(BeEmpty())
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(7))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(3))
			})

			It("should keep the request approved and warn when the deduction fails", func() {
				// Given: 2 days available, 4 pre-approved
				mockRepo.addEmployee(1, 2, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  monday,
					EndDate:    thursday,
					Status:     "Approved",
				}

				// When
				result, err := leaveService.Submit(dto)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Request.Status).To(Equal(leave.StatusApproved))
				Expect(result.Warning).ToNot(BeEmpty())
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(2))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(0))
			})

			It("should normalize any other caller-supplied status to Pending", func() {
				// Given
				mockRepo.addEmployee(1, 10, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  monday,
					EndDate:    wednesday,
					Status:     "Rejected",
				}

				// When
				result, err := leaveService.Submit(dto)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Request.Status).To(Equal(leave.StatusPending))
			})
		})

		Context("when the period is invalid", func() {
			It("should reject a range ending before it starts", func() {
				// Given
				mockRepo.addEmployee(1, 10, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  wednesday,
					EndDate:    monday,
				}

				// When
				result, err := leaveService.Submit(dto)

				// Then
				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				Expect(mockRepo.requests).To(BeEmpty())
			})

			It("should reject a weekend-only range", func() {
				// Given
				mockRepo.addEmployee(1, 10, nil)
				dto := leave.ApplyLeaveDTO{
					EmployeeID: 1,
					StartDate:  saturday,
					EndDate:    sunday,
				}

				// When
				_, err := leaveService.Submit(dto)

				// Then
				Expect(errors.Is(err, leave.ErrInvalidPeriod)).To(BeTrue())
				Expect(mockRepo.requests).To(BeEmpty())
			})
		})

		Context("when the employee does not exist", func() {
			It("should return employee not found", func() {
				// When
				_, err := leaveService.Submit(leave.ApplyLeaveDTO{
					EmployeeID: 42,
					StartDate:  monday,
					EndDate:    wednesday,
				})

				// Then
				Expect(errors.Is(err, leave.ErrEmployeeNotFound)).To(BeTrue())
			})
		})
	})

	Describe("Decide", func() {
		var requestID int64

		BeforeEach(func() {
			mockRepo.addEmployee(1, 10, nil)
			result, err := leaveService.Submit(leave.ApplyLeaveDTO{
				EmployeeID: 1,
				StartDate:  monday,
				EndDate:    wednesday,
			})
			Expect(err).ToNot(HaveOccurred())
			requestID = result.Request.ID
		})

		Context("when approving", func() {
			It("should deduct the recomputed days and mark the request approved", func() {
				// When
				err := leaveService.Decide(requestID, leave.StatusApproved)

				// Then: 10 available minus 3 business days
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.requests[requestID].Status).To(Equal(leave.StatusApproved))
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(7))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(3))
			})

			It("should not deduct twice when approved twice", func() {
				// Given
				Expect(leaveService.Decide(requestID, leave.StatusApproved)).To(Succeed())

				// When
				err := leaveService.Decide(requestID, leave.StatusApproved)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(7))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(3))
			})

			It("should refuse approval when the balance is short and leave everything untouched", func() {
				// Given: a second employee with 2 days asking for 4
				mockRepo.addEmployee(2, 2, nil)
				result, err := leaveService.Submit(leave.ApplyLeaveDTO{
					EmployeeID: 2,
					StartDate:  monday,
					EndDate:    thursday,
				})
				Expect(err).ToNot(HaveOccurred())

				// When
				err = leaveService.Decide(result.Request.ID, leave.StatusApproved)

				// Then
				Expect(errors.Is(err, leave.ErrInsufficientBalance)).To(BeTrue())
				Expect(mockRepo.requests[result.Request.ID].Status).To(Equal(leave.StatusPending))
				Expect(mockRepo.employees[2].LeaveBalance).To(Equal(2))
				Expect(mockRepo.balances[2].LeavesTaken).To(Equal(0))
			})
		})

		Context("when rejecting", func() {
			It("should mark the request rejected without touching the balance", func() {
				// When
				err := leaveService.Decide(requestID, leave.StatusRejected)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.requests[requestID].Status).To(Equal(leave.StatusRejected))
				Expect(mockRepo.employees[1].LeaveBalance).To(Equal(10))
				Expect(mockRepo.balances[1].LeavesTaken).To(Equal(0))
			})
		})

		Context("when the decision is not a terminal status", func() {
			It("should return invalid decision", func() {
				// When
				err := leaveService.Decide(requestID, leave.Status("Cancelled"))

				// Then
				Expect(errors.Is(err, leave.ErrInvalidDecision)).To(BeTrue())
				Expect(mockRepo.requests[requestID].Status).To(Equal(leave.StatusPending))
			})
		})

		Context("when the request does not exist", func() {
			It("should return request not found", func() {
				// When
				err := leaveService.Decide(999, leave.StatusApproved)

				// Then
				Expect(errors.Is(err, leave.ErrRequestNotFound)).To(BeTrue())
			})
		})
	})

	Describe("PendingForManager", func() {
		It("should only list pending requests of the manager's reports", func() {
			// Given: employee 2 reports to manager (employee 1), employee 3 does not
			managerID := int64(1)
			mockRepo.addEmployee(1, 10, nil)
			mockRepo.addEmployee(2, 10, &managerID)
			mockRepo.addEmployee(3, 10, nil)
			mockRepo.linkUser(100, 1)

			for _, employeeID := range []int64{2, 3} {
				_, err := leaveService.Submit(leave.ApplyLeaveDTO{
					EmployeeID: employeeID,
					StartDate:  monday,
					EndDate:    wednesday,
				})
				Expect(err).ToNot(HaveOccurred())
			}

			// When
			pending, err := leaveService.PendingForManager(100)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].EmployeeID).To(Equal(int64(2)))
		})

		It("should fail for a user with no employee record", func() {
			// When
			_, err := leaveService.PendingForManager(999)

			// Then
			Expect(errors.Is(err, leave.ErrNotLinkedToEmployee)).To(BeTrue())
		})
	})

	Describe("Balance", func() {
		It("should lazily create a ledger row seeded from the allotment", func() {
			// Given
			mockRepo.addEmployee(1, 15, nil)

			// When
			balance, err := leaveService.Balance(1)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(balance.TotalLeaves).To(Equal(15))
			Expect(balance.LeavesTaken).To(Equal(0))
			Expect(balance.RemainingLeaves()).To(Equal(15))
		})
	})

	Describe("Grant", func() {
		It("should grow the allotment and the remaining days together", func() {
			// Given
			mockRepo.addEmployee(1, 10, nil)

			// When
			err := leaveService.Grant(1, 5)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.balances[1].TotalLeaves).To(Equal(15))
			Expect(mockRepo.employees[1].LeaveBalance).To(Equal(15))
		})

		It("should refuse a non-positive grant", func() {
			// Given
			mockRepo.addEmployee(1, 10, nil)

			// When
			err := leaveService.Grant(1, 0)

			// Then
			Expect(errors.Is(err, leave.ErrInvalidGrant)).To(BeTrue())
		})
	})
})
