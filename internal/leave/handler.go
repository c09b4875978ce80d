package leave

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/hrcore/employee-management/internal"
	"github.com/hrcore/employee-management/internal/transport"
	"github.com/hrcore/employee-management/pkg/logger"
)

type ServiceAPI interface {
	Submit(dto ApplyLeaveDTO) (*SubmitResult, error)
	Decide(requestID int64, decision Status) error
	PendingAll() ([]*LeaveRequest, error)
	PendingForManager(userID int64) ([]*LeaveRequest, error)
	RequestsForEmployee(employeeID int64) ([]*LeaveRequest, error)
	Balance(employeeID int64) (*LeaveBalance, error)
	Grant(employeeID int64, days int) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// Apply handles POST /leaves
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var dto ApplyLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Apply: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Submit(dto)
	if err != nil {
		h.Logger.Error("Apply: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

// Decide handles PATCH /leaves/{id}/decision
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave request ID")
		return
	}

	var dto DecideLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Decide: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Decide(requestID, Status(dto.Status)); err != nil {
		h.Logger.Error("Decide: service error", "error", err, "request_id", requestID, "decision", dto.Status)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": dto.Status})
}

// PendingAll handles GET /leaves/pending (admin scope)
func (h *Handler) PendingAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.PendingAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// PendingForTeam handles GET /leaves/team/pending (manager scope)
func (h *Handler) PendingForTeam(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.PendingForManager(userID)
	if err != nil {
		h.Logger.Error("PendingForTeam: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// MyLeaves handles GET /employees/{id}/leaves
func (h *Handler) MyLeaves(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	requests, err := h.Service.RequestsForEmployee(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// Balance handles GET /employees/{id}/leave-balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	balance, err := h.Service.Balance(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id":      balance.EmployeeID,
		"total_leaves":     balance.TotalLeaves,
		"leaves_taken":     balance.LeavesTaken,
		"remaining_leaves": balance.RemainingLeaves(),
	})
}

// Grant handles POST /employees/{id}/leave-balance/grant (admin only)
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.pathID(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto GrantLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Grant(employeeID, dto.Days); err != nil {
		h.Logger.Error("Grant: service error", "error", err, "employee_id", employeeID, "days", dto.Days)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func (h *Handler) pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
