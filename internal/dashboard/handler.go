package dashboard

import (
	"net/http"

	"github.com/hrcore/employee-management/internal"
	"github.com/hrcore/employee-management/internal/transport"
	"github.com/hrcore/employee-management/pkg/logger"
)

type ServiceAPI interface {
	AdminSummary() (*AdminSummary, error)
	ManagerSummary(userID int64) (*ManagerSummary, error)
	EmployeeSummary(userID int64) (*EmployeeSummary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.AdminSummary()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) Manager(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.ManagerSummary(userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) Employee(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.EmployeeSummary(userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}
