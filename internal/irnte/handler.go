package irnte

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/mjdelrosario/bpo-portal/internal/auth"
	irnteDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/irnte"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/transport"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"
)

type ServiceAPI interface {
	CreateLog(ctx context.Context, dto CreateLogDTO, issuedBy int64) (*irnteDatamodel.IRNTELog, error)
	GetLog(id int64, actorID int64, canManage bool) (*irnteDatamodel.IRNTELog, error)
	ListLogs(filter ListLogsFilter, actorID int64, canManage bool) ([]*irnteDatamodel.IRNTELog, error)
	Acknowledge(id int64, actorID int64) (*irnteDatamodel.IRNTELog, error)
	UpdateStatus(id int64, dto UpdateLogStatusDTO) (*irnteDatamodel.IRNTELog, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func canManage(u *auth.User) bool {
	return u.Can("ir_nte_logs", rbac.ActionEdit)
}

func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.CreateLog(r.Context(), dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateLog: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) GetLog(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid log ID")
		return
	}

	l, err := h.Service.GetLog(id, user.ID, canManage(user))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListLogsFilter{
		DocType: r.URL.Query().Get("doc_type"),
		Status:  r.URL.Query().Get("status"),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.Service.ListLogs(filter, user.ID, canManage(user))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid log ID")
		return
	}

	l, err := h.Service.Acknowledge(id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid log ID")
		return
	}

	var dto UpdateLogStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.UpdateStatus(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}
