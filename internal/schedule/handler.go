package schedule

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/mjdelrosario/bpo-portal/internal/auth"
	scheduleDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/schedule"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/transport"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"
)

type ServiceAPI interface {
	UpsertShift(dto UpsertShiftDTO) (*scheduleDatamodel.ShiftSchedule, error)
	BulkUpsert(dto BulkUpsertDTO) (int, error)
	Publish(dto PublishDTO) (int64, error)
	List(filter ListFilter, actorID int64, canManage bool) ([]*scheduleDatamodel.ShiftSchedule, error)
	DeleteShift(userID int64, scheduleDate string) (bool, error)
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

func (h *Handler) UpsertShift(w http.ResponseWriter, r *http.Request) {
	var dto UpsertShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shift, err := h.Service.UpsertShift(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, shift)
}

func (h *Handler) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var dto BulkUpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	applied, err := h.Service.BulkUpsert(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int{"applied": applied})
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var dto PublishDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	affected, err := h.Service.Publish(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int64{"published": affected})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{
		Campaign: r.URL.Query().Get("campaign"),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	canManage := user.Can("schedule", rbac.ActionEdit)
	shifts, err := h.Service.List(filter, user.ID, canManage)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, shifts)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	date := chi.URLParam(r, "date")

	existed, err := h.Service.DeleteShift(userID, date)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !existed {
		h.WriteError(w, http.StatusNotFound, "shift not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
