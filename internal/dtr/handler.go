package dtr

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mjdelrosario/bpo-portal/internal/auth"
	dtrDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dtr"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/transport"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"
)

type ServiceAPI interface {
	ClockIn(userID int64) (*dtrDatamodel.DailyTimeRecord, error)
	ClockOut(userID int64) (*dtrDatamodel.DailyTimeRecord, error)
	BreakIn(userID int64) (*dtrDatamodel.DailyTimeRecord, error)
	BreakOut(userID int64) (*dtrDatamodel.DailyTimeRecord, error)
	ManualEntry(dto ManualEntryDTO) (*dtrDatamodel.DailyTimeRecord, error)
	List(filter ListFilter, actorID int64, canManage bool) ([]*dtrDatamodel.DailyTimeRecord, error)
	Today(userID int64) (*dtrDatamodel.DailyTimeRecord, error)
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

// punch wraps the four clock endpoints, which differ only in the
// service call.
func (h *Handler) punch(w http.ResponseWriter, r *http.Request, fn func(int64) (*dtrDatamodel.DailyTimeRecord, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := fn(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.Service.ClockIn)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.Service.ClockOut)
}

func (h *Handler) BreakIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.Service.BreakIn)
}

func (h *Handler) BreakOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, h.Service.BreakOut)
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.Today(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var dto ManualEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.ManualEntry(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Status:   r.URL.Query().Get("status"),
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	canManage := user.Can("dtr", rbac.ActionEdit)
	records, err := h.Service.List(filter, user.ID, canManage)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}
