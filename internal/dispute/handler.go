package dispute

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/mjdelrosario/bpo-portal/internal/auth"
	disputeDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/dispute"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/transport"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"
)

type ServiceAPI interface {
	CreateDispute(ctx context.Context, dto CreateDisputeDTO, createdBy int64) (*disputeDatamodel.PayDispute, error)
	GetDispute(id int64, actorID int64, canManage bool) (*disputeDatamodel.PayDispute, error)
	ListDisputes(filter ListDisputesFilter, actorID int64, canManage bool) ([]*disputeDatamodel.PayDispute, error)
	UpdateStatus(id int64, dto UpdateDisputeStatusDTO) (*disputeDatamodel.PayDispute, error)
	AssignDispute(id int64, dto AssignDisputeDTO) (*disputeDatamodel.PayDispute, error)
	ResolveDispute(id int64, dto ResolveDisputeDTO) (*disputeDatamodel.PayDispute, error)
	AddComment(disputeID int64, dto AddCommentDTO, authorID int64, canManage bool) (*disputeDatamodel.PayDisputeComment, error)
	Comments(disputeID int64, actorID int64, canManage bool) ([]*disputeDatamodel.PayDisputeComment, error)
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

// canManage reports whether the actor holds edit on the pay_disputes
// module, which widens reads beyond their own disputes.
func canManage(u *auth.User) bool {
	return u.Can("pay_disputes", rbac.ActionEdit)
}

func (h *Handler) CreateDispute(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDisputeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.EmployeeID == 0 {
		dto.EmployeeID = user.ID
	}

	d, err := h.Service.CreateDispute(r.Context(), dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateDispute: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	d, err := h.Service.GetDispute(id, user.ID, canManage(user))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListDisputesFilter{
		Status: r.URL.Query().Get("status"),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	if v := r.URL.Query().Get("assigned_to"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssignedTo = &id
		}
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	disputes, err := h.Service.ListDisputes(filter, user.ID, canManage(user))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, disputes)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	var dto UpdateDisputeStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.UpdateStatus(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) AssignDispute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	var dto AssignDisputeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.AssignDispute(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	var dto ResolveDisputeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.ResolveDispute(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	var dto AddCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.AddComment(id, dto, user.ID, canManage(user))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dispute ID")
		return
	}

	comments, err := h.Service.Comments(id, user.ID, canManage(user))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, comments)
}
