package employee

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/mjdelrosario/bpo-portal/internal/transport"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"
)

type ServiceAPI interface {
	GetProfile(id int64) (*Profile, error)
	Search(filter SearchFilter) ([]*Profile, error)
	UpdateProfile(id int64, dto UpdateProfileDTO) (*Profile, error)
	Facets() (campaigns, departments []string, err error)
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

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filter := SearchFilter{
		Query:      r.URL.Query().Get("q"),
		Campaign:   r.URL.Query().Get("campaign"),
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	profiles, err := h.Service.Search(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	profile, err := h.Service.GetProfile(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.Service.UpdateProfile(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	campaigns, departments, err := h.Service.Facets()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string][]string{
		"campaigns":   campaigns,
		"departments": departments,
	})
}
