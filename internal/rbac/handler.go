package rbac

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/mjdelrosario/bpo-portal/internal"
	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/transport"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"
)

type ServiceAPI interface {
	AccessibleModules(u *userDatamodel.User) ([]ModuleAccess, error)
	CheckPermission(u *userDatamodel.User, moduleName, action string) (bool, error)
	GrantOverride(ctx context.Context, userID int64, moduleName string, flags Permissions, grantedBy *int64) error
	RevokeOverride(ctx context.Context, userID int64, moduleName string) (bool, error)
	Roles() ([]*rbacDatamodel.Role, error)
	RoleMatrix(roleName string) ([]*rbacDatamodel.RoleModulePermission, error)
	Modules() ([]*rbacDatamodel.Module, error)
	SetModuleActive(name string, active bool) error
}

// UserGetter loads the datamodel user behind an account ID, needed when
// resolving permissions for someone other than the caller.
type UserGetter interface {
	GetByID(id int64) (*userDatamodel.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Users   UserGetter
}

func NewHandler(service ServiceAPI, users UserGetter) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Users:       users,
	}
}

// callerID extracts the authenticated user ID the auth middleware put
// in context.
func callerID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(internal.UserIDFromContext(r.Context()), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// MyModules returns the caller's navigation view: active modules they
// can see, in sort order.
func (h *Handler) MyModules(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Users.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	modules, err := h.Service.AccessibleModules(u)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, modules)
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.Roles()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) RoleMatrix(w http.ResponseWriter, r *http.Request) {
	roleName := chi.URLParam(r, "name")

	matrix, err := h.Service.RoleMatrix(roleName)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, matrix)
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Service.Modules()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, modules)
}

func (h *Handler) SetModuleActive(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var dto struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetModuleActive(name, dto.IsActive); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"module": name, "is_active": dto.IsActive})
}

// GrantOverride upserts a per-user grant on a module. Flags are
// additive on top of role defaults.
func (h *Handler) GrantOverride(w http.ResponseWriter, r *http.Request) {
	grantorID, ok := callerID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	moduleName := chi.URLParam(r, "module")

	var flags Permissions
	if err := json.NewDecoder(r.Body).Decode(&flags); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.GrantOverride(r.Context(), userID, moduleName, flags, &grantorID); err != nil {
		h.Logger.Error("GrantOverride: service error", "error", err, "user_id", userID, "module", moduleName)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"module":  moduleName,
		"granted": flags,
	})
}

func (h *Handler) RevokeOverride(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	moduleName := chi.URLParam(r, "module")

	existed, err := h.Service.RevokeOverride(r.Context(), userID, moduleName)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !existed {
		h.WriteError(w, http.StatusNotFound, "no override for this user and module")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckUserPermission answers whether a user may perform an action on a
// module, for administrative inspection.
func (h *Handler) CheckUserPermission(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	moduleName := r.URL.Query().Get("module")
	action := r.URL.Query().Get("action")
	if moduleName == "" || action == "" {
		h.WriteError(w, http.StatusBadRequest, "module and action query parameters are required")
		return
	}

	u, err := h.Users.GetByID(userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	allowed, err := h.Service.CheckPermission(u, moduleName, action)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"module":  moduleName,
		"action":  action,
		"allowed": allowed,
	})
}
