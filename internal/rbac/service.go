package rbac

import (
	"context"
	"log/slog"

	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/core/events"
)

// RepositoryAPI is the data access surface the resolver needs. Rows are
// returned with their Module association loaded so the resolver never
// issues per-row lookups.
type RepositoryAPI interface {
	RoleDefaults(roleID int64) ([]*rbacDatamodel.RoleModulePermission, error)
	UserOverrides(userID int64) ([]*rbacDatamodel.UserModulePermission, error)
	ActiveModules() ([]*rbacDatamodel.Module, error)
	AllModules() ([]*rbacDatamodel.Module, error)
	ModuleByName(name string) (*rbacDatamodel.Module, error)
	Roles() ([]*rbacDatamodel.Role, error)
	RoleByName(name string) (*rbacDatamodel.Role, error)
	UpsertOverride(perm *rbacDatamodel.UserModulePermission) error
	DeleteOverride(userID, moduleID int64) (bool, error)
	SetModuleActive(name string, active bool) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ResolvePermissions computes the effective permission set for a user:
// role defaults seeded first, per-user overrides OR-merged on top. A
// user with no role and no overrides yields an empty map, not an error.
func (s *Service) ResolvePermissions(u *userDatamodel.User) (PermissionMap, error) {
	resolved := make(PermissionMap)

	if u == nil {
		return resolved, nil
	}

	if u.RoleID != nil {
		defaults, err := s.repo.RoleDefaults(*u.RoleID)
		if err != nil {
			s.logger.Error("failed to load role defaults", "error", err, "user_id", u.ID, "role_id", *u.RoleID)
			return nil, err
		}
		for _, perm := range defaults {
			if perm.Module == nil {
				continue
			}
			resolved[perm.Module.Name] = Permissions{
				CanView:   perm.CanView,
				CanCreate: perm.CanCreate,
				CanEdit:   perm.CanEdit,
				CanDelete: perm.CanDelete,
			}
		}
	}

	overrides, err := s.repo.UserOverrides(u.ID)
	if err != nil {
		s.logger.Error("failed to load user overrides", "error", err, "user_id", u.ID)
		return nil, err
	}
	for _, perm := range overrides {
		if perm.Module == nil {
			continue
		}
		granted := Permissions{
			CanView:   perm.CanView,
			CanCreate: perm.CanCreate,
			CanEdit:   perm.CanEdit,
			CanDelete: perm.CanDelete,
		}
		resolved[perm.Module.Name] = resolved[perm.Module.Name].Merge(granted)
	}

	return resolved, nil
}

// CheckPermission is the single choke point every protected operation
// calls before acting. Absence of permission is a boolean outcome, never
// an error; only infrastructure failures propagate.
func (s *Service) CheckPermission(u *userDatamodel.User, moduleName, action string) (bool, error) {
	resolved, err := s.ResolvePermissions(u)
	if err != nil {
		return false, err
	}
	return resolved.Can(moduleName, action), nil
}

// AccessibleModules derives the navigation view: active modules in sort
// order whose resolved view flag is true. Inactive modules never surface
// regardless of grants.
func (s *Service) AccessibleModules(u *userDatamodel.User) ([]ModuleAccess, error) {
	resolved, err := s.ResolvePermissions(u)
	if err != nil {
		return nil, err
	}

	modules, err := s.repo.ActiveModules()
	if err != nil {
		s.logger.Error("failed to load active modules", "error", err)
		return nil, err
	}

	accessible := make([]ModuleAccess, 0, len(modules))
	for _, mod := range modules {
		perms, ok := resolved[mod.Name]
		if !ok || !perms.CanView {
			continue
		}
		accessible = append(accessible, ModuleAccess{
			Name:        mod.Name,
			DisplayName: mod.DisplayName,
			Category:    mod.Category,
			Icon:        mod.Icon,
			Route:       mod.Route,
			CanView:     perms.CanView,
			CanCreate:   perms.CanCreate,
			CanEdit:     perms.CanEdit,
			CanDelete:   perms.CanDelete,
		})
	}

	return accessible, nil
}

// GrantOverride creates or updates the single override row for
// (userID, moduleName). An unknown module name is a configuration error,
// reported distinctly from a permission denial.
func (s *Service) GrantOverride(ctx context.Context, userID int64, moduleName string, flags Permissions, grantedBy *int64) error {
	module, err := s.repo.ModuleByName(moduleName)
	if err != nil {
		s.logger.Error("failed to look up module", "error", err, "module", moduleName)
		return err
	}
	if module == nil {
		return ErrModuleNotFound
	}

	perm := &rbacDatamodel.UserModulePermission{
		UserID:    userID,
		ModuleID:  module.ID,
		CanView:   flags.CanView,
		CanCreate: flags.CanCreate,
		CanEdit:   flags.CanEdit,
		CanDelete: flags.CanDelete,
		GrantedBy: grantedBy,
	}
	if err := s.repo.UpsertOverride(perm); err != nil {
		s.logger.Error("failed to upsert override", "error", err, "user_id", userID, "module", moduleName)
		return err
	}

	s.logger.Info("override granted", "user_id", userID, "module", moduleName, "granted_by", grantedBy)
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewPermissionGrantedEvent(userID, moduleName, grantedBy))
	}
	return nil
}

// RevokeOverride removes the override row if present and reports whether
// one existed. Role defaults are untouched.
func (s *Service) RevokeOverride(ctx context.Context, userID int64, moduleName string) (bool, error) {
	module, err := s.repo.ModuleByName(moduleName)
	if err != nil {
		s.logger.Error("failed to look up module", "error", err, "module", moduleName)
		return false, err
	}
	if module == nil {
		return false, ErrModuleNotFound
	}

	existed, err := s.repo.DeleteOverride(userID, module.ID)
	if err != nil {
		s.logger.Error("failed to delete override", "error", err, "user_id", userID, "module", moduleName)
		return false, err
	}

	if existed {
		s.logger.Info("override revoked", "user_id", userID, "module", moduleName)
		if s.bus != nil {
			_ = s.bus.Publish(ctx, events.NewPermissionRevokedEvent(userID, moduleName))
		}
	}
	return existed, nil
}

// Roles lists the role catalog for administrative tooling.
func (s *Service) Roles() ([]*rbacDatamodel.Role, error) {
	return s.repo.Roles()
}

// RoleMatrix returns the default permission rows of one role, for the
// role management screen.
func (s *Service) RoleMatrix(roleName string) ([]*rbacDatamodel.RoleModulePermission, error) {
	role, err := s.repo.RoleByName(roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return s.repo.RoleDefaults(role.ID)
}

// Modules lists the full module catalog, active or not, for system
// settings.
func (s *Service) Modules() ([]*rbacDatamodel.Module, error) {
	return s.repo.AllModules()
}

// SetModuleActive toggles a module's active flag, the only runtime
// mutation the module catalog supports.
func (s *Service) SetModuleActive(name string, active bool) error {
	found, err := s.repo.SetModuleActive(name, active)
	if err != nil {
		return err
	}
	if !found {
		return ErrModuleNotFound
	}
	s.logger.Info("module active flag changed", "module", name, "active", active)
	return nil
}
