package rbac

import (
	"github.com/mjdelrosario/bpo-portal/internal"
)

// Actions a permission flag can be checked against. Anything else
// resolves to a denial, never an error.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Permissions is the fixed set of flags a user holds on one module.
// A zero value means fully unauthorized.
type Permissions struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// Merge combines two grants with logical OR. Overrides can only add
// capability on top of role defaults, never revoke one.
func (p Permissions) Merge(other Permissions) Permissions {
	return Permissions{
		CanView:   p.CanView || other.CanView,
		CanCreate: p.CanCreate || other.CanCreate,
		CanEdit:   p.CanEdit || other.CanEdit,
		CanDelete: p.CanDelete || other.CanDelete,
	}
}

// Allows reports whether the named action is permitted. Unknown action
// names are denied.
func (p Permissions) Allows(action string) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	default:
		return false
	}
}

// PermissionMap is the resolved effective permission set for one user,
// keyed by module name. Modules absent from the map are fully denied.
type PermissionMap map[string]Permissions

// Can reports whether the map permits action on moduleName. Missing
// modules and unrecognized actions are plain denials.
func (m PermissionMap) Can(moduleName, action string) bool {
	perms, ok := m[moduleName]
	if !ok {
		return false
	}
	return perms.Allows(action)
}

// ModuleAccess is one entry of the navigation view: an active module the
// user may see, with the remaining flags attached for UI affordance.
type ModuleAccess struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Route       string `json:"route"`
	CanView     bool   `json:"can_view"`
	CanCreate   bool   `json:"can_create"`
	CanEdit     bool   `json:"can_edit"`
	CanDelete   bool   `json:"can_delete"`
}

var (
	ErrModuleNotFound = internal.ErrModuleNotFound
	ErrRoleNotFound   = internal.ErrRoleNotFound
)
