package rbac

import "time"

// Module is an addressable functional area of the portal. The set is
// seeded once and effectively static; only is_active toggles at runtime.
type Module struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	DisplayName string    `gorm:"column:display_name;not null"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category;not null"`
	Icon        string    `gorm:"column:icon"`
	Route       string    `gorm:"column:route"`
	SortOrder   int       `gorm:"column:sort_order;default:0"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Module) TableName() string {
	return "modules"
}

// Role is a named bundle of default per-module permissions. System roles
// are seed data and cannot be deleted through the API.
type Role struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex;not null"`
	DisplayName  string    `gorm:"column:display_name;not null"`
	Description  string    `gorm:"column:description"`
	IsSystemRole bool      `gorm:"column:is_system_role;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleModulePermission is the default grant a role carries on a module.
// At most one row exists per (role_id, module_id).
type RoleModulePermission struct {
	ID        int64     `gorm:"primaryKey"`
	RoleID    int64     `gorm:"column:role_id;not null;uniqueIndex:idx_role_module"`
	ModuleID  int64     `gorm:"column:module_id;not null;uniqueIndex:idx_role_module"`
	CanView   bool      `gorm:"column:can_view;default:false"`
	CanCreate bool      `gorm:"column:can_create;default:false"`
	CanEdit   bool      `gorm:"column:can_edit;default:false"`
	CanDelete bool      `gorm:"column:can_delete;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Module *Module `gorm:"foreignKey:ModuleID"`
}

func (RoleModulePermission) TableName() string {
	return "role_module_permissions"
}

// UserModulePermission is a per-user override grant (cross-functional
// clearance) layered on top of role defaults. At most one row per
// (user_id, module_id); re-granting updates the existing row.
type UserModulePermission struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_module"`
	ModuleID  int64     `gorm:"column:module_id;not null;uniqueIndex:idx_user_module"`
	CanView   bool      `gorm:"column:can_view;default:false"`
	CanCreate bool      `gorm:"column:can_create;default:false"`
	CanEdit   bool      `gorm:"column:can_edit;default:false"`
	CanDelete bool      `gorm:"column:can_delete;default:false"`
	GrantedBy *int64    `gorm:"column:granted_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Module *Module `gorm:"foreignKey:ModuleID"`
}

func (UserModulePermission) TableName() string {
	return "user_module_permissions"
}
