package rbac

import (
	"errors"
	"fmt"
	"log/slog"

	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	"gorm.io/gorm"
)

// ModuleDef is one entry of the static module catalog.
type ModuleDef struct {
	Name        string
	DisplayName string
	Category    string
	Icon        string
	Route       string
	SortOrder   int
}

// RoleDef is one entry of the role catalog with its default grants.
type RoleDef struct {
	Name        string
	DisplayName string
	Description string
	Permissions map[string]Permissions
}

// DefaultModules is the portal's addressable surface. Names are stable
// keys used in code and URLs; sort order drives navigation.
var DefaultModules = []ModuleDef{
	{Name: "dashboard", DisplayName: "Dashboard", Category: "dashboard", Icon: "solar:pie-chart-2-bold-duotone", Route: "/dashboard", SortOrder: 0},
	{Name: "schedule", DisplayName: "Schedule", Category: "operations", Icon: "solar:calendar-bold-duotone", Route: "/operations/schedule", SortOrder: 1},
	{Name: "dtr", DisplayName: "Daily Time Record", Category: "operations", Icon: "solar:clock-circle-bold-duotone", Route: "/operations/dtr", SortOrder: 2},
	{Name: "employee_directory", DisplayName: "Employee Directory", Category: "operations", Icon: "solar:users-group-rounded-bold-duotone", Route: "/operations/employee-directory", SortOrder: 10},
	{Name: "requests", DisplayName: "Requests", Category: "hr_people", Icon: "solar:clipboard-list-bold-duotone", Route: "/hr/requests", SortOrder: 11},
	{Name: "pay_disputes", DisplayName: "Pay Disputes", Category: "hr_people", Icon: "solar:wallet-money-bold-duotone", Route: "/hr/pay-disputes", SortOrder: 12},
	{Name: "ir_nte_logs", DisplayName: "IR/NTE Logs", Category: "hr_people", Icon: "solar:document-text-bold-duotone", Route: "/hr/ir-nte", SortOrder: 13},
	{Name: "onboarding", DisplayName: "Onboarding", Category: "hr_people", Icon: "solar:user-plus-bold-duotone", Route: "/hr/onboarding", SortOrder: 14},
	{Name: "user_management", DisplayName: "User Management", Category: "admin", Icon: "solar:users-group-two-rounded-bold-duotone", Route: "/admin/users", SortOrder: 90},
	{Name: "role_management", DisplayName: "Role Management", Category: "admin", Icon: "solar:shield-user-bold-duotone", Route: "/admin/roles", SortOrder: 91},
	{Name: "system_settings", DisplayName: "System Settings", Category: "admin", Icon: "solar:settings-bold-duotone", Route: "/admin/settings", SortOrder: 92},
}

var full = Permissions{CanView: true, CanCreate: true, CanEdit: true, CanDelete: true}
var viewOnly = Permissions{CanView: true}

// DefaultRoles are the system roles. They are seed data and cannot be
// deleted through the API.
var DefaultRoles = []RoleDef{
	{
		Name: "admin", DisplayName: "Administrator", Description: "Full system access",
		Permissions: map[string]Permissions{
			"dashboard": full, "schedule": full, "dtr": full, "employee_directory": full,
			"requests": full, "pay_disputes": full, "ir_nte_logs": full, "onboarding": full,
			"user_management": full, "role_management": full, "system_settings": full,
		},
	},
	{
		Name: "executive", DisplayName: "Executive", Description: "Executive level access - view all, limited edit",
		Permissions: map[string]Permissions{
			"dashboard": viewOnly, "schedule": viewOnly, "dtr": viewOnly,
			"employee_directory": viewOnly,
			"requests":           {CanView: true, CanEdit: true},
			"pay_disputes":       viewOnly, "ir_nte_logs": viewOnly, "onboarding": viewOnly,
		},
	},
	{
		Name: "human_resource", DisplayName: "Human Resource", Description: "Full HR & People module access",
		Permissions: map[string]Permissions{
			"dashboard": viewOnly, "employee_directory": full, "requests": full,
			"pay_disputes": full, "ir_nte_logs": full, "onboarding": full,
		},
	},
	{
		Name: "finance", DisplayName: "Finance", Description: "Finance and payroll access",
		Permissions: map[string]Permissions{
			"dashboard": viewOnly, "employee_directory": viewOnly,
			"pay_disputes": {CanView: true, CanCreate: true, CanEdit: true},
			"dtr":          viewOnly,
		},
	},
	{
		Name: "it", DisplayName: "IT", Description: "IT and system administration",
		Permissions: map[string]Permissions{
			"dashboard":          viewOnly,
			"user_management":    {CanView: true, CanCreate: true, CanEdit: true},
			"system_settings":    {CanView: true, CanEdit: true},
			"employee_directory": viewOnly,
		},
	},
	{
		Name: "project_manager", DisplayName: "Project Manager", Description: "Project and team management",
		Permissions: map[string]Permissions{
			"dashboard": viewOnly,
			"schedule":  {CanView: true, CanCreate: true, CanEdit: true},
			"dtr":       viewOnly, "employee_directory": viewOnly,
			"requests": {CanView: true, CanEdit: true},
		},
	},
	{
		Name: "supervisor", DisplayName: "Supervisor", Description: "Team supervisor - operations focus",
		Permissions: map[string]Permissions{
			"dashboard":          viewOnly,
			"schedule":           {CanView: true, CanCreate: true, CanEdit: true},
			"dtr":                {CanView: true, CanCreate: true, CanEdit: true},
			"employee_directory": viewOnly,
			"requests":           {CanView: true, CanCreate: true, CanEdit: true},
			"ir_nte_logs":        {CanView: true, CanCreate: true, CanEdit: true},
		},
	},
	{
		Name: "manager", DisplayName: "Manager", Description: "Operations manager - full operations access",
		Permissions: map[string]Permissions{
			"dashboard": viewOnly, "schedule": full, "dtr": full,
			"employee_directory": {CanView: true, CanEdit: true},
			"requests":           full,
			"ir_nte_logs":        {CanView: true, CanCreate: true, CanEdit: true},
		},
	},
	{
		Name: "agent", DisplayName: "Agent", Description: "Regular employee - basic access",
		Permissions: map[string]Permissions{
			"dashboard": viewOnly,
			"dtr":       {CanView: true, CanCreate: true},
			"requests":  {CanView: true, CanCreate: true},
		},
	},
}

// SeedCatalog initializes the module and role catalogs. It is idempotent
// and keyed by unique name: existing rows are left untouched so
// administrative edits made after initial seeding survive restarts.
func SeedCatalog(db *gorm.DB, logger *slog.Logger) error {
	for _, def := range DefaultModules {
		var count int64
		if err := db.Model(&rbacDatamodel.Module{}).Where("name = ?", def.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("check module %s: %w", def.Name, err)
		}
		if count > 0 {
			continue
		}
		module := rbacDatamodel.Module{
			Name:        def.Name,
			DisplayName: def.DisplayName,
			Category:    def.Category,
			Icon:        def.Icon,
			Route:       def.Route,
			SortOrder:   def.SortOrder,
			IsActive:    true,
		}
		if err := db.Create(&module).Error; err != nil {
			return fmt.Errorf("seed module %s: %w", def.Name, err)
		}
		logger.Info("seeded module", "name", def.Name)
	}

	for _, def := range DefaultRoles {
		var existing rbacDatamodel.Role
		err := db.Where("name = ?", def.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check role %s: %w", def.Name, err)
		}

		role := rbacDatamodel.Role{
			Name:         def.Name,
			DisplayName:  def.DisplayName,
			Description:  def.Description,
			IsSystemRole: true,
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", def.Name, err)
		}

		for moduleName, perms := range def.Permissions {
			var module rbacDatamodel.Module
			if err := db.Where("name = ?", moduleName).First(&module).Error; err != nil {
				return fmt.Errorf("role %s references module %s: %w", def.Name, moduleName, err)
			}
			grant := rbacDatamodel.RoleModulePermission{
				RoleID:    role.ID,
				ModuleID:  module.ID,
				CanView:   perms.CanView,
				CanCreate: perms.CanCreate,
				CanEdit:   perms.CanEdit,
				CanDelete: perms.CanDelete,
			}
			if err := db.Create(&grant).Error; err != nil {
				return fmt.Errorf("seed role %s grant on %s: %w", def.Name, moduleName, err)
			}
		}
		logger.Info("seeded role", "name", def.Name, "grants", len(def.Permissions))
	}

	return nil
}
