package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	rbacDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
)

func TestRBACRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBACRepository Suite")
}

var _ = Describe("RBACRepository", func() {
	var (
		db   *gorm.DB
		repo rbac.RepositoryAPI
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&rbacDatamodel.Module{},
			&rbacDatamodel.Role{},
			&rbacDatamodel.RoleModulePermission{},
			&rbacDatamodel.UserModulePermission{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewRBACRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	// IsActive carries a default:true tag, so inactive seed data has to go
	// through an explicit update rather than Create.
	seedModule := func(name string, sortOrder int, active bool) *rbacDatamodel.Module {
		mod := &rbacDatamodel.Module{
			Name:        name,
			DisplayName: name,
			Category:    "operations",
			SortOrder:   sortOrder,
			IsActive:    true,
		}
		Expect(db.Create(mod).Error).NotTo(HaveOccurred())
		if !active {
			Expect(db.Model(mod).Update("is_active", false).Error).NotTo(HaveOccurred())
		}
		return mod
	}

	Describe("ActiveModules", func() {
		It("should return only active modules in sort order", func() {
			seedModule("schedule", 3, true)
			seedModule("dtr", 1, true)
			seedModule("payroll_reports", 2, false)

			modules, err := repo.ActiveModules()

			Expect(err).NotTo(HaveOccurred())
			Expect(modules).To(HaveLen(2))
			Expect(modules[0].Name).To(Equal("dtr"))
			Expect(modules[1].Name).To(Equal("schedule"))
		})
	})

	Describe("ModuleByName", func() {
		It("should find an existing module", func() {
			seedModule("dtr", 1, true)

			mod, err := repo.ModuleByName("dtr")

			Expect(err).NotTo(HaveOccurred())
			Expect(mod).NotTo(BeNil())
			Expect(mod.Name).To(Equal("dtr"))
		})

		It("should return nil without error for a missing module", func() {
			mod, err := repo.ModuleByName("no_such_module")

			Expect(err).NotTo(HaveOccurred())
			Expect(mod).To(BeNil())
		})
	})

	Describe("RoleDefaults", func() {
		It("should load the module association on every row", func() {
			mod := seedModule("pay_disputes", 1, true)
			role := &rbacDatamodel.Role{Name: "payroll_staff", DisplayName: "Payroll Staff"}
			Expect(db.Create(role).Error).NotTo(HaveOccurred())
			Expect(db.Create(&rbacDatamodel.RoleModulePermission{
				RoleID:   role.ID,
				ModuleID: mod.ID,
				CanView:  true,
				CanEdit:  true,
			}).Error).NotTo(HaveOccurred())

			defaults, err := repo.RoleDefaults(role.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(defaults).To(HaveLen(1))
			Expect(defaults[0].Module).NotTo(BeNil())
			Expect(defaults[0].Module.Name).To(Equal("pay_disputes"))
			Expect(defaults[0].CanEdit).To(BeTrue())
		})
	})

	Describe("UpsertOverride", func() {
		It("should insert a new override row", func() {
			mod := seedModule("dtr", 1, true)

			err := repo.UpsertOverride(&rbacDatamodel.UserModulePermission{
				UserID:   1,
				ModuleID: mod.ID,
				CanView:  true,
			})

			Expect(err).NotTo(HaveOccurred())

			overrides, err := repo.UserOverrides(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(overrides).To(HaveLen(1))
			Expect(overrides[0].Module.Name).To(Equal("dtr"))
		})

		It("should update the existing row on re-grant, never duplicate", func() {
			mod := seedModule("dtr", 1, true)

			err := repo.UpsertOverride(&rbacDatamodel.UserModulePermission{
				UserID:   1,
				ModuleID: mod.ID,
				CanView:  true,
			})
			Expect(err).NotTo(HaveOccurred())

			grantor := int64(99)
			err = repo.UpsertOverride(&rbacDatamodel.UserModulePermission{
				UserID:    1,
				ModuleID:  mod.ID,
				CanView:   true,
				CanEdit:   true,
				GrantedBy: &grantor,
			})
			Expect(err).NotTo(HaveOccurred())

			var count int64
			err = db.Model(&rbacDatamodel.UserModulePermission{}).
				Where("user_id = ? AND module_id = ?", 1, mod.ID).
				Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))

			overrides, err := repo.UserOverrides(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(overrides[0].CanEdit).To(BeTrue())
			Expect(overrides[0].GrantedBy).NotTo(BeNil())
			Expect(*overrides[0].GrantedBy).To(Equal(grantor))
		})
	})

	Describe("DeleteOverride", func() {
		It("should report true when a row was removed", func() {
			mod := seedModule("dtr", 1, true)
			Expect(repo.UpsertOverride(&rbacDatamodel.UserModulePermission{
				UserID:   1,
				ModuleID: mod.ID,
				CanView:  true,
			})).NotTo(HaveOccurred())

			existed, err := repo.DeleteOverride(1, mod.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeTrue())

			overrides, err := repo.UserOverrides(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(overrides).To(BeEmpty())
		})

		It("should report false when no row existed", func() {
			existed, err := repo.DeleteOverride(1, 42)

			Expect(err).NotTo(HaveOccurred())
			Expect(existed).To(BeFalse())
		})
	})

	Describe("SetModuleActive", func() {
		It("should toggle the flag and report the module was found", func() {
			seedModule("schedule", 1, true)

			found, err := repo.SetModuleActive("schedule", false)

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())

			mod, err := repo.ModuleByName("schedule")
			Expect(err).NotTo(HaveOccurred())
			Expect(mod.IsActive).To(BeFalse())
		})

		It("should report false for an unknown module", func() {
			found, err := repo.SetModuleActive("no_such_module", true)

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
		})
	})

	Describe("RoleByName", func() {
		It("should return nil without error for a missing role", func() {
			role, err := repo.RoleByName("no_such_role")

			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(BeNil())
		})
	})
})
