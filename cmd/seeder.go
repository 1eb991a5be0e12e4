package cmd

import (
	"log"
	"log/slog"
	"time"

	userDatamodel "github.com/mjdelrosario/bpo-portal/internal/core/datamodel/user"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed module catalog, system roles and sample accounts",
	Long:  `Seed the module catalog, the system role matrix and a few sample accounts for development. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.App.Environment)
		lg := logger.LoggerWrapper()

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if err := rbac.SeedCatalog(db, lg); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}

		seedAccounts(db, lg)
	},
}

type seedAccount struct {
	EmployeeNo string
	Email      string
	FullName   string
	RoleName   string
	Campaign   string
	Department string
}

var sampleAccounts = []seedAccount{
	{EmployeeNo: "EMP-0001", Email: "admin@portal.local", FullName: "Portal Admin", RoleName: "admin", Department: "IT"},
	{EmployeeNo: "EMP-0002", Email: "hr@portal.local", FullName: "Hannah Reyes", RoleName: "human_resource", Department: "HR"},
	{EmployeeNo: "EMP-0003", Email: "sup@portal.local", FullName: "Samuel Cruz", RoleName: "supervisor", Campaign: "Telco East", Department: "Operations"},
	{EmployeeNo: "EMP-0004", Email: "agent@portal.local", FullName: "Alice Santos", RoleName: "agent", Campaign: "Telco East", Department: "Operations"},
}

func seedAccounts(db *gorm.DB, lg *slog.Logger) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	now := time.Now()

	for _, acct := range sampleAccounts {
		var count int64
		if err := db.Model(&userDatamodel.User{}).Where("email = ?", acct.Email).Count(&count).Error; err != nil {
			log.Fatalf("failed to check account %s: %v", acct.Email, err)
		}
		if count > 0 {
			continue
		}

		u := userDatamodel.User{
			EmployeeNo:    acct.EmployeeNo,
			Email:         acct.Email,
			FullName:      acct.FullName,
			PasswordHash:  string(hash),
			Campaign:      acct.Campaign,
			Department:    acct.Department,
			DateOfJoining: &now,
			IsActive:      true,
		}

		if acct.RoleName != "" {
			var role struct{ ID int64 }
			if err := db.Table("roles").Where("name = ?", acct.RoleName).Select("id").Scan(&role).Error; err != nil || role.ID == 0 {
				log.Fatalf("role %s not found; run catalog seeding first", acct.RoleName)
			}
			u.RoleID = &role.ID
		}

		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("failed to seed account %s: %v", acct.Email, err)
		}
		lg.Info("seeded account", "email", acct.Email, "role", acct.RoleName)
	}
}
