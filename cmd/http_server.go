package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mjdelrosario/bpo-portal/internal"
	"github.com/mjdelrosario/bpo-portal/internal/auth"
	authPostgres "github.com/mjdelrosario/bpo-portal/internal/auth/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/core/events"
	"github.com/mjdelrosario/bpo-portal/internal/dispute"
	disputePostgres "github.com/mjdelrosario/bpo-portal/internal/dispute/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/dtr"
	dtrPostgres "github.com/mjdelrosario/bpo-portal/internal/dtr/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/employee"
	employeePostgres "github.com/mjdelrosario/bpo-portal/internal/employee/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/irnte"
	irntePostgres "github.com/mjdelrosario/bpo-portal/internal/irnte/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	rbacPostgres "github.com/mjdelrosario/bpo-portal/internal/rbac/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/request"
	requestPostgres "github.com/mjdelrosario/bpo-portal/internal/request/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/schedule"
	schedulePostgres "github.com/mjdelrosario/bpo-portal/internal/schedule/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/sequence"
	sequencePostgres "github.com/mjdelrosario/bpo-portal/internal/sequence/postgres"
	"github.com/mjdelrosario/bpo-portal/internal/transport/rest"
	"github.com/mjdelrosario/bpo-portal/internal/transport/swagger"
	"github.com/mjdelrosario/bpo-portal/internal/user"
	userPostgres "github.com/mjdelrosario/bpo-portal/internal/user/postgres"
	"github.com/mjdelrosario/bpo-portal/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.App.Environment)
	lg := logger.LoggerWrapper()

	// Startup check: a malformed API document should fail the boot, not
	// the first documentation request.
	if _, err := swagger.LoadSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)

	// RBAC and identifier assignment
	rbacRepo := rbacPostgres.NewRBACRepository(gormDB)
	rbacService := rbac.NewService(rbacRepo, bus, lg)
	seqRepo := sequencePostgres.NewSequenceRepository(gormDB, nil)
	seqService := sequence.NewService(seqRepo, lg)

	// Auth
	authRepo := authPostgres.NewAuthRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, rbacService, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	// Feature services
	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, rbacRepo, authService, lg)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), lg)
	disputeService := dispute.NewService(disputePostgres.NewDisputeRepository(gormDB), seqService, bus, lg)
	irnteService := irnte.NewService(irntePostgres.NewLogRepository(gormDB), seqService, bus, lg)
	requestService := request.NewService(requestPostgres.NewRequestRepository(gormDB), lg)
	dtrService := dtr.NewService(dtrPostgres.NewDTRRepository(gormDB), lg)
	scheduleService := schedule.NewService(schedulePostgres.NewScheduleRepository(gormDB), lg)

	handlers := rest.Handlers{
		Auth:     authHandler,
		RBAC:     rbac.NewHandler(rbacService, authRepo),
		User:     user.NewHandler(userService),
		Employee: employee.NewHandler(employeeService),
		Dispute:  dispute.NewHandler(disputeService),
		Request:  request.NewHandler(requestService),
		IRNTE:    irnte.NewHandler(irnteService),
		DTR:      dtr.NewHandler(dtrService),
		Schedule: schedule.NewHandler(scheduleService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
