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

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/auth"
	authPostgres "github.com/frahmantamala/portal-management/internal/auth/postgres"
	"github.com/frahmantamala/portal-management/internal/core/events"
	"github.com/frahmantamala/portal-management/internal/department"
	departmentPostgres "github.com/frahmantamala/portal-management/internal/department/postgres"
	"github.com/frahmantamala/portal-management/internal/document"
	documentPostgres "github.com/frahmantamala/portal-management/internal/document/postgres"
	"github.com/frahmantamala/portal-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/portal-management/internal/notification/postgres"
	"github.com/frahmantamala/portal-management/internal/post"
	postPostgres "github.com/frahmantamala/portal-management/internal/post/postgres"
	"github.com/frahmantamala/portal-management/internal/review"
	reviewPostgres "github.com/frahmantamala/portal-management/internal/review/postgres"
	"github.com/frahmantamala/portal-management/internal/transport"
	"github.com/frahmantamala/portal-management/internal/transport/rest"
	"github.com/frahmantamala/portal-management/internal/user"
	userPostgres "github.com/frahmantamala/portal-management/internal/user/postgres"
	"github.com/frahmantamala/portal-management/pkg/logger"

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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

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

func setupRoutes(deps *Dependencies) {
	handlers := buildHandlers(deps)
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, deps.Logger)
}

func buildHandlers(deps *Dependencies) rest.Handlers {
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	eventBus := events.NewEventBus(lg)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), tokenGen, deps.Config.Security.BCryptCost)

	userService := user.NewService(userPostgres.NewUserRepository(deps.GormDB), authService, lg)
	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(deps.GormDB), lg)
	postService := post.NewService(postPostgres.NewPostRepository(deps.GormDB), eventBus, lg)
	documentService := document.NewService(documentPostgres.NewDocumentRepository(deps.GormDB), eventBus, lg)
	reviewService := review.NewService(reviewPostgres.NewCommentRepository(deps.GormDB), postService, documentService, lg)
	notificationService := notification.NewService(notificationPostgres.NewNotificationRepository(deps.GormDB), lg)

	notification.NewEventHandler(notificationService, lg).RegisterEventHandlers(eventBus)

	return rest.Handlers{
		Auth:         auth.NewHandler(baseHandler, authService),
		User:         user.NewHandler(baseHandler, userService),
		Department:   department.NewHandler(baseHandler, departmentService),
		Post:         post.NewHandler(baseHandler, postService),
		Document:     document.NewHandler(baseHandler, documentService),
		Review:       review.NewHandler(baseHandler, reviewService),
		Notification: notification.NewHandler(baseHandler, notificationService),
	}
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection pool via the pgx stdlib driver.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	dbConn, err := sqlx.Connect("pgx", cfg.Source)
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
