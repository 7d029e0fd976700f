package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/todolist/internal/config"
	"github.com/locvowork/todolist/internal/database"
	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/handler"
	"github.com/locvowork/todolist/internal/logger"
	"github.com/locvowork/todolist/internal/repository/memstore"
	"github.com/locvowork/todolist/internal/repository/mongostore"
	"github.com/locvowork/todolist/internal/repository/postgres"
	"github.com/locvowork/todolist/internal/service"
	"github.com/locvowork/todolist/internal/session"
	"github.com/locvowork/todolist/pkg/googlecloud"
	"github.com/locvowork/todolist/pkg/simpleexcel"
)

const sessionSweepInterval = time.Hour

type App struct {
	Echo *echo.Echo

	closers []func(context.Context) error
	cancel  context.CancelFunc
}

// Stores bundles the three repositories a backend provides.
type Stores struct {
	Users    domain.UserRepository
	Tasks    domain.TaskRepository
	Sessions domain.SessionStore
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.SetLevel(cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	ctx, a.cancel = context.WithCancel(ctx)

	stores, err := a.openStores(ctx, cfg.STORE_BACKEND)
	if err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.STORE_BACKEND, err)
	}
	logger.InfoLog(ctx, "Using %s backend", cfg.STORE_BACKEND)

	secret := cfg.SESSION_SECRET
	if secret == "" {
		// only reachable for the memory backend; sessions die with the process anyway
		secret = uuid.NewString()
		logger.WarnLog(ctx, "SESSION_SECRET not set, using a random secret")
	}

	layout, err := loadExportLayout(cfg.EXPORT_LAYOUT_FILE)
	if err != nil {
		return err
	}

	return a.Wire(stores, session.Options{
		Secret:     secret,
		CookieName: cfg.SESSION_COOKIE_NAME,
		MaxAge:     cfg.SESSION_MAX_AGE,
		Secure:     cfg.SESSION_SECURE_COOKIE,
	}, layout, cfg.PUBLIC_DIR)
}

// Wire builds services and handlers on top of stores and registers the
// middleware chain and routes.
func (a *App) Wire(stores Stores, opts session.Options, exportLayout, publicDir string) error {
	sessions, err := session.NewManager(stores.Sessions, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}

	// Initialize dependencies
	userSvc := service.NewUserService(stores.Users, 0)
	taskSvc := service.NewTaskService(stores.Tasks, time.Now)
	authHandler := handler.NewAuthHandler(userSvc, sessions)
	taskHandler := handler.NewTaskHandler(taskSvc, exportLayout)

	a.RegisterMiddlewares(sessions)
	a.RegisterRoutes(authHandler, taskHandler, publicDir)
	return nil
}

func (a *App) openStores(ctx context.Context, backend string) (Stores, error) {
	cfg := config.DefaultEnvConfig

	switch backend {
	case config.BackendDatastore:
		client, err := googlecloud.NewClient(ctx, cfg.GCP_PROJECT_ID)
		if err != nil {
			return Stores{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		if err := client.Ping(ctx); err != nil {
			return Stores{}, err
		}
		return Stores{Users: client.Users(), Tasks: client.Tasks(), Sessions: client.Sessions()}, nil

	case config.BackendMongo:
		store, err := mongostore.Connect(ctx, cfg.MONGO_URI, cfg.MONGO_DB_NAME)
		if err != nil {
			return Stores{}, err
		}
		a.closers = append(a.closers, store.Close)
		return Stores{Users: store.Users(), Tasks: store.Tasks(), Sessions: store.Sessions()}, nil

	case config.BackendPostgres:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DB_HOST,
			Port:            cfg.DB_PORT,
			User:            cfg.DB_USER,
			Password:        cfg.DB_PASSWORD,
			DBName:          cfg.DB_NAME,
			SSLMode:         cfg.DB_SSL_MODE,
			MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
			MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
			ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
		})
		if err != nil {
			return Stores{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		store, err := postgres.New(ctx, db)
		if err != nil {
			return Stores{}, err
		}
		sessions := store.Sessions()
		go sweepSessions(ctx, sessions)
		return Stores{Users: store.Users(), Tasks: store.Tasks(), Sessions: sessions}, nil

	case config.BackendMemory:
		store := memstore.New()
		return Stores{Users: store.Users(), Tasks: store.Tasks(), Sessions: store.Sessions()}, nil
	}
	return Stores{}, fmt.Errorf("unknown store backend %q", backend)
}

// sweepSessions removes expired session rows; Datastore and Mongo expire
// sessions on read or through a TTL index instead.
func sweepSessions(ctx context.Context, store *postgres.SessionStore) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				logger.WarnLog(ctx, "session sweep failed: %v", err)
				continue
			}
			logger.DebugLog(ctx, "session sweep removed %d rows", n)
		}
	}
}

func loadExportLayout(path string) (string, error) {
	if path == "" {
		return handler.DefaultExportLayout, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read export layout: %w", err)
	}
	if _, err := simpleexcel.NewDataExporterFromYamlConfig(string(b)); err != nil {
		return "", fmt.Errorf("invalid export layout %s: %w", path, err)
	}
	return string(b), nil
}

func (a *App) RegisterMiddlewares(sessions *session.Manager) {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(requestContext)
	a.Echo.Use(sessions.Middleware())
}

// requestContext copies the request id into the request context so service
// and repository logs carry it.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		return next(c)
	}
}

func (a *App) RegisterRoutes(authHandler *handler.AuthHandler, taskHandler *handler.TaskHandler, publicDir string) {
	a.Echo.GET("/healthz", handler.HealthHandler)

	a.Echo.POST("/register", authHandler.RegisterHandler)
	a.Echo.POST("/login", authHandler.LoginHandler)
	a.Echo.POST("/logout", authHandler.LogoutHandler)
	a.Echo.GET("/api/session/status", authHandler.StatusHandler)

	// task routes sit at the root, so the gate is attached per route; an
	// Echo group with middleware would also claim "/*" from the static files
	requireAuth := session.RequireAuth()
	a.Echo.GET("/tasks", taskHandler.ListHandler, requireAuth)
	a.Echo.GET("/tasks/export", taskHandler.ExportHandler, requireAuth)
	a.Echo.POST("/submit", taskHandler.SubmitHandler, requireAuth)
	a.Echo.POST("/delete", taskHandler.DeleteHandler, requireAuth)
	a.Echo.POST("/update", taskHandler.UpdateHandler, requireAuth)

	if publicDir != "" {
		a.Echo.Static("/", publicDir)
	}
}

func (a *App) Run() error {
	defer a.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Close stops background work and releases backend clients.
func (a *App) Close() {
	ctx := context.Background()
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.WarnLog(ctx, "failed to close backend: %v", err)
		}
	}
}
