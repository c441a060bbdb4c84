package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"auth-bridge/app/config"
	"auth-bridge/app/driver/ldap"
	"auth-bridge/app/driver/postgres"
	"auth-bridge/app/gateway"
	"auth-bridge/app/port"
	"auth-bridge/app/rest"
	"auth-bridge/app/rest/handlers"
	"auth-bridge/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB         *postgres.DB
	LDAPClient *ldap.Client

	// Usecases
	AuthUsecase port.AuthUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Initialize drivers
	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.LDAPClient = ldap.NewClient(cfg.LDAP, logger)

	// Initialize repositories
	pool := container.DB.Pool()
	userRepository := postgres.NewUserRepository(pool, logger)
	groupRepository := postgres.NewGroupRepository(pool, logger)
	tenantRepository := postgres.NewTenantRepository(pool, logger)
	sessionRepository := postgres.NewSessionRepository(pool, logger)

	var activityRecorder port.ActivityRecorder
	if cfg.EnableAuditLog {
		activityRecorder = postgres.NewActivityRepository(pool, logger)
	} else {
		activityRecorder = gateway.NewDiscardActivityRecorder(logger)
	}

	// Initialize gateways
	codec, err := gateway.NewAttributeCodec(cfg.LDAP)
	if err != nil {
		return nil, fmt.Errorf("failed to build attribute codec: %w", err)
	}
	identityMapper := gateway.NewIdentityMapper(codec, tenantRepository, cfg.LDAP, logger)
	tokenGateway := gateway.NewTokenGateway(cfg.SessionSecret, cfg.SessionTimeout)

	// Initialize usecases
	reconciler := usecase.NewReconcileUsecase(
		userRepository,
		groupRepository,
		activityRecorder,
		cfg.LDAP.SystemSiteID,
		logger,
	)
	localAuth := usecase.NewLocalAuthUsecase(
		userRepository,
		tokenGateway,
		sessionRepository,
		cfg.SessionTimeout,
		logger,
	)
	container.AuthUsecase = usecase.NewAuthUsecase(
		container.LDAPClient,
		identityMapper,
		reconciler,
		localAuth,
		tokenGateway,
		sessionRepository,
		userRepository,
		cfg.SessionTimeout,
		logger,
	)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:      c.Logger,
		AuthUsecase: c.AuthUsecase,
		Checks: map[string]handlers.DependencyCheck{
			"database": c.DB.HealthCheck,
		},
		EnableDebug: c.Config.LogLevel == "debug",
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
