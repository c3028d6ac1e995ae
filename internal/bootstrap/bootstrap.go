// Package bootstrap assembles the application: configuration, logging,
// database, dependency graph and router.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/controllers"
	"github.com/namansharma28/gravitas-backend/internal/app/migrations"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/app/routes"
	"github.com/namansharma28/gravitas-backend/internal/app/services"
	"github.com/namansharma28/gravitas-backend/internal/cache"
	"github.com/namansharma28/gravitas-backend/internal/config"
	"github.com/namansharma28/gravitas-backend/internal/db"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
	"github.com/namansharma28/gravitas-backend/internal/pkg/email"
	"github.com/namansharma28/gravitas-backend/internal/pkg/helpers"
	"github.com/namansharma28/gravitas-backend/internal/pkg/logger"
)

// Dependencies holds the assembled application graph
type Dependencies struct {
	Repos       *repositories.Repositories
	Services    *services.Services
	JWTService  *auth.JWTService
	AdminTokens *auth.AdminTokenService
	Views       *cache.Cache

	AuthController      *controllers.AuthController
	AdminController     *controllers.AdminController
	CommunityController *controllers.CommunityController
	EventController     *controllers.EventController
	UpdateController    *controllers.UpdateController
	UserController      *controllers.UserController
	SystemController    *controllers.SystemController

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := migrations.NewMigrator(dbPool)
	if err := migrator.ApplyDirectory(context.Background(), migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	return dbPool, nil
}

// BuildDependencies wires repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AdminTokens = auth.NewAdminTokenService(auth.AdminTokenConfig{
		Username:  cfg.Admin.Username,
		Password:  cfg.Admin.Password,
		SecretKey: cfg.Admin.JWTSecret,
		TokenExp:  helpers.ParseDuration(cfg.Admin.TokenExpiration, 24*time.Hour),
		Issuer:    cfg.JWT.Issuer,
	})

	emailService := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.Views = cache.New(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      helpers.ParseDuration(cfg.Redis.TTL, time.Minute),
	}, lgr)

	deps.Services = services.NewServices(deps.Repos, deps.JWTService, deps.AdminTokens, emailService, deps.Views)

	deps.AuthController = controllers.NewAuthController(deps.Services.AuthService, cfg.Server.BaseURL, lgr)
	deps.AdminController = controllers.NewAdminController(deps.Services.AdminService, lgr)
	deps.CommunityController = controllers.NewCommunityController(deps.Services.CommunityService, deps.Services.FollowService, lgr)
	deps.EventController = controllers.NewEventController(deps.Services.EventService, lgr)
	deps.UpdateController = controllers.NewUpdateController(deps.Services.UpdateService, lgr)
	deps.UserController = controllers.NewUserController(deps.Services.NotificationService, lgr)
	deps.SystemController = controllers.NewSystemController(deps.Views)

	return deps, nil
}

// SetupRouter configures the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(lgr),
		middleware.Recovery(lgr),
		middleware.CORS(),
	)

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.AdminController,
		deps.CommunityController,
		deps.EventController,
		deps.UpdateController,
		deps.UserController,
		deps.SystemController,
		deps.JWTService,
		deps.AdminTokens,
	)

	return router
}
