// Package bootstrap wires configuration, storage and the HTTP surface
// together at startup.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appControllers "github.com/medhashaala/erp/internal/app/controllers"
	appMigrations "github.com/medhashaala/erp/internal/app/migrations"
	appRepos "github.com/medhashaala/erp/internal/app/repositories"
	appRoutes "github.com/medhashaala/erp/internal/app/routes"
	appServices "github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/config"
	"github.com/medhashaala/erp/internal/db"
	"github.com/medhashaala/erp/internal/middleware"
	"github.com/medhashaala/erp/internal/pkg/auth"
	"github.com/medhashaala/erp/internal/pkg/helpers"
	"github.com/medhashaala/erp/internal/pkg/logger"
	"github.com/medhashaala/erp/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Repos        *appRepos.Repositories
	Services     *appServices.Services
	Controllers  *appControllers.Controllers
	TokenService *auth.TokenService
}

// LoadConfigAndSetupLogger loads configuration and configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	logger.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations successfully applied.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, cfg, appRepos.NewUserRepository(database.Pool)); err != nil {
		// Seeding failures should not keep the server down.
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	tokenService := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   cfg.Token.Secret,
		TokenExp:    helpers.ParseDuration(cfg.Token.Expiration, 24*time.Hour),
		TokenIssuer: cfg.Token.Issuer,
	})

	repos := appRepos.NewRepositories(database.Pool)
	svcs := appServices.NewServices(repos, database, tokenService)
	ctrls := appControllers.NewControllers(svcs)

	return &Dependencies{
		Repos:        repos,
		Services:     svcs,
		Controllers:  ctrls,
		TokenService: tokenService,
	}, nil
}

// SetupRouter configures the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	appRoutes.RegisterRoutes(router, deps.Controllers, deps.TokenService, deps.Repos.Users)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
