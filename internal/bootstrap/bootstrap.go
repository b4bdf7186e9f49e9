// Package bootstrap wires configuration, storage and dependencies together
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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/itcommunity/platform/internal/app/controllers"
	appMigrations "github.com/itcommunity/platform/internal/app/migrations"
	appRepos "github.com/itcommunity/platform/internal/app/repositories"
	appRoutes "github.com/itcommunity/platform/internal/app/routes"
	appServices "github.com/itcommunity/platform/internal/app/services"
	"github.com/itcommunity/platform/internal/config"
	"github.com/itcommunity/platform/internal/db"
	appMiddleware "github.com/itcommunity/platform/internal/middleware"
	pkgAuth "github.com/itcommunity/platform/internal/pkg/auth"
	"github.com/itcommunity/platform/internal/pkg/filestorage"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
	"github.com/itcommunity/platform/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	RedisClient    *redis.Client
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
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

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := "http://localhost:" + cfg.Server.Port
	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	// Resumes are served through an authorized download endpoint, never
	// through the public static file route.
	resumeStorage, err := filestorage.NewLocalStorage(
		filepath.Join(cfg.Server.StoragePath, "resumes"),
		"/api/v1/jobs/download-resume",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resume storage: %w", err)
	}

	if cfg.RateLimit.Enabled {
		deps.RedisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	activities := appServices.NewActivityRecorder(deps.Repos.ActivityRepository)

	authService := appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		activities,
		deps.JWTService,
	)
	userService := appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.FileStorage)
	projectService := appServices.NewProjectService(deps.Repos.ProjectRepository, activities)
	eventService := appServices.NewEventService(deps.Repos.EventRepository, activities)
	jobService := appServices.NewJobService(deps.Repos.JobRepository, deps.Repos.ApplicationRepository,
		deps.Repos.UserRepository, activities, resumeStorage)
	suggestionService := appServices.NewSuggestionService(deps.Repos.SuggestionRepository, activities)
	careerPathService := appServices.NewCareerPathService(deps.Repos.CareerPathRepository)
	dashboardService := appServices.NewDashboardService(deps.Repos)
	adminService := appServices.NewAdminService(projectService, eventService, jobService, userService, suggestionService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(authService),
		User:       appControllers.NewUserController(userService),
		Project:    appControllers.NewProjectController(projectService),
		Event:      appControllers.NewEventController(eventService),
		Job:        appControllers.NewJobController(jobService),
		Suggestion: appControllers.NewSuggestionController(suggestionService),
		CareerPath: appControllers.NewCareerPathController(careerPathService),
		Dashboard:  appControllers.NewDashboardController(dashboardService),
		Admin:      appControllers.NewAdminController(adminService, userService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupSwagger(router)

	limiter := appMiddleware.NewRedisLimiter(deps.RedisClient)
	window := helpers.ParseDuration(cfg.RateLimit.Window, time.Minute)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, limiter, cfg.RateLimit.Requests, window)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
