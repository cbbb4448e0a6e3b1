package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/libraria/libraria/internal/app/controllers"
	appMigrations "github.com/libraria/libraria/internal/app/migrations"
	appRepos "github.com/libraria/libraria/internal/app/repositories"
	appRoutes "github.com/libraria/libraria/internal/app/routes"
	appServices "github.com/libraria/libraria/internal/app/services"
	"github.com/libraria/libraria/internal/config"
	"github.com/libraria/libraria/internal/db"
	appMiddleware "github.com/libraria/libraria/internal/middleware"
	pkgAuth "github.com/libraria/libraria/internal/pkg/auth"
	"github.com/libraria/libraria/internal/pkg/helpers"
	"github.com/libraria/libraria/internal/pkg/logger"
	"github.com/libraria/libraria/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	AuthorService     *appServices.AuthorService
	BookService       *appServices.BookService
	StudentService    *appServices.StudentService
	AuthController    *appControllers.AuthController
	AuthorController  *appControllers.AuthorController
	BookController    *appControllers.BookController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding is best effort, a failed seed must not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.AuthorService = appServices.NewAuthorService(deps.Repos.AuthorRepository, deps.Repos.BookRepository, database)
	deps.BookService = appServices.NewBookService(deps.Repos.BookRepository, deps.Repos.AuthorRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.BookRepository, database)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AuthorController = appControllers.NewAuthorController(deps.AuthorService)
	deps.BookController = appControllers.NewBookController(deps.BookService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AuthorController,
		deps.BookController,
		deps.StudentController,
		deps.AuthMiddleware,
	)

	return router
}
