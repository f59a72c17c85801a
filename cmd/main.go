package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"tunisia-parks/internal/facades"
	"tunisia-parks/internal/handlers"
	"tunisia-parks/internal/jwt"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/middlewares"
	"tunisia-parks/internal/repositories"
	"tunisia-parks/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title tunisia-parks API
// @version 1.0.0
// @description Backend service for a catalog of Tunisian nature parks, their species and users
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		weatherURL, weatherAPIKey, weatherTimeout, weatherCacheTTL,
		jwtSecret, jwtExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		weatherURL, weatherAPIKey, weatherTimeout, weatherCacheTTL,
		jwtSecret, jwtExp,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, weather and JWT configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr string, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	weatherURL, weatherAPIKey string, weatherTimeout, weatherCacheTTL time.Duration,
	jwtSecret string, jwtExp time.Duration,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "tunisia_parks")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}

	// Kafka config; empty brokers disable event publishing
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "catalog-events")

	// Weather provider config
	weatherURL = getEnv("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather")
	weatherAPIKey = getEnv("WEATHER_API_KEY", "")
	var weatherTimeoutSecond, weatherCacheTTLSecond int
	if weatherTimeoutSecond, err = strconv.Atoi(getEnv("WEATHER_TIMEOUT_SECOND", "5")); err != nil {
		return
	}
	if weatherCacheTTLSecond, err = strconv.Atoi(getEnv("WEATHER_CACHE_TTL_SECOND", "300")); err != nil {
		return
	}
	weatherTimeout = time.Duration(weatherTimeoutSecond) * time.Second
	weatherCacheTTL = time.Duration(weatherCacheTTLSecond) * time.Second

	// JWT config
	jwtSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	var jwtExpSecond int
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}
	jwtExp = time.Duration(jwtExpSecond) * time.Second

	return
}

// run initializes the logger, database, Redis, Kafka and HTTP server,
// bootstraps the schema, seeds initial data, sets up routes and handles
// graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr string, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	weatherURL, weatherAPIKey string, weatherTimeout, weatherCacheTTL time.Duration,
	jwtSecret string, jwtExp time.Duration,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	if err := repositories.Bootstrap(ctx, db); err != nil {
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for catalog change events, optional
	var kafkaWriter services.KafkaWriter
	if kafkaBrokers != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(jwtSecret), jwt.WithExpiration(jwtExp))

	// Initialize repositories
	parkRepo := repositories.NewParkRepository(db, middlewares.GetTxFromContext)
	speciesRepo := repositories.NewSpeciesRepository(db, middlewares.GetTxFromContext)
	userRepo := repositories.NewUserRepository(db, middlewares.GetTxFromContext)
	weatherCache := repositories.NewWeatherCacheRepository(rdb, weatherCacheTTL)

	// Initialize facades
	weatherProvider := facades.NewOpenWeatherFacade(weatherURL, weatherAPIKey, weatherTimeout)

	// Initialize services
	authService := services.NewAuthService(userRepo, userRepo, tokens)
	parkService := services.NewParkService(parkRepo, kafkaWriter)
	speciesService := services.NewSpeciesService(speciesRepo, parkRepo, kafkaWriter)
	userService := services.NewUserService(userRepo)
	weatherService := services.NewWeatherService(parkRepo, weatherCache, weatherProvider)

	// Seed initial data, no-op when parks already exist
	seedService := services.NewSeedService(parkRepo, speciesRepo, userRepo)
	if err := seedService.Run(ctx); err != nil {
		logger.Log.Errorw("seeding failed", "error", err)
		return err
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authMiddleware := middlewares.AuthMiddleware(tokens, authService)
	adminMiddleware := middlewares.AdminMiddleware(authService)
	txMiddleware := middlewares.TxMiddleware(db)

	// Public routes
	r.Get("/parks", handlers.NewListParksHandler(parkService))
	r.Get("/parks/{id}", handlers.NewGetParkHandler(parkService))
	r.Get("/parks/{park_id}/species", handlers.NewListSpeciesByParkHandler(speciesService))
	r.Get("/parks/{park_id}/weather", handlers.NewParkWeatherHandler(weatherService))
	r.Get("/species", handlers.NewListSpeciesHandler(speciesService))
	r.Get("/species/{id}", handlers.NewGetSpeciesHandler(speciesService))
	r.Post("/users/register", handlers.NewRegisterHandler(authService))
	r.Post("/users/login", handlers.NewLoginHandler(authService))

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/users/me", handlers.NewMeHandler(authService))
	})

	// Admin-only routes; mutations run inside a per-request transaction
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Use(txMiddleware)

		r.Post("/parks", handlers.NewCreateParkHandler(parkService))
		r.Put("/parks/{id}", handlers.NewUpdateParkHandler(parkService))
		r.Delete("/parks/{id}", handlers.NewDeleteParkHandler(parkService))

		r.Post("/species", handlers.NewCreateSpeciesHandler(speciesService))
		r.Put("/species/{id}", handlers.NewUpdateSpeciesHandler(speciesService))
		r.Delete("/species/{id}", handlers.NewDeleteSpeciesHandler(speciesService))

		r.Get("/users", handlers.NewListUsersHandler(userService))
		r.Get("/users/{id}", handlers.NewGetUserHandler(userService))
		r.Put("/users/{id}/role", handlers.NewUpdateUserRoleHandler(userService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
