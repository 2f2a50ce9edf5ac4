package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	analyticsrepo "github.com/kapelokal/pos/internal/analytics/repository"
	analyticsquery "github.com/kapelokal/pos/internal/analytics/usecase/query"
	catalogrepo "github.com/kapelokal/pos/internal/catalog/repository"
	"github.com/kapelokal/pos/internal/config"
	orderrepo "github.com/kapelokal/pos/internal/order/repository"
	"github.com/kapelokal/pos/internal/server"
	userrepo "github.com/kapelokal/pos/internal/user/repository"
	"github.com/kapelokal/pos/kafka"
	"github.com/kapelokal/pos/pkg/database"
	"github.com/kapelokal/pos/pkg/logger"
	"github.com/kapelokal/pos/pkg/ratelimit"
	"github.com/kapelokal/pos/pkg/tracing"

	analyticshttp "github.com/kapelokal/pos/internal/analytics/delivery/http"
	cataloghttp "github.com/kapelokal/pos/internal/catalog/delivery/http"
	orderhttp "github.com/kapelokal/pos/internal/order/delivery/http"
	userhttp "github.com/kapelokal/pos/internal/user/delivery/http"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting POS server")

	// Tracing
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories and migrations
	categoryRepo := catalogrepo.NewGormCategoryRepository(db)
	productRepo := catalogrepo.NewGormProductRepository(db)
	orderRepository := orderrepo.NewGormOrderRepositoryWithTracing(db)
	userRepository := userrepo.NewGormUserRepositoryWithTracing(db)
	analyticsRepo := analyticsrepo.NewGormAnalyticsRepository(db)

	for _, migrate := range []func() error{
		categoryRepo.AutoMigrate,
		productRepo.AutoMigrate,
		userRepository.AutoMigrate,
		orderRepository.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher (optional)
	var publisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, order events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Redis rate limiter (optional)
	var limiter *ratelimit.Limiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewLimiter(redisClient, 100, time.Minute)
		logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Rate limiting enabled")
	}

	// Handlers
	catalogHandler := cataloghttp.NewCatalogHandler(productRepo, categoryRepo)
	orderHandler := orderhttp.NewOrderHandler(orderRepository, publisher)
	userHandler := userhttp.NewUserHandler(userRepository)
	analyticsHandler := analyticshttp.NewAnalyticsHandler(
		analyticsquery.NewGetReportHandler(analyticsRepo, cfg.Timezone),
		analyticsquery.NewGetDashboardHandler(analyticsRepo, productRepo, orderRepository, cfg.Timezone),
		analyticsquery.NewSalesByDateHandler(analyticsRepo, cfg.Timezone),
	)

	startHTTPServer(cfg, sqlDB, limiter, catalogHandler, orderHandler, userHandler, analyticsHandler, userRepository)
}

func startHTTPServer(
	cfg *config.Config,
	sqlDB *sql.DB,
	limiter *ratelimit.Limiter,
	catalogHandler *cataloghttp.CatalogHandler,
	orderHandler *orderhttp.OrderHandler,
	userHandler *userhttp.UserHandler,
	analyticsHandler *analyticshttp.AnalyticsHandler,
	userRepository *userrepo.GormUserRepositoryWithTracing,
) {
	router := mux.NewRouter()

	mwConfig := server.DefaultMiddlewareConfig(cfg.ServiceName)
	server.RegisterMiddlewares(router, mwConfig)

	authRequired := userhttp.AuthMiddleware(userRepository)
	adminOnly := userhttp.AdminMiddleware(userRepository)

	catalogHandler.RegisterRoutes(router, cataloghttp.Middleware(authRequired), cataloghttp.Middleware(adminOnly))
	orderHandler.RegisterRoutes(router, orderhttp.Middleware(authRequired))
	analyticsHandler.RegisterRoutes(router, analyticshttp.Middleware(adminOnly))
	userHandler.RegisterRoutes(router)

	userHandler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())
	userhttp.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var handler http.Handler = router
	if limiter != nil {
		handler = limiter.Middleware(handler)
	}
	handler = server.SetupCORS(mwConfig)(handler)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/").
			Msg("HTTP server started")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}
