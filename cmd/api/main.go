package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"expertbook/docs"
	"expertbook/internal/auth"
	"expertbook/internal/config"
	"expertbook/internal/database"
	"expertbook/internal/database/migration"
	handlers "expertbook/internal/http/handler"
	"expertbook/internal/http/middleware"
	"expertbook/internal/logger"
	"expertbook/internal/otel"
	"expertbook/internal/realtime"
	"expertbook/internal/repository/postgres"
	"expertbook/internal/service"
	"expertbook/internal/storage"
)

// @title Expert Booking API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.Init(cfg.Location())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	// Initialize repositories and services
	userRepo := postgres.NewUserPostgres(db)
	categoryRepo := postgres.NewCategoryPostgres(db)
	expertRepo := postgres.NewExpertPostgres(db)
	bookingRepo := postgres.NewBookingPostgres(db)

	authSvc := service.NewAuthService(userRepo, expertRepo, categoryRepo, tokens, log)
	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("failed to bootstrap admin account", zap.Error(err))
	}
	svc := handlers.Services{
		Auth:       authSvc,
		Categories: service.NewCategoryService(categoryRepo),
		Experts:    service.NewExpertService(expertRepo, categoryRepo, objStore, log),
		Users:      service.NewUserService(userRepo),
		Bookings:   service.NewBookingService(bookingRepo, expertRepo, userRepo, hub, log),
		Dashboards: service.NewDashboardService(categoryRepo, expertRepo, userRepo, bookingRepo),
	}

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(ctx, time.Minute)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    storage.MaxAvatarSize + 1<<20,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, tokens, limiter.Handler(), svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", realtime.Handler(hub, tokens))
	wsServer := &http.Server{
		Addr:              ":" + cfg.WSPort,
		Handler:           otelhttp.NewHandler(mux, "websocket"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("websocket listening", zap.String("addr", wsServer.Addr))
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("websocket server stopped", zap.Error(err))
			stop()
		}
	}()

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = wsServer.Shutdown(sctx)
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error("http shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("http listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
