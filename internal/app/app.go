package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"internship-service/internal/application"
	"internship-service/internal/auth"
	"internship-service/internal/config"
	"internship-service/internal/db"
	"internship-service/internal/grpcserver"
	"internship-service/internal/health"
	"internship-service/internal/internship"
	"internship-service/internal/matching"
	"internship-service/internal/middleware"
	"internship-service/internal/profile"
	"internship-service/internal/quiz"
	"internship-service/internal/ratelimit"
	"internship-service/internal/schema"
	"internship-service/internal/telemetry"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

const tokenCleanupInterval = time.Hour

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	grpc      *grpcserver.Server
	db        *bun.DB
	redis     *redis.Client
	publisher publisher
	telemetry *telemetry.Telemetry
	authRepo  *auth.Repository
	logger    *slog.Logger
	runCtx    context.Context
	cancel    context.CancelFunc
}

// New connects every dependency, runs migrations and builds the router.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing application", "env", cfg.Env, "version", Version)

	tel, err := telemetry.Init(ctx, cfg.Telemetry, ServiceName, Version, logger)
	if err != nil {
		return nil, err
	}
	m := tel.Metrics

	database, err := db.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := m.Database.RegisterDB(database.DB, tel.MeterProvider.Meter(ServiceName)); err != nil {
		logger.Warn("failed to register db pool metrics", "error", err)
	}

	if err := db.RunMigrations(ctx, database, schema.Tables()...); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not reachable at startup", "address", cfg.Redis.Address, "error", err)
	}

	app := &App{
		config:    cfg,
		router:    chi.NewRouter(),
		db:        database,
		redis:     redisClient,
		telemetry: tel,
		logger:    logger,
	}
	app.runCtx, app.cancel = context.WithCancel(context.Background())
	app.publisher = newPublisher(cfg.Events, m, logger)

	// Repositories
	profileRepo := profile.NewRepository(database, m)
	internshipRepo := internship.NewRepository(database, m)
	applicationRepo := application.NewRepository(database, m)
	app.authRepo = auth.NewRepository(database, m)

	// Services
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL())
	authService := auth.NewService(app.authRepo, profileRepo, tokens, cfg.Auth.RefreshTTL(), m)
	profileService := profile.NewService(profileRepo)
	internshipService := internship.NewService(internshipRepo, m)
	applicationService := application.NewService(applicationRepo, internshipService)
	matchingService := matching.NewService(profileRepo, internshipRepo, m)

	var quizPublisher quiz.Publisher
	if app.publisher != nil {
		quizPublisher = app.publisher
	}
	quizService := quiz.NewService(
		internshipRepo,
		applicationRepo,
		quiz.NewAttemptStore(redisClient, cfg.Quiz.AttemptTTL()),
		quiz.NewEngine(nil),
		quizPublisher,
		quiz.Options{RecordFailedAttempts: cfg.Quiz.RecordFailedAttempts},
		m,
		logger,
	)

	// Probes
	healthHandler := health.NewHandler(map[string]health.Check{
		"postgres": database.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}, logger)
	app.grpc = grpcserver.New(healthHandler.Probe, 10*time.Second, logger)

	// Router
	app.router.Use(chimw.RequestID)
	app.router.Use(chimw.Recoverer)
	app.router.Use(middleware.RequestLogger(logger))
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler.RegisterRoutes(app.router)
	if tel.Handler != nil {
		app.router.Handle("/metrics", tel.Handler)
	}

	cookies := auth.CookieOptions{Env: cfg.Env, MaxAge: cfg.Auth.AccessTTL()}
	auth.NewHandler(authService, cookies, logger).RegisterRoutes(app.router)

	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.Quiz.RateLimit, cfg.Quiz.RateWindow(), "ratelimit:quiz")

	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(authService, logger))
		profile.NewHandler(profileService, logger).RegisterRoutes(r)
		internship.NewHandler(internshipService, logger).RegisterRoutes(r)
		application.NewHandler(applicationService, logger).RegisterRoutes(r)
		matching.NewHandler(matchingService, logger).RegisterRoutes(r)
		quiz.NewHandler(quizService, ratelimit.Middleware(limiter, logger), logger).RegisterRoutes(r)
	})

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      app.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	logger.Info("application initialized successfully")

	return app, nil
}

// Run serves HTTP and gRPC until one of them fails or Shutdown is called.
func (a *App) Run() error {
	ctx := a.runCtx

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.grpc.ListenAndServe(ctx, a.config.Grpc.Port)
	}()
	go a.cleanupTokens(ctx)

	go func() {
		a.logger.Info("server starting", "port", a.config.Server.Port)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	return <-errCh
}

func (a *App) cleanupTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.authRepo.DeleteExpiredTokens(ctx)
			if err != nil {
				a.logger.ErrorContext(ctx, "failed to delete expired refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				a.logger.InfoContext(ctx, "deleted expired refresh tokens", "count", n)
			}
		}
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	a.cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	a.grpc.Stop()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("event publisher close error", "error", err)
		}
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", "error", err)
	}
	db.Close(a.db)

	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Migrate creates the schema and exits.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	database, err := db.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close(database)

	logger.Info("running migrations", "tables", len(schema.Tables()))
	return db.RunMigrations(ctx, database, schema.Tables()...)
}
