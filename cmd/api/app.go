// cmd/api/app.go
// Wires storage, services and routes into a runnable server

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rikacare/rika-backend/internal/analysis"
	"github.com/rikacare/rika-backend/internal/assistant"
	"github.com/rikacare/rika-backend/internal/auth"
	"github.com/rikacare/rika-backend/internal/catalog"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/community"
	"github.com/rikacare/rika-backend/internal/config"
	"github.com/rikacare/rika-backend/internal/matching"
	"github.com/rikacare/rika-backend/internal/notification"
	"github.com/rikacare/rika-backend/internal/points"
	"github.com/rikacare/rika-backend/internal/profile"
	"github.com/rikacare/rika-backend/internal/rewards"
	"github.com/rikacare/rika-backend/internal/routines"
	"github.com/rikacare/rika-backend/internal/streaks"
)

// repositories groups the storage layer so both drivers are wired the same way
type repositories struct {
	users         auth.Repository
	profiles      profile.Repository
	catalog       catalog.Repository
	routines      routines.Repository
	streaks       streaks.Repository
	points        points.Repository
	rewards       rewards.Repository
	community     community.Repository
	notifications notification.Repository
	analyses      analysis.Repository
	tx            database.Transactor
}

func postgresRepositories(db *sqlx.DB) *repositories {
	return &repositories{
		users:         auth.NewPostgresRepository(db),
		profiles:      profile.NewPostgresRepository(db),
		catalog:       catalog.NewPostgresRepository(db),
		routines:      routines.NewPostgresRepository(db),
		streaks:       streaks.NewPostgresRepository(db),
		points:        points.NewPostgresRepository(db),
		rewards:       rewards.NewPostgresRepository(db),
		community:     community.NewPostgresRepository(db),
		notifications: notification.NewPostgresRepository(db),
		analyses:      analysis.NewPostgresRepository(db),
		tx:            database.NewTransactor(db),
	}
}

func memoryRepositories() *repositories {
	return &repositories{
		users:         auth.NewMemoryRepository(),
		profiles:      profile.NewMemoryRepository(),
		catalog:       catalog.NewMemoryRepository(),
		routines:      routines.NewMemoryRepository(),
		streaks:       streaks.NewMemoryRepository(),
		points:        points.NewMemoryRepository(),
		rewards:       rewards.NewMemoryRepository(),
		community:     community.NewMemoryRepository(),
		notifications: notification.NewMemoryRepository(),
		analyses:      analysis.NewMemoryRepository(),
		tx:            database.NopTransactor{},
	}
}

// app is a fully wired server that has not started listening yet
type app struct {
	handler   http.Handler
	scheduler *routines.ReminderScheduler
	notifier  *notification.Notifier
	closers   []func() error
	log       *logger.Logger
}

// newApp builds storage, services and routes. Call close when done, even if serve was never called.
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *app, err error) {
	a := &app{log: log}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// Storage
	log.Info("initializing storage", "driver", cfg.StorageDriver)
	var repos *repositories
	switch cfg.StorageDriver {
	case "postgres":
		db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := database.RunMigrations(ctx, db, log); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		repos = postgresRepositories(db)
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		repos = memoryRepositories()
	}

	// Redis catalog cache
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, continuing without catalog cache", "error", err)
		} else {
			a.closers = append(a.closers, rdb.Close)
			repos.catalog = catalog.NewCachedRepository(repos.catalog, rdb, cfg.CatalogTTL, log)
			log.Info("catalog cache enabled", "ttl", cfg.CatalogTTL)
		}
	}

	// Seed data
	if err := catalog.SeedIfEmpty(ctx, repos.catalog, log); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if err := rewards.SeedIfEmpty(ctx, repos.rewards, log); err != nil {
		return nil, fmt.Errorf("seed rewards: %w", err)
	}

	// Notifications
	log.Info("initializing notification providers",
		"mailer", cfg.EmailProvider, "sms", cfg.SMSProvider, "push", cfg.PushProvider)
	senders, err := notification.SendersFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize notification providers: %w", err)
	}
	a.notifier = notification.NewNotifier(repos.notifications, repos.users, senders, log)

	// Uploads
	images, err := community.NewImageStore(community.StorageConfig{
		UseS3:          cfg.UseS3,
		S3Bucket:       cfg.S3Bucket,
		AWSRegion:      cfg.AWSRegion,
		LocalUploadDir: cfg.LocalUploadDir,
		BaseURL:        cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize image storage: %w", err)
	}

	// Services
	locks := userlock.New()

	profileService := profile.NewService(repos.profiles, log)
	authService := auth.NewService(repos.users, profileService, repos.tx, auth.Config{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
		BCryptCost:        cfg.BCryptCost,
	}, log)
	catalogService := catalog.NewService(repos.catalog)
	matchingService := matching.NewService(profileService, repos.catalog, catalogService,
		cfg.CatalogFetchSize, cfg.RecommendationLimit, log)
	streakService := streaks.NewService(repos.streaks, repos.tx, log)
	pointsService := points.NewService(repos.points, repos.tx, locks, log)
	rewardsService := rewards.NewService(repos.rewards, pointsService, repos.tx, locks, a.notifier, log)
	routineService := routines.NewService(repos.routines, streakService, pointsService, repos.tx, locks, a.notifier,
		routines.Config{DailyPoints: cfg.DailyCompletionPoints, Milestones: cfg.StreakMilestones}, log)
	communityService := community.NewService(repos.community, profileService, images, repos.tx, locks,
		community.RateConfig{PostsPerMinute: cfg.PostsPerMinute, Burst: cfg.PostBurst}, log)
	inboxService := notification.NewService(repos.notifications)
	analysisService := analysis.NewService(repos.analyses, profileService, log)
	assistantService := assistant.NewService(assistant.Sources{
		Profiles:        profileService,
		Points:          pointsService,
		Streaks:         streakService,
		Routines:        routineService,
		Recommendations: matchingService,
	}, log)

	// Routes
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.RealIP, requestLogger(log), middleware.Recoverer)

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalUploadDir))))
	}
	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(30 * time.Second))
	// Subrouter on an empty prefix so only the protected routes get the middleware
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.NewMiddleware(authService).Authenticate)

	auth.RegisterRoutes(api, protected, auth.NewHandler(authService))
	catalog.RegisterRoutes(api, catalog.NewHandler(catalogService))
	profile.RegisterRoutes(protected, profile.NewHandler(profileService))
	matching.RegisterRoutes(protected, matching.NewHandler(matchingService))
	routines.RegisterRoutes(protected, routines.NewHandler(routineService))
	streaks.RegisterRoutes(protected, streaks.NewHandler(streakService))
	points.RegisterRoutes(protected, points.NewHandler(pointsService))
	rewards.RegisterRoutes(protected, rewards.NewHandler(rewardsService))
	community.RegisterRoutes(protected, community.NewHandler(communityService))
	notification.RegisterRoutes(protected, notification.NewHandler(inboxService))
	analysis.RegisterRoutes(protected, analysis.NewHandler(analysisService))
	assistant.RegisterRoutes(protected, assistant.NewHandler(assistantService))

	a.handler = corsMiddleware(router)
	a.scheduler = routines.NewReminderScheduler(repos.routines, repos.users, a.notifier,
		cfg.ReminderInterval, cfg.ReminderHourUTC, log)
	return a, nil
}

// serve runs the reminder scheduler and the HTTP server on ln until ctx is done,
// then drains both. It returns nil after a clean shutdown.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start blocks until Stop or ctx is done
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		a.scheduler.Start(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("server listening", "addr", ln.Addr().String())
		serveErr <- srv.Serve(ln)
	}()

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err = <-serveErr:
		a.log.Error("server stopped unexpectedly", "error", err)
	}

	a.scheduler.Stop()
	<-schedulerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		a.log.Error("server forced to shutdown", "error", serr)
	}

	// Let in-flight emails and pushes finish
	a.notifier.Wait()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
