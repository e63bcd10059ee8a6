package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/config"
	"skilltrack-service/internal/infra/memory"
	"skilltrack-service/internal/infra/postgres"
	redisinfra "skilltrack-service/internal/infra/redis"
	transport "skilltrack-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the learning-platform server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log.Mode)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)

	// Catalog: Postgres when configured, the built-in sample otherwise.
	var catalog app.CatalogRepository
	if pool != nil {
		catalog = postgres.NewCatalogStore(pool)
	} else {
		catalog = memory.NewCatalogWith(sampleCourses(), sampleVideos(), sampleQuizzes())
		log.Infow("no postgres configured, serving built-in sample catalog")
	}
	if redisClient != nil {
		catalog = redisinfra.NewCatalogCache(redisClient, catalog, catalogTTL)
	} else if pool != nil {
		catalog = memory.NewCatalogCache(catalog, catalogTTL)
	}

	var (
		progressRepo app.ProgressRepository
		masteryRepo  app.MasteryRepository
		resultRepo   app.ResultRepository
	)
	if pool != nil {
		progressRepo = postgres.NewProgressStore(pool)
		masteryRepo = postgres.NewMasteryStore(pool)
		resultRepo = postgres.NewResultStore(pool)
	} else {
		progressRepo = memory.NewProgressStore()
		masteryRepo = memory.NewMasteryStore()
		resultRepo = memory.NewResultStore()
	}

	hub := app.NewMasteryHub()
	engine := app.NewMasteryEngine(masteryRepo, hub, log)
	grader := app.NewQuizGrader(catalog, resultRepo, engine, log)
	tracker := app.NewProgressTracker(catalog, progressRepo, engine, log)
	analytics := app.NewAnalytics(catalog, progressRepo, resultRepo, masteryRepo)

	users := transport.NewHeaderUserResolver()
	handler := transport.NewHandler(catalog, tracker, grader, analytics, users, transport.PublicURLResolver{}, log)
	wsHandler := transport.NewWSHandler(hub, users, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/mastery", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infow("starting skilltrack service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Infow("shutting down server...")
	case <-ctx.Done():
		log.Infow("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
