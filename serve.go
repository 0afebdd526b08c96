package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"ecometer/config"
	"ecometer/handlers"
	"ecometer/middleware"
	"ecometer/services"
	"ecometer/utils"
	"ecometer/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	utils.InitLogger(cfg.Log)
	if cfg.Server.GatewayToken == "" {
		return fmt.Errorf("GATEWAY_TOKEN is not set, service cannot authenticate Gateway")
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *gorm.DB
	if cfg.Database.URL != "" {
		var err error
		if db, err = openDB(cfg.Database.URL); err != nil {
			return err
		}
		if err := services.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	store, err := newStateStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	var profiles services.ProfileStore = services.NewMemoryProfiles()
	if db != nil {
		profiles = services.NewGormProfiles(db)
	}
	source, err := newLeaderboardSource(cfg, db)
	if err != nil {
		return err
	}

	cache := services.NewLeaderboardCache(source)
	sched, err := services.StartLeaderboardRefresh(cache, cfg.Leaderboard.RefreshInterval)
	if err != nil {
		return fmt.Errorf("failed to start leaderboard refresh: %w", err)
	}
	defer func() { _ = sched.Shutdown() }()

	engine := services.NewEngine(store, profiles, cache)

	app := fiber.New(fiber.Config{
		AppName:               "ecometer",
		DisableStartupMessage: true,
	})
	// 🔐❗ GLOBAL: Only Gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(cfg.Server.GatewayToken))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PATCH,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID",
		AllowCredentials: !slices.Contains(cfg.Server.AllowedOrigins, "*"),
		MaxAge:           86400,
	}))
	handlers.SetupRoutes(app, engine)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr())
	}()
	utils.Logger.Info().Str("addr", cfg.Addr()).Str("store", cfg.Store.Backend).
		Str("leaderboard", cfg.Leaderboard.Source).Strs("origins", cfg.Server.AllowedOrigins).
		Msg("✅ server running")

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	utils.Logger.Info().Msg("⏹️ shutting down server")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func newStateStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (services.StateStore, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return services.NewMemoryStore(), nil
	case config.BackendPostgres:
		return services.NewGormStore(db), nil
	case config.BackendR2:
		client, err := utils.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return nil, err
		}
		return services.NewR2Store(client, cfg.R2.Bucket, cfg.R2.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newLeaderboardSource(cfg *config.Config, db *gorm.DB) (services.LeaderboardSource, error) {
	switch cfg.Leaderboard.Source {
	case config.LeaderboardDB:
		return services.NewGormLeaderboard(db, cfg.Leaderboard.Limit), nil
	case config.LeaderboardHTTP:
		return workers.NewLeaderboardClient(cfg.Leaderboard.URL, cfg.Leaderboard.Token,
			cfg.Leaderboard.Limit, utils.NewHTTPClient(utils.DefaultHTTPTimeout))
	default:
		return nil, fmt.Errorf("unknown leaderboard source %q", cfg.Leaderboard.Source)
	}
}
