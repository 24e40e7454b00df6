package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/config"
	"github.com/jjenkins/civiq/internal/handlers"
	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/service"
	"github.com/jjenkins/civiq/internal/store"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CIV.IQ web server",
	Long: `Start the web server that serves the cached civic data API and pages.

The cache lives in process memory unless REDIS_URL is set. ZIP code lookups
need DATABASE_URL and a table loaded with "civiq import".`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := setup()
	defer logging.Sync()

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}

	cacheStore, closeCache := newCacheStore(cfg)
	defer closeCache()

	// ZIP lookups are disabled without a database
	var zips service.ZipLookup
	if cfg.Database.URL != "" {
		db, err := store.NewDB(cfg.Database.URL)
		if err != nil {
			logging.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		zips = store.NewZipStore(db)
	} else {
		logging.Warn("DATABASE_URL not set; ZIP code lookups are disabled")
	}

	catalog, err := service.LoadCommitteeCatalog()
	if err != nil {
		logging.Fatal("Failed to load committee catalog", zap.Error(err))
	}

	civic := service.NewCivic(newClients(cfg), catalog, zips)
	for source, configured := range civic.Sources() {
		if !configured {
			logging.Warn("Upstream not configured", zap.String("source", source))
		}
	}

	app := handlers.NewApp(handlers.Deps{
		Civic:     civic,
		Cache:     cache.New(cacheStore),
		RateLimit: cfg.Server.RateLimit,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logging.Info("Received interrupt signal, shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logging.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logging.Info("Starting server",
		zap.String("port", cfg.Server.Port),
		zap.String("baseURL", cfg.Server.BaseURL))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logging.Fatal("Failed to start server", zap.Error(err))
	}
}

// newCacheStore picks Redis when configured and reachable, otherwise the
// bounded in-memory store.
func newCacheStore(cfg *config.Config) (cache.Store, func()) {
	if cfg.Redis.URL != "" {
		client, err := cache.OpenRedis(context.Background(), cfg.Redis.URL)
		if err == nil {
			logging.Info("Using Redis cache")
			return cache.NewRedisStore(client), func() { client.Close() }
		}
		logging.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
	}

	memory, err := cache.NewMemoryStore(cfg.Cache.MaxEntries)
	if err != nil {
		logging.Fatal("Failed to create cache", zap.Error(err))
	}
	logging.Info("Using in-memory cache", zap.Int("maxEntries", cfg.Cache.MaxEntries))
	return memory, func() {}
}

func newClients(cfg *config.Config) service.Clients {
	opts := service.HTTPOptions{
		Timeout:        cfg.HTTP.Timeout,
		MaxAttempts:    cfg.Retry.MaxAttempts,
		InitialBackoff: cfg.Retry.InitialBackoff,
	}

	return service.Clients{
		Congress:    service.NewCongressClient(cfg.Upstream.Congress, cfg.APIKeys.Congress, opts),
		FEC:         service.NewFECClient(cfg.Upstream.FEC, cfg.APIKeys.FEC, opts),
		Census:      service.NewCensusClient(cfg.Upstream.Census, cfg.APIKeys.Census, cfg.Upstream.CensusYear, opts),
		OpenStates:  service.NewOpenStatesClient(cfg.Upstream.OpenStates, cfg.APIKeys.OpenStates, opts),
		USASpending: service.NewUSASpendingClient(cfg.Upstream.USASpending, opts),
		GovInfo:     service.NewGovInfoClient(cfg.Upstream.GovInfo, cfg.APIKeys.GovInfo, opts),
		GDELT:       service.NewGDELTClient(cfg.Upstream.GDELT, opts),
	}
}
