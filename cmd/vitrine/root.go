package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hollowaylabs/vitrine/internal/api"
	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/hollowaylabs/vitrine/internal/completion"
	"github.com/hollowaylabs/vitrine/internal/config"
	"github.com/hollowaylabs/vitrine/internal/history"
	"github.com/hollowaylabs/vitrine/internal/recommend"
	"github.com/hollowaylabs/vitrine/internal/types"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Vitrine - AI Product Recommendation Storefront",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded")

	// 3. Initialize logger
	logger := slog.New(newLogHandler(cfg.Log))
	slog.SetDefault(logger)
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	// 4. Open catalog database (migrations, WAL mode)
	repo, err := catalog.NewRepository(cfg.Database.Path)
	if err != nil {
		return err
	}

	// 5. Load products, seeding from the bundled JSON file on first run
	products, err := loadCatalog(ctx, repo, cfg.Catalog.Path)
	if err != nil {
		repo.Close()
		return err
	}
	cat := catalog.New(products)
	slog.Info("catalog initialized", "path", cfg.Database.Path, "products", cat.Len())

	// 6. Initialize completion client and recommendation engine
	generator := completion.NewOpenAI(cfg.Completion.APIKey, cfg.Completion.BaseURL, cfg.Completion.Model)
	engine := recommend.NewEngine(generator, cat, logger, cfg.Catalog.SampleSize, cfg.Completion.MaxNewTokens)
	slog.Info("completion client initialized", "model", cfg.Completion.Model)

	// 7. Initialize HTTP router
	sessions := history.NewManager()
	handler := api.NewHandler(cat, engine, sessions, cfg.Auth.APIKey, Version)
	router := api.NewRouter(handler)
	slog.Info("router initialized")

	// 8. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 9. Worker lifecycle infrastructure
	var wg sync.WaitGroup
	// Future workers plug in here:
	// startWorker(ctx, &wg, "session-sweep", sessionSweeper.Run)
	// startWorker(ctx, &wg, "cache-evict", cacheEvictWorker.Run)

	// 10. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called gracefully.
		// Any other error indicates an actual server failure that should trigger shutdown.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel() // Trigger shutdown on server failure
		}
	}()

	// 11. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 12. Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// 12a. Stop HTTP server (drains in-flight requests)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// 12b. Wait for workers to complete
	wg.Wait()

	// 12c. Close catalog database
	if err := repo.Close(); err != nil {
		slog.Error("catalog close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// loadCatalog returns every product in the database, importing the seed file
// first when the database is empty. A catalog with zero products cannot serve
// recommendations, so that is a startup error.
func loadCatalog(ctx context.Context, repo *catalog.Repository, seedPath string) ([]types.Product, error) {
	count, err := repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		seed, err := catalog.ReadProductsFile(seedPath)
		if err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		imported, err := repo.ImportProducts(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		slog.Info("catalog seeded", "path", seedPath, "products", imported)
	}

	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	return products, nil
}

// newLogHandler builds a slog handler for the configured format and level.
// Unknown formats fall back to JSON, the production default.
func newLogHandler(cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.NewJSONHandler(os.Stdout, opts)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
