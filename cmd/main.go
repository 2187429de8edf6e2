package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/photos"
	"github.com/okian/podium/internal/adapters/source"
	app "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/config"
	"github.com/okian/podium/internal/domain/board"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metric, err := board.ParseMetric(cfg.Metric)
	if err != nil {
		os.Stderr.WriteString("invalid metric: " + err.Error() + "\n")
		return
	}

	src := buildSource(cfg)
	if src == nil {
		log.Warn(ctx, "no data source configured; board will stay empty")
	}

	book := photos.Empty()
	if cfg.PhotosFile != "" {
		book, err = photos.LoadFile(cfg.PhotosFile)
		if err != nil {
			os.Stderr.WriteString("failed to load photo book: " + err.Error() + "\n")
			return
		}
		log.Info(ctx, "photo book loaded", logger.Int("subjects", book.Len()))
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithSource(src),
		app.WithMetric(metric),
		app.WithPollInterval(time.Duration(cfg.PollIntervalSeconds)*time.Second),
		app.WithRefreshPerMinute(cfg.RefreshPerMinute),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, book, cfg.MaxLeaderboardLimit, cfg.PodiumSize)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		runSystemMetricsUpdater(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(context.Background(), "server exited with error", logger.Error(err))
		return
	}
	log.Info(context.Background(), "server stopped")
}

// buildSource constructs the configured data source. CSV mode takes
// precedence when both sources are configured; nil means neither is.
func buildSource(cfg *config.Config) source.Source {
	cols := source.Columns{
		Name:    cfg.NameColumn,
		Score:   cfg.ScoreColumn,
		Count:   cfg.CountColumn,
		Average: cfg.AverageColumn,
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RefreshPerMinute)), cfg.RefreshPerMinute)

	if cfg.HasCSVSource() {
		return source.NewCSVSource(cfg.CSVURL, cols, source.WithCSVLimiter(limiter))
	}
	if cfg.HasValuesSource() {
		return source.NewValuesSource(cfg.SheetToken, cfg.SheetID, cfg.SheetRange, cols,
			source.WithValuesLimiter(limiter))
	}
	return nil
}

// runSystemMetricsUpdater refreshes system-level gauges until ctx ends.
func runSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}
