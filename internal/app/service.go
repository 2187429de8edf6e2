// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/adapters/source"
	"github.com/okian/podium/internal/domain/board"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"golang.org/x/time/rate"
)

// Default service configuration constants.
const (
	defaultPollInterval   = 10 * time.Second
	defaultRefreshPerMin  = 12
	defaultRefreshBurst   = 2
	minutesToRateInterval = time.Minute
)

// Service polls the configured source and serves the latest snapshot.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	src     source.Source
	metric  board.Metric
	limiter *rate.Limiter

	// Configuration
	interval      time.Duration
	refreshPerMin int

	// State
	started  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	refresh  chan struct{} // manual refresh trigger, coalesced to one pending
	lastErr  error         // banner error from the most recent failed cycle
	lastTick time.Time     // completion time of the most recent cycle

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the data source polled each cycle.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		s.src = src
	}
}

// WithMetric selects the ordering metric.
func WithMetric(m board.Metric) Option {
	return func(s *Service) {
		if m != "" {
			s.metric = m
		}
	}
}

// WithPollInterval sets the refresh cadence.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithRefreshPerMinute bounds manual refreshes.
func WithRefreshPerMinute(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.refreshPerMin = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		metric:        board.MetricSum,
		interval:      defaultPollInterval,
		refreshPerMin: defaultRefreshPerMin,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		refresh:       make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store and launches the polling loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting leaderboard service...")

	s.store = repository.NewSnapshotStore(ctx)
	s.limiter = rate.NewLimiter(
		rate.Every(minutesToRateInterval/time.Duration(s.refreshPerMin)),
		defaultRefreshBurst,
	)

	if s.src == nil {
		// No source configured: the poller has nothing to do; reads will
		// show the configuration error banner until a restart.
		s.lastErr = source.ErrNoSource
		s.logger.Warn(ctx, "no data source configured; serving empty board")
		close(s.doneCh)
	} else {
		go s.pollLoop(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "leaderboard service started",
		logger.String("metric", string(s.metric)),
		logger.Any("interval", s.interval),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping leaderboard service...")

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}
	<-s.doneCh

	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	entries, err := s.store.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	apiEntries := make([]types.Entry, len(entries))
	for i, e := range entries {
		apiEntries[i] = types.Entry{
			Rank:    e.Rank,
			Name:    e.Name,
			Score:   e.Score,
			Display: e.Display,
			Votes:   e.Votes,
		}
	}

	return apiEntries, nil
}

// Rank returns the entry for a given subject name.
func (s *Service) Rank(ctx context.Context, name string) (types.Entry, error) {
	e, err := s.store.Rank(ctx, name)
	if err != nil {
		return types.Entry{}, err
	}

	return types.Entry{
		Rank:    e.Rank,
		Name:    e.Name,
		Score:   e.Score,
		Display: e.Display,
		Votes:   e.Votes,
	}, nil
}

// LastError returns the banner error from the most recent failed cycle,
// or nil when the last cycle succeeded.
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"metric":        string(s.metric),
		"pollInterval":  s.interval.String(),
		"totalSubjects": 0,
	}

	if s.src != nil {
		stats["source"] = s.src.Name()
	}
	if s.lastErr != nil {
		stats["error"] = s.lastErr.Error()
	}
	if !s.lastTick.IsZero() {
		stats["lastCycleAt"] = s.lastTick.Format(time.RFC3339)
	}

	if s.store != nil {
		stats["totalSubjects"] = s.store.Count(ctx)
		if snap, ok := s.store.Latest(ctx); ok {
			stats["snapshotSeq"] = snap.Seq
			stats["snapshotAge"] = time.Since(snap.FetchedAt).String()
			stats["droppedRows"] = snap.DroppedRows
		}
	}

	return stats
}
