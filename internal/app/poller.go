package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/podium/internal/adapters/source"
	"github.com/okian/podium/internal/domain/board"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// pollLoop runs one fetch cycle per tick until Stop or ctx cancellation.
// The first cycle fires immediately so the board is populated before the
// first interval elapses. A slow cycle never blocks the ticker: each cycle
// runs in its own goroutine, carries a monotonic sequence number, and a
// completion older than the one already applied is discarded.
func (s *Service) pollLoop(ctx context.Context) {
	defer close(s.doneCh)

	var seq atomic.Uint64

	launch := func() {
		n := seq.Add(1)
		go s.runCycle(ctx, n)
	}

	launch()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			launch()
		case <-s.refresh:
			launch()
		}
	}
}

// Refresh requests one out-of-band fetch cycle. Returns false when the
// rate budget is exhausted; the caller should translate that to 429.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	s.mu.RLock()
	src, limiter := s.src, s.limiter
	s.mu.RUnlock()

	if src == nil {
		return false, source.ErrNoSource
	}
	if limiter != nil && !limiter.Allow() {
		metrics.RecordRefreshThrottled()
		return false, nil
	}

	select {
	case s.refresh <- struct{}{}:
	default:
		// A refresh is already pending; coalesce.
	}
	return true, nil
}

// runCycle executes one fetch-parse-aggregate-replace cycle.
func (s *Service) runCycle(ctx context.Context, seq uint64) {
	cycleID := uuid.NewString()
	start := time.Now()
	log := s.logger.Named("poller")

	metrics.RecordFetchCycle()
	defer func() {
		metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))
	}()

	records, err := s.src.Fetch(ctx)
	if err != nil {
		s.recordCycleError(err)
		metrics.RecordFetchError(s.src.Name(), "fetch")
		log.Warn(ctx, "fetch cycle failed; keeping previous snapshot",
			logger.Uint64("seq", seq),
			logger.String("cycle", cycleID),
			logger.Error(err),
		)
		return
	}

	entries, dropped := board.Aggregate(records, s.metric)
	metrics.RecordRowsParsed(len(records))
	metrics.RecordRowsDropped(dropped)

	snap := model.Snapshot{
		Seq:         seq,
		CycleID:     cycleID,
		FetchedAt:   time.Now(),
		Entries:     entries,
		DroppedRows: dropped,
	}

	if !s.store.Replace(ctx, snap) {
		log.Debug(ctx, "stale fetch completion discarded",
			logger.Uint64("seq", seq),
			logger.String("cycle", cycleID),
		)
		return
	}

	s.clearCycleError()
	log.Debug(ctx, "snapshot installed",
		logger.Uint64("seq", seq),
		logger.String("cycle", cycleID),
		logger.Int("entries", len(entries)),
		logger.Int("droppedRows", dropped),
		logger.Duration("elapsed", time.Since(start)),
	)
}

func (s *Service) recordCycleError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.lastTick = time.Now()
	s.mu.Unlock()
}

func (s *Service) clearCycleError() {
	s.mu.Lock()
	s.lastErr = nil
	s.lastTick = time.Now()
	s.mu.Unlock()
}
