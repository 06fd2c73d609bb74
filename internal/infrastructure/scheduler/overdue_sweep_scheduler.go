package scheduler

import (
	"context"
	"sync"
	"time"

	appfinance "github.com/proptraka/backend/internal/application/finance"
	"github.com/proptraka/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OverdueSweeper runs one overdue reconciliation pass
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context, asOf time.Time, batchSize int) (appfinance.SweepResult, error)
}

// OverdueSweepScheduler periodically reconciles stored PENDING transaction
// statuses against the calendar. Arrears never depend on this running; the
// sweep only keeps stored statuses presentable.
type OverdueSweepScheduler struct {
	sweeper   OverdueSweeper
	logger    *zap.Logger
	config    config.SchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueSweepScheduler creates a new overdue sweep scheduler
func NewOverdueSweepScheduler(sweeper OverdueSweeper, logger *zap.Logger, cfg config.SchedulerConfig) *OverdueSweepScheduler {
	return &OverdueSweepScheduler{
		sweeper: sweeper,
		logger:  logger,
		config:  cfg,
	}
}

// Start starts the sweep loop
func (s *OverdueSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Overdue sweep scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runSweepLoop(ctx)

	s.logger.Info("Overdue sweep scheduler started",
		zap.Duration("interval", s.config.OverdueSweepInterval),
		zap.Int("batch_size", s.config.SweepBatchSize),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *OverdueSweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweep scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue sweep scheduler stop timed out")
		return ctx.Err()
	}
}

// runSweepLoop runs the sweep on the configured interval
func (s *OverdueSweepScheduler) runSweepLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.OverdueSweepInterval)
	defer ticker.Stop()

	// Run once at startup so a restart does not leave stale statuses
	// sitting until the first tick.
	s.executeSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Overdue sweep loop stopping")
			return
		case <-ticker.C:
			s.executeSweep(ctx)
		}
	}
}

// executeSweep runs one sweep with the configured job timeout
func (s *OverdueSweepScheduler) executeSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := s.sweeper.SweepOverdue(sweepCtx, startTime, s.config.SweepBatchSize)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Overdue sweep failed",
			zap.Duration("duration", duration),
			zap.Int("scanned", result.Scanned),
			zap.Int("flipped", result.Flipped),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Overdue sweep completed",
		zap.Duration("duration", duration),
		zap.Int("scanned", result.Scanned),
		zap.Int("flipped", result.Flipped),
	)
}

// TriggerImmediateSweep triggers a sweep outside the regular interval
func (s *OverdueSweepScheduler) TriggerImmediateSweep(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate overdue sweep")

	go func() {
		defer s.wg.Done()
		s.executeSweep(ctx)
	}()

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *OverdueSweepScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
