package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kyren/internal/pkg/clock"
	"kyren/internal/pkg/config"
	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/commands"
)

// Sweeper periodically expires stale group buys. Overlapping runs (including
// runs on other instances) are excluded by the sweep's advisory lock, so the
// ticker cadence needs no coordination.
type Sweeper struct {
	groupCommands commands.GroupCommands
	clock         clock.Clock
	interval      time.Duration
	logger        *slog.Logger

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(groupCommands commands.GroupCommands, clk clock.Clock, cfg config.Config, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		groupCommands: groupCommands,
		clock:         clk,
		interval:      cfg.Sweep.Interval,
		logger:        logger,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) Stop(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Sweeper) sweepOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	result, err := s.groupCommands.SweepExpired(ctx, s.clock.Now())
	if err != nil {
		if errors.Is(err, errs.ErrSweepInProgress) {
			s.logger.Info("sweep skipped, another run holds the lock")
			return
		}
		s.logger.Error("sweep failed", "error", err.Error())
		return
	}

	if result.ExpiredGroups > 0 || len(result.Rearranged) > 0 {
		s.logger.Info("sweep completed",
			"expired_groups", result.ExpiredGroups,
			"cancelled_orders", result.CancelledOrders,
			"rearranged", len(result.Rearranged),
		)
	}
}
