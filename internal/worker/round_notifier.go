package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/fightforgift/reward-engine/internal/adapter"
	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/store"
	"github.com/fightforgift/reward-engine/internal/store/schema"
)

// RoundNotifierConfig holds configuration for the wheel round notifier
type RoundNotifierConfig struct {
	Interval      time.Duration // Time to sleep between notification cycles
	BatchSize     int           // Max completed rounds handled per cycle
	PoolSize      int           // Concurrent participant sends per round
	WebAppBaseURL string        // Base URL used to build the round deep link
}

// roundNotifier announces finished wheel rounds to their participants.
// The notified flag flips only after every participant send has been
// attempted, so a crash mid-round re-announces the whole round rather
// than silently skipping the remainder.
type roundNotifier struct {
	lifecycle
	config *RoundNotifierConfig
	store  store.Store
	clock  adapter.Clock
	gw     gateway.Gateway
	pool   pond.Pool
}

// NewRoundNotifier creates a new wheel round notifier worker
func NewRoundNotifier(config *RoundNotifierConfig, st store.Store, gw gateway.Gateway, clock adapter.Clock) Worker {
	return &roundNotifier{
		lifecycle: newLifecycle(),
		config:    config,
		store:     st,
		gw:        gw,
		clock:     clock,
		pool:      pond.NewPool(config.PoolSize),
	}
}

// Name returns the worker's name
func (n *roundNotifier) Name() string {
	return "round-notifier"
}

// Start begins the notifier's main loop
func (n *roundNotifier) Start(ctx context.Context) error {
	if !n.begin() {
		return fmt.Errorf("round notifier already running")
	}
	defer n.finish()
	defer n.pool.StopAndWait()

	logger.InfoCtx(ctx, "Starting round notifier",
		zap.Duration("interval", n.config.Interval),
		zap.Int("batch_size", n.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Round notifier stopping", zap.Error(ctx.Err()))
			return nil
		case <-n.stopChan:
			logger.InfoCtx(ctx, "Round notifier stop requested")
			return nil
		default:
			if err := n.runNotifyCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !n.sleep(ctx, n.clock, n.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the notifier
func (n *roundNotifier) Stop(ctx context.Context) error {
	return n.stop(ctx)
}

// runNotifyCycle announces every unnotified completed round once
func (n *roundNotifier) runNotifyCycle(ctx context.Context) error {
	rounds, err := n.store.ListUnnotifiedCompletedRounds(ctx, n.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list completed rounds: %w", err)
	}

	if len(rounds) == 0 {
		logger.DebugCtx(ctx, "No completed rounds awaiting notification")
		return nil
	}

	for i := range rounds {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if n.stopRequested() {
			return nil
		}
		n.announceRound(ctx, &rounds[i])
	}
	return nil
}

// announceRound fans the announcement out to the round's participants and
// flips the notified flag once all sends have been attempted
func (n *roundNotifier) announceRound(ctx context.Context, round *schema.WheelRound) {
	participants, err := n.store.ListRoundParticipants(ctx, round.ID)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to list participants of round %d: %w", round.ID, err))
		return
	}

	text := fmt.Sprintf("The wheel has stopped! Round #%d is complete and the prize is %s. Spin again to try your luck.", round.ID, round.PrizeLabel)
	button := &gateway.Button{
		Text: "Open the wheel",
		URL:  fmt.Sprintf("%s/wheel/%d", n.config.WebAppBaseURL, round.ID),
	}

	var delivered, failed atomic.Int64
	group := n.pool.NewGroup()
	for _, p := range participants {
		to := gateway.Recipient{AccountID: p.AccountID, Handle: p.Handle}
		group.Submit(func() {
			if err := n.gw.SendMessage(ctx, to, text, button); err != nil {
				failed.Add(1)
				logger.WarnCtx(ctx, "Failed to notify round participant",
					zap.Uint64("round_id", round.ID),
					zap.Int64("account_id", to.AccountID),
					zap.Error(err),
				)
				return
			}
			delivered.Add(1)
		})
	}
	group.Wait()

	ok, err := n.store.MarkRoundNotified(ctx, round.ID)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to mark round %d notified: %w", round.ID, err))
		return
	}
	if !ok {
		logger.WarnCtx(ctx, "Round already marked notified by another instance", zap.Uint64("round_id", round.ID))
		return
	}

	logger.InfoCtx(ctx, "Round announced",
		zap.Uint64("round_id", round.ID),
		zap.Int64("delivered", delivered.Load()),
		zap.Int64("failed", failed.Load()),
		zap.Int("participants", len(participants)),
	)
}
