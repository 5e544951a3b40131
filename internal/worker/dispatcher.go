package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fightforgift/reward-engine/internal/adapter"
	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/store"
	"github.com/fightforgift/reward-engine/internal/store/schema"
)

// DispatcherConfig holds configuration for the reward dispatcher
type DispatcherConfig struct {
	Interval time.Duration // Time to sleep between dispatch cycles
	// MaxAttempts caps delivery attempts for item-unavailable and
	// unclassified failures before the reward escalates to failed.
	// Recipient-unreachable retries are never capped: the condition clears
	// once the user opens a channel with the sender.
	MaxAttempts       int
	RetryBase         time.Duration // First retry delay, doubled per attempt
	RetryMaxInterval  time.Duration // Ceiling for the retry delay
	StaleAttemptAfter time.Duration // Age after which a write-ahead marker is reported on startup
}

// rewardDispatcher drains the pending reward queue through the delivery
// gateway. Status flips happen only after the delivery call reports success;
// the write-ahead attempt marker makes the crash window between a successful
// delivery and the flip visible on restart.
type rewardDispatcher struct {
	lifecycle
	config  *DispatcherConfig
	store   store.Store
	gateway gateway.Gateway
	clock   adapter.Clock
}

// NewRewardDispatcher creates a new reward dispatcher worker
func NewRewardDispatcher(config *DispatcherConfig, st store.Store, gw gateway.Gateway, clock adapter.Clock) Worker {
	return &rewardDispatcher{
		lifecycle: newLifecycle(),
		config:    config,
		store:     st,
		gateway:   gw,
		clock:     clock,
	}
}

// Name returns the worker's name
func (d *rewardDispatcher) Name() string {
	return "reward-dispatcher"
}

// Start begins the dispatcher's main loop
func (d *rewardDispatcher) Start(ctx context.Context) error {
	if !d.begin() {
		return fmt.Errorf("dispatcher already running")
	}
	defer d.finish()

	logger.InfoCtx(ctx, "Starting reward dispatcher",
		zap.Duration("interval", d.config.Interval),
		zap.Int("max_attempts", d.config.MaxAttempts),
	)

	d.reconcileStaleAttempts(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reward dispatcher stopping", zap.Error(ctx.Err()))
			return nil
		case <-d.stopChan:
			logger.InfoCtx(ctx, "Reward dispatcher stop requested")
			return nil
		default:
			if err := d.runDispatchCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !d.sleep(ctx, d.clock, d.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the dispatcher
func (d *rewardDispatcher) Stop(ctx context.Context) error {
	return d.stop(ctx)
}

// reconcileStaleAttempts reports rewards whose write-ahead marker is old but
// whose status never flipped: the delivery may have gone out before a crash.
// These need an operator decision, so they are surfaced loudly and left pending.
func (d *rewardDispatcher) reconcileStaleAttempts(ctx context.Context) {
	cutoff := d.clock.Now().Add(-d.config.StaleAttemptAfter)
	stale, err := d.store.ListStaleDispatchAttempts(ctx, cutoff)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to reconcile stale dispatch attempts: %w", err))
		return
	}

	for _, reward := range stale {
		logger.ErrorCtx(ctx, fmt.Errorf("stale dispatch attempt: reward %d may have been delivered without a status flip", reward.ID),
			zap.Uint64("reward_id", reward.ID),
			zap.Stringp("attempt_id", reward.AttemptID),
			zap.Timep("attempt_at", reward.AttemptAt),
		)
	}
}

// runDispatchCycle processes every due pending reward once
func (d *rewardDispatcher) runDispatchCycle(ctx context.Context) error {
	now := d.clock.Now()
	rewards, err := d.store.ListPendingRewards(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list pending rewards: %w", err)
	}

	if len(rewards) == 0 {
		logger.DebugCtx(ctx, "No pending rewards")
		return nil
	}

	logger.InfoCtx(ctx, "Dispatching pending rewards", zap.Int("count", len(rewards)))

	for i := range rewards {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.stopRequested() {
			return nil
		}
		d.dispatch(ctx, &rewards[i])
	}
	return nil
}

// dispatch delivers a single reward. All failures are handled here; nothing
// propagates to abort the cycle.
func (d *rewardDispatcher) dispatch(ctx context.Context, reward *schema.PendingReward) {
	attemptID := uuid.NewString()
	ok, err := d.store.BeginDispatchAttempt(ctx, reward.ID, attemptID, d.clock.Now())
	if err != nil {
		logger.WarnCtx(ctx, "Failed to record dispatch attempt, deferring reward",
			zap.Uint64("reward_id", reward.ID),
			zap.Error(err),
		)
		return
	}
	if !ok {
		// Another dispatcher instance already settled this reward
		logger.DebugCtx(ctx, "Reward no longer pending, skipping", zap.Uint64("reward_id", reward.ID))
		return
	}
	attempts := reward.AttemptCount + 1

	var deliverErr error
	switch reward.Kind {
	case schema.RewardKindSpecial:
		deliverErr = d.deliverSpecial(ctx, reward)
	default:
		deliverErr = d.deliverInventory(ctx, reward)
	}

	if deliverErr == nil {
		d.confirmDelivery(ctx, reward)
		return
	}

	d.handleDeliveryFailure(ctx, reward, attempts, deliverErr)
}

// deliverSpecial issues a fresh catalog item to the recipient
func (d *rewardDispatcher) deliverSpecial(ctx context.Context, reward *schema.PendingReward) error {
	entry, err := d.store.ResolveSpecialCatalogSlug(ctx, reward.ItemRef)
	if err != nil {
		return fmt.Errorf("failed to resolve special catalog slug %q: %w", reward.ItemRef, err)
	}
	return d.gateway.IssueSpecialItem(ctx, recipientOf(reward), entry.PlatformItemID)
}

// deliverInventory transfers the owned inventory item to the recipient
func (d *rewardDispatcher) deliverInventory(ctx context.Context, reward *schema.PendingReward) error {
	acquisitionRef, err := strconv.ParseInt(reward.ItemRef, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed inventory item ref %q: %w", reward.ItemRef, err)
	}
	return d.gateway.TransferOwnedItem(ctx, acquisitionRef, reward.RecipientAccountID)
}

// confirmDelivery flips the reward (and, for transfers, the inventory row)
// after a successful delivery. The delivery already happened, so these writes
// are retried with backoff rather than dropped.
func (d *rewardDispatcher) confirmDelivery(ctx context.Context, reward *schema.PendingReward) {
	now := d.clock.Now()

	if err := d.retryWrite(ctx, func() error {
		_, err := d.store.MarkRewardSent(ctx, reward.ID, now)
		return err
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: reward %d delivered but not marked sent: %w", reward.ID, err),
			zap.Uint64("reward_id", reward.ID),
		)
		return
	}

	logger.InfoCtx(ctx, "Reward delivered",
		zap.Uint64("reward_id", reward.ID),
		zap.Int64("recipient", reward.RecipientAccountID),
		zap.String("item_ref", reward.ItemRef),
		zap.String("kind", string(reward.Kind)),
	)

	if reward.Kind == schema.RewardKindSpecial {
		return
	}

	acquisitionRef, err := strconv.ParseInt(reward.ItemRef, 10, 64)
	if err != nil {
		return
	}
	if err := d.retryWrite(ctx, func() error {
		_, err := d.store.MarkInventoryUsed(ctx, acquisitionRef)
		return err
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: inventory item %d transferred but not marked used: %w", acquisitionRef, err),
			zap.Uint64("reward_id", reward.ID),
		)
	}
}

// handleDeliveryFailure classifies the failure and schedules or abandons the retry
func (d *rewardDispatcher) handleDeliveryFailure(ctx context.Context, reward *schema.PendingReward, attempts int, deliverErr error) {
	next := d.clock.Now().Add(d.retryDelay(attempts))

	var de *gateway.DeliveryError
	if errors.As(deliverErr, &de) {
		switch de.Kind {
		case gateway.FailureRecipientUnreachable:
			// Clears once the user contacts the sender; retried indefinitely
			logger.InfoCtx(ctx, "Recipient unreachable, leaving reward pending",
				zap.Uint64("reward_id", reward.ID),
				zap.Int64("recipient", reward.RecipientAccountID),
				zap.Int("attempts", attempts),
			)
			d.recordFailure(ctx, reward.ID, de.Error(), &next)
			return

		case gateway.FailureItemUnavailable:
			logger.WarnCtx(ctx, "Item unavailable, operator attention may be needed",
				zap.Uint64("reward_id", reward.ID),
				zap.String("item_ref", reward.ItemRef),
				zap.Int("attempts", attempts),
				zap.String("description", de.Description),
			)
		}
	} else {
		logger.WarnCtx(ctx, "Delivery failed",
			zap.Uint64("reward_id", reward.ID),
			zap.Int("attempts", attempts),
			zap.Error(deliverErr),
		)
	}

	if attempts >= d.config.MaxAttempts {
		ok, err := d.store.MarkRewardFailed(ctx, reward.ID, deliverErr.Error())
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.Uint64("reward_id", reward.ID))
			return
		}
		if ok {
			logger.ErrorCtx(ctx, fmt.Errorf("reward %d abandoned after %d attempts: %s", reward.ID, attempts, deliverErr),
				zap.Uint64("reward_id", reward.ID),
			)
		}
		return
	}

	d.recordFailure(ctx, reward.ID, deliverErr.Error(), &next)
}

func (d *rewardDispatcher) recordFailure(ctx context.Context, rewardID uint64, cause string, next *time.Time) {
	if err := d.store.RecordRewardFailure(ctx, rewardID, cause, next); err != nil {
		logger.ErrorCtx(ctx, err, zap.Uint64("reward_id", rewardID))
	}
}

// retryDelay doubles the base delay per attempt, capped at the configured ceiling
func (d *rewardDispatcher) retryDelay(attempts int) time.Duration {
	delay := d.config.RetryBase
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= d.config.RetryMaxInterval {
			return d.config.RetryMaxInterval
		}
	}
	if delay > d.config.RetryMaxInterval {
		return d.config.RetryMaxInterval
	}
	return delay
}

// retryWrite retries a must-not-drop store write with exponential backoff
func (d *rewardDispatcher) retryWrite(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = 2 * time.Minute
	b.RandomizationFactor = 0.5
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

func recipientOf(reward *schema.PendingReward) gateway.Recipient {
	r := gateway.Recipient{AccountID: reward.RecipientAccountID}
	if reward.RecipientHandle != nil {
		r.Handle = *reward.RecipientHandle
	}
	return r
}
