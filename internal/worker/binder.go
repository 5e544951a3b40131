package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fightforgift/reward-engine/internal/adapter"
	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/store"
)

// BinderConfig holds configuration for the referral binder
type BinderConfig struct {
	PollTimeout   time.Duration // Long poll timeout for contact events
	WebAppBaseURL string        // Base URL used to build the greeting button
}

// referralBinder consumes contact events from the gateway and stages
// referral attributions. An account binds to at most one referrer, ever;
// the staging write is first-writer-wins and later tokens are ignored.
type referralBinder struct {
	lifecycle
	config *BinderConfig
	store  store.Store
	gw     gateway.Gateway
	clock  adapter.Clock
	offset int64
}

// NewReferralBinder creates a new referral binder worker
func NewReferralBinder(config *BinderConfig, st store.Store, gw gateway.Gateway, clock adapter.Clock) Worker {
	return &referralBinder{
		lifecycle: newLifecycle(),
		config:    config,
		store:     st,
		gw:        gw,
		clock:     clock,
	}
}

// Name returns the worker's name
func (b *referralBinder) Name() string {
	return "referral-binder"
}

// Start begins the binder's long-poll loop
func (b *referralBinder) Start(ctx context.Context) error {
	if !b.begin() {
		return fmt.Errorf("binder already running")
	}
	defer b.finish()

	logger.InfoCtx(ctx, "Starting referral binder",
		zap.Duration("poll_timeout", b.config.PollTimeout),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Referral binder stopping", zap.Error(ctx.Err()))
			return nil
		case <-b.stopChan:
			logger.InfoCtx(ctx, "Referral binder stop requested")
			return nil
		default:
			if err := b.poll(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				logger.ErrorCtx(ctx, err)
				if !b.sleep(ctx, b.clock, 5*time.Second) {
					return nil
				}
			}
		}
	}
}

// Stop gracefully stops the binder
func (b *referralBinder) Stop(ctx context.Context) error {
	return b.stop(ctx)
}

// poll fetches one batch of contact events and processes each in order.
// The poll offset only advances after a successful fetch, so a transient
// gateway error replays the same batch.
func (b *referralBinder) poll(ctx context.Context) error {
	events, next, err := b.gw.PollContactEvents(ctx, b.offset, b.config.PollTimeout)
	if err != nil {
		return fmt.Errorf("failed to poll contact events: %w", err)
	}
	b.offset = next

	for i := range events {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.handleContact(ctx, &events[i])
	}
	return nil
}

// handleContact greets the account and, when the event carries a referrer
// token, stages the attribution
func (b *referralBinder) handleContact(ctx context.Context, ev *gateway.ContactEvent) {
	if ev.ReferrerToken != "" {
		b.bindReferral(ctx, ev)
	}
	b.greet(ctx, ev)
}

// bindReferral validates the token and stages the referred -> referrer edge
func (b *referralBinder) bindReferral(ctx context.Context, ev *gateway.ContactEvent) {
	referrerID, err := strconv.ParseInt(ev.ReferrerToken, 10, 64)
	if err != nil {
		logger.DebugCtx(ctx, "Ignoring malformed referrer token",
			zap.Int64("account_id", ev.AccountID),
			zap.String("token", ev.ReferrerToken),
		)
		return
	}
	if referrerID == ev.AccountID {
		logger.DebugCtx(ctx, "Ignoring self referral", zap.Int64("account_id", ev.AccountID))
		return
	}

	profile, err := b.store.GetProfileByAccountID(ctx, ev.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.DebugCtx(ctx, "No profile for account yet, ignoring token",
				zap.Int64("account_id", ev.AccountID),
			)
			return
		}
		logger.ErrorCtx(ctx, fmt.Errorf("failed to load profile %d: %w", ev.AccountID, err))
		return
	}
	if profile.ReferredBy != nil {
		logger.DebugCtx(ctx, "Account already attributed, ignoring token",
			zap.Int64("account_id", ev.AccountID),
			zap.Int64("referred_by", *profile.ReferredBy),
		)
		return
	}

	if _, err := b.store.GetProfileByAccountID(ctx, referrerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.DebugCtx(ctx, "Referrer unknown, ignoring token",
				zap.Int64("account_id", ev.AccountID),
				zap.Int64("referrer_id", referrerID),
			)
			return
		}
		logger.ErrorCtx(ctx, fmt.Errorf("failed to load referrer %d: %w", referrerID, err))
		return
	}

	ok, err := b.store.StageReferral(ctx, ev.AccountID, referrerID)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to stage referral %d -> %d: %w", ev.AccountID, referrerID, err))
		return
	}
	if !ok {
		logger.DebugCtx(ctx, "Referral already staged", zap.Int64("account_id", ev.AccountID))
		return
	}

	logger.InfoCtx(ctx, "Referral staged",
		zap.Int64("account_id", ev.AccountID),
		zap.Int64("referrer_id", referrerID),
	)
}

// greet replies to the contact event with the web app entry point
func (b *referralBinder) greet(ctx context.Context, ev *gateway.ContactEvent) {
	name := ev.FirstName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("Hey %s! Open the app, spin the wheel and win gifts.", name)
	button := &gateway.Button{
		Text: "Play",
		URL:  b.config.WebAppBaseURL,
	}
	to := gateway.Recipient{AccountID: ev.AccountID, Handle: ev.Handle}

	if err := b.gw.SendMessage(ctx, to, text, button); err != nil {
		logger.WarnCtx(ctx, "Failed to send greeting",
			zap.Int64("account_id", ev.AccountID),
			zap.Error(err),
		)
	}
}
