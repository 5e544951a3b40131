package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fightforgift/reward-engine/internal/adapter"
	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/store"
	"github.com/fightforgift/reward-engine/internal/store/schema"
)

// FreeSpinNotifierConfig holds configuration for the free spin notifier
type FreeSpinNotifierConfig struct {
	Interval      time.Duration // Time to sleep between eligibility sweeps
	Window        time.Duration // Cooldown between spins, and between reminders
	WebAppBaseURL string        // Base URL used to build the case deep link
}

// freeSpinNotifier reminds depositors whose free spin cooldown has elapsed.
// A reminder goes out at most once per window; the notified timestamp is
// advanced with a conditional write so concurrent sweeps cannot double-send.
type freeSpinNotifier struct {
	lifecycle
	config *FreeSpinNotifierConfig
	store  store.Store
	gw     gateway.Gateway
	clock  adapter.Clock
}

// NewFreeSpinNotifier creates a new free spin notifier worker
func NewFreeSpinNotifier(config *FreeSpinNotifierConfig, st store.Store, gw gateway.Gateway, clock adapter.Clock) Worker {
	return &freeSpinNotifier{
		lifecycle: newLifecycle(),
		config:    config,
		store:     st,
		gw:        gw,
		clock:     clock,
	}
}

// Name returns the worker's name
func (n *freeSpinNotifier) Name() string {
	return "free-spin-notifier"
}

// Start begins the notifier's main loop
func (n *freeSpinNotifier) Start(ctx context.Context) error {
	if !n.begin() {
		return fmt.Errorf("free spin notifier already running")
	}
	defer n.finish()

	logger.InfoCtx(ctx, "Starting free spin notifier",
		zap.Duration("interval", n.config.Interval),
		zap.Duration("window", n.config.Window),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Free spin notifier stopping", zap.Error(ctx.Err()))
			return nil
		case <-n.stopChan:
			logger.InfoCtx(ctx, "Free spin notifier stop requested")
			return nil
		default:
			if err := n.runSweep(ctx); err != nil {
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
func (n *freeSpinNotifier) Stop(ctx context.Context) error {
	return n.stop(ctx)
}

// runSweep finds every eligible depositor and sends at most one reminder each
func (n *freeSpinNotifier) runSweep(ctx context.Context) error {
	item, err := n.store.CheapestActiveItem(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.DebugCtx(ctx, "No active inventory, skipping free spin sweep")
			return nil
		}
		return fmt.Errorf("failed to load cheapest active item: %w", err)
	}

	depositors, err := n.store.ListDepositorAccountIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list depositors: %w", err)
	}
	if len(depositors) == 0 {
		return nil
	}

	profiles, err := n.store.ListProfilesByAccountIDs(ctx, depositors)
	if err != nil {
		return fmt.Errorf("failed to load depositor profiles: %w", err)
	}

	now := n.clock.Now()
	var sent int
	for i := range profiles {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if n.stopRequested() {
			return nil
		}
		if n.notify(ctx, &profiles[i], item, now) {
			sent++
		}
	}

	if sent > 0 {
		logger.InfoCtx(ctx, "Free spin sweep finished",
			zap.Int("eligible_profiles", len(profiles)),
			zap.Int("reminders_sent", sent),
		)
	}
	return nil
}

// notify sends the reminder to one profile if its cooldown has elapsed and it
// has not already been reminded since the right appeared. The reminder is tied
// to the spin edge: once a profile is reminded after its window opened, no
// further reminder goes out until a new spin moves the edge forward.
func (n *freeSpinNotifier) notify(ctx context.Context, profile *schema.UserProfile, item *schema.InventoryItem, now time.Time) bool {
	edge := windowEdge(profile.FreeSpinLastAt, n.config.Window)
	if now.Before(edge) {
		return false
	}
	if profile.FreeSpinLastNotifiedAt != nil && !profile.FreeSpinLastNotifiedAt.Before(edge) {
		return false
	}

	// Claim the notification slot before sending; a lost race means another
	// sweep already reminded this profile for the current edge.
	ok, err := n.store.MarkFreeSpinNotified(ctx, profile.AccountID, now, edge)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to claim free spin reminder for account %d: %w", profile.AccountID, err))
		return false
	}
	if !ok {
		return false
	}

	text := fmt.Sprintf("Your free spin is ready! Today you could win %s. Come spin the wheel.", item.Label)
	button := &gateway.Button{
		Text: "Spin now",
		URL:  fmt.Sprintf("%s/?open_case=%d", n.config.WebAppBaseURL, item.AcquisitionRef),
	}
	to := gateway.Recipient{AccountID: profile.AccountID, Handle: profile.Handle}

	if err := n.gw.SendMessage(ctx, to, text, button); err != nil {
		logger.WarnCtx(ctx, "Failed to deliver free spin reminder",
			zap.Int64("account_id", profile.AccountID),
			zap.Error(err),
		)
		// A platform rejection means nothing was delivered, so the claim can
		// be handed back for a later sweep. Ambiguous failures (timeouts,
		// network errors) leave the slot spent rather than risk a double send.
		var deliveryErr *gateway.DeliveryError
		if errors.As(err, &deliveryErr) {
			if _, relErr := n.store.ReleaseFreeSpinClaim(ctx, profile.AccountID, now); relErr != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to release free spin claim for account %d: %w", profile.AccountID, relErr))
			}
		}
		return false
	}
	return true
}

// windowEdge returns the instant a cooldown window opens. A nil timestamp
// means the window never started and is treated as already open.
func windowEdge(last *time.Time, window time.Duration) time.Time {
	if last == nil {
		return time.Time{}
	}
	return last.Add(window)
}
