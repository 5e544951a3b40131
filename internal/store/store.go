package store

import (
	"context"
	"errors"
	"time"

	"github.com/fightforgift/reward-engine/internal/store/schema"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("record not found")

// Store defines the interface for database operations
//
// Mutations that arbitrate races between loops are conditional writes: the
// update carries the predicate the caller observed ("used = false",
// "status = 'pending'") and reports whether it still held at write time, so
// two loops acting on the same row cannot both win.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// HasActiveInventoryItem reports whether an unused inventory row exists
	// for the given upstream identifier
	HasActiveInventoryItem(ctx context.Context, identifier int64) (bool, error)
	// InsertInventoryItem appends a new inventory row
	InsertInventoryItem(ctx context.Context, item *schema.InventoryItem) error
	// CheapestActiveItem returns the unused inventory item with the lowest
	// transfer price, or ErrNotFound when inventory is empty
	CheapestActiveItem(ctx context.Context) (*schema.InventoryItem, error)
	// MarkInventoryUsed flips used=true for the item acquired in the given
	// feed message, only if it is still unused. Returns true if the flip applied.
	MarkInventoryUsed(ctx context.Context, acquisitionRef int64) (bool, error)

	// ListPendingRewards returns pending rewards whose next attempt is due
	ListPendingRewards(ctx context.Context, now time.Time) ([]schema.PendingReward, error)
	// BeginDispatchAttempt records the write-ahead delivery marker before the
	// gateway call. Returns false if the reward is no longer pending.
	BeginDispatchAttempt(ctx context.Context, rewardID uint64, attemptID string, now time.Time) (bool, error)
	// MarkRewardSent flips a pending reward to sent. Returns false if the
	// reward already left the pending state.
	MarkRewardSent(ctx context.Context, rewardID uint64, now time.Time) (bool, error)
	// RecordRewardFailure stores the failure reason and defers the next attempt
	RecordRewardFailure(ctx context.Context, rewardID uint64, cause string, nextAttemptAt *time.Time) error
	// MarkRewardFailed escalates a pending reward to the terminal failed state
	MarkRewardFailed(ctx context.Context, rewardID uint64, cause string) (bool, error)
	// ListStaleDispatchAttempts returns pending rewards whose write-ahead
	// marker is older than the cutoff: deliveries that may have succeeded
	// without the status flip landing
	ListStaleDispatchAttempts(ctx context.Context, olderThan time.Time) ([]schema.PendingReward, error)
	// ResolveSpecialCatalogSlug maps a promotional slug to its catalog entry
	ResolveSpecialCatalogSlug(ctx context.Context, slug string) (*schema.SpecialCatalogEntry, error)

	// ListUnnotifiedCompletedRounds returns completed rounds not yet announced
	ListUnnotifiedCompletedRounds(ctx context.Context, limit int) ([]schema.WheelRound, error)
	// ListRoundParticipants returns all participants of a round
	ListRoundParticipants(ctx context.Context, roundID uint64) ([]schema.WheelParticipant, error)
	// MarkRoundNotified flips notified=true for a round, only if still false.
	// Returns true if the flip applied.
	MarkRoundNotified(ctx context.Context, roundID uint64) (bool, error)

	// ListDepositorAccountIDs returns the distinct account ids with at least
	// one deposit record
	ListDepositorAccountIDs(ctx context.Context) ([]int64, error)
	// ListProfilesByAccountIDs loads profiles for the given accounts in batches
	ListProfilesByAccountIDs(ctx context.Context, accountIDs []int64) ([]schema.UserProfile, error)
	// MarkFreeSpinNotified stamps free_spin_last_notified_at, only if the user
	// has not already been notified since their spin window opened (the stored
	// notified-at still predates spinEdge). Returns true if the stamp applied.
	MarkFreeSpinNotified(ctx context.Context, accountID int64, now time.Time, spinEdge time.Time) (bool, error)
	// ReleaseFreeSpinClaim clears free_spin_last_notified_at, only if it still
	// carries the value stamped by the matching MarkFreeSpinNotified call.
	// Returns true if the claim was released.
	ReleaseFreeSpinClaim(ctx context.Context, accountID int64, claimedAt time.Time) (bool, error)

	// GetProfileByAccountID returns a profile or ErrNotFound
	GetProfileByAccountID(ctx context.Context, accountID int64) (*schema.UserProfile, error)
	// StageReferral stages a referral relationship for the referred account.
	// First writer wins: a second stage for the same account is a no-op.
	// Returns true if this call created the row.
	StageReferral(ctx context.Context, referredAccountID, referrerAccountID int64) (bool, error)
}
