package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fightforgift/reward-engine/internal/store"
	"github.com/fightforgift/reward-engine/internal/store/schema"
)

func setupTestStore(t *testing.T) (store.Store, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	return store.NewPGStore(db), db
}

func int64p(v int64) *int64 {
	return &v
}

func timep(t time.Time) *time.Time {
	return &t
}

func TestHasActiveInventoryItem(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier:     42,
		Label:          "Plush Pepe",
		AcquisitionRef: 9001,
		Used:           true,
	}).Error)

	// Only unused rows count as active
	active, err := st.HasActiveInventoryItem(ctx, 42)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier:     42,
		Label:          "Plush Pepe",
		AcquisitionRef: 9002,
	}).Error)

	active, err = st.HasActiveInventoryItem(ctx, 42)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = st.HasActiveInventoryItem(ctx, 77)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCheapestActiveItem(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	_, err := st.CheapestActiveItem(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier: 1, Label: "Signet Ring", AcquisitionRef: 1, TransferPrice: int64p(100),
	}).Error)
	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier: 2, Label: "Lol Pop", AcquisitionRef: 2, TransferPrice: int64p(15),
	}).Error)
	// Cheapest but already used
	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier: 3, Label: "Desk Calendar", AcquisitionRef: 3, TransferPrice: int64p(10), Used: true,
	}).Error)
	// No price on record
	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier: 4, Label: "Mystery Box", AcquisitionRef: 4,
	}).Error)

	item, err := st.CheapestActiveItem(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lol Pop", item.Label)
}

func TestMarkInventoryUsedIsConditional(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.InventoryItem{
		Identifier: 42, Label: "Plush Pepe", AcquisitionRef: 9001,
	}).Error)

	ok, err := st.MarkInventoryUsed(ctx, 9001)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second flip loses; the row already left the unused state
	ok, err = st.MarkInventoryUsed(ctx, 9001)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.MarkInventoryUsed(ctx, 404)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListPendingRewardsHonorsDeferral(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&schema.PendingReward{
		RecipientAccountID: 100, ItemRef: "9001", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending,
	}).Error)
	require.NoError(t, db.Create(&schema.PendingReward{
		RecipientAccountID: 200, ItemRef: "9002", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending, NextAttemptAt: timep(now.Add(time.Hour)),
	}).Error)
	require.NoError(t, db.Create(&schema.PendingReward{
		RecipientAccountID: 300, ItemRef: "9003", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusSent,
	}).Error)

	rewards, err := st.ListPendingRewards(ctx, now)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, int64(100), rewards[0].RecipientAccountID)

	// The deferred reward becomes due once its next attempt time passes
	rewards, err = st.ListPendingRewards(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, rewards, 2)
}

func TestBeginDispatchAttempt(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	reward := schema.PendingReward{
		RecipientAccountID: 100, ItemRef: "9001", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending, AttemptCount: 2,
	}
	require.NoError(t, db.Create(&reward).Error)

	ok, err := st.BeginDispatchAttempt(ctx, reward.ID, "attempt-1", now)
	require.NoError(t, err)
	assert.True(t, ok)

	var got schema.PendingReward
	require.NoError(t, db.First(&got, reward.ID).Error)
	require.NotNil(t, got.AttemptID)
	assert.Equal(t, "attempt-1", *got.AttemptID)
	require.NotNil(t, got.AttemptAt)
	assert.Equal(t, 3, got.AttemptCount)

	// A settled reward rejects the marker
	_, err = st.MarkRewardSent(ctx, reward.ID, now)
	require.NoError(t, err)
	ok, err = st.BeginDispatchAttempt(ctx, reward.ID, "attempt-2", now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRewardStatusMovesForwardOnly(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	reward := schema.PendingReward{
		RecipientAccountID: 100, ItemRef: "9001", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending,
	}
	require.NoError(t, db.Create(&reward).Error)

	ok, err := st.MarkRewardSent(ctx, reward.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// Terminal states never regress or cross over
	ok, err = st.MarkRewardSent(ctx, reward.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.MarkRewardFailed(ctx, reward.ID, "late failure")
	require.NoError(t, err)
	assert.False(t, ok)

	var got schema.PendingReward
	require.NoError(t, db.First(&got, reward.ID).Error)
	assert.Equal(t, schema.RewardStatusSent, got.Status)
	require.NotNil(t, got.SentAt)
}

func TestRecordRewardFailureClearsMarker(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	reward := schema.PendingReward{
		RecipientAccountID: 100, ItemRef: "9001", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending,
	}
	require.NoError(t, db.Create(&reward).Error)

	ok, err := st.BeginDispatchAttempt(ctx, reward.ID, "attempt-1", now)
	require.NoError(t, err)
	require.True(t, ok)

	next := now.Add(time.Minute)
	require.NoError(t, st.RecordRewardFailure(ctx, reward.ID, "PEER_ID_INVALID", &next))

	var got schema.PendingReward
	require.NoError(t, db.First(&got, reward.ID).Error)
	assert.Equal(t, schema.RewardStatusPending, got.Status)
	assert.Nil(t, got.AttemptID)
	assert.Nil(t, got.AttemptAt)
	require.NotNil(t, got.LastError)
	assert.Equal(t, "PEER_ID_INVALID", *got.LastError)
	require.NotNil(t, got.NextAttemptAt)
}

func TestListStaleDispatchAttempts(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	stale := schema.PendingReward{
		RecipientAccountID: 100, ItemRef: "9001", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending,
	}
	require.NoError(t, db.Create(&stale).Error)
	fresh := schema.PendingReward{
		RecipientAccountID: 200, ItemRef: "9002", Kind: schema.RewardKindInventory,
		Status: schema.RewardStatusPending,
	}
	require.NoError(t, db.Create(&fresh).Error)

	_, err := st.BeginDispatchAttempt(ctx, stale.ID, "old", now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = st.BeginDispatchAttempt(ctx, fresh.ID, "new", now)
	require.NoError(t, err)

	got, err := st.ListStaleDispatchAttempts(ctx, now.Add(-10*time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stale.ID, got[0].ID)
}

func TestResolveSpecialCatalogSlug(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.SpecialCatalogEntry{
		Slug: "rocket", PlatformItemID: 5170564780938756245, Label: "Rocket", Active: true,
	}).Error)
	require.NoError(t, db.Create(&schema.SpecialCatalogEntry{
		Slug: "retired", PlatformItemID: 1, Label: "Retired", Active: false,
	}).Error)

	entry, err := st.ResolveSpecialCatalogSlug(ctx, "rocket")
	require.NoError(t, err)
	assert.Equal(t, int64(5170564780938756245), entry.PlatformItemID)

	_, err = st.ResolveSpecialCatalogSlug(ctx, "retired")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.ResolveSpecialCatalogSlug(ctx, "unknown")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoundNotificationExactlyOnce(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	completed := schema.WheelRound{
		Status: schema.RoundStatusCompleted, PrizeLabel: "Plush Pepe", CompletedAt: timep(now),
	}
	require.NoError(t, db.Create(&completed).Error)
	inProgress := schema.WheelRound{Status: schema.RoundStatusInProgress}
	require.NoError(t, db.Create(&inProgress).Error)

	rounds, err := st.ListUnnotifiedCompletedRounds(ctx, 50)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, completed.ID, rounds[0].ID)

	ok, err := st.MarkRoundNotified(ctx, completed.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second flip loses and the round disappears from the listing
	ok, err = st.MarkRoundNotified(ctx, completed.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	rounds, err = st.ListUnnotifiedCompletedRounds(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, rounds)
}

func TestListRoundParticipants(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.WheelParticipant{RoundID: 12, AccountID: 100, Handle: "alice"}).Error)
	require.NoError(t, db.Create(&schema.WheelParticipant{RoundID: 12, AccountID: 200, Handle: "bob"}).Error)
	require.NoError(t, db.Create(&schema.WheelParticipant{RoundID: 13, AccountID: 300, Handle: "carol"}).Error)

	participants, err := st.ListRoundParticipants(ctx, 12)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}

func TestListDepositorAccountIDsIsDistinct(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.DepositRecord{AccountID: 100, Amount: 50, TxRef: "tx-1"}).Error)
	require.NoError(t, db.Create(&schema.DepositRecord{AccountID: 100, Amount: 75, TxRef: "tx-2"}).Error)
	require.NoError(t, db.Create(&schema.DepositRecord{AccountID: 200, Amount: 10, TxRef: "tx-3"}).Error)

	ids, err := st.ListDepositorAccountIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{100, 200}, ids)
}

func TestListProfilesByAccountIDsBatches(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	ids := make([]int64, 0, 250)
	for i := int64(1); i <= 250; i++ {
		require.NoError(t, db.Create(&schema.UserProfile{AccountID: i}).Error)
		ids = append(ids, i)
	}

	profiles, err := st.ListProfilesByAccountIDs(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, profiles, 250)
}

func TestMarkFreeSpinNotifiedOncePerEdge(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	edge := now.Add(-time.Hour)

	require.NoError(t, db.Create(&schema.UserProfile{AccountID: 100}).Error)

	// Never notified: the claim applies
	ok, err := st.MarkFreeSpinNotified(ctx, 100, now, edge)
	require.NoError(t, err)
	assert.True(t, ok)

	// While the edge stands, later sweeps are rejected, even a day later
	nextDay := now.Add(25 * time.Hour)
	ok, err = st.MarkFreeSpinNotified(ctx, 100, nextDay, edge)
	require.NoError(t, err)
	assert.False(t, ok)

	// A new spin moves the edge past the stored reminder; the claim applies again
	movedEdge := now.Add(26 * time.Hour)
	ok, err = st.MarkFreeSpinNotified(ctx, 100, now.Add(27*time.Hour), movedEdge)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseFreeSpinClaim(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	edge := now.Add(-time.Hour)

	require.NoError(t, db.Create(&schema.UserProfile{AccountID: 100}).Error)

	ok, err := st.MarkFreeSpinNotified(ctx, 100, now, edge)
	require.NoError(t, err)
	require.True(t, ok)

	// Releasing with the stamped value clears the claim
	ok, err = st.ReleaseFreeSpinClaim(ctx, 100, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.MarkFreeSpinNotified(ctx, 100, now.Add(time.Minute), edge)
	require.NoError(t, err)
	assert.True(t, ok)

	// A stale release does not clobber the fresher claim
	ok, err = st.ReleaseFreeSpinClaim(ctx, 100, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStageReferralFirstWriterWins(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	ok, err := st.StageReferral(ctx, 100, 200)
	require.NoError(t, err)
	assert.True(t, ok)

	// A later token for the same account is a no-op
	ok, err = st.StageReferral(ctx, 100, 300)
	require.NoError(t, err)
	assert.False(t, ok)

	var row schema.ReferralPending
	require.NoError(t, db.First(&row, "referred_account_id = ?", int64(100)).Error)
	assert.Equal(t, int64(200), row.ReferrerAccountID)
}

func TestGetProfileByAccountID(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&schema.UserProfile{AccountID: 100, Handle: "alice"}).Error)

	profile, err := st.GetProfileByAccountID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Handle)

	_, err = st.GetProfileByAccountID(ctx, 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
