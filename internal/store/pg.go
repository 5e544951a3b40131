package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fightforgift/reward-engine/internal/store/schema"
)

// profileBatchSize bounds the IN clause of batched profile loads
const profileBatchSize = 100

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the engine's tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.InventoryItem{},
		&schema.PendingReward{},
		&schema.SpecialCatalogEntry{},
		&schema.WheelRound{},
		&schema.WheelParticipant{},
		&schema.UserProfile{},
		&schema.ReferralPending{},
		&schema.DepositRecord{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults suited to a single
// long-running loop process.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 5
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = time.Hour
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// =============================================================================
// Inventory
// =============================================================================

func (s *pgStore) HasActiveInventoryItem(ctx context.Context, identifier int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.InventoryItem{}).
		Where("identifier = ? AND used = ?", identifier, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check active inventory item %d: %w", identifier, err)
	}
	return count > 0, nil
}

func (s *pgStore) InsertInventoryItem(ctx context.Context, item *schema.InventoryItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to insert inventory item %d: %w", item.Identifier, err)
	}
	return nil
}

func (s *pgStore) CheapestActiveItem(ctx context.Context) (*schema.InventoryItem, error) {
	var item schema.InventoryItem
	err := s.db.WithContext(ctx).
		Where("used = ? AND transfer_price IS NOT NULL", false).
		Order("transfer_price ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cheapest active item: %w", err)
	}
	return &item, nil
}

func (s *pgStore) MarkInventoryUsed(ctx context.Context, acquisitionRef int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.InventoryItem{}).
		Where("acquisition_ref = ? AND used = ?", acquisitionRef, false).
		Update("used", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark inventory item %d used: %w", acquisitionRef, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// =============================================================================
// Pending rewards
// =============================================================================

func (s *pgStore) ListPendingRewards(ctx context.Context, now time.Time) ([]schema.PendingReward, error) {
	var rewards []schema.PendingReward
	err := s.db.WithContext(ctx).
		Where("status = ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)", schema.RewardStatusPending, now).
		Order("created_at ASC").
		Find(&rewards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending rewards: %w", err)
	}
	return rewards, nil
}

func (s *pgStore) BeginDispatchAttempt(ctx context.Context, rewardID uint64, attemptID string, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.PendingReward{}).
		Where("id = ? AND status = ?", rewardID, schema.RewardStatusPending).
		Updates(map[string]interface{}{
			"attempt_id":    attemptID,
			"attempt_at":    now,
			"attempt_count": gorm.Expr("attempt_count + 1"),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to begin dispatch attempt for reward %d: %w", rewardID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *pgStore) MarkRewardSent(ctx context.Context, rewardID uint64, now time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.PendingReward{}).
		Where("id = ? AND status = ?", rewardID, schema.RewardStatusPending).
		Updates(map[string]interface{}{
			"status":     schema.RewardStatusSent,
			"sent_at":    now,
			"last_error": nil,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark reward %d sent: %w", rewardID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *pgStore) RecordRewardFailure(ctx context.Context, rewardID uint64, cause string, nextAttemptAt *time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.PendingReward{}).
		Where("id = ? AND status = ?", rewardID, schema.RewardStatusPending).
		Updates(map[string]interface{}{
			"last_error":      cause,
			"next_attempt_at": nextAttemptAt,
			"attempt_id":      nil,
			"attempt_at":      nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record failure for reward %d: %w", rewardID, err)
	}
	return nil
}

func (s *pgStore) MarkRewardFailed(ctx context.Context, rewardID uint64, cause string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.PendingReward{}).
		Where("id = ? AND status = ?", rewardID, schema.RewardStatusPending).
		Updates(map[string]interface{}{
			"status":     schema.RewardStatusFailed,
			"last_error": cause,
			"attempt_id": nil,
			"attempt_at": nil,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark reward %d failed: %w", rewardID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *pgStore) ListStaleDispatchAttempts(ctx context.Context, olderThan time.Time) ([]schema.PendingReward, error) {
	var rewards []schema.PendingReward
	err := s.db.WithContext(ctx).
		Where("status = ? AND attempt_at IS NOT NULL AND attempt_at < ?", schema.RewardStatusPending, olderThan).
		Find(&rewards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale dispatch attempts: %w", err)
	}
	return rewards, nil
}

func (s *pgStore) ResolveSpecialCatalogSlug(ctx context.Context, slug string) (*schema.SpecialCatalogEntry, error) {
	var entry schema.SpecialCatalogEntry
	err := s.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve special catalog slug %q: %w", slug, err)
	}
	return &entry, nil
}

// =============================================================================
// Wheel rounds
// =============================================================================

func (s *pgStore) ListUnnotifiedCompletedRounds(ctx context.Context, limit int) ([]schema.WheelRound, error) {
	var rounds []schema.WheelRound
	err := s.db.WithContext(ctx).
		Where("status = ? AND notified = ?", schema.RoundStatusCompleted, false).
		Order("id ASC").
		Limit(limit).
		Find(&rounds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unnotified completed rounds: %w", err)
	}
	return rounds, nil
}

func (s *pgStore) ListRoundParticipants(ctx context.Context, roundID uint64) ([]schema.WheelParticipant, error) {
	var participants []schema.WheelParticipant
	err := s.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of round %d: %w", roundID, err)
	}
	return participants, nil
}

func (s *pgStore) MarkRoundNotified(ctx context.Context, roundID uint64) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.WheelRound{}).
		Where("id = ? AND notified = ?", roundID, false).
		Update("notified", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark round %d notified: %w", roundID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// =============================================================================
// Free spin eligibility
// =============================================================================

func (s *pgStore) ListDepositorAccountIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&schema.DepositRecord{}).
		Distinct("account_id").
		Pluck("account_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list depositor account ids: %w", err)
	}
	return ids, nil
}

func (s *pgStore) ListProfilesByAccountIDs(ctx context.Context, accountIDs []int64) ([]schema.UserProfile, error) {
	profiles := make([]schema.UserProfile, 0, len(accountIDs))
	for start := 0; start < len(accountIDs); start += profileBatchSize {
		end := start + profileBatchSize
		if end > len(accountIDs) {
			end = len(accountIDs)
		}

		var batch []schema.UserProfile
		err := s.db.WithContext(ctx).
			Where("account_id IN ?", accountIDs[start:end]).
			Find(&batch).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles batch: %w", err)
		}
		profiles = append(profiles, batch...)
	}
	return profiles, nil
}

func (s *pgStore) MarkFreeSpinNotified(ctx context.Context, accountID int64, now time.Time, spinEdge time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.UserProfile{}).
		Where("account_id = ? AND (free_spin_last_notified_at IS NULL OR free_spin_last_notified_at < ?)", accountID, spinEdge).
		Update("free_spin_last_notified_at", now)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark free spin notified for account %d: %w", accountID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *pgStore) ReleaseFreeSpinClaim(ctx context.Context, accountID int64, claimedAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&schema.UserProfile{}).
		Where("account_id = ? AND free_spin_last_notified_at = ?", accountID, claimedAt).
		Update("free_spin_last_notified_at", nil)
	if res.Error != nil {
		return false, fmt.Errorf("failed to release free spin claim for account %d: %w", accountID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// =============================================================================
// Referrals
// =============================================================================

func (s *pgStore) GetProfileByAccountID(ctx context.Context, accountID int64) (*schema.UserProfile, error) {
	var profile schema.UserProfile
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", accountID, err)
	}
	return &profile, nil
}

func (s *pgStore) StageReferral(ctx context.Context, referredAccountID, referrerAccountID int64) (bool, error) {
	row := schema.ReferralPending{
		ReferredAccountID: referredAccountID,
		ReferrerAccountID: referrerAccountID,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "referred_account_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to stage referral %d -> %d: %w", referrerAccountID, referredAccountID, res.Error)
	}
	return res.RowsAffected > 0, nil
}
