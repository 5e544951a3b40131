package schema

import "time"

// ReferralPending represents the referral_pending table
// Staging relation written by the binder on first contact, keyed by the
// referred account so only the first referrer ever lands. Consumed by the
// settlement job outside this engine.
type ReferralPending struct {
	ReferredAccountID int64 `gorm:"column:referred_account_id;primaryKey;autoIncrement:false"`

	ReferrerAccountID int64 `gorm:"column:referrer_account_id;not null"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the ReferralPending model
func (ReferralPending) TableName() string {
	return "referral_pending"
}
