package schema

import "time"

// UserProfile represents the user_profiles table
// ReferredBy is first-writer-wins: once non-NULL it is never overwritten.
type UserProfile struct {
	// AccountID is the stable chat platform account id
	AccountID int64 `gorm:"column:account_id;primaryKey;autoIncrement:false"`

	Handle string `gorm:"column:handle;type:text"`

	// ReferredBy is the account id of the referrer, set at most once
	ReferredBy *int64 `gorm:"column:referred_by"`

	// FreeSpinLastAt is when the user last consumed a free spin. The right
	// renews 24h after this moment.
	FreeSpinLastAt *time.Time `gorm:"column:free_spin_last_at"`

	// FreeSpinLastNotifiedAt is when the user was last notified about an
	// available free spin, used to guarantee one notification per window
	FreeSpinLastNotifiedAt *time.Time `gorm:"column:free_spin_last_notified_at"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}
