package schema

import "time"

// RewardStatus represents the delivery status of a pending reward
type RewardStatus string

const (
	// RewardStatusPending indicates the reward is queued for delivery
	RewardStatusPending RewardStatus = "pending"
	// RewardStatusSent indicates the delivery call succeeded (terminal)
	RewardStatusSent RewardStatus = "sent"
	// RewardStatusFailed indicates delivery was abandoned after repeated
	// non-recoverable failures (terminal)
	RewardStatusFailed RewardStatus = "failed"
)

// String returns the string representation of the reward status
func (s RewardStatus) String() string {
	return string(s)
}

// RewardKind distinguishes how a reward is fulfilled
type RewardKind string

const (
	// RewardKindInventory transfers an owned inventory item to the recipient
	RewardKindInventory RewardKind = "inventory"
	// RewardKindSpecial issues a fresh item resolved from the special catalog
	RewardKindSpecial RewardKind = "special"
)

// PendingReward represents the pending_rewards table
// Rows are created by the allocation process (outside this engine) in the
// pending state. Status moves forward only: pending -> sent or pending -> failed.
type PendingReward struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	// RecipientAccountID is the chat platform account to deliver to
	RecipientAccountID int64 `gorm:"column:recipient_account_id;not null;index"`

	// RecipientHandle is the platform username, used when the account id
	// cannot be resolved (NULL when unknown)
	RecipientHandle *string `gorm:"column:recipient_handle;type:text"`

	// ItemRef identifies what to deliver: the acquisition ref of an inventory
	// item for RewardKindInventory, or a special catalog slug for RewardKindSpecial
	ItemRef string `gorm:"column:item_ref;not null;type:text"`

	Kind   RewardKind   `gorm:"column:kind;not null;type:text;default:inventory"`
	Status RewardStatus `gorm:"column:status;not null;type:text;default:pending;index"`

	// AttemptCount is the number of delivery attempts made so far
	AttemptCount int `gorm:"column:attempt_count;not null;default:0"`

	// AttemptID and AttemptAt form the write-ahead delivery marker, set just
	// before the gateway call so a crash between delivery and the status flip
	// is visible on restart
	AttemptID *string    `gorm:"column:attempt_id;type:text"`
	AttemptAt *time.Time `gorm:"column:attempt_at"`

	// NextAttemptAt defers retries after a failed attempt (NULL = due now)
	NextAttemptAt *time.Time `gorm:"column:next_attempt_at"`

	// LastError stores the classification of the most recent failure
	LastError *string `gorm:"column:last_error;type:text"`

	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

// TableName specifies the table name for the PendingReward model
func (PendingReward) TableName() string {
	return "pending_rewards"
}
