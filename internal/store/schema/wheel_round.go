package schema

import "time"

// RoundStatus represents the lifecycle state of a wheel round
type RoundStatus string

const (
	// RoundStatusInProgress indicates the round is still collecting participants
	RoundStatusInProgress RoundStatus = "in_progress"
	// RoundStatusCompleted indicates a winner has been drawn
	RoundStatusCompleted RoundStatus = "completed"
)

// WheelRound represents the wheel_rounds table
// Notified flips false -> true exactly once, after participants were informed.
type WheelRound struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	Status RoundStatus `gorm:"column:status;not null;type:text;default:in_progress;index"`

	// PrizeLabel names the collectible at stake, referenced in notifications
	PrizeLabel string `gorm:"column:prize_label;type:text"`

	Notified bool `gorm:"column:notified;not null;default:false"`

	CreatedAt   time.Time  `gorm:"column:created_at;not null;autoCreateTime"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

// TableName specifies the table name for the WheelRound model
func (WheelRound) TableName() string {
	return "wheel_rounds"
}

// WheelParticipant represents the wheel_participants table
type WheelParticipant struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	RoundID   uint64 `gorm:"column:round_id;not null;index"`
	AccountID int64  `gorm:"column:account_id;not null"`
	Handle    string `gorm:"column:handle;type:text"`
}

// TableName specifies the table name for the WheelParticipant model
func (WheelParticipant) TableName() string {
	return "wheel_participants"
}
