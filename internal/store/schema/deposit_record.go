package schema

import "time"

// DepositRecord represents the deposit_records table
// Read-only evidence that an account made at least one qualifying transaction.
// Written by the payment pipeline, consumed here for free-spin eligibility.
type DepositRecord struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	AccountID int64 `gorm:"column:account_id;not null;index"`

	Amount int64  `gorm:"column:amount;not null"`
	TxRef  string `gorm:"column:tx_ref;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the DepositRecord model
func (DepositRecord) TableName() string {
	return "deposit_records"
}
