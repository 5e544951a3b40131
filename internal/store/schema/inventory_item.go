package schema

import (
	"time"

	"gorm.io/datatypes"
)

// InventoryItem represents the inventory_items table
// Each row is a redeemable collectible ingested from the upstream gift feed.
// The dedup contract: at most one row per Identifier may have Used=false.
type InventoryItem struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	// Identifier is the stable upstream id of the collectible
	Identifier int64 `gorm:"column:identifier;not null;index"`

	// Label is the human-readable title of the collectible
	Label string `gorm:"column:label;not null;type:text"`

	// Slug is the upstream short name, used to build the public link
	Slug string `gorm:"column:slug;type:text"`

	// AcquisitionRef is the source feed message id the item arrived in.
	// Transfers reference the item by this value.
	AcquisitionRef int64 `gorm:"column:acquisition_ref;not null;index"`

	// TransferPrice is the platform cost of transferring the item (NULL if unknown)
	TransferPrice *int64 `gorm:"column:transfer_price"`

	// Link is the public URL of the collectible
	Link string `gorm:"column:link;type:text"`

	// Used flips true once the item has been delivered to a recipient
	Used bool `gorm:"column:used;not null;default:false"`

	// Raw keeps the upstream feed event payload for auditing
	Raw datatypes.JSON `gorm:"column:raw"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}
