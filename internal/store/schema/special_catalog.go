package schema

import "time"

// SpecialCatalogEntry represents the special_catalog table
// Maps a small set of promotional reward slugs to the platform item id used
// when issuing the reward fresh instead of transferring it from inventory.
type SpecialCatalogEntry struct {
	// Slug is the promotional reward name referenced by pending_rewards.item_ref
	Slug string `gorm:"column:slug;primaryKey;type:text"`

	// PlatformItemID is the chat platform's id for the issuable item
	PlatformItemID int64 `gorm:"column:platform_item_id;not null"`

	Label  string `gorm:"column:label;type:text"`
	Active bool   `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the SpecialCatalogEntry model
func (SpecialCatalogEntry) TableName() string {
	return "special_catalog"
}
