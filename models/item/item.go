package item

import (
	"time"
)

// ItemCatalog is a reusable goods name offered while writing bilty lines.
type ItemCatalog struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"type:varchar(150);not null;unique" json:"name"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (ItemCatalog) TableName() string {
	return "item_catalogs"
}
