package user

import (
	"time"
)

// User is a staff account of the transport office. The password hash never
// leaves the database layer; Role is one of the constants.Role* values.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(64);not null;unique" json:"uuid"`
	Username     string  `gorm:"type:varchar(100);not null;unique" json:"username"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'OPERATOR'" json:"role"`
	CreatedByID  *uint   `gorm:"index" json:"created_by_id,omitempty"`

	// Self-referencing relationship: who registered this account.
	CreatedByUser *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"created_by,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
