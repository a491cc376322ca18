package party

import (
	"time"

	cityModel "transport-office/models/city"
)

// Party is a sender or receiver account the office bills against.
type Party struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(150);not null;index" json:"name"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	CityID  uint   `gorm:"not null;index" json:"city_id"`

	City cityModel.City `gorm:"foreignKey:CityID" json:"city,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (Party) TableName() string {
	return "parties"
}
