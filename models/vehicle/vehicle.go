package vehicle

import (
	"time"
)

// Vehicle is a truck on the office fleet, own or hired.
type Vehicle struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleNumber string `gorm:"type:varchar(30);not null;unique" json:"vehicle_number"`
	OwnerName     string `gorm:"type:varchar(150)" json:"owner_name"`

	Transactions []VehicleTransaction `gorm:"foreignKey:VehicleID" json:"transactions,omitempty"`
	TripLogs     []TripLog            `gorm:"foreignKey:VehicleID" json:"trip_logs,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
