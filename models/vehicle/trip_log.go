package vehicle

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripLog records one fare-bearing trip. The most recent trip per vehicle
// decides the fare payment status shown on the financials view.
type TripLog struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID      uint            `gorm:"not null;index" json:"vehicle_id"`
	ShipmentID     *uint           `gorm:"index" json:"shipment_id,omitempty"`
	TripDate       time.Time       `gorm:"type:date;not null;index" json:"trip_date"`
	FareAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"fare_amount"`
	ReceivedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"received_amount"`
	FareIsPaid     bool            `gorm:"not null;default:false" json:"fare_is_paid"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TripLog) TableName() string {
	return "trip_logs"
}
