package delivery

import (
	"time"

	shipmentModel "transport-office/models/shipment"
)

// ReturnShipment tracks a consignment that came back to the office.
type ReturnShipment struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	ShipmentID uint         `gorm:"not null;index" json:"shipment_id"`
	ReturnDate time.Time    `gorm:"type:date;not null" json:"return_date"`
	Reason     string       `gorm:"type:varchar(255)" json:"reason"`
	Status     ReturnStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	Shipment shipmentModel.Shipment `gorm:"foreignKey:ShipmentID" json:"shipment,omitempty"`

	CreatedBy string    `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReturnShipment) TableName() string {
	return "return_shipments"
}
