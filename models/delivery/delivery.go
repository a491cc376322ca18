package delivery

import (
	"time"

	"github.com/shopspring/decimal"

	shipmentModel "transport-office/models/shipment"
)

// Delivery is one delivery run for a shipment. The approval workflow runs
// beside the physical status: registration starts at PENDING, an admin
// approval moves it to APPROVED_BY_ADMIN and a super admin closes it out.
type Delivery struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ShipmentID     uint           `gorm:"not null;index" json:"shipment_id"`
	DeliveryDate   time.Time      `gorm:"type:date;not null;index" json:"delivery_date"`
	DeliveryStatus DeliveryStatus `gorm:"type:varchar(20);not null;default:'IN_TRANSIT';index" json:"delivery_status"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(30);not null;default:'PENDING';index" json:"approval_status"`
	ApprovedBy     *string        `gorm:"type:varchar(100)" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time     `json:"approved_at,omitempty"`

	TotalExpenses decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_expenses"`
	Remarks       string          `gorm:"type:text" json:"remarks"`

	Shipment shipmentModel.Shipment `gorm:"foreignKey:ShipmentID" json:"shipment,omitempty"`

	CreatedBy string    `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}
