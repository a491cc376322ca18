package shipment

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsDetail is one line of goods on a consignment note.
type GoodsDetail struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ShipmentID uint            `gorm:"not null;index" json:"shipment_id"`
	ItemName   string          `gorm:"type:varchar(150);not null" json:"item_name"`
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`
	Weight     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"weight"`
	Rate       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"rate"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (GoodsDetail) TableName() string {
	return "goods_details"
}
