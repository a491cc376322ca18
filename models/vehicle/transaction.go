package vehicle

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleTransaction is one immutable ledger entry against a vehicle.
// Exactly one of CreditAmount and DebitAmount is positive; rows are never
// updated or deleted once written.
type VehicleTransaction struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID       uint            `gorm:"not null;index" json:"vehicle_id"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	CreditAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"credit_amount"`
	DebitAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"debit_amount"`
	Description     string          `gorm:"type:varchar(255)" json:"description"`
	CreatedBy       string          `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (VehicleTransaction) TableName() string {
	return "vehicle_transactions"
}
