package shipment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Labour task names.
const (
	TaskLoading   = "LOADING"
	TaskUnloading = "UNLOADING"
)

// LabourAssignment books a labourer for loading or unloading a shipment.
// ReminderAt drives the due-reminder listing until the work is completed.
type LabourAssignment struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	LabourName     string          `gorm:"type:varchar(150);not null" json:"labour_name"`
	ShipmentID     uint            `gorm:"not null;index" json:"shipment_id"`
	Task           string          `gorm:"type:varchar(20);not null" json:"task"`
	AssignmentDate time.Time       `gorm:"type:date;not null" json:"assignment_date"`
	Wage           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"wage"`
	ReminderAt     *time.Time      `gorm:"index" json:"reminder_at,omitempty"`
	Completed      bool            `gorm:"not null;default:false" json:"completed"`

	Shipment Shipment `gorm:"foreignKey:ShipmentID" json:"shipment,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LabourAssignment) TableName() string {
	return "labour_assignments"
}
