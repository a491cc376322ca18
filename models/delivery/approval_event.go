package delivery

import (
	"time"
)

// ApprovalEvent is an audit snapshot appended on every approval transition.
// Rows are insert-only.
type ApprovalEvent struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	DeliveryID     uint           `gorm:"not null;index" json:"delivery_id"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(30);not null" json:"approval_status"`
	Action         ApprovalAction `gorm:"type:varchar(20);not null" json:"action"`
	Description    string         `gorm:"type:varchar(255)" json:"description"`
	CreatedBy      string         `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (ApprovalEvent) TableName() string {
	return "delivery_approval_events"
}
