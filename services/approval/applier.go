package approval

import (
	"time"

	"gorm.io/gorm"

	deliveryModel "transport-office/models/delivery"
)

// Applier executes approval transitions against the database.
type Applier struct {
	DB *gorm.DB
}

// NewApplier creates a new Applier instance
func NewApplier(db *gorm.DB) *Applier {
	return &Applier{DB: db}
}

// Apply moves one delivery through the approval machine. The status write is
// a compare-and-swap keyed on the status the caller last saw, so a concurrent
// transition makes the swap miss; the delivery is then re-read and the status
// it actually holds is reported back as a *StateError. Every successful
// transition appends an ApprovalEvent inside the same transaction.
func (a *Applier) Apply(deliveryID uint, expected deliveryModel.ApprovalStatus, action deliveryModel.ApprovalAction, actor string) (*deliveryModel.Delivery, error) {
	transition, err := Next(expected, action)
	if err != nil {
		return nil, err
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"approval_status": transition.Next,
		}
		if action == deliveryModel.ActionApprove {
			now := time.Now()
			updates["approved_by"] = actor
			updates["approved_at"] = now
		}

		result := tx.Model(&deliveryModel.Delivery{}).
			Where("id = ? AND approval_status = ?", deliveryID, expected).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var current deliveryModel.Delivery
			if err := tx.First(&current, deliveryID).Error; err != nil {
				// gorm.ErrRecordNotFound when the delivery does not exist
				return err
			}
			return &StateError{Current: current.ApprovalStatus, Action: action}
		}

		event := deliveryModel.ApprovalEvent{
			DeliveryID:     deliveryID,
			ApprovalStatus: transition.Next,
			Action:         action,
			Description:    transition.Description,
			CreatedBy:      actor,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	var updated deliveryModel.Delivery
	if err := a.DB.Preload("Shipment").First(&updated, deliveryID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// PendingQueue lists every delivery still awaiting some approval, oldest
// delivery date first.
func (a *Applier) PendingQueue() ([]deliveryModel.Delivery, error) {
	var deliveries []deliveryModel.Delivery
	err := a.DB.Preload("Shipment").
		Where("approval_status IN ?", []deliveryModel.ApprovalStatus{
			deliveryModel.ApprovalStatusPending,
			deliveryModel.ApprovalStatusByAdmin,
		}).
		Order("delivery_date asc").
		Find(&deliveries).Error
	return deliveries, err
}

// FinalQueue lists deliveries ready for the second-tier sign-off: already
// approved by an admin and physically delivered, oldest approval first.
func (a *Applier) FinalQueue() ([]deliveryModel.Delivery, error) {
	var deliveries []deliveryModel.Delivery
	err := a.DB.Preload("Shipment").
		Where("approval_status = ? AND delivery_status = ?",
			deliveryModel.ApprovalStatusByAdmin,
			deliveryModel.DeliveryStatusDelivered,
		).
		Order("approved_at asc").
		Find(&deliveries).Error
	return deliveries, err
}

// History returns the audit trail for one delivery, oldest first.
func (a *Applier) History(deliveryID uint) ([]deliveryModel.ApprovalEvent, error) {
	var events []deliveryModel.ApprovalEvent
	err := a.DB.Where("delivery_id = ?", deliveryID).
		Order("created_at asc").
		Find(&events).Error
	return events, err
}
