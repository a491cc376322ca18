package delivery

import "strings"

// DeliveryCreateRequest registers a delivery run for a shipment. Approval
// always starts at PENDING.
type DeliveryCreateRequest struct {
	ShipmentID    uint    `json:"shipment_id" validate:"required"`
	DeliveryDate  string  `json:"delivery_date" validate:"required"`
	TotalExpenses float64 `json:"total_expenses"`
	Remarks       string  `json:"remarks"`
}

func (r *DeliveryCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	if r.ShipmentID == 0 {
		issues["shipment_id"] = "shipment_id is required"
	}
	if strings.TrimSpace(r.DeliveryDate) == "" {
		issues["delivery_date"] = "delivery_date is required"
	}
	if r.TotalExpenses < 0 {
		issues["total_expenses"] = "total_expenses cannot be negative"
	}

	return issues
}

// DeliveryStatusRequest updates the physical movement status.
type DeliveryStatusRequest struct {
	DeliveryStatus string `json:"delivery_status" validate:"required"`
}

func (r *DeliveryStatusRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.DeliveryStatus = strings.ToUpper(strings.TrimSpace(r.DeliveryStatus))
	switch r.DeliveryStatus {
	case "IN_TRANSIT", "DELIVERED", "RETURNED":
	case "":
		issues["delivery_status"] = "delivery_status is required"
	default:
		issues["delivery_status"] = "delivery_status must be one of IN_TRANSIT, DELIVERED, RETURNED"
	}

	return issues
}

// ApprovalActionRequest asks the approval machine to act on one delivery.
type ApprovalActionRequest struct {
	DeliveryID uint   `json:"delivery_id" validate:"required"`
	Action     string `json:"action" validate:"required"`
}

func (r *ApprovalActionRequest) Validate() map[string]string {
	issues := make(map[string]string)

	if r.DeliveryID == 0 {
		issues["delivery_id"] = "delivery_id is required"
	}

	r.Action = strings.ToUpper(strings.TrimSpace(r.Action))
	switch r.Action {
	case "APPROVE", "REJECT":
	case "":
		issues["action"] = "action is required"
	default:
		issues["action"] = "action must be APPROVE or REJECT"
	}

	return issues
}

// ReturnShipmentCreateRequest registers a returned consignment.
type ReturnShipmentCreateRequest struct {
	ShipmentID uint   `json:"shipment_id" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
	Reason     string `json:"reason"`
}

func (r *ReturnShipmentCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	if r.ShipmentID == 0 {
		issues["shipment_id"] = "shipment_id is required"
	}
	if strings.TrimSpace(r.ReturnDate) == "" {
		issues["return_date"] = "return_date is required"
	}

	r.Reason = strings.TrimSpace(r.Reason)

	return issues
}

// ReturnStatusRequest advances a return shipment one step forward.
type ReturnStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *ReturnStatusRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	switch r.Status {
	case "RECEIVED", "CLOSED":
	case "":
		issues["status"] = "status is required"
	default:
		issues["status"] = "status must be RECEIVED or CLOSED"
	}

	return issues
}
