package delivery

// DeliveryStatus is the physical movement state of a delivery run.
type DeliveryStatus string

const (
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusReturned  DeliveryStatus = "RETURNED"
)

// ApprovalStatus is the back-office approval state of a delivery run.
// PENDING and APPROVED_BY_ADMIN are working states; APPROVED and REJECTED
// are terminal and never change again.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusByAdmin  ApprovalStatus = "APPROVED_BY_ADMIN"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// IsTerminal reports whether the status can never change again.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// ApprovalAction is a command against the approval machine.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "APPROVE"
	ActionReject  ApprovalAction = "REJECT"
)

// ReturnStatus tracks a returned consignment. Transitions move forward one
// step at a time: PENDING, RECEIVED, CLOSED.
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "PENDING"
	ReturnStatusReceived ReturnStatus = "RECEIVED"
	ReturnStatusClosed   ReturnStatus = "CLOSED"
)
