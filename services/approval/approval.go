package approval

import (
	"errors"
	"fmt"

	deliveryModel "transport-office/models/delivery"
)

// ErrUnknownAction is returned when the requested action is neither
// APPROVE nor REJECT.
var ErrUnknownAction = errors.New("unknown approval action")

// StateError reports an action applied to a delivery whose current approval
// status does not permit it. The delivery row is left unchanged.
type StateError struct {
	Current deliveryModel.ApprovalStatus
	Action  deliveryModel.ApprovalAction
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s a delivery in status %s", e.Action, e.Current)
}

// Transition is one permitted move through the approval chain, together with
// the description recorded on its audit event.
type Transition struct {
	Next        deliveryModel.ApprovalStatus
	Description string
}

// Next resolves the transition for applying action to a delivery currently
// in the given status. Terminal statuses reject every action with a
// *StateError.
func Next(current deliveryModel.ApprovalStatus, action deliveryModel.ApprovalAction) (Transition, error) {
	switch action {
	case deliveryModel.ActionApprove, deliveryModel.ActionReject:
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if action == deliveryModel.ActionReject {
		switch current {
		case deliveryModel.ApprovalStatusPending, deliveryModel.ApprovalStatusByAdmin:
			return Transition{Next: deliveryModel.ApprovalStatusRejected, Description: "Rejected"}, nil
		}
		return Transition{}, &StateError{Current: current, Action: action}
	}

	switch current {
	case deliveryModel.ApprovalStatusPending:
		return Transition{Next: deliveryModel.ApprovalStatusByAdmin, Description: "Approved by Admin"}, nil
	case deliveryModel.ApprovalStatusByAdmin:
		return Transition{Next: deliveryModel.ApprovalStatusApproved, Description: "Approved (Final)"}, nil
	}
	return Transition{}, &StateError{Current: current, Action: action}
}
