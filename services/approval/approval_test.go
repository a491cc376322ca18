package approval

import (
	"errors"
	"testing"

	deliveryModel "transport-office/models/delivery"
)

func TestNextApprovalChain(t *testing.T) {
	tests := []struct {
		name        string
		current     deliveryModel.ApprovalStatus
		action      deliveryModel.ApprovalAction
		wantNext    deliveryModel.ApprovalStatus
		wantDesc    string
		wantStopped bool
	}{
		{
			name:     "first approve moves to admin stage",
			current:  deliveryModel.ApprovalStatusPending,
			action:   deliveryModel.ActionApprove,
			wantNext: deliveryModel.ApprovalStatusByAdmin,
			wantDesc: "Approved by Admin",
		},
		{
			name:     "second approve is final",
			current:  deliveryModel.ApprovalStatusByAdmin,
			action:   deliveryModel.ActionApprove,
			wantNext: deliveryModel.ApprovalStatusApproved,
			wantDesc: "Approved (Final)",
		},
		{
			name:     "reject from pending",
			current:  deliveryModel.ApprovalStatusPending,
			action:   deliveryModel.ActionReject,
			wantNext: deliveryModel.ApprovalStatusRejected,
			wantDesc: "Rejected",
		},
		{
			name:     "reject from admin stage",
			current:  deliveryModel.ApprovalStatusByAdmin,
			action:   deliveryModel.ActionReject,
			wantNext: deliveryModel.ApprovalStatusRejected,
			wantDesc: "Rejected",
		},
		{
			name:        "approve after final approval",
			current:     deliveryModel.ApprovalStatusApproved,
			action:      deliveryModel.ActionApprove,
			wantStopped: true,
		},
		{
			name:        "reject after final approval",
			current:     deliveryModel.ApprovalStatusApproved,
			action:      deliveryModel.ActionReject,
			wantStopped: true,
		},
		{
			name:        "approve after rejection",
			current:     deliveryModel.ApprovalStatusRejected,
			action:      deliveryModel.ActionApprove,
			wantStopped: true,
		},
		{
			name:        "reject after rejection",
			current:     deliveryModel.ApprovalStatusRejected,
			action:      deliveryModel.ActionReject,
			wantStopped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.current, tt.action)

			if tt.wantStopped {
				var stateErr *StateError
				if !errors.As(err, &stateErr) {
					t.Fatalf("Next(%s, %s) error = %v, want *StateError", tt.current, tt.action, err)
				}
				if stateErr.Current != tt.current {
					t.Fatalf("StateError.Current = %s, want %s", stateErr.Current, tt.current)
				}
				return
			}

			if err != nil {
				t.Fatalf("Next(%s, %s) unexpected error: %v", tt.current, tt.action, err)
			}
			if got.Next != tt.wantNext {
				t.Fatalf("Next(%s, %s) = %s, want %s", tt.current, tt.action, got.Next, tt.wantNext)
			}
			if got.Description != tt.wantDesc {
				t.Fatalf("description = %q, want %q", got.Description, tt.wantDesc)
			}
		})
	}
}

func TestNextUnknownAction(t *testing.T) {
	_, err := Next(deliveryModel.ApprovalStatusPending, "ARCHIVE")
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("error = %v, want ErrUnknownAction", err)
	}
}

func TestStateErrorMessageNamesCurrentStatus(t *testing.T) {
	err := &StateError{Current: deliveryModel.ApprovalStatusRejected, Action: deliveryModel.ActionApprove}
	want := "cannot APPROVE a delivery in status REJECTED"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []deliveryModel.ApprovalStatus{
		deliveryModel.ApprovalStatusApproved,
		deliveryModel.ApprovalStatusRejected,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}

	working := []deliveryModel.ApprovalStatus{
		deliveryModel.ApprovalStatusPending,
		deliveryModel.ApprovalStatusByAdmin,
	}
	for _, s := range working {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be a working status", s)
		}
	}
}
