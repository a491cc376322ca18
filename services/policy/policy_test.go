package policy

import (
	"testing"

	"transport-office/constants"
)

func TestEvaluateRoleLadder(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		permission string
		want       bool
	}{
		{"operator creates shipments", constants.RoleOperator, constants.PermShipmentCreate, true},
		{"operator manages master data", constants.RoleOperator, constants.PermMasterDataManage, true},
		{"operator cannot approve", constants.RoleOperator, constants.PermDeliveryApprove, false},
		{"operator cannot transact on vehicles", constants.RoleOperator, constants.PermVehicleTransact, false},
		{"admin approves", constants.RoleAdmin, constants.PermDeliveryApprove, true},
		{"admin transacts on vehicles", constants.RoleAdmin, constants.PermVehicleTransact, true},
		{"admin cannot final-approve", constants.RoleAdmin, constants.PermDeliveryApproveFinal, false},
		{"super admin final-approves", constants.RoleSuperAdmin, constants.PermDeliveryApproveFinal, true},
		{"super admin inherits lower permissions", constants.RoleSuperAdmin, constants.PermShipmentCreate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.role, tt.permission)
			if got.Allowed != tt.want {
				t.Fatalf("Evaluate(%s, %s).Allowed = %v, want %v (reason: %s)",
					tt.role, tt.permission, got.Allowed, tt.want, got.Reason)
			}
		})
	}
}

func TestEvaluateUnknownRoleDenied(t *testing.T) {
	got := Evaluate("INTERN", constants.PermShipmentCreate)
	if got.Allowed {
		t.Fatalf("unknown role was allowed")
	}
	if got.Reason == "" {
		t.Fatalf("denial carries no reason")
	}
}

func TestEvaluateUnknownPermissionDenied(t *testing.T) {
	got := Evaluate(constants.RoleSuperAdmin, "office.teleport")
	if got.Allowed {
		t.Fatalf("unknown permission was allowed even for SUPER_ADMIN")
	}
}

func TestEvaluateAnyPermission(t *testing.T) {
	for _, role := range []string{constants.RoleOperator, constants.RoleAdmin, constants.RoleSuperAdmin} {
		if got := Evaluate(role, constants.PermAny); !got.Allowed {
			t.Fatalf("PermAny denied for %s: %s", role, got.Reason)
		}
	}
	if got := Evaluate("INTERN", constants.PermAny); got.Allowed {
		t.Fatalf("PermAny allowed for unknown role")
	}
}

func TestAnyStopsAtFirstAllow(t *testing.T) {
	got := Any(constants.RoleAdmin, constants.PermDeliveryApprove, constants.PermDeliveryApproveFinal)
	if !got.Allowed {
		t.Fatalf("admin denied approval group: %s", got.Reason)
	}

	got = Any(constants.RoleOperator, constants.PermDeliveryApprove, constants.PermDeliveryApproveFinal)
	if got.Allowed {
		t.Fatalf("operator allowed into approval group")
	}

	got = Any(constants.RoleAdmin)
	if got.Allowed {
		t.Fatalf("empty permission list was allowed")
	}
}
