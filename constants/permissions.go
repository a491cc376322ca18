package constants

// Roles stored on users, ordered lowest to highest.
const (
	RoleOperator   = "OPERATOR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Session cookie carrying the signed login token.
const SessionCookieName = "tro_session"

// Office permissions
const (
	// Master data permissions
	PermMasterDataManage = "masterdata.manage"

	// Shipment permissions
	PermShipmentCreate    = "shipment.create"
	PermShipmentParseSlip = "shipment.parse-slip"

	// Delivery permissions
	PermDeliveryCreate       = "delivery.create"
	PermDeliveryUpdate       = "delivery.update"
	PermDeliveryApprove      = "delivery.approve"
	PermDeliveryApproveFinal = "delivery.approve.final"

	// Fleet finance permissions
	PermVehicleTransact = "vehicle.transact"

	// Return shipment permissions
	PermReturnManage = "return.manage"

	// Labour permissions
	PermLabourManage = "labour.manage"

	// User administration permissions
	PermUserManage = "user.manage"

	// Special permissions
	PermAny = "any"
)

// PermissionMinimumRole maps each permission to the lowest role allowed to use it.
var PermissionMinimumRole = map[string]string{
	PermMasterDataManage:     RoleOperator,
	PermShipmentCreate:       RoleOperator,
	PermShipmentParseSlip:    RoleOperator,
	PermDeliveryCreate:       RoleOperator,
	PermDeliveryUpdate:       RoleOperator,
	PermDeliveryApprove:      RoleAdmin,
	PermDeliveryApproveFinal: RoleSuperAdmin,
	PermVehicleTransact:      RoleAdmin,
	PermReturnManage:         RoleOperator,
	PermLabourManage:         RoleOperator,
	PermUserManage:           RoleSuperAdmin,
}

// Permission groups for convenience
var (
	ApprovalPermissions = []string{
		PermDeliveryApprove,
		PermDeliveryApproveFinal,
	}
)
