package types

import (
	"strings"

	"transport-office/constants"
)

// SignupRequest is the payload for creating a staff account.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// Validate returns per-field issues, empty when the request is acceptable.
// The role field accepts OPERATOR and ADMIN here; SUPER_ADMIN requests are
// decided by the signup handler because the first account is a special case.
func (r *SignupRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		issues["username"] = "username is required"
	} else if len(r.Username) < 3 {
		issues["username"] = "username must be at least 3 characters"
	}

	if r.Password == "" {
		issues["password"] = "password is required"
	} else if len(r.Password) < 6 {
		issues["password"] = "password must be at least 6 characters"
	}

	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	switch r.Role {
	case "", constants.RoleOperator, constants.RoleAdmin, constants.RoleSuperAdmin:
	default:
		issues["role"] = "role must be one of OPERATOR, ADMIN, SUPER_ADMIN"
	}

	return issues
}

// RoleUpdateRequest is the payload for changing a staff account's role.
type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required"`
}

func (r *RoleUpdateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	switch r.Role {
	case constants.RoleOperator, constants.RoleAdmin, constants.RoleSuperAdmin:
	default:
		issues["role"] = "role must be one of OPERATOR, ADMIN, SUPER_ADMIN"
	}

	return issues
}

// LoginRequest is the payload for logging in with username and password.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		issues["username"] = "username is required"
	}
	if r.Password == "" {
		issues["password"] = "password is required"
	}

	return issues
}
