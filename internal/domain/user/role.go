package user

import "github.com/cliniccare/clinic-scheduler/internal/httperr"

// ===============================
// User Role
// ===============================

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RolePatient   Role = "PATIENT"
)

// ParseRole maps a wire value onto the closed role set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleModerator:
		return RoleModerator, nil
	case RolePatient:
		return RolePatient, nil
	default:
		return "", httperr.ErrBusiness("invalid_role")
	}
}

// IsStaff reports whether the role may act on records it does not own.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleModerator:
		return true
	case RolePatient:
		return false
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
