package entity

import "strings"

type UserStatus int16

const (
	// UserStatusUnknown mean unexpected value, treat as invalid.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive mean user is verified and allowed to use the app.
	UserStatusActive UserStatus = 1

	// UserStatusBanned mean user is blocked from using the app (policy/abuse/etc).
	UserStatusBanned UserStatus = 2

	// UserStatusInactive mean user is not currently active (e.g., deactivated, closed).
	UserStatusInactive UserStatus = 3
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusBanned:
		return "Banned"
	case UserStatusInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

func (us UserStatus) Ensure() UserStatus {
	switch us {
	case UserStatusActive, UserStatusBanned, UserStatusInactive:
		return us
	default:
		return UserStatusUnknown
	}
}

// UserRole drives casbin authorization. Roles are stored and exchanged
// as their uppercase names.
type UserRole int16

const (
	UserRoleUnknown  UserRole = 0
	UserRoleLearner  UserRole = 1
	UserRoleEducator UserRole = 2
	UserRoleAdmin    UserRole = 3
)

func (r UserRole) String() string {
	switch r {
	case UserRoleLearner:
		return "LEARNER"
	case UserRoleEducator:
		return "EDUCATOR"
	case UserRoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

func ParseUserRole(raw string) UserRole {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LEARNER":
		return UserRoleLearner
	case "EDUCATOR":
		return UserRoleEducator
	case "ADMIN":
		return UserRoleAdmin
	default:
		return UserRoleUnknown
	}
}
