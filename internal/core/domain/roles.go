package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role represents a user role in the system
type Role string

const (
	RoleSystemAdmin  Role = "system_admin"
	RoleAdmin        Role = "admin"
	RoleAccountant   Role = "accountant"
	RoleMember       Role = "member"
	RoleReviewer     Role = "reviewer"
	RolePublisher    Role = "publisher"
	RoleEventManager Role = "event_manager"
	RoleGuest        Role = "guest"
)

// ValidRoles is the closed set of assignable roles
var ValidRoles = []Role{
	RoleSystemAdmin,
	RoleAdmin,
	RoleAccountant,
	RoleMember,
	RoleReviewer,
	RolePublisher,
	RoleEventManager,
	RoleGuest,
}

// IsValid reports whether the role is in the closed enumeration
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// RoleList is a user's role set, stored as a comma-separated column
type RoleList []Role

// Has reports whether the list contains the given role
func (l RoleList) Has(role Role) bool {
	for _, r := range l {
		if r == role {
			return true
		}
	}
	return false
}

// HasAny reports whether the list contains any of the given roles
func (l RoleList) HasAny(roles ...Role) bool {
	for _, role := range roles {
		if l.Has(role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the list grants administrative authority
func (l RoleList) IsAdmin() bool {
	return l.HasAny(RoleAdmin, RoleSystemAdmin)
}

// Add returns the list with the role appended, without duplicating it
func (l RoleList) Add(role Role) RoleList {
	if l.Has(role) {
		return l
	}
	return append(l, role)
}

// Strings returns the list as plain strings (for JWT claims)
func (l RoleList) Strings() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings parses a string slice back into a RoleList
func RolesFromStrings(values []string) RoleList {
	out := make(RoleList, 0, len(values))
	for _, v := range values {
		out = append(out, Role(v))
	}
	return out
}

// Value implements driver.Valuer for database storage
func (l RoleList) Value() (driver.Value, error) {
	return strings.Join(l.Strings(), ","), nil
}

// Scan implements sql.Scanner for database retrieval
func (l *RoleList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into RoleList", value)
	}

	if raw == "" {
		*l = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	roles := make(RoleList, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, Role(strings.TrimSpace(p)))
	}
	*l = roles
	return nil
}
