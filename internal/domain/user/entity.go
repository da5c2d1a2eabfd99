package user

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Can approve absences, view any profile/feedback
	RoleAdmin    Role = "admin"    // Same privileges as manager
)

// roleTokens is the only place a wire token turns into a Role.
var roleTokens = map[string]Role{
	"employee": RoleEmployee,
	"manager":  RoleManager,
	"admin":    RoleAdmin,
}

// ParseRole maps a wire token to a Role. Matching ignores case and surrounding spaces.
func ParseRole(token string) (Role, error) {
	role, ok := roleTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, token)
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleTokens[string(r)]
	return ok
}

// Roles lists every role token, used by validators and docs.
func Roles() []string {
	return []string{string(RoleEmployee), string(RoleManager), string(RoleAdmin)}
}

// Actor is the verified caller of an operation. Role is read from the identity
// store, not from the token.
type Actor struct {
	ID   int64
	Role Role
}

// IsManager checks if actor is manager or admin
func (a Actor) IsManager() bool {
	return IsManager(a.Role)
}
