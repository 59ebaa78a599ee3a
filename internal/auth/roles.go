package auth

import (
	"fmt"
	"strings"
)

// Role is one of the fixed authorization levels assigned to an actor.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleClerk Role = "clerk"
	RoleUser  Role = "user"
)

// Roles lists every known role.
var Roles = []Role{RoleOwner, RoleAdmin, RoleClerk, RoleUser}

// ParseRole normalizes and validates a role string.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.TrimSpace(strings.ToLower(raw)))
	for _, known := range Roles {
		if role == known {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
}

// Action identifies what a permission allows on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission is an (action, resource) pair a role may perform. Compared by
// value; there are no wildcards or partial matches.
type Permission struct {
	Action   Action
	Resource string
}

// ResourceProducts is the only resource the service currently guards.
const ResourceProducts = "products"

// PermissionTable maps each role to the set of permissions it holds. It is
// built once at startup and never mutated afterwards, so concurrent readers
// need no locking.
type PermissionTable struct {
	grants map[Role]map[Permission]struct{}
}

// NewPermissionTable builds an immutable table from explicit grants.
func NewPermissionTable(grants map[Role][]Permission) *PermissionTable {
	table := &PermissionTable{grants: make(map[Role]map[Permission]struct{}, len(grants))}
	for role, perms := range grants {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		table.grants[role] = set
	}
	return table
}

// DefaultPermissionTable returns the deployment's fixed role bindings:
// owner and admin hold full CRUD over products, clerk reads and updates,
// user only reads. Changing these means redeploying, not a data write.
func DefaultPermissionTable() *PermissionTable {
	full := []Permission{
		{ActionCreate, ResourceProducts},
		{ActionRead, ResourceProducts},
		{ActionUpdate, ResourceProducts},
		{ActionDelete, ResourceProducts},
	}
	return NewPermissionTable(map[Role][]Permission{
		RoleOwner: full,
		RoleAdmin: full,
		RoleClerk: {
			{ActionRead, ResourceProducts},
			{ActionUpdate, ResourceProducts},
		},
		RoleUser: {
			{ActionRead, ResourceProducts},
		},
	})
}

// Allows reports whether the role holds the exact (action, resource) pair.
func (t *PermissionTable) Allows(role Role, action Action, resource string) bool {
	set, ok := t.grants[role]
	if !ok {
		return false
	}
	_, ok = set[Permission{Action: action, Resource: resource}]
	return ok
}

// Authorize accepts or rejects an identity for an (action, resource) pair.
// A zero identity is rejected: authentication must run first.
func (t *PermissionTable) Authorize(identity Identity, action Action, resource string) error {
	if identity.ID == "" {
		return fmt.Errorf("%w: no identity bound", ErrForbidden)
	}
	if !t.Allows(identity.Role, action, resource) {
		return fmt.Errorf("%w: %s may not %s %s", ErrForbidden, identity.Role, action, resource)
	}
	return nil
}
