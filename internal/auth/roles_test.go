package auth

import (
	"errors"
	"testing"
)

func TestDefaultPermissionMatrix(t *testing.T) {
	table := DefaultPermissionTable()

	allowed := map[Role]map[Action]bool{
		RoleOwner: {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
		RoleAdmin: {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
		RoleClerk: {ActionCreate: false, ActionRead: true, ActionUpdate: true, ActionDelete: false},
		RoleUser:  {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
	}
	for role, actions := range allowed {
		for action, want := range actions {
			if got := table.Allows(role, action, ResourceProducts); got != want {
				t.Errorf("%s %s products: got %v, want %v", role, action, got, want)
			}
		}
	}
}

func TestPermissionTableExactMatch(t *testing.T) {
	table := DefaultPermissionTable()

	if table.Allows(RoleOwner, ActionRead, "orders") {
		t.Error("owner should hold no grant on an unknown resource")
	}
	if table.Allows(Role("superuser"), ActionRead, ResourceProducts) {
		t.Error("unknown role should hold no grants")
	}
	if table.Allows(RoleOwner, Action("export"), ResourceProducts) {
		t.Error("unknown action should not match any grant")
	}
}

func TestAuthorize(t *testing.T) {
	table := DefaultPermissionTable()

	if err := table.Authorize(Identity{ID: "u1", Role: RoleClerk}, ActionUpdate, ResourceProducts); err != nil {
		t.Fatalf("clerk update should pass: %v", err)
	}
	err := table.Authorize(Identity{ID: "u1", Role: RoleClerk}, ActionDelete, ResourceProducts)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("clerk delete: expected ErrForbidden, got %v", err)
	}
	if err := table.Authorize(Identity{}, ActionRead, ResourceProducts); !errors.Is(err, ErrForbidden) {
		t.Fatalf("zero identity: expected ErrForbidden, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	if err != nil {
		t.Fatalf("ParseRole: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("got %s, want admin", role)
	}
	if _, err := ParseRole("superuser"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
