package audit

import (
	"context"
	"errors"
	"time"
)

// Action names the mutation a record describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Record is one immutable audit entry: who did what to which resource, and
// the payload involved. For updates, Changes holds the pre-mutation snapshot
// under "before" and the submitted patch under "after"; for creates and
// deletes it holds the resource state as a flat map.
type Record struct {
	ID         string         `json:"id"`
	Action     Action         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id,omitempty"`
	ActorID    string         `json:"actor_id"`
	Changes    map[string]any `json:"changes,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("audit: not found")

// Store persists audit records. Records are append-only; nothing updates or
// deletes them.
type Store interface {
	Append(ctx context.Context, rec *Record) error

	// ListByResource returns records for a resource kind, newest first.
	ListByResource(ctx context.Context, resource string, limit int) ([]*Record, error)

	// ListByActor returns records produced by one actor, newest first.
	ListByActor(ctx context.Context, actorID string, limit int) ([]*Record, error)

	// ListByResourceID returns records touching one specific resource
	// instance, newest first.
	ListByResourceID(ctx context.Context, resource, resourceID string, limit int) ([]*Record, error)
}
