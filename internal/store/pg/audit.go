package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oluwatobiiloba/inventory-api/internal/audit"
)

// AuditLog implements audit.Store over Postgres. Rows are append-only;
// nothing in this type updates or deletes them.
type AuditLog struct {
	db *sql.DB
}

var _ audit.Store = (*AuditLog)(nil)

// AuditLog returns the audit store view of the pool.
func (s *Store) AuditLog() *AuditLog { return &AuditLog{db: s.db} }

func (s *AuditLog) Append(ctx context.Context, rec *audit.Record) error {
	if s.db == nil {
		return errors.New("database connection unavailable")
	}
	changes := []byte("{}")
	if len(rec.Changes) > 0 {
		encoded, err := json.Marshal(rec.Changes)
		if err != nil {
			return fmt.Errorf("encode changes: %w", err)
		}
		changes = encoded
	}
	_, err := s.db.ExecContext(ctx, `
		insert into audit_log (id, action, resource, resource_id, actor_id, changes, occurred_at)
		values ($1, $2, $3, nullif($4, ''), $5, $6, $7)
	`, rec.ID, string(rec.Action), rec.Resource, rec.ResourceID, rec.ActorID, changes, rec.OccurredAt)
	return err
}

func (s *AuditLog) ListByResource(ctx context.Context, resource string, limit int) ([]*audit.Record, error) {
	return s.list(ctx, `where resource = $1`, limit, resource)
}

func (s *AuditLog) ListByActor(ctx context.Context, actorID string, limit int) ([]*audit.Record, error) {
	return s.list(ctx, `where actor_id = $1`, limit, actorID)
}

func (s *AuditLog) ListByResourceID(ctx context.Context, resource, resourceID string, limit int) ([]*audit.Record, error) {
	return s.list(ctx, `where resource = $1 and resource_id = $2`, limit, resource, resourceID)
}

func (s *AuditLog) list(ctx context.Context, where string, limit int, args ...any) ([]*audit.Record, error) {
	if s.db == nil {
		return nil, errors.New("database connection unavailable")
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	args = append(args, limit)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		select id, action, resource, coalesce(resource_id, ''), actor_id, changes, occurred_at
		from audit_log %s
		order by occurred_at desc
		limit $%d
	`, where, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*audit.Record{}
	for rows.Next() {
		var (
			rec     audit.Record
			action  string
			changes []byte
		)
		if err := rows.Scan(&rec.ID, &action, &rec.Resource, &rec.ResourceID, &rec.ActorID, &changes, &rec.OccurredAt); err != nil {
			return nil, err
		}
		rec.Action = audit.Action(action)
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &rec.Changes); err != nil {
				return nil, fmt.Errorf("decode changes: %w", err)
			}
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
