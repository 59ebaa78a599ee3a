package audit

import (
	"net/http"
	"time"

	"github.com/oluwatobiiloba/inventory-api/internal/auth"
	"github.com/oluwatobiiloba/inventory-api/internal/ids"
	"github.com/oluwatobiiloba/inventory-api/internal/obs"
)

// Interceptor turns handler declarations into persisted audit records. It
// wraps the mutation handlers: before the handler runs it plants an empty
// declaration slot in the context, and once the handler returns it captures
// a record if, and only if, the response succeeded and a mutation was
// declared.
type Interceptor struct {
	store Store
}

// NewInterceptor wires the interceptor to its backing store.
func NewInterceptor(store Store) *Interceptor {
	return &Interceptor{store: store}
}

// Wrap instruments a handler with audit capture. Capture failures are logged
// and dropped; they never change the response the client already earned.
func (i *Interceptor) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := &holder{}
		ctx := contextWithHolder(r.Context(), h)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r.WithContext(ctx))

		if sw.status < 200 || sw.status >= 300 {
			return
		}
		decl, ok := h.get()
		if !ok {
			return
		}

		identity, ok := auth.IdentityFromContext(ctx)
		if !ok {
			obs.Warn("audit capture skipped: no identity bound", map[string]any{
				"action":   string(decl.Action),
				"resource": decl.Resource,
				"path":     r.URL.Path,
			})
			return
		}

		rec := &Record{
			ID:         ids.New(),
			Action:     decl.Action,
			Resource:   decl.Resource,
			ActorID:    identity.ID,
			Changes:    buildChanges(decl),
			OccurredAt: time.Now().UTC(),
		}
		if decl.ResourceID != "" {
			normalized, err := ids.Normalize(decl.ResourceID)
			if err != nil {
				// Keep the raw value rather than lose the reference.
				normalized = decl.ResourceID
			}
			rec.ResourceID = normalized
		}

		if err := i.store.Append(ctx, rec); err != nil {
			obs.ObserveAuditFailure()
			obs.Error("audit append failed", map[string]any{
				"action":   string(rec.Action),
				"resource": rec.Resource,
				"actor_id": rec.ActorID,
				"err":      err.Error(),
			})
			return
		}
		obs.ObserveAuditRecord(string(rec.Action))
	})
}

// buildChanges shapes the record payload. Updates pair the pre-mutation
// snapshot with the submitted patch; creates and deletes carry the state
// as declared.
func buildChanges(decl Declaration) map[string]any {
	if decl.Action == ActionUpdate {
		return map[string]any{
			"before": decl.OldValues,
			"after":  decl.Changes,
		}
	}
	return decl.Changes
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
