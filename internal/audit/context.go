package audit

import (
	"context"
	"sync"
)

// Declaration is the intent a handler registers after a successful mutation.
// The interceptor turns it into a Record only if the request finishes with a
// 2xx status.
type Declaration struct {
	Action     Action
	Resource   string
	ResourceID string

	// Changes is the mutation payload. For updates it is the submitted
	// patch; OldValues then carries the pre-mutation snapshot.
	Changes   map[string]any
	OldValues map[string]any
}

// holder is the per-request slot the interceptor injects before the handler
// runs. Guarded by a mutex because the handler and the interceptor may touch
// it from different goroutines when a handler spawns work.
type holder struct {
	mu   sync.Mutex
	decl *Declaration
}

func (h *holder) set(d Declaration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.decl = &d
}

func (h *holder) get() (Declaration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.decl == nil {
		return Declaration{}, false
	}
	return *h.decl, true
}

type holderContextKey struct{}

func contextWithHolder(ctx context.Context, h *holder) context.Context {
	return context.WithValue(ctx, holderContextKey{}, h)
}

func holderFromContext(ctx context.Context) (*holder, bool) {
	if ctx == nil {
		return nil, false
	}
	h, ok := ctx.Value(holderContextKey{}).(*holder)
	return h, ok
}

// Declare registers the mutation performed during this request. It is a
// no-op outside an intercepted request, so services stay callable from
// tests and jobs without an HTTP layer. Calling it twice keeps the last
// declaration.
func Declare(ctx context.Context, d Declaration) {
	if h, ok := holderFromContext(ctx); ok {
		h.set(d)
	}
}
