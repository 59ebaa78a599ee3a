package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/oluwatobiiloba/inventory-api/internal/audit"
	"github.com/oluwatobiiloba/inventory-api/internal/auth"
	"github.com/oluwatobiiloba/inventory-api/internal/obs"
	"github.com/oluwatobiiloba/inventory-api/internal/product"
)

// ReadyProbe reports whether downstream dependencies answer (e.g. DB ping).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Options tunes the outer middleware chain.
type Options struct {
	Version        string
	RateLimitRPS   int
	RateLimitBurst int
	MaxBodyBytes   int64
}

// Deps carries everything the HTTP layer delegates to.
type Deps struct {
	Authenticator *auth.Authenticator
	Accounts      *auth.AccountService
	Permissions   *auth.PermissionTable
	Products      *product.Service
	Audits        *audit.Interceptor
	ReadyProbe    ReadyProbe
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	authn      *auth.Authenticator
	accounts   *auth.AccountService
	perms      *auth.PermissionTable
	products   *product.Service
	audits     *audit.Interceptor
	readyProbe ReadyProbe
	opts       Options
	started    time.Time
}

func New(deps Deps, opts Options) (*API, error) {
	if deps.Authenticator == nil {
		return nil, errors.New("httpapi: authenticator is required")
	}
	if deps.Accounts == nil {
		return nil, errors.New("httpapi: account service is required")
	}
	if deps.Permissions == nil {
		return nil, errors.New("httpapi: permission table is required")
	}
	if deps.Products == nil {
		return nil, errors.New("httpapi: product service is required")
	}
	if deps.Audits == nil {
		return nil, errors.New("httpapi: audit interceptor is required")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	a := &API{
		mux:        http.NewServeMux(),
		authn:      deps.Authenticator,
		accounts:   deps.Accounts,
		perms:      deps.Permissions,
		products:   deps.Products,
		audits:     deps.Audits,
		readyProbe: deps.ReadyProbe,
		opts:       opts,
		started:    time.Now().UTC(),
	}

	a.mux.HandleFunc("/api/v1/auth/register", a.handleRegister)
	a.mux.HandleFunc("/api/v1/auth/login", a.handleLogin)

	// Mutations route through the audit interceptor; it captures a record
	// only when the handler both succeeds and declares one.
	a.mux.Handle("/api/v1/products", a.audits.Wrap(http.HandlerFunc(a.handleProductsCollection)))
	a.mux.Handle("/api/v1/products/", a.audits.Wrap(http.HandlerFunc(a.handleProductResource)))

	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.HandleFunc("/readyz", a.handleReadyz)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "resource not found")
	})

	return a, nil
}

// Handler assembles the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, a.opts.MaxBodyBytes)
	if a.opts.RateLimitRPS > 0 {
		h = RateLimit(h, a.opts.RateLimitBurst, a.opts.RateLimitRPS)
	}
	h = CORS(h)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"service":        "inventory-api",
		"version":        a.opts.Version,
		"uptime_seconds": int(time.Since(a.started).Seconds()),
	})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
