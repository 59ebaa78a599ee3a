package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oluwatobiiloba/inventory-api/internal/audit"
	"github.com/oluwatobiiloba/inventory-api/internal/auth"
	"github.com/oluwatobiiloba/inventory-api/internal/config"
	"github.com/oluwatobiiloba/inventory-api/internal/httpapi"
	"github.com/oluwatobiiloba/inventory-api/internal/obs"
	"github.com/oluwatobiiloba/inventory-api/internal/product"
	"github.com/oluwatobiiloba/inventory-api/internal/store/pg"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, errs := config.Load(os.Getenv("INVENTORY_CONFIG"))
	if len(errs) > 0 {
		for _, err := range errs {
			log.Printf("config: %v", err)
		}
		os.Exit(1)
	}

	var (
		users    auth.UserStore
		products product.Store
		audits   audit.Store
		probe    httpapi.ReadyProbe
		closeDB  func() error
	)
	if cfg.DatabaseURL != "" {
		store, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		users = store.Users()
		products = store.Products()
		audits = store.AuditLog()
		probe = httpapi.ReadyProbe{DB: store.DB()}
		closeDB = store.Close
	} else {
		// In-memory stores keep local development DB-free; state is lost
		// on restart.
		log.Print("no database_url configured, using in-memory stores")
		users = auth.NewMemoryUserStore()
		products = product.NewMemoryStore()
		audits = audit.NewMemoryStore()
		closeDB = func() error { return nil }
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		log.Fatalf("token service: %v", err)
	}
	authn, err := auth.NewAuthenticator(tokens, users)
	if err != nil {
		log.Fatalf("authenticator: %v", err)
	}
	accounts, err := auth.NewAccountService(users, tokens)
	if err != nil {
		log.Fatalf("account service: %v", err)
	}
	catalog, err := product.NewService(products)
	if err != nil {
		log.Fatalf("product service: %v", err)
	}

	api, err := httpapi.New(httpapi.Deps{
		Authenticator: authn,
		Accounts:      accounts,
		Permissions:   auth.DefaultPermissionTable(),
		Products:      catalog,
		Audits:        audit.NewInterceptor(audits),
		ReadyProbe:    probe,
	}, httpapi.Options{
		Version:        version,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MaxBodyBytes:   1 << 20,
	})
	if err != nil {
		log.Fatalf("api: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting inventory-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = closeDB()
	log.Println("Stopped")
}
