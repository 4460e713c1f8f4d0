// Package server boots the register daemon: configuration, storage,
// services, background jobs and the HTTP (plus optional gRPC) listeners.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/app/routes"
	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/config"
	"github.com/vendixlabs/vendix/pkg/cache"
	"github.com/vendixlabs/vendix/pkg/database"
	"github.com/vendixlabs/vendix/pkg/event"
	vgrpc "github.com/vendixlabs/vendix/pkg/grpc"
	"github.com/vendixlabs/vendix/pkg/kvstore"
	"github.com/vendixlabs/vendix/pkg/logger"
	"github.com/vendixlabs/vendix/pkg/metrics"
	"github.com/vendixlabs/vendix/pkg/middleware"
	"github.com/vendixlabs/vendix/pkg/reqid"
	"github.com/vendixlabs/vendix/pkg/router"
	"github.com/vendixlabs/vendix/pkg/schedule"
	"github.com/vendixlabs/vendix/pkg/storage"
	"github.com/vendixlabs/vendix/pkg/ws"
)

// App is the booted register with all its services constructed.
type App struct {
	Store    kvstore.Store
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Checkout *services.CheckoutService
	Sales    *services.SalesService
	Receipts *services.ReceiptService
	Settings *services.SettingsService
	License  *services.LicenseService
	Feed     *ws.Hub
}

// Boot wires repositories and services on top of the document store.
func Boot(store kvstore.Store) *App {
	catalogRepo := repositories.NewCatalogRepository(store)
	saleRepo := repositories.NewSaleRepository(store)
	settingsRepo := repositories.NewSettingsRepository(store)
	userRepo := repositories.NewUserRepository(store)
	licenseRepo := repositories.NewLicenseRepository(store)

	app := &App{
		Store:    store,
		Auth:     services.NewAuthService(userRepo),
		Catalog:  services.NewCatalogService(catalogRepo),
		Checkout: services.NewCheckoutService(catalogRepo, saleRepo, settingsRepo),
		Sales:    services.NewSalesService(saleRepo),
		Receipts: services.NewReceiptService(),
		Settings: services.NewSettingsService(settingsRepo),
		License:  services.NewLicenseService(licenseRepo),
		Feed:     ws.NewHub(),
	}

	app.registerListeners()
	return app
}

// registerListeners hooks the domain events completed sales fire.
func (a *App) registerListeners() {
	event.Listen("sale.completed", func(payload interface{}) {
		sale, ok := payload.(*models.Sale)
		if !ok {
			return
		}
		a.Feed.BroadcastEvent("sale.completed", sale)

		// Archive the receipt so it survives independently of the log.
		cfg, err := a.Settings.Get()
		if err != nil {
			logger.Error("server: load settings for receipt archive", "error", err)
			return
		}
		path := "receipts/" + sale.ID + ".txt"
		if err := storage.Put(path, []byte(a.Receipts.Text(*sale, cfg))); err != nil {
			logger.Error("server: archive receipt", "sale", sale.ID, "error", err)
		}
	})

	event.Listen("license.expired", func(payload interface{}) {
		a.Feed.BroadcastEvent("license.expired", payload)
	})
}

// registerJobs sets up the recurring background work.
func (a *App) registerJobs() {
	// Catch an expiry on a terminal that never restarts.
	schedule.Daily().At("00:05").Name("license.recheck").Run(func() {
		a.License.Recheck()
	})

	// Nightly catalog snapshot to the default storage disk.
	schedule.Daily().At("03:00").Name("catalog.snapshot").WithoutOverlapping().Run(func() {
		data, err := a.Catalog.Export()
		if err != nil {
			logger.Error("server: catalog snapshot", "error", err)
			return
		}
		path := fmt.Sprintf("backups/catalog-%s.json", time.Now().Format("2006-01-02"))
		if err := storage.Put(path, data); err != nil {
			logger.Error("server: write catalog snapshot", "error", err)
		}
	})
}

// Start boots everything and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}
	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: connect database: %w", err)
	}
	store, err := kvstore.NewGorm(database.DB)
	if err != nil {
		return fmt.Errorf("server: open document store: %w", err)
	}

	// Redis is optional: offline the cache no-ops.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	app := Boot(store)
	go app.Feed.Run()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.registerJobs()
	schedule.Start(ctx)

	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := vgrpc.Start(port, app.License.Licensed)
		if err != nil {
			return fmt.Errorf("server: start grpc: %w", err)
		}
		defer vgrpc.Stop(grpcSrv)
	}

	r := NewRouter(app)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: http listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the full middleware stack and route table.
func NewRouter(app *App) *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware,
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r, routes.Deps{
		Auth:     app.Auth,
		Catalog:  app.Catalog,
		Checkout: app.Checkout,
		Sales:    app.Sales,
		Receipts: app.Receipts,
		Settings: app.Settings,
		License:  app.License,
		Feed:     app.Feed,
	})
	return r
}
