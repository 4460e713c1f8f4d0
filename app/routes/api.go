// Package routes wires the HTTP surface of the register.
package routes

import (
	"net/http"

	"github.com/vendixlabs/vendix/app/controllers"
	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/metrics"
	"github.com/vendixlabs/vendix/pkg/middleware"
	"github.com/vendixlabs/vendix/pkg/response"
	"github.com/vendixlabs/vendix/pkg/router"
	"github.com/vendixlabs/vendix/pkg/ws"
)

// Deps carries the constructed services into the route table.
type Deps struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Checkout *services.CheckoutService
	Sales    *services.SalesService
	Receipts *services.ReceiptService
	Settings *services.SettingsService
	License  *services.LicenseService
	Feed     *ws.Hub
}

// RegisterAPI mounts every route. License activation, health and
// metrics stay reachable on an unlicensed register; everything else
// sits behind the license gate, and the business routes additionally
// behind the JWT guard.
func RegisterAPI(r *router.Router, d Deps) {
	authController := controllers.NewAuthController(d.Auth)
	catalogController := controllers.NewCatalogController(d.Catalog)
	checkoutController := controllers.NewCheckoutController(d.Checkout)
	salesController := controllers.NewSalesController(d.Sales, d.Receipts, d.Settings)
	settingsController := controllers.NewSettingsController(d.Settings)
	licenseController := controllers.NewLicenseController(d.License)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	gate := middleware.LicenseGate(d.License)

	api := r.Group("/api")
	api.Get("/license/status", "license.status", licenseController.Status)
	api.Post("/license/activate", "license.activate", licenseController.Activate)

	licensed := api.Group("", gate)
	licensed.Post("/auth/login", "auth.login", authController.Login)
	licensed.Post("/auth/logout", "auth.logout", authController.Logout, middleware.Auth)

	protected := licensed.Group("", middleware.Auth)

	protected.Get("/products", "products.index", catalogController.Index)
	protected.Post("/products", "products.store", catalogController.Store)
	protected.Get("/products/export", "products.export", catalogController.Export)
	protected.Post("/products/import", "products.import", catalogController.Import)
	protected.Get("/products/{id}", "products.show", catalogController.Show)
	protected.Put("/products/{id}", "products.update", catalogController.Update)
	protected.Delete("/products/{id}", "products.destroy", catalogController.Destroy)

	protected.Get("/checkout", "checkout.show", checkoutController.Show)
	protected.Post("/checkout/items", "checkout.add", checkoutController.AddItem)
	protected.Put("/checkout/items/{id}", "checkout.quantity", checkoutController.UpdateQuantity)
	protected.Put("/checkout/discount", "checkout.discount", checkoutController.SetDiscount)
	protected.Put("/checkout/currency", "checkout.currency", checkoutController.SetCurrency)
	protected.Delete("/checkout", "checkout.clear", checkoutController.Clear)
	protected.Post("/checkout/finalize", "checkout.finalize", checkoutController.Finalize)
	protected.Post("/checkout/confirm", "checkout.confirm", checkoutController.ConfirmPayment)
	protected.Post("/checkout/cancel", "checkout.cancel", checkoutController.CancelPayment)

	protected.Get("/sales", "sales.index", salesController.Index)
	protected.Get("/sales/stats", "sales.stats", salesController.Stats)
	protected.Get("/sales/{id}", "sales.show", salesController.Show)
	protected.Get("/sales/{id}/receipt", "sales.receipt", salesController.ReceiptText)
	protected.Get("/sales/{id}/receipt.pdf", "sales.receipt.pdf", salesController.ReceiptPDF)

	protected.Get("/settings", "settings.show", settingsController.Show)
	protected.Put("/settings", "settings.update", settingsController.Update)

	r.Get("/theme.css", "theme.css", settingsController.ThemeCSS, gate)
	r.Get("/ws/sales", "ws.sales", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, d.Feed)
	}, gate)
}
