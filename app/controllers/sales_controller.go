package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/kvstore"
	"github.com/vendixlabs/vendix/pkg/response"
)

type SalesController struct {
	sales    *services.SalesService
	receipts *services.ReceiptService
	settings *services.SettingsService
}

func NewSalesController(
	sales *services.SalesService,
	receipts *services.ReceiptService,
	settings *services.SettingsService,
) *SalesController {
	return &SalesController{sales: sales, receipts: receipts, settings: settings}
}

// Index lists sales newest first; ?id= filters by receipt-id substring,
// ?date= by YYYY-MM-DD prefix.
func (c *SalesController) Index(w http.ResponseWriter, r *http.Request) {
	sales, err := c.sales.List(r.URL.Query().Get("id"), r.URL.Query().Get("date"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load sales")
		return
	}
	response.Success(w, sales)
}

// Show returns one sale.
func (c *SalesController) Show(w http.ResponseWriter, r *http.Request) {
	sale, err := c.sales.Find(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load sales")
		return
	}
	response.Success(w, sale)
}

// Stats summarises the filtered sale log: count and per-currency totals.
func (c *SalesController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.sales.Stats(r.URL.Query().Get("id"), r.URL.Query().Get("date"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load sales")
		return
	}
	response.Success(w, stats)
}

// ReceiptText renders the thermal text receipt for a sale.
func (c *SalesController) ReceiptText(w http.ResponseWriter, r *http.Request) {
	sale, err := c.sales.Find(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load sales")
		return
	}
	cfg, err := c.settings.Get()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(c.receipts.Text(sale, cfg)))
}

// ReceiptPDF renders the 80mm PDF receipt for a sale.
func (c *SalesController) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	sale, err := c.sales.Find(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load sales")
		return
	}
	cfg, err := c.settings.Get()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	data, err := c.receipts.PDF(sale, cfg)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not render receipt")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+sale.ID+`.pdf"`)
	w.Write(data)
}
