package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/response"
)

// maxImportSize caps catalog import payloads (inline product images
// make these documents big).
const maxImportSize = 32 << 20 // 32 MB

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

// Index lists the catalog; ?q= filters by name or barcode substring.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.URL.Query().Get("q"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load catalog")
		return
	}
	response.Success(w, products)
}

// Show returns one product.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Find(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load catalog")
		return
	}
	response.Success(w, product)
}

// Store creates a product.
func (c *CatalogController) Store(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	created, err := c.service.Create(p)
	if err != nil {
		c.writeMutationError(w, err)
		return
	}
	response.Created(w, created)
}

// Update replaces a product.
func (c *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := c.service.Update(p)
	if err != nil {
		c.writeMutationError(w, err)
		return
	}
	response.Success(w, updated)
}

// Destroy deletes a product.
func (c *CatalogController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(chi.URLParam(r, "id")); err != nil {
		c.writeMutationError(w, err)
		return
	}
	response.Success(w, nil)
}

// Export downloads the catalog as pretty JSON.
func (c *CatalogController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := c.service.Export()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not export catalog")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="vendix-catalog.json"`)
	w.Write(data)
}

// Import replaces the whole catalog from an uploaded JSON array.
func (c *CatalogController) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read payload")
		return
	}
	count, err := c.service.Import(payload)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "payload is not a product array")
		return
	}
	response.Success(w, map[string]int{"imported": count})
}

func (c *CatalogController) writeMutationError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w)
	default:
		response.Error(w, http.StatusInternalServerError, "could not save catalog")
	}
}
