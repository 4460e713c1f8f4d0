package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/services"
	"github.com/vendixlabs/vendix/pkg/response"
)

type CheckoutController struct {
	service *services.CheckoutService
}

func NewCheckoutController(service *services.CheckoutService) *CheckoutController {
	return &CheckoutController{service: service}
}

// Show returns the register state and the active cart.
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"state": c.service.State(),
		"items": c.service.Cart(),
	})
}

// AddItem scans one unit of a product into the cart.
func (c *CheckoutController) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.service.AddItem(body.ProductID); err != nil {
		c.writeCheckoutError(w, err)
		return
	}
	response.Success(w, c.service.Cart())
}

// UpdateQuantity adjusts a cart line by a delta.
func (c *CheckoutController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.service.UpdateQuantity(chi.URLParam(r, "id"), body.Delta); err != nil {
		c.writeCheckoutError(w, err)
		return
	}
	response.Success(w, c.service.Cart())
}

// SetDiscount sets the flat discount.
func (c *CheckoutController) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c.service.SetDiscount(body.Amount)
	response.Success(w, nil)
}

// SetCurrency switches the sale currency.
func (c *CheckoutController) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency models.Currency `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := c.service.SetCurrency(body.Currency); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(w, nil)
}

// Clear abandons the cart.
func (c *CheckoutController) Clear(w http.ResponseWriter, r *http.Request) {
	c.service.Clear()
	response.Success(w, nil)
}

// Finalize settles the cart. The response is either the completed sale
// or a pending marker carrying the QR image to present.
func (c *CheckoutController) Finalize(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method         models.PaymentMethod `json:"method"`
		AmountReceived float64              `json:"amountReceived"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := c.service.Finalize(body.Method, body.AmountReceived)
	if err != nil {
		c.writeCheckoutError(w, err)
		return
	}
	response.Success(w, result)
}

// ConfirmPayment completes a sale parked behind a QR scan.
func (c *CheckoutController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	sale, err := c.service.ConfirmPayment()
	if err != nil {
		c.writeCheckoutError(w, err)
		return
	}
	response.Success(w, sale)
}

// CancelPayment abandons a pending QR payment.
func (c *CheckoutController) CancelPayment(w http.ResponseWriter, r *http.Request) {
	if err := c.service.CancelPayment(); err != nil {
		c.writeCheckoutError(w, err)
		return
	}
	response.Success(w, nil)
}

func (c *CheckoutController) writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInsufficientAmount),
		errors.Is(err, services.ErrBadPaymentMethod),
		errors.Is(err, services.ErrNoPendingPayment),
		errors.Is(err, services.ErrPaymentPending):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w)
	default:
		response.Error(w, http.StatusInternalServerError, "checkout failed")
	}
}
