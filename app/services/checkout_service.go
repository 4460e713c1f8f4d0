package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/event"
	"github.com/vendixlabs/vendix/pkg/logger"
	"github.com/vendixlabs/vendix/pkg/metrics"
)

// RegisterState is the checkout state machine position.
type RegisterState string

const (
	StateIdle            RegisterState = "idle"
	StateReviewing       RegisterState = "reviewing"
	StateAwaitingPayment RegisterState = "awaiting_payment"
)

var (
	ErrEmptyCart          = errors.New("checkout: cart is empty")
	ErrInsufficientAmount = errors.New("checkout: insufficient amount")
	ErrNoPendingPayment   = errors.New("checkout: no payment awaiting confirmation")
	ErrPaymentPending     = errors.New("checkout: a payment is awaiting confirmation")
	ErrBadPaymentMethod   = errors.New("checkout: unknown payment method")
)

// lowStockThreshold feeds the low-stock gauge after each sale.
const lowStockThreshold = 5

// pendingSale freezes everything Finalize computed while a QR payment
// waits for the customer to scan.
type pendingSale struct {
	method   models.PaymentMethod
	received float64
	subtotal float64
	discount float64
	total    float64
	currency models.Currency
	rate     float64
}

// FinalizeResult is what Finalize hands back to the controller: either a
// completed sale, or a pending marker with the QR image to present.
type FinalizeResult struct {
	Pending bool         `json:"pending"`
	QR      string       `json:"qr,omitempty"`
	Sale    *models.Sale `json:"sale,omitempty"`
}

// CheckoutService is the single register. One mutex guards the whole
// cart: HTTP handlers are concurrent even though the business flow is
// single-operator.
type CheckoutService struct {
	mu       sync.Mutex
	catalog  *repositories.CatalogRepository
	sales    *repositories.SaleRepository
	settings *repositories.SettingsRepository

	state    RegisterState
	cart     []models.CartItem
	discount float64
	currency models.Currency // "" means the settings default
	pending  *pendingSale
}

func NewCheckoutService(
	catalog *repositories.CatalogRepository,
	sales *repositories.SaleRepository,
	settings *repositories.SettingsRepository,
) *CheckoutService {
	return &CheckoutService{
		catalog:  catalog,
		sales:    sales,
		settings: settings,
		state:    StateIdle,
	}
}

// State returns the current register state.
func (s *CheckoutService) State() RegisterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cart returns a snapshot of the active cart.
func (s *CheckoutService) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// AddItem puts one unit of the product into the cart. Out-of-stock
// products and lines already at the stock limit are a silent no-op,
// mirroring a register that simply refuses another scan.
func (s *CheckoutService) AddItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaitingPayment {
		return ErrPaymentPending
	}

	product, err := s.findProduct(productID)
	if err != nil {
		return err
	}
	if product.Stock <= 0 {
		return nil
	}

	for i := range s.cart {
		if s.cart[i].ID == productID {
			if s.cart[i].Quantity >= product.Stock {
				return nil
			}
			s.cart[i].Quantity++
			s.state = StateReviewing
			return nil
		}
	}

	s.cart = append(s.cart, models.CartItem{Product: product, Quantity: 1})
	s.state = StateReviewing
	return nil
}

// UpdateQuantity adjusts a cart line by delta, clamped to [0, stock].
// A line that reaches zero is removed; an empty cart returns to idle.
func (s *CheckoutService) UpdateQuantity(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaitingPayment {
		return ErrPaymentPending
	}

	product, err := s.findProduct(productID)
	if err != nil {
		return err
	}

	for i := range s.cart {
		if s.cart[i].ID != productID {
			continue
		}
		qty := s.cart[i].Quantity + delta
		if qty > product.Stock {
			qty = product.Stock
		}
		if qty <= 0 {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
		} else {
			s.cart[i].Quantity = qty
		}
		break
	}

	if len(s.cart) == 0 {
		s.state = StateIdle
	}
	return nil
}

// SetDiscount sets the flat discount applied at finalize, in the active
// currency. Negative values are treated as zero.
func (s *CheckoutService) SetDiscount(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount < 0 {
		amount = 0
	}
	s.discount = amount
}

// SetCurrency switches the currency the sale will be charged in.
func (s *CheckoutService) SetCurrency(c models.Currency) error {
	if !c.Valid() {
		return fmt.Errorf("checkout: unsupported currency %q", c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
	return nil
}

// Clear abandons the cart and any pending payment.
func (s *CheckoutService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Finalize settles the cart. Cash must cover the total or the call is
// rejected with nothing mutated. MonCash/NatCash with a configured QR
// image park the sale in awaiting-payment and return the QR to present;
// everything else completes immediately.
func (s *CheckoutService) Finalize(method models.PaymentMethod, received float64) (FinalizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAwaitingPayment {
		return FinalizeResult{}, ErrPaymentPending
	}
	if len(s.cart) == 0 {
		return FinalizeResult{}, ErrEmptyCart
	}
	if !method.Valid() {
		return FinalizeResult{}, ErrBadPaymentMethod
	}

	cfg, err := s.settings.Get()
	if err != nil {
		return FinalizeResult{}, err
	}

	currency := s.currency
	if currency == "" {
		currency = cfg.DefaultCurrency
	}

	var base float64
	for _, item := range s.cart {
		base += item.Price * float64(item.Quantity)
	}
	subtotal := Convert(base, cfg.DefaultCurrency, currency, cfg.ConversionRate)
	total := subtotal - s.discount
	if total < 0 {
		total = 0
	}

	if method == models.Cash && received < total {
		return FinalizeResult{}, ErrInsufficientAmount
	}

	if method.QRCapable() {
		if qr := s.qrFor(method, cfg); qr != "" {
			s.pending = &pendingSale{
				method:   method,
				received: received,
				subtotal: subtotal,
				discount: s.discount,
				total:    total,
				currency: currency,
				rate:     cfg.ConversionRate,
			}
			s.state = StateAwaitingPayment
			return FinalizeResult{Pending: true, QR: qr}, nil
		}
	}

	sale, err := s.complete(pendingSale{
		method:   method,
		received: received,
		subtotal: subtotal,
		discount: s.discount,
		total:    total,
		currency: currency,
		rate:     cfg.ConversionRate,
	})
	if err != nil {
		return FinalizeResult{}, err
	}
	return FinalizeResult{Sale: &sale}, nil
}

// ConfirmPayment completes the sale parked by a QR finalize.
func (s *CheckoutService) ConfirmPayment() (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment || s.pending == nil {
		return models.Sale{}, ErrNoPendingPayment
	}
	sale, err := s.complete(*s.pending)
	if err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// CancelPayment abandons a pending QR payment and returns the cart to
// review. Nothing was persisted, so nothing is rolled back.
func (s *CheckoutService) CancelPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPayment {
		return ErrNoPendingPayment
	}
	s.pending = nil
	s.state = StateReviewing
	return nil
}

// complete emits the Sale record, prepends it to the log, decrements
// stock (floored at zero) and resets the register. Caller holds the lock.
// Validation has already passed: from here on the sale is committed.
func (s *CheckoutService) complete(p pendingSale) (models.Sale, error) {
	received := p.received
	change := 0.0
	if p.method == models.Cash {
		change = received - p.total
		if change < 0 {
			change = 0
		}
	} else {
		received = p.total
	}

	items := make([]models.CartItem, len(s.cart))
	copy(items, s.cart)

	sale := models.Sale{
		ID:             fmt.Sprintf("REC-%d", time.Now().UnixMilli()),
		Date:           time.Now().Format(time.RFC3339),
		Items:          items,
		Subtotal:       p.subtotal,
		Discount:       p.discount,
		Total:          p.total,
		Currency:       p.currency,
		Rate:           p.rate,
		PaymentMethod:  p.method,
		AmountReceived: received,
		Change:         change,
	}

	if err := s.sales.Prepend(sale); err != nil {
		return models.Sale{}, fmt.Errorf("checkout: record sale: %w", err)
	}
	if err := s.decrementStock(items); err != nil {
		// The sale is recorded; a stock write failure must not lose it.
		logger.Error("checkout: stock decrement failed", "sale", sale.ID, "error", err)
	}

	s.reset()

	metrics.RecordSale(string(sale.PaymentMethod), string(sale.Currency), sale.Total)
	event.Fire("sale.completed", &sale)
	logger.Info("checkout: sale completed",
		"sale", sale.ID,
		"total", sale.Total,
		"currency", sale.Currency,
		"method", sale.PaymentMethod,
	)
	return sale, nil
}

func (s *CheckoutService) decrementStock(items []models.CartItem) error {
	products, err := s.catalog.All()
	if err != nil {
		return err
	}
	sold := map[string]int{}
	for _, item := range items {
		sold[item.ID] += item.Quantity
	}
	lowStock := 0
	for i := range products {
		products[i].Stock -= sold[products[i].ID]
		if products[i].Stock < 0 {
			products[i].Stock = 0
		}
		if products[i].Stock <= lowStockThreshold {
			lowStock++
		}
	}
	if err := s.catalog.SaveAll(products); err != nil {
		return err
	}
	metrics.LowStockProducts.Set(float64(lowStock))
	return nil
}

func (s *CheckoutService) reset() {
	s.cart = nil
	s.discount = 0
	s.pending = nil
	s.state = StateIdle
}

func (s *CheckoutService) findProduct(id string) (models.Product, error) {
	products, err := s.catalog.All()
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (s *CheckoutService) qrFor(method models.PaymentMethod, cfg models.BusinessSettings) string {
	switch method {
	case models.MonCash:
		return cfg.MonCashQR
	case models.NatCash:
		return cfg.NatCashQR
	}
	return ""
}
