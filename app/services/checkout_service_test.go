package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/event"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

type checkoutFixture struct {
	svc      *CheckoutService
	catalog  *repositories.CatalogRepository
	sales    *repositories.SaleRepository
	settings *repositories.SettingsRepository
}

// newCheckout builds a register over an in-memory store with a small
// catalog priced in HTG (the default base currency, rate 130).
func newCheckout(t *testing.T) *checkoutFixture {
	t.Helper()
	store := kvstore.NewMemory()
	catalog := repositories.NewCatalogRepository(store)
	sales := repositories.NewSaleRepository(store)
	settings := repositories.NewSettingsRepository(store)

	require.NoError(t, catalog.SaveAll([]models.Product{
		{ID: "P-1", Name: "Cola", Price: 100, Stock: 10},
		{ID: "P-2", Name: "Rice", Price: 650, Stock: 2},
		{ID: "P-3", Name: "Soap", Price: 85, Stock: 0},
	}))

	return &checkoutFixture{
		svc:      NewCheckoutService(catalog, sales, settings),
		catalog:  catalog,
		sales:    sales,
		settings: settings,
	}
}

func (f *checkoutFixture) stock(t *testing.T, id string) int {
	t.Helper()
	products, err := f.catalog.All()
	require.NoError(t, err)
	for _, p := range products {
		if p.ID == id {
			return p.Stock
		}
	}
	t.Fatalf("product %s not in catalog", id)
	return 0
}

func TestAddItemAndState(t *testing.T) {
	f := newCheckout(t)

	assert.Equal(t, StateIdle, f.svc.State())
	require.NoError(t, f.svc.AddItem("P-1"))
	assert.Equal(t, StateReviewing, f.svc.State())

	cart := f.svc.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)

	require.NoError(t, f.svc.AddItem("P-1"))
	assert.Equal(t, 2, f.svc.Cart()[0].Quantity)
}

func TestAddItemOutOfStockIsSilentNoOp(t *testing.T) {
	f := newCheckout(t)

	require.NoError(t, f.svc.AddItem("P-3"))
	assert.Empty(t, f.svc.Cart())
	assert.Equal(t, StateIdle, f.svc.State())
}

func TestAddItemStopsAtStockLimit(t *testing.T) {
	f := newCheckout(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, f.svc.AddItem("P-2"))
	}
	cart := f.svc.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	f := newCheckout(t)
	assert.ErrorIs(t, f.svc.AddItem("P-404"), ErrProductNotFound)
}

func TestUpdateQuantityClampsAndRemoves(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-2"))

	// Clamp up to stock.
	require.NoError(t, f.svc.UpdateQuantity("P-2", +10))
	assert.Equal(t, 2, f.svc.Cart()[0].Quantity)

	// Down to zero removes the line and the register goes idle.
	require.NoError(t, f.svc.UpdateQuantity("P-2", -5))
	assert.Empty(t, f.svc.Cart())
	assert.Equal(t, StateIdle, f.svc.State())
}

func TestFinalizeEmptyCart(t *testing.T) {
	f := newCheckout(t)
	_, err := f.svc.Finalize(models.Cash, 100)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFinalizeCashInsufficientMutatesNothing(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-1")) // 100 HTG

	_, err := f.svc.Finalize(models.Cash, 50)
	assert.ErrorIs(t, err, ErrInsufficientAmount)

	// Cart intact, no sale recorded, stock untouched.
	assert.Len(t, f.svc.Cart(), 1)
	assert.Equal(t, StateReviewing, f.svc.State())
	sales, err := f.sales.All()
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Equal(t, 10, f.stock(t, "P-1"))
}

func TestFinalizeCashCompletesSale(t *testing.T) {
	event.Flush()
	defer event.Flush()

	var fired *models.Sale
	event.Listen("sale.completed", func(payload interface{}) {
		fired, _ = payload.(*models.Sale)
	})

	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-1"))
	require.NoError(t, f.svc.AddItem("P-1")) // 200 HTG
	f.svc.SetDiscount(50)

	result, err := f.svc.Finalize(models.Cash, 500)
	require.NoError(t, err)
	require.False(t, result.Pending)
	require.NotNil(t, result.Sale)

	sale := *result.Sale
	assert.Equal(t, 200.0, sale.Subtotal)
	assert.Equal(t, 50.0, sale.Discount)
	assert.Equal(t, 150.0, sale.Total)
	assert.Equal(t, models.HTG, sale.Currency)
	assert.Equal(t, 130.0, sale.Rate)
	assert.Equal(t, 500.0, sale.AmountReceived)
	assert.Equal(t, 350.0, sale.Change)
	assert.Contains(t, sale.ID, "REC-")

	// Register reset, stock decremented, sale logged, event fired.
	assert.Equal(t, StateIdle, f.svc.State())
	assert.Empty(t, f.svc.Cart())
	assert.Equal(t, 8, f.stock(t, "P-1"))

	sales, err := f.sales.All()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)

	require.NotNil(t, fired)
	assert.Equal(t, sale.ID, fired.ID)
}

func TestFinalizeDiscountFloorsTotalAtZero(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-1")) // 100 HTG
	f.svc.SetDiscount(500)

	result, err := f.svc.Finalize(models.Cash, 0)
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	assert.Equal(t, 0.0, result.Sale.Total)
	assert.Equal(t, 0.0, result.Sale.Change)
}

func TestFinalizeInUSDConvertsOnce(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-2")) // 650 HTG = 5 USD at 130
	require.NoError(t, f.svc.SetCurrency(models.USD))

	result, err := f.svc.Finalize(models.Cash, 20)
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	assert.InDelta(t, 5.0, result.Sale.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, result.Sale.Total, 1e-9)
	assert.Equal(t, models.USD, result.Sale.Currency)
	assert.InDelta(t, 15.0, result.Sale.Change, 1e-9)
}

func TestFinalizeNonCashRecordsExactAmount(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-1"))

	// No QR configured, so Virement completes immediately.
	result, err := f.svc.Finalize(models.Bank, 0)
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	assert.Equal(t, result.Sale.Total, result.Sale.AmountReceived)
	assert.Equal(t, 0.0, result.Sale.Change)
}

func TestFinalizeQRMethodWithoutQRCompletesDirectly(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-1"))

	result, err := f.svc.Finalize(models.MonCash, 0)
	require.NoError(t, err)
	assert.False(t, result.Pending)
	require.NotNil(t, result.Sale)
}

func TestFinalizeQRMethodParksThenConfirms(t *testing.T) {
	f := newCheckout(t)
	cfg, err := f.settings.Get()
	require.NoError(t, err)
	cfg.MonCashQR = "data:image/png;base64,QR"
	require.NoError(t, f.settings.Save(cfg))

	require.NoError(t, f.svc.AddItem("P-1"))

	result, err := f.svc.Finalize(models.MonCash, 0)
	require.NoError(t, err)
	assert.True(t, result.Pending)
	assert.Equal(t, "data:image/png;base64,QR", result.QR)
	assert.Nil(t, result.Sale)
	assert.Equal(t, StateAwaitingPayment, f.svc.State())

	// Nothing persisted while parked.
	sales, err := f.sales.All()
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Equal(t, 10, f.stock(t, "P-1"))

	// Cart edits are refused while awaiting the scan.
	assert.ErrorIs(t, f.svc.AddItem("P-1"), ErrPaymentPending)

	sale, err := f.svc.ConfirmPayment()
	require.NoError(t, err)
	assert.Equal(t, models.MonCash, sale.PaymentMethod)
	assert.Equal(t, sale.Total, sale.AmountReceived)
	assert.Equal(t, StateIdle, f.svc.State())
	assert.Equal(t, 9, f.stock(t, "P-1"))
}

func TestCancelPaymentReturnsToReviewing(t *testing.T) {
	f := newCheckout(t)
	cfg, err := f.settings.Get()
	require.NoError(t, err)
	cfg.NatCashQR = "data:image/png;base64,QR"
	require.NoError(t, f.settings.Save(cfg))

	require.NoError(t, f.svc.AddItem("P-1"))
	result, err := f.svc.Finalize(models.NatCash, 0)
	require.NoError(t, err)
	require.True(t, result.Pending)

	require.NoError(t, f.svc.CancelPayment())
	assert.Equal(t, StateReviewing, f.svc.State())
	assert.Len(t, f.svc.Cart(), 1)

	_, err = f.svc.ConfirmPayment()
	assert.ErrorIs(t, err, ErrNoPendingPayment)
}

func TestStockDecrementFlooredAtZero(t *testing.T) {
	f := newCheckout(t)
	require.NoError(t, f.svc.AddItem("P-2"))
	require.NoError(t, f.svc.AddItem("P-2")) // qty 2 = full stock

	// Simulate stock shrinking underneath the cart.
	products, err := f.catalog.All()
	require.NoError(t, err)
	for i := range products {
		if products[i].ID == "P-2" {
			products[i].Stock = 1
		}
	}
	require.NoError(t, f.catalog.SaveAll(products))

	_, err = f.svc.Finalize(models.Cash, 5000)
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "P-2"))
}

func TestSalesLogNewestFirst(t *testing.T) {
	f := newCheckout(t)

	require.NoError(t, f.svc.AddItem("P-1"))
	first, err := f.svc.Finalize(models.Cash, 1000)
	require.NoError(t, err)

	require.NoError(t, f.svc.AddItem("P-2"))
	second, err := f.svc.Finalize(models.Cash, 1000)
	require.NoError(t, err)

	sales, err := f.sales.All()
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, second.Sale.ID, sales[0].ID)
	assert.Equal(t, first.Sale.ID, sales[1].ID)
}
