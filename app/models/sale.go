package models

// PaymentMethod is how a sale was settled.
type PaymentMethod string

const (
	Cash    PaymentMethod = "Cash"
	MonCash PaymentMethod = "MonCash"
	NatCash PaymentMethod = "NatCash"
	Bank    PaymentMethod = "Virement"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case Cash, MonCash, NatCash, Bank:
		return true
	}
	return false
}

// QRCapable reports whether the method can present a scan-to-pay QR code.
func (m PaymentMethod) QRCapable() bool { return m == MonCash || m == NatCash }

// Sale is one finalized transaction. Records are immutable: the sales
// document is only ever prepended to, newest first.
type Sale struct {
	ID             string        `json:"id"`   // "REC-<unix-ms>"
	Date           string        `json:"date"` // RFC 3339
	Items          []CartItem    `json:"items"`
	Subtotal       float64       `json:"subtotal"`
	Discount       float64       `json:"discount"`
	Total          float64       `json:"total"`
	Currency       Currency      `json:"currency"`
	Rate           float64       `json:"rate"` // conversion rate frozen at sale time
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	AmountReceived float64       `json:"amountReceived"`
	Change         float64       `json:"change"`
}
