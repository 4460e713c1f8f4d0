package models

// Product is one catalog entry. Price is stored in the base currency
// configured in BusinessSettings.
type Product struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name" validate:"required,min=1,max=120"`
	Price   float64 `json:"price" validate:"gte=0"`
	Barcode string  `json:"barcode"`
	Stock   int     `json:"stock" validate:"gte=0"`
	Image   string  `json:"image"` // inline data URI
}

// CartItem is a product line in the active cart. In-memory only, never
// persisted on its own; a snapshot lands inside the Sale record.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
