package models

// Currency is one of the two currencies the register deals in.
type Currency string

const (
	USD Currency = "USD"
	HTG Currency = "HTG"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool { return c == USD || c == HTG }
