// Package services holds the register's business logic. Services sit
// between the HTTP controllers and the document repositories.
package services

import (
	"github.com/vendixlabs/vendix/app/models"
)

// Convert translates amount from the base currency into target.
// rate is the configured exchange rate (1 USD = rate HTG), frozen per
// sale at checkout. Same currency passes through untouched; no rounding
// happens here, only at render time.
func Convert(amount float64, base, target models.Currency, rate float64) float64 {
	if base == target {
		return amount
	}
	if base == models.USD && target == models.HTG {
		return amount * rate
	}
	return amount / rate
}
