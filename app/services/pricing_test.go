package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendixlabs/vendix/app/models"
)

func TestConvertSameCurrency(t *testing.T) {
	assert.Equal(t, 49.99, Convert(49.99, models.USD, models.USD, 130))
	assert.Equal(t, 1250.0, Convert(1250, models.HTG, models.HTG, 130))
}

func TestConvertUSDBaseToHTG(t *testing.T) {
	assert.Equal(t, 1300.0, Convert(10, models.USD, models.HTG, 130))
}

func TestConvertHTGBaseToUSD(t *testing.T) {
	assert.Equal(t, 10.0, Convert(1300, models.HTG, models.USD, 130))
}

func TestConvertNoRounding(t *testing.T) {
	// 100 HTG at 130 is 0.769230... USD; the converter must not round.
	got := Convert(100, models.HTG, models.USD, 130)
	assert.InDelta(t, 0.7692307692, got, 1e-9)
}

func TestConvertRoundTrip(t *testing.T) {
	amount := 57.25
	there := Convert(amount, models.USD, models.HTG, 131.5)
	back := Convert(there, models.HTG, models.USD, 131.5)
	assert.InDelta(t, amount, back, 1e-9)
}
