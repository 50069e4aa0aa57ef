package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaundsFromKg(t *testing.T) {
	assert.InDelta(t, 1.0, MaundsFromKg(KgPerMaund), 1e-9)
	assert.InDelta(t, 100.0/KgPerMaund, MaundsFromKg(100), 1e-9)
	assert.Equal(t, 0.0, MaundsFromKg(0))
	assert.Equal(t, 0.0, MaundsFromKg(-5))
}

func TestKgFromBales(t *testing.T) {
	assert.InDelta(t, 1500.0, KgFromBales(10), 1e-9)
	assert.Equal(t, 0.0, KgFromBales(0))
	assert.Equal(t, 0.0, KgFromBales(-3))
}

func TestAmountForWeight(t *testing.T) {
	// 373.242 kg is exactly 10 maunds.
	assert.InDelta(t, 10*7500.0, AmountForWeight(10*KgPerMaund, 7500), 1e-6)

	assert.Equal(t, 0.0, AmountForWeight(0, 7500))
	assert.Equal(t, 0.0, AmountForWeight(100, 0))
	assert.Equal(t, 0.0, AmountForWeight(-1, -1))
}
