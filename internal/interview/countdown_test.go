package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_FiresOnceAndHoldsAtZero(t *testing.T) {
	c := NewCountdown(3)

	assert.False(t, c.Tick())
	assert.False(t, c.Tick())
	assert.True(t, c.Tick())
	assert.Equal(t, 0, c.Remaining())

	for i := 0; i < 5; i++ {
		assert.False(t, c.Tick())
		assert.Equal(t, 0, c.Remaining())
	}
	assert.True(t, c.Expired())
}

func TestCountdown_ResetRearms(t *testing.T) {
	c := NewCountdown(1)
	assert.True(t, c.Tick())

	c.Reset(2)
	assert.False(t, c.Expired())
	assert.Equal(t, 2, c.Remaining())
	assert.False(t, c.Tick())
	assert.True(t, c.Tick())
}

func TestCountdown_ZeroFiresOnFirstTick(t *testing.T) {
	c := NewCountdown(0)
	assert.True(t, c.Tick())
	assert.False(t, c.Tick())
}

func TestCountdown_NegativeIsZero(t *testing.T) {
	c := NewCountdown(-5)
	assert.Equal(t, 0, c.Remaining())
}
