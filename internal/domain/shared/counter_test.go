package shared_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/mine/internal/domain/shared"
)

func TestCounter_Basic(t *testing.T) {
	full := shared.NewCounter(100, true)
	assert.Equal(t, 100, full.Value())
	full.Reset()
	assert.Equal(t, 100, full.Value())

	empty := shared.NewCounter(100, false)
	assert.Equal(t, 0, empty.Value())
	empty.Reset()
	assert.Equal(t, 0, empty.Value())
	assert.Equal(t, 0, empty.Default())
}

func TestCounter_Arithmetic(t *testing.T) {
	c := shared.NewCounter(100, true)

	assert.Equal(t, -50, c.Reduce(50))
	assert.Equal(t, 50, c.Value())

	// clamps at maximum and reports only what fit
	assert.Equal(t, 50, c.Increase(100))
	assert.Equal(t, 100, c.Value())

	c.Reduce(100)
	assert.Equal(t, 0, c.Value())

	assert.Equal(t, 0, c.Reduce(10))
	assert.Equal(t, 0, c.Value())
}

func TestCounter_FractionCompounds(t *testing.T) {
	c := shared.NewCounter(100, true)

	c.ReduceFraction(0.25)
	assert.Equal(t, 75, c.Value())

	c.ReduceFraction(0.25)
	assert.Equal(t, 56, c.Value(), "floor(75 * 0.75) compounds on the current value")

	c.IncreaseFraction(1)
	assert.Equal(t, 100, c.Value(), "doubling 56 clamps at maximum")

	c.ReduceFraction(1)
	assert.Equal(t, 0, c.Value())
}

func TestCounter_StaysInRange(t *testing.T) {
	ops := []func(c *shared.Counter){
		func(c *shared.Counter) { c.Increase(37) },
		func(c *shared.Counter) { c.Reduce(91) },
		func(c *shared.Counter) { c.IncreaseFraction(0.6) },
		func(c *shared.Counter) { c.ReduceFraction(0.3) },
		func(c *shared.Counter) { c.Increase(500) },
		func(c *shared.Counter) { c.ReduceFraction(2.5) },
		func(c *shared.Counter) { c.Reduce(-12) },
	}

	c := shared.NewCounter(80, false)
	for i := 0; i < 200; i++ {
		ops[i%len(ops)](c)
		assert.GreaterOrEqual(t, c.Value(), 0)
		assert.LessOrEqual(t, c.Value(), 80)
	}
}

func TestCounter_MinimizeAndReset(t *testing.T) {
	c := shared.NewCounterAt(100, 40)
	assert.Equal(t, 40, c.Value())
	assert.Equal(t, 40, c.Default())

	c.Increase(10)
	c.Minimize()
	assert.Equal(t, 0, c.Value())

	c.Reset()
	assert.Equal(t, 40, c.Value())
}

func TestCounter_NewCounterAtClamps(t *testing.T) {
	c := shared.NewCounterAt(100, 140)
	assert.Equal(t, 100, c.Value())
	assert.Equal(t, 100, c.Default())
}

func TestCounter_AdjustDefault(t *testing.T) {
	c := shared.NewCounterAt(100, 90)

	assert.Equal(t, 10, c.AdjustDefault(25))
	assert.Equal(t, 100, c.Default())
	assert.Equal(t, 90, c.Value(), "value waits for the next reset")

	c.Reset()
	assert.Equal(t, 100, c.Value())

	assert.Equal(t, -100, c.AdjustDefault(-150))
	assert.Equal(t, 0, c.Default())
}

func TestCounter_HugeAmountsSaturate(t *testing.T) {
	c := shared.NewCounterAt(100, 50)

	assert.Equal(t, 50, c.Increase(math.MaxInt))
	assert.Equal(t, 100, c.Value())

	assert.Equal(t, -100, c.Reduce(math.MaxInt))
	assert.Equal(t, 0, c.Value())

	assert.Equal(t, 100, c.Reduce(math.MinInt))
	assert.Equal(t, 100, c.Value())

	assert.Equal(t, -100, c.Increase(math.MinInt))
	assert.Equal(t, 0, c.Value())

	c.Reset()
	assert.Equal(t, 50, c.IncreaseFraction(1e300))
	assert.Equal(t, 100, c.Value())
}
