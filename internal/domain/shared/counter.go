package shared

import "math"

// Counter is a bounded integer with a default it can be reset to. Every
// mutation clamps silently into [Minimum, Maximum]; stat changes saturate
// rather than fail.
type Counter struct {
	value    int
	minimum  int
	maximum  int
	defaultV int
}

// NewCounter creates a counter with a floor of zero. A full counter starts at
// maximum, an empty one at zero; either way that start value is the default.
func NewCounter(maximum int, startFull bool) *Counter {
	c := &Counter{maximum: maximum}
	if startFull {
		c.value = maximum
	}
	c.clamp()
	c.defaultV = c.value
	return c
}

// NewCounterAt creates a counter capped at maximum whose default and current
// value are value (clamped).
func NewCounterAt(maximum, value int) *Counter {
	c := &Counter{maximum: maximum, value: value}
	c.clamp()
	c.defaultV = c.value
	return c
}

// Value returns the current value
func (c *Counter) Value() int { return c.value }

// Minimum returns the floor
func (c *Counter) Minimum() int { return c.minimum }

// Maximum returns the ceiling
func (c *Counter) Maximum() int { return c.maximum }

// Default returns the value Reset restores
func (c *Counter) Default() int { return c.defaultV }

// Increase adds amount and returns the change actually applied. Amounts past
// either bound saturate without overflowing.
func (c *Counter) Increase(amount int) int {
	before := c.value
	switch {
	case amount > c.maximum-c.value:
		c.value = c.maximum
	case amount < c.minimum-c.value:
		c.value = c.minimum
	default:
		c.value += amount
	}
	c.clamp()
	return c.value - before
}

// Reduce subtracts amount and returns the change actually applied (zero or negative
// for a positive amount)
func (c *Counter) Reduce(amount int) int {
	if amount == math.MinInt {
		return c.Increase(math.MaxInt)
	}
	return c.Increase(-amount)
}

// IncreaseFraction scales the current value by (1 + fraction), rounding down
func (c *Counter) IncreaseFraction(fraction float64) int {
	return c.scale(1 + fraction)
}

// ReduceFraction scales the current value by (1 - fraction), rounding down.
// Repeated calls compound on the current value, not the default.
func (c *Counter) ReduceFraction(fraction float64) int {
	return c.scale(1 - fraction)
}

// Minimize forces the value to the floor
func (c *Counter) Minimize() {
	c.value = c.minimum
}

// Reset forces the value back to the default
func (c *Counter) Reset() {
	c.value = c.defaultV
}

// AdjustDefault moves the default by amount, clamped into range. The current
// value is untouched until the next Reset.
func (c *Counter) AdjustDefault(amount int) int {
	before := c.defaultV
	c.defaultV += amount
	if c.defaultV > c.maximum {
		c.defaultV = c.maximum
	}
	if c.defaultV < c.minimum {
		c.defaultV = c.minimum
	}
	return c.defaultV - before
}

func (c *Counter) scale(factor float64) int {
	before := c.value
	scaled := math.Floor(float64(c.value) * factor)
	switch {
	case scaled >= float64(c.maximum):
		c.value = c.maximum
	case scaled <= float64(c.minimum):
		c.value = c.minimum
	default:
		c.value = int(scaled)
	}
	return c.value - before
}

func (c *Counter) clamp() {
	if c.value > c.maximum {
		c.value = c.maximum
	}
	if c.value < c.minimum {
		c.value = c.minimum
	}
}
