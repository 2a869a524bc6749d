// Package fx implements signed fixed-point numbers with 8 fractional bits.
// Velocity and acceleration math runs on Fx8 so that a replay of the same
// input produces bit-identical results on every platform.
package fx

import "math"

// Shift is the number of fractional bits.
const Shift = 8

// Fx8 is a fixed-point value: 1 unit = 1/256.
type Fx8 int32

const (
	Zero Fx8 = 0
	One  Fx8 = 1 << Shift
	Half Fx8 = One >> 1

	// MaxValue and MinValue bound every result; arithmetic saturates
	// instead of wrapping. MinValue is -MaxValue so negation never overflows.
	MaxValue = Fx8(math.MaxInt32)
	MinValue = -MaxValue
)

// saturate narrows a 64-bit intermediate to the Fx8 range.
func saturate(v int64) Fx8 {
	switch {
	case v > int64(MaxValue):
		return MaxValue
	case v < int64(MinValue):
		return MinValue
	}
	return Fx8(v)
}

// mul64 multiplies without wrapping past the int64 range.
func mul64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a {
		if (a < 0) != (b < 0) {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return p
}

// FromInt converts an integer to Fx8, saturating outside the Fx8 range.
func FromInt(i int) Fx8 {
	return saturate(mul64(int64(i), int64(One)))
}

// FromFloat converts a float to Fx8, truncating toward zero.
func FromFloat(f float64) Fx8 {
	v := f * float64(One)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(MaxValue):
		return MaxValue
	case v <= float64(MinValue):
		return MinValue
	}
	return Fx8(v)
}

// Int returns the integer part (floor).
func (a Fx8) Int() int {
	return int(a >> Shift)
}

// Float returns the value as float64.
func (a Fx8) Float() float64 {
	return float64(a) / float64(One)
}

// Mul multiplies two fixed-point values.
func Mul(a, b Fx8) Fx8 {
	return saturate((int64(a) * int64(b)) >> Shift)
}

// Div divides a by b. Division by zero yields zero.
func Div(a, b Fx8) Fx8 {
	if b == 0 {
		return 0
	}
	return saturate((int64(a) << Shift) / int64(b))
}

// IMul multiplies a fixed-point value by an integer.
func IMul(a Fx8, n int) Fx8 {
	return saturate(mul64(int64(a), int64(n)))
}

// IDiv divides a fixed-point value by an integer, truncating toward zero.
func IDiv(a Fx8, n int) Fx8 {
	if n == 0 {
		return 0
	}
	return saturate(int64(a) / int64(n))
}

// Add adds two values, saturating at MinValue and MaxValue.
func Add(a, b Fx8) Fx8 {
	return saturate(int64(a) + int64(b))
}

// Scale applies a per-second rate over ms milliseconds (a*ms/1000). The
// product stays in 64 bits until after the divide.
func Scale(a Fx8, ms int64) Fx8 {
	return saturate(mul64(int64(a), ms) / 1000)
}

// Compare returns -1, 0 or 1.
func Compare(a, b Fx8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sign returns -1, 0 or 1.
func (a Fx8) Sign() int {
	return Compare(a, 0)
}

// Abs returns |a|.
func (a Fx8) Abs() Fx8 {
	if a < 0 {
		return -a
	}
	return a
}

// Min returns the smaller value.
func Min(a, b Fx8) Fx8 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger value.
func Max(a, b Fx8) Fx8 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits a to [lo, hi].
func Clamp(a, lo, hi Fx8) Fx8 {
	return Max(lo, Min(a, hi))
}

// Sqrt returns the square root of a non-negative value. Negative input yields zero.
func Sqrt(a Fx8) Fx8 {
	if a <= 0 {
		return 0
	}
	return FromFloat(math.Sqrt(a.Float()))
}
