package fract

import "golang.org/x/exp/constraints"
import "golang.org/x/image/math/fixed"

// Fast conversion from int to [Unit]. If the int value is not
// representable with a [Unit], the result is undefined. If you
// want to account for overflows, check [MinInt] <= value <= [MaxInt].
func FromInt(value int) Unit { return Unit(value << 6) }

// Conversion from [fixed.Int26_6]. The representations match.
func FromFixed(value fixed.Int26_6) Unit { return Unit(value) }

// Conversion to [fixed.Int26_6]. The representations match.
func (self Unit) Fixed() fixed.Int26_6 { return fixed.Int26_6(self) }

// Generic absolute value helper for the signed integer types
// used across metric computations.
func Abs[T constraints.Signed](value T) T {
	if value < 0 { return -value }
	return value
}
