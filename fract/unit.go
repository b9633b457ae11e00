package fract

// Fixed point type to represent fractional pixel values.
//
// 26 bits represent the integer part of the value, while the remaining 6 bits
// represent the decimal part. In other words, a Unit stores 64ths of a pixel:
// var pixels Unit = 64 means 1 pixel, and 96 would be 1.5 pixels.
//
// The internal representation is compatible with [fixed.Int26_6] and with
// the F26Dot6 values font engines use for glyph metrics.
//
// [fixed.Int26_6]: golang.org/x/image/math/fixed.Int26_6
type Unit int32

func (self Unit) ToFloat64() float64 {
	return float64(self)/64.0
}

func (self Unit) ToFloat32() float32 {
	return float32(self)/64.0
}

// Fastest conversion from Unit to int. Equivalent to an
// arithmetic shift, so negative values round toward -inf.
func (self Unit) ToIntFloor() int {
	return int(self) >> 6
}

func (self Unit) ToIntHalfUp() int {
	return (int(self) + 32) >> 6
}

func (self Unit) Floor() Unit {
	return self & ^0x3F
}

func (self Unit) Ceil() Unit {
	return (self + 0x3F).Floor()
}

func (self Unit) HalfUp() Unit {
	return (self + 32).Floor()
}

// Returns the absolute value of the unit.
func (self Unit) Abs() Unit {
	return Abs(self)
}
