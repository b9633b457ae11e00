package fract

// A 16.16 fixed point value. Used for scaling factors (font units
// to 26.6 pixels) and for the coefficients of transformation matrices.
type Fixed int32

// Converts a float64 to a Fixed truncating toward zero.
func FixedFromFloat64(value float64) Fixed {
	return Fixed(value*65536.0)
}

func (self Fixed) ToFloat64() float64 {
	return float64(self)/65536.0
}

// Multiplies a value by a 16.16 factor, rounding to the nearest
// integer with ties away from zero. This is the classic MulFix
// operation used to scale font units into 26.6 pixel values.
func MulFix(value int64, factor Fixed) int64 {
	sign := int64(1)
	if value < 0 { value = -value ; sign = -sign }
	f := int64(factor)
	if f < 0 { f = -f ; sign = -sign }
	return sign*((value*f + 0x8000) >> 16)
}

// Returns the 16.16 factor that converts font units into 26.6
// pixels for the given pixels per em (26.6) and units per em.
func ScaleFactor(ppem Unit, unitsPerEm int) Fixed {
	if unitsPerEm <= 0 { return 0 }
	return Fixed((int64(ppem) << 16 + int64(unitsPerEm)/2) / int64(unitsPerEm))
}

// Scales a font unit value into a 26.6 pixel value.
func (self Fixed) ScaleFUnits(funits int) Unit {
	return Unit(MulFix(int64(funits), self))
}
