package fract

// A 2x2 linear transformation with 16.16 coefficients, applied as
//
//	x' = XX*x + XY*y
//	y' = YX*x + YY*y
//
// on coordinates that grow upwards.
type Matrix struct {
	XX, XY Fixed
	YX, YY Fixed
}

// The identity matrix.
var IdentityMatrix = Matrix{ XX: FixedOne, YY: FixedOne }

// Returns whether the matrix is exactly the identity.
func (self Matrix) IsIdentity() bool {
	return self == IdentityMatrix
}

// Transforms a point.
func (self Matrix) Transform(x, y Unit) (Unit, Unit) {
	tx := MulFix(int64(x), self.XX) + MulFix(int64(y), self.XY)
	ty := MulFix(int64(x), self.YX) + MulFix(int64(y), self.YY)
	return Unit(tx), Unit(ty)
}

// Transforms a point given as float64 coordinates.
func (self Matrix) TransformFloat64(x, y float64) (float64, float64) {
	xx, xy := self.XX.ToFloat64(), self.XY.ToFloat64()
	yx, yy := self.YX.ToFloat64(), self.YY.ToFloat64()
	return xx*x + xy*y, yx*x + yy*y
}
