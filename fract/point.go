package fract

// A pair of [Unit] coordinates.
type Point struct {
	X Unit
	Y Unit
}

// Returns the point transformed by the given matrix.
func (self Point) Transform(matrix Matrix) Point {
	self.X, self.Y = matrix.Transform(self.X, self.Y)
	return self
}

// Returns the result of adding the given pair of units to
// the current point coordinates.
func (self Point) AddUnits(x, y Unit) Point {
	self.X += x
	self.Y += y
	return self
}
