package fract

// A pair of [Point] values defining a glyph or font bounding box.
// Unlike [image.Rectangle], coordinates grow upwards: Min is the
// bottom-left corner and Max the top-right one, both included.
type Rect struct {
	Min Point
	Max Point
}

// Creates a rect from a set of four units.
func UnitsToRect(minX, minY, maxX, maxY Unit) Rect {
	return Rect{
		Min: Point{ X: minX, Y: minY },
		Max: Point{ X: maxX, Y: maxY },
	}
}

func (self Rect) Width() Unit { return self.Max.X - self.Min.X }
func (self Rect) Height() Unit { return self.Max.Y - self.Min.Y }

// Returns whether the rect has no area.
func (self Rect) Empty() bool {
	return self.Min.X >= self.Max.X || self.Min.Y >= self.Max.Y
}

// Returns the smallest rect containing both the current rect
// and the given point.
func (self Rect) Extend(point Point) Rect {
	if point.X < self.Min.X { self.Min.X = point.X }
	if point.Y < self.Min.Y { self.Min.Y = point.Y }
	if point.X > self.Max.X { self.Max.X = point.X }
	if point.Y > self.Max.Y { self.Max.Y = point.Y }
	return self
}

// Returns the bounding box of the rect after transforming its
// four corners with the given matrix.
func (self Rect) Transform(matrix Matrix) Rect {
	first := self.Min.Transform(matrix)
	out := Rect{ Min: first, Max: first }
	out = out.Extend(Point{ X: self.Max.X, Y: self.Min.Y }.Transform(matrix))
	out = out.Extend(Point{ X: self.Min.X, Y: self.Max.Y }.Transform(matrix))
	out = out.Extend(self.Max.Transform(matrix))
	return out
}
