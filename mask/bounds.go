package mask

import "math"

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/xtt/fract"

// Returns the exact bounding box of the outline, including curve
// extrema instead of control points. The outline is expected in
// y-down coordinates, but the returned box has y growing upwards,
// matching font metrics conventions. Empty outlines return a zero
// rect.
func OutlineBounds(outline sfnt.Segments) fract.Rect {
	var box extents
	var x, y float64
	for _, segment := range outline {
		switch segment.Op {
		case sfnt.SegmentOpMoveTo:
			x, y = argXY(segment, 0)
			box.add(x, y)
		case sfnt.SegmentOpLineTo:
			x, y = argXY(segment, 0)
			box.add(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := argXY(segment, 0)
			fx, fy := argXY(segment, 1)
			box.addQuad(x, y, cx, cy, fx, fy)
			x, y = fx, fy
		case sfnt.SegmentOpCubeTo:
			ax, ay := argXY(segment, 0)
			bx, by := argXY(segment, 1)
			fx, fy := argXY(segment, 2)
			box.addCube(x, y, ax, ay, bx, by, fx, fy)
			x, y = fx, fy
		}
	}
	if !box.set { return fract.Rect{} }

	// flip to y-up
	return fract.UnitsToRect(
		fract.Unit(math.Floor(box.minX)), fract.Unit(math.Floor(-box.maxY)),
		fract.Unit(math.Ceil(box.maxX)), fract.Unit(math.Ceil(-box.minY)),
	)
}

type extents struct {
	set bool
	minX, minY float64
	maxX, maxY float64
}

func (self *extents) add(x, y float64) {
	if !self.set {
		self.minX, self.maxX, self.minY, self.maxY = x, x, y, y
		self.set = true
		return
	}
	self.minX = math.Min(self.minX, x)
	self.maxX = math.Max(self.maxX, x)
	self.minY = math.Min(self.minY, y)
	self.maxY = math.Max(self.maxY, y)
}

func (self *extents) addQuad(x0, y0, cx, cy, x1, y1 float64) {
	self.add(x1, y1)
	for _, t := range quadExtremaT(x0, cx, x1) {
		self.add(quadAt(x0, cx, x1, t), quadAt(y0, cy, y1, t))
	}
	for _, t := range quadExtremaT(y0, cy, y1) {
		self.add(quadAt(x0, cx, x1, t), quadAt(y0, cy, y1, t))
	}
}

func (self *extents) addCube(x0, y0, ax, ay, bx, by, x1, y1 float64) {
	self.add(x1, y1)
	for _, t := range cubeExtremaT(x0, ax, bx, x1) {
		self.add(cubeAt(x0, ax, bx, x1, t), cubeAt(y0, ay, by, y1, t))
	}
	for _, t := range cubeExtremaT(y0, ay, by, y1) {
		self.add(cubeAt(x0, ax, bx, x1, t), cubeAt(y0, ay, by, y1, t))
	}
}

func quadAt(p0, p1, p2, t float64) float64 {
	mt := 1 - t
	return mt*mt*p0 + 2*mt*t*p1 + t*t*p2
}

func cubeAt(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
}

func quadExtremaT(p0, p1, p2 float64) []float64 {
	den := p0 - 2*p1 + p2
	if den == 0 { return nil }
	t := (p0 - p1)/den
	if t <= 0 || t >= 1 { return nil }
	return []float64{t}
}

// Roots in (0, 1) of the derivative of the cubic bezier.
func cubeExtremaT(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2*(p0 - 2*p1 + p2)
	c := p1 - p0
	var roots []float64
	if math.Abs(a) < 1e-12 {
		if b != 0 { roots = append(roots, -c/b) }
	} else {
		disc := b*b - 4*a*c
		if disc < 0 { return nil }
		sq := math.Sqrt(disc)
		roots = append(roots, (-b + sq)/(2*a), (-b - sq)/(2*a))
	}
	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 { out = append(out, t) }
	}
	return out
}

func argXY(segment sfnt.Segment, i int) (float64, float64) {
	return float64(segment.Args[i].X), float64(segment.Args[i].Y)
}
