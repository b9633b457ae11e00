package mask

import "image"
import "image/draw"

import "golang.org/x/image/vector"
import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/xtt/fract"

var _ Rasterizer = (*MonoRasterizer)(nil)

// The MonoRasterizer wraps [golang.org/x/image/vector.Rasterizer] and
// thresholds its coverage into a 1-bit bitmap: pixels covered at
// least halfway are set.
type MonoRasterizer struct {
	rasterizer vector.Rasterizer
	normOffset fract.Point // offset to normalize points to the positive quadrant
	alpha *image.Alpha
}

// Coverage threshold for a pixel to be set.
const monoThreshold = 0x80

// Moves the current position to the given point.
func (self *MonoRasterizer) MoveTo(point fract.Point) {
	x, y := self.norm(point)
	self.rasterizer.MoveTo(x, y)
}

// Creates a straight boundary from the current position to the given point.
func (self *MonoRasterizer) LineTo(point fract.Point) {
	x, y := self.norm(point)
	self.rasterizer.LineTo(x, y)
}

// Creates a quadratic Bézier curve to the given target passing
// through the given control point.
func (self *MonoRasterizer) QuadTo(control, target fract.Point) {
	cx, cy := self.norm(control)
	tx, ty := self.norm(target)
	self.rasterizer.QuadTo(cx, cy, tx, ty)
}

// Creates a cubic Bézier curve to the given target passing through
// the given control points.
func (self *MonoRasterizer) CubeTo(controlA, controlB, target fract.Point) {
	cax, cay := self.norm(controlA)
	cbx, cby := self.norm(controlB)
	tx , ty  := self.norm(target)
	self.rasterizer.CubeTo(cax, cay, cbx, cby, tx, ty)
}

func (self *MonoRasterizer) norm(point fract.Point) (float32, float32) {
	point = point.AddUnits(self.normOffset.X, self.normOffset.Y)
	return point.X.ToFloat32(), point.Y.ToFloat32()
}

// Satisfies the [Rasterizer] interface.
func (self *MonoRasterizer) Rasterize(outline sfnt.Segments) (*Bitmap, error) {
	fbounds := outline.Bounds()
	bounds := fract.UnitsToRect(
		fract.FromFixed(fbounds.Min.X), fract.FromFixed(fbounds.Min.Y),
		fract.FromFixed(fbounds.Max.X), fract.FromFixed(fbounds.Max.Y),
	)

	var width, height int
	var origin image.Point
	width, height, self.normOffset, origin = figureOutBounds(bounds)
	bitmap := NewBitmap(width, height)
	bitmap.Left = origin.X
	bitmap.Top  = -origin.Y
	if width == 0 || height == 0 { return bitmap, nil }

	self.rasterizer.Reset(width, height)
	self.rasterizer.DrawOp = draw.Src
	if self.alpha == nil || self.alpha.Rect.Dx() < width || self.alpha.Rect.Dy() < height {
		self.alpha = image.NewAlpha(image.Rect(0, 0, width, height))
	}
	alpha := self.alpha.SubImage(image.Rect(0, 0, width, height)).(*image.Alpha)
	processOutline(self, outline)
	self.rasterizer.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < height; y++ {
		row := alpha.Pix[y*alpha.Stride : y*alpha.Stride + width]
		for x, value := range row {
			if value >= monoThreshold { bitmap.SetBit(x, y) }
		}
	}
	return bitmap, nil
}
