package xtt

import "errors"

import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/fract"

var errNoLazyMetrics = errors.New("xtt: very lazy metrics unavailable")

// Approximates the bounding box of a glyph from its hmtx entry and
// the face's global vertical extents, without loading the outline.
// Returns the box in 26.6 pixels (y up) and the horizontal advance.
func (self *Instance) veryLazyBBox(index font.GlyphIndex) (fract.Rect, fract.Unit, error) {
	engine := self.face.engine
	info := engine.Info()
	if !info.SFNT || int(index) >= info.NumGlyphs { return fract.Rect{}, 0, errNoLazyMetrics }

	advance, lsb, err := font.HorizontalMetric(engine, index, self.face.numHMetrics)
	if err != nil { return fract.Rect{}, 0, err }
	metrics := engine.SizeMetrics()
	xMax := float64(metrics.XScale.ScaleFUnits(advance))
	xMin := float64(metrics.XScale.ScaleFUnits(lsb))
	yMin := float64(metrics.YScale.ScaleFUnits(info.BBox.YMin))
	yMax := float64(metrics.YScale.ScaleFUnits(info.BBox.YMax))
	horiAdvance := fract.Unit(xMax)

	slant := self.cap.VeryLazySlant
	if slant > 0 {
		xMax += slant*yMax
		xMin += slant*yMin
	} else if slant < 0 {
		xMax += slant*yMin
		xMin += slant*yMax
	}

	box := fract.UnitsToRect(fract.Unit(xMin), fract.Unit(yMin), fract.Unit(xMax), fract.Unit(yMax))
	if self.transform.NonIdentity {
		box = box.Transform(self.transform.Matrix)
	}
	return box, horiAdvance, nil
}
