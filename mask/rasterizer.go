package mask

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/xtt/fract"

// Rasterizer is the interface for outline to monochrome bitmap
// conversion. Outlines use the [sfnt.Segments] conventions: 26.6
// coordinates with y growing downwards, relative to the glyph origin.
//
// Rasterizers can't be used concurrently.
type Rasterizer interface {
	// Rasterizes the given outline. The returned bitmap covers the
	// pixel-aligned control box of the outline.
	Rasterize(sfnt.Segments) (*Bitmap, error)
}

type vectorTracer interface {
	// Move to the given coordinate.
	MoveTo(fract.Point)

	// Create a segment to the given coordinate.
	LineTo(fract.Point)

	// Conic Bézier curve (also called quadratic). The first parameter
	// is the control coordinate, and the second one the final target.
	QuadTo(fract.Point, fract.Point)

	// Cubic Bézier curve. The first two parameters are the control
	// coordinates, and the third one is the final target.
	CubeTo(fract.Point, fract.Point, fract.Point)
}

// Rasterizes the outline with a default [MonoRasterizer]. Outlines
// without lines or curves (e.g.: space glyphs) produce an empty
// bitmap positioned at the origin.
func RasterizeMono(outline sfnt.Segments) (*Bitmap, error) {
	var rasterizer MonoRasterizer
	return Rasterize(outline, &rasterizer)
}

// Rasterizes the outline with the given rasterizer, skipping
// outlines that contain nothing to draw.
func Rasterize(outline sfnt.Segments, rasterizer Rasterizer) (*Bitmap, error) {
	for _, segment := range outline {
		if segment.Op == sfnt.SegmentOpMoveTo { continue }
		return rasterizer.Rasterize(outline)
	}
	return &Bitmap{}, nil
}

// Calls MoveTo(), LineTo(), QuadTo() and CubeTo() methods on the
// tracer, as corresponding, for each segment in the glyph outline.
func processOutline(tracer vectorTracer, outline sfnt.Segments) {
	for _, segment := range outline {
		switch segment.Op {
		case sfnt.SegmentOpMoveTo:
			tracer.MoveTo(argPoint(segment, 0))
		case sfnt.SegmentOpLineTo:
			tracer.LineTo(argPoint(segment, 0))
		case sfnt.SegmentOpQuadTo:
			tracer.QuadTo(argPoint(segment, 0), argPoint(segment, 1))
		case sfnt.SegmentOpCubeTo:
			tracer.CubeTo(argPoint(segment, 0), argPoint(segment, 1), argPoint(segment, 2))
		default:
			panic("unexpected segment.Op case")
		}
	}
}

func argPoint(segment sfnt.Segment, i int) fract.Point {
	return fract.Point{ X: fract.Unit(segment.Args[i].X), Y: fract.Unit(segment.Args[i].Y) }
}
