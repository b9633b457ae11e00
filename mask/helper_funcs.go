package mask

import "image"

import "github.com/tinne26/xtt/fract"

// Given the outline control box, it returns the bounding integer width
// and height, the normalization offset to be applied to keep the
// coordinates in the positive plane, and the pixel position of the
// top-left corner relative to the glyph origin (y growing downwards).
func figureOutBounds(bounds fract.Rect) (int, int, fract.Point, image.Point) {
	floorMinX := bounds.Min.X.Floor()
	floorMinY := bounds.Min.Y.Floor()
	var corner image.Point
	corner.X = floorMinX.ToIntFloor()
	corner.Y = floorMinY.ToIntFloor()

	normOffset := fract.Point{ X: -floorMinX, Y: -floorMinY }
	width  := (bounds.Max.X + normOffset.X).Ceil()
	height := (bounds.Max.Y + normOffset.Y).Ceil()
	return width.ToIntFloor(), height.ToIntFloor(), normOffset, corner
}
