package xtt

import "math"

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/ttcap"
import "github.com/tinne26/xtt/xlfd"

// Units per em assumed for faces that don't declare any.
const fallbackUnitsPerEm = 2048

// Whether the pixel matrix of the values is a plain scaling.
func isMatrixUnit(vals *xlfd.Values) bool {
	m := vals.PixelMatrix
	return m[0] == m[3] && m[1] == 0 && m[2] == 0
}

// Transforms the box corners with the pixel matrix and returns the
// extents of the result in pixels, as (lsb, rsb, descent, ascent).
// The box is given in font units and scaled by the given factor.
func computeNewExtents(pixel [4]float64, scale, lsb, rsb, descent, ascent float64) (int, int, int, int) {
	transform := func(x, y float64) (float64, float64) {
		return pixel[0]*x + pixel[2]*y, pixel[1]*x + pixel[3]*y
	}

	x, y := transform(lsb, -descent)
	newLsb, newRsb := x, x
	newDesc, newAsc := -y, y
	for _, corner := range [3][2]float64{ {lsb, ascent}, {rsb, -descent}, {rsb, ascent} } {
		x, y = transform(corner[0], corner[1])
		newLsb = min(newLsb, x)
		newRsb = max(newRsb, x)
		newDesc = max(newDesc, -y)
		newAsc = max(newAsc, y)
	}

	return int(math.Floor(newLsb*scale + 0.5)),
		int(math.Floor(newRsb*scale + 0.5)),
		int(math.Ceil(newDesc*scale - 0.5)),
		int(math.Floor(newAsc*scale + 0.5))
}

// Splits the auto italic shear of a cell into the shifts applied to
// the left and right side bearings of bitmap glyphs.
func autoItalicShifts(autoItalic float64, ascent, descent int) (int, int) {
	height := ascent + descent
	if autoItalic == 0 || height <= 0 { return 0, 0 }
	total := int(float64(height)*math.Abs(autoItalic) + 0.5)
	rsbShift := int(float64(total)*float64(ascent)/float64(height) + 0.5)
	lsbShift := -(total - rsbShift)
	if autoItalic > 0 { return lsbShift, rsbShift }
	return -rsbShift, -lsbShift
}

type headerMetrics struct {
	ascent, descent int
	minLsb, maxRsb int
	width int
	rawWidth int
	advance float64
	unitX, unitY float64
	averageWidth int
	rawAverageWidth int

	// forced constant spacing values
	fcWidth, fcLsb, fcRsb, fcRawWidth int
}

// Computes the shared metrics of a new instance from the face's
// global metrics and stores them on the instance.
func (self *Instance) initHeader(vals *xlfd.Values, baseHeight float64) {
	var hdr headerMetrics
	if self.face.bitmap {
		hdr = self.bitmapHeader(vals, baseHeight)
	} else {
		hdr = self.outlineHeader(vals, baseHeight)
	}

	self.pixelSize = baseHeight
	self.advance = hdr.advance
	if hdr.unitX != 0 {
		self.pixelWidthUnitX = hdr.unitX/baseHeight
	} else {
		self.pixelWidthUnitY = hdr.unitY/baseHeight
	}
	self.header = &cache.CharInfo{
		LeftSideBearing: int16(hdr.minLsb),
		RightSideBearing: int16(hdr.maxRsb),
		CharacterWidth: int16(hdr.width),
		Ascent: int16(hdr.ascent),
		Descent: int16(hdr.descent),
		Attributes: uint16(int16(hdr.rawWidth)),
	}
	self.averageWidth = hdr.averageWidth
	self.rawAverageWidth = hdr.rawAverageWidth
	if self.cap.HasForceConstantSpacing() {
		self.forceConstant = &cache.CharInfo{
			LeftSideBearing: int16(hdr.fcLsb),
			RightSideBearing: int16(hdr.fcRsb),
			CharacterWidth: int16(hdr.fcWidth),
			Ascent: int16(hdr.ascent),
			Descent: int16(hdr.descent),
			Attributes: uint16(int16(hdr.fcRawWidth)),
		}
	}
	self.face.cache.logger.Debug("header metrics",
		"path", self.face.path, "ascent", hdr.ascent, "descent", hdr.descent,
		"lsb", hdr.minLsb, "rsb", hdr.maxRsb, "width", hdr.width, "raw", hdr.rawWidth)
}

func (self *Instance) outlineHeader(vals *xlfd.Values, baseHeight float64) headerMetrics {
	info := self.face.engine.Info()
	tuning := &self.cap
	sbw, sbh := tuning.ScaleBBoxWidth, tuning.ScaleBBoxHeight
	upm := info.UnitsPerEm
	if upm == 0 { upm = fallbackUnitsPerEm }
	scale := 1.0/float64(upm)
	pixel := vals.PixelMatrix

	var hdr headerMetrics
	tmpAscent := float64(max(info.BBox.YMax, info.Ascender))
	tmpDescent := float64(max(-info.BBox.YMin, -info.Descender))
	lsb := float64(info.BBox.XMin)*sbw
	rsb := float64(max(info.BBox.XMax, info.MaxAdvanceWidth))*sbw
	hdr.minLsb, hdr.maxRsb, hdr.descent, hdr.ascent = computeNewExtents(pixel, scale, lsb, rsb, tmpDescent, tmpAscent)

	maxAdvanceWidth := float64(info.MaxAdvanceWidth)
	maxAdvanceHeight := float64(info.MaxAdvanceHeight)
	if maxAdvanceHeight == 0 { maxAdvanceHeight = tmpAscent + tmpDescent }

	var widthX float64
	switch {
	case pixel[1] == 0:
		hdr.unitX = math.Abs(pixel[0])
		widthX = maxAdvanceWidth*sbw*hdr.unitX
	case pixel[3] == 0:
		hdr.unitY = math.Abs(pixel[2])
		widthX = maxAdvanceHeight*sbh*hdr.unitY
	default:
		hdr.unitX = math.Abs(pixel[0] - pixel[1]*pixel[2]/pixel[3])
		hdr.unitY = math.Abs(pixel[2] - pixel[3]*pixel[0]/pixel[1])
		widthX = maxAdvanceWidth*sbw*hdr.unitX
		widthY := maxAdvanceHeight*sbh*hdr.unitY
		if widthY < widthX {
			widthX, hdr.unitX = widthY, 0
		} else {
			hdr.unitY = 0
		}
	}

	hdr.advance = widthX*scale
	hdr.width = int(math.Floor(hdr.advance + 0.5))
	newWidth := hdr.width
	dsShift := 0
	if tuning.Has(ttcap.DoubleStrike) { dsShift = tuning.DoubleStrikeShift }
	if tuning.Has(ttcap.DoubleStrikeCorrectBBoxWidth) { newWidth += dsShift }
	newWidth += tuning.AdjustBBoxWidthByPixel
	ratio := widthRatio(hdr.width, newWidth)
	hdr.width = newWidth

	var fcWidthX float64
	if tuning.HasForceConstantSpacing() {
		var fcLsbX, fcRsbX float64
		if hdr.unitX != 0 {
			fcWidthX = maxAdvanceWidth*tuning.ForceConstantScaleBBoxWidth*hdr.unitX
			fcLsbX = maxAdvanceWidth*tuning.ForceConstantScaleLSB*hdr.unitX
			fcRsbX = maxAdvanceWidth*tuning.ForceConstantScaleRSB*hdr.unitX
		} else {
			fcWidthX = maxAdvanceHeight*tuning.ForceConstantScaleBBoxHeight*hdr.unitY
			fcLsbX = maxAdvanceHeight*tuning.ForceConstantScaleLSB*hdr.unitY
			fcRsbX = maxAdvanceHeight*tuning.ForceConstantScaleRSB*hdr.unitY
		}
		hdr.fcWidth = int(math.Floor(fcWidthX*scale + 0.5))
		fcNewWidth := hdr.fcWidth
		if tuning.Has(ttcap.DoubleStrikeCorrectBBoxWidth) { fcNewWidth += dsShift }
		fcNewWidth += tuning.ForceConstantAdjustWidthByPixel
		fcRatio := widthRatio(hdr.fcWidth, fcNewWidth)
		hdr.fcWidth = fcNewWidth
		hdr.fcRawWidth = int(math.Floor(fcWidthX*scale*fcRatio*1000/baseHeight + 0.5))

		hdr.fcLsb, hdr.fcRsb = hdr.minLsb, hdr.maxRsb
		if tuning.Has(ttcap.ForceConstantLSB) { hdr.fcLsb = int(math.Floor(fcLsbX*scale + 0.5)) }
		if tuning.Has(ttcap.ForceConstantRSB) { hdr.fcRsb = int(math.Floor(fcRsbX*scale + 0.5)) }
	}

	if isMatrixUnit(vals) {
		tuning.LSBShiftOfBitmapAutoItalic, tuning.RSBShiftOfBitmapAutoItalic =
			autoItalicShifts(tuning.AutoItalic, hdr.ascent, hdr.descent)
	}

	hdr.maxRsb += dsShift + tuning.AdjustRightSideBearingByPixel
	hdr.minLsb += tuning.AdjustLeftSideBearingByPixel
	hdr.fcRsb += dsShift + tuning.ForceConstantAdjustRSBByPixel
	hdr.fcLsb += tuning.ForceConstantAdjustLSBByPixel

	hdr.averageWidth = int(math.Floor(10*widthX*scale*ratio + 0.5))
	hdr.rawWidth = int(math.Floor(widthX*scale*ratio*1000/baseHeight + 0.5))
	hdr.rawAverageWidth = int(math.Floor(widthX*scale*ratio*10*1000/baseHeight + 0.5))
	return hdr
}

func (self *Instance) bitmapHeader(vals *xlfd.Values, baseHeight float64) headerMetrics {
	tuning := &self.cap
	sbw := tuning.ScaleBBoxWidth
	metrics := self.face.engine.SizeMetrics()
	maxAdvance := float64(metrics.MaxAdvance)

	var hdr headerMetrics
	hdr.width = int(math.Floor(maxAdvance*sbw/64 + 0.5))
	hdr.descent = int(-metrics.Descender)/64
	hdr.ascent = int(metrics.Ascender)/64
	hdr.fcWidth = int(math.Floor(maxAdvance*tuning.ForceConstantScaleBBoxWidth/64 + 0.5))
	if vals.Width != 0 {
		hdr.averageWidth = int(math.Floor(float64(vals.Width)*sbw + 0.5))
	} else {
		hdr.averageWidth = int(math.Floor(10*maxAdvance*sbw/64 + 0.5))
	}
	hdr.advance = math.Floor(maxAdvance/64 + 0.5)
	hdr.unitX = vals.PixelMatrix[0]
	if hdr.unitX == 0 { hdr.unitY = vals.PixelMatrix[2] }

	hdr.minLsb, hdr.maxRsb = 0, hdr.width
	hdr.fcLsb, hdr.fcRsb = 0, hdr.fcWidth
	if tuning.Has(ttcap.ForceConstantLSB) {
		hdr.fcLsb = int(math.Floor(maxAdvance*tuning.ForceConstantScaleLSB/64 + 0.5))
	}
	if tuning.Has(ttcap.ForceConstantRSB) {
		hdr.fcRsb = int(math.Floor(maxAdvance*tuning.ForceConstantScaleRSB/64 + 0.5))
	}

	lsbShift, rsbShift := autoItalicShifts(tuning.AutoItalic, hdr.ascent, hdr.descent)
	tuning.LSBShiftOfBitmapAutoItalic, tuning.RSBShiftOfBitmapAutoItalic = lsbShift, rsbShift

	baseWidth, baseFcWidth := hdr.width, hdr.fcWidth
	dsShift := 0
	if tuning.Has(ttcap.DoubleStrike) { dsShift = tuning.DoubleStrikeShift }
	if tuning.Has(ttcap.DoubleStrikeCorrectBBoxWidth) {
		hdr.width += dsShift
		hdr.fcWidth += dsShift
	}
	hdr.width += tuning.AdjustBBoxWidthByPixel
	hdr.fcWidth += tuning.ForceConstantAdjustWidthByPixel
	if baseHeight > 0 {
		ratio := widthRatio(baseWidth, hdr.width)
		hdr.rawWidth = int(math.Floor(1000*maxAdvance*sbw*ratio/64/baseHeight))
		fcRatio := widthRatio(baseFcWidth, hdr.fcWidth)
		hdr.fcRawWidth = int(math.Floor(1000*maxAdvance*tuning.ForceConstantScaleBBoxWidth*fcRatio/64/baseHeight))
	}
	hdr.maxRsb += dsShift + tuning.AdjustRightSideBearingByPixel + rsbShift
	hdr.minLsb += tuning.AdjustLeftSideBearingByPixel + lsbShift
	hdr.fcRsb += dsShift + tuning.ForceConstantAdjustRSBByPixel + rsbShift
	hdr.fcLsb += tuning.ForceConstantAdjustLSBByPixel + lsbShift
	return hdr
}
