package xtt

import "math"

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/fract"
import "github.com/tinne26/xtt/mask"
import "github.com/tinne26/xtt/ttcap"

// Pixel metrics derived from an outline box in 26.6 units.
type boxMetrics struct {
	lsb, rsb int
	ascent, descent int
	center float64
}

func metricsFromBox(box fract.Rect) boxMetrics {
	return boxMetrics{
		lsb: (box.Min.X + 32).Floor().ToIntFloor(),
		rsb: (box.Max.X + 32).Floor().ToIntFloor(),
		ascent: (box.Max.Y + 32).Floor().ToIntFloor(),
		descent: (-box.Min.Y - 32).Ceil().ToIntFloor(),
		center: float64(box.Max.X + box.Min.X)/2/64,
	}
}

// Center of the ink of a bitmap glyph, in pixels.
func bitmapCenter(metrics *font.GlyphMetrics) float64 {
	return float64(2*int(metrics.HoriBearingX) + int(metrics.Width))/2/64
}

func widthRatio(width, newWidth int) float64 {
	if width == 0 { return 1.0 }
	return float64(newWidth)/float64(width)
}

// Computes the metrics of the glyph and, unless only metrics are
// requested, renders its bitmap into the glyph. When hasMetrics is
// set the glyph metrics are taken as already computed.
func (self *Instance) rasterise(index font.GlyphIndex, flags GlyphFlags, glyph *cache.Glyph, hasMetrics bool) error {
	err := self.Activate()
	if err != nil { return err }

	engine := self.face.engine
	info := engine.Info()
	tuning := &self.cap
	dsShift := 0
	if tuning.Has(ttcap.DoubleStrike) { dsShift = tuning.DoubleStrikeShift }

	var sbit font.GlyphMetrics
	sbitAvailable := false
	if self.loadFlags & font.LoadNoBitmap == 0 && self.strikeIndex >= 0 {
		sbit, sbitAvailable = engine.SbitMetrics(index)
	}

	forced := flags & ForceConstantSpacing != 0 && self.forceConstant != nil
	var loaded *font.Glyph
	bShift := 0
	if !hasMetrics {
		switch {
		case self.spacing == Charcell || flags & GetDummy != 0:
			glyph.Metrics = *self.header
		case forced:
			glyph.Metrics = *self.forceConstant
		default:
			loaded, bShift, err = self.computeMetrics(index, &glyph.Metrics, sbit, sbitAvailable, dsShift)
			if err != nil { return err }
		}
	}
	if flags & metricsOnly != 0 { return nil }

	correct := self.spacing == Charcell || forced
	if !correct && !sbitAvailable && tuning.Has(ttcap.IsVeryLazy) && info.SFNT {
		correct = true
	}

	// render
	isOutline := -1
	var bitmap *mask.Bitmap
	if flags & GetDummy == 0 {
		if loaded == nil {
			loaded, err = engine.LoadGlyph(index, self.loadFlags)
			if err != nil { return engineError("load glyph", err) }
		}
		if loaded.Format == font.FormatOutline {
			cbox := loaded.Outline.Bounds()
			if fract.FromFixed(cbox.Max.Y).Ceil() - fract.FromFixed(cbox.Min.Y).Floor() != 0 {
				bitmap, err = engine.RenderMono(loaded)
				if err != nil { return engineError("render glyph", err) }
				isOutline = 1
			}
		} else {
			bitmap, err = engine.RenderMono(loaded)
			if err != nil { return engineError("render glyph", err) }
			isOutline = 0
		}
	}

	if tuning.Has(ttcap.MonoCenter) && hasMetrics {
		center := 0.0
		switch isOutline {
		case 1:
			box := mask.OutlineBounds(loaded.Outline)
			if correct {
				lazyBox, _, err := self.veryLazyBBox(index)
				if err == nil { box = lazyBox }
			}
			center = metricsFromBox(box).center
		case 0:
			center = bitmapCenter(&loaded.Metrics)
		}
		bShift = int(math.Floor(self.advance/2 - center + 0.5))
	}

	metrics := &glyph.Metrics
	lsb, rsb := int(metrics.LeftSideBearing), int(metrics.RightSideBearing)
	ascent, descent := int(metrics.Ascent), int(metrics.Descent)
	width, height := rsb - lsb, ascent + descent
	bytesPerRow := rowBytes(max(1, width), self.format.Glyph)
	rows := max(1, height)
	glyph.Bits = make([]byte, rows*bytesPerRow)
	if isOutline == -1 || width <= 0 || height <= 0 { return nil }
	if bitmap.Width <= 0 || bitmap.Rows <= 0 { return nil }

	dx := bitmap.Left - lsb
	dy := ascent - bitmap.Top
	if tuning.Has(ttcap.MonoCenter) { dx += bShift }

	if correct && isOutline == 1 {
		exact := metricsFromBox(mask.OutlineBounds(loaded.Outline))
		chipLsb, chipRsb := lsb, rsb
		if tuning.Has(ttcap.DoubleStrike) { chipRsb -= dsShift }
		if tuning.Has(ttcap.MonoCenter) {
			chipLsb -= bShift
			chipRsb -= bShift
		}
		chipLeft := exact.lsb - chipLsb
		chipRight := chipRsb - exact.rsb
		if forced {
			if tuning.ForceConstantAdjustLSBByPixel != 0 || tuning.ForceConstantAdjustRSBByPixel != 0 {
				chipLeft, chipRight = 0, 0
			}
		} else if tuning.AdjustLeftSideBearingByPixel != 0 || tuning.AdjustRightSideBearingByPixel != 0 {
			chipLeft, chipRight = 0, 0
		}
		chipTop := ascent - exact.ascent
		chipBottom := descent - exact.descent

		if chipLeft < 0 && 0 < chipRight {
			dx += 1
		} else if chipRight < 0 && 0 < chipLeft {
			dx -= 1
		}
		if chipTop < 0 && 0 < chipBottom {
			dy += 1
		} else if chipBottom < 0 && 0 < chipTop {
			dy -= 1
		}
	}

	mask.Blit(glyph.Bits, bytesPerRow, rows, bitmap, dx, dy)

	// post-processing
	for i := 0; i < dsShift; i++ {
		mask.Embolden(glyph.Bits, bytesPerRow, rows, tuning.Has(ttcap.DoubleStrikeEdgeLeft))
	}
	lsbShift, rsbShift := tuning.LSBShiftOfBitmapAutoItalic, tuning.RSBShiftOfBitmapAutoItalic
	if isOutline == 0 && (lsbShift != 0 || rsbShift != 0) {
		totalHeight := int(self.header.Ascent) + int(self.header.Descent)
		offset := int(self.header.Ascent) - ascent
		mask.Shear(glyph.Bits, bytesPerRow, rows, rsbShift - lsbShift, totalHeight, offset, tuning.AutoItalic)
	}
	if self.format.Bit == LSBFirst { mask.ReverseBits(glyph.Bits) }
	if self.format.Byte != self.format.Bit {
		switch self.format.Scan {
		case 2: mask.SwapTwoBytes(glyph.Bits)
		case 4: mask.SwapFourBytes(glyph.Bits)
		}
	}
	return nil
}

// Computes the per glyph metrics from the sbit metrics, the very
// lazy box or the loaded glyph, in that order of preference. Returns
// the loaded glyph, if any, and the mono centering shift.
func (self *Instance) computeMetrics(index font.GlyphIndex, out *cache.CharInfo, sbit font.GlyphMetrics, sbitAvailable bool, dsShift int) (*font.Glyph, int, error) {
	engine := self.face.engine
	tuning := &self.cap
	sbw, sbh := tuning.ScaleBBoxWidth, tuning.ScaleBBoxHeight

	var loaded *font.Glyph
	var bitmapMetrics *font.GlyphMetrics
	var box fract.Rect
	var horiAdvance, vertAdvance fract.Unit
	if sbitAvailable {
		bitmapMetrics = &sbit
	} else {
		lazy := false
		if tuning.Has(ttcap.IsVeryLazy) {
			var err error
			box, horiAdvance, err = self.veryLazyBBox(index)
			lazy = (err == nil)
			vertAdvance = -1
		}
		if !lazy {
			var err error
			loaded, err = engine.LoadGlyph(index, self.loadFlags)
			if err != nil { return nil, 0, engineError("load glyph", err) }
			if loaded.Format == font.FormatBitmap {
				bitmapMetrics = &loaded.Metrics
			} else {
				box = mask.OutlineBounds(loaded.Outline)
				horiAdvance = loaded.Metrics.HoriAdvance
				vertAdvance = loaded.Metrics.VertAdvance
			}
		}
	}

	var lsb, rsb, ascent, descent, width, raw int
	var center float64
	if bitmapMetrics != nil {
		bx, w := int(bitmapMetrics.HoriBearingX), int(bitmapMetrics.Width)
		by, h := int(bitmapMetrics.HoriBearingY), int(bitmapMetrics.Height)
		lsb = bx/64
		rsb = (w + bx)/64
		center = bitmapCenter(bitmapMetrics)
		width = int(math.Floor(float64(bitmapMetrics.HoriAdvance)*sbw/64 + 0.5))
		ascent = by/64
		descent = (h - by)/64

		newWidth := width
		if tuning.Has(ttcap.DoubleStrikeCorrectBBoxWidth) { newWidth += dsShift }
		newWidth += tuning.AdjustBBoxWidthByPixel
		ratio := widthRatio(width, newWidth)
		width = newWidth

		rsb += dsShift + tuning.AdjustRightSideBearingByPixel
		lsb += tuning.AdjustLeftSideBearingByPixel
		rsb += tuning.RSBShiftOfBitmapAutoItalic
		lsb += tuning.LSBShiftOfBitmapAutoItalic
		raw = int(math.Floor(1000*float64(bitmapMetrics.HoriAdvance)*sbw*ratio/64/self.pixelSize))
	} else {
		boxed := metricsFromBox(box)
		lsb, rsb = boxed.lsb, boxed.rsb
		ascent, descent = boxed.ascent, boxed.descent
		center = boxed.center

		var advance float64 // in pixels, along the baseline
		vertical := self.pixelWidthUnitX == 0
		if !vertical {
			advance = float64(horiAdvance)*sbw*self.pixelWidthUnitX/64
		} else {
			advance = float64(vertAdvance)*sbh*self.pixelWidthUnitY/64
		}
		width = int(math.Floor(advance + 0.5))
		if vertical && width <= 0 { width = int(self.header.CharacterWidth) }

		newWidth := width
		if tuning.Has(ttcap.DoubleStrikeCorrectBBoxWidth) { newWidth += dsShift }
		newWidth += tuning.AdjustBBoxWidthByPixel
		ratio := widthRatio(width, newWidth)
		width = newWidth

		raw = int(math.Floor(1000*advance*ratio/self.pixelSize + 0.5))
		if vertical && raw <= 0 { raw = self.header.RawWidth() }
		rsb += dsShift + tuning.AdjustRightSideBearingByPixel
		lsb += tuning.AdjustLeftSideBearingByPixel
	}

	*out = cache.CharInfo{
		LeftSideBearing: int16(lsb),
		RightSideBearing: int16(rsb),
		CharacterWidth: int16(width),
		Ascent: int16(ascent),
		Descent: int16(descent),
		Attributes: uint16(int16(raw)),
	}
	if self.spacing != Proportional {
		out.CharacterWidth = self.header.CharacterWidth
	}
	bShift := 0
	if tuning.Has(ttcap.MonoCenter) {
		bShift = int(math.Floor(self.advance/2 - center + 0.5))
		out.LeftSideBearing += int16(bShift)
		out.RightSideBearing += int16(bShift)
	}
	return loaded, bShift, nil
}

// Bytes per row for the given width in pixels and glyph pad.
func rowBytes(width, pad int) int {
	return ((width + pad*8 - 1) >> 3) & -pad
}
