package xtt

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/ttcap"
import "github.com/tinne26/xtt/xlfd"

// Font wide information: character ranges, bounds, accelerator
// flags and properties.
type FontInfo struct {
	FirstCol, LastCol uint16
	FirstRow, LastRow uint16
	DefaultChar uint32
	Spacing Spacing

	MinBounds, MaxBounds cache.CharInfo
	InkMinBounds, InkMaxBounds cache.CharInfo
	FontAscent, FontDescent int
	MaxOverlap int

	NoOverlap bool
	ConstantMetrics bool
	TerminalFont bool
	ConstantWidth bool
	InkInside bool
	InkMetrics bool

	Properties []Property
	atoms *AtomTable
}

const (
	boundsMin = 32767
	boundsMax = -32767
)

// Scans every code of the font to compute the min and max bounds
// and the average width, which is stored in vals.Width. Rows that
// are entirely inside (or outside) the forced constant spacing range
// are counted from their first glyph alone.
func (self *Font) computeBounds(vals *xlfd.Values) {
	info := self.info
	tuning := &self.instance.cap
	minBounds := cache.CharInfo{
		LeftSideBearing: boundsMin, RightSideBearing: boundsMin,
		CharacterWidth: boundsMin, Ascent: boundsMin, Descent: boundsMin,
		Attributes: boundsMin,
	}
	maxBounds := cache.CharInfo{
		LeftSideBearing: boundsMax, RightSideBearing: boundsMax,
		CharacterWidth: boundsMax, Ascent: boundsMax, Descent: boundsMax,
		Attributes: 0x8001, // boundsMax as int16
	}
	maxOverlap := boundsMax
	var swidth, total, n int
	seen := false

	fcBegin, fcEnd := tuning.ForceConstantSpacingBegin, tuning.ForceConstantSpacingEnd
	outside := tuning.Has(ttcap.ForceConstantOutside)

	var prev *cache.CharInfo
	skipOK := false
	for row := int(info.FirstRow); row <= int(info.LastRow); row++ {
		if skipOK && prev != nil {
			base := row << 8
			var whole bool
			if outside {
				whole = fcBegin < base || base < (fcEnd & 0xFF00)
			} else {
				whole = fcBegin < base && base < (fcEnd & 0xFF00)
			}
			if whole && prev.CharacterWidth != 0 {
				count := int(info.LastCol) - int(info.FirstCol) + 1
				n += count
				swidth += count*abs(int(prev.CharacterWidth))
				total += count*int(prev.CharacterWidth)
				continue
			}
			skipOK = false
		}

		for col := int(info.FirstCol); col <= int(info.LastCol); col++ {
			code := uint32(row << 8 | col)
			flags := self.codeFlags(code)
			var metrics *cache.CharInfo
			if !skipOK || flags == 0 {
				var err error
				metrics, err = self.GlyphMetrics(code, flags)
				if err != nil { metrics = nil }
			} else {
				metrics = prev
			}
			if metrics == nil { continue }
			prev = metrics
			seen = true

			adjustMin(&minBounds, metrics)
			adjustMax(&maxBounds, metrics)
			overlap := int(metrics.RightSideBearing) - int(metrics.CharacterWidth)
			maxOverlap = max(maxOverlap, overlap)
			if metrics.CharacterWidth == 0 { continue }
			n += 1
			swidth += abs(int(metrics.CharacterWidth))
			total += int(metrics.CharacterWidth)
			if flags != 0 { skipOK = true }
		}
	}

	width := 0
	if n != 0 {
		width = (swidth*10 + n/2)/n
		if total < 0 { width = -width }
	}
	vals.Width = width

	if !seen {
		minBounds, maxBounds = cache.CharInfo{}, cache.CharInfo{}
		maxOverlap = 0
	}
	info.MinBounds, info.MaxBounds = minBounds, maxBounds
	info.MaxOverlap = maxOverlap
}

func adjustMin(bounds, metrics *cache.CharInfo) {
	bounds.LeftSideBearing = min(bounds.LeftSideBearing, metrics.LeftSideBearing)
	bounds.RightSideBearing = min(bounds.RightSideBearing, metrics.RightSideBearing)
	bounds.CharacterWidth = min(bounds.CharacterWidth, metrics.CharacterWidth)
	bounds.Ascent = min(bounds.Ascent, metrics.Ascent)
	bounds.Descent = min(bounds.Descent, metrics.Descent)
	bounds.Attributes = uint16(min(int16(bounds.Attributes), int16(metrics.Attributes)))
}

func adjustMax(bounds, metrics *cache.CharInfo) {
	bounds.LeftSideBearing = max(bounds.LeftSideBearing, metrics.LeftSideBearing)
	bounds.RightSideBearing = max(bounds.RightSideBearing, metrics.RightSideBearing)
	bounds.CharacterWidth = max(bounds.CharacterWidth, metrics.CharacterWidth)
	bounds.Ascent = max(bounds.Ascent, metrics.Ascent)
	bounds.Descent = max(bounds.Descent, metrics.Descent)
	bounds.Attributes = uint16(max(int16(bounds.Attributes), int16(metrics.Attributes)))
}

func abs(x int) int {
	if x < 0 { return -x }
	return x
}

// Derives the accelerator flags from the bounds.
func (self *FontInfo) computeAccelerators() {
	minB, maxB := &self.MinBounds, &self.MaxBounds
	self.NoOverlap = self.MaxOverlap <= int(minB.LeftSideBearing)
	self.ConstantMetrics = *minB == *maxB
	self.TerminalFont = self.ConstantMetrics &&
		maxB.LeftSideBearing == 0 &&
		maxB.RightSideBearing == maxB.CharacterWidth &&
		int(maxB.Ascent) == self.FontAscent &&
		int(maxB.Descent) == self.FontDescent
	self.ConstantWidth = minB.CharacterWidth == maxB.CharacterWidth
	self.InkInside = minB.LeftSideBearing >= 0 &&
		self.MaxOverlap <= 0 &&
		int(minB.Ascent) >= -self.FontDescent &&
		int(maxB.Ascent) <= self.FontAscent &&
		-int(minB.Descent) <= self.FontAscent &&
		int(maxB.Descent) <= self.FontDescent
}

// Number of codes the font spans.
func (self *FontInfo) NumChars() int {
	cols := int(self.LastCol) - int(self.FirstCol) + 1
	rows := int(self.LastRow) - int(self.FirstRow) + 1
	if cols <= 0 || rows <= 0 { return 0 }
	return cols*rows
}
