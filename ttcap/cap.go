package ttcap

// Flags of a [Cap].
type Flags uint16

const (
	DoubleStrike Flags = 1 << iota
	DoubleStrikeEdgeLeft // don't let the bolding bleed past the left edge
	DoubleStrikeCorrectBBoxWidth
	MonoCenter
	IsVeryLazy
	DisableDefaultVeryLazy
	ForceConstantOutside // the forced constant range wraps around
	ForceConstantLSB
	ForceConstantRSB
)

// Per font tuning values. A Cap is a plain value, copied into each
// rasterization instance.
type Cap struct {
	AutoItalic float64
	ScaleWidth float64
	ScaleBBoxWidth float64
	ScaleBBoxHeight float64
	DoubleStrikeShift int
	AdjustBBoxWidthByPixel int
	AdjustLeftSideBearingByPixel int
	AdjustRightSideBearingByPixel int
	Flags Flags
	ScaleBitmap float64

	// Codes in [ForceConstantSpacingBegin, ForceConstantSpacingEnd]
	// (or outside of it, with ForceConstantOutside) get constant
	// metrics. End < 0 means no such range.
	ForceConstantSpacingBegin int
	ForceConstantSpacingEnd int
	ForceConstantMetricsCode int // representative code, -2 if none
	ForceConstantScaleBBoxWidth float64
	ForceConstantScaleBBoxHeight float64
	ForceConstantAdjustWidthByPixel int
	ForceConstantAdjustLSBByPixel int
	ForceConstantAdjustRSBByPixel int
	ForceConstantScaleLSB float64
	ForceConstantScaleRSB float64

	// set when the font is loaded
	VeryLazySlant float64
	LSBShiftOfBitmapAutoItalic int
	RSBShiftOfBitmapAutoItalic int
}

// Returns a Cap with every field at its default.
func Default() Cap {
	return Cap{
		ScaleWidth: 1.0,
		ScaleBBoxWidth: 1.0,
		ScaleBBoxHeight: 1.0,
		DoubleStrikeShift: 1,
		ForceConstantSpacingBegin: -1,
		ForceConstantSpacingEnd: -1,
		ForceConstantMetricsCode: -2,
		ForceConstantScaleBBoxWidth: 1.0,
		ForceConstantScaleBBoxHeight: 1.0,
		ForceConstantScaleRSB: 1.0,
	}
}

func (self *Cap) Has(flags Flags) bool { return self.Flags & flags == flags }

// Whether the cap defines a forced constant spacing range.
func (self *Cap) HasForceConstantSpacing() bool {
	return self.ForceConstantSpacingEnd >= 0
}

// Reports whether the code falls in the forced constant spacing
// range, honoring the wrap around mode.
func (self *Cap) InForceConstantRange(code int) bool {
	if !self.HasForceConstantSpacing() { return false }
	if self.Has(ForceConstantOutside) {
		return code <= self.ForceConstantSpacingEnd || self.ForceConstantSpacingBegin <= code
	}
	return self.ForceConstantSpacingBegin <= code && code <= self.ForceConstantSpacingEnd
}

// The subset of a Cap that decides whether two rasterization
// instances can be shared. Comparable with ==.
type Key struct {
	AutoItalic float64
	ScaleWidth float64
	ScaleBBoxWidth float64
	ScaleBBoxHeight float64
	DoubleStrikeShift int
	AdjustBBoxWidthByPixel int
	AdjustLeftSideBearingByPixel int
	AdjustRightSideBearingByPixel int
	Flags Flags
	ScaleBitmap float64
}

func (self *Cap) Key() Key {
	return Key{
		AutoItalic: self.AutoItalic,
		ScaleWidth: self.ScaleWidth,
		ScaleBBoxWidth: self.ScaleBBoxWidth,
		ScaleBBoxHeight: self.ScaleBBoxHeight,
		DoubleStrikeShift: self.DoubleStrikeShift,
		AdjustBBoxWidthByPixel: self.AdjustBBoxWidthByPixel,
		AdjustLeftSideBearingByPixel: self.AdjustLeftSideBearingByPixel,
		AdjustRightSideBearingByPixel: self.AdjustRightSideBearingByPixel,
		Flags: self.Flags,
		ScaleBitmap: self.ScaleBitmap,
	}
}

// Reports whether instances built with the two caps can be shared.
// Caps with a forced constant spacing range never can.
func (self *Cap) Shareable(other *Cap) bool {
	if self.HasForceConstantSpacing() || other.HasForceConstantSpacing() { return false }
	return self.Key() == other.Key()
}
