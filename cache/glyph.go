package cache

import "fmt"

// Availability state of a cached glyph.
type State uint8

const (
	Unknown State = iota // nothing computed yet
	No // the glyph has no representation
	Metrics // metrics computed, bitmap pending
	Rasterised // metrics and bitmap computed
)

func (self State) String() string {
	switch self {
	case Unknown: return "Unknown"
	case No: return "No"
	case Metrics: return "Metrics"
	case Rasterised: return "Rasterised"
	default: return fmt.Sprintf("State(%d)", uint8(self))
	}
}

// Reports whether a glyph may go from the current state to the next.
// Staying in the same state is always allowed.
func (self State) CanAdvanceTo(next State) bool {
	if self == next { return true }
	switch self {
	case Unknown: return next > Unknown
	case Metrics: return next == Rasterised
	default: return false
	}
}

// Per glyph metrics, in pixels. Ascent grows upwards from the
// baseline and descent downwards.
type CharInfo struct {
	LeftSideBearing int16
	RightSideBearing int16
	CharacterWidth int16
	Ascent int16
	Descent int16
	Attributes uint16 // width in 1/1000 em, two's complement
}

// Width and height of the glyph's ink box.
func (self *CharInfo) InkSize() (int, int) {
	return int(self.RightSideBearing) - int(self.LeftSideBearing), int(self.Ascent) + int(self.Descent)
}

// Whether the ink box is empty.
func (self *CharInfo) IsEmpty() bool {
	w, h := self.InkSize()
	return w <= 0 || h <= 0
}

// The raw width stored in the attributes.
func (self *CharInfo) RawWidth() int { return int(int16(self.Attributes)) }

// A cached glyph: its metrics and its bitmap, with rows padded to
// the bitmap format's glyph pad.
type Glyph struct {
	Metrics CharInfo
	Bits []byte
}

// Approximate memory taken by a glyph.
func (self *Glyph) ByteSize() int {
	const GlyphOverhead = 40
	return len(self.Bits) + GlyphOverhead
}
