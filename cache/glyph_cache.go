package cache

import "fmt"

// Number of entries in each cache segment.
const SegmentSize = 16

type segment struct {
	glyphs [SegmentSize]Glyph
	states [SegmentSize]State
}

// A sparse glyph cache indexed by glyph index. Not safe for
// concurrent use.
type GlyphCache struct {
	segments []*segment
	numGlyphs int
	byteSize int
	peakByteSize int
}

// Creates a cache for the given number of glyph slots. Negative
// values will panic.
func NewGlyphCache(numGlyphs int) *GlyphCache {
	if numGlyphs < 0 { panic("numGlyphs < 0") } // likely a dev mistake
	return &GlyphCache{ numGlyphs: numGlyphs }
}

// Number of glyph slots in the cache.
func (self *GlyphCache) NumGlyphs() int { return self.numGlyphs }

// Returns the entry for the given glyph index, allocating its segment
// if necessary. Indices out of range are not found.
func (self *GlyphCache) Find(index int) (Entry, bool) {
	if index < 0 || index >= self.numGlyphs { return Entry{}, false }
	if self.segments == nil {
		self.segments = make([]*segment, (self.numGlyphs + SegmentSize - 1)/SegmentSize)
	}
	seg := self.segments[index/SegmentSize]
	if seg == nil {
		seg = &segment{}
		self.segments[index/SegmentSize] = seg
	}
	return Entry{ cache: self, seg: seg, offset: uint8(index % SegmentSize) }, true
}

// Returns the state of a glyph without allocating anything.
func (self *GlyphCache) Peek(index int) State {
	if index < 0 || index >= self.numGlyphs || self.segments == nil { return Unknown }
	seg := self.segments[index/SegmentSize]
	if seg == nil { return Unknown }
	return seg.states[index % SegmentSize]
}

// Number of segments allocated so far.
func (self *GlyphCache) AllocatedSegments() int {
	count := 0
	for _, seg := range self.segments {
		if seg != nil { count += 1 }
	}
	return count
}

// Returns an approximation of the number of bytes taken by the
// rasterised glyphs currently stored in the cache.
func (self *GlyphCache) ApproxByteSize() int { return self.byteSize }

// Returns the maximum value [GlyphCache.ApproxByteSize] has reached.
func (self *GlyphCache) PeakSize() int { return self.peakByteSize }

// Drops every cached glyph.
func (self *GlyphCache) Release() {
	self.segments = nil
	self.byteSize = 0
}

// A handle to a glyph slot of a [GlyphCache].
type Entry struct {
	cache *GlyphCache
	seg *segment
	offset uint8
}

func (self Entry) State() State { return self.seg.states[self.offset] }

// The slot's glyph. Its contents may be written freely until the
// slot is advanced to [Rasterised].
func (self Entry) Glyph() *Glyph { return &self.seg.glyphs[self.offset] }

// Moves the slot to the given state. Invalid transitions panic.
func (self Entry) Advance(state State) {
	current := self.seg.states[self.offset]
	if !current.CanAdvanceTo(state) {
		panic(fmt.Sprintf("invalid glyph state transition %s -> %s", current, state))
	}
	if state == Rasterised && current != Rasterised {
		self.cache.byteSize += self.Glyph().ByteSize()
		self.cache.peakByteSize = max(self.cache.peakByteSize, self.cache.byteSize)
	}
	self.seg.states[self.offset] = state
}
