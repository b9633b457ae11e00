package xtt

import "math"

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/fract"
import "github.com/tinne26/xtt/ttcap"
import "github.com/tinne26/xtt/xlfd"

// Spacing modes. Monospaced fonts share a single advance, while
// charcell fonts also share a single bounding box.
type Spacing uint8

const (
	Proportional Spacing = iota
	Monospaced
	Charcell
)

func (self Spacing) String() string {
	switch self {
	case Proportional: return "proportional"
	case Monospaced: return "monospaced"
	case Charcell: return "charcell"
	default: return "unknown"
	}
}

// Bit or byte order of rasterised glyphs.
type BitOrder uint8

const (
	MSBFirst BitOrder = iota
	LSBFirst
)

// The layout of rasterised glyphs. Glyph rows are padded to Glyph
// bytes (1, 2, 4 or 8), and bytes are swapped within units of Scan
// bytes (1, 2 or 4) when the byte order differs from the bit order.
type BitmapFormat struct {
	Bit BitOrder
	Byte BitOrder
	Glyph int
	Scan int
}

// The format used when requests don't specify any: most significant
// bit first, byte aligned rows.
var DefaultBitmapFormat = BitmapFormat{ Bit: MSBFirst, Byte: MSBFirst, Glyph: 1, Scan: 1 }

func (self BitmapFormat) normalized() BitmapFormat {
	switch self.Glyph {
	case 1, 2, 4, 8:
	default: self.Glyph = 1
	}
	switch self.Scan {
	case 1, 2, 4:
	default: self.Scan = 1
	}
	return self
}

// The size and shape of an instance: a point size at a device
// resolution, plus a normalized matrix when the request isn't a
// plain scaling.
type Transform struct {
	Scale float64 // in points
	XRes, YRes int
	NonIdentity bool
	Matrix fract.Matrix // meaningful only when NonIdentity
}

// Derives the transform from the point matrix and resolutions of
// the given values.
func TransformFromValues(vals *xlfd.Values) Transform {
	m := vals.PointMatrix
	trans := Transform{ XRes: vals.X, YRes: vals.Y, Matrix: fract.IdentityMatrix }
	trans.Scale = math.Hypot(m[2], m[3])
	if trans.Scale == 0 { return trans }
	if m[0] != m[3] || m[1] != 0 || m[2] != 0 {
		trans.NonIdentity = true
		trans.Matrix = fract.Matrix{
			XX: fract.FixedFromFloat64(m[0]/trans.Scale),
			XY: fract.FixedFromFloat64(m[2]/trans.Scale),
			YX: fract.FixedFromFloat64(m[1]/trans.Scale),
			YY: fract.FixedFromFloat64(m[3]/trans.Scale),
		}
	}
	return trans
}

func (self Transform) key() Transform {
	if !self.NonIdentity { self.Matrix = fract.Matrix{} }
	return self
}

// Flags for glyph and metrics requests.
type GlyphFlags uint8

const (
	ForceConstantSpacing GlyphFlags = 1 << iota // use the forced constant metrics
	GetDummy // produce a blank glyph with the header metrics
	metricsOnly
)

type instanceKey struct {
	transform Transform
	spacing Spacing
	loadFlags font.LoadFlags
	format BitmapFormat
	cap ttcap.Key
}

// A face at a given size, transform, spacing and bitmap format,
// together with its glyph cache.
type Instance struct {
	face *Face
	refCount int
	key instanceKey
	shared bool

	transform Transform
	spacing Spacing
	loadFlags font.LoadFlags
	format BitmapFormat
	cap ttcap.Cap

	// sizing, reapplied on activation
	charSize fract.Unit // for scalable faces
	xppem, yppem int // for bitmap faces
	strikeIndex int

	// header metrics, computed by the first font using the instance
	header *cache.CharInfo
	forceConstant *cache.CharInfo
	pixelSize float64
	pixelWidthUnitX float64
	pixelWidthUnitY float64
	advance float64
	averageWidth int
	rawAverageWidth int

	glyphs *cache.GlyphCache
}

func (self *Instance) Face() *Face { return self.face }
func (self *Instance) RefCount() int { return self.refCount }
func (self *Instance) Spacing() Spacing { return self.spacing }
func (self *Instance) Transform() Transform { return self.transform }
func (self *Instance) Format() BitmapFormat { return self.format }
func (self *Instance) LoadFlags() font.LoadFlags { return self.loadFlags }

// The tuning values the instance was created with.
func (self *Instance) Cap() ttcap.Cap { return self.cap }

// The shared metrics of the instance (the charcell metrics for
// charcell instances), or nil if not computed yet.
func (self *Instance) HeaderMetrics() *cache.CharInfo { return self.header }

// The shared metrics used by forced constant spacing requests, or nil.
func (self *Instance) ForceConstantMetrics() *cache.CharInfo { return self.forceConstant }

// Number of glyph slots. Doubled when the instance has a forced
// constant spacing range.
func (self *Instance) NumGlyphs() int { return self.glyphs.NumGlyphs() }

// The glyph cache of the instance.
func (self *Instance) Glyphs() *cache.GlyphCache { return self.glyphs }

// Index of the embedded bitmap strike matching the instance size,
// or -1 if none.
func (self *Instance) StrikeIndex() int { return self.strikeIndex }

// Returns an instance of the face for the given configuration,
// reusing an existing one when an identical configuration has been
// opened before. The returned instance holds a new reference.
func (self *Face) OpenInstance(trans Transform, spacing Spacing, format BitmapFormat, capability ttcap.Cap, loadFlags font.LoadFlags) (*Instance, error) {
	format = format.normalized()
	key := instanceKey{
		transform: trans.key(),
		spacing: spacing,
		loadFlags: loadFlags,
		format: format,
		cap: capability.Key(),
	}
	shared := !capability.HasForceConstantSpacing()
	if shared {
		if instance, found := self.instances[key]; found {
			instance.refCount += 1
			self.cache.logger.Debug("instance cache hit", "path", self.path, "refs", instance.refCount)
			return instance, nil
		}
	}

	instance := &Instance{
		face: self,
		refCount: 1,
		key: key,
		shared: shared,
		transform: trans,
		spacing: spacing,
		loadFlags: loadFlags,
		format: format,
		cap: capability,
		strikeIndex: -1,
	}
	info := self.engine.Info()
	if self.bitmap {
		xppem, yppem, err := findSize(info, &trans)
		if err != nil { return nil, err }
		instance.xppem, instance.yppem = xppem, yppem
	} else {
		instance.charSize = fract.Unit(trans.Scale*64 + 0.5)
	}
	err := instance.applySize()
	if err != nil { return nil, engineError("set size", err) }
	if info.SFNT {
		instance.strikeIndex = strikeIndex(info, instance.charSize, trans.XRes, trans.YRes)
	}

	numGlyphs := info.NumGlyphs
	if !shared { numGlyphs *= 2 }
	instance.glyphs = cache.NewGlyphCache(numGlyphs)

	if shared {
		self.instances[key] = instance
	} else {
		self.unshared = append(self.unshared, instance)
	}
	self.active = instance
	if !trans.NonIdentity {
		self.engine.SetTransform(nil)
	} else {
		self.engine.SetTransform(&trans.Matrix)
	}
	self.cache.logger.Debug("instance created", "path", self.path, "scale", trans.Scale, "spacing", spacing, "shared", shared)
	return instance, nil
}

func (self *Instance) applySize() error {
	if self.face.bitmap {
		return self.face.engine.SetPixelSizes(self.xppem, self.yppem)
	}
	return self.face.engine.SetCharSize(self.charSize, self.charSize, self.transform.XRes, self.transform.YRes)
}

// Binds the instance's size and transform to the face engine. Does
// nothing if the instance is already active.
func (self *Instance) Activate() error {
	face := self.face
	if face.active == self { return nil }
	err := self.applySize()
	if err != nil { return engineError("activate", err) }
	if self.transform.NonIdentity {
		face.engine.SetTransform(&self.transform.Matrix)
	} else {
		face.engine.SetTransform(nil)
	}
	face.active = self
	return nil
}

// Drops a reference to the instance. When no references remain, the
// glyph cache is released and the instance is removed from its face,
// which is closed too if this was its last instance.
func (self *Instance) Close() {
	if self.refCount <= 0 { return }
	self.refCount -= 1
	if self.refCount > 0 { return }

	face := self.face
	if self.shared {
		if face.instances[self.key] == self { delete(face.instances, self.key) }
	} else {
		for i, instance := range face.unshared {
			if instance != self { continue }
			face.unshared = append(face.unshared[:i], face.unshared[i + 1:]...)
			break
		}
	}
	if face.active == self { face.active = nil }
	self.glyphs.Release()
	self.header, self.forceConstant = nil, nil
	face.cache.logger.Debug("instance closed", "path", face.path)
	face.cache.Release(face)
}

// Picks the strike of a bitmap face that matches the transform
// within one pixel on both axes, preferring the closest one.
func findSize(info *font.Info, trans *Transform) (int, int, error) {
	if trans.NonIdentity { return 0, 0, newError(BadFontName, "find size", nil) }
	tx := int(trans.Scale*float64(trans.XRes)/72.0 + 0.5)
	ty := int(trans.Scale*float64(trans.YRes)/72.0 + 0.5)
	best, bestDist := -1, 100
	for i, strike := range info.Strikes {
		dx := strike.XPPEM.ToIntHalfUp() - tx
		dy := strike.YPPEM.ToIntHalfUp() - ty
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 { continue }
		dist := dx*dx + dy*dy
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 { return 0, 0, newError(BadFontName, "find size", nil) }
	strike := info.Strikes[best]
	return strike.XPPEM.ToIntHalfUp(), strike.YPPEM.ToIntHalfUp(), nil
}

// Returns the index of the embedded strike whose ppem matches the
// char size at the given resolution, or -1.
func strikeIndex(info *font.Info, charSize fract.Unit, xres, yres int) int {
	if len(info.Strikes) == 0 { return -1 }
	dim := func(res int) fract.Unit {
		return (fract.Unit((int64(charSize)*int64(res) + 36)/72) + 32).Floor()
	}
	xdim, ydim := dim(xres), dim(yres)
	if xdim == 0 { xdim = ydim }
	if ydim == 0 { ydim = xdim }
	for i, strike := range info.Strikes {
		if (strike.XPPEM + 32).Floor() == xdim && (strike.YPPEM + 32).Floor() == ydim {
			return i
		}
	}
	return -1
}

// Returns the cache entry for the glyph, or false if the index is
// out of range. Forced constant requests use the upper half of the
// slots.
func (self *Instance) findGlyph(index font.GlyphIndex, flags GlyphFlags) (cache.Entry, bool) {
	if int(index) >= self.face.engine.Info().NumGlyphs { return cache.Entry{}, false }
	slot := int(index)
	if flags & ForceConstantSpacing != 0 && !self.shared {
		slot += self.glyphs.NumGlyphs()/2
	}
	return self.glyphs.Find(slot)
}

// Returns the rasterised glyph with the given index, rasterising it
// if needed. Returns nil without error when the glyph doesn't exist.
//
// When rasterisation fails for a glyph whose metrics were already
// known, the glyph is rendered blank instead of failing.
func (self *Instance) Glyph(index font.GlyphIndex, flags GlyphFlags) (*cache.Glyph, error) {
	entry, found := self.findGlyph(index, flags)
	if !found { return nil, nil }
	switch entry.State() {
	case cache.No: return nil, nil
	case cache.Rasterised: return entry.Glyph(), nil
	}

	hasMetrics := entry.State() == cache.Metrics
	err := self.rasterise(index, flags, entry.Glyph(), hasMetrics)
	if err != nil && hasMetrics {
		self.face.cache.logger.Warn("broken glyph, rendering blank", "path", self.face.path, "glyph", index, "err", err)
		err = self.rasterise(index, flags | GetDummy, entry.Glyph(), true)
	}
	if err != nil { return nil, err }
	entry.Advance(cache.Rasterised)
	return entry.Glyph(), nil
}

// Returns the metrics of the glyph with the given index, computing
// them if needed. Charcell instances and forced constant requests
// always get the shared metrics. Returns nil without error when the
// glyph doesn't exist.
func (self *Instance) GlyphMetrics(index font.GlyphIndex, flags GlyphFlags) (*cache.CharInfo, error) {
	if self.spacing == Charcell && self.header != nil { return self.header, nil }
	if flags & ForceConstantSpacing != 0 && self.forceConstant != nil {
		return self.forceConstant, nil
	}

	entry, found := self.findGlyph(index, flags)
	if !found { return nil, nil }
	switch entry.State() {
	case cache.No: return nil, nil
	case cache.Metrics, cache.Rasterised: return &entry.Glyph().Metrics, nil
	}

	err := self.rasterise(index, flags | metricsOnly, entry.Glyph(), false)
	if err != nil { return nil, err }
	entry.Advance(cache.Metrics)
	return &entry.Glyph().Metrics, nil
}
