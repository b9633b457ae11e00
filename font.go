package xtt

import "math"

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/ttcap"
import "github.com/tinne26/xtt/xlfd"

// How the characters passed to [Font.Glyphs] and [Font.Metrics]
// are encoded.
type CharEncoding uint8

const (
	Linear8Bit CharEncoding = iota // one byte per character
	TwoD8Bit // one byte per character
	Linear16Bit // two bytes per character, high byte first
	TwoD16Bit // two bytes per character, row first
)

// The metrics reported for characters that don't exist.
var NoSuchChar = cache.CharInfo{}

// An open font: an instance reference plus the mapping from the
// font's encoding to glyphs.
type Font struct {
	backend *Backend
	instance *Instance
	mapping *Mapping
	zeroIndex font.GlyphIndex
	ranges []xlfd.Range
	info *FontInfo
	dummy *cache.Glyph
	closed bool
}

// The instance the font renders with.
func (self *Font) Instance() *Instance { return self.instance }

// The mapping from codes to glyphs.
func (self *Font) Mapping() *Mapping { return self.mapping }

// The glyph used for undefined characters.
func (self *Font) ZeroIndex() font.GlyphIndex { return self.zeroIndex }

// The font information computed when the font was opened.
func (self *Font) Info() *FontInfo { return self.info }

func (self *Font) loadError(err error) (*Font, error) {
	self.Close()
	return nil, err
}

func (self *Backend) loadFont(req *Request) (*Font, error) {
	vals := req.Values
	vals.Ranges = append([]xlfd.Range(nil), vals.Ranges...)
	format := req.Format
	if format == (BitmapFormat{}) { format = DefaultBitmapFormat }

	result, err := ttcap.Parse(req.FileName, vals.Pixel)
	if err != nil { return nil, capError(err) }
	for _, field := range result.Defaulted {
		self.logger.Debug("capability field defaulted", "font", req.FileName, "field", field)
	}

	face, err := self.faces.Open(result.EnginePath, result.RealPath, result.FaceNumber)
	if err != nil { return nil, err }
	releaseFace := func(err error) (*Font, error) {
		self.faces.Release(face)
		return nil, err
	}
	info := face.engine.Info()
	tuning := result.Cap

	loadFlags := result.LoadFlags
	if !isMatrixUnit(&vals) { loadFlags |= font.LoadNoBitmap }
	if face.bitmap { loadFlags &^= font.LoadNoBitmap }

	if tuning.AutoItalic != 0 && !face.bitmap {
		ai := tuning.AutoItalic
		vals.PixelMatrix[2] += vals.PixelMatrix[0]*ai
		vals.PointMatrix[2] += vals.PointMatrix[0]*ai
		vals.PixelMatrix[3] += vals.PixelMatrix[1]*ai
		vals.PointMatrix[3] += vals.PointMatrix[1]*ai
	}
	baseWidth := math.Hypot(vals.PixelMatrix[0], vals.PixelMatrix[1])
	baseHeight := math.Hypot(vals.PixelMatrix[2], vals.PixelMatrix[3])
	if max(baseWidth, baseHeight) < 1.0 {
		return releaseFace(newError(BadFontName, "load font", nil))
	}

	// spacing
	var name *xlfd.Name
	if parsed, err := xlfd.Parse(req.Name); err == nil { name = parsed }
	spacing := Proportional
	if name != nil {
		switch name.SpacingMode() {
		case 'c': spacing = Charcell
		case 'm': spacing = Monospaced
		}
	}
	switch result.Spacing {
	case 'p': spacing = Proportional
	case 'm': spacing = Monospaced
	case 'c': spacing = Charcell
	}
	if spacing == Proportional && info.FixedWidth { spacing = Monospaced }

	mapping, err := PickMapping(self.encodings, req.Name, result.RealPath, face.engine, self.logger)
	if err != nil { return releaseFace(err) }

	// code span
	var span ttcap.CodeSpan
	zeroCode := -1
	if enc := mapping.Encoding; enc != nil && enc.IsMatrix() {
		span.FirstRow = uint16(enc.First)
		span.LastRow = uint16(min(enc.Size - 1, 0xFF))
		span.FirstCol = uint16(enc.FirstCol)
		span.LastCol = uint16(min(enc.RowSize - 1, 0xFF))
		if span.FirstRow == 0 && span.FirstCol == 0 { zeroCode = 0 }
	} else {
		firstCode, lastCode := 0, 0xFF
		if enc != nil {
			firstCode = enc.First
			if enc.Size > 0 { lastCode = min(0xFFFF, enc.Size - 1) }
		}
		span.FirstRow = uint16(firstCode/0x100)
		span.LastRow = uint16(lastCode/0x100)
		span.FirstCol, span.LastCol = uint16(firstCode & 0xFF), uint16(lastCode & 0xFF)
		if span.LastRow > 0 { span.FirstCol, span.LastCol = 0, 0xFF }
		if firstCode == 0 { zeroCode = 0 }
	}
	if result.CodeRange != "" { ttcap.RestrictCodeRangeByString(&span, result.CodeRange) }
	ttcap.RestrictCodeRange(&span, vals.Ranges)

	// very lazy metrics
	if !tuning.Has(ttcap.DisableDefaultVeryLazy) && 2 <= 1 + int(span.LastRow) - int(span.FirstRow) {
		if _, err := face.engine.Table("post"); err == nil {
			tuning.Flags |= ttcap.IsVeryLazy
		}
	}
	tuning.Flags &^= ttcap.DisableDefaultVeryLazy
	if face.bitmap || spacing == Charcell || !info.SFNT {
		tuning.Flags &^= ttcap.IsVeryLazy
	}
	if post, err := font.ReadPost(face.engine); err == nil && post.ItalicAngle != 0 {
		tuning.VeryLazySlant = -math.Sin(post.ItalicAngle*math.Pi/180)
	}

	trans := TransformFromValues(&vals)
	instance, err := face.OpenInstance(trans, spacing, format, tuning, loadFlags)
	if err != nil { return releaseFace(err) }

	fnt := &Font{ backend: self, instance: instance, mapping: mapping, ranges: vals.Ranges }
	if zeroCode == 0 { fnt.zeroIndex = mapping.Remap(face.engine, 0) }
	fnt.info = &FontInfo{
		FirstCol: span.FirstCol,
		LastCol: span.LastCol,
		FirstRow: span.FirstRow,
		LastRow: span.LastRow,
		Spacing: spacing,
		atoms: self.atoms,
	}

	if instance.header == nil {
		instance.initHeader(&vals, baseHeight)
		err = fnt.checkZeroGlyph(0)
		if err != nil { return fnt.loadError(err) }
		if instance.forceConstant != nil {
			code := instance.cap.ForceConstantMetricsCode
			if code >= 0 {
				metrics, err := fnt.GlyphMetrics(uint32(code), 0)
				if err == nil && metrics != nil && metrics.CharacterWidth > 0 {
					*instance.forceConstant = *metrics
				}
			}
			err = fnt.checkZeroGlyph(ForceConstantSpacing)
			if err != nil { return fnt.loadError(err) }
		}
	}

	if spacing == Charcell {
		vals.Width = instance.averageWidth
		fnt.info.MaxBounds = *instance.header
		fnt.info.MinBounds = *instance.header
		fnt.info.MaxOverlap = int(instance.header.RightSideBearing) - int(instance.header.CharacterWidth)
	} else {
		fnt.computeBounds(&vals)
	}
	fnt.info.InkMaxBounds = fnt.info.MaxBounds
	fnt.info.InkMinBounds = fnt.info.MinBounds
	fnt.info.FontAscent = int(fnt.info.MaxBounds.Ascent)
	fnt.info.FontDescent = int(fnt.info.MaxBounds.Descent)
	fnt.info.computeAccelerators()
	fnt.setProperties(req.Name, name, &vals, result)
	return fnt, nil
}

// Makes sure the zero glyph can be rendered, falling back to a blank
// rendering.
func (self *Font) checkZeroGlyph(flags GlyphFlags) error {
	glyph, err := self.instance.Glyph(self.zeroIndex, flags)
	if err == nil && glyph != nil { return nil }
	glyph, err = self.instance.Glyph(self.zeroIndex, flags | GetDummy)
	if err != nil { return err }
	if glyph == nil { return newError(AllocError, "zero glyph", nil) }
	return nil
}

// Returns the glyph index for the code, or false if the code is
// outside of the font's rows and columns.
func (self *Font) glyphIndex(code uint32) (font.GlyphIndex, bool) {
	info := self.info
	col, row := uint16(code & 0xFF), uint16(code >> 8)
	if col < info.FirstCol || col > info.LastCol || row < info.FirstRow || row > info.LastRow {
		return self.zeroIndex, false
	}
	return self.mapping.Remap(self.instance.face.engine, code), true
}

// Returns the rasterised glyph for the given code. Codes without a
// glyph of their own give nil. When the glyph fails to render the
// zero glyph is used instead, and if that fails too, a blank glyph.
func (self *Font) Glyph(code uint32, flags GlyphFlags) (*cache.Glyph, error) {
	index, ok := self.glyphIndex(code)
	if !ok || index == 0 || index == self.zeroIndex { return nil, nil }

	glyph, err := self.instance.Glyph(index, flags)
	if err == nil && glyph != nil { return glyph, nil }
	glyph, err = self.instance.Glyph(self.zeroIndex, flags)
	if err == nil && glyph != nil { return glyph, nil }
	return self.instance.Glyph(self.zeroIndex, flags | GetDummy)
}

// Like [Font.Glyph], but only computes the metrics.
func (self *Font) GlyphMetrics(code uint32, flags GlyphFlags) (*cache.CharInfo, error) {
	index, ok := self.glyphIndex(code)
	if !ok || index == 0 || index == self.zeroIndex { return nil, nil }

	metrics, err := self.instance.GlyphMetrics(index, flags)
	if err == nil && metrics != nil { return metrics, nil }
	metrics, err = self.instance.GlyphMetrics(self.zeroIndex, flags)
	if err == nil && metrics != nil { return metrics, nil }
	return self.instance.GlyphMetrics(self.zeroIndex, flags | GetDummy)
}

// Returns the glyph flags that apply to the given code.
func (self *Font) codeFlags(code uint32) GlyphFlags {
	if self.instance.cap.InForceConstantRange(int(code)) { return ForceConstantSpacing }
	return 0
}

func (self *Font) forEachCode(chars []byte, encoding CharEncoding, fn func(code uint32, flags GlyphFlags)) {
	switch encoding {
	case Linear8Bit, TwoD8Bit:
		for _, char := range chars { fn(uint32(char), 0) }
	case Linear16Bit, TwoD16Bit:
		for i := 0; i + 1 < len(chars); i += 2 {
			code := uint32(chars[i]) << 8 | uint32(chars[i + 1])
			fn(code, self.codeFlags(code))
		}
	}
}

// Returns the glyphs for the given characters. Missing characters
// get the font's blank dummy glyph, which has the size of the
// header cell.
func (self *Font) Glyphs(chars []byte, encoding CharEncoding) []*cache.Glyph {
	var glyphs []*cache.Glyph
	self.forEachCode(chars, encoding, func(code uint32, flags GlyphFlags) {
		glyph, err := self.Glyph(code, flags)
		if err != nil || glyph == nil {
			if err != nil {
				self.backend.logger.Warn("glyph unavailable", "code", code, "err", err)
			}
			glyph = self.dummyGlyph()
		}
		glyphs = append(glyphs, glyph)
	})
	return glyphs
}

// Returns the metrics for the given characters. Missing characters
// get [NoSuchChar].
func (self *Font) Metrics(chars []byte, encoding CharEncoding) []*cache.CharInfo {
	var metrics []*cache.CharInfo
	self.forEachCode(chars, encoding, func(code uint32, flags GlyphFlags) {
		info, err := self.GlyphMetrics(code, flags)
		if err != nil || info == nil {
			noSuchChar := NoSuchChar
			info = &noSuchChar
		}
		metrics = append(metrics, info)
	})
	return metrics
}

// The blank glyph used for missing characters, created on first use.
func (self *Font) dummyGlyph() *cache.Glyph {
	if self.dummy != nil { return self.dummy }
	header := self.instance.header
	width := max(1, int(header.RightSideBearing) - int(header.LeftSideBearing))
	height := max(1, int(header.Ascent) + int(header.Descent))
	self.dummy = &cache.Glyph{
		Metrics: *header,
		Bits: make([]byte, height*rowBytes(width, self.instance.format.Glyph)),
	}
	return self.dummy
}

// Releases the font's instance. Closing a font twice does nothing.
func (self *Font) Close() {
	if self.closed { return }
	self.closed = true
	self.instance.Close()
	self.dummy = nil
	self.ranges = nil
}
