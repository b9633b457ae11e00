package font

import "bytes"
import "sort"

import xfont "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"
import "golang.org/x/text/encoding/charmap"
import ot "github.com/go-text/typesetting/font/opentype"
import "seehuhn.de/go/sfnt/cmap"
import "seehuhn.de/go/postscript/type1/names"

import "github.com/tinne26/xtt/fract"
import "github.com/tinne26/xtt/mask"

var _ Face = (*sfntFace)(nil)

// A TrueType or OpenType face. Outlines, advances and names come from
// [sfnt.Font], while raw tables are read through a go-text loader.
type sfntFace struct {
	font *sfnt.Font
	loader *ot.Loader
	buffer sfnt.Buffer
	release func() error

	info Info
	lineGap int
	tables map[string][]byte
	cmaps cmap.Table
	charmaps []Charmap
	cmapKeys map[Charmap]cmap.Key
	subtables map[Charmap]cmap.Subtable
	glyphNames []string
	nameToIndex map[string]GlyphIndex
	textToIndex map[string]GlyphIndex

	xppem, yppem int
	xscale, yscale fract.Fixed
	matrix fract.Matrix
	transformed bool
}

func parseSFNT(data []byte, index int, release func() error) (*sfntFace, error) {
	collection, err := sfnt.ParseCollection(data)
	if err != nil { return nil, err }
	if index < 0 || index >= collection.NumFonts() { return nil, ErrBadFaceIndex }
	sfont, err := collection.Font(index)
	if err != nil { return nil, err }
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil { return nil, err }
	if index >= len(loaders) { return nil, ErrBadFaceIndex }

	face := &sfntFace{
		font: sfont,
		loader: loaders[index],
		release: release,
		tables: make(map[string][]byte),
		subtables: make(map[Charmap]cmap.Subtable),
		matrix: fract.IdentityMatrix,
	}
	err = face.init()
	if err != nil { return nil, err }
	return face, nil
}

func (self *sfntFace) init() error {
	self.info.SFNT = true
	self.info.Scalable = true
	self.info.NumGlyphs = self.font.NumGlyphs()
	self.info.UnitsPerEm = int(self.font.UnitsPerEm())
	if _, err := self.Table("glyf"); err == nil {
		self.info.Format = "TrueType"
	} else {
		self.info.Format = "CFF"
	}

	head, err := self.Table("head")
	if err != nil { return err }
	if len(head) < 44 { return errMalformed("head") }
	self.info.BBox = BBox{
		XMin: int(int16(be16(head, 36))), YMin: int(int16(be16(head, 38))),
		XMax: int(int16(be16(head, 40))), YMax: int(int16(be16(head, 42))),
	}

	hhea, err := self.Table("hhea")
	if err != nil { return err }
	if len(hhea) < 36 { return errMalformed("hhea") }
	self.info.Ascender  = int(int16(be16(hhea, 4)))
	self.info.Descender = int(int16(be16(hhea, 6)))
	self.lineGap = int(int16(be16(hhea, 8)))
	self.info.MaxAdvanceWidth = int(be16(hhea, 10))

	if maxp, err := self.Table("maxp"); err == nil && len(maxp) >= 10 && be32(maxp, 0) == 0x00010000 {
		self.info.MaxContours = int(be16(maxp, 8))
	}
	if vhea, err := self.Table("vhea"); err == nil && len(vhea) >= 12 {
		self.info.HasVerticalMetrics = true
		self.info.MaxAdvanceHeight = int(be16(vhea, 10))
	}

	if post, err := ReadPost(self); err == nil {
		self.info.FixedWidth = post.IsFixedPitch
		self.glyphNames = post.Names
	}
	self.info.HasGlyphNames = self.info.Format == "CFF" && len(self.glyphNames) > 0

	self.info.FamilyName, _ = self.Name(sfnt.NameIDFamily)
	self.info.StyleName, _ = self.Name(sfnt.NameIDSubfamily)
	self.initCharmaps()
	return nil
}

func (self *sfntFace) initCharmaps() {
	self.cmapKeys = make(map[Charmap]cmap.Key)
	raw, err := self.Table("cmap")
	if err == nil { self.cmaps, err = cmap.Decode(raw) }
	if err != nil || len(self.cmaps) == 0 {
		// fonts without usable cmaps still get an (empty) charmap
		self.charmaps = []Charmap{{ PlatformID: PlatformMicrosoft, EncodingID: EncodingMSUnicode }}
		return
	}
	for key := range self.cmaps {
		cm := Charmap{ PlatformID: key.PlatformID, EncodingID: key.EncodingID }
		prev, seen := self.cmapKeys[cm]
		if seen && prev.Language <= key.Language { continue }
		if !seen { self.charmaps = append(self.charmaps, cm) }
		self.cmapKeys[cm] = key
	}
	sort.Slice(self.charmaps, func(i, j int) bool {
		a, b := self.charmaps[i], self.charmaps[j]
		if a.PlatformID != b.PlatformID { return a.PlatformID < b.PlatformID }
		return a.EncodingID < b.EncodingID
	})
}

func (self *sfntFace) Info() *Info { return &self.info }
func (self *sfntFace) Charmaps() []Charmap { return self.charmaps }
func (self *sfntFace) Charset() (string, string, bool) { return "", "", false }

func (self *sfntFace) CharIndex(cm Charmap, code uint32) GlyphIndex {
	subtable, found := self.subtables[cm]
	if !found {
		key, hasKey := self.cmapKeys[cm]
		if hasKey {
			subtable, _ = self.cmaps.Get(key) // unsupported formats stay nil
		}
		self.subtables[cm] = subtable
	}
	if subtable == nil { return 0 }

	r := rune(code)
	if cm.PlatformID == PlatformApple {
		// Mac Roman subtables are looked up by unicode value
		if code > 0xFF { return 0 }
		r = charmap.Macintosh.DecodeByte(byte(code))
	}
	if _, wide := subtable.(cmap.Format12); !wide && code > 0xFFFF {
		return 0 // 16 bit subtables would truncate the code
	}
	index := GlyphIndex(subtable.Lookup(r))
	if int(index) >= self.info.NumGlyphs { return 0 }
	return index
}

func (self *sfntFace) NameIndex(name string) GlyphIndex {
	if self.nameToIndex == nil { self.indexNames() }
	if index, found := self.nameToIndex[name]; found { return index }
	text := names.ToUnicode(name, "")
	if text == "" { return 0 }
	return self.textToIndex[text]
}

func (self *sfntFace) indexNames() {
	self.nameToIndex = make(map[string]GlyphIndex, len(self.glyphNames))
	self.textToIndex = make(map[string]GlyphIndex, len(self.glyphNames))
	for i, name := range self.glyphNames {
		if i == 0 || i >= self.info.NumGlyphs || name == "" { continue }
		if _, seen := self.nameToIndex[name]; !seen {
			self.nameToIndex[name] = GlyphIndex(i)
		}
		text := names.ToUnicode(name, "")
		if text == "" { continue }
		if _, seen := self.textToIndex[text]; !seen {
			self.textToIndex[text] = GlyphIndex(i)
		}
	}
}

func (self *sfntFace) Table(tag string) ([]byte, error) {
	if data, found := self.tables[tag]; found { return data, nil }
	if len(tag) != 4 { return nil, ErrNoTable }
	data, err := self.loader.RawTable(ot.MustNewTag(tag))
	if err != nil { return nil, ErrNoTable }
	self.tables[tag] = data
	return data, nil
}

func (self *sfntFace) Name(id sfnt.NameID) (string, error) {
	return self.font.Name(&self.buffer, id)
}

func (self *sfntFace) SetCharSize(width, height fract.Unit, xres, yres int) error {
	if width == 0 { width = height }
	if height == 0 { height = width }
	if xres == 0 { xres = 72 }
	if yres == 0 { yres = 72 }
	if width <= 0 || height <= 0 || xres < 0 || yres < 0 { return ErrBadSize }
	scaledW := (int64(width)*int64(xres) + 36)/72
	scaledH := (int64(height)*int64(yres) + 36)/72
	return self.SetPixelSizes(int((scaledW + 32) >> 6), int((scaledH + 32) >> 6))
}

func (self *sfntFace) SetPixelSizes(xppem, yppem int) error {
	if xppem == 0 { xppem = yppem }
	if yppem == 0 { yppem = xppem }
	if xppem < 1 { xppem = 1 }
	if yppem < 1 { yppem = 1 }
	if xppem > 0xFFFF || yppem > 0xFFFF { return ErrBadSize }
	self.xppem, self.yppem = xppem, yppem
	self.xscale = fract.ScaleFactor(fract.FromInt(xppem), self.info.UnitsPerEm)
	self.yscale = fract.ScaleFactor(fract.FromInt(yppem), self.info.UnitsPerEm)
	return nil
}

func (self *sfntFace) SizeMetrics() SizeMetrics {
	return SizeMetrics{
		XPPEM: self.xppem,
		YPPEM: self.yppem,
		XScale: self.xscale,
		YScale: self.yscale,
		Ascender: self.yscale.ScaleFUnits(self.info.Ascender).Ceil(),
		Descender: self.yscale.ScaleFUnits(self.info.Descender).Floor(),
		Height: self.yscale.ScaleFUnits(self.info.Ascender - self.info.Descender + self.lineGap).HalfUp(),
		MaxAdvance: self.xscale.ScaleFUnits(self.info.MaxAdvanceWidth).HalfUp(),
	}
}

func (self *sfntFace) SetTransform(matrix *fract.Matrix) {
	if matrix == nil || matrix.IsIdentity() {
		self.matrix, self.transformed = fract.IdentityMatrix, false
		return
	}
	self.matrix, self.transformed = *matrix, true
}

func (self *sfntFace) SbitMetrics(GlyphIndex) (GlyphMetrics, bool) {
	return GlyphMetrics{}, false
}

func (self *sfntFace) LoadGlyph(index GlyphIndex, flags LoadFlags) (*Glyph, error) {
	if int(index) >= self.info.NumGlyphs { return nil, ErrBadGlyph }
	if self.yppem == 0 { return nil, ErrBadSize }

	segments, err := self.font.LoadGlyph(&self.buffer, sfnt.GlyphIndex(index), fixed.I(self.yppem), nil)
	if err != nil { return nil, err }
	outline := make(sfnt.Segments, len(segments))
	copy(outline, segments)
	if self.xppem != self.yppem {
		forEachPoint(outline, func(point *fixed.Point26_6) {
			point.X = fixed.Int26_6(int64(point.X)*int64(self.xppem)/int64(self.yppem))
		})
	}

	hinting := xfont.HintingFull
	if flags & LoadNoHinting != 0 { hinting = xfont.HintingNone }
	advance, err := self.font.GlyphAdvance(&self.buffer, sfnt.GlyphIndex(index), fixed.I(self.xppem), hinting)
	if err != nil { return nil, err }
	vertAdvance := self.yscale.ScaleFUnits(self.info.Ascender - self.info.Descender)
	if hinting != xfont.HintingNone { vertAdvance = vertAdvance.HalfUp() }

	glyph := &Glyph{ Index: index, Format: FormatOutline, Outline: outline }
	glyph.Metrics = outlineMetrics(outline)
	glyph.Metrics.HoriAdvance = fract.FromFixed(advance)
	glyph.Metrics.VertAdvance = vertAdvance

	if self.transformed {
		forEachPoint(outline, func(point *fixed.Point26_6) {
			x, y := self.matrix.Transform(fract.FromFixed(point.X), -fract.FromFixed(point.Y))
			point.X, point.Y = x.Fixed(), -y.Fixed()
		})
	}
	return glyph, nil
}

func (self *sfntFace) RenderMono(glyph *Glyph) (*mask.Bitmap, error) {
	if glyph.Format == FormatBitmap { return glyph.Bitmap, nil }
	return mask.RasterizeMono(glyph.Outline)
}

func (self *sfntFace) Close() error {
	if self.release == nil { return nil }
	err := self.release()
	self.release = nil
	return err
}

// Pixel aligned metrics from the outline control box.
func outlineMetrics(outline sfnt.Segments) GlyphMetrics {
	if len(outline) == 0 { return GlyphMetrics{} }
	bounds := outline.Bounds()
	minX := fract.FromFixed(bounds.Min.X).Floor()
	maxX := fract.FromFixed(bounds.Max.X).Ceil()
	top  := fract.FromFixed(-bounds.Min.Y).Ceil()
	bottom := fract.FromFixed(-bounds.Max.Y).Floor()
	return GlyphMetrics{
		Width: maxX - minX,
		Height: top - bottom,
		HoriBearingX: minX,
		HoriBearingY: top,
	}
}

func forEachPoint(outline sfnt.Segments, fn func(*fixed.Point26_6)) {
	for i := range outline {
		var n int
		switch outline[i].Op {
		case sfnt.SegmentOpMoveTo, sfnt.SegmentOpLineTo: n = 1
		case sfnt.SegmentOpQuadTo: n = 2
		case sfnt.SegmentOpCubeTo: n = 3
		}
		for j := 0; j < n; j++ {
			fn(&outline[i].Args[j])
		}
	}
}
