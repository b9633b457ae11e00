package font

import "bufio"
import "encoding/hex"
import "fmt"
import "io"
import "strconv"
import "strings"

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/xtt/fract"
import "github.com/tinne26/xtt/mask"

var _ Face = (*bdfFace)(nil)

type bdfGlyph struct {
	name string
	code int32 // -1 if unencoded
	dwidth int
	bbx [4]int // width, height, x offset, y offset
	bitmap []byte
}

// A face parsed from a BDF bitmap font. Glyph 0 is the default
// character, blank unless the font declares DEFAULT_CHAR.
type bdfFace struct {
	info Info
	properties map[string]string
	glyphs []bdfGlyph
	codes map[uint32]GlyphIndex
	names map[string]GlyphIndex
	charmap Charmap
	registry string
	encoding string
	fontBBox [4]int
	ascent, descent int
	pixelSize int
	sized bool
}

// Parses a BDF bitmap font. Only the data needed to render the
// glyphs is kept, so the reader can be discarded afterwards.
func ParseBDF(r io.Reader) (Face, error) {
	face := &bdfFace{
		properties: make(map[string]string),
		codes: make(map[uint32]GlyphIndex),
		names: make(map[string]GlyphIndex),
	}
	err := face.parse(r)
	if err != nil { return nil, err }
	face.finish()
	return face, nil
}

func (self *bdfFace) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	fail := func(format string, args ...any) error {
		return fmt.Errorf("font: bdf line %d: %s", lineNum, fmt.Sprintf(format, args...))
	}

	var glyph *bdfGlyph
	inProperties := false
	bitmapRows := -1
	self.glyphs = append(self.glyphs, bdfGlyph{ code: -1 }) // default glyph
	for scanner.Scan() {
		lineNum += 1
		line := strings.TrimSpace(scanner.Text())
		if line == "" { continue }
		keyword, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if bitmapRows >= 0 {
			if keyword == "ENDCHAR" {
				self.glyphs = append(self.glyphs, *glyph)
				glyph, bitmapRows = nil, -1
				continue
			}
			if bitmapRows >= glyph.bbx[1] { continue }
			pitch := (glyph.bbx[0] + 7)/8
			row, err := decodeHexRow(line, pitch)
			if err != nil { return fail("%s", err) }
			copy(glyph.bitmap[bitmapRows*pitch:], row)
			bitmapRows += 1
			continue
		}

		if inProperties {
			if keyword == "ENDPROPERTIES" {
				inProperties = false
			} else {
				self.properties[keyword] = unquoteProperty(rest)
			}
			continue
		}

		switch keyword {
		case "STARTFONT", "COMMENT", "CONTENTVERSION", "METRICSSET", "CHARS", "ENDFONT", "FONT":
			if keyword == "FONT" { self.properties["FONT"] = rest }
		case "SIZE":
			values, err := atoiFields(rest, 1)
			if err != nil { return fail("%s", err) }
			self.pixelSize = values[0]
			if len(values) >= 3 && values[2] > 0 {
				self.pixelSize = (values[0]*values[2] + 36)/72
			}
		case "FONTBOUNDINGBOX":
			values, err := atoiFields(rest, 4)
			if err != nil { return fail("%s", err) }
			copy(self.fontBBox[:], values)
		case "STARTPROPERTIES":
			inProperties = true
		case "STARTCHAR":
			glyph = &bdfGlyph{ name: rest, code: -1, bbx: self.fontBBox }
		case "ENCODING", "SWIDTH", "DWIDTH", "BBX", "BITMAP", "SWIDTH1", "DWIDTH1", "VVECTOR":
			if glyph == nil { return fail("%s outside of a character", keyword) }
			switch keyword {
			case "ENCODING":
				values, err := atoiFields(rest, 1)
				if err != nil { return fail("%s", err) }
				glyph.code = int32(values[0])
				if glyph.code < 0 && len(values) > 1 { glyph.code = int32(values[1]) }
			case "DWIDTH":
				values, err := atoiFields(rest, 1)
				if err != nil { return fail("%s", err) }
				glyph.dwidth = values[0]
			case "BBX":
				values, err := atoiFields(rest, 4)
				if err != nil { return fail("%s", err) }
				copy(glyph.bbx[:], values)
				if glyph.bbx[0] < 0 || glyph.bbx[1] < 0 { return fail("negative BBX") }
			case "BITMAP":
				glyph.bitmap = make([]byte, (glyph.bbx[0] + 7)/8*glyph.bbx[1])
				bitmapRows = 0
			}
		case "ENDCHAR":
			if glyph == nil { return fail("unexpected ENDCHAR") }
			self.glyphs = append(self.glyphs, *glyph)
			glyph = nil
		default:
			// unknown keywords are ignored
		}
	}
	if err := scanner.Err(); err != nil { return err }
	if len(self.glyphs) == 1 { return fmt.Errorf("font: bdf without characters") }
	return nil
}

func (self *bdfFace) finish() {
	self.ascent = self.intProperty("FONT_ASCENT", self.fontBBox[1] + self.fontBBox[3])
	self.descent = self.intProperty("FONT_DESCENT", -self.fontBBox[3])
	self.pixelSize = self.intProperty("PIXEL_SIZE", self.pixelSize)
	if self.pixelSize <= 0 { self.pixelSize = self.ascent + self.descent }
	self.registry = strings.ToLower(self.properties["CHARSET_REGISTRY"])
	self.encoding = strings.ToLower(self.properties["CHARSET_ENCODING"])
	if self.registry == "iso10646" || (self.registry == "iso8859" && self.encoding == "1") {
		self.charmap = Charmap{ PlatformID: PlatformMicrosoft, EncodingID: EncodingMSUnicode }
	} else {
		self.charmap = Charmap{ PlatformID: PlatformNative }
	}

	maxAdvance := 0
	for i := 1; i < len(self.glyphs); i++ {
		glyph := &self.glyphs[i]
		if glyph.code >= 0 {
			if _, seen := self.codes[uint32(glyph.code)]; !seen {
				self.codes[uint32(glyph.code)] = GlyphIndex(i)
			}
		}
		if _, seen := self.names[glyph.name]; !seen && glyph.name != "" {
			self.names[glyph.name] = GlyphIndex(i)
		}
		maxAdvance = max(maxAdvance, glyph.dwidth)
	}

	// default glyph
	self.glyphs[0].dwidth = self.fontBBox[0]
	if value, found := self.properties["DEFAULT_CHAR"]; found {
		code, err := strconv.Atoi(value)
		if err == nil && code >= 0 {
			if index, found := self.codes[uint32(code)]; found {
				self.glyphs[0] = self.glyphs[index]
			}
		}
	}

	spacing := strings.ToUpper(self.properties["SPACING"])
	avgWidth := self.intProperty("AVERAGE_WIDTH", self.fontBBox[0]*10)
	self.info = Info{
		Format: "BDF",
		FamilyName: self.properties["FAMILY_NAME"],
		StyleName: self.styleName(),
		NumGlyphs: len(self.glyphs),
		FixedWidth: spacing == "M" || spacing == "C",
		HasGlyphNames: true,
		UnitsPerEm: self.pixelSize,
		Ascender: self.ascent,
		Descender: -self.descent,
		BBox: BBox{
			XMin: self.fontBBox[2], YMin: self.fontBBox[3],
			XMax: self.fontBBox[2] + self.fontBBox[0],
			YMax: self.fontBBox[3] + self.fontBBox[1],
		},
		MaxAdvanceWidth: maxAdvance,
		MaxAdvanceHeight: self.ascent + self.descent,
		Strikes: []Strike{{
			Width: (avgWidth + 5)/10,
			Height: self.ascent + self.descent,
			XPPEM: fract.FromInt(self.pixelSize),
			YPPEM: fract.FromInt(self.pixelSize),
		}},
	}
}

func (self *bdfFace) styleName() string {
	var parts []string
	if weight := self.properties["WEIGHT_NAME"]; weight != "" && !strings.EqualFold(weight, "medium") {
		parts = append(parts, weight)
	}
	switch strings.ToUpper(self.properties["SLANT"]) {
	case "I": parts = append(parts, "Italic")
	case "O": parts = append(parts, "Oblique")
	}
	if len(parts) == 0 { return "Regular" }
	return strings.Join(parts, " ")
}

func (self *bdfFace) intProperty(key string, fallback int) int {
	value, found := self.properties[key]
	if !found { return fallback }
	n, err := strconv.Atoi(value)
	if err != nil { return fallback }
	return n
}

func (self *bdfFace) Info() *Info { return &self.info }
func (self *bdfFace) Charmaps() []Charmap { return []Charmap{self.charmap} }

func (self *bdfFace) Charset() (string, string, bool) {
	return self.registry, self.encoding, self.registry != ""
}

func (self *bdfFace) CharIndex(charmap Charmap, code uint32) GlyphIndex {
	if charmap != self.charmap { return 0 }
	return self.codes[code]
}

func (self *bdfFace) NameIndex(name string) GlyphIndex {
	return self.names[name]
}

func (self *bdfFace) Table(string) ([]byte, error) { return nil, ErrNoTable }

func (self *bdfFace) Name(id sfnt.NameID) (string, error) {
	var value string
	switch id {
	case sfnt.NameIDFamily: value = self.properties["FAMILY_NAME"]
	case sfnt.NameIDSubfamily: value = self.info.StyleName
	case sfnt.NameIDFull:
		value = self.properties["FULL_NAME"]
		if value == "" { value = self.properties["FONT"] }
	case sfnt.NameIDCopyright: value = self.properties["COPYRIGHT"]
	case sfnt.NameIDTrademark: value = self.properties["NOTICE"]
	}
	if value == "" { return "", sfnt.ErrNotFound }
	return value, nil
}

func (self *bdfFace) SetCharSize(width, height fract.Unit, xres, yres int) error {
	if height == 0 { height = width }
	if yres == 0 { yres = 72 }
	ppem := (int64(height)*int64(yres) + 36)/72
	return self.SetPixelSizes(0, int((ppem + 32) >> 6))
}

func (self *bdfFace) SetPixelSizes(xppem, yppem int) error {
	if yppem == 0 { yppem = xppem }
	if yppem != self.pixelSize { return ErrBadSize }
	self.sized = true
	return nil
}

func (self *bdfFace) SizeMetrics() SizeMetrics {
	if !self.sized { return SizeMetrics{} }
	return SizeMetrics{
		XPPEM: self.pixelSize,
		YPPEM: self.pixelSize,
		XScale: fract.FixedOne,
		YScale: fract.FixedOne,
		Ascender: fract.FromInt(self.ascent),
		Descender: fract.FromInt(-self.descent),
		Height: fract.FromInt(self.ascent + self.descent),
		MaxAdvance: fract.FromInt(self.info.MaxAdvanceWidth),
	}
}

// Bitmap faces ignore transforms.
func (self *bdfFace) SetTransform(*fract.Matrix) {}

func (self *bdfFace) SbitMetrics(index GlyphIndex) (GlyphMetrics, bool) {
	if !self.sized || int(index) >= len(self.glyphs) { return GlyphMetrics{}, false }
	glyph := &self.glyphs[index]
	return GlyphMetrics{
		Width: fract.FromInt(glyph.bbx[0]),
		Height: fract.FromInt(glyph.bbx[1]),
		HoriBearingX: fract.FromInt(glyph.bbx[2]),
		HoriBearingY: fract.FromInt(glyph.bbx[3] + glyph.bbx[1]),
		HoriAdvance: fract.FromInt(glyph.dwidth),
		VertAdvance: fract.FromInt(self.ascent + self.descent),
	}, true
}

func (self *bdfFace) LoadGlyph(index GlyphIndex, _ LoadFlags) (*Glyph, error) {
	if int(index) >= len(self.glyphs) { return nil, ErrBadGlyph }
	metrics, ok := self.SbitMetrics(index)
	if !ok { return nil, ErrBadSize }
	source := &self.glyphs[index]
	pitch := (source.bbx[0] + 7)/8
	bitmap := &mask.Bitmap{
		Width: source.bbx[0],
		Rows: source.bbx[1],
		Pitch: pitch,
		Buffer: make([]byte, pitch*source.bbx[1]),
		Left: source.bbx[2],
		Top: source.bbx[3] + source.bbx[1],
	}
	copy(bitmap.Buffer, source.bitmap)
	return &Glyph{ Index: index, Format: FormatBitmap, Metrics: metrics, Bitmap: bitmap }, nil
}

func (self *bdfFace) RenderMono(glyph *Glyph) (*mask.Bitmap, error) {
	if glyph.Bitmap == nil { return nil, ErrBadGlyph }
	return glyph.Bitmap, nil
}

func (self *bdfFace) Close() error { return nil }

func atoiFields(text string, minCount int) ([]int, error) {
	fields := strings.Fields(text)
	if len(fields) < minCount {
		return nil, fmt.Errorf("expected %d values, got %d", minCount, len(fields))
	}
	values := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil { return nil, err }
		values[i] = n
	}
	return values, nil
}

func unquoteProperty(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value) - 1] == '"' {
		return strings.ReplaceAll(value[1 : len(value) - 1], `""`, `"`)
	}
	return value
}

func decodeHexRow(line string, pitch int) ([]byte, error) {
	if len(line) % 2 == 1 { line += "0" }
	if len(line) > pitch*2 { line = line[:pitch*2] }
	return hex.DecodeString(line)
}
