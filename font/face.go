package font

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/xtt/fract"
import "github.com/tinne26/xtt/mask"

// Index of a glyph within a face.
type GlyphIndex uint32

// Flags controlling how glyphs are loaded.
type LoadFlags uint8

const (
	LoadDefault LoadFlags = 0
	LoadNoHinting LoadFlags = 1 << iota // don't round advances to whole pixels
	LoadNoBitmap // ignore embedded bitmaps
)

// Common platform identifiers for [Charmap] values.
const (
	PlatformUnicode uint16 = 0
	PlatformApple uint16 = 1
	PlatformISO uint16 = 2
	PlatformMicrosoft uint16 = 3
	PlatformNative uint16 = 0xFFFF // charmap using the font's own charset
)

// Common Microsoft encoding identifiers.
const (
	EncodingMSSymbol uint16 = 0
	EncodingMSUnicode uint16 = 1
	EncodingMSShiftJIS uint16 = 2
	EncodingMSPRC uint16 = 3
	EncodingMSBig5 uint16 = 4
	EncodingMSWansung uint16 = 5
	EncodingMSUCS4 uint16 = 10
)

// A character map identifier.
type Charmap struct {
	PlatformID uint16
	EncodingID uint16
}

// A fixed bitmap size available in a face.
type Strike struct {
	Width, Height int // nominal pixel sizes
	XPPEM, YPPEM fract.Unit
}

// Metrics of the currently selected size. Scales convert font
// units into 26.6 pixel values, while the rest of fields are
// already expressed in 26.6 pixels.
type SizeMetrics struct {
	XPPEM, YPPEM int
	XScale, YScale fract.Fixed
	Ascender fract.Unit
	Descender fract.Unit
	Height fract.Unit
	MaxAdvance fract.Unit
}

// Glyph metrics in 26.6 pixels, with y growing upwards.
type GlyphMetrics struct {
	Width, Height fract.Unit
	HoriBearingX, HoriBearingY fract.Unit
	HoriAdvance fract.Unit
	VertAdvance fract.Unit
}

type GlyphFormat uint8
const (
	FormatOutline GlyphFormat = iota
	FormatBitmap
)

// A loaded glyph. Outline glyphs are scaled and transformed, using
// the [sfnt.Segments] conventions (26.6, y-down). Bitmap glyphs carry
// their bitmap already.
type Glyph struct {
	Index GlyphIndex
	Format GlyphFormat
	Metrics GlyphMetrics
	Outline sfnt.Segments
	Bitmap *mask.Bitmap
}

// A bounding box in font units, y growing upwards.
type BBox struct {
	XMin, YMin, XMax, YMax int
}

// General information about a face. Metrics are given in font units.
type Info struct {
	Format string // "TrueType", "CFF" or "BDF"
	FamilyName string
	StyleName string
	NumGlyphs int
	Scalable bool
	SFNT bool
	FixedWidth bool
	HasGlyphNames bool
	HasVerticalMetrics bool
	MaxContours int
	UnitsPerEm int
	Ascender int
	Descender int
	BBox BBox
	MaxAdvanceWidth int
	MaxAdvanceHeight int
	Strikes []Strike
}

// Face is the font engine interface: a parsed font file, with a
// current size and transform, able to map characters to glyphs and
// to load and render those glyphs.
//
// Faces can't be used concurrently.
type Face interface {
	Info() *Info

	// Character maps available in the face. Every face has at least one.
	Charmaps() []Charmap

	// Maps a character code to a glyph index using the given charmap.
	// Returns 0 when the code is not mapped.
	CharIndex(charmap Charmap, code uint32) GlyphIndex

	// Returns the glyph with the given PostScript name, or 0 if none.
	NameIndex(name string) GlyphIndex

	// Returns the registry and encoding of the face's own charset
	// when it declares one (e.g. "iso8859", "1" for BDF fonts).
	Charset() (registry, encoding string, ok bool)

	// Returns the raw bytes of an SFNT table. Faces that are not SFNT
	// based always return [ErrNoTable].
	Table(tag string) ([]byte, error)

	// Returns an entry of the naming table, like the copyright notice
	// or the PostScript name.
	Name(id sfnt.NameID) (string, error)

	// Sets the nominal size from a 26.6 point size and the device
	// resolution in dots per inch.
	SetCharSize(width, height fract.Unit, xres, yres int) error

	// Selects the strike with the given nominal pixels per em.
	SetPixelSizes(xppem, yppem int) error

	SizeMetrics() SizeMetrics

	// Sets the transform applied to loaded outlines. A nil matrix
	// resets it to the identity.
	SetTransform(*fract.Matrix)

	// Returns the metrics of the embedded bitmap for the glyph at the
	// currently selected size, if the face has one.
	SbitMetrics(GlyphIndex) (GlyphMetrics, bool)

	LoadGlyph(GlyphIndex, LoadFlags) (*Glyph, error)

	// Renders the glyph into a monochrome bitmap.
	RenderMono(*Glyph) (*mask.Bitmap, error)

	Close() error
}
