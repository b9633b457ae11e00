package xtt

import "log/slog"
import "strings"

import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/fontenc"

// The default encoding for names without a charset.
const DefaultEncoding = "iso8859-1"

// How a [Mapping] turns codes into glyph indices.
type MappingKind uint8

const (
	NativeMapping MappingKind = iota // codes below 256 go straight to the charmap
	TableMapping // codes are recoded and looked up in a charmap
	NamedMapping // codes are recoded into glyph names
)

func (self MappingKind) String() string {
	switch self {
	case NativeMapping: return "native"
	case TableMapping: return "table"
	case NamedMapping: return "named"
	default: return "unknown"
	}
}

// The strategy picked to map the codes of a requested encoding into
// the glyphs of a face.
type Mapping struct {
	Kind MappingKind
	Charmap font.Charmap
	Base uint32 // offset added to recoded codes
	Table *fontenc.Mapping // nil for native mappings

	// The encoding describing the code space, or nil if unknown. Native
	// mappings may still have one.
	Encoding *fontenc.Encoding
}

// Picks the mapping for the encoding named by the given XLFD name,
// which defaults to iso8859-1 when it has no charset.
//
// Faces declaring a non Unicode charset of their own can only be
// used with that same charset, anything else fails with
// [BadFontFormat]. Otherwise the encoding must be known to the
// registry, or [BadFontName] is returned.
func PickMapping(registry *fontenc.Registry, xlfdName, realPath string, face font.Face, logger *slog.Logger) (*Mapping, error) {
	if logger == nil { logger = Logger() }
	encodingName := strings.ToLower(fontenc.FromXLFD(xlfdName))
	if encodingName == "" { encodingName = DefaultEncoding }
	symbol := strings.HasSuffix(encodingName, "fontspecific") || encodingName == "microsoft-symbol"

	if reg, enc, ok := face.Charset(); ok && !strings.EqualFold(reg, "iso10646") {
		if !strings.EqualFold(reg + "-" + enc, encodingName) {
			return nil, newError(BadFontFormat, "pick mapping", nil)
		}
		return nativeMapping(face, registry.FindFor(encodingName, realPath)), nil
	}

	encoding := registry.FindFor(encodingName, realPath)
	if encoding == nil && symbol {
		encoding = registry.FindFor("microsoft-symbol", realPath)
	}
	if encoding == nil {
		logger.Warn("unknown encoding", "encoding", encodingName, "font", realPath)
		return nil, newError(BadFontName, "pick mapping", nil)
	}

	if face.Info().HasGlyphNames {
		for _, mapping := range encoding.Mappings {
			if mapping.Type != fontenc.PostScript { continue }
			return &Mapping{ Kind: NamedMapping, Table: mapping, Encoding: encoding }, nil
		}
	}

	for _, mapping := range encoding.Mappings {
		charmap, found := findCharmap(face, mapping)
		if !found { continue }
		picked := &Mapping{ Kind: TableMapping, Charmap: charmap, Table: mapping, Encoding: encoding }
		if symbol {
			// the symbol cmap is addressed from usFirstCharIndex
			os2, err := font.ReadOS2(face)
			if err == nil { picked.Base = uint32(os2.FirstCharIndex) - 0x20 }
		}
		return picked, nil
	}

	logger.Debug("no charmap for encoding, using native mapping", "encoding", encodingName, "font", realPath)
	return nativeMapping(face, encoding), nil
}

func nativeMapping(face font.Face, encoding *fontenc.Encoding) *Mapping {
	charmaps := face.Charmaps()
	mapping := &Mapping{ Kind: NativeMapping, Encoding: encoding }
	if len(charmaps) > 0 { mapping.Charmap = charmaps[0] }
	for _, charmap := range charmaps {
		if charmap.PlatformID == font.PlatformMicrosoft && charmap.EncodingID == font.EncodingMSUnicode {
			mapping.Charmap = charmap
			break
		}
	}
	return mapping
}

// Finds the face charmap a fontenc mapping refers to. Unicode
// mappings only consider the Microsoft Unicode charmap.
func findCharmap(face font.Face, mapping *fontenc.Mapping) (font.Charmap, bool) {
	for _, charmap := range face.Charmaps() {
		switch mapping.Type {
		case fontenc.TrueType:
			if int(charmap.PlatformID) == mapping.PID && int(charmap.EncodingID) == mapping.EID {
				return charmap, true
			}
		case fontenc.Unicode:
			if charmap.PlatformID == font.PlatformMicrosoft && charmap.EncodingID == font.EncodingMSUnicode {
				return charmap, true
			}
		}
	}
	return font.Charmap{}, false
}

// Returns the glyph index for the given code, or 0 if the face has
// no glyph for it.
func (self *Mapping) Remap(face font.Face, code uint32) font.GlyphIndex {
	switch self.Kind {
	case NamedMapping:
		name := self.Table.Name(code)
		if name == "" { return 0 }
		return face.NameIndex(name)
	case TableMapping:
		return face.CharIndex(self.Charmap, self.Table.Recode(code) + self.Base)
	default:
		if code >= 0x100 { return 0 }
		return face.CharIndex(self.Charmap, code)
	}
}
