// Package fontenc provides the font encoding tables used to map the
// codes of an XLFD charset into a font's character maps.
//
// An [Encoding] describes a code space (linear, or a matrix of rows
// and columns) and lists the [Mapping] values that can be used to
// reach glyphs: TrueType cmaps identified by platform and encoding
// ids, Unicode, or PostScript glyph names. Encodings are looked up
// through a [Registry], which knows the built in encodings and can
// load more from encoding files.
package fontenc

import "strings"

// Kinds of mappings.
type MappingType uint8

const (
	TrueType MappingType = 1 // a cmap with a given platform and encoding id
	Unicode MappingType = 2
	PostScript MappingType = 3 // glyph names
)

func (self MappingType) String() string {
	switch self {
	case TrueType: return "TrueType"
	case Unicode: return "Unicode"
	case PostScript: return "PostScript"
	default: return "Unknown"
	}
}

// A font encoding.
type Encoding struct {
	Name string
	Aliases []string

	// For linear encodings (RowSize == 0), the valid codes are
	// [First, Size). For matrix encodings rows go in [First, Size)
	// and columns in [FirstCol, RowSize).
	Size int
	RowSize int
	First int
	FirstCol int

	Mappings []*Mapping
}

// Whether the encoding uses two byte codes laid out in rows.
func (self *Encoding) IsMatrix() bool { return self.RowSize != 0 }

// Reports whether the encoding has the given name, either as its
// main name or as an alias. Comparison is case insensitive.
func (self *Encoding) HasName(name string) bool {
	if strings.EqualFold(self.Name, name) { return true }
	for _, alias := range self.Aliases {
		if strings.EqualFold(alias, name) { return true }
	}
	return false
}

// Returns the first mapping of the given type. Positive pid or eid
// values must also match.
func (self *Encoding) FindMapping(kind MappingType, pid, eid int) *Mapping {
	if self == nil { return nil }
	for _, mapping := range self.Mappings {
		if mapping.Type != kind { continue }
		if pid > 0 && mapping.PID != pid { continue }
		if eid > 0 && mapping.EID != eid { continue }
		return mapping
	}
	return nil
}

func (self *Encoding) addMapping(mapping *Mapping) {
	mapping.Encoding = self
	self.Mappings = append(self.Mappings, mapping)
}

func (self *Encoding) inRange(code uint32) bool {
	if self.RowSize == 0 {
		return code >= uint32(self.First) && code < uint32(self.Size)
	}
	row, col := code/0x100, code & 0xFF
	return row >= uint32(self.First) && row < uint32(self.Size) &&
		col >= uint32(self.FirstCol) && col < uint32(self.RowSize)
}

// A way to map the codes of an encoding into a font.
type Mapping struct {
	Type MappingType
	PID int
	EID int
	Encoding *Encoding

	recode func(code uint32) uint32
	name func(code uint32) string
}

// Converts a code of the encoding to a code of the mapping's target
// (Unicode or cmap codes). Codes outside the encoding give 0. When
// the mapping has no conversion, the code is returned unchanged.
func (self *Mapping) Recode(code uint32) uint32 {
	if self.Encoding == nil || self.recode == nil { return code }
	if !self.Encoding.inRange(code) { return 0 }
	return self.recode(code)
}

// Returns the glyph name for the given code, or "" if the mapping
// doesn't name glyphs or the code has no name.
func (self *Mapping) Name(code uint32) string {
	if self.Encoding == nil || self.name == nil { return "" }
	enc := self.Encoding
	if enc.RowSize == 0 {
		if code >= uint32(enc.Size) { return "" }
	} else if code/0x100 >= uint32(enc.Size) || code & 0xFF >= uint32(enc.RowSize) {
		return ""
	}
	return self.name(code)
}

// Extracts the charset ("registry-encoding") from an XLFD name,
// without any subset ranges. Returns "" if the name doesn't
// have at least two dashes past its start.
func FromXLFD(name string) string {
	last := strings.LastIndexByte(name, '-')
	if last <= 0 { return "" }
	prev := strings.LastIndexByte(name[:last], '-')
	if prev <= 0 { return "" }
	charset := name[prev + 1:]
	if bracket := strings.IndexByte(charset, '['); bracket >= 0 {
		charset = charset[:bracket]
	}
	return charset
}
