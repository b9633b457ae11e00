// Package xlfd parses X Logical Font Description names and computes
// the scalable values (pixel and point matrices, resolutions,
// average width and character subset ranges) they describe.
package xlfd

import "errors"
import "strings"

var ErrMalformed = errors.New("xlfd: malformed font name")

// The fourteen fields of an XLFD name, in order. Fields are kept as
// written, including matrix and range annotations.
type Name struct {
	Foundry string
	Family string
	Weight string
	Slant string
	Setwidth string
	AddStyle string
	PixelSize string
	PointSize string
	ResolutionX string
	ResolutionY string
	Spacing string
	AverageWidth string
	Registry string
	Encoding string
}

// Field names in XLFD order, matching the standard font property names.
var FieldNames = [14]string{
	"FOUNDRY", "FAMILY_NAME", "WEIGHT_NAME", "SLANT", "SETWIDTH_NAME",
	"ADD_STYLE_NAME", "PIXEL_SIZE", "POINT_SIZE", "RESOLUTION_X",
	"RESOLUTION_Y", "SPACING", "AVERAGE_WIDTH", "CHARSET_REGISTRY",
	"CHARSET_ENCODING",
}

// Parses an XLFD name. Names must start with a dash and have exactly
// fourteen fields, but the fields may be empty. Dashes inside
// brackets don't split fields.
func Parse(name string) (*Name, error) {
	if !strings.HasPrefix(name, "-") { return nil, ErrMalformed }
	fields := make([]string, 0, 14)
	depth, start := 0, 1
	for i := 1; i < len(name); i++ {
		switch name[i] {
		case '[': depth += 1
		case ']': depth -= 1
		case '-':
			if depth > 0 { continue }
			fields = append(fields, name[start : i])
			start = i + 1
		}
	}
	fields = append(fields, name[start:])
	if len(fields) != 14 || depth != 0 { return nil, ErrMalformed }

	var parsed Name
	for i, value := range fields {
		*parsed.field(i) = value
	}
	return &parsed, nil
}

func (self *Name) field(i int) *string {
	switch i {
	case 0: return &self.Foundry
	case 1: return &self.Family
	case 2: return &self.Weight
	case 3: return &self.Slant
	case 4: return &self.Setwidth
	case 5: return &self.AddStyle
	case 6: return &self.PixelSize
	case 7: return &self.PointSize
	case 8: return &self.ResolutionX
	case 9: return &self.ResolutionY
	case 10: return &self.Spacing
	case 11: return &self.AverageWidth
	case 12: return &self.Registry
	case 13: return &self.Encoding
	}
	panic("xlfd: field index out of range")
}

// Returns the i-th field value, 0 <= i < 14.
func (self *Name) Field(i int) string { return *self.field(i) }

// Sets the i-th field value, 0 <= i < 14.
func (self *Name) SetField(i int, value string) { *self.field(i) = value }

func (self *Name) String() string {
	var builder strings.Builder
	for i := 0; i < 14; i++ {
		builder.WriteByte('-')
		builder.WriteString(self.Field(i))
	}
	return builder.String()
}

// Returns the lowercased "registry-encoding" charset name, without
// any subset ranges.
func (self *Name) Charset() string {
	encoding, _, _ := strings.Cut(self.Encoding, "[")
	return strings.ToLower(self.Registry + "-" + encoding)
}

// Returns the spacing field lowercased ('p', 'm', 'c'), or 0 when
// unset or unknown.
func (self *Name) SpacingMode() byte {
	if len(self.Spacing) != 1 { return 0 }
	switch c := self.Spacing[0] | 0x20; c {
	case 'p', 'm', 'c': return c
	}
	return 0
}

// Extracts the charset from the last two fields of an XLFD-like
// name, without parsing the rest. Subset ranges are dropped. Returns
// "" if the name doesn't contain at least two dashes.
func CharsetFromName(name string) string {
	last := strings.LastIndexByte(name, '-')
	if last <= 0 { return "" }
	prev := strings.LastIndexByte(name[:last], '-')
	if prev <= 0 { return "" }
	charset, _, _ := strings.Cut(name[prev + 1:], "[")
	return charset
}
