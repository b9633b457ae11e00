package ttcap

import "fmt"
import "strconv"
import "strings"

type recordType uint8

const (
	typeString recordType = iota
	typeDouble
	typeBool
	typeVoid
)

var validRecords = []struct {
	name string
	kind recordType
}{
	{ "FontFile", typeString },
	{ "FaceNumber", typeString },
	{ "AutoItalic", typeDouble },
	{ "DoubleStrike", typeString },
	{ "FontProperties", typeBool },
	{ "ForceSpacing", typeString },
	{ "ScaleBBoxWidth", typeString },
	{ "ScaleWidth", typeDouble },
	{ "EncodingOptions", typeString },
	{ "Hinting", typeBool },
	{ "VeryLazyMetrics", typeBool },
	{ "CodeRange", typeString },
	{ "EmbeddedBitmap", typeString },
	{ "VeryLazyBitmapWidthScale", typeDouble },
	{ "ForceConstantSpacingCodeRange", typeString },
	{ "ForceConstantSpacingMetrics", typeString },
	{ "Dummy", typeVoid },
}

// Two letter capability names.
var aliases = map[string]string{
	"fn": "FaceNumber",
	"ai": "AutoItalic",
	"ds": "DoubleStrike",
	"fp": "FontProperties",
	"fs": "ForceSpacing",
	"bw": "ScaleBBoxWidth",
	"sw": "ScaleWidth",
	"eo": "EncodingOptions",
	"vl": "VeryLazyMetrics",
	"bs": "VeryLazyBitmapWidthScale",
	"cr": "CodeRange",
	"eb": "EmbeddedBitmap",
	"hi": "Hinting",
	"fc": "ForceConstantSpacingCodeRange",
	"fm": "ForceConstantSpacingMetrics",
}

type recordValue struct {
	kind recordType
	str string
	dbl float64
	boolean bool
}

// A set of typed capability records. When a record is added more
// than once, the last value wins.
type Records struct {
	values map[string]recordValue
}

func lookupRecord(name string) (string, recordType, bool) {
	for _, record := range validRecords {
		if strings.EqualFold(record.name, name) {
			return record.name, record.kind, true
		}
	}
	return "", 0, false
}

// Adds a record by its full name (case insensitive), converting the
// value to the record's type.
func (self *Records) Add(name, value string) error {
	canonical, kind, found := lookupRecord(name)
	if !found { return fmt.Errorf("%w: invalid record name %q", ErrBadFontPath, name) }

	rec := recordValue{ kind: kind }
	switch kind {
	case typeDouble:
		trimmed := strings.TrimLeft(value, " \t\n\v\f\r")
		if trimmed != "" {
			dbl, n := scanFloat(trimmed)
			if n != len(trimmed) {
				return fmt.Errorf("%w: %s record needs floating point value", ErrBadFontPath, canonical)
			}
			rec.dbl = dbl
		}
	case typeBool:
		boolean, ok := parseBool(value)
		if !ok { return fmt.Errorf("%w: %s record needs boolean value", ErrBadFontPath, canonical) }
		rec.boolean = boolean
	case typeVoid:
		if value != "" { return fmt.Errorf("%w: %s record needs void", ErrBadFontPath, canonical) }
	default:
		rec.str = value
	}

	if self.values == nil { self.values = make(map[string]recordValue) }
	self.values[canonical] = rec
	return nil
}

// Adds a record by its two letter alias or full name.
func (self *Records) AddCapability(key, value string) error {
	if name, found := aliases[strings.ToLower(key)]; found {
		return self.Add(name, value)
	}
	return self.Add(key, value)
}

func (self *Records) Len() int { return len(self.values) }

func (self *Records) lookup(name string, kind recordType) (recordValue, bool) {
	value, found := self.values[name]
	if !found || value.kind != kind { return recordValue{}, false }
	return value, true
}

func (self *Records) Text(name string) (string, bool) {
	value, found := self.lookup(name, typeString)
	return value.str, found
}

func (self *Records) Float(name string) (float64, bool) {
	value, found := self.lookup(name, typeDouble)
	return value.dbl, found
}

func (self *Records) Bool(name string) (bool, bool) {
	value, found := self.lookup(name, typeBool)
	return value.boolean, found
}

func (self *Records) Has(name string) bool {
	_, found := self.values[name]
	return found
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "yes", "y", "on", "true", "t", "ok": return true, true
	case "no", "n", "off", "false", "f", "bad": return false, true
	}
	return false, false
}

// Formats a record value for diagnostics.
func (self *Records) Describe(name string) string {
	value, found := self.values[name]
	if !found { return "" }
	switch value.kind {
	case typeDouble: return strconv.FormatFloat(value.dbl, 'g', -1, 64)
	case typeBool: return strconv.FormatBool(value.boolean)
	case typeVoid: return "void"
	}
	return strconv.Quote(value.str)
}
