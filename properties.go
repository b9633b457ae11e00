package xtt

import "math"
import "strings"

import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/ttcap"
import "github.com/tinne26/xtt/xlfd"

// The rasterizer name reported in the RASTERIZER_NAME property.
const RasterizerName = "xtt"

// An interned string. The zero atom is never assigned.
type Atom uint32

// Interns property names and string values. Atoms are never freed.
type AtomTable struct {
	ids map[string]Atom
	names []string
}

// Creates an empty atom table.
func NewAtomTable() *AtomTable {
	return &AtomTable{ ids: make(map[string]Atom), names: []string{""} }
}

// Returns the atom for the string, creating it if needed.
func (self *AtomTable) Intern(name string) Atom {
	if atom, found := self.ids[name]; found { return atom }
	atom := Atom(len(self.names))
	self.names = append(self.names, name)
	self.ids[name] = atom
	return atom
}

// Returns the existing atom for the string, if any.
func (self *AtomTable) Lookup(name string) (Atom, bool) {
	atom, found := self.ids[name]
	return atom, found
}

// Returns the string for the atom, or "" for unknown atoms.
func (self *AtomTable) Name(atom Atom) string {
	if int(atom) >= len(self.names) { return "" }
	return self.names[atom]
}

// Number of interned atoms.
func (self *AtomTable) Len() int { return len(self.names) - 1 }

// A font property. String values store the atom of the string in
// Value.
type Property struct {
	Name Atom
	Value int64
	IsString bool
}

type propertyBuilder struct {
	atoms *AtomTable
	props []Property
}

func (self *propertyBuilder) addInt(name string, value int) {
	self.props = append(self.props, Property{ Name: self.atoms.Intern(name), Value: int64(value) })
}

func (self *propertyBuilder) addString(name, value string) {
	self.props = append(self.props, Property{
		Name: self.atoms.Intern(name),
		Value: int64(self.atoms.Intern(value)),
		IsString: true,
	})
}

func roundHalfUp(x float64) int { return int(math.Floor(x + 0.5)) }

// Synthesizes the standard font properties from the request, the
// completed values and the face tables.
func (self *Font) setProperties(rawName string, name *xlfd.Name, vals *xlfd.Values, result *ttcap.Result) {
	info := self.info
	face := self.instance.face
	engine := face.engine
	faceInfo := engine.Info()
	builder := propertyBuilder{ atoms: self.backend.atoms }

	if name != nil {
		scaled := *name
		scaled.SetValues(vals)
		builder.addString("FONT", scaled.String())
		for i, field := range xlfd.FieldNames {
			switch i {
			case 6: builder.addInt(field, int(math.Abs(vals.PixelMatrix[3]) + 0.5))
			case 7: builder.addInt(field, int(math.Abs(vals.PointMatrix[3])*10 + 0.5))
			case 8: builder.addInt(field, vals.X)
			case 9: builder.addInt(field, vals.Y)
			case 11: builder.addInt(field, vals.Width)
			case 13:
				value := name.Field(i)
				if cut := strings.IndexByte(value, '['); cut >= 0 { value = value[ : cut] }
				builder.addString(field, value)
			default:
				builder.addString(field, name.Field(i))
			}
		}
	} else {
		builder.addString("FONT", rawName)
	}

	builder.addInt("RAW_PIXEL_SIZE", 1000)
	if vals.Y > 0 { builder.addInt("RAW_POINT_SIZE", int(72270.0/float64(vals.Y) + 0.5)) }
	upm := float64(faceInfo.UnitsPerEm)
	if upm == 0 { upm = fallbackUnitsPerEm }
	if !face.bitmap {
		builder.addInt("RAW_AVERAGE_WIDTH", self.instance.rawAverageWidth)
		builder.addInt("RAW_ASCENT", int(float64(faceInfo.Ascender)/upm*1000))
		builder.addInt("RAW_DESCENT", int(-(float64(faceInfo.Descender)/upm*1000)))
	}
	if result.FontProperties {
		builder.addInt("FONT_ASCENT", info.FontAscent)
		builder.addInt("FONT_DESCENT", info.FontDescent)
	}

	if value, err := font.GetCopyright(engine); err == nil && value != "" {
		builder.addString("COPYRIGHT", value)
	}
	if value, err := font.GetProperty(engine, sfnt.NameIDFull); err == nil && value != "" {
		builder.addString("FACE_NAME", value)
	}
	if value, err := font.GetPostScriptName(engine); err == nil && value != "" {
		builder.addString("_ADOBE_POSTSCRIPT_FONTNAME", value)
	}

	if result.FontProperties {
		if os2, err := font.ReadOS2(engine); err == nil {
			scaleY := func(v int16) int { return roundHalfUp(float64(v)/upm*vals.PixelMatrix[3]) }
			scaleX := func(v int16) int { return roundHalfUp(float64(v)/upm*vals.PixelMatrix[0]) }
			builder.addInt("SUBSCRIPT_SIZE", scaleY(os2.SubscriptYSize))
			builder.addInt("SUBSCRIPT_X", scaleX(os2.SubscriptXOffset))
			builder.addInt("SUBSCRIPT_Y", scaleY(os2.SubscriptYOffset))
			builder.addInt("SUPERSCRIPT_SIZE", scaleY(os2.SuperscriptYSize))
			builder.addInt("SUPERSCRIPT_X", scaleX(os2.SuperscriptXOffset))
			builder.addInt("SUPERSCRIPT_Y", scaleY(os2.SuperscriptYOffset))
		}
	}
	post, postErr := font.ReadPost(engine)
	if result.FontProperties && postErr == nil {
		thickness := roundHalfUp(float64(post.UnderlineThickness)/upm*vals.PixelMatrix[3])
		builder.addInt("UNDERLINE_THICKNESS", max(1, thickness))
		position := roundHalfUp(-float64(post.UnderlinePosition)/upm*vals.PixelMatrix[3])
		builder.addInt("UNDERLINE_POSITION", position)
	}
	if postErr == nil && vals.PixelMatrix[0] == vals.PixelMatrix[3] {
		builder.addInt("ITALIC_ANGLE", 90*64 + int(math.Floor(post.ItalicAngle*64)))
	}

	builder.addString("FONT_TYPE", faceInfo.Format)
	builder.addString("RASTERIZER_NAME", RasterizerName)
	info.Properties = builder.props
}

// Returns the value of the named integer property.
func (self *FontInfo) Property(name string) (int64, bool) {
	atom, found := self.atoms.Lookup(name)
	if !found { return 0, false }
	for _, prop := range self.Properties {
		if prop.Name == atom && !prop.IsString { return prop.Value, true }
	}
	return 0, false
}

// Returns the value of the named string property.
func (self *FontInfo) StringProperty(name string) (string, bool) {
	atom, found := self.atoms.Lookup(name)
	if !found { return "", false }
	for _, prop := range self.Properties {
		if prop.Name == atom && prop.IsString { return self.atoms.Name(Atom(prop.Value)), true }
	}
	return "", false
}

// The atom table the property names and values are interned in.
func (self *FontInfo) Atoms() *AtomTable { return self.atoms }
