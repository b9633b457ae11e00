package font

import "errors"

import "golang.org/x/image/font/sfnt"

var ErrNotFound = errors.New("font property not found or empty")

// Returns the requested naming table entry for the given face.
// The returned property string might be empty even when error is nil.
// If the property is missing, [ErrNotFound] will be returned.
func GetProperty(face Face, property sfnt.NameID) (string, error) {
	str, err := face.Name(property)
	if errors.Is(err, sfnt.ErrNotFound) { return "", ErrNotFound }
	return str, err
}

// Returns the family name of the given face. For BDF faces this is
// the FAMILY_NAME property.
func GetFamily(face Face) (string, error) {
	return GetProperty(face, sfnt.NameIDFamily)
}

// Returns the subfamily name of the given face. In most cases, the
// value will be one of:
//  - Regular, Italic, Bold, Bold Italic
func GetSubfamily(face Face) (string, error) {
	return GetProperty(face, sfnt.NameIDSubfamily)
}

// Returns the full name of the given face.
func GetName(face Face) (string, error) {
	return GetProperty(face, sfnt.NameIDFull)
}

// Returns the copyright notice of the given face.
func GetCopyright(face Face) (string, error) {
	return GetProperty(face, sfnt.NameIDCopyright)
}

// Returns the PostScript name of the given face.
func GetPostScriptName(face Face) (string, error) {
	return GetProperty(face, sfnt.NameIDPostScript)
}

// Returns the codes in the given list that the charmap doesn't map
// to any glyph.
func GetMissingCodes(face Face, charmap Charmap, codes []uint32) []uint32 {
	missing := make([]uint32, 0)
	for _, code := range codes {
		if face.CharIndex(charmap, code) == 0 {
			missing = append(missing, code)
		}
	}
	return missing
}
