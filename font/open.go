package font

import "bytes"
import "errors"
import "path/filepath"
import "strings"

// An Opener opens the face with the given index from a font file.
// [Open] is the default one, but tests and embedders may provide
// their own.
type Opener func(path string, index int) (Face, error)

// Opens the face with the given index from the font file at the
// given path. TrueType and OpenType fonts and collections are
// supported, as well as BDF bitmap fonts. Type 1 and PCF files are
// recognized but reported as [ErrUnsupported].
//
// The file contents are mapped into memory when possible, and
// released when the face is closed.
func Open(path string, index int) (Face, error) {
	data, release, err := mapFile(path)
	if err != nil { return nil, err }
	face, err := parse(data, index, release, filepath.Base(path))
	if err != nil {
		_ = release()
		return nil, err
	}
	return face, nil
}

// Parses the face with the given index from the given font data.
// The bytes must not be modified while the face is in use.
func Parse(data []byte, index int) (Face, error) {
	return parse(data, index, func() error { return nil }, "")
}

func parse(data []byte, index int, release func() error, name string) (Face, error) {
	switch {
	case bytes.HasPrefix(data, []byte("STARTFONT")):
		if index != 0 { return nil, ErrBadFaceIndex }
		face, err := ParseBDF(bytes.NewReader(data))
		if err != nil { return nil, err }
		_ = release() // the BDF face keeps no references to data
		return face, nil
	case bytes.HasPrefix(data, []byte("\x01fcp")): // PCF
		return nil, ErrUnsupported
	case bytes.HasPrefix(data, []byte("%!PS")), bytes.HasPrefix(data, []byte{0x80, 0x01}):
		return nil, ErrUnsupported
	case isPCFName(name):
		return nil, ErrUnsupported
	}
	face, err := parseSFNT(data, index, release)
	if err != nil { return nil, err }
	return face, nil
}

func isPCFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pcf")
}

// Returns whether the error indicates that the font format is not
// supported by the engine.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
