package font

import "errors"

var ErrOutOfMemory = errors.New("font: out of memory")
var ErrUnsupported = errors.New("font: unsupported font format")
var ErrNoTable = errors.New("font: table not found")
var ErrBadGlyph = errors.New("font: invalid glyph index")
var ErrBadSize = errors.New("font: invalid size")
var ErrBadFaceIndex = errors.New("font: face index out of range")
