// The font subpackage wraps the font engines used to open font files
// into a common [Face] interface: TrueType and OpenType fonts and
// collections through [golang.org/x/image/font/sfnt], and BDF bitmap
// fonts through a small built-in parser.
//
// Faces expose what a rasterizer needs: character maps, glyph names,
// raw SFNT tables, sizing, transforms and glyph loading. They also
// provide a few helpers to read the OS/2, post and hmtx tables.
package font
