// xtt is a font rasterization backend for X11 style font servers.
// It opens TrueType, OpenType and BDF fonts, resolves XLFD requests
// into per size instances and produces 1-bit glyph bitmaps with
// their character metrics and font properties.
//
// While the API surface can look slightly intimidating at the beginning,
// common usage depends only on a couple types and a few functions...
//
// First, you create a [Backend]:
//   backend := xtt.NewBackend()
//   defer backend.Close()
//
// Then, you build a [Request] from a font path and an XLFD name. The
// path can carry tuning capabilities before the file name:
//   req, err := xtt.NewRequest("fonts/ai=0.2:ds=y:DejaVuSans.ttf",
//       "-misc-dejavu-medium-r-normal--16-0-75-75-p-0-iso8859-1", 0, 0)
//   if err != nil { ... }
//
// Finally, you open the font and ask for glyphs or metrics:
//   font, err := backend.OpenFont(req)
//   if err != nil { ... }
//   defer font.Close()
//   glyphs := font.Glyphs([]byte("hello"), xtt.Linear8Bit)
//
// Faces and instances are shared between fonts opened from the same
// backend, and glyphs are rendered lazily on first request. Errors
// carry a [Code] that can be checked with [CodeOf] or [errors.Is].
package xtt
