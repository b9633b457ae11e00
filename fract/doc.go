// Glyph metrics and transforms in a font engine are expressed with
// fixed point values: 26.6 values for pixel measurements and 16.16
// values for scaling factors and matrix coefficients. This subpackage
// defines both.
//
// [Unit] represents a 26.6 fixed point value, [Fixed] represents a
// 16.16 one and [Matrix] a 2x2 linear transform built from Fixed
// coefficients. The subpackage also defines the [Point] and [Rect]
// helper types, with coordinates that grow upwards as in font space.
//
// Unit values are interchangeable with [golang.org/x/image/math/fixed]
// Int26_6 values, which the outline rasterizer consumes.
package fract
