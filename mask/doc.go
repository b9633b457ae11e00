// The mask subpackage deals with monochrome glyph rasters: it defines
// the [Bitmap] type, converts glyph outlines into 1-bit bitmaps through
// the [Rasterizer] interface and provides the raster post-processing
// operations needed to build X server glyph images.
//
// The post-processing operations work on raw rasters (a byte slice
// plus a bytes-per-row value) rather than on bitmaps, since rasters
// may be padded to arbitrary scanline units:
//   - [Blit] copies a bitmap into a raster at any pixel offset.
//   - [Embolden] performs double-strike pseudo-bolding.
//   - [Shear] fakes italics for bitmap-sourced glyphs.
//   - [ReverseBits], [SwapTwoBytes] and [SwapFourBytes] adapt the
//     output to the requested bit and byte orders.
package mask
