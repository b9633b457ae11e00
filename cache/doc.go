// The cache subpackage defines the per glyph data produced by a
// rasterization instance and the [GlyphCache] that stores it.
//
// Glyph caches are sparse: fonts may have tens of thousands of glyphs
// while only a few hundred are ever requested, so the storage is split
// in segments of [SegmentSize] entries that are only allocated when
// one of their glyphs is first looked up.
//
// Each entry has an availability [State]. States only advance: from
// [Unknown] to [No], [Metrics] or [Rasterised], and from [Metrics]
// to [Rasterised]. Caches don't evict entries; they live as long as
// the instance that owns them.
package cache
