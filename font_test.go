package xtt

import "math"
import "strings"
import "testing"

import "golang.org/x/image/font/gofont/goregular"
import "github.com/google/go-cmp/cmp"

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/fract"
import "github.com/tinne26/xtt/mask"
import "github.com/tinne26/xtt/ttcap"

func TestCharcellBitmapFont(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "fixed.bdf", cellName)
	defer fnt.Close()

	info := fnt.Info()
	if info.Spacing != Charcell { t.Fatalf("expected charcell spacing, got %s", info.Spacing) }
	if !fnt.Instance().Face().IsBitmap() { t.Fatalf("BDF faces must be bitmap faces") }
	wantCell := cache.CharInfo{
		LeftSideBearing: 0, RightSideBearing: 8, CharacterWidth: 8,
		Ascent: 14, Descent: 2, Attributes: 500,
	}
	if diff := cmp.Diff(wantCell, *fnt.Instance().HeaderMetrics()); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if info.MinBounds != wantCell || info.MaxBounds != wantCell {
		t.Fatalf("charcell bounds should match the header: %+v %+v", info.MinBounds, info.MaxBounds)
	}
	if info.FontAscent != 14 || info.FontDescent != 2 {
		t.Fatalf("unexpected font extents %d/%d", info.FontAscent, info.FontDescent)
	}
	if !info.ConstantMetrics || !info.ConstantWidth || !info.TerminalFont || !info.InkInside || !info.NoOverlap {
		t.Fatalf("unexpected accelerators %+v", info)
	}
	if info.FirstRow != 0 || info.LastRow != 0 || info.FirstCol != 0 || info.LastCol != 0xFF {
		t.Fatalf("unexpected code span %d-%d x %d-%d", info.FirstRow, info.LastRow, info.FirstCol, info.LastCol)
	}

	// every character reports the cell
	metrics := fnt.Metrics([]byte("AB\xe9"), Linear8Bit)
	for i, m := range metrics {
		if *m != wantCell { t.Fatalf("metrics #%d not uniform: %+v", i, *m) }
	}
	if raw := metrics[0].RawWidth(); (raw*16 + 500)/1000 != 8 {
		t.Fatalf("raw width %d doesn't round trip to the cell width", raw)
	}

	glyphs := fnt.Glyphs([]byte("AZ"), Linear8Bit)
	if len(glyphs) != 2 { t.Fatalf("expected 2 glyphs, got %d", len(glyphs)) }
	if len(glyphs[0].Bits) != 16 { t.Fatalf("expected 16 bytes, got %d", len(glyphs[0].Bits)) }
	for row, b := range glyphs[0].Bits {
		want := byte(0xFF)
		if row % 2 == 1 { want = 0x00 }
		if b != want { t.Fatalf("row %d: expected %02x, got %02x", row, want, b) }
	}
	dummy := glyphs[1]
	if dummy.Metrics != wantCell { t.Fatalf("dummy metrics %+v", dummy.Metrics) }
	if len(dummy.Bits) != 16 || strings.Trim(string(dummy.Bits), "\x00") != "" {
		t.Fatalf("dummy glyph should be a blank cell, got %v", dummy.Bits)
	}
	again := fnt.Glyphs([]byte("Z"), Linear8Bit)
	if again[0] != dummy { t.Fatalf("the dummy glyph should be reused") }
}

func TestMissingCharacters(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()

	glyph, err := fnt.Glyph(0x00, 0)
	if err != nil || glyph != nil { t.Fatalf("code 0 has no glyph of its own, got %v, %v", glyph, err) }
	glyph, err = fnt.Glyph(0x141, 0)
	if err != nil || glyph != nil { t.Fatalf("codes outside the font should give nil") }

	metrics := fnt.Metrics([]byte{ 0x01, 0x00, 0x00, 'A' }, Linear16Bit)
	if len(metrics) != 2 { t.Fatalf("expected 2 metrics, got %d", len(metrics)) }
	if *metrics[0] != NoSuchChar { t.Fatalf("expected NoSuchChar, got %+v", *metrics[0]) }
	if metrics[1].CharacterWidth <= 0 { t.Fatalf("'A' should have a width") }
	metrics[0].CharacterWidth = 99
	if NoSuchChar.CharacterWidth != 0 { t.Fatalf("NoSuchChar must not be shared") }
}

func TestGlyphStateProgression(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()

	instance := fnt.Instance()
	index := int(fnt.Mapping().Remap(instance.Face().Engine(), 'B'))
	if index == 0 { t.Fatalf("'B' unmapped") }

	// computing the bounds already brought every glyph to metrics
	if state := instance.Glyphs().Peek(index); state != cache.Metrics {
		t.Fatalf("expected Metrics state after open, got %s", state)
	}
	glyph, err := fnt.Glyph('B', 0)
	if err != nil || glyph == nil { t.Fatalf("Glyph('B') = %v, %v", glyph, err) }
	if state := instance.Glyphs().Peek(index); state != cache.Rasterised {
		t.Fatalf("expected Rasterised state, got %s", state)
	}
	metrics, err := fnt.GlyphMetrics('B', 0)
	if err != nil || metrics != &glyph.Metrics { t.Fatalf("metrics should come from the rasterised glyph") }
	if state := instance.Glyphs().Peek(index); state != cache.Rasterised {
		t.Fatalf("state went back to %s", state)
	}

	width, height := glyph.Metrics.InkSize()
	if width <= 0 || height <= 0 { t.Fatalf("unexpected ink size %dx%d", width, height) }
	if len(glyph.Bits) != height*rowBytes(width, 1) {
		t.Fatalf("expected %d bytes, got %d", height*rowBytes(width, 1), len(glyph.Bits))
	}
	inked := false
	for _, b := range glyph.Bits { inked = inked || b != 0 }
	if !inked { t.Fatalf("'B' rendered blank") }
}

func TestBitmapFormats(t *testing.T) {
	backend := newTestBackend(t, nil)
	req := mustRequest(t, "fixed.bdf", cellName)
	msb := mustOpen(t, backend, "fixed.bdf", cellName)
	defer msb.Close()
	req.Format = BitmapFormat{ Bit: LSBFirst, Byte: LSBFirst, Glyph: 4, Scan: 1 }
	lsb, err := backend.OpenFont(req)
	if err != nil { t.Fatal(err) }
	defer lsb.Close()
	if lsb.Instance() == msb.Instance() { t.Fatalf("formats must not share instances") }

	glyph := lsb.Glyphs([]byte("B"), Linear8Bit)[0]
	if len(glyph.Bits) != 16*4 { t.Fatalf("expected 4 byte rows, got %d bytes", len(glyph.Bits)) }
	if diff := cmp.Diff([]byte{0x0F, 0, 0, 0}, glyph.Bits[ : 4]); diff != "" {
		t.Fatalf("first row mismatch (-want +got):\n%s", diff)
	}

	req.Format = BitmapFormat{ Bit: MSBFirst, Byte: LSBFirst, Glyph: 2, Scan: 2 }
	swapped, err := backend.OpenFont(req)
	if err != nil { t.Fatal(err) }
	defer swapped.Close()
	glyph = swapped.Glyphs([]byte("B"), Linear8Bit)[0]
	if diff := cmp.Diff([]byte{0x00, 0xF0}, glyph.Bits[ : 2]); diff != "" {
		t.Fatalf("swapped row mismatch (-want +got):\n%s", diff)
	}
}

func TestMonospacedOutlineFont(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "gomono.ttf", "-go-mono-medium-r-normal--20-0-75-75-p-0-iso8859-1")
	defer fnt.Close()

	info := fnt.Info()
	if info.Spacing != Monospaced { t.Fatalf("fixed width faces should be monospaced, got %s", info.Spacing) }
	if !info.ConstantWidth { t.Fatalf("monospaced fonts must have a constant width") }
	header := fnt.Instance().HeaderMetrics()
	for _, m := range fnt.Metrics([]byte("Wil."), Linear8Bit) {
		if m.CharacterWidth != header.CharacterWidth {
			t.Fatalf("expected width %d, got %d", header.CharacterWidth, m.CharacterWidth)
		}
	}

	cell := mustOpen(t, backend, "gomono.ttf", "-go-mono-medium-r-normal--20-0-75-75-c-0-iso8859-1")
	defer cell.Close()
	if cell.Instance() == fnt.Instance() { t.Fatalf("charcell and mono instances must differ") }
	cellInfo := cell.Info()
	if !cellInfo.ConstantMetrics { t.Fatalf("charcell fonts must have constant metrics") }
	width, _ := cellInfo.MaxBounds.InkSize()
	for _, glyph := range cell.Glyphs([]byte("Wi"), Linear8Bit) {
		if glyph.Metrics != cellInfo.MaxBounds { t.Fatalf("glyph metrics differ from the cell") }
		if len(glyph.Bits) != rowBytes(width, 1)*(int(cellInfo.MaxBounds.Ascent) + int(cellInfo.MaxBounds.Descent)) {
			t.Fatalf("glyph bitmap doesn't have the cell size")
		}
	}
}

func TestForceConstantSpacing(t *testing.T) {
	backend := newTestBackend(t, nil)
	plain := mustOpen(t, backend, "goregular.ttf", regularName)
	defer plain.Close()
	fnt := mustOpen(t, backend, "fc=0x41-0x5a:goregular.ttf", regularName)
	defer fnt.Close()

	instance := fnt.Instance()
	if instance == plain.Instance() { t.Fatalf("forced constant spacing instances can't be shared") }
	numGlyphs := instance.Face().Engine().Info().NumGlyphs
	if instance.NumGlyphs() != 2*numGlyphs {
		t.Fatalf("expected %d slots, got %d", 2*numGlyphs, instance.NumGlyphs())
	}
	fcMetrics := instance.ForceConstantMetrics()
	if fcMetrics == nil { t.Fatalf("missing forced constant metrics") }

	metrics := fnt.Metrics([]byte{ 0, 'A', 0, 'Z', 0, 'a' }, Linear16Bit)
	if metrics[0] != fcMetrics || metrics[1] != fcMetrics {
		t.Fatalf("codes in range should get the constant metrics")
	}
	if metrics[2] == fcMetrics { t.Fatalf("'a' is outside of the range") }

	index := int(fnt.Mapping().Remap(instance.Face().Engine(), 'A'))
	glyphs := fnt.Glyphs([]byte{ 0, 'A' }, Linear16Bit)
	if glyphs[0].Metrics != *fcMetrics { t.Fatalf("glyph doesn't use the constant metrics") }
	if state := instance.Glyphs().Peek(index + numGlyphs); state != cache.Rasterised {
		t.Fatalf("expected the upper slot to be rasterised, got %s", state)
	}
	if state := instance.Glyphs().Peek(index); state != cache.Unknown {
		t.Fatalf("the regular slot should be untouched, got %s", state)
	}
	normal, err := instance.Glyph(font.GlyphIndex(index), 0)
	if err != nil || normal == glyphs[0] { t.Fatalf("regular and constant glyphs must be distinct") }
}

func TestVeryLazyMetrics(t *testing.T) {
	backend := newTestBackend(t, nil)
	exact := mustOpen(t, backend, "goregular.ttf", regularName)
	defer exact.Close()
	lazy := mustOpen(t, backend, "vl=y:goregular.ttf", regularName)
	defer lazy.Close()
	lazyCap, exactCap := lazy.Instance().Cap(), exact.Instance().Cap()
	if !lazyCap.Has(ttcap.IsVeryLazy) { t.Fatalf("very lazy metrics not enabled") }
	if exactCap.Has(ttcap.IsVeryLazy) { t.Fatalf("very lazy metrics enabled for a single row") }

	text := []byte("AHWgjl.")
	exactMetrics := exact.Metrics(text, Linear8Bit)
	lazyMetrics := lazy.Metrics(text, Linear8Bit)
	within := func(a, b int16) bool { return a - b <= 1 && b - a <= 1 }
	for i := range text {
		e, l := exactMetrics[i], lazyMetrics[i]
		if !within(e.CharacterWidth, l.CharacterWidth) || !within(e.LeftSideBearing, l.LeftSideBearing) {
			t.Fatalf("%q: lazy %+v too far from exact %+v", text[i], *l, *e)
		}
		if l.Ascent < e.Ascent - 1 || l.Descent < e.Descent - 1 {
			t.Fatalf("%q: lazy box %+v should contain the exact one %+v", text[i], *l, *e)
		}
	}

	// rendering fits the lazy box
	for _, glyph := range lazy.Glyphs(text, Linear8Bit) {
		width, height := glyph.Metrics.InkSize()
		if width > 0 && len(glyph.Bits) != height*rowBytes(width, 1) {
			t.Fatalf("bitmap size doesn't match the lazy metrics")
		}
	}
}

type brokenFace struct {
	font.Face
	broken map[font.GlyphIndex]bool
}

func (self *brokenFace) LoadGlyph(index font.GlyphIndex, flags font.LoadFlags) (*font.Glyph, error) {
	if self.broken[index] { return nil, font.ErrBadGlyph }
	return self.Face.LoadGlyph(index, flags)
}

func TestBrokenGlyphFallback(t *testing.T) {
	var face *brokenFace
	opener := func(path string, index int) (font.Face, error) {
		inner, err := memoryOpener(map[string][]byte{ "goregular.ttf": goregular.TTF })(path, index)
		if err != nil { return nil, err }
		face = &brokenFace{ Face: inner, broken: make(map[font.GlyphIndex]bool) }
		return face, nil
	}
	backend := NewBackend(WithOpener(opener))
	defer backend.Close()
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()

	index := fnt.Mapping().Remap(face, 'M')
	metrics, err := fnt.Instance().GlyphMetrics(index, 0)
	if err != nil { t.Fatal(err) }
	want := *metrics

	face.broken[index] = true
	glyph, err := fnt.Glyph('M', 0)
	if err != nil || glyph == nil { t.Fatalf("broken glyphs should render blank, got %v", err) }
	if glyph.Metrics != want { t.Fatalf("blank glyph changed the metrics: %+v", glyph.Metrics) }
	for _, b := range glyph.Bits {
		if b != 0 { t.Fatalf("blank glyph has ink") }
	}

	// glyphs failing before their metrics are known stay uncomputed
	last := font.GlyphIndex(face.Info().NumGlyphs - 1)
	if fnt.Instance().Glyphs().Peek(int(last)) == cache.Unknown {
		face.broken[last] = true
		_, err = fnt.Instance().GlyphMetrics(last, 0)
		if err == nil { t.Fatalf("expected an error for a broken glyph without metrics") }
		if state := fnt.Instance().Glyphs().Peek(int(last)); state != cache.Unknown {
			t.Fatalf("failed glyph moved to state %s", state)
		}
	}
}

func TestMetricsFromBoxCenter(t *testing.T) {
	box := fract.UnitsToRect(0, -128, 480, 640) // 0..7.5px wide
	metrics := metricsFromBox(box)
	if metrics.center != 3.75 { t.Fatalf("expected center 3.75, got %v", metrics.center) }
	if metrics.lsb != 0 || metrics.rsb != 8 || metrics.ascent != 10 || metrics.descent != 2 {
		t.Fatalf("unexpected box metrics %+v", metrics)
	}

	sbit := font.GlyphMetrics{ HoriBearingX: 64, Width: 5*64 }
	if center := bitmapCenter(&sbit); center != 3.5 {
		t.Fatalf("expected bitmap center 3.5, got %v", center)
	}
}

func TestMonoCenterShift(t *testing.T) {
	const monoName = "-go-mono-medium-r-normal--20-0-75-75-p-0-iso8859-1"
	backend := newTestBackend(t, nil)
	centered := mustOpen(t, backend, "fs=M:gomono.ttf", monoName)
	defer centered.Close()
	instance := centered.Instance()
	if info := centered.Info(); info.Spacing != Monospaced {
		t.Fatalf("fs=M should force monospacing, got %v", info.Spacing)
	}

	engine := instance.Face().Engine()
	for code := uint32('!'); code <= '~'; code++ {
		metrics, err := centered.GlyphMetrics(code, 0)
		if err != nil { t.Fatal(err) }
		if metrics == nil { continue }

		err = instance.Activate()
		if err != nil { t.Fatal(err) }
		loaded, err := engine.LoadGlyph(centered.Mapping().Remap(engine, code), instance.LoadFlags())
		if err != nil { t.Fatal(err) }
		box := mask.OutlineBounds(loaded.Outline)
		exact := metricsFromBox(box)
		center := float64(box.Min.X + box.Max.X)/128
		shift := int(math.Floor(instance.advance/2 - center + 0.5))
		if int(metrics.LeftSideBearing) != exact.lsb + shift || int(metrics.RightSideBearing) != exact.rsb + shift {
			t.Fatalf("%q: bearings %d/%d, expected %d/%d (center %v, advance %v)", rune(code),
				metrics.LeftSideBearing, metrics.RightSideBearing, exact.lsb + shift, exact.rsb + shift,
				center, instance.advance)
		}
	}
}

func TestOutlineRawWidth(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()

	const pixelSize = 20
	checked := 0
	for code := uint32('A'); code <= 'z'; code++ {
		metrics, err := fnt.GlyphMetrics(code, 0)
		if err != nil { t.Fatal(err) }
		if metrics == nil { continue }
		raw := metrics.RawWidth()
		if raw <= 0 { t.Fatalf("%q: raw width %d", rune(code), raw) }
		scaled := float64(raw)*pixelSize/1000
		if math.Abs(scaled - float64(metrics.CharacterWidth)) > 1 {
			t.Fatalf("%q: raw width %d scales to %v, but the width is %d", rune(code), raw, scaled, metrics.CharacterWidth)
		}
		checked += 1
	}
	if checked == 0 { t.Fatalf("no glyphs checked") }
}

// Expects the rows of a 16 row glyph to alternate between the
// even and odd patterns.
func checkCellRows(t *testing.T, glyph *cache.Glyph, even, odd []byte) {
	t.Helper()
	bytesPerRow := len(even)
	if len(glyph.Bits) != 16*bytesPerRow {
		t.Fatalf("expected %d bytes, got %d", 16*bytesPerRow, len(glyph.Bits))
	}
	for row := 0; row < 16; row++ {
		want := even
		if row % 2 == 1 { want = odd }
		got := glyph.Bits[row*bytesPerRow : (row + 1)*bytesPerRow]
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("row %d mismatch (-want +got):\n%s", row, diff)
		}
	}
}

func TestDoubleStrikeBitmap(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "ds=y:fixed.bdf", cellName)
	defer fnt.Close()

	header := fnt.Instance().HeaderMetrics()
	if header.LeftSideBearing != 0 || header.RightSideBearing != 9 {
		t.Fatalf("double strike should widen the ink by one pixel, got %+v", *header)
	}
	glyphs := fnt.Glyphs([]byte("AB"), Linear8Bit)
	checkCellRows(t, glyphs[0], []byte{0xFF, 0x80}, []byte{0x00, 0x00})
	checkCellRows(t, glyphs[1], []byte{0xF8, 0x00}, []byte{0xF8, 0x00})
}

func TestAutoItalicBitmap(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "ai=0.25:fixed.bdf", cellName)
	defer fnt.Close()

	// 16 rows at 0.25 give a 4 pixel slant, all of it above the baseline
	header := fnt.Instance().HeaderMetrics()
	if header.LeftSideBearing != 0 || header.RightSideBearing != 12 || header.CharacterWidth != 8 {
		t.Fatalf("unexpected italic cell %+v", *header)
	}
	glyph := fnt.Glyphs([]byte("A"), Linear8Bit)[0]
	if len(glyph.Bits) != 16*2 { t.Fatalf("expected 2 byte rows, got %d bytes", len(glyph.Bits)) }
	rows := map[int][]byte{
		0: {0x1F, 0xE0}, // shifted by 3
		4: {0x3F, 0xC0}, // by 2
		8: {0x7F, 0x80}, // by 1
		14: {0xFF, 0x00},
	}
	for row, want := range rows {
		if diff := cmp.Diff(want, glyph.Bits[row*2 : row*2 + 2]); diff != "" {
			t.Fatalf("row %d mismatch (-want +got):\n%s", row, diff)
		}
	}
}

func TestForceConstantFlagWithoutRange(t *testing.T) {
	fnt := mustOpen(t, newTestBackend(t, nil), "goregular.ttf", regularName)
	defer fnt.Close()

	instance := fnt.Instance()
	if instance.ForceConstantMetrics() != nil { t.Fatalf("unexpected constant metrics") }
	index := fnt.Mapping().Remap(instance.Face().Engine(), 'W')
	glyph, err := instance.Glyph(index, ForceConstantSpacing)
	if err != nil || glyph == nil { t.Fatalf("Glyph() = %v, %v", glyph, err) }

	reference := mustOpen(t, newTestBackend(t, nil), "goregular.ttf", regularName)
	defer reference.Close()
	want, err := reference.GlyphMetrics('W', 0)
	if err != nil || want == nil { t.Fatalf("GlyphMetrics('W') = %v, %v", want, err) }
	if glyph.Metrics != *want { t.Fatalf("expected regular metrics %+v, got %+v", *want, glyph.Metrics) }
}

// Reports a zero advance for one glyph.
type zeroAdvanceFace struct {
	font.Face
	index font.GlyphIndex
}

func (self *zeroAdvanceFace) LoadGlyph(index font.GlyphIndex, flags font.LoadFlags) (*font.Glyph, error) {
	glyph, err := self.Face.LoadGlyph(index, flags)
	if err != nil || index != self.index { return glyph, err }
	zeroed := *glyph
	zeroed.Metrics.HoriAdvance = 0
	return &zeroed, nil
}

func TestZeroAdvanceKeepsZeroWidth(t *testing.T) {
	backend := NewBackend(WithOpener(func(path string, index int) (font.Face, error) {
		inner, err := font.Parse(goregular.TTF, index)
		if err != nil { return nil, err }
		return &zeroAdvanceFace{ Face: inner, index: inner.CharIndex(unicodeCharmap, 'M') }, nil
	}))
	t.Cleanup(func() { _ = backend.Close() })
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()

	metrics, err := fnt.GlyphMetrics('M', 0)
	if err != nil || metrics == nil { t.Fatalf("GlyphMetrics('M') = %v, %v", metrics, err) }
	if metrics.CharacterWidth != 0 || metrics.RawWidth() != 0 {
		t.Fatalf("horizontal zero advances must stay zero, got width %d raw %d", metrics.CharacterWidth, metrics.RawWidth())
	}
	if metrics.RightSideBearing <= metrics.LeftSideBearing { t.Fatalf("'M' lost its ink box") }
}
