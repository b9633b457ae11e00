package xtt

import "strings"
import "testing"

import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/ttcap"

func TestAtomTable(t *testing.T) {
	atoms := NewAtomTable()
	a := atoms.Intern("FONT")
	b := atoms.Intern("PIXEL_SIZE")
	if a == 0 || b == 0 || a == b { t.Fatalf("unexpected atoms %d %d", a, b) }
	if atoms.Intern("FONT") != a { t.Fatalf("interning must be stable") }
	if atoms.Name(b) != "PIXEL_SIZE" { t.Fatalf("unexpected name %q", atoms.Name(b)) }
	if atoms.Name(999) != "" { t.Fatalf("unknown atoms should have no name") }
	if _, found := atoms.Lookup("MISSING"); found { t.Fatalf("lookup must not intern") }
	if atoms.Len() != 2 { t.Fatalf("expected 2 atoms, got %d", atoms.Len()) }
}

func TestBitmapFontProperties(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "fixed.bdf", cellName)
	defer fnt.Close()
	info := fnt.Info()

	ints := map[string]int64{
		"PIXEL_SIZE": 16,
		"RESOLUTION_X": 75,
		"RESOLUTION_Y": 75,
		"AVERAGE_WIDTH": 80,
		"RAW_PIXEL_SIZE": 1000,
		"RAW_POINT_SIZE": 964,
		"FONT_ASCENT": 14,
		"FONT_DESCENT": 2,
	}
	for name, want := range ints {
		got, found := info.Property(name)
		if !found || got != want { t.Fatalf("%s = %d (%t), expected %d", name, got, found, want) }
	}
	strs := map[string]string{
		"FOUNDRY": "misc",
		"FAMILY_NAME": "fixed",
		"SPACING": "c",
		"CHARSET_REGISTRY": "iso8859",
		"CHARSET_ENCODING": "1",
		"COPYRIGHT": "Public domain",
		"FONT_TYPE": "BDF",
		"RASTERIZER_NAME": RasterizerName,
	}
	for name, want := range strs {
		got, found := info.StringProperty(name)
		if !found || got != want { t.Fatalf("%s = %q (%t), expected %q", name, got, found, want) }
	}
	if value, _ := info.StringProperty("FONT"); !strings.HasPrefix(value, "-misc-fixed-medium-r-normal--16-") {
		t.Fatalf("unexpected FONT %q", value)
	}
	if _, found := info.Property("RAW_ASCENT"); found { t.Fatalf("bitmap fonts have no raw ascent") }
	if _, found := info.Property("ITALIC_ANGLE"); found { t.Fatalf("BDF fonts have no post table") }
}

func TestOutlineFontProperties(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()
	info := fnt.Info()

	for _, name := range []string{"RAW_ASCENT", "RAW_DESCENT", "RAW_AVERAGE_WIDTH", "UNDERLINE_THICKNESS", "SUBSCRIPT_SIZE"} {
		if _, found := info.Property(name); !found { t.Fatalf("missing %s", name) }
	}
	if angle, _ := info.Property("ITALIC_ANGLE"); angle != 90*64 {
		t.Fatalf("upright fonts should have a 90 degree angle, got %d", angle)
	}
	if thickness, _ := info.Property("UNDERLINE_THICKNESS"); thickness < 1 {
		t.Fatalf("underline thickness must be at least 1, got %d", thickness)
	}
	if name, found := info.StringProperty("_ADOBE_POSTSCRIPT_FONTNAME"); !found || name == "" {
		t.Fatalf("missing PostScript name")
	}
	if kind, _ := info.StringProperty("FONT_TYPE"); kind != "TrueType" {
		t.Fatalf("unexpected FONT_TYPE %q", kind)
	}
	width, _ := info.Property("AVERAGE_WIDTH")
	if width <= 0 || width > 10*int64(info.MaxBounds.CharacterWidth) {
		t.Fatalf("average width %d out of range", width)
	}

	// fp=n drops the extra properties
	bare := mustOpen(t, backend, "fp=n:goregular.ttf", regularName)
	defer bare.Close()
	for _, name := range []string{"FONT_ASCENT", "SUBSCRIPT_SIZE", "UNDERLINE_POSITION"} {
		if _, found := bare.Info().Property(name); found { t.Fatalf("%s present with fp=n", name) }
	}
}

func TestOutlineBoundsAndAccelerators(t *testing.T) {
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "goregular.ttf", regularName)
	defer fnt.Close()
	info := fnt.Info()

	if info.Spacing != Proportional { t.Fatalf("expected proportional spacing") }
	if info.ConstantWidth || info.ConstantMetrics || info.TerminalFont {
		t.Fatalf("proportional fonts can't have constant metrics")
	}
	for code := uint32(0x20); code < 0x7F; code++ {
		metrics, err := fnt.GlyphMetrics(code, 0)
		if err != nil { t.Fatal(err) }
		if metrics == nil { continue }
		if metrics.CharacterWidth < info.MinBounds.CharacterWidth || metrics.CharacterWidth > info.MaxBounds.CharacterWidth {
			t.Fatalf("code 0x%X width %d outside of bounds", code, metrics.CharacterWidth)
		}
		if metrics.Ascent > info.MaxBounds.Ascent || metrics.LeftSideBearing < info.MinBounds.LeftSideBearing {
			t.Fatalf("code 0x%X outside of bounds", code)
		}
	}
	if info.FontAscent != int(info.MaxBounds.Ascent) || info.FontDescent != int(info.MaxBounds.Descent) {
		t.Fatalf("font extents should come from the max bounds")
	}
}

func TestAccelerators(t *testing.T) {
	cell := cache.CharInfo{ LeftSideBearing: 0, RightSideBearing: 6, CharacterWidth: 6, Ascent: 10, Descent: 3 }
	tests := []struct {
		name string
		min, max cache.CharInfo
		overlap int
		terminal, constant, inkInside, noOverlap bool
	}{
		{ "terminal", cell, cell, 0, true, true, true, true },
		{
			"overlapping",
			cache.CharInfo{ LeftSideBearing: -1, RightSideBearing: 2, CharacterWidth: 3, Ascent: 2, Descent: 0 },
			cache.CharInfo{ LeftSideBearing: 1, RightSideBearing: 9, CharacterWidth: 7, Ascent: 10, Descent: 3 },
			2, false, false, false, false,
		},
	}
	for _, test := range tests {
		info := FontInfo{ MinBounds: test.min, MaxBounds: test.max, MaxOverlap: test.overlap }
		info.FontAscent, info.FontDescent = int(test.max.Ascent), int(test.max.Descent)
		info.computeAccelerators()
		if info.TerminalFont != test.terminal || info.ConstantMetrics != test.constant {
			t.Fatalf("%s: terminal %t constant %t", test.name, info.TerminalFont, info.ConstantMetrics)
		}
		if info.InkInside != test.inkInside || info.NoOverlap != test.noOverlap {
			t.Fatalf("%s: inkInside %t noOverlap %t", test.name, info.InkInside, info.NoOverlap)
		}
	}
}

func TestAverageWidthRowSkipping(t *testing.T) {
	// a single row range covered by constant spacing is fully counted
	backend := newTestBackend(t, nil)
	fnt := mustOpen(t, backend, "fc=0x00-0xff:goregular.ttf", regularName)
	defer fnt.Close()
	tuning := fnt.Instance().Cap()
	if tuning.Has(ttcap.ForceConstantOutside) || !tuning.InForceConstantRange('A') {
		t.Fatalf("unexpected range")
	}
	info := fnt.Info()
	fc := fnt.Instance().ForceConstantMetrics()
	if info.MinBounds.CharacterWidth != fc.CharacterWidth || info.MaxBounds.CharacterWidth != fc.CharacterWidth {
		t.Fatalf("every code should use the constant width %d: %+v %+v", fc.CharacterWidth, info.MinBounds, info.MaxBounds)
	}
	if width, _ := info.Property("AVERAGE_WIDTH"); width != 10*int64(fc.CharacterWidth) {
		t.Fatalf("expected average width %d, got %d", 10*int64(fc.CharacterWidth), width)
	}
}
