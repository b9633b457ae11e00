package cache

import "testing"

func TestGlyphCacheSegments(t *testing.T) {
	cache := NewGlyphCache(100)
	if cache.AllocatedSegments() != 0 { t.Fatal("expected lazy allocation") }
	if cache.Peek(5) != Unknown { t.Fatal("expected unknown state") }
	if cache.AllocatedSegments() != 0 { t.Fatal("Peek shouldn't allocate") }

	for _, index := range []int{-1, 100, 1000} {
		if _, found := cache.Find(index); found { t.Fatalf("index %d shouldn't be found", index) }
	}

	entry, found := cache.Find(17)
	if !found { t.Fatal("expected index 17 to be found") }
	if entry.State() != Unknown { t.Fatalf("expected Unknown, got %s", entry.State()) }
	if cache.AllocatedSegments() != 1 { t.Fatalf("expected 1 segment, got %d", cache.AllocatedSegments()) }

	_, _ = cache.Find(31) // same segment
	_, _ = cache.Find(99) // last, partial segment
	if cache.AllocatedSegments() != 2 { t.Fatalf("expected 2 segments, got %d", cache.AllocatedSegments()) }

	entry.Glyph().Metrics.CharacterWidth = 7
	entry.Advance(Metrics)
	again, _ := cache.Find(17)
	if again.State() != Metrics || again.Glyph().Metrics.CharacterWidth != 7 {
		t.Fatal("entry data not persisted")
	}
	if cache.Peek(17) != Metrics { t.Fatal("Peek mismatch") }
}

func TestStateTransitions(t *testing.T) {
	states := []State{ Unknown, No, Metrics, Rasterised }
	allowed := map[[2]State]bool{
		{Unknown, No}: true, {Unknown, Metrics}: true, {Unknown, Rasterised}: true,
		{Metrics, Rasterised}: true,
	}
	for _, from := range states {
		for _, to := range states {
			want := from == to || allowed[[2]State{from, to}]
			if from.CanAdvanceTo(to) != want {
				t.Fatalf("%s -> %s: expected %v", from, to, want)
			}
		}
	}
}

func TestInvalidAdvancePanics(t *testing.T) {
	cache := NewGlyphCache(4)
	entry, _ := cache.Find(0)
	entry.Advance(Rasterised)
	defer func() {
		if recover() == nil { t.Fatal("expected panic on backward transition") }
	}()
	entry.Advance(Metrics)
}

func TestByteAccounting(t *testing.T) {
	cache := NewGlyphCache(32)
	a, _ := cache.Find(0)
	a.Glyph().Bits = make([]byte, 64)
	a.Advance(Rasterised)
	a.Advance(Rasterised) // no double counting
	want := a.Glyph().ByteSize()
	if cache.ApproxByteSize() != want { t.Fatalf("expected %d, got %d", want, cache.ApproxByteSize()) }

	b, _ := cache.Find(20)
	b.Advance(Metrics) // metrics alone don't count
	if cache.ApproxByteSize() != want { t.Fatalf("expected %d, got %d", want, cache.ApproxByteSize()) }

	cache.Release()
	if cache.ApproxByteSize() != 0 || cache.AllocatedSegments() != 0 { t.Fatal("release didn't clear the cache") }
	if cache.PeakSize() != want { t.Fatalf("expected peak %d, got %d", want, cache.PeakSize()) }
}

func TestCharInfo(t *testing.T) {
	info := CharInfo{ LeftSideBearing: -1, RightSideBearing: 6, Ascent: 9, Descent: 2, Attributes: uint16(0xFFFF - 99) }
	w, h := info.InkSize()
	if w != 7 || h != 11 { t.Fatalf("unexpected ink size %dx%d", w, h) }
	if info.IsEmpty() { t.Fatal("expected non empty ink") }
	if info.RawWidth() != -100 { t.Fatalf("expected raw width -100, got %d", info.RawWidth()) }
	if !(&CharInfo{}).IsEmpty() { t.Fatal("zero metrics should be empty") }
}
