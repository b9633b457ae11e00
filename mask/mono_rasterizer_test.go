package mask

import "time"
import "math/rand"
import "testing"

func TestRasterizeMonoSquare(t *testing.T) {
	// 4x2 pixel square sitting one pixel above the baseline
	square := polySegments([]float64{1, -3, 5, -3, 5, -1, 1, -1})
	bitmap, err := RasterizeMono(square)
	if err != nil { t.Fatalf("rasterization error: %s", err) }
	if bitmap.Width != 4 || bitmap.Rows != 2 || bitmap.Pitch != 1 {
		t.Fatalf("unexpected size %dx%d (pitch %d)", bitmap.Width, bitmap.Rows, bitmap.Pitch)
	}
	if bitmap.Left != 1 || bitmap.Top != 3 {
		t.Fatalf("unexpected position left %d, top %d", bitmap.Left, bitmap.Top)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if !bitmap.Bit(x, y) { t.Fatalf("expected bit (%d, %d) set", x, y) }
		}
	}
}

func TestRasterizeMonoEmpty(t *testing.T) {
	bitmap, err := RasterizeMono(moveTo(nil, 64, 64))
	if err != nil { t.Fatalf("rasterization error: %s", err) }
	if bitmap.Width != 0 || bitmap.Rows != 0 || !bitmap.Blank() {
		t.Fatalf("expected empty bitmap, got %dx%d", bitmap.Width, bitmap.Rows)
	}
}

func TestRasterizeMonoWithinBounds(t *testing.T) {
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	var rasterizer MonoRasterizer
	for n := 0; n < 64; n++ {
		triangle := randomTriangle(rng, 40, 40)
		bitmap, err := Rasterize(triangle, &rasterizer)
		if err != nil { t.Fatalf("seed %d: rasterization error: %s", seed, err) }
		bounds := OutlineBounds(triangle)
		bounds.Min.X, bounds.Min.Y = bounds.Min.X.Floor(), bounds.Min.Y.Floor()
		bounds.Max.X, bounds.Max.Y = bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
		if bitmap.Left != bounds.Min.X.ToIntFloor() || bitmap.Top != bounds.Max.Y.ToIntFloor() {
			t.Fatalf("seed %d: bitmap origin (%d, %d) doesn't match bounds %v", seed, bitmap.Left, bitmap.Top, bounds)
		}
		if bitmap.Width != bounds.Width().ToIntFloor() || bitmap.Rows != bounds.Height().ToIntFloor() {
			t.Fatalf("seed %d: bitmap size %dx%d doesn't match bounds %v", seed, bitmap.Width, bitmap.Rows, bounds)
		}
		if len(bitmap.Buffer) != bitmap.Pitch*bitmap.Rows {
			t.Fatalf("seed %d: bad buffer length", seed)
		}
	}
}
