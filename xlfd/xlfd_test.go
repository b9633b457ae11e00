package xlfd

import "math"
import "testing"

import "github.com/google/go-cmp/cmp"
import "github.com/google/go-cmp/cmp/cmpopts"

func TestParse(t *testing.T) {
	name, err := Parse("-misc-fixed-medium-r-normal--16-120-75-75-c-80-iso10646-1[65_70 0x100]")
	if err != nil { t.Fatal(err) }
	want := Name{
		Foundry: "misc", Family: "fixed", Weight: "medium", Slant: "r",
		Setwidth: "normal", PixelSize: "16", PointSize: "120",
		ResolutionX: "75", ResolutionY: "75", Spacing: "c", AverageWidth: "80",
		Registry: "iso10646", Encoding: "1[65_70 0x100]",
	}
	if diff := cmp.Diff(want, *name); diff != "" {
		t.Fatalf("parse mismatch (-want +got):\n%s", diff)
	}
	if name.Charset() != "iso10646-1" { t.Fatalf("unexpected charset %q", name.Charset()) }
	if name.SpacingMode() != 'c' { t.Fatalf("expected charcell spacing") }

	for _, bad := range []string{"", "misc-fixed", "-a-b-c", "-a-b-c-d-e-f-g-h-i-j-k-l-m-n-o"} {
		if _, err := Parse(bad); err == nil { t.Fatalf("expected error for %q", bad) }
	}
}

func TestRoundTrip(t *testing.T) {
	const str = "-adobe-times-bold-i-normal--0-0-0-0-p-0-iso8859-1"
	name, err := Parse(str)
	if err != nil { t.Fatal(err) }
	if name.String() != str { t.Fatalf("expected %q, got %q", str, name.String()) }
}

func TestCharsetFromName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"-misc-fixed-medium-r-normal--16-120-75-75-c-80-iso8859-1", "iso8859-1"},
		{"-x-y-z-jisx0208.1983-0[0x2121_0x217e]", "jisx0208.1983-0"},
		{"fixed", ""},
		{"-only", ""},
	}
	for _, test := range tests {
		if got := CharsetFromName(test.in); got != test.want {
			t.Fatalf("CharsetFromName(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestValues(t *testing.T) {
	name, err := Parse("-misc-fixed-medium-r-normal--16-0-75-75-c-80-iso10646-1[65_70 256]")
	if err != nil { t.Fatal(err) }
	values, err := name.Values()
	if err != nil { t.Fatal(err) }
	if err := values.Complete(100, 100); err != nil { t.Fatal(err) }
	if values.Pixel != 16 || values.X != 75 { t.Fatalf("unexpected values %+v", values) }
	if values.Point != 154 { t.Fatalf("expected 154 decipoints, got %d", values.Point) }
	wantRanges := []Range{NewRange(65, 70), NewRange(256, 256)}
	if diff := cmp.Diff(wantRanges, values.Ranges); diff != "" {
		t.Fatalf("ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixValues(t *testing.T) {
	name, err := Parse("-x-y-medium-r-normal--[12 0 ~3 12]-0-0-0-p-0-iso8859-1")
	if err != nil { t.Fatal(err) }
	values, err := name.Values()
	if err != nil { t.Fatal(err) }
	if values.Supplied & PixelArray == 0 { t.Fatalf("pixel array not flagged") }
	if err := values.Complete(72, 72); err != nil { t.Fatal(err) }
	if values.Pixel != int(math.Floor(math.Hypot(3, 12) + 0.5)) { t.Fatalf("unexpected pixel %d", values.Pixel) }
	want := [4]float64{12, 0, -3, 12}
	if diff := cmp.Diff(want, values.PixelMatrix); diff != "" {
		t.Fatalf("matrix mismatch:\n%s", diff)
	}
	wantPoint := [4]float64{12*72.27/72, 0, -3*72.27/72, 12*72.27/72}
	if diff := cmp.Diff(wantPoint, values.PointMatrix, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("point matrix mismatch:\n%s", diff)
	}

	name.SetValues(&values)
	if name.PixelSize != "[12 0 ~3 12]" { t.Fatalf("unexpected pixel field %q", name.PixelSize) }
}

func TestDefaultSize(t *testing.T) {
	var values Values
	if err := values.Complete(75, 75); err != nil { t.Fatal(err) }
	if values.Point != 120 || values.Pixel != 12 { t.Fatalf("unexpected default size %+v", values) }
}
