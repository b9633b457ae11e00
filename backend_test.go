package xtt

import "errors"
import "fmt"
import "os"
import "strings"
import "testing"

import "golang.org/x/image/font/gofont/gomono"
import "golang.org/x/image/font/gofont/goregular"

import "github.com/tinne26/xtt/font"

// Opens faces from in memory files instead of the file system.
func memoryOpener(files map[string][]byte) font.Opener {
	return func(path string, index int) (font.Face, error) {
		data, found := files[path]
		if !found { return nil, os.ErrNotExist }
		return font.Parse(data, index)
	}
}

// An 8x16 charcell BDF font with a few latin-1 characters.
func cellBDF() []byte {
	var bdf strings.Builder
	bdf.WriteString("STARTFONT 2.1\n")
	bdf.WriteString("FONT -misc-fixed-medium-r-normal--16-160-75-75-c-80-iso8859-1\n")
	bdf.WriteString("SIZE 16 75 75\n")
	bdf.WriteString("FONTBOUNDINGBOX 8 16 0 -2\n")
	bdf.WriteString("STARTPROPERTIES 8\n")
	bdf.WriteString("FAMILY_NAME \"Fixed\"\nWEIGHT_NAME \"Medium\"\n")
	bdf.WriteString("PIXEL_SIZE 16\nSPACING \"C\"\nAVERAGE_WIDTH 80\n")
	bdf.WriteString("CHARSET_REGISTRY \"ISO8859\"\nCHARSET_ENCODING \"1\"\n")
	bdf.WriteString("COPYRIGHT \"Public domain\"\n")
	bdf.WriteString("ENDPROPERTIES\n")

	chars := []struct {
		name string
		code int
		pattern [2]string
	}{
		{ "space", 0x20, [2]string{"00", "00"} },
		{ "A", 0x41, [2]string{"FF", "00"} },
		{ "B", 0x42, [2]string{"F0", "F0"} },
		{ "eacute", 0xE9, [2]string{"81", "18"} },
	}
	fmt.Fprintf(&bdf, "CHARS %d\n", len(chars))
	for _, char := range chars {
		fmt.Fprintf(&bdf, "STARTCHAR %s\nENCODING %d\n", char.name, char.code)
		bdf.WriteString("SWIDTH 500 0\nDWIDTH 8 0\nBBX 8 16 0 -2\nBITMAP\n")
		for row := 0; row < 16; row++ {
			bdf.WriteString(char.pattern[row % 2])
			bdf.WriteByte('\n')
		}
		bdf.WriteString("ENDCHAR\n")
	}
	bdf.WriteString("ENDFONT\n")
	return []byte(bdf.String())
}

func newTestBackend(t *testing.T, extra map[string][]byte) *Backend {
	t.Helper()
	files := map[string][]byte{
		"fixed.bdf": cellBDF(),
		"goregular.ttf": goregular.TTF,
		"gomono.ttf": gomono.TTF,
	}
	for name, data := range extra { files[name] = data }
	backend := NewBackend(WithOpener(memoryOpener(files)))
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

func mustRequest(t *testing.T, fileName, name string) Request {
	t.Helper()
	req, err := NewRequest(fileName, name, 75, 75)
	if err != nil { t.Fatalf("NewRequest(%q): %s", name, err) }
	return req
}

func mustOpen(t *testing.T, backend *Backend, fileName, name string) *Font {
	t.Helper()
	fnt, err := backend.OpenFont(mustRequest(t, fileName, name))
	if err != nil { t.Fatalf("OpenFont(%q, %q): %s", fileName, name, err) }
	return fnt
}

const (
	cellName = "-misc-fixed-medium-r-normal--16-0-75-75-c-80-iso8859-1"
	regularName = "-go-regular-medium-r-normal--20-0-75-75-p-0-iso8859-1"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("a.ttf", regularName, 0, 0)
	if err != nil { t.Fatal(err) }
	if req.Values.X != DefaultResolution || req.Values.Y != DefaultResolution {
		t.Fatalf("expected default resolution, got %dx%d", req.Values.X, req.Values.Y)
	}
	if req.Values.Pixel != 20 { t.Fatalf("expected pixel size 20, got %d", req.Values.Pixel) }
	if req.Format != DefaultBitmapFormat { t.Fatalf("unexpected format %+v", req.Format) }

	_, err = NewRequest("a.ttf", "not an xlfd name", 75, 75)
	if !errors.Is(err, ErrBadFontName) { t.Fatalf("expected BadFontName, got %v", err) }
}

func TestOpenErrors(t *testing.T) {
	backend := newTestBackend(t, nil)
	tests := []struct {
		fileName string
		name string
		want Code
	}{
		{ "missing.ttf", regularName, BadFontName },
		{ "fixed.bdf", "-misc-fixed-medium-r-normal--12-0-75-75-c-80-iso8859-1", BadFontName },
		{ "fixed.bdf", "-misc-fixed-medium-r-normal--16-0-75-75-c-80-koi8-r", BadFontFormat },
		{ "goregular.ttf", "-go-regular-medium-r-normal--20-0-75-75-p-0-unknown-enc", BadFontName },
		{ "bogus=1:goregular.ttf", regularName, BadFontPath },
		{ "ds=q:goregular.ttf", regularName, BadFontName },
	}
	for _, test := range tests {
		_, err := backend.OpenFont(mustRequest(t, test.fileName, test.name))
		if err == nil { t.Fatalf("expected error opening %q %q", test.fileName, test.name) }
		if code := CodeOf(err); code != test.want {
			t.Fatalf("opening %q %q: expected %s, got %s (%v)", test.fileName, test.name, test.want, code, err)
		}
		if backend.Faces().Len() != 0 {
			t.Fatalf("failed open of %q left %d faces open", test.fileName, backend.Faces().Len())
		}
	}
}

func TestFaceAndInstanceSharing(t *testing.T) {
	const bigName = "-go-regular-medium-r-normal--32-0-75-75-p-0-iso8859-1"
	backend := newTestBackend(t, nil)
	a := mustOpen(t, backend, "goregular.ttf", regularName)
	b := mustOpen(t, backend, "goregular.ttf", regularName)
	if a.Instance() != b.Instance() { t.Fatalf("identical requests should share the instance") }
	if refs := a.Instance().RefCount(); refs != 2 { t.Fatalf("expected 2 refs, got %d", refs) }

	c := mustOpen(t, backend, "goregular.ttf", bigName)
	if c.Instance() == a.Instance() { t.Fatalf("different sizes must not share instances") }
	if a.Instance().Face() != c.Instance().Face() { t.Fatalf("same file should share the face") }
	if backend.Faces().Len() != 1 { t.Fatalf("expected 1 face, got %d", backend.Faces().Len()) }
	if n := a.Instance().Face().NumInstances(); n != 2 { t.Fatalf("expected 2 instances, got %d", n) }
	a.Close(); b.Close(); c.Close()
	if backend.Faces().Len() != 0 { t.Fatalf("face still open after closing every font") }

	// every close order ends with the face released, and not before
	orders := [][3]int{ {0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0} }
	for _, order := range orders {
		fonts := []*Font{
			mustOpen(t, backend, "goregular.ttf", regularName),
			mustOpen(t, backend, "goregular.ttf", regularName),
			mustOpen(t, backend, "goregular.ttf", bigName),
		}
		for step, i := range order {
			if backend.Faces().Len() != 1 { t.Fatalf("order %v: face closed early (step %d)", order, step) }
			fonts[i].Close()
			fonts[i].Close() // no effect
		}
		if backend.Faces().Len() != 0 { t.Fatalf("order %v: face still open", order) }
	}
}

func TestFontInfoClosesFont(t *testing.T) {
	backend := newTestBackend(t, nil)
	info, err := backend.FontInfo(mustRequest(t, "goregular.ttf", regularName))
	if err != nil { t.Fatal(err) }
	if info.FontAscent <= 0 { t.Fatalf("unexpected ascent %d", info.FontAscent) }
	if backend.Faces().Len() != 0 { t.Fatalf("FontInfo left the face open") }
}

func TestRendererRegistry(t *testing.T) {
	backend := newTestBackend(t, nil)
	registry := NewRegistry()
	backend.RegisterRenderers(registry)

	for _, name := range []string{"a.ttf", "dir/B.TTC", "ds=y:c.otf", "x.pfb", "fixed.bdf", "y.PCF"} {
		if _, found := registry.Lookup(name); !found { t.Fatalf("no renderer for %q", name) }
	}
	if _, found := registry.Lookup("font.woff"); found { t.Fatalf("unexpected renderer for woff") }

	calls := 0
	registry.Register(Renderer{
		Extension: ".BDF",
		OpenFont: func(Request) (*Font, error) { calls += 1; return nil, nil },
	}, -5)
	renderer, _ := registry.Lookup("fixed.bdf")
	_, _ = renderer.OpenFont(Request{})
	if calls != 1 { t.Fatalf("higher priority renderer not picked") }

	registry.Register(Renderer{
		Extension: ".ttf",
		OpenFont: func(Request) (*Font, error) { calls += 10; return nil, nil },
	}, -1)
	renderer, _ = registry.Lookup("a.ttf")
	fnt, err := renderer.OpenFont(mustRequest(t, "goregular.ttf", regularName))
	if err != nil || fnt == nil || calls != 1 { t.Fatalf("lower priority renderer picked") }
	fnt.Close()
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err error
		want Code
	}{
		{ nil, Successful },
		{ errors.New("plain"), BadFontName },
		{ newError(AllocError, "", nil), AllocError },
		{ fmt.Errorf("wrapped: %w", newError(BadFontPath, "x", nil)), BadFontPath },
		{ engineError("load", font.ErrOutOfMemory), AllocError },
	}
	for i, test := range tests {
		if got := CodeOf(test.err); got != test.want {
			t.Fatalf("test #%d: expected %s, got %s", i, test.want, got)
		}
	}
	if !errors.Is(newError(BadFontFormat, "op", errors.New("x")), ErrBadFontFormat) {
		t.Fatalf("errors.Is should match by code")
	}
}
