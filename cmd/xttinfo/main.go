package main

import "flag"
import "fmt"
import "log"
import "log/slog"
import "os"
import "strings"

import "golang.org/x/sync/errgroup"

import "github.com/tinne26/xtt"
import "github.com/tinne26/xtt/cache"
import "github.com/tinne26/xtt/ttcap"

// Prints the information, properties and a few glyph renderings of
// each font given as argument. Font paths may carry capabilities,
// like "ai=0.2:ds=y:fonts/DejaVuSans.ttf". With -capfile, the
// arguments are capability property files instead, and the resolved
// capabilities are printed.
//
// Usage:
//   xttinfo [-name xlfd] [-res 75] [-text Hello] [-props] [-v] font...
//   xttinfo -capfile [-pixel 16] file...

func main() {
	name := flag.String("name", "-misc-unknown-medium-r-normal--16-0-0-0-p-0-iso8859-1", "XLFD name to request")
	res := flag.Int("res", xtt.DefaultResolution, "device resolution")
	text := flag.String("text", "Ag", "characters to render")
	props := flag.Bool("props", false, "print the font properties")
	verbose := flag.Bool("v", false, "log debug information")
	encDir := flag.String("encodings", "", "encodings.dir file with additional encodings")
	capFile := flag.Bool("capfile", false, "treat arguments as capability property files")
	pixel := flag.Int("pixel", 16, "pixel size used to resolve capability files")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprint(os.Stderr, "Usage: expects one or more font paths as arguments\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{ Level: slog.LevelDebug })
		xtt.SetLogger(slog.New(handler))
	}

	if *capFile {
		for _, path := range flag.Args() {
			err := describeCapFile(path, *pixel)
			if err != nil { log.Fatal(err) }
		}
		return
	}

	// one backend per file, as backends aren't safe for concurrent use
	reports := make([]string, flag.NArg())
	var group errgroup.Group
	group.SetLimit(4)
	for i, path := range flag.Args() {
		group.Go(func() error {
			var opts []xtt.Option
			if *encDir != "" { opts = append(opts, xtt.WithEncodingsDir(*encDir)) }
			backend := xtt.NewBackend(opts...)
			defer backend.Close()
			report, err := inspect(backend, path, *name, *res, *text, *props)
			if err != nil { return fmt.Errorf("%s: %w", path, err) }
			reports[i] = report
			return nil
		})
	}
	err := group.Wait()
	for _, report := range reports {
		if report != "" { fmt.Print(report) }
	}
	if err != nil { log.Fatal(err) }
}

func inspect(backend *xtt.Backend, path, name string, res int, text string, props bool) (string, error) {
	req, err := xtt.NewRequest(path, name, res, res)
	if err != nil { return "", err }
	fnt, err := backend.OpenFont(req)
	if err != nil { return "", err }
	defer fnt.Close()

	var out strings.Builder
	info := fnt.Info()
	fmt.Fprintf(&out, "== %s\n", path)
	fmt.Fprintf(&out, "spacing: %s, rows %d-%d, cols %d-%d\n", info.Spacing, info.FirstRow, info.LastRow, info.FirstCol, info.LastCol)
	fmt.Fprintf(&out, "ascent: %d, descent: %d\n", info.FontAscent, info.FontDescent)
	fmt.Fprintf(&out, "min bounds: %s\n", formatMetrics(&info.MinBounds))
	fmt.Fprintf(&out, "max bounds: %s\n", formatMetrics(&info.MaxBounds))
	fmt.Fprintf(&out, "terminal: %t, constant metrics: %t, constant width: %t, ink inside: %t\n",
		info.TerminalFont, info.ConstantMetrics, info.ConstantWidth, info.InkInside)
	if props {
		atoms := info.Atoms()
		for _, prop := range info.Properties {
			if prop.IsString {
				fmt.Fprintf(&out, "  %s = %q\n", atoms.Name(prop.Name), atoms.Name(xtt.Atom(prop.Value)))
			} else {
				fmt.Fprintf(&out, "  %s = %d\n", atoms.Name(prop.Name), prop.Value)
			}
		}
	}

	glyphs := fnt.Glyphs([]byte(text), xtt.Linear8Bit)
	for i, glyph := range glyphs {
		fmt.Fprintf(&out, "'%c' %s\n", text[i], formatMetrics(&glyph.Metrics))
		drawGlyph(&out, glyph)
	}
	return out.String(), nil
}

func describeCapFile(path string, pixel int) error {
	file, err := os.Open(path)
	if err != nil { return err }
	defer file.Close()
	records, err := ttcap.ReadPropertyFile(file)
	if err != nil { return fmt.Errorf("%s: %w", path, err) }
	fontFile, found := records.Text("FontFile")
	if !found { return fmt.Errorf("%s: missing FontFile record", path) }
	result, err := records.Resolve(fontFile, pixel)
	if err != nil { return fmt.Errorf("%s: %w", path, err) }

	fmt.Printf("== %s\n", path)
	fmt.Printf("font file: %s (face %d)\n", result.RealPath, result.FaceNumber)
	if result.Spacing != 0 { fmt.Printf("spacing: %c\n", result.Spacing) }
	if result.CodeRange != "" { fmt.Printf("code range: %s\n", result.CodeRange) }
	tuning := result.Cap
	if tuning.HasForceConstantSpacing() {
		fmt.Printf("constant spacing: 0x%X-0x%X\n", tuning.ForceConstantSpacingBegin, tuning.ForceConstantSpacingEnd)
	}
	fmt.Printf("font properties: %t\n", result.FontProperties)
	for _, field := range result.Defaulted {
		fmt.Printf("defaulted: %s\n", field)
	}
	return nil
}

func formatMetrics(m *cache.CharInfo) string {
	return fmt.Sprintf("lsb %d rsb %d width %d ascent %d descent %d raw %d",
		m.LeftSideBearing, m.RightSideBearing, m.CharacterWidth, m.Ascent, m.Descent, m.RawWidth())
}

// Draws an MSB first glyph bitmap with '#' for set bits.
func drawGlyph(out *strings.Builder, glyph *cache.Glyph) {
	width, height := glyph.Metrics.InkSize()
	if width <= 0 || height <= 0 { return }
	bytesPerRow := len(glyph.Bits)/height
	for row := 0; row < height; row++ {
		line := glyph.Bits[row*bytesPerRow : (row + 1)*bytesPerRow]
		for x := 0; x < width; x++ {
			if line[x >> 3] & (0x80 >> (x & 7)) != 0 {
				out.WriteByte('#')
			} else {
				out.WriteByte('.')
			}
		}
		out.WriteByte('\n')
	}
}
