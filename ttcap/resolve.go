package ttcap

import "fmt"
import "strconv"
import "strings"

import "github.com/tinne26/xtt/font"

// The interpretation of a font path with capabilities.
type Result struct {
	RealPath string // path of the font file
	EnginePath string // path qualified with the face number, used as cache key
	FaceNumber int
	Cap Cap
	LoadFlags font.LoadFlags
	Spacing byte // 0 (as requested), 'p', 'm' or 'c'
	FontProperties bool
	CodeRange string

	// Malformed numeric sub-fields that fell back to their defaults,
	// named like "ScaleBBoxWidth.height".
	Defaulted []string
}

// Parses the capabilities embedded in a font path and resolves them
// for the given pixel size.
func Parse(fileName string, pixel int) (*Result, error) {
	realPath, capHead := SplitPath(fileName)
	var records Records
	if capHead != "" {
		var err error
		records, err = ParseCapability(capHead)
		if err != nil { return nil, err }
	}
	return records.Resolve(realPath, pixel)
}

// Resolves the records into a [Result] for the font at the given
// real path, rendered at the given pixel size.
func (self *Records) Resolve(realPath string, pixel int) (*Result, error) {
	result := &Result{
		RealPath: realPath,
		EnginePath: realPath,
		Cap: Default(),
		FontProperties: true,
	}
	ttcap := &result.Cap
	hinting := true
	embeddedBitmap, alwaysEmbeddedBitmap := true, false
	defaulted := func(field string) {
		result.Defaulted = append(result.Defaulted, field)
	}

	if value, found := self.Text("FaceNumber"); found {
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			result.FaceNumber = n
			slash := strings.LastIndexByte(realPath, '/') + 1
			result.EnginePath = realPath[:slash] + ":" + value + ":" + realPath[slash:]
		} else if err != nil && value != "" {
			defaulted("FaceNumber")
		}
	}

	if value, found := self.Float("AutoItalic"); found { ttcap.AutoItalic = value }
	if value, found := self.Bool("Hinting"); found { hinting = value }
	if value, found := self.Float("ScaleWidth"); found {
		if value <= 0 { return nil, fmt.Errorf("%w: ScaleWidth needs plus", ErrBadFontName) }
		ttcap.ScaleWidth = value
	}

	if value, found := self.Text("ScaleBBoxWidth"); found {
		err := parseScaleBBoxWidth(value, ttcap, defaulted)
		if err != nil { return nil, err }
	}

	if value, found := self.Text("ForceSpacing"); found {
		if len(value) != 1 { return nil, fmt.Errorf("%w: ForceSpacing %q", ErrBadFontName, value) }
		switch value[0] {
		case 'M':
			ttcap.Flags |= MonoCenter
			result.Spacing = 'm'
		case 'm', 'p', 'c':
			result.Spacing = value[0]
		default:
			return nil, fmt.Errorf("%w: ForceSpacing %q", ErrBadFontName, value)
		}
	}

	if value, found := self.Text("DoubleStrike"); found {
		err := parseDoubleStrike(value, pixel, ttcap, defaulted)
		if err != nil { return nil, err }
	}

	if value, found := self.Bool("VeryLazyMetrics"); found {
		ttcap.Flags |= DisableDefaultVeryLazy
		if value {
			ttcap.Flags |= IsVeryLazy
		} else {
			ttcap.Flags &^= IsVeryLazy
		}
	}

	if value, found := self.Text("EmbeddedBitmap"); found {
		if len(value) != 1 { return nil, fmt.Errorf("%w: EmbeddedBitmap %q", ErrBadFontName, value) }
		switch value[0] | 0x20 {
		case 'y': embeddedBitmap, alwaysEmbeddedBitmap = true, true
		case 'u': embeddedBitmap, alwaysEmbeddedBitmap = true, false
		case 'n': embeddedBitmap = false
		default:
			return nil, fmt.Errorf("%w: EmbeddedBitmap %q", ErrBadFontName, value)
		}
	}

	if ttcap.Has(IsVeryLazy) {
		if value, found := self.Float("VeryLazyBitmapWidthScale"); found {
			ttcap.ScaleBitmap = value
		}
	}

	if value, found := self.Text("CodeRange"); found { result.CodeRange = value }

	if value, found := self.Text("ForceConstantSpacingCodeRange"); found {
		ranges := ParseCodeRanges(value, 1)
		if len(ranges) == 1 {
			ttcap.ForceConstantSpacingBegin = int(ranges[0].First())
			ttcap.ForceConstantSpacingEnd = int(ranges[0].Last())
			if ttcap.ForceConstantSpacingBegin <= ttcap.ForceConstantSpacingEnd {
				ttcap.Flags &^= ForceConstantOutside
			} else {
				ttcap.Flags |= ForceConstantOutside
			}
		} else {
			defaulted("ForceConstantSpacingCodeRange")
		}
	}

	if value, found := self.Text("ForceConstantSpacingMetrics"); found {
		parseForceConstantMetrics(value, ttcap, defaulted)
	}

	if value, found := self.Bool("FontProperties"); found { result.FontProperties = value }

	ttcap.ForceConstantScaleBBoxWidth *= ttcap.ScaleBBoxWidth
	ttcap.ForceConstantScaleBBoxHeight *= ttcap.ScaleBBoxHeight
	ttcap.ForceConstantScaleBBoxWidth *= ttcap.ScaleWidth
	ttcap.ScaleBBoxWidth *= ttcap.ScaleWidth
	ttcap.ForceConstantAdjustRSBByPixel += ttcap.AdjustRightSideBearingByPixel
	ttcap.ForceConstantAdjustLSBByPixel += ttcap.AdjustLeftSideBearingByPixel

	if !hinting { result.LoadFlags |= font.LoadNoHinting }
	if !embeddedBitmap { result.LoadFlags |= font.LoadNoBitmap }
	if ttcap.AutoItalic != 0 && !alwaysEmbeddedBitmap { result.LoadFlags |= font.LoadNoBitmap }
	return result, nil
}

// "w[,h][;adjW[,adjL[,adjR]]]"
func parseScaleBBoxWidth(value string, ttcap *Cap, defaulted func(string)) error {
	scaleW, scaleH := 1.0, 1.0
	fields := fieldScanner{ str: value, defaulted: defaulted, prefix: "ScaleBBoxWidth." }
	for once := true; once && len(value) > 0; once = false {
		if v, ok := fields.float("width"); ok { scaleW = v }
		if !fields.at(";,") { break }
		if fields.at(",") {
			fields.skip()
			if v, ok := fields.float("height"); ok { scaleH = v }
		}
		if !fields.at(";,") { break }
		fields.skip()
		if v, ok := fields.int("adjustWidth"); ok { ttcap.AdjustBBoxWidthByPixel = v }
		if !fields.at(",") { break }
		fields.skip()
		if v, ok := fields.int("adjustLeft"); ok { ttcap.AdjustLeftSideBearingByPixel = v }
		if !fields.at(",") { break }
		fields.skip()
		if v, ok := fields.int("adjustRight"); ok { ttcap.AdjustRightSideBearingByPixel = v }
	}
	if scaleW <= 0 { return fmt.Errorf("%w: ScaleBBoxWidth needs plus", ErrBadFontName) }
	if scaleH <= 0 { return fmt.Errorf("%w: ScaleBBoxHeight needs plus", ErrBadFontName) }
	ttcap.ScaleBBoxWidth, ttcap.ScaleBBoxHeight = scaleW, scaleH
	return nil
}

// "mode[correction][;makeBoldMaxPixel[,maxPixel]]"
func parseDoubleStrike(value string, pixel int, ttcap *Cap, defaulted func(string)) error {
	if len(value) == 0 { return fmt.Errorf("%w: empty DoubleStrike", ErrBadFontName) }
	switch value[0] {
	case 'm', 'M', 'l', 'L':
		ttcap.Flags |= DoubleStrike | DoubleStrikeEdgeLeft
	case 'y', 'Y':
		ttcap.Flags |= DoubleStrike
	case 'n', 'N':
		ttcap.Flags &^= DoubleStrike | DoubleStrikeEdgeLeft | DoubleStrikeCorrectBBoxWidth
	default:
		return fmt.Errorf("%w: DoubleStrike %q", ErrBadFontName, value)
	}
	if len(value) > 1 {
		switch value[1] {
		case 'b', 'B', 'p', 'P', 'y', 'Y':
			ttcap.Flags |= DoubleStrikeCorrectBBoxWidth
		}
	}

	sep := strings.IndexByte(value, ';')
	if sep < 0 { sep = strings.IndexByte(value, ',') }
	if sep < 0 { return nil }
	rest := value[sep + 1:]
	if rest != "" {
		maxPixel, n := scanInt(rest, 10)
		if n == 0 {
			defaulted("DoubleStrike.makeBoldMaxPixel")
		} else if int(maxPixel) <= pixel {
			ttcap.Flags &^= DoubleStrikeEdgeLeft
		}
	}
	comma := strings.IndexByte(rest, ',')
	if comma < 0 { return nil }
	rest = rest[comma + 1:]
	if rest != "" {
		maxPixel, n := scanInt(rest, 10)
		switch {
		case n == 0 || maxPixel <= 0:
			defaulted("DoubleStrike.maxPixel")
		case int(maxPixel) <= pixel && ttcap.Has(DoubleStrike):
			ttcap.DoubleStrikeShift += pixel/int(maxPixel)
		}
	}
	return nil
}

// Either a representative code, or "sbw[,lsb[,rsb[,sbh]]]" scales,
// optionally followed by ";adjW[,adjL[,adjR]]".
func parseForceConstantMetrics(value string, ttcap *Cap, defaulted func(string)) {
	semicolon := strings.IndexByte(value, ';')
	head := value
	if semicolon >= 0 { head = value[:semicolon] }

	if !strings.ContainsAny(head, ",.") && semicolon != 0 {
		ranges := ParseCodeRanges(value, 1)
		if len(ranges) == 1 {
			ttcap.ForceConstantMetricsCode = int(ranges[0].First())
		} else {
			defaulted("ForceConstantSpacingMetrics.code")
		}
	} else {
		fields := fieldScanner{ str: value, defaulted: defaulted, prefix: "ForceConstantSpacingMetrics." }
		for once := true; once; once = false {
			if v, ok := fields.float("scaleWidth"); ok { ttcap.ForceConstantScaleBBoxWidth = v }
			if !fields.at(",") { break }
			fields.skip()
			if v, ok := fields.float("scaleLeft"); ok {
				ttcap.ForceConstantScaleLSB = v
				ttcap.Flags |= ForceConstantLSB
			}
			if !fields.at(",") { break }
			fields.skip()
			if v, ok := fields.float("scaleRight"); ok {
				ttcap.ForceConstantScaleRSB = v
				ttcap.Flags |= ForceConstantRSB
			}
			if !fields.at(",") { break }
			fields.skip()
			if v, ok := fields.float("scaleHeight"); ok { ttcap.ForceConstantScaleBBoxHeight = v }
		}
	}

	if semicolon < 0 { return }
	fields := fieldScanner{ str: value[semicolon + 1:], defaulted: defaulted, prefix: "ForceConstantSpacingMetrics." }
	for once := true; once; once = false {
		if v, ok := fields.int("adjustWidth"); ok { ttcap.ForceConstantAdjustWidthByPixel = v }
		if !fields.at(",") { break }
		fields.skip()
		if v, ok := fields.int("adjustLeft"); ok { ttcap.ForceConstantAdjustLSBByPixel = v }
		if !fields.at(",") { break }
		fields.skip()
		if v, ok := fields.int("adjustRight"); ok { ttcap.ForceConstantAdjustRSBByPixel = v }
	}
}

// Walks the numeric fields of a capability value. Fields that can't
// be parsed are reported through defaulted and keep their defaults.
type fieldScanner struct {
	str string
	pos int
	prefix string
	defaulted func(string)
}

func (self *fieldScanner) float(name string) (float64, bool) {
	value, n := scanFloat(self.str[self.pos:])
	if n == 0 {
		self.defaulted(self.prefix + name)
		return 0, false
	}
	self.pos += n
	return value, true
}

func (self *fieldScanner) int(name string) (int, bool) {
	value, n := scanInt(self.str[self.pos:], 10)
	if n == 0 {
		self.defaulted(self.prefix + name)
		return 0, false
	}
	self.pos += n
	return int(value), true
}

// Reports whether the current byte is one of the given separators.
func (self *fieldScanner) at(separators string) bool {
	return self.pos < len(self.str) && strings.IndexByte(separators, self.str[self.pos]) >= 0
}

func (self *fieldScanner) skip() { self.pos += 1 }
