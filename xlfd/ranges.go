package xlfd

import "strconv"
import "strings"

// A range of character codes, given as the row (high byte) and
// column (low byte) of both ends.
type Range struct {
	MinCharHigh, MinCharLow uint8
	MaxCharHigh, MaxCharLow uint8
}

func NewRange(first, last uint16) Range {
	return Range{
		MinCharHigh: uint8(first >> 8), MinCharLow: uint8(first),
		MaxCharHigh: uint8(last >> 8), MaxCharLow: uint8(last),
	}
}

func (self Range) First() uint16 { return uint16(self.MinCharHigh) << 8 | uint16(self.MinCharLow) }
func (self Range) Last() uint16 { return uint16(self.MaxCharHigh) << 8 | uint16(self.MaxCharLow) }

// Parses the subset ranges that may follow the charset
// encoding field, like "1[65_70 97]". Returns nil when there's no
// subset. Codes can be decimal or hexadecimal with a "0x" prefix.
func ParseRanges(encoding string) ([]Range, error) {
	open := strings.IndexByte(encoding, '[')
	if open < 0 { return nil, nil }
	if !strings.HasSuffix(encoding, "]") { return nil, ErrMalformed }

	var ranges []Range
	for _, item := range strings.Fields(encoding[open + 1 : len(encoding) - 1]) {
		firstStr, lastStr, isSpan := strings.Cut(item, "_")
		first, err := parseCode(firstStr)
		if err != nil { return nil, err }
		last := first
		if isSpan {
			last, err = parseCode(lastStr)
			if err != nil { return nil, err }
		}
		if last < first { return nil, ErrMalformed }
		ranges = append(ranges, NewRange(first, last))
	}
	return ranges, nil
}

func parseCode(str string) (uint16, error) {
	value, err := strconv.ParseUint(str, 0, 16)
	if err != nil { return 0, ErrMalformed }
	return uint16(value), nil
}

// Formats ranges back into the bracketed subset form.
func FormatRanges(ranges []Range) string {
	if len(ranges) == 0 { return "" }
	var builder strings.Builder
	builder.WriteByte('[')
	for i, r := range ranges {
		if i > 0 { builder.WriteByte(' ') }
		builder.WriteString(strconv.Itoa(int(r.First())))
		if r.Last() != r.First() {
			builder.WriteByte('_')
			builder.WriteString(strconv.Itoa(int(r.Last())))
		}
	}
	builder.WriteByte(']')
	return builder.String()
}
