package ttcap

import "github.com/tinne26/xtt/xlfd"

// The first and last rows and columns of a code space.
type CodeSpan struct {
	FirstCol, FirstRow uint16
	LastCol, LastRow uint16
}

// Parses a code range list like "0x20-0x7e, 0xa0-". Each item is a
// single code, "a-b", "-b" (from 0) or "a-" (up to 0xFFFF); numbers
// may be decimal, octal or hexadecimal. Parsing stops at the first
// malformed item. When limit > 0, at most limit ranges are returned
// and reversed ranges are kept as written; otherwise all ranges are
// returned with their ends in order.
func ParseCodeRanges(str string, limit int) []xlfd.Range {
	var ranges []xlfd.Range
	p := 0
	peek := func() byte {
		if p < len(str) { return str[p] }
		return 0
	}
	skipSpaces := func() {
		for p < len(str) && isSpace(str[p]) { p++ }
	}

	for {
		minPoint, maxPoint := int64(0), int64(0xFFFF)
		for p < len(str) && (str[p] == ',' || isSpace(str[p])) { p++ }

		if peek() != '-' {
			value, n := scanInt(str[p:], 0)
			if n == 0 { break }
			if value < 0 || value > 0xFFFF { break }
			minPoint = value
			p += n
		}
		skipSpaces()

		if c := peek(); c != ',' && c != 0 {
			if c != '-' { break }
			p++
			skipSpaces()
			value, n := scanInt(str[p:], 0)
			if n > 0 {
				if value < 0 || value > 0xFFFF { break }
				maxPoint = value
				p += n
			} else if c := peek(); c != ',' && c != 0 {
				break
			}
		} else {
			maxPoint = minPoint
		}

		if limit <= 0 && minPoint > maxPoint {
			minPoint, maxPoint = maxPoint, minPoint
		}
		ranges = append(ranges, xlfd.NewRange(uint16(minPoint), uint16(maxPoint)))
		if limit > 0 && len(ranges) >= limit { break }
	}
	return ranges
}

// Restricts the span to the rows and columns covered by the ranges.
// A range spanning multiple rows covers every column. The span never
// becomes inverted: when the ranges fall outside of it, it collapses
// to its edge.
func RestrictCodeRange(span *CodeSpan, ranges []xlfd.Range) {
	if len(ranges) == 0 { return }
	minCol, minRow, maxCol, maxRow := 256, 256, -1, -1
	for _, r := range ranges {
		if r.MinCharHigh != r.MaxCharHigh {
			minCol, maxCol = 0x00, 0xFF
		} else {
			minCol = min(minCol, int(r.MinCharLow))
			maxCol = max(maxCol, int(r.MaxCharLow))
		}
		minRow = min(minRow, int(r.MinCharHigh))
		maxRow = max(maxRow, int(r.MaxCharHigh))
	}

	if minCol > int(span.LastCol) {
		span.FirstCol = span.LastCol
	} else if minCol > int(span.FirstCol) {
		span.FirstCol = uint16(minCol)
	}

	if maxCol < int(span.FirstCol) {
		span.LastCol = span.FirstCol
	} else if maxCol < int(span.LastCol) {
		span.LastCol = uint16(maxCol)
	}

	if minRow > int(span.LastRow) {
		span.FirstRow = span.LastRow
		span.FirstCol = span.LastCol
	} else if minRow > int(span.FirstRow) {
		span.FirstRow = uint16(minRow)
	}

	if maxRow < int(span.FirstRow) {
		span.LastRow = span.FirstRow
		span.LastCol = span.FirstCol
	} else if maxRow < int(span.LastRow) {
		span.LastRow = uint16(maxRow)
	}
}

// Parses the code range string and restricts the span with it.
func RestrictCodeRangeByString(span *CodeSpan, str string) {
	RestrictCodeRange(span, ParseCodeRanges(str, 0))
}
