package ttcap

import "math"
import "strconv"

// Numeric prefix scanners. Capability values are parsed field by
// field, where each field may be followed by a separator, so these
// return how many bytes were consumed; 0 means no number was found.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

// Scans an integer prefix. Leading spaces and a sign are accepted.
// Base 0 detects "0x" (hex) and "0" (octal) prefixes. Out of range
// values saturate.
func scanInt(str string, base int) (int64, int) {
	i := 0
	for i < len(str) && isSpace(str[i]) { i++ }
	negative := false
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		negative = (str[i] == '-')
		i++
	}
	if base == 0 {
		base = 10
		if i < len(str) && str[i] == '0' {
			base = 8
			if i + 2 < len(str) && (str[i + 1] | 0x20) == 'x' && digitValue(str[i + 2]) < 16 {
				base = 16
				i += 2
			}
		}
	}

	start := i
	var value uint64
	for i < len(str) {
		digit := digitValue(str[i])
		if digit >= base { break }
		if value <= math.MaxInt64 { value = value*uint64(base) + uint64(digit) }
		i++
	}
	if i == start { return 0, 0 }
	if value > math.MaxInt64 { value = math.MaxInt64 }
	if negative { return -int64(value), i }
	return int64(value), i
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9': return int(c - '0')
	case c >= 'a' && c <= 'z': return int(c - 'a') + 10
	case c >= 'A' && c <= 'Z': return int(c - 'A') + 10
	}
	return 99
}

// Scans a decimal floating point prefix: optional spaces and sign,
// digits with an optional fraction and an optional exponent.
func scanFloat(str string) (float64, int) {
	i := 0
	for i < len(str) && isSpace(str[i]) { i++ }
	start := i
	if i < len(str) && (str[i] == '+' || str[i] == '-') { i++ }
	digits := 0
	for i < len(str) && str[i] >= '0' && str[i] <= '9' { i++ ; digits++ }
	if i < len(str) && str[i] == '.' {
		i++
		for i < len(str) && str[i] >= '0' && str[i] <= '9' { i++ ; digits++ }
	}
	if digits == 0 { return 0, 0 }
	if i < len(str) && (str[i] | 0x20) == 'e' {
		j := i + 1
		if j < len(str) && (str[j] == '+' || str[j] == '-') { j++ }
		expStart := j
		for j < len(str) && str[j] >= '0' && str[j] <= '9' { j++ }
		if j > expStart { i = j }
	}
	value, _ := strconv.ParseFloat(str[start : i], 64) // range errors keep ±Inf or 0
	return value, i
}
