package fontenc

import "bufio"
import "errors"
import "fmt"
import "io"
import "strconv"
import "strings"

var ErrMalformed = errors.New("fontenc: malformed encoding file")

type lineKind uint8

const (
	lineError lineKind = iota
	lineEOF
	lineStartEncoding
	lineAlias
	lineSize
	lineFirstIndex
	lineStartMapping
	lineEndMapping
	lineCode
	lineCodeRange
	lineUndefine
	lineName
)

type encLine struct {
	kind lineKind
	keyword string
	values [3]uint32
}

// Reads the logical lines of an encoding file.
type encLexer struct {
	scanner *bufio.Scanner
	lineNum int
}

func isKeywordStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '/' || c == '_' || c == '-' || c == '.'
}

// Splits a line into tokens, dropping comments.
func encTokens(line string) []string {
	if hash := strings.IndexByte(line, '#'); hash >= 0 { line = line[:hash] }
	return strings.Fields(line)
}

func parseEncNumber(token string) (uint32, bool) {
	if token == "" || token[0] < '0' || token[0] > '9' { return 0, false }
	value, err := strconv.ParseUint(token, 0, 32)
	if err != nil { return 0, false }
	return uint32(value), true
}

func (self *encLexer) next() encLine {
	for self.scanner.Scan() {
		self.lineNum += 1
		tokens := encTokens(self.scanner.Text())
		if len(tokens) == 0 { continue }
		return classifyEncLine(tokens)
	}
	return encLine{ kind: lineEOF }
}

func classifyEncLine(tokens []string) encLine {
	var line encLine
	numbers := func(from, min, max int) bool {
		rest := tokens[from:]
		if len(rest) < min || len(rest) > max { return false }
		for i, token := range rest {
			value, ok := parseEncNumber(token)
			if !ok { return false }
			line.values[i] = value
		}
		return true
	}

	if _, isNumber := parseEncNumber(tokens[0]); isNumber {
		if len(tokens) == 2 && isKeywordStart(tokens[1][0]) {
			line.values[0], _ = parseEncNumber(tokens[0])
			line.kind, line.keyword = lineName, tokens[1]
			return line
		}
		switch {
		case len(tokens) == 2 && numbers(0, 2, 2): line.kind = lineCode
		case len(tokens) == 3 && numbers(0, 3, 3): line.kind = lineCodeRange
		}
		return line
	}
	if !isKeywordStart(tokens[0][0]) { return line }

	switch strings.ToUpper(tokens[0]) {
	case "STARTENCODING":
		if len(tokens) == 2 { line.kind, line.keyword = lineStartEncoding, tokens[1] }
	case "ALIAS":
		if len(tokens) == 2 { line.kind, line.keyword = lineAlias, tokens[1] }
	case "SIZE":
		if numbers(1, 1, 2) { line.kind = lineSize }
	case "FIRSTINDEX":
		if numbers(1, 1, 2) { line.kind = lineFirstIndex }
	case "STARTMAPPING":
		if len(tokens) >= 2 && isKeywordStart(tokens[1][0]) {
			line.keyword = tokens[1]
			if numbers(2, 0, 2) { line.kind = lineStartMapping }
		}
	case "UNDEFINE":
		if numbers(1, 1, 2) {
			line.kind = lineUndefine
			if len(tokens) == 2 { line.values[1] = line.values[0] }
		}
	case "ENDMAPPING":
		if len(tokens) == 1 { line.kind = lineEndMapping }
	case "ENDENCODING":
		if len(tokens) == 1 { line.kind = lineEOF }
	}
	return line
}

// Parses an encoding file:
//
//	STARTENCODING name
//	ALIAS other-name
//	SIZE size [rowSize]
//	FIRSTINDEX first [firstCol]
//	STARTMAPPING unicode | cmap pid eid | postscript
//	code target
//	first last target
//	UNDEFINE first [last]
//	code glyphName
//	ENDMAPPING
//	ENDENCODING
//
// Unknown lines and mappings of unknown types are skipped.
func ParseFile(r io.Reader) (*Encoding, error) {
	return parseEncodingFile(r, false)
}

// Returns the names (main name first, then aliases) declared by the
// header of an encoding file.
func IdentifyFile(r io.Reader) ([]string, error) {
	enc, err := parseEncodingFile(r, true)
	if err != nil { return nil, err }
	return append([]string{ enc.Name }, enc.Aliases...), nil
}

func parseEncodingFile(r io.Reader, headerOnly bool) (*Encoding, error) {
	lexer := &encLexer{ scanner: bufio.NewScanner(r) }
	fail := func(msg string) error {
		if err := lexer.scanner.Err(); err != nil { return err }
		return fmt.Errorf("%w: line %d: %s", ErrMalformed, lexer.lineNum, msg)
	}

	line := lexer.next()
	if line.kind != lineStartEncoding { return nil, fail("expected STARTENCODING") }
	enc := &Encoding{ Name: line.keyword, Size: 256 }

	for {
		line = lexer.next()
		switch line.kind {
		case lineEOF:
			if err := lexer.scanner.Err(); err != nil { return nil, err }
			return enc, nil
		case lineAlias:
			enc.Aliases = append(enc.Aliases, line.keyword)
		case lineSize:
			enc.Size, enc.RowSize = int(line.values[0]), int(line.values[1])
		case lineFirstIndex:
			enc.First, enc.FirstCol = int(line.values[0]), int(line.values[1])
		case lineStartMapping:
			if headerOnly { return enc, nil }
			var err error
			switch strings.ToLower(line.keyword) {
			case "unicode":
				err = parseCodeMapping(lexer, enc, &Mapping{ Type: Unicode })
			case "cmap":
				mapping := &Mapping{ Type: TrueType, PID: int(line.values[0]), EID: int(line.values[1]) }
				err = parseCodeMapping(lexer, enc, mapping)
			case "postscript":
				err = parseNameMapping(lexer, enc)
			default:
				err = skipMapping(lexer)
			}
			if err != nil { return nil, fail(err.Error()) }
		}
	}
}

func skipMapping(lexer *encLexer) error {
	for {
		switch lexer.next().kind {
		case lineEndMapping: return nil
		case lineEOF: return errors.New("unterminated mapping")
		}
	}
}

func parseCodeMapping(lexer *encLexer, enc *Encoding, mapping *Mapping) error {
	table := make(map[uint32]uint32)
	rowSize := uint32(enc.RowSize)
	setCode := func(from, to uint32) {
		if from > 0xFFFF { return }
		index := from
		if rowSize != 0 {
			if from & 0xFF >= rowSize { return }
			index = (from >> 8)*rowSize + (from & 0xFF)
		}
		table[index] = to
	}
	setRange := func(first, last, target uint32, undefine bool) {
		first, last = min(first, 0x10000), min(last, 0x10000)
		for code := first; code <= last; code++ {
			if undefine {
				setCode(code, 0)
			} else {
				setCode(code, target + (code - first))
			}
		}
	}

	for {
		line := lexer.next()
		switch line.kind {
		case lineEOF:
			return errors.New("unterminated mapping")
		case lineEndMapping:
			mapping.recode = func(code uint32) uint32 {
				if code > 0xFFFF { return 0 }
				index := code
				if rowSize != 0 {
					if code & 0xFF >= rowSize { return 0 }
					index = (code >> 8)*rowSize + (code & 0xFF)
				}
				if target, found := table[index]; found { return target }
				return code
			}
			enc.addMapping(mapping)
			return nil
		case lineCode:
			setCode(line.values[0], line.values[1])
		case lineCodeRange:
			setRange(line.values[0], line.values[1], line.values[2], false)
		case lineUndefine:
			setRange(line.values[0], line.values[1], 0, true)
		}
	}
}

func parseNameMapping(lexer *encLexer, enc *Encoding) error {
	names := make(map[uint32]string)
	for {
		line := lexer.next()
		switch line.kind {
		case lineEOF:
			return errors.New("unterminated mapping")
		case lineEndMapping:
			if len(names) == 0 { return errors.New("empty postscript mapping") }
			enc.addMapping(&Mapping{
				Type: PostScript,
				name: func(code uint32) string { return names[code] },
			})
			return nil
		case lineName:
			if line.values[0] < 0x10000 { names[line.values[0]] = line.keyword }
		}
	}
}
