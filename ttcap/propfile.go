package ttcap

import "bufio"
import "errors"
import "fmt"
import "io"

const maxLineLength = 2048

var ErrUnmatchedQuote = errors.New("ttcap: unmatched quote")
var ErrLineTooLong = errors.New("ttcap: line too long")

// Reads records from a property file. Each logical line holds a
// record name and its value, separated by the first run of spaces.
// Text in single or double quotes is taken literally (but backslash
// escapes still apply inside double quotes), a backslash escapes the
// next character, a backslash before a newline joins lines, '#'
// starts a comment, and runs of spaces collapse into one.
func ReadPropertyFile(r io.Reader) (Records, error) {
	var records Records
	reader := bufio.NewReader(r)
	for lineNum := 1; ; lineNum++ {
		line, err := readPropertyLine(reader)
		if err != nil { return records, fmt.Errorf("line %d: %w", lineNum, err) }
		if line.content {
			err = records.Add(string(line.name), string(line.value))
			if err != nil { return records, fmt.Errorf("line %d: %w", lineNum, err) }
		}
		if line.eof { return records, nil }
	}
}

type propertyLine struct {
	name []byte
	value []byte
	content bool
	eof bool

	head bool
	pendingSpace bool
	inValue bool
}

func (self *propertyLine) length() int { return len(self.name) + len(self.value) + 1 }

// Emits a character (or just flushes pending spaces when c < 0).
func (self *propertyLine) emit(c int) error {
	self.head = false
	if self.length() >= maxLineLength { return ErrLineTooLong }
	if self.pendingSpace {
		self.content = true
		if !self.inValue {
			self.inValue = true
		} else {
			self.value = append(self.value, ' ')
		}
		self.pendingSpace = false
	}
	if c < 0 { return nil }
	self.content = true
	if self.inValue {
		self.value = append(self.value, byte(c))
	} else {
		self.name = append(self.name, byte(c))
	}
	return nil
}

func readPropertyLine(reader *bufio.Reader) (*propertyLine, error) {
	line := &propertyLine{ head: true }
	inSingle, inDouble, backslash := false, false, false
	for {
		c, err := reader.ReadByte()
		if err == io.EOF {
			line.eof = true
			if inSingle || inDouble { return nil, ErrUnmatchedQuote }
			return line, nil
		}
		if err != nil { return nil, err }

		var emitted int
		switch {
		case inSingle:
			emitted = int(c)
			if c == '\'' { inSingle, emitted = false, -1 }
		case backslash:
			backslash = false
			if c == 'n' { c = '\n' }
			emitted = int(c)
			if c == '\n' { emitted = -1 }
		case c == '\\':
			backslash, emitted = true, -1
		case inDouble:
			emitted = int(c)
			if c == '"' { inDouble, emitted = false, -1 }
		case c == '#':
			for c != '\n' {
				c, err = reader.ReadByte()
				if err == io.EOF {
					line.eof = true
					return line, nil
				}
				if err != nil { return nil, err }
			}
			return line, nil
		case c == '\'':
			inSingle, emitted = true, -1
		case c == '"':
			inDouble, emitted = true, -1
		case c == '\n':
			return line, nil
		case isSpace(c):
			if !line.head { line.pendingSpace = true }
			continue
		default:
			emitted = int(c)
		}

		if err := line.emit(emitted); err != nil { return nil, err }
	}
}
