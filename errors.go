package xtt

import "errors"
import "fmt"

import "github.com/tinne26/xtt/font"
import "github.com/tinne26/xtt/ttcap"

// Error codes reported when opening fonts or rendering glyphs.
type Code uint8

const (
	Successful Code = iota
	AllocError // out of memory
	BadFontName // bad request parameters or engine failure
	BadFontFormat // reencoding the font would be unsafe
	BadFontPath // illegal font capability
)

func (self Code) String() string {
	switch self {
	case Successful: return "Successful"
	case AllocError: return "AllocError"
	case BadFontName: return "BadFontName"
	case BadFontFormat: return "BadFontFormat"
	case BadFontPath: return "BadFontPath"
	default: return fmt.Sprintf("Code(%d)", uint8(self))
	}
}

// An error with a [Code]. Errors compare equal under [errors.Is]
// when their codes match, so the Err* sentinels can be used as
// targets regardless of the wrapped cause.
type Error struct {
	Code Code
	Op string // operation that failed, may be empty
	Err error // underlying cause, may be nil
}

func (self *Error) Error() string {
	msg := "xtt: " + self.Code.String()
	if self.Op != "" { msg += " (" + self.Op + ")" }
	if self.Err != nil { msg += ": " + self.Err.Error() }
	return msg
}

func (self *Error) Unwrap() error { return self.Err }

func (self *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == self.Code
}

var (
	ErrAlloc = &Error{ Code: AllocError }
	ErrBadFontName = &Error{ Code: BadFontName }
	ErrBadFontFormat = &Error{ Code: BadFontFormat }
	ErrBadFontPath = &Error{ Code: BadFontPath }
)

// Returns the code of the first [Error] in the chain. Nil errors
// give [Successful], and errors without a code give [BadFontName].
func CodeOf(err error) Code {
	if err == nil { return Successful }
	var coded *Error
	if errors.As(err, &coded) { return coded.Code }
	return BadFontName
}

func newError(code Code, op string, cause error) error {
	return &Error{ Code: code, Op: op, Err: cause }
}

// Maps font engine errors: out of memory conditions become
// AllocError and anything else BadFontName.
func engineError(op string, err error) error {
	if err == nil { return nil }
	if errors.Is(err, font.ErrOutOfMemory) {
		return newError(AllocError, op, err)
	}
	return newError(BadFontName, op, err)
}

func capError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ttcap.ErrBadFontPath):
		return newError(BadFontPath, "ttcap", err)
	default:
		return newError(BadFontName, "ttcap", err)
	}
}
