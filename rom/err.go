package rom

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Rom errors
	ErrHexOdd     = errors.New(f("hex text has an odd number of digits"))
	ErrFormat     = errors.New(f("unknown rom format"))
	ErrEmpty      = errors.New(f("rom is empty"))
	ErrHexInvalid = errors.New(f("hex text invalid"))
)

// ErrHexDigit is a character in hex text that is not a hex digit.
type ErrHexDigit struct {
	LineNo int
	Digit  rune
}

func (err ErrHexDigit) Error() string {
	return f("line %d: '%c' is not a hex digit", err.LineNo, err.Digit)
}

func (err ErrHexDigit) Unwrap() error {
	return ErrHexInvalid
}
