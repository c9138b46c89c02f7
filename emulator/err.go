package emulator

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int    // Source line of the faulting instruction, or 0 if unknown.
	Ip     uint16 // Address of the faulting instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("%03x: %v", err.Ip, err.Err)
	}
	return f("line %d (%03x): %v", err.LineNo, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
