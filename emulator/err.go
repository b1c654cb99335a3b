package emulator

import (
	"github.com/ezrec/busarch/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address  int32  // Address of the failing instruction.
	LineNo   int    // Source line, if the program listing is known.
	Mnemonic string // Failing instruction.
	Err      error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d address %d %v: %v", err.LineNo, err.Address, err.Mnemonic, err.Err)
	}
	return f("address %d %v: %v", err.Address, err.Mnemonic, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
