package component

import (
	"errors"

	"github.com/ezrec/busarch/translate"
)

var f = translate.From

var (
	ErrOutOfBounds     = errors.New(f("memory address out of bounds"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrBitInvalid      = errors.New(f("bit invalid"))
)

// ErrAddress is a memory access outside of [0, Size).
type ErrAddress struct {
	Address int32
	Size    int
}

func (err *ErrAddress) Error() string {
	return f("address %d outside of memory [0, %d)", err.Address, err.Size)
}

func (err *ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}

// ErrRegister is a select line value naming no register.
type ErrRegister int32

func (err ErrRegister) Error() string {
	return f("no register with id %d", int32(err))
}

func (err ErrRegister) Unwrap() error {
	return ErrRegisterInvalid
}
