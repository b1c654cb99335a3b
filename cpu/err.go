package cpu

import (
	"errors"

	"github.com/ezrec/busarch/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted           = errors.New(f("halted"))
	ErrScratchExhausted = errors.New(f("no free scratch cell"))
	ErrLoadFormat       = errors.New(f("object line is not an integer"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrVariableDuplicate  = errors.New(f("variable duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrMemoryFull         = errors.New(f("variables collide with program"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label or variable %v missing", string(el))
}

type ErrRegisterName string

func (er ErrRegisterName) Error() string {
	return f("register %v unknown", string(er))
}

// ErrOpcode annotates a failure inside a microprogram.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("opcode %d %v", int32(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrMicro is a failing micro-operation.
type ErrMicro struct {
	Op  MicroOp
	Err error
}

func (err *ErrMicro) Error() string {
	return f("micro-op %v %v", err.Op, err.Err)
}

func (err *ErrMicro) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
