package component

// Status bits of the flags register.
const (
	FLAG_ZERO     = 0 // Result was zero.
	FLAG_NEGATIVE = 1 // Result was negative.
	FLAG_NONZERO  = 2 // Result was not zero.

	FLAG_WIDTH = 3
)

// Flags is the condition register. It is a 3 bit Register, so it can sit
// in the register file, but the control unit examines and sets its bits
// directly instead of moving them over a bus.
type Flags struct {
	*Register
}

// NewFlags creates a flags register with the given wiring.
func NewFlags(external, internal *Bus) (flags *Flags) {
	flags = &Flags{
		Register: NewBitRegister("Flags", FLAG_WIDTH, external, internal),
	}

	return
}

// SetStatus recomputes all three status bits from an operation result.
func (flags *Flags) SetStatus(result int32) {
	flags.set(0)
	if result == 0 {
		flags.SetBit(FLAG_ZERO, 1)
	}
	if result < 0 {
		flags.SetBit(FLAG_NEGATIVE, 1)
	}
	if result != 0 {
		flags.SetBit(FLAG_NONZERO, 1)
	}
}

func (flags *Flags) bit(n int) bool {
	bit, _ := flags.GetBit(n)
	return bit == 1
}

// Zero is true when the last result was zero.
func (flags *Flags) Zero() bool {
	return flags.bit(FLAG_ZERO)
}

// Negative is true when the last result was negative.
func (flags *Flags) Negative() bool {
	return flags.bit(FLAG_NEGATIVE)
}

// NonZero is true when the last result was not zero.
func (flags *Flags) NonZero() bool {
	return flags.bit(FLAG_NONZERO)
}
