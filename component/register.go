package component

// Register is a named storage cell wired to one external and one
// internal bus. Its value only changes on Store or InternalStore.
type Register struct {
	name     string
	value    int32
	width    int  // Width in bits, 0 for a full machine word.
	external *Bus // Wiring, not owned.
	internal *Bus // Wiring, not owned.
}

// NewRegister creates a full width register.
func NewRegister(name string, external, internal *Bus) (reg *Register) {
	reg = &Register{
		name:     name,
		external: external,
		internal: internal,
	}

	return
}

// NewBitRegister creates a register holding only the low 'width' bits of
// any value stored into it.
func NewBitRegister(name string, width int, external, internal *Bus) (reg *Register) {
	reg = NewRegister(name, external, internal)
	reg.width = width

	return
}

// Name of the register.
func (reg *Register) Name() string {
	return reg.name
}

// Width of the register in bits, 32 for a full machine word.
func (reg *Register) Width() int {
	if reg.width == 0 {
		return 32
	}
	return reg.width
}

// Data returns the register value without touching any bus.
func (reg *Register) Data() int32 {
	return reg.value
}

func (reg *Register) set(value int32) {
	if reg.width != 0 {
		value &= int32(1)<<reg.width - 1
	}
	reg.value = value
}

// Read drives the register value onto the external bus.
func (reg *Register) Read() {
	reg.external.Put(reg.value)
}

// Store loads the register from the external bus.
func (reg *Register) Store() {
	reg.set(reg.external.Get())
}

// InternalRead drives the register value onto the internal bus.
func (reg *Register) InternalRead() {
	reg.internal.Put(reg.value)
}

// InternalStore loads the register from the internal bus.
func (reg *Register) InternalStore() {
	reg.set(reg.internal.Get())
}

// GetBit returns bit n of the register, as 0 or 1.
func (reg *Register) GetBit(n int) (bit int, err error) {
	if n < 0 || n >= reg.Width() {
		err = ErrBitInvalid
		return
	}

	bit = int((reg.value >> n) & 1)
	return
}

// SetBit sets bit n of the register to 0 or 1 (any non-zero value).
func (reg *Register) SetBit(n int, bit int) (err error) {
	if n < 0 || n >= reg.Width() {
		err = ErrBitInvalid
		return
	}

	if bit != 0 {
		reg.value |= 1 << n
	} else {
		reg.value &^= 1 << n
	}

	return
}

// Reset clears the register.
func (reg *Register) Reset() {
	reg.value = 0
}
