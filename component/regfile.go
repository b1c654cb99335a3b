package component

// RegisterFile is the ordered set of registers addressable through the
// demultiplexer. The value on the select bus is the index of the register
// the next Read/Store/InternalRead/InternalStore applies to.
type RegisterFile struct {
	Register []*Register
	demux    *Bus // Select line, not owned.
}

// NewRegisterFile creates a register file selected by 'demux'.
// Index 0 must be the default general purpose register.
func NewRegisterFile(demux *Bus, regs ...*Register) (rf *RegisterFile) {
	rf = &RegisterFile{
		Register: regs,
		demux:    demux,
	}

	return
}

// Len returns the number of registers.
func (rf *RegisterFile) Len() int {
	return len(rf.Register)
}

// Names returns the register names in index order.
func (rf *RegisterFile) Names() (names []string) {
	for _, reg := range rf.Register {
		names = append(names, reg.Name())
	}
	return
}

// Index returns the id of the named register.
func (rf *RegisterFile) Index(name string) (id int, ok bool) {
	for n, reg := range rf.Register {
		if reg.Name() == name {
			return n, true
		}
	}
	return -1, false
}

// Selected returns the register named by the select line.
func (rf *RegisterFile) Selected() (reg *Register, err error) {
	id := rf.demux.Get()
	if id < 0 || int(id) >= len(rf.Register) {
		err = ErrRegister(id)
		return
	}

	reg = rf.Register[id]
	return
}

// Read drives the selected register onto the external bus.
func (rf *RegisterFile) Read() (err error) {
	reg, err := rf.Selected()
	if err == nil {
		reg.Read()
	}
	return
}

// Store loads the selected register from the external bus.
func (rf *RegisterFile) Store() (err error) {
	reg, err := rf.Selected()
	if err == nil {
		reg.Store()
	}
	return
}

// InternalRead drives the selected register onto its internal bus.
func (rf *RegisterFile) InternalRead() (err error) {
	reg, err := rf.Selected()
	if err == nil {
		reg.InternalRead()
	}
	return
}

// InternalStore loads the selected register from its internal bus.
func (rf *RegisterFile) InternalStore() (err error) {
	reg, err := rf.Selected()
	if err == nil {
		reg.InternalStore()
	}
	return
}

// Reset clears every register.
func (rf *RegisterFile) Reset() {
	for _, reg := range rf.Register {
		reg.Reset()
	}
}
