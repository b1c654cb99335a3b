package cpu

// Phase names the point of the cycle a Tracer is called at.
type Phase int

const (
	PHASE_FETCH  = Phase(0) // After the fetch, before decode.
	PHASE_BEFORE = Phase(1) // After decode, before the microprogram.
	PHASE_AFTER  = Phase(2) // After the microprogram.
)

func (phase Phase) String() string {
	switch phase {
	case PHASE_FETCH:
		return "fetch"
	case PHASE_BEFORE:
		return "before"
	case PHASE_AFTER:
		return "after"
	}
	return "phase?"
}

// RegisterValue is the content of one register file entry.
type RegisterValue struct {
	Name  string
	Value int32
}

// Snapshot is an observation of the machine between microprograms.
type Snapshot struct {
	Pc        int32   // Program counter register.
	Address   int32   // Address the current instruction was fetched from.
	Opcode    Opcode  // Current instruction.
	Operands  []int32 // Operand cells following the opcode.
	Registers []RegisterValue
	ExtBus    int32
	IntBus1   int32
	IntBus2   int32
	Demux     int32
	Cycles    int
}

// Tracer observes the control unit. It must not change machine state.
type Tracer interface {
	Trace(phase Phase, snap *Snapshot)
}

// TracerFunc adapts a function to a Tracer.
type TracerFunc func(phase Phase, snap *Snapshot)

func (fn TracerFunc) Trace(phase Phase, snap *Snapshot) {
	fn(phase, snap)
}

// Snapshot captures the current machine state. Operands are read with
// Peek, so taking a snapshot never drives a bus.
func (cpu *Cpu) Snapshot() (snap *Snapshot) {
	snap = &Snapshot{
		Pc:      cpu.PC.Data(),
		Address: cpu.address,
		Opcode:  cpu.opcode,
		ExtBus:  cpu.ExtBus.Get(),
		IntBus1: cpu.IntBus1.Get(),
		IntBus2: cpu.IntBus2.Get(),
		Demux:   cpu.Demux.Get(),
		Cycles:  cpu.Cycles,
	}

	for _, reg := range cpu.Registers.Register {
		snap.Registers = append(snap.Registers, RegisterValue{Name: reg.Name(), Value: reg.Data()})
	}

	for n := range snap.Opcode.Operands() {
		value, err := cpu.Memory.Peek(snap.Address + 1 + int32(n))
		if err != nil {
			break
		}
		snap.Operands = append(snap.Operands, value)
	}

	return
}

func (cpu *Cpu) trace(phase Phase) {
	if cpu.Tracer == nil {
		return
	}
	cpu.Tracer.Trace(phase, cpu.Snapshot())
}
