package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/busarch/component"
)

const (
	MEMORY_SIZE = 128 // Default memory size in words.
)

// Register file ids, as carried on the select line.
const (
	REG_RPG0  = 0
	REG_RPG1  = 1
	REG_RPG2  = 2
	REG_RPG3  = 3
	REG_PC    = 4
	REG_IR    = 5
	REG_FLAGS = 6
)

// RegisterNames lists the register file in id order.
var RegisterNames = []string{"RPG0", "RPG1", "RPG2", "RPG3", "PC", "IR", "Flags"}

// Cpu is the control unit, and owner of the wiring of every component.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging of each micro-operation.
	Tracer  Tracer // Optional observer of each instruction.

	ExtBus  *component.Bus // External bus: memory, registers.
	IntBus1 *component.Bus // Internal bus 1: general purpose registers, ALU busA.
	IntBus2 *component.Bus // Internal bus 2: PC, IR, Flags, ALU busB.
	Demux   *component.Bus // Register select line.

	RPG       [4]*component.Register
	PC        *component.Register
	IR        *component.Register
	Flags     *component.Flags
	Registers *component.RegisterFile
	Alu       *component.Alu
	Memory    *component.Memory

	State  State // Control unit state.
	Ticks  int   // Instructions executed since reset.
	Cycles int   // Micro-operations issued since reset.

	imageEnd int32  // First address past the loaded image.
	address  int32  // Address of the current instruction.
	opcode   Opcode // Current instruction.
}

// NewCpu creates a machine with 'size' words of memory, wired as:
//
//	RPG0-RPG3: external bus, internal bus 1
//	PC, IR, Flags: external bus, internal bus 2
//	ALU: internal bus 1 (busA), internal bus 2 (busB)
//	Memory: external bus
func NewCpu(size int) (cpu *Cpu) {
	cpu = &Cpu{
		ExtBus:  &component.Bus{},
		IntBus1: &component.Bus{},
		IntBus2: &component.Bus{},
		Demux:   &component.Bus{},
	}

	for n := range cpu.RPG {
		cpu.RPG[n] = component.NewRegister(RegisterNames[n], cpu.ExtBus, cpu.IntBus1)
	}
	cpu.PC = component.NewRegister(RegisterNames[REG_PC], cpu.ExtBus, cpu.IntBus2)
	cpu.IR = component.NewRegister(RegisterNames[REG_IR], cpu.ExtBus, cpu.IntBus2)
	cpu.Flags = component.NewFlags(cpu.ExtBus, cpu.IntBus2)

	// The default general purpose register must be id 0.
	cpu.Registers = component.NewRegisterFile(cpu.Demux,
		cpu.RPG[0], cpu.RPG[1], cpu.RPG[2], cpu.RPG[3],
		cpu.PC, cpu.IR, cpu.Flags.Register,
	)

	cpu.Alu = component.NewAlu(cpu.IntBus1, cpu.IntBus2)
	cpu.Memory = component.NewMemory(size, cpu.ExtBus)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%d", cpu.Memory.Size()),
		"HALT":        fmt.Sprintf("%d", OP_HALT),
	})
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 7s: %v\n", "state", cpu.State)
	for _, reg := range cpu.Registers.Register {
		text += fmt.Sprintf("% 7s: %d\n", reg.Name(), reg.Data())
	}
	text += fmt.Sprintf("% 7s: z=%v n=%v nz=%v\n", "flags", cpu.Flags.Zero(), cpu.Flags.Negative(), cpu.Flags.NonZero())
	text += fmt.Sprintf("% 7s: %d\n", "extbus", cpu.ExtBus.Get())
	text += fmt.Sprintf("% 7s: %d\n", "intbus1", cpu.IntBus1.Get())
	text += fmt.Sprintf("% 7s: %d\n", "intbus2", cpu.IntBus2.Get())

	return
}

// Reset clears every bus, register, ALU slot and memory cell.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	for _, bus := range []*component.Bus{cpu.ExtBus, cpu.IntBus1, cpu.IntBus2, cpu.Demux} {
		bus.Put(0)
	}
	cpu.Registers.Reset()
	cpu.Alu.Reset()
	cpu.Memory.Reset()

	cpu.State = STATE_FETCH
	cpu.Ticks = 0
	cpu.Cycles = 0
	cpu.imageEnd = 0
	cpu.address = 0
	cpu.opcode = OP_HALT
}

// drive puts a control unit constant on the external bus.
func (cpu *Cpu) drive(value int32) {
	cpu.Cycles++
	cpu.ExtBus.Put(value)
}

// Load writes an object program image into memory from address 0, one
// address/data store pair per cell.
func (cpu *Cpu) Load(image []int32) (err error) {
	for n, value := range image {
		err = cpu.Deposit(int32(n), value)
		if err != nil {
			return
		}
	}

	cpu.imageEnd = int32(len(image))

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(image))
	}

	return
}

// ImageEnd returns the first address past the loaded image.
func (cpu *Cpu) ImageEnd() int32 {
	return cpu.imageEnd
}

// Deposit stores a word into memory over the external bus.
func (cpu *Cpu) Deposit(address int32, value int32) (err error) {
	cpu.Memory.Unlatch()
	cpu.drive(address)
	err = cpu.micro(UOP_MEM_STORE)
	if err != nil {
		return
	}
	cpu.drive(value)
	err = cpu.micro(UOP_MEM_STORE)
	return
}

// DepositRegister stores a word into a register over the external bus.
func (cpu *Cpu) DepositRegister(id int32, value int32) (err error) {
	cpu.Demux.Put(id)
	cpu.drive(value)
	err = cpu.micro(UOP_SEL_STORE)
	return
}

// Examine returns a memory word without driving any bus.
func (cpu *Cpu) Examine(address int32) (value int32, err error) {
	return cpu.Memory.Peek(address)
}

// micro performs a single micro-operation.
func (cpu *Cpu) micro(op MicroOp) (err error) {
	cpu.Cycles++

	switch op {
	case UOP_PC_READ:
		cpu.PC.Read()
	case UOP_PC_STORE:
		cpu.PC.Store()
	case UOP_PC_INTERNAL_READ:
		cpu.PC.InternalRead()
	case UOP_PC_INTERNAL_STORE:
		cpu.PC.InternalStore()
	case UOP_IR_READ:
		cpu.IR.Read()
	case UOP_IR_STORE:
		cpu.IR.Store()
	case UOP_IR_INTERNAL_READ:
		cpu.IR.InternalRead()
	case UOP_IR_INTERNAL_STORE:
		cpu.IR.InternalStore()
	case UOP_DEMUX_LATCH:
		cpu.Demux.Put(cpu.ExtBus.Get())
	case UOP_SEL_READ:
		err = cpu.Registers.Read()
	case UOP_SEL_STORE:
		err = cpu.Registers.Store()
	case UOP_SEL_INTERNAL_READ:
		err = cpu.Registers.InternalRead()
	case UOP_SEL_INTERNAL_STORE:
		err = cpu.Registers.InternalStore()
	case UOP_ALU_STORE_0:
		cpu.Alu.Store(0)
	case UOP_ALU_STORE_1:
		cpu.Alu.Store(1)
	case UOP_ALU_READ_0:
		cpu.Alu.Read(0)
	case UOP_ALU_READ_1:
		cpu.Alu.Read(1)
	case UOP_ALU_INTERNAL_STORE_0:
		cpu.Alu.InternalStore(0)
	case UOP_ALU_INTERNAL_STORE_1:
		cpu.Alu.InternalStore(1)
	case UOP_ALU_INTERNAL_READ_0:
		cpu.Alu.InternalRead(0)
	case UOP_ALU_INTERNAL_READ_1:
		cpu.Alu.InternalRead(1)
	case UOP_ALU_ADD:
		cpu.Alu.Add()
	case UOP_ALU_SUB:
		cpu.Alu.Sub()
	case UOP_ALU_INC_0:
		cpu.Alu.Inc(0)
	case UOP_ALU_INC_1:
		cpu.Alu.Inc(1)
	case UOP_MEM_READ:
		err = cpu.Memory.Read()
	case UOP_MEM_STORE:
		err = cpu.Memory.Store()
	case UOP_FLAGS_EXT:
		cpu.Flags.SetStatus(cpu.ExtBus.Get())
	case UOP_FLAGS_INT1:
		cpu.Flags.SetStatus(cpu.IntBus1.Get())
	case UOP_FLAGS_INT2:
		cpu.Flags.SetStatus(cpu.IntBus2.Get())
	default:
		panic(fmt.Sprintf("unknown micro-op %d", int(op)))
	}

	if err != nil {
		err = &ErrMicro{Op: op, Err: err}
		return
	}

	if cpu.Verbose {
		log.Printf("  %-13v ext:%d int1:%d int2:%d sel:%d", op,
			cpu.ExtBus.Get(), cpu.IntBus1.Get(), cpu.IntBus2.Get(), cpu.Demux.Get())
	}

	return
}

// run issues micro-operation sequences in order, stopping at the first
// failure. Nothing already done is undone.
func (cpu *Cpu) run(seqs ...[]MicroOp) (err error) {
	for _, seq := range seqs {
		for _, op := range seq {
			err = cpu.micro(op)
			if err != nil {
				return
			}
		}
	}

	return
}

// Fetch loads the instruction register from memory at PC. PC does not
// move.
func (cpu *Cpu) Fetch() (err error) {
	cpu.State = STATE_FETCH
	cpu.address = cpu.PC.Data()

	err = cpu.run(seqFetch)
	if err != nil {
		return
	}

	cpu.opcode = Opcode(cpu.IR.Data())
	cpu.trace(PHASE_FETCH)

	return
}

// Decode drives the instruction register onto internal bus 2 and returns
// the opcode found there.
func (cpu *Cpu) Decode() (op Opcode, err error) {
	err = cpu.micro(UOP_IR_INTERNAL_READ)
	if err != nil {
		return
	}

	op = Opcode(cpu.IntBus2.Get())
	cpu.opcode = op
	return
}

// Execute runs the microprogram of an opcode. An opcode without a
// microprogram halts the machine and returns ErrHalted.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrHalted) {
			err = errors.Join(ErrOpcode(op), err)
		}
	}()

	cpu.State = STATE_EXECUTE
	cpu.opcode = op
	cpu.trace(PHASE_BEFORE)

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.address, op)
	}

	if !op.Valid() {
		cpu.State = STATE_HALTED
		cpu.trace(PHASE_AFTER)
		err = ErrHalted
		return
	}

	err = dispatch[op](cpu)
	if err != nil {
		// A store cut short by the failure must not pair with a later one.
		cpu.Memory.Unlatch()
		return
	}

	cpu.Ticks++
	cpu.State = STATE_FETCH
	cpu.trace(PHASE_AFTER)

	return
}

// Tick performs one fetch-decode-execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State == STATE_HALTED {
		err = ErrHalted
		return
	}

	err = cpu.Fetch()
	if err != nil {
		return
	}

	op, err := cpu.Decode()
	if err != nil {
		return
	}

	err = cpu.Execute(op)
	return
}

// Run ticks until the machine halts.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if errors.Is(err, ErrHalted) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}
