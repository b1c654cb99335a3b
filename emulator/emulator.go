// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/busarch/cpu"
	"github.com/ezrec/busarch/internal"
)

const (
	WORD_BITS = 32 // Machine word width.
)

var _emulator_defines = map[string]string{
	"WORD_BITS": fmt.Sprintf("%v", WORD_BITS),
}

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Image    []int32      // Object image; if nil, the binary of Program.
}

// NewEmulator creates a new emulator with 'size' words of memory.
func NewEmulator(size int) (emu *Emulator) {
	if size <= 0 {
		size = cpu.MEMORY_SIZE
	}

	emu = &Emulator{
		Cpu:     cpu.NewCpu(size),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assembler returns an assembler with the emulator's defines.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{
		Verbose:    emu.Verbose,
		MemorySize: emu.Cpu.Memory.Size(),
	}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// Reset the machine, and load the image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	image := emu.Image
	if image == nil {
		image = emu.Program.Binary()
	}

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d words loaded", len(image))
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Cycles returns the total micro-operations issued since a reset.
func (emu *Emulator) Cycles() int {
	return emu.Cpu.Cycles
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int32 {
	return emu.Cpu.PC.Data()
}

// Opcode returns the opcode at the program counter.
func (emu *Emulator) Opcode() cpu.Opcode {
	code, err := emu.Cpu.Examine(emu.Pc())
	if err != nil {
		return cpu.OP_HALT
	}

	return cpu.Opcode(code)
}

// LineNo returns the current line number for the executing statement.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction. 'done' is set when the machine
// halts.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	address := emu.Pc()
	lineno := emu.LineNo()
	op := emu.Opcode()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: lineno, Mnemonic: op.String(), Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks until the machine halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
