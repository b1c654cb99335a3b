package cpu

import (
	"fmt"
)

// microprogram is the execute phase of one instruction. On entry PC holds
// the address of the opcode.
type microprogram func(cpu *Cpu) error

var microprograms = map[string]microprogram{
	"addRegReg":  aluRegReg(UOP_ALU_ADD),
	"addMemReg":  aluMemReg(UOP_ALU_ADD, true),
	"addRegMem":  aluRegMem(UOP_ALU_ADD),
	"addImmReg":  aluMemReg(UOP_ALU_ADD, false),
	"subRegReg":  aluRegReg(UOP_ALU_SUB),
	"subMemReg":  aluMemReg(UOP_ALU_SUB, true),
	"subRegMem":  aluRegMem(UOP_ALU_SUB),
	"subImmReg":  aluMemReg(UOP_ALU_SUB, false),
	"moveRegReg": (*Cpu).moveRegReg,
	"moveMemReg": moveToReg(true),
	"moveRegMem": (*Cpu).moveRegMem,
	"moveImmReg": moveToReg(false),
	"imulRegReg": (*Cpu).imulRegReg,
	"imulMemReg": (*Cpu).imulMemReg,
	"imulRegMem": (*Cpu).imulRegMem,
	"incReg":     (*Cpu).incReg,
	"jmp":        jumpFlag(nil),
	"jn":         jumpFlag((*Cpu).negative),
	"jz":         jumpFlag((*Cpu).zero),
	"jeq":        jumpCompare(func(a, b int32) bool { return a == b }),
	"jnz":        jumpFlag((*Cpu).nonZero),
	"jgt":        jumpCompare(func(a, b int32) bool { return a > b }),
	"jlw":        jumpCompare(func(a, b int32) bool { return a < b }),
	"ldi":        (*Cpu).ldi,
	"read":       moveToReg(true),
	"store":      (*Cpu).moveRegMem,
	"addImmMem":  aluImmMem(UOP_ALU_ADD),
	"subImmMem":  aluImmMem(UOP_ALU_SUB),
	"incMem":     (*Cpu).incMem,
	"jneq":       jumpCompare(func(a, b int32) bool { return a != b }),
}

// dispatch is indexed by opcode.
var dispatch []microprogram

func init() {
	dispatch = make([]microprogram, len(Instructions))
	for n, ins := range Instructions {
		mp, ok := microprograms[ins.Mnemonic]
		if !ok {
			panic(fmt.Sprintf("cpu: %v has no microprogram", ins.Mnemonic))
		}
		dispatch[n] = mp
	}
}

// operand advances PC and drives the operand cell it points to onto the
// external bus. Leaves PC in alu slot 1.
func (cpu *Cpu) operand() (err error) {
	return cpu.run(seqPcAdvance, seqOperand)
}

// next advances PC past the last operand.
func (cpu *Cpu) next() (err error) {
	return cpu.run(seqPcAdvance)
}

func (cpu *Cpu) zero() bool     { return cpu.Flags.Zero() }
func (cpu *Cpu) negative() bool { return cpu.Flags.Negative() }
func (cpu *Cpu) nonZero() bool  { return cpu.Flags.NonZero() }

// aluRegReg: B <- A op B
func aluRegReg(op MicroOp) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_SEL_INTERNAL_READ, UOP_ALU_STORE_0})
		if err != nil {
			return
		}
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{
			UOP_DEMUX_LATCH, UOP_SEL_INTERNAL_READ, UOP_ALU_STORE_1,
			op,
			UOP_ALU_READ_1, UOP_FLAGS_INT1, UOP_SEL_INTERNAL_STORE,
		})
		if err != nil {
			return
		}
		return cpu.next()
	}
}

// aluMemReg: B <- mem[m] op B, or B <- i op B when 'indirect' is false.
func aluMemReg(op MicroOp, indirect bool) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.operand()
		if err != nil {
			return
		}
		if indirect {
			err = cpu.micro(UOP_MEM_READ)
			if err != nil {
				return
			}
		}
		err = cpu.micro(UOP_IR_STORE)
		if err != nil {
			return
		}
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{
			UOP_DEMUX_LATCH, UOP_SEL_INTERNAL_READ, UOP_ALU_STORE_1,
			UOP_IR_INTERNAL_READ, UOP_ALU_INTERNAL_STORE_0,
			op,
			UOP_ALU_READ_1, UOP_FLAGS_INT1, UOP_SEL_INTERNAL_STORE,
		})
		if err != nil {
			return
		}
		return cpu.next()
	}
}

// aluIntoMem is the tail shared by the memory destination forms. Expects
// the left hand value in alu slot 0 and the address on the external bus.
var aluIntoMem = []MicroOp{
	UOP_MEM_STORE, UOP_MEM_READ, UOP_IR_STORE,
	UOP_IR_INTERNAL_READ, UOP_ALU_INTERNAL_STORE_1,
}

var aluFromMem = []MicroOp{
	UOP_ALU_INTERNAL_READ_1, UOP_FLAGS_INT2,
	UOP_IR_INTERNAL_STORE, UOP_IR_READ, UOP_MEM_STORE,
}

// aluRegMem: mem[m] <- A op mem[m]
func aluRegMem(op MicroOp) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_SEL_INTERNAL_READ, UOP_ALU_STORE_0})
		if err != nil {
			return
		}
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run(aluIntoMem, []MicroOp{op}, aluFromMem)
		if err != nil {
			return
		}
		return cpu.next()
	}
}

// aluImmMem: mem[m] <- i op mem[m]
func aluImmMem(op MicroOp) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{UOP_IR_STORE, UOP_IR_INTERNAL_READ, UOP_ALU_INTERNAL_STORE_0})
		if err != nil {
			return
		}
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run(aluIntoMem, []MicroOp{op}, aluFromMem)
		if err != nil {
			return
		}
		return cpu.next()
	}
}

// moveRegReg: B <- A
func (cpu *Cpu) moveRegReg() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_SEL_READ, UOP_IR_STORE})
	if err != nil {
		return
	}
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_IR_READ, UOP_SEL_STORE}, seqPcStep)
	return
}

// moveToReg: B <- mem[m], or B <- i when 'indirect' is false.
func moveToReg(indirect bool) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.operand()
		if err != nil {
			return
		}
		if indirect {
			err = cpu.micro(UOP_MEM_READ)
			if err != nil {
				return
			}
		}
		err = cpu.micro(UOP_IR_STORE)
		if err != nil {
			return
		}
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_IR_READ, UOP_SEL_STORE}, seqPcStep)
		return
	}
}

// moveRegMem: mem[m] <- A
func (cpu *Cpu) moveRegMem() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.micro(UOP_DEMUX_LATCH)
	if err != nil {
		return
	}
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_MEM_STORE, UOP_SEL_READ, UOP_MEM_STORE}, seqPcStep)
	return
}

// ldi: A <- i
func (cpu *Cpu) ldi() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.micro(UOP_DEMUX_LATCH)
	if err != nil {
		return
	}
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_SEL_STORE}, seqPcStep)
	return
}

// incReg: A <- A + 1
func (cpu *Cpu) incReg() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{
		UOP_DEMUX_LATCH, UOP_SEL_INTERNAL_READ,
		UOP_ALU_STORE_0, UOP_ALU_INC_0, UOP_ALU_READ_0,
		UOP_FLAGS_INT1, UOP_SEL_INTERNAL_STORE,
	}, seqPcStep)
	return
}

// incMem: mem[m] <- mem[m] + 1
func (cpu *Cpu) incMem() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{
		UOP_MEM_STORE, UOP_MEM_READ, UOP_IR_STORE,
		UOP_IR_INTERNAL_READ, UOP_ALU_INTERNAL_STORE_0,
		UOP_ALU_INC_0, UOP_ALU_INTERNAL_READ_0,
		UOP_FLAGS_INT2,
		UOP_IR_INTERNAL_STORE, UOP_IR_READ, UOP_MEM_STORE,
	}, seqPcStep)
	return
}

// branch loads PC from the target cell when 'taken', or steps past it.
// Expects PC on the target cell and in alu slot 1.
func (cpu *Cpu) branch(taken bool) (err error) {
	if taken {
		return cpu.run(seqBranch)
	}
	return cpu.run(seqPcStep)
}

// jumpFlag branches on a flag bit. A nil test always branches.
func jumpFlag(test func(cpu *Cpu) bool) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.run(seqPcAdvance)
		if err != nil {
			return
		}
		return cpu.branch(test == nil || test(cpu))
	}
}

// jumpCompare branches when 'test(A, B)' holds. A is staged through IR
// onto internal bus 2, B is left on the external bus.
func jumpCompare(test func(a, b int32) bool) microprogram {
	return func(cpu *Cpu) (err error) {
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_SEL_READ, UOP_IR_STORE})
		if err != nil {
			return
		}
		err = cpu.operand()
		if err != nil {
			return
		}
		err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_SEL_READ, UOP_IR_INTERNAL_READ})
		if err != nil {
			return
		}

		taken := test(cpu.IntBus2.Get(), cpu.ExtBus.Get())

		err = cpu.run(seqPcAdvance)
		if err != nil {
			return
		}
		return cpu.branch(taken)
	}
}
