package cpu

import (
	"fmt"
	"slices"
)

// Opcode is the number of an instruction: its position in Instructions.
type Opcode int32

// Opcodes, in canonical table order.
const (
	OP_ADD_REG_REG  = Opcode(0)  // addRegReg
	OP_ADD_MEM_REG  = Opcode(1)  // addMemReg
	OP_ADD_REG_MEM  = Opcode(2)  // addRegMem
	OP_ADD_IMM_REG  = Opcode(3)  // addImmReg
	OP_SUB_REG_REG  = Opcode(4)  // subRegReg
	OP_SUB_MEM_REG  = Opcode(5)  // subMemReg
	OP_SUB_REG_MEM  = Opcode(6)  // subRegMem
	OP_SUB_IMM_REG  = Opcode(7)  // subImmReg
	OP_MOVE_REG_REG = Opcode(8)  // moveRegReg
	OP_MOVE_MEM_REG = Opcode(9)  // moveMemReg
	OP_MOVE_REG_MEM = Opcode(10) // moveRegMem
	OP_MOVE_IMM_REG = Opcode(11) // moveImmReg
	OP_IMUL_REG_REG = Opcode(12) // imulRegReg
	OP_IMUL_MEM_REG = Opcode(13) // imulMemReg
	OP_IMUL_REG_MEM = Opcode(14) // imulRegMem
	OP_INC_REG      = Opcode(15) // incReg
	OP_JMP          = Opcode(16) // jmp
	OP_JN           = Opcode(17) // jn
	OP_JZ           = Opcode(18) // jz
	OP_JEQ          = Opcode(19) // jeq
	OP_JNEQ         = Opcode(20) // jneq
	OP_JGT          = Opcode(21) // jgt
	OP_JLW          = Opcode(22) // jlw
	OP_LDI          = Opcode(23) // ldi
	OP_READ         = Opcode(24) // read
	OP_STORE        = Opcode(25) // store
	OP_ADD_IMM_MEM  = Opcode(26) // addImmMem
	OP_SUB_IMM_MEM  = Opcode(27) // subImmMem
	OP_INC_MEM      = Opcode(28) // incMem
	OP_JNZ          = Opcode(29) // jnz

	OP_HALT = Opcode(-1) // Object program terminator.
)

// Operand is the kind of an operand cell.
type Operand int

const (
	OPERAND_REG    = Operand(0) // Register id.
	OPERAND_MEM    = Operand(1) // Memory address of a variable.
	OPERAND_IMM    = Operand(2) // Immediate value.
	OPERAND_TARGET = Operand(3) // Jump target address.
)

// String returns the assembler prefix of the operand kind.
func (kind Operand) String() string {
	switch kind {
	case OPERAND_REG:
		return "%"
	case OPERAND_MEM:
		return "&"
	case OPERAND_IMM:
		return "#"
	case OPERAND_TARGET:
		return "@"
	}
	return "?"
}

// Instruction describes one entry of the opcode table.
type Instruction struct {
	Mnemonic  string    // Canonical mnemonic.
	Family    string    // Operand-kind overloaded assembler mnemonic, if any.
	Operands  []Operand // Operand cells following the opcode.
	SetsFlags bool      // Recomputes the flags from its result.
	Branch    bool      // May load PC with a target.
}

// Instructions is the canonical opcode table. The index of an entry is
// its opcode; the assembler and the control unit both use this table.
var Instructions = [...]Instruction{
	OP_ADD_REG_REG:  {"addRegReg", "add", []Operand{OPERAND_REG, OPERAND_REG}, true, false},
	OP_ADD_MEM_REG:  {"addMemReg", "add", []Operand{OPERAND_MEM, OPERAND_REG}, true, false},
	OP_ADD_REG_MEM:  {"addRegMem", "add", []Operand{OPERAND_REG, OPERAND_MEM}, true, false},
	OP_ADD_IMM_REG:  {"addImmReg", "add", []Operand{OPERAND_IMM, OPERAND_REG}, true, false},
	OP_SUB_REG_REG:  {"subRegReg", "sub", []Operand{OPERAND_REG, OPERAND_REG}, true, false},
	OP_SUB_MEM_REG:  {"subMemReg", "sub", []Operand{OPERAND_MEM, OPERAND_REG}, true, false},
	OP_SUB_REG_MEM:  {"subRegMem", "sub", []Operand{OPERAND_REG, OPERAND_MEM}, true, false},
	OP_SUB_IMM_REG:  {"subImmReg", "sub", []Operand{OPERAND_IMM, OPERAND_REG}, true, false},
	OP_MOVE_REG_REG: {"moveRegReg", "move", []Operand{OPERAND_REG, OPERAND_REG}, false, false},
	OP_MOVE_MEM_REG: {"moveMemReg", "move", []Operand{OPERAND_MEM, OPERAND_REG}, false, false},
	OP_MOVE_REG_MEM: {"moveRegMem", "move", []Operand{OPERAND_REG, OPERAND_MEM}, false, false},
	OP_MOVE_IMM_REG: {"moveImmReg", "move", []Operand{OPERAND_IMM, OPERAND_REG}, false, false},
	OP_IMUL_REG_REG: {"imulRegReg", "imul", []Operand{OPERAND_REG, OPERAND_REG}, true, false},
	OP_IMUL_MEM_REG: {"imulMemReg", "imul", []Operand{OPERAND_MEM, OPERAND_REG}, true, false},
	OP_IMUL_REG_MEM: {"imulRegMem", "imul", []Operand{OPERAND_REG, OPERAND_MEM}, true, false},
	OP_INC_REG:      {"incReg", "inc", []Operand{OPERAND_REG}, true, false},
	OP_JMP:          {"jmp", "", []Operand{OPERAND_TARGET}, false, true},
	OP_JN:           {"jn", "", []Operand{OPERAND_TARGET}, false, true},
	OP_JZ:           {"jz", "", []Operand{OPERAND_TARGET}, false, true},
	OP_JEQ:          {"jeq", "", []Operand{OPERAND_REG, OPERAND_REG, OPERAND_TARGET}, false, true},
	OP_JNEQ:         {"jneq", "", []Operand{OPERAND_REG, OPERAND_REG, OPERAND_TARGET}, false, true},
	OP_JGT:          {"jgt", "", []Operand{OPERAND_REG, OPERAND_REG, OPERAND_TARGET}, false, true},
	OP_JLW:          {"jlw", "", []Operand{OPERAND_REG, OPERAND_REG, OPERAND_TARGET}, false, true},
	OP_LDI:          {"ldi", "", []Operand{OPERAND_REG, OPERAND_IMM}, false, false},
	OP_READ:         {"read", "", []Operand{OPERAND_MEM, OPERAND_REG}, false, false},
	OP_STORE:        {"store", "", []Operand{OPERAND_REG, OPERAND_MEM}, false, false},
	OP_ADD_IMM_MEM:  {"addImmMem", "add", []Operand{OPERAND_IMM, OPERAND_MEM}, true, false},
	OP_SUB_IMM_MEM:  {"subImmMem", "sub", []Operand{OPERAND_IMM, OPERAND_MEM}, true, false},
	OP_INC_MEM:      {"incMem", "inc", []Operand{OPERAND_MEM}, true, false},
	OP_JNZ:          {"jnz", "", []Operand{OPERAND_TARGET}, false, true},
}

// Mnemonics returns the ordered mnemonic list; the index of a mnemonic is
// its opcode.
func Mnemonics() (list []string) {
	list = make([]string, len(Instructions))
	for n, ins := range Instructions {
		list[n] = ins.Mnemonic
	}
	return
}

// Lookup returns the opcode of a canonical mnemonic.
func Lookup(mnemonic string) (op Opcode, ok bool) {
	n := slices.Index(Mnemonics(), mnemonic)
	if n < 0 {
		return OP_HALT, false
	}
	return Opcode(n), true
}

// Valid is true if the opcode has a microprogram.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < len(Instructions)
}

// Instruction returns the table entry of a valid opcode.
func (op Opcode) Instruction() (ins Instruction, ok bool) {
	if !op.Valid() {
		return
	}
	return Instructions[op], true
}

// Operands returns the number of operand cells following the opcode.
func (op Opcode) Operands() int {
	ins, _ := op.Instruction()
	return len(ins.Operands)
}

// String returns the mnemonic, or "END" for an opcode that halts.
func (op Opcode) String() string {
	ins, ok := op.Instruction()
	if !ok {
		if op == OP_HALT {
			return "END"
		}
		return fmt.Sprintf("END(%d)", int32(op))
	}
	return ins.Mnemonic
}
