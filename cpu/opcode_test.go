package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTable(t *testing.T) {
	assert := assert.New(t)

	list := Mnemonics()
	assert.Equal(30, len(list))
	assert.Equal(len(list), len(dispatch))

	for n, mnemonic := range list {
		op, ok := Lookup(mnemonic)
		assert.True(ok, mnemonic)
		assert.Equal(Opcode(n), op)
		assert.Equal(mnemonic, op.String())
		assert.NotNil(dispatch[op], mnemonic)
		_, ok = microprograms[mnemonic]
		assert.True(ok, mnemonic)
	}

	assert.Equal(len(list), len(microprograms))
}

func TestOpcodeNumbers(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		op       Opcode
		mnemonic string
		operands int
	}{
		{OP_ADD_REG_REG, "addRegReg", 2},
		{OP_MOVE_IMM_REG, "moveImmReg", 2},
		{OP_IMUL_REG_MEM, "imulRegMem", 2},
		{OP_INC_REG, "incReg", 1},
		{OP_JMP, "jmp", 1},
		{OP_JEQ, "jeq", 3},
		{OP_LDI, "ldi", 2},
		{OP_INC_MEM, "incMem", 1},
		{OP_JNEQ, "jneq", 3},
	}

	for _, entry := range table {
		assert.Equal(entry.mnemonic, entry.op.String())
		assert.Equal(entry.operands, entry.op.Operands())
		assert.True(entry.op.Valid())
	}
}

func TestOpcodeCommandList(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		mnemonic string
		op       Opcode
	}{
		{"jeq", 19},
		{"jneq", 20},
		{"jgt", 21},
		{"jlw", 22},
		{"ldi", 23},
		{"incMem", 28},
		{"jnz", 29},
	}

	for _, entry := range table {
		op, ok := Lookup(entry.mnemonic)
		assert.True(ok, entry.mnemonic)
		assert.Equal(entry.op, op, entry.mnemonic)
	}

	assert.Equal("jneq", Opcode(20).String())
}

func TestOpcodeInvalid(t *testing.T) {
	assert := assert.New(t)

	assert.False(OP_HALT.Valid())
	assert.Equal("END", OP_HALT.String())
	assert.Equal("END(30)", Opcode(30).String())
	assert.Equal(0, Opcode(99).Operands())

	_, ok := Opcode(-7).Instruction()
	assert.False(ok)

	_, ok = Lookup("add")
	assert.False(ok)
}

func TestOperandString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("%", OPERAND_REG.String())
	assert.Equal("&", OPERAND_MEM.String())
	assert.Equal("#", OPERAND_IMM.String())
	assert.Equal("@", OPERAND_TARGET.String())
}

func TestMicroOpString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("pc.read", UOP_PC_READ.String())
	assert.Equal("flags.int2", UOP_FLAGS_INT2.String())
	assert.Equal("MicroOp(99)", MicroOp(99).String())
}
