package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiply(t *testing.T) {
	table := [...]struct {
		x, n    int32
		product int32
		adds    int
		subs    int
	}{
		{7, 0, 0, 0, 0},
		{0, 5, 0, 4, 0},
		{7, 1, 7, 0, 0},
		{7, 3, 21, 2, 0},
		{-4, 3, -12, 2, 0},
		{7, -1, -7, 0, 2},
		{4, -2, -8, 0, 3},
		{-4, -2, 8, 0, 3},
	}

	for _, entry := range table {
		assert := assert.New(t)

		// imulRegReg %RPG0 %RPG1
		cpu := newTestCpu(t, int32(OP_IMUL_REG_REG), REG_RPG0, REG_RPG1)
		require.NoError(t, cpu.DepositRegister(REG_RPG0, entry.x))
		require.NoError(t, cpu.DepositRegister(REG_RPG1, entry.n))

		assert.NoError(cpu.Tick())
		assert.Equal(entry.product, cpu.RPG[1].Data(), "%d * %d", entry.x, entry.n)
		assert.Equal(entry.adds, cpu.Alu.Adds, "%d * %d adds", entry.x, entry.n)
		assert.Equal(entry.subs, cpu.Alu.Subs, "%d * %d subs", entry.x, entry.n)
		assert.Equal(entry.product == 0, cpu.Flags.Zero())
		assert.Equal(entry.product < 0, cpu.Flags.Negative())
	}
}

func TestMultiplyRegMem(t *testing.T) {
	table := [...]struct {
		x, n    int32
		product int32
	}{
		{6, 0, 0},
		{6, 5, 30},
		{6, -5, -30},
		{-6, -5, 30},
	}

	for _, entry := range table {
		assert := assert.New(t)

		// imulRegMem %RPG2 &100
		cpu := newTestCpu(t, int32(OP_IMUL_REG_MEM), REG_RPG2, 100)
		require.NoError(t, cpu.DepositRegister(REG_RPG2, entry.n))
		require.NoError(t, cpu.Deposit(100, entry.x))
		// Occupied cells at the top of memory are skipped.
		require.NoError(t, cpu.Deposit(127, 1))
		require.NoError(t, cpu.Deposit(126, 2))

		assert.NoError(cpu.Tick())

		cells := cpu.Memory.Cells()
		assert.Equal(entry.product, cells[100])
		assert.Equal(int32(1), cells[127])
		assert.Equal(int32(2), cells[126])
		assert.Equal(int32(0), cells[125])
		assert.Equal(entry.n, cpu.RPG[2].Data())
		assert.Equal(entry.product < 0, cpu.Flags.Negative())
		assert.Equal(int32(3), cpu.PC.Data())
	}
}

func TestMultiplyScratchSkipsDestination(t *testing.T) {
	assert := assert.New(t)

	// Destination is the top cell, and holds zero.
	cpu := newTestCpu(t, int32(OP_IMUL_REG_MEM), REG_RPG0, 127)
	require.NoError(t, cpu.DepositRegister(REG_RPG0, 3))

	assert.NoError(cpu.Tick())
	cells := cpu.Memory.Cells()
	assert.Equal(int32(0), cells[127])
	assert.Equal(int32(0), cells[126])
}

func TestMultiplyScratchExhausted(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(8)
	cpu.Reset()
	require.NoError(t, cpu.Load([]int32{int32(OP_IMUL_REG_MEM), REG_RPG0, 7, -1}))
	for address := int32(4); address < 7; address++ {
		require.NoError(t, cpu.Deposit(address, 9))
	}

	err := cpu.Tick()
	assert.ErrorIs(err, ErrScratchExhausted)
	assert.ErrorIs(err, ErrOpcode(OP_IMUL_REG_MEM))
	assert.Equal(STATE_EXECUTE, cpu.State)
	assert.Equal(0, cpu.Ticks)
}

func TestMultiplyScenario(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, int32(OP_IMUL_REG_REG), REG_RPG0, REG_RPG1, -1)
	require.NoError(t, cpu.DepositRegister(REG_RPG0, 4))
	require.NoError(t, cpu.DepositRegister(REG_RPG1, -2))

	assert.NoError(cpu.Run())
	assert.Equal(int32(-8), cpu.RPG[1].Data())
	assert.True(cpu.Flags.Negative())
	assert.False(cpu.Flags.Zero())
	assert.True(cpu.Flags.NonZero())
}
