package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_Transfers(t *testing.T) {
	assert := assert.New(t)

	ext := &Bus{}
	in := &Bus{}
	reg := NewRegister("RPG0", ext, in)

	assert.Equal("RPG0", reg.Name())
	assert.Equal(32, reg.Width())

	ext.Put(10)
	reg.Store()
	assert.Equal(int32(10), reg.Data())

	reg.InternalRead()
	assert.Equal(int32(10), in.Get())
	assert.Equal(int32(10), ext.Get())

	in.Put(-3)
	reg.InternalStore()
	assert.Equal(int32(-3), reg.Data())

	ext.Put(99)
	reg.Read()
	assert.Equal(int32(-3), ext.Get())
	assert.Equal(int32(-3), reg.Data(), "read does not mutate")

	reg.Reset()
	assert.Equal(int32(0), reg.Data())
}

func TestRegister_Bits(t *testing.T) {
	assert := assert.New(t)

	ext := &Bus{}
	reg := NewBitRegister("Flags", 3, ext, &Bus{})
	assert.Equal(3, reg.Width())

	ext.Put(0xff)
	reg.Store()
	assert.Equal(int32(7), reg.Data())

	assert.NoError(reg.SetBit(1, 0))
	assert.Equal(int32(5), reg.Data())

	bit, err := reg.GetBit(1)
	assert.NoError(err)
	assert.Equal(0, bit)

	bit, err = reg.GetBit(2)
	assert.NoError(err)
	assert.Equal(1, bit)

	_, err = reg.GetBit(3)
	assert.ErrorIs(err, ErrBitInvalid)
	assert.ErrorIs(reg.SetBit(-1, 1), ErrBitInvalid)
}

func TestFlags_SetStatus(t *testing.T) {
	table := [](struct {
		result   int32
		zero     bool
		negative bool
		nonzero  bool
	}){
		{0, true, false, false},
		{1, false, false, true},
		{-1, false, true, true},
		{2147483647, false, false, true},
		{-2147483648, false, true, true},
	}

	flags := NewFlags(&Bus{}, &Bus{})
	for _, entry := range table {
		flags.SetStatus(entry.result)
		assert.Equal(t, entry.zero, flags.Zero(), "%v", entry.result)
		assert.Equal(t, entry.negative, flags.Negative(), "%v", entry.result)
		assert.Equal(t, entry.nonzero, flags.NonZero(), "%v", entry.result)
		assert.NotEqual(t, flags.Zero(), flags.NonZero())
	}
}
