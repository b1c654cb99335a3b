package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_StoreRead(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	mem := NewMemory(128, bus)
	assert.Equal(128, mem.Size())

	bus.Put(10)
	assert.NoError(mem.Store())
	assert.True(mem.Latched())
	bus.Put(1234)
	assert.NoError(mem.Store())
	assert.False(mem.Latched())

	bus.Put(10)
	assert.NoError(mem.Read())
	assert.Equal(int32(1234), bus.Get())

	value, err := mem.Peek(10)
	assert.NoError(err)
	assert.Equal(int32(1234), value)
	assert.Equal(int32(1234), mem.Cells()[10])
}

func TestMemory_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	mem := NewMemory(16, bus)

	for _, address := range []int32{-1, 16, 1000} {
		bus.Put(address)
		err := mem.Read()
		assert.ErrorIs(err, ErrOutOfBounds, "%v", address)
		assert.Equal(address, bus.Get(), "bus untouched on failure")

		err = mem.Store()
		assert.ErrorIs(err, ErrOutOfBounds, "%v", address)
		assert.False(mem.Latched())

		_, err = mem.Peek(address)
		assert.ErrorIs(err, ErrOutOfBounds)
	}

	var addrErr *ErrAddress
	bus.Put(16)
	assert.ErrorAs(mem.Read(), &addrErr)
	assert.Equal(int32(16), addrErr.Address)
	assert.Equal(16, addrErr.Size)
}

func TestMemory_Unlatch(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	mem := NewMemory(4, bus)
	bus.Put(3)
	assert.NoError(mem.Store())
	assert.True(mem.Latched())

	mem.Unlatch()
	assert.False(mem.Latched())

	bus.Put(1)
	assert.NoError(mem.Store())
	bus.Put(9)
	assert.NoError(mem.Store())
	assert.Equal([]int32{0, 9, 0, 0}, mem.Cells())
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	mem := NewMemory(4, bus)
	bus.Put(3)
	mem.Store()
	bus.Put(7)
	mem.Store()
	bus.Put(2)
	mem.Store()

	mem.Reset()
	assert.False(mem.Latched())
	assert.Equal([]int32{0, 0, 0, 0}, mem.Cells())
}
