package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	ext := &Bus{}
	int1 := &Bus{}
	int2 := &Bus{}
	demux := &Bus{}

	r0 := NewRegister("RPG0", ext, int1)
	pc := NewRegister("PC", ext, int2)
	rf := NewRegisterFile(demux, r0, pc)

	assert.Equal(2, rf.Len())
	assert.Equal([]string{"RPG0", "PC"}, rf.Names())

	id, ok := rf.Index("PC")
	assert.True(ok)
	assert.Equal(1, id)
	_, ok = rf.Index("XX")
	assert.False(ok)

	demux.Put(1)
	ext.Put(33)
	assert.NoError(rf.Store())
	assert.Equal(int32(33), pc.Data())
	assert.Equal(int32(0), r0.Data())

	assert.NoError(rf.InternalRead())
	assert.Equal(int32(33), int2.Get(), "PC is wired to the second internal bus")

	demux.Put(0)
	int1.Put(-4)
	assert.NoError(rf.InternalStore())
	assert.Equal(int32(-4), r0.Data())
	assert.NoError(rf.Read())
	assert.Equal(int32(-4), ext.Get())

	demux.Put(2)
	assert.ErrorIs(rf.Read(), ErrRegisterInvalid)
	demux.Put(-1)
	assert.ErrorIs(rf.InternalStore(), ErrRegisterInvalid)

	rf.Reset()
	assert.Equal(int32(0), pc.Data())
}
