package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}
	assert.Equal(int32(0), bus.Get())

	bus.Put(42)
	assert.Equal(int32(42), bus.Get())
	assert.Equal(int32(42), bus.Get(), "reads do not consume")

	bus.Put(-7)
	assert.Equal(int32(-7), bus.Get())
}
