package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/busarch/cpu"
)

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{Address: 4, Mnemonic: "jmp", Err: cpu.ErrScratchExhausted}
	assert.ErrorIs(err, cpu.ErrScratchExhausted)
	assert.Contains(err.Error(), "address 4 jmp")

	err.LineNo = 7
	assert.Contains(err.Error(), "line 7")
}
