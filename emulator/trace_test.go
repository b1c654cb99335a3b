package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	pr := NewPrinter(&out)
	pr.Pause = strings.NewReader("\n\n\n\n\n")

	emu := NewEmulator(0)
	assemble(emu, []string{
		"ldi %RPG0 1",
		"ldi %RPG1 2",
		"add %RPG0 %RPG1",
	}, t)
	pr.Program = emu.Program
	emu.Cpu.Tracer = pr

	assert.NoError(emu.Run())

	text := out.String()
	// One prompt per instruction, none for the halt.
	assert.Equal(3, strings.Count(text, "Press <Enter>"))
	assert.Contains(text, "msg=execute")
	assert.Contains(text, "opcode=addRegReg")
	assert.Contains(text, "operands=[0 1]")
	assert.Contains(text, "RPG1=3")
	assert.Contains(text, "line=3")
	assert.Contains(text, "opcode=END")
	assert.NotContains(text, "msg=fetch")
}

func TestPrinterDebug(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	pr := NewPrinter(&out)
	pr.Logger.SetLevel(logrus.DebugLevel)

	emu := NewEmulator(0)
	emu.Image = []int32{11, 4, 2, -1}
	assert.NoError(emu.Reset())
	emu.Cpu.Tracer = pr

	assert.NoError(emu.Run())

	text := out.String()
	assert.Contains(text, "msg=fetch")
	assert.Contains(text, "opcode=moveImmReg")
	assert.Contains(text, "RPG2=4")
	assert.NotContains(text, "line=")
	assert.NotContains(text, "Press <Enter>")
}
