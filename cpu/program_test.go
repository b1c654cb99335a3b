package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Statements: []Statement{
			{LineNo: 2, Address: 0, Words: []string{"ldi", "%RPG0", "10"},
				Codes: []int32{23, 0, 10}},
			{LineNo: 3, Address: 3, Words: []string{"incReg", "%RPG0"},
				Codes: []int32{15, 0}},
			{LineNo: 5, Address: 5, Words: []string{"jmp", "top"},
				Codes: []int32{16, 3}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := [...]struct {
		address int32
		lineno  int
		index   int
	}{
		{0, 2, 0},
		{2, 2, 2},
		{3, 3, 0},
		{4, 3, 1},
		{6, 5, 1},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.address)
		if assert.NotNil(dbg.Statement, "%d", entry.address) {
			assert.Equal(entry.lineno, dbg.LineNo)
			assert.Equal(entry.index, dbg.Index)
		}
	}

	dbg := prog.Debug(7)
	assert.Nil(dbg.Statement)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]int32{23, 0, 10, 15, 0, 16, 3, -1}, prog.Binary())

	empty := &Program{}
	assert.Equal([]int32{-1}, empty.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	var addresses []int32
	for address := range testProgram().Codes() {
		addresses = append(addresses, address)
		if address == 3 {
			break
		}
	}
	assert.Equal([]int32{0, 1, 2, 3}, addresses)
}

func TestLoadImage(t *testing.T) {
	assert := assert.New(t)

	image, err := LoadImage(strings.NewReader("23\n0\n 10 \n\n-1\n"))
	assert.NoError(err)
	assert.Equal([]int32{23, 0, 10, -1}, image)

	table := [...]struct {
		text   string
		lineno int
	}{
		{"23\nfoo\n-1\n", 2},
		{"1.5\n", 1},
		{"1\n2\n99999999999\n", 3},
		{"0x10\n", 1},
	}

	for _, entry := range table {
		_, err := LoadImage(strings.NewReader(entry.text))
		assert.ErrorIs(err, ErrLoadFormat, entry.text)
		var syntax ErrSyntax
		if assert.ErrorAs(err, &syntax) {
			assert.Equal(entry.lineno, syntax.LineNo)
		}
	}
}

func TestWriteImage(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(WriteImage(&buf, []int32{23, 0, -10, -1}))
	assert.Equal("23\n0\n-10\n-1\n", buf.String())
}
