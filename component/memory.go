package component

import (
	"slices"
)

// Memory is a fixed size array of words on the external bus.
//
// Read treats the bus value as an address and replaces it with the cell
// content. Store is a two step protocol: the first Store latches the bus
// value as the target address, the second writes the bus value into the
// latched cell.
type Memory struct {
	cells []int32
	bus   *Bus // Wiring, not owned.

	latched bool  // Address latched by a first Store.
	address int32 // Latched address.
}

// NewMemory creates a memory of 'size' cells wired to the external bus.
func NewMemory(size int, bus *Bus) (mem *Memory) {
	mem = &Memory{
		cells: make([]int32, size),
		bus:   bus,
	}

	return
}

// Size returns the number of cells.
func (mem *Memory) Size() int {
	return len(mem.cells)
}

func (mem *Memory) check(address int32) (err error) {
	if address < 0 || int(address) >= len(mem.cells) {
		err = &ErrAddress{Address: address, Size: len(mem.cells)}
	}
	return
}

// Read replaces the address on the bus with the content of that cell.
func (mem *Memory) Read() (err error) {
	address := mem.bus.Get()
	err = mem.check(address)
	if err != nil {
		return
	}

	mem.bus.Put(mem.cells[address])
	return
}

// Store latches the bus value as an address on the first call, and writes
// the bus value to the latched address on the second.
func (mem *Memory) Store() (err error) {
	value := mem.bus.Get()

	if !mem.latched {
		err = mem.check(value)
		if err != nil {
			return
		}
		mem.address = value
		mem.latched = true
		return
	}

	mem.cells[mem.address] = value
	mem.latched = false
	return
}

// Latched reports if a Store is waiting for its data half.
func (mem *Memory) Latched() bool {
	return mem.latched
}

// Unlatch drops a latched address without writing it.
func (mem *Memory) Unlatch() {
	mem.latched = false
}

// Peek returns a cell without touching the bus.
func (mem *Memory) Peek(address int32) (value int32, err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	value = mem.cells[address]
	return
}

// Cells returns a copy of the memory content.
func (mem *Memory) Cells() []int32 {
	return slices.Clone(mem.cells)
}

// Reset zeros all cells and drops any latched address.
func (mem *Memory) Reset() {
	clear(mem.cells)
	mem.latched = false
	mem.address = 0
}
