package component

// Alu is the two slot arithmetic unit. It sits between the two internal
// buses: Store/Read move a slot over busA, InternalStore/InternalRead
// over busB. Add and Sub always leave their result in slot 1.
type Alu struct {
	slot [2]int32
	busA *Bus // Wiring, not owned.
	busB *Bus // Wiring, not owned.

	Adds int // Add operations performed since reset.
	Subs int // Sub operations performed since reset.
	Incs int // Inc operations performed since reset.
}

// NewAlu creates an arithmetic unit wired to two internal buses.
func NewAlu(busA, busB *Bus) (alu *Alu) {
	alu = &Alu{
		busA: busA,
		busB: busB,
	}

	return
}

// Slot returns the content of a slot without touching any bus.
func (alu *Alu) Slot(n int) int32 {
	return alu.slot[n]
}

// Store loads slot n from busA.
func (alu *Alu) Store(n int) {
	alu.slot[n] = alu.busA.Get()
}

// Read drives slot n onto busA.
func (alu *Alu) Read(n int) {
	alu.busA.Put(alu.slot[n])
}

// InternalStore loads slot n from busB.
func (alu *Alu) InternalStore(n int) {
	alu.slot[n] = alu.busB.Get()
}

// InternalRead drives slot n onto busB.
func (alu *Alu) InternalRead(n int) {
	alu.busB.Put(alu.slot[n])
}

// Add sets slot 1 to slot 0 + slot 1.
func (alu *Alu) Add() {
	alu.slot[1] = alu.slot[0] + alu.slot[1]
	alu.Adds++
}

// Sub sets slot 1 to slot 0 - slot 1.
func (alu *Alu) Sub() {
	alu.slot[1] = alu.slot[0] - alu.slot[1]
	alu.Subs++
}

// Inc increments slot n in place.
func (alu *Alu) Inc(n int) {
	alu.slot[n]++
	alu.Incs++
}

// Reset clears both slots and the operation counters.
func (alu *Alu) Reset() {
	clear(alu.slot[:])
	alu.Adds = 0
	alu.Subs = 0
	alu.Incs = 0
}
