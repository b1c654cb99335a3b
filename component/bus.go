package component

// Bus is a single shared value. A Put overwrites whatever value the bus
// carried; a Get observes the last value put, however long ago.
type Bus struct {
	value int32
}

// Put drives a value onto the bus.
func (bus *Bus) Put(value int32) {
	bus.value = value
}

// Get returns the value currently on the bus.
func (bus *Bus) Get() int32 {
	return bus.value
}
