package cpu

// State of the control unit.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_FETCH   = State(0) // fetch
	STATE_EXECUTE = State(1) // execute
	STATE_HALTED  = State(2) // halted
)
