// Package component implements the register-transfer building blocks of
// the busarch machine: buses, registers, the register file with its
// select line, the arithmetic unit and memory.
//
// Components never call each other. Every transfer is a write of one
// component onto a Bus followed by a load of another component from that
// same Bus, sequenced by the control unit.
//
// Machine words are int32. Arithmetic wraps around in two's complement
// on overflow; nothing detects or reports it.
package component
