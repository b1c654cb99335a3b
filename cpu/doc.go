// Package cpu implements the control unit of the busarch machine and the
// tooling that shares its opcode table: the object program loader and the
// assembler.
//
// The machine has four general-purpose registers (RPG0-RPG3), a program
// counter (PC), an instruction register (IR) and a three bit flags
// register, an ALU between two internal buses, and a 128 word memory on
// the external bus. Every instruction is a microprogram: a fixed sequence
// of single-value bus transfers, run by the control unit after each fetch.
//
// The assembler provides a small two pass assembly language whose opcode
// numbers come from the same Instructions table the control unit
// dispatches on.
package cpu
