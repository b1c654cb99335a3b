package cpu

import (
	"fmt"
)

// MicroOp is a single register-transfer step the control unit can issue.
type MicroOp int

const (
	UOP_PC_READ           = MicroOp(iota) // pc.read
	UOP_PC_STORE                          // pc.store
	UOP_PC_INTERNAL_READ                  // pc.iread
	UOP_PC_INTERNAL_STORE                 // pc.istore
	UOP_IR_READ                           // ir.read
	UOP_IR_STORE                          // ir.store
	UOP_IR_INTERNAL_READ                  // ir.iread
	UOP_IR_INTERNAL_STORE                 // ir.istore

	UOP_DEMUX_LATCH        // demux.latch
	UOP_SEL_READ           // sel.read
	UOP_SEL_STORE          // sel.store
	UOP_SEL_INTERNAL_READ  // sel.iread
	UOP_SEL_INTERNAL_STORE // sel.istore

	UOP_ALU_STORE_0          // alu.store.0
	UOP_ALU_STORE_1          // alu.store.1
	UOP_ALU_READ_0           // alu.read.0
	UOP_ALU_READ_1           // alu.read.1
	UOP_ALU_INTERNAL_STORE_0 // alu.istore.0
	UOP_ALU_INTERNAL_STORE_1 // alu.istore.1
	UOP_ALU_INTERNAL_READ_0  // alu.iread.0
	UOP_ALU_INTERNAL_READ_1  // alu.iread.1
	UOP_ALU_ADD              // alu.add
	UOP_ALU_SUB              // alu.sub
	UOP_ALU_INC_0            // alu.inc.0
	UOP_ALU_INC_1            // alu.inc.1

	UOP_MEM_READ  // mem.read
	UOP_MEM_STORE // mem.store

	UOP_FLAGS_EXT  // flags.ext
	UOP_FLAGS_INT1 // flags.int1
	UOP_FLAGS_INT2 // flags.int2
)

var microOpName = [...]string{
	UOP_PC_READ:              "pc.read",
	UOP_PC_STORE:             "pc.store",
	UOP_PC_INTERNAL_READ:     "pc.iread",
	UOP_PC_INTERNAL_STORE:    "pc.istore",
	UOP_IR_READ:              "ir.read",
	UOP_IR_STORE:             "ir.store",
	UOP_IR_INTERNAL_READ:     "ir.iread",
	UOP_IR_INTERNAL_STORE:    "ir.istore",
	UOP_DEMUX_LATCH:          "demux.latch",
	UOP_SEL_READ:             "sel.read",
	UOP_SEL_STORE:            "sel.store",
	UOP_SEL_INTERNAL_READ:    "sel.iread",
	UOP_SEL_INTERNAL_STORE:   "sel.istore",
	UOP_ALU_STORE_0:          "alu.store.0",
	UOP_ALU_STORE_1:          "alu.store.1",
	UOP_ALU_READ_0:           "alu.read.0",
	UOP_ALU_READ_1:           "alu.read.1",
	UOP_ALU_INTERNAL_STORE_0: "alu.istore.0",
	UOP_ALU_INTERNAL_STORE_1: "alu.istore.1",
	UOP_ALU_INTERNAL_READ_0:  "alu.iread.0",
	UOP_ALU_INTERNAL_READ_1:  "alu.iread.1",
	UOP_ALU_ADD:              "alu.add",
	UOP_ALU_SUB:              "alu.sub",
	UOP_ALU_INC_0:            "alu.inc.0",
	UOP_ALU_INC_1:            "alu.inc.1",
	UOP_MEM_READ:             "mem.read",
	UOP_MEM_STORE:            "mem.store",
	UOP_FLAGS_EXT:            "flags.ext",
	UOP_FLAGS_INT1:           "flags.int1",
	UOP_FLAGS_INT2:           "flags.int2",
}

func (op MicroOp) String() string {
	if op < 0 || int(op) >= len(microOpName) {
		return fmt.Sprintf("MicroOp(%d)", int(op))
	}
	return microOpName[op]
}

// Common sequences.
var (
	// fetch: ir <- mem[pc]
	seqFetch = []MicroOp{UOP_PC_READ, UOP_MEM_READ, UOP_IR_STORE}

	// pc <- pc + 1, leaving the new pc in alu slot 1.
	seqPcAdvance = []MicroOp{
		UOP_PC_INTERNAL_READ,
		UOP_ALU_INTERNAL_STORE_1,
		UOP_ALU_INC_1,
		UOP_ALU_INTERNAL_READ_1,
		UOP_PC_INTERNAL_STORE,
	}

	// pc <- alu[1] + 1; only valid while slot 1 still holds pc.
	seqPcStep = []MicroOp{UOP_ALU_INC_1, UOP_ALU_INTERNAL_READ_1, UOP_PC_INTERNAL_STORE}

	// ext <- mem[pc]
	seqOperand = []MicroOp{UOP_PC_READ, UOP_MEM_READ}

	// pc <- mem[pc]
	seqBranch = []MicroOp{UOP_PC_READ, UOP_MEM_READ, UOP_PC_STORE}
)
