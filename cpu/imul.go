package cpu

import (
	"log"
)

// multiply runs the repeated addition loop. Expects the multiplicand in
// alu slot 1 and on internal bus 2, and the multiplier on internal bus 1.
// Leaves the product in alu slot 1.
func (cpu *Cpu) multiply() (err error) {
	n := cpu.IntBus1.Get()

	switch {
	case n == 0:
		// Slot 1 <- 0 from the multiplier still on the bus.
		err = cpu.micro(UOP_ALU_STORE_1)
	case n > 0:
		for i := n; i > 1; i-- {
			err = cpu.run([]MicroOp{UOP_ALU_INTERNAL_STORE_0, UOP_ALU_ADD})
			if err != nil {
				return
			}
		}
	default:
		// The first subtraction clears the accumulator.
		for i := n; i < 1; i++ {
			err = cpu.run([]MicroOp{
				UOP_ALU_READ_1, UOP_ALU_STORE_0,
				UOP_ALU_INTERNAL_STORE_1, UOP_ALU_SUB,
			})
			if err != nil {
				return
			}
		}
	}

	return
}

// imulRegReg: B <- A * B
func (cpu *Cpu) imulRegReg() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_DEMUX_LATCH, UOP_SEL_READ, UOP_IR_STORE})
	if err != nil {
		return
	}
	err = cpu.operand()
	if err != nil {
		return
	}
	return cpu.imulIntoReg()
}

// imulMemReg: B <- mem[m] * B
func (cpu *Cpu) imulMemReg() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_MEM_READ, UOP_IR_STORE})
	if err != nil {
		return
	}
	err = cpu.operand()
	if err != nil {
		return
	}
	return cpu.imulIntoReg()
}

// imulIntoReg multiplies IR by the register whose id is on the external
// bus, and stores the product in that register.
func (cpu *Cpu) imulIntoReg() (err error) {
	err = cpu.run([]MicroOp{
		UOP_DEMUX_LATCH,
		UOP_IR_INTERNAL_READ, UOP_ALU_INTERNAL_STORE_1,
		UOP_SEL_INTERNAL_READ,
	})
	if err != nil {
		return
	}
	err = cpu.multiply()
	if err != nil {
		return
	}
	err = cpu.run([]MicroOp{UOP_ALU_READ_1, UOP_FLAGS_INT1, UOP_SEL_INTERNAL_STORE})
	if err != nil {
		return
	}
	return cpu.next()
}

// scratch finds a zero memory cell above the loaded image, probing each
// cell over the external bus from the top of memory down.
func (cpu *Cpu) scratch(skip int32) (address int32, err error) {
	for address = int32(cpu.Memory.Size()) - 1; address >= cpu.imageEnd; address-- {
		if address == skip {
			continue
		}
		cpu.drive(address)
		err = cpu.micro(UOP_MEM_READ)
		if err != nil {
			return
		}
		if cpu.ExtBus.Get() == 0 {
			return
		}
	}

	err = ErrScratchExhausted
	return
}

// imulRegMem: mem[m] <- mem[m] * A
//
// The destination address is parked in a free scratch cell while the
// multiply uses IR, then the scratch cell is cleared.
func (cpu *Cpu) imulRegMem() (err error) {
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.micro(UOP_DEMUX_LATCH)
	if err != nil {
		return
	}
	err = cpu.operand()
	if err != nil {
		return
	}
	err = cpu.micro(UOP_IR_STORE)
	if err != nil {
		return
	}

	tmp, err := cpu.scratch(cpu.IR.Data())
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: imulRegMem scratch at %d", tmp)
	}

	// mem[tmp] <- m
	cpu.drive(tmp)
	err = cpu.run([]MicroOp{UOP_MEM_STORE, UOP_IR_READ, UOP_MEM_STORE})
	if err != nil {
		return
	}

	// ir <- mem[m]
	err = cpu.run([]MicroOp{
		UOP_IR_READ, UOP_MEM_READ, UOP_IR_STORE,
		UOP_IR_INTERNAL_READ, UOP_ALU_INTERNAL_STORE_1,
		UOP_SEL_INTERNAL_READ,
	})
	if err != nil {
		return
	}

	err = cpu.multiply()
	if err != nil {
		return
	}

	err = cpu.run([]MicroOp{UOP_ALU_INTERNAL_READ_1, UOP_IR_INTERNAL_STORE})
	if err != nil {
		return
	}

	// mem[mem[tmp]] <- ir
	cpu.drive(tmp)
	err = cpu.run([]MicroOp{UOP_MEM_READ, UOP_MEM_STORE, UOP_IR_READ, UOP_MEM_STORE, UOP_FLAGS_EXT})
	if err != nil {
		return
	}

	// mem[tmp] <- 0
	cpu.drive(tmp)
	err = cpu.micro(UOP_MEM_STORE)
	if err != nil {
		return
	}
	cpu.drive(0)
	err = cpu.micro(UOP_MEM_STORE)
	if err != nil {
		return
	}

	return cpu.next()
}
