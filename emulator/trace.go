package emulator

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/busarch/cpu"
)

// Printer is a cpu.Tracer that logs the machine state around each
// instruction. With Pause set, it waits for a line from Pause after every
// instruction.
type Printer struct {
	Logger  *logrus.Logger
	Program *cpu.Program // Optional listing, for line numbers.
	Pause   io.Reader    // Step input, or nil to run freely.
	Prompt  io.Writer    // Where the step prompt is written.

	pause *bufio.Reader
}

// NewPrinter creates a printer logging to 'output'.
func NewPrinter(output io.Writer) (pr *Printer) {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})

	pr = &Printer{
		Logger: logger,
		Prompt: output,
	}

	return
}

// fields builds the log fields of a snapshot.
func (pr *Printer) fields(snap *cpu.Snapshot) (fields logrus.Fields) {
	fields = logrus.Fields{
		"address": snap.Address,
		"opcode":  snap.Opcode.String(),
		"pc":      snap.Pc,
	}

	if len(snap.Operands) > 0 {
		fields["operands"] = fmt.Sprint(snap.Operands)
	}

	if pr.Program != nil {
		dbg := pr.Program.Debug(snap.Address)
		if dbg.Statement != nil {
			fields["line"] = dbg.LineNo
		}
	}

	return
}

// Trace implements cpu.Tracer
func (pr *Printer) Trace(phase cpu.Phase, snap *cpu.Snapshot) {
	fields := pr.fields(snap)

	switch phase {
	case cpu.PHASE_FETCH:
		pr.Logger.WithFields(fields).Debug("fetch")
	case cpu.PHASE_BEFORE:
		pr.Logger.WithFields(fields).Info("execute")
	case cpu.PHASE_AFTER:
		for _, reg := range snap.Registers {
			fields[reg.Name] = reg.Value
		}
		fields["extbus"] = snap.ExtBus
		fields["intbus1"] = snap.IntBus1
		fields["intbus2"] = snap.IntBus2
		fields["cycles"] = snap.Cycles
		pr.Logger.WithFields(fields).Info("state")
		if snap.Opcode.Valid() {
			pr.wait()
		}
	}
}

// wait blocks for a line of step input.
func (pr *Printer) wait() {
	if pr.Pause == nil {
		return
	}

	if pr.pause == nil {
		pr.pause = bufio.NewReader(pr.Pause)
	}

	if pr.Prompt != nil {
		fmt.Fprint(pr.Prompt, "Press <Enter>")
	}

	_, err := pr.pause.ReadString('\n')
	if err != nil {
		// Out of step input: run freely.
		pr.Pause = nil
	}
}
