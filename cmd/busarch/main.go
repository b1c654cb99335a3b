// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/ezrec/busarch/cpu"
	"github.com/ezrec/busarch/emulator"
	"github.com/ezrec/busarch/translate"
)

var (
	output     string
	step       bool
	verbose    bool
	trace      bool
	memorySize int
	profiling  string
	lang       string
)

var ErrProfileMode = errors.New(translate.From("profile mode must be cpu or mem"))

var rootCmd = &cobra.Command{
	Use:   "busarch",
	Short: "Register transfer level machine simulator",
	Long: `Busarch assembles .dsf sources into .dxf object programs, and
runs object programs on a simulated machine of registers, buses, an
arithmetic unit and memory.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if lang == "" {
			return
		}
		return translate.SetLanguage(lang)
	},
}

var asmCmd = &cobra.Command{
	Use:   "asm source.dsf",
	Short: "Assemble a source file into an object program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu := newEmulator()
		prog, err := assemble(emu, args[0])
		if err != nil {
			return
		}

		name := output
		if len(name) == 0 {
			name = strings.TrimSuffix(args[0], ".dsf") + ".dxf"
		}

		ouf, err := os.Create(name)
		if err != nil {
			return
		}
		defer ouf.Close()

		err = cpu.WriteImage(ouf, prog.Binary())
		if err != nil {
			return
		}

		return ouf.Close()
	},
}

var runCmd = &cobra.Command{
	Use:   "run object.dxf",
	Short: "Run an object program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inf, err := os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		image, err := cpu.LoadImage(inf)
		if err != nil {
			return
		}

		emu := newEmulator()
		emu.Image = image
		return execute(cmd, emu)
	},
}

var execCmd = &cobra.Command{
	Use:   "exec source.dsf",
	Short: "Assemble and run a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu := newEmulator()
		emu.Program, err = assemble(emu, args[0])
		if err != nil {
			return
		}

		return execute(cmd, emu)
	},
}

func newEmulator() (emu *emulator.Emulator) {
	emu = emulator.NewEmulator(memorySize)
	emu.Verbose = verbose
	return
}

func assemble(emu *emulator.Emulator, name string) (prog *cpu.Program, err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := emu.Assembler()
	return asm.Parse(inf)
}

// execute runs the loaded emulator, tracing it when asked to.
func execute(cmd *cobra.Command, emu *emulator.Emulator) (err error) {
	if len(profiling) != 0 {
		var mode func(*profile.Profile)
		switch profiling {
		case "cpu":
			mode = profile.CPUProfile
		case "mem":
			mode = profile.MemProfile
		default:
			err = ErrProfileMode
			return
		}
		defer profile.Start(mode, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	if trace || step {
		pr := emulator.NewPrinter(cmd.OutOrStdout())
		pr.Program = emu.Program
		if step {
			pr.Pause = cmd.InOrStdin()
		}
		emu.Cpu.Tracer = pr
	}

	err = emu.Run()
	if err != nil {
		return
	}

	_, err = io.WriteString(cmd.OutOrStdout(), emu.Cpu.String())
	return
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().IntVarP(&memorySize, "memory", "m", cpu.MEMORY_SIZE, "Memory size, in words")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag (default: system locale)")

	asmCmd.Flags().StringVarP(&output, "output", "o", "", "Object program to write (default: source with .dxf)")

	for _, cmd := range []*cobra.Command{runCmd, execCmd} {
		cmd.Flags().BoolVarP(&step, "step", "s", false, "Simulation mode: trace and pause after each instruction")
		cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Trace each instruction")
		cmd.Flags().StringVar(&profiling, "profile", "", "Write a cpu or mem profile to the current directory")
	}

	rootCmd.AddCommand(asmCmd, runCmd, execCmd)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
