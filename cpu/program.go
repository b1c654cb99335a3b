package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Statement is one assembled source line.
type Statement struct {
	LineNo  int      // Source line number.
	Address int32    // Address of the first code.
	Words   []string // Source words, after equate expansion.
	Codes   []int32  // Opcode followed by its operand cells.
	Link    []string // Per code, symbol still to be resolved.
}

// Program is an assembled program.
type Program struct {
	Statements []Statement
	Variables  map[string]int32 // Variable addresses.
	Labels     map[string]int32 // Label addresses.
}

// Debug locates the statement containing an address.
type Debug struct {
	*Statement
	Index int // Index into Statement.Codes
}

func (prog *Program) Debug(address int32) (dbg Debug) {
	for n, st := range prog.Statements {
		if address >= st.Address && address < st.Address+int32(len(st.Codes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(address - st.Address),
			}
			break
		}
	}

	return
}

// Codes iterates over every code of the program with its address.
func (prog *Program) Codes() iter.Seq2[int32, int32] {
	return func(yield func(address int32, code int32) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(st.Address+int32(n), code) {
					return
				}
			}
		}
	}
}

// Binary returns the object image, terminated by OP_HALT.
func (prog *Program) Binary() (image []int32) {
	for _, code := range prog.Codes() {
		image = append(image, code)
	}
	image = append(image, int32(OP_HALT))

	return
}

// LoadImage reads an object image: one decimal integer per line. Blank
// lines are ignored.
func LoadImage(input io.Reader) (image []int32, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		value, perr := strconv.ParseInt(line, 10, 32)
		if perr != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrLoadFormat}
			return
		}
		image = append(image, int32(value))
	}

	err = scanner.Err()
	return
}

// WriteImage writes an object image in the format read by LoadImage.
func WriteImage(output io.Writer, image []int32) (err error) {
	w := bufio.NewWriter(output)
	for _, value := range image {
		_, err = fmt.Fprintf(w, "%d\n", value)
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}
