// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for the machine.
//
// Source is one statement per line, with ';' comments:
//
//	name               ; variable, allocated from the top of memory down
//	label:             ; label at the current address
//	.equ NAME VALUE    ; equate
//	loop: add %RPG0 &x ; instruction, optionally labeled
//
// Operands are '%REG' registers, '&name' variables or labels, and
// numbers. Jump targets may also be bare label names. '$(expr)' is
// evaluated at assembly time, with integer equates in scope.
type Assembler struct {
	Verbose    bool // If set, verbosely logs the assembler actions.
	MemorySize int  // Memory size variables are allocated in; 0 is MEMORY_SIZE.

	Statements []Statement       // Assembled statements.
	Label      map[string]int32  // Map of labels to addresses.
	Variable   []string          // Variables, in declaration order.
	Equate     map[string]string // Map of equates.
	predefine  map[string]string // Predefines
	address    int32             // Next statement address.
	lineno     int               // Current line.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) memorySize() int {
	if asm.MemorySize <= 0 {
		return MEMORY_SIZE
	}
	return asm.MemorySize
}

// valueOf returns the value of a number.
func valueOf(word string) (value int32, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int32(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 int32
		value32, err = valueOf(str)
		if err != nil {
			// Registers and names are not in scope.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reName       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// expand performs character, expression and equate substitution on a
// line, and returns its words.
func (asm *Assembler) expand(line string) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", asm.lineno)

	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	// .equ is not itself expanded.
	if len(words) > 0 && words[0] == ".equ" {
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// isMnemonic is true for canonical and family mnemonics.
func isMnemonic(word string) bool {
	for _, ins := range Instructions {
		if word == ins.Mnemonic || word == ins.Family {
			return true
		}
	}
	return false
}

// symbolDefined is true if 'name' is a label or variable.
func (asm *Assembler) symbolDefined(name string) bool {
	_, ok := asm.Label[name]
	return ok || slices.Contains(asm.Variable, name)
}

// parseLine handles a single source line.
func (asm *Assembler) parseLine(line string) (err error) {
	words, err := asm.expand(line)
	if err != nil {
		return
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if asm.symbolDefined(label) {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.address
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// A lone non-mnemonic word declares a variable.
	if len(words) == 1 && !isMnemonic(words[0]) {
		name := words[0]
		if !reName.MatchString(name) {
			err = ErrInstructionInvalid
			return
		}
		if asm.symbolDefined(name) {
			err = ErrVariableDuplicate
			return
		}
		asm.Variable = append(asm.Variable, name)
		return
	}

	st, err := asm.parseWords(words)
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("%03d: %v %v", st.Address, words, st.Codes)
	}

	asm.Statements = append(asm.Statements, st)
	asm.address += int32(len(st.Codes))

	return
}

// operand is a parsed operand word.
type operand struct {
	kind   Operand
	value  int32
	symbol string // Unresolved label or variable.
}

// parseOperand classifies an operand word.
func (asm *Assembler) parseOperand(word string) (op operand, err error) {
	switch {
	case strings.HasPrefix(word, "%"):
		id := slices.Index(RegisterNames, word[1:])
		if id < 0 {
			err = ErrRegisterName(word[1:])
			return
		}
		op = operand{kind: OPERAND_REG, value: int32(id)}
	case strings.HasPrefix(word, "&"):
		if len(word) == 1 {
			err = ErrOperandInvalid
			return
		}
		op = operand{kind: OPERAND_MEM, symbol: word[1:]}
	default:
		var value int32
		value, err = valueOf(word)
		if err == nil {
			op = operand{kind: OPERAND_IMM, value: value}
			return
		}
		// Bare label, only valid as a jump target.
		err = nil
		op = operand{kind: OPERAND_TARGET, symbol: word}
	}

	return
}

// accepts is true if an operand of 'kind' can fill a 'want' cell.
func accepts(want Operand, op operand) bool {
	switch want {
	case OPERAND_TARGET:
		// Labels, '&label' or absolute addresses.
		return op.kind != OPERAND_REG
	default:
		return want == op.kind
	}
}

// resolve picks the opcode of a canonical or family mnemonic from the
// operand kinds.
func resolve(mnemonic string, ops []operand) (opcode Opcode, err error) {
	opcode = OP_HALT

	most := -1
	for n, ins := range Instructions {
		if ins.Mnemonic != mnemonic && ins.Family != mnemonic {
			continue
		}
		most = max(most, len(ins.Operands))
		if len(ins.Operands) != len(ops) {
			continue
		}
		match := true
		for i, want := range ins.Operands {
			if !accepts(want, ops[i]) {
				match = false
				break
			}
		}
		if match {
			opcode = Opcode(n)
			return
		}
	}

	switch {
	case most < 0:
		err = ErrInstructionInvalid
	case len(ops) > most:
		err = ErrOpcodeExtraArgs
	case !slices.ContainsFunc(Instructions[:], func(ins Instruction) bool {
		return (ins.Mnemonic == mnemonic || ins.Family == mnemonic) && len(ins.Operands) <= len(ops)
	}):
		err = ErrOpcodeMissing
	default:
		err = ErrOperandInvalid
	}

	return
}

// parseWords assembles an instruction.
func (asm *Assembler) parseWords(words []string) (st Statement, err error) {
	var ops []operand
	for _, word := range words[1:] {
		var op operand
		op, err = asm.parseOperand(word)
		if err != nil {
			return
		}
		ops = append(ops, op)
	}

	opcode, err := resolve(words[0], ops)
	if err != nil {
		return
	}

	ins := Instructions[opcode]

	st = Statement{
		LineNo:  asm.lineno,
		Address: asm.address,
		Words:   slices.Clone(words),
		Codes:   []int32{int32(opcode)},
		Link:    []string{""},
	}

	for _, op := range ops {
		// The arithmetic unit is only reachable from the general
		// purpose registers.
		if ins.SetsFlags && op.kind == OPERAND_REG && op.value > REG_RPG3 {
			err = ErrOperandInvalid
			return
		}
		st.Codes = append(st.Codes, op.value)
		st.Link = append(st.Link, op.symbol)
	}

	return
}

// link resolves every symbol, after allocating variables.
func (asm *Assembler) link() (prog *Program, err error) {
	size := int32(asm.memorySize())

	variables := make(map[string]int32, len(asm.Variable))
	for n, name := range asm.Variable {
		variables[name] = size - 1 - int32(n)
	}

	// The image includes its terminating sentinel.
	if len(asm.Variable) > 0 && size-int32(len(asm.Variable)) < asm.address+1 {
		err = ErrMemoryFull
		return
	}

	for n := range asm.Statements {
		st := &asm.Statements[n]
		for i, symbol := range st.Link {
			if len(symbol) == 0 {
				continue
			}
			address, ok := asm.Label[symbol]
			if !ok {
				address, ok = variables[symbol]
			}
			if !ok {
				asm.lineno = st.LineNo
				err = ErrLabelMissing(symbol)
				return
			}
			st.Codes[i] = address
			st.Link[i] = ""
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statements),
		Variables:  variables,
		Labels:     maps.Clone(asm.Label),
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	lines := map[int]string{}

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: asm.lineno, Line: lines[asm.lineno], Err: err}
		}
	}()

	asm.Statements = asm.Statements[:0]
	asm.Variable = asm.Variable[:0]
	asm.Label = make(map[string]int32)
	asm.address = 0
	asm.lineno = 0
	asm.Equate = map[string]string{
		"LINENO":      "0",
		"MEMORY_SIZE": fmt.Sprintf("%d", asm.memorySize()),
		"HALT":        fmt.Sprintf("%d", OP_HALT),
	}
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		asm.lineno++

		if asm.Verbose {
			log.Printf("%v: %v\n", asm.lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])
		lines[asm.lineno] = line

		err = asm.parseLine(line)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog, err = asm.link()
	return
}
