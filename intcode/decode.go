package intcode

import (
	"fmt"
	"strings"
)

// An Opcode selects the operation of an instruction. It is the low two
// decimal digits of an instruction word.
type Opcode int

const (
	Add         Opcode = 1
	Mul         Opcode = 2
	Input       Opcode = 3
	Output      Opcode = 4
	JumpIfTrue  Opcode = 5
	JumpIfFalse Opcode = 6
	LessThan    Opcode = 7
	Equals      Opcode = 8
	Halt        Opcode = 99
)

var opcodeNames = map[Opcode]string{
	Add:         "add",
	Mul:         "mul",
	Input:       "in",
	Output:      "out",
	JumpIfTrue:  "jt",
	JumpIfFalse: "jf",
	LessThan:    "lt",
	Equals:      "eq",
	Halt:        "halt",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// Arity is the number of parameters that follow the instruction word.
func (op Opcode) Arity() int {
	switch op {
	case Add, Mul, LessThan, Equals:
		return 3
	case JumpIfTrue, JumpIfFalse:
		return 2
	case Input, Output:
		return 1
	case Halt:
		return 0
	}
	panic(fmt.Sprintf("intcode: arity of unknown opcode %d", int(op)))
}

// writes reports whether op's last parameter is a write destination.
func (op Opcode) writes() bool {
	switch op {
	case Add, Mul, Input, LessThan, Equals:
		return true
	}
	return false
}

// A Mode says how a parameter is interpreted.
type Mode int

const (
	// Position mode parameters are addresses to dereference.
	Position Mode = 0
	// Immediate mode parameters are used as-is.
	Immediate Mode = 1
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// An Instruction is a decoded instruction word.
type Instruction struct {
	Op Opcode
	// Modes holds the mode of each parameter, in parameter order.
	// Unused slots are Position.
	Modes [3]Mode
}

// Decode splits an instruction word into its opcode and parameter modes.
// The opcode must be known; mode digits are checked only when a parameter
// is read.
func Decode(word int64) (Instruction, error) {
	var insn Instruction
	op := Opcode(word % 100)
	if _, ok := opcodeNames[op]; !ok || word < 0 {
		return insn, fmt.Errorf("%w: unknown opcode in %d", ErrDecode, word)
	}
	insn.Op = op
	div := word / 100
	for i := range insn.Modes {
		insn.Modes[i] = Mode(div % 10)
		div /= 10
	}
	return insn, nil
}

// String formats insn with its parameter modes, such as "mul pos imm dst".
func (insn Instruction) String() string {
	if _, ok := opcodeNames[insn.Op]; !ok {
		return insn.Op.String()
	}
	var b strings.Builder
	b.WriteString(insn.Op.String())
	n := insn.Op.Arity()
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
		switch {
		case i == n-1 && insn.Op.writes():
			b.WriteString("dst")
		case insn.Modes[i] == Position:
			b.WriteString("pos")
		case insn.Modes[i] == Immediate:
			b.WriteString("imm")
		default:
			fmt.Fprintf(&b, "mode%d", int(insn.Modes[i]))
		}
	}
	return b.String()
}
