package intcode

import (
	"fmt"
	"strings"
)

// Opcode selects the operation of an instruction: the low two decimal digits
// of an instruction word.
type Opcode uint8

// Opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpInput       Opcode = 3
	OpOutput      Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustBase  Opcode = 9
	OpHalt        Opcode = 99
)

var opNames = [...]string{
	OpAdd:         "add",
	OpMul:         "mul",
	OpInput:       "in",
	OpOutput:      "out",
	OpJumpIfTrue:  "jnz",
	OpJumpIfFalse: "jz",
	OpLessThan:    "lt",
	OpEquals:      "eq",
	OpAdjustBase:  "arb",
	OpHalt:        "halt",
}

// opArity is the number of parameters following each opcode.
var opArity = [...]int{
	OpAdd:         3,
	OpMul:         3,
	OpInput:       1,
	OpOutput:      1,
	OpJumpIfTrue:  2,
	OpJumpIfFalse: 2,
	OpLessThan:    3,
	OpEquals:      3,
	OpAdjustBase:  1,
	OpHalt:        0,
}

// Valid returns true for defined opcodes.
func (op Opcode) Valid() bool {
	return int(op) < len(opNames) && opNames[op] != ""
}

// Arity returns how many parameters follow op.
func (op Opcode) Arity() int {
	if op.Valid() {
		return opArity[op]
	}
	return 0
}

func (op Opcode) String() string {
	if op.Valid() {
		return opNames[op]
	}
	return fmt.Sprintf("op%d", uint8(op))
}

// Mode is a parameter addressing mode.
type Mode uint8

// Parameter modes.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (mode Mode) String() string {
	switch mode {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("mode%d", uint8(mode))
	}
}

// Instruction is a decoded instruction word. Modes[0] applies to the first
// parameter, Modes[1] to the second, and Modes[2] to the third.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode
}

// Decode splits an instruction word into its opcode and parameter modes.
// Errors are *OpcodeError or *ModeError, with PC left 0 for the caller to fill.
func Decode(word int64) (Instruction, error) {
	var inst Instruction
	if word < 0 {
		return inst, &OpcodeError{Op: word % 100, Word: word}
	}

	op := word % 100
	if !Opcode(op).Valid() {
		return inst, &OpcodeError{Op: op, Word: word}
	}
	inst.Op = Opcode(op)

	modes := word / 100
	for i := range inst.Modes {
		mode := Mode(modes % 10)
		switch mode {
		case Position, Immediate, Relative:
		default:
			return inst, &ModeError{Mode: mode, Param: i + 1}
		}
		inst.Modes[i] = mode
		modes /= 10
	}
	for param := len(inst.Modes) + 1; modes != 0; param++ {
		if mode := Mode(modes % 10); mode != 0 {
			return inst, &ModeError{Mode: mode, Param: param}
		}
		modes /= 10
	}
	return inst, nil
}

func (inst Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(inst.Op.String())
	for i := 0; i < inst.Op.Arity(); i++ {
		switch inst.Modes[i] {
		case Position:
			sb.WriteString(" @")
		case Immediate:
			sb.WriteString(" #")
		case Relative:
			sb.WriteString(" ~")
		}
	}
	return sb.String()
}
