package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		word int64
		want Instruction
		str  string
	}{
		{1, Instruction{Op: OpAdd}, "add @ @ @"},
		{1002, Instruction{Op: OpMul, Modes: [3]Mode{Position, Immediate, Position}}, "mul @ # @"},
		{1101, Instruction{Op: OpAdd, Modes: [3]Mode{Immediate, Immediate, Position}}, "add # # @"},
		{21101, Instruction{Op: OpAdd, Modes: [3]Mode{Immediate, Immediate, Relative}}, "add # # ~"},
		{203, Instruction{Op: OpInput, Modes: [3]Mode{Relative}}, "in ~"},
		{104, Instruction{Op: OpOutput, Modes: [3]Mode{Immediate}}, "out #"},
		{1105, Instruction{Op: OpJumpIfTrue, Modes: [3]Mode{Immediate, Immediate}}, "jnz # #"},
		{6, Instruction{Op: OpJumpIfFalse}, "jz @ @"},
		{1107, Instruction{Op: OpLessThan, Modes: [3]Mode{Immediate, Immediate}}, "lt # # @"},
		{8, Instruction{Op: OpEquals}, "eq @ @ @"},
		{109, Instruction{Op: OpAdjustBase, Modes: [3]Mode{Immediate}}, "arb #"},
		{99, Instruction{Op: OpHalt}, "halt"},
		{1099, Instruction{Op: OpHalt, Modes: [3]Mode{Position, Immediate}}, "halt"},
	} {
		t.Run(tc.str, func(t *testing.T) {
			inst, err := Decode(tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.want, inst)
			assert.Equal(t, tc.str, inst.String())
		})
	}
}

func TestDecode_errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		word int64
		want error
	}{
		{"zero", 0, &OpcodeError{Op: 0, Word: 0}},
		{"gap", 10, &OpcodeError{Op: 10, Word: 10}},
		{"98", 98, &OpcodeError{Op: 98, Word: 98}},
		{"high mode on bad op", 1042, &OpcodeError{Op: 42, Word: 1042}},
		{"negative", -99, &OpcodeError{Op: -99, Word: -99}},
		{"first mode", 301, &ModeError{Mode: 3, Param: 1}},
		{"second mode", 9001, &ModeError{Mode: 9, Param: 2}},
		{"third mode", 30001, &ModeError{Mode: 3, Param: 3}},
		{"past third mode", 100001, &ModeError{Mode: 1, Param: 4}},
		{"far past third mode", 10000099, &ModeError{Mode: 1, Param: 6}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.word)
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestOpcode(t *testing.T) {
	for op := Opcode(0); op < 100; op++ {
		switch {
		case op >= OpAdd && op <= OpAdjustBase, op == OpHalt:
			assert.True(t, op.Valid(), "expected %v to be valid", op)
		default:
			assert.False(t, op.Valid(), "expected op%d to be invalid", uint8(op))
			assert.Equal(t, 0, op.Arity())
		}
	}
	assert.Equal(t, 3, OpAdd.Arity())
	assert.Equal(t, 1, OpInput.Arity())
	assert.Equal(t, 2, OpJumpIfFalse.Arity())
	assert.Equal(t, 0, OpHalt.Arity())
	assert.Equal(t, "op42", Opcode(42).String())
	assert.Equal(t, "mode7", Mode(7).String())
}

func TestError_messages(t *testing.T) {
	assert.EqualError(t, &OpcodeError{Op: 42, Word: 1042, PC: 7}, "unknown opcode 42 (word 1042) @7")
	assert.EqualError(t, &ModeError{Mode: 3, Param: 1, PC: 4}, "unknown parameter mode 3 for parameter 1 @4")
	assert.EqualError(t, &ModeError{Mode: Immediate, Param: 3, Write: true, PC: 0}, "immediate mode write to parameter 3 @0")
	assert.EqualError(t, &AddressError{Addr: -1, PC: 2}, "invalid address -1 @2")
}
