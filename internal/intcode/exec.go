package intcode

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcorbin/intcode/internal/pipe"
)

func (vm *VM) exec(ctx context.Context) {
	for {
		vm.haltif(ctx.Err())
		if done := vm.step(ctx); done {
			return
		}
	}
}

// decode fetches and decodes the instruction at pc.
func (vm *VM) decode() Instruction {
	inst, err := Decode(vm.load(vm.pc))
	if err != nil {
		var (
			opErr   *OpcodeError
			modeErr *ModeError
		)
		if errors.As(err, &opErr) {
			opErr.PC = vm.pc
		} else if errors.As(err, &modeErr) {
			modeErr.PC = vm.pc
		}
		vm.halt(err)
	}
	return inst
}

// step executes one instruction, returning true when the VM has stopped.
func (vm *VM) step(ctx context.Context) bool {
	inst := vm.decode()
	switch inst.Op {
	case OpAdd:
		vm.stor(vm.address(inst, 3), vm.value(inst, 1)+vm.value(inst, 2))
		vm.pc += 4

	case OpMul:
		vm.stor(vm.address(inst, 3), vm.value(inst, 1)*vm.value(inst, 2))
		vm.pc += 4

	case OpInput:
		addr := vm.address(inst, 1)
		vm.haltif(vm.out.Prompt("input"))
		tok, err := vm.in.Read(ctx)
		if err != nil {
			vm.halt(fmt.Errorf("input from %v @%v: %w", vm.in.ID(), vm.pc, err))
		}
		if tok.IsStop() {
			vm.logf("stop @%v from %v", vm.pc, vm.in.ID())
			vm.closeIO()
			return true
		}
		val, ok := tok.Int()
		if !ok {
			vm.halt(fmt.Errorf("input from %v @%v: %w", vm.in.ID(), vm.pc, ErrEmptyInput))
		}
		vm.logf("input %v from %v", val, vm.in.ID())
		vm.stor(addr, val)
		vm.pc += 2

	case OpOutput:
		val := vm.value(inst, 1)
		vm.haltif(vm.out.Prompt("output"))
		vm.logf("output %v to %v", val, vm.out.ID())
		if err := vm.out.Write(ctx, pipe.Int(val)); err != nil {
			vm.halt(fmt.Errorf("output to %v @%v: %w", vm.out.ID(), vm.pc, err))
		}
		vm.pc += 2

	case OpJumpIfTrue:
		if vm.value(inst, 1) != 0 {
			vm.pc = vm.value(inst, 2)
		} else {
			vm.pc += 3
		}

	case OpJumpIfFalse:
		if vm.value(inst, 1) == 0 {
			vm.pc = vm.value(inst, 2)
		} else {
			vm.pc += 3
		}

	case OpLessThan:
		vm.stor(vm.address(inst, 3), boolInt(vm.value(inst, 1) < vm.value(inst, 2)))
		vm.pc += 4

	case OpEquals:
		vm.stor(vm.address(inst, 3), boolInt(vm.value(inst, 1) == vm.value(inst, 2)))
		vm.pc += 4

	case OpAdjustBase:
		vm.base += vm.value(inst, 1)
		vm.pc += 2

	case OpHalt:
		vm.logf("halt @%v", vm.pc)
		vm.closeIO()
		return true
	}
	return false
}

// value resolves the i-th (1-based) parameter of inst as a value to read.
func (vm *VM) value(inst Instruction, i int) int64 {
	operand := vm.load(vm.pc + int64(i))
	switch mode := inst.Modes[i-1]; mode {
	case Immediate:
		return operand
	case Relative:
		return vm.load(vm.base + operand)
	default:
		return vm.load(operand)
	}
}

// address resolves the i-th (1-based) parameter of inst as an address to
// write; immediate mode cannot name an address.
func (vm *VM) address(inst Instruction, i int) int64 {
	operand := vm.load(vm.pc + int64(i))
	switch mode := inst.Modes[i-1]; mode {
	case Immediate:
		vm.halt(&ModeError{Mode: mode, Param: i, Write: true, PC: vm.pc})
	case Relative:
		return vm.base + operand
	}
	return operand
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
