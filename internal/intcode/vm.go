package intcode

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcorbin/intcode/internal/mem"
	"github.com/jcorbin/intcode/internal/panicerr"
)

// State is the run state of a VM.
type State uint8

// VM states.
const (
	Running State = iota
	Halted
	Faulted
)

func (st State) String() string {
	switch st {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("state%d", uint8(st))
	}
}

// VM is an Intcode machine: a memory image, a program counter, and a
// relative base register, connected to an input and an output Device.
//
// A VM is not safe for concurrent use; separate VMs share nothing but the
// devices connecting them.
type VM struct {
	logging

	name  string
	mem   mem.Cells
	pokes []memAtOption

	pc   int64
	base int64

	in  Device
	out Device

	state State
	err   error
}

// New creates a VM with prog loaded at address 0.
func New(prog Program, opts ...VMOption) *VM {
	vm := &VM{name: "intcode"}
	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)

	if err := vm.mem.Stor(0, prog...); err != nil {
		vm.fault(fmt.Errorf("load program: %w", err))
	}
	for _, poke := range vm.pokes {
		if vm.err != nil {
			break
		}
		if err := vm.mem.Stor(poke.addr, poke.values...); err != nil {
			vm.fault(fmt.Errorf("store @%v: %w", poke.addr, err))
		}
	}
	return vm
}

// Run executes instructions until the program halts, the input device hands
// back pipe.Stop, or a fault occurs. Halting closes both devices and returns
// nil. Any fault is returned, leaving the VM Faulted.
func (vm *VM) Run(ctx context.Context) error {
	if vm.state != Running {
		if vm.err != nil {
			return vm.err
		}
		return fmt.Errorf("%v: cannot run: %v", vm.name, vm.state)
	}

	err := panicerr.Recover(vm.name, func() error {
		vm.exec(ctx)
		return nil
	})
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	if err != nil {
		if panicerr.IsPanic(err) {
			vm.logf("panic stack:\n%s", panicerr.PanicStack(err))
		}
		vm.fault(err)
		vm.closeIO()
		return vm.err
	}
	vm.state = Halted
	return nil
}

// Name returns the VM's name.
func (vm *VM) Name() string { return vm.name }

// State returns the VM's run state.
func (vm *VM) State() State { return vm.state }

// Err returns the fault that stopped the VM, if any.
func (vm *VM) Err() error { return vm.err }

// PC returns the program counter.
func (vm *VM) PC() int64 { return vm.pc }

// RelativeBase returns the relative base register.
func (vm *VM) RelativeBase() int64 { return vm.base }

// Memory returns a copy of memory, from address 0 up to the highest address
// ever stored. Sparse memory too large to copy densely fails with
// mem.ErrImageTooLarge; use Peek to inspect it instead.
func (vm *VM) Memory() ([]int64, error) { return vm.mem.Snapshot() }

// Peek returns the value at addr without affecting the VM.
func (vm *VM) Peek(addr uint) (int64, error) { return vm.mem.Load(addr) }

// Run is a convenience that runs prog to completion between in and out,
// returning the final memory image. A run error takes precedence over any
// failure to copy the image.
func Run(ctx context.Context, prog Program, in, out Device, opts ...VMOption) ([]int64, error) {
	vm := New(prog, append([]VMOption{WithInput(in), WithOutput(out)}, opts...)...)
	err := vm.Run(ctx)
	image, imageErr := vm.Memory()
	if err == nil {
		err = imageErr
	}
	return image, err
}

func (vm *VM) fault(err error) {
	vm.state = Faulted
	vm.err = fmt.Errorf("%v: %w", vm.name, err)
	vm.logf("fault: %v", err)
}

// halt stops execution by unwinding to Run; a nil error is a clean halt.
func (vm *VM) halt(err error) {
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) closeIO() {
	if err := vm.in.Close(); err != nil {
		vm.logf("close %v: %v", vm.in.ID(), err)
	}
	if vm.out == vm.in {
		return
	}
	if err := vm.out.Close(); err != nil {
		vm.logf("close %v: %v", vm.out.ID(), err)
	}
}

func (vm *VM) load(addr int64) int64 {
	if addr < 0 {
		vm.halt(&AddressError{Addr: addr, PC: vm.pc})
	}
	val, err := vm.mem.Load(uint(addr))
	vm.haltif(err)
	return val
}

func (vm *VM) stor(addr int64, val int64) {
	if addr < 0 {
		vm.halt(&AddressError{Addr: addr, PC: vm.pc})
	}
	vm.haltif(vm.mem.Stor(uint(addr), val))
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn != nil {
		log.logfn(mess, args...)
	}
}
