package intcode

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when an input device answers a read with the
// empty token; a device with nothing to offer is broken, so this is fatal.
var ErrEmptyInput = errors.New("empty input")

// OpcodeError reports an instruction word whose opcode is not defined.
type OpcodeError struct {
	Op   int64
	Word int64
	PC   int64
}

func (err *OpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %v (word %v) @%v", err.Op, err.Word, err.PC)
}

// ModeError reports an undefined parameter mode, or immediate mode used for
// a parameter that is written to.
type ModeError struct {
	Mode  Mode
	Param int
	Write bool
	PC    int64
}

func (err *ModeError) Error() string {
	if err.Write {
		return fmt.Sprintf("%v mode write to parameter %v @%v", err.Mode, err.Param, err.PC)
	}
	return fmt.Sprintf("unknown parameter mode %v for parameter %v @%v", int(err.Mode), err.Param, err.PC)
}

// AddressError reports a memory access at a negative address.
type AddressError struct {
	Addr int64
	PC   int64
}

func (err *AddressError) Error() string {
	return fmt.Sprintf("invalid address %v @%v", err.Addr, err.PC)
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
