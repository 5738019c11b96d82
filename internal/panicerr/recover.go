// Package panicerr turns panics and runtime.Goexit calls into error values.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f in a new goroutine, returning its error; any panic or
// runtime.Goexit in f is converted into a non-nil error instead.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			// errch is already full unless f called runtime.Goexit
			select {
			case errch <- exitError(name):
			default:
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- panicError{name, e, debug.Stack()}
			}
		}()
		errch <- f()
	}()
	return <-errch
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

// Unwrap returns the panic value when it was an error.
func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsExit returns true if err indicates a recovered runtime.Goexit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// IsPanic returns true if err indicates a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns the stack trace captured for a recovered panic, or "".
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
