package intcode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/intcode/internal/fileinput"
)

// Program is an Intcode memory image.
type Program []int64

// ErrEmptyProgram is returned when program text holds no values.
var ErrEmptyProgram = errors.New("empty program")

// ParseProgram parses comma separated decimal integers.
func ParseProgram(s string) (Program, error) {
	return ReadProgram(fileinput.NamedReader("<program>", strings.NewReader(s)))
}

// MustParse is like ParseProgram but panics on error; for literal programs.
func MustParse(s string) Program {
	prog, err := ParseProgram(s)
	if err != nil {
		panic(err)
	}
	return prog
}

// ReadProgram reads comma separated decimal integers from each reader in
// turn. Whitespace around values and one trailing comma are ignored; errors
// name the input and line of the offending value.
func ReadProgram(rs ...io.Reader) (Program, error) {
	in := fileinput.Input{Queue: rs}
	var prog Program
	for {
		field, err := in.ScanField(',')
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(field.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%v: invalid program value %q: %w",
				field.Location, field.Text, errors.Unwrap(err))
		}
		prog = append(prog, n)
	}
	if len(prog) == 0 {
		return nil, ErrEmptyProgram
	}
	return prog, nil
}

func (prog Program) String() string { return JoinValues(prog) }

// Clone returns a copy of prog.
func (prog Program) Clone() Program { return append(Program(nil), prog...) }

// JoinValues formats values comma separated.
func JoinValues(values []int64) string {
	var sb strings.Builder
	for i, n := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(n, 10))
	}
	return sb.String()
}
