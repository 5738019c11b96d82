// Package fileinput scans separated fields out of a queue of named input
// streams, remembering where each field came from.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Field is a scanned field along with where it started.
type Field struct {
	Location
	Text string
}

func (f Field) String() string { return fmt.Sprintf("%v %q", f.Location, f.Text) }

// Input implements sequential rune reading through a Queue of one or more
// input streams, tracking the current Location.
type Input struct {
	Queue []io.Reader

	rr  io.RuneReader
	cl  io.Closer
	loc Location
}

// Location returns the position of the next rune to be read.
func (in *Input) Location() Location { return in.loc }

// ReadRune reads one rune, moving on to the next queued stream after each
// stream ends. Returns io.EOF once the queue is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if err == io.EOF {
			in.closeIn()
			continue
		} else if err != nil {
			return 0, 0, err
		}
		if r == '\n' {
			in.loc.Line++
		}
		return r, n, nil
	}
}

// ScanField reads runes up to the next sep, returning the field with
// surrounding space trimmed. Returns io.EOF only when no field text or
// separator remained before the end of input.
func (in *Input) ScanField(sep rune) (Field, error) {
	var (
		sb    strings.Builder
		field Field
		began bool
	)
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			if !began {
				return field, io.EOF
			}
			break
		} else if err != nil {
			return field, err
		}
		if r == sep {
			if !began {
				field.Location = in.loc
			}
			break
		}
		if unicode.IsSpace(r) {
			if began {
				sb.WriteRune(r)
			}
			continue
		}
		if !began {
			began = true
			field.Location = in.loc
		}
		sb.WriteRune(r)
	}
	field.Text = strings.TrimRightFunc(sb.String(), unicode.IsSpace)
	return field, nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	if rr, ok := r.(io.RuneReader); ok {
		in.rr = rr
	} else {
		in.rr = bufio.NewReader(r)
	}
	in.cl, _ = r.(io.Closer)
	in.loc = Location{Name: nameOf(r), Line: 1}
	return true
}

func (in *Input) closeIn() {
	if in.cl != nil {
		in.cl.Close()
	}
	in.rr, in.cl = nil, nil
}

// NamedReader attaches a name to a reader, for use in Locations.
func NamedReader(name string, r io.Reader) io.Reader { return namedReader{r, name} }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
