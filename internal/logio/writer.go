// Package logio adapts printf-style logging functions into io.Writers.
package logio

import (
	"bytes"
	"sync"
)

// Writer implements an io.Writer around a formatted logging function, like
// testing.T.Logf, emitting one Logf call per written line.
type Writer struct {
	Logf func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p and flushes every completed line through Logf.
// Safe to call from multiple goroutines.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	for {
		line, rest, found := bytes.Cut(lw.buf.Bytes(), []byte{'\n'})
		if !found {
			break
		}
		lw.Logf("%s", line)
		lw.buf.Next(len(lw.buf.Bytes()) - len(rest))
	}
	return len(p), nil
}

// Sync flushes any partial line remaining in the buffer.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.buf.Len() > 0 {
		lw.Logf("%s", lw.buf.Bytes())
		lw.buf.Reset()
	}
	return nil
}

// Close calls Sync.
func (lw *Writer) Close() error { return lw.Sync() }
