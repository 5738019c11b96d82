// Package pipe provides the tokens and blocking FIFO pipes that carry values
// between Intcode machines and the devices attached to them.
package pipe

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind uint8

const (
	emptyToken tokenKind = iota
	intToken
	stopToken
)

// Token is a single value carried by a pipe: an integer, the Stop signal, or
// the empty token (the zero Token).
//
// The empty token is what a misbehaving device hands back when it has nothing
// to offer; machines treat reading it as a fatal error. Stop is a protocol
// extension that asks a reading machine to halt without executing its halt
// instruction; it can never be confused with an integer, including 0.
type Token struct {
	kind tokenKind
	n    int64
}

// Stop asks the machine reading it to halt cleanly.
var Stop = Token{kind: stopToken}

// Int returns an integer token.
func Int(n int64) Token { return Token{intToken, n} }

// Ints returns a slice of integer tokens.
func Ints(ns ...int64) []Token {
	toks := make([]Token, len(ns))
	for i, n := range ns {
		toks[i] = Int(n)
	}
	return toks
}

// Int returns the token's integer value, and false if it does not carry one.
func (tok Token) Int() (int64, bool) { return tok.n, tok.kind == intToken }

// IsStop returns true only for the Stop token.
func (tok Token) IsStop() bool { return tok.kind == stopToken }

// IsEmpty returns true only for the empty token.
func (tok Token) IsEmpty() bool { return tok.kind == emptyToken }

func (tok Token) String() string {
	switch tok.kind {
	case intToken:
		return strconv.FormatInt(tok.n, 10)
	case stopToken:
		return "<stop>"
	default:
		return "<empty>"
	}
}

// Parse reads a token from its text form: a blank string is the empty token,
// "<stop>" is Stop, and anything else must be a decimal integer.
func Parse(s string) (Token, error) {
	switch s = strings.TrimSpace(s); s {
	case "":
		return Token{}, nil
	case Stop.String():
		return Stop, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("invalid token %q: %w", s, err)
	}
	return Int(n), nil
}
