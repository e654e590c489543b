// Package tokenizer splits raw shell history lines into tokens.
//
// The splitting is deliberately simpler than a real shell parser: only the
// space character separates tokens, a backslash outside quotes escapes the
// next character, and double-quoted groups are kept as one token with their
// quote characters retained.
package tokenizer

import "strings"

// Tokens is one parsed command line. Tokens[0] is the command name and the
// remaining tokens are its arguments, in order and with duplicates retained.
type Tokens []string

// Name returns the command name, or "" for an empty invocation.
func (t Tokens) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Args returns the argument tokens following the command name.
func (t Tokens) Args() []string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// String joins the tokens with single spaces.
func (t Tokens) String() string {
	return strings.Join(t, " ")
}

type state int

const (
	stateNormal state = iota
	stateQuoted
	stateEscape
)

// Tokenize converts one raw history line into tokens. It never fails:
// an unterminated quote yields its partial content as the final token and
// a trailing backslash is dropped.
func Tokenize(line string) Tokens {
	var (
		tokens Tokens
		buf    strings.Builder
		st     = stateNormal
	)

	emit := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	// Every delimiter is ASCII, so bytes are copied as is and invalid UTF-8
	// survives untouched.
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch st {
		case stateEscape:
			buf.WriteByte(c)
			st = stateNormal
		case stateQuoted:
			buf.WriteByte(c)
			if c == '"' {
				emit()
				st = stateNormal
			}
		default:
			switch c {
			case ' ':
				emit()
			case '"':
				buf.WriteByte(c)
				st = stateQuoted
			case '\\':
				st = stateEscape
			default:
				buf.WriteByte(c)
			}
		}
	}
	emit()

	return tokens
}
