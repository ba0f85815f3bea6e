package inspect

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// keyword is a bare token that is not a number, boolean or null: obj, R,
// stream, or a content stream operator.
type keyword string

func (keyword) isObject() {}

// lexer reads objects from PDF syntax. The same lexer serves object bodies
// (refs enabled) and content streams (refs disabled).
type lexer struct {
	data []byte
	pos  int
	refs bool
}

func newLexer(data []byte, refs bool) *lexer {
	return &lexer{data: data, refs: refs}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) eof() bool {
	l.skipSpace()
	return l.pos >= len(l.data)
}

func (l *lexer) peek(off int) byte {
	if l.pos+off >= len(l.data) {
		return 0
	}
	return l.data[l.pos+off]
}

// skipSpace skips whitespace and comments.
func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		if !isSpace(c) {
			return
		}
		l.pos++
	}
}

// token returns the run of regular characters at the current position.
func (l *lexer) token() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func (l *lexer) object() (Object, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return nil, io.ErrUnexpectedEOF
	}
	switch c := l.data[l.pos]; {
	case c == '/':
		return l.name(), nil
	case c == '(':
		return l.literal()
	case c == '<' && l.peek(1) == '<':
		return l.dict()
	case c == '<':
		return l.hex()
	case c == '[':
		return l.array()
	case isDelim(c):
		return nil, fmt.Errorf("inspect: unexpected %q at offset %d", c, l.pos)
	}

	tok := l.token()
	switch tok {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null{}, nil
	}
	if c := tok[0]; c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			if l.refs {
				if r, ok := l.ref(i); ok {
					return r, nil
				}
			}
			return Int(i), nil
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("inspect: bad number %q at offset %d", tok, l.pos-len(tok))
		}
		return Real(f), nil
	}
	return keyword(tok), nil
}

// ref completes "num gen R" when the tokens after num allow it, and leaves
// the position untouched otherwise.
func (l *lexer) ref(num int64) (Ref, bool) {
	save := l.pos
	if gen, err := strconv.Atoi(l.token()); err == nil && l.token() == "R" {
		return Ref{Num: int(num), Gen: gen}, true
	}
	l.pos = save
	return Ref{}, false
}

func (l *lexer) name() Name {
	l.pos++
	var b []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if isSpace(c) || isDelim(c) {
			break
		}
		if c == '#' {
			if hi, lo := unhex(l.peek(1)), unhex(l.peek(2)); hi >= 0 && lo >= 0 {
				b = append(b, byte(hi<<4|lo))
				l.pos += 3
				continue
			}
		}
		b = append(b, c)
		l.pos++
	}
	return Name(b)
}

func (l *lexer) literal() (String, error) {
	start := l.pos
	l.pos++
	var b []byte
	for depth := 1; ; {
		if l.pos >= len(l.data) {
			return nil, fmt.Errorf("inspect: unterminated string at offset %d", start)
		}
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return String(b), nil
			}
		case '\\':
			b = l.escape(b)
			continue
		}
		b = append(b, c)
	}
}

func (l *lexer) escape(b []byte) []byte {
	if l.pos >= len(l.data) {
		return b
	}
	c := l.data[l.pos]
	l.pos++
	switch c {
	case 'n':
		return append(b, '\n')
	case 'r':
		return append(b, '\r')
	case 't':
		return append(b, '\t')
	case 'b':
		return append(b, '\b')
	case 'f':
		return append(b, '\f')
	case '\r':
		if l.peek(0) == '\n' {
			l.pos++
		}
		return b
	case '\n':
		return b
	}
	if c < '0' || c > '7' {
		return append(b, c)
	}
	v := int(c - '0')
	for i := 0; i < 2 && l.peek(0) >= '0' && l.peek(0) <= '7'; i++ {
		v = v*8 + int(l.data[l.pos]-'0')
		l.pos++
	}
	return append(b, byte(v))
}

func (l *lexer) hex() (String, error) {
	start := l.pos
	l.pos++
	var b []byte
	hi := -1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			if hi >= 0 {
				b = append(b, byte(hi<<4))
			}
			return String(b), nil
		}
		if isSpace(c) {
			continue
		}
		v := unhex(c)
		if v < 0 {
			return nil, fmt.Errorf("inspect: bad hex digit %q at offset %d", c, l.pos-1)
		}
		if hi < 0 {
			hi = v
		} else {
			b = append(b, byte(hi<<4|v))
			hi = -1
		}
	}
	return nil, fmt.Errorf("inspect: unterminated hex string at offset %d", start)
}

func (l *lexer) array() (Array, error) {
	l.pos++
	var a Array
	for {
		if l.eof() {
			return nil, io.ErrUnexpectedEOF
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return a, nil
		}
		o, err := l.object()
		if err != nil {
			return nil, err
		}
		a = append(a, o)
	}
}

func (l *lexer) dict() (Dict, error) {
	l.pos += 2
	d := Dict{}
	for {
		if l.eof() {
			return nil, io.ErrUnexpectedEOF
		}
		if l.data[l.pos] == '>' && l.peek(1) == '>' {
			l.pos += 2
			return d, nil
		}
		if l.data[l.pos] != '/' {
			return nil, fmt.Errorf("inspect: dictionary key is not a name at offset %d", l.pos)
		}
		key := l.name()
		v, err := l.object()
		if err != nil {
			return nil, fmt.Errorf("inspect: value of /%s: %w", key, err)
		}
		d[key] = v
	}
}

// indirect reads "num gen obj ... endobj", including stream data.
func (l *lexer) indirect() (Ref, Object, error) {
	num, err1 := strconv.Atoi(l.token())
	gen, err2 := strconv.Atoi(l.token())
	if err1 != nil || err2 != nil || l.token() != "obj" {
		return Ref{}, nil, fmt.Errorf("inspect: no object header at offset %d", l.pos)
	}
	r := Ref{Num: num, Gen: gen}
	v, err := l.object()
	if err != nil {
		return r, nil, fmt.Errorf("inspect: object %s: %w", r, err)
	}

	save := l.pos
	if l.token() != "stream" {
		l.pos = save
		return r, v, nil
	}
	d, ok := v.(Dict)
	if !ok {
		return r, nil, fmt.Errorf("inspect: object %s: stream without dictionary", r)
	}
	if l.peek(0) == '\r' {
		l.pos++
	}
	if l.peek(0) == '\n' {
		l.pos++
	}
	end := -1
	if n, ok := d.Int("Length"); ok && n >= 0 && l.pos+int(n) <= len(l.data) {
		end = l.pos + int(n)
	} else if i := bytes.Index(l.data[l.pos:], []byte("endstream")); i >= 0 {
		end = l.pos + i
	}
	if end < 0 {
		return r, nil, fmt.Errorf("inspect: object %s: stream runs past end of file", r)
	}
	s := Stream{Dict: d, Raw: l.data[l.pos:end]}
	l.pos = end
	return r, s, nil
}

func unhex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
