// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package json implements RFC 8259 JSON text parsing and rendering
// against the same data-item/Receiver contract as the cbor package.
// JSON has no native integer/float/byte-string distinction, so it maps
// onto a narrower slice of the data item model than CBOR:
//
//   - Every number becomes OnNumberString (the lexical token, unparsed) —
//     callers that want a typed numeric value convert it themselves,
//     since JSON gives no hint whether "1" should become an int or a
//     float on the Go side.
//   - There is no byte-string literal; OnBytes/OnBytesStart are never
//     produced by this package's Parser.
//   - Strings containing no escape sequences are delivered via
//     OnTextWindow, a slice directly into the parser's own read buffer,
//     avoiding an allocation for the common unescaped case.
package json

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/receiver"
)

// Parser reads one JSON text value per call to ReadNextDataItem from an
// in-memory byte slice. Unlike the cbor Parser, JSON's grammar already
// requires arbitrary lookahead for number/literal boundaries, so this
// Parser works directly against a buffered slice rather than the pull
// abstraction in package input.
type Parser struct {
	buf    []byte
	pos    int
	err    error
	opened []containerFrame
}

type containerFrame struct {
	isMap     bool
	remaining int // not read or written by the parser; comma handling uses seenFirst
	seenFirst bool
}

// NewParser returns a Parser reading from buf.
func NewParser(buf []byte) *Parser { return &Parser{buf: buf} }

func (p *Parser) fail(err error) (receiver.Kind, error) {
	p.err = err
	return 0, err
}

func (p *Parser) peek() (byte, bool) {
	if p.pos >= len(p.buf) {
		return 0, false
	}
	return p.buf[p.pos], true
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// ReadNextDataItem parses the next JSON value, or a structural token
// (comma/colon are consumed silently; `]`/`}` produce Break) and drives
// the matching Receiver callback.
func (p *Parser) ReadNextDataItem(recv receiver.Receiver) (receiver.Kind, error) {
	if p.err != nil {
		return 0, p.err
	}

	p.skipWhitespace()
	if len(p.opened) > 0 {
		top := &p.opened[len(p.opened)-1]
		if top.seenFirst {
			c, ok := p.peek()
			switch {
			case ok && c == ',':
				p.pos++
				p.skipWhitespace()
			case ok && (c == ']' || c == '}'):
				// handled below by the close-bracket case
			}
		}
	}

	c, ok := p.peek()
	if !ok {
		if err := recv.OnEndOfInput(); err != nil {
			return p.fail(err)
		}
		return receiver.KindEndOfInput, nil
	}

	switch c {
	case '{':
		p.pos++
		p.markFirstSeen()
		p.opened = append(p.opened, containerFrame{isMap: true})
		if err := recv.OnMapStart(); err != nil {
			return p.fail(err)
		}
		return receiver.KindMapStart, nil
	case '}':
		p.pos++
		if len(p.opened) == 0 || !p.opened[len(p.opened)-1].isMap {
			return p.fail(errs.InvalidInputData(int64(p.pos), "unexpected '}'"))
		}
		p.opened = p.opened[:len(p.opened)-1]
		if err := recv.OnBreak(); err != nil {
			return p.fail(err)
		}
		return receiver.KindBreak, nil
	case '[':
		p.pos++
		p.markFirstSeen()
		p.opened = append(p.opened, containerFrame{isMap: false})
		if err := recv.OnArrayStart(); err != nil {
			return p.fail(err)
		}
		return receiver.KindArrayStart, nil
	case ']':
		p.pos++
		if len(p.opened) == 0 || p.opened[len(p.opened)-1].isMap {
			return p.fail(errs.InvalidInputData(int64(p.pos), "unexpected ']'"))
		}
		p.opened = p.opened[:len(p.opened)-1]
		if err := recv.OnBreak(); err != nil {
			return p.fail(err)
		}
		return receiver.KindBreak, nil
	case ':':
		p.pos++
		return p.ReadNextDataItem(recv)
	case '"':
		return p.readString(recv)
	case 't':
		return p.readLiteral(recv, "true", func() error { return recv.OnBool(true) }, receiver.KindBool)
	case 'f':
		return p.readLiteral(recv, "false", func() error { return recv.OnBool(false) }, receiver.KindBool)
	case 'n':
		return p.readLiteral(recv, "null", recv.OnNull, receiver.KindNull)
	default:
		if c == '-' || (c >= '0' && c <= '9') {
			return p.readNumber(recv)
		}
		return p.fail(errs.InvalidInputData(int64(p.pos), "unexpected character in JSON text"))
	}
}

func (p *Parser) markFirstSeen() {
	if len(p.opened) > 0 {
		p.opened[len(p.opened)-1].seenFirst = true
	}
}

func (p *Parser) readLiteral(recv receiver.Receiver, lit string, emit func() error, kind receiver.Kind) (receiver.Kind, error) {
	if p.pos+len(lit) > len(p.buf) || string(p.buf[p.pos:p.pos+len(lit)]) != lit {
		return p.fail(errs.InvalidInputData(int64(p.pos), "invalid literal"))
	}
	p.pos += len(lit)
	p.markFirstSeen()
	if err := emit(); err != nil {
		return p.fail(err)
	}
	return kind, nil
}

func (p *Parser) readNumber(recv receiver.Receiver) (receiver.Kind, error) {
	start := p.pos
	if b, ok := p.peek(); ok && b == '-' {
		p.pos++
	}
	for {
		b, ok := p.peek()
		if !ok || b < '0' || b > '9' {
			break
		}
		p.pos++
	}
	if b, ok := p.peek(); ok && b == '.' {
		p.pos++
		for {
			b, ok := p.peek()
			if !ok || b < '0' || b > '9' {
				break
			}
			p.pos++
		}
	}
	if b, ok := p.peek(); ok && (b == 'e' || b == 'E') {
		p.pos++
		if b, ok := p.peek(); ok && (b == '+' || b == '-') {
			p.pos++
		}
		for {
			b, ok := p.peek()
			if !ok || b < '0' || b > '9' {
				break
			}
			p.pos++
		}
	}
	if p.pos == start {
		return p.fail(errs.InvalidInputData(int64(p.pos), "invalid number"))
	}
	p.markFirstSeen()
	if err := recv.OnNumberString(string(p.buf[start:p.pos])); err != nil {
		return p.fail(err)
	}
	return receiver.KindNumberString, nil
}

func (p *Parser) readString(recv receiver.Receiver) (receiver.Kind, error) {
	start := p.pos
	p.pos++ // opening quote
	hasEscape := false
	for {
		b, ok := p.peek()
		if !ok {
			return p.fail(errs.UnexpectedEndOfInput(int64(p.pos), "closing '\"'"))
		}
		if b == '"' {
			p.pos++
			break
		}
		if b == '\\' {
			hasEscape = true
			p.pos++
			if _, ok := p.peek(); !ok {
				return p.fail(errs.UnexpectedEndOfInput(int64(p.pos), "escape sequence"))
			}
			p.pos++
			continue
		}
		p.pos++
	}
	p.markFirstSeen()

	if !hasEscape {
		if err := recv.OnTextWindow(p.buf, start+1, p.pos-start-2, true); err != nil {
			return p.fail(err)
		}
		return receiver.KindText, nil
	}

	decoded, err := unescapeString(p.buf[start+1 : p.pos-1])
	if err != nil {
		return p.fail(err)
	}
	if err := recv.OnText(receiver.OwnedBytes{Data: []byte(decoded), UTF8: true}); err != nil {
		return p.fail(err)
	}
	return receiver.KindText, nil
}

func unescapeString(raw []byte) (string, error) {
	var b []byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b = append(b, c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", errs.InvalidInputData(int64(i), "truncated escape sequence")
		}
		switch raw[i] {
		case '"':
			b = append(b, '"')
		case '\\':
			b = append(b, '\\')
		case '/':
			b = append(b, '/')
		case 'b':
			b = append(b, '\b')
		case 'f':
			b = append(b, '\f')
		case 'n':
			b = append(b, '\n')
		case 'r':
			b = append(b, '\r')
		case 't':
			b = append(b, '\t')
		case 'u':
			if i+4 >= len(raw) {
				return "", errs.InvalidInputData(int64(i), "truncated unicode escape")
			}
			r1, err := hex4(raw[i+1 : i+5])
			if err != nil {
				return "", err
			}
			i += 4
			if utf16.IsSurrogate(rune(r1)) && i+6 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
				r2, err := hex4(raw[i+3 : i+7])
				if err == nil {
					combined := utf16.DecodeRune(rune(r1), rune(r2))
					if combined != utf8.RuneError {
						var buf [4]byte
						n := utf8.EncodeRune(buf[:], combined)
						b = append(b, buf[:n]...)
						i += 6
						continue
					}
				}
			}
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], rune(r1))
			b = append(b, buf[:n]...)
		default:
			return "", errs.InvalidInputData(int64(i), "invalid escape character")
		}
	}
	return string(b), nil
}

func hex4(s []byte) (uint16, error) {
	var v uint16
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint16(c-'A') + 10
		default:
			return 0, errs.InvalidInputData(0, "invalid hex digit in unicode escape")
		}
	}
	return v, nil
}
