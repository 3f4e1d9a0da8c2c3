// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package json

import (
	"errors"
	"strconv"

	"github.com/borerio/borer/output"
	"github.com/borerio/borer/receiver"
)

// ErrUnsupportedDataItem is returned by Renderer for data items JSON has
// no native representation for (byte strings, indefinite-length text).
// Callers must translate those shapes (e.g. byte strings to a hex or
// base64 Text item) before driving a json.Renderer.
var ErrUnsupportedDataItem = errors.New("json: data item has no JSON representation")

// Renderer implements receiver.Receiver, writing RFC 8259 JSON text to
// an output.Output. A small stack tracks, per open container, whether
// it's a map or array and how many elements have been written so far,
// since JSON (unlike CBOR) has no fixed-width header encoding the
// element count up front — commas and map key/value colons are placed
// based on this running count instead.
type Renderer[R any] struct {
	out   output.Output[R]
	stack []frame
}

// frame tracks one open container. expected is the number of raw values
// (2x the pair count for a map) a definite-length header promised, or -1
// for a Start/Break-delimited container whose length wasn't known up
// front. CBOR's definite-length header is self-terminating by count, but
// JSON text has no such header, so a Renderer-driven definite-length
// container still has to count elements and emit its own closing
// bracket once expected is reached, exactly as if an OnBreak had been
// called.
type frame struct {
	isMap    bool
	count    int
	expected int
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer[R any](out output.Output[R]) *Renderer[R] { return &Renderer[R]{out: out} }

// Result returns the accumulated output.
func (r *Renderer[R]) Result() (R, error) { return r.out.Result() }

// beforeValue emits the separator (comma, or colon for a map value)
// needed before writing the next scalar/container, then advances the
// enclosing frame's count.
func (r *Renderer[R]) beforeValue() {
	if len(r.stack) == 0 {
		return
	}
	top := &r.stack[len(r.stack)-1]
	if top.isMap {
		if top.count%2 == 0 {
			if top.count > 0 {
				r.out.WriteByte(',')
			}
		} else {
			r.out.WriteByte(':')
		}
	} else if top.count > 0 {
		r.out.WriteByte(',')
	}
	top.count++
}

// afterValue closes any definite-length containers whose promised
// element count was just reached. Closing one container is itself
// completing a value of whatever (if anything) encloses it, so the
// check cascades upward until it hits an indefinite-length frame or an
// empty stack.
func (r *Renderer[R]) afterValue() {
	for len(r.stack) > 0 {
		top := &r.stack[len(r.stack)-1]
		if top.expected < 0 || top.count < top.expected {
			return
		}
		r.stack = r.stack[:len(r.stack)-1]
		if top.isMap {
			r.out.WriteByte('}')
		} else {
			r.out.WriteByte(']')
		}
	}
}

func (r *Renderer[R]) writeEscapedString(s string) {
	r.out.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			r.out.WriteSlice([]byte(`\"`))
		case '\\':
			r.out.WriteSlice([]byte(`\\`))
		case '\n':
			r.out.WriteSlice([]byte(`\n`))
		case '\t':
			r.out.WriteSlice([]byte(`\t`))
		case '\r':
			r.out.WriteSlice([]byte(`\r`))
		default:
			if c < 0x20 {
				const hex = "0123456789abcdef"
				r.out.WriteSlice([]byte(`\u00`))
				r.out.WriteBytes2(hex[c>>4], hex[c&0xf])
			} else {
				r.out.WriteByte(c)
			}
		}
	}
	r.out.WriteByte('"')
}

func (r *Renderer[R]) OnNull() error {
	r.beforeValue()
	r.out.WriteSlice([]byte("null"))
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnUndefined() error { return r.OnNull() }

func (r *Renderer[R]) OnBreak() error {
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if top.isMap {
		r.out.WriteByte('}')
	} else {
		r.out.WriteByte(']')
	}
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnEndOfInput() error { return nil }

func (r *Renderer[R]) OnBool(v bool) error {
	r.beforeValue()
	if v {
		r.out.WriteSlice([]byte("true"))
	} else {
		r.out.WriteSlice([]byte("false"))
	}
	r.afterValue()
	return nil
}

func (r *Renderer[R]) OnInt(v int32) error { return r.OnLong(int64(v)) }
func (r *Renderer[R]) OnLong(v int64) error {
	r.beforeValue()
	r.out.WriteSlice([]byte(strconv.FormatInt(v, 10)))
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnOverLong(negative bool, magnitude uint64) error {
	r.beforeValue()
	if negative {
		r.out.WriteByte('-')
		r.out.WriteSlice([]byte(strconv.FormatUint(magnitude+1, 10)))
	} else {
		r.out.WriteSlice([]byte(strconv.FormatUint(magnitude, 10)))
	}
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnFloat16(v float32) error { return r.OnDouble(float64(v)) }
func (r *Renderer[R]) OnFloat(v float32) error   { return r.OnDouble(float64(v)) }
func (r *Renderer[R]) OnDouble(v float64) error {
	r.beforeValue()
	r.out.WriteSlice([]byte(strconv.FormatFloat(v, 'g', -1, 64)))
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnSimpleValue(v byte) error {
	r.beforeValue()
	r.out.WriteSlice([]byte(strconv.Itoa(int(v))))
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnNumberString(s string) error {
	r.beforeValue()
	r.out.WriteSlice([]byte(s))
	r.afterValue()
	return nil
}

func (r *Renderer[R]) OnBytes(receiver.ByteAccessor) error { return ErrUnsupportedDataItem }
func (r *Renderer[R]) OnBytesStart() error                 { return ErrUnsupportedDataItem }

func (r *Renderer[R]) OnText(b receiver.ByteAccessor) error {
	r.beforeValue()
	r.writeEscapedString(string(b.Bytes()))
	r.afterValue()
	return nil
}
func (r *Renderer[R]) OnTextStart() error { return ErrUnsupportedDataItem }
func (r *Renderer[R]) OnTextWindow(array []byte, start, length int, _ bool) error {
	r.beforeValue()
	r.writeEscapedString(string(array[start : start+length]))
	r.afterValue()
	return nil
}

// OnArrayHeader renders a definite-length array. JSON has no header
// encoding for the element count, so the promised count is tracked on
// the frame and the closing ']' is emitted by afterValue once it's
// reached, without the caller ever needing to send an OnBreak.
func (r *Renderer[R]) OnArrayHeader(n uint64) error {
	r.beforeValue()
	r.out.WriteByte('[')
	if n == 0 {
		r.out.WriteByte(']')
		r.afterValue()
		return nil
	}
	r.stack = append(r.stack, frame{isMap: false, expected: int(n)})
	return nil
}
func (r *Renderer[R]) OnArrayStart() error {
	r.beforeValue()
	r.out.WriteByte('[')
	r.stack = append(r.stack, frame{isMap: false, expected: -1})
	return nil
}

// OnMapHeader is OnArrayHeader's map counterpart; n counts key/value
// pairs, so the frame's expected raw-value count is 2n.
func (r *Renderer[R]) OnMapHeader(n uint64) error {
	r.beforeValue()
	r.out.WriteByte('{')
	if n == 0 {
		r.out.WriteByte('}')
		r.afterValue()
		return nil
	}
	r.stack = append(r.stack, frame{isMap: true, expected: int(n) * 2})
	return nil
}
func (r *Renderer[R]) OnMapStart() error {
	r.beforeValue()
	r.out.WriteByte('{')
	r.stack = append(r.stack, frame{isMap: true, expected: -1})
	return nil
}

// OnTag has no JSON representation; the tag marker itself is dropped and
// only the tagged value (the next callback) is rendered.
func (r *Renderer[R]) OnTag(uint64) error { return nil }
