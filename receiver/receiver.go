// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package receiver defines the universal event contract between format
// parsers (CBOR, JSON) and format-agnostic consumers.
//
// A [Receiver] is a closed set of callbacks, one per data-item kind. A
// [Kind] is never constructed by a consumer; it is returned by a parser
// alongside the callback it drove, so that callers can route without a
// second type switch.
package receiver

// Kind identifies which Receiver callback fired for a single data item.
type Kind int

// Kind values, one per data-item in the closed set.
const (
	KindNull Kind = iota
	KindUndefined
	KindBreak
	KindEndOfInput
	KindBool
	KindInt
	KindLong
	KindOverLong
	KindFloat16
	KindFloat
	KindDouble
	KindSimpleValue
	KindNumberString
	KindBytes
	KindBytesStart
	KindText
	KindTextStart
	KindArrayHeader
	KindArrayStart
	KindMapHeader
	KindMapStart
	KindTag
)

// String implements fmt.Stringer for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindUndefined:
		return "Undefined"
	case KindBreak:
		return "Break"
	case KindEndOfInput:
		return "EndOfInput"
	case KindBool:
		return "Boolean"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindOverLong:
		return "OverLong"
	case KindFloat16:
		return "Float16"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindSimpleValue:
		return "SimpleValue"
	case KindNumberString:
		return "NumberString"
	case KindBytes:
		return "Bytes"
	case KindBytesStart:
		return "BytesStart"
	case KindText:
		return "Text"
	case KindTextStart:
		return "TextStart"
	case KindArrayHeader:
		return "ArrayHeader"
	case KindArrayStart:
		return "ArrayStart"
	case KindMapHeader:
		return "MapHeader"
	case KindMapStart:
		return "MapStart"
	case KindTag:
		return "Tag"
	default:
		return "Unknown"
	}
}

// ByteAccessor is the byte-access strategy accompanying opaque Bytes/Text
// callbacks. It lets a Receptacle defer materializing a []byte or string
// until the application actually asks for one.
type ByteAccessor interface {
	// Bytes returns the owned payload. Implementations must either copy or
	// return a slice whose backing array the receiver is allowed to pin.
	Bytes() []byte
	// IsUTF8 reports whether the payload is known-valid UTF-8 text.
	IsUTF8() bool
}

// OwnedBytes is the common ByteAccessor: an already-copied, owned slice.
type OwnedBytes struct {
	Data  []byte
	UTF8  bool
}

// Bytes implements ByteAccessor.
func (o OwnedBytes) Bytes() []byte { return o.Data }

// IsUTF8 implements ByteAccessor.
func (o OwnedBytes) IsUTF8() bool { return o.UTF8 }

// Receiver is the closed set of data-item callbacks. Exactly one method
// fires per call to a Parser's ReadNextDataItem. Callbacks are sequential
// and non-reentrant: the parser owns the call stack for the duration of a
// call and the receiver must not retain payload slices beyond the callback
// unless it copies them (OwnedBytes) or pins the backing array (text
// windows from OnTextWindow).
type Receiver interface {
	OnNull() error
	OnUndefined() error
	OnBreak() error
	OnEndOfInput() error
	OnBool(v bool) error
	OnInt(v int32) error
	OnLong(v int64) error
	// OnOverLong fires for magnitudes in [2^63, 2^64). negative distinguishes
	// the CBOR major type (0 = unsigned, 1 = negative) that produced it.
	OnOverLong(negative bool, magnitude uint64) error
	OnFloat16(v float32) error
	OnFloat(v float32) error
	OnDouble(v float64) error
	// OnSimpleValue fires for minor-type-7 values in {0..19, 32..255}.
	OnSimpleValue(v byte) error
	// OnNumberString fires for a JSON lexical numeric token that the parser
	// declined to pre-parse.
	OnNumberString(s string) error
	// OnBytes fires for a definite-length byte string, accessed opaquely.
	OnBytes(b ByteAccessor) error
	OnBytesStart() error
	// OnText fires for a definite-length text string, accessed opaquely.
	OnText(b ByteAccessor) error
	OnTextStart() error
	// OnTextWindow is the zero-copy JSON shape: array is the parser's own
	// buffer, valid only for the duration of the callback unless pinned by
	// the receiver (e.g. by copying array[start:start+length]).
	OnTextWindow(array []byte, start, length int, isUTF8 bool) error
	OnArrayHeader(n uint64) error
	OnArrayStart() error
	OnMapHeader(n uint64) error
	OnMapStart() error
	// OnTag fires for a semantic tag; the next callback is the tagged item.
	OnTag(num uint64) error
}
