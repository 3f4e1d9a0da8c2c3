// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package reader provides the typed consumption façade over a format
// Parser: a Reader tracks the most recently parsed data item in a
// Receptacle and exposes per-shape accessors (ReadInt, ReadString,
// ReadArrayOpen, and so on) instead of requiring callers to implement
// receiver.Receiver directly.
package reader

import (
	"math"
	"strconv"

	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/receiver"
)

// Parser is the subset of cbor.Parser/json.Parser a Reader needs.
type Parser interface {
	ReadNextDataItem(recv receiver.Receiver) (receiver.Kind, error)
}

// Receptacle holds the most recently parsed data item's payload as flat
// scalar fields plus one polymorphic slot, matching the shape a Parser's
// Receiver callbacks deliver. Exactly one field is meaningful at a time,
// selected by Kind.
type Receptacle struct {
	Kind receiver.Kind

	Bool    bool
	Int     int32
	Long    int64
	OverNeg bool
	OverMag uint64
	Float16 float32
	Float32 float32
	Float64 float64
	Simple  byte
	Tag     uint64
	Header  uint64

	// Bytes and Window hold a text, byte-string, or NumberString payload,
	// either as an owned ByteAccessor (Bytes set, Window nil) or as a
	// zero-copy window into the parser's own buffer (Window set, Bytes nil;
	// only valid until the next ReadNext call).
	Bytes  receiver.ByteAccessor
	Window *TextWindow
}

// TextWindow is the zero-copy shape OnTextWindow delivers: a slice into
// the parser's buffer, valid only for the lifetime of the callback that
// produced it unless the caller copies array[Start:Start+Length].
type TextWindow struct {
	Array  []byte
	Start  int
	Length int
	UTF8   bool
}

func (w *TextWindow) String() string { return string(w.Array[w.Start : w.Start+w.Length]) }

// DecodeOptions bounds resource use while reading.
type DecodeOptions struct {
	MaxArrayLength int
	MaxMapLength   int
}

// DefaultDecodeOptions caps array and map lengths at math.MaxInt32, a
// count that fits an int on every platform.
var DefaultDecodeOptions = DecodeOptions{MaxArrayLength: math.MaxInt32, MaxMapLength: math.MaxInt32}

// Reader wraps a Parser, a Receptacle, and DecodeOptions, giving callers
// a single ReadNext-then-typed-accessor protocol instead of a bespoke
// Receiver implementation per call site.
type Reader struct {
	p    Parser
	opts DecodeOptions
	r    Receptacle
}

// New returns a Reader pulling items from p.
func New(p Parser) *Reader { return NewWithOptions(p, DefaultDecodeOptions) }

// NewWithOptions returns a Reader with custom DecodeOptions.
func NewWithOptions(p Parser, opts DecodeOptions) *Reader { return &Reader{p: p, opts: opts} }

// ReadNext parses the next data item into the Receptacle and returns its
// Kind.
func (rd *Reader) ReadNext() (receiver.Kind, error) {
	kind, err := rd.p.ReadNextDataItem(&rd.r)
	if err != nil {
		return 0, err
	}
	return kind, nil
}

// Receptacle exposes the last-read item for callers that need more than
// the typed helpers provide (e.g. to inspect a Tag before dispatching).
func (rd *Reader) Receptacle() *Receptacle { return &rd.r }

// Options returns the Reader's DecodeOptions, for callers (such as
// reflection-derived decoders) that re-implement a typed accessor like
// ReadArrayOpen against an already-classified Receptacle item and still
// need to enforce the same length bounds.
func (rd *Reader) Options() DecodeOptions { return rd.opts }

// ReadInt reads one data item expected to be an integral number
// representable as an int64, accepting Int, Long, and (when
// non-negative and representable) OverLong.
func (rd *Reader) ReadInt() (int64, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return 0, err
	}
	switch kind {
	case receiver.KindInt:
		return int64(rd.r.Int), nil
	case receiver.KindLong:
		return rd.r.Long, nil
	case receiver.KindOverLong:
		if !rd.r.OverNeg && rd.r.OverMag <= math.MaxInt64 {
			return int64(rd.r.OverMag), nil
		}
		return 0, errs.Overflow(0, "integer value does not fit in int64")
	case receiver.KindNumberString:
		return parseNumberStringAsInt(rd.r.Bytes.Bytes())
	default:
		return 0, errs.InvalidInputData(0, "expected an integer data item, got "+kind.String())
	}
}

// parseNumberStringAsInt interprets a JSON lexical numeric token as an
// int64, since JSON's grammar gives no hint on its own whether "3" or
// "3.0" should become an integer or a float on the Go side — that
// decision is left to the field type asking for it.
func parseNumberStringAsInt(s []byte) (int64, error) {
	if n, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return 0, errs.InvalidInputData(0, "invalid numeric literal "+string(s))
	}
	return int64(f), nil
}

// ReadString reads one data item expected to be Text, preferring the
// zero-copy window when the underlying parser produced one.
func (rd *Reader) ReadString() (string, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return "", err
	}
	switch kind {
	case receiver.KindText:
		if rd.r.Window != nil {
			return rd.r.Window.String(), nil
		}
		return string(rd.r.Bytes.Bytes()), nil
	default:
		return "", errs.InvalidInputData(0, "expected a text data item, got "+kind.String())
	}
}

// ReadBool reads one data item expected to be a Boolean.
func (rd *Reader) ReadBool() (bool, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return false, err
	}
	if kind != receiver.KindBool {
		return false, errs.InvalidInputData(0, "expected a boolean data item, got "+kind.String())
	}
	return rd.r.Bool, nil
}

// ReadFloat reads one data item expected to be a floating-point value
// (Float16, Float, Double) or a JSON lexical numeric token, returning it
// widened to float64.
func (rd *Reader) ReadFloat() (float64, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return 0, err
	}
	switch kind {
	case receiver.KindFloat16:
		return float64(rd.r.Float16), nil
	case receiver.KindFloat:
		return float64(rd.r.Float32), nil
	case receiver.KindDouble:
		return rd.r.Float64, nil
	case receiver.KindNumberString:
		f, err := strconv.ParseFloat(string(rd.r.Bytes.Bytes()), 64)
		if err != nil {
			return 0, errs.InvalidInputData(0, "invalid numeric literal "+string(rd.r.Bytes.Bytes()))
		}
		return f, nil
	default:
		return 0, errs.InvalidInputData(0, "expected a floating-point data item, got "+kind.String())
	}
}

// ReadArrayOpen reads an ArrayHeader or ArrayStart, returning the element
// count (or -1 for an indefinite-length array whose end is detected via
// TryReadBreak) and enforcing MaxArrayLength.
func (rd *Reader) ReadArrayOpen() (int, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return 0, err
	}
	switch kind {
	case receiver.KindArrayHeader:
		if rd.r.Header > uint64(rd.opts.MaxArrayLength) {
			return 0, errs.Overflow(0, "array length exceeds configured maximum")
		}
		return int(rd.r.Header), nil
	case receiver.KindArrayStart:
		return -1, nil
	default:
		return 0, errs.InvalidInputData(0, "expected an array data item, got "+kind.String())
	}
}

// ReadArrayClose consumes the Break terminating an indefinite-length
// array opened via ReadArrayOpen's -1 return.
func (rd *Reader) ReadArrayClose() error {
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	if kind != receiver.KindBreak {
		return errs.InvalidInputData(0, "expected Break to close an indefinite-length array")
	}
	return nil
}

// ReadMapOpen is ReadArrayOpen's map-header counterpart, returning the
// number of key/value pairs (the map header's argument, which already
// counts pairs rather than individual keys and values), or -1 for an
// indefinite-length map, and enforcing MaxMapLength.
func (rd *Reader) ReadMapOpen() (int, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return 0, err
	}
	switch kind {
	case receiver.KindMapHeader:
		if rd.r.Header > uint64(rd.opts.MaxMapLength) {
			return 0, errs.Overflow(0, "map length exceeds configured maximum")
		}
		return int(rd.r.Header), nil
	case receiver.KindMapStart:
		return -1, nil
	default:
		return 0, errs.InvalidInputData(0, "expected a map data item, got "+kind.String())
	}
}

// ReadMapClose is ReadArrayClose's map counterpart.
func (rd *Reader) ReadMapClose() error {
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	if kind != receiver.KindBreak {
		return errs.InvalidInputData(0, "expected Break to close an indefinite-length map")
	}
	return nil
}

// ReadEndOfInput asserts the stream has no further data items.
func (rd *Reader) ReadEndOfInput() error {
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	if kind != receiver.KindEndOfInput {
		return errs.InvalidInputData(0, "expected end of input, got "+kind.String())
	}
	return nil
}

// TryReadBreak reads one data item and reports whether it was Break. If
// it was not, the item has already been parsed into the Receptacle —
// callers looping over an indefinite-length container call TryReadBreak
// first on each iteration and, on a false result, read the already-parsed
// item out of the Receptacle instead of calling ReadNext again.
func (rd *Reader) TryReadBreak() (bool, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return false, err
	}
	return kind == receiver.KindBreak, nil
}
