// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package cbor implements the RFC 8949 Concise Binary Object
// Representation wire format against the data-item/Receiver protocol: a
// streaming Parser (bytes -> Receiver callbacks) and its inverse Renderer
// (Receiver-style calls -> bytes).
//
// This generalizes the hand-rolled major-type dispatch the module was
// grounded on (a reflect-based Decoder/Encoder pair that only handled
// definite-length items, booleans, null/undefined, and integers) to the
// full data item model: indefinite-length containers and byte/text
// streams, all three float widths, the full simple-value range, named
// tag constants, and positioned, typed errors in place of ad hoc
// fmt.Errorf calls.
package cbor

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/receiver"
)

// Major types (high 3 bits of the initial byte).
const (
	majorUnsignedInt byte = 0x00
	majorNegativeInt byte = 0x01
	majorByteString  byte = 0x02
	majorTextString  byte = 0x03
	majorArray       byte = 0x04
	majorMap         byte = 0x05
	majorTag         byte = 0x06
	majorSimple      byte = 0x07
)

// Minor-info values with special meaning (additional info, low 5 bits).
const (
	infoOneByte       byte = 24
	infoTwoBytes      byte = 25
	infoFourBytes     byte = 26
	infoEightBytes    byte = 27
	infoIndefOrBreak  byte = 31
	minorFalse        byte = 20
	minorTrue         byte = 21
	minorNull         byte = 22
	minorUndefined    byte = 23
)

var errEndOfInput = errors.New("cbor: end of input")

// eofSentinel is installed only for the very first byte of an item: a
// clean EOF there means the stream is exhausted (EndOfInput), not an
// error. Every other padded read during the item uses strictPadding,
// where running out of bytes is always UnexpectedEndOfInput.
type eofSentinel struct{}

func (eofSentinel) PadByte() (byte, error)                      { return 0, errEndOfInput }
func (eofSentinel) PadDoubleByte([]byte) (uint16, error)        { return 0, errEndOfInput }
func (eofSentinel) PadQuadByte([]byte) (uint32, error)          { return 0, errEndOfInput }
func (eofSentinel) PadOctaByte([]byte) (uint64, error)          { return 0, errEndOfInput }
func (eofSentinel) PadBytes([]byte, int) ([]byte, error)        { return nil, errEndOfInput }

// Limits bounds the lengths the parser will accept for byte/text strings,
// matching the DecodeOptions in the root package without creating an
// import cycle to it.
type Limits struct {
	MaxByteStringLength uint64
	MaxTextStringLength uint64
}

// DefaultLimits imposes no bound beyond the wire format's own 2^63 cap.
var DefaultLimits = Limits{
	MaxByteStringLength: math.MaxInt64,
	MaxTextStringLength: math.MaxInt64,
}

// Parser pulls CBOR bytes from an input.Input and drives exactly one
// Receiver callback per call to ReadNextDataItem. Once it returns an
// error, the parser is unusable: callers must discard it (spec's parser
// error state is terminal).
type Parser struct {
	in     input.Input
	limits Limits
	err    error
}

// NewParser returns a Parser reading from in with the default limits.
func NewParser(in input.Input) *Parser { return NewParserWithLimits(in, DefaultLimits) }

// NewParserWithLimits returns a Parser reading from in with custom
// byte/text string length bounds.
func NewParserWithLimits(in input.Input, limits Limits) *Parser {
	return &Parser{in: in, limits: limits}
}

// Err returns the terminal error, if any, that ended this parser's run.
func (p *Parser) Err() error { return p.err }

func (p *Parser) strict() input.PaddingProvider {
	return input.EOFPaddingProvider{Pos: p.in.Cursor()}
}

func (p *Parser) fail(err error) (receiver.Kind, error) {
	p.err = err
	return 0, err
}

// ReadNextDataItem decodes one CBOR data item from the underlying input
// and drives the matching Receiver callback, returning the Kind of the
// callback that fired.
func (p *Parser) ReadNextDataItem(recv receiver.Receiver) (receiver.Kind, error) {
	if p.err != nil {
		return 0, p.err
	}

	valueIndex := p.in.Cursor()

	first, err := p.in.ReadBytePadded(eofSentinel{})
	if err != nil {
		if errors.Is(err, errEndOfInput) {
			if cbErr := recv.OnEndOfInput(); cbErr != nil {
				return p.fail(cbErr)
			}
			return receiver.KindEndOfInput, nil
		}
		return p.fail(errs.UnexpectedEndOfInput(valueIndex, "initial byte"))
	}

	majorType := first >> 5
	info := first & 0x1f

	arg, indefinite, err := p.readArgument(info)
	if err != nil {
		return p.fail(err)
	}
	if indefinite && majorType != majorByteString && majorType != majorTextString &&
		majorType != majorArray && majorType != majorMap && majorType != majorSimple {
		return p.fail(errs.InvalidInputData(valueIndex, "indefinite-length marker is not legal for this major type"))
	}

	kind, err := p.dispatch(recv, valueIndex, majorType, info, arg, indefinite)
	if err != nil {
		return p.fail(err)
	}
	p.in.ReleaseBeforeCursor()
	return kind, nil
}

// readArgument decodes the CBOR "argument" encoded in info (and possibly
// following bytes), per RFC 8949 §3: 0..23 direct, 24/25/26/27 one to
// eight following bytes, 28/29/30 reserved (invalid), 31 indefinite.
func (p *Parser) readArgument(info byte) (arg uint64, indefinite bool, err error) {
	switch {
	case info < infoOneByte:
		return uint64(info), false, nil
	case info == infoOneByte:
		b, err := p.in.ReadBytePadded(p.strict())
		if err != nil {
			return 0, false, errs.UnexpectedEndOfInput(p.in.Cursor(), "1 argument byte")
		}
		return uint64(b), false, nil
	case info == infoTwoBytes:
		v, err := p.in.ReadDoubleByteBEPadded(p.strict())
		if err != nil {
			return 0, false, errs.UnexpectedEndOfInput(p.in.Cursor(), "2 argument bytes")
		}
		return uint64(v), false, nil
	case info == infoFourBytes:
		v, err := p.in.ReadQuadByteBEPadded(p.strict())
		if err != nil {
			return 0, false, errs.UnexpectedEndOfInput(p.in.Cursor(), "4 argument bytes")
		}
		return uint64(v), false, nil
	case info == infoEightBytes:
		v, err := p.in.ReadOctaByteBEPadded(p.strict())
		if err != nil {
			return 0, false, errs.UnexpectedEndOfInput(p.in.Cursor(), "8 argument bytes")
		}
		return v, false, nil
	case info == infoIndefOrBreak:
		return 0, true, nil
	default: // 28, 29, 30
		return 0, false, errs.InvalidInputData(p.in.Cursor(), "reserved additional info value")
	}
}

//nolint:gocyclo // major-type/minor-info dispatch is inherently this shaped.
func (p *Parser) dispatch(recv receiver.Receiver, pos int64, majorType, info byte, arg uint64, indefinite bool) (receiver.Kind, error) {
	switch majorType {
	case majorUnsignedInt:
		return p.emitUnsigned(recv, arg)
	case majorNegativeInt:
		return p.emitNegative(recv, arg)
	case majorByteString:
		if indefinite {
			if err := recv.OnBytesStart(); err != nil {
				return 0, err
			}
			return receiver.KindBytesStart, nil
		}
		return p.emitBytes(recv, pos, arg)
	case majorTextString:
		if indefinite {
			if err := recv.OnTextStart(); err != nil {
				return 0, err
			}
			return receiver.KindTextStart, nil
		}
		return p.emitText(recv, pos, arg)
	case majorArray:
		if indefinite {
			if err := recv.OnArrayStart(); err != nil {
				return 0, err
			}
			return receiver.KindArrayStart, nil
		}
		if arg >= 1<<63 {
			return 0, errs.Overflow(pos, "array length exceeds 2^63")
		}
		if err := recv.OnArrayHeader(arg); err != nil {
			return 0, err
		}
		return receiver.KindArrayHeader, nil
	case majorMap:
		if indefinite {
			if err := recv.OnMapStart(); err != nil {
				return 0, err
			}
			return receiver.KindMapStart, nil
		}
		if arg >= 1<<63 {
			return 0, errs.Overflow(pos, "map length exceeds 2^63")
		}
		if err := recv.OnMapHeader(arg); err != nil {
			return 0, err
		}
		return receiver.KindMapHeader, nil
	case majorTag:
		if err := recv.OnTag(arg); err != nil {
			return 0, err
		}
		return receiver.KindTag, nil
	case majorSimple:
		return p.emitSimple(recv, pos, info, arg, indefinite)
	default:
		panic("cbor: unreachable major type")
	}
}

func (p *Parser) emitUnsigned(recv receiver.Receiver, arg uint64) (receiver.Kind, error) {
	switch {
	case arg <= math.MaxInt32:
		if err := recv.OnInt(int32(arg)); err != nil {
			return 0, err
		}
		return receiver.KindInt, nil
	case arg <= math.MaxInt64:
		if err := recv.OnLong(int64(arg)); err != nil {
			return 0, err
		}
		return receiver.KindLong, nil
	default:
		if err := recv.OnOverLong(false, arg); err != nil {
			return 0, err
		}
		return receiver.KindOverLong, nil
	}
}

func (p *Parser) emitNegative(recv receiver.Receiver, arg uint64) (receiver.Kind, error) {
	switch {
	case arg <= math.MaxInt32:
		if err := recv.OnInt(int32(-(int64(arg) + 1))); err != nil {
			return 0, err
		}
		return receiver.KindInt, nil
	case arg <= math.MaxInt64:
		if err := recv.OnLong(-(int64(arg) + 1)); err != nil {
			return 0, err
		}
		return receiver.KindLong, nil
	default:
		if err := recv.OnOverLong(true, arg); err != nil {
			return 0, err
		}
		return receiver.KindOverLong, nil
	}
}

func (p *Parser) emitBytes(recv receiver.Receiver, pos int64, length uint64) (receiver.Kind, error) {
	if length >= 1<<63 {
		return 0, errs.Overflow(pos, "byte string length exceeds 2^63")
	}
	if length > p.limits.MaxByteStringLength {
		return 0, errs.Overflow(pos, "byte string length exceeds configured limit")
	}
	data, err := p.in.ReadBytes(length, p.strict())
	if err != nil {
		return 0, errs.UnexpectedEndOfInput(p.in.Cursor(), "byte string contents")
	}
	if err := recv.OnBytes(receiver.OwnedBytes{Data: data}); err != nil {
		return 0, err
	}
	return receiver.KindBytes, nil
}

func (p *Parser) emitText(recv receiver.Receiver, pos int64, length uint64) (receiver.Kind, error) {
	if length >= 1<<63 {
		return 0, errs.Overflow(pos, "text string length exceeds 2^63")
	}
	if length > p.limits.MaxTextStringLength {
		return 0, errs.Overflow(pos, "text string length exceeds configured limit")
	}
	data, err := p.in.ReadBytes(length, p.strict())
	if err != nil {
		return 0, errs.UnexpectedEndOfInput(p.in.Cursor(), "text string contents")
	}
	if !utf8.Valid(data) {
		return 0, errs.InvalidInputData(pos, "text string is not valid UTF-8")
	}
	if err := recv.OnText(receiver.OwnedBytes{Data: data, UTF8: true}); err != nil {
		return 0, err
	}
	return receiver.KindText, nil
}

func (p *Parser) emitSimple(recv receiver.Receiver, pos int64, info byte, arg uint64, indefinite bool) (receiver.Kind, error) {
	switch {
	case indefinite: // info == 31
		if err := recv.OnBreak(); err != nil {
			return 0, err
		}
		return receiver.KindBreak, nil
	case info == minorFalse:
		if err := recv.OnBool(false); err != nil {
			return 0, err
		}
		return receiver.KindBool, nil
	case info == minorTrue:
		if err := recv.OnBool(true); err != nil {
			return 0, err
		}
		return receiver.KindBool, nil
	case info == minorNull:
		if err := recv.OnNull(); err != nil {
			return 0, err
		}
		return receiver.KindNull, nil
	case info == minorUndefined:
		if err := recv.OnUndefined(); err != nil {
			return 0, err
		}
		return receiver.KindUndefined, nil
	case info == infoOneByte:
		if arg < 32 {
			return 0, errs.InvalidInputData(pos, "simple value encoded in two bytes must be >= 32")
		}
		if err := recv.OnSimpleValue(byte(arg)); err != nil {
			return 0, err
		}
		return receiver.KindSimpleValue, nil
	case info == infoTwoBytes:
		if err := recv.OnFloat16(halfToFloat32(uint16(arg))); err != nil {
			return 0, err
		}
		return receiver.KindFloat16, nil
	case info == infoFourBytes:
		if err := recv.OnFloat(math.Float32frombits(uint32(arg))); err != nil {
			return 0, err
		}
		return receiver.KindFloat, nil
	case info == infoEightBytes:
		if err := recv.OnDouble(math.Float64frombits(arg)); err != nil {
			return 0, err
		}
		return receiver.KindDouble, nil
	case info <= 19:
		if err := recv.OnSimpleValue(info); err != nil {
			return 0, err
		}
		return receiver.KindSimpleValue, nil
	default:
		return 0, errs.Unsupported(pos, "unrecognized major-7 minor info")
	}
}
