// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer

import (
	"reflect"

	"github.com/borerio/borer/cbor"
	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/output"
	"github.com/borerio/borer/reader"
	"github.com/borerio/borer/receiver"
)

// TagData is the untyped view of a Tag[T], giving Encoder access to the
// tag number and wrapped value without needing T at compile time. The
// unexported isTag marker keeps the interface sealed to this package's
// own Tag[T], mirroring the teacher's TagData pattern: an external type
// cannot accidentally satisfy it and slip past the encoder's type switch.
type TagData interface {
	Number() uint64
	Value() any
	isTag()
}

// Tag pairs a CBOR semantic tag number (RFC 8949 §3.4) with the value it
// modifies. Encode renders it as OnTag(Num) followed by Val's own
// representation; Decode expects the mirror image.
type Tag[T any] struct {
	Num uint64
	Val T
}

// Number implements TagData.
func (t Tag[T]) Number() uint64 { return t.Num }

// Value implements TagData.
func (t Tag[T]) Value() any { return t.Val }

func (Tag[T]) isTag() {}

// MarshalBorer implements Marshaler directly (rather than relying on the
// TagData fallback in encodeValue) so a Tag[T] nested inside a slice or
// map element, which encodeValue reaches without first unwrapping
// interfaces, still renders correctly.
func (t Tag[T]) MarshalBorer(recv receiver.Receiver) error {
	if err := recv.OnTag(t.Num); err != nil {
		return err
	}
	return encodeValue(recv, reflect.ValueOf(t.Val), EncodeOptions{})
}

// UnmarshalBorer implements Unmarshaler.
func (t *Tag[T]) UnmarshalBorer(rd *reader.Reader) error {
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	if kind != receiver.KindTag {
		return errs.InvalidInputData(0, "expected a tag, got "+kind.String())
	}
	t.Num = rd.Receptacle().Tag
	return decodeValue(rd, reflect.ValueOf(&t.Val).Elem(), DecodeOptions{})
}

// Raw carries an already-encoded CBOR data item's raw bytes through
// without reinterpreting them, for callers that want to pass a payload
// (e.g. a COSE payload field) straight through unchanged.
type Raw struct {
	Bytes []byte
}

// MarshalBorer re-parses Bytes and replays its single top-level data item
// into recv, so Raw composes transparently inside any enclosing struct or
// container rather than needing special-cased support in codec.go.
func (r Raw) MarshalBorer(recv receiver.Receiver) error {
	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(r.Bytes)))
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	return replayReceptacle(rd, kind, recv)
}

// UnmarshalBorer captures the next data item's raw CBOR encoding without
// interpreting it, by replaying whatever comes next through a private
// cbor.Renderer and keeping the rendered bytes.
func (r *Raw) UnmarshalBorer(rd *reader.Reader) error {
	out := output.NewChunkedOutput()
	rnd := cbor.NewRenderer[[]byte](out)
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	if err := replayReceptacle(rd, kind, rnd); err != nil {
		return err
	}
	data, err := rnd.Result()
	if err != nil {
		return err
	}
	r.Bytes = data
	return nil
}

// Wrapped marks a value whose CBOR encoding is nested inside a byte
// string (CBOR tag 24's "encoded CBOR data item" convention), generalized
// so callers can nest any inner type without a bespoke wrapper per call
// site.
type Wrapped[T any] struct {
	Val T
}

// MarshalBorer encodes Val with an independent renderer, then emits the
// result as a single byte string.
func (w Wrapped[T]) MarshalBorer(recv receiver.Receiver) error {
	out := output.NewChunkedOutput()
	inner := cbor.NewRenderer[[]byte](out)
	if err := encodeValue(inner, reflect.ValueOf(w.Val), EncodeOptions{}); err != nil {
		return err
	}
	data, err := inner.Result()
	if err != nil {
		return err
	}
	return recv.OnBytes(receiver.OwnedBytes{Data: data})
}

// UnmarshalBorer reads a byte string and decodes Val from its contents.
func (w *Wrapped[T]) UnmarshalBorer(rd *reader.Reader) error {
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	if kind != receiver.KindBytes {
		return errs.InvalidInputData(0, "expected a wrapped byte string, got "+kind.String())
	}
	data := rd.Receptacle().Bytes.Bytes()
	inner := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	return decodeValue(inner, reflect.ValueOf(&w.Val).Elem(), DecodeOptions{})
}
