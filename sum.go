// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/reader"
	"github.com/borerio/borer/receiver"
)

// Sum is a registry mapping a discriminator key (an int64 type id or a
// string name) to the concrete Go type implementing interface I, standing
// in for the sealed-hierarchy sum types Go itself has no syntax for. An
// encoded variant is `[key, payload]` (array representation, matching
// product types' default) or a single-entry `{key: payload}` map when the
// codec is configured for map representation — selected the same way a
// struct chooses between the two.
type Sum[I any] struct {
	byKey  map[any]reflect.Type
	byType map[reflect.Type]any
}

// NewSum returns an empty variant registry for interface type I.
func NewSum[I any]() *Sum[I] {
	return &Sum[I]{byKey: make(map[any]reflect.Type), byType: make(map[reflect.Type]any)}
}

// RegisterVariant adds T as a variant discriminated by key (an int or a
// string). It panics if key collides with an already-registered variant,
// since a colliding discriminator is a derivation-time programming error,
// not a runtime condition callers should need to handle.
func RegisterVariant[I, T any](s *Sum[I], key any) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if existing, ok := s.byKey[key]; ok {
		panic(fmt.Sprintf("borer: sum type variant key %v already registered for %s", key, existing))
	}
	s.byKey[key] = t
	s.byType[t] = key
}

// Encode renders v (which must be one of Sum's registered variants) as its
// [key, payload] or {key: payload} representation.
func (s *Sum[I]) Encode(recv receiver.Receiver, v any, opts EncodeOptions) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	key, ok := s.byType[rv.Type()]
	if !ok {
		return errs.Unsupported(0, fmt.Sprintf("borer: %s is not a registered sum type variant", rv.Type()))
	}
	if opts.MapRepresentation {
		if err := recv.OnMapHeader(1); err != nil {
			return err
		}
	} else if err := recv.OnArrayHeader(2); err != nil {
		return err
	}
	if err := encodeValue(recv, reflect.ValueOf(key), opts); err != nil {
		return err
	}
	return encodeValue(recv, rv, opts)
}

// Decode reads a [key, payload] or {key: payload} item and returns a new
// pointer to the variant type registered under the discriminator key it
// finds. A Null (or Undefined) item in place of the variant — the wire
// shape a Nullable/Option-wrapped sum field takes when absent — decodes
// to (nil, nil) instead of an error, leaving the caller's own field at
// its zero value.
func (s *Sum[I]) Decode(rd *reader.Reader, opts DecodeOptions) (any, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return nil, err
	}
	if kind == receiver.KindNull || kind == receiver.KindUndefined {
		return nil, nil
	}

	isMap := opts.MapRepresentation
	var n int
	if isMap {
		switch kind {
		case receiver.KindMapHeader:
			n = int(rd.Receptacle().Header)
		case receiver.KindMapStart:
			n = -1
		default:
			return nil, errs.InvalidInputData(0, "borer: expected a map data item, got "+kind.String())
		}
	} else {
		switch kind {
		case receiver.KindArrayHeader:
			n = int(rd.Receptacle().Header)
		case receiver.KindArrayStart:
			n = -1
		default:
			return nil, errs.InvalidInputData(0, "borer: expected an array data item, got "+kind.String())
		}
	}

	key, err := s.readKey(rd)
	if err != nil {
		return nil, err
	}
	t, ok := s.byKey[key]
	if !ok {
		return nil, errs.InvalidInputData(0, fmt.Sprintf("borer: unregistered sum type discriminator %v", key))
	}

	out := reflect.New(t)
	if err := decodeValue(rd, out.Elem(), opts); err != nil {
		return nil, err
	}

	if n < 0 {
		if isMap {
			err = rd.ReadMapClose()
		} else {
			err = rd.ReadArrayClose()
		}
		if err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}

func (s *Sum[I]) readKey(rd *reader.Reader) (any, error) {
	kind, err := rd.ReadNext()
	if err != nil {
		return nil, err
	}
	rc := rd.Receptacle()
	switch kind {
	case receiver.KindInt:
		return int64(rc.Int), nil
	case receiver.KindLong:
		return rc.Long, nil
	case receiver.KindNumberString:
		return strconv.ParseInt(string(rc.Bytes.Bytes()), 10, 64)
	case receiver.KindText:
		if rc.Window != nil {
			return rc.Window.String(), nil
		}
		return string(rc.Bytes.Bytes()), nil
	default:
		return nil, errs.InvalidInputData(0, "borer: expected a sum type discriminator key, got "+kind.String())
	}
}
