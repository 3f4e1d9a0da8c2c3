// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer_test

import (
	"testing"

	"github.com/borerio/borer"
	"github.com/borerio/borer/cbor"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/output"
	"github.com/borerio/borer/reader"
)

type Shape interface{ isShape() }

type Circle struct {
	Radius int64 `cbor:"0"`
}

func (Circle) isShape() {}

type Square struct {
	Side int64 `cbor:"0"`
}

func (Square) isShape() {}

func newShapeSum() *borer.Sum[Shape] {
	s := borer.NewSum[Shape]()
	borer.RegisterVariant[Shape, Circle](s, int64(1))
	borer.RegisterVariant[Shape, Square](s, int64(2))
	return s
}

func TestSumEncodeDecodeArrayRepresentation(t *testing.T) {
	s := newShapeSum()

	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	if err := s.Encode(r, Circle{Radius: 9}, borer.EncodeOptions{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := r.Result()
	if err != nil {
		t.Fatal(err)
	}

	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	v, err := s.Decode(rd, borer.DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := v.(*Circle)
	if !ok {
		t.Fatalf("expected *Circle, got %T", v)
	}
	if c.Radius != 9 {
		t.Errorf("got Radius=%d, want 9", c.Radius)
	}
}

func TestSumEncodeDecodeMapRepresentation(t *testing.T) {
	s := newShapeSum()

	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	opts := borer.EncodeOptions{MapRepresentation: true}
	if err := s.Encode(r, Square{Side: 4}, opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := r.Result()
	if err != nil {
		t.Fatal(err)
	}

	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	v, err := s.Decode(rd, borer.DecodeOptions{MapRepresentation: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sq, ok := v.(*Square)
	if !ok {
		t.Fatalf("expected *Square, got %T", v)
	}
	if sq.Side != 4 {
		t.Errorf("got Side=%d, want 4", sq.Side)
	}
}

func TestSumRegisterVariantCollisionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic registering a colliding discriminator key")
		}
	}()
	s := borer.NewSum[Shape]()
	borer.RegisterVariant[Shape, Circle](s, int64(1))
	borer.RegisterVariant[Shape, Square](s, int64(1))
}

func TestSumEncodeUnregisteredTypeErrors(t *testing.T) {
	s := newShapeSum()
	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	type Triangle struct{ Base int64 }
	if err := s.Encode(r, Triangle{Base: 3}, borer.EncodeOptions{}); err == nil {
		t.Fatal("expected an error encoding an unregistered variant type")
	}
}

func TestSumDecodeUnknownKeyErrors(t *testing.T) {
	s := newShapeSum()
	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	if err := r.OnArrayHeader(2); err != nil {
		t.Fatal(err)
	}
	if err := r.OnLong(99); err != nil {
		t.Fatal(err)
	}
	if err := r.OnLong(0); err != nil {
		t.Fatal(err)
	}
	data, err := r.Result()
	if err != nil {
		t.Fatal(err)
	}
	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	if _, err := s.Decode(rd, borer.DecodeOptions{}); err == nil {
		t.Fatal("expected an error decoding an unregistered discriminator key")
	}
}
