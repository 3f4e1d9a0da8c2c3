// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor_test

// Cross-implementation conformance: round-trips a corpus of values
// through this package's Renderer/Parser and through fxamacker/cbor,
// asserting identical wire bytes for values whose encoding is
// unambiguous (scalars, arrays, byte/text strings) and identical
// decoded values both ways for everything else.

import (
	"bytes"
	"reflect"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"

	"github.com/borerio/borer/cbor"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/output"
	"github.com/borerio/borer/reader"
	"github.com/borerio/borer/writer"
)

func encodeWithThisPackage(t *testing.T, write func(w *writer.Writer) error) []byte {
	t.Helper()
	out := output.NewChunkedOutput()
	rnd := cbor.NewRenderer[[]byte](out)
	w := writer.New(rnd)
	if err := write(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data, err := rnd.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	return data
}

func TestInteropWireBytesMatchFxamackerForScalars(t *testing.T) {
	cases := []struct {
		name  string
		value any
		write func(w *writer.Writer) error
	}{
		{"smallUint", uint64(7), func(w *writer.Writer) error { return w.WriteInt(7) }},
		{"mediumUint", uint64(1000), func(w *writer.Writer) error { return w.WriteInt(1000) }},
		{"negativeInt", int64(-500), func(w *writer.Writer) error { return w.WriteInt(-500) }},
		{"text", "hello", func(w *writer.Writer) error { return w.WriteString("hello") }},
		{"bytes", []byte{1, 2, 3}, func(w *writer.Writer) error { return w.WriteBytes([]byte{1, 2, 3}) }},
		{"boolTrue", true, func(w *writer.Writer) error { return w.WriteBool(true) }},
		{"double", 3.5, func(w *writer.Writer) error { return w.WriteFloat64(3.5) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ours := encodeWithThisPackage(t, c.write)
			theirs, err := fxcbor.Marshal(c.value)
			if err != nil {
				t.Fatalf("fxamacker Marshal: %v", err)
			}
			if !bytes.Equal(ours, theirs) {
				t.Errorf("wire mismatch: ours=% x fxamacker=% x", ours, theirs)
			}
		})
	}
}

func TestInteropWireBytesMatchFxamackerForDefiniteArray(t *testing.T) {
	ours := encodeWithThisPackage(t, func(w *writer.Writer) error {
		if err := w.WriteArrayOpen(3); err != nil {
			return err
		}
		for _, n := range []int64{1, 2, 3} {
			if err := w.WriteInt(n); err != nil {
				return err
			}
		}
		return nil
	})
	theirs, err := fxcbor.Marshal([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("fxamacker Marshal: %v", err)
	}
	if !bytes.Equal(ours, theirs) {
		t.Errorf("wire mismatch: ours=% x fxamacker=% x", ours, theirs)
	}
}

func TestInteropDecodesFxamackerEncodedArray(t *testing.T) {
	data, err := fxcbor.Marshal([]int64{10, 20, 30})
	if err != nil {
		t.Fatalf("fxamacker Marshal: %v", err)
	}
	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	n, err := rd.ReadArrayOpen()
	if err != nil {
		t.Fatalf("ReadArrayOpen: %v", err)
	}
	if n != 3 {
		t.Fatalf("ReadArrayOpen = %d, want 3", n)
	}
	got := make([]int64, 0, 3)
	for i := 0; i < n; i++ {
		v, err := rd.ReadInt()
		if err != nil {
			t.Fatalf("ReadInt: %v", err)
		}
		got = append(got, v)
	}
	want := []int64{10, 20, 30}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInteropFxamackerDecodesOurEncodedText(t *testing.T) {
	data := encodeWithThisPackage(t, func(w *writer.Writer) error {
		return w.WriteString("round trip")
	})
	var got string
	if err := fxcbor.Unmarshal(data, &got); err != nil {
		t.Fatalf("fxamacker Unmarshal: %v", err)
	}
	if got != "round trip" {
		t.Errorf("got %q, want %q", got, "round trip")
	}
}
