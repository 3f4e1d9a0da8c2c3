// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package reader_test

import (
	"testing"

	"github.com/borerio/borer/cbor"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/output"
	"github.com/borerio/borer/reader"
	"github.com/borerio/borer/writer"
)

func TestWriterReaderRoundTripArray(t *testing.T) {
	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	w := writer.New(r)

	if err := w.WriteArrayOpen(3); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteInt(1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("two"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatal(err)
	}

	data, err := r.Result()
	if err != nil {
		t.Fatal(err)
	}

	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	n, err := rd.ReadArrayOpen()
	if err != nil {
		t.Fatalf("ReadArrayOpen: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected array length 3, got %d", n)
	}
	i, err := rd.ReadInt()
	if err != nil || i != 1 {
		t.Fatalf("ReadInt: %d, %v", i, err)
	}
	s, err := rd.ReadString()
	if err != nil || s != "two" {
		t.Fatalf("ReadString: %q, %v", s, err)
	}
	b, err := rd.ReadBool()
	if err != nil || b != true {
		t.Fatalf("ReadBool: %v, %v", b, err)
	}
	if err := rd.ReadEndOfInput(); err != nil {
		t.Fatalf("ReadEndOfInput: %v", err)
	}
}

func TestWriterReaderRoundTripIndefiniteMap(t *testing.T) {
	opts := writer.EncodeOptions{PreferIndefiniteLength: true}
	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	w := writer.NewWithOptions(r, opts)

	if err := w.WriteMapOpen(-1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("a"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteInt(1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("b"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteInt(2); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteMapClose(); err != nil {
		t.Fatal(err)
	}

	data, err := r.Result()
	if err != nil {
		t.Fatal(err)
	}

	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	n, err := rd.ReadMapOpen()
	if err != nil {
		t.Fatalf("ReadMapOpen: %v", err)
	}
	if n != -1 {
		t.Fatalf("expected indefinite-length map, got n=%d", n)
	}

	got := map[string]int64{}
	for {
		done, err := rd.TryReadBreak()
		if err != nil {
			t.Fatal(err)
		}
		if done {
			break
		}
		rc := rd.Receptacle()
		key := string(rc.Bytes.Bytes())
		val, err := rd.ReadInt()
		if err != nil {
			t.Fatal(err)
		}
		got[key] = val
	}
	if got["a"] != 1 || got["b"] != 2 {
		t.Fatalf("unexpected map contents: %v", got)
	}
}

func TestReadArrayOpenWrongKind(t *testing.T) {
	r := cbor.NewRenderer[[]byte](output.NewChunkedOutput())
	if err := r.OnLong(42); err != nil {
		t.Fatal(err)
	}
	data, err := r.Result()
	if err != nil {
		t.Fatal(err)
	}
	rd := reader.New(cbor.NewParser(input.NewByteSliceInput(data)))
	if _, err := rd.ReadArrayOpen(); err == nil {
		t.Fatal("expected an error reading an array from an integer data item")
	}
}
