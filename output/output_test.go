// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package output_test

import (
	"bytes"
	"testing"

	"github.com/borerio/borer/output"
)

func TestWriteByteAndSlice(t *testing.T) {
	o := output.NewChunkedOutputSize(4)
	o.WriteByte(1)
	o.WriteBytes2(2, 3)
	o.WriteBytes3(4, 5, 6)
	o.WriteBytes4(7, 8, 9, 10)
	o.WriteSlice([]byte{11, 12, 13})

	got, err := o.Result()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
	if o.Size() != uint64(len(want)) {
		t.Fatalf("Size() = %d, want %d", o.Size(), len(want))
	}
}

func TestWriteSliceAcrossManyChunkBoundaries(t *testing.T) {
	o := output.NewChunkedOutputSize(3)
	var want []byte
	for i := 0; i < 37; i++ {
		b := byte(i)
		o.WriteByte(b)
		want = append(want, b)
	}
	got, err := o.Result()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestWriteSliceLargerThanChunkSize(t *testing.T) {
	o := output.NewChunkedOutputSize(4)
	p := bytes.Repeat([]byte{0xab}, 13)
	o.WriteSlice(p)
	got, err := o.Result()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, p) {
		t.Fatalf("got % x, want % x", got, p)
	}
}

func TestDefaultChunkSizeUsedWhenNonPositive(t *testing.T) {
	o := output.NewChunkedOutputSize(0)
	o.WriteByte(0x42)
	got, err := o.Result()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 0x42 {
		t.Fatalf("got % x", got)
	}
}

func TestOutputOverflowErrorMessage(t *testing.T) {
	err := &output.ErrOutputOverflow{Size: 1 << 31}
	want := "output: result size 2147483648 exceeds the 2^31 byte limit of an array-backed sink"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
