// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package input_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/borerio/borer/input"
)

// chunkedReader hands back bytes a few at a time, forcing ReaderInput to
// call Read repeatedly within a single fill.
type chunkedReader struct {
	data []byte
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := 2
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestReaderInputReadsBytes(t *testing.T) {
	in := input.NewReaderInput(&chunkedReader{data: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}})
	if got := in.ReadByte(); got != 1 {
		t.Fatalf("ReadByte = %d, want 1", got)
	}
	if got := in.ReadDoubleByteBE(); got != 0x0203 {
		t.Fatalf("ReadDoubleByteBE = %x", got)
	}
	if got := in.ReadQuadByteBE(); got != 0x04050607 {
		t.Fatalf("ReadQuadByteBE = %x", got)
	}
	rest, err := in.ReadBytes(2, input.EOFPaddingProvider{})
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(rest, []byte{8, 9}) {
		t.Fatalf("ReadBytes(2) = % x", rest)
	}
}

func TestReaderInputReadBytesPaddedOnUnderrun(t *testing.T) {
	in := input.NewReaderInput(bytes.NewReader([]byte{1, 2, 3}))
	_, err := in.ReadBytes(5, input.EOFPaddingProvider{})
	if err == nil {
		t.Fatal("expected an error padding past end of reader")
	}
	eofErr, ok := err.(*input.ErrUnexpectedEndOfInput)
	if !ok {
		t.Fatalf("expected *ErrUnexpectedEndOfInput, got %T", err)
	}
	if eofErr.Expected != 5 || eofErr.Got != 3 {
		t.Errorf("got Expected=%d Got=%d, want 5/3", eofErr.Expected, eofErr.Got)
	}
}

func TestReaderInputOctaByteBEPaddedOnUnderrun(t *testing.T) {
	in := input.NewReaderInput(bytes.NewReader([]byte{1, 2, 3}))
	_, err := in.ReadOctaByteBEPadded(input.EOFPaddingProvider{})
	if err == nil {
		t.Fatal("expected an error reading an octa-byte past end of reader")
	}
}

func TestReaderInputMoveCursorAndReread(t *testing.T) {
	in := input.NewReaderInput(bytes.NewReader([]byte{1, 2, 3, 4}))
	if _, err := in.ReadBytes(4, input.EOFPaddingProvider{}); err != nil {
		t.Fatal(err)
	}
	if err := in.MoveCursor(-2); err != nil {
		t.Fatalf("MoveCursor(-2): %v", err)
	}
	got, err := in.ReadBytes(2, input.EOFPaddingProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{3, 4}) {
		t.Fatalf("ReadBytes(2) after rewind = % x", got)
	}
}

func TestReaderInputMoveCursorOutOfRangeErrors(t *testing.T) {
	in := input.NewReaderInput(bytes.NewReader([]byte{1, 2, 3, 4}))
	if err := in.MoveCursor(-1); err == nil {
		t.Fatal("expected an error moving the cursor before the buffered window")
	}
}

func TestReaderInputPrecedingBytesAsASCII(t *testing.T) {
	in := input.NewReaderInput(bytes.NewReader([]byte("hi\x01there")))
	if _, err := in.ReadBytes(8, input.EOFPaddingProvider{}); err != nil {
		t.Fatal(err)
	}
	if got := in.PrecedingBytesAsASCII(8); got != "hi.there" {
		t.Errorf("PrecedingBytesAsASCII = %q, want %q", got, "hi.there")
	}
}

func TestReaderInputReleaseBeforeCursorDoesNotBreakForwardReads(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, int(input.RewindWindow)*2)
	data[len(data)-1] = 0xCD
	in := input.NewReaderInput(bytes.NewReader(data))
	for i := 0; i < len(data)-1; i++ {
		in.ReadByte()
		in.ReleaseBeforeCursor()
	}
	if got := in.ReadByte(); got != 0xCD {
		t.Fatalf("final byte = %x, want cd", got)
	}
}
