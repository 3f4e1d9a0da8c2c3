// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package input

import (
	"io"
)

// ReaderInput adapts an io.Reader to the Input contract. It buffers only
// what is needed to satisfy reads plus the RewindWindow, growing lazily
// and releasing old bytes via ReleaseBeforeCursor.
type ReaderInput struct {
	r      io.Reader
	buf    []byte // buf[i] holds absolute byte base+i
	base   int64  // absolute position of buf[0]
	cursor int64  // absolute position of the next unread byte
	eof    bool
}

// NewReaderInput wraps r. r is not copied and is read incrementally.
func NewReaderInput(r io.Reader) *ReaderInput {
	return &ReaderInput{r: r}
}

func (in *ReaderInput) Cursor() int64 { return in.cursor }

func (in *ReaderInput) MoveCursor(offset int) error {
	newCursor := in.cursor + int64(offset)
	if newCursor < in.base || newCursor > in.base+int64(len(in.buf)) {
		return &ErrUnexpectedEndOfInput{Pos: in.cursor, Expected: 0, Got: 0}
	}
	in.cursor = newCursor
	return nil
}

// fill ensures at least n bytes are buffered starting at the cursor,
// reading from the underlying io.Reader as needed. It returns the number
// of bytes actually available (may be less than n on EOF).
func (in *ReaderInput) fill(n int) int {
	rel := int(in.cursor - in.base)
	for !in.eof && len(in.buf)-rel < n {
		chunk := make([]byte, 4096)
		read, err := in.r.Read(chunk)
		if read > 0 {
			in.buf = append(in.buf, chunk[:read]...)
		}
		if err != nil {
			in.eof = true
		}
	}
	avail := len(in.buf) - rel
	if avail < 0 {
		avail = 0
	}
	if avail > n {
		avail = n
	}
	return avail
}

func (in *ReaderInput) relSlice(n int) []byte {
	rel := int(in.cursor - in.base)
	return in.buf[rel : rel+n]
}

func (in *ReaderInput) ReadByte() byte {
	in.fill(1)
	b := in.relSlice(1)[0]
	in.cursor++
	return b
}

func (in *ReaderInput) ReadDoubleByteBE() uint16 {
	in.fill(2)
	d := in.relSlice(2)
	v := uint16(d[0])<<8 | uint16(d[1])
	in.cursor += 2
	return v
}

func (in *ReaderInput) ReadQuadByteBE() uint32 {
	in.fill(4)
	d := in.relSlice(4)
	v := uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])
	in.cursor += 4
	return v
}

func (in *ReaderInput) ReadOctaByteBE() uint64 {
	in.fill(8)
	d := in.relSlice(8)
	v := uint64(d[0])<<56 | uint64(d[1])<<48 | uint64(d[2])<<40 | uint64(d[3])<<32 |
		uint64(d[4])<<24 | uint64(d[5])<<16 | uint64(d[6])<<8 | uint64(d[7])
	in.cursor += 8
	return v
}

func (in *ReaderInput) drainAvailable(want int) []byte {
	avail := in.fill(want)
	prefix := make([]byte, avail)
	copy(prefix, in.relSlice(avail))
	in.cursor += int64(avail)
	return prefix
}

func (in *ReaderInput) ReadBytePadded(pp PaddingProvider) (byte, error) {
	if in.fill(1) >= 1 {
		return in.ReadByte(), nil
	}
	return pp.PadByte()
}

func (in *ReaderInput) ReadDoubleByteBEPadded(pp PaddingProvider) (uint16, error) {
	if in.fill(2) >= 2 {
		return in.ReadDoubleByteBE(), nil
	}
	return pp.PadDoubleByte(in.drainAvailable(2))
}

func (in *ReaderInput) ReadQuadByteBEPadded(pp PaddingProvider) (uint32, error) {
	if in.fill(4) >= 4 {
		return in.ReadQuadByteBE(), nil
	}
	return pp.PadQuadByte(in.drainAvailable(4))
}

func (in *ReaderInput) ReadOctaByteBEPadded(pp PaddingProvider) (uint64, error) {
	if in.fill(8) >= 8 {
		return in.ReadOctaByteBE(), nil
	}
	return pp.PadOctaByte(in.drainAvailable(8))
}

func (in *ReaderInput) ReadBytes(length uint64, pp PaddingProvider) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}
	want := int(length)
	if in.fill(want) >= want {
		out := make([]byte, want)
		copy(out, in.relSlice(want))
		in.cursor += int64(want)
		return out, nil
	}
	partial := in.drainAvailable(want)
	return pp.PadBytes(partial, want)
}

func (in *ReaderInput) PrecedingBytesAsASCII(length int) string {
	if length < 0 {
		length = 0
	}
	if length > 255 {
		length = 255
	}
	start := in.cursor - int64(length)
	if start < in.base {
		start = in.base
	}
	b := in.buf[start-in.base : in.cursor-in.base]
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			out[i] = '.'
		} else {
			out[i] = c
		}
	}
	return string(out)
}

// ReleaseBeforeCursor drops buffered bytes older than RewindWindow behind
// the cursor.
func (in *ReaderInput) ReleaseBeforeCursor() {
	keepFrom := in.cursor - RewindWindow
	if keepFrom <= in.base {
		return
	}
	drop := int(keepFrom - in.base)
	if drop > len(in.buf) {
		drop = len(in.buf)
	}
	in.buf = in.buf[drop:]
	in.base += int64(drop)
}
