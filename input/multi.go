// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package input

import (
	"encoding/binary"
	"fmt"
)

// MultiInput presents a sequence of Input instances as one logical stream.
// The current source is always drained first; when a padded read or
// ReadBytes runs past its end, MultiInput transparently fetches the next
// source and reassembles the value from the prefix already read and the
// suffix read from the new current source, per the fixed split-read
// formulas. The unchecked ReadByte/ReadDoubleByteBE/ReadQuadByteBE/
// ReadOctaByteBE read from the current source only and never cross a
// source boundary.
//
// MultiInput keeps enough exhausted sources reachable to guarantee at
// least RewindWindow bytes of rewind history; older ones are released.
type MultiInput struct {
	sources   []Input
	lengths   []int64 // lengths[i] is valid once sources[i] has been advanced away from
	starts    []int64 // starts[i] is the absolute offset of sources[i]'s first byte
	idx       int
	current   Input
	fetchMore func() (Input, bool)
}

// NewMultiInput composes a fixed slice of sources.
func NewMultiInput(sources ...Input) *MultiInput {
	if len(sources) == 0 {
		panic("input: NewMultiInput requires at least one source")
	}
	return &MultiInput{
		sources: sources,
		lengths: make([]int64, len(sources)),
		starts:  []int64{0},
		idx:     0,
		current: sources[0],
	}
}

// NewLazyMultiInput composes an always-available first source plus a
// fetch function supplying further sources on demand. fetch returns
// ok=false once the sequence is exhausted.
func NewLazyMultiInput(first Input, fetch func() (Input, bool)) *MultiInput {
	mi := NewMultiInput(first)
	mi.fetchMore = fetch
	return mi
}

func (mi *MultiInput) Cursor() int64 {
	return mi.starts[mi.idx] + mi.current.Cursor()
}

// advance finalizes the current source's length and switches to the next
// one, fetching lazily if needed. Returns false if the stream is drained.
func (mi *MultiInput) advance() bool {
	mi.lengths[mi.idx] = mi.current.Cursor()
	if mi.idx+1 < len(mi.sources) {
		if len(mi.starts) == mi.idx+1 {
			mi.starts = append(mi.starts, mi.starts[mi.idx]+mi.lengths[mi.idx])
		}
		mi.idx++
		mi.current = mi.sources[mi.idx]
		mi.evictOld()
		return true
	}
	if mi.fetchMore == nil {
		return false
	}
	next, ok := mi.fetchMore()
	if !ok {
		mi.fetchMore = nil
		return false
	}
	mi.sources = append(mi.sources, next)
	mi.lengths = append(mi.lengths, 0)
	mi.starts = append(mi.starts, mi.starts[mi.idx]+mi.lengths[mi.idx])
	mi.idx++
	mi.current = next
	mi.evictOld()
	return true
}

// evictOld drops references to sources older than RewindWindow bytes
// behind the active one, so they can be garbage collected.
func (mi *MultiInput) evictOld() {
	var backlog int64
	for i := mi.idx - 1; i >= 0; i-- {
		if backlog >= RewindWindow {
			mi.sources[i] = nil
			continue
		}
		backlog += mi.lengths[i]
	}
}

func (mi *MultiInput) MoveCursor(offset int) error {
	if offset < -255 || offset > 1 {
		return fmt.Errorf("input: move_cursor offset %d out of [-255, 1]", offset)
	}
	if offset >= 0 {
		return mi.current.MoveCursor(offset)
	}
	remaining := -offset
	idx := mi.idx
	for remaining > 0 {
		src := mi.sources[idx]
		if src == nil {
			return fmt.Errorf("input: rewind target was released (out of the %d-byte window)", RewindWindow)
		}
		avail := src.Cursor()
		if avail >= int64(remaining) {
			if err := src.MoveCursor(-remaining); err != nil {
				return err
			}
			mi.idx = idx
			mi.current = src
			return nil
		}
		if avail > 0 {
			if err := src.MoveCursor(int(-avail)); err != nil {
				return err
			}
		}
		remaining -= int(avail)
		if idx == 0 {
			return fmt.Errorf("input: rewind past the start of the composed stream")
		}
		idx--
	}
	mi.idx = idx
	mi.current = mi.sources[idx]
	return nil
}

func (mi *MultiInput) ReadByte() byte               { return mi.current.ReadByte() }
func (mi *MultiInput) ReadDoubleByteBE() uint16      { return mi.current.ReadDoubleByteBE() }
func (mi *MultiInput) ReadQuadByteBE() uint32        { return mi.current.ReadQuadByteBE() }
func (mi *MultiInput) ReadOctaByteBE() uint64        { return mi.current.ReadOctaByteBE() }

func (mi *MultiInput) ReadBytePadded(pp PaddingProvider) (byte, error) {
	return mi.current.ReadBytePadded(boundaryPadding{mi: mi, outer: pp})
}

func (mi *MultiInput) ReadDoubleByteBEPadded(pp PaddingProvider) (uint16, error) {
	return mi.current.ReadDoubleByteBEPadded(boundaryPadding{mi: mi, outer: pp})
}

func (mi *MultiInput) ReadQuadByteBEPadded(pp PaddingProvider) (uint32, error) {
	return mi.current.ReadQuadByteBEPadded(boundaryPadding{mi: mi, outer: pp})
}

func (mi *MultiInput) ReadOctaByteBEPadded(pp PaddingProvider) (uint64, error) {
	return mi.current.ReadOctaByteBEPadded(boundaryPadding{mi: mi, outer: pp})
}

func (mi *MultiInput) ReadBytes(length uint64, pp PaddingProvider) ([]byte, error) {
	return mi.current.ReadBytes(length, boundaryPadding{mi: mi, outer: pp})
}

func (mi *MultiInput) PrecedingBytesAsASCII(length int) string {
	return mi.current.PrecedingBytesAsASCII(length)
}

func (mi *MultiInput) ReleaseBeforeCursor() {
	mi.current.ReleaseBeforeCursor()
}

// boundaryPadding is the inner PaddingProvider installed while reading
// from the current source. When that source underruns, it fetches the
// next source and completes the read from it, recursing across as many
// source boundaries as needed before falling back to the caller-supplied
// outer provider once the composed stream itself is drained.
type boundaryPadding struct {
	mi    *MultiInput
	outer PaddingProvider
}

func (bp boundaryPadding) PadBytes(partial []byte, want int) ([]byte, error) {
	if !bp.mi.advance() {
		return bp.outer.PadBytes(partial, want)
	}
	need := want - len(partial)
	more, err := bp.mi.current.ReadBytes(uint64(need), bp)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, want)
	out = append(out, partial...)
	out = append(out, more...)
	return out, nil
}

func (bp boundaryPadding) PadByte() (byte, error) {
	b, err := bp.PadBytes(nil, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (bp boundaryPadding) PadDoubleByte(prefix []byte) (uint16, error) {
	b, err := bp.PadBytes(prefix, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (bp boundaryPadding) PadQuadByte(prefix []byte) (uint32, error) {
	b, err := bp.PadBytes(prefix, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (bp boundaryPadding) PadOctaByte(prefix []byte) (uint64, error) {
	b, err := bp.PadBytes(prefix, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
