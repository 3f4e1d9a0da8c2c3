// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor

import (
	"encoding/binary"

	"github.com/borerio/borer/input"
)

// TryReadStringCompare attempts to read one definite-length CBOR text or
// byte string data item directly at the current cursor and compare it
// against target without materializing the payload into a new
// allocation. It reports (equal, matched) where matched is false if the
// item at the cursor isn't a definite-length string of the requested
// major type at all (in which case the cursor is left untouched and the
// caller should fall back to ReadNextDataItem).
//
// On any mismatch — wrong length or differing bytes — the cursor is
// rewound all the way back to startCursor rather than left past the
// item, so a caller that only has a candidate name to try (not the
// actual key) can retry the comparison against its next candidate, or
// fall back to ReadNextDataItem, without having to track how far the
// failed attempt advanced.
func TryReadStringCompare(in input.Input, wantMajorType byte, target string) (equal bool, matched bool, err error) {
	startCursor := in.Cursor()

	first, err := in.ReadBytePadded(input.EOFPaddingProvider{Pos: startCursor})
	if err != nil {
		return false, false, nil //nolint:nilerr // caller falls back to the general parser
	}
	majorType := first >> 5
	info := first & 0x1f
	if majorType != wantMajorType || info == infoIndefOrBreak || info > infoEightBytes {
		_ = rewindTo(in, startCursor)
		return false, false, nil
	}

	length, ok := readDefiniteLength(in, info)
	if !ok {
		_ = rewindTo(in, startCursor)
		return false, false, nil
	}

	if length != uint64(len(target)) {
		_ = rewindTo(in, startCursor)
		return false, true, nil
	}

	equal, err = compareChunked(in, target)
	if err != nil {
		return false, true, err
	}
	if !equal {
		_ = rewindTo(in, startCursor)
	}
	return equal, true, nil
}

func readDefiniteLength(in input.Input, info byte) (uint64, bool) {
	strict := input.EOFPaddingProvider{Pos: in.Cursor()}
	switch {
	case info < infoOneByte:
		return uint64(info), true
	case info == infoOneByte:
		b, err := in.ReadBytePadded(strict)
		return uint64(b), err == nil
	case info == infoTwoBytes:
		v, err := in.ReadDoubleByteBEPadded(strict)
		return uint64(v), err == nil
	case info == infoFourBytes:
		v, err := in.ReadQuadByteBEPadded(strict)
		return uint64(v), err == nil
	case info == infoEightBytes:
		v, err := in.ReadOctaByteBEPadded(strict)
		return v, err == nil
	default:
		return 0, false
	}
}

func rewindTo(in input.Input, target int64) error {
	for in.Cursor() > target {
		if err := in.MoveCursor(-1); err != nil {
			return err
		}
	}
	return nil
}

// compareChunked reads target's length worth of bytes 8 at a time and
// compares them as big-endian uint64s against the same chunking of
// target, avoiding a byte-by-byte loop for the common case of ASCII map
// keys a handful of bytes long. The unsigned OctaByte comparison only
// needs to answer equal-or-not here (TryReadStringCompare has no
// ordering to report), so a differing chunk short-circuits immediately
// instead of computing a signed magnitude. Once it returns, the caller
// is responsible for rewinding to the item start on a false result;
// compareChunked itself leaves the cursor wherever it stopped reading.
func compareChunked(in input.Input, target string) (equal bool, err error) {
	remaining := len(target)
	offset := 0
	tb := []byte(target)
	strict := input.EOFPaddingProvider{Pos: in.Cursor()}

	for remaining >= 8 {
		got, err := in.ReadOctaByteBEPadded(strict)
		if err != nil {
			return false, err
		}
		want := binary.BigEndian.Uint64(tb[offset : offset+8])
		if got != want {
			return false, nil
		}
		remaining -= 8
		offset += 8
	}

	if remaining == 0 {
		return true, nil
	}

	tail, err := in.ReadBytes(uint64(remaining), strict)
	if err != nil {
		return false, err
	}
	for i, b := range tail {
		if b != tb[offset+i] {
			return false, nil
		}
	}
	return true, nil
}
