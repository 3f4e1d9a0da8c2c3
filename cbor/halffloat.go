// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor

import "math"

// halfToFloat32 decodes an IEEE 754-2008 binary16 value to float32,
// following the same sign/exponent/mantissa widening the RFC 7049
// reference implementation uses.
func halfToFloat32(bits uint16) float32 {
	sign := uint32(bits>>15) & 0x1
	exp := uint32(bits>>10) & 0x1f
	frac := uint32(bits) & 0x3ff

	var out uint32
	switch exp {
	case 0x1f: // Inf / NaN
		out = sign<<31 | 0xff<<23 | frac<<13
	case 0:
		if frac == 0 { // zero
			out = sign << 31
		} else { // subnormal: normalize by shifting until the implicit bit appears
			e := int32(0)
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			frac &= 0x3ff
			out = sign<<31 | uint32(int32(127-15+1)+e)<<23 | frac<<13
		}
	default:
		out = sign<<31 | (exp-15+127)<<23 | frac<<13
	}
	return math.Float32frombits(out)
}

// float32ToHalf encodes a float32 to IEEE 754-2008 binary16, returning
// ok=false when the value cannot be represented exactly (the caller
// should then fall back to a wider encoding).
func float32ToHalf(f float32) (bits uint16, ok bool) {
	u := math.Float32bits(f)
	sign := uint16(u>>16) & 0x8000
	exp := int32(u>>23) & 0xff
	frac := u & 0x7fffff

	switch {
	case exp == 0xff: // Inf / NaN
		if frac == 0 {
			return sign | 0x7c00, true
		}
		if frac&0x1fff != 0 {
			return 0, false
		}
		return sign | 0x7c00 | uint16(frac>>13), true
	case exp == 0 && frac == 0: // zero
		return sign, true
	}

	halfExp := exp - 127 + 15
	switch {
	case halfExp >= 0x1f:
		return 0, false
	case halfExp <= 0:
		// Would be subnormal or zero in half precision; only exact zero
		// round-trips through this fast path.
		return 0, false
	case frac&0x1fff != 0:
		return 0, false
	default:
		return sign | uint16(halfExp)<<10 | uint16(frac>>13), true
	}
}
