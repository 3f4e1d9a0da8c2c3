// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor

import (
	"math"
	"testing"
)

func TestHalfToFloat32(t *testing.T) {
	posInf := float32(math.Inf(1))
	cases := []struct {
		bits uint16
		want float32
	}{
		{0x0000, 0},
		{0x3c00, 1},
		{0xbc00, -1},
		{0x4000, 2},
		{0x7c00, posInf},
	}
	for _, c := range cases {
		got := halfToFloat32(c.bits)
		if got != c.want {
			t.Errorf("halfToFloat32(%#x) = %v, want %v", c.bits, got, c.want)
		}
	}
}

func TestFloat32ToHalfRoundTrip(t *testing.T) {
	for _, f := range []float32{0, 1, -1, 2, 0.5, -0.5, 100} {
		bits, ok := float32ToHalf(f)
		if !ok {
			t.Fatalf("float32ToHalf(%v): not exactly representable", f)
		}
		if got := halfToFloat32(bits); got != f {
			t.Errorf("round trip of %v through half precision = %v", f, got)
		}
	}
}

func TestFloat32ToHalfRejectsLossyValues(t *testing.T) {
	// 1/3 has no exact binary16 representation.
	if _, ok := float32ToHalf(1.0 / 3.0); ok {
		t.Error("expected float32ToHalf to reject a value it cannot represent exactly")
	}
}

func TestParseExactInt64(t *testing.T) {
	cases := []struct {
		s    string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-7", -7, true},
		{"3.14", 0, false},
		{"1e10", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseExactInt64(c.s)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("parseExactInt64(%q) = (%d, %v), want (%d, %v)", c.s, got, ok, c.want, c.ok)
		}
	}
}

func TestParseFloat64(t *testing.T) {
	cases := []struct {
		s    string
		want float64
	}{
		{"3.14", 3.14},
		{"-2.5e2", -250},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := parseFloat64(c.s)
		if err != nil {
			t.Fatalf("parseFloat64(%q): %v", c.s, err)
		}
		if got != c.want {
			t.Errorf("parseFloat64(%q) = %v, want %v", c.s, got, c.want)
		}
	}
	if _, err := parseFloat64("not-a-number"); err == nil {
		t.Error("expected an error parsing a non-numeric literal")
	}
}
