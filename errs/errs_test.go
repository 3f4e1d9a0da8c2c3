// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package errs_test

import (
	"errors"
	"testing"

	"github.com/borerio/borer/errs"
)

func TestErrorMessage(t *testing.T) {
	err := errs.InvalidInputData(7, "bad info byte")
	want := "InvalidInputData at position 7: bad info byte"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestErrorMessageWithCause(t *testing.T) {
	cause := errors.New("boom")
	err := errs.General(3, cause)
	want := "General at position 3: unexpected failure: boom"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := errs.General(0, cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is should unwrap to the cause")
	}
}

func TestIsMatchesByKind(t *testing.T) {
	a := errs.Overflow(1, "too long")
	b := errs.Overflow(99, "also too long")
	if !errors.Is(a, b) {
		t.Fatalf("two Overflow errors should match via Is")
	}

	c := errs.Unsupported(1, "nope")
	if errors.Is(a, c) {
		t.Fatalf("an Overflow error should not match an Unsupported one")
	}
}

func TestKindStrings(t *testing.T) {
	for _, test := range []struct {
		kind errs.Kind
		want string
	}{
		{errs.KindUnexpectedEndOfInput, "UnexpectedEndOfInput"},
		{errs.KindInvalidInputData, "InvalidInputData"},
		{errs.KindOverflow, "Overflow"},
		{errs.KindUnsupported, "Unsupported"},
		{errs.KindGeneral, "General"},
	} {
		if got := test.kind.String(); got != test.want {
			t.Errorf("Kind(%d).String() = %q, want %q", test.kind, got, test.want)
		}
	}
}
