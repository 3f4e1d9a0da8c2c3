// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer

import "github.com/borerio/borer/errs"

// Kind is the closed set of error kinds a codec or derivation failure can
// carry. It is a type alias so that errors produced deep in cbor/json
// (which cannot import this package, to avoid a cycle) compare equal to
// errors constructed here.
type Kind = errs.Kind

// Error is the error type the parsers, Reader, Encoder, and Decoder in
// this module construct for their own failures. Errors from renderers and
// output sinks (json.ErrUnsupportedDataItem, output.ErrOutputOverflow) and
// errors returned by user-supplied Marshaler/Unmarshaler hooks are
// returned unwrapped.
type Error = errs.Error

const (
	KindUnexpectedEndOfInput = errs.KindUnexpectedEndOfInput
	KindInvalidInputData     = errs.KindInvalidInputData
	KindOverflow             = errs.KindOverflow
	KindUnsupported          = errs.KindUnsupported
	KindGeneral              = errs.KindGeneral
)
