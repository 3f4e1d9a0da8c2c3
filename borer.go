// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer

import (
	"github.com/borerio/borer/cbor"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/json"
	"github.com/borerio/borer/output"
	"github.com/borerio/borer/reader"
)

// Marshal derives v's CBOR encoding via reflection (or v's own
// MarshalBorer, if it implements Marshaler).
func Marshal(v any, opts ...EncodeOption) ([]byte, error) {
	out := output.NewChunkedOutput()
	recv := cbor.NewRenderer[[]byte](out)
	if err := NewEncoder(recv, opts...).Encode(v); err != nil {
		return nil, err
	}
	return recv.Result()
}

// Unmarshal decodes CBOR-encoded data into v, which must be a non-nil
// pointer.
func Unmarshal(data []byte, v any, opts ...DecodeOption) error {
	p := cbor.NewParser(input.NewByteSliceInput(data))
	rd := reader.New(p)
	return NewDecoder(rd, opts...).Decode(v)
}

// MarshalJSON derives v's JSON encoding the same way Marshal derives
// CBOR.
func MarshalJSON(v any, opts ...EncodeOption) ([]byte, error) {
	out := output.NewChunkedOutput()
	recv := json.NewRenderer[[]byte](out)
	if err := NewEncoder(recv, opts...).Encode(v); err != nil {
		return nil, err
	}
	return recv.Result()
}

// UnmarshalJSON decodes JSON text into v, which must be a non-nil
// pointer.
func UnmarshalJSON(data []byte, v any, opts ...DecodeOption) error {
	p := json.NewParser(data)
	rd := reader.New(p)
	return NewDecoder(rd, opts...).Decode(v)
}
