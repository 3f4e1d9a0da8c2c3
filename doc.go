// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package borer implements a streaming, allocation-conscious codec for
// CBOR (RFC 8949) and JSON (RFC 8259), built around a single data-item
// event contract (package receiver) that both wire formats parse into
// and render from.
//
// The layered packages are:
//
//   - input/output: pull/push byte abstractions a Parser/Renderer reads
//     from or writes to.
//   - receiver: the Receiver interface and Kind enum, the contract every
//     Parser drives and every Renderer implements.
//   - cbor, json, jsonfast: format-specific Parser/Renderer pairs.
//   - cbor/diag: CBOR Diagnostic Notation (RFC 8949 §8) rendering and
//     parsing.
//   - reader, writer: typed façades over a Parser/Renderer for callers
//     who want per-shape methods instead of implementing Receiver.
//   - borer (this package): reflection-based Marshal/Unmarshal derivation
//     for Go struct and interface types, driving a receiver.Receiver
//     directly on encode and consuming a reader.Reader on decode.
//
// Marshal and Unmarshal default to CBOR. Call MarshalJSON/UnmarshalJSON,
// or construct an Encoder/Decoder around a json.Renderer/json.Parser
// directly, to use JSON instead.
package borer
