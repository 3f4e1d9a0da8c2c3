// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package cbor implements the RFC 8949 Concise Binary Object
// Representation wire format as a Parser (bytes -> one Receiver callback
// per data item) and a Renderer (the inverse). Both are streaming: a
// Parser never buffers more than the current item's payload, and an
// indefinite-length array, map, byte string, or text string is exposed
// as a Start callback followed by its elements and a terminating Break,
// rather than requiring the whole container to be read up front.
//
// Supported, beyond what a reflection-only CBOR codec typically covers:
//
//   - Indefinite-length arrays, maps, byte strings, and text strings
//   - All three IEEE 754 float widths (16, 32, 64 bit)
//   - The full simple-value range (0..19, 32..255), not just bool/null/undefined
//   - Unsigned integers up to 2^64-1 via the OverLong data item
//   - UTF-8 validation of decoded text strings
//   - Named constants for the IANA-registered tag numbers; OnTag always
//     carries the raw tag number regardless of whether it is named
//
// Higher-level struct/interface derivation (reflection-based Marshal and
// Unmarshal, sum-type registries, the Wrapped/Raw combinators) lives in
// the root borer package, built on top of this package's Parser,
// Renderer, and the receiver package's Receiver contract.
package cbor
