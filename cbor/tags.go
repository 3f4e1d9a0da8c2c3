// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor

// Well-known CBOR tag numbers (RFC 8949 §3.4 and the IANA CBOR tags
// registry). The parser does not special-case these beyond making them
// available as named constants for callers building on top of OnTag; the
// data item it emits is always the raw tag number.
const (
	TagDateTimeString    uint64 = 0
	TagEpochDateTime     uint64 = 1
	TagPositiveBignum    uint64 = 2
	TagNegativeBignum    uint64 = 3
	TagDecimalFraction   uint64 = 4
	TagBigFloat          uint64 = 5
	TagBase64URLExpected uint64 = 21
	TagBase64Expected    uint64 = 22
	TagBase16Expected    uint64 = 23
	TagEncodedCBOR       uint64 = 24
	TagURI               uint64 = 32
	TagBase64URL         uint64 = 33
	TagBase64            uint64 = 34
	TagRegexp            uint64 = 35
	TagMIME              uint64 = 36
	TagSelfDescribeCBOR  uint64 = 55799
)
