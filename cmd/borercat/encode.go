// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package main

import (
	"flag"
	"strings"

	"github.com/borerio/borer/cbor/diag"
)

var encodeFlags = flag.NewFlagSet("encode", flag.ContinueOnError)

var (
	encodeIn  = encodeFlags.String("in", "-", "input file (CBOR Diagnostic Notation text), or - for stdin")
	encodeOut = encodeFlags.String("out", "-", "output file (CBOR bytes), or - for stdout")
)

func runEncode(args []string) error {
	if err := encodeFlags.Parse(args); err != nil {
		return err
	}
	data, err := readInput(*encodeIn)
	if err != nil {
		return err
	}
	cb, err := diag.ToCBOR(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	return writeOutput(*encodeOut, cb)
}
