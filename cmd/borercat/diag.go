// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package main

import (
	"flag"

	"github.com/borerio/borer/cbor/diag"
)

var diagFlags = flag.NewFlagSet("diag", flag.ContinueOnError)

var (
	diagIn  = diagFlags.String("in", "-", "input file (CBOR bytes), or - for stdin")
	diagOut = diagFlags.String("out", "-", "output file (CBOR Diagnostic Notation text), or - for stdout")
)

func runDiag(args []string) error {
	if err := diagFlags.Parse(args); err != nil {
		return err
	}
	data, err := readInput(*diagIn)
	if err != nil {
		return err
	}
	text, err := diag.FromCBOR(data)
	if err != nil {
		return err
	}
	return writeOutput(*diagOut, []byte(text+"\n"))
}
