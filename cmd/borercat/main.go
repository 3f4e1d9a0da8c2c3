// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// borercat reads CBOR (or, for encode, CBOR Diagnostic Notation) from a
// file or stdin and renders it in one of a few other forms: CBOR
// Diagnostic Notation, JSON, YAML, or back to CBOR from diagnostic
// notation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

var flags = flag.NewFlagSet("root", flag.ContinueOnError)

func usage() {
	fmt.Fprintf(os.Stderr, `
Usage:
  borercat [diag|encode|json|yaml] [--] [options]

diag:   render CBOR input as CBOR Diagnostic Notation (the default mode)
encode: parse CBOR Diagnostic Notation input and render it as CBOR
json:   render CBOR input as JSON
yaml:   render CBOR input as YAML

Options:
%s`, options(diagFlags))
}

func options(flags *flag.FlagSet) string {
	var nameSize int
	flags.VisitAll(func(f *flag.Flag) {
		if len(f.Name) > nameSize {
			nameSize = len(f.Name)
		}
	})
	if nameSize < 4 {
		nameSize = 4
	}
	nameSize++

	var out string
	flags.VisitAll(func(f *flag.Flag) {
		out += fmt.Sprintf("  -%s%s%s\n", f.Name, strings.Repeat(" ", nameSize-len(f.Name)), f.Usage)
	})
	return out
}

func main() {
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	sub := flags.Arg(0)
	var args []string
	if flags.NArg() > 1 {
		args = flags.Args()[1:]
		if flags.Arg(1) == "--" {
			args = flags.Args()[2:]
		}
	}

	var err error
	switch sub {
	case "", "diag":
		err = runDiag(args)
	case "encode":
		err = runEncode(args)
	case "json":
		err = runJSON(args)
	case "yaml":
		err = runYAML(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", sub)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "borercat: %v\n", err)
		os.Exit(2)
	}
}
