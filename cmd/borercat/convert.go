// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package main

import (
	"flag"
	"strconv"

	gojson "github.com/goccy/go-json"

	gocbor "github.com/borerio/borer/cbor"
	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/reader"
	"github.com/borerio/borer/receiver"
	"gopkg.in/yaml.v3"
)

var jsonFlags = flag.NewFlagSet("json", flag.ContinueOnError)

var (
	jsonIn  = jsonFlags.String("in", "-", "input file (CBOR bytes), or - for stdin")
	jsonOut = jsonFlags.String("out", "-", "output file (JSON text), or - for stdout")
)

func runJSON(args []string) error {
	if err := jsonFlags.Parse(args); err != nil {
		return err
	}
	v, err := decodeCBORFile(*jsonIn)
	if err != nil {
		return err
	}
	out, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(*jsonOut, append(out, '\n'))
}

var yamlFlags = flag.NewFlagSet("yaml", flag.ContinueOnError)

var (
	yamlIn  = yamlFlags.String("in", "-", "input file (CBOR bytes), or - for stdin")
	yamlOut = yamlFlags.String("out", "-", "output file (YAML text), or - for stdout")
)

func runYAML(args []string) error {
	if err := yamlFlags.Parse(args); err != nil {
		return err
	}
	v, err := decodeCBORFile(*yamlIn)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return writeOutput(*yamlOut, out)
}

func decodeCBORFile(path string) (any, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	rd := reader.New(gocbor.NewParser(input.NewByteSliceInput(data)))
	return decodeAny(rd)
}

// decodeAny reads one data item (recursing through containers) into a
// plain Go value built only from map[string]any, []any, string, int64,
// uint64, float64, bool, []byte, byte (simple values), and nil — the
// subset encoding/json and gopkg.in/yaml.v3 already know how to render
// without a custom type.
func decodeAny(rd *reader.Reader) (any, error) { //nolint:gocyclo
	kind, err := rd.ReadNext()
	if err != nil {
		return nil, err
	}
	rc := rd.Receptacle()
	switch kind {
	case receiver.KindNull, receiver.KindUndefined:
		return nil, nil
	case receiver.KindBool:
		return rc.Bool, nil
	case receiver.KindInt:
		return int64(rc.Int), nil
	case receiver.KindLong:
		return rc.Long, nil
	case receiver.KindOverLong:
		if rc.OverNeg {
			return "-" + formatUint64(rc.OverMag+1), nil // magnitude exceeds int64, represent as decimal text
		}
		return rc.OverMag, nil
	case receiver.KindFloat16:
		return float64(rc.Float16), nil
	case receiver.KindFloat:
		return float64(rc.Float32), nil
	case receiver.KindDouble:
		return rc.Float64, nil
	case receiver.KindSimpleValue:
		return rc.Simple, nil
	case receiver.KindNumberString:
		return string(rc.Bytes.Bytes()), nil
	case receiver.KindBytes:
		return append([]byte(nil), rc.Bytes.Bytes()...), nil
	case receiver.KindText:
		if rc.Window != nil {
			return rc.Window.String(), nil
		}
		return string(rc.Bytes.Bytes()), nil
	case receiver.KindTag:
		return decodeAny(rd)
	case receiver.KindArrayHeader:
		n := int(rc.Header)
		out := make([]any, n)
		for i := 0; i < n; i++ {
			v, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case receiver.KindArrayStart:
		var out []any
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}
			v, err := decodeAlreadyReadAny(rd)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	case receiver.KindMapHeader:
		n := int(rc.Header)
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			k, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			v, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			out[mapKeyString(k)] = v
		}
		return out, nil
	case receiver.KindMapStart:
		out := make(map[string]any)
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}
			k, err := decodeAlreadyReadAny(rd)
			if err != nil {
				return nil, err
			}
			v, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			out[mapKeyString(k)] = v
		}
	case receiver.KindEndOfInput:
		return nil, errs.InvalidInputData(0, "empty input")
	default:
		return nil, errs.Unsupported(0, "borercat: cannot convert data item of kind "+kind.String())
	}
}

func decodeAlreadyReadAny(rd *reader.Reader) (any, error) {
	rc := rd.Receptacle()
	switch rc.Kind {
	case receiver.KindArrayHeader, receiver.KindMapHeader, receiver.KindArrayStart, receiver.KindMapStart, receiver.KindTag:
		return decodeContainerAlreadyOpen(rd)
	default:
		return decodeScalarFromReceptacle(rc)
	}
}

func decodeScalarFromReceptacle(rc *reader.Receptacle) (any, error) {
	switch rc.Kind {
	case receiver.KindNull, receiver.KindUndefined:
		return nil, nil
	case receiver.KindBool:
		return rc.Bool, nil
	case receiver.KindInt:
		return int64(rc.Int), nil
	case receiver.KindLong:
		return rc.Long, nil
	case receiver.KindFloat16:
		return float64(rc.Float16), nil
	case receiver.KindFloat:
		return float64(rc.Float32), nil
	case receiver.KindDouble:
		return rc.Float64, nil
	case receiver.KindNumberString:
		return string(rc.Bytes.Bytes()), nil
	case receiver.KindBytes:
		return append([]byte(nil), rc.Bytes.Bytes()...), nil
	case receiver.KindText:
		if rc.Window != nil {
			return rc.Window.String(), nil
		}
		return string(rc.Bytes.Bytes()), nil
	default:
		return nil, errs.Unsupported(0, "borercat: cannot convert data item of kind "+rc.Kind.String())
	}
}

// decodeContainerAlreadyOpen handles a container header/start that is
// already sitting in the Receptacle (the TryReadBreak-false branch),
// recursing the same way decodeAny does for a freshly read header.
func decodeContainerAlreadyOpen(rd *reader.Reader) (any, error) {
	rc := rd.Receptacle()
	switch rc.Kind {
	case receiver.KindTag:
		return decodeAny(rd)
	case receiver.KindArrayHeader:
		n := int(rc.Header)
		out := make([]any, n)
		for i := 0; i < n; i++ {
			v, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case receiver.KindMapHeader:
		n := int(rc.Header)
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			k, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			v, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			out[mapKeyString(k)] = v
		}
		return out, nil
	case receiver.KindArrayStart:
		var out []any
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}
			v, err := decodeAlreadyReadAny(rd)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	case receiver.KindMapStart:
		out := make(map[string]any)
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return nil, err
			}
			if done {
				return out, nil
			}
			k, err := decodeAlreadyReadAny(rd)
			if err != nil {
				return nil, err
			}
			v, err := decodeAny(rd)
			if err != nil {
				return nil, err
			}
			out[mapKeyString(k)] = v
		}
	default:
		return nil, errs.Unsupported(0, "borercat: cannot convert data item of kind "+rc.Kind.String())
	}
}

// mapKeyString stringifies a decoded CBOR map key for use as a Go map key,
// since JSON and YAML both require string keys. Non-string/int keys
// (bools, nested containers) fall back to an empty string.
func mapKeyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return ""
	}
}

func formatUint64(v uint64) string { return strconv.FormatUint(v, 10) }
