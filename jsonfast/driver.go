// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

//go:build jsonfast

// Package jsonfast swaps the hand-rolled json.Parser for one backed by
// github.com/goccy/go-json's token decoder, for callers who have
// measured the default recursive-descent parser as their bottleneck and
// can accept the jsonfast build tag. It implements the same
// ReadNextDataItem(receiver.Receiver) contract as json.Parser, so a
// Reader built against one works unmodified against the other.
package jsonfast

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/receiver"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// Parser reads JSON text one token at a time from go-json's Decoder and
// translates each token into the matching Receiver callback, tracking
// object/array nesting the same way the Decoder's own Token stream does
// (go-json flattens structure into a flat token sequence, so the
// object/array-key bookkeeping below reconstructs what the hand-rolled
// json.Parser gets for free from its own recursive descent).
type Parser struct {
	dec   *j.Decoder
	stack []frame
}

// NewParser returns a Parser reading from buf.
func NewParser(buf []byte) *Parser { return NewParserFromReader(bytes.NewReader(buf)) }

// NewParserFromReader returns a Parser reading from r.
func NewParserFromReader(r io.Reader) *Parser {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &Parser{dec: dec}
}

func (p *Parser) topExpectingKey() bool {
	if len(p.stack) == 0 {
		return false
	}
	top := &p.stack[len(p.stack)-1]
	return top.kind == kindObject && top.expectingKey
}

func (p *Parser) markValueEmitted() {
	if len(p.stack) == 0 {
		return
	}
	top := &p.stack[len(p.stack)-1]
	if top.kind == kindObject && !top.expectingKey {
		top.expectingKey = true
	}
}

// ReadNextDataItem decodes go-json's next token and drives the matching
// Receiver callback.
func (p *Parser) ReadNextDataItem(recv receiver.Receiver) (receiver.Kind, error) { //nolint:gocyclo
	tok, err := p.dec.Token()
	if err != nil {
		if err == io.EOF {
			if cbErr := recv.OnEndOfInput(); cbErr != nil {
				return 0, cbErr
			}
			return receiver.KindEndOfInput, nil
		}
		return 0, errs.InvalidInputData(0, "go-json token decode failed: "+err.Error())
	}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			p.stack = append(p.stack, frame{kind: kindObject, expectingKey: true})
			if err := recv.OnMapStart(); err != nil {
				return 0, err
			}
			return receiver.KindMapStart, nil
		case '}':
			if n := len(p.stack); n > 0 {
				p.stack = p.stack[:n-1]
			}
			p.markValueEmitted()
			if err := recv.OnBreak(); err != nil {
				return 0, err
			}
			return receiver.KindBreak, nil
		case '[':
			p.stack = append(p.stack, frame{kind: kindArray})
			if err := recv.OnArrayStart(); err != nil {
				return 0, err
			}
			return receiver.KindArrayStart, nil
		case ']':
			if n := len(p.stack); n > 0 {
				p.stack = p.stack[:n-1]
			}
			p.markValueEmitted()
			if err := recv.OnBreak(); err != nil {
				return 0, err
			}
			return receiver.KindBreak, nil
		}
		return 0, errs.InvalidInputData(0, "unexpected JSON delimiter")
	case string:
		wasKey := p.topExpectingKey()
		if wasKey {
			p.stack[len(p.stack)-1].expectingKey = false
		} else {
			p.markValueEmitted()
		}
		if err := recv.OnText(receiver.OwnedBytes{Data: []byte(v), UTF8: true}); err != nil {
			return 0, err
		}
		return receiver.KindText, nil
	case bool:
		p.markValueEmitted()
		if err := recv.OnBool(v); err != nil {
			return 0, err
		}
		return receiver.KindBool, nil
	case j.Number:
		p.markValueEmitted()
		if err := recv.OnNumberString(string(v)); err != nil {
			return 0, err
		}
		return receiver.KindNumberString, nil
	case nil:
		p.markValueEmitted()
		if err := recv.OnNull(); err != nil {
			return 0, err
		}
		return receiver.KindNull, nil
	default:
		return 0, errs.Unsupported(0, "unrecognized go-json token type")
	}
}
