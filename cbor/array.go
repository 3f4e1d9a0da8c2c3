// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor

import (
	"github.com/borerio/borer/input"
	"github.com/borerio/borer/output"
	"github.com/borerio/borer/receiver"
)

// ShiftArray returns the first element of a definite-length CBOR array (not
// text or byte strings) as unparsed CBOR, and the rest as a CBOR-encoded
// array of one fewer elements. Trailing data after the array is preserved.
//
// If data does not begin with a definite-length array header, or the array
// is empty, first is nil and remaining equals data. Empty data (a nil or
// zero-length slice) panics.
func ShiftArray(data []byte) (first, remaining []byte) {
	if len(data) == 0 {
		panic("cbor: ShiftArray called with empty data")
	}

	in := input.NewByteSliceInput(data)
	p := NewParser(in)

	var header arrayHeaderSink
	kind, err := p.ReadNextDataItem(&header)
	if err != nil || kind != receiver.KindArrayHeader || header.length == 0 {
		return nil, data
	}

	itemStart := in.Cursor()
	if err := skipDataItem(p); err != nil {
		return nil, data
	}
	itemEnd := in.Cursor()

	out := output.NewChunkedOutput()
	r := NewRenderer[[]byte](out)
	_ = r.OnArrayHeader(header.length - 1)
	remainingHead, _ := r.Result()

	first = append([]byte(nil), data[itemStart:itemEnd]...)
	remaining = append(remainingHead, data[itemEnd:]...)
	return first, remaining
}

// arrayHeaderSink records a single OnArrayHeader callback and rejects
// everything else by leaving length at 0 / the returned Kind mismatched.
type arrayHeaderSink struct {
	discardReceiver
	length uint64
}

func (s *arrayHeaderSink) OnArrayHeader(n uint64) error { s.length = n; return nil }

// skipDataItem advances p's input past exactly one complete data item,
// recursing into definite- and indefinite-length containers.
func skipDataItem(p *Parser) error {
	var d discardReceiver
	kind, err := p.ReadNextDataItem(&d)
	if err != nil {
		return err
	}
	switch kind {
	case receiver.KindArrayHeader:
		for i := uint64(0); i < d.lastHeader; i++ {
			if err := skipDataItem(p); err != nil {
				return err
			}
		}
	case receiver.KindMapHeader:
		for i := uint64(0); i < 2*d.lastHeader; i++ {
			if err := skipDataItem(p); err != nil {
				return err
			}
		}
	case receiver.KindArrayStart, receiver.KindMapStart:
		for {
			k, err := p.ReadNextDataItem(&d)
			if err != nil {
				return err
			}
			if k == receiver.KindBreak {
				break
			}
			// d already consumed the item's direct callback; recurse only if
			// it opened a further container.
			if err := skipIfContainerOpener(p, k, &d); err != nil {
				return err
			}
		}
	case receiver.KindBytesStart, receiver.KindTextStart:
		for {
			k, err := p.ReadNextDataItem(&d)
			if err != nil {
				return err
			}
			if k == receiver.KindBreak {
				break
			}
		}
	case receiver.KindTag:
		return skipDataItem(p)
	}
	return nil
}

func skipIfContainerOpener(p *Parser, k receiver.Kind, d *discardReceiver) error {
	switch k {
	case receiver.KindArrayHeader:
		for i := uint64(0); i < d.lastHeader; i++ {
			if err := skipDataItem(p); err != nil {
				return err
			}
		}
	case receiver.KindMapHeader:
		for i := uint64(0); i < 2*d.lastHeader; i++ {
			if err := skipDataItem(p); err != nil {
				return err
			}
		}
	case receiver.KindArrayStart, receiver.KindMapStart, receiver.KindBytesStart, receiver.KindTextStart, receiver.KindTag:
		return skipFromOpener(p, k, d)
	}
	return nil
}

// skipFromOpener handles the nested-container cases reached via
// skipIfContainerOpener, mirroring skipDataItem's own container handling
// without re-reading the already-consumed opener callback.
func skipFromOpener(p *Parser, k receiver.Kind, d *discardReceiver) error {
	switch k {
	case receiver.KindTag:
		return skipDataItem(p)
	case receiver.KindArrayStart, receiver.KindMapStart, receiver.KindBytesStart, receiver.KindTextStart:
		for {
			nk, err := p.ReadNextDataItem(d)
			if err != nil {
				return err
			}
			if nk == receiver.KindBreak {
				return nil
			}
			if err := skipIfContainerOpener(p, nk, d); err != nil {
				return err
			}
		}
	}
	return nil
}
