// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

// Package writer provides the typed production façade over a format
// Renderer: a Writer exposes per-shape methods (WriteInt, WriteString,
// WriteArrayOpen, and so on) that translate directly into the matching
// receiver.Receiver callback on the underlying Renderer.
package writer

import "github.com/borerio/borer/receiver"

// Renderer is the subset of cbor.Renderer/json.Renderer a Writer needs.
type Renderer interface {
	receiver.Receiver
}

// EncodeOptions configures a Writer's output shape.
type EncodeOptions struct {
	// PreferIndefiniteLength makes WriteArrayOpen/WriteMapOpen emit an
	// indefinite-length Start even when the caller supplies a count. A
	// negative count produces a Start whether or not this is set.
	PreferIndefiniteLength bool
}

// DefaultEncodeOptions uses definite-length containers wherever the
// caller supplies a count.
var DefaultEncodeOptions = EncodeOptions{}

// Writer wraps a Renderer and EncodeOptions.
type Writer struct {
	r    Renderer
	opts EncodeOptions
}

// New returns a Writer driving r.
func New(r Renderer) *Writer { return NewWithOptions(r, DefaultEncodeOptions) }

// NewWithOptions returns a Writer with custom EncodeOptions.
func NewWithOptions(r Renderer, opts EncodeOptions) *Writer { return &Writer{r: r, opts: opts} }

func (w *Writer) WriteNull() error      { return w.r.OnNull() }
func (w *Writer) WriteUndefined() error { return w.r.OnUndefined() }
func (w *Writer) WriteBool(v bool) error { return w.r.OnBool(v) }
func (w *Writer) WriteInt(v int64) error { return w.r.OnLong(v) }
func (w *Writer) WriteString(s string) error {
	return w.r.OnText(receiver.OwnedBytes{Data: []byte(s), UTF8: true})
}
func (w *Writer) WriteBytes(b []byte) error {
	return w.r.OnBytes(receiver.OwnedBytes{Data: b})
}
func (w *Writer) WriteFloat32(v float32) error { return w.r.OnFloat(v) }
func (w *Writer) WriteFloat64(v float64) error { return w.r.OnDouble(v) }
func (w *Writer) WriteTag(num uint64) error    { return w.r.OnTag(num) }

// WriteArrayOpen emits a definite-length array header for n elements, or
// (when n < 0, or PreferIndefiniteLength is set) an indefinite-length
// Start; callers must match with WriteArrayClose only in the
// indefinite-length case.
func (w *Writer) WriteArrayOpen(n int) error {
	if n < 0 || w.opts.PreferIndefiniteLength {
		return w.r.OnArrayStart()
	}
	return w.r.OnArrayHeader(uint64(n))
}

// WriteArrayClose emits the Break terminating an indefinite-length array.
func (w *Writer) WriteArrayClose() error { return w.r.OnBreak() }

// WriteMapOpen is WriteArrayOpen's map counterpart; n is the number of
// key/value pairs, not the raw entry count.
func (w *Writer) WriteMapOpen(n int) error {
	if n < 0 || w.opts.PreferIndefiniteLength {
		return w.r.OnMapStart()
	}
	return w.r.OnMapHeader(uint64(n))
}

// WriteMapClose is WriteArrayClose's map counterpart.
func (w *Writer) WriteMapClose() error { return w.r.OnBreak() }
