// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package reader

import "github.com/borerio/borer/receiver"

// The methods below implement receiver.Receiver on *Receptacle: each
// simply records its payload into the matching field and sets Kind. A
// Reader drives these directly via Parser.ReadNextDataItem instead of a
// bespoke Receiver per call site.

func (r *Receptacle) OnNull() error      { r.Kind = receiver.KindNull; return nil }
func (r *Receptacle) OnUndefined() error { r.Kind = receiver.KindUndefined; return nil }
func (r *Receptacle) OnBreak() error     { r.Kind = receiver.KindBreak; return nil }
func (r *Receptacle) OnEndOfInput() error { r.Kind = receiver.KindEndOfInput; return nil }

func (r *Receptacle) OnBool(v bool) error { r.Kind, r.Bool = receiver.KindBool, v; return nil }
func (r *Receptacle) OnInt(v int32) error { r.Kind, r.Int = receiver.KindInt, v; return nil }
func (r *Receptacle) OnLong(v int64) error { r.Kind, r.Long = receiver.KindLong, v; return nil }
func (r *Receptacle) OnOverLong(negative bool, magnitude uint64) error {
	r.Kind, r.OverNeg, r.OverMag = receiver.KindOverLong, negative, magnitude
	return nil
}
func (r *Receptacle) OnFloat16(v float32) error {
	r.Kind, r.Float16 = receiver.KindFloat16, v
	return nil
}
func (r *Receptacle) OnFloat(v float32) error { r.Kind, r.Float32 = receiver.KindFloat, v; return nil }
func (r *Receptacle) OnDouble(v float64) error {
	r.Kind, r.Float64 = receiver.KindDouble, v
	return nil
}
func (r *Receptacle) OnSimpleValue(v byte) error {
	r.Kind, r.Simple = receiver.KindSimpleValue, v
	return nil
}
func (r *Receptacle) OnNumberString(s string) error {
	r.Kind = receiver.KindNumberString
	r.Window = nil
	r.Bytes = receiver.OwnedBytes{Data: []byte(s), UTF8: true}
	return nil
}
func (r *Receptacle) OnBytes(b receiver.ByteAccessor) error {
	r.Kind, r.Bytes, r.Window = receiver.KindBytes, b, nil
	return nil
}
func (r *Receptacle) OnBytesStart() error { r.Kind = receiver.KindBytesStart; return nil }
func (r *Receptacle) OnText(b receiver.ByteAccessor) error {
	r.Kind, r.Bytes, r.Window = receiver.KindText, b, nil
	return nil
}
func (r *Receptacle) OnTextStart() error { r.Kind = receiver.KindTextStart; return nil }
func (r *Receptacle) OnTextWindow(array []byte, start, length int, isUTF8 bool) error {
	r.Kind, r.Bytes = receiver.KindText, nil
	r.Window = &TextWindow{Array: array, Start: start, Length: length, UTF8: isUTF8}
	return nil
}
func (r *Receptacle) OnArrayHeader(n uint64) error {
	r.Kind, r.Header = receiver.KindArrayHeader, n
	return nil
}
func (r *Receptacle) OnArrayStart() error { r.Kind = receiver.KindArrayStart; return nil }
func (r *Receptacle) OnMapHeader(n uint64) error {
	r.Kind, r.Header = receiver.KindMapHeader, n
	return nil
}
func (r *Receptacle) OnMapStart() error      { r.Kind = receiver.KindMapStart; return nil }
func (r *Receptacle) OnTag(num uint64) error { r.Kind, r.Tag = receiver.KindTag, num; return nil }
