// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package writer_test

import (
	"testing"

	"github.com/borerio/borer/receiver"
	"github.com/borerio/borer/writer"
)

// recordingReceiver records the name of every callback in the order it
// fired, along with the latest argument worth asserting on, so tests can check that a
// Writer method translates to exactly the right Receiver callback.
type recordingReceiver struct {
	calls []string
	arg   uint64
	text  string
	bytes []byte
}

func (r *recordingReceiver) OnNull() error      { r.calls = append(r.calls, "Null"); return nil }
func (r *recordingReceiver) OnUndefined() error { r.calls = append(r.calls, "Undefined"); return nil }
func (r *recordingReceiver) OnBreak() error     { r.calls = append(r.calls, "Break"); return nil }
func (r *recordingReceiver) OnEndOfInput() error { r.calls = append(r.calls, "EndOfInput"); return nil }
func (r *recordingReceiver) OnBool(v bool) error {
	if v {
		r.calls = append(r.calls, "Bool(true)")
	} else {
		r.calls = append(r.calls, "Bool(false)")
	}
	return nil
}
func (r *recordingReceiver) OnInt(v int32) error { r.calls = append(r.calls, "Int"); return nil }
func (r *recordingReceiver) OnLong(v int64) error {
	r.calls = append(r.calls, "Long")
	r.arg = uint64(v)
	return nil
}
func (r *recordingReceiver) OnOverLong(negative bool, magnitude uint64) error {
	r.calls = append(r.calls, "OverLong")
	return nil
}
func (r *recordingReceiver) OnFloat16(v float32) error {
	r.calls = append(r.calls, "Float16")
	return nil
}
func (r *recordingReceiver) OnFloat(v float32) error { r.calls = append(r.calls, "Float"); return nil }
func (r *recordingReceiver) OnDouble(v float64) error {
	r.calls = append(r.calls, "Double")
	return nil
}
func (r *recordingReceiver) OnSimpleValue(v byte) error {
	r.calls = append(r.calls, "SimpleValue")
	return nil
}
func (r *recordingReceiver) OnNumberString(s string) error {
	r.calls = append(r.calls, "NumberString")
	return nil
}
func (r *recordingReceiver) OnBytes(b receiver.ByteAccessor) error {
	r.calls = append(r.calls, "Bytes")
	r.bytes = b.Bytes()
	return nil
}
func (r *recordingReceiver) OnBytesStart() error { r.calls = append(r.calls, "BytesStart"); return nil }
func (r *recordingReceiver) OnText(b receiver.ByteAccessor) error {
	r.calls = append(r.calls, "Text")
	r.text = string(b.Bytes())
	return nil
}
func (r *recordingReceiver) OnTextStart() error { r.calls = append(r.calls, "TextStart"); return nil }
func (r *recordingReceiver) OnTextWindow(array []byte, start, length int, isUTF8 bool) error {
	r.calls = append(r.calls, "TextWindow")
	return nil
}
func (r *recordingReceiver) OnArrayHeader(n uint64) error {
	r.calls = append(r.calls, "ArrayHeader")
	r.arg = n
	return nil
}
func (r *recordingReceiver) OnArrayStart() error { r.calls = append(r.calls, "ArrayStart"); return nil }
func (r *recordingReceiver) OnMapHeader(n uint64) error {
	r.calls = append(r.calls, "MapHeader")
	r.arg = n
	return nil
}
func (r *recordingReceiver) OnMapStart() error { r.calls = append(r.calls, "MapStart"); return nil }
func (r *recordingReceiver) OnTag(num uint64) error {
	r.calls = append(r.calls, "Tag")
	r.arg = num
	return nil
}

func TestWriteScalarsTranslateToMatchingCallbacks(t *testing.T) {
	rec := &recordingReceiver{}
	w := writer.New(rec)

	if err := w.WriteNull(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBool(true); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteInt(42); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString("hi"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBytes([]byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFloat32(1.5); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFloat64(2.5); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteTag(55799); err != nil {
		t.Fatal(err)
	}

	want := []string{"Null", "Bool(true)", "Long", "Text", "Bytes", "Float", "Double", "Tag"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i, c := range want {
		if rec.calls[i] != c {
			t.Errorf("call %d = %s, want %s", i, rec.calls[i], c)
		}
	}
	if rec.text != "hi" {
		t.Errorf("text = %q, want %q", rec.text, "hi")
	}
}

func TestWriteArrayOpenDefiniteLength(t *testing.T) {
	rec := &recordingReceiver{}
	w := writer.New(rec)
	if err := w.WriteArrayOpen(3); err != nil {
		t.Fatal(err)
	}
	if rec.calls[0] != "ArrayHeader" || rec.arg != 3 {
		t.Errorf("calls = %v, arg = %d, want ArrayHeader/3", rec.calls, rec.arg)
	}
}

func TestWriteArrayOpenIndefiniteLengthOnNegativeCount(t *testing.T) {
	rec := &recordingReceiver{}
	w := writer.New(rec)
	if err := w.WriteArrayOpen(-1); err != nil {
		t.Fatal(err)
	}
	if rec.calls[0] != "ArrayStart" {
		t.Errorf("calls = %v, want ArrayStart", rec.calls)
	}
	if err := w.WriteArrayClose(); err != nil {
		t.Fatal(err)
	}
	if rec.calls[1] != "Break" {
		t.Errorf("calls = %v, want Break after ArrayStart", rec.calls)
	}
}

func TestWriteArrayOpenPrefersIndefiniteLengthWhenConfigured(t *testing.T) {
	rec := &recordingReceiver{}
	w := writer.NewWithOptions(rec, writer.EncodeOptions{PreferIndefiniteLength: true})
	if err := w.WriteArrayOpen(3); err != nil {
		t.Fatal(err)
	}
	if rec.calls[0] != "ArrayStart" {
		t.Errorf("calls = %v, want ArrayStart even with a known count", rec.calls)
	}
}

func TestWriteMapOpenDefiniteLengthCountsPairs(t *testing.T) {
	rec := &recordingReceiver{}
	w := writer.New(rec)
	if err := w.WriteMapOpen(2); err != nil {
		t.Fatal(err)
	}
	if rec.calls[0] != "MapHeader" || rec.arg != 2 {
		t.Errorf("calls = %v, arg = %d, want MapHeader/2", rec.calls, rec.arg)
	}
	if err := w.WriteMapClose(); err != nil {
		t.Fatal(err)
	}
}
