// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package cbor

import "github.com/borerio/borer/receiver"

// discardReceiver implements receiver.Receiver by dropping every payload,
// recording only the most recent header length so a caller walking the
// item tree (ShiftArray, a future "skip value" reader helper) knows how
// many children to recurse into.
type discardReceiver struct {
	lastHeader uint64
}

func (d *discardReceiver) OnNull() error      { return nil }
func (d *discardReceiver) OnUndefined() error { return nil }
func (d *discardReceiver) OnBreak() error     { return nil }
func (d *discardReceiver) OnEndOfInput() error { return nil }
func (d *discardReceiver) OnBool(bool) error  { return nil }
func (d *discardReceiver) OnInt(int32) error  { return nil }
func (d *discardReceiver) OnLong(int64) error { return nil }
func (d *discardReceiver) OnOverLong(bool, uint64) error { return nil }
func (d *discardReceiver) OnFloat16(float32) error { return nil }
func (d *discardReceiver) OnFloat(float32) error   { return nil }
func (d *discardReceiver) OnDouble(float64) error  { return nil }
func (d *discardReceiver) OnSimpleValue(byte) error { return nil }
func (d *discardReceiver) OnNumberString(string) error { return nil }
func (d *discardReceiver) OnBytes(receiver.ByteAccessor) error { return nil }
func (d *discardReceiver) OnBytesStart() error { return nil }
func (d *discardReceiver) OnText(receiver.ByteAccessor) error { return nil }
func (d *discardReceiver) OnTextStart() error { return nil }
func (d *discardReceiver) OnTextWindow([]byte, int, int, bool) error { return nil }
func (d *discardReceiver) OnArrayHeader(n uint64) error { d.lastHeader = n; return nil }
func (d *discardReceiver) OnArrayStart() error          { return nil }
func (d *discardReceiver) OnMapHeader(n uint64) error   { d.lastHeader = n; return nil }
func (d *discardReceiver) OnMapStart() error            { return nil }
func (d *discardReceiver) OnTag(uint64) error           { return nil }
