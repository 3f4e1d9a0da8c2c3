// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/borerio/borer/errs"
	"github.com/borerio/borer/reader"
	"github.com/borerio/borer/receiver"
)

// Marshaler lets a type take over its own encoding, bypassing reflection
// entirely. It is checked first, exactly as the teacher's Encoder.Encode
// checks its Marshaler interface before falling through to reflection.
type Marshaler interface {
	MarshalBorer(recv receiver.Receiver) error
}

// Unmarshaler is Marshaler's decode counterpart.
type Unmarshaler interface {
	UnmarshalBorer(rd *reader.Reader) error
}

// FlatMarshaler lets a field contribute more than one sibling data item to
// its enclosing product type's representation (the `flatN` struct tag
// option declares how many), instead of exactly one.
type FlatMarshaler interface {
	MarshalBorerFlat(recv receiver.Receiver) error
}

// FlatUnmarshaler is FlatMarshaler's decode counterpart.
type FlatUnmarshaler interface {
	UnmarshalBorerFlat(rd *reader.Reader) error
}

// weightedField is one exported struct field plus the book-keeping needed
// to place it in encoding order and decide whether it may be omitted.
type weightedField struct {
	index     []int
	weight    int
	order     int
	omitempty bool
	keyName   string
	keyNum    int64
	hasKeyNum bool
	flat      int // >1 for a FlatMarshaler/FlatUnmarshaler field producing N items
}

// fieldOrder walks t's exported fields (recursing into embedded structs,
// so an embedded type's fields flatten into the parent's representation)
// and returns them sorted by their `cbor:"N"` tag weight, breaking ties by
// declaration order within each embedding level. This is the same
// algorithm the teacher's cbor.fieldOrder/collectFieldWeights pair
// implement, generalized to also record a map-representation key name and
// a flat-repeat count.
func fieldOrder(t reflect.Type) []weightedField {
	var fields []weightedField
	collectFieldWeights(nil, t, &fields)
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].weight != fields[j].weight {
			return fields[i].weight < fields[j].weight
		}
		return fields[i].order < fields[j].order
	})
	return fields
}

func collectFieldWeights(parents []int, t reflect.Type, fields *[]weightedField) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // unexported
		}
		tag := sf.Tag.Get("cbor")
		if tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		weight := 0
		omitempty := false
		flat := 0
		if parts[0] != "" {
			if w, err := strconv.Atoi(parts[0]); err == nil {
				weight = w
			}
		}
		for _, opt := range parts[1:] {
			switch {
			case opt == "omitempty":
				omitempty = true
			case strings.HasPrefix(opt, "flat"):
				if n, err := strconv.Atoi(strings.TrimPrefix(opt, "flat")); err == nil && n > 1 {
					flat = n
				}
			}
		}

		index := append(append([]int{}, parents...), i)

		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if sf.Anonymous && ft.Kind() == reflect.Struct && tag == "" {
			collectFieldWeights(index, ft, fields)
			continue
		}

		keyName := sf.Tag.Get("key")
		keyNum, hasKeyNum := int64(0), false
		if keyName != "" {
			if n, err := strconv.ParseInt(keyName, 10, 64); err == nil {
				keyNum, hasKeyNum = n, true
			}
		} else {
			keyName = sf.Name
		}

		*fields = append(*fields, weightedField{
			index:     index,
			weight:    weight,
			order:     len(*fields),
			omitempty: omitempty,
			keyName:   keyName,
			keyNum:    keyNum,
			hasKeyNum: hasKeyNum,
			flat:      flat,
		})
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

// wantsMapRepresentation reports whether t carries the struct-level
// `cbor:",map"` marker (conventionally on a blank `_` field) in addition
// to whatever the caller's EncodeOptions/DecodeOptions request globally.
func wantsMapRepresentation(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name != "_" {
			continue
		}
		tag := sf.Tag.Get("cbor")
		parts := strings.Split(tag, ",")
		for _, opt := range parts[1:] {
			if opt == "map" {
				return true
			}
		}
	}
	return false
}

func fieldValue(v reflect.Value, index []int) (reflect.Value, bool) {
	for _, i := range index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, true
}

// --- encoding ---------------------------------------------------------

// EncodeOptions configures struct/interface derivation.
type EncodeOptions struct {
	MapRepresentation bool
}

// EncodeOption mutates an EncodeOptions.
type EncodeOption func(*EncodeOptions)

// WithMapRepresentation makes every struct type (that doesn't carry its
// own `cbor:",map"` marker overriding the choice) encode as a map keyed by
// field name instead of the default array representation.
func WithMapRepresentation() EncodeOption {
	return func(o *EncodeOptions) { o.MapRepresentation = true }
}

// Encoder derives a Receiver-driven encoding of Go values via reflection.
type Encoder struct {
	recv receiver.Receiver
	opts EncodeOptions
}

// NewEncoder returns an Encoder driving recv.
func NewEncoder(recv receiver.Receiver, opts ...EncodeOption) *Encoder {
	e := &Encoder{recv: recv}
	for _, opt := range opts {
		opt(&e.opts)
	}
	return e
}

// Encode derives v's data-item representation and drives it into the
// Encoder's Receiver.
func (e *Encoder) Encode(v any) error {
	return encodeValue(e.recv, reflect.ValueOf(v), e.opts)
}

func encodeValue(recv receiver.Receiver, v reflect.Value, opts EncodeOptions) error { //nolint:gocyclo
	if !v.IsValid() {
		return recv.OnNull()
	}

	if v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return callMarshaler(m, recv)
		}
		if tv, ok := v.Interface().(TagData); ok {
			if err := recv.OnTag(tv.Number()); err != nil {
				return err
			}
			return encodeValue(recv, reflect.ValueOf(tv.Value()), opts)
		}
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return recv.OnNull()
		}
		v = v.Elem()
		if v.CanInterface() {
			if m, ok := v.Interface().(Marshaler); ok {
				return callMarshaler(m, recv)
			}
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return recv.OnBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return recv.OnLong(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n <= 1<<63-1 {
			return recv.OnLong(int64(n))
		}
		return recv.OnOverLong(false, n)
	case reflect.Float32:
		return recv.OnFloat(float32(v.Float()))
	case reflect.Float64:
		return recv.OnDouble(v.Float())
	case reflect.String:
		return recv.OnText(receiver.OwnedBytes{Data: []byte(v.String()), UTF8: true})
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return recv.OnBytes(receiver.OwnedBytes{Data: toByteSlice(v)})
		}
		n := v.Len()
		if err := recv.OnArrayHeader(uint64(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := encodeValue(recv, v.Index(i), opts); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		keys := v.MapKeys()
		if err := recv.OnMapHeader(uint64(len(keys))); err != nil {
			return err
		}
		for _, k := range keys {
			if err := encodeValue(recv, k, opts); err != nil {
				return err
			}
			if err := encodeValue(recv, v.MapIndex(k), opts); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		return encodeStruct(recv, v, opts)
	case reflect.Invalid:
		return recv.OnNull()
	default:
		return errs.Unsupported(0, fmt.Sprintf("borer: unsupported type %s", v.Type()))
	}
}

func toByteSlice(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}
	b := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(b), v)
	return b
}

func encodeStruct(recv receiver.Receiver, v reflect.Value, opts EncodeOptions) error {
	t := v.Type()
	fields := fieldOrder(t)

	asMap := opts.MapRepresentation
	if wantsMapRepresentation(t) {
		asMap = true
	}

	kept := make([]weightedField, 0, len(fields))
	for _, f := range fields {
		fv, ok := fieldValue(v, f.index)
		if !ok {
			continue
		}
		if f.omitempty && isEmptyValue(fv) {
			continue
		}
		kept = append(kept, f)
	}

	if asMap {
		if err := recv.OnMapHeader(uint64(len(kept))); err != nil {
			return err
		}
		for _, f := range kept {
			fv, _ := fieldValue(v, f.index)
			if f.hasKeyNum {
				if err := recv.OnLong(f.keyNum); err != nil {
					return err
				}
			} else if err := recv.OnText(receiver.OwnedBytes{Data: []byte(f.keyName), UTF8: true}); err != nil {
				return err
			}
			if err := encodeField(recv, fv, f, opts); err != nil {
				return err
			}
		}
		return nil
	}

	if err := recv.OnArrayHeader(uint64(len(kept))); err != nil {
		return err
	}
	for _, f := range kept {
		fv, _ := fieldValue(v, f.index)
		if err := encodeField(recv, fv, f, opts); err != nil {
			return err
		}
	}
	return nil
}

func encodeField(recv receiver.Receiver, fv reflect.Value, f weightedField, opts EncodeOptions) error {
	if f.flat > 1 && fv.CanInterface() {
		if fm, ok := fv.Interface().(FlatMarshaler); ok {
			return callFlatMarshaler(fm, recv)
		}
	}
	return encodeValue(recv, fv, opts)
}

// callMarshaler, callUnmarshaler, callFlatMarshaler, and callFlatUnmarshaler
// invoke a user-supplied codec hook with a recover guard, converting any
// panic into an errs.General error instead of letting it unwind past this
// package as a raw Go panic.
func callMarshaler(m Marshaler, recv receiver.Receiver) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.General(0, panicCause(r))
		}
	}()
	return m.MarshalBorer(recv)
}

func callFlatMarshaler(m FlatMarshaler, recv receiver.Receiver) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.General(0, panicCause(r))
		}
	}()
	return m.MarshalBorerFlat(recv)
}

func callUnmarshaler(u Unmarshaler, rd *reader.Reader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.General(0, panicCause(r))
		}
	}()
	return u.UnmarshalBorer(rd)
}

func callFlatUnmarshaler(u FlatUnmarshaler, rd *reader.Reader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.General(0, panicCause(r))
		}
	}()
	return u.UnmarshalBorerFlat(rd)
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// --- decoding -----------------------------------------------------------

// DecodeOptions configures struct/interface derivation for decoding.
type DecodeOptions struct {
	MapRepresentation bool
}

// DecodeOption mutates a DecodeOptions.
type DecodeOption func(*DecodeOptions)

// WithMapDecodeRepresentation is WithMapRepresentation's decode-side
// counterpart.
func WithMapDecodeRepresentation() DecodeOption {
	return func(o *DecodeOptions) { o.MapRepresentation = true }
}

// Decoder derives Go values from a Reader's data-item stream via
// reflection, the inverse of Encoder.
type Decoder struct {
	rd   *reader.Reader
	opts DecodeOptions
}

// NewDecoder returns a Decoder pulling from rd.
func NewDecoder(rd *reader.Reader, opts ...DecodeOption) *Decoder {
	d := &Decoder{rd: rd}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// Decode reads the next data item(s) into v, which must be a non-nil
// pointer.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errs.General(0, errors.New("borer: Decode requires a non-nil pointer"))
	}
	return decodeValue(d.rd, rv.Elem(), d.opts)
}

// unmarshalerType lets decodeValue check, via reflect.Type.Implements,
// whether a pointer type's pointee implements Unmarshaler without first
// needing an instance. A nil *T whose T implements UnmarshalBorer is left
// for T's own hook to read fresh (every UnmarshalBorer implementation in
// this module starts with its own rd.ReadNext call); only once that's
// ruled out is it safe for decodeValue to peek the next item itself to
// decide whether the pointer should stay nil.
var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

func decodeValue(rd *reader.Reader, v reflect.Value, opts DecodeOptions) error {
	if v.CanAddr() && v.Addr().CanInterface() {
		if u, ok := v.Addr().Interface().(Unmarshaler); ok {
			return callUnmarshaler(u, rd)
		}
	}
	if v.Kind() == reflect.Pointer && v.Type().Implements(unmarshalerType) {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return callUnmarshaler(v.Interface().(Unmarshaler), rd)
	}

	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	return decodeKind(rd, kind, v, opts)
}

// decodeKind decodes a data item of the given kind, already classified
// into rd's Receptacle (whether by decodeValue's own ReadNext or by a
// TryReadBreak call made while walking an indefinite-length container),
// into v. An incoming Null or Undefined leaves v at its zero value — nil
// for a pointer/slice/map, the zero scalar otherwise — which is how a
// Nullable or Option-shaped field decodes regardless of the Go type
// backing it.
func decodeKind(rd *reader.Reader, kind receiver.Kind, v reflect.Value, opts DecodeOptions) error { //nolint:gocyclo
	if kind == receiver.KindNull || kind == receiver.KindUndefined {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}

	rc := rd.Receptacle()
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return decodeKind(rd, kind, v.Elem(), opts)
	case reflect.Bool:
		if kind != receiver.KindBool {
			return errs.InvalidInputData(0, "borer: expected a boolean data item, got "+kind.String())
		}
		v.SetBool(rc.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := intFromReceptacle(rc)
		if err != nil {
			return err
		}
		v.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := intFromReceptacle(rc)
		if err != nil {
			return err
		}
		if n < 0 {
			return errs.InvalidInputData(0, "borer: negative value for unsigned field")
		}
		v.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := floatFromReceptacle(rc)
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case reflect.String:
		if kind != receiver.KindText && kind != receiver.KindNumberString {
			return errs.InvalidInputData(0, "borer: expected a text data item, got "+kind.String())
		}
		if rc.Window != nil {
			v.SetString(rc.Window.String())
		} else {
			v.SetString(string(rc.Bytes.Bytes()))
		}
		return nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			if kind != receiver.KindBytes {
				return errs.InvalidInputData(0, "borer: expected a byte string, got "+kind.String())
			}
			v.SetBytes(append([]byte(nil), rc.Bytes.Bytes()...))
			return nil
		}
		return decodeSliceKind(rd, kind, v, opts)
	case reflect.Map:
		return decodeMapKind(rd, kind, v, opts)
	case reflect.Struct:
		return decodeStructKind(rd, kind, v, opts)
	default:
		return errs.Unsupported(0, fmt.Sprintf("borer: unsupported type %s", v.Type()))
	}
}

// decodeSliceKind decodes a non-byte slice from an array data item already
// classified as kind, enforcing MaxArrayLength on a definite-length
// header the same way reader.Reader.ReadArrayOpen does.
func decodeSliceKind(rd *reader.Reader, kind receiver.Kind, v reflect.Value, opts DecodeOptions) error {
	switch kind {
	case receiver.KindArrayHeader:
		header := rd.Receptacle().Header
		if header > uint64(rd.Options().MaxArrayLength) {
			return errs.Overflow(0, "borer: array length exceeds configured maximum")
		}
		n := int(header)
		out := reflect.MakeSlice(v.Type(), n, n)
		for i := 0; i < n; i++ {
			if err := decodeValue(rd, out.Index(i), opts); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	case receiver.KindArrayStart:
		out := reflect.MakeSlice(v.Type(), 0, 0)
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return err
			}
			if done {
				break
			}
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := decodeKind(rd, rd.Receptacle().Kind, elem, opts); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
		}
		v.Set(out)
		return nil
	default:
		return errs.InvalidInputData(0, "borer: expected an array data item, got "+kind.String())
	}
}

// decodeMapKind is decodeSliceKind's map counterpart.
func decodeMapKind(rd *reader.Reader, kind receiver.Kind, v reflect.Value, opts DecodeOptions) error {
	out := reflect.MakeMap(v.Type())
	readPair := func() error {
		key := reflect.New(v.Type().Key()).Elem()
		if err := decodeValue(rd, key, opts); err != nil {
			return err
		}
		val := reflect.New(v.Type().Elem()).Elem()
		if err := decodeValue(rd, val, opts); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
		return nil
	}
	switch kind {
	case receiver.KindMapHeader:
		header := rd.Receptacle().Header
		if header > uint64(rd.Options().MaxMapLength) {
			return errs.Overflow(0, "borer: map length exceeds configured maximum")
		}
		for i := 0; i < int(header); i++ {
			if err := readPair(); err != nil {
				return err
			}
		}
	case receiver.KindMapStart:
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return err
			}
			if done {
				break
			}
			key := reflect.New(v.Type().Key()).Elem()
			if err := decodeKind(rd, rd.Receptacle().Kind, key, opts); err != nil {
				return err
			}
			val := reflect.New(v.Type().Elem()).Elem()
			if err := decodeValue(rd, val, opts); err != nil {
				return err
			}
			out.SetMapIndex(key, val)
		}
	default:
		return errs.InvalidInputData(0, "borer: expected a map data item, got "+kind.String())
	}
	v.Set(out)
	return nil
}

// intFromReceptacle reads an already-classified Receptacle item as an
// int64, covering every numeric shape a Parser can produce: CBOR's
// Int/Long/OverLong and JSON's unparsed NumberString token.
func intFromReceptacle(rc *reader.Receptacle) (int64, error) {
	switch rc.Kind {
	case receiver.KindInt:
		return int64(rc.Int), nil
	case receiver.KindLong:
		return rc.Long, nil
	case receiver.KindOverLong:
		if !rc.OverNeg && rc.OverMag <= math.MaxInt64 {
			return int64(rc.OverMag), nil
		}
		return 0, errs.Overflow(0, "borer: integer value does not fit in int64")
	case receiver.KindNumberString:
		s := string(rc.Bytes.Bytes())
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errs.InvalidInputData(0, "borer: invalid numeric literal "+s)
		}
		return int64(f), nil
	default:
		return 0, errs.InvalidInputData(0, "borer: expected an integer data item, got "+rc.Kind.String())
	}
}

// floatFromReceptacle is intFromReceptacle's floating-point counterpart.
func floatFromReceptacle(rc *reader.Receptacle) (float64, error) {
	switch rc.Kind {
	case receiver.KindFloat16:
		return float64(rc.Float16), nil
	case receiver.KindFloat:
		return float64(rc.Float32), nil
	case receiver.KindDouble:
		return rc.Float64, nil
	case receiver.KindNumberString:
		s := string(rc.Bytes.Bytes())
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errs.InvalidInputData(0, "borer: invalid numeric literal "+s)
		}
		return f, nil
	default:
		return 0, errs.InvalidInputData(0, "borer: expected a floating-point data item, got "+rc.Kind.String())
	}
}

// decodeStructKind decodes a struct from a map or array data item already
// classified as kind, matching the asMap/array representation choice
// encodeStruct makes on the encode side.
func decodeStructKind(rd *reader.Reader, kind receiver.Kind, v reflect.Value, opts DecodeOptions) error { //nolint:gocyclo
	t := v.Type()
	fields := fieldOrder(t)

	asMap := opts.MapRepresentation
	if wantsMapRepresentation(t) {
		asMap = true
	}

	if asMap {
		if kind != receiver.KindMapHeader && kind != receiver.KindMapStart {
			return errs.InvalidInputData(0, "borer: expected a map data item, got "+kind.String())
		}
		byName := make(map[string]weightedField, len(fields))
		byNum := make(map[int64]weightedField, len(fields))
		for _, f := range fields {
			byName[f.keyName] = f
			if f.hasKeyNum {
				byNum[f.keyNum] = f
			}
		}
		readEntry := func(keyKind receiver.Kind) error {
			rc := rd.Receptacle()
			var f weightedField
			var ok bool
			switch keyKind {
			case receiver.KindText:
				var name string
				if rc.Window != nil {
					name = rc.Window.String()
				} else {
					name = string(rc.Bytes.Bytes())
				}
				f, ok = byName[name]
			case receiver.KindInt:
				f, ok = byNum[int64(rc.Int)]
			case receiver.KindLong:
				f, ok = byNum[rc.Long]
			default:
				return errs.InvalidInputData(0, "borer: unexpected map key data item "+keyKind.String())
			}
			if !ok {
				// Key already consumed; the paired value still needs
				// reading and discarding to keep the stream aligned.
				return skipDataItemViaReader(rd)
			}
			fv, fieldOk := fieldValue(v, f.index)
			if !fieldOk {
				return errs.General(0, errors.New("borer: unaddressable field for map entry"))
			}
			return decodeValue(rd, fv, opts)
		}
		if kind == receiver.KindMapHeader {
			for i := 0; i < int(rd.Receptacle().Header); i++ {
				keyKind, err := rd.ReadNext()
				if err != nil {
					return err
				}
				if err := readEntry(keyKind); err != nil {
					return err
				}
			}
			return nil
		}
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			if err := readEntry(rd.Receptacle().Kind); err != nil {
				return err
			}
		}
	}

	if kind != receiver.KindArrayHeader && kind != receiver.KindArrayStart {
		return errs.InvalidInputData(0, "borer: expected an array data item, got "+kind.String())
	}
	i := 0
	decodeOne := func() error {
		if i >= len(fields) {
			return skipDataItemViaReader(rd)
		}
		f := fields[i]
		i++
		fv, ok := fieldValue(v, f.index)
		if !ok {
			return errs.General(0, errors.New("borer: unaddressable field"))
		}
		if f.flat > 1 && fv.CanAddr() && fv.Addr().CanInterface() {
			if fu, ok := fv.Addr().Interface().(FlatUnmarshaler); ok {
				return callFlatUnmarshaler(fu, rd)
			}
		}
		return decodeValue(rd, fv, opts)
	}
	if kind == receiver.KindArrayHeader {
		for j := 0; j < int(rd.Receptacle().Header); j++ {
			if err := decodeOne(); err != nil {
				return err
			}
		}
		return nil
	}
	for {
		done, err := rd.TryReadBreak()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if i >= len(fields) {
			continue
		}
		f := fields[i]
		i++
		fv, ok := fieldValue(v, f.index)
		if !ok {
			return errs.General(0, errors.New("borer: unaddressable field"))
		}
		if err := decodeKind(rd, rd.Receptacle().Kind, fv, opts); err != nil {
			return err
		}
	}
}

// skipDataItemViaReader discards one full data item (recursing through
// any container it opens) using only the Reader façade, for unknown
// struct/map fields encountered during decode.
func skipDataItemViaReader(rd *reader.Reader) error {
	kind, err := rd.ReadNext()
	if err != nil {
		return err
	}
	switch kind {
	case receiver.KindArrayHeader:
		n := int(rd.Receptacle().Header)
		for i := 0; i < n; i++ {
			if err := skipDataItemViaReader(rd); err != nil {
				return err
			}
		}
	case receiver.KindMapHeader:
		n := int(rd.Receptacle().Header) * 2
		for i := 0; i < n; i++ {
			if err := skipDataItemViaReader(rd); err != nil {
				return err
			}
		}
	case receiver.KindArrayStart, receiver.KindMapStart:
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			if err := skipAlreadyReadItem(rd); err != nil {
				return err
			}
		}
	case receiver.KindTag:
		return skipDataItemViaReader(rd)
	}
	return nil
}

// skipAlreadyReadItem handles the TryReadBreak-false branch of
// skipDataItemViaReader: the scalar is already in the Receptacle, but a
// container-valued item still needs its children skipped recursively.
func skipAlreadyReadItem(rd *reader.Reader) error {
	rc := rd.Receptacle()
	switch rc.Kind {
	case receiver.KindArrayHeader:
		n := int(rc.Header)
		for i := 0; i < n; i++ {
			if err := skipDataItemViaReader(rd); err != nil {
				return err
			}
		}
	case receiver.KindMapHeader:
		n := int(rc.Header) * 2
		for i := 0; i < n; i++ {
			if err := skipDataItemViaReader(rd); err != nil {
				return err
			}
		}
	case receiver.KindArrayStart, receiver.KindMapStart:
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			if err := skipAlreadyReadItem(rd); err != nil {
				return err
			}
		}
	case receiver.KindTag:
		return skipDataItemViaReader(rd)
	}
	return nil
}

// replayReceptacle re-emits the data item already classified as kind
// (sitting in rd's Receptacle) into recv, recursing into any container it
// opens by pulling further items from rd. Raw.UnmarshalBorer uses this to
// capture one full data item's wire bytes without interpreting them.
func replayReceptacle(rd *reader.Reader, kind receiver.Kind, recv receiver.Receiver) error { //nolint:gocyclo
	rc := rd.Receptacle()
	switch kind {
	case receiver.KindNull:
		return recv.OnNull()
	case receiver.KindUndefined:
		return recv.OnUndefined()
	case receiver.KindBool:
		return recv.OnBool(rc.Bool)
	case receiver.KindInt:
		return recv.OnInt(rc.Int)
	case receiver.KindLong:
		return recv.OnLong(rc.Long)
	case receiver.KindOverLong:
		return recv.OnOverLong(rc.OverNeg, rc.OverMag)
	case receiver.KindFloat16:
		return recv.OnFloat16(rc.Float16)
	case receiver.KindFloat:
		return recv.OnFloat(rc.Float32)
	case receiver.KindDouble:
		return recv.OnDouble(rc.Float64)
	case receiver.KindSimpleValue:
		return recv.OnSimpleValue(rc.Simple)
	case receiver.KindNumberString:
		return recv.OnNumberString(string(rc.Bytes.Bytes()))
	case receiver.KindBytes:
		return recv.OnBytes(rc.Bytes)
	case receiver.KindText:
		if rc.Window != nil {
			return recv.OnTextWindow(rc.Window.Array, rc.Window.Start, rc.Window.Length, rc.Window.UTF8)
		}
		return recv.OnText(rc.Bytes)
	case receiver.KindTag:
		if err := recv.OnTag(rc.Tag); err != nil {
			return err
		}
		next, err := rd.ReadNext()
		if err != nil {
			return err
		}
		return replayReceptacle(rd, next, recv)
	case receiver.KindArrayHeader:
		n := int(rc.Header)
		if err := recv.OnArrayHeader(rc.Header); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			next, err := rd.ReadNext()
			if err != nil {
				return err
			}
			if err := replayReceptacle(rd, next, recv); err != nil {
				return err
			}
		}
		return nil
	case receiver.KindMapHeader:
		n := int(rc.Header) * 2
		if err := recv.OnMapHeader(rc.Header); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			next, err := rd.ReadNext()
			if err != nil {
				return err
			}
			if err := replayReceptacle(rd, next, recv); err != nil {
				return err
			}
		}
		return nil
	case receiver.KindArrayStart, receiver.KindMapStart:
		var openErr error
		if kind == receiver.KindArrayStart {
			openErr = recv.OnArrayStart()
		} else {
			openErr = recv.OnMapStart()
		}
		if openErr != nil {
			return openErr
		}
		for {
			done, err := rd.TryReadBreak()
			if err != nil {
				return err
			}
			if done {
				return recv.OnBreak()
			}
			if err := replayReceptacle(rd, rd.Receptacle().Kind, recv); err != nil {
				return err
			}
		}
	default:
		return errs.Unsupported(0, "borer: cannot replay data item of kind "+kind.String())
	}
}
