// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

package borer_test

import (
	"reflect"
	"testing"

	"github.com/borerio/borer"
	"github.com/borerio/borer/cbor/diag"
)

type Point struct {
	X int64 `cbor:"0"`
	Y int64 `cbor:"1"`
}

type Named struct {
	Point
	Label string `cbor:"2"`
}

type Sparse struct {
	A int64  `cbor:"0,omitempty"`
	B string `cbor:"1,omitempty"`
}

type MapShaped struct {
	_    struct{} `cbor:",map"`
	Name string   `key:"name"`
	Age  int64    `key:"3"`
}

func TestMarshalUnmarshalArrayRepresentation(t *testing.T) {
	want := Point{X: 3, Y: 4}
	data, err := borer.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Point
	if err := borer.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMarshalEmbeddedStructFlattens(t *testing.T) {
	want := Named{Point: Point{X: 1, Y: 2}, Label: "origin"}
	data, err := borer.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Named
	if err := borer.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMarshalOmitsEmptyFields(t *testing.T) {
	data, err := borer.Marshal(Sparse{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	cdn, err := diag.FromCBOR(data)
	if err != nil {
		t.Fatal(err)
	}
	if cdn != "[]" {
		t.Errorf("expected an empty array for all-empty omitempty fields, got %s", cdn)
	}

	data, err = borer.Marshal(Sparse{A: 7})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Sparse
	if err := borer.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != (Sparse{A: 7}) {
		t.Errorf("got %+v, want A=7", got)
	}
}

func TestStructLevelMapRepresentation(t *testing.T) {
	want := MapShaped{Name: "ada", Age: 36}
	data, err := borer.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	cdn, err := diag.FromCBOR(data)
	if err != nil {
		t.Fatal(err)
	}
	if cdn != `{"name": "ada", 3: 36}` {
		t.Errorf("unexpected map-representation encoding: %s", cdn)
	}

	var got MapShaped
	if err := borer.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestWithMapRepresentationOption(t *testing.T) {
	want := Point{X: 5, Y: 6}
	data, err := borer.Marshal(want, borer.WithMapRepresentation())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Point
	if err := borer.Unmarshal(data, &got, borer.WithMapDecodeRepresentation()); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestUnmarshalRejectsNonPointer(t *testing.T) {
	data, err := borer.Marshal(Point{X: 1, Y: 2})
	if err != nil {
		t.Fatal(err)
	}
	var p Point
	if err := borer.Unmarshal(data, p); err == nil {
		t.Fatal("expected an error decoding into a non-pointer")
	}
}

func TestMarshalUnmarshalSliceAndMap(t *testing.T) {
	type Bag struct {
		Items []string       `cbor:"0"`
		Tags  map[string]int64 `cbor:"1"`
	}
	want := Bag{Items: []string{"a", "b", "c"}, Tags: map[string]int64{"x": 1, "y": 2}}
	data, err := borer.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	var got Bag
	if err := borer.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMarshalUnmarshalJSON(t *testing.T) {
	want := Point{X: 10, Y: 20}
	data, err := borer.MarshalJSON(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[10,20]" {
		t.Errorf("MarshalJSON = %s, want [10,20]", data)
	}
	var got Point
	if err := borer.UnmarshalJSON(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMarshalUnmarshalJSONFloatsAndMaps(t *testing.T) {
	type Reading struct {
		Value float64          `cbor:"0"`
		Tags  map[string]int64 `cbor:"1"`
	}
	want := Reading{Value: 3.5, Tags: map[string]int64{"a": 1, "b": 2}}
	data, err := borer.MarshalJSON(want)
	if err != nil {
		t.Fatal(err)
	}
	var got Reading
	if err := borer.UnmarshalJSON(data, &got); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got.Value != want.Value || !reflect.DeepEqual(got.Tags, want.Tags) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
