// SPDX-FileCopyrightText: (C) 2026 Borer Contributors
// SPDX-License-Identifier: Apache 2.0

//go:build jsonfast

package jsonfast_test

import (
	"testing"

	"github.com/borerio/borer/jsonfast"
	"github.com/borerio/borer/reader"
)

func TestParseObjectAndArray(t *testing.T) {
	data := []byte(`{"name":"borer","nums":[1,2,3],"ok":true,"nil":null}`)
	rd := reader.New(jsonfast.NewParser(data))

	n, err := rd.ReadMapOpen()
	if err != nil {
		t.Fatalf("ReadMapOpen: %v", err)
	}
	if n != -1 {
		t.Fatalf("expected indefinite-length map, got n=%d", n)
	}

	key, err := rd.ReadString()
	if err != nil || key != "name" {
		t.Fatalf("key: %q, %v", key, err)
	}
	val, err := rd.ReadString()
	if err != nil || val != "borer" {
		t.Fatalf("val: %q, %v", val, err)
	}

	key, err = rd.ReadString()
	if err != nil || key != "nums" {
		t.Fatalf("key: %q, %v", key, err)
	}
	an, err := rd.ReadArrayOpen()
	if err != nil {
		t.Fatalf("ReadArrayOpen: %v", err)
	}
	if an != -1 && an != 3 {
		t.Fatalf("unexpected array length %d", an)
	}
	if an == -1 {
		for i := 0; i < 3; i++ {
			if _, err := rd.ReadInt(); err != nil {
				t.Fatalf("ReadInt: %v", err)
			}
		}
		if err := rd.ReadArrayClose(); err != nil {
			t.Fatalf("ReadArrayClose: %v", err)
		}
	} else {
		for i := 0; i < 3; i++ {
			if _, err := rd.ReadInt(); err != nil {
				t.Fatalf("ReadInt: %v", err)
			}
		}
	}

	key, err = rd.ReadString()
	if err != nil || key != "ok" {
		t.Fatalf("key: %q, %v", key, err)
	}
	b, err := rd.ReadBool()
	if err != nil || !b {
		t.Fatalf("ok value: %v, %v", b, err)
	}

	key, err = rd.ReadString()
	if err != nil || key != "nil" {
		t.Fatalf("key: %q, %v", key, err)
	}
	kind, err := rd.ReadNext()
	if err != nil {
		t.Fatalf("ReadNext for null: %v", err)
	}
	if kind.String() != "Null" {
		t.Fatalf("expected Null, got %s", kind)
	}

	if err := rd.ReadMapClose(); err != nil {
		t.Fatalf("ReadMapClose: %v", err)
	}
}
