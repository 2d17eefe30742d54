package dbtypes

import (
	"reflect"
	"testing"
)

func TestStringListValueAndScan(t *testing.T) {
	list := StringList{"summer", "new arrival"}
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `{"summer","new arrival"}` {
		t.Fatalf("unexpected literal %v", v)
	}

	var out StringList
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if !reflect.DeepEqual(out, list) {
		t.Fatalf("round trip mismatch: %v", out)
	}
	if !out.Contains("summer") || out.Contains("winter") {
		t.Fatalf("Contains returned unexpected results for %v", out)
	}
}

func TestStringListNilHandling(t *testing.T) {
	var list StringList
	v, err := list.Value()
	if err != nil || v != "{}" {
		t.Fatalf("nil list should encode as {}, got %v err=%v", v, err)
	}
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
	if err := list.Scan(42); err == nil {
		t.Fatal("expected error for unsupported scan type")
	}
}
