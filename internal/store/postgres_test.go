package store

import "testing"

func TestNullIfEmpty(t *testing.T) {
	if v := nullIfEmpty(""); v != nil {
		t.Fatalf("nullIfEmpty(\"\") = %v, want nil", v)
	}
	if v := nullIfEmpty("boom"); v != "boom" {
		t.Fatalf("nullIfEmpty(\"boom\") = %v, want \"boom\"", v)
	}
}
