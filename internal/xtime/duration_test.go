package xtime

import (
	"testing"
	"time"
)

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("24h")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.D() != 24*time.Hour {
		t.Fatalf("expected 24h, got %s", d)
	}

	if err := d.UnmarshalText([]byte("not a duration")); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestDurationMarshalText(t *testing.T) {
	d := Duration(90 * time.Second)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(text) != "1m30s" {
		t.Fatalf("expected 1m30s, got %s", text)
	}
}
