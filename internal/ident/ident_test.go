package ident

import "testing"

func TestHandleStableForSameKey(t *testing.T) {
	tbl := NewTable()
	key := &struct{}{}

	h1 := tbl.Handle(key)
	h2 := tbl.Handle(key)
	if h1 != h2 {
		t.Fatalf("expected stable handle, got %q then %q", h1, h2)
	}
}

func TestHandleDiffersAcrossKeys(t *testing.T) {
	tbl := NewTable()
	a, b := &struct{}{}, &struct{}{}

	if tbl.Handle(a) == tbl.Handle(b) {
		t.Fatal("expected distinct handles for distinct keys")
	}
}

func TestReleaseDropsHandle(t *testing.T) {
	tbl := NewTable()
	key := &struct{}{}

	first := tbl.Handle(key)
	tbl.Release(key)
	second := tbl.Handle(key)

	if first == second {
		t.Fatal("expected a fresh handle after Release")
	}
}
