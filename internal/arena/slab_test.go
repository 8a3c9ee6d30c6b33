package arena

import "testing"

func TestSlabInsertRemoveReusesIndex(t *testing.T) {
	s := NewSlab[string]()
	k1 := s.Insert("a")
	s.Remove(k1)
	k2 := s.Insert("b")

	if k1.Index != k2.Index {
		t.Fatalf("expected slot reuse, got indices %d and %d", k1.Index, k2.Index)
	}
	if k1.Generation == k2.Generation {
		t.Fatalf("expected generation to change on reuse, both were %d", k1.Generation)
	}
}

func TestSlabStaleKeyFailsLookup(t *testing.T) {
	s := NewSlab[int]()
	k1 := s.Insert(1)
	s.Remove(k1)
	s.Insert(2)

	if _, ok := s.Get(k1); ok {
		t.Fatal("stale key should not resolve after its slot was reused")
	}
}

func TestSlabCheckoutDoubleCheckoutPanics(t *testing.T) {
	s := NewSlab[int]()
	k := s.Insert(42)
	ticket := s.Checkout(k)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double checkout")
		}
	}()
	s.Checkout(k)
	s.Restore(ticket)
}

func TestSlabCheckoutRestore(t *testing.T) {
	s := NewSlab[int]()
	k := s.Insert(42)
	ticket := s.Checkout(k)
	if _, ok := s.Get(k); ok {
		t.Fatal("checked-out value should not be visible")
	}
	s.Restore(ticket)
	v, ok := s.Get(k)
	if !ok || v != 42 {
		t.Fatalf("expected restored value 42, got %v (%v)", v, ok)
	}
}
