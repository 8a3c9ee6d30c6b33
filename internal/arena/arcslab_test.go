package arena

import "testing"

func TestArcSlabTryRemoveBlockedByOutstandingShare(t *testing.T) {
	a := NewArcSlab[string]()
	k := a.Insert("x")
	a.Share(k)

	if _, ok := a.TryRemove(k); ok {
		t.Fatal("try_remove should fail while a shared handle is outstanding")
	}

	a.Release(k)
	v, ok := a.TryRemove(k)
	if !ok || v != "x" {
		t.Fatalf("expected removal to succeed after releasing last share, got %v %v", v, ok)
	}
}

func TestArcSlabReleaseFreesSlotForReuse(t *testing.T) {
	a := NewArcSlab[int]()
	k1 := a.Insert(1)
	a.Release(k1)
	k2 := a.Insert(2)

	if k1.Index != k2.Index {
		t.Fatalf("expected slot reuse at index %d, got %d", k1.Index, k2.Index)
	}
	if _, ok := a.Get(k1); ok {
		t.Fatal("old key must not resolve after slot reuse")
	}
}
