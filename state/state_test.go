package state

import (
	"testing"

	"github.com/anathema-go/anathema/reactive"
)

func TestMapGetResolvesBoundLeaf(t *testing.T) {
	store := reactive.NewStore()
	name := reactive.Insert(store, "ziggy")
	m := NewMap(store)
	BindValue(m, "name", name, func(v string) State { return Str{Value: v} })

	sub := reactive.Subscriber{WidgetKey: 1}
	pending, ok := m.Get("name", sub)
	if !ok {
		t.Fatal("expected name field to resolve")
	}
	got, ok := pending.ToValue(sub)
	if !ok {
		t.Fatal("expected ToValue to succeed")
	}
	s, ok := got.AsString()
	if !ok || s != "ziggy" {
		t.Fatalf("expected ziggy, got %q (%v)", s, ok)
	}
}

func TestMapGetMissingFieldFails(t *testing.T) {
	store := reactive.NewStore()
	m := NewMap(store)
	if _, ok := m.Get("missing", reactive.Subscriber{}); ok {
		t.Fatal("expected missing field lookup to fail")
	}
}

func TestListLookupOutOfRangeFails(t *testing.T) {
	store := reactive.NewStore()
	l := NewList(store)
	l.Push(func(reactive.Subscriber) State { return Int{Value: 1} })

	if _, ok := l.Lookup(5, reactive.Subscriber{}); ok {
		t.Fatal("expected out-of-range lookup to fail")
	}
	pending, ok := l.Lookup(0, reactive.Subscriber{})
	if !ok {
		t.Fatal("expected index 0 to resolve")
	}
	v, _ := pending.ToValue(reactive.Subscriber{})
	if n, _ := v.AsInt(); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
}

type address struct {
	City string `anathema:"city"`
	Zip  string `anathema:"-"`
}

type person struct {
	Name    string `anathema:"name"`
	Age     int
	Address address
	Tags    []string
}

func TestFromStructResolvesRenamedAndHiddenFields(t *testing.T) {
	p := person{Name: "Ada", Age: 30, Address: address{City: "London", Zip: "secret"}, Tags: []string{"a", "b"}}
	s := FromStruct(p)

	pending, ok := s.Get("name", reactive.Subscriber{})
	if !ok {
		t.Fatal("expected renamed field 'name' to resolve")
	}
	v, _ := pending.ToValue(reactive.Subscriber{})
	if str, _ := v.AsString(); str != "Ada" {
		t.Fatalf("expected Ada, got %q", str)
	}

	if _, ok := s.Get("Zip", reactive.Subscriber{}); ok {
		t.Fatal("expected anathema:\"-\" field to be hidden")
	}

	pending, ok = s.Get("Age", reactive.Subscriber{})
	if !ok {
		t.Fatal("expected Age field to resolve")
	}
	v, _ = pending.ToValue(reactive.Subscriber{})
	if n, _ := v.AsInt(); n != 30 {
		t.Fatalf("expected 30, got %d", n)
	}
}

func TestResolveChainAcrossCompositeAndList(t *testing.T) {
	store := reactive.NewStore()
	m := NewMap(store)
	l := NewList(store)
	l.Push(func(reactive.Subscriber) State { return Str{Value: "zero"} })
	l.Push(func(reactive.Subscriber) State { return Str{Value: "one"} })
	BindValue(m, "city", reactive.Insert(store, "London"), func(v string) State { return Str{Value: v} })
	m.Bind("items", func(reactive.Subscriber) State { return l })

	path := []Segment{Key("items"), Idx(1)}
	got, ok := Resolve(m, path, reactive.Subscriber{})
	if !ok {
		t.Fatal("expected chain to resolve")
	}
	if s, _ := got.AsString(); s != "one" {
		t.Fatalf("expected one, got %q", s)
	}
}

func TestResolveChainAbortsOnMissingSegmentWithoutPanicking(t *testing.T) {
	store := reactive.NewStore()
	m := NewMap(store)

	path := []Segment{Key("nope"), Idx(0)}
	if _, ok := Resolve(m, path, reactive.Subscriber{}); ok {
		t.Fatal("expected resolution to fail at the missing segment")
	}
}
