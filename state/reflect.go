package state

import (
	"reflect"
	"sync"

	"github.com/anathema-go/anathema/reactive"
)

// fieldPlan describes one exported field of a reflected struct: its
// index path for reflect.Value.FieldByIndex, the name it is addressed by
// from templates (after `anathema` tag renaming), and whether it is
// hidden from reflection entirely.
type fieldPlan struct {
	index []int
	name  string
	hide  bool
}

var planCache sync.Map // reflect.Type -> []fieldPlan

// planFor walks t's exported fields once and caches the result, honoring
// an `anathema:"name"` tag to rename a field and `anathema:"-"` to hide
// it — the same renaming convention a derive macro would apply in the
// original implementation.
func planFor(t reflect.Type) []fieldPlan {
	if cached, ok := planCache.Load(t); ok {
		return cached.([]fieldPlan)
	}

	var plans []fieldPlan
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		hide := false
		if tag, ok := f.Tag.Lookup("anathema"); ok {
			if tag == "-" {
				hide = true
			} else if tag != "" {
				name = tag
			}
		}
		plans = append(plans, fieldPlan{index: f.Index, name: name, hide: hide})
	}

	planCache.Store(t, plans)
	return plans
}

// Struct is the reflection-based composite adapter: it wraps a Go struct
// value and answers Get by field name using the struct's cached field
// plan, converting each field's Go value to a State snapshot on demand.
type Struct struct {
	base
	value reflect.Value
	plans []fieldPlan
}

// FromStruct builds a Struct view over v, which must be a struct or a
// pointer to one. Repeated calls for the same concrete type reuse the
// cached field plan rather than re-walking reflection metadata.
func FromStruct(v any) *Struct {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic("state: FromStruct requires a struct or pointer to struct")
	}
	return &Struct{value: rv, plans: planFor(rv.Type())}
}

func (*Struct) Kind() Kind { return KindComposite }

// Get resolves path against the struct's exported fields. Because a
// reflected struct's shape never changes at runtime, no structural
// subscription is needed here (unlike Map) — sub is only ever relevant
// to whatever the returned PendingValue eventually resolves to.
func (s *Struct) Get(path string, sub reactive.Subscriber) (PendingValue, bool) {
	for _, p := range s.plans {
		if p.hide || p.name != path {
			continue
		}
		fv := s.value.FieldByIndex(p.index)
		return PendingValue{resolve: func(reactive.Subscriber) State {
			return fromReflectValue(fv)
		}}, true
	}
	return PendingValue{}, false
}

// fromReflectValue converts a reflect.Value holding a Go primitive,
// struct, slice, or map into the matching State snapshot. Values already
// implementing State (e.g. a field typed as *Struct or *Map) are passed
// through unchanged.
func fromReflectValue(v reflect.Value) State {
	if v.CanInterface() {
		if s, ok := v.Interface().(State); ok {
			return s
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool{Value: v.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int{Value: v.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int{Value: int64(v.Uint())}
	case reflect.Float32, reflect.Float64:
		return Float{Value: v.Float()}
	case reflect.String:
		return Str{Value: v.String()}
	case reflect.Struct:
		return &Struct{value: v, plans: planFor(v.Type())}
	case reflect.Pointer:
		if v.IsNil() {
			return Unit{}
		}
		return fromReflectValue(v.Elem())
	case reflect.Slice, reflect.Array:
		items := make([]State, v.Len())
		for i := range items {
			items[i] = fromReflectValue(v.Index(i))
		}
		return &reflectSlice{items: items}
	case reflect.Map:
		fields := make(map[string]State, v.Len())
		for _, key := range v.MapKeys() {
			fields[key.String()] = fromReflectValue(v.MapIndex(key))
		}
		return &reflectMap{fields: fields}
	default:
		return Unit{}
	}
}

// reflectSlice and reflectMap are read-only State views over a
// one-time-converted reflect.Value tree: they support Get/Lookup but,
// unlike Map/List, carry no structural subscription since the struct
// field they came from cannot change shape without a whole new State
// snapshot being produced.
type reflectSlice struct {
	base
	items []State
}

func (*reflectSlice) Kind() Kind { return KindList }

func (r *reflectSlice) Lookup(index int, sub reactive.Subscriber) (PendingValue, bool) {
	if index < 0 || index >= len(r.items) {
		return PendingValue{}, false
	}
	item := r.items[index]
	return PendingValue{resolve: func(reactive.Subscriber) State { return item }}, true
}

type reflectMap struct {
	base
	fields map[string]State
}

func (*reflectMap) Kind() Kind { return KindMap }

func (r *reflectMap) Get(path string, sub reactive.Subscriber) (PendingValue, bool) {
	v, ok := r.fields[path]
	if !ok {
		return PendingValue{}, false
	}
	return PendingValue{resolve: func(reactive.Subscriber) State { return v }}, true
}
