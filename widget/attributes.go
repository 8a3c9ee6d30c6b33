package widget

import (
	"sort"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

// attrSlot is one cached, subscribed attribute expression result. Index
// is stable for the node's lifetime and doubles as the
// reactive.Subscriber.AttributeIndex a Changed signal arrives tagged
// with.
type attrSlot struct {
	index int
	name  string
	expr  template.Expression
	value state.State
}

// Attributes holds every evaluated attribute of one widget node, plus its
// optional inline text value (a node's `: expr` suffix, which behaves
// like an attribute for re-evaluation purposes but has no name).
type Attributes struct {
	widget ID
	slots  []attrSlot
	byName map[string]int
	text   *attrSlot
}

// NewAttributes builds and evaluates the attribute set for widget from
// its blueprint's expressions, in a name-sorted order so the same
// blueprint always assigns the same AttributeIndex to the same name.
func NewAttributes(widget ID, exprs map[string]template.Expression, text template.Expression, ctx *eval.Context) *Attributes {
	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)

	a := &Attributes{widget: widget, byName: make(map[string]int, len(names))}
	for i, name := range names {
		expr := exprs[name]
		sub := subscriberFor(widget, uint32(i))
		a.slots = append(a.slots, attrSlot{
			index: i,
			name:  name,
			expr:  expr,
			value: eval.Evaluate(expr, ctx, sub),
		})
		a.byName[name] = i
	}

	if text != nil {
		idx := uint32(len(a.slots))
		sub := subscriberFor(widget, idx)
		a.text = &attrSlot{index: int(idx), name: "", expr: text, value: eval.Evaluate(text, ctx, sub)}
	}
	return a
}

// Get returns the current cached value of a named attribute.
func (a *Attributes) Get(name string) (state.State, bool) {
	if a == nil {
		return nil, false
	}
	i, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return a.slots[i].value, true
}

// Text returns the inline text value, if the blueprint had one.
func (a *Attributes) Text() (state.State, bool) {
	if a == nil || a.text == nil {
		return nil, false
	}
	return a.text.value, true
}

// reevaluate re-runs the expression at attributeIndex and updates the
// cached value, returning false if no slot exists at that index (a stale
// signal against an attribute that has since been dropped).
func (a *Attributes) reevaluate(index uint32, ctx *eval.Context) bool {
	if a.text != nil && uint32(a.text.index) == index {
		sub := subscriberFor(a.widget, index)
		a.text.value = eval.Evaluate(a.text.expr, ctx, sub)
		return true
	}
	for i := range a.slots {
		if uint32(a.slots[i].index) == index {
			sub := subscriberFor(a.widget, index)
			a.slots[i].value = eval.Evaluate(a.slots[i].expr, ctx, sub)
			return true
		}
	}
	return false
}

// AsState exposes the whole attribute set as a single composite State —
// what the `attributes` identifier resolves to inside a component body.
func (a *Attributes) AsState() state.State {
	fields := make(map[string]state.State, len(a.slots))
	for _, s := range a.slots {
		fields[s.name] = s.value
	}
	return state.StaticMap{Fields: fields}
}

// AttributeStorage maps a widget ID to its evaluated Attributes, mirroring
// spec's `AttributeStorage : WidgetId -> Attributes`.
type AttributeStorage struct {
	byWidget map[ID]*Attributes
}

// NewAttributeStorage creates an empty AttributeStorage.
func NewAttributeStorage() *AttributeStorage {
	return &AttributeStorage{byWidget: map[ID]*Attributes{}}
}

func (s *AttributeStorage) insert(id ID, a *Attributes) { s.byWidget[id] = a }

// Get returns the Attributes for id, if any were recorded.
func (s *AttributeStorage) Get(id ID) (*Attributes, bool) {
	a, ok := s.byWidget[id]
	return a, ok
}

func (s *AttributeStorage) remove(id ID) { delete(s.byWidget, id) }
