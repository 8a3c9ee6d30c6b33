package state

// Unit is the state of an empty node: no scalar value, no children.
type Unit struct{ base }

func (Unit) Kind() Kind { return KindUnit }

// Bool wraps a snapshotted boolean value.
type Bool struct {
	base
	Value bool
}

func (Bool) Kind() Kind            { return KindBool }
func (b Bool) AsBool() (bool, bool) { return b.Value, true }
func (b Bool) AsString() (string, bool) {
	if b.Value {
		return "true", true
	}
	return "false", true
}

// Int wraps a snapshotted signed integer value.
type Int struct {
	base
	Value int64
}

func (Int) Kind() Kind               { return KindInt }
func (i Int) AsInt() (int64, bool)   { return i.Value, true }
func (i Int) AsFloat() (float64, bool) { return float64(i.Value), true }

// Float wraps a snapshotted floating-point value.
type Float struct {
	base
	Value float64
}

func (Float) Kind() Kind                { return KindFloat }
func (f Float) AsFloat() (float64, bool) { return f.Value, true }
func (f Float) AsInt() (int64, bool)     { return int64(f.Value), true }

// Char wraps a single snapshotted rune.
type Char struct {
	base
	Value rune
}

func (Char) Kind() Kind              { return KindChar }
func (c Char) AsString() (string, bool) { return string(c.Value), true }
func (c Char) AsInt() (int64, bool)     { return int64(c.Value), true }

// Str wraps a snapshotted string value.
type Str struct {
	base
	Value string
}

func (Str) Kind() Kind                { return KindStr }
func (s Str) AsString() (string, bool) { return s.Value, true }

// Hex wraps a 24-bit packed RGB value parsed from a `#rgb`/`#rrggbb`
// template literal.
type Hex struct {
	base
	Value uint32
}

func (Hex) Kind() Kind             { return KindHex }
func (h Hex) AsInt() (int64, bool) { return int64(h.Value), true }

// Color is the resolved runtime counterpart of Hex: a named or packed
// color ready for the paint layer.
type Color struct {
	base
	R, G, B uint8
}

func (Color) Kind() Kind { return KindColor }
