package lumen

import (
	"sort"
	"sync"
)

// StyleVal is a tagged style value.
type StyleVal struct {
	kind  styleValKind
	color Color
	dim   Dimension
	size  Size
	f     float64
	i     int
	b     bool
	s     string
}

type styleValKind uint8

const (
	styleNone styleValKind = iota
	styleColor
	styleDimension
	styleSize
	styleFloat
	styleInt
	styleBool
	styleString
)

func ColorVal(c Color) StyleVal         { return StyleVal{kind: styleColor, color: c} }
func DimensionVal(d Dimension) StyleVal { return StyleVal{kind: styleDimension, dim: d} }
func SizeVal(s Size) StyleVal           { return StyleVal{kind: styleSize, size: s} }
func FloatVal(f float64) StyleVal       { return StyleVal{kind: styleFloat, f: f} }
func IntVal(i int) StyleVal             { return StyleVal{kind: styleInt, i: i} }
func BoolVal(b bool) StyleVal           { return StyleVal{kind: styleBool, b: b} }
func StringVal(s string) StyleVal       { return StyleVal{kind: styleString, s: s} }

func (v StyleVal) Color() (Color, bool)         { return v.color, v.kind == styleColor }
func (v StyleVal) Dimension() (Dimension, bool) { return v.dim, v.kind == styleDimension }
func (v StyleVal) Size() (Size, bool)           { return v.size, v.kind == styleSize }
func (v StyleVal) Float() (float64, bool)       { return v.f, v.kind == styleFloat }
func (v StyleVal) Int() (int, bool)             { return v.i, v.kind == styleInt }
func (v StyleVal) Bool() (bool, bool)           { return v.b, v.kind == styleBool }
func (v StyleVal) String() (string, bool)       { return v.s, v.kind == styleString }

// IsZero reports whether the value is unset.
func (v StyleVal) IsZero() bool { return v.kind == styleNone }

// StyleKey addresses one parameter of one component type, optionally
// narrowed to a class.
type StyleKey struct {
	Type  string
	Param string
	Class string
}

// StyleSheet maps style keys to values.
type StyleSheet struct {
	m map[StyleKey]StyleVal
}

func NewStyleSheet() *StyleSheet {
	return &StyleSheet{m: map[StyleKey]StyleVal{}}
}

// Add sets a style value; class may be empty for the type-wide default.
func (s *StyleSheet) Add(typ, param, class string, v StyleVal) *StyleSheet {
	s.m[StyleKey{Type: typ, Param: param, Class: class}] = v
	return s
}

func (s *StyleSheet) get(typ, param, class string) (StyleVal, bool) {
	v, ok := s.m[StyleKey{Type: typ, Param: param, Class: class}]
	return v, ok
}

var (
	currentStyleMu sync.RWMutex
	currentStyle   = NewStyleSheet()
)

// SetCurrentStyle installs the process-wide style sheet.
func SetCurrentStyle(s *StyleSheet) {
	currentStyleMu.Lock()
	currentStyle = s
	currentStyleMu.Unlock()
}

// CurrentStyle returns the process-wide style sheet.
func CurrentStyle() *StyleSheet {
	currentStyleMu.RLock()
	defer currentStyleMu.RUnlock()
	return currentStyle
}

// Styled gives a component class and override support. Embed it and look
// parameters up through StyleParam with the component's type name.
type Styled struct {
	Class     string
	Overrides map[string]StyleVal
}

// WithClass narrows style lookups to the given class.
func (s *Styled) WithClass(class string) {
	s.Class = class
}

// OverrideStyle pins one parameter regardless of the sheet.
func (s *Styled) OverrideStyle(param string, v StyleVal) {
	if s.Overrides == nil {
		s.Overrides = map[string]StyleVal{}
	}
	s.Overrides[param] = v
}

// StyleParam resolves a parameter: the instance override wins, then the
// sheet entry for (type, param, class), then (type, param, no class).
func (s *Styled) StyleParam(typeName, param string) (StyleVal, bool) {
	if v, ok := s.Overrides[param]; ok {
		return v, true
	}
	sheet := CurrentStyle()
	if s.Class != "" {
		if v, ok := sheet.get(typeName, param, s.Class); ok {
			return v, true
		}
	}
	if v, ok := sheet.get(typeName, param, ""); ok {
		return v, true
	}
	return StyleVal{}, false
}

func (s *Styled) HashStyle(h *Hasher) {
	h.WriteString(s.Class)
	keys := make([]string, 0, len(s.Overrides))
	for k := range s.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.Overrides[k]
		h.WriteString(k)
		h.WriteUint64(uint64(v.kind))
		h.WriteFloat(v.f)
		h.WriteString(v.s)
	}
}
