// Package value implements the tagged-union Value model of §3: scalars,
// strings, arrays, dictionaries, functions, modules, and content/styles
// (the latter two defined in the content and style packages, referenced
// here only as opaque `any` payloads to avoid an import cycle).
package value

import (
	"fmt"
	"time"
)

// Kind tags which variant of Value is populated.
type Kind int

const (
	KNone Kind = iota
	KAuto
	KBool
	KInt
	KFloat
	KLength
	KAngle
	KRatio
	KFraction
	KColor
	KDuration
	KDate
	KString
	KArray
	KDict
	KFunction
	KModule
	KContent
	KStyles
)

func (k Kind) String() string {
	switch k {
	case KNone:
		return "none"
	case KAuto:
		return "auto"
	case KBool:
		return "boolean"
	case KInt:
		return "integer"
	case KFloat:
		return "float"
	case KLength:
		return "length"
	case KAngle:
		return "angle"
	case KRatio:
		return "ratio"
	case KFraction:
		return "fraction"
	case KColor:
		return "color"
	case KDuration:
		return "duration"
	case KDate:
		return "date"
	case KString:
		return "string"
	case KArray:
		return "array"
	case KDict:
		return "dictionary"
	case KFunction:
		return "function"
	case KModule:
		return "module"
	case KContent:
		return "content"
	case KStyles:
		return "styles"
	default:
		return "unknown"
	}
}

// Angle is a rotation in degrees, as §3 lists angle as its own scalar
// distinct from ratio/fraction.
type Angle float64

// Fraction is a share of free space (the `fr` unit used by grid/flow
// distribution, §4's Layout engine).
type Fraction float64

// Array is an ordered sequence of values; the sequence is the content
// append unit described in §3 ("Content composes by sequencing").
type Array []Value

// Dict is an insertion-ordered string-keyed mapping. Go maps do not
// preserve insertion order, so we keep parallel key/value slices rather
// than reach for an ordered-map dependency the teacher never uses.
type Dict struct {
	keys   []string
	values map[string]Value
}

func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

func (d *Dict) Set(key string, v Value) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *Dict) Len() int { return len(d.keys) }

// Func is a callable value: either a native Go function or a user-defined
// closure with a captured environment (the environment is represented as
// an opaque pointer owned by the eval package to avoid a cycle).
type Func struct {
	Name string
	Env  any // *eval.Scope, set by the evaluator for user-defined closures
	Call func(args Array, named *Dict) (Value, error)
}

// Module is an evaluated file's exported bindings plus the content it
// produced at top level.
type Module struct {
	Name    string
	Exports *Dict
	Content any // content.Content, kept opaque here
}

// Value is the tagged union described in §3. Exactly one payload field is
// meaningful for a given Kind; Payload carries variants with no dedicated
// field (content, styles) to avoid importing those packages here.
type Value struct {
	Kind Kind

	Bool     bool
	Int      int64
	Float    float64
	Length   Length
	Angle    Angle
	Ratio    Ratio
	Fraction Fraction
	Color    Color
	Duration time.Duration
	Date     time.Time
	Str      string
	Arr      Array
	Map      *Dict
	Fn       *Func
	Mod      *Module

	Payload any // content.Content or style.Map, depending on Kind
}

func None() Value { return Value{Kind: KNone} }
func Auto() Value { return Value{Kind: KAuto} }

func Bool(b bool) Value     { return Value{Kind: KBool, Bool: b} }
func Int(i int64) Value     { return Value{Kind: KInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KFloat, Float: f} }
func Str(s string) Value    { return Value{Kind: KString, Str: s} }
func Len(l Length) Value    { return Value{Kind: KLength, Length: l} }
func Col(c Color) Value     { return Value{Kind: KColor, Color: c} }

// IsNone reports whether the value is the unit/"none" scalar.
func (v Value) IsNone() bool { return v.Kind == KNone }

// Truthy implements the engine's boolean coercion rule for `if`/`while`
// conditions: only an explicit bool is truthy-checkable, everything else
// is a type error left to the evaluator to report.
func (v Value) Truthy() (bool, error) {
	if v.Kind != KBool {
		return false, fmt.Errorf("expected boolean, found %s", v.Kind)
	}
	return v.Bool, nil
}

func (v Value) String() string {
	switch v.Kind {
	case KNone:
		return "none"
	case KAuto:
		return "auto"
	case KBool:
		return fmt.Sprintf("%t", v.Bool)
	case KInt:
		return fmt.Sprintf("%d", v.Int)
	case KFloat:
		return fmt.Sprintf("%g", v.Float)
	case KLength:
		return fmt.Sprintf("%gpt+%gem", v.Length.Abs, v.Length.Em)
	case KRatio:
		return fmt.Sprintf("%g%%", float64(v.Ratio)*100)
	case KColor:
		return v.Color.Hex()
	case KString:
		return v.Str
	default:
		return v.Kind.String()
	}
}
