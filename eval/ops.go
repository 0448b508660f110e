package eval

import (
	"fmt"

	"github.com/inkwell-lang/inkwell/content"
	"github.com/inkwell-lang/inkwell/source"
	"github.com/inkwell-lang/inkwell/syntax"
	"github.com/inkwell-lang/inkwell/value"
)

// applyBinaryOp implements the arithmetic/comparison/concatenation
// operators parser.go's binPrec table recognizes. Content + content
// concatenates via content.Content.Seq (§3: "Content composes by
// sequencing"); string + string concatenates; for numeric operands, two
// ints give an int for + and -, a float on either side makes the result
// a float, / always gives a float, and % accepts only two ints.
func applyBinaryOp(op syntax.TokKind, l, r value.Value) (value.Value, error) {
	if op == syntax.TDotDot {
		return rangeArray(l, r)
	}
	if l.Kind == value.KContent || r.Kind == value.KContent {
		if op != syntax.TPlus {
			return value.None(), fmt.Errorf("operator %s not defined for content", op)
		}
		lc, _ := asContent(l)
		rc, _ := asContent(r)
		return value.Value{Kind: value.KContent, Payload: lc.Seq(rc)}, nil
	}
	if l.Kind == value.KString && r.Kind == value.KString {
		switch op {
		case syntax.TPlus:
			return value.Str(l.Str + r.Str), nil
		case syntax.TEqEq:
			return value.Bool(l.Str == r.Str), nil
		case syntax.TNotEq:
			return value.Bool(l.Str != r.Str), nil
		case syntax.TLt:
			return value.Bool(l.Str < r.Str), nil
		case syntax.TGt:
			return value.Bool(l.Str > r.Str), nil
		default:
			return value.None(), fmt.Errorf("operator %s not defined for strings", op)
		}
	}
	if isNumeric(l) && isNumeric(r) {
		return numericOp(op, l, r)
	}
	if op == syntax.TEqEq {
		return value.Bool(sameScalar(l, r)), nil
	}
	if op == syntax.TNotEq {
		return value.Bool(!sameScalar(l, r)), nil
	}
	return value.None(), fmt.Errorf("operator %s not defined for %s and %s", op, l.Kind, r.Kind)
}

func asContent(v value.Value) (content.Content, bool) {
	if v.Kind == value.KContent {
		c, ok := v.Payload.(content.Content)
		return c, ok
	}
	return content.Text(v.String(), source.Span{}), false
}

func isNumeric(v value.Value) bool { return v.Kind == value.KInt || v.Kind == value.KFloat }

func numericOp(op syntax.TokKind, l, r value.Value) (value.Value, error) {
	bothInt := l.Kind == value.KInt && r.Kind == value.KInt
	lf, rf := asFloat(l), asFloat(r)
	switch op {
	case syntax.TPlus:
		if bothInt {
			return value.Int(l.Int + r.Int), nil
		}
		return value.Float(lf + rf), nil
	case syntax.TMinus:
		if bothInt {
			return value.Int(l.Int - r.Int), nil
		}
		return value.Float(lf - rf), nil
	case syntax.TSlash:
		if rf == 0 {
			return value.None(), fmt.Errorf("division by zero")
		}
		return value.Float(lf / rf), nil
	case syntax.TPercent:
		if bothInt {
			if r.Int == 0 {
				return value.None(), fmt.Errorf("division by zero")
			}
			return value.Int(l.Int % r.Int), nil
		}
		return value.None(), fmt.Errorf("%% requires integer operands")
	case syntax.TEqEq:
		return value.Bool(lf == rf), nil
	case syntax.TNotEq:
		return value.Bool(lf != rf), nil
	case syntax.TLt:
		return value.Bool(lf < rf), nil
	case syntax.TLtEq:
		return value.Bool(lf <= rf), nil
	case syntax.TGt:
		return value.Bool(lf > rf), nil
	case syntax.TGtEq:
		return value.Bool(lf >= rf), nil
	default:
		return value.None(), fmt.Errorf("operator %s not defined for numbers", op)
	}
}

func asFloat(v value.Value) float64 {
	if v.Kind == value.KInt {
		return float64(v.Int)
	}
	return v.Float
}

func sameScalar(l, r value.Value) bool {
	if l.Kind != r.Kind {
		return false
	}
	switch l.Kind {
	case value.KBool:
		return l.Bool == r.Bool
	case value.KNone, value.KAuto:
		return true
	default:
		return l.String() == r.String()
	}
}

func rangeArray(l, r value.Value) (value.Value, error) {
	if l.Kind != value.KInt || r.Kind != value.KInt {
		return value.None(), fmt.Errorf("range bounds must be integers")
	}
	var out value.Array
	for i := l.Int; i < r.Int; i++ {
		out = append(out, value.Int(i))
	}
	return value.Value{Kind: value.KArray, Arr: out}, nil
}
