package eval

import (
	"fmt"
	"reflect"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/inkwell-lang/inkwell/value"
)

// stdlibNames lists the subset of github.com/go-task/slim-sprig/v3's
// text-template helper FuncMap this engine exposes as native functions,
// the same library the teacher's config package templates
// config.yaml.tmpl through (gencfg.Process, which itself runs
// text/template with a sprig-derived FuncMap). Reused here for the
// engine's own string-manipulation stdlib rather than hand-rolling
// upper/lower/trim/etc. a second time.
var stdlibNames = []string{
	"upper", "lower", "title", "trim", "trimAll", "trunc", "repeat",
	"substr", "indent", "nindent", "wrap", "quote", "squote", "plural",
	"cat", "replace", "abbrev", "initials", "swapCase", "camelcase",
	"snakecase", "kebabcase", "shuffle", "nospace",
}

// registerStdlib installs every name in stdlibNames into root, adapting
// slim-sprig's heterogeneously-typed Go functions to value.Func via
// reflection — the same call-by-reflection technique text/template
// itself uses to invoke a FuncMap, generalized here from "template
// action name -> Go func" to "engine identifier -> value.Func".
func registerStdlib(e *Evaluator, root *Scope) {
	funcs := sprig.TxtFuncMap()
	for _, name := range stdlibNames {
		fn, ok := funcs[name]
		if !ok {
			continue
		}
		root.Define(name, value.Value{Kind: value.KFunction, Fn: adaptReflected(name, fn)})
	}
	for name, fn := range builtinFuncs(e) {
		root.Define(name, value.Value{Kind: value.KFunction, Fn: fn})
	}
}

// adaptReflected wraps a slim-sprig helper (arbitrary positional Go
// parameter types, single return value or (value, error)) as a
// value.Func, converting engine Values to and from the helper's declared
// parameter/return types.
func adaptReflected(name string, fn any) *value.Func {
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	return &value.Func{
		Name: name,
		Call: func(args value.Array, _ *value.Dict) (value.Value, error) {
			variadic := rt.IsVariadic()
			want := rt.NumIn()
			if !variadic && len(args) != want {
				return value.None(), fmt.Errorf("%s: expected %d arguments, found %d", name, want, len(args))
			}
			in := make([]reflect.Value, len(args))
			for i, a := range args {
				var pt reflect.Type
				switch {
				case variadic && i >= want-1:
					pt = rt.In(want - 1).Elem()
				case i < want:
					pt = rt.In(i)
				default:
					return value.None(), fmt.Errorf("%s: too many arguments", name)
				}
				gv, err := toGoValue(a, pt)
				if err != nil {
					return value.None(), fmt.Errorf("%s: argument %d: %w", name, i, err)
				}
				in[i] = gv
			}
			out := rv.Call(in)
			if len(out) == 2 {
				if errv, ok := out[1].Interface().(error); ok && errv != nil {
					return value.None(), errv
				}
			}
			if len(out) == 0 {
				return value.None(), nil
			}
			return fromGoValue(out[0].Interface()), nil
		},
	}
}

func toGoValue(v value.Value, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(v.String()).Convert(t), nil
	case reflect.Int, reflect.Int64, reflect.Int32:
		switch v.Kind {
		case value.KInt:
			return reflect.ValueOf(v.Int).Convert(t), nil
		case value.KFloat:
			return reflect.ValueOf(int64(v.Float)).Convert(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("expected integer, found %s", v.Kind)
		}
	case reflect.Float32, reflect.Float64:
		switch v.Kind {
		case value.KFloat:
			return reflect.ValueOf(v.Float).Convert(t), nil
		case value.KInt:
			return reflect.ValueOf(float64(v.Int)).Convert(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("expected float, found %s", v.Kind)
		}
	case reflect.Bool:
		b, err := v.Truthy()
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case reflect.Interface:
		return reflect.ValueOf(v.String()), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type %s", t)
	}
}

func fromGoValue(r any) value.Value {
	switch x := r.(type) {
	case string:
		return value.Str(x)
	case int:
		return value.Int(int64(x))
	case int64:
		return value.Int(x)
	case float64:
		return value.Float(x)
	case bool:
		return value.Bool(x)
	default:
		return value.Str(fmt.Sprintf("%v", x))
	}
}
