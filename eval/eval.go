// Package eval implements the tree-walking evaluator of §4.3 (component
// E): it walks the syntax package's green tree, producing content.Content
// for markup and value.Value for code expressions, maintaining a Scope
// stack for bindings/closures and an accumulating style.Map for
// set/show statements within the current block.
package eval

import (
	"errors"
	"fmt"
	"sort"

	"github.com/inkwell-lang/inkwell/content"
	"github.com/inkwell-lang/inkwell/diag"
	"github.com/inkwell-lang/inkwell/memo"
	"github.com/inkwell-lang/inkwell/source"
	"github.com/inkwell-lang/inkwell/style"
	"github.com/inkwell-lang/inkwell/syntax"
	"github.com/inkwell-lang/inkwell/value"
	"github.com/inkwell-lang/inkwell/world"
)

// breakSignal/continueSignal/returnSignal are sentinel errors carrying
// loop/function control flow up through ordinary Go return values,
// mirroring how the teacher's convert package threads "stop processing"
// signals (see convert's WalkStop-style sentinels) up a tree walk without
// exceptions.
type breakSignal struct{}
type continueSignal struct{}
type returnSignal struct{ value value.Value }

func (breakSignal) Error() string    { return "break outside loop" }
func (continueSignal) Error() string { return "continue outside loop" }
func (r returnSignal) Error() string { return "return outside function" }

// Evaluator holds the state threaded through one evaluation pass: a
// diagnostics Sink, the World the running program may query (dates,
// fonts, included files), the lazily declared style keys and the call
// depth. The current lexical Scope and the style.Map being accumulated
// for the innermost block's set/show statements are not fields; they are
// passed to each eval method as parameters.
type Evaluator struct {
	World  world.World
	Diags  *diag.Sink
	keys   map[string]style.Key // "kind.field" -> lazily declared style.Key
	depth  int

	// PriorCounters carries the previous introspection pass's final
	// counter values, read by the counter() builtin; introspect.Loop sets
	// this before each re-evaluation.
	PriorCounters map[string]int

	// Store interns the file paths the image() builtin is given into
	// FileIds it can hand to World.File. Left nil, image() reports an
	// error rather than panicking on a nil dereference.
	Store *source.Store

	// Memo is the tracked-input memoisation cache of §4.8 (component J).
	// Builtins that call through World (currently just image()) consult
	// it to skip recomputation when the World access they made would
	// still return the same thing. Left nil, those builtins simply always
	// recompute.
	Memo *memo.Cache
}

const maxCallDepth = 256

// NewEvaluator builds an Evaluator with a fresh global Scope seeded from
// the stdlib (slim-sprig string helpers plus the native content
// constructors in builtins.go).
func NewEvaluator(w world.World, diags *diag.Sink) (*Evaluator, *Scope) {
	e := &Evaluator{World: w, Diags: diags, keys: make(map[string]style.Key), PriorCounters: make(map[string]int)}
	root := NewScope(nil)
	registerStdlib(e, root)
	return e, root
}

// EvalModule evaluates a whole parsed source file's root markup node in a
// fresh child of scope, returning the top-level content it produced plus
// its exported bindings (every `let` defined directly in that module
// scope, in name order).
func (e *Evaluator) EvalModule(root *syntax.SyntaxNode, scope *Scope) (*value.Module, error) {
	modScope := NewScope(scope)
	c, err := e.evalMarkup(root, modScope, style.NewMap())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(modScope.vars))
	for name := range modScope.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	exports := value.NewDict()
	for _, name := range names {
		exports.Set(name, modScope.vars[name])
	}
	return &value.Module{Exports: exports, Content: c}, nil
}

func (e *Evaluator) keyFor(kind, field string) style.Key {
	name := kind + "." + field
	if k, ok := e.keys[name]; ok {
		return k
	}
	k := style.NewKey(name, value.None())
	e.keys[name] = k
	return k
}

// evalMarkup evaluates a SynMarkup node's children in order, threading a
// single accumulating style.Map that `set`/`show` children append to and
// finally attaching to the returned content (§4.4: "set f(args…) ... is
// appended to the active style map").
func (e *Evaluator) evalMarkup(n *syntax.SyntaxNode, scope *Scope, styles *style.Map) (content.Content, error) {
	result := content.Empty
	for _, child := range n.Children {
		switch child.Kind {
		case syntax.SynText:
			result = result.Seq(content.Text(child.Text, child.Span))
		case syntax.SynStrong:
			body, err := e.evalMarkup(child, scope, style.NewMap())
			if err != nil {
				return content.Empty, err
			}
			result = result.Seq(content.Elem("strong", nil, child.Span, body))
		case syntax.SynEmph:
			body, err := e.evalMarkup(child, scope, style.NewMap())
			if err != nil {
				return content.Empty, err
			}
			result = result.Seq(content.Elem("emph", nil, child.Span, body))
		case syntax.SynHeading:
			body, err := e.evalMarkup(child, scope, style.NewMap())
			if err != nil {
				return content.Empty, err
			}
			fields := map[string]any{"level": int64(child.HeadingLevel())}
			result = result.Seq(content.Elem("heading", fields, child.Span, body))
		case syntax.SynContentBlock:
			body, err := e.evalMarkup(child.Children[0], scope, style.NewMap())
			if err != nil {
				return content.Empty, err
			}
			result = result.Seq(body)
		case syntax.SynCodeEscape:
			v, err := e.evalCodeEscape(child, scope, styles)
			if err != nil {
				return content.Empty, err
			}
			if v.Kind == value.KContent {
				if c, ok := v.Payload.(content.Content); ok {
					result = result.Seq(c)
				}
			}
		default:
			// unknown construct at markup level (e.g. a malformed
			// node the parser attached an error to): skip it, the
			// diagnostic already explains why.
		}
	}
	if !styles.IsEmpty() {
		result = result.WithStyles(styles)
	}
	return result, nil
}

// evalCodeEscape evaluates the single expression a leading '#' in markup
// introduces. `let`/`set`/`show` are statements with side effects on
// scope/styles rather than expressions with a useful value, so they
// return None.
func (e *Evaluator) evalCodeEscape(n *syntax.SyntaxNode, scope *Scope, styles *style.Map) (value.Value, error) {
	expr := n.Children[0]
	switch expr.Kind {
	case syntax.SynLetBinding:
		return value.None(), e.evalLet(expr, scope)
	case syntax.SynSetRule:
		return value.None(), e.evalSet(expr, scope, styles)
	case syntax.SynShowRule:
		return value.None(), e.evalShow(expr, scope, styles)
	default:
		return e.Eval(expr, scope)
	}
}

func (e *Evaluator) evalLet(n *syntax.SyntaxNode, scope *Scope) error {
	if params := n.LetParams(); params != nil {
		names := params.ParamNames()
		body := n.LetValue()
		captured := NewScope(nil)
		for cur := scope; cur != nil; cur = cur.parent {
			for name, v := range cur.vars {
				if _, ok := captured.vars[name]; !ok {
					captured.vars[name] = v
				}
			}
		}
		fn := &value.Func{
			Name: n.LetName(),
			Env:  captured,
			Call: func(args value.Array, named *value.Dict) (value.Value, error) {
				return e.callClosure(names, body, captured, args, named)
			},
		}
		fnVal := value.Value{Kind: value.KFunction, Fn: fn}
		captured.Define(n.LetName(), fnVal)
		scope.Define(n.LetName(), fnVal)
		return nil
	}
	v, err := e.Eval(n.LetValue(), scope)
	if err != nil {
		return err
	}
	scope.Define(n.LetName(), v)
	return nil
}

func (e *Evaluator) callClosure(params []string, body *syntax.SyntaxNode, defScope *Scope, args value.Array, named *value.Dict) (value.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxCallDepth {
		return value.None(), errors.New("maximum call depth exceeded")
	}
	call := NewScope(defScope)
	for i, p := range params {
		if i < len(args) {
			call.Define(p, args[i])
		} else if named != nil {
			if v, ok := named.Get(p); ok {
				call.Define(p, v)
			}
		}
	}
	v, err := e.Eval(body, call)
	var ret returnSignal
	if errors.As(err, &ret) {
		return ret.value, nil
	}
	return v, err
}

// evalSet appends a property entry to styles for every named argument of
// `set target(name: value, ...)`, the key interned per (element-kind,
// field-name) pair via keyFor.
func (e *Evaluator) evalSet(n *syntax.SyntaxNode, scope *Scope, styles *style.Map) error {
	target := n.SetTarget()
	if cond := n.SetCondition(); cond != nil {
		v, err := e.Eval(cond, scope)
		if err != nil {
			return err
		}
		ok, err := v.Truthy()
		if err != nil || !ok {
			return err
		}
	}
	if target.Kind != syntax.SynFuncCall {
		return fmt.Errorf("set: expected a function call, found %s", target.Kind)
	}
	kind := target.CallCallee().Text
	for _, named := range target.CallArgs().NamedArgs() {
		v, err := e.Eval(named.Children[0], scope)
		if err != nil {
			return err
		}
		styles.Set(e.keyFor(kind, named.Text), v)
	}
	return nil
}

// evalShow builds a style.Recipe from `show [selector]: transform` and
// appends it to styles; the realize package's dispatch loop later walks
// Chain.Recipes() and calls Recipe.Apply against real content, which is
// where this recipe's transform actually executes.
func (e *Evaluator) evalShow(n *syntax.SyntaxNode, scope *Scope, styles *style.Map) error {
	sel := style.OfKind("*")
	if selNode := n.ShowSelector(); selNode != nil {
		s, err := e.evalSelector(selNode, scope)
		if err != nil {
			return err
		}
		sel = s
	}
	transform := n.ShowTransform()
	styles.Show(style.Recipe{
		Selector: sel,
		Apply:    e.makeRecipeApply(transform, scope),
	})
	return nil
}

func (e *Evaluator) evalSelector(n *syntax.SyntaxNode, scope *Scope) (style.Selector, error) {
	switch n.Kind {
	case syntax.SynIdent:
		return style.OfKind(n.Text), nil
	case syntax.SynString:
		return style.WithLabel(n.Text), nil
	default:
		v, err := e.Eval(n, scope)
		if err != nil {
			return style.Selector{}, err
		}
		if v.Kind == value.KString {
			return style.WithLabel(v.Str), nil
		}
		return style.OfKind(v.String()), nil
	}
}

// makeRecipeApply closes over the transform expression and defining
// scope so realize can invoke it once per matching element without
// re-parsing or re-resolving names each time.
func (e *Evaluator) makeRecipeApply(transform *syntax.SyntaxNode, defScope *Scope) func(style.Matchable) (any, *style.Map, error) {
	return func(m style.Matchable) (any, *style.Map, error) {
		c, ok := m.(content.Content)
		if !ok {
			return nil, nil, fmt.Errorf("show: matched value is not content")
		}
		call := NewScope(defScope)
		call.Define("it", value.Value{Kind: value.KContent, Payload: c})
		v, err := e.Eval(transform, call)
		if err != nil {
			return nil, nil, err
		}
		switch v.Kind {
		case value.KContent:
			return v.Payload, nil, nil
		case value.KStyles:
			m2, _ := v.Payload.(*style.Map)
			return nil, m2, nil
		default:
			return content.Text(v.String(), c.Span), nil, nil
		}
	}
}

// Eval evaluates a code expression node to a Value.
func (e *Evaluator) Eval(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	switch n.Kind {
	case syntax.SynLiteral:
		return evalLiteral(n.Text), nil
	case syntax.SynString:
		return value.Str(n.Text), nil
	case syntax.SynIdent:
		if v, ok := scope.Lookup(n.Text); ok {
			return v, nil
		}
		return value.None(), fmt.Errorf("unknown name %q", n.Text)
	case syntax.SynContentBlock:
		c, err := e.evalMarkup(n.Children[0], scope, style.NewMap())
		if err != nil {
			return value.None(), err
		}
		return value.Value{Kind: value.KContent, Payload: c}, nil
	case syntax.SynMarkup:
		c, err := e.evalMarkup(n, scope, style.NewMap())
		if err != nil {
			return value.None(), err
		}
		return value.Value{Kind: value.KContent, Payload: c}, nil
	case syntax.SynFuncCall:
		return e.evalCall(n, scope)
	case syntax.SynFieldAccess:
		base, err := e.Eval(n.FieldAccessBase(), scope)
		if err != nil {
			return value.None(), err
		}
		if base.Kind == value.KModule && base.Mod != nil {
			if v, ok := base.Mod.Exports.Get(n.Text); ok {
				return v, nil
			}
		}
		if base.Kind == value.KDict && base.Map != nil {
			if v, ok := base.Map.Get(n.Text); ok {
				return v, nil
			}
		}
		return value.None(), fmt.Errorf("no field %q", n.Text)
	case syntax.SynBinary:
		return e.evalBinary(n, scope)
	case syntax.SynUnary:
		return e.evalUnary(n, scope)
	case syntax.SynIfExpr:
		return e.evalIf(n, scope)
	case syntax.SynWhileLoop:
		return e.evalWhile(n, scope)
	case syntax.SynForLoop:
		return e.evalFor(n, scope)
	case syntax.SynReturn:
		var v value.Value
		var err error
		if len(n.Children) > 0 {
			v, err = e.Eval(n.Children[0], scope)
			if err != nil {
				return value.None(), err
			}
		}
		return value.None(), returnSignal{value: v}
	case syntax.SynBreak:
		return value.None(), breakSignal{}
	case syntax.SynContinue:
		return value.None(), continueSignal{}
	case syntax.SynDict:
		d := value.NewDict()
		for _, entry := range n.Children {
			v, err := e.Eval(entry.Children[0], scope)
			if err != nil {
				return value.None(), err
			}
			d.Set(entry.Text, v)
		}
		return value.Value{Kind: value.KDict, Map: d}, nil
	case syntax.SynError:
		return value.None(), fmt.Errorf("malformed expression")
	default:
		return value.None(), fmt.Errorf("cannot evaluate node kind %s", n.Kind)
	}
}

func evalLiteral(text string) value.Value {
	switch text {
	case "none":
		return value.None()
	case "auto":
		return value.Auto()
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	var i int64
	var f float64
	if _, err := fmt.Sscanf(text, "%d", &i); err == nil && fmt.Sprintf("%d", i) == text {
		return value.Int(i)
	}
	if _, err := fmt.Sscanf(text, "%g", &f); err == nil {
		return value.Float(f)
	}
	return value.Str(text)
}

func (e *Evaluator) evalCall(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	callee, err := e.Eval(n.CallCallee(), scope)
	if err != nil {
		return value.None(), err
	}
	if callee.Kind != value.KFunction || callee.Fn == nil {
		return value.None(), fmt.Errorf("not callable")
	}
	argsNode := n.CallArgs()
	var positional value.Array
	for _, p := range argsNode.PositionalArgs() {
		var v value.Value
		var err error
		if p.Kind == syntax.SynContentBlock {
			v, err = e.Eval(p, scope)
		} else {
			v, err = e.Eval(p, scope)
		}
		if err != nil {
			return value.None(), err
		}
		positional = append(positional, v)
	}
	named := value.NewDict()
	for _, nArg := range argsNode.NamedArgs() {
		v, err := e.Eval(nArg.Children[0], scope)
		if err != nil {
			return value.None(), err
		}
		named.Set(nArg.Text, v)
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxCallDepth {
		return value.None(), errors.New("maximum call depth exceeded")
	}
	return callee.Fn.Call(positional, named)
}

func (e *Evaluator) evalUnary(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	v, err := e.Eval(n.BinaryLeft(), scope)
	if err != nil {
		return value.None(), err
	}
	if n.Text == "not" {
		b, err := v.Truthy()
		if err != nil {
			return value.None(), err
		}
		return value.Bool(!b), nil
	}
	switch v.Kind {
	case value.KInt:
		return value.Int(-v.Int), nil
	case value.KFloat:
		return value.Float(-v.Float), nil
	default:
		return value.None(), fmt.Errorf("cannot negate %s", v.Kind)
	}
}

func (e *Evaluator) evalBinary(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	if n.Text == "and" || n.Text == "or" {
		l, err := e.Eval(n.BinaryLeft(), scope)
		if err != nil {
			return value.None(), err
		}
		lb, err := l.Truthy()
		if err != nil {
			return value.None(), err
		}
		if n.Text == "and" && !lb {
			return value.Bool(false), nil
		}
		if n.Text == "or" && lb {
			return value.Bool(true), nil
		}
		r, err := e.Eval(n.BinaryRight(), scope)
		if err != nil {
			return value.None(), err
		}
		rb, err := r.Truthy()
		return value.Bool(rb), err
	}

	l, err := e.Eval(n.BinaryLeft(), scope)
	if err != nil {
		return value.None(), err
	}
	r, err := e.Eval(n.BinaryRight(), scope)
	if err != nil {
		return value.None(), err
	}
	return applyBinaryOp(n.Op, l, r)
}

func (e *Evaluator) evalIf(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	cond, err := e.Eval(n.IfCond(), scope)
	if err != nil {
		return value.None(), err
	}
	ok, err := cond.Truthy()
	if err != nil {
		return value.None(), err
	}
	if ok {
		return e.Eval(n.IfThen(), scope)
	}
	if els := n.IfElse(); els != nil {
		return e.Eval(els, scope)
	}
	return value.None(), nil
}

func (e *Evaluator) evalWhile(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	result := content.Empty
	for {
		cond, err := e.Eval(n.WhileCond(), scope)
		if err != nil {
			return value.None(), err
		}
		ok, err := cond.Truthy()
		if err != nil {
			return value.None(), err
		}
		if !ok {
			break
		}
		v, err := e.Eval(n.WhileBody(), scope)
		if errors.As(err, new(breakSignal)) {
			break
		}
		if errors.As(err, new(continueSignal)) {
			continue
		}
		if err != nil {
			return value.None(), err
		}
		if v.Kind == value.KContent {
			if c, ok := v.Payload.(content.Content); ok {
				result = result.Seq(c)
			}
		}
	}
	return value.Value{Kind: value.KContent, Payload: result}, nil
}

func (e *Evaluator) evalFor(n *syntax.SyntaxNode, scope *Scope) (value.Value, error) {
	iter, err := e.Eval(n.ForIter(), scope)
	if err != nil {
		return value.None(), err
	}
	if iter.Kind != value.KArray {
		return value.None(), fmt.Errorf("for: expected an array to iterate, found %s", iter.Kind)
	}
	result := content.Empty
	for _, item := range iter.Arr {
		loop := NewScope(scope)
		loop.Define(n.ForName(), item)
		v, err := e.Eval(n.ForBody(), loop)
		if errors.As(err, new(breakSignal)) {
			break
		}
		if errors.As(err, new(continueSignal)) {
			continue
		}
		if err != nil {
			return value.None(), err
		}
		if v.Kind == value.KContent {
			if c, ok := v.Payload.(content.Content); ok {
				result = result.Seq(c)
			}
		}
	}
	return value.Value{Kind: value.KContent, Payload: result}, nil
}
