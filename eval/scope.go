package eval

import "github.com/inkwell-lang/inkwell/value"

// Scope is one binding frame of the evaluator's lexical environment
// (§4.3's "a stack of Scopes"). A closure captures a copy of every binding
// visible where it is defined (value.Func.Env holds that copy), so
// variables defined after closure creation are NOT visible inside it —
// only the bindings that existed at capture time, plus the closure's own
// name for recursion.
type Scope struct {
	parent *Scope
	vars   map[string]value.Value
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]value.Value)}
}

// Define introduces name in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, v value.Value) {
	s.vars[name] = v
}

// Lookup searches this scope and its ancestors, innermost first.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.None(), false
}

// Assign rebinds the nearest existing definition of name, or defines it
// in this scope if none exists anywhere in the chain. The evaluator
// itself binds `let` names and loop variables with Define, not Assign.
func (s *Scope) Assign(name string, v value.Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}
