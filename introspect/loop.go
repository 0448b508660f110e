// Package introspect implements the fixed-point compilation loop of §4.6
// and §9 Open Question 1: evaluate and realize are re-run, each pass
// seeing the previous pass's counter values, until counters stop
// changing or a configured iteration cap is hit.
package introspect

import (
	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/content"
	"github.com/inkwell-lang/inkwell/diag"
	"github.com/inkwell-lang/inkwell/eval"
	"github.com/inkwell-lang/inkwell/memo"
	"github.com/inkwell-lang/inkwell/realize"
	"github.com/inkwell-lang/inkwell/source"
	"github.com/inkwell-lang/inkwell/style"
	"github.com/inkwell-lang/inkwell/syntax"
	"github.com/inkwell-lang/inkwell/world"
)

// Result is one converged (or exhausted) compilation: the realized
// element tree, the counter registry that produced it, and how many
// passes it took.
type Result struct {
	Elements   []realize.Element
	Counters   *realize.Registry
	Iterations int
	Converged  bool
}

// Loop runs evaluate -> realize repeatedly against root, re-seeding each
// pass's Evaluator with the previous pass's final counter values, until
// two consecutive passes agree on every counter's final value (a content
// tree with no counter() queries converges after exactly one pass) or
// cfg.MaxIterations is reached. On exhaustion it pushes a
// diag.KindConvergence warning (§7) and returns the last pass's result
// rather than failing the compile outright.
//
// store interns the file paths world-dependent builtins (image()) are
// given; cache is the tracked-input memoisation cache those builtins
// consult (§4.8). Both may be nil, in which case the affected builtins
// simply recompute every pass. cache.Advance() is called once per
// iteration, per §4.8's "a generation advances at the top of each
// introspection iteration" and §5's listing of the memo cache as
// process-wide shared state.
func Loop(w world.World, root *syntax.SyntaxNode, diags *diag.Sink, cfg config.IntrospectionConfig, store *source.Store, cache *memo.Cache) (Result, error) {
	max := cfg.MaxIterations
	if max < 1 {
		max = 1
	}

	prior := map[string]int{}
	var last Result

	for i := 1; i <= max; i++ {
		if cache != nil {
			cache.Advance()
		}

		e, scope := eval.NewEvaluator(w, diags)
		e.PriorCounters = prior
		e.Store = store
		e.Memo = cache

		mod, err := e.EvalModule(root, scope)
		if err != nil {
			return Result{}, diag.Errorf(diag.KindName, root.Span, "evaluation failed: %v", err)
		}
		top, _ := mod.Content.(content.Content)

		r := realize.NewRealizer(diags)
		elements, err := r.Realize(top, style.Empty)
		if err != nil {
			return Result{}, err
		}

		current := snapshotCounters(r.Counters)
		last = Result{Elements: elements, Counters: r.Counters, Iterations: i, Converged: countersEqual(prior, current)}

		if countersEqual(prior, current) {
			last.Converged = true
			return last, nil
		}
		prior = current
	}

	diags.Push(diag.Warningf(diag.KindConvergence, syntax.Span{}, "introspection did not converge after %d iterations", max))
	last.Converged = false
	return last, nil
}

func snapshotCounters(reg *realize.Registry) map[string]int {
	out := make(map[string]int)
	for _, name := range reg.Names() {
		out[name] = reg.Get(name).Final()
	}
	return out
}

func countersEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
