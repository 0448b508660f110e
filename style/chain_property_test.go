package style

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestChainFoldLaws checks the §8 StyleChain fold laws with randomized
// inputs rather than a handful of hand-picked examples, the way the pack's
// gopter usage (dimelords-idmllib, via other_examples) drives property
// tests for algebraic invariants.
func TestChainFoldLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	replaceKey := NewKey("k", "default")

	properties.Property("replace: get(chain_with(set(p,v)), p) == v", prop.ForAll(
		func(v string) bool {
			chain := Empty.Add(NewMap().Set(replaceKey, v))
			return chain.Get(replaceKey) == v
		},
		gen.AlphaString(),
	))

	foldKey := NewFoldKey("m", 0.0, Sum)

	properties.Property("fold: get(chain_with([set(p,a),set(p,b)]),p) == fold(b,a)", prop.ForAll(
		func(a, b float64) bool {
			chain := Empty.Add(NewMap().Set(foldKey, a)).Add(NewMap().Set(foldKey, b))
			got := chain.Get(foldKey)
			want := Sum(b, Sum(a, 0.0))
			return got == want
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("styles + empty == styles", prop.ForAll(
		func(v string) bool {
			chain := Empty.Add(NewMap().Set(replaceKey, v))
			withEmpty := chain.Add(NewMap())
			return withEmpty.Get(replaceKey) == chain.Get(replaceKey) && withEmpty.Depth() == chain.Depth()
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
