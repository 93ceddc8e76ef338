package testsupport

// Coverage helpers for generative tests. They track which literal shapes a
// generator actually produced, not implementation line coverage.

import (
	"testing"

	"jstest2objc/internal/literal"
)

// KindGate records the literal kinds seen across generated values.
type KindGate struct {
	seenKinds    map[literal.Kind]bool
	seenEmpty    map[literal.Kind]bool
	maxDepth     int
	seenConcat   bool
	seenSymbolKV bool
}

// NewKindGate creates a new, empty gate.
func NewKindGate() *KindGate {
	return &KindGate{
		seenKinds: make(map[literal.Kind]bool, 8),
		seenEmpty: make(map[literal.Kind]bool, 2),
	}
}

// Observe walks v and records kinds, empty containers, and nesting depth.
func (g *KindGate) Observe(v literal.Value) {
	g.observe(v, 1)
}

// ObserveConcat notes that a generated source used + concatenation.
func (g *KindGate) ObserveConcat() {
	g.seenConcat = true
}

func (g *KindGate) observe(v literal.Value, depth int) {
	g.seenKinds[v.Kind] = true
	if depth > g.maxDepth {
		g.maxDepth = depth
	}
	switch v.Kind {
	case literal.KindMapping:
		if len(v.Pairs) == 0 {
			g.seenEmpty[v.Kind] = true
		}
		for _, p := range v.Pairs {
			if p.Key.Kind == literal.KindSymbol {
				g.seenSymbolKV = true
			}
			g.observe(p.Key, depth+1)
			g.observe(p.Value, depth+1)
		}
	case literal.KindSequence:
		if len(v.Items) == 0 {
			g.seenEmpty[v.Kind] = true
		}
		for _, item := range v.Items {
			g.observe(item, depth+1)
		}
	}
}

// AssertAtLeast verifies that every wanted kind was observed and that values
// nested at least minDepth levels deep.
func (g *KindGate) AssertAtLeast(t testing.TB, wantKinds []literal.Kind, minDepth int, wantConcat bool) {
	t.Helper()
	for _, k := range wantKinds {
		if !g.seenKinds[k] {
			t.Fatalf("kind coverage incomplete: missing %v", k)
		}
	}
	if !g.seenSymbolKV {
		t.Fatalf("no mapping with a bare identifier key was generated")
	}
	if !g.seenEmpty[literal.KindMapping] || !g.seenEmpty[literal.KindSequence] {
		t.Fatalf("empty containers not generated: %v", g.seenEmpty)
	}
	if g.maxDepth < minDepth {
		t.Fatalf("max nesting depth %d, want at least %d", g.maxDepth, minDepth)
	}
	if wantConcat && !g.seenConcat {
		t.Fatalf("string concatenation not generated")
	}
}
