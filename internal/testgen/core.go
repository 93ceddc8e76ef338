package testgen

import (
	"math/rand"
	"testing"

	"jstest2objc/internal/literal"
)

// Failure phases for Expectation.Phase.
const (
	PhaseParse  = "parse"
	PhaseRender = "render"
)

// Expectation describes whether a generated case should error and how.
type Expectation struct {
	ShouldErr  bool
	DetailCode string
	Phase      string
	// Legacy asks for the legacy number policy when rendering.
	Legacy bool
}

// Case represents one generated test instance.
type Case struct {
	// Source is JavaScript text: a literal expression or a whole spec file,
	// depending on the profile.
	Source string
	// Value is the generated literal, for coverage observation.
	Value literal.Value
	// Expected is the Objective-C rendering of Value, built independently of
	// the renderer. Empty for document profiles.
	Expected string
	Concat   bool
	Tests    int
	Expect   Expectation
}

// Meta carries seed/iteration used to generate a Case.
type Meta struct {
	Seed      int64
	Iteration uint32
}

// Profile generates cases for one domain (literals or documents).
type Profile interface {
	Generate(r *rand.Rand, iteration uint32) Case
}

// IterationFunc is invoked for each generated case.
type IterationFunc func(t *testing.T, meta Meta, c Case)

// RunIterations drives a profile across iterations and invokes fn for each.
func RunIterations(t *testing.T, seed int64, iterations uint32, p Profile, fn IterationFunc) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	for i := uint32(0); i < iterations; i++ {
		c := p.Generate(r, i)
		fn(t, Meta{Seed: seed, Iteration: i}, c)
	}
}
