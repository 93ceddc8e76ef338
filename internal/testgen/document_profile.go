package testgen

import (
	"fmt"
	"math/rand"
	"strings"
)

// DocumentProfile generates whole spec files in the shape the converter
// expects: describe blocks holding it blocks that declare literals and call
// shouldCompileTo. Case.Tests counts the generated it blocks.
type DocumentProfile struct {
	literals LiteralProfile
}

var (
	descWords     = []string{"basic", "context", "with", "compiling", "escaping", "#each", "@index", "block-params", "helpers", "paths", "it's"}
	templateWords = []string{`"{{foo}}"`, `"{{#goodbyes}}{{text}}! {{/goodbyes}}"`, "string", `'{{awesome}}'`, `"Message: {{message}}"`}
	varNames      = []string{"string", "hash", "source", "dude", "url"}
)

func (p *DocumentProfile) Generate(r *rand.Rand, iteration uint32) Case {
	var b strings.Builder
	tests := 0
	groups := 1 + r.Intn(3)
	for gi := 0; gi < groups; gi++ {
		fmt.Fprintf(&b, "describe(%q, function() {\n", p.description(r))
		for ti := 0; ti < 1+r.Intn(3); ti++ {
			tests++
			fmt.Fprintf(&b, "  it(\"%s\", function() {\n", p.description(r))
			for _, name := range pick(r, varNames, r.Intn(3)) {
				c := p.literals.Generate(r, uint32(r.Intn(3)))
				fmt.Fprintf(&b, "    var %s = %s;\n", name, c.Source)
			}
			p.assertion(r, &b)
			b.WriteString("  });\n\n")
		}
		b.WriteString("});\n")
	}
	return Case{Source: b.String(), Tests: tests}
}

func (p *DocumentProfile) description(r *rand.Rand) string {
	n := r.Intn(4)
	words := pick(r, descWords, n)
	return strings.Join(words, " ")
}

func (p *DocumentProfile) assertion(r *rand.Rand, b *strings.Builder) {
	tmpl := templateWords[r.Intn(len(templateWords))]
	switch r.Intn(3) {
	case 0:
		fmt.Fprintf(b, "    shouldCompileTo(%s, hash, \"expected\", \"message\");\n", tmpl)
	case 1:
		fmt.Fprintf(b, "    shouldCompileTo(%s, [hash, helpers], \"expected\", \"with helpers\");\n", tmpl)
		fmt.Fprintf(b, "    shouldCompileTo(%s, {foo: \"bar\"}, \"bar\", \"inline\");\n", tmpl)
	default:
		fmt.Fprintf(b, "    shouldCompileTo(%s, {foo: \"bar\", baz: 1}, \"bar\", \"inline hash\");\n", tmpl)
	}
}

func pick(r *rand.Rand, from []string, n int) []string {
	out := make([]string, 0, n)
	for _, i := range r.Perm(len(from))[:min(n, len(from))] {
		out = append(out, from[i])
	}
	return out
}
