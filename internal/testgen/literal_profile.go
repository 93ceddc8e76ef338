package testgen

import (
	"fmt"
	"math/rand"
	"strings"

	"jstest2objc/internal/literal"
)

// LiteralProfile generates literal expressions together with their expected
// Objective-C rendering under the coerce number policy. Generated text never
// contains ';' so cases can be embedded in var statements.
type LiteralProfile struct {
	// MaxDepth bounds container nesting; zero means 3.
	MaxDepth int
	// FailureEvery turns every Nth case into an invalid literal with Expect
	// filled in. Zero generates valid literals only.
	FailureEvery uint32
}

var (
	stringPieces = []string{"", "foo", "bar baz", "{{hello}}", "Goodbye", "cruel world!", "tab\there", "line\nbreak", `back\slash`, `say "hi"`, "it's", "héllo", "日本語", "#each", "@index", "a-b"}
	symbolKeys   = []string{"foo", "bar", "hello", "world", "_private", "$ref", "goodbyes", "text", "url"}
)

func (p *LiteralProfile) Generate(r *rand.Rand, iteration uint32) Case {
	maxDepth := p.MaxDepth
	if maxDepth == 0 {
		maxDepth = 3
	}
	g := literalGen{r: r, maxDepth: maxDepth}
	if p.FailureEvery > 0 && iteration%p.FailureEvery == p.FailureEvery-1 {
		return g.failing()
	}
	// Alternate the root between mapping and sequence so both containers
	// appear early in every run.
	var v literal.Value
	var src, want string
	switch iteration % 3 {
	case 0:
		v, src, want = g.mapping(1)
	case 1:
		v, src, want = g.sequence(1)
	default:
		v, src, want = g.value(1)
	}
	return Case{Source: src, Value: v, Expected: want, Concat: g.concat}
}

var (
	bareWords  = []string{"helpers", "undefined", "foo", "hash"}
	badEscapes = []string{`\q`, `\1`, `\xZZ`, `\u12G4`}
)

// failing wraps a valid literal and one offending element in a sequence, so
// the offending element is the first thing to fail.
func (g *literalGen) failing() Case {
	ok, okSrc, _ := g.value(1)
	wrap := func(bad literal.Value, badSrc string) (literal.Value, string) {
		return literal.Sequence(ok, bad), "[" + okSrc + "," + g.space() + badSrc + "]"
	}
	var c Case
	switch g.r.Intn(5) {
	case 0:
		w := bareWords[g.r.Intn(len(bareWords))]
		_, c.Source = wrap(literal.Value{}, "{"+symbolKeys[g.r.Intn(len(symbolKeys))]+": "+w+"}")
		c.Expect = Expectation{ShouldErr: true, DetailCode: "JTO-103-4", Phase: PhaseParse}
	case 1:
		head := strings.TrimSuffix(quoteJS(stringPieces[g.r.Intn(len(stringPieces))], false), `"`)
		_, c.Source = wrap(literal.Value{}, head+badEscapes[g.r.Intn(len(badEscapes))]+`"`)
		c.Expect = Expectation{ShouldErr: true, DetailCode: "JTO-103-9", Phase: PhaseParse}
	case 2:
		c.Value, c.Source = wrap(literal.Value{Kind: literal.KindNull}, "null")
		c.Expect = Expectation{ShouldErr: true, DetailCode: "JTO-104-1", Phase: PhaseRender}
	case 3:
		f := fmt.Sprintf("%d.%d", g.r.Intn(100), 1+g.r.Intn(9))
		c.Value, c.Source = wrap(literal.Value{Kind: literal.KindFloat, Text: f}, f)
		c.Expect = Expectation{ShouldErr: true, DetailCode: "JTO-104-1", Phase: PhaseRender}
	default:
		d := fmt.Sprint(g.r.Intn(1000))
		c.Value, c.Source = wrap(literal.Integer(d), d)
		c.Expect = Expectation{ShouldErr: true, DetailCode: "JTO-104-2", Phase: PhaseRender, Legacy: true}
	}
	return c
}

type literalGen struct {
	r        *rand.Rand
	maxDepth int
	concat   bool
}

func (g *literalGen) space() string {
	opts := []string{"", " ", "  ", "\n  ", "\t"}
	return opts[g.r.Intn(len(opts))]
}

func (g *literalGen) value(depth int) (literal.Value, string, string) {
	n := 4
	if depth < g.maxDepth {
		n = 6
	}
	switch g.r.Intn(n) {
	case 0:
		return g.str()
	case 1:
		b := g.r.Intn(2) == 0
		return literal.Bool(b), fmt.Sprint(b), "@" + fmt.Sprint(b)
	case 2, 3:
		if g.r.Intn(2) == 0 {
			return g.str()
		}
		d := fmt.Sprint(g.r.Intn(2001) - 1000)
		return literal.Integer(d), d, "@" + d
	case 4:
		return g.mapping(depth + 1)
	default:
		return g.sequence(depth + 1)
	}
}

func (g *literalGen) str() (literal.Value, string, string) {
	s := stringPieces[g.r.Intn(len(stringPieces))]
	src := quoteJS(s, g.r.Intn(2) == 0)
	if s != "" && g.r.Intn(4) == 0 {
		extra := stringPieces[g.r.Intn(len(stringPieces))]
		src = src + g.space() + "+" + g.space() + quoteJS(extra, g.r.Intn(2) == 0)
		s += extra
		g.concat = true
	}
	return literal.String(s), src, `@"` + escapeObjC(s) + `"`
}

func (g *literalGen) key() (literal.Value, string, string) {
	if g.r.Intn(2) == 0 {
		k := symbolKeys[g.r.Intn(len(symbolKeys))]
		return literal.Symbol(k), k, `@"` + k + `"`
	}
	s := stringPieces[g.r.Intn(len(stringPieces))]
	return literal.String(s), quoteJS(s, g.r.Intn(2) == 0), `@"` + escapeObjC(s) + `"`
}

func (g *literalGen) mapping(depth int) (literal.Value, string, string) {
	n := g.r.Intn(4)
	if depth >= g.maxDepth {
		n = g.r.Intn(2)
	}
	var pairs []literal.Pair
	var src, want []string
	for i := 0; i < n; i++ {
		kv, ks, kw := g.key()
		vv, vs, vw := g.value(depth)
		pairs = append(pairs, literal.Pair{Key: kv, Value: vv})
		src = append(src, g.space()+ks+g.space()+":"+g.space()+vs)
		want = append(want, kw+": "+vw)
	}
	trailing := ""
	if n > 0 && g.r.Intn(5) == 0 {
		trailing = ","
	}
	return literal.Mapping(pairs...),
		"{" + strings.Join(src, ",") + trailing + g.space() + "}",
		"@{ " + strings.Join(want, ", ") + " }"
}

func (g *literalGen) sequence(depth int) (literal.Value, string, string) {
	n := g.r.Intn(4)
	if depth >= g.maxDepth {
		n = g.r.Intn(2)
	}
	var items []literal.Value
	var src, want []string
	for i := 0; i < n; i++ {
		v, s, w := g.value(depth)
		items = append(items, v)
		src = append(src, g.space()+s)
		want = append(want, w)
	}
	trailing := ""
	if n > 0 && g.r.Intn(5) == 0 {
		trailing = ","
	}
	return literal.Sequence(items...),
		"[" + strings.Join(src, ",") + trailing + g.space() + "]",
		"@[ " + strings.Join(want, " ,") + " ]"
}

func quoteJS(s string, single bool) string {
	q := byte('"')
	if single {
		q = '\''
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func escapeObjC(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(s)
}
