package convert

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"jstest2objc/internal/parser"
	"jstest2objc/internal/renderer"
)

// DefaultVariables lists, in order, the variables whose literal initializers
// are rewritten. hash is deliberately last.
var DefaultVariables = []string{"string", "out", "byes", "source", "messageString", "dude", "url", "hash"}

// Rules selects which rewrites run and how literals print.
type Rules struct {
	Variables        []string
	Assertions       bool
	Numbers          renderer.NumberPolicy
	NormalizeHelpers bool
}

// DefaultRules reproduces the historical converter, except that integers and
// booleans print instead of failing.
func DefaultRules() Rules {
	return Rules{
		Variables:        append([]string(nil), DefaultVariables...),
		Assertions:       true,
		Numbers:          renderer.NumbersCoerce,
		NormalizeHelpers: true,
	}
}

// Step is one named, global rewrite over the whole text.
type Step struct {
	Name  string
	Apply func(text string) (string, error)
}

var (
	testDeclPattern      = regexp.MustCompile(`it\("([^"]*)", function\(\) \{`)
	describePattern      = regexp.MustCompile(`describe\("([^"]*)".*`)
	assertionPattern     = regexp.MustCompile(`shouldCompileTo\(([^,]*),\s*([^,]*),\s*([^,]*),\s*([^,]*)\);`)
	assertionHashPattern = regexp.MustCompile(`shouldCompileTo\(([^,]*),\s*\{([^}]*)\},\s*([^,]*),\s*([^,]*)\);`)
)

const (
	assertionTemplate     = "\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@${1} withContext:${2}],\n\t    \t@${3});\n"
	assertionHashTemplate = "\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@${1} withContext:{${2}}],\n\t    \t@${3});\n"
)

// Pipeline returns the ordered rewrite steps. Order is part of the contract:
//
//  1. test declarations
//  2. [hash, helpers] normalization, before assertions see the argument
//  3. variable literals, one step per name in Rules.Variables
//  4. describe comments
//  5. assertions (4-argument form, then inline-hash form)
//  6. block closers, always last
func Pipeline(rules Rules) []Step {
	steps := []Step{{Name: "test-declarations", Apply: rewriteTestDeclarations}}
	if rules.NormalizeHelpers {
		steps = append(steps, Step{Name: "helpers-argument", Apply: func(text string) (string, error) {
			return strings.ReplaceAll(text, "[hash, helpers]", "hash"), nil
		}})
	}
	for _, name := range rules.Variables {
		steps = append(steps, Step{Name: "variable:" + name, Apply: func(text string) (string, error) {
			return ReplaceVariable(text, name, rules.Numbers)
		}})
	}
	steps = append(steps, Step{Name: "describe-comments", Apply: func(text string) (string, error) {
		return describePattern.ReplaceAllString(text, "// ${1}"), nil
	}})
	if rules.Assertions {
		steps = append(steps,
			Step{Name: "assertions", Apply: func(text string) (string, error) {
				return assertionPattern.ReplaceAllString(text, assertionTemplate), nil
			}},
			Step{Name: "assertions-inline-hash", Apply: func(text string) (string, error) {
				return assertionHashPattern.ReplaceAllString(text, assertionHashTemplate), nil
			}},
		)
	}
	steps = append(steps, Step{Name: "block-closers", Apply: func(text string) (string, error) {
		return strings.ReplaceAll(text, "});", "}"), nil
	}})
	return steps
}

// Transform runs every pipeline step over input in order. The context is
// checked between steps.
func Transform(ctx context.Context, input string, rules Rules) (string, error) {
	text := input
	for _, step := range Pipeline(rules) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := step.Apply(text)
		if err != nil {
			return "", err
		}
		text = out
	}
	return text, nil
}

// ReplaceVariable rewrites every `var <name> = <literal>;` statement into
// `id <name> = <objc literal>;`. The literal must not contain a semicolon.
func ReplaceVariable(text, name string, policy renderer.NumberPolicy) (string, error) {
	re := regexp.MustCompile(`var\s+` + regexp.QuoteMeta(name) + `\s*=\s*([^;]*);`)
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		expr := text[m[2]:m[3]]
		v, err := parser.Parse(expr)
		if err != nil {
			return "", fmt.Errorf("var %s: %w", name, err)
		}
		rendered, err := renderer.Render(v, policy)
		if err != nil {
			return "", fmt.Errorf("var %s: %w", name, err)
		}
		b.WriteString(text[last:m[0]])
		b.WriteString("id ")
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(rendered)
		b.WriteString(";")
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

func rewriteTestDeclarations(text string) (string, error) {
	return testDeclPattern.ReplaceAllStringFunc(text, func(match string) string {
		desc := testDeclPattern.FindStringSubmatch(match)[1]
		return "// " + desc + "\n- (void) " + MethodName(desc) + "\n{"
	}), nil
}

// Each marker becomes a word of its own, so "#each" yields "SharpsignEach"
// rather than "Sharpsigneach".
var methodNameReplacer = strings.NewReplacer("#", " sharpSign ", "@", " at ", "-", " dash ")

// MethodName derives an XCTest method name from a test description:
// "#each with @index" becomes "testSharpsignEachWithAtIndex".
func MethodName(desc string) string {
	var b strings.Builder
	b.WriteString("test")
	for _, word := range strings.Fields(methodNameReplacer.Replace(desc)) {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
