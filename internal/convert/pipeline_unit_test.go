package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jstest2objc/internal/parser"
	"jstest2objc/internal/renderer"
	"jstest2objc/internal/testsupport"
)

func TestTransform_SampleSpec(t *testing.T) {
	got, err := Transform(context.Background(), sampleSpec, DefaultRules())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	testsupport.ExpectText(t, got, sampleObjC)
}

func TestTransform_TestDeclaration(t *testing.T) {
	got, err := Transform(context.Background(), `it("foo bar", function() {`, DefaultRules())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if want := "// foo bar\n- (void) testFooBar\n{"; got != want {
		t.Fatalf("Transform() = %q, want %q", got, want)
	}
}

func TestMethodName(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"foo bar", "testFooBar"},
		{"a-b", "testADashB"},
		{"#each with @index", "testSharpsignEachWithAtIndex"},
		{"#each", "testSharpsignEach"},
		{"block-params", "testBlockDashParams"},
		{"HTML escaping", "testHtmlEscaping"},
		{"  spaced   out ", "testSpacedOut"},
		{"it's", "testIt's"},
		{"émoji café", "testÉmojiCafé"},
		{"", "test"},
	}
	for _, tc := range cases {
		if got := MethodName(tc.desc); got != tc.want {
			t.Fatalf("MethodName(%q) = %q, want %q", tc.desc, got, tc.want)
		}
	}
}

func TestTransform_DescribeBecomesComment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`describe("group", function() {`, "// group"},
		{`  describe("nested group", function() {`, "  // nested group"},
		{"describe(\"a\", function() {\nkeep me", "// a\nkeep me"},
	}
	for _, tc := range cases {
		got, err := Transform(context.Background(), tc.in, DefaultRules())
		if err != nil {
			t.Fatalf("Transform(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Transform(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransform_Assertions(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "four arguments",
			in:   `shouldCompileTo("{{foo}}", hash, "bar", "message is dropped");`,
			want: "\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@\"{{foo}}\" withContext:hash],\n\t    \t@\"bar\");\n",
		},
		{
			name: "helpers argument normalized first",
			in:   `shouldCompileTo(string, [hash, helpers], "out", "msg");`,
			want: "\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@string withContext:hash],\n\t    \t@\"out\");\n",
		},
		{
			name: "inline hash with several keys",
			in:   `shouldCompileTo(string, {foo: "bar", baz: "q"}, "bar", "msg");`,
			want: "\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@string withContext:{foo: \"bar\", baz: \"q\"}],\n\t    \t@\"bar\");\n",
		},
		{
			name: "arguments across lines",
			in:   "shouldCompileTo(\"{{foo}}\",\n    hash,\n    \"bar\",\n    \"msg\");",
			want: "\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@\"{{foo}}\" withContext:hash],\n\t    \t@\"bar\");\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transform(context.Background(), tc.in, DefaultRules())
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			testsupport.ExpectText(t, got, tc.want)
		})
	}
}

func TestTransform_AssertionsDisabled(t *testing.T) {
	rules := DefaultRules()
	rules.Assertions = false
	in := `shouldCompileTo("{{foo}}", hash, "bar", "msg");`
	got, err := Transform(context.Background(), in, rules)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != in {
		t.Fatalf("Transform() = %q, want input unchanged", got)
	}
}

func TestTransform_KeepHelpers(t *testing.T) {
	rules := DefaultRules()
	rules.NormalizeHelpers = false
	rules.Assertions = false
	in := `shouldCompileTo(string, [hash, helpers], "out", "msg");`
	got, err := Transform(context.Background(), in, rules)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != in {
		t.Fatalf("Transform() = %q, want input unchanged", got)
	}
}

func TestTransform_ForeignTextUntouched(t *testing.T) {
	in := "#import <XCTest/XCTest.h>\n\nint main(void) { return 0; }\n// var hashes = 3\n"
	got, err := Transform(context.Background(), in, DefaultRules())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != in {
		t.Fatalf("Transform() changed foreign text:\n%s", got)
	}
}

// The closer rewrite is textual, so it also hits "});" in code that is not a
// test block.
func TestTransform_BlockCloserIsTextual(t *testing.T) {
	in := "dispatch_async(q, ^{ [self run]; });\n"
	got, err := Transform(context.Background(), in, DefaultRules())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if want := "dispatch_async(q, ^{ [self run]; }\n"; got != want {
		t.Fatalf("Transform() = %q, want %q", got, want)
	}
}

// A three-argument call matches neither assertion form and is left for manual
// conversion. Its trailing text can pair up with a later converted assertion,
// so running the converter over its own output is not supported.
func TestTransform_ThreeArgumentAssertionLeftInPlace(t *testing.T) {
	in := "shouldCompileTo(\"{{foo}}\", hash, \"bar\");\nshouldCompileTo(\"{{baz}}\", hash, \"qux\", \"msg\");\n"
	want := "shouldCompileTo(\"{{foo}}\", hash, \"bar\");\n" +
		"\t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@\"{{baz}}\" withContext:hash],\n\t    \t@\"qux\");\n\n"
	got, err := Transform(context.Background(), in, DefaultRules())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	testsupport.ExpectText(t, got, want)

	again, err := Transform(context.Background(), got, DefaultRules())
	if err != nil {
		t.Fatalf("second Transform() error = %v", err)
	}
	if again == got {
		t.Fatalf("expected the leftover call to pair with the converted one on a second run")
	}
}

func TestReplaceVariable(t *testing.T) {
	cases := []struct {
		name     string
		variable string
		in       string
		want     string
	}{
		{"mapping", "x", `var x = {"a": 1};`, `id x = @{ @"a": @1 };`},
		{"every occurrence", "hash", "var hash = {a: 1};\nfoo();\nvar hash = [];\n", "id hash = @{ @\"a\": @1 };\nfoo();\nid hash = @[  ];\n"},
		{"spans lines", "hash", "var hash = {\n  a: \"b\"\n};", `id hash = @{ @"a": @"b" };`},
		{"no spaces around equals", "string", `var string="{{foo}}";`, `id string = @"{{foo}}";`},
		{"longer name untouched", "string", `var strings = "x";`, `var strings = "x";`},
		{"absent", "url", `var hash = {};`, `var hash = {};`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReplaceVariable(tc.in, tc.variable, renderer.NumbersCoerce)
			if err != nil {
				t.Fatalf("ReplaceVariable() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("ReplaceVariable() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReplaceVariable_Errors(t *testing.T) {
	_, err := ReplaceVariable(`var hash = helpers;`, "hash", renderer.NumbersCoerce)
	perr := testsupport.ExpectErrorAs(t, err, "JTO-103-4", func(e *parser.ParseError) string { return e.DetailCode })
	if perr.Line != 1 || perr.Column != 1 {
		t.Fatalf("position = %d:%d, want 1:1", perr.Line, perr.Column)
	}
	if !strings.HasPrefix(err.Error(), "var hash: ") {
		t.Fatalf("error not prefixed with variable name: %v", err)
	}

	_, err = ReplaceVariable(`var x = ;`, "x", renderer.NumbersCoerce)
	testsupport.ExpectErrorAs(t, err, "JTO-103-1", func(e *parser.ParseError) string { return e.DetailCode })

	_, err = ReplaceVariable(`var x = {"a": 1};`, "x", renderer.NumbersLegacy)
	testsupport.ExpectErrorAs(t, err, "JTO-104-2", func(e *renderer.RenderError) string { return e.DetailCode() })
}

func TestPipeline_StepOrder(t *testing.T) {
	rules := DefaultRules()
	rules.Variables = []string{"string", "hash"}
	var got []string
	for _, s := range Pipeline(rules) {
		got = append(got, s.Name)
	}
	want := []string{
		"test-declarations",
		"helpers-argument",
		"variable:string",
		"variable:hash",
		"describe-comments",
		"assertions",
		"assertions-inline-hash",
		"block-closers",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("step order mismatch (-want +got):\n%s", diff)
	}

	rules.Assertions = false
	rules.NormalizeHelpers = false
	got = got[:0]
	for _, s := range Pipeline(rules) {
		got = append(got, s.Name)
	}
	want = []string{"test-declarations", "variable:string", "variable:hash", "describe-comments", "block-closers"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reduced step order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRules_VariableOrder(t *testing.T) {
	want := []string{"string", "out", "byes", "source", "messageString", "dude", "url", "hash"}
	rules := DefaultRules()
	if diff := cmp.Diff(want, rules.Variables); diff != "" {
		t.Fatalf("default variables mismatch (-want +got):\n%s", diff)
	}
	rules.Variables[0] = "changed"
	if DefaultVariables[0] != "string" {
		t.Fatalf("DefaultRules shares its slice with DefaultVariables")
	}
	if rules := DefaultRules(); rules.Numbers != renderer.NumbersCoerce || !rules.Assertions || !rules.NormalizeHelpers {
		t.Fatalf("unexpected defaults: %+v", rules)
	}
}

func TestTransform_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Transform(ctx, sampleSpec, DefaultRules())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Transform() error = %v, want context.Canceled", err)
	}
}
