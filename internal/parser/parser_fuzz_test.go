package parser_test

import (
	"errors"
	"testing"

	"jstest2objc/internal/parser"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		`{"a": 1}`,
		`{foo: "bar", baz: [true, false, null]}`,
		`"a" + 'b'`,
		`[1, 2.5, -3e4,]`,
		`"é\n"`,
		`"\x41\uD83D\uDE00\q"`,
		`{a: `,
		`function() {}`,
		"[[[[[]]]]]",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		v, err := parser.Parse(input)
		if err != nil {
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) returned %T, want *parser.ParseError", input, err)
			}
			if perr.DetailCode == "" {
				t.Fatalf("Parse(%q) error without detail code: %v", input, err)
			}
			if perr.Line < 1 || perr.Column < 1 {
				t.Fatalf("Parse(%q) error position %d:%d", input, perr.Line, perr.Column)
			}
			return
		}
		if v.Line < 1 || v.Col < 1 {
			t.Fatalf("Parse(%q) value position %d:%d", input, v.Line, v.Col)
		}
	})
}
