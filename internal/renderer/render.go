package renderer

import (
	"fmt"
	"strings"

	"jstest2objc/internal/literal"
	"jstest2objc/internal/parser"
)

// NumberPolicy selects how booleans and integers are printed.
type NumberPolicy int

const (
	// NumbersCoerce prints @true, @false and @<digits>.
	NumbersCoerce NumberPolicy = iota
	// NumbersLegacy refuses booleans and integers, matching the historical
	// converter which failed on any such value.
	NumbersLegacy
)

// ParseNumberPolicy maps a configuration string to a policy.
func ParseNumberPolicy(s string) (NumberPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coerce":
		return NumbersCoerce, nil
	case "legacy":
		return NumbersLegacy, nil
	default:
		return 0, fmt.Errorf("unknown number policy %q (want coerce or legacy)", s)
	}
}

func (p NumberPolicy) String() string {
	if p == NumbersLegacy {
		return "legacy"
	}
	return "coerce"
}

// RenderError reports a value the printer cannot express.
type RenderError struct {
	kind       literal.Kind
	line       int
	column     int
	detailCode string
	detailArgs []any
	message    string
}

func newRenderError(v literal.Value, detailCode, message string, args ...any) *RenderError {
	return &RenderError{
		kind:       v.Kind,
		line:       v.Line,
		column:     v.Col,
		detailCode: detailCode,
		detailArgs: args,
		message:    fmt.Sprintf(message, args...),
	}
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	if e.line == 0 {
		return e.message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.line, e.column, e.message)
}

// Kind reports the value kind that could not be printed.
func (e *RenderError) Kind() literal.Kind {
	if e == nil {
		return 0
	}
	return e.kind
}

// DetailCode reports the error catalog code for this error.
func (e *RenderError) DetailCode() string {
	if e == nil {
		return ""
	}
	return e.detailCode
}

// DetailArgs exposes arguments used to format the CLI message.
func (e *RenderError) DetailArgs() []any {
	if e == nil {
		return nil
	}
	return e.detailArgs
}

// Render prints v as an Objective-C object literal.
func Render(v literal.Value, policy NumberPolicy) (string, error) {
	var b strings.Builder
	if err := render(&b, v, policy); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderString parses a literal expression and prints it.
func RenderString(input string, policy NumberPolicy) (string, error) {
	v, err := parser.Parse(input)
	if err != nil {
		return "", err
	}
	return Render(v, policy)
}

func render(b *strings.Builder, v literal.Value, policy NumberPolicy) error {
	switch v.Kind {
	case literal.KindMapping:
		b.WriteString("@{ ")
		for i, pair := range v.Pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := render(b, pair.Key, policy); err != nil {
				return err
			}
			b.WriteString(": ")
			if err := render(b, pair.Value, policy); err != nil {
				return err
			}
		}
		b.WriteString(" }")
	case literal.KindSequence:
		b.WriteString("@[ ")
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(" ,")
			}
			if err := render(b, item, policy); err != nil {
				return err
			}
		}
		b.WriteString(" ]")
	case literal.KindString, literal.KindSymbol:
		b.WriteString(`@"`)
		b.WriteString(escapeObjC(v.Text))
		b.WriteString(`"`)
	case literal.KindBool:
		if policy == NumbersLegacy {
			return newRenderError(v, "JTO-104-2", "%s value cannot be printed under the legacy number policy", v.Kind)
		}
		if v.Bool {
			b.WriteString("@true")
		} else {
			b.WriteString("@false")
		}
	case literal.KindInteger:
		if policy == NumbersLegacy {
			return newRenderError(v, "JTO-104-2", "%s value cannot be printed under the legacy number policy", v.Kind)
		}
		b.WriteString("@")
		b.WriteString(v.Text)
	default:
		return newRenderError(v, "JTO-104-1", "unsupported value kind %s", v.Kind)
	}
	return nil
}

func escapeObjC(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
