package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"jstest2objc/internal/literal"
)

const maxDepth = 256

type ParseError struct {
	Line       int
	Column     int
	Msg        string
	DetailCode string
	DetailArgs []any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func newParseError(line, column int, detailCode, message string, args ...any) *ParseError {
	return &ParseError{
		Line:       line,
		Column:     column,
		Msg:        message,
		DetailCode: detailCode,
		DetailArgs: args,
	}
}

type parser struct {
	src   string
	pos   int
	line  int
	col   int
	depth int
}

// Parse reads exactly one literal expression from input. Accepted shapes are
// object and array literals, single or double quoted strings (optionally
// joined with +), integers, floats, true, false and null. Anything else is
// rejected with a *ParseError; nothing is ever evaluated.
func Parse(input string) (literal.Value, error) {
	p := parser{src: input, line: 1, col: 1}
	p.skipSpace()
	if p.eof() {
		return literal.Value{}, newParseError(p.line, p.col, "JTO-103-1", "empty literal expression")
	}
	v, err := p.parseExpr()
	if err != nil {
		return literal.Value{}, err
	}
	p.skipSpace()
	if !p.eof() {
		r, _ := p.peek()
		return literal.Value{}, newParseError(p.line, p.col, "JTO-103-5", fmt.Sprintf("unexpected trailing input starting with %q", r), string(r))
	}
	return v, nil
}

// parseExpr handles "a" + "b" concatenation; every operand must be a string.
func (p *parser) parseExpr() (literal.Value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return literal.Value{}, err
	}
	for {
		p.skipSpace()
		r, _ := p.peek()
		if r != '+' || p.eof() {
			return left, nil
		}
		opLine, opCol := p.line, p.col
		p.advance(1)
		p.skipSpace()
		right, err := p.parseTerm()
		if err != nil {
			return literal.Value{}, err
		}
		if left.Kind != literal.KindString || right.Kind != literal.KindString {
			return literal.Value{}, newParseError(opLine, opCol, "JTO-103-6", fmt.Sprintf("operator + applied to %s and %s", left.Kind, right.Kind), left.Kind.String(), right.Kind.String())
		}
		left.Text += right.Text
	}
}

func (p *parser) parseTerm() (literal.Value, error) {
	if p.eof() {
		return literal.Value{}, newParseError(p.line, p.col, "JTO-103-10", "unexpected end of input")
	}
	r, _ := p.peek()
	switch {
	case r == '{':
		return p.parseMapping()
	case r == '[':
		return p.parseSequence()
	case r == '"' || r == '\'':
		return p.parseString()
	case r == '-' || r == '+' || isDigit(r):
		return p.parseNumber()
	case isIdentStart(r):
		line, col := p.line, p.col
		word := p.scanIdent()
		switch word {
		case "true":
			return literal.Value{Kind: literal.KindBool, Bool: true, Line: line, Col: col}, nil
		case "false":
			return literal.Value{Kind: literal.KindBool, Bool: false, Line: line, Col: col}, nil
		case "null":
			return literal.Value{Kind: literal.KindNull, Line: line, Col: col}, nil
		}
		return literal.Value{}, newParseError(line, col, "JTO-103-4", fmt.Sprintf("unsupported identifier %q", word), word)
	default:
		return literal.Value{}, newParseError(p.line, p.col, "JTO-103-3", fmt.Sprintf("unexpected character %q", r), string(r))
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return newParseError(p.line, p.col, "JTO-103-11", fmt.Sprintf("literal nested deeper than %d levels", maxDepth), maxDepth)
	}
	return nil
}

func (p *parser) parseMapping() (literal.Value, error) {
	if err := p.enter(); err != nil {
		return literal.Value{}, err
	}
	defer func() { p.depth-- }()

	v := literal.Value{Kind: literal.KindMapping, Line: p.line, Col: p.col}
	p.advance(1) // {
	for {
		p.skipSpace()
		if p.eof() {
			return literal.Value{}, newParseError(p.line, p.col, "JTO-103-10", "unexpected end of input inside mapping")
		}
		if r, _ := p.peek(); r == '}' {
			p.advance(1)
			return v, nil
		}
		key, err := p.parseKey()
		if err != nil {
			return literal.Value{}, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return literal.Value{}, err
		}
		p.skipSpace()
		val, err := p.parseExpr()
		if err != nil {
			return literal.Value{}, err
		}
		v.Pairs = append(v.Pairs, literal.Pair{Key: key, Value: val})
		p.skipSpace()
		r, _ := p.peek()
		switch {
		case p.eof():
			return literal.Value{}, newParseError(p.line, p.col, "JTO-103-10", "unexpected end of input inside mapping")
		case r == ',':
			p.advance(1)
		case r == '}':
			p.advance(1)
			return v, nil
		default:
			return literal.Value{}, newParseError(p.line, p.col, "JTO-103-7", fmt.Sprintf("expected ',' or '}' but found %q", r), ", or }")
		}
	}
}

func (p *parser) parseKey() (literal.Value, error) {
	r, _ := p.peek()
	switch {
	case r == '"' || r == '\'':
		return p.parseString()
	case isIdentStart(r):
		line, col := p.line, p.col
		return literal.Value{Kind: literal.KindSymbol, Text: p.scanIdent(), Line: line, Col: col}, nil
	default:
		return literal.Value{}, newParseError(p.line, p.col, "JTO-103-8", fmt.Sprintf("unsupported mapping key starting with %q", r), string(r))
	}
}

func (p *parser) parseSequence() (literal.Value, error) {
	if err := p.enter(); err != nil {
		return literal.Value{}, err
	}
	defer func() { p.depth-- }()

	v := literal.Value{Kind: literal.KindSequence, Line: p.line, Col: p.col}
	p.advance(1) // [
	for {
		p.skipSpace()
		if p.eof() {
			return literal.Value{}, newParseError(p.line, p.col, "JTO-103-10", "unexpected end of input inside sequence")
		}
		if r, _ := p.peek(); r == ']' {
			p.advance(1)
			return v, nil
		}
		item, err := p.parseExpr()
		if err != nil {
			return literal.Value{}, err
		}
		v.Items = append(v.Items, item)
		p.skipSpace()
		r, _ := p.peek()
		switch {
		case p.eof():
			return literal.Value{}, newParseError(p.line, p.col, "JTO-103-10", "unexpected end of input inside sequence")
		case r == ',':
			p.advance(1)
		case r == ']':
			p.advance(1)
			return v, nil
		default:
			return literal.Value{}, newParseError(p.line, p.col, "JTO-103-7", fmt.Sprintf("expected ',' or ']' but found %q", r), ", or ]")
		}
	}
}

func (p *parser) parseString() (literal.Value, error) {
	line, col := p.line, p.col
	quote, _ := p.peek()
	p.advance(1)
	var b strings.Builder
	for {
		if p.eof() {
			return literal.Value{}, newParseError(line, col, "JTO-103-2", "unterminated string literal")
		}
		r, size := p.peek()
		if r == quote {
			p.advance(size)
			return literal.Value{Kind: literal.KindString, Text: b.String(), Line: line, Col: col}, nil
		}
		if r != '\\' {
			b.WriteRune(r)
			p.advance(size)
			continue
		}
		escLine, escCol := p.line, p.col
		p.advance(1)
		if p.eof() {
			return literal.Value{}, newParseError(line, col, "JTO-103-2", "unterminated string literal")
		}
		e, esize := p.peek()
		p.advance(esize)
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			n, err := p.hexEscape(escLine, escCol, 'x', 2)
			if err != nil {
				return literal.Value{}, err
			}
			b.WriteRune(rune(n))
		case 'u':
			n, err := p.hexEscape(escLine, escCol, 'u', 4)
			if err != nil {
				return literal.Value{}, err
			}
			r := rune(n)
			if utf16.IsSurrogate(r) {
				r = p.lowSurrogate(r)
			}
			b.WriteRune(r)
		case '"', '\'', '\\', '/':
			b.WriteRune(e)
		default:
			return literal.Value{}, newParseError(escLine, escCol, "JTO-103-9", fmt.Sprintf("unsupported escape \\%c", e))
		}
	}
}

// lowSurrogate combines hi with an immediately following \uXXXX low
// surrogate. Without one the cursor stays put and hi decodes to U+FFFD.
func (p *parser) lowSurrogate(hi rune) rune {
	if !strings.HasPrefix(p.src[p.pos:], `\u`) || p.pos+6 > len(p.src) {
		return utf8.RuneError
	}
	lo, err := strconv.ParseUint(p.src[p.pos+2:p.pos+6], 16, 32)
	if err != nil {
		return utf8.RuneError
	}
	pair := utf16.DecodeRune(hi, rune(lo))
	if pair != utf8.RuneError {
		p.advance(6)
	}
	return pair
}

// hexEscape reads the digits of a \x or \u escape; the cursor sits after the
// escape letter.
func (p *parser) hexEscape(line, col int, letter rune, digits int) (uint64, error) {
	if p.pos+digits > len(p.src) {
		return 0, newParseError(line, col, "JTO-103-9", fmt.Sprintf("truncated \\%c escape", letter))
	}
	hex := p.src[p.pos : p.pos+digits]
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, newParseError(line, col, "JTO-103-9", fmt.Sprintf("invalid \\%c escape %q", letter, hex))
	}
	p.advance(digits)
	return n, nil
}

func (p *parser) parseNumber() (literal.Value, error) {
	line, col := p.line, p.col
	start := p.pos
	if r, _ := p.peek(); r == '-' || r == '+' {
		p.advance(1)
	}
	if r, _ := p.peek(); p.eof() || !isDigit(r) {
		return literal.Value{}, newParseError(line, col, "JTO-103-3", fmt.Sprintf("unexpected character %q", p.src[start:p.pos]), p.src[start:p.pos])
	}
	isFloat := false
	p.scanDigits()
	if r, _ := p.peek(); r == '.' {
		if next, _ := p.peekAhead(1); isDigit(next) {
			isFloat = true
			p.advance(1)
			p.scanDigits()
		}
	}
	if r, _ := p.peek(); r == 'e' || r == 'E' {
		save := *p
		p.advance(1)
		if s, _ := p.peek(); s == '+' || s == '-' {
			p.advance(1)
		}
		if d, _ := p.peek(); !p.eof() && isDigit(d) {
			isFloat = true
			p.scanDigits()
		} else {
			*p = save
		}
	}
	text := strings.TrimPrefix(p.src[start:p.pos], "+")
	kind := literal.KindInteger
	if isFloat {
		kind = literal.KindFloat
	}
	return literal.Value{Kind: kind, Text: text, Line: line, Col: col}, nil
}

func (p *parser) expect(want rune) error {
	r, _ := p.peek()
	if p.eof() {
		return newParseError(p.line, p.col, "JTO-103-10", fmt.Sprintf("unexpected end of input, expected %q", want))
	}
	if r != want {
		return newParseError(p.line, p.col, "JTO-103-7", fmt.Sprintf("expected %q but found %q", want, r), string(want))
	}
	p.advance(1)
	return nil
}

func (p *parser) scanIdent() string {
	start := p.pos
	for !p.eof() {
		r, size := p.peek()
		if !isIdentChar(r) {
			break
		}
		p.advance(size)
	}
	return p.src[start:p.pos]
}

func (p *parser) scanDigits() {
	for !p.eof() {
		r, _ := p.peek()
		if !isDigit(r) {
			return
		}
		p.advance(1)
	}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := p.peek()
		if !unicode.IsSpace(r) {
			return
		}
		p.advance(size)
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() (rune, int) {
	if p.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(p.src[p.pos:])
}

func (p *parser) peekAhead(offset int) (rune, int) {
	idx := p.pos + offset
	if idx >= len(p.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(p.src[idx:])
}

func (p *parser) advance(n int) {
	for n > 0 && p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		n -= size
		if r == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
