package evaluator

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// SyntaxError reports an expression that cannot be parsed.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

type node interface {
	offset() int
}

type literal struct {
	at    int
	value interface{}
}

type variable struct {
	at   int
	name string
}

type methodCall struct {
	at     int
	target node
	name   string
	args   []node
}

type indexing struct {
	at     int
	target node
	index  node
}

func (n *literal) offset() int    { return n.at }
func (n *variable) offset() int   { return n.at }
func (n *methodCall) offset() int { return n.at }
func (n *indexing) offset() int   { return n.at }

type parser struct {
	s   scanner.Scanner
	tok rune
	err *SyntaxError
}

func parse(expr string) (node, error) {
	p := &parser{}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		// Leading zeros are decimal; number rejects literals that are bad
		// in base 10 too.
		if strings.HasSuffix(msg, "octal literal") {
			return
		}
		p.fail(s.Position.Offset, msg)
	}
	p.next()

	n := p.expr()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail(p.pos(), fmt.Sprintf("unexpected %s", p.s.TokenText()))
	}
	if p.err != nil {
		return nil, p.err
	}
	return n, nil
}

func (p *parser) next() {
	p.tok = p.s.Scan()
}

func (p *parser) pos() int {
	return p.s.Position.Offset
}

func (p *parser) fail(pos int, msg string) {
	if p.err == nil {
		p.err = &SyntaxError{Pos: pos, Msg: msg}
	}
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.fail(p.pos(), fmt.Sprintf("expected %q, found %s", tok, describe(p.tok, p.s.TokenText())))
		return
	}
	p.next()
}

func describe(tok rune, text string) string {
	if tok == scanner.EOF {
		return "end of expression"
	}
	return strconv.Quote(text)
}

// expr := primary { '.' ident '(' [expr {',' expr}] ')' | '[' expr ']' }
func (p *parser) expr() node {
	n := p.primary()
	for p.err == nil {
		switch p.tok {
		case '.':
			p.next()
			at := p.pos()
			if p.tok != scanner.Ident {
				p.fail(at, "expected method name")
				return nil
			}
			name := p.s.TokenText()
			p.next()
			n = &methodCall{at: at, target: n, name: name, args: p.args()}
		case '[':
			at := p.pos()
			p.next()
			idx := p.expr()
			p.expect(']')
			n = &indexing{at: at, target: n, index: idx}
		default:
			return n
		}
	}
	return nil
}

func (p *parser) args() []node {
	p.expect('(')
	var args []node
	for p.err == nil && p.tok != ')' {
		if len(args) > 0 {
			p.expect(',')
		}
		args = append(args, p.expr())
	}
	p.expect(')')
	return args
}

// primary := '#' ident | number | string | true | false | null | '(' expr ')'
func (p *parser) primary() node {
	at := p.pos()
	switch p.tok {
	case '#':
		p.next()
		if p.tok != scanner.Ident {
			p.fail(at, "expected variable name after #")
			return nil
		}
		name := p.s.TokenText()
		p.next()
		return &variable{at: at, name: name}

	case '(':
		p.next()
		n := p.expr()
		p.expect(')')
		return n

	case '-':
		p.next()
		if p.tok != scanner.Int && p.tok != scanner.Float {
			p.fail(at, "expected number after -")
			return nil
		}
		return p.number(at, "-")

	case scanner.Int, scanner.Float:
		return p.number(at, "")

	case scanner.String:
		text := p.s.TokenText()
		p.next()
		s, err := strconv.Unquote(text)
		if err != nil {
			p.fail(at, err.Error())
			return nil
		}
		return &literal{at: at, value: s}

	case scanner.Ident:
		text := p.s.TokenText()
		p.next()
		switch text {
		case "true":
			return &literal{at: at, value: true}
		case "false":
			return &literal{at: at, value: false}
		case "null":
			return &literal{at: at, value: nil}
		}
		p.fail(at, fmt.Sprintf("unknown identifier %s; variables start with #", text))
		return nil

	default:
		p.fail(at, fmt.Sprintf("unexpected %s", describe(p.tok, p.s.TokenText())))
		return nil
	}
}

func (p *parser) number(at int, sign string) node {
	tok, text := p.tok, sign+p.s.TokenText()
	p.next()
	if tok == scanner.Int {
		i, err := strconv.ParseInt(text, intBase(text), strconv.IntSize)
		if err != nil {
			p.fail(at, err.Error())
			return nil
		}
		return &literal{at: at, value: int(i)}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.fail(at, err.Error())
		return nil
	}
	return &literal{at: at, value: f}
}

// intBase is 10 unless text has a 0x, 0o or 0b prefix.
func intBase(text string) int {
	digits := strings.TrimPrefix(text, "-")
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		return 0
	}
	return 10
}
