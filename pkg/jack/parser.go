package jack

import (
	"fmt"
	"io"
	"strconv"

	"go.hmny.dev/n2t-core/pkg/errs"
)

// ----------------------------------------------------------------------------
// Parser

// Parser performs recursive descent over the Jack grammar, holding the Tokenizer
// cursor and a single lookahead token. Each grammar rule below creates its own
// Node, consumes exactly the tokens its production requires, and returns the
// completed subtree to its caller; there's no shared mutable tree or generated-id
// bookkeeping, ownership just flows up the call stack as return values.
type Parser struct {
	tok *Tokenizer
	cur Token
	has bool
}

// NewParser wraps a reader over Jack source text into a Parser ready to Parse.
func NewParser(r io.Reader) *Parser {
	return &Parser{tok: NewTokenizer(r)}
}

// Parse consumes the entire input as a single 'class' production and returns its
// root Node. Any token left over once the class closes is itself a grammar error.
func (p *Parser) Parse() (*Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	root, err := p.parseClass()
	if err != nil {
		return nil, err
	}
	if p.has {
		return nil, p.unexpectedToken()
	}

	return root, nil
}

func (p *Parser) advance() error {
	if !p.tok.HasMoreTokens() {
		if err := p.tok.Err(); err != nil {
			return err
		}
		p.has = false
		return nil
	}
	if !p.tok.Advance() {
		if err := p.tok.Err(); err != nil {
			return err
		}
		p.has = false
		return nil
	}

	p.cur, p.has = p.tok.Current(), true
	return nil
}

func (p *Parser) unexpectedToken() error {
	if !p.has {
		return fmt.Errorf("unexpected end of input: %w", errs.ErrUnexpectedEndOfInput)
	}
	return fmt.Errorf("unexpected token at line %d: %w", p.cur.Line, errs.ErrUnexpectedToken)
}

// ----------------------------------------------------------------------------
// Lookahead predicates

func (p *Parser) atKeyword(kws ...Keyword) bool {
	if !p.has || p.cur.Type != Keyword {
		return false
	}
	for _, kw := range kws {
		if p.cur.KeywordVal == kw {
			return true
		}
	}
	return false
}

func (p *Parser) atSymbol(syms ...byte) bool {
	if !p.has || p.cur.Type != Symbol {
		return false
	}
	for _, s := range syms {
		if p.cur.SymbolVal == s {
			return true
		}
	}
	return false
}

func (p *Parser) atIdentifier() bool   { return p.has && p.cur.Type == Identifier }
func (p *Parser) atIntConst() bool     { return p.has && p.cur.Type == IntConst }
func (p *Parser) atStringConst() bool  { return p.has && p.cur.Type == StringConst }
func (p *Parser) isPossiblyTerm() bool {
	return p.atIntConst() || p.atStringConst() || p.atKeyword(True, False, Null, This) ||
		p.atIdentifier() || p.atSymbol('-', '~', '(')
}

// ----------------------------------------------------------------------------
// Leaf-consuming helpers

func (p *Parser) expectKeyword(parent *Node, kws ...Keyword) error {
	if !p.atKeyword(kws...) {
		return p.unexpectedToken()
	}
	parent.AddChild(NewLeaf("keyword", keywordText[p.cur.KeywordVal]))
	return p.advance()
}

func (p *Parser) expectSymbol(parent *Node, syms ...byte) error {
	if !p.atSymbol(syms...) {
		return p.unexpectedToken()
	}
	parent.AddChild(NewLeaf("symbol", string(p.cur.SymbolVal)))
	return p.advance()
}

func (p *Parser) expectIdentifier(parent *Node) error {
	if !p.atIdentifier() {
		return p.unexpectedToken()
	}
	parent.AddChild(NewLeaf("identifier", p.cur.IdentifierVal))
	return p.advance()
}

func (p *Parser) takeIntConst(parent *Node) error {
	parent.AddChild(NewLeaf("integerConstant", strconv.Itoa(p.cur.IntVal)))
	return p.advance()
}

func (p *Parser) takeStringConst(parent *Node) error {
	parent.AddChild(NewLeaf("stringConstant", p.cur.StringVal))
	return p.advance()
}

// parseType handles the 'int' | 'char' | 'boolean' | identifier production shared
// by classVarDec, varDec and parameterList.
func (p *Parser) parseType(parent *Node) error {
	if p.atKeyword(Int, Char, Boolean) {
		return p.expectKeyword(parent, Int, Char, Boolean)
	}
	if p.atIdentifier() {
		return p.expectIdentifier(parent)
	}
	return p.unexpectedToken()
}

// ----------------------------------------------------------------------------
// Grammar rules

func (p *Parser) parseClass() (*Node, error) {
	n := NewNode("class")

	if err := p.expectKeyword(n, Class); err != nil {
		return nil, err
	}
	if err := p.expectIdentifier(n); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(n, '{'); err != nil {
		return nil, err
	}

	for p.atKeyword(Static, Field) {
		child, err := p.parseClassVarDec()
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	for p.atKeyword(Constructor, Function, Method) {
		child, err := p.parseSubroutineDec()
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}

	if err := p.expectSymbol(n, '}'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseClassVarDec() (*Node, error) {
	n := NewNode("classVarDec")

	if err := p.expectKeyword(n, Static, Field); err != nil {
		return nil, err
	}
	if err := p.parseType(n); err != nil {
		return nil, err
	}
	if err := p.expectIdentifier(n); err != nil {
		return nil, err
	}
	for p.atSymbol(',') {
		if err := p.expectSymbol(n, ','); err != nil {
			return nil, err
		}
		if err := p.expectIdentifier(n); err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(n, ';'); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *Parser) parseSubroutineDec() (*Node, error) {
	n := NewNode("subroutineDec")

	if err := p.expectKeyword(n, Constructor, Function, Method); err != nil {
		return nil, err
	}

	switch {
	case p.atKeyword(Void, Int, Char, Boolean):
		if err := p.expectKeyword(n, Void, Int, Char, Boolean); err != nil {
			return nil, err
		}
	case p.atIdentifier():
		if err := p.expectIdentifier(n); err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpectedToken()
	}

	if err := p.expectIdentifier(n); err != nil { // subroutineName
		return nil, err
	}
	if err := p.expectSymbol(n, '('); err != nil {
		return nil, err
	}

	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	n.AddChild(params)

	if err := p.expectSymbol(n, ')'); err != nil {
		return nil, err
	}

	body, err := p.parseSubroutineBody()
	if err != nil {
		return nil, err
	}
	n.AddChild(body)

	return n, nil
}

func (p *Parser) parseParameterList() (*Node, error) {
	n := NewNode("parameterList")

	if p.atKeyword(Int, Char, Boolean) || p.atIdentifier() {
		if err := p.parseType(n); err != nil {
			return nil, err
		}
		if err := p.expectIdentifier(n); err != nil {
			return nil, err
		}
		for p.atSymbol(',') {
			if err := p.expectSymbol(n, ','); err != nil {
				return nil, err
			}
			if err := p.parseType(n); err != nil {
				return nil, err
			}
			if err := p.expectIdentifier(n); err != nil {
				return nil, err
			}
		}
	}

	return n, nil
}

func (p *Parser) parseSubroutineBody() (*Node, error) {
	n := NewNode("subroutineBody")

	if err := p.expectSymbol(n, '{'); err != nil {
		return nil, err
	}
	for p.atKeyword(Var) {
		child, err := p.parseVarDec()
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}

	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	n.AddChild(stmts)

	if err := p.expectSymbol(n, '}'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseVarDec() (*Node, error) {
	n := NewNode("varDec")

	if err := p.expectKeyword(n, Var); err != nil {
		return nil, err
	}
	if err := p.parseType(n); err != nil {
		return nil, err
	}
	if err := p.expectIdentifier(n); err != nil {
		return nil, err
	}
	for p.atSymbol(',') {
		if err := p.expectSymbol(n, ','); err != nil {
			return nil, err
		}
		if err := p.expectIdentifier(n); err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(n, ';'); err != nil {
		return nil, err
	}

	return n, nil
}

// parseStatements always returns a 'statements' node, even when it ends up empty:
// callers never special-case "no statements".
func (p *Parser) parseStatements() (*Node, error) {
	n := NewNode("statements")

	for {
		var (
			child *Node
			err   error
		)

		switch {
		case p.atKeyword(Let):
			child, err = p.parseLetStatement()
		case p.atKeyword(If):
			child, err = p.parseIfStatement()
		case p.atKeyword(While):
			child, err = p.parseWhileStatement()
		case p.atKeyword(Do):
			child, err = p.parseDoStatement()
		case p.atKeyword(Return):
			child, err = p.parseReturnStatement()
		default:
			return n, nil
		}

		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
}

func (p *Parser) parseLetStatement() (*Node, error) {
	n := NewNode("letStatement")

	if err := p.expectKeyword(n, Let); err != nil {
		return nil, err
	}
	if err := p.expectIdentifier(n); err != nil {
		return nil, err
	}

	if p.atSymbol('[') {
		if err := p.expectSymbol(n, '['); err != nil {
			return nil, err
		}
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.AddChild(idx)
		if err := p.expectSymbol(n, ']'); err != nil {
			return nil, err
		}
	}

	if err := p.expectSymbol(n, '='); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.AddChild(rhs)

	if err := p.expectSymbol(n, ';'); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseIfStatement() (*Node, error) {
	n := NewNode("ifStatement")

	if err := p.expectKeyword(n, If); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(n, '('); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.AddChild(cond)
	if err := p.expectSymbol(n, ')'); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(n, '{'); err != nil {
		return nil, err
	}
	then, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	n.AddChild(then)
	if err := p.expectSymbol(n, '}'); err != nil {
		return nil, err
	}

	if p.atKeyword(Else) {
		if err := p.expectKeyword(n, Else); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(n, '{'); err != nil {
			return nil, err
		}
		els, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		n.AddChild(els)
		if err := p.expectSymbol(n, '}'); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (p *Parser) parseWhileStatement() (*Node, error) {
	n := NewNode("whileStatement")

	if err := p.expectKeyword(n, While); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(n, '('); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	n.AddChild(cond)
	if err := p.expectSymbol(n, ')'); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(n, '{'); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	n.AddChild(body)
	if err := p.expectSymbol(n, '}'); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *Parser) parseDoStatement() (*Node, error) {
	n := NewNode("doStatement")

	if err := p.expectKeyword(n, Do); err != nil {
		return nil, err
	}
	if err := p.parseSubroutineCall(n); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(n, ';'); err != nil {
		return nil, err
	}

	return n, nil
}

// parseSubroutineCall appends its tokens directly to 'parent': a subroutineCall
// isn't one of the grammar's tagged node kinds, it only ever shows up inlined
// inside a doStatement or a term.
func (p *Parser) parseSubroutineCall(parent *Node) error {
	if err := p.expectIdentifier(parent); err != nil {
		return err
	}

	switch {
	case p.atSymbol('('):
		if err := p.expectSymbol(parent, '('); err != nil {
			return err
		}
		args, err := p.parseExpressionList()
		if err != nil {
			return err
		}
		parent.AddChild(args)
		return p.expectSymbol(parent, ')')

	case p.atSymbol('.'):
		if err := p.expectSymbol(parent, '.'); err != nil {
			return err
		}
		if err := p.expectIdentifier(parent); err != nil {
			return err
		}
		if err := p.expectSymbol(parent, '('); err != nil {
			return err
		}
		args, err := p.parseExpressionList()
		if err != nil {
			return err
		}
		parent.AddChild(args)
		return p.expectSymbol(parent, ')')

	default:
		return p.unexpectedToken()
	}
}

func (p *Parser) parseReturnStatement() (*Node, error) {
	n := NewNode("returnStatement")

	if err := p.expectKeyword(n, Return); err != nil {
		return nil, err
	}
	if !p.atSymbol(';') {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.AddChild(expr)
	}
	if err := p.expectSymbol(n, ';'); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *Parser) parseExpression() (*Node, error) {
	n := NewNode("expression")

	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	n.AddChild(first)

	for p.atSymbol('+', '-', '*', '/', '&', '|', '<', '>', '=') {
		if err := p.expectSymbol(n, '+', '-', '*', '/', '&', '|', '<', '>', '='); err != nil {
			return nil, err
		}
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		n.AddChild(next)
	}

	return n, nil
}

func (p *Parser) parseTerm() (*Node, error) {
	n := NewNode("term")

	switch {
	case p.atIntConst():
		if err := p.takeIntConst(n); err != nil {
			return nil, err
		}

	case p.atStringConst():
		if err := p.takeStringConst(n); err != nil {
			return nil, err
		}

	case p.atKeyword(True, False, Null, This):
		if err := p.expectKeyword(n, True, False, Null, This); err != nil {
			return nil, err
		}

	case p.atSymbol('-', '~'):
		if err := p.expectSymbol(n, '-', '~'); err != nil {
			return nil, err
		}
		sub, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		n.AddChild(sub)

	case p.atSymbol('('):
		if err := p.expectSymbol(n, '('); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.AddChild(expr)
		if err := p.expectSymbol(n, ')'); err != nil {
			return nil, err
		}

	case p.atIdentifier():
		if err := p.expectIdentifier(n); err != nil {
			return nil, err
		}
		// One-token lookahead disambiguates the three identifier-led continuations;
		// anything else means the identifier alone is the term (a bare varName).
		switch {
		case p.atSymbol('['):
			if err := p.expectSymbol(n, '['); err != nil {
				return nil, err
			}
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			n.AddChild(idx)
			if err := p.expectSymbol(n, ']'); err != nil {
				return nil, err
			}

		case p.atSymbol('('):
			if err := p.expectSymbol(n, '('); err != nil {
				return nil, err
			}
			args, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			n.AddChild(args)
			if err := p.expectSymbol(n, ')'); err != nil {
				return nil, err
			}

		case p.atSymbol('.'):
			if err := p.expectSymbol(n, '.'); err != nil {
				return nil, err
			}
			if err := p.expectIdentifier(n); err != nil {
				return nil, err
			}
			if err := p.expectSymbol(n, '('); err != nil {
				return nil, err
			}
			args, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			n.AddChild(args)
			if err := p.expectSymbol(n, ')'); err != nil {
				return nil, err
			}
		}

	default:
		return nil, p.unexpectedToken()
	}

	return n, nil
}

func (p *Parser) parseExpressionList() (*Node, error) {
	n := NewNode("expressionList")

	if p.isPossiblyTerm() {
		first, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.AddChild(first)

		for p.atSymbol(',') {
			if err := p.expectSymbol(n, ','); err != nil {
				return nil, err
			}
			next, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			n.AddChild(next)
		}
	}

	return n, nil
}
