// Package parser implements a recursive-descent compiler for the
// WHERE-clause dialect described by the grammar:
//
//	expr     := or_expr
//	or_expr  := and_expr ( OR and_expr )*
//	and_expr := not_expr ( AND not_expr )*
//	not_expr := NOT not_expr | primary
//	primary  := '(' expr ')' | predicate
//	predicate:= term op term
//	         |  term LIKE  string
//	         |  term ILIKE string
//	         |  term RLIKE string
//	         |  term [NOT] IN  '(' term (',' term)* ')'
//	         |  term [NOT] BETWEEN term AND term
//	         |  term IS [NOT] NULL
//	         |  term
//	term     := number[suffix] | string | bool | identifier
//
// Grounded on ha1tch-tsqlparser/parser's curToken/peekToken/nextToken
// single-token-lookahead shape, simplified here to match a grammar with no
// operator-precedence table: the grammar above fixes precedence by
// production (OR loosest, NOT tightest) instead of a Pratt climb.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/robomac/qfind/ast"
	"github.com/robomac/qfind/lexer"
	"github.com/robomac/qfind/token"
	"github.com/robomac/qfind/value"
)

// ParseError reports a single fatal problem found while compiling a query.
// The whole query is rejected; no recovery is attempted.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Parser holds the lexer and one token of lookahead.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	err *ParseError
}

// Compile tokenizes and parses query, returning the root Expression or the
// first ParseError encountered.
func Compile(query string) (ast.Expression, error) {
	p := &Parser{l: lexer.New(query)}
	p.nextToken()
	p.nextToken()

	expr := p.parseExpr()
	if p.err != nil {
		return nil, p.err
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.fail("unexpected trailing input %q", p.curToken.Literal)
	}
	return expr, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) fail(format string, a ...any) *ParseError {
	if p.err == nil {
		p.err = &ParseError{Pos: p.curToken.Pos, Message: fmt.Sprintf(format, a...)}
	}
	return p.err
}

func (p *Parser) expect(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.fail("expected %s, got %s %q", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

func (p *Parser) parseExpr() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.err == nil && p.curTokenIs(token.OR) {
		tok := p.curToken
		p.nextToken()
		right := p.parseAnd()
		left = &ast.Logical{Token: tok, Left: left, Operator: "OR", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.err == nil && p.curTokenIs(token.AND) {
		tok := p.curToken
		p.nextToken()
		right := p.parseNot()
		left = &ast.Logical{Token: tok, Left: left, Operator: "AND", Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.curTokenIs(token.NOT) {
		tok := p.curToken
		p.nextToken()
		right := p.parseNot()
		if p.err != nil {
			return nil
		}
		return &ast.Not{Token: tok, Right: right}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	if p.curTokenIs(token.LPAREN) {
		tok := p.curToken
		p.nextToken()
		inner := p.parseExpr()
		if p.err != nil {
			return nil
		}
		if !p.curTokenIs(token.RPAREN) {
			p.fail("expected ) to close grouping opened at line %d, column %d", tok.Pos.Line, tok.Pos.Column)
			return nil
		}
		p.nextToken()
		return inner
	}
	return p.parsePredicate()
}

// parsePredicate parses a single `term op term` / LIKE / IN / BETWEEN /
// IS NULL / bare-term production.
func (p *Parser) parsePredicate() ast.Expression {
	left := p.parseTerm()
	if p.err != nil {
		return nil
	}

	switch p.curToken.Type {
	case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
		op := p.curToken
		opStr := op.Literal
		if opStr == "!=" {
			opStr = "<>"
		}
		p.nextToken()
		right := p.parseTerm()
		if p.err != nil {
			return nil
		}
		return &ast.Cmp{Token: op, Left: left, Operator: opStr, Right: right}

	case token.LIKE, token.ILIKE:
		return p.parseLike(left, false)

	case token.RLIKE:
		return p.parseRlike(left, false)

	case token.IN:
		return p.parseIn(left, false)

	case token.BETWEEN:
		return p.parseBetween(left, false)

	case token.IS:
		return p.parseIsNull(left)

	case token.NOT:
		// NOT here only introduces [NOT] IN / [NOT] BETWEEN / [NOT] LIKE /
		// [NOT] RLIKE attached to the term just parsed.
		p.nextToken()
		switch p.curToken.Type {
		case token.IN:
			return p.parseIn(left, true)
		case token.BETWEEN:
			return p.parseBetween(left, true)
		case token.LIKE, token.ILIKE:
			return p.parseLike(left, true)
		case token.RLIKE:
			return p.parseRlike(left, true)
		default:
			p.fail("expected IN, BETWEEN, LIKE, ILIKE, or RLIKE after NOT, got %s", p.curToken.Type)
			return nil
		}

	default:
		// Bare term: the "truthy test" production.
		return &ast.Truthy{Expr: left}
	}
}

func (p *Parser) parseLike(left ast.Expression, negated bool) ast.Expression {
	tok := p.curToken
	caseInsensitive := p.curToken.Type == token.ILIKE
	p.nextToken()
	if !p.curTokenIs(token.STRING) {
		p.fail("expected a string pattern after LIKE/ILIKE, got %s", p.curToken.Type)
		return nil
	}
	pattern := p.curToken.Literal
	p.nextToken()
	re, err := compileLikePattern(pattern, caseInsensitive)
	if err != nil {
		p.fail("invalid LIKE pattern %q: %s", pattern, err.Error())
		return nil
	}
	foldRe, err := compileLikePattern(pattern, true)
	if err != nil {
		p.fail("invalid LIKE pattern %q: %s", pattern, err.Error())
		return nil
	}
	return &ast.Like{Token: tok, Left: left, Pattern: pattern, CaseInsensitive: caseInsensitive, Negated: negated, Regex: re, FoldRegex: foldRe}
}

func (p *Parser) parseRlike(left ast.Expression, negated bool) ast.Expression {
	tok := p.curToken
	p.nextToken()
	if !p.curTokenIs(token.STRING) {
		p.fail("expected a regex pattern after RLIKE, got %s", p.curToken.Type)
		return nil
	}
	pattern := p.curToken.Literal
	p.nextToken()
	re, err := regexp.Compile(pattern)
	if err != nil {
		p.fail("invalid RLIKE pattern %q: %s", pattern, err.Error())
		return nil
	}
	return &ast.Rlike{Token: tok, Left: left, Pattern: pattern, Negated: negated, Regex: re}
}

func (p *Parser) parseIn(left ast.Expression, negated bool) ast.Expression {
	tok := p.curToken
	p.nextToken()
	if !p.curTokenIs(token.LPAREN) {
		p.fail("expected ( after IN, got %s", p.curToken.Type)
		return nil
	}
	p.nextToken()
	var values []ast.Expression
	for {
		v := p.parseTerm()
		if p.err != nil {
			return nil
		}
		values = append(values, v)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.curTokenIs(token.RPAREN) {
		p.fail("expected ) to close IN list, got %s", p.curToken.Type)
		return nil
	}
	p.nextToken()
	return &ast.In{Token: tok, Left: left, Values: values, Negated: negated}
}

func (p *Parser) parseBetween(left ast.Expression, negated bool) ast.Expression {
	tok := p.curToken
	p.nextToken()
	lo := p.parseTerm()
	if p.err != nil {
		return nil
	}
	if !p.curTokenIs(token.AND) {
		p.fail("expected AND in BETWEEN, got %s", p.curToken.Type)
		return nil
	}
	p.nextToken()
	hi := p.parseTerm()
	if p.err != nil {
		return nil
	}
	return &ast.Between{Token: tok, Left: left, Low: lo, High: hi, Negated: negated}
}

func (p *Parser) parseIsNull(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	negated := false
	if p.curTokenIs(token.NOT) {
		negated = true
		p.nextToken()
	}
	if !p.curTokenIs(token.NULLKW) {
		p.fail("expected NULL after IS [NOT], got %s", p.curToken.Type)
		return nil
	}
	p.nextToken()
	return &ast.IsNull{Token: tok, Left: left, Negated: negated}
}

// parseTerm parses a single leaf: number, size, string, boolean, or
// identifier. Terms never recurse into sub-expressions (parentheses only
// group whole predicates, per the grammar).
func (p *Parser) parseTerm() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.NUMBER:
		p.nextToken()
		if strings.ContainsAny(tok.Literal, ".") {
			f, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				p.fail("invalid number literal %q", tok.Literal)
				return nil
			}
			return &ast.Literal{Token: tok, Kind: "float", Float: f}
		}
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.fail("invalid number literal %q", tok.Literal)
			return nil
		}
		return &ast.Literal{Token: tok, Kind: "int", Int: i}

	case token.SIZE:
		n, err := value.ParseSize(tok.Literal)
		if err != nil {
			p.fail("%s", err.Error())
			return nil
		}
		p.nextToken()
		return &ast.Literal{Token: tok, Kind: "size", Int: n, IsSize: true}

	case token.STRING:
		p.nextToken()
		return &ast.Literal{Token: tok, Kind: "text", Text: tok.Literal}

	case token.TRUEKW:
		p.nextToken()
		return &ast.Literal{Token: tok, Kind: "bool", Bool: true}

	case token.FALSEKW:
		p.nextToken()
		return &ast.Literal{Token: tok, Kind: "bool", Bool: false}

	case token.NULLKW:
		p.nextToken()
		return &ast.Literal{Token: tok, Kind: "null"}

	case token.IDENT:
		p.nextToken()
		return &ast.Ident{Token: tok, Name: strings.ToLower(tok.Literal)}

	default:
		p.fail("expected a value or identifier, got %s %q", tok.Type, tok.Literal)
		return nil
	}
}

// compileLikePattern translates a LIKE/ILIKE pattern into an anchored
// regexp: '%' becomes '.*', '_' becomes '.', every other regex
// metacharacter is escaped literally.
func compileLikePattern(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	expr := sb.String()
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}
