// Package ast defines the expression tree produced by the parser for the
// WHERE-clause dialect. Grounded on ha1tch-tsqlparser/ast's shape: a small
// Node/Expression interface pair, one struct per node kind, each carrying
// its originating token for error messages and String() rendering.
package ast

import (
	"regexp"
	"strings"

	"github.com/robomac/qfind/token"
)

// Node is implemented by every tree node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is a node that evaluates to a value.Value.
type Expression interface {
	Node
	expressionNode()
}

// Literal is a constant scalar: a number, size, string, boolean, or NULL.
type Literal struct {
	Token  token.Token
	Kind   string // "int", "float", "text", "bool", "null", "size"
	Int    int64
	Float  float64
	Text   string
	Bool   bool
	IsSize bool // true when the literal carried a B/K/M/G/T suffix
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) String() string       { return l.Token.Literal }

// Ident is a bare identifier: name, path, size, date, time, ext, ext2,
// type, archive, container, today, or one of the mo..su weekday anchors.
type Ident struct {
	Token token.Token
	Name  string // lower-cased
}

func (i *Ident) expressionNode()      {}
func (i *Ident) TokenLiteral() string { return i.Token.Literal }
func (i *Ident) String() string       { return i.Name }

// Not negates its operand under three-valued logic.
type Not struct {
	Token token.Token
	Right Expression
}

func (n *Not) expressionNode()      {}
func (n *Not) TokenLiteral() string { return n.Token.Literal }
func (n *Not) String() string       { return "(NOT " + n.Right.String() + ")" }

// Logical is an AND/OR combination of two boolean-valued expressions.
type Logical struct {
	Token    token.Token
	Left     Expression
	Operator string // "AND" or "OR"
	Right    Expression
}

func (le *Logical) expressionNode()      {}
func (le *Logical) TokenLiteral() string { return le.Token.Literal }
func (le *Logical) String() string {
	return "(" + le.Left.String() + " " + le.Operator + " " + le.Right.String() + ")"
}

// Cmp is a binary comparison: =, <>/!=, <, <=, >, >=.
type Cmp struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (c *Cmp) expressionNode()      {}
func (c *Cmp) TokenLiteral() string { return c.Token.Literal }
func (c *Cmp) String() string {
	return "(" + c.Left.String() + " " + c.Operator + " " + c.Right.String() + ")"
}

// Like is a LIKE/ILIKE pattern match. The pattern is always a string
// literal (per the grammar), so its regexp is compiled once, eagerly, at
// parse time and never recompiled: the node is immutable thereafter.
// FoldRegex is the same pattern compiled case-insensitively regardless of
// the ILIKE keyword, for identifiers (name/path/ext/ext2) that always
// compare case-insensitively; the evaluator picks whichever regex applies.
type Like struct {
	Token           token.Token
	Left            Expression
	Pattern         string
	CaseInsensitive bool // true for ILIKE
	Negated         bool
	Regex           *regexp.Regexp
	FoldRegex       *regexp.Regexp
}

func (l *Like) expressionNode()      {}
func (l *Like) TokenLiteral() string { return l.Token.Literal }
func (l *Like) String() string {
	op := "LIKE"
	if l.CaseInsensitive {
		op = "ILIKE"
	}
	if l.Negated {
		op = "NOT " + op
	}
	return l.Left.String() + " " + op + " " + l.Pattern
}

// Rlike is an RLIKE regular-expression match, compiled eagerly like Like.
type Rlike struct {
	Token   token.Token
	Left    Expression
	Pattern string
	Negated bool
	Regex   *regexp.Regexp
}

func (r *Rlike) expressionNode()      {}
func (r *Rlike) TokenLiteral() string { return r.Token.Literal }
func (r *Rlike) String() string {
	op := "RLIKE"
	if r.Negated {
		op = "NOT " + op
	}
	return r.Left.String() + " " + op + " " + r.Pattern
}

// In is a [NOT] IN (term, term, ...) set membership test.
type In struct {
	Token   token.Token
	Left    Expression
	Values  []Expression
	Negated bool
}

func (in *In) expressionNode()      {}
func (in *In) TokenLiteral() string { return in.Token.Literal }
func (in *In) String() string {
	not := ""
	if in.Negated {
		not = "NOT "
	}
	var parts []string
	for _, v := range in.Values {
		parts = append(parts, v.String())
	}
	return in.Left.String() + " " + not + "IN (" + strings.Join(parts, ", ") + ")"
}

// Between is a [NOT] BETWEEN lo AND hi inclusive range test.
type Between struct {
	Token   token.Token
	Left    Expression
	Low     Expression
	High    Expression
	Negated bool
}

func (b *Between) expressionNode()      {}
func (b *Between) TokenLiteral() string { return b.Token.Literal }
func (b *Between) String() string {
	not := ""
	if b.Negated {
		not = "NOT "
	}
	return b.Left.String() + " " + not + "BETWEEN " + b.Low.String() + " AND " + b.High.String()
}

// IsNull is an IS [NOT] NULL test.
type IsNull struct {
	Token   token.Token
	Left    Expression
	Negated bool
}

func (n *IsNull) expressionNode()      {}
func (n *IsNull) TokenLiteral() string { return n.Token.Literal }
func (n *IsNull) String() string {
	if n.Negated {
		return n.Left.String() + " IS NOT NULL"
	}
	return n.Left.String() + " IS NULL"
}

// Truthy wraps a bare term used as the whole expression (the "truthy
// test" grammar rule, e.g. the match-all query "1").
type Truthy struct {
	Expr Expression
}

func (t *Truthy) expressionNode()      {}
func (t *Truthy) TokenLiteral() string { return t.Expr.TokenLiteral() }
func (t *Truthy) String() string       { return t.Expr.String() }
