package ast

import (
	"regexp"
	"testing"

	"github.com/robomac/qfind/token"
)

func TestLogicalString(t *testing.T) {
	expr := &Logical{
		Operator: "AND",
		Left:     &Ident{Token: token.Token{Literal: "size"}, Name: "size"},
		Right:    &Literal{Token: token.Token{Literal: "1"}, Kind: "int", Int: 1},
	}
	want := "(size AND 1)"
	if got := expr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNotString(t *testing.T) {
	expr := &Not{Right: &Ident{Name: "archive"}}
	if got := expr.String(); got != "(NOT archive)" {
		t.Errorf("String() = %q, want \"(NOT archive)\"", got)
	}
}

func TestTruthyDelegatesTokenLiteral(t *testing.T) {
	id := &Ident{Token: token.Token{Literal: "1"}, Name: "1"}
	tr := &Truthy{Expr: id}
	if tr.TokenLiteral() != id.TokenLiteral() {
		t.Errorf("Truthy.TokenLiteral() = %q, want %q", tr.TokenLiteral(), id.TokenLiteral())
	}
	if tr.String() != id.String() {
		t.Errorf("Truthy.String() = %q, want %q", tr.String(), id.String())
	}
}

func TestInString(t *testing.T) {
	in := &In{
		Left:   &Ident{Name: "ext"},
		Values: []Expression{
			&Literal{Token: token.Token{Literal: "go"}, Kind: "text", Text: "go"},
			&Literal{Token: token.Token{Literal: "mod"}, Kind: "text", Text: "mod"},
		},
	}
	want := "ext IN (go, mod)"
	if got := in.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBetweenStringNegated(t *testing.T) {
	b := &Between{
		Left:    &Ident{Name: "size"},
		Low:     &Literal{Token: token.Token{Literal: "1"}, Kind: "int", Int: 1},
		High:    &Literal{Token: token.Token{Literal: "2"}, Kind: "int", Int: 2},
		Negated: true,
	}
	want := "size NOT BETWEEN 1 AND 2"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLikeStringReflectsVariant(t *testing.T) {
	re := regexp.MustCompile("^a$")
	l := &Like{Left: &Ident{Name: "name"}, Pattern: "a", Regex: re, CaseInsensitive: true, Negated: true}
	want := "name NOT ILIKE a"
	if got := l.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsNullString(t *testing.T) {
	n := &IsNull{Left: &Ident{Name: "archive"}, Negated: true}
	if got := n.String(); got != "archive IS NOT NULL" {
		t.Errorf("String() = %q, want \"archive IS NOT NULL\"", got)
	}
}
