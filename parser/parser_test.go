package parser

import (
	"testing"

	"github.com/robomac/qfind/ast"
)

func mustCompile(t *testing.T, query string) ast.Expression {
	t.Helper()
	expr, err := Compile(query)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", query, err)
	}
	return expr
}

func TestCompileComparison(t *testing.T) {
	expr := mustCompile(t, "size > 100")
	cmp, ok := expr.(*ast.Cmp)
	if !ok {
		t.Fatalf("got %T, want *ast.Cmp", expr)
	}
	if cmp.Operator != ">" {
		t.Errorf("operator = %q, want \">\"", cmp.Operator)
	}
	if id, ok := cmp.Left.(*ast.Ident); !ok || id.Name != "size" {
		t.Errorf("left = %#v, want Ident{Name: \"size\"}", cmp.Left)
	}
	lit, ok := cmp.Right.(*ast.Literal)
	if !ok || lit.Kind != "int" || lit.Int != 100 {
		t.Errorf("right = %#v, want int literal 100", cmp.Right)
	}
}

func TestCompileNeqNormalizesBangEqual(t *testing.T) {
	expr := mustCompile(t, "ext != 'txt'")
	cmp := expr.(*ast.Cmp)
	if cmp.Operator != "<>" {
		t.Errorf("operator = %q, want normalized \"<>\"", cmp.Operator)
	}
}

func TestCompileSizeLiteral(t *testing.T) {
	expr := mustCompile(t, "size > 2K")
	cmp := expr.(*ast.Cmp)
	lit := cmp.Right.(*ast.Literal)
	if lit.Kind != "size" || lit.Int != 2000 {
		t.Errorf("right = %#v, want size literal 2000", lit)
	}
}

func TestCompileAndOrPrecedence(t *testing.T) {
	// AND binds tighter than OR: "a OR b AND c" parses as "a OR (b AND c)".
	expr := mustCompile(t, "ext = 'a' OR ext = 'b' AND size > 0")
	top, ok := expr.(*ast.Logical)
	if !ok || top.Operator != "OR" {
		t.Fatalf("top = %#v, want top-level OR", expr)
	}
	right, ok := top.Right.(*ast.Logical)
	if !ok || right.Operator != "AND" {
		t.Fatalf("right = %#v, want AND", top.Right)
	}
}

func TestCompileNotBindsTighterThanAnd(t *testing.T) {
	expr := mustCompile(t, "NOT ext = 'a' AND size > 0")
	top, ok := expr.(*ast.Logical)
	if !ok || top.Operator != "AND" {
		t.Fatalf("top = %#v, want top-level AND", expr)
	}
	if _, ok := top.Left.(*ast.Not); !ok {
		t.Errorf("left = %#v, want *ast.Not", top.Left)
	}
}

func TestCompileParenGrouping(t *testing.T) {
	expr := mustCompile(t, "(ext = 'a' OR ext = 'b') AND size > 0")
	top := expr.(*ast.Logical)
	if top.Operator != "AND" {
		t.Fatalf("top operator = %q, want AND", top.Operator)
	}
	if _, ok := top.Left.(*ast.Logical); !ok {
		t.Errorf("left = %#v, want grouped *ast.Logical", top.Left)
	}
}

func TestCompileLike(t *testing.T) {
	expr := mustCompile(t, "name LIKE '%.go'")
	like := expr.(*ast.Like)
	if like.CaseInsensitive {
		t.Error("CaseInsensitive = true for LIKE, want false")
	}
	if !like.Regex.MatchString("main.go") {
		t.Error("compiled LIKE regex did not match \"main.go\"")
	}
	if like.Regex.MatchString("main.go.bak") {
		t.Error("compiled LIKE regex should be anchored and not match \"main.go.bak\"")
	}
}

func TestCompileLikeAlwaysCompilesFoldRegex(t *testing.T) {
	expr := mustCompile(t, "name LIKE 'Main.%'")
	like := expr.(*ast.Like)
	if like.CaseInsensitive {
		t.Error("CaseInsensitive = true for plain LIKE, want false")
	}
	if like.FoldRegex == nil {
		t.Fatal("FoldRegex is nil, want a compiled case-insensitive regex")
	}
	if !like.FoldRegex.MatchString("main.go") {
		t.Error("FoldRegex did not match \"main.go\" against pattern \"Main.%\"")
	}
}

func TestCompileIlikeIsCaseInsensitive(t *testing.T) {
	expr := mustCompile(t, "name ILIKE '%.GO'")
	like := expr.(*ast.Like)
	if !like.CaseInsensitive {
		t.Error("CaseInsensitive = false for ILIKE, want true")
	}
	if !like.Regex.MatchString("main.go") {
		t.Error("compiled ILIKE regex did not match \"main.go\" case-insensitively")
	}
}

func TestCompileNotLike(t *testing.T) {
	expr := mustCompile(t, "name NOT LIKE '%.go'")
	like := expr.(*ast.Like)
	if !like.Negated {
		t.Error("Negated = false, want true")
	}
}

func TestCompileRlike(t *testing.T) {
	expr := mustCompile(t, `name RLIKE '^main\.go$'`)
	rlike := expr.(*ast.Rlike)
	if !rlike.Regex.MatchString("main.go") {
		t.Error("RLIKE regex did not match \"main.go\"")
	}
}

func TestCompileIn(t *testing.T) {
	expr := mustCompile(t, "ext IN ('go', 'mod', 'sum')")
	in := expr.(*ast.In)
	if len(in.Values) != 3 {
		t.Fatalf("len(Values) = %d, want 3", len(in.Values))
	}
	if in.Negated {
		t.Error("Negated = true, want false")
	}
}

func TestCompileNotIn(t *testing.T) {
	expr := mustCompile(t, "ext NOT IN ('go')")
	in := expr.(*ast.In)
	if !in.Negated {
		t.Error("Negated = false, want true")
	}
}

func TestCompileBetween(t *testing.T) {
	expr := mustCompile(t, "size BETWEEN 10 AND 100")
	between := expr.(*ast.Between)
	if between.Negated {
		t.Error("Negated = true, want false")
	}
}

func TestCompileNotBetween(t *testing.T) {
	expr := mustCompile(t, "size NOT BETWEEN 10 AND 100")
	between := expr.(*ast.Between)
	if !between.Negated {
		t.Error("Negated = false, want true")
	}
}

func TestCompileIsNull(t *testing.T) {
	expr := mustCompile(t, "archive IS NULL")
	isnull := expr.(*ast.IsNull)
	if isnull.Negated {
		t.Error("Negated = true, want false")
	}
}

func TestCompileIsNotNull(t *testing.T) {
	expr := mustCompile(t, "archive IS NOT NULL")
	isnull := expr.(*ast.IsNull)
	if !isnull.Negated {
		t.Error("Negated = false, want true")
	}
}

func TestCompileBareTermIsTruthy(t *testing.T) {
	expr := mustCompile(t, "1")
	if _, ok := expr.(*ast.Truthy); !ok {
		t.Fatalf("got %T, want *ast.Truthy", expr)
	}
}

func TestCompileRejectsUnclosedParen(t *testing.T) {
	if _, err := Compile("(size > 1"); err == nil {
		t.Error("expected error for unclosed paren, got nil")
	}
}

func TestCompileRejectsTrailingInput(t *testing.T) {
	if _, err := Compile("size > 1 )"); err == nil {
		t.Error("expected error for trailing input, got nil")
	}
}

func TestCompileRejectsBadLikePattern(t *testing.T) {
	if _, err := Compile("name LIKE size"); err == nil {
		t.Error("expected error for non-string LIKE pattern, got nil")
	}
}

func TestCompileRejectsInvalidRlikeRegex(t *testing.T) {
	if _, err := Compile(`name RLIKE '('`); err == nil {
		t.Error("expected error for invalid RLIKE regex, got nil")
	}
}
