// Package eval walks an ast.Expression against a record.Row and produces a
// three-valued (true/false/null) result, per spec.md §4.2. Grounded on the
// teacher's own evaluation shape in dir.go's fileMeetsConditions (a single
// function that inspects a fileitem field-by-field and returns a bool),
// generalized here to a typed tree-walking interpreter with an explicit
// Null lane instead of treating every miss as false.
package eval

import (
	"fmt"
	"strings"
	"time"

	"github.com/robomac/qfind/ast"
	"github.com/robomac/qfind/record"
	"github.com/robomac/qfind/value"
)

// ErrorKind tags the shape of an EvalError.
type ErrorKind int

const (
	TypeMismatch ErrorKind = iota
	BadLiteral
)

// EvalError is a fatal, query-terminating error (spec.md §7 category 1):
// a type mismatch or a malformed date/time literal caught on first use.
type EvalError struct {
	Kind    ErrorKind
	Message string
}

func (e *EvalError) Error() string { return e.Message }

func typeMismatch(format string, a ...any) error {
	return &EvalError{Kind: TypeMismatch, Message: fmt.Sprintf(format, a...)}
}

func badLiteral(format string, a ...any) error {
	return &EvalError{Kind: BadLiteral, Message: fmt.Sprintf(format, a...)}
}

// weekdayOrder lists the mo..su anchor names Monday-first (Monday=0 ...
// Sunday=6); NewClock maps Go's time.Weekday (Sunday=0) onto this order.
var weekdayOrder = []string{"mo", "tu", "we", "th", "fr", "sa", "su"}

// Clock captures the wall-clock-derived attributes (today, mo..su) once,
// per spec.md §3 invariant 5: these are stable for the lifetime of one
// walker invocation, not recomputed per row.
type Clock struct {
	Today    string
	Weekdays map[string]string
}

// NewClock derives today's date and the most recent occurrence (on or
// before now) of each weekday, all in local time.
func NewClock(now time.Time) Clock {
	now = now.Local()
	c := Clock{
		Today:    now.Format("2006-01-02"),
		Weekdays: make(map[string]string, 7),
	}
	// time.Monday == 1 ... time.Sunday == 0; walk back from now to find
	// the most recent date landing on each named weekday.
	for offset := 0; offset < 7; offset++ {
		day := now.AddDate(0, 0, -offset)
		idx := (int(day.Weekday()) + 6) % 7 // Monday->0 ... Sunday->6
		name := weekdayOrder[idx]
		if _, ok := c.Weekdays[name]; !ok {
			c.Weekdays[name] = day.Format("2006-01-02")
		}
	}
	return c
}

func (c Clock) get(name string) (value.Value, bool) {
	if name == "today" {
		return value.TextValue(c.Today), true
	}
	if d, ok := c.Weekdays[name]; ok {
		return value.TextValue(d), true
	}
	return value.NullValue(), false
}

// Evaluator tests expressions against rows using a fixed Clock.
type Evaluator struct {
	clock Clock
}

// New returns an Evaluator whose today/mo..su anchors are captured from
// now immediately.
func New(now time.Time) *Evaluator {
	return &Evaluator{clock: NewClock(now)}
}

// Match evaluates expr against row and applies spec.md §7's top-level
// rule: a Null result is treated as no-match, never an error.
func (e *Evaluator) Match(expr ast.Expression, row record.Row) (bool, error) {
	v, err := e.eval(expr, row)
	if err != nil {
		return false, err
	}
	return !v.IsNull() && v.Kind == value.Bool && v.B, nil
}

func (e *Evaluator) resolve(name string) (value.Value, bool) {
	if v, ok := e.clock.get(name); ok {
		return v, ok
	}
	return value.NullValue(), false
}

func (e *Evaluator) eval(expr ast.Expression, row record.Row) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalValue(n), nil

	case *ast.Ident:
		if v, ok := row.Get(n.Name); ok {
			return v, nil
		}
		if v, ok := e.resolve(n.Name); ok {
			return v, nil
		}
		return value.NullValue(), nil

	case *ast.Truthy:
		v, err := e.eval(n.Expr, row)
		if err != nil {
			return value.Value{}, err
		}
		if v.IsNull() {
			return value.NullValue(), nil
		}
		return value.BoolValue(v.Truthy()), nil

	case *ast.Not:
		v, err := e.eval(n.Right, row)
		if err != nil {
			return value.Value{}, err
		}
		return notTri(v), nil

	case *ast.Logical:
		left, err := e.eval(n.Left, row)
		if err != nil {
			return value.Value{}, err
		}
		// Short-circuit per SQL three-valued truth tables.
		if n.Operator == "AND" && isFalse(left) {
			return value.BoolValue(false), nil
		}
		if n.Operator == "OR" && isTrue(left) {
			return value.BoolValue(true), nil
		}
		right, err := e.eval(n.Right, row)
		if err != nil {
			return value.Value{}, err
		}
		if n.Operator == "AND" {
			return andTri(left, right), nil
		}
		return orTri(left, right), nil

	case *ast.Cmp:
		return e.evalCmp(n, row)

	case *ast.Like:
		return e.evalLike(n, row)

	case *ast.Rlike:
		return e.evalRlike(n, row)

	case *ast.In:
		return e.evalIn(n, row)

	case *ast.Between:
		return e.evalBetween(n, row)

	case *ast.IsNull:
		v, err := e.eval(n.Left, row)
		if err != nil {
			return value.Value{}, err
		}
		isNull := v.IsNull()
		if n.Negated {
			return value.BoolValue(!isNull), nil
		}
		return value.BoolValue(isNull), nil

	default:
		return value.Value{}, typeMismatch("unsupported expression node %T", expr)
	}
}

func literalValue(l *ast.Literal) value.Value {
	switch l.Kind {
	case "int", "size":
		return value.IntValue(l.Int)
	case "float":
		return value.FloatValue(l.Float)
	case "text":
		return value.TextValue(l.Text)
	case "bool":
		return value.BoolValue(l.Bool)
	default:
		return value.NullValue()
	}
}

func isTrue(v value.Value) bool  { return v.Kind == value.Bool && v.B }
func isFalse(v value.Value) bool { return v.Kind == value.Bool && !v.B }

func notTri(v value.Value) value.Value {
	if v.IsNull() {
		return value.NullValue()
	}
	return value.BoolValue(!v.Truthy())
}

func andTri(a, b value.Value) value.Value {
	if isFalse(a) || isFalse(b) {
		return value.BoolValue(false)
	}
	if a.IsNull() || b.IsNull() {
		return value.NullValue()
	}
	return value.BoolValue(isTrue(a) && isTrue(b))
}

func orTri(a, b value.Value) value.Value {
	if isTrue(a) || isTrue(b) {
		return value.BoolValue(true)
	}
	if a.IsNull() || b.IsNull() {
		return value.NullValue()
	}
	return value.BoolValue(isTrue(a) || isTrue(b))
}

// identName returns the lower-cased identifier name for an Ident
// expression, or "" if expr isn't a bare identifier (literal-vs-literal
// comparisons never need case folding or date/size typing).
func identName(expr ast.Expression) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func (e *Evaluator) evalCmp(n *ast.Cmp, row record.Row) (value.Value, error) {
	left, err := e.eval(n.Left, row)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.eval(n.Right, row)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() || right.IsNull() {
		return value.NullValue(), nil
	}

	leftName, rightName := identName(n.Left), identName(n.Right)
	switch {
	case leftName == "date" || rightName == "date":
		return compareDateLike(n.Operator, left, right, leftName == "date")
	case leftName == "time" || rightName == "time":
		return compareDateLike(n.Operator, left, right, leftName == "time")
	}

	cmp, err := compareValues(n.Operator, left, right, leftName, rightName)
	if err != nil {
		return value.Value{}, err
	}
	return value.BoolValue(cmp), nil
}

func compareValues(op string, left, right value.Value, leftName, rightName string) (bool, error) {
	switch {
	case isNumeric(left) && isNumeric(right):
		lf, _ := left.AsFloat()
		rf, _ := right.AsFloat()
		return applyNumericOp(op, lf, rf), nil

	case left.Kind == value.Text && right.Kind == value.Text:
		ls, rs := left.S, right.S
		if record.CaseInsensitiveIdent(leftName) || record.CaseInsensitiveIdent(rightName) {
			ls, rs = strings.ToLower(ls), strings.ToLower(rs)
		}
		return applyStringOp(op, ls, rs), nil

	case left.Kind == value.Bool && right.Kind == value.Bool:
		return applyBoolOp(op, left.B, right.B)

	default:
		return false, typeMismatch("cannot compare %s and %s", left.Kind, right.Kind)
	}
}

func isNumeric(v value.Value) bool { return v.Kind == value.Int || v.Kind == value.Float }

func applyNumericOp(op string, l, r float64) bool {
	switch op {
	case "=":
		return l == r
	case "<>":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

func applyStringOp(op string, l, r string) bool {
	switch op {
	case "=":
		return l == r
	case "<>":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}

func applyBoolOp(op string, l, r bool) (bool, error) {
	toInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	switch op {
	case "=":
		return l == r, nil
	case "<>":
		return l != r, nil
	case "<":
		return toInt(l) < toInt(r), nil
	case "<=":
		return toInt(l) <= toInt(r), nil
	case ">":
		return toInt(l) > toInt(r), nil
	case ">=":
		return toInt(l) >= toInt(r), nil
	}
	return false, typeMismatch("unsupported boolean operator %s", op)
}

// compareDateLike implements spec.md §3's partial-date/time prefix
// comparison: the literal is validated (but not reformatted) on first
// use, and every operator compares the full row value lexicographically
// against the literal text.
func compareDateLike(op string, left, right value.Value, leftIsIdent bool) (value.Value, error) {
	identVal, litVal := left, right
	if !leftIsIdent {
		identVal, litVal = right, left
	}
	if identVal.Kind != value.Text || litVal.Kind != value.Text {
		return value.Value{}, typeMismatch("date/time comparison requires text operands")
	}
	if err := validateDateOrTimeLiteral(litVal.S); err != nil {
		return value.Value{}, err
	}
	l, r := identVal.S, litVal.S
	if !leftIsIdent {
		l, r = r, l
	}
	return value.BoolValue(applyStringOp(op, l, r)), nil
}

func validateDateOrTimeLiteral(lit string) error {
	datePatterns := []string{"2006", "2006-01", "2006-01-02"}
	timePatterns := []string{"15:04", "15:04:05"}
	for _, p := range datePatterns {
		if len(p) == len(lit) {
			if _, err := time.Parse(p, lit); err == nil {
				return nil
			}
		}
	}
	for _, p := range timePatterns {
		if len(p) == len(lit) {
			if _, err := time.Parse(p, lit); err == nil {
				return nil
			}
		}
	}
	return badLiteral("malformed date/time literal %q", lit)
}

func (e *Evaluator) evalLike(n *ast.Like, row record.Row) (value.Value, error) {
	left, err := e.eval(n.Left, row)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() {
		return value.NullValue(), nil
	}
	if left.Kind != value.Text {
		return value.Value{}, typeMismatch("LIKE requires a text operand, got %s", left.Kind)
	}
	re := n.Regex
	if record.CaseInsensitiveIdent(identName(n.Left)) {
		re = n.FoldRegex
	}
	matched := re.MatchString(left.S)
	if n.Negated {
		matched = !matched
	}
	return value.BoolValue(matched), nil
}

func (e *Evaluator) evalRlike(n *ast.Rlike, row record.Row) (value.Value, error) {
	left, err := e.eval(n.Left, row)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() {
		return value.NullValue(), nil
	}
	if left.Kind != value.Text {
		return value.Value{}, typeMismatch("RLIKE requires a text operand, got %s", left.Kind)
	}
	matched := n.Regex.MatchString(left.S)
	if n.Negated {
		matched = !matched
	}
	return value.BoolValue(matched), nil
}

func (e *Evaluator) evalIn(n *ast.In, row record.Row) (value.Value, error) {
	left, err := e.eval(n.Left, row)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() {
		return value.NullValue(), nil
	}
	leftName := identName(n.Left)
	sawNull := false
	for _, candidate := range n.Values {
		right, err := e.eval(candidate, row)
		if err != nil {
			return value.Value{}, err
		}
		if right.IsNull() {
			sawNull = true
			continue
		}
		eq, err := compareValues("=", left, right, leftName, identName(candidate))
		if err != nil {
			return value.Value{}, err
		}
		if eq {
			return value.BoolValue(!n.Negated), nil
		}
	}
	if sawNull {
		return value.NullValue(), nil
	}
	return value.BoolValue(n.Negated), nil
}

func (e *Evaluator) evalBetween(n *ast.Between, row record.Row) (value.Value, error) {
	left, err := e.eval(n.Left, row)
	if err != nil {
		return value.Value{}, err
	}
	lo, err := e.eval(n.Low, row)
	if err != nil {
		return value.Value{}, err
	}
	hi, err := e.eval(n.High, row)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() || lo.IsNull() || hi.IsNull() {
		return value.NullValue(), nil
	}
	leftName := identName(n.Left)
	geLo, err := compareValues(">=", left, lo, leftName, identName(n.Low))
	if err != nil {
		return value.Value{}, err
	}
	leLo, err := compareValues("<=", left, hi, leftName, identName(n.High))
	if err != nil {
		return value.Value{}, err
	}
	result := geLo && leLo
	if n.Negated {
		result = !result
	}
	return value.BoolValue(result), nil
}
