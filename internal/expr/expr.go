// Package expr implements the !IF/!ELSEIF expression evaluator (spec
// §4.4): compound boolean expressions joined by && and || evaluated
// strictly left to right with no precedence between the two operators (a
// deliberately preserved shortcut per spec §9's design notes), string vs
// numeric comparison, and bracketed sub-command evaluation.
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ymake-go/ymake/internal/lex"
)

// SubCommandRunner resolves the exit code of a bracketed [cmd] operand.
// The caller is expected to route this through the sub-command cache
// (spec §4.6) before falling back to the process runner.
type SubCommandRunner func(cmdText string) (int, error)

// Evaluate implements evaluate(expr, scope) → bool from spec §4.4: the
// expression is split on every top-level && and ||, and the operands are
// folded strictly left to right with no precedence between the two
// operators — (a && b || c) means (a && b) || c, never a && (b || c).
func Evaluate(expression string, run SubCommandRunner) (bool, error) {
	operands, ops := splitTopLevelBoolOps(expression)

	result, err := EvaluateSingle(operands[0], run)
	if err != nil {
		return false, err
	}

	for i, op := range ops {
		rhs, err := EvaluateSingle(operands[i+1], run)
		if err != nil {
			return false, err
		}
		switch op {
		case "&&":
			result = result && rhs
		case "||":
			result = result || rhs
		default:
			return false, fmt.Errorf("expr: internal error: unknown operator %q", op)
		}
	}
	return result, nil
}

// splitTopLevelBoolOps splits expression on every top-level && and ||
// (skipping [...] and "..." regions), returning the operands in order and
// the operator between each consecutive pair.
func splitTopLevelBoolOps(expression string) (operands, ops []string) {
	start := 0
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case '[', '"':
			i = lex.SkipBracketedOrQuoted(expression, i) - 1
		case '&':
			if i+1 < len(expression) && expression[i+1] == '&' {
				operands = append(operands, expression[start:i])
				ops = append(ops, "&&")
				i++
				start = i + 1
			}
		case '|':
			if i+1 < len(expression) && expression[i+1] == '|' {
				operands = append(operands, expression[start:i])
				ops = append(ops, "||")
				i++
				start = i + 1
			}
		}
	}
	operands = append(operands, expression[start:])
	return operands, ops
}

var comparisonOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// EvaluateSingle implements evaluateSingle(expr, scope) → bool from spec
// §4.4.
func EvaluateSingle(expression string, run SubCommandRunner) (bool, error) {
	lhs, op, rhs, err := splitComparison(expression)
	if err != nil {
		return false, err
	}
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)

	lhsIsString := strings.HasPrefix(lhs, `"`)
	rhsIsString := strings.HasPrefix(rhs, `"`)

	if lhsIsString != rhsIsString {
		return false, fmt.Errorf("expr: syntax error: mixed string/numeric comparison in %q", expression)
	}

	if lhsIsString {
		if op != "==" && op != "!=" {
			return false, fmt.Errorf("expr: syntax error: operator %q is not legal for string comparison", op)
		}
		l, lok := unquote(lhs)
		r, rok := unquote(rhs)
		if !lok || !rok {
			return false, fmt.Errorf("expr: syntax error: unterminated quoted string in %q", expression)
		}
		eq := l == r
		if op == "!=" {
			return !eq, nil
		}
		return eq, nil
	}

	lv, err := numericValue(lhs, run)
	if err != nil {
		return false, err
	}
	rv, err := numericValue(rhs, run)
	if err != nil {
		return false, err
	}

	switch op {
	case "==":
		return lv == rv, nil
	case "!=":
		return lv != rv, nil
	case ">=":
		return lv >= rv, nil
	case "<=":
		return lv <= rv, nil
	case ">":
		return lv > rv, nil
	case "<":
		return lv < rv, nil
	default:
		return false, fmt.Errorf("expr: internal error: unknown comparison operator %q", op)
	}
}

// splitComparison splits expression at the leftmost top-level comparison
// operator (==, !=, >=, <=, >, <), skipping quoted/bracketed regions.
// Absence of an operator is a syntax error per spec §4.4.
func splitComparison(expression string) (lhs, op, rhs string, err error) {
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case '[', '"':
			i = lex.SkipBracketedOrQuoted(expression, i) - 1
			continue
		}
		for _, candidate := range comparisonOps {
			if strings.HasPrefix(expression[i:], candidate) {
				return expression[:i], candidate, expression[i+len(candidate):], nil
			}
		}
	}
	return "", "", "", fmt.Errorf("expr: syntax error: no comparison operator in %q", expression)
}

func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// numericValue implements the numeric-side rules of spec §4.4: empty is
// zero, a [...] side is replaced by its sub-command's exit code, otherwise
// it must parse as a signed integer.
func numericValue(side string, run SubCommandRunner) (int, error) {
	if side == "" {
		return 0, nil
	}
	if strings.HasPrefix(side, "[") && strings.HasSuffix(side, "]") {
		cmdText := side[1 : len(side)-1]
		if run == nil {
			return 0, fmt.Errorf("expr: syntax error: sub-command %q has no runner", cmdText)
		}
		return run(cmdText)
	}
	n, err := strconv.Atoi(side)
	if err != nil {
		return 0, fmt.Errorf("expr: syntax error: non-numeric operand %q", side)
	}
	return n, nil
}
