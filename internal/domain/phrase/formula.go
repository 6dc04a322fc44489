package phrase

import (
	"math"
	"strconv"
	"strings"
)

// CalculateFormula evaluates a restricted arithmetic formula of the form
// "target = expression" over the given numeric inputs. The target name is
// informational only; only the expression is evaluated.
//
// The grammar is closed by design: numeric literals, names present in
// inputs, parentheses, and the binary operators + - * /. Anything else
// (function calls, unknown names, a second "=", control flow) makes the
// whole evaluation refuse and return ok=false. Formulas are caller-supplied
// persisted strings, so this parser is the safety boundary — it never
// delegates to a general-purpose evaluator.
//
// Division by zero also yields ok=false rather than ±Inf.
func CalculateFormula(formula string, inputs map[string]float64) (float64, bool) {
	expr := formula
	if i := strings.IndexByte(formula, '='); i >= 0 {
		expr = formula[i+1:]
	}
	if strings.ContainsRune(expr, '=') {
		return 0, false // assignment chains are not part of the grammar
	}

	toks, ok := tokenizeFormula(expr)
	if !ok {
		return 0, false
	}
	p := &formulaParser{toks: toks, inputs: inputs}
	v, ok := p.parseExpr()
	if !ok || p.pos != len(p.toks) {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

type formulaToken struct {
	kind  byte // 'n' number, 'i' identifier, 'o' operator/paren
	text  string
	value float64
}

func tokenizeFormula(expr string) ([]formulaToken, bool) {
	var toks []formulaToken
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(expr[i:j], 64)
			if err != nil {
				return nil, false
			}
			toks = append(toks, formulaToken{kind: 'n', value: v})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(expr) && isIdentPart(expr[j]) {
				j++
			}
			toks = append(toks, formulaToken{kind: 'i', text: expr[i:j]})
			i = j
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '(' || c == ')':
			toks = append(toks, formulaToken{kind: 'o', text: string(c)})
			i++
		default:
			return nil, false // anything outside the grammar refuses evaluation
		}
	}
	return toks, true
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// formulaParser is a recursive-descent parser with standard precedence:
// expr := term (('+'|'-') term)* ; term := factor (('*'|'/') factor)* ;
// factor := number | name | '-' factor | '(' expr ')'.
type formulaParser struct {
	toks   []formulaToken
	pos    int
	inputs map[string]float64
}

func (p *formulaParser) peek() (formulaToken, bool) {
	if p.pos >= len(p.toks) {
		return formulaToken{}, false
	}
	return p.toks[p.pos], true
}

func (p *formulaParser) acceptOp(op string) bool {
	t, ok := p.peek()
	if ok && t.kind == 'o' && t.text == op {
		p.pos++
		return true
	}
	return false
}

func (p *formulaParser) parseExpr() (float64, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return 0, false
	}
	for {
		switch {
		case p.acceptOp("+"):
			right, ok := p.parseTerm()
			if !ok {
				return 0, false
			}
			left += right
		case p.acceptOp("-"):
			right, ok := p.parseTerm()
			if !ok {
				return 0, false
			}
			left -= right
		default:
			return left, true
		}
	}
}

func (p *formulaParser) parseTerm() (float64, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return 0, false
	}
	for {
		switch {
		case p.acceptOp("*"):
			right, ok := p.parseFactor()
			if !ok {
				return 0, false
			}
			left *= right
		case p.acceptOp("/"):
			right, ok := p.parseFactor()
			if !ok || right == 0 {
				return 0, false
			}
			left /= right
		default:
			return left, true
		}
	}
}

func (p *formulaParser) parseFactor() (float64, bool) {
	t, ok := p.peek()
	if !ok {
		return 0, false
	}
	switch t.kind {
	case 'n':
		p.pos++
		return t.value, true
	case 'i':
		v, present := p.inputs[t.text]
		if !present {
			return 0, false // names outside the allow-list refuse evaluation
		}
		p.pos++
		// A name directly followed by "(" would be a function call.
		if next, ok := p.peek(); ok && next.kind == 'o' && next.text == "(" {
			return 0, false
		}
		return v, true
	case 'o':
		if t.text == "-" {
			p.pos++
			v, ok := p.parseFactor()
			return -v, ok
		}
		if t.text == "(" {
			p.pos++
			v, ok := p.parseExpr()
			if !ok || !p.acceptOp(")") {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}
