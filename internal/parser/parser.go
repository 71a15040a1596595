package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumina-lang/lumina/internal/evaluate"
)

// Parser builds evaluate expression trees from source text. Intrinsic
// names are bound to their IntrinsicOp here, so the folder never matches
// on raw names.
type Parser struct {
	lexer *lexer
	tok   token
}

// Parse parses a single expression and checks that the whole input was
// consumed.
func Parse(input string) (evaluate.Expr, error) {
	p := &Parser{lexer: newLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, fmt.Errorf("column %d: unexpected %q after expression", p.tok.pos+1, p.tok.text)
	}
	return expr, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(text string) error {
	if p.tok.text != text {
		return fmt.Errorf("column %d: expected %q, got %q", p.tok.pos+1, text, p.tok.text)
	}
	return p.advance()
}

// Precedence, loosest first: .eqv./.neqv., .or., .and., .not.,
// relational, primary.

func (p *Parser) parseExpression() (evaluate.Expr, error) {
	return p.parseEquivalence()
}

func (p *Parser) parseEquivalence() (evaluate.Expr, error) {
	left, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	for p.tok.text == ".eqv." || p.tok.text == ".neqv." {
		op := evaluate.OpEqv
		if p.tok.text == ".neqv." {
			op = evaluate.OpNeqv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		left = logicalOperation(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseDisjunction() (evaluate.Expr, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.tok.text == ".or." {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		left = logicalOperation(evaluate.OpOr, left, right)
	}
	return left, nil
}

func (p *Parser) parseConjunction() (evaluate.Expr, error) {
	left, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	for p.tok.text == ".and." {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		left = logicalOperation(evaluate.OpAnd, left, right)
	}
	return left, nil
}

func (p *Parser) parseNegation() (evaluate.Expr, error) {
	if p.tok.text == ".not." {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		return &evaluate.Not{
			Operand: operand,
			Result:  evaluate.LogicalType(evaluate.DefaultLogicalKind),
		}, nil
	}
	return p.parseComparison()
}

var relationalOps = map[string]evaluate.RelationalOperator{
	"<":    evaluate.OpLT,
	"<=":   evaluate.OpLE,
	"==":   evaluate.OpEQ,
	"/=":   evaluate.OpNE,
	">":    evaluate.OpGT,
	">=":   evaluate.OpGE,
	".lt.": evaluate.OpLT,
	".le.": evaluate.OpLE,
	".eq.": evaluate.OpEQ,
	".ne.": evaluate.OpNE,
	".gt.": evaluate.OpGT,
	".ge.": evaluate.OpGE,
}

func (p *Parser) parseComparison() (evaluate.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	op, ok := relationalOps[p.tok.text]
	if !ok {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &evaluate.Relational{
		Op:     op,
		Left:   left,
		Right:  right,
		Result: evaluate.LogicalType(evaluate.DefaultLogicalKind),
	}, nil
}

func logicalOperation(op evaluate.LogicalOperator, left, right evaluate.Expr) evaluate.Expr {
	return &evaluate.LogicalOperation{
		Op:     op,
		Left:   left,
		Right:  right,
		Result: evaluate.LogicalType(evaluate.DefaultLogicalKind),
	}
}

func (p *Parser) parsePrimary() (evaluate.Expr, error) {
	tok := p.tok
	switch tok.kind {
	case tokenInt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return parseIntLiteral(tok.text)
	case tokenReal:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return parseRealLiteral(tok.text)
	case tokenString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return evaluate.NewScalarConstant(
			evaluate.NewCharacter(tok.text, evaluate.DefaultCharacterKind)), nil
	case tokenBOZ:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return parseBOZLiteral(tok.text)
	case tokenDotWord:
		if tok.text == ".true." || tok.text == ".false." {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return evaluate.NewScalarConstant(
				evaluate.NewLogical(tok.text == ".true.", evaluate.DefaultLogicalKind)), nil
		}
		return nil, fmt.Errorf("column %d: unexpected operator %q", tok.pos+1, tok.text)
	case tokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.text == "(" {
			return p.parseCall(tok)
		}
		return designatorFor(tok.text), nil
	case tokenOp:
		switch tok.text {
		case "-", "+":
			if err := p.advance(); err != nil {
				return nil, err
			}
			operand, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			if tok.text == "+" {
				return operand, nil
			}
			return negateConstant(operand)
		case "(":
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "[":
			return p.parseArrayConstructor()
		}
	}
	return nil, fmt.Errorf("column %d: unexpected %q", tok.pos+1, tok.text)
}

// negateConstant applies unary minus to a numeric literal.
func negateConstant(e evaluate.Expr) (evaluate.Expr, error) {
	v, ok := evaluate.GetScalarConstantValue(e)
	if !ok {
		return nil, fmt.Errorf("unary minus needs a numeric literal, got %s", e)
	}
	switch x := v.(type) {
	case evaluate.Integer:
		return evaluate.NewScalarConstant(evaluate.NewInteger(-x.ToInt64(), x.Kind())), nil
	case evaluate.Real:
		return evaluate.NewScalarConstant(evaluate.NewReal(-x.Value(), x.Kind())), nil
	default:
		return nil, fmt.Errorf("unary minus needs a numeric literal, got %s", e)
	}
}

// designatorFor builds an undeclared named entity. Implicit typing rules
// apply: names starting with i through n are integers, the rest reals.
func designatorFor(name string) *evaluate.Designator {
	typ := evaluate.RealType(evaluate.DefaultRealKind)
	if name[0] >= 'i' && name[0] <= 'n' {
		typ = evaluate.IntegerType(evaluate.DefaultIntegerKind)
	}
	return &evaluate.Designator{Name: name, Typ: typ}
}

func (p *Parser) parseCall(name token) (evaluate.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	if name.text == "null" {
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return &evaluate.NullPointer{}, nil
	}
	op := evaluate.BindIntrinsic(name.text)
	var args []*evaluate.ActualArgument
	position := 0
	for p.tok.text != ")" && p.tok.kind != tokenEOF {
		slot := position
		if p.tok.kind == tokenIdent && p.peekIsKeyword() {
			keyword := p.tok.text
			slot = evaluate.IntrinsicParamIndex(op, keyword)
			if slot < 0 {
				return nil, fmt.Errorf("column %d: %q is not an argument keyword of %s",
					p.tok.pos+1, keyword, name.text)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect("="); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		for len(args) <= slot {
			args = append(args, nil)
		}
		args[slot] = &evaluate.ActualArgument{Expr: arg}
		position++
		if p.tok.text != "," {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return bindCall(op, name.text, args)
}

// peekIsKeyword reports whether the current identifier begins a keyword
// argument, i.e. the next token is a bare "=".
func (p *Parser) peekIsKeyword() bool {
	rest := strings.TrimLeft(p.lexer.input[p.lexer.pos:], " \t")
	return strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==")
}

// bindCall resolves the result type of a bound intrinsic call. A constant
// KIND argument of LOGICAL selects the result kind.
func bindCall(op evaluate.IntrinsicOp, name string, args []*evaluate.ActualArgument) (evaluate.Expr, error) {
	result := evaluate.LogicalType(evaluate.DefaultLogicalKind)
	if op == evaluate.IntrinsicLogical && len(args) > 1 && args[1] != nil {
		v, ok := evaluate.GetScalarConstantValue(args[1].Expr)
		if !ok {
			return nil, fmt.Errorf("KIND argument of %s must be a constant", name)
		}
		kind, ok := v.(evaluate.Integer)
		if !ok {
			return nil, fmt.Errorf("KIND argument of %s must be an integer", name)
		}
		result = evaluate.LogicalType(int(kind.ToInt64()))
		args = args[:1]
	}
	return &evaluate.FunctionRef{Op: op, Name: name, Args: args, Result: result}, nil
}

func (p *Parser) parseArrayConstructor() (evaluate.Expr, error) {
	start := p.tok.pos
	if err := p.expect("["); err != nil {
		return nil, err
	}
	var elements []*evaluate.Constant
	for p.tok.text != "]" && p.tok.kind != tokenEOF {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c, ok := expr.(*evaluate.Constant)
		if !ok {
			return nil, fmt.Errorf("column %d: array constructor elements must be constant", start+1)
		}
		elements = append(elements, c)
		if p.tok.text != "," {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	return buildArray(start, elements)
}

// buildArray assembles an array constant from uniform elements. Nested
// array elements of equal shape stack into a higher-rank constant.
func buildArray(pos int, elements []*evaluate.Constant) (*evaluate.Constant, error) {
	if len(elements) == 0 {
		// An empty constructor defaults to a logical vector, the common
		// operand of the reduction intrinsics.
		return evaluate.NewArrayConstant(
			evaluate.LogicalType(evaluate.DefaultLogicalKind), nil, []int{0})
	}
	first := elements[0]
	var values []evaluate.Scalar
	for _, element := range elements {
		if element.Type() != first.Type() {
			return nil, fmt.Errorf("column %d: array constructor elements must have the same type (%s vs %s)",
				pos+1, first.Type(), element.Type())
		}
		if !sameShape(element.Shape(), first.Shape()) {
			return nil, fmt.Errorf("column %d: array constructor elements must have the same shape", pos+1)
		}
		values = append(values, element.Values()...)
	}
	shape := append([]int{len(elements)}, first.Shape()...)
	return evaluate.NewArrayConstant(first.Type(), values, shape)
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, extent := range a {
		if b[i] != extent {
			return false
		}
	}
	return true
}

// ====== Literals ======

func splitKindSuffix(text string, defaultKind int) (string, int, error) {
	if i := strings.LastIndexByte(text, '_'); i >= 0 {
		kind, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return "", 0, fmt.Errorf("bad kind suffix in %q", text)
		}
		switch kind {
		case 1, 2, 4, 8:
		default:
			return "", 0, fmt.Errorf("unsupported kind %d in %q", kind, text)
		}
		return text[:i], kind, nil
	}
	return text, defaultKind, nil
}

func parseIntLiteral(text string) (evaluate.Expr, error) {
	digits, kind, err := splitKindSuffix(text, evaluate.DefaultIntegerKind)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad integer literal %q", text)
	}
	return evaluate.NewScalarConstant(evaluate.NewInteger(v, kind)), nil
}

func parseRealLiteral(text string) (evaluate.Expr, error) {
	digits, kind, err := splitKindSuffix(text, evaluate.DefaultRealKind)
	if err != nil {
		return nil, err
	}
	// A d exponent selects double precision unless a kind suffix says
	// otherwise.
	if i := strings.IndexByte(digits, 'd'); i >= 0 {
		digits = digits[:i] + "e" + digits[i+1:]
		if !strings.Contains(text, "_") {
			kind = 8
		}
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil, fmt.Errorf("bad real literal %q", text)
	}
	return evaluate.NewScalarConstant(evaluate.NewReal(v, kind)), nil
}

func parseBOZLiteral(text string) (evaluate.Expr, error) {
	var base int
	switch text[0] {
	case 'b':
		base = 2
	case 'o':
		base = 8
	default:
		base = 16
	}
	digits := strings.Trim(text[1:], "'")
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, fmt.Errorf("bad BOZ literal %q", text)
	}
	return &evaluate.BOZLiteral{Pattern: v}, nil
}
