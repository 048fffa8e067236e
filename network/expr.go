package network

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// exprNode is one node of a parsed expression AST.
type exprNode interface {
	free(set map[string]bool)
	eval(env map[string]Value) (Value, error)
}

// --- literals and variables ---

type litNum struct{ v float64 }

func (n litNum) free(map[string]bool) {}
func (n litNum) eval(map[string]Value) (Value, error) { return FloatValue(n.v), nil }

type litBool struct{ v bool }

func (n litBool) free(map[string]bool) {}
func (n litBool) eval(map[string]Value) (Value, error) { return BoolValue(n.v), nil }

type ident struct{ name string }

func (n ident) free(set map[string]bool) { set[n.name] = true }
func (n ident) eval(env map[string]Value) (Value, error) {
	v, ok := env[n.name]
	if !ok {
		return Value{}, fmt.Errorf("network: expression: undefined variable %q", n.name)
	}
	return v, nil
}

// --- binary/unary operators ---

type binOp struct {
	op   string
	l, r exprNode
}

func (n binOp) free(set map[string]bool) { n.l.free(set); n.r.free(set) }

func (n binOp) eval(env map[string]Value) (Value, error) {
	lv, err := n.l.eval(env)
	if err != nil {
		return Value{}, err
	}
	if n.op == "&&" || n.op == "||" {
		if lv.Kind != KindBool {
			return Value{}, fmt.Errorf("network: expression: %q requires bool operands", n.op)
		}
		if n.op == "&&" && !lv.Bool {
			return BoolValue(false), nil
		}
		if n.op == "||" && lv.Bool {
			return BoolValue(true), nil
		}
		rv, err := n.r.eval(env)
		if err != nil {
			return Value{}, err
		}
		return rv, nil
	}
	rv, err := n.r.eval(env)
	if err != nil {
		return Value{}, err
	}
	return applyBinOp(n.op, lv, rv)
}

func applyBinOp(op string, lv, rv Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/", "%", "^":
		if lv.Kind == KindVec3 || rv.Kind == KindVec3 {
			return vec3BinOp(op, lv, rv)
		}
		if lv.Kind == KindVec2 || rv.Kind == KindVec2 {
			return vec2BinOp(op, lv, rv)
		}
		a, err := AsFloat(lv)
		if err != nil {
			return Value{}, err
		}
		b, err := AsFloat(rv)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(scalarBinOp(op, a, b)), nil
	case "==", "!=", "<", "<=", ">", ">=":
		a, err := AsFloat(lv)
		if err != nil {
			return Value{}, err
		}
		b, err := AsFloat(rv)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(compare(op, a, b)), nil
	default:
		return Value{}, fmt.Errorf("network: expression: unknown operator %q", op)
	}
}

func scalarBinOp(op string, a, b float64) float64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "%":
		return math.Mod(a, b)
	case "^":
		return math.Pow(a, b)
	}
	return 0
}

func compare(op string, a, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func vec3BinOp(op string, lv, rv Value) (Value, error) {
	if lv.Kind == KindVec3 && rv.Kind == KindVec3 {
		switch op {
		case "+":
			return Vec3Value(lv.Vec3.Add(rv.Vec3)), nil
		case "-":
			return Vec3Value(lv.Vec3.Sub(rv.Vec3)), nil
		default:
			return Value{}, fmt.Errorf("network: expression: vec3 %s vec3 is not supported", op)
		}
	}
	vec, scalarV := lv, rv
	if rv.Kind == KindVec3 {
		vec, scalarV = rv, lv
	}
	s, err := AsFloat(scalarV)
	if err != nil {
		return Value{}, err
	}
	switch op {
	case "*":
		return Vec3Value(vec.Vec3.MulScalar(s)), nil
	case "/":
		return Vec3Value(vec.Vec3.DivScalar(s)), nil
	default:
		return Value{}, fmt.Errorf("network: expression: vec3 %s scalar is not supported", op)
	}
}

func vec2BinOp(op string, lv, rv Value) (Value, error) {
	if lv.Kind == KindVec2 && rv.Kind == KindVec2 {
		switch op {
		case "+":
			return Vec2Value(lv.Vec2.Add(rv.Vec2)), nil
		case "-":
			return Vec2Value(lv.Vec2.Sub(rv.Vec2)), nil
		default:
			return Value{}, fmt.Errorf("network: expression: vec2 %s vec2 is not supported", op)
		}
	}
	vec, scalarV := lv, rv
	if rv.Kind == KindVec2 {
		vec, scalarV = rv, lv
	}
	s, err := AsFloat(scalarV)
	if err != nil {
		return Value{}, err
	}
	switch op {
	case "*":
		return Vec2Value(vec.Vec2.MulScalar(s)), nil
	case "/":
		return Vec2Value(vec.Vec2.DivScalar(s)), nil
	default:
		return Value{}, fmt.Errorf("network: expression: vec2 %s scalar is not supported", op)
	}
}

type unaryOp struct {
	op string
	x  exprNode
}

func (n unaryOp) free(set map[string]bool) { n.x.free(set) }
func (n unaryOp) eval(env map[string]Value) (Value, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "-":
		if v.Kind == KindVec3 {
			return Vec3Value(v.Vec3.Neg()), nil
		}
		f, err := AsFloat(v)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(-f), nil
	case "!":
		if v.Kind != KindBool {
			return Value{}, fmt.Errorf("network: expression: ! requires a bool operand")
		}
		return BoolValue(!v.Bool), nil
	}
	return Value{}, fmt.Errorf("network: expression: unknown unary operator %q", n.op)
}

// --- conditional ---

type ifExpr struct{ cond, then, els exprNode }

func (n ifExpr) free(set map[string]bool) { n.cond.free(set); n.then.free(set); n.els.free(set) }
func (n ifExpr) eval(env map[string]Value) (Value, error) {
	c, err := n.cond.eval(env)
	if err != nil {
		return Value{}, err
	}
	if c.Kind != KindBool {
		return Value{}, fmt.Errorf("network: expression: if condition must be bool")
	}
	if c.Bool {
		return n.then.eval(env)
	}
	return n.els.eval(env)
}

// --- vector constructors and function calls ---

type call struct {
	name string
	args []exprNode
}

func (n call) free(set map[string]bool) {
	for _, a := range n.args {
		a.free(set)
	}
}

func (n call) eval(env map[string]Value) (Value, error) {
	args := make([]Value, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	switch n.name {
	case "vec2":
		x, errx := AsFloat(args[0])
		y, erry := AsFloat(args[1])
		if errx != nil || erry != nil {
			return Value{}, fmt.Errorf("network: expression: vec2() requires two numbers")
		}
		return Vec2Value(v2.Vec{X: x, Y: y}), nil
	case "vec3":
		x, errx := AsFloat(args[0])
		y, erry := AsFloat(args[1])
		z, errz := AsFloat(args[2])
		if errx != nil || erry != nil || errz != nil {
			return Value{}, fmt.Errorf("network: expression: vec3() requires three numbers")
		}
		return Vec3Value(v3.Vec{X: x, Y: y, Z: z}), nil
	case "ivec2":
		x, errx := AsFloat(args[0])
		y, erry := AsFloat(args[1])
		if errx != nil || erry != nil {
			return Value{}, fmt.Errorf("network: expression: ivec2() requires two numbers")
		}
		return Value{Kind: KindIVec2, Vec2: v2.Vec{X: math.Trunc(x), Y: math.Trunc(y)}}, nil
	case "ivec3":
		x, errx := AsFloat(args[0])
		y, erry := AsFloat(args[1])
		z, errz := AsFloat(args[2])
		if errx != nil || erry != nil || errz != nil {
			return Value{}, fmt.Errorf("network: expression: ivec3() requires three numbers")
		}
		return Value{Kind: KindIVec3, Vec3: v3.Vec{X: math.Trunc(x), Y: math.Trunc(y), Z: math.Trunc(z)}}, nil
	case "dot2":
		if len(args) != 2 || args[0].Kind != KindVec2 || args[1].Kind != KindVec2 {
			return Value{}, fmt.Errorf("network: expression: dot2() requires two vec2 arguments")
		}
		return FloatValue(args[0].Vec2.Dot(args[1].Vec2)), nil
	case "dot3":
		if len(args) != 2 || args[0].Kind != KindVec3 || args[1].Kind != KindVec3 {
			return Value{}, fmt.Errorf("network: expression: dot3() requires two vec3 arguments")
		}
		return FloatValue(args[0].Vec3.Dot(args[1].Vec3)), nil
	case "cross":
		if len(args) != 2 || args[0].Kind != KindVec3 || args[1].Kind != KindVec3 {
			return Value{}, fmt.Errorf("network: expression: cross() requires two vec3 arguments")
		}
		return Vec3Value(args[0].Vec3.Cross(args[1].Vec3)), nil
	case "length2":
		if len(args) != 1 || args[0].Kind != KindVec2 {
			return Value{}, fmt.Errorf("network: expression: length2() requires one vec2 argument")
		}
		return FloatValue(args[0].Vec2.Length()), nil
	case "length3":
		if len(args) != 1 || args[0].Kind != KindVec3 {
			return Value{}, fmt.Errorf("network: expression: length3() requires one vec3 argument")
		}
		return FloatValue(args[0].Vec3.Length()), nil
	case "normalize2":
		if len(args) != 1 || args[0].Kind != KindVec2 {
			return Value{}, fmt.Errorf("network: expression: normalize2() requires one vec2 argument")
		}
		return Vec2Value(args[0].Vec2.Normalize()), nil
	case "normalize3":
		if len(args) != 1 || args[0].Kind != KindVec3 {
			return Value{}, fmt.Errorf("network: expression: normalize3() requires one vec3 argument")
		}
		return Vec3Value(args[0].Vec3.Normalize()), nil
	case "distance2":
		if len(args) != 2 || args[0].Kind != KindVec2 || args[1].Kind != KindVec2 {
			return Value{}, fmt.Errorf("network: expression: distance2() requires two vec2 arguments")
		}
		return FloatValue(args[0].Vec2.Sub(args[1].Vec2).Length()), nil
	case "distance3":
		if len(args) != 2 || args[0].Kind != KindVec3 || args[1].Kind != KindVec3 {
			return Value{}, fmt.Errorf("network: expression: distance3() requires two vec3 arguments")
		}
		return FloatValue(args[0].Vec3.Sub(args[1].Vec3).Length()), nil
	}
	return evalMathFunc(n.name, args)
}

func evalMathFunc(name string, args []Value) (Value, error) {
	if len(args) == 1 {
		x, err := AsFloat(args[0])
		if err == nil {
			switch name {
			case "sin":
				return FloatValue(math.Sin(x)), nil
			case "cos":
				return FloatValue(math.Cos(x)), nil
			case "tan":
				return FloatValue(math.Tan(x)), nil
			case "sqrt":
				return FloatValue(math.Sqrt(x)), nil
			case "abs":
				return FloatValue(math.Abs(x)), nil
			case "floor":
				return FloatValue(math.Floor(x)), nil
			case "ceil":
				return FloatValue(math.Ceil(x)), nil
			case "round":
				return FloatValue(math.Round(x)), nil
			}
		}
	}
	if len(args) == 2 && (name == "min" || name == "max" || name == "atan2" || name == "pow") {
		a, erra := AsFloat(args[0])
		b, errb := AsFloat(args[1])
		if erra == nil && errb == nil {
			switch name {
			case "min":
				return FloatValue(math.Min(a, b)), nil
			case "max":
				return FloatValue(math.Max(a, b)), nil
			case "atan2":
				return FloatValue(math.Atan2(a, b)), nil
			case "pow":
				return FloatValue(math.Pow(a, b)), nil
			}
		}
	}
	return Value{}, fmt.Errorf("network: expression: unknown function %q", name)
}

// --- field access (vec.x / vec.y / vec.z) ---

type fieldAccess struct {
	x     exprNode
	field string
}

func (n fieldAccess) free(set map[string]bool) { n.x.free(set) }
func (n fieldAccess) eval(env map[string]Value) (Value, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return Value{}, err
	}
	switch v.Kind {
	case KindVec3, KindIVec3:
		switch n.field {
		case "x":
			return FloatValue(v.Vec3.X), nil
		case "y":
			return FloatValue(v.Vec3.Y), nil
		case "z":
			return FloatValue(v.Vec3.Z), nil
		}
	case KindVec2, KindIVec2:
		switch n.field {
		case "x":
			return FloatValue(v.Vec2.X), nil
		case "y":
			return FloatValue(v.Vec2.Y), nil
		}
	}
	return Value{}, fmt.Errorf("network: expression: no field %q on %s", n.field, v.Kind)
}

// --- parsing ---

// parseExpr parses source into an AST.
func parseExpr(source string) (exprNode, error) {
	toks, err := lex(source)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks}
	n, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("network: expression: unexpected trailing token %q", p.toks[p.pos].text)
	}
	return n, nil
}

type token struct {
	kind string // "num","ident","op","lparen","rparen","comma","dot","eof","kw"
	text string
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c):
			j := i
			for j < len(s) && (unicode.IsDigit(rune(s[j])) || s[j] == '.') {
				j++
			}
			toks = append(toks, token{"num", s[i:j]})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			word := s[i:j]
			switch word {
			case "if", "then", "else", "true", "false":
				toks = append(toks, token{"kw", word})
			default:
				toks = append(toks, token{"ident", word})
			}
			i = j
		case c == '(':
			toks = append(toks, token{"lparen", "("})
			i++
		case c == ')':
			toks = append(toks, token{"rparen", ")"})
			i++
		case c == ',':
			toks = append(toks, token{"comma", ","})
			i++
		case c == '.':
			toks = append(toks, token{"dot", "."})
			i++
		default:
			two := ""
			if i+1 < len(s) {
				two = s[i : i+2]
			}
			switch two {
			case "&&", "||", "==", "!=", "<=", ">=":
				toks = append(toks, token{"op", two})
				i += 2
				continue
			}
			one := string(c)
			if strings.ContainsRune("+-*/%^<>!", c) {
				toks = append(toks, token{"op", one})
				i++
				continue
			}
			return nil, fmt.Errorf("network: expression: unexpected character %q", one)
		}
	}
	return toks, nil
}

type exprParser struct {
	toks []token
	pos  int
}

func (p *exprParser) peek() token {
	if p.pos >= len(p.toks) {
		return token{"eof", ""}
	}
	return p.toks[p.pos]
}

func (p *exprParser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *exprParser) expect(kind, text string) error {
	t := p.next()
	if t.kind != kind || (text != "" && t.text != text) {
		return fmt.Errorf("network: expression: expected %q, got %q", text, t.text)
	}
	return nil
}

func (p *exprParser) parseTernary() (exprNode, error) {
	if p.peek().kind == "kw" && p.peek().text == "if" {
		p.next()
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect("kw", "then"); err != nil {
			return nil, err
		}
		then, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect("kw", "else"); err != nil {
			return nil, err
		}
		els, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return ifExpr{cond, then, els}, nil
	}
	return p.parseOr()
}

func (p *exprParser) parseOr() (exprNode, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "op" && p.peek().text == "||" {
		p.next()
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = binOp{"||", l, r}
	}
	return l, nil
}

func (p *exprParser) parseAnd() (exprNode, error) {
	l, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "op" && p.peek().text == "&&" {
		p.next()
		r, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		l = binOp{"&&", l, r}
	}
	return l, nil
}

func (p *exprParser) parseCompare() (exprNode, error) {
	l, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "op" && isCompareOp(p.peek().text) {
		op := p.next().text
		r, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		l = binOp{op, l, r}
	}
	return l, nil
}

func isCompareOp(s string) bool {
	switch s {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func (p *exprParser) parseAdd() (exprNode, error) {
	l, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "op" && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text
		r, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		l = binOp{op, l, r}
	}
	return l, nil
}

func (p *exprParser) parseMul() (exprNode, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "op" && (p.peek().text == "*" || p.peek().text == "/" || p.peek().text == "%") {
		op := p.next().text
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = binOp{op, l, r}
	}
	return l, nil
}

func (p *exprParser) parseUnary() (exprNode, error) {
	if p.peek().kind == "op" && (p.peek().text == "-" || p.peek().text == "!") {
		op := p.next().text
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryOp{op, x}, nil
	}
	return p.parsePow()
}

func (p *exprParser) parsePow() (exprNode, error) {
	l, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == "op" && p.peek().text == "^" {
		p.next()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binOp{"^", l, r}, nil
	}
	return l, nil
}

func (p *exprParser) parsePostfix() (exprNode, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "dot" {
		p.next()
		field := p.next()
		if field.kind != "ident" {
			return nil, fmt.Errorf("network: expression: expected field name after '.'")
		}
		n = fieldAccess{n, field.text}
	}
	return n, nil
}

func (p *exprParser) parsePrimary() (exprNode, error) {
	t := p.next()
	switch t.kind {
	case "num":
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("network: expression: bad number %q", t.text)
		}
		return litNum{v}, nil
	case "kw":
		if t.text == "true" {
			return litBool{true}, nil
		}
		if t.text == "false" {
			return litBool{false}, nil
		}
		return nil, fmt.Errorf("network: expression: unexpected keyword %q", t.text)
	case "lparen":
		n, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect("rparen", ")"); err != nil {
			return nil, err
		}
		return n, nil
	case "ident":
		if p.peek().kind == "lparen" {
			p.next()
			var args []exprNode
			if p.peek().kind != "rparen" {
				for {
					a, err := p.parseTernary()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if p.peek().kind == "comma" {
						p.next()
						continue
					}
					break
				}
			}
			if err := p.expect("rparen", ")"); err != nil {
				return nil, err
			}
			return call{t.text, args}, nil
		}
		return ident{t.text}, nil
	}
	return nil, fmt.Errorf("network: expression: unexpected token %q", t.text)
}

// evalExpression evaluates an expression node: its free variables
// become dynamic input pins, resolved the same way ordinary node input
// pins are (wire, else literal param).
func (e *Evaluator) evalExpression(ctx context.Context, node *Node) (map[string]Value, error) {
	ast, err := parseExpr(node.ExprSource)
	if err != nil {
		return nil, err
	}
	free := map[string]bool{}
	ast.free(free)

	env := make(map[string]Value, len(free))
	for name := range free {
		v, err := e.resolveInput(ctx, node.ID, PinSpec{Name: name, Kind: KindInvalid})
		if err != nil {
			return nil, fmt.Errorf("network: expression node %q: %w", node.ID, err)
		}
		env[name] = v
	}
	result, err := ast.eval(env)
	if err != nil {
		return nil, err
	}
	return map[string]Value{"value": result}, nil
}

// FreeVariables returns the set of free variable names referenced by an
// expression source string, used to reconcile an expression node's
// dynamic pins after an edit (spec §4.C "expression node").
func FreeVariables(source string) ([]string, error) {
	ast, err := parseExpr(source)
	if err != nil {
		return nil, err
	}
	set := map[string]bool{}
	ast.free(set)
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out, nil
}
