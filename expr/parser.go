package expr

import (
	"fmt"
	"math"
)

// node 语法树节点
type node interface {
	eval(vars []float64) (float64, error)
}

type number float64

func (n number) eval([]float64) (float64, error) { return float64(n), nil }

type variable int

func (v variable) eval(vars []float64) (float64, error) { return vars[v], nil }

type unary struct {
	op byte
	x  node
}

func (u unary) eval(vars []float64) (float64, error) {
	v, err := u.x.eval(vars)
	if err != nil {
		return 0, err
	}
	if u.op == '-' {
		return -v, nil
	}
	return v, nil
}

type binary struct {
	op   byte
	l, r node
}

func (b binary) eval(vars []float64) (float64, error) {
	l, err := b.l.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := b.r.eval(vars)
	if err != nil {
		return 0, err
	}
	var v float64
	switch b.op {
	case '+':
		v = l + r
	case '-':
		v = l - r
	case '*':
		v = l * r
	case '/':
		if r == 0 {
			return 0, fmt.Errorf("%w: 除数为零", ErrArithmetic)
		}
		v = l / r
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: 结果溢出", ErrArithmetic)
	}
	return v, nil
}

// parser 四则运算递归下降解析
// expr  := term (('+'|'-') term)*
// term  := unary (('*'|'/') unary)*
// unary := ('+'|'-') unary | primary
// primary := number | operand | '(' expr ')'
type parser struct {
	tokens []token
	pos    int
}

// parse 解析完整的词法单元序列
func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("%w: 多余的符号", ErrSyntax)
	}
	return n, nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) expr() (node, error) {
	l, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.op != '+' && t.op != '-') {
			return l, nil
		}
		p.pos++
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		l = binary{op: t.op, l: l, r: r}
	}
}

func (p *parser) term() (node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.op != '*' && t.op != '/') {
			return l, nil
		}
		p.pos++
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = binary{op: t.op, l: l, r: r}
	}
}

func (p *parser) unary() (node, error) {
	t, ok := p.peek()
	if ok && t.kind == tokOp && (t.op == '+' || t.op == '-') {
		p.pos++
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unary{op: t.op, x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: 表达式不完整", ErrSyntax)
	}
	p.pos++
	switch t.kind {
	case tokNumber:
		return number(t.value), nil
	case tokVar:
		return variable(t.slot), nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if t, ok := p.peek(); !ok || t.kind != tokRParen {
			return nil, fmt.Errorf("%w: 括号不匹配", ErrSyntax)
		}
		p.pos++
		return n, nil
	}
	return nil, fmt.Errorf("%w: 意外的符号", ErrSyntax)
}
