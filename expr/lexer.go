package expr

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// tokenKind 词法单元类型
type tokenKind uint8

const (
	tokNumber tokenKind = iota // 数字常量
	tokVar                     // 操作数(波形)
	tokOp                      // + - * /
	tokLParen                  // (
	tokRParen                  // )
)

// token 词法单元
type token struct {
	kind  tokenKind
	op    byte    // 运算符
	value float64 // 数字值
	slot  int     // 操作数序号
}

// splitOperator 分割运算符片段
func splitOperator(data []byte, atEOF bool) (advance int, tok []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	switch c := data[0]; {
	case c == ' ' || c == '\t':
		i := 1
		for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
			i++
		}
		return i, data[:i], nil
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '(' || c == ')':
		return 1, data[:1], nil
	case (c >= '0' && c <= '9') || c == '.':
		i := 1
		for i < len(data) {
			c := data[i]
			if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
				i++
				continue
			}
			// 指数符号
			if (c == '+' || c == '-') && (data[i-1] == 'e' || data[i-1] == 'E') {
				i++
				continue
			}
			break
		}
		if i == len(data) && !atEOF {
			return 0, nil, nil
		}
		return i, data[:i], nil
	default:
		return 0, nil, fmt.Errorf("%w: 非法字符 %q", ErrSyntax, c)
	}
}

// lexOperator 解析运算符位置的片段
func lexOperator(s string) ([]token, error) {
	scanner := bufio.NewScanner(strings.NewReader(s))
	scanner.Split(splitOperator)
	var list []token
	for scanner.Scan() {
		text := scanner.Text()
		switch text[0] {
		case ' ', '\t':
			continue
		case '+', '-', '*', '/':
			list = append(list, token{kind: tokOp, op: text[0]})
		case '(':
			list = append(list, token{kind: tokLParen})
		case ')':
			list = append(list, token{kind: tokRParen})
		default:
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: 非法数字 %q", ErrSyntax, text)
			}
			list = append(list, token{kind: tokNumber, value: v})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: 缺少运算符", ErrSyntax)
	}
	return list, nil
}

// operand 解析操作数位置，允许名称前后紧贴括号
// 完整名称优先，例如 "v(out)" 本身就是波形名称时不拆分括号
func operand(s string, lookup func(string) (int, bool)) (index, lead, trail int, ok bool) {
	maxLead := len(s) - len(strings.TrimLeft(s, "("))
	maxTrail := len(s) - len(strings.TrimRight(s, ")"))
	for l := 0; l <= maxLead; l++ {
		for r := 0; r <= maxTrail && l+r < len(s); r++ {
			if i, found := lookup(s[l : len(s)-r]); found {
				return i, l, r, true
			}
		}
	}
	return -1, 0, 0, false
}
