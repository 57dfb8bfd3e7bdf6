// Package expr 对命名波形做逐点四则运算，或按 "A vs B" 绘制参数曲线。
//
// 表达式由空格分隔，操作数与运算符交替出现，例如 "v1 + v2" 或
// "(v1 + v2) / v3"。运算只支持数字、操作数替换、+ - * / 与括号。
package expr

import (
	"fmt"
	"strings"
	"waveform/types"
)

// 表达式错误，均满足 errors.Is(err, types.ErrExpression)
var (
	ErrSyntax         = fmt.Errorf("%w: 参数过少或语法错误", types.ErrExpression)
	ErrUnknownOperand = fmt.Errorf("%w: 操作数不在波形列表中", types.ErrExpression)
	ErrMixedKind      = fmt.Errorf("%w: 不能混合电压与电流", types.ErrExpression)
	ErrArithmetic     = fmt.Errorf("%w: 除零或运算错误", types.ErrExpression)
)

// Keyword 参数曲线关键字
const Keyword = "vs"

// Names 操作数名称解析
type Names interface {
	Lookup(name string) (int, bool)  // 名称到索引
	Kind(index int) types.SignalKind // 信号类型
}

// Result 求值结果，不属于波形表
type Result struct {
	Series     types.Series
	XLabel     string // 参数曲线的横轴标签
	YLabel     string // 参数曲线的纵轴标签
	Parametric bool   // 是否为 A vs B
}

// Tokens 按空白分割表达式
func Tokens(s string) []string { return strings.Fields(s) }

// EvaluateString 分割并求值
func EvaluateString(s string, names Names, data types.SeriesSource) (Result, error) {
	return Evaluate(Tokens(s), names, data)
}

// Evaluate 求值，失败时不产生任何部分结果
func Evaluate(tokens []string, names Names, data types.SeriesSource) (Result, error) {
	if len(tokens) < 3 || len(tokens)%2 == 0 {
		return Result{}, ErrSyntax
	}
	label := strings.Join(tokens, " ")
	// 参数曲线
	if len(tokens) == 3 && tokens[1] == Keyword {
		return parametric(tokens, label, names, data)
	}
	// 解析操作数与运算符
	var list []token
	var indices []int
	for i, s := range tokens {
		if i%2 == 1 {
			ops, err := lexOperator(s)
			if err != nil {
				return Result{}, err
			}
			list = append(list, ops...)
			continue
		}
		index, lead, trail, ok := operand(s, names.Lookup)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownOperand, s)
		}
		for range lead {
			list = append(list, token{kind: tokLParen})
		}
		list = append(list, token{kind: tokVar, slot: len(indices)})
		for range trail {
			list = append(list, token{kind: tokRParen})
		}
		indices = append(indices, index)
	}
	// 类型检查
	kind := names.Kind(indices[0])
	for _, i := range indices[1:] {
		if names.Kind(i) != kind {
			return Result{}, ErrMixedKind
		}
	}
	tree, err := parse(list)
	if err != nil {
		return Result{}, err
	}
	// 逐点求值
	axis := data.IndependentAxis()
	columns := make([][]float64, len(indices))
	n := len(axis)
	for k, i := range indices {
		columns[k] = data.SampleSeries(i)
		n = min(n, len(columns[k]))
	}
	y := make([]float64, n)
	vars := make([]float64, len(indices))
	for j := 0; j < n; j++ {
		for k := range columns {
			vars[k] = columns[k][j]
		}
		v, err := tree.eval(vars)
		if err != nil {
			return Result{}, fmt.Errorf("第 %d 个采样点: %w", j, err)
		}
		y[j] = v
	}
	x := append([]float64(nil), axis[:n]...)
	return Result{Series: derived(x, y, label)}, nil
}

// parametric 以 A 为横轴、B 为纵轴按采样序号对齐
func parametric(tokens []string, label string, names Names, data types.SeriesSource) (Result, error) {
	a, ok := names.Lookup(tokens[0])
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownOperand, tokens[0])
	}
	b, ok := names.Lookup(tokens[2])
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownOperand, tokens[2])
	}
	xs, ys := data.SampleSeries(a), data.SampleSeries(b)
	n := min(len(xs), len(ys))
	axisLabel := types.LabelCurrent
	if names.Kind(a) == types.SignalVoltage && names.Kind(b) == types.SignalVoltage {
		axisLabel = types.LabelVoltage
	}
	return Result{
		Series:     derived(append([]float64(nil), xs[:n]...), append([]float64(nil), ys[:n]...), label),
		XLabel:     axisLabel,
		YLabel:     axisLabel,
		Parametric: true,
	}, nil
}

// derived 表达式结果曲线
func derived(x, y []float64, label string) types.Series {
	return types.Series{
		X:     x,
		Y:     y,
		Color: types.DerivedColor,
		Width: types.DerivedThickness,
		Style: types.StyleSolid,
		Label: label,
	}
}
