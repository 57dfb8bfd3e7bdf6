package axis

import (
	"math"
	"waveform/types"

	"gonum.org/v1/gonum/floats"
)

// 视图缩放参数
const (
	ZoomInFactor  = 0.9 // 放大
	ZoomOutFactor = 1.1 // 缩小
	PanFraction   = 0.1 // 平移比例
	MarginX       = 0.05
	MarginY       = 0.1
)

// Zoom 以中心缩放
func Zoom(r types.Range, factor float64) types.Range {
	c, half := r.Center(), r.Span()*factor/2
	return types.Range{Min: c - half, Max: c + half}
}

// ZoomAt 以指定点缩放，保持该点在视图中的相对位置
func ZoomAt(r types.Range, at, factor float64) types.Range {
	span := r.Span()
	if span == 0 {
		return Zoom(r, factor)
	}
	ratio := (at - r.Min) / span
	scaled := span * factor
	return types.Range{Min: at - scaled*ratio, Max: at + scaled*(1-ratio)}
}

// Pan 平移，正方向为增大
func Pan(r types.Range, fraction float64) types.Range {
	d := r.Span() * fraction
	return types.Range{Min: r.Min + d, Max: r.Max + d}
}

// Extent 一组序列的取值范围，没有数据时返回 false
func Extent(series ...[]float64) (types.Range, bool) {
	r := types.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	found := false
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		found = true
		r.Min = math.Min(r.Min, floats.Min(s))
		r.Max = math.Max(r.Max, floats.Max(s))
	}
	return r, found
}

// Pad 按比例扩展范围
func Pad(r types.Range, margin float64) types.Range {
	d := r.Span() * margin
	return types.Range{Min: r.Min - d, Max: r.Max + d}
}
