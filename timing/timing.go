// Package timing 将可见波形按阈值二值化并垂直堆叠，生成数字时序图。
package timing

import (
	"fmt"
	"math"
	"waveform/axis"
	"waveform/types"

	"gonum.org/v1/gonum/floats"
)

// Options 时序图参数
type Options struct {
	Threshold *float64 // 逻辑阈值，空为自动(0.7 倍最大值)
	Spacing   float64  // 垂直间距系数，不大于 0 时使用默认值
	Legend    bool     // 显示图例，与标题互斥
}

// Diagram 时序图结果
type Diagram struct {
	Frame     types.Frame
	Max, Min  float64         // 候选波形的全局极值
	Threshold float64         // 实际使用的阈值
	Auto      bool            // 阈值是否自动计算
	Spacing   float64         // 相邻波形基线间距
	Scale     axis.Scale      // 时间轴单位
	Baselines map[int]float64 // 波形索引到基线偏移
}

// ThresholdText 阈值显示文本
func (d *Diagram) ThresholdText() string {
	if d.Auto {
		return fmt.Sprintf("Auto (%.3f V)", d.Threshold)
	}
	return fmt.Sprintf("%.3f V", d.Threshold)
}

// Levels 计算候选波形的全局极值
// 候选为可见的电压波形，没有电压波形时使用全部可见波形
func Levels(visible []types.Trace, voltageCount int, data types.SeriesSource) (lo, hi float64) {
	var pool []types.Trace
	for _, t := range visible {
		if types.KindOf(t.Index, voltageCount) == types.SignalVoltage {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		pool = visible
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, t := range pool {
		s := data.SampleSeries(t.Index)
		if len(s) == 0 {
			continue
		}
		lo, hi = math.Min(lo, floats.Min(s)), math.Max(hi, floats.Max(s))
	}
	if math.IsInf(hi, -1) {
		return 0, 0
	}
	return lo, hi
}

// Render 生成时序图，没有可见波形时返回 false
// visible 按波形表顺序，最后一个位于最底部
func Render(visible []types.Trace, voltageCount int, data types.SeriesSource, opt Options) (Diagram, bool) {
	if len(visible) == 0 {
		return Diagram{}, false
	}
	d := Diagram{Baselines: make(map[int]float64, len(visible))}
	d.Min, d.Max = Levels(visible, voltageCount, data)
	if opt.Threshold != nil {
		d.Threshold = *opt.Threshold
	} else {
		d.Auto, d.Threshold = true, types.AutoThresholdRatio*d.Max
	}
	factor := opt.Spacing
	if factor <= 0 {
		factor = types.DefaultVerticalSpacing
	}
	d.Spacing = factor * d.Max
	// 时间轴始终从原始数据缩放
	canonical := data.IndependentAxis()
	d.Scale = axis.Choose(canonical)
	x := d.Scale.Apply(canonical)
	var first, last float64
	if len(x) > 0 {
		first, last = x[0], x[len(x)-1]
	}
	offsetBase := 0.01 * (last - first)

	f := &d.Frame
	for rank := range visible {
		t := visible[len(visible)-1-rank]
		raw := data.SampleSeries(t.Index)
		n := min(len(raw), len(x))
		base := float64(rank) * d.Spacing
		y := make([]float64, n)
		for j := 0; j < n; j++ {
			if raw[j] > d.Threshold {
				y[j] = d.Max
			}
			y[j] += base
		}
		color := t.DrawColor()
		f.Series = append(f.Series, types.Series{
			X:     x[:n],
			Y:     y,
			Color: color,
			Width: t.Thickness,
			Style: types.StyleStep,
			Label: t.Name,
		})
		d.Baselines[t.Index] = base
		center := base + d.Max/2
		f.Ticks = append(f.Ticks, types.Tick{Position: center, Label: t.Name, Color: color})
		if len(raw) > 0 {
			f.Annotations = append(f.Annotations, types.Annotation{
				X:     last + offsetBase*(1+0.1*float64(rank%3)),
				Y:     center,
				Text:  fmt.Sprintf(" %.3f %s", raw[len(raw)-1], types.KindOf(t.Index, voltageCount).Unit()),
				Color: color,
			})
		}
	}
	f.XLabel = d.Scale.Label()
	f.XLimits = &types.Range{Min: first, Max: last}
	f.YLimits = &types.Range{Min: -0.5 * d.Max, Max: float64(len(visible))*d.Spacing + 0.1*d.Max}
	f.Guides = append(f.Guides, types.Guide{
		Position: d.Threshold,
		Color:    "red",
		Style:    types.StyleDotted,
		Alpha:    types.ThresholdAlpha,
	})
	f.Legend = opt.Legend
	if opt.Legend {
		f.LegendColumns = types.LegendColumns(len(visible))
	} else {
		f.Title = fmt.Sprintf("Digital Timing Diagram (Threshold: %.3f V)", d.Threshold)
	}
	return d, true
}
