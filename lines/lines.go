// Package lines 按分析类型直接把可见波形转换为曲线。
package lines

import (
	"slices"
	"waveform/types"
)

// Mode 绘制方式
type Mode uint8

const (
	ModeACLinear  Mode = iota // 交流线性频率轴
	ModeACDecade              // 交流对数频率轴
	ModeTransient             // 瞬态
	ModeDC                    // 直流扫描
)

// ModeOf 由分析类型与十倍频程标记得到绘制方式
func ModeOf(kind types.AnalysisKind, decade bool) Mode {
	switch kind {
	case types.AnalysisAC:
		if decade {
			return ModeACDecade
		}
		return ModeACLinear
	case types.AnalysisTransient:
		return ModeTransient
	}
	return ModeDC
}

// XLabel 横轴标签
func (m Mode) XLabel() string {
	switch m {
	case ModeACLinear, ModeACDecade:
		return types.LabelFrequency
	case ModeTransient:
		return types.LabelTime
	}
	return types.LabelVoltSweep
}

// style 实际使用的线型，阶梯线只用于瞬态与直流
func (m Mode) style(s types.Style) types.Style {
	if s == types.StyleStep && (m == ModeACLinear || m == ModeACDecade) {
		return types.StyleSolid
	}
	return s
}

// Build 生成曲线，visible 按波形表顺序
func Build(mode Mode, visible []types.Trace, voltageCount int, data types.SeriesSource) types.Frame {
	f := types.Frame{
		XLabel: mode.XLabel(),
		YLabel: types.LabelVoltage,
		LogX:   mode == ModeACDecade,
	}
	if len(visible) == 0 {
		f.Message = types.MessageNoTraces
		return f
	}
	// 纵轴标签取第一个可见波形的类型
	f.YLabel = types.KindOf(visible[0].Index, voltageCount).AxisLabel()
	x := data.IndependentAxis()
	for _, t := range visible {
		y := data.SampleSeries(t.Index)
		n := min(len(x), len(y))
		f.Series = append(f.Series, types.Series{
			X:     slices.Clone(x[:n]),
			Y:     slices.Clone(y[:n]),
			Color: t.DrawColor(),
			Width: t.Thickness,
			Style: mode.style(t.Style),
			Label: t.Name,
		})
	}
	return f
}
