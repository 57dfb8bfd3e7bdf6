// Package axis 处理自变量轴：单位缩放、视图缩放平移与范围拟合。
//
// 单位缩放始终从原始(未缩放)的轴数据计算，多次应用结果不变。
package axis

import (
	"fmt"
	"waveform/types"

	"gonum.org/v1/gonum/floats"
)

// Unit 时间单位
type Unit string

const (
	Nanosecond  Unit = "ns"
	Microsecond Unit = "µs"
	Millisecond Unit = "ms"
	Second      Unit = "s"
)

// 单位选择阈值
const (
	ThresholdNS = 1e-6
	ThresholdUS = 1e-3
	ThresholdMS = 1
)

// Scale 单位与缩放系数
type Scale struct {
	Unit   Unit
	Factor float64
}

// Identity 不缩放
var Identity = Scale{Unit: Second, Factor: 1}

// Choose 根据原始轴跨度选择单位，长度不足 2 时使用秒
func Choose(canonical []float64) Scale {
	if len(canonical) < 2 {
		return Identity
	}
	return ForSpan(canonical[len(canonical)-1] - canonical[0])
}

// ForSpan 根据跨度选择单位
func ForSpan(span float64) Scale {
	switch {
	case span < ThresholdNS:
		return Scale{Unit: Nanosecond, Factor: 1e9}
	case span < ThresholdUS:
		return Scale{Unit: Microsecond, Factor: 1e6}
	case span < ThresholdMS:
		return Scale{Unit: Millisecond, Factor: 1e3}
	}
	return Identity
}

// Apply 返回缩放后的新序列，不修改 canonical
func (s Scale) Apply(canonical []float64) []float64 {
	out := make([]float64, len(canonical))
	copy(out, canonical)
	if s.Factor != 1 && s.Factor != 0 {
		floats.Scale(s.Factor, out)
	}
	return out
}

// Value 缩放单个原始值
func (s Scale) Value(v float64) float64 {
	if s.Factor == 0 {
		return v
	}
	return v * s.Factor
}

// Canonical 将显示值换算回原始单位
func (s Scale) Canonical(v float64) float64 {
	if s.Factor == 0 {
		return v
	}
	return v / s.Factor
}

// Label 时间轴标签
func (s Scale) Label() string { return fmt.Sprintf("Time (%s)", s.Unit) }

// Range 缩放范围
func (s Scale) Range(r types.Range) types.Range {
	return types.Range{Min: s.Value(r.Min), Max: s.Value(r.Max)}
}
