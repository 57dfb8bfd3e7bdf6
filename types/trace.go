package types

import "fmt"

// AnalysisKind 仿真分析类型
type AnalysisKind uint8

const (
	AnalysisAC        AnalysisKind = iota // 交流频率扫描
	AnalysisTransient                     // 瞬态时域
	AnalysisDC                            // 直流扫描
)

func (k AnalysisKind) String() string {
	switch k {
	case AnalysisAC:
		return "AC"
	case AnalysisTransient:
		return "Transient"
	case AnalysisDC:
		return "DC"
	}
	return fmt.Sprintf("AnalysisKind(%d)", uint8(k))
}

// FrequencyDomain 是否为频域分析
func (k AnalysisKind) FrequencyDomain() bool { return k == AnalysisAC }

// ParseAnalysisKind 解析分析类型名称，兼容 ngspice 的 .ac/.tran/.dc 写法
func ParseAnalysisKind(s string) (AnalysisKind, error) {
	switch s {
	case "ac", "AC", ".ac":
		return AnalysisAC, nil
	case "tran", "transient", "Transient", ".tran":
		return AnalysisTransient, nil
	case "dc", "DC", ".dc":
		return AnalysisDC, nil
	}
	return 0, fmt.Errorf("%w: 未知分析类型 %q", ErrDataLoad, s)
}

// SignalKind 信号类型，由索引与电压数量的分界决定
type SignalKind uint8

const (
	SignalVoltage SignalKind = iota // 电压信号
	SignalCurrent                   // 电流信号
)

func (k SignalKind) String() string {
	if k == SignalVoltage {
		return "Voltage"
	}
	return "Current"
}

// AxisLabel 纵轴标签
func (k SignalKind) AxisLabel() string {
	if k == SignalVoltage {
		return LabelVoltage
	}
	return LabelCurrent
}

// Unit 单位符号
func (k SignalKind) Unit() string {
	if k == SignalVoltage {
		return "V"
	}
	return "A"
}

// KindOf 根据分界得到信号类型
func KindOf(index, voltageCount int) SignalKind {
	if index < voltageCount {
		return SignalVoltage
	}
	return SignalCurrent
}

// Trace 单条波形
type Trace struct {
	Index     int       // 加载时分配的稳定索引
	Name      string    // 显示名称，同时是持久化键
	Color     Color     // 颜色，空表示未分配
	Thickness Thickness // 线宽
	Style     Style     // 线型
	Visible   bool      // 是否显示
}

// NewTrace 以默认样式创建波形
func NewTrace(index int, name string) Trace {
	return Trace{
		Index:     index,
		Name:      name,
		Thickness: DefaultThickness,
		Style:     DefaultStyle,
	}
}

// DrawColor 绘制颜色
func (t Trace) DrawColor() Color {
	if t.Color.IsZero() {
		return FallbackColor
	}
	return t.Color
}

// Indices 提取索引列表
func Indices(traces []Trace) []int {
	list := make([]int, len(traces))
	for i, t := range traces {
		list[i] = t.Index
	}
	return list
}
