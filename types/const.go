package types

// 默认样式
const (
	DefaultThickness Thickness = 1.5        // 默认线宽
	DerivedThickness Thickness = 2.0        // 表达式结果线宽
	DefaultStyle     Style     = StyleSolid // 默认线型
)

// 时序图与游标参数
const (
	DefaultVerticalSpacing = 1.2 // 时序图默认垂直间距系数
	AutoThresholdRatio     = 0.7 // 自动阈值比例
	CursorAlpha            = 0.7 // 游标透明度
	ThresholdAlpha         = 0.5 // 阈值线透明度
)

// 默认颜色
const (
	DerivedColor  Color = "green"   // 表达式结果颜色
	FallbackColor Color = "blue"    // 未分配颜色时的绘制颜色
	IdleColor     Color = "#9E9E9E" // 未选中波形的图标颜色
)

// 轴标签与提示
const (
	LabelVoltage    = "Voltage(V)-->"
	LabelCurrent    = "Current(I)-->"
	LabelFrequency  = "freq-->"
	LabelTime       = "time-->"
	LabelVoltSweep  = "Voltage Sweep(V)-->"
	MessageNoTraces = "Please select at least one waveform"
)

// 命令行默认参数
const (
	DefaultDataPath = "."
	DefaultProject  = "Test Project"
)
