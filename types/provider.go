package types

// SeriesSource 采样数据
type SeriesSource interface {
	IndependentAxis() []float64       // 自变量序列(时间/频率/扫描电压)
	SampleSeries(index int) []float64 // 指定波形的采样序列
}

// Provider 仿真数据提供者
// @ 前 VoltageCount 个波形为电压信号,其余为电流信号.
type Provider interface {
	SeriesSource
	Classify() (AnalysisKind, error) // 分析类型
	TraceCount() int                 // 波形数量
	VoltageCount() int               // 电压波形数量
	Names() []string                 // 波形名称
}

// Decader 交流分析是否为十倍频程扫描
type Decader interface {
	IsDecade() bool
}

// Renamer 支持重命名的数据提供者
type Renamer interface {
	Rename(index int, name string)
}
