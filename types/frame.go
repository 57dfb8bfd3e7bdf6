package types

import "io"

// Series 可绘制曲线
type Series struct {
	X, Y  []float64 // 坐标
	Color Color     // 颜色
	Width Thickness // 线宽
	Style Style     // 线型
	Label string    // 图例名称
}

// Tick 纵轴刻度(时序图)
type Tick struct {
	Position float64
	Label    string
	Color    Color
}

// Annotation 文本注释
type Annotation struct {
	X, Y  float64
	Text  string
	Color Color
}

// Guide 参考线(游标或阈值)
type Guide struct {
	Vertical bool    // 竖直线位于 X=Position，否则水平线位于 Y=Position
	Position float64 // 位置
	Color    Color
	Style    Style
	Alpha    float64
}

// Range 坐标范围
type Range struct {
	Min, Max float64
}

// Span 范围长度
func (r Range) Span() float64 { return r.Max - r.Min }

// Center 范围中心
func (r Range) Center() float64 { return (r.Min + r.Max) / 2 }

// Frame 一次刷新的绘制结果
type Frame struct {
	Series        []Series     // 曲线
	Derived       []Series     // 表达式结果
	XLabel        string       // 横轴标签
	YLabel        string       // 纵轴标签
	Title         string       // 标题，与图例互斥
	Legend        bool         // 显示图例
	LegendColumns int          // 图例列数
	Grid          bool         // 显示网格
	LogX          bool         // 横轴对数刻度
	XLimits       *Range       // 横轴范围，空为自动
	YLimits       *Range       // 纵轴范围，空为自动
	Ticks         []Tick       // 自定义纵轴刻度
	Annotations   []Annotation // 注释
	Guides        []Guide      // 参考线
	Message       string       // 空状态提示
}

// Empty 是否没有任何曲线
func (f *Frame) Empty() bool { return len(f.Series) == 0 && len(f.Derived) == 0 }

// AllSeries 曲线与表达式结果
func (f *Frame) AllSeries() []Series {
	list := make([]Series, 0, len(f.Series)+len(f.Derived))
	list = append(list, f.Series...)
	return append(list, f.Derived...)
}

// LegendColumns 图例列数
func LegendColumns(n int) int {
	if n <= 6 {
		return min(4, n)
	}
	return min(6, n)
}

// Surface 绘制输出
type Surface interface {
	Render(w io.Writer) error // 输出内容
	Error(err error)          // 错误处理
}
