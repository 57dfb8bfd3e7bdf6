package render

import (
	"io"
	"log/slog"
	"net/http"
	"waveform/types"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	etypes "github.com/go-echarts/go-echarts/v2/types"
)

// FrameFunc 每次输出时获取最新的刷新结果
type FrameFunc func() types.Frame

// Static 固定的刷新结果
func Static(f types.Frame) FrameFunc { return func() types.Frame { return f } }

// Charts 网页曲线输出
type Charts struct {
	Title  string
	Source FrameFunc
	Logger *slog.Logger
}

// NewCharts 创建网页输出
func NewCharts(title string, source FrameFunc) *Charts {
	return &Charts{Title: title, Source: source, Logger: slog.Default()}
}

// lineType 线型对应的 echarts 名称
func lineType(s types.Style) string {
	switch s {
	case types.StyleDashed:
		return "dashed"
	case types.StyleDotted:
		return "dotted"
	}
	return "solid"
}

// stepPoints 后阶梯展开，每个点保持到下一个横坐标
func stepPoints(x, y []float64) []opts.LineData {
	n := min(len(x), len(y))
	data := make([]opts.LineData, 0, 2*n)
	for i := 0; i < n; i++ {
		if i > 0 {
			data = append(data, opts.LineData{Value: []float64{x[i], y[i-1]}})
		}
		data = append(data, opts.LineData{Value: []float64{x[i], y[i]}})
	}
	return data
}

// linePoints 普通折线
func linePoints(x, y []float64) []opts.LineData {
	n := min(len(x), len(y))
	data := make([]opts.LineData, n)
	for i := 0; i < n; i++ {
		data[i] = opts.LineData{Value: []float64{x[i], y[i]}}
	}
	return data
}

// Line 生成 echarts 折线图
func (c *Charts) Line(f types.Frame) *charts.Line {
	line := charts.NewLine()
	xType := "value"
	if f.LogX {
		xType = "log"
	}
	title := f.Title
	if f.Empty() {
		title = f.Message
	}
	xAxis := opts.XAxis{
		Name:      f.XLabel,
		Type:      xType,
		SplitLine: &opts.SplitLine{Show: opts.Bool(f.Grid)},
	}
	yAxis := opts.YAxis{
		Name:      f.YLabel,
		Type:      "value",
		Scale:     opts.Bool(true),
		SplitLine: &opts.SplitLine{Show: opts.Bool(f.Grid)},
	}
	if f.XLimits != nil {
		xAxis.Min, xAxis.Max = f.XLimits.Min, f.XLimits.Max
	}
	if f.YLimits != nil {
		yAxis.Min, yAxis.Max = f.YLimits.Min, f.YLimits.Max
	}
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Theme:     etypes.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: c.Title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(f.Legend),
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)
	for i, s := range f.AllSeries() {
		data := linePoints(s.X, s.Y)
		if s.Style == types.StyleStep {
			data = stepPoints(s.X, s.Y)
		}
		options := []charts.SeriesOpts{
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: s.Color.Hex(),
				Width: float32(s.Width),
				Type:  lineType(s.Style),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color.Hex()}),
		}
		if i == 0 {
			options = append(options, markLines(f.Guides)...)
		}
		line.AddSeries(s.Label, data, options...)
	}
	return line
}

// markLines 参考线
func markLines(guides []types.Guide) []charts.SeriesOpts {
	var list []charts.SeriesOpts
	for _, g := range guides {
		if g.Vertical {
			list = append(list, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{XAxis: g.Position}))
		} else {
			list = append(list, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{YAxis: g.Position}))
		}
	}
	if len(list) > 0 {
		list = append(list, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Type: "dashed"},
		}))
	}
	return list
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	f := c.Source()
	page := components.NewPage()
	page.PageTitle = c.Title
	page.AddCharts(c.Line(f))
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) { c.Logger.Error("网页输出失败", "error", err) }
