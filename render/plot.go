// Package render 把刷新结果输出为图像或网页。
package render

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"waveform/axis"
	"waveform/types"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Formats 支持的图像格式
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "tiff"}

// Plot 图像输出
type Plot struct {
	Frame  types.Frame
	Width  vg.Length
	Height vg.Length
	Format string // 输出格式，Render 使用
	Logger *slog.Logger
}

// NewPlot 创建图像输出，尺寸单位为厘米
func NewPlot(frame types.Frame, width, height float64) *Plot {
	return &Plot{
		Frame:  frame,
		Width:  vg.Length(width) * vg.Centimeter,
		Height: vg.Length(height) * vg.Centimeter,
		Format: "png",
		Logger: slog.Default(),
	}
}

// dashes 线型对应的虚线段
func dashes(s types.Style) []vg.Length {
	switch s {
	case types.StyleDashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case types.StyleDotted:
		return []vg.Length{vg.Points(1), vg.Points(2)}
	}
	return nil
}

// xys 转换坐标，对数轴丢弃非正值
func xys(x, y []float64, logX bool) plotter.XYs {
	n := min(len(x), len(y))
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if logX && x[i] <= 0 {
			continue
		}
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

// Build 生成 gonum 图
func (p *Plot) Build() (*plot.Plot, error) {
	f := p.Frame
	pl := plot.New()
	pl.Title.Text = f.Title
	pl.X.Label.Text = f.XLabel
	pl.Y.Label.Text = f.YLabel
	if f.LogX {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if f.Empty() {
		if f.Message != "" {
			pl.Title.Text = f.Message
		}
		pl.HideAxes()
		return pl, nil
	}
	if f.Grid {
		pl.Add(plotter.NewGrid())
	}
	for _, s := range f.AllSeries() {
		pts := xys(s.X, s.Y, f.LogX)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("曲线 %s: %w", s.Label, err)
		}
		line.Color = s.Color.NRGBA()
		line.Width = vg.Points(float64(s.Width))
		line.Dashes = dashes(s.Style)
		if s.Style == types.StyleStep {
			line.StepStyle = plotter.PostStep
		}
		pl.Add(line)
		if f.Legend {
			pl.Legend.Add(s.Label, line)
		}
	}
	if len(f.Ticks) > 0 {
		ticks := make([]plot.Tick, len(f.Ticks))
		for i, t := range f.Ticks {
			ticks[i] = plot.Tick{Value: t.Position, Label: t.Label}
		}
		pl.Y.Tick.Marker = plot.ConstantTicks(ticks)
	}
	if len(f.Annotations) > 0 {
		labels, err := annotations(f.Annotations)
		if err != nil {
			return nil, err
		}
		pl.Add(labels)
	}
	x, y := limits(f)
	if f.XLimits != nil && (!f.LogX || f.XLimits.Min > 0) {
		pl.X.Min, pl.X.Max = f.XLimits.Min, f.XLimits.Max
	}
	if f.YLimits != nil {
		pl.Y.Min, pl.Y.Max = f.YLimits.Min, f.YLimits.Max
	}
	for _, g := range f.Guides {
		if !finite(x) || !finite(y) {
			break
		}
		if f.LogX && (!g.Vertical || g.Position <= 0) {
			continue
		}
		line, err := guide(g, x, y)
		if err != nil {
			return nil, err
		}
		pl.Add(line)
	}
	pl.Legend.Top = true
	return pl, nil
}

// annotations 文本注释
func annotations(list []types.Annotation) (*plotter.Labels, error) {
	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(list)),
		Labels: make([]string, len(list)),
	}
	for i, a := range list {
		data.XYs[i] = plotter.XY{X: a.X, Y: a.Y}
		data.Labels[i] = a.Text
	}
	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, fmt.Errorf("注释: %w", err)
	}
	for i, a := range list {
		labels.TextStyle[i].Color = a.Color.NRGBA()
	}
	return labels, nil
}

// limits 参考线使用的坐标范围
func limits(f types.Frame) (x, y types.Range) {
	var xs, ys [][]float64
	for _, s := range f.AllSeries() {
		xs, ys = append(xs, s.X), append(ys, s.Y)
	}
	x, _ = axis.Extent(xs...)
	y, _ = axis.Extent(ys...)
	if f.XLimits != nil {
		x = *f.XLimits
	}
	if f.YLimits != nil {
		y = *f.YLimits
	}
	return x, y
}

// guide 参考线
func guide(g types.Guide, x, y types.Range) (*plotter.Line, error) {
	var pts plotter.XYs
	if g.Vertical {
		pts = plotter.XYs{{X: g.Position, Y: y.Min}, {X: g.Position, Y: y.Max}}
	} else {
		pts = plotter.XYs{{X: x.Min, Y: g.Position}, {X: x.Max, Y: g.Position}}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("参考线: %w", err)
	}
	line.LineStyle = draw.LineStyle{
		Color:  g.Color.Alpha(g.Alpha),
		Width:  vg.Points(1),
		Dashes: dashes(g.Style),
	}
	return line, nil
}

// Render 按 Format 输出图像
func (p *Plot) Render(w io.Writer) error {
	pl, err := p.Build()
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(p.Width, p.Height, p.Format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save 按扩展名保存图像
func (p *Plot) Save(path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !slices.Contains(Formats, ext) {
		return fmt.Errorf("不支持的图像格式: %s", ext)
	}
	pl, err := p.Build()
	if err != nil {
		return err
	}
	return pl.Save(p.Width, p.Height, path)
}

// finite 范围是否有限
func finite(r types.Range) bool {
	return !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0)
}

func (p *Plot) Error(err error) { p.Logger.Error("图像输出失败", "error", err) }
