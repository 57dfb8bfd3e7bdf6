package waveform

import (
	"context"
	"log/slog"
	"waveform/axis"
	"waveform/cursor"
	"waveform/lines"
	"waveform/timing"
	"waveform/types"
	"waveform/utils"
)

// Timing 是否为数字时序图
func (e *Engine) Timing() bool { return e.timing }

// SetTiming 切换数字时序图
func (e *Engine) SetTiming(on bool) {
	if e.timing != on {
		e.timing = on
		e.replot()
	}
}

// Threshold 用户设置的阈值，空为自动
func (e *Engine) Threshold() (float64, bool) {
	if e.threshold == nil {
		return 0, false
	}
	return *e.threshold, true
}

// SetThreshold 设置逻辑阈值
func (e *Engine) SetThreshold(v float64) {
	e.threshold = &v
	if e.timing {
		e.replot()
	}
}

// AutoThreshold 恢复自动阈值
func (e *Engine) AutoThreshold() {
	e.threshold = nil
	if e.timing {
		e.replot()
	}
}

// SetSpacing 设置时序图垂直间距系数，不大于 0 时恢复默认
func (e *Engine) SetSpacing(factor float64) {
	if factor <= 0 {
		factor = types.DefaultVerticalSpacing
	}
	e.spacing = factor
	if e.timing {
		e.replot()
	}
}

// SetLegend 显示或隐藏图例
func (e *Engine) SetLegend(on bool) {
	if e.legend != on {
		e.legend = on
		e.replot()
	}
}

// SetGrid 显示或隐藏网格
func (e *Engine) SetGrid(on bool) {
	if e.grid != on {
		e.grid = on
		e.markRedraw()
	}
}

// build 根据当前状态生成绘制结果
func (e *Engine) build() (types.Frame, *timing.Diagram) {
	visible := e.reg.Visible()
	vc := e.reg.VoltageCount()
	var f types.Frame
	var diagram *timing.Diagram
	scale := axis.Identity
	if e.timing {
		d, ok := timing.Render(visible, vc, e.provider, timing.Options{
			Threshold: e.threshold,
			Spacing:   e.spacing,
			Legend:    e.legend,
		})
		if ok {
			f, diagram, scale = d.Frame, &d, d.Scale
		} else {
			f = types.Frame{Message: types.MessageNoTraces}
		}
	} else {
		f = lines.Build(lines.ModeOf(e.kind, e.decade), visible, vc, e.provider)
		for _, r := range e.derived {
			f.Derived = append(f.Derived, r.Series)
			if r.Parametric {
				f.XLabel, f.YLabel = r.XLabel, r.YLabel
			}
		}
		if len(f.Derived) > 0 {
			f.Message = ""
		}
		if e.legend && !f.Empty() {
			f.Legend = true
			f.LegendColumns = types.LegendColumns(len(f.Series) + len(f.Derived))
		}
	}
	f.Grid = e.grid
	if !f.Empty() {
		f.Guides = append(f.Guides, e.cursors.Guides(scale.Value)...)
	}
	if e.xview != nil {
		r := *e.xview
		f.XLimits = &r
	}
	if e.yview != nil {
		r := *e.yview
		f.YLimits = &r
	}
	return f, diagram
}

// Refresh 生成绘制结果并清除重绘标记
func (e *Engine) Refresh() types.Frame {
	f, d := e.build()
	e.last, e.diagram, e.redraw = f, d, false
	e.log.Log(context.Background(), utils.LevelTrace, "刷新",
		slog.Bool("timing", e.timing),
		slog.Int("series", len(f.Series)),
		slog.Int("derived", len(f.Derived)),
		slog.Int("guides", len(f.Guides)))
	return f
}

// Frame 最近一次的绘制结果，有变化时重新生成
func (e *Engine) Frame() types.Frame {
	if e.redraw {
		return e.Refresh()
	}
	return e.last
}

// Diagram 最近一次的时序图结果
func (e *Engine) Diagram() (timing.Diagram, bool) {
	if e.redraw {
		e.Refresh()
	}
	if e.diagram == nil {
		return timing.Diagram{}, false
	}
	return *e.diagram, true
}

// displayScale 当前横轴的显示缩放
func (e *Engine) displayScale() axis.Scale {
	if !e.timing {
		return axis.Identity
	}
	return axis.Choose(e.provider.IndependentAxis())
}

// SetCursor 以原始单位放置游标
func (e *Engine) SetCursor(slot cursor.Slot, x float64) bool {
	if !e.cursors.Set(slot, x) {
		return false
	}
	e.markRedraw()
	return true
}

// Click 以显示单位放置游标，时序图中换算回原始单位
func (e *Engine) Click(slot cursor.Slot, displayX float64) bool {
	return e.SetCursor(slot, e.displayScale().Canonical(displayX))
}

// ClearCursors 移除全部游标
func (e *Engine) ClearCursors() {
	e.cursors.Clear()
	e.markRedraw()
}

// Cursor 游标位置，原始单位
func (e *Engine) Cursor(slot cursor.Slot) (float64, bool) { return e.cursors.Position(slot) }

// Measure 游标测量
func (e *Engine) Measure() (cursor.Measurement, bool) { return e.cursors.Measure(e.kind) }

// CursorLabels 游标状态栏文本
func (e *Engine) CursorLabels() (first, second, delta, measure string) {
	return e.cursors.Labels(e.kind)
}

// bounds 当前视图范围
func (e *Engine) bounds() (x, y types.Range, ok bool) {
	f, _ := e.build()
	var xs, ys [][]float64
	for _, s := range f.AllSeries() {
		xs, ys = append(xs, s.X), append(ys, s.Y)
	}
	x, okx := axis.Extent(xs...)
	y, oky := axis.Extent(ys...)
	if f.XLimits != nil {
		x, okx = *f.XLimits, true
	}
	if f.YLimits != nil {
		y, oky = *f.YLimits, true
	}
	return x, y, okx && oky
}

// zoom 以中心缩放
func (e *Engine) zoom(factor float64) {
	x, y, ok := e.bounds()
	if !ok {
		return
	}
	x, y = axis.Zoom(x, factor), axis.Zoom(y, factor)
	e.xview, e.yview = &x, &y
	e.markRedraw()
}

// ZoomIn 放大
func (e *Engine) ZoomIn() { e.zoom(axis.ZoomInFactor) }

// ZoomOut 缩小
func (e *Engine) ZoomOut() { e.zoom(axis.ZoomOutFactor) }

// ZoomAt 以显示坐标 (x, y) 为中心缩放
func (e *Engine) ZoomAt(x, y, factor float64) {
	rx, ry, ok := e.bounds()
	if !ok || factor <= 0 {
		return
	}
	rx, ry = axis.ZoomAt(rx, x, factor), axis.ZoomAt(ry, y, factor)
	e.xview, e.yview = &rx, &ry
	e.markRedraw()
}

// pan 横向平移
func (e *Engine) pan(fraction float64) {
	x, y, ok := e.bounds()
	if !ok {
		return
	}
	x = axis.Pan(x, fraction)
	e.xview, e.yview = &x, &y
	e.markRedraw()
}

// PanLeft 向左平移
func (e *Engine) PanLeft() { e.pan(-axis.PanFraction) }

// PanRight 向右平移
func (e *Engine) PanRight() { e.pan(axis.PanFraction) }

// ResetView 显示全部数据，没有可见波形时不处理
func (e *Engine) ResetView() {
	visible := e.reg.Visible()
	if len(visible) == 0 {
		return
	}
	canonical := e.provider.IndependentAxis()
	ys := make([][]float64, 0, len(visible))
	for _, t := range visible {
		ys = append(ys, e.provider.SampleSeries(t.Index))
	}
	scale := e.displayScale()
	xr, okx := axis.Extent(scale.Apply(canonical))
	yr, oky := axis.Extent(ys...)
	if !okx || !oky {
		return
	}
	x := axis.Pad(xr, axis.MarginX)
	if lines.ModeOf(e.kind, e.decade) == lines.ModeACDecade && !e.timing && x.Min <= 0 {
		x.Min = xr.Min
	}
	y := axis.Pad(yr, axis.MarginY)
	if e.timing {
		e.xview, e.yview = &x, nil
	} else {
		e.xview, e.yview = &x, &y
	}
	e.markRedraw()
}
