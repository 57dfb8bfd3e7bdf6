package waveform

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"waveform/cursor"
	"waveform/palette"
	"waveform/record"
	"waveform/store"
	"waveform/types"
	"waveform/utils"
)

// testRecord 瞬态记录: v(a) v(b) 为电压, i(vdd) 为电流, 时间跨度 3µs
func testRecord(t *testing.T) *record.Record {
	t.Helper()
	r := record.New(types.AnalysisTransient, []string{"v(a)", "v(b)"}, []string{"i(vdd)"})
	a := []float64{0, 5, 5, 0}
	b := []float64{1, 2, 3, 4}
	for i := range a {
		if err := r.Append(float64(i)*1e-6, []float64{a[i], b[i]}, []float64{0.5}); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(utils.Discard())}, opts...)
	e, err := New(context.Background(), testRecord(t), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

type badProvider struct{ *record.Record }

func (badProvider) Names() []string { return []string{"only"} }

func TestNewDataLoadFault(t *testing.T) {
	r := testRecord(t)
	r.Analysis = "noise"
	if _, err := New(context.Background(), r); !errors.Is(err, types.ErrDataLoad) {
		t.Fatalf("Expected ErrDataLoad, got %v", err)
	}
	if _, err := New(context.Background(), badProvider{testRecord(t)}); !errors.Is(err, types.ErrDataLoad) {
		t.Fatalf("名称数量不一致应返回 ErrDataLoad, got %v", err)
	}
}

// TestVisibleRedraw 修改标记重绘并保存，刷新后清除
func TestVisibleRedraw(t *testing.T) {
	mem := store.NewMemory(nil)
	e := newTestEngine(t, WithStore(mem))
	if !e.NeedsRedraw() {
		t.Fatal("新引擎应需要重绘")
	}
	f := e.Refresh()
	if e.NeedsRedraw() || f.Message != types.MessageNoTraces {
		t.Fatalf("刷新后状态错误: %+v", f)
	}
	c := e.SetVisible(1, true)
	if !c.Redraw() || !c.Persist() || !e.NeedsRedraw() {
		t.Fatalf("change = %b", c)
	}
	if mem.Saves != 1 {
		t.Fatalf("Expected 1 save, got %d", mem.Saves)
	}
	f = e.Refresh()
	if len(f.Series) != 1 || f.Series[0].Color != palette.Vibrant[0] || f.Series[0].Label != "v(b)" {
		t.Fatalf("曲线错误: %+v", f.Series)
	}
	if f.XLabel != types.LabelTime || f.YLabel != types.LabelVoltage {
		t.Fatalf("标签错误: %q %q", f.XLabel, f.YLabel)
	}
	for _, tr := range e.Traces() {
		if tr.Visible && tr.Color.IsZero() {
			t.Fatalf("可见波形 %d 没有颜色", tr.Index)
		}
	}
}

// TestTimingBaselines 两条波形的基线与自动阈值
func TestTimingBaselines(t *testing.T) {
	e := newTestEngine(t)
	e.SetTiming(true)
	e.SelectAll()
	d, ok := e.Diagram()
	if !ok {
		t.Fatal("应生成时序图")
	}
	if d.Max != 5 || !d.Auto || math.Abs(d.Threshold-3.5) > 1e-12 {
		t.Fatalf("max=%g threshold=%g auto=%v", d.Max, d.Threshold, d.Auto)
	}
	// 可见顺序 v(a) v(b) i(vdd)，最后一条位于底部
	if d.Baselines[2] != 0 || d.Baselines[1] != 6 || d.Baselines[0] != 12 {
		t.Fatalf("baselines = %v", d.Baselines)
	}
	f := e.Frame()
	if f.XLabel != "Time (µs)" || f.Title == "" || f.Legend {
		t.Fatalf("时序图标题或标签错误: %q %q", f.XLabel, f.Title)
	}
	e.SetThreshold(1)
	if d, _ := e.Diagram(); d.Auto || d.Threshold != 1 {
		t.Fatalf("阈值未生效: %+v", d)
	}
	e.AutoThreshold()
	if d, _ := e.Diagram(); !d.Auto {
		t.Fatal("应恢复自动阈值")
	}
}

// TestTimingRefreshIdempotent 多次刷新横轴不累积缩放
func TestTimingRefreshIdempotent(t *testing.T) {
	e := newTestEngine(t)
	e.SetTiming(true)
	e.SetVisible(0, true)
	first := e.Refresh()
	for i := 0; i < 3; i++ {
		e.SetLegend(i%2 == 0)
		e.Refresh()
	}
	again := e.Refresh()
	x1, x2 := first.Series[0].X, again.Series[0].X
	if len(x1) != len(x2) {
		t.Fatal("长度改变")
	}
	for i := range x1 {
		if x1[i] != x2[i] {
			t.Fatalf("x[%d]: %g != %g", i, x1[i], x2[i])
		}
	}
	if math.Abs(x2[3]-3) > 1e-9 {
		t.Fatalf("Expected 3µs, got %g", x2[3])
	}
}

// TestCursorTimingScale 时序图中游标以显示单位绘制，原始单位保存
func TestCursorTimingScale(t *testing.T) {
	e := newTestEngine(t)
	e.SetTiming(true)
	e.SetVisible(0, true)
	e.Click(cursor.Primary, 1)
	x, ok := e.Cursor(cursor.Primary)
	if !ok || math.Abs(x-1e-6) > 1e-18 {
		t.Fatalf("原始位置错误: %g", x)
	}
	f := e.Refresh()
	found := false
	for _, g := range f.Guides {
		if g.Vertical && g.Color == "red" && math.Abs(g.Position-1) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Fatalf("缺少游标参考线: %+v", f.Guides)
	}
	e.SetCursor(cursor.Secondary, 3e-6)
	m, ok := e.Measure()
	if !ok || math.Abs(m.Delta-2e-6) > 1e-18 || m.HasFrequency {
		t.Fatalf("测量错误: %+v", m)
	}
	e.ClearCursors()
	if _, ok := e.Measure(); ok {
		t.Fatal("清除后不应有测量")
	}
}

// TestPlotFunction 表达式结果加入绘制，失败时状态不变，重新绘制时清除
func TestPlotFunction(t *testing.T) {
	e := newTestEngine(t)
	e.SetVisible(0, true)
	e.Refresh()
	r, err := e.PlotFunction("v(a) + v(b)")
	if err != nil {
		t.Fatal(err)
	}
	if r.Series.Y[1] != 7 || !e.NeedsRedraw() {
		t.Fatalf("结果错误: %v", r.Series.Y)
	}
	f := e.Refresh()
	if len(f.Derived) != 1 || f.Derived[0].Color != types.DerivedColor {
		t.Fatalf("derived = %+v", f.Derived)
	}
	for _, bad := range []string{"v(a) + nope", "v(a) + i(vdd)", "v(a) /", "v(b) / v(a)"} {
		if _, err := e.PlotFunction(bad); !errors.Is(err, types.ErrExpression) {
			t.Errorf("%q: Expected ErrExpression, got %v", bad, err)
		}
	}
	if len(e.Derived()) != 1 || e.NeedsRedraw() {
		t.Fatal("失败的表达式不应改变状态")
	}
	e.SetVisible(1, true)
	if len(e.Derived()) != 0 {
		t.Fatal("重新绘制应清除表达式结果")
	}
}

// TestParametric A vs B 使用参数曲线标签
func TestParametric(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.PlotFunction("v(a) vs v(b)"); err != nil {
		t.Fatal(err)
	}
	f := e.Refresh()
	if f.Message != "" || len(f.Derived) != 1 {
		t.Fatalf("只有表达式结果时不应显示空状态: %+v", f)
	}
	if f.XLabel != types.LabelVoltage || f.YLabel != types.LabelVoltage {
		t.Fatalf("标签错误: %q %q", f.XLabel, f.YLabel)
	}
}

// TestPersistRestore 关闭后重新打开，样式由名称恢复
func TestPersistRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	e := newTestEngine(t, WithStore(store.NewFileStore(path)))
	e.SetVisible(2, true)
	e.SetStyle([]int{2}, types.StyleDashed)
	e.SetThickness([]int{2}, 3)
	e.SetExperimental(true)
	if err := e.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	e2 := newTestEngine(t, WithStore(store.NewFileStore(path)))
	tr := e2.Traces()[2]
	if tr.Color != palette.Vibrant[0] || tr.Style != types.StyleDashed || tr.Thickness != 3 || tr.Visible {
		t.Fatalf("恢复错误: %+v", tr)
	}
	if !e2.Experimental() {
		t.Fatal("实验标记未恢复")
	}
}

// TestConfigFaultFallback 快照损坏时使用默认样式并发送错误事件
func TestConfigFaultFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	events := utils.NewContext(8)
	e := newTestEngine(t, WithStore(store.NewFileStore(path)), WithEvents(events))
	for _, tr := range e.Traces() {
		if !tr.Color.IsZero() || tr.Thickness != types.DefaultThickness {
			t.Fatalf("应使用默认样式: %+v", tr)
		}
	}
	ev := <-events.EventReceive()
	if ev.Type != utils.EventFault {
		t.Fatalf("Expected fault event, got %v", ev.Type)
	}
	if err, ok := ev.Value.(error); !ok || !errors.Is(err, types.ErrConfigIO) {
		t.Fatalf("Expected ErrConfigIO, got %v", ev.Value)
	}
}

// TestViewport 缩放、平移与复位
// TestFrameCopiesAxis 修改刷新结果不影响数据源的自变量
func TestFrameCopiesAxis(t *testing.T) {
	r := testRecord(t)
	e, err := New(context.Background(), r, WithLogger(utils.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	e.SetVisible(1, true)
	f := e.Refresh()
	for i := range f.Series[0].X {
		f.Series[0].X[i] *= 1e6
	}
	if x := r.IndependentAxis(); x[1] != 1e-6 || x[3] != 3e-6 {
		t.Fatalf("自变量被修改: %v", x)
	}
	e.ResetView()
	f = e.Refresh()
	if f.XLimits == nil || math.Abs(f.XLimits.Max-3.15e-6) > 1e-15 {
		t.Fatalf("复位范围错误: %+v", f.XLimits)
	}
}

func TestViewport(t *testing.T) {
	e := newTestEngine(t)
	e.SetVisible(1, true)
	e.ZoomIn()
	f := e.Refresh()
	if f.XLimits == nil || math.Abs(f.XLimits.Span()-0.9*3e-6) > 1e-15 {
		t.Fatalf("放大错误: %+v", f.XLimits)
	}
	before := *f.XLimits
	e.PanRight()
	f = e.Refresh()
	if math.Abs(f.XLimits.Min-(before.Min+0.1*before.Span())) > 1e-15 {
		t.Fatalf("平移错误: %+v", f.XLimits)
	}
	e.ResetView()
	f = e.Refresh()
	if math.Abs(f.XLimits.Min-(-0.15e-6)) > 1e-15 || math.Abs(f.XLimits.Max-3.15e-6) > 1e-15 {
		t.Fatalf("复位横轴错误: %+v", f.XLimits)
	}
	if math.Abs(f.YLimits.Min-0.7) > 1e-12 || math.Abs(f.YLimits.Max-4.3) > 1e-12 {
		t.Fatalf("复位纵轴错误: %+v", f.YLimits)
	}
	e.SetVisible(0, true)
	if f := e.Refresh(); f.XLimits != nil {
		t.Fatal("重新绘制应清除视图")
	}
}

// TestClear 清除后没有可见波形与表达式结果，样式保留
func TestClear(t *testing.T) {
	e := newTestEngine(t)
	e.SelectAll()
	e.SetColor([]int{0}, "#123456")
	if _, err := e.PlotFunction("v(a) * v(b)"); err != nil {
		t.Fatal(err)
	}
	e.Clear()
	if len(e.Visible()) != 0 || len(e.Derived()) != 0 {
		t.Fatal("清除失败")
	}
	if e.Traces()[0].Color != "#123456" {
		t.Fatal("清除不应改变颜色")
	}
	if f := e.Refresh(); f.Message != types.MessageNoTraces {
		t.Fatalf("Expected empty message, got %q", f.Message)
	}
}

func TestMetersRename(t *testing.T) {
	r := testRecord(t)
	e, err := New(context.Background(), r, WithLogger(utils.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	e.SetVisible(2, true)
	m := e.Meters()
	if len(m) != 1 || m[0].String() != "i(vdd): 0.5 A" {
		t.Fatalf("meters = %v", m)
	}
	e.Rename(2, "i(supply)")
	if r.Names()[2] != "i(supply)" {
		t.Fatal("数据提供者名称未同步")
	}
	if i, ok := e.Lookup("i(supply)"); !ok || i != 2 {
		t.Fatal("重命名后查找失败")
	}
	if len(e.Filter("SUPPLY")) != 1 {
		t.Fatal("搜索失败")
	}
}
