// Package waveform 波形状态引擎：连接数据提供者、波形表、样式快照与各绘制路径。
//
// 所有修改操作在调用者的事件循环中同步完成，只记录需要重绘的标记，
// 由调用者通过 NeedsRedraw 与 Refresh 取得新的绘制结果。
package waveform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"waveform/config"
	"waveform/cursor"
	"waveform/expr"
	"waveform/meter"
	"waveform/palette"
	"waveform/registry"
	"waveform/store"
	"waveform/timing"
	"waveform/types"
	"waveform/utils"
)

// Engine 波形状态引擎
type Engine struct {
	provider     types.Provider
	kind         types.AnalysisKind
	decade       bool
	project      string
	reg          *registry.Registry
	adapter      *config.Adapter
	store        store.Store
	log          *slog.Logger
	events       utils.Context
	cursors      cursor.Cursors
	derived      []expr.Result
	experimental bool

	timing    bool
	threshold *float64
	spacing   float64
	legend    bool
	grid      bool

	xview, yview *types.Range // 缩放平移后的视图，空为自动
	redraw       bool
	last         types.Frame
	diagram      *timing.Diagram
}

// Option 引擎选项
type Option func(e *Engine)

// WithStore 快照存储，默认不保存
func WithStore(s store.Store) Option { return func(e *Engine) { e.store = s } }

// WithLogger 日志
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithEvents 重绘、保存与错误事件的发送目标
func WithEvents(c utils.Context) Option { return func(e *Engine) { e.events = c } }

// WithProject 项目名称
func WithProject(name string) Option { return func(e *Engine) { e.project = name } }

// WithSettings 初始视图设置
func WithSettings(s *config.Settings) Option {
	return func(e *Engine) {
		if s == nil {
			return
		}
		e.timing, e.legend, e.grid = s.Timing, s.Legend, s.Grid
		if s.Threshold != nil {
			v := *s.Threshold
			e.threshold = &v
		}
		if s.Spacing > 0 {
			e.spacing = s.Spacing
		}
	}
}

// New 创建引擎
// 数据提供者无法分类或枚举波形时返回 ErrDataLoad，快照读取失败只记录日志
func New(ctx context.Context, p types.Provider, opts ...Option) (*Engine, error) {
	e := &Engine{
		provider: p,
		project:  types.DefaultProject,
		spacing:  types.DefaultVerticalSpacing,
		grid:     true,
		redraw:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.store == nil {
		e.store = store.NewMemory(nil)
	}
	kind, err := p.Classify()
	if err != nil {
		if !errors.Is(err, types.ErrDataLoad) {
			err = fmt.Errorf("%w: %v", types.ErrDataLoad, err)
		}
		return nil, err
	}
	names := p.Names()
	if len(names) != p.TraceCount() {
		return nil, fmt.Errorf("%w: 名称数量 %d 与波形数量 %d 不一致", types.ErrDataLoad, len(names), p.TraceCount())
	}
	if vc := p.VoltageCount(); vc < 0 || vc > len(names) {
		return nil, fmt.Errorf("%w: 电压波形数量 %d 超出范围", types.ErrDataLoad, vc)
	}
	e.kind = kind
	if d, ok := p.(types.Decader); ok {
		e.decade = d.IsDecade()
	}
	e.reg = registry.New(names, p.VoltageCount(), palette.NewAllocator())
	e.adapter = config.NewAdapter(config.Default())
	e.restore(ctx)
	e.log.Debug("引擎已创建", "analysis", kind, "traces", len(names), "voltages", p.VoltageCount(), "decade", e.decade)
	return e, nil
}

// restore 读取快照，失败时使用默认样式
func (e *Engine) restore(ctx context.Context) {
	s, dropped, err := e.store.Load(ctx)
	if err != nil {
		e.fault(err)
		s = config.Default()
	}
	if len(dropped) > 0 {
		e.log.Debug("丢弃旧配置字段", "fields", dropped)
	}
	e.adapter.FromSnapshot(s, e.reg)
	e.experimental = s.Experimental
}

// fault 记录可恢复错误
func (e *Engine) fault(err error) {
	if errors.Is(err, types.ErrConfigIO) {
		e.log.Error("配置读写失败", "error", err)
	} else {
		e.log.Debug("操作失败", "error", err)
	}
	e.emit(utils.EventFault, err)
}

// emit 发送事件
func (e *Engine) emit(t utils.EventType, v any) {
	if e.events != nil {
		e.events.EventSend(t, v)
	}
}

// markRedraw 标记需要重绘
func (e *Engine) markRedraw() {
	if !e.redraw {
		e.emit(utils.EventRedraw, nil)
	}
	e.redraw = true
}

// replot 重新生成曲线，表达式结果与视图缩放被清除
func (e *Engine) replot() {
	e.derived = nil
	e.xview, e.yview = nil, nil
	e.markRedraw()
}

// apply 处理波形表变化
func (e *Engine) apply(c registry.Change) registry.Change {
	if c.Redraw() {
		e.replot()
	}
	if c.Persist() {
		e.persist()
	}
	e.reg.MarkClean()
	return c
}

// persist 保存当前快照，失败只记录
func (e *Engine) persist() {
	if err := e.Save(context.Background()); err != nil {
		e.fault(err)
	}
}

// Snapshot 当前样式快照
func (e *Engine) Snapshot() config.Snapshot {
	s := e.adapter.ToSnapshot(e.reg)
	s.Experimental = e.experimental
	return s
}

// Save 保存快照
func (e *Engine) Save(ctx context.Context) error {
	if err := e.store.Save(ctx, e.Snapshot()); err != nil {
		return err
	}
	e.emit(utils.EventPersist, nil)
	return nil
}

// Close 保存快照并释放存储
func (e *Engine) Close(ctx context.Context) error {
	err := e.Save(ctx)
	if err != nil {
		e.fault(err)
	}
	if cerr := e.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if e.events != nil {
		e.events.Close()
	}
	return err
}

// Analysis 分析类型
func (e *Engine) Analysis() types.AnalysisKind { return e.kind }

// Decade 交流分析是否十倍频程
func (e *Engine) Decade() bool { return e.decade }

// Project 项目名称
func (e *Engine) Project() string { return e.project }

// Registry 波形表，只读使用
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Traces 全部波形
func (e *Engine) Traces() []types.Trace { return e.reg.Traces() }

// Visible 可见波形
func (e *Engine) Visible() []types.Trace { return e.reg.Visible() }

// Lookup 按名称查找波形
func (e *Engine) Lookup(name string) (int, bool) { return e.reg.Lookup(name) }

// Filter 名称搜索
func (e *Engine) Filter(text string) []int { return e.reg.Filter(text) }

// NeedsRedraw 自上次 Refresh 以来是否有变化
func (e *Engine) NeedsRedraw() bool { return e.redraw }

// SetVisible 设置可见性
func (e *Engine) SetVisible(index int, visible bool) registry.Change {
	return e.apply(e.reg.SetVisible(index, visible))
}

// SelectAll 显示全部波形
func (e *Engine) SelectAll() registry.Change {
	return e.apply(e.reg.ShowAll(types.Indices(e.reg.Traces())))
}

// DeselectAll 隐藏全部波形
func (e *Engine) DeselectAll() registry.Change { return e.apply(e.reg.HideAll()) }

// Toggle 切换一组波形
func (e *Engine) Toggle(indices []int) registry.Change { return e.apply(e.reg.Toggle(indices)) }

// SetColor 批量设置颜色
func (e *Engine) SetColor(indices []int, c types.Color) registry.Change {
	return e.apply(e.reg.SetColor(indices, c))
}

// SetThickness 批量设置线宽，非可选值不处理
func (e *Engine) SetThickness(indices []int, t types.Thickness) registry.Change {
	if !t.Valid() {
		return 0
	}
	return e.apply(e.reg.SetThickness(indices, t))
}

// SetStyle 批量设置线型，非可选值不处理
func (e *Engine) SetStyle(indices []int, s types.Style) registry.Change {
	if !s.Valid() {
		return 0
	}
	return e.apply(e.reg.SetStyle(indices, s))
}

// Rename 修改显示名称，数据提供者支持时同步修改
func (e *Engine) Rename(index int, name string) registry.Change {
	c := e.reg.Rename(index, name)
	if c != 0 {
		if r, ok := e.provider.(types.Renamer); ok {
			r.Rename(index, name)
		}
	}
	return e.apply(c)
}

// Clear 隐藏全部波形并移除表达式结果
func (e *Engine) Clear() registry.Change {
	return e.apply(e.reg.Reset() | registry.ChangeRedraw)
}

// Experimental 实验功能标记
func (e *Engine) Experimental() bool { return e.experimental }

// SetExperimental 设置实验功能标记并保存
func (e *Engine) SetExperimental(on bool) {
	if e.experimental != on {
		e.experimental = on
		e.persist()
	}
}

// PlotFunction 对表达式求值并加入绘制，失败时状态不变
func (e *Engine) PlotFunction(expression string) (expr.Result, error) {
	r, err := expr.EvaluateString(expression, e.reg, e.provider)
	if err != nil {
		e.fault(err)
		return expr.Result{}, err
	}
	e.derived = append(e.derived, r)
	e.markRedraw()
	e.log.Debug("表达式已绘制", "expr", expression, "samples", len(r.Series.Y))
	return r, nil
}

// Derived 当前的表达式结果
func (e *Engine) Derived() []expr.Result { return append([]expr.Result(nil), e.derived...) }

// Meters 可见波形的有效值
func (e *Engine) Meters() []meter.Reading {
	return meter.Read(e.reg.Visible(), e.reg.VoltageCount(), e.provider)
}
