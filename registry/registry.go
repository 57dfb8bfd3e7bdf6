// Package registry 管理波形的身份与样式状态。
//
// 每条波形以加载时的索引为稳定标识，显示名称可改且作为持久化键。
// 所有修改操作返回 Change 标记，调用者据此决定重绘与保存。
package registry

import (
	"strings"
	"waveform/palette"
	"waveform/types"
)

// Change 状态变化标记
type Change uint8

const (
	ChangeRedraw  Change = 1 << iota // 需要重绘
	ChangePersist                    // 需要保存配置
)

// Redraw 是否需要重绘
func (c Change) Redraw() bool { return c&ChangeRedraw != 0 }

// Persist 是否需要保存
func (c Change) Persist() bool { return c&ChangePersist != 0 }

// Registry 波形表
type Registry struct {
	traces       []types.Trace
	voltageCount int
	alloc        *palette.Allocator
	dirty        Change
}

// New 按数据提供者顺序创建波形
func New(names []string, voltageCount int, alloc *palette.Allocator) *Registry {
	if alloc == nil {
		alloc = palette.NewAllocator()
	}
	r := &Registry{
		traces:       make([]types.Trace, len(names)),
		voltageCount: voltageCount,
		alloc:        alloc,
	}
	for i, name := range names {
		r.traces[i] = types.NewTrace(i, name)
	}
	return r
}

// Len 波形数量
func (r *Registry) Len() int { return len(r.traces) }

// VoltageCount 电压波形数量
func (r *Registry) VoltageCount() int { return r.voltageCount }

// valid 索引是否有效
func (r *Registry) valid(index int) bool { return index >= 0 && index < len(r.traces) }

// Trace 获取波形副本
func (r *Registry) Trace(index int) (types.Trace, bool) {
	if !r.valid(index) {
		return types.Trace{}, false
	}
	return r.traces[index], true
}

// Traces 全部波形副本
func (r *Registry) Traces() []types.Trace {
	return append([]types.Trace(nil), r.traces...)
}

// Visible 可见波形，按索引顺序
func (r *Registry) Visible() []types.Trace {
	var list []types.Trace
	for _, t := range r.traces {
		if t.Visible {
			list = append(list, t)
		}
	}
	return list
}

// Kind 信号类型
func (r *Registry) Kind(index int) types.SignalKind {
	return types.KindOf(index, r.voltageCount)
}

// Name 显示名称
func (r *Registry) Name(index int) string {
	if !r.valid(index) {
		return ""
	}
	return r.traces[index].Name
}

// Lookup 按显示名称查找，同名时取索引最小者
func (r *Registry) Lookup(name string) (int, bool) {
	for _, t := range r.traces {
		if t.Name == name {
			return t.Index, true
		}
	}
	return -1, false
}

// Filter 名称包含 text 的波形索引(忽略大小写)
func (r *Registry) Filter(text string) []int {
	text = strings.ToLower(text)
	var list []int
	for _, t := range r.traces {
		if strings.Contains(strings.ToLower(t.Name), text) {
			list = append(list, t.Index)
		}
	}
	return list
}

// Colors 当前已分配的颜色，每条已分配波形一项
func (r *Registry) Colors() []types.Color {
	var list []types.Color
	for _, t := range r.traces {
		if !t.Color.IsZero() {
			list = append(list, t.Color)
		}
	}
	return list
}

// Dirty 自上次 MarkClean 以来累积的变化
func (r *Registry) Dirty() Change { return r.dirty }

// MarkClean 清除累积变化
func (r *Registry) MarkClean() { r.dirty = 0 }

// mark 记录变化
func (r *Registry) mark(c Change) Change {
	r.dirty |= c
	return c
}
