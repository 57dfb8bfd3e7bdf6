// Package config 负责波形样式快照与命令行视图设置。
//
// 快照以显示名称为键，重命名后旧名称的条目保留但不再更新，
// 新名称在下次保存时生成新条目。
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"sort"
	"waveform/registry"
	"waveform/types"
)

// LegacyFields 已废弃的顶层字段，读取后丢弃
var LegacyFields = []string{"theme"}

// Snapshot 持久化的样式快照
type Snapshot struct {
	TraceColors    map[string]types.Color     `json:"trace_colours"`
	TraceThickness map[string]types.Thickness `json:"trace_thickness"`
	TraceStyle     map[string]types.Style     `json:"trace_style"`
	Experimental   bool                       `json:"experimental_acdc"`
}

// Default 默认快照
func Default() Snapshot {
	return Snapshot{
		TraceColors:    map[string]types.Color{},
		TraceThickness: map[string]types.Thickness{},
		TraceStyle:     map[string]types.Style{},
	}
}

// Clone 深拷贝
func (s Snapshot) Clone() Snapshot {
	c := Default()
	maps.Copy(c.TraceColors, s.TraceColors)
	maps.Copy(c.TraceThickness, s.TraceThickness)
	maps.Copy(c.TraceStyle, s.TraceStyle)
	c.Experimental = s.Experimental
	return c
}

// known 快照字段名
var known = map[string]bool{
	"trace_colours":     true,
	"trace_thickness":   true,
	"trace_style":       true,
	"experimental_acdc": true,
}

// Decode 读取快照，返回被丢弃的顶层字段
func Decode(r io.Reader) (s Snapshot, dropped []string, err error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Default(), nil, fmt.Errorf("%w: %v", types.ErrConfigIO, err)
	}
	for key := range raw {
		if !known[key] {
			dropped = append(dropped, key)
			delete(raw, key)
		}
	}
	sort.Strings(dropped)
	s = Default()
	if err := decodeField(raw, "trace_colours", &s.TraceColors); err != nil {
		return Default(), dropped, err
	}
	if err := decodeField(raw, "trace_thickness", &s.TraceThickness); err != nil {
		return Default(), dropped, err
	}
	if err := decodeField(raw, "trace_style", &s.TraceStyle); err != nil {
		return Default(), dropped, err
	}
	if err := decodeField(raw, "experimental_acdc", &s.Experimental); err != nil {
		return Default(), dropped, err
	}
	return s.Clone(), dropped, nil
}

// decodeField 解析单个字段，缺失时保持默认值
func decodeField(raw map[string]json.RawMessage, key string, v any) error {
	data, ok := raw[key]
	if !ok || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: 字段 %s: %v", types.ErrConfigIO, key, err)
	}
	return nil
}

// Encode 写出快照，缩进两个空格
func Encode(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Clone())
}

// Adapter 在波形表与快照之间转换
// 保留快照中与当前波形不匹配的名称，供将来同名波形使用
type Adapter struct {
	base Snapshot
}

// NewAdapter 从已加载的快照创建
func NewAdapter(s Snapshot) *Adapter { return &Adapter{base: s.Clone()} }

// Base 当前保留的快照
func (a *Adapter) Base() Snapshot { return a.base.Clone() }

// FromSnapshot 合并快照到波形表，快照中没有的名称保持默认样式
// 非法的颜色、线宽或线型忽略
func (a *Adapter) FromSnapshot(s Snapshot, reg *registry.Registry) {
	a.base = s.Clone()
	for _, t := range reg.Traces() {
		if c, ok := s.TraceColors[t.Name]; ok && c.Valid() {
			reg.SetColor([]int{t.Index}, c)
		}
		if v, ok := s.TraceThickness[t.Name]; ok && v.Valid() {
			reg.SetThickness([]int{t.Index}, v)
		}
		if v, ok := s.TraceStyle[t.Name]; ok && v.Valid() {
			reg.SetStyle([]int{t.Index}, v)
		}
	}
	reg.MarkClean()
}

// ToSnapshot 以当前显示名称投影非默认样式，覆盖保留的快照
func (a *Adapter) ToSnapshot(reg *registry.Registry) Snapshot {
	s := a.base.Clone()
	for _, t := range reg.Traces() {
		if !t.Color.IsZero() {
			s.TraceColors[t.Name] = t.Color
		}
		if t.Thickness != types.DefaultThickness {
			s.TraceThickness[t.Name] = t.Thickness
		} else {
			delete(s.TraceThickness, t.Name)
		}
		if t.Style != types.DefaultStyle {
			s.TraceStyle[t.Name] = t.Style
		} else {
			delete(s.TraceStyle, t.Name)
		}
	}
	a.base = s.Clone()
	return s
}
