// Package palette 为波形分配区分度高的颜色。
// 先按顺序使用固定调色板，用尽后按黄金分割步进色相生成颜色。
package palette

import (
	"math"
	"waveform/types"

	"github.com/lucasb-eyer/go-colorful"
)

// 生成颜色参数
const (
	GoldenRatio = 0.618033988749895 // 色相步进
	Saturation  = 0.7               // 饱和度
	Value       = 0.8               // 明度
)

// Vibrant 默认调色板
var Vibrant = []types.Color{
	"#E53935", // 红
	"#1E88E5", // 蓝
	"#43A047", // 绿
	"#FB8C00", // 橙
	"#8E24AA", // 紫
	"#00ACC1", // 青
	"#D81B60", // 粉
	"#6D4C41", // 棕
	"#FDD835", // 琥珀
	"#039BE5", // 天蓝
	"#C0CA33", // 青柠
	"#37474F", // 深灰
}

// Allocator 颜色分配器
type Allocator struct {
	Palette []types.Color // 固定调色板
}

// NewAllocator 使用默认调色板
func NewAllocator() *Allocator {
	return &Allocator{Palette: Vibrant}
}

// Assign 根据当前已分配的颜色选择新颜色
// 参数assigned: 每个已分配颜色的波形对应一项，允许重复
// 结果只由 assigned 决定，相同输入得到相同颜色
func (a *Allocator) Assign(assigned []types.Color) types.Color {
	used := make(map[string]bool, len(assigned))
	for _, c := range assigned {
		used[key(c)] = true
	}
	for _, c := range a.Palette {
		if !used[key(c)] {
			return c
		}
	}
	return Generate(len(assigned))
}

// Generate 第 n 个生成色
func Generate(n int) types.Color {
	hue := math.Mod(GoldenRatio*float64(n), 1)
	return types.Color(colorful.Hsv(hue*360, Saturation, Value).Hex())
}

// key 颜色比较键，忽略大小写与写法差异
func key(c types.Color) string {
	if !c.Valid() {
		return string(c)
	}
	return c.Hex()
}
