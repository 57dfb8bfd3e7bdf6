// Package cursor 管理两个测量游标及其差值与频率。
package cursor

import (
	"fmt"
	"math"
	"waveform/types"
)

// Slot 游标槽位
type Slot int

const (
	Primary   Slot = iota // 主游标
	Secondary             // 副游标
)

// Color 游标颜色
func (s Slot) Color() types.Color {
	if s == Primary {
		return "red"
	}
	return "blue"
}

// Cursors 游标状态
type Cursors struct {
	pos [2]float64
	set [2]bool
}

// Set 放置游标，替换该槽位原有游标
func (c *Cursors) Set(slot Slot, x float64) bool {
	if slot != Primary && slot != Secondary {
		return false
	}
	c.pos[slot], c.set[slot] = x, true
	return true
}

// Position 游标位置
func (c *Cursors) Position(slot Slot) (float64, bool) {
	if slot != Primary && slot != Secondary {
		return 0, false
	}
	return c.pos[slot], c.set[slot]
}

// Clear 移除全部游标
func (c *Cursors) Clear() { *c = Cursors{} }

// Measurement 测量结果
type Measurement struct {
	Delta        float64 // 两游标距离
	Frequency    float64 // 1/Delta，Delta 为 0 时记为 0
	HasFrequency bool    // 频域分析才有频率
	Defined      bool    // Delta 为 0 时频率无定义
}

// Measure 两个游标都已放置时计算测量值
func (c *Cursors) Measure(kind types.AnalysisKind) (Measurement, bool) {
	if !c.set[Primary] || !c.set[Secondary] {
		return Measurement{}, false
	}
	m := Measurement{Delta: math.Abs(c.pos[Secondary] - c.pos[Primary]), Defined: true}
	if kind.FrequencyDomain() {
		m.HasFrequency = true
		if m.Delta != 0 {
			m.Frequency = 1 / m.Delta
		} else {
			m.Defined = false
		}
	}
	return m, true
}

// Labels 状态栏文本
func (c *Cursors) Labels(kind types.AnalysisKind) (first, second, delta, measure string) {
	first, second, delta = "Cursor 1: Not set", "Cursor 2: Not set", "Delta: --"
	if x, ok := c.Position(Primary); ok {
		first = fmt.Sprintf("Cursor 1: %.6g", x)
	}
	if x, ok := c.Position(Secondary); ok {
		second = fmt.Sprintf("Cursor 2: %.6g", x)
	}
	if m, ok := c.Measure(kind); ok {
		delta = fmt.Sprintf("Delta: %.6g", m.Delta)
		if m.HasFrequency {
			measure = fmt.Sprintf("Freq: %.6g Hz", m.Frequency)
		}
	}
	return first, second, delta, measure
}

// Guides 游标参考线，scale 将原始位置换算到显示单位
func (c *Cursors) Guides(scale func(float64) float64) []types.Guide {
	var list []types.Guide
	for _, slot := range []Slot{Primary, Secondary} {
		x, ok := c.Position(slot)
		if !ok {
			continue
		}
		if scale != nil {
			x = scale(x)
		}
		list = append(list, types.Guide{
			Vertical: true,
			Position: x,
			Color:    slot.Color(),
			Style:    types.StyleDashed,
			Alpha:    types.CursorAlpha,
		})
	}
	return list
}
