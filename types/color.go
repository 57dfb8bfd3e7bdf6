package types

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color 颜色，十六进制 "#rrggbb" 或颜色名称
type Color string

// IsZero 是否未分配
func (c Color) IsZero() bool { return c == "" }

// parse 解析颜色
func (c Color) parse() (color.NRGBA, bool) {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return color.NRGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		v, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, false
		}
		r, g, b := v.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
	}
	v, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: v.R, G: v.G, B: v.B, A: 0xff}, true
}

// Valid 是否可以解析
func (c Color) Valid() bool {
	_, ok := c.parse()
	return ok
}

// NRGBA 转换为标准颜色，无法解析时为黑色
func (c Color) NRGBA() color.NRGBA {
	v, ok := c.parse()
	if !ok {
		return color.NRGBA{A: 0xff}
	}
	return v
}

// Alpha 附带透明度的颜色
func (c Color) Alpha(alpha float64) color.NRGBA {
	v := c.NRGBA()
	v.A = uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 0xff))
	return v
}

// Hex 规范化为 "#rrggbb"
func (c Color) Hex() string {
	v := c.NRGBA()
	return colorful.Color{R: float64(v.R) / 0xff, G: float64(v.G) / 0xff, B: float64(v.B) / 0xff}.Hex()
}
