package types

import "fmt"

// Thickness 线宽，取值限定在 Thicknesses 中
type Thickness float64

// Thicknesses 可选线宽
var Thicknesses = []Thickness{1.0, 1.5, 2.0, 3.0}

// Valid 是否为可选线宽
func (t Thickness) Valid() bool {
	for _, v := range Thicknesses {
		if v == t {
			return true
		}
	}
	return false
}

// Label 显示名称
func (t Thickness) Label() string { return fmt.Sprintf("%g px", float64(t)) }

// Style 线型，字符串值与持久化格式一致
type Style string

const (
	StyleSolid  Style = "-"          // 实线
	StyleDashed Style = "--"         // 虚线
	StyleDotted Style = ":"          // 点线
	StyleStep   Style = "steps-post" // 后阶梯
)

// Styles 可选线型
var Styles = []Style{StyleSolid, StyleDashed, StyleDotted, StyleStep}

// Valid 是否为可选线型
func (s Style) Valid() bool {
	switch s {
	case StyleSolid, StyleDashed, StyleDotted, StyleStep:
		return true
	}
	return false
}

// Label 显示名称
func (s Style) Label() string {
	switch s {
	case StyleSolid:
		return "Solid"
	case StyleDashed:
		return "Dashed"
	case StyleDotted:
		return "Dotted"
	case StyleStep:
		return "Step (Post)"
	}
	return string(s)
}

// ParseStyle 解析线型，接受持久化值或显示名称
func ParseStyle(s string) (Style, error) {
	for _, v := range Styles {
		if string(v) == s || v.Label() == s {
			return v, nil
		}
	}
	switch s {
	case "solid":
		return StyleSolid, nil
	case "dashed":
		return StyleDashed, nil
	case "dotted":
		return StyleDotted, nil
	case "step":
		return StyleStep, nil
	}
	return "", fmt.Errorf("未知线型: %q", s)
}
