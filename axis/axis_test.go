package axis

import (
	"math"
	"testing"
	"waveform/types"
)

func TestChoose(t *testing.T) {
	cases := []struct {
		name string
		axis []float64
		want Scale
	}{
		{"纳秒", []float64{0, 5e-7}, Scale{Nanosecond, 1e9}},
		{"微秒", []float64{0, 1e-6}, Scale{Microsecond, 1e6}},
		{"毫秒", []float64{1e-3, 2e-3, 0.5}, Scale{Millisecond, 1e3}},
		{"秒", []float64{0, 1}, Scale{Second, 1}},
		{"长度不足", []float64{1e-9}, Identity},
		{"空序列", nil, Identity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Choose(c.axis); got != c.want {
				t.Errorf("Choose(%v) = %v, 期望 %v", c.axis, got, c.want)
			}
		})
	}
}

// TestApplyIdempotent 多次从原始数据缩放结果一致，且不修改原始数据
func TestApplyIdempotent(t *testing.T) {
	canonical := []float64{0, 2e-6, 4e-6, 6e-6}
	s := Choose(canonical)
	once := s.Apply(canonical)
	twice := Choose(canonical).Apply(canonical)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("第 %d 个值不一致: %v != %v", i, once[i], twice[i])
		}
	}
	if canonical[1] != 2e-6 {
		t.Fatalf("原始数据被修改: %v", canonical)
	}
	if math.Abs(once[3]-6) > 1e-9 {
		t.Fatalf("Expected 6 µs, got %v", once[3])
	}
	if got := s.Canonical(once[1]); math.Abs(got-2e-6) > 1e-18 {
		t.Fatalf("换算回原始单位错误: %v", got)
	}
	if s.Label() != "Time (µs)" {
		t.Fatalf("标签错误: %s", s.Label())
	}
}

func TestZoomPan(t *testing.T) {
	r := types.Range{Min: 0, Max: 10}
	if z := Zoom(r, ZoomInFactor); math.Abs(z.Min-0.5) > 1e-12 || math.Abs(z.Max-9.5) > 1e-12 {
		t.Errorf("放大结果错误: %+v", z)
	}
	if z := ZoomAt(r, 0, 0.5); z.Min != 0 || z.Max != 5 {
		t.Errorf("以左端放大结果错误: %+v", z)
	}
	if p := Pan(r, -PanFraction); p.Min != -1 || p.Max != 9 {
		t.Errorf("平移结果错误: %+v", p)
	}
}

func TestExtentPad(t *testing.T) {
	r, ok := Extent([]float64{1, 5}, nil, []float64{-2, 3})
	if !ok || r.Min != -2 || r.Max != 5 {
		t.Fatalf("Extent = %+v, %v", r, ok)
	}
	if _, ok := Extent(); ok {
		t.Fatalf("空输入应返回 false")
	}
	p := Pad(types.Range{Min: 0, Max: 10}, MarginY)
	if p.Min != -1 || p.Max != 11 {
		t.Fatalf("Pad = %+v", p)
	}
}
