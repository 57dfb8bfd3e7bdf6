package palette

import (
	"testing"
	"waveform/types"
)

// TestAssignPaletteOrder 按调色板顺序取第一个未使用的颜色
func TestAssignPaletteOrder(t *testing.T) {
	a := NewAllocator()
	if c := a.Assign(nil); c != Vibrant[0] {
		t.Fatalf("空分配应得到 %s, 实际 %s", Vibrant[0], c)
	}
	if c := a.Assign([]types.Color{Vibrant[0], Vibrant[2]}); c != Vibrant[1] {
		t.Fatalf("应跳过已使用颜色得到 %s, 实际 %s", Vibrant[1], c)
	}
	// 大小写不同视为同一颜色
	if c := a.Assign([]types.Color{"#e53935"}); c != Vibrant[1] {
		t.Fatalf("Expected %s, got %s", Vibrant[1], c)
	}
}

// TestAssignExhausted 调色板用尽后按黄金分割生成
func TestAssignExhausted(t *testing.T) {
	a := NewAllocator()
	assigned := append([]types.Color{}, Vibrant...)
	got := a.Assign(assigned)
	if got != Generate(len(Vibrant)) {
		t.Fatalf("Expected generated color %s, got %s", Generate(len(Vibrant)), got)
	}
	for _, c := range Vibrant {
		if c.Hex() == got.Hex() {
			t.Fatalf("生成色 %s 与调色板重复", got)
		}
	}
	// 重复调用结果一致
	for i := 0; i < 5; i++ {
		if again := a.Assign(assigned); again != got {
			t.Fatalf("第 %d 次调用结果不同: %s != %s", i, again, got)
		}
	}
}

// TestGenerate 生成色相按黄金分割步进，无重复且合法
func TestGenerate(t *testing.T) {
	seen := map[types.Color]bool{}
	for n := 0; n < 64; n++ {
		c := Generate(n)
		if !c.Valid() {
			t.Fatalf("生成色 %q 无法解析", c)
		}
		if seen[c] {
			t.Fatalf("生成色 %s 在 n=%d 重复", c, n)
		}
		seen[c] = true
	}
	// n=0 色相为 0，即红色系
	if c := Generate(0).NRGBA(); c.R < c.G || c.R < c.B {
		t.Fatalf("Expected red hue for n=0, got %v", c)
	}
}
