package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"waveform/record"
	"waveform/types"
)

// writeRecord 在临时目录写入记录并返回目录与快照路径
func writeRecord(t *testing.T) (dir, snapshot string) {
	t.Helper()
	dir = t.TempDir()
	r := record.New(types.AnalysisTransient, []string{"v(clk)", "v(out)"}, []string{"i(vdd)"})
	for i := 0; i < 8; i++ {
		clk := float64(i % 2 * 5)
		if err := r.Append(float64(i)*1e-9, []float64{clk, float64(i) / 2}, []float64{1e-3}); err != nil {
			t.Fatal(err)
		}
	}
	f, err := os.Create(filepath.Join(dir, record.FileName))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := r.Render(f); err != nil {
		t.Fatal(err)
	}
	return dir, filepath.Join(dir, "config.json")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlotSummary(t *testing.T) {
	dir, snap := writeRecord(t)
	out, err := run(t, dir, "Demo", "--config", snap, "--show", "v(clk),v(out)", "--expr", "v(clk) + v(out)", "--cursor", "1e-9,3e-9")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Demo", "v(clk)", "v(clk) + v(out)", "Delta: 2e-09"} {
		if !strings.Contains(out, want) {
			t.Errorf("输出缺少 %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(snap); err != nil {
		t.Fatalf("快照未保存: %v", err)
	}
}

func TestPlotTimingImage(t *testing.T) {
	dir, snap := writeRecord(t)
	img := filepath.Join(t.TempDir(), "timing.svg")
	out, err := run(t, dir, "--config", snap, "--all", "--timing", "--out", img)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Auto (3.500 V)") {
		t.Errorf("缺少自动阈值: %s", out)
	}
	data, err := os.ReadFile(img)
	if err != nil || !bytes.Contains(data, []byte("<svg")) {
		t.Fatalf("图像未生成: %v", err)
	}
}

func TestListAndMeter(t *testing.T) {
	dir, snap := writeRecord(t)
	out, err := run(t, "list", dir, "--config", snap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "i(vdd)") || !strings.Contains(out, "Current") {
		t.Fatalf("list 输出错误:\n%s", out)
	}
	out, err = run(t, "meter", dir, "--config", snap, "--show", "i(vdd)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "i(vdd): 0.001 A") {
		t.Fatalf("meter 输出错误:\n%s", out)
	}
	if _, err := run(t, "meter", dir, "--config", snap); err == nil {
		t.Fatal("没有可见波形时应返回错误")
	}
}

func TestUnknownTrace(t *testing.T) {
	dir, snap := writeRecord(t)
	if _, err := run(t, dir, "--config", snap, "--show", "v(missing)"); err == nil {
		t.Fatal("未知波形应返回错误")
	}
}

// TestCursorPrecision 小于 1e-6 的游标位置不丢失精度
func TestCursorPrecision(t *testing.T) {
	dir, snap := writeRecord(t)
	out, err := run(t, dir, "--config", snap, "--show", "v(out)", "--cursor", "5e-10,2.5e-9")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Cursor 1: 5e-10", "Cursor 2: 2.5e-09", "Delta: 2e-09"} {
		if !strings.Contains(out, want) {
			t.Errorf("输出缺少 %q:\n%s", want, out)
		}
	}
	if _, err := run(t, dir, "--config", snap, "--cursor", "1e-9,x"); err == nil {
		t.Fatal("非法游标位置应返回错误")
	}
	if _, err := run(t, dir, "--config", snap, "--cursor", "1e-9,2e-9,3e-9"); err == nil {
		t.Fatal("超过两个游标应返回错误")
	}
}
