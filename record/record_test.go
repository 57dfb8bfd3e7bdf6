package record

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"waveform/types"
)

var (
	_ types.Provider = (*Record)(nil)
	_ types.Decader  = (*Record)(nil)
	_ types.Renamer  = (*Record)(nil)
	_ types.Surface  = (*Record)(nil)
)

func testRecord(t *testing.T) *Record {
	t.Helper()
	r := New(types.AnalysisTransient, []string{"v(in)", "v(out)"}, []string{"i(vdd)"})
	for i := 0; i < 4; i++ {
		x := float64(i) * 1e-6
		if err := r.Append(x, []float64{float64(i), float64(2 * i)}, []float64{-float64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestProvider(t *testing.T) {
	r := testRecord(t)
	kind, err := r.Classify()
	if err != nil || kind != types.AnalysisTransient {
		t.Fatalf("Classify = %v, %v", kind, err)
	}
	if r.TraceCount() != 3 || r.VoltageCount() != 2 {
		t.Fatalf("数量错误: %d/%d", r.TraceCount(), r.VoltageCount())
	}
	if names := r.Names(); strings.Join(names, ",") != "v(in),v(out),i(vdd)" {
		t.Fatalf("names = %v", names)
	}
	if got := r.SampleSeries(1); len(got) != 4 || got[3] != 6 {
		t.Fatalf("v(out) = %v", got)
	}
	if got := r.SampleSeries(2); len(got) != 4 || got[2] != -2 {
		t.Fatalf("i(vdd) = %v", got)
	}
	if got := r.SampleSeries(5); got != nil {
		t.Fatalf("越界应返回空, got %v", got)
	}
	r.Rename(2, "i(supply)")
	if r.CurrentStr[0] != "i(supply)" {
		t.Fatal("重命名失败")
	}
}

func TestAppendMismatch(t *testing.T) {
	r := New(types.AnalysisDC, []string{"v(a)"}, nil)
	if err := r.Append(0, []float64{1, 2}, nil); !errors.Is(err, types.ErrDataLoad) {
		t.Fatalf("Expected ErrDataLoad, got %v", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := testRecord(t).Render(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Time) != 4 || r.VoltageCount() != 2 {
		t.Fatalf("加载结果错误: %+v", r)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"analysis": `{"analysis":"noise","time":[0]}`,
		"rows":     `{"analysis":"tran","time":[0,1],"voltage":[[1]],"voltage_str":["v(a)"]}`,
		"width":    `{"analysis":"tran","time":[0],"voltage":[[1,2]],"voltage_str":["v(a)"]}`,
		"json":     `{"analysis":`,
	}
	for name, in := range cases {
		if _, err := Decode(strings.NewReader(in)); !errors.Is(err, types.ErrDataLoad) {
			t.Errorf("%s: Expected ErrDataLoad, got %v", name, err)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, types.ErrDataLoad) {
		t.Errorf("missing: Expected ErrDataLoad, got %v", err)
	}
}
