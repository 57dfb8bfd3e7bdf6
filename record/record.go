// Package record 以 JSON 记录的仿真结果作为波形数据来源。
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"waveform/types"
)

// FileName 目录中默认的记录文件
const FileName = "record.json"

// Record 仿真结果记录
type Record struct {
	Analysis   string      `json:"analysis"`    // 分析类型 ac/tran/dc
	Decade     bool        `json:"decade"`      // 交流分析是否十倍频程
	Time       []float64   `json:"time"`        // 自变量列
	Voltage    [][]float64 `json:"voltage"`     // 电压列 [采样][节点]
	VoltageStr []string    `json:"voltage_str"` // 电压信息
	Current    [][]float64 `json:"current"`     // 电流列 [采样][支路]
	CurrentStr []string    `json:"current_str"` // 电流信息
}

// New 创建空记录
func New(analysis types.AnalysisKind, voltages, currents []string) *Record {
	name := map[types.AnalysisKind]string{
		types.AnalysisAC:        "ac",
		types.AnalysisTransient: "tran",
		types.AnalysisDC:        "dc",
	}[analysis]
	return &Record{
		Analysis:   name,
		VoltageStr: append([]string{}, voltages...),
		CurrentStr: append([]string{}, currents...),
	}
}

// Load 读取记录，路径为目录时读取其中的 record.json
func Load(path string) (*Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDataLoad, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDataLoad, err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode 解析记录并检查列宽
func Decode(r io.Reader) (*Record, error) {
	list := &Record{}
	if err := json.NewDecoder(r).Decode(list); err != nil {
		return nil, fmt.Errorf("%w: 解析记录: %v", types.ErrDataLoad, err)
	}
	if err := list.Check(); err != nil {
		return nil, err
	}
	return list, nil
}

// Check 检查每行数据与名称数量一致
func (list *Record) Check() error {
	if _, err := list.Classify(); err != nil {
		return err
	}
	if len(list.Voltage) > 0 && len(list.Voltage) != len(list.Time) {
		return fmt.Errorf("%w: 电压行数 %d 与自变量 %d 不一致", types.ErrDataLoad, len(list.Voltage), len(list.Time))
	}
	if len(list.Current) > 0 && len(list.Current) != len(list.Time) {
		return fmt.Errorf("%w: 电流行数 %d 与自变量 %d 不一致", types.ErrDataLoad, len(list.Current), len(list.Time))
	}
	for i, row := range list.Voltage {
		if len(row) != len(list.VoltageStr) {
			return fmt.Errorf("%w: 第 %d 行电压数量 %d, 需要 %d", types.ErrDataLoad, i, len(row), len(list.VoltageStr))
		}
	}
	for i, row := range list.Current {
		if len(row) != len(list.CurrentStr) {
			return fmt.Errorf("%w: 第 %d 行电流数量 %d, 需要 %d", types.ErrDataLoad, i, len(row), len(list.CurrentStr))
		}
	}
	return nil
}

// Append 记录一个采样点
func (list *Record) Append(x float64, voltage, current []float64) error {
	if len(voltage) != len(list.VoltageStr) || len(current) != len(list.CurrentStr) {
		return fmt.Errorf("%w: 采样数量与名称不一致", types.ErrDataLoad)
	}
	list.Time = append(list.Time, x)
	if len(voltage) > 0 {
		list.Voltage = append(list.Voltage, append([]float64{}, voltage...))
	}
	if len(current) > 0 {
		list.Current = append(list.Current, append([]float64{}, current...))
	}
	return nil
}

// Classify 分析类型
func (list *Record) Classify() (types.AnalysisKind, error) {
	return types.ParseAnalysisKind(list.Analysis)
}

// IsDecade 交流分析是否十倍频程
func (list *Record) IsDecade() bool { return list.Decade }

// TraceCount 波形数量
func (list *Record) TraceCount() int { return len(list.VoltageStr) + len(list.CurrentStr) }

// VoltageCount 电压波形数量
func (list *Record) VoltageCount() int { return len(list.VoltageStr) }

// Names 波形名称，电压在前
func (list *Record) Names() []string {
	names := make([]string, 0, list.TraceCount())
	names = append(names, list.VoltageStr...)
	return append(names, list.CurrentStr...)
}

// IndependentAxis 自变量序列
func (list *Record) IndependentAxis() []float64 { return list.Time }

// SampleSeries 取出指定波形的采样列
func (list *Record) SampleSeries(index int) []float64 {
	rows, col := list.Voltage, index
	if index >= len(list.VoltageStr) {
		rows, col = list.Current, index-len(list.VoltageStr)
	}
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if col < 0 || col >= len(row) {
			return nil
		}
		out = append(out, row[col])
	}
	return out
}

// Rename 修改波形名称
func (list *Record) Rename(index int, name string) {
	switch {
	case index < 0:
	case index < len(list.VoltageStr):
		list.VoltageStr[index] = name
	case index < list.TraceCount():
		list.CurrentStr[index-len(list.VoltageStr)] = name
	}
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(list) }

func (list *Record) Error(err error) { slog.Error("记录输出失败", "error", err) }
