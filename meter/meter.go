// Package meter 计算可见波形的有效值(万用表读数)。
package meter

import (
	"fmt"
	"math"
	"strconv"
	"waveform/types"

	"gonum.org/v1/gonum/floats"
)

// Precision 有效数字位数
const Precision = 5

// Reading 万用表读数
type Reading struct {
	Index int
	Name  string
	RMS   float64
	Kind  types.SignalKind
}

func (r Reading) String() string {
	return fmt.Sprintf("%s: %s %s", r.Name, strconv.FormatFloat(r.RMS, 'g', Precision, 64), r.Kind.Unit())
}

// RMS 有效值 sqrt(mean(x^2))，空序列为 0
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(samples, samples) / float64(len(samples)))
}

// Read 对每个可见波形生成读数
func Read(visible []types.Trace, voltageCount int, data types.SeriesSource) []Reading {
	list := make([]Reading, 0, len(visible))
	for _, t := range visible {
		list = append(list, Reading{
			Index: t.Index,
			Name:  t.Name,
			RMS:   RMS(data.SampleSeries(t.Index)),
			Kind:  types.KindOf(t.Index, voltageCount),
		})
	}
	return list
}
