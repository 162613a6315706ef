// Package stats provides the NaN-aware summary statistics used by the
// window analyses. Missing samples travel through the augmented files
// as NaN, so every aggregate here must either skip them (the nan*
// variants) or propagate them (Baseline).
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cyclonelab/tc-sst-etl/internal/aggregate"
)

// Finite returns the finite values of xs, dropping NaN and Inf.
func Finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// NaNMean is the mean of the finite values of xs, NaN when none remain.
func NaNMean(xs []float64) float64 {
	finite := Finite(xs)
	if len(finite) == 0 {
		return math.NaN()
	}
	return stat.Mean(finite, nil)
}

// NaNMedian is the median of the finite values of xs, NaN when none
// remain. Even-length inputs take the midpoint of the middle pair.
func NaNMedian(xs []float64) float64 {
	finite := Finite(xs)
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)
	n := len(finite)
	if n%2 == 1 {
		return finite[n/2]
	}
	return (finite[n/2-1] + finite[n/2]) / 2
}

// NaNStdDev is the sample standard deviation of the finite values.
func NaNStdDev(xs []float64) float64 {
	finite := Finite(xs)
	if len(finite) < 2 {
		return math.NaN()
	}
	return stat.StdDev(finite, nil)
}

// ColumnMeans computes the NaN-aware mean of each window column.
func ColumnMeans(rows [][]float64) []float64 {
	return perColumn(rows, NaNMean)
}

// ColumnMedians computes the NaN-aware median of each window column.
func ColumnMedians(rows [][]float64) []float64 {
	return perColumn(rows, NaNMedian)
}

func perColumn(rows [][]float64, f func([]float64) float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	out := make([]float64, width)
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		out[j] = f(col)
	}
	return out
}

// Baseline is the pre-storm reference temperature for one window: the
// plain mean over Day -10 through Day -4. A NaN in that range poisons
// the baseline, which in turn marks the whole anomaly row missing.
func Baseline(window []float64) float64 {
	return stat.Mean(window[aggregate.IdxDayMinus10:aggregate.IdxDayMinus4+1], nil)
}

// Anomalies subtracts each row's baseline from every column and returns
// the anomaly rows together with each row's delta, defined as the Day 0
// value minus the baseline.
func Anomalies(rows [][]float64) (anom [][]float64, deltas []float64) {
	anom = make([][]float64, len(rows))
	deltas = make([]float64, len(rows))
	for i, row := range rows {
		base := Baseline(row)
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = v - base
		}
		anom[i] = out
		deltas[i] = row[aggregate.IdxDay0] - base
	}
	return anom, deltas
}

// PercentPositive is the share of finite values above zero, in percent.
func PercentPositive(xs []float64) float64 {
	finite := Finite(xs)
	if len(finite) == 0 {
		return math.NaN()
	}
	pos := 0
	for _, x := range finite {
		if x > 0 {
			pos++
		}
	}
	return float64(pos) / float64(len(finite)) * 100
}
