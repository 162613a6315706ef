package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func TestNaNMean(t *testing.T) {
	assert.Equal(t, 2.0, NaNMean([]float64{1, 2, 3}))
	assert.Equal(t, 2.0, NaNMean([]float64{1, nan, 3}))
	assert.True(t, math.IsNaN(NaNMean([]float64{nan, nan})))
	assert.True(t, math.IsNaN(NaNMean(nil)))
}

func TestNaNMedian(t *testing.T) {
	assert.Equal(t, 2.0, NaNMedian([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, NaNMedian([]float64{1, 2, 3, 4}))
	assert.Equal(t, 2.0, NaNMedian([]float64{nan, 3, 1, 2}))
	assert.True(t, math.IsNaN(NaNMedian([]float64{nan})))
}

func TestColumnStats(t *testing.T) {
	rows := [][]float64{
		{1, 10, nan},
		{3, 20, nan},
		{5, 30, nan},
	}

	means := ColumnMeans(rows)
	require.Len(t, means, 3)
	assert.Equal(t, 3.0, means[0])
	assert.Equal(t, 20.0, means[1])
	assert.True(t, math.IsNaN(means[2]))

	medians := ColumnMedians(rows)
	assert.Equal(t, 3.0, medians[0])
	assert.Equal(t, 20.0, medians[1])
	assert.True(t, math.IsNaN(medians[2]))
}

// window returns a 31-value row of base, with day0 set separately.
func window(base, day0 float64) []float64 {
	row := make([]float64, 31)
	for i := range row {
		row[i] = base
	}
	row[15] = day0
	return row
}

func TestBaseline(t *testing.T) {
	row := window(28, 26)
	assert.Equal(t, 28.0, Baseline(row))

	// Any NaN inside Day -10..-4 poisons the baseline.
	row[5] = nan
	assert.True(t, math.IsNaN(Baseline(row)))

	// NaN outside that range does not.
	row = window(28, 26)
	row[0] = nan
	assert.Equal(t, 28.0, Baseline(row))
}

func TestAnomalies(t *testing.T) {
	rows := [][]float64{
		window(28, 26), // cooled: delta -2
		window(27, 28), // warmed: delta +1
	}

	anom, deltas := Anomalies(rows)
	require.Len(t, anom, 2)
	assert.InDelta(t, -2.0, deltas[0], 1e-12)
	assert.InDelta(t, 1.0, deltas[1], 1e-12)
	assert.InDelta(t, 0.0, anom[0][0], 1e-12)
	assert.InDelta(t, -2.0, anom[0][15], 1e-12)
	assert.InDelta(t, 1.0, anom[1][15], 1e-12)
}

func TestPercentPositive(t *testing.T) {
	assert.Equal(t, 50.0, PercentPositive([]float64{-1, 2, nan, -3, 4}))
	assert.Equal(t, 0.0, PercentPositive([]float64{-1, 0}))
	assert.True(t, math.IsNaN(PercentPositive([]float64{nan})))
}

func TestKDE(t *testing.T) {
	sample := []float64{-1.2, -0.8, -0.3, 0.1, 0.4, 0.9, 1.3}
	kde, err := NewKDE(sample)
	require.NoError(t, err)

	// Density is positive everywhere and higher near the data center
	// than far outside it.
	assert.Greater(t, kde.Evaluate(0), kde.Evaluate(10))
	assert.Greater(t, kde.Evaluate(0), 0.0)

	xs, ys := kde.Grid(100)
	require.Len(t, xs, 100)
	require.Len(t, ys, 100)
	assert.Equal(t, -1.2, xs[0])
	assert.Equal(t, 1.3, xs[99])

	// The grid approximates a probability density: trapezoidal area
	// over the sample range should be near one (tails excluded).
	area := 0.0
	for i := 1; i < len(xs); i++ {
		area += (ys[i-1] + ys[i]) / 2 * (xs[i] - xs[i-1])
	}
	assert.InDelta(t, 1.0, area, 0.25)
}

func TestKDE_RejectsDegenerateSamples(t *testing.T) {
	_, err := NewKDE([]float64{1})
	assert.Error(t, err)

	_, err = NewKDE([]float64{nan, nan, 2})
	assert.Error(t, err)

	_, err = NewKDE([]float64{3, 3, 3})
	assert.Error(t, err, "zero spread has no usable bandwidth")
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{1, 1.5, 2, 2.5, 3, 3.5, 4, nan})
	require.NotEmpty(t, bins)

	area := 0.0
	for _, b := range bins {
		assert.GreaterOrEqual(t, b.Density, 0.0)
		area += b.Density * b.Width
	}
	assert.InDelta(t, 1.0, area, 1e-9)

	assert.Nil(t, Histogram([]float64{nan}))
}
