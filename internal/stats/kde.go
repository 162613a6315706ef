package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// KDE is a gaussian kernel density estimate over a one-dimensional
// sample, with Silverman's rule-of-thumb bandwidth.
type KDE struct {
	sample    []float64
	bandwidth float64
}

// NewKDE fits a density estimate to the finite values of xs. It needs
// at least two distinct values so the bandwidth is positive; callers
// with fewer fall back to a histogram.
func NewKDE(xs []float64) (*KDE, error) {
	finite := Finite(xs)
	if len(finite) < 2 {
		return nil, fmt.Errorf("kde: need at least 2 finite samples, have %d", len(finite))
	}
	sd := NaNStdDev(finite)
	if sd == 0 || math.IsNaN(sd) {
		return nil, fmt.Errorf("kde: sample has zero spread")
	}
	// Silverman: 0.9 * sigma * n^(-1/5).
	bw := 0.9 * sd * math.Pow(float64(len(finite)), -0.2)
	return &KDE{sample: finite, bandwidth: bw}, nil
}

// Evaluate returns the estimated density at x.
func (k *KDE) Evaluate(x float64) float64 {
	sum := 0.0
	for _, xi := range k.sample {
		sum += distuv.UnitNormal.Prob((x - xi) / k.bandwidth)
	}
	return sum / (float64(len(k.sample)) * k.bandwidth)
}

// Grid evaluates the density at n evenly spaced points spanning the
// sample range.
func (k *KDE) Grid(n int) (xs, ys []float64) {
	lo, hi := k.sample[0], k.sample[0]
	for _, v := range k.sample {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
		ys[i] = k.Evaluate(xs[i])
	}
	return xs, ys
}

// HistogramBin is one density-normalized histogram bar.
type HistogramBin struct {
	Center  float64
	Width   float64
	Density float64
}

// Histogram buckets the finite values of xs into Sturges-rule bins,
// normalized so the bar areas sum to one. It is the fallback density
// estimate when a KDE cannot be fitted.
func Histogram(xs []float64) []HistogramBin {
	finite := Finite(xs)
	if len(finite) == 0 {
		return nil
	}
	sort.Float64s(finite)
	lo, hi := finite[0], finite[len(finite)-1]
	if lo == hi {
		return []HistogramBin{{Center: lo, Width: 1, Density: 1}}
	}

	nbins := int(math.Ceil(math.Log2(float64(len(finite))))) + 1
	width := (hi - lo) / float64(nbins)
	counts := make([]int, nbins)
	for _, v := range finite {
		i := int((v - lo) / width)
		if i >= nbins {
			i = nbins - 1
		}
		counts[i]++
	}

	bins := make([]HistogramBin, nbins)
	norm := float64(len(finite)) * width
	for i, c := range counts {
		bins[i] = HistogramBin{
			Center:  lo + (float64(i)+0.5)*width,
			Width:   width,
			Density: float64(c) / norm,
		}
	}
	return bins
}
