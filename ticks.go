package mettrig

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places major ticks at round values with just enough
// precision to keep adjacent labels distinct, plus unlabeled minor
// subdivisions. The default gonum marker truncates labels on narrow
// kinematic ranges.
type PreciseTicks struct {
	N int // suggested number of major ticks; 0 means 4
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.N == 0 {
		t.N = 4
	}
	if max <= min {
		panic("mettrig: illegal tick range")
	}

	step := math.Pow10(int(math.Floor(math.Log10(max - min))))
	for (max-min)/step < float64(t.N)-1 {
		step /= 10
	}
	mult := int((max - min) / step / float64(t.N-1))
	switch mult {
	case 0:
		mult = 1
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	major := float64(mult) * step

	span := math.Max(math.Abs(min), math.Abs(max))
	prec := int(math.Ceil(math.Log10(span+major)) - math.Floor(math.Log10(major)))

	var ticks []plot.Tick
	for v := math.Ceil(min/major) * major; v <= max+major*1e-9; v += major {
		r := roundPrec(v, prec)
		ticks = append(ticks, plot.Tick{Value: r, Label: strconv.FormatFloat(r, 'g', -1, 64)})
	}

	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}
	for v := math.Ceil(min/minor) * minor; v <= max+minor*1e-9; v += minor {
		if onMajor(ticks, v, minor*1e-6) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v})
	}
	return ticks
}

func onMajor(ticks []plot.Tick, v, tol float64) bool {
	for _, t := range ticks {
		if t.Label != "" && math.Abs(t.Value-v) <= tol {
			return true
		}
	}
	return false
}

func roundPrec(x float64, prec int) float64 {
	if x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	if math.IsInf(x*pow, 0) {
		return x
	}
	r := math.Round(x*pow) / pow
	if r == 0 {
		// keep the negative bit off zero
		return 0
	}
	return r
}
