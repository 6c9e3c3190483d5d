package jsonlog

import (
	"math"
	"strconv"

	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/internal/pool"
	"github.com/arloliu/logio/numfmt"
)

const (
	// maxIndexSignificantDigits caps the budget derived for the index curve.
	maxIndexSignificantDigits = 10

	// stepTolerance is the relative tolerance when comparing index deltas.
	stepTolerance = 1e-6

	// stepSignificantDigits is the precision the actual step is rounded to,
	// dropping the representation noise of differencing two samples.
	stepSignificantDigits = 10
)

// ActualStep computes the step of the index curve from its samples.
//
// The step is undefined (ok == false) when the index has fewer than two
// samples, holds a null sample, does not advance, or when any delta deviates
// from the first by more than a relative tolerance. The step is rounded to 10
// significant digits, so 1000.1 - 1000.0 reports 0.1. Datetime indices are
// stepped in milliseconds.
func (l *Log) ActualStep() (step float64, ok bool) {
	index := l.IndexCurve()
	if index == nil {
		return 0, false
	}

	return computeStep(index)
}

func computeStep(index *Curve) (float64, bool) {
	n := index.Len()
	if n < 2 {
		return 0, false
	}

	first, ok0 := indexFloat(index.Value(0, 0))
	second, ok1 := indexFloat(index.Value(0, 1))
	if !ok0 || !ok1 {
		return 0, false
	}

	step := second - first
	if step == 0 {
		return 0, false
	}
	tolerance := stepTolerance * max(1, math.Abs(step))

	prev := second
	for i := 2; i < n; i++ {
		v, ok := indexFloat(index.Value(0, i))
		if !ok {
			return 0, false
		}
		if math.Abs((v-prev)-step) > tolerance {
			return 0, false
		}
		prev = v
	}

	return roundSignificant(step, stepSignificantDigits), true
}

// roundSignificant rounds v to the given number of significant digits.
func roundSignificant(v float64, digits int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		return v
	}

	return rounded
}

// indexSignificantDigits derives the digit budget of the index curve from its
// magnitude and the precision of the actual step.
func indexSignificantDigits(index *Curve) int {
	step, ok := computeStep(index)
	if !ok {
		return numfmt.DefaultSignificantDigits
	}

	minValue, maxValue, ok := index.Range()
	if !ok {
		return numfmt.DefaultSignificantDigits
	}

	maxAbs := max(math.Abs(minValue), math.Abs(maxValue))
	digits := integerPartDigits(maxAbs) + numfmt.CountDecimals(step)

	return min(digits, maxIndexSignificantDigits)
}

// integerPartDigits returns the number of digits in the integer part of v, at least 1.
func integerPartDigits(v float64) int {
	if v < 1 {
		return 1
	}

	return int(math.Floor(math.Log10(v))) + 1
}

// newFormatter returns the formatter for a float curve, or nil for every other
// value type. Index curves get a budget derived from their step; every other
// float curve gets numfmt.DefaultSignificantDigits.
func newFormatter(curve *Curve, isIndex bool, nValues int) *numfmt.Formatter {
	if curve.ValueType() != format.TypeFloat {
		return nil
	}

	dims := curve.Dimensions()
	column, cleanup := pool.GetFloat64Slice(nValues * dims)
	defer cleanup()

	for index := 0; index < nValues; index++ {
		for dim := 0; dim < dims; dim++ {
			f, ok := asFloat(curve.Value(dim, index))
			if !ok {
				f = math.NaN()
			}
			column[dim*nValues+index] = f
		}
	}

	digits := numfmt.DefaultSignificantDigits
	if isIndex {
		digits = indexSignificantDigits(curve)
	}

	return numfmt.New(column, digits)
}
