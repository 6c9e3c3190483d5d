package numfmt

import (
	"math"
	"strconv"
)

const (
	// DefaultSignificantDigits is used when no usable budget can be derived.
	DefaultSignificantDigits = 6

	// MaxDecimals caps the decimals of any column so degenerate steps such as
	// 0.1000000000000000055 do not produce runaway precision.
	MaxDecimals = 10

	// Null is the text rendered for absent samples.
	Null = "null"
)

// Formatter renders the samples of one column with a fixed number of decimals.
//
// A Formatter is immutable after construction and safe for concurrent use.
type Formatter struct {
	decimals int
}

// New creates a Formatter for the given column and significant-digit budget.
//
// NaN and infinite samples are treated as absent. A non-positive budget, an
// all-zero column and a constant column fall back to DefaultSignificantDigits.
func New(values []float64, significantDigits int) *Formatter {
	minValue, maxValue := math.Inf(1), math.Inf(-1)
	found := false

	for _, v := range values {
		if IsNull(v) {
			continue
		}
		found = true
		minValue = min(minValue, v)
		maxValue = max(maxValue, v)
	}

	if !found {
		return &Formatter{}
	}

	maxAbs := max(math.Abs(minValue), math.Abs(maxValue))
	if significantDigits <= 0 || maxAbs == 0 || minValue == maxValue {
		significantDigits = DefaultSignificantDigits
	}

	return &Formatter{decimals: decimalsFor(maxAbs, significantDigits)}
}

// NewWithDecimals creates a Formatter with an explicit number of decimals,
// clamped to [0, MaxDecimals].
func NewWithDecimals(decimals int) *Formatter {
	return &Formatter{decimals: clampDecimals(decimals)}
}

// Decimals returns the number of decimals every sample is rendered with.
func (f *Formatter) Decimals() int {
	return f.decimals
}

// Format renders v, or Null if v is absent.
func (f *Formatter) Format(v float64) string {
	if IsNull(v) {
		return Null
	}

	return string(f.AppendFormat(make([]byte, 0, 24), v))
}

// AppendFormat appends the rendering of v to dst and returns the extended buffer.
func (f *Formatter) AppendFormat(dst []byte, v float64) []byte {
	if IsNull(v) {
		return append(dst, Null...)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', f.decimals, 64)

	if dst[start] == '-' && isZero(dst[start+1:]) {
		// -0.001 with two decimals must read "0.00", not "-0.00"
		dst = append(dst[:start], dst[start+1:]...)
	}

	return dst
}

// IsNull reports whether v represents an absent sample.
func IsNull(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// IntegerDigits returns the number of digits left of the decimal point needed
// for magnitude maxAbs, floored at zero.
func IntegerDigits(maxAbs float64) int {
	if maxAbs <= 0 || IsNull(maxAbs) {
		return 0
	}

	return max(0, int(math.Ceil(math.Log10(maxAbs))))
}

// CountDecimals returns the number of decimals in the shortest representation
// of v that round-trips, capped at MaxDecimals.
//
//	CountDecimals(0.5)    == 1
//	CountDecimals(0.1524) == 4
//	CountDecimals(100)    == 0
func CountDecimals(v float64) int {
	if IsNull(v) {
		return 0
	}

	var buf [32]byte
	text := strconv.AppendFloat(buf[:0], math.Abs(v), 'f', -1, 64)
	for i, c := range text {
		if c == '.' {
			return min(len(text)-i-1, MaxDecimals)
		}
	}

	return 0
}

func decimalsFor(maxAbs float64, significantDigits int) int {
	return clampDecimals(significantDigits - IntegerDigits(maxAbs))
}

func clampDecimals(decimals int) int {
	return min(max(decimals, 0), MaxDecimals)
}

func isZero(digits []byte) bool {
	for _, c := range digits {
		if c != '0' && c != '.' {
			return false
		}
	}

	return true
}
