package jsonlog

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/internal/hash"
	"github.com/arloliu/logio/internal/options"
)

// Curve is one named data channel of a log.
//
// A curve holds one sample per index position. Scalar curves have one value
// per sample; vector curves (Dimensions() > 1) have one value per dimension.
// Samples are stored column-wise per dimension, normalised to float64, int64,
// bool, string or time.Time according to the value type, with nil for null.
//
// Note: Curve is NOT safe for concurrent mutation. It is owned by a single Log.
type Curve struct {
	id          uint64
	name        string
	description string
	quantity    string
	unit        string
	valueType   format.ValueType
	dimensions  int
	values      [][]any // values[dimension][index]
}

// CurveOption configures a Curve at construction time.
type CurveOption = options.Option[*Curve]

// WithDescription sets the curve description.
func WithDescription(description string) CurveOption {
	return options.NoError(func(c *Curve) {
		c.description = description
	})
}

// WithQuantity sets the physical quantity of the curve, e.g. "length".
func WithQuantity(quantity string) CurveOption {
	return options.NoError(func(c *Curve) {
		c.quantity = quantity
	})
}

// WithUnit sets the unit of measure of the curve samples, e.g. "m".
func WithUnit(unit string) CurveOption {
	return options.NoError(func(c *Curve) {
		c.unit = unit
	})
}

// WithDimensions sets the number of values per sample. It must be at least 1.
func WithDimensions(dimensions int) CurveOption {
	return options.New(func(c *Curve) error {
		if dimensions < 1 {
			return fmt.Errorf("%w: invalid dimensions %d", errs.ErrInvalidArgument, dimensions)
		}
		c.dimensions = dimensions

		return nil
	})
}

// NewCurve creates an empty scalar curve unless WithDimensions says otherwise.
//
// Example:
//
//	depth, _ := jsonlog.NewCurve("DEPTH", format.TypeFloat,
//	    jsonlog.WithQuantity("length"),
//	    jsonlog.WithUnit("m"),
//	)
func NewCurve(name string, valueType format.ValueType, opts ...CurveOption) (*Curve, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: curve name cannot be empty", errs.ErrInvalidArgument)
	}
	if !valueType.IsValid() {
		return nil, fmt.Errorf("%w: invalid value type %d", errs.ErrInvalidArgument, valueType)
	}

	c := &Curve{
		id:         hash.CurveID(name),
		name:       name,
		valueType:  valueType,
		dimensions: 1,
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	c.values = make([][]any, c.dimensions)

	return c, nil
}

// ID returns the xxHash64 identifier of the curve name.
func (c *Curve) ID() uint64 { return c.id }

// Name returns the curve name.
func (c *Curve) Name() string { return c.name }

// Description returns the curve description, empty if not set.
func (c *Curve) Description() string { return c.description }

// Quantity returns the physical quantity, empty if not set.
func (c *Curve) Quantity() string { return c.quantity }

// Unit returns the unit of measure, empty if not set.
func (c *Curve) Unit() string { return c.unit }

// ValueType returns the type of the curve samples.
func (c *Curve) ValueType() format.ValueType { return c.valueType }

// Dimensions returns the number of values per sample.
func (c *Curve) Dimensions() int { return c.dimensions }

// Len returns the number of samples.
func (c *Curve) Len() int {
	return len(c.values[0])
}

// Value returns the value of the given dimension at index, or nil for null or
// out-of-range positions.
func (c *Curve) Value(dimension, index int) any {
	if dimension < 0 || dimension >= c.dimensions {
		return nil
	}
	column := c.values[dimension]
	if index < 0 || index >= len(column) {
		return nil
	}

	return column[index]
}

// AddValue appends one sample to a scalar curve. nil adds a null sample.
func (c *Curve) AddValue(value any) error {
	if c.dimensions != 1 {
		return fmt.Errorf("%w: curve %s has %d dimensions, got 1 value",
			errs.ErrDimensionMismatch, c.name, c.dimensions)
	}

	v, err := c.normalize(value)
	if err != nil {
		return err
	}
	c.values[0] = append(c.values[0], v)

	return nil
}

// AddValues appends one sample carrying one value per dimension.
// The sample is rejected as a whole if any value cannot be converted.
func (c *Curve) AddValues(values ...any) error {
	if len(values) != c.dimensions {
		return fmt.Errorf("%w: curve %s has %d dimensions, got %d values",
			errs.ErrDimensionMismatch, c.name, c.dimensions, len(values))
	}

	normalized := make([]any, len(values))
	for i, value := range values {
		v, err := c.normalize(value)
		if err != nil {
			return err
		}
		normalized[i] = v
	}

	for dim, v := range normalized {
		c.values[dim] = append(c.values[dim], v)
	}

	return nil
}

// AddNull appends a sample where every dimension is null.
func (c *Curve) AddNull() {
	for dim := range c.values {
		c.values[dim] = append(c.values[dim], nil)
	}
}

// Range returns the minimum and maximum of the numeric samples of the curve.
// ok is false for non-numeric curves and curves without non-null samples.
func (c *Curve) Range() (minValue, maxValue float64, ok bool) {
	if !c.valueType.IsNumeric() && c.valueType != format.TypeDateTime {
		return 0, 0, false
	}

	minValue, maxValue = math.Inf(1), math.Inf(-1)
	for _, column := range c.values {
		for _, v := range column {
			f, isNumber := indexFloat(v)
			if !isNumber {
				continue
			}
			ok = true
			minValue = min(minValue, f)
			maxValue = max(maxValue, f)
		}
	}
	if !ok {
		return 0, 0, false
	}

	return minValue, maxValue, true
}

// Clear removes all samples but keeps the curve definition and buffer capacity.
func (c *Curve) Clear() {
	for dim, column := range c.values {
		clear(column)
		c.values[dim] = column[:0]
	}
}

// Trim releases buffer capacity beyond the current number of samples.
func (c *Curve) Trim() {
	for dim, column := range c.values {
		if len(column) == 0 {
			c.values[dim] = nil
			continue
		}
		if cap(column) > len(column) {
			c.values[dim] = slices.Clone(column)
		}
	}
}

// String returns a short description of the curve for diagnostics.
func (c *Curve) String() string {
	return fmt.Sprintf("%s [%s] %s dims=%d n=%d", c.name, c.unit, c.valueType, c.dimensions, c.Len())
}

// normalize converts value to the canonical Go type of the curve value type.
//
//nolint:cyclop,gocyclo // one switch arm per accepted source type
func (c *Curve) normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch c.valueType {
	case format.TypeFloat:
		if f, ok := asFloat(value); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, nil
			}
			return f, nil
		}
	case format.TypeInteger:
		if i, ok := asInt(value); ok {
			return i, nil
		}
	case format.TypeBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case format.TypeString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case format.TypeDateTime:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := format.ParseTime(v)
			if err != nil {
				return nil, fmt.Errorf("%w: curve %s: %w", errs.ErrValueType, c.name, err)
			}
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: curve %s (%s) cannot hold %T", errs.ErrValueType, c.name, c.valueType, value)
}

// indexFloat converts a sample to float64 for range and step computations.
// Timestamps convert to milliseconds since the Unix epoch.
func indexFloat(value any) (float64, bool) {
	if t, ok := value.(time.Time); ok {
		return float64(t.UnixMilli()), true
	}

	return asFloat(value)
}

// asFloat converts any numeric sample to float64.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		return integralFloat(v)
	case float32:
		return integralFloat(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, false
		}
		return integralFloat(f)
	default:
		return 0, false
	}
}

func integralFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}
