package jsonlog

import (
	"fmt"
	"time"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/header"
)

// Well-known header keys of the JSON Well Log format.
const (
	KeyName           = "name"
	KeyDescription    = "description"
	KeyWell           = "well"
	KeyWellbore       = "wellbore"
	KeyField          = "field"
	KeyCountry        = "country"
	KeyDate           = "date"
	KeyOperator       = "operator"
	KeyServiceCompany = "serviceCompany"
	KeyRunNumber      = "runNumber"
	KeyElevation      = "elevation"
	KeySource         = "source"
	KeyStartIndex     = "startIndex"
	KeyEndIndex       = "endIndex"
	KeyStep           = "step"
	KeyDataURI        = "dataUri"
)

// Properties returns the top-level header keys in order.
func (l *Log) Properties() []string {
	return l.Header().Keys()
}

// Property returns the raw header value stored under key. Absent keys and null
// values report false.
func (l *Log) Property(key string) (header.Value, bool) {
	v, ok := l.Header().Get(key)
	if !ok || v.IsNull() {
		return header.Value{}, false
	}

	return v, true
}

// PropertyAsString returns the property as text; numbers and booleans are
// rendered in their JSON form.
func (l *Log) PropertyAsString(key string) (string, bool) {
	v, ok := l.Property(key)
	if !ok {
		return "", false
	}

	return v.AsString()
}

// PropertyAsFloat returns the property as a float.
func (l *Log) PropertyAsFloat(key string) (float64, bool) {
	v, ok := l.Property(key)
	if !ok {
		return 0, false
	}

	return v.AsFloat()
}

// PropertyAsInt returns the property as an integer.
func (l *Log) PropertyAsInt(key string) (int64, bool) {
	v, ok := l.Property(key)
	if !ok {
		return 0, false
	}

	return v.AsInt()
}

// PropertyAsBool returns the property as a boolean.
func (l *Log) PropertyAsBool(key string) (bool, bool) {
	v, ok := l.Property(key)
	if !ok {
		return false, false
	}

	return v.AsBool()
}

// PropertyAsTime returns the property parsed as an ISO-8601 timestamp.
func (l *Log) PropertyAsTime(key string) (time.Time, bool) {
	v, ok := l.Property(key)
	if !ok {
		return time.Time{}, false
	}

	return v.AsTime()
}

// setText stores a well-known text property; an empty string unsets it.
func (l *Log) setText(key, value string) {
	v := header.Null()
	if value != "" {
		v = header.String(value)
	}
	_ = l.SetProperty(key, v) // key is a non-empty constant
}

func (l *Log) text(key string) string {
	s, _ := l.PropertyAsString(key)
	return s
}

// Name returns the log name.
func (l *Log) Name() string { return l.text(KeyName) }

// SetName sets the log name.
func (l *Log) SetName(name string) { l.setText(KeyName, name) }

// Description returns the log description.
func (l *Log) Description() string { return l.text(KeyDescription) }

// SetDescription sets the log description.
func (l *Log) SetDescription(description string) { l.setText(KeyDescription, description) }

// Well returns the well name.
func (l *Log) Well() string { return l.text(KeyWell) }

// SetWell sets the well name.
func (l *Log) SetWell(well string) { l.setText(KeyWell, well) }

// Wellbore returns the wellbore name.
func (l *Log) Wellbore() string { return l.text(KeyWellbore) }

// SetWellbore sets the wellbore name.
func (l *Log) SetWellbore(wellbore string) { l.setText(KeyWellbore, wellbore) }

// Field returns the field name.
func (l *Log) Field() string { return l.text(KeyField) }

// SetField sets the field name.
func (l *Log) SetField(field string) { l.setText(KeyField, field) }

// Country returns the country of the well.
func (l *Log) Country() string { return l.text(KeyCountry) }

// SetCountry sets the country of the well.
func (l *Log) SetCountry(country string) { l.setText(KeyCountry, country) }

// Operator returns the operator company.
func (l *Log) Operator() string { return l.text(KeyOperator) }

// SetOperator sets the operator company.
func (l *Log) SetOperator(operator string) { l.setText(KeyOperator, operator) }

// ServiceCompany returns the logging service company.
func (l *Log) ServiceCompany() string { return l.text(KeyServiceCompany) }

// SetServiceCompany sets the logging service company.
func (l *Log) SetServiceCompany(serviceCompany string) {
	l.setText(KeyServiceCompany, serviceCompany)
}

// RunNumber returns the logging run number.
func (l *Log) RunNumber() string { return l.text(KeyRunNumber) }

// SetRunNumber sets the logging run number.
func (l *Log) SetRunNumber(runNumber string) { l.setText(KeyRunNumber, runNumber) }

// Date returns the logging date.
func (l *Log) Date() (time.Time, bool) { return l.PropertyAsTime(KeyDate) }

// SetDate sets the logging date. The zero time unsets it.
func (l *Log) SetDate(date time.Time) {
	v := header.Null()
	if !date.IsZero() {
		v = header.Time(date)
	}
	_ = l.SetProperty(KeyDate, v)
}

// StartIndex returns the declared start index: a time.Time for datetime
// indexed logs, a float64 otherwise.
func (l *Log) StartIndex() (any, bool) {
	return l.indexProperty(KeyStartIndex)
}

// EndIndex returns the declared end index; see StartIndex.
func (l *Log) EndIndex() (any, bool) {
	return l.indexProperty(KeyEndIndex)
}

// SetStartIndex declares the start index. value is a number, a time.Time or nil to unset.
func (l *Log) SetStartIndex(value any) error {
	return l.setIndexProperty(KeyStartIndex, value)
}

// SetEndIndex declares the end index. value is a number, a time.Time or nil to unset.
func (l *Log) SetEndIndex(value any) error {
	return l.setIndexProperty(KeyEndIndex, value)
}

// ActualStartIndex returns the first sample of the index curve.
func (l *Log) ActualStartIndex() (any, bool) {
	index := l.IndexCurve()
	if index == nil || index.Len() == 0 {
		return nil, false
	}
	v := index.Value(0, 0)

	return v, v != nil
}

// ActualEndIndex returns the last sample of the index curve.
func (l *Log) ActualEndIndex() (any, bool) {
	index := l.IndexCurve()
	if index == nil || index.Len() == 0 {
		return nil, false
	}
	v := index.Value(0, index.Len()-1)

	return v, v != nil
}

// Step returns the declared index step.
func (l *Log) Step() (float64, bool) {
	return l.PropertyAsFloat(KeyStep)
}

// SetStep declares the index step. NaN unsets it.
func (l *Log) SetStep(step float64) {
	_ = l.SetProperty(KeyStep, header.Float(step))
}

func (l *Log) indexProperty(key string) (any, bool) {
	if l.IndexValueType() == format.TypeDateTime {
		return l.PropertyAsTime(key)
	}

	return l.PropertyAsFloat(key)
}

func (l *Log) setIndexProperty(key string, value any) error {
	if value == nil {
		return l.SetProperty(key, header.Null())
	}
	if t, ok := value.(time.Time); ok {
		return l.SetProperty(key, header.Time(t))
	}
	if f, ok := asFloat(value); ok {
		return l.SetProperty(key, header.Float(f))
	}

	return fmt.Errorf("%w: %s cannot be %T", errs.ErrInvalidArgument, key, value)
}
