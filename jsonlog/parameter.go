package jsonlog

import (
	"fmt"
	"time"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/header"
)

// Parameter is a named, optionally unit and description tagged scalar carried
// over from a foreign format's free-form metadata, such as a LAS ~Parameter
// line. It is stored in the header as
//
//	"<name>": {"value": <scalar>, "unit": <text|null>, "description": <text|null>}
type Parameter struct {
	Name        string
	Value       header.Value
	Unit        string
	Description string
}

// NewParameter creates a parameter from a Go scalar: string, bool, any
// integer or float type, time.Time or nil.
func NewParameter(name string, value any, unit, description string) (Parameter, error) {
	v, err := scalarValue(value)
	if err != nil {
		return Parameter{}, err
	}

	return Parameter{Name: name, Value: v, Unit: unit, Description: description}, nil
}

// AddParameter stores p in the header under p.Name, replacing any existing property.
func (l *Log) AddParameter(p Parameter) error {
	if p.Name == "" {
		return fmt.Errorf("%w: parameter name cannot be empty", errs.ErrInvalidArgument)
	}
	if k := p.Value.Kind(); k == header.KindObject || k == header.KindArray {
		return fmt.Errorf("%w: parameter %s must be a scalar, got %s", errs.ErrInvalidArgument, p.Name, k)
	}

	return l.SetProperty(p.Name, header.Object(
		header.Member{Key: "value", Value: p.Value},
		header.Member{Key: "unit", Value: optionalText(p.Unit)},
		header.Member{Key: "description", Value: optionalText(p.Description)},
	))
}

// Parameter reads back a parameter stored by AddParameter. Anything stored
// under name that is not shaped like a parameter reports false.
func (l *Log) Parameter(name string) (Parameter, bool) {
	v, ok := l.Property(name)
	if !ok || !v.IsObject() {
		return Parameter{}, false
	}

	value, ok := v.Get("value")
	if !ok {
		return Parameter{}, false
	}
	if k := value.Kind(); k == header.KindObject || k == header.KindArray {
		return Parameter{}, false
	}

	p := Parameter{Name: name, Value: value}
	if unit, ok := v.Get("unit"); ok {
		p.Unit, _ = unit.AsString()
	}
	if description, ok := v.Get("description"); ok {
		p.Description, _ = description.AsString()
	}

	return p, true
}

// AttributeSet names the attribute columns of a set imported from a
// record-oriented format such as a DLIS set. It is stored in the header as
//
//	"<name>": {"attributes": ["<attribute>", ...]}
type AttributeSet struct {
	Name       string
	Attributes []string
}

// AddAttributeSet stores set in the header under set.Name, replacing any
// existing property.
func (l *Log) AddAttributeSet(set AttributeSet) error {
	if set.Name == "" {
		return fmt.Errorf("%w: attribute set name cannot be empty", errs.ErrInvalidArgument)
	}

	items := make([]header.Value, len(set.Attributes))
	for i, attribute := range set.Attributes {
		items[i] = header.String(attribute)
	}

	return l.SetProperty(set.Name, header.Object(
		header.Member{Key: "attributes", Value: header.Array(items...)},
	))
}

// AttributeSet reads back a set stored by AddAttributeSet.
func (l *Log) AttributeSet(name string) (AttributeSet, bool) {
	v, ok := l.Property(name)
	if !ok || !v.IsObject() {
		return AttributeSet{}, false
	}

	attributes, ok := v.Get("attributes")
	if !ok || attributes.Kind() != header.KindArray {
		return AttributeSet{}, false
	}

	set := AttributeSet{Name: name, Attributes: make([]string, 0, attributes.Len())}
	for i := 0; i < attributes.Len(); i++ {
		item, _ := attributes.Index(i)
		if item.Kind() != header.KindString {
			return AttributeSet{}, false
		}
		text, _ := item.AsString()
		set.Attributes = append(set.Attributes, text)
	}

	return set, true
}

func optionalText(s string) header.Value {
	if s == "" {
		return header.Null()
	}

	return header.String(s)
}

// scalarValue converts a Go scalar to a header Value.
func scalarValue(value any) (header.Value, error) {
	switch v := value.(type) {
	case nil:
		return header.Null(), nil
	case header.Value:
		return v, nil
	case string:
		return header.String(v), nil
	case bool:
		return header.Bool(v), nil
	case float64:
		return header.Float(v), nil
	case float32:
		return header.Float(float64(v)), nil
	case time.Time:
		return header.Time(v), nil
	}

	if i, ok := asInt(value); ok {
		return header.Int(i), nil
	}

	return header.Value{}, fmt.Errorf("%w: unsupported parameter value %T", errs.ErrInvalidArgument, value)
}
