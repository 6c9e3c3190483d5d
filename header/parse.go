package header

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// Parse parses a JSON document into a Value.
//
// Numbers without a fraction or exponent become integers when they fit into
// int64, and floats when FormatFloat renders them back to the same text. Any
// other number literal is kept verbatim as KindNumber. Duplicate object keys
// keep the position of the first occurrence and the value of the last.
func Parse(data []byte) (Value, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return Value{}, fmt.Errorf("parse header: %w", err)
	}

	return convert(v)
}

// ParseObject parses data and requires the document to be a JSON object.
func ParseObject(data []byte) (Value, error) {
	v, err := Parse(data)
	if err != nil {
		return Value{}, err
	}
	if v.kind != KindObject {
		return Value{}, fmt.Errorf("parse header: expected object, got %s", v.kind)
	}

	return v, nil
}

// convert copies a fastjson value into an immutable Value. The fastjson tree
// belongs to a pooled parser, so nothing may alias it after Parse returns.
func convert(v *fastjson.Value) (Value, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return Null(), nil
	case fastjson.TypeTrue:
		return Bool(true), nil
	case fastjson.TypeFalse:
		return Bool(false), nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return Value{}, err
		}
		return String(string(b)), nil
	case fastjson.TypeNumber:
		return parseNumber(v.String())
	case fastjson.TypeArray:
		arr, err := v.Array()
		if err != nil {
			return Value{}, err
		}
		items := make([]Value, 0, len(arr))
		for _, item := range arr {
			converted, err := convert(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return Value{kind: KindArray, items: items}, nil
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return Value{}, err
		}
		members := make([]Member, 0, obj.Len())
		var visitErr error
		obj.Visit(func(key []byte, item *fastjson.Value) {
			if visitErr != nil {
				return
			}
			converted, err := convert(item)
			if err != nil {
				visitErr = err
				return
			}
			members = append(members, Member{Key: string(key), Value: converted})
		})
		if visitErr != nil {
			return Value{}, visitErr
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON type: %s", v.Type())
	}
}

// parseNumber keeps integers that fit int64 as KindInt and floats whose
// FormatFloat rendering reproduces the literal as KindFloat. Every other
// literal is kept verbatim as KindNumber so that it is written back unchanged.
func parseNumber(text string) (Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i), nil
		}
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil && FormatFloat(f) == text {
		return Float(f), nil
	}

	return Number(text)
}
