package format

import "fmt"

type ValueType uint8

const (
	TypeFloat    ValueType = 0x1 // TypeFloat represents floating-point samples.
	TypeInteger  ValueType = 0x2 // TypeInteger represents integer samples.
	TypeBoolean  ValueType = 0x3 // TypeBoolean represents true/false samples.
	TypeString   ValueType = 0x4 // TypeString represents free text samples.
	TypeDateTime ValueType = 0x5 // TypeDateTime represents ISO-8601 timestamps.
)

// String returns the valueType token used in the curve definitions of the JSON Well Log format.
func (v ValueType) String() string {
	switch v {
	case TypeFloat:
		return "float"
	case TypeInteger:
		return "integer"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	case TypeDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// IsValid reports whether v is one of the defined value types.
func (v ValueType) IsValid() bool {
	return v >= TypeFloat && v <= TypeDateTime
}

// IsNumeric reports whether samples of this type are rendered as JSON numbers.
func (v ValueType) IsNumeric() bool {
	return v == TypeFloat || v == TypeInteger
}

// ParseValueType converts a valueType token back into a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "float":
		return TypeFloat, nil
	case "integer":
		return TypeInteger, nil
	case "boolean":
		return TypeBoolean, nil
	case "string":
		return TypeString, nil
	case "datetime":
		return TypeDateTime, nil
	default:
		return 0, fmt.Errorf("unknown value type: %q", s)
	}
}
