package property

import "time"

const (
	emptyArrayJSON  = "[]"
	emptyObjectJSON = "{}"
)

// Decode converts a stored value into its editable representation for tag.
//
// Arrays and objects become indented JSON text, dates become time.Time when
// the string parses, booleans, ints and numbers become bool, int64 and float64,
// and everything else becomes a string. Values that cannot be parsed fall back
// to a default instead of failing.
func Decode(value any, tag Tag) any {
	if tag.IsArray() {
		return decodeJSON(value, emptyArrayJSON)
	}
	switch tag {
	case Object:
		return decodeJSON(value, emptyObjectJSON)
	case Date:
		return decodeDate(value)
	case Boolean:
		return truthy(value)
	case Int:
		return decodeInt(value)
	case Number:
		return decodeNumber(value)
	default:
		return stringify(value)
	}
}

func decodeJSON(value any, empty string) string {
	if !truthy(value) {
		return empty
	}
	s, err := prettyJSON(value)
	if err != nil {
		return empty
	}
	return s
}

// decodeDate returns a time.Time for a parseable ISO-8601 string. Unparseable
// strings and non-string values are returned unchanged.
func decodeDate(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	if t, ok := parseISODate(s); ok {
		return t
	}
	return s
}

// decodeInt falls back to 0 when value does not parse.
func decodeInt(value any) int64 {
	n, ok := toInt(value)
	if !ok {
		return 0
	}
	return n
}

// decodeNumber falls back to 0.0 when value does not parse.
func decodeNumber(value any) float64 {
	f, ok := toFloat(value)
	if !ok {
		return 0
	}
	return f
}

// isDate reports whether v is an already parsed date.
func isDate(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}
