package property

import "strings"

// Encode converts an edited value back into the typed value stored for tag.
//
// ok is false when an int or number value could not be parsed. That result
// means "could not encode" and must not be read as zero. Arrays whose text is
// not a JSON array become empty, objects whose text is not a JSON object become
// empty, and unparseable date strings are passed through unchanged.
// Unrecognized leaf tags return value as is.
func Encode(value any, tag Tag) (encoded any, ok bool) {
	if tag.IsArray() {
		return encodeArray(value, tag.Elem()), true
	}
	if tag.IsTextLike() {
		return stringify(value), true
	}
	switch tag {
	case Boolean:
		return encodeBool(value), true
	case Int:
		return encodeInt(value)
	case Number:
		return encodeNumber(value)
	case Date:
		return encodeDate(value), true
	case Object:
		return encodeObject(value), true
	default:
		return value, true
	}
}

// encodeBool accepts a bool, the case-insensitive string "true", or any value
// judged by truthiness.
func encodeBool(value any) bool {
	switch x := value.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true")
	default:
		return truthy(value)
	}
}

func encodeInt(value any) (any, bool) {
	n, ok := toInt(value)
	if !ok {
		return nil, false
	}
	return n, true
}

func encodeNumber(value any) (any, bool) {
	f, ok := toFloat(value)
	if !ok {
		return nil, false
	}
	return f, true
}

// encodeDate normalizes dates and ISO strings to DateWireFormat in UTC.
func encodeDate(value any) any {
	if t, ok := isDate(value); ok {
		return t.UTC().Format(DateWireFormat)
	}
	s, ok := value.(string)
	if !ok {
		return stringify(value)
	}
	t, ok := parseISODate(s)
	if !ok {
		return s
	}
	return t.UTC().Format(DateWireFormat)
}

// encodeArray encodes every element with elem. Elements that cannot be encoded
// become nil.
func encodeArray(value any, elem Tag) []any {
	items, ok := asSlice(value)
	if !ok {
		s, isStr := value.(string)
		if !isStr || parseJSON(s, &items) != nil {
			return []any{}
		}
	}
	out := make([]any, len(items))
	for i, item := range items {
		enc, ok := Encode(item, elem)
		if !ok {
			enc = nil
		}
		out[i] = enc
	}
	return out
}

func encodeObject(value any) map[string]any {
	if m, ok := value.(map[string]any); ok {
		return m
	}
	s, ok := value.(string)
	if !ok {
		return map[string]any{}
	}
	var m map[string]any
	if err := parseJSON(s, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}
