// Package property interprets a collection's declared property types and
// converts property values between their stored form and the form an edit
// widget works with.
//
// Conversion never fails loudly on the display side: Decode substitutes a safe
// default (0, 0.0, "[]", "{}", or the raw date string) when a value cannot be
// parsed, so an edit form is always renderable. Callers must be aware that
// malformed stored data may therefore come back from a save as that default.
package property

import "strings"

// Tag is the semantic type of a property. Leaf tags are the schema's literal
// data type names; array tags are the element tag followed by "[]".
type Tag string

// Known leaf tags. Any other name is a valid Tag and behaves like Text.
const (
	Text           Tag = "text"
	String         Tag = "string"
	Boolean        Tag = "boolean"
	Int            Tag = "int"
	Number         Tag = "number"
	Date           Tag = "date"
	Object         Tag = "object"
	UUID           Tag = "uuid"
	GeoCoordinates Tag = "geoCoordinates"
	PhoneNumber    Tag = "phoneNumber"
	Blob           Tag = "blob"
)

const arraySuffix = "[]"

// ArrayOf returns the array tag with elements of type elem.
func ArrayOf(elem Tag) Tag { return elem + arraySuffix }

// IsArray reports whether t is an array tag.
func (t Tag) IsArray() bool { return strings.HasSuffix(string(t), arraySuffix) }

// Elem returns the element tag of an array tag, or t itself for a leaf.
func (t Tag) Elem() Tag {
	if !t.IsArray() {
		return t
	}
	return t[:len(t)-len(arraySuffix)]
}

// IsTextLike reports whether values of t are carried as plain strings.
func (t Tag) IsTextLike() bool {
	switch t {
	case Text, String, UUID, GeoCoordinates, PhoneNumber, Blob:
		return true
	}
	return false
}

// IsReference reports whether t names another collection. Cross-reference
// data types are collection names, which start with an upper-case letter.
func (t Tag) IsReference() bool {
	e := t.Elem()
	return e != "" && e[0] >= 'A' && e[0] <= 'Z'
}

// Derive maps a declared dataType list to a Tag.
//
// An empty list yields Text. When more than one type is declared only the first
// entry is considered; the alternates are discarded.
func Derive(dataType []string) Tag {
	if len(dataType) == 0 {
		return Text
	}
	return deriveOne(dataType[0])
}

func deriveOne(dt string) Tag {
	if base, ok := strings.CutSuffix(dt, arraySuffix); ok {
		return ArrayOf(deriveOne(base))
	}
	return Tag(dt)
}
