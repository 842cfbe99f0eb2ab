package property

// Schema is one declared property of a collection.
type Schema struct {
	Name            string   `json:"name"`
	DataType        []string `json:"dataType"`
	Description     string   `json:"description,omitempty"`
	Tokenization    string   `json:"tokenization,omitempty"`
	IndexFilterable bool     `json:"indexFilterable"`
	IndexSearchable bool     `json:"indexSearchable"`
}

// TypeMap maps property names to their tags.
type TypeMap map[string]Tag

// BuildTypeMap derives a tag for every property in schema.
func BuildTypeMap(schema []Schema) TypeMap {
	m := make(TypeMap, len(schema))
	for _, p := range schema {
		m[p.Name] = Derive(p.DataType)
	}
	return m
}

// Lookup returns the tag for name, or Text when the property is not declared.
func (m TypeMap) Lookup(name string) Tag {
	if t, ok := m[name]; ok {
		return t
	}
	return Text
}
