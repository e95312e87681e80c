package tools

// Schema describes tool parameters, following a subset of JSON Schema.
type Schema struct {
	SchemaType  string            `json:"schema_type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
}

// FunctionDeclaration describes one callable operation exposed to the model.
type FunctionDeclaration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}
