package mapping

// MappingFile represents the root of a YAML table definition file.
type MappingFile struct {
	// Version of the definition schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Wildcard is the token that stands for a wildcard cell in sources.
	Wildcard string `yaml:"wildcard,omitempty"`

	// Header marks sources whose first row names the columns.
	Header bool `yaml:"header,omitempty"`

	// Comma is the single-character field delimiter of sources.
	Comma string `yaml:"comma,omitempty"`

	// Comment, when set, is the single character that starts a comment line.
	Comment string `yaml:"comment,omitempty"`

	// Shapes declares named shapes that fields may use as their type.
	Shapes []ShapeDef `yaml:"shapes,omitempty"`

	// Domain is the input-side shape.
	Domain ShapeDef `yaml:"domain"`

	// Range is the output-side shape.
	Range ShapeDef `yaml:"range"`

	// Sources lists CSV files, relative to the definition file.
	Sources StringOrArray `yaml:"sources,omitempty"`

	// Dir is the directory the file was loaded from.
	Dir string `yaml:"-"`
}

// ShapeDef declares a shape.
type ShapeDef struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field of a shape.
// YAML formats supported:
//   - Simple string: "product_id" (a string leaf)
//   - Mapping: {name: zip_code, type: int}
type FieldDef struct {
	// Name of the field.
	Name string `yaml:"name"`
	// Type is a leaf kind (string, int, bool, enum) or the name of a shape.
	// Empty means string, or the field name when Fields is set.
	Type string `yaml:"type,omitempty"`
	// Values lists the literals of an enum leaf.
	Values StringOrArray `yaml:"values,omitempty"`
	// Fields declares an inline nested shape.
	Fields []FieldDef `yaml:"fields,omitempty"`
}

// IsInline reports whether the field declares its nested shape in place.
func (f FieldDef) IsInline() bool {
	return len(f.Fields) > 0
}

// InlineShape returns the inline nested shape of f.
func (f FieldDef) InlineShape() ShapeDef {
	name := f.Type
	if name == "" {
		name = f.Name
	}

	return ShapeDef{Name: name, Fields: f.Fields}
}

// StringOrArray represents a value that can be either a single string or an array of strings.
type StringOrArray []string
