package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"tablefn/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// --- FieldDef YAML methods ---

// fieldDefFields decodes the mapping form without recursing into
// FieldDef.UnmarshalYAML.
type fieldDefFields FieldDef

// UnmarshalYAML implements custom YAML unmarshaling for FieldDef.
// Accepts:
//   - Single string: "product_id"
//   - Mapping: {name: zip_code, type: int}
func (f *FieldDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string

		if err := node.Decode(&name); err != nil {
			return err
		}

		*f = FieldDef{Name: name}

		return nil

	case yaml.MappingNode:
		var raw fieldDefFields

		if err := node.Decode(&raw); err != nil {
			return err
		}

		*f = FieldDef(raw)

		return nil

	default:
		return fmt.Errorf("line %d: expected field name or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes plain string leaves back in their short form.
func (f FieldDef) MarshalYAML() (any, error) {
	if f.Type == "" && f.Values.IsEmpty() && !f.IsInline() {
		return f.Name, nil
	}

	return fieldDefFields(f), nil
}
