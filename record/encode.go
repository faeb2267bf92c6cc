package record

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"tablefn/cell"
)

// YAMLNode renders r as an ordered YAML mapping, writing wildcard leaves as
// the given token.
func (r Record) YAMLNode(wildcard string) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for i, v := range r.values {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.shape.Field(i).Name}

		var val *yaml.Node

		if v.IsNested() {
			sub, err := v.nested.YAMLNode(wildcard)
			if err != nil {
				return nil, err
			}

			val = sub
		} else {
			val = &yaml.Node{}

			raw, ok := v.cell.Value()
			if !ok {
				raw = wildcard
			}

			if err := val.Encode(raw); err != nil {
				return nil, err
			}
		}

		node.Content = append(node.Content, key, val)
	}

	return node, nil
}

// MarshalYAML implements yaml.Marshaler with fields in declaration order.
func (r Record) MarshalYAML() (any, error) {
	return r.YAMLNode(cell.WildcardToken)
}

// MarshalJSON implements json.Marshaler. Fields keep declaration order and
// wildcard leaves encode as null.
func (r Record) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	for i, v := range r.values {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(r.shape.Field(i).Name)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		var raw any
		if v.IsNested() {
			raw = *v.nested
		} else if val, ok := v.cell.Value(); ok {
			raw = val
		}

		enc, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}

		buf.Write(enc)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
