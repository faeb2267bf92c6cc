package mapping

import (
	"fmt"

	"tablefn/shape"
)

// Compile validates mf and builds its domain and range shapes.
func Compile(mf *MappingFile) (domain, rng *shape.Shape, err error) {
	if err := Validate(mf).Error(); err != nil {
		return nil, nil, err
	}

	c := &compiler{
		named: map[string]ShapeDef{},
		built: map[string]*shape.Shape{},
	}

	for _, sd := range mf.Shapes {
		c.named[sd.Name] = sd
	}

	domain, err = c.build(mf.Domain)
	if err != nil {
		return nil, nil, fmt.Errorf("domain: %w", err)
	}

	rng, err = c.build(mf.Range)
	if err != nil {
		return nil, nil, fmt.Errorf("range: %w", err)
	}

	return domain, rng, nil
}

type compiler struct {
	named map[string]ShapeDef
	built map[string]*shape.Shape
}

// resolveShape returns the compiled named shape, building it on first use.
func (c *compiler) resolveShape(name string) (*shape.Shape, error) {
	if s, ok := c.built[name]; ok {
		return s, nil
	}

	sd, ok := c.named[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}

	s, err := c.build(sd)
	if err != nil {
		return nil, err
	}

	c.built[name] = s

	return s, nil
}

func (c *compiler) build(sd ShapeDef) (*shape.Shape, error) {
	fields := make([]shape.Field, 0, len(sd.Fields))

	for _, f := range sd.Fields {
		sf, err := c.field(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", sd.Name, f.Name, err)
		}

		fields = append(fields, sf)
	}

	return shape.New(sd.Name, fields...)
}

func (c *compiler) field(f FieldDef) (shape.Field, error) {
	if f.IsInline() {
		nested, err := c.build(f.InlineShape())
		if err != nil {
			return shape.Field{}, err
		}

		return shape.NestedField(f.Name, nested), nil
	}

	if kind, ok := leafKind(f.Type); ok {
		return shape.LeafField(f.Name, kind, f.Values...), nil
	}

	nested, err := c.resolveShape(f.Type)
	if err != nil {
		return shape.Field{}, err
	}

	return shape.NestedField(f.Name, nested), nil
}
