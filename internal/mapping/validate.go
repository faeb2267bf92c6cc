package mapping

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"tablefn/internal/diagnostic"
	"tablefn/internal/suggest"
	"tablefn/shape"
)

// Validate checks a definition for structural problems: versions, tokens,
// shape and field declarations, type references and recursion.
func Validate(mf *MappingFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if mf.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", mf.Version), "", "")
	}

	if mf.Wildcard == "" {
		res.AddError("empty_wildcard", "wildcard token is empty", "", "")
	}

	if utf8.RuneCountInString(mf.Comma) != 1 {
		res.AddError("invalid_comma", fmt.Sprintf("comma must be a single character, got %q", mf.Comma), "", "")
	}

	if mf.Comment != "" && (utf8.RuneCountInString(mf.Comment) != 1 || mf.Comment == mf.Comma) {
		res.AddError("invalid_comment", fmt.Sprintf("comment must be a single character other than the comma, got %q", mf.Comment), "", "")
	}

	if mf.Sources.IsEmpty() {
		res.AddWarning("no_sources", "no sources declared", "", "")
	}

	named := map[string]*ShapeDef{}

	for i := range mf.Shapes {
		sd := &mf.Shapes[i]
		if sd.Name == "" {
			res.AddError("missing_shape_name", fmt.Sprintf("shape %d has no name", i), "", "")
			continue
		}

		if _, ok := named[sd.Name]; ok {
			res.AddError("duplicate_shape", fmt.Sprintf("duplicate shape %q", sd.Name), sd.Name, "")
			continue
		}

		if _, isLeaf := shape.ParseLeafKind(sd.Name); isLeaf {
			res.AddError("reserved_shape_name", fmt.Sprintf("shape name %q is a leaf type", sd.Name), sd.Name, "")
			continue
		}

		named[sd.Name] = sd
	}

	v := &validator{res: res, named: named}

	for i := range mf.Shapes {
		v.shape(mf.Shapes[i], nil)
	}

	if mf.Domain.Name == "" && len(mf.Domain.Fields) == 0 {
		res.AddError("missing_domain", "domain shape is not declared", "", "")
	} else {
		v.shape(mf.Domain, nil)
	}

	if mf.Range.Name == "" && len(mf.Range.Fields) == 0 {
		res.AddError("missing_range", "range shape is not declared", "", "")
	} else {
		v.shape(mf.Range, nil)
	}

	v.cycles()

	return res
}

type validator struct {
	res   *diagnostic.Diagnostics
	named map[string]*ShapeDef
}

// shape validates the fields of sd; prefix is the field path leading to an
// inline shape.
func (v *validator) shape(sd ShapeDef, prefix shape.Path) {
	if sd.Name == "" {
		v.res.AddError("missing_shape_name", "shape has no name", "", prefix.String())
	}

	if len(sd.Fields) == 0 {
		v.res.AddError("missing_fields", "shape has no fields", sd.Name, prefix.String())
		return
	}

	seen := map[string]struct{}{}

	for _, f := range sd.Fields {
		path := prefix.Child(f.Name)

		if p, err := shape.ParsePath(f.Name); err != nil || len(p) != 1 {
			v.res.AddError("invalid_field_name", fmt.Sprintf("invalid field name %q", f.Name), sd.Name, path.String())
			continue
		}

		if _, ok := seen[f.Name]; ok {
			v.res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", f.Name), sd.Name, path.String())
			continue
		}

		seen[f.Name] = struct{}{}

		v.field(sd.Name, f, path)
	}
}

func (v *validator) field(owner string, f FieldDef, path shape.Path) {
	if f.IsInline() {
		if !f.Values.IsEmpty() {
			v.res.AddError("values_on_non_enum", "values given for a nested field", owner, path.String())
		}

		v.shape(f.InlineShape(), path)

		return
	}

	kind, isLeaf := leafKind(f.Type)
	if !isLeaf {
		if _, ok := v.named[f.Type]; !ok {
			v.res.AddError("unknown_type", fmt.Sprintf("unknown type %q%s", f.Type, suggest.Hint(f.Type, v.typeNames())), owner, path.String())
		} else if !f.Values.IsEmpty() {
			v.res.AddError("values_on_non_enum", "values given for a nested field", owner, path.String())
		}

		return
	}

	switch {
	case kind == shape.LeafEnum && f.Values.IsEmpty():
		v.res.AddError("enum_without_values", "enum field declares no values", owner, path.String())
	case kind != shape.LeafEnum && !f.Values.IsEmpty():
		v.res.AddError("values_on_non_enum", fmt.Sprintf("values given for %s field", kind), owner, path.String())
	}
}

// typeNames lists every name a field type may use.
func (v *validator) typeNames() []string {
	names := []string{"string", "int", "bool", "enum"}
	for name := range v.named {
		names = append(names, name)
	}

	slices.Sort(names[4:])

	return names
}

// cycles reports named shapes that reach themselves through field types.
func (v *validator) cycles() {
	const (
		unvisited = iota
		visiting
		done
	)

	state := map[string]int{}

	var visit func(name string) bool
	visit = func(name string) bool {
		switch state[name] {
		case visiting:
			return true
		case done:
			return false
		}

		state[name] = visiting

		for _, ref := range references(v.named[name].Fields) {
			if _, ok := v.named[ref]; ok && visit(ref) {
				state[name] = done
				v.res.AddError("recursive_shape", fmt.Sprintf("shape %q refers to itself through %q", name, ref), name, "")

				return false
			}
		}

		state[name] = done

		return false
	}

	for i := range v.named {
		visit(i)
	}
}

// references lists the named shape types used by fields, including those of
// inline shapes.
func references(fields []FieldDef) []string {
	var out []string

	for _, f := range fields {
		if f.IsInline() {
			out = append(out, references(f.Fields)...)
			continue
		}

		if _, isLeaf := leafKind(f.Type); !isLeaf {
			out = append(out, f.Type)
		}
	}

	return out
}

func leafKind(typ string) (shape.LeafKind, bool) {
	if typ == "" {
		return shape.LeafString, true
	}

	return shape.ParseLeafKind(typ)
}
