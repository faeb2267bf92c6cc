package mapping

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"tablefn/internal/source"
	"tablefn/shape"
	"tablefn/table"
)

// LoadTable reads every source of mf into a table of the given shapes. Each
// source is loaded on its own and the results are concatenated, so a bad row
// names the file it came from.
func LoadTable(mf *MappingFile, domain, rng *shape.Shape) (*table.Table, error) {
	comma, _ := utf8.DecodeRuneInString(mf.Comma)
	comment, _ := utf8.DecodeRuneInString(mf.Comment)
	opt := source.Options{Comma: comma, Comment: comment, Header: mf.Header}

	parts := []*table.Table{table.New(domain, rng)}

	for _, src := range mf.Sources {
		path := src
		if !filepath.IsAbs(path) && mf.Dir != "" {
			path = filepath.Join(mf.Dir, path)
		}

		data, err := source.ReadCSVFile(path, opt)
		if err != nil {
			return nil, err
		}

		t := table.New(domain, rng)

		if mf.Header {
			err = t.LoadKeyed(src, data.Header, data.Rows, mf.Wildcard)
		} else {
			err = t.Load(src, data.Rows, mf.Wildcard)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to load source: %w", err)
		}

		parts = append(parts, t)
	}

	return table.Concat(parts...)
}

// Open loads, compiles and reads the definition file at path.
func Open(path string) (*MappingFile, *table.Table, error) {
	mf, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	domain, rng, err := Compile(mf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	t, err := LoadTable(mf, domain, rng)
	if err != nil {
		return nil, nil, err
	}

	return mf, t, nil
}
