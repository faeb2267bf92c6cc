// Package source reads mapping table rows from CSV files.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Options controls CSV tokenization.
type Options struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// Comment starts a comment line when non-zero.
	Comment rune
	// Header treats the first record as column names.
	Header bool
}

// Data is a tokenized CSV file.
type Data struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReadCSV tokenizes r. Rows may have differing lengths; width checks belong
// to the caller.
func ReadCSV(name string, r io.Reader, opt Options) (*Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}

	cr.Comment = opt.Comment

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	data := &Data{Name: name}

	if opt.Header {
		if len(records) == 0 {
			return nil, errors.New(name + ": missing header row")
		}

		data.Header = records[0]
		records = records[1:]
	}

	data.Rows = records

	return data, nil
}

// ReadCSVFile opens path and tokenizes it. The data is named after path.
func ReadCSVFile(path string, opt Options) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(path, f, opt)
}
