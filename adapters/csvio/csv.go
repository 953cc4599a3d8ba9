// Package csvio reads and writes CSV tables.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"porte-calc/adapters/tabular"
	"porte-calc/core/output"
	"porte-calc/core/types"
	"porte-calc/internal/errors"
)

// utf8BOM prefixes files written by spreadsheet tools ("utf-8-sig").
const utf8BOM = "\uFEFF"

// Load reads a CSV file into a table
func Load(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.SourceUnavailable(path, err)
	}
	defer f.Close()
	table, err := Parse(f)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return table, nil
}

// Parse reads CSV from a reader into a table, tolerating a UTF-8 BOM
// and ragged row lengths.
func Parse(r io.Reader) (*tabular.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.TypeMalformedTable, "invalid CSV", err)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.TypeMalformedTable, "CSV source is empty")
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	return &tabular.Table{Header: header, Rows: rows[1:]}, nil
}

// WriteReport writes a report to a CSV file in the persisted shape.
func WriteReport(path string, rep *types.Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.DestinationUnavailable(path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.DestinationUnavailable(path, err)
	}
	defer f.Close()

	if err := output.Render(f, output.FormatCSV, rep); err != nil {
		return errors.DestinationUnavailable(path, err)
	}
	return nil
}

// AppendLog appends the report's record rows to a CSV log, writing the
// header first when the file does not exist yet.
func AppendLog(path string, rep *types.Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.DestinationUnavailable(path, err)
		}
	}

	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.DestinationUnavailable(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(output.Header); err != nil {
			return errors.DestinationUnavailable(path, err)
		}
	}
	for _, row := range rep.Rows {
		if err := w.Write(output.RecordRow(row)); err != nil {
			return errors.DestinationUnavailable(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.DestinationUnavailable(path, err)
	}
	return nil
}
