// Package dataset loads training records from CSV files. The first row
// is the header; each data row becomes a RawRecord keyed by header
// name. Cells that parse as numbers are stored as float64 so numeric
// columns survive the trip through CSV text.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ahrav/go-featurize/internal/domain"
)

// LoadCSV reads every record from the CSV file at path.
func LoadCSV(path string) ([]domain.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	records, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return records, nil
}

// ReadCSV parses header-prefixed CSV from r into raw records. Rows with
// a different field count than the header are rejected by the csv
// reader. Empty cells are omitted from the record rather than stored as
// empty strings, so the remainder inference and missing-column checks
// see them as absent.
func ReadCSV(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	var records []domain.RawRecord
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		record := make(domain.RawRecord, len(header))
		for i, cell := range fields {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if n, err := strconv.ParseFloat(cell, 64); err == nil {
				record[header[i]] = n
			} else {
				record[header[i]] = cell
			}
		}
		records = append(records, record)
	}

	return records, nil
}
