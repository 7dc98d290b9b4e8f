package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/horsepower/internal/domain/model"
)

// Column headers recognized in the dataset.
const (
	colFirstName = "First Name"
	colLastName  = "Last Name"
	colLevel     = "Level"
	colAge       = "Age"
	colPosition  = "Position"
)

// rows between cancellation checks while parsing.
const ctxCheckInterval = 1024

// Load reads a CSV, TSV or XLSX dataset from path.
func Load(ctx context.Context, path string, opts ...Option) (*model.Dataset, error) {
	o := loadOptions{delimiter: ','}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tsv" {
		o.delimiter = '\t'
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		table [][]string
		err   error
	)
	switch ext {
	case ".csv", ".tsv":
		table, err = readCSV(path, o.delimiter)
	case ".xlsx":
		table, err = readXLSX(path, o.sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, filepath.Base(path), err)
	}
	return parseTable(ctx, table)
}

// parseTable maps a header row plus data rows onto athletes. Metric cells
// that are blank or non-numeric become zero and mark the row incomplete.
func parseTable(ctx context.Context, table [][]string) (*model.Dataset, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	idx := indexHeader(table[0])

	required := []string{colFirstName, colLastName, colLevel}
	for _, m := range model.Metrics()[:model.RawMetricCount] {
		required = append(required, m.String())
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	rows := make([]model.Athlete, 0, len(table)-1)
	for i, rec := range table[1:] {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if blankRecord(rec) {
			continue
		}
		rows = append(rows, parseRecord(rec, idx))
	}
	return model.NewDataset(rows), nil
}

func parseRecord(rec []string, idx map[string]int) model.Athlete {
	a := model.Athlete{
		FirstName: cell(rec, idx, colFirstName),
		LastName:  cell(rec, idx, colLastName),
		Level:     model.Level(cell(rec, idx, colLevel)),
		Position:  cell(rec, idx, colPosition),
		Complete:  true,
	}
	if age, ok := model.ParseNumber(cell(rec, idx, colAge)); ok {
		a.Age, a.HasAge = age, true
	}

	var raw [model.RawMetricCount]float64
	for i := range raw {
		v, ok := model.ParseNumber(cell(rec, idx, model.Metric(i).String()))
		if !ok {
			a.Complete = false
		}
		raw[i] = v
	}
	a.Values = model.NewVector(raw[0], raw[1], raw[2], raw[3], raw[4])
	return a
}

func indexHeader(header []string) map[string]int {
	known := []string{colFirstName, colLastName, colLevel, colAge, colPosition}
	known = append(known, model.MetricNames()...)

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, k := range known {
			if strings.EqualFold(h, k) {
				if _, dup := idx[k]; !dup {
					idx[k] = i
				}
			}
		}
	}
	return idx
}

func cell(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
