package ml

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrEmptyDataset     = errors.New("dataset is empty")
	ErrMissingColumn    = errors.New("missing column")
	ErrMalformedRow     = errors.New("malformed row")
	ErrDegenerateLabels = errors.New("label column has fewer than 2 distinct classes")
)

type Dataset struct {
	FeatureNames []string
	X            [][]float64
	Y            []string
}

func LoadCSVFile(path string, featureNames []string, labelColumn string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadCSV(file, featureNames, labelColumn)
}

// LoadCSV reads a header-led delimited table and returns its rows with the
// feature columns rearranged into featureNames order.
func LoadCSV(r io.Reader, featureNames []string, labelColumn string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, column := range header {
		positions[strings.TrimSpace(column)] = i
	}
	featureIdx := make([]int, len(featureNames))
	for i, name := range featureNames {
		idx, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		featureIdx[i] = idx
	}
	labelIdx, ok := positions[labelColumn]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, labelColumn)
	}

	dataset := &Dataset{FeatureNames: append([]string(nil), featureNames...)}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformedRow, line, len(record), len(header))
		}

		row := make([]float64, len(featureNames))
		for i, idx := range featureIdx {
			cell := strings.TrimSpace(record[idx])
			if cell == "" {
				return nil, fmt.Errorf("%w: line %d: %s is empty", ErrMalformedRow, line, featureNames[i])
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, fmt.Errorf("%w: line %d: %s=%q is not a number", ErrMalformedRow, line, featureNames[i], cell)
			}
			row[i] = value
		}
		label := strings.TrimSpace(record[labelIdx])
		if label == "" {
			return nil, fmt.Errorf("%w: line %d: empty label", ErrMalformedRow, line)
		}
		dataset.X = append(dataset.X, row)
		dataset.Y = append(dataset.Y, label)
	}

	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	return dataset, nil
}

func (d *Dataset) Len() int {
	return len(d.Y)
}

// Validate checks the invariants training relies on.
func (d *Dataset) Validate() error {
	if d == nil || len(d.X) == 0 || len(d.Y) == 0 {
		return ErrEmptyDataset
	}
	if len(d.X) != len(d.Y) {
		return fmt.Errorf("%w: %d feature rows, %d labels", ErrMalformedRow, len(d.X), len(d.Y))
	}
	for i, row := range d.X {
		if len(row) != len(d.FeatureNames) {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrMalformedRow, i, len(row), len(d.FeatureNames))
		}
	}
	if len(d.Classes()) < 2 {
		return ErrDegenerateLabels
	}
	return nil
}

// Classes returns the distinct labels in sorted order.
func (d *Dataset) Classes() []string {
	seen := make(map[string]struct{})
	for _, label := range d.Y {
		seen[label] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for label := range seen {
		classes = append(classes, label)
	}
	sort.Strings(classes)
	return classes
}

func (d *Dataset) ClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, label := range d.Y {
		counts[label]++
	}
	return counts
}

// Split shuffles row indices with seed and holds out ceil(n*testRatio) rows.
func (d *Dataset) Split(testRatio float64, seed int64) (train, test *Dataset) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	n := d.Len()
	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(n)

	testSize := int(math.Ceil(float64(n) * testRatio))
	if testSize >= n {
		testSize = n - 1
	}

	train = &Dataset{FeatureNames: d.FeatureNames}
	test = &Dataset{FeatureNames: d.FeatureNames}
	for i, idx := range indices {
		if i < testSize {
			test.X = append(test.X, d.X[idx])
			test.Y = append(test.Y, d.Y[idx])
		} else {
			train.X = append(train.X, d.X[idx])
			train.Y = append(train.Y, d.Y[idx])
		}
	}
	return train, test
}
