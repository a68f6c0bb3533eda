package data

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

//go:embed iris.csv
var irisCSV []byte

// ErrSchema reports a CSV whose layout does not match the schema.
var ErrSchema = errors.New("schema mismatch")

// Open returns a reader over path, or over the embedded Iris table when path is empty.
func Open(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(bytes.NewReader(irisCSV)), nil
	}
	return os.Open(path)
}

// LoadFile opens path (empty means the embedded copy) and loads it against IrisSchema.
func LoadFile(path string) (dataframe.DataFrame, error) {
	f, err := Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	return Load(f, IrisSchema)
}

// Load reads a CSV with a header row, checks it against schema and returns the typed table.
func Load(r io.Reader, schema Schema) (dataframe.DataFrame, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: empty file", ErrSchema)
	}
	if err := checkHeader(records[0], schema); err != nil {
		return dataframe.DataFrame{}, err
	}
	for i, rec := range records[1:] {
		if err := checkRecord(rec, schema); err != nil {
			// +2: one for the header, one for 1-based line numbers.
			return dataframe.DataFrame{}, fmt.Errorf("line %d: %w", i+2, err)
		}
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(schema.Types()),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build table: %w", df.Err)
	}
	return df, nil
}

func checkHeader(header []string, schema Schema) error {
	if len(header) != len(schema.FeatureNames) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrSchema, len(header), len(schema.FeatureNames))
	}
	for i, want := range schema.FeatureNames {
		if got := strings.TrimSpace(header[i]); got != want {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchema, i, got, want)
		}
	}
	return nil
}

func checkRecord(rec []string, schema Schema) error {
	for i, s := range rec {
		switch schema.Kinds[i] {
		case KindID:
			if _, err := strconv.Atoi(s); err != nil {
				return fmt.Errorf("%w: %s=%q is not an integer", ErrSchema, schema.FeatureNames[i], s)
			}
		case KindMeasurement:
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return fmt.Errorf("%w: %s=%q is not a number", ErrSchema, schema.FeatureNames[i], s)
			}
		case KindLabel:
			if s == "" {
				return fmt.Errorf("%w: %s is empty", ErrSchema, schema.FeatureNames[i])
			}
		}
	}
	return nil
}
