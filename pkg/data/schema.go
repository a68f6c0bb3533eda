package data

import "github.com/go-gota/gota/series"

// Kind is the semantic type of a column.
type Kind string

const (
	KindID          Kind = "id"
	KindMeasurement Kind = "measurement"
	KindLabel       Kind = "label"
)

// Schema describes the structure of a dataset.
type Schema struct {
	FeatureNames []string
	Kinds        []Kind
}

// Iris column names as they appear in the CSV header.
const (
	ColID          = "Id"
	ColSepalLength = "SepalLengthCm"
	ColSepalWidth  = "SepalWidthCm"
	ColPetalLength = "PetalLengthCm"
	ColPetalWidth  = "PetalWidthCm"
	ColSpecies     = "Species"
)

// Species labels.
const (
	Setosa     = "Iris-setosa"
	Versicolor = "Iris-versicolor"
	Virginica  = "Iris-virginica"
)

// IrisRows is the row count of the benchmark table.
const IrisRows = 150

// IrisSchema is the fixed layout of the Iris CSV.
var IrisSchema = Schema{
	FeatureNames: []string{ColID, ColSepalLength, ColSepalWidth, ColPetalLength, ColPetalWidth, ColSpecies},
	Kinds:        []Kind{KindID, KindMeasurement, KindMeasurement, KindMeasurement, KindMeasurement, KindLabel},
}

// Names returns the column names of the given kind, in schema order.
func (s Schema) Names(k Kind) []string {
	var out []string
	for i, n := range s.FeatureNames {
		if s.Kinds[i] == k {
			out = append(out, n)
		}
	}
	return out
}

// Index returns the position of name, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s.FeatureNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Types maps every column to the gota series type used when loading.
func (s Schema) Types() map[string]series.Type {
	types := make(map[string]series.Type, len(s.FeatureNames))
	for i, n := range s.FeatureNames {
		switch s.Kinds[i] {
		case KindID:
			types[n] = series.Int
		case KindMeasurement:
			types[n] = series.Float
		default:
			types[n] = series.String
		}
	}
	return types
}
