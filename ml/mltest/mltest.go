// Package mltest builds small deterministic crop datasets and fitted forests for
// tests in other packages.
package mltest

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"croprec/ml"
)

type cluster struct {
	label  string
	center [7]float64
	spread [7]float64
}

// Columns follow ml.CropFeatureNames: N, P, K, temperature, humidity, ph, rainfall.
var clusters = []cluster{
	{"rice", [7]float64{85, 45, 42, 22, 82, 6.4, 215}, [7]float64{15, 8, 4, 2.5, 3, 0.4, 30}},
	{"apple", [7]float64{45, 28, 22, 25, 70, 6.0, 70}, [7]float64{15, 8, 5, 3, 5, 0.5, 15}},
	{"maize", [7]float64{78, 48, 20, 22.4, 65, 6.25, 85}, [7]float64{18, 13, 5, 3, 5, 0.5, 20}},
	{"chickpea", [7]float64{40, 68, 80, 17, 17, 7.3, 80}, [7]float64{20, 13, 5, 1.5, 3, 1, 15}},
	{"coffee", [7]float64{101, 29, 30, 25.5, 59, 6.8, 158}, [7]float64{20, 14, 5, 2, 5, 0.5, 30}},
	{"cotton", [7]float64{118, 46, 20, 24, 80, 6.9, 80}, [7]float64{20, 10, 5, 2, 5, 0.9, 20}},
	{"mothbeans", [7]float64{21, 48, 20, 28.2, 53, 6.8, 51}, [7]float64{21, 13, 5, 3, 13, 2, 20}},
}

func Labels() []string {
	labels := make([]string, len(clusters))
	for i, c := range clusters {
		labels[i] = c.label
	}
	return labels
}

// CropDataset draws perClass rows uniformly from a box around each cluster center.
func CropDataset(perClass int, seed int64) *ml.Dataset {
	rnd := rand.New(rand.NewSource(seed))
	dataset := &ml.Dataset{FeatureNames: ml.CropFeatureNames()}
	for _, c := range clusters {
		for i := 0; i < perClass; i++ {
			row := make([]float64, len(c.center))
			for j := range row {
				row[j] = c.center[j] + (rnd.Float64()*2-1)*c.spread[j]
			}
			dataset.X = append(dataset.X, row)
			dataset.Y = append(dataset.Y, c.label)
		}
	}
	return dataset
}

func WriteCSV(t testing.TB, dir string, dataset *ml.Dataset) string {
	t.Helper()
	path := filepath.Join(dir, "crop_data.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := append(append([]string(nil), dataset.FeatureNames...), ml.LabelColumn)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range dataset.X {
		record := make([]string, 0, len(row)+1)
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		record = append(record, dataset.Y[i])
		if err := w.Write(record); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return path
}

func TrainForest(t testing.TB, dataset *ml.Dataset, params ml.ForestParams) *ml.RandomForest {
	t.Helper()
	forest := ml.NewRandomForest(params)
	if err := forest.Fit(context.Background(), dataset); err != nil {
		t.Fatalf("fit forest: %v", err)
	}
	return forest
}

// WriteArtifacts trains on a default dataset and writes a model/manifest pair
// into dir, returning their paths.
func WriteArtifacts(t testing.TB, dir string) (modelPath, manifestPath string) {
	t.Helper()
	forest := TrainForest(t, CropDataset(60, 7), ml.DefaultForestParams())
	modelPath = filepath.Join(dir, "crop_model.json")
	manifestPath = filepath.Join(dir, "feature_names.json")
	if _, err := ml.SaveArtifacts(modelPath, manifestPath, forest, "test-run"); err != nil {
		t.Fatalf("save artifacts: %v", err)
	}
	return modelPath, manifestPath
}
