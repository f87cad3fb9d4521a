package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"croprec/config"
	"croprec/db"
	"croprec/ml"
	"croprec/ml/mltest"
	"croprec/training"
)

func TestPipelineConfigOverrides(t *testing.T) {
	cfg := config.Default()
	got := pipelineConfig(&cfg, overrides{seed: -1})
	if got.Forest.Trees != 100 || got.Forest.Seed != 42 || got.SplitSeed != 42 || got.TestRatio != 0.2 {
		t.Fatalf("defaults not carried: %+v", got)
	}

	got = pipelineConfig(&cfg, overrides{
		dataset:   "other.csv",
		trees:     10,
		maxDepth:  4,
		seed:      7,
		testRatio: 0.3,
	})
	if got.DatasetPath != "other.csv" || got.Forest.Trees != 10 || got.Forest.MaxDepth != 4 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.Forest.Seed != 7 || got.SplitSeed != 7 || got.TestRatio != 0.3 {
		t.Fatalf("seed/ratio not applied: %+v", got)
	}
	if got.ModelPath != cfg.Model.Path {
		t.Fatalf("model path should keep config value, got %s", got.ModelPath)
	}
}

func TestPrintResult(t *testing.T) {
	dir := t.TempDir()
	cfg := training.Config{
		DatasetPath:  mltest.WriteCSV(t, dir, mltest.CropDataset(10, 2)),
		ModelPath:    filepath.Join(dir, "crop_model.json"),
		ManifestPath: filepath.Join(dir, "feature_names.json"),
		TestRatio:    0.2,
		SplitSeed:    42,
		Forest:       ml.ForestParams{Trees: 5, MaxDepth: 6, Seed: 42},
	}
	result, err := training.NewPipeline(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var buf bytes.Buffer
	printResult(&buf, result)
	out := buf.String()
	for _, want := range []string{"70 rows", "accuracy:", "precision", "macro avg", "feature importances:", "rainfall", result.RunID} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func writeConfig(t *testing.T, dir, dataset string) string {
	t.Helper()
	body := fmt.Sprintf(`log:
  level: error
database:
  path: %s
model:
  path: %s
  manifest_path: %s
training:
  dataset: %s
  forest:
    trees: 5
    max_depth: 6
    seed: 42
translation:
  enabled: false
`, filepath.Join(dir, "runs.db"), filepath.Join(dir, "crop_model.json"), filepath.Join(dir, "feature_names.json"), dataset)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, filepath.Join(dir, "missing.csv"))

	err := run(configPath, false, overrides{seed: -1})
	if err == nil || !strings.Contains(err.Error(), "training failed") {
		t.Fatalf("expected training error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "crop_model.json")); !os.IsNotExist(err) {
		t.Fatalf("no model should be written, stat err %v", err)
	}
}

func TestRunRecordsTrainingRun(t *testing.T) {
	dir := t.TempDir()
	dataset := mltest.WriteCSV(t, dir, mltest.CropDataset(10, 2))
	configPath := writeConfig(t, dir, dataset)

	if err := run(configPath, false, overrides{seed: -1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := db.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("reopen training log: %v", err)
	}
	defer store.Close()
	runs, err := store.ListTrainingRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
}
