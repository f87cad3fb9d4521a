package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"croprec/config"
	"croprec/db"
	"croprec/logging"
	"croprec/ml"
	"croprec/training"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	dataset := flag.String("dataset", "", "training CSV (overrides config)")
	modelPath := flag.String("model_path", "", "model output path (overrides config)")
	manifestPath := flag.String("manifest_path", "", "feature manifest output path (overrides config)")
	trees := flag.Int("trees", 0, "number of trees")
	maxDepth := flag.Int("max_depth", 0, "max tree depth")
	seed := flag.Int64("seed", -1, "random seed for trees and split")
	testRatio := flag.Float64("test_ratio", 0, "held-out fraction")
	watch := flag.Bool("watch", false, "retrain whenever the dataset changes")
	flag.Parse()

	err := run(*configPath, *watch, overrides{
		dataset:      *dataset,
		modelPath:    *modelPath,
		manifestPath: *manifestPath,
		trees:        *trees,
		maxDepth:     *maxDepth,
		seed:         *seed,
		testRatio:    *testRatio,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, watch bool, o overrides) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	pipelineCfg := pipelineConfig(cfg, o)

	var recorder training.Recorder
	if cfg.Database.Path != "" {
		store, err := db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open training log %s: %w", cfg.Database.Path, err)
		}
		defer store.Close()
		recorder = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := training.NewPipeline(pipelineCfg, logger, recorder)
	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("training failed", zap.Error(err))
		return fmt.Errorf("training failed: %w", err)
	}
	printResult(os.Stdout, result)

	if !watch {
		return nil
	}
	logger.Info("watching dataset", zap.String("path", pipelineCfg.DatasetPath))
	err = training.Watch(ctx, pipelineCfg.DatasetPath, cfg.Training.WatchDebounce, logger, func(ctx context.Context) {
		result, err := pipeline.Run(ctx)
		if err != nil {
			// Keep the previous artifacts and wait for the next edit.
			logger.Error("retraining failed", zap.Error(err))
			return
		}
		printResult(os.Stdout, result)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

type overrides struct {
	dataset      string
	modelPath    string
	manifestPath string
	trees        int
	maxDepth     int
	seed         int64
	testRatio    float64
}

func pipelineConfig(cfg *config.Config, o overrides) training.Config {
	out := training.Config{
		DatasetPath:  cfg.Training.Dataset,
		ModelPath:    cfg.Model.Path,
		ManifestPath: cfg.Model.ManifestPath,
		TestRatio:    cfg.Training.TestRatio,
		SplitSeed:    cfg.Training.SplitSeed,
		Forest:       cfg.Training.Forest,
	}
	if o.dataset != "" {
		out.DatasetPath = o.dataset
	}
	if o.modelPath != "" {
		out.ModelPath = o.modelPath
	}
	if o.manifestPath != "" {
		out.ManifestPath = o.manifestPath
	}
	if o.trees > 0 {
		out.Forest.Trees = o.trees
	}
	if o.maxDepth > 0 {
		out.Forest.MaxDepth = o.maxDepth
	}
	if o.seed >= 0 {
		out.Forest.Seed = o.seed
		out.SplitSeed = o.seed
	}
	if o.testRatio > 0 && o.testRatio < 1 {
		out.TestRatio = o.testRatio
	}
	return out
}

func printResult(w io.Writer, result *training.Result) {
	fmt.Fprintf(w, "dataset: %d rows (%d train / %d test)\n", result.Rows, result.TrainRows, result.TestRows)

	labels := make([]string, 0, len(result.ClassCounts))
	for label := range result.ClassCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	fmt.Fprintln(w, "class distribution:")
	for _, label := range labels {
		fmt.Fprintf(w, "  %-12s %d\n", label, result.ClassCounts[label])
	}

	if q := result.Quality; q.Flagged > 0 {
		fmt.Fprintf(w, "\nquality: %d of %d rows flagged\n", q.Flagged, q.Checked)
		for i, issue := range q.Issues {
			if i == 10 {
				fmt.Fprintf(w, "  ... %d more\n", len(q.Issues)-i)
				break
			}
			fmt.Fprintf(w, "  line %d [%s/%s] %s\n", issue.Line, issue.Rule, issue.Severity, issue.Message)
		}
	}

	fmt.Fprintf(w, "\naccuracy: %.4f\n\nclassification report:\n", result.Report.Accuracy)
	result.Report.Write(w)
	fmt.Fprintln(w, "\nfeature importances:")
	ml.WriteFeatureImportances(w, result.Importances)
	fmt.Fprintf(w, "\nrun %s finished in %s\n", result.RunID, result.Duration.Round(time.Millisecond))
}
