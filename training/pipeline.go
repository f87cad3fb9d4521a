// Package training turns a labelled CSV into a persisted random forest.
package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"croprec/crop"
	"croprec/db"
	"croprec/metrics"
	"croprec/ml"
)

var ErrUnknownLabel = errors.New("unknown crop label")

type Config struct {
	DatasetPath  string
	ModelPath    string
	ManifestPath string
	TestRatio    float64
	SplitSeed    int64
	Forest       ml.ForestParams
}

// Recorder persists a summary of each successful run. *db.Store satisfies it.
type Recorder interface {
	SaveTrainingRun(ctx context.Context, run db.TrainingRun) error
}

type Result struct {
	RunID       string
	Rows        int
	TrainRows   int
	TestRows    int
	ClassCounts map[string]int
	Quality     QualityReport
	Report      *ml.ClassificationReport
	Importances []ml.FeatureImportance
	Manifest    *ml.Manifest
	Duration    time.Duration
}

type Pipeline struct {
	cfg      Config
	logger   *zap.Logger
	recorder Recorder
}

// NewPipeline accepts a nil recorder when no training log is kept.
func NewPipeline(cfg Config, logger *zap.Logger, recorder Recorder) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TestRatio <= 0 || cfg.TestRatio >= 1 {
		cfg.TestRatio = 0.2
	}
	return &Pipeline{cfg: cfg, logger: logger, recorder: recorder}
}

func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result, err := p.run(ctx)
	if err != nil {
		metrics.TrainingRuns.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.TrainingRuns.WithLabelValues("ok").Inc()
	metrics.TrainingAccuracy.Set(result.Report.Accuracy)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))

	dataset, err := ml.LoadCSVFile(p.cfg.DatasetPath, ml.CropFeatureNames(), ml.LabelColumn)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.cfg.DatasetPath, err)
	}
	if err := CheckLabels(dataset); err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("path", p.cfg.DatasetPath),
		zap.Int("rows", dataset.Len()),
		zap.Int("classes", len(dataset.Classes())))

	quality := Audit(dataset)
	if quality.Flagged > 0 {
		fields := []zap.Field{zap.Int("flagged_rows", quality.Flagged), zap.Any("by_rule", quality.ByRule)}
		if len(quality.Issues) > 0 {
			fields = append(fields, zap.Any("first_issue", quality.Issues[0]))
		}
		logger.Warn("dataset quality issues", fields...)
	}

	train, test := dataset.Split(p.cfg.TestRatio, p.cfg.SplitSeed)
	logger.Info("dataset split", zap.Int("train", train.Len()), zap.Int("test", test.Len()))

	forest := ml.NewRandomForest(p.cfg.Forest)
	if err := forest.Fit(ctx, train); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	report, _, err := ml.Evaluate(forest, test)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	logger.Info("model evaluated",
		zap.Float64("accuracy", report.Accuracy),
		zap.Float64("macro_f1", report.MacroAvg.F1))

	manifest, err := ml.SaveArtifacts(p.cfg.ModelPath, p.cfg.ManifestPath, forest, runID)
	if err != nil {
		return nil, err
	}
	logger.Info("artifacts saved",
		zap.String("model", p.cfg.ModelPath),
		zap.String("manifest", p.cfg.ManifestPath))

	result := &Result{
		RunID:       runID,
		Rows:        dataset.Len(),
		TrainRows:   train.Len(),
		TestRows:    test.Len(),
		ClassCounts: dataset.ClassCounts(),
		Quality:     quality,
		Report:      report,
		Importances: forest.FeatureImportances(),
		Manifest:    manifest,
		Duration:    time.Since(start),
	}

	if p.recorder != nil {
		run := db.TrainingRun{
			RunID:        runID,
			ModelType:    forest.Type,
			DatasetPath:  p.cfg.DatasetPath,
			DataPoints:   result.Rows,
			TrainSize:    result.TrainRows,
			TestSize:     result.TestRows,
			Accuracy:     report.Accuracy,
			Precision:    report.MacroAvg.Precision,
			Recall:       report.MacroAvg.Recall,
			F1:           report.MacroAvg.F1,
			Params:       forest.Params,
			ModelPath:    p.cfg.ModelPath,
			ManifestPath: p.cfg.ManifestPath,
			TrainedAt:    manifest.CreatedAt,
		}
		// The artifacts are already installed; a lost log row is not a failed run.
		if err := p.recorder.SaveTrainingRun(ctx, run); err != nil {
			logger.Warn("failed to record training run", zap.Error(err))
		}
	}
	return result, nil
}

// CheckLabels reports every label in the dataset that is not a known crop.
func CheckLabels(dataset *ml.Dataset) error {
	var err error
	seen := make(map[string]bool)
	for i, label := range dataset.Y {
		if seen[label] {
			continue
		}
		seen[label] = true
		if _, ok := crop.ParseLabel(label); !ok {
			err = multierr.Append(err, fmt.Errorf("%w %q (first at row %d)", ErrUnknownLabel, label, i+2))
		}
	}
	return err
}
