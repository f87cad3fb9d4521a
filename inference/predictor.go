// Package inference serves crop predictions from a trained model artifact.
package inference

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"croprec/crop"
	"croprec/metrics"
	"croprec/ml"
)

var ErrModelUnavailable = errors.New("model unavailable")

// FeatureAliases maps request field names to the dataset column names used in
// the manifest.
var FeatureAliases = map[string]string{
	"nitrogen":   "N",
	"phosphorus": "P",
	"potassium":  "K",
}

// InputError reports every problem with a sample. It is safe to show to callers.
type InputError struct {
	err error
}

func (e *InputError) Error() string {
	return e.err.Error()
}

func (e *InputError) Unwrap() error {
	return e.err
}

func (e *InputError) Problems() []string {
	errs := multierr.Errors(e.err)
	problems := make([]string, len(errs))
	for i, err := range errs {
		problems[i] = err.Error()
	}
	return problems
}

func newInputError(err error) error {
	if err == nil {
		return nil
	}
	return &InputError{err: err}
}

// Predictor is immutable after construction and safe for concurrent use.
type Predictor struct {
	model    ml.Classifier
	features []string
	manifest ml.Manifest
}

// LoadPredictor reads the model and feature manifest written by one training run.
func LoadPredictor(modelPath, manifestPath string) (*Predictor, error) {
	model, manifest, err := ml.LoadArtifacts(modelPath, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	p, err := NewPredictor(model, manifest.Features)
	if err != nil {
		return nil, err
	}
	p.manifest = *manifest
	return p, nil
}

func NewPredictor(model ml.Classifier, features []string) (*Predictor, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrModelUnavailable)
	}
	modelFeatures := model.FeatureNames()
	if len(features) != len(modelFeatures) {
		return nil, fmt.Errorf("%w: manifest has %d features, model expects %d", ErrModelUnavailable, len(features), len(modelFeatures))
	}
	for i := range features {
		if features[i] != modelFeatures[i] {
			return nil, fmt.Errorf("%w: manifest feature %d is %q, model expects %q", ErrModelUnavailable, i, features[i], modelFeatures[i])
		}
	}
	for _, class := range model.Classes() {
		if _, ok := crop.ParseLabel(class); !ok {
			return nil, fmt.Errorf("%w: model class %q is not a known crop", ErrModelUnavailable, class)
		}
	}
	return &Predictor{model: model, features: append([]string(nil), features...)}, nil
}

func (p *Predictor) Features() []string {
	return append([]string(nil), p.features...)
}

func (p *Predictor) Manifest() ml.Manifest {
	return p.manifest
}

// Vector validates sample and lays it out in manifest order. Keys may be manifest
// names or their FeatureAliases.
func (p *Predictor) Vector(sample map[string]any) ([]float64, error) {
	canonical := make(map[string]any, len(sample))
	var errs error
	keys := make([]string, 0, len(sample))
	for key := range sample {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		name := key
		if alias, ok := FeatureAliases[key]; ok {
			name = alias
		}
		if _, dup := canonical[name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("feature %s supplied more than once", name))
			continue
		}
		canonical[name] = sample[key]
	}

	known := make(map[string]bool, len(p.features))
	values := make(map[string]float64, len(p.features))
	for _, name := range p.features {
		known[name] = true
		value, err := toFloat(canonical[name])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("feature %s missing or invalid", name))
			continue
		}
		values[name] = value
	}
	for _, key := range keys {
		name := key
		if alias, ok := FeatureAliases[key]; ok {
			name = alias
		}
		if !known[name] {
			errs = multierr.Append(errs, fmt.Errorf("unknown feature %s", key))
		}
	}
	if errs != nil {
		return nil, newInputError(errs)
	}

	vector, _ := ml.FeatureVector(p.features, values)
	return vector, nil
}

// Predict returns exactly one label from the closed crop set.
func (p *Predictor) Predict(sample map[string]any) (crop.Label, error) {
	vector, err := p.Vector(sample)
	if err != nil {
		metrics.PredictionsRejected.Inc()
		return "", err
	}
	start := time.Now()
	class, err := p.model.Predict(vector)
	metrics.PredictionLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	label, ok := crop.ParseLabel(class)
	if !ok {
		return "", fmt.Errorf("model returned unknown class %q", class)
	}
	metrics.Predictions.WithLabelValues(label.String()).Inc()
	return label, nil
}

func (p *Predictor) PredictProba(sample map[string]any) (map[crop.Label]float64, error) {
	vector, err := p.Vector(sample)
	if err != nil {
		return nil, err
	}
	proba, err := p.model.PredictProba(vector)
	if err != nil {
		return nil, err
	}
	result := make(map[crop.Label]float64, len(proba))
	for class, prob := range proba {
		result[crop.Label(class)] = prob
	}
	return result, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, errors.New("missing")
	case bool:
		return 0, errors.New("not a number")
	case string:
		value = strings.TrimSpace(v)
		if value == "" {
			return 0, errors.New("empty")
		}
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not finite")
	}
	return f, nil
}
